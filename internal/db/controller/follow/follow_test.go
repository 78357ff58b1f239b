package follow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacook/yacook/internal/db/controller/follow"
	"github.com/yacook/yacook/internal/db/models"
	"github.com/yacook/yacook/internal/testutil"
)

func TestFollowIsIdempotent(t *testing.T) {
	db := testutil.DB(t)
	leo := testutil.CreateUser(t, db, "leo")
	mia := testutil.CreateUser(t, db, "mia")

	require.NoError(t, follow.Follow(db, leo.ID, mia.ID))
	require.NoError(t, follow.Follow(db, leo.ID, mia.ID))

	var n int64
	require.NoError(t, db.Model(&models.Follow{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)

	ok, err := follow.IsFollowing(db, leo.ID, mia.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = follow.IsFollowing(db, mia.ID, leo.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSelfFollow(t *testing.T) {
	db := testutil.DB(t)
	leo := testutil.CreateUser(t, db, "leo")

	assert.ErrorIs(t, follow.Follow(db, leo.ID, leo.ID), follow.ErrSelfFollow)
}

func TestUnfollowRemovesEveryLinkToAuthor(t *testing.T) {
	db := testutil.DB(t)
	leo := testutil.CreateUser(t, db, "leo")
	mia := testutil.CreateUser(t, db, "mia")
	ann := testutil.CreateUser(t, db, "ann")

	require.NoError(t, follow.Follow(db, leo.ID, ann.ID))
	require.NoError(t, follow.Follow(db, mia.ID, ann.ID))
	require.NoError(t, follow.Follow(db, leo.ID, mia.ID))

	n, err := follow.Followers(db, ann.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	require.NoError(t, follow.Unfollow(db, ann.ID))
	require.NoError(t, follow.Unfollow(db, ann.ID), "missing link is fine")

	n, err = follow.Followers(db, ann.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	// links to other authors stay
	ok, err := follow.IsFollowing(db, leo.ID, mia.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAuthorsAndAdmin(t *testing.T) {
	db := testutil.DB(t)
	leo := testutil.CreateUser(t, db, "leo")
	mia := testutil.CreateUser(t, db, "mia")
	ann := testutil.CreateUser(t, db, "ann")

	require.NoError(t, follow.Follow(db, leo.ID, mia.ID))
	require.NoError(t, follow.Follow(db, leo.ID, ann.ID))

	authors, err := follow.Authors(db, leo.ID)
	require.NoError(t, err)
	require.Len(t, authors, 2)
	assert.Equal(t, "ann", authors[0].Username)
	assert.Equal(t, "mia", authors[1].Username)

	page, err := follow.AdminList(db, 10, "")
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "leo", page.Items[0].User.Username)

	require.NoError(t, follow.Delete(db, page.Items[0].ID))
	assert.ErrorIs(t, follow.Delete(db, page.Items[0].ID), follow.ErrFollowNotFound)
}
