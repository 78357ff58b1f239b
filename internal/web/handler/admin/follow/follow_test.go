package follow_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacook/yacook/internal/db/controller/follow"
	"github.com/yacook/yacook/internal/testutil"
	adminfollow "github.com/yacook/yacook/internal/web/handler/admin/follow"
	"github.com/yacook/yacook/internal/web/handler/handlertest"
)

func TestFollowAdmin(t *testing.T) {
	h := handlertest.New(t)

	var s adminfollow.Service
	require.NoError(t, s.Init(h.App, h.Env))

	sid := h.Login(testutil.CreateStaff(t, h.DB, "admin"))
	alice := testutil.CreateUser(t, h.DB, "alice")
	bob := testutil.CreateUser(t, h.DB, "bob")
	require.NoError(t, follow.Follow(h.DB, alice.ID, bob.ID))

	resp := h.Get(adminfollow.Path, sid)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	view := handlertest.Data[adminfollow.ListView](t, h)
	require.Equal(t, 1, view.Follows.Count)
	assert.Equal(t, "alice", view.Follows.Items[0].User.Username)
	assert.Equal(t, "bob", view.Follows.Items[0].Author.Username)

	resp = h.PostForm("/admin/follow/1/delete", sid, nil)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, adminfollow.Path, handlertest.Location(resp))

	ok, err := follow.IsFollowing(h.DB, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	resp = h.PostForm("/admin/follow/1/delete", sid, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = h.Get(adminfollow.Path, h.Login(alice))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
