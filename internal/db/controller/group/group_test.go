package group_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacook/yacook/internal/cache"
	"github.com/yacook/yacook/internal/db/controller/group"
	"github.com/yacook/yacook/internal/db/models"
	"github.com/yacook/yacook/internal/testutil"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{title: "Супы", want: "supy"},
		{title: "Горячие супы", want: "goriachie_supy"},
		{title: "Pasta Dishes", want: "pasta_dishes"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			got := group.Slugify(tt.title)
			assert.Regexp(t, `^[a-z0-9_]+$`, got)
			assert.NotContains(t, got, " ")
			assert.Equal(t, tt.want, got)
		})
	}

	long := group.Slugify("очень длинное название группы которое не помещается в пятьдесят символов")
	assert.LessOrEqual(t, len(long), group.MaxSlugLength)
}

func TestGetBySlug(t *testing.T) {
	db := testutil.DB(t)
	soups := testutil.CreateGroup(t, db, "soups")

	g, err := group.GetBySlug(db, "soups")
	require.NoError(t, err)
	assert.Equal(t, soups.ID, g.ID)

	_, err = group.GetBySlug(db, "missing")
	assert.ErrorIs(t, err, group.ErrGroupNotFound)

	_, err = group.GetBySlug(nil, "soups")
	assert.ErrorIs(t, err, group.ErrDBNil)
}

func TestCreateAndUpdate(t *testing.T) {
	db := testutil.DB(t)

	g := &models.Group{Title: "Супы", Description: "горячее"}
	require.NoError(t, group.Create(db, g))
	assert.Equal(t, "supy", g.Slug)

	err := group.Create(db, &models.Group{Title: "Other", Slug: "supy", Description: "x"})
	assert.ErrorIs(t, err, group.ErrSlugTaken)

	other := &models.Group{Title: "Pasta", Slug: "pasta", Description: "italian"}
	require.NoError(t, group.Create(db, other))

	other.Slug = "supy"
	assert.ErrorIs(t, group.Update(db, other), group.ErrSlugTaken)

	g.Title = "Супы и бульоны"
	require.NoError(t, group.Update(db, g), "keeping the own slug is fine")

	reloaded, err := group.GetByID(db, g.ID)
	require.NoError(t, err)
	assert.Equal(t, "Супы и бульоны", reloaded.Title)

	assert.ErrorIs(t, group.Update(db, &models.Group{ID: 999, Title: "x", Slug: "x"}), group.ErrGroupNotFound)
}

func TestDeleteUnlinksRecipes(t *testing.T) {
	db := testutil.DB(t)
	author := testutil.CreateUser(t, db, "leo")
	soups := testutil.CreateGroup(t, db, "soups")
	r := testutil.CreateRecipe(t, db, author, soups, "borsch")

	require.NoError(t, group.Delete(db, soups.ID))

	var reloaded models.Recipe
	require.NoError(t, db.First(&reloaded, r.ID).Error)
	assert.Nil(t, reloaded.GroupID)

	assert.ErrorIs(t, group.Delete(db, soups.ID), group.ErrGroupNotFound)
}

func TestGetOrCreate(t *testing.T) {
	db := testutil.DB(t)

	g, created, err := group.GetOrCreate(db, "Супы", "supy")
	require.NoError(t, err)
	assert.True(t, created)

	again, created, err := group.GetOrCreate(db, "Супы", "supy")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, g.ID, again.ID)
}

func TestAdminList(t *testing.T) {
	db := testutil.DB(t)
	author := testutil.CreateUser(t, db, "leo")
	soups := testutil.CreateGroup(t, db, "soups")
	testutil.CreateGroup(t, db, "salads")
	testutil.CreateRecipes(t, db, author, soups, "soup", 2)

	page, err := group.AdminList(db, "SOU", 10, "")
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "soups", page.Items[0].Slug)
	assert.Equal(t, int64(2), page.Items[0].Recipes)

	page, err = group.AdminList(db, "", 10, "")
	require.NoError(t, err)
	assert.Equal(t, 2, page.Count)
}

func TestRefs(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	testutil.CreateGroup(t, db, "soups")

	c, err := cache.NewMemory(4)
	require.NoError(t, err)

	refs, err := group.Refs(ctx, db, c, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, []group.Ref{{Title: "Group soups", Slug: "soups"}}, refs)

	// served from cache until invalidated
	testutil.CreateGroup(t, db, "salads")

	refs, err = group.Refs(ctx, db, c, time.Minute)
	require.NoError(t, err)
	assert.Len(t, refs, 1)

	group.InvalidateRefs(ctx, c)

	refs, err = group.Refs(ctx, db, c, time.Minute)
	require.NoError(t, err)
	assert.Len(t, refs, 2)

	refs, err = group.Refs(ctx, db, nil, time.Minute)
	require.NoError(t, err)
	assert.Len(t, refs, 2)
}
