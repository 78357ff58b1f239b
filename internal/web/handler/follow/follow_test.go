package follow_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	followdb "github.com/yacook/yacook/internal/db/controller/follow"
	"github.com/yacook/yacook/internal/testutil"
	"github.com/yacook/yacook/internal/web/handler/follow"
	"github.com/yacook/yacook/internal/web/handler/handlertest"
)

func TestFeed(t *testing.T) {
	h := handlertest.New(t)

	var s follow.Service
	require.NoError(t, s.Init(h.App, h.Env))

	alice := testutil.CreateUser(t, h.DB, "alice")
	bob := testutil.CreateUser(t, h.DB, "bob")
	carol := testutil.CreateUser(t, h.DB, "carol")
	reader := testutil.CreateUser(t, h.DB, "reader")

	testutil.CreateRecipe(t, h.DB, alice, nil, "alice 1")
	testutil.CreateRecipe(t, h.DB, carol, nil, "carol 1")
	testutil.CreateRecipe(t, h.DB, bob, nil, "bob 1")
	testutil.CreateRecipe(t, h.DB, alice, nil, "alice 2")

	require.NoError(t, followdb.Follow(h.DB, reader.ID, bob.ID))
	require.NoError(t, followdb.Follow(h.DB, reader.ID, alice.ID))

	resp := h.Get("/follow/", "")
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)

	resp = h.Get("/follow/", h.Login(reader))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	view := handlertest.Data[follow.View](t, h)
	require.Len(t, view.Following, 2)
	assert.Equal(t, "alice", view.Following[0].Username)
	assert.Equal(t, "bob", view.Following[1].Username)

	titles := make([]string, 0, len(view.Recipes.Items))
	for _, r := range view.Recipes.Items {
		titles = append(titles, r.Title)
	}

	assert.Equal(t, []string{"alice 2", "bob 1", "alice 1"}, titles)

	h.Get("/follow/", h.Login(carol))
	view = handlertest.Data[follow.View](t, h)
	assert.Empty(t, view.Following)
	assert.Empty(t, view.Recipes.Items)
	assert.Equal(t, 1, view.Recipes.NumPages)
}
