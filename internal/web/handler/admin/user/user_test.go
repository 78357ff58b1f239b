package user_test

import (
	"bytes"
	"context"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacook/yacook/internal/db/models"
	"github.com/yacook/yacook/internal/testutil"
	adminuser "github.com/yacook/yacook/internal/web/handler/admin/user"
	"github.com/yacook/yacook/internal/web/handler/handlertest"
)

func setup(t *testing.T) (*handlertest.Harness, *models.User, string) {
	t.Helper()

	h := handlertest.New(t)

	var s adminuser.Service
	require.NoError(t, s.Init(h.App, h.Env))

	staff := testutil.CreateStaff(t, h.DB, "admin")

	return h, staff, h.Login(staff)
}

func reload(t *testing.T, h *handlertest.Harness, id uint) models.User {
	t.Helper()

	var u models.User
	require.NoError(t, h.DB.First(&u, id).Error)

	return u
}

func TestList(t *testing.T) {
	h, _, sid := setup(t)
	testutil.CreateUser(t, h.DB, "alice")
	testutil.CreateUser(t, h.DB, "bob")

	resp := h.Get(adminuser.Path, sid)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	view := handlertest.Data[adminuser.ListView](t, h)
	require.Equal(t, 3, view.Users.Count)
	assert.Equal(t, "admin", view.Users.Items[0].Username)

	h.Get(adminuser.Path+"?q=bo", sid)
	view = handlertest.Data[adminuser.ListView](t, h)
	require.Equal(t, 1, view.Users.Count)
	assert.Equal(t, "bob", view.Users.Items[0].Username)
}

func TestToggle(t *testing.T) {
	h, staff, sid := setup(t)
	alice := testutil.CreateUser(t, h.DB, "alice")

	resp := h.PostForm("/admin/user/2/staff", sid, url.Values{"value": {"on"}})
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.True(t, reload(t, h, alice.ID).IsStaff)

	h.PostForm("/admin/user/2/staff", sid, url.Values{"value": {"off"}})
	assert.False(t, reload(t, h, alice.ID).IsStaff)

	aliceSID := h.Login(alice)
	h.PostForm("/admin/user/2/active", sid, url.Values{"value": {"off"}})
	assert.False(t, reload(t, h, alice.ID).Active)

	resp = h.Get(adminuser.Path, aliceSID)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode, "disabled accounts are treated as anonymous")

	resp = h.PostForm("/admin/user/1/staff", sid, url.Values{"value": {"off"}})
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.True(t, reload(t, h, staff.ID).IsStaff, "staff can not demote themselves")

	resp = h.PostForm("/admin/user/9/active", sid, url.Values{"value": {"on"}})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDelete(t *testing.T) {
	h, staff, sid := setup(t)
	alice := testutil.CreateUser(t, h.DB, "alice")
	r := testutil.CreateRecipe(t, h.DB, alice, nil, "Borscht")

	require.NoError(t, h.Media.Save(context.Background(), "recipes/a.png", bytes.NewReader(handlertest.PNG), int64(len(handlertest.PNG)), "image/png"))
	require.NoError(t, h.DB.Model(r).Update("image", "recipes/a.png").Error)

	resp := h.PostForm("/admin/user/2/delete", sid, url.Values{"next": {"/admin/user?q=al"}})
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin/user?q=al", handlertest.Location(resp))

	assert.Error(t, h.DB.First(&models.User{}, alice.ID).Error)
	assert.Error(t, h.DB.First(&models.Recipe{}, r.ID).Error)
	assert.NoFileExists(t, filepath.Join(h.Media.Root(), "recipes", "a.png"))

	h.PostForm("/admin/user/1/delete", sid, nil)
	assert.NoError(t, h.DB.First(&models.User{}, staff.ID).Error, "staff can not delete themselves")

	resp = h.PostForm("/admin/user/2/delete", sid, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
