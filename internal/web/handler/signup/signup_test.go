package signup_test

import (
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacook/yacook/internal/db/controller/user"
	"github.com/yacook/yacook/internal/forms"
	"github.com/yacook/yacook/internal/testutil"
	"github.com/yacook/yacook/internal/web/handler/handlertest"
	"github.com/yacook/yacook/internal/web/handler/signup"
)

func setup(t *testing.T) *handlertest.Harness {
	t.Helper()

	h := handlertest.New(t)

	var s signup.Service
	require.NoError(t, s.Init(h.App, h.Env))

	return h
}

func form(username, p1, p2 string) url.Values {
	return url.Values{
		forms.FieldUsername:  {username},
		forms.FieldEmail:     {username + "@example.com"},
		forms.FieldFirstName: {"Анна"},
		forms.FieldLastName:  {"Иванова"},
		forms.FieldPassword1: {p1},
		forms.FieldPassword2: {p2},
	}
}

func TestSignup(t *testing.T) {
	h := setup(t)

	resp := h.Get("/auth/signup/", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, signup.Template, h.Views.Last().Name)

	resp = h.PostForm("/auth/signup/", "", form("anna", "long-password", "long-password"))
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", handlertest.Location(resp))

	u, err := user.GetByUsername(h.DB, "anna")
	require.NoError(t, err)
	assert.True(t, u.Active)
	assert.False(t, u.IsStaff)
	assert.Equal(t, "Анна Иванова", u.FullName())
	assert.True(t, u.VerifyPassword("long-password"))
}

func TestSignupInvalid(t *testing.T) {
	h := setup(t)
	testutil.CreateUser(t, h.DB, "taken")

	tests := []struct {
		name  string
		form  url.Values
		field string
	}{
		{name: "mismatch", form: form("anna", "long-password", "other-password"), field: forms.FieldPassword2},
		{name: "short", form: form("anna", "short", "short"), field: forms.FieldPassword1},
		{name: "taken", form: form("Taken", "long-password", "long-password"), field: forms.FieldUsername},
		{name: "bad username", form: form("an na", "long-password", "long-password"), field: forms.FieldUsername},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := h.PostForm("/auth/signup/", "", tt.form)
			require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

			view := handlertest.Data[signup.View](t, h)
			assert.True(t, view.Errors.Has(tt.field), view.Errors)
			assert.Empty(t, view.Form.Password1)
		})
	}

	_, err := user.GetByUsername(h.DB, "anna")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}
