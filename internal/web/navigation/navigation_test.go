package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContext(t *testing.T) {
	ctx := NewContext("Рецепты", "recipes", "index")

	assert.Equal(t, "Рецепты", ctx.PageTitle)
	assert.Equal(t, "recipes", ctx.ActiveSection)
	assert.Equal(t, "index", ctx.ActivePage)
	assert.NotNil(t, ctx.Breadcrumbs)
	assert.Empty(t, ctx.Breadcrumbs)
}

func TestContext_AddBreadcrumb_Chaining(t *testing.T) {
	ctx := NewContext("Борщ", "recipes", "detail").
		AddBreadcrumb("Главная", "/", false).
		AddBreadcrumb("Супы", "/group/soups/", false).
		AddBreadcrumb("Борщ", "", true)

	require.Len(t, ctx.Breadcrumbs, 3)
	assert.Equal(t, "Главная", ctx.Breadcrumbs[0].Title)
	assert.Equal(t, "/group/soups/", ctx.Breadcrumbs[1].URL)
	assert.True(t, ctx.Breadcrumbs[2].Active)
	assert.False(t, ctx.Breadcrumbs[1].Active)
}

func TestContext_IsActive(t *testing.T) {
	ctx := NewContext("Группы", "admin", "group")

	assert.True(t, ctx.IsActive("admin", "group"))
	assert.False(t, ctx.IsActive("recipes", "group"))
	assert.False(t, ctx.IsActive("admin", "recipe"))
	assert.True(t, ctx.IsSectionActive("admin"))
	assert.False(t, ctx.IsSectionActive("follow"))
}

func TestContext_Parent(t *testing.T) {
	ctx := NewContext("Изменить", "admin", "group")

	_, ok := ctx.Parent()
	assert.False(t, ok)

	ctx.AddBreadcrumb("Администрирование", "/admin", false).
		AddBreadcrumb("Группы", "/admin/group", false).
		AddBreadcrumb("Изменить", "", true)

	parent, ok := ctx.Parent()
	require.True(t, ok)
	assert.Equal(t, "/admin/group", parent.URL)
}

func TestContext_Title(t *testing.T) {
	assert.Equal(t, "Foodgram", NewContext("", "", "").Title("Foodgram"))
	assert.Equal(t, "Foodgram", NewContext("Foodgram", "", "").Title("Foodgram"))
	assert.Equal(t, "Борщ | Foodgram", NewContext("Борщ", "", "").Title("Foodgram"))
	assert.Equal(t, "Борщ", NewContext("Борщ", "", "").Title(""))
}
