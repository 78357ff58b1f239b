package web

import (
	"html/template"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/yacook/yacook/internal/media"
	"github.com/yacook/yacook/internal/web/urls"
)

// DateLayout is how dates are printed on pages.
const DateLayout = "02.01.2006 15:04"

const ellipsis = "…"

// linebreaks escapes s and turns newlines into <br>.
func linebreaks(s string) template.HTML {
	s = strings.ReplaceAll(s, "\r\n", "\n")

	lines := strings.Split(template.HTMLEscapeString(s), "\n")

	return template.HTML(strings.Join(lines, "<br>")) //nolint:gosec // escaped above
}

// truncate cuts s to n runes, the ellipsis included.
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}

	if utf8.RuneCountInString(s) <= n {
		return s
	}

	r := []rune(s)

	return string(r[:n-1]) + ellipsis
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.Local().Format(DateLayout)
}

func iterate(count int) []int {
	result := make([]int, count)
	for i := range result {
		result[i] = i
	}

	return result
}

// templateFuncs are the helpers available in every template.
func templateFuncs(store media.Store) map[string]any {
	return map[string]any{
		"iterate": iterate,
		"add": func(a, b int) int {
			return a + b
		},
		"sub": func(a, b int) int {
			return a - b
		},
		"sameID": func(id uint, ref *uint) bool {
			return ref != nil && *ref == id
		},
		"linebreaks": linebreaks,
		"truncate":   truncate,
		"date":       formatDate,
		"media": func(key string) string {
			if key == "" || store == nil {
				return ""
			}

			return store.URL(key)
		},
		"groupURL":         urls.GroupURL,
		"profileURL":       urls.ProfileURL,
		"followURL":        urls.FollowURL,
		"unfollowURL":      urls.UnfollowURL,
		"recipeURL":        urls.RecipeURL,
		"recipeEditURL":    urls.RecipeEditURL,
		"recipeDeleteURL":  urls.RecipeDeleteURL,
		"commentAddURL":    urls.CommentAddURL,
		"commentEditURL":   urls.CommentEditURL,
		"commentDeleteURL": urls.CommentDeleteURL,
		"loginURL":         urls.LoginURL,
		"adminURL":         urls.AdminURL,
	}
}
