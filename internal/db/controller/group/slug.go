package group

import (
	"strings"

	"github.com/gosimple/slug"
)

// MaxSlugLength is the column size of Group.Slug.
const MaxSlugLength = 50

// Slugify transliterates a (russian) title into a slug: lower case,
// separators replaced by underscores.
func Slugify(title string) string {
	s := strings.ReplaceAll(slug.MakeLang(title, "ru"), "-", "_")
	if len(s) > MaxSlugLength {
		s = strings.TrimRight(s[:MaxSlugLength], "_")
	}

	return s
}
