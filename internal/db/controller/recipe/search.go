package recipe

import (
	"fmt"
	"regexp"

	"gorm.io/gorm"

	"github.com/yacook/yacook/internal/db/models"
	"github.com/yacook/yacook/internal/paginator"
)

// Matcher compiles a case insensitive search pattern. A pattern that is not a
// valid regular expression is matched literally, an empty one matches everything.
func Matcher(pattern string) *regexp.Regexp {
	if re, err := regexp.Compile("(?i)" + pattern); err == nil {
		return re
	}

	return regexp.MustCompile("(?i)" + regexp.QuoteMeta(pattern))
}

type searchRow struct {
	ID          uint
	Title       string
	Ingredients string
}

// Search pages the recipes whose title or ingredients match pattern.
// Matching runs in Go so every database engine gets the same regexp semantics.
func Search(db *gorm.DB, pattern string, perPage int, page string) (*paginator.Page[models.Recipe], error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var rows []searchRow
	if err := db.Model(&models.Recipe{}).Select("id", "title", "ingredients").
		Order("pub_date desc, id desc").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("search recipes: %w", err)
	}

	re := Matcher(pattern)
	ids := make([]uint, 0, len(rows))

	for _, row := range rows {
		if re.MatchString(row.Title) || re.MatchString(row.Ingredients) {
			ids = append(ids, row.ID)
		}
	}

	idPage := paginator.Slice(ids, perPage, page)
	result := &paginator.Page[models.Recipe]{Window: idPage.Window, Items: []models.Recipe{}}

	if len(idPage.Items) == 0 {
		return result, nil
	}

	var recipes []models.Recipe
	if err := db.Preload("Author").Preload("Group").Where("id IN ?", idPage.Items).Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("load recipes: %w", err)
	}

	byID := make(map[uint]models.Recipe, len(recipes))
	for _, r := range recipes {
		byID[r.ID] = r
	}

	for _, id := range idPage.Items {
		if r, ok := byID[id]; ok {
			result.Items = append(result.Items, r)
		}
	}

	return result, nil
}
