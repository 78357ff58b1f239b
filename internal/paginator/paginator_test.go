package paginator_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yacook/yacook/internal/db/models"
	"github.com/yacook/yacook/internal/paginator"
	"github.com/yacook/yacook/internal/testutil"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name    string
		count   int
		perPage int
		raw     string
		want    paginator.Window
	}{
		{name: "empty set has one page", count: 0, perPage: 6, raw: "", want: paginator.Window{Number: 1, NumPages: 1, Count: 0, Offset: 0, Limit: 0}},
		{name: "empty set any number", count: 0, perPage: 6, raw: "7", want: paginator.Window{Number: 1, NumPages: 1, Count: 0, Offset: 0, Limit: 0}},
		{name: "missing number is first page", count: 13, perPage: 6, raw: "", want: paginator.Window{Number: 1, NumPages: 3, Count: 13, Offset: 0, Limit: 6}},
		{name: "not an integer is first page", count: 13, perPage: 6, raw: "abc", want: paginator.Window{Number: 1, NumPages: 3, Count: 13, Offset: 0, Limit: 6}},
		{name: "float is first page", count: 13, perPage: 6, raw: "2.0", want: paginator.Window{Number: 1, NumPages: 3, Count: 13, Offset: 0, Limit: 6}},
		{name: "second page", count: 13, perPage: 6, raw: "2", want: paginator.Window{Number: 2, NumPages: 3, Count: 13, Offset: 6, Limit: 6}},
		{name: "last partial page", count: 13, perPage: 6, raw: "3", want: paginator.Window{Number: 3, NumPages: 3, Count: 13, Offset: 12, Limit: 1}},
		{name: "beyond last is last", count: 13, perPage: 6, raw: "99", want: paginator.Window{Number: 3, NumPages: 3, Count: 13, Offset: 12, Limit: 1}},
		{name: "zero is last", count: 13, perPage: 6, raw: "0", want: paginator.Window{Number: 3, NumPages: 3, Count: 13, Offset: 12, Limit: 1}},
		{name: "integer overflowing int is last", count: 20, perPage: 6, raw: "99999999999999999999", want: paginator.Window{Number: 4, NumPages: 4, Count: 20, Offset: 18, Limit: 2}},
		{name: "negative overflowing int is last", count: 13, perPage: 6, raw: "-99999999999999999999", want: paginator.Window{Number: 3, NumPages: 3, Count: 13, Offset: 12, Limit: 1}},
		{name: "negative is last", count: 13, perPage: 6, raw: "-4", want: paginator.Window{Number: 3, NumPages: 3, Count: 13, Offset: 12, Limit: 1}},
		{name: "exact multiple", count: 12, perPage: 6, raw: "2", want: paginator.Window{Number: 2, NumPages: 2, Count: 12, Offset: 6, Limit: 6}},
		{name: "page size below one uses default", count: 7, perPage: 0, raw: "2", want: paginator.Window{Number: 2, NumPages: 2, Count: 7, Offset: 6, Limit: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, paginator.Compute(tt.count, tt.perPage, tt.raw))
		})
	}
}

func TestPageNavigation(t *testing.T) {
	p := paginator.Slice([]int{1, 2, 3, 4, 5, 6, 7}, 3, "2")

	assert.Equal(t, []int{4, 5, 6}, p.Items)
	assert.True(t, p.HasPrevious())
	assert.True(t, p.HasNext())
	assert.True(t, p.HasOtherPages())
	assert.Equal(t, 1, p.PreviousNumber())
	assert.Equal(t, 3, p.NextNumber())
	assert.Equal(t, []int{1, 2, 3}, p.PageRange())

	first := paginator.Slice([]int{1}, 3, "")
	assert.False(t, first.HasPrevious())
	assert.False(t, first.HasNext())
	assert.False(t, first.HasOtherPages())

	empty := paginator.Slice([]string{}, 3, "5")
	assert.Empty(t, empty.Items)
	assert.Equal(t, 1, empty.Number)
}

func TestPageURL(t *testing.T) {
	p := paginator.Slice([]int{1, 2, 3}, 1, "1")
	assert.Equal(t, "?page=2", p.URL(2))

	p.WithQuery(url.Values{"s": {"борщ"}, "page": {"1"}})
	assert.Equal(t, "?page=3&s=%D0%B1%D0%BE%D1%80%D1%89", p.URL(3))
}

func TestPaginate(t *testing.T) {
	db := testutil.DB(t)
	author := testutil.CreateUser(t, db, "leo")
	testutil.CreateRecipes(t, db, author, nil, "soup", 8)

	newest := func(tx *gorm.DB) *gorm.DB { return tx.Order("pub_date desc, id desc").Preload("Author") }

	tests := []struct {
		name       string
		raw        string
		wantNumber int
		wantTitles []string
	}{
		{name: "first page newest first", raw: "", wantNumber: 1, wantTitles: []string{"soup 8", "soup 7", "soup 6"}},
		{name: "last page", raw: "3", wantNumber: 3, wantTitles: []string{"soup 2", "soup 1"}},
		{name: "out of range", raw: "10", wantNumber: 3, wantTitles: []string{"soup 2", "soup 1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := paginator.Paginate[models.Recipe](db.Model(&models.Recipe{}), 3, tt.raw, newest)
			require.NoError(t, err)

			assert.Equal(t, tt.wantNumber, page.Number)
			assert.Equal(t, 8, page.Count)
			assert.Equal(t, 3, page.NumPages)

			titles := make([]string, 0, len(page.Items))
			for _, r := range page.Items {
				titles = append(titles, r.Title)
				assert.Equal(t, "leo", r.Author.Username)
			}

			assert.Equal(t, tt.wantTitles, titles)
		})
	}
}

func TestPaginateFiltered(t *testing.T) {
	db := testutil.DB(t)
	author := testutil.CreateUser(t, db, "leo")
	other := testutil.CreateUser(t, db, "mia")
	testutil.CreateRecipes(t, db, author, nil, "leo", 2)
	testutil.CreateRecipes(t, db, other, nil, "mia", 3)

	page, err := paginator.Paginate[models.Recipe](db.Where("author_id = ?", other.ID), 6, "1")
	require.NoError(t, err)

	assert.Equal(t, 3, page.Count)
	assert.Len(t, page.Items, 3)

	empty, err := paginator.Paginate[models.Recipe](db.Where("author_id = ?", 999), 6, "4")
	require.NoError(t, err)

	assert.Equal(t, 1, empty.NumPages)
	assert.Empty(t, empty.Items)
}
