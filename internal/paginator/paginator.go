// Package paginator splits ordered result sets into numbered pages.
//
// Page numbers are forgiving: a missing or malformed number selects the first
// page, a number outside 1..last selects the last page. An empty result set
// still has one (empty) page. Computing a page never fails.
package paginator

import (
	"errors"
	"net/url"
	"strconv"

	"gorm.io/gorm"
)

// DefaultPerPage is used when a caller passes a page size below 1.
const DefaultPerPage = 6

// Window describes one page of a result set.
type Window struct {
	Number   int
	NumPages int
	Count    int
	Offset   int
	Limit    int
}

// Compute resolves the raw page number against count items.
func Compute(count, perPage int, raw string) Window {
	if perPage < 1 {
		perPage = DefaultPerPage
	}

	if count < 0 {
		count = 0
	}

	pages := (count + perPage - 1) / perPage
	if pages < 1 {
		pages = 1
	}

	number, err := strconv.Atoi(raw)

	switch {
	case errors.Is(err, strconv.ErrRange):
		number = pages
	case err != nil:
		number = 1
	case number < 1 || number > pages:
		number = pages
	}

	offset := (number - 1) * perPage
	limit := perPage

	if rest := count - offset; rest < limit {
		limit = max(rest, 0)
	}

	return Window{
		Number:   number,
		NumPages: pages,
		Count:    count,
		Offset:   offset,
		Limit:    limit,
	}
}

// Page holds the items of one page and the data templates need for navigation.
type Page[T any] struct {
	Window

	Items []T

	// query is carried into the links built by URL, without the page parameter.
	query url.Values
}

// HasPrevious reports whether a page precedes this one.
func (p *Page[T]) HasPrevious() bool { return p.Number > 1 }

// HasNext reports whether a page follows this one.
func (p *Page[T]) HasNext() bool { return p.Number < p.NumPages }

// HasOtherPages reports whether navigation is needed at all.
func (p *Page[T]) HasOtherPages() bool { return p.NumPages > 1 }

// PreviousNumber is the number of the preceding page.
func (p *Page[T]) PreviousNumber() int { return p.Number - 1 }

// NextNumber is the number of the following page.
func (p *Page[T]) NextNumber() int { return p.Number + 1 }

// PageRange lists every page number, starting at 1.
func (p *Page[T]) PageRange() []int {
	r := make([]int, p.NumPages)
	for i := range r {
		r[i] = i + 1
	}

	return r
}

// WithQuery keeps the given parameters (e.g. a search term) in page links.
func (p *Page[T]) WithQuery(q url.Values) *Page[T] {
	p.query = url.Values{}

	for k, v := range q {
		if k != "page" {
			p.query[k] = v
		}
	}

	return p
}

// URL returns the relative link to page n.
func (p *Page[T]) URL(n int) string {
	q := url.Values{}
	for k, v := range p.query {
		q[k] = v
	}

	q.Set("page", strconv.Itoa(n))

	return "?" + q.Encode()
}

// Slice pages an already materialized slice.
func Slice[T any](items []T, perPage int, raw string) *Page[T] {
	w := Compute(len(items), perPage, raw)

	return &Page[T]{
		Window: w,
		Items:  items[w.Offset : w.Offset+w.Limit],
	}
}

// Paginate counts the rows matched by query and loads the requested page.
// scopes (ordering, preloads) are applied to the page query only.
func Paginate[T any](query *gorm.DB, perPage int, raw string, scopes ...func(*gorm.DB) *gorm.DB) (*Page[T], error) {
	var count int64

	if query.Statement.Model == nil {
		query = query.Model(new(T))
	}

	if err := query.Session(&gorm.Session{}).Count(&count).Error; err != nil {
		return nil, err //nolint:wrapcheck
	}

	w := Compute(int(count), perPage, raw)
	items := make([]T, 0, w.Limit)

	if w.Limit > 0 {
		if err := query.Session(&gorm.Session{}).Scopes(scopes...).
			Offset(w.Offset).Limit(w.Limit).Find(&items).Error; err != nil {
			return nil, err //nolint:wrapcheck
		}
	}

	return &Page[T]{Window: w, Items: items}, nil
}
