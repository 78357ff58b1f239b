// Package admin holds what the staff pages share: navigation, the date filter
// of the changelists and the redirect back to a list.
package admin

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/yacook/yacook/internal/web/handler"
	"github.com/yacook/yacook/internal/web/navigation"
	"github.com/yacook/yacook/internal/web/urls"
)

const (
	// PageSize is the number of rows of a changelist.
	PageSize = 25

	// BreadcrumbAdminLbl is the label for the admin breadcrumb.
	BreadcrumbAdminLbl = "Администрирование"

	// QuerySearch is the query parameter name for the search term.
	QuerySearch = "q"
	// QuerySince is the query parameter name for the date filter.
	QuerySince = "since"
	// FormNext is the form field carrying the list to return to.
	FormNext = "next"
)

// Nav starts the navigation of an admin page.
func Nav(title, entity string) *navigation.Context {
	return handler.Nav(title, handler.NavAdmin, entity).
		AddBreadcrumb(BreadcrumbAdminLbl, urls.Admin, false)
}

// Back redirects to the local url in the next form field, or to fallback.
func Back(c *fiber.Ctx, fallback string) error {
	if next := c.FormValue(FormNext); next != "" && urls.SafeNext(next) == next {
		return c.Redirect(next)
	}

	return c.Redirect(fallback)
}

// Date filter values.
const (
	SinceAny   = ""
	SinceToday = "today"
	SinceWeek  = "week"
	SinceMonth = "month"
	SinceYear  = "year"
)

// DateChoice is one entry of the date filter.
type DateChoice struct {
	Value  string
	Label  string
	Active bool
}

var dateLabels = []DateChoice{
	{Value: SinceAny, Label: "Любая дата"},
	{Value: SinceToday, Label: "Сегодня"},
	{Value: SinceWeek, Label: "Последние 7 дней"},
	{Value: SinceMonth, Label: "Этот месяц"},
	{Value: SinceYear, Label: "Этот год"},
}

// DateChoices lists the filter entries with active marked.
func DateChoices(active string) []DateChoice {
	out := make([]DateChoice, len(dateLabels))
	for i, d := range dateLabels {
		d.Active = d.Value == active
		out[i] = d
	}

	return out
}

// Since returns the lower bound selected by value, nil for any date or an unknown value.
func Since(value string, now time.Time) *time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var t time.Time

	switch value {
	case SinceToday:
		t = today
	case SinceWeek:
		t = today.AddDate(0, 0, -7)
	case SinceMonth:
		t = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	case SinceYear:
		t = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	default:
		return nil
	}

	return &t
}
