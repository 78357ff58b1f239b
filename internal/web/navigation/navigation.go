// Package navigation carries the active menu entry and the breadcrumb trail of a page.
package navigation

// BreadcrumbItem represents a single breadcrumb link.
type BreadcrumbItem struct {
	Title  string
	URL    string
	Active bool
}

// Context represents the navigation context for a page.
type Context struct {
	ActiveSection string
	ActivePage    string
	Breadcrumbs   []BreadcrumbItem
	PageTitle     string
}

// NewContext creates a new navigation context.
func NewContext(pageTitle, activeSection, activePage string) *Context {
	return &Context{
		PageTitle:     pageTitle,
		ActiveSection: activeSection,
		ActivePage:    activePage,
		Breadcrumbs:   make([]BreadcrumbItem, 0),
	}
}

// AddBreadcrumb appends a crumb. An active crumb is rendered without link.
func (c *Context) AddBreadcrumb(title, url string, active bool) *Context {
	c.Breadcrumbs = append(c.Breadcrumbs, BreadcrumbItem{
		Title:  title,
		URL:    url,
		Active: active,
	})

	return c
}

// IsActive checks if the given section and page match the current context.
func (c *Context) IsActive(section, page string) bool {
	return c.ActiveSection == section && c.ActivePage == page
}

// IsSectionActive checks if the given section is active.
func (c *Context) IsSectionActive(section string) bool {
	return c.ActiveSection == section
}

// Parent returns the last linked crumb, the target of the "back" links.
func (c *Context) Parent() (BreadcrumbItem, bool) {
	for i := len(c.Breadcrumbs) - 1; i >= 0; i-- {
		if b := c.Breadcrumbs[i]; !b.Active && b.URL != "" {
			return b, true
		}
	}

	return BreadcrumbItem{}, false
}

// Title joins the page title with the site name for the <title> element.
func (c *Context) Title(site string) string {
	switch {
	case c.PageTitle == "":
		return site
	case site == "" || c.PageTitle == site:
		return c.PageTitle
	default:
		return c.PageTitle + " | " + site
	}
}
