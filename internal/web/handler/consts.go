package handler

const (
	// BaseLayout is the default path for layout templates.
	BaseLayout = "layouts/base"

	// RootPath is the root path the route group.
	RootPath = "/"

	// LocalsCSRF is the fiber.Locals key of the csrf token.
	LocalsCSRF = "csrf"

	// FormCSRF is the name of the hidden csrf input.
	FormCSRF = "csrfmiddlewaretoken"

	// QueryPage is the query parameter of the page number.
	QueryPage = "page"

	// ErrNilEnvFatalLogMsg is used if app or env is incomplete.
	ErrNilEnvFatalLogMsg = "app, cfg or db is nil"
)

// Error page templates.
const (
	TemplateNotFound  = "core/404"
	TemplateForbidden = "core/403"
	TemplateCSRF      = "core/403csrf"
	TemplateServer    = "core/500"
)

// Navigation sections.
const (
	NavRecipes = "recipes"
	NavFollow  = "follow"
	NavCreate  = "create"
	NavSearch  = "search"
	NavAuth    = "auth"
	NavAdmin   = "admin"
)

// BreadcrumbHomeLbl is the label of the first breadcrumb.
const BreadcrumbHomeLbl = "Главная"
