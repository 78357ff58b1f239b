// Package auth provides authentication middleware for the web application.
//
// LoadUser resolves the session cookie to an active user and stores it in
// fiber.Locals under LocalsUser, so handlers and templates can read it with
// CurrentUser. Requests without a valid session simply continue anonymously.
//
// RequireLogin redirects anonymous requests to the login page, carrying the
// original URL in the "next" query parameter. RequireStaff additionally
// answers 403 for logged in users without the staff flag.
//
// Usage:
//
//	app.Use(auth.LoadUser(db))
//	app.Get(urls.Create, auth.RequireLogin, handler)
//	app.Get(urls.AdminGroup, auth.RequireStaff, handler)
package auth
