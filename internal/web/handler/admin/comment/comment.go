// Package comment is the staff changelist of comments.
package comment

import (
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/yacook/yacook/internal/db/controller/comment"
	"github.com/yacook/yacook/internal/db/models"
	"github.com/yacook/yacook/internal/paginator"
	"github.com/yacook/yacook/internal/web/handler"
	"github.com/yacook/yacook/internal/web/handler/admin"
	"github.com/yacook/yacook/internal/web/middleware/auth"
	"github.com/yacook/yacook/internal/web/urls"
)

const (
	// Path is the comment changelist.
	Path = urls.AdminComment
	// TemplateList renders the changelist.
	TemplateList = "admin/comment/list"
	// RouteDelete deletes a comment.
	RouteDelete = Path + "/:id/delete"

	// NavEntityComment is the admin navigation key.
	NavEntityComment = "comment"
	// TitleComments is the page title.
	TitleComments = "Комментарии"
)

// ListView is the view model of the comment changelist.
type ListView struct {
	handler.Page
	Comments *paginator.Page[models.Comment]
	Since    string
	Dates    []admin.DateChoice
	Next     string
}

// Service serves the comment changelist.
type Service struct {
	handler.Service
	env *handler.Env
	now func() time.Time
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes.
func (s *Service) Init(app *fiber.App, env *handler.Env) error {
	if err := env.Check(app); err != nil {
		return err
	}

	s.env = env
	if s.now == nil {
		s.now = time.Now
	}

	app.Get(Path, auth.RequireStaff, s.List)
	app.Post(RouteDelete, auth.RequireStaff, s.Delete)

	return nil
}

// List pages comments, newest first, optionally since a date.
func (s *Service) List(c *fiber.Ctx) error {
	since := c.Query(admin.QuerySince)

	comments, err := comment.AdminList(s.env.DBFor(c), admin.Since(since, s.now()), admin.PageSize, c.Query(handler.QueryPage))
	if err != nil {
		return err //nolint:wrapcheck
	}

	comments.WithQuery(url.Values{admin.QuerySince: {since}})

	nav := admin.Nav(TitleComments, NavEntityComment).
		AddBreadcrumb(TitleComments, Path, true)

	return c.Render(TemplateList, ListView{
		Page:     s.env.NewPage(c, nav),
		Comments: comments,
		Since:    since,
		Dates:    admin.DateChoices(since),
		Next:     c.OriginalURL(),
	}, handler.BaseLayout)
}

// Delete removes a comment.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := handler.ParseID(c, urls.ParamID)
	if err != nil {
		return err
	}

	if err := comment.Delete(s.env.DBFor(c), id); err != nil {
		return handler.NotFound(err, comment.ErrCommentNotFound)
	}

	return admin.Back(c, Path)
}
