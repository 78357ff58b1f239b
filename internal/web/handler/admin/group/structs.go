package group

import (
	"github.com/yacook/yacook/internal/db/controller/group"
	"github.com/yacook/yacook/internal/forms"
	"github.com/yacook/yacook/internal/paginator"
	"github.com/yacook/yacook/internal/web/handler"
)

// ListView is the view model of the group changelist.
type ListView struct {
	handler.Page
	Groups *paginator.Page[group.AdminRow]
	Search string
}

// FormView is the view model of the group form.
type FormView struct {
	handler.Page
	Form   *forms.Group
	Errors forms.Errors
	// ID is the edited group, 0 on create.
	ID       uint
	IsCreate bool
	Action   string
}
