// Package urls holds the route patterns of the site and builds links to them.
package urls

import (
	"net/url"
	"strconv"
)

// Route patterns.
const (
	Index           = "/"
	Group           = "/group/:slug"
	Profile         = "/profile/:username"
	ProfileFollow   = "/profile/:username/follow"
	ProfileUnfollow = "/profile/:username/unfollow"
	Recipe          = "/recipes/:id"
	RecipeEdit      = "/recipes/:id/edit"
	RecipeDelete    = "/recipes/:id/delete"
	CommentAdd      = "/recipes/:id/comment"
	CommentEdit     = "/recipes/:id/:comment_id/comment_edit"
	CommentDelete   = "/recipes/:id/:comment_id/comment_delete"
	Create          = "/create"
	Follow          = "/follow"
	Search          = "/search"

	Login  = "/auth/login"
	Logout = "/auth/logout"
	Signup = "/auth/signup"

	Admin        = "/admin"
	AdminGroup   = Admin + "/group"
	AdminRecipe  = Admin + "/recipe"
	AdminComment = Admin + "/comment"
	AdminFollow  = Admin + "/follow"
	AdminUser    = Admin + "/user"
	AdminConfig  = Admin + "/configuration"

	Static     = "/static"
	Media      = "/media"
	Metrics    = "/metrics"
	CheckAlive = "/checkalive"
)

// Route parameter names.
const (
	ParamID        = "id"
	ParamCommentID = "comment_id"
	ParamSlug      = "slug"
	ParamUsername  = "username"
)

func id(n uint) string {
	return strconv.FormatUint(uint64(n), 10)
}

// GroupURL links to the recipes of a group.
func GroupURL(slug string) string {
	return "/group/" + url.PathEscape(slug) + "/"
}

// ProfileURL links to an author's page.
func ProfileURL(username string) string {
	return "/profile/" + url.PathEscape(username) + "/"
}

// FollowURL is the form target that subscribes to username.
func FollowURL(username string) string {
	return ProfileURL(username) + "follow/"
}

// UnfollowURL is the form target that unsubscribes from username.
func UnfollowURL(username string) string {
	return ProfileURL(username) + "unfollow/"
}

// RecipeURL links to a recipe.
func RecipeURL(recipeID uint) string {
	return "/recipes/" + id(recipeID) + "/"
}

// RecipeEditURL links to the edit form of a recipe.
func RecipeEditURL(recipeID uint) string {
	return RecipeURL(recipeID) + "edit/"
}

// RecipeDeleteURL is the form target deleting a recipe.
func RecipeDeleteURL(recipeID uint) string {
	return RecipeURL(recipeID) + "delete/"
}

// CommentAddURL is the form target adding a comment to a recipe.
func CommentAddURL(recipeID uint) string {
	return RecipeURL(recipeID) + "comment/"
}

// CommentEditURL is the form target editing a comment.
func CommentEditURL(recipeID, commentID uint) string {
	return RecipeURL(recipeID) + id(commentID) + "/comment_edit/"
}

// CommentDeleteURL is the form target deleting a comment.
func CommentDeleteURL(recipeID, commentID uint) string {
	return RecipeURL(recipeID) + id(commentID) + "/comment_delete/"
}

// LoginURL links to the login page, returning to next afterwards.
func LoginURL(next string) string {
	if next == "" {
		return Login + "/"
	}

	return Login + "/?" + url.Values{"next": {next}}.Encode()
}

// SafeNext returns next when it is a local path, otherwise the index.
func SafeNext(next string) string {
	if next == "" || next[0] != '/' || len(next) > 1 && (next[1] == '/' || next[1] == '\\') {
		return Index
	}

	u, err := url.Parse(next)
	if err != nil || u.Host != "" || u.Scheme != "" {
		return Index
	}

	return next
}

// AdminURL joins an admin section with an optional id and action.
func AdminURL(section string, itemID uint, action string) string {
	out := section
	if itemID > 0 {
		out += "/" + id(itemID)
	}

	if action != "" {
		out += "/" + action
	}

	return out
}
