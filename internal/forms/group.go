package forms

// Input names of the admin group form.
const (
	FieldSlug = "slug"
)

const msgSlugTaken = "Группа с таким адресом уже существует."

// Group is the admin group form. An empty slug is generated from the title.
type Group struct {
	Title       string `form:"title" validate:"required,max=200"`
	Slug        string `form:"slug" validate:"omitempty,max=50,slug"`
	Description string `form:"description" validate:"required"`
}

// BindGroup reads the group form from r.
func BindGroup(r Request) *Group {
	return &Group{
		Title:       trimmed(r, FieldTitle),
		Slug:        trimmed(r, FieldSlug),
		Description: trimmed(r, FieldDescription),
	}
}

// Validate checks the form.
func (f *Group) Validate() Errors {
	return Struct(f)
}

// SlugTaken records a duplicate slug on errs.
func SlugTaken(errs Errors) {
	errs.Add(FieldSlug, msgSlugTaken)
}
