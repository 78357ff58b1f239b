package forms

// FieldText is the input name of the comment text.
const FieldText = "text"

// Comment is the add/edit comment form.
type Comment struct {
	Text string `form:"text" validate:"required"`
}

// BindComment reads the comment form from r.
func BindComment(r Request) *Comment {
	return &Comment{Text: trimmed(r, FieldText)}
}

// Validate checks the form.
func (f *Comment) Validate() Errors {
	return Struct(f)
}
