package forms

// Input names of the signup and login forms.
const (
	FieldUsername  = "username"
	FieldEmail     = "email"
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldPassword  = "password"
	FieldPassword1 = "password1"
	FieldPassword2 = "password2"
	FieldNext      = "next"
)

// MsgUsernameTaken is the error of a username already in use.
const MsgUsernameTaken = "Пользователь с таким именем уже существует."

// Signup is the registration form.
type Signup struct {
	Username  string `form:"username" validate:"required,max=150,username"`
	Email     string `form:"email" validate:"omitempty,email,max=254"`
	FirstName string `form:"first_name" validate:"max=150"`
	LastName  string `form:"last_name" validate:"max=150"`
	Password1 string `form:"password1" validate:"required,min=8"`
	Password2 string `form:"password2" validate:"required,eqfield=Password1"`
}

// BindSignup reads the signup form from r. Passwords are not trimmed.
func BindSignup(r Request) *Signup {
	return &Signup{
		Username:  trimmed(r, FieldUsername),
		Email:     trimmed(r, FieldEmail),
		FirstName: trimmed(r, FieldFirstName),
		LastName:  trimmed(r, FieldLastName),
		Password1: r.FormValue(FieldPassword1),
		Password2: r.FormValue(FieldPassword2),
	}
}

// Validate checks the form. taken reports whether a username is in use.
func (f *Signup) Validate(taken func(username string) (bool, error)) (Errors, error) {
	errs := Struct(f)

	if errs.Has(FieldUsername) {
		return errs, nil
	}

	used, err := taken(f.Username)
	if err != nil {
		return nil, err
	}

	if used {
		errs.Add(FieldUsername, MsgUsernameTaken)
	}

	return errs, nil
}

// Login is the login form.
type Login struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
	Next     string `form:"next"`
}

// BindLogin reads the login form from r.
func BindLogin(r Request) *Login {
	return &Login{
		Username: trimmed(r, FieldUsername),
		Password: r.FormValue(FieldPassword),
		Next:     trimmed(r, FieldNext),
	}
}

// Validate checks the form.
func (f *Login) Validate() Errors {
	return Struct(f)
}
