// Package forms binds and validates the html forms of yacook.
//
// Values are trimmed before validation (passwords excepted). Validation
// results are field name to messages maps that templates render next to the
// inputs, keyed by the html input name.
package forms

import (
	"errors"
	"fmt"
	"mime/multipart"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NonField is the key of errors not bound to a single input.
const NonField = "__all__"

// Request is the part of *fiber.Ctx the forms read from.
type Request interface {
	FormValue(key string, defaultValue ...string) string
	FormFile(key string) (*multipart.FileHeader, error)
}

// Errors maps an input name to its messages.
type Errors map[string][]string

// Add appends msg to field.
func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// Has reports whether field has errors.
func (e Errors) Has(field string) bool {
	return len(e[field]) > 0
}

// First returns the first message of field or "".
func (e Errors) First(field string) string {
	if msgs := e[field]; len(msgs) > 0 {
		return msgs[0]
	}

	return ""
}

// Valid reports whether there are no errors at all.
func (e Errors) Valid() bool {
	return len(e) == 0
}

var (
	usernameRe = regexp.MustCompile(`^[\p{L}\p{N}.@+\-_]+$`)
	slugRe     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

	validate = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("form"), ",")

		return name
	})

	mustRegister(v, "username", func(fl validator.FieldLevel) bool {
		return usernameRe.MatchString(fl.Field().String())
	})
	mustRegister(v, "slug", func(fl validator.FieldLevel) bool {
		return slugRe.MatchString(fl.Field().String())
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// Struct validates s and converts the failures to Errors.
func Struct(s any) Errors {
	errs := Errors{}

	err := validate.Struct(s)
	if err == nil {
		return errs
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		errs.Add(NonField, err.Error())

		return errs
	}

	for _, fe := range fieldErrs {
		errs.Add(fe.Field(), message(fe))
	}

	return errs
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Обязательное поле."
	case "max":
		return "Убедитесь, что это значение содержит не более " + fe.Param() + " символов."
	case "min":
		return "Убедитесь, что это значение содержит не менее " + fe.Param() + " символов."
	case "email":
		return "Введите правильный адрес электронной почты."
	case "eqfield":
		return "Введенные пароли не совпадают."
	case "username":
		return "Введите правильное имя пользователя. Оно может содержать только буквы, цифры и знаки @/./+/-/_."
	case "slug":
		return "Значение должно состоять только из латинских букв, цифр, знаков подчеркивания или дефиса."
	default:
		return "Введите правильное значение."
	}
}

func trimmed(r Request, key string) string {
	return strings.TrimSpace(r.FormValue(key))
}
