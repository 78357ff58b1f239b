// Package login provides HTTP handlers and helpers for user authentication.
//
// This file defines the messages shown by the login form.
package login

const (
	// MsgInvalidCredentials is shown when the username is unknown or the password
	// does not match.
	MsgInvalidCredentials = "Пожалуйста, введите правильные имя пользователя и пароль. " +
		"Оба поля могут быть чувствительны к регистру."

	// MsgAccountDisabled is shown for a correct password of a disabled account.
	MsgAccountDisabled = "Этот аккаунт неактивен."

	// MsgInternalServerError is shown for unexpected failures during the login
	// process.
	MsgInternalServerError = "Внутренняя ошибка сервера, попробуйте позже."
)
