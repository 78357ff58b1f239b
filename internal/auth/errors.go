package auth

import "errors"

var (
	// ErrInvalidCredentials is returned when the username is unknown or the password does not match.
	// Both cases share one error so the login page does not reveal which usernames exist.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrUserAccountDisabled is returned when attempting to authenticate a disabled user account.
	ErrUserAccountDisabled = errors.New("user account is disabled")

	// ErrPasswordEmpty is returned when creating an account without password.
	ErrPasswordEmpty = errors.New("password can not be empty")
)
