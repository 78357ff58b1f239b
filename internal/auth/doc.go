// Package auth authenticates local accounts.
//
// Passwords are stored as argon2id hashes (see models.User). LocalProvider
// looks a user up by username, refuses disabled accounts and verifies the
// password. It also creates accounts for the signup page and the
// createsuperuser command.
//
// Example usage:
//
//	p := auth.NewLocalProvider(db)
//	user, err := p.Authenticate(ctx, "alice", "secret")
//	if errors.Is(err, auth.ErrInvalidCredentials) {
//	    // re-render the login form
//	}
package auth
