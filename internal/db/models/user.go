// Package models holds the gorm models of yacook.
package models

import (
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog/log"
)

// User is a local account. Authors, commenters and followers are all users.
type User struct {
	ID uint `gorm:"primaryKey"`
	// Username is the unique login and the profile url segment.
	Username  string `gorm:"uniqueIndex;size:150;not null"`
	Email     string `gorm:"size:254"`
	FirstName string `gorm:"size:150"`
	LastName  string `gorm:"size:150"`
	// Password is the argon2id hash.
	Password string `gorm:"size:255" json:"-"`
	Active   bool   `gorm:"not null;default:true"`
	// IsStaff grants access to /admin.
	IsStaff   bool `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName returns "first last", falling back to the username.
func (u User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.LastName != "":
		return u.LastName
	default:
		return u.Username
	}
}

// HashPassword hashes a plaintext password with the argon2id default parameters.
func HashPassword(password string) (string, error) {
	return argon2id.CreateHash(password, argon2id.DefaultParams) //nolint:wrapcheck
}

// SetPassword hashes and stores password.
func (u *User) SetPassword(password string) error {
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}

	u.Password = hash

	return nil
}

// VerifyPassword reports whether password matches the stored hash.
func (u *User) VerifyPassword(password string) bool {
	if u.Password == "" {
		return false
	}

	match, err := argon2id.ComparePasswordAndHash(password, u.Password)
	if err != nil {
		log.Error().Err(err).Str("username", u.Username).Msg("failed to verify password")

		return false
	}

	return match
}
