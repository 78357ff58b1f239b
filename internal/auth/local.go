package auth

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yacook/yacook/internal/db/controller/user"
	"github.com/yacook/yacook/internal/db/models"
)

// LocalProvider handles local database authentication.
type LocalProvider struct {
	db *gorm.DB
}

// NewLocalProvider creates a new local authentication provider.
func NewLocalProvider(db *gorm.DB) *LocalProvider {
	return &LocalProvider{
		db: db,
	}
}

// Authenticate authenticates a user against the local database.
func (p *LocalProvider) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	u, err := user.GetByUsername(p.db.WithContext(ctx), username)
	if errors.Is(err, user.ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	if !u.VerifyPassword(password) {
		return nil, ErrInvalidCredentials
	}

	// checked after the password so a disabled account is not revealed to a guesser
	if !u.Active {
		return nil, ErrUserAccountDisabled
	}

	return u, nil
}

// CreateUser creates a new active local user.
func (p *LocalProvider) CreateUser(
	ctx context.Context,
	username, email, password string,
	staff bool,
) (*models.User, error) {
	if password == "" {
		return nil, ErrPasswordEmpty
	}

	u := &models.User{
		Username: username,
		Email:    email,
		Active:   true,
		IsStaff:  staff,
	}

	if err := user.Create(p.db.WithContext(ctx), u, password); err != nil {
		return nil, err //nolint:wrapcheck
	}

	return u, nil
}

// SetPassword replaces the password of username.
func (p *LocalProvider) SetPassword(ctx context.Context, username, password string) error {
	if password == "" {
		return ErrPasswordEmpty
	}

	db := p.db.WithContext(ctx)

	u, err := user.GetByUsername(db, username)
	if err != nil {
		return err //nolint:wrapcheck
	}

	if err := u.SetPassword(password); err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return db.Model(u).Update("password", u.Password).Error
}

// SetStaff grants or revokes access to the admin pages.
func (p *LocalProvider) SetStaff(ctx context.Context, username string, staff bool) error {
	db := p.db.WithContext(ctx)

	u, err := user.GetByUsername(db, username)
	if err != nil {
		return err //nolint:wrapcheck
	}

	return db.Model(u).Update("is_staff", staff).Error
}
