package daemon

import (
	"context"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/yacook/yacook/internal/auth"
	"github.com/yacook/yacook/internal/config"
	"github.com/yacook/yacook/internal/db/models"
)

// seed creates the configured staff account while the user table is empty.
func seed(ctx context.Context, cfg *config.Seed, db *gorm.DB) error {
	if cfg.Username == "" {
		return nil
	}

	var count int64
	if err := db.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return err //nolint:wrapcheck
	}

	if count > 0 {
		return nil
	}

	u, err := auth.NewLocalProvider(db).CreateUser(ctx, cfg.Username, cfg.Email, cfg.Password, true)
	if err != nil {
		return err //nolint:wrapcheck
	}

	log.Warn().Str("username", u.Username).Msg("seeded staff account, change its password")

	return nil
}
