package group

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/yacook/yacook/internal/cache"
	"github.com/yacook/yacook/internal/db/models"
)

// refsKey is the cache key of the sidebar group list.
const refsKey = "groups:refs"

// Ref is the title and slug of a group, enough to link to it.
type Ref struct {
	Title string
	Slug  string
}

// Refs returns the title and slug of every group, served from c when cached.
// Cache failures are logged and the database is used instead.
func Refs(ctx context.Context, db *gorm.DB, c cache.Cache, ttl time.Duration) ([]Ref, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var refs []Ref

	if c != nil {
		ok, err := cache.GetJSON(ctx, c, refsKey, &refs)
		if err != nil {
			log.Warn().Err(err).Msg("group refs cache read failed")
		}

		if ok {
			return refs, nil
		}
	}

	if err := db.WithContext(ctx).Model(&models.Group{}).Select("title", "slug").
		Order("title, id").Scan(&refs).Error; err != nil {
		return nil, err //nolint:wrapcheck
	}

	if c != nil {
		if err := cache.SetJSON(ctx, c, refsKey, refs, ttl); err != nil {
			log.Warn().Err(err).Msg("group refs cache write failed")
		}
	}

	return refs, nil
}

// InvalidateRefs drops the cached sidebar list. Call after any group mutation.
func InvalidateRefs(ctx context.Context, c cache.Cache) {
	if c == nil {
		return
	}

	if err := c.Delete(ctx, refsKey); err != nil {
		log.Warn().Err(err).Msg("group refs cache invalidation failed")
	}
}
