package content

import (
	"context"
	"encoding/json"
	"time"

	"motoschool/clients/schoolapi"
	"motoschool/models"
	"motoschool/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	keyMenu     = "content:menu"
	keyCourses  = "content:courses"
	keySettings = "content:settings"
	keyPage     = "content:page:"
)

// DefaultContentService implements Service with a Redis read-through cache.
// A cold or broken cache degrades to direct upstream calls, never to a
// crash.
type DefaultContentService struct {
	Cache *redis.Client
	API   schoolapi.Client
	TTL   time.Duration
}

func (s *DefaultContentService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return 15 * time.Minute
}

// cached reads key into out, or on a miss calls fetch and caches the result.
func (s *DefaultContentService) cached(ctx context.Context, key string, out interface{}, fetch func() (interface{}, error)) error {
	if s.Cache != nil {
		data, err := s.Cache.Get(ctx, key).Result()
		if err == nil {
			if jsonErr := json.Unmarshal([]byte(data), out); jsonErr == nil {
				return nil
			}
		} else if err != redis.Nil {
			utils.GetLogger().Warn("content cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	fresh, err := fetch()
	if err != nil {
		return err
	}

	data, err := json.Marshal(fresh)
	if err != nil {
		return err
	}
	if s.Cache != nil {
		if cacheErr := s.Cache.Set(ctx, key, data, s.ttl()).Err(); cacheErr != nil {
			utils.GetLogger().Warn("content cache write failed", zap.String("key", key), zap.Error(cacheErr))
		}
	}
	return json.Unmarshal(data, out)
}

// Page returns one CMS page. A missing slug surfaces schoolapi.ErrNotFound
// so the handler renders the not-found view.
func (s *DefaultContentService) Page(ctx context.Context, slug string) (*models.Page, error) {
	var page models.Page
	err := s.cached(ctx, keyPage+slug, &page, func() (interface{}, error) {
		return s.API.Page(ctx, slug)
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// Menu returns the site navigation tree.
func (s *DefaultContentService) Menu(ctx context.Context) ([]models.MenuItem, error) {
	var menu []models.MenuItem
	if err := s.cached(ctx, keyMenu, &menu, func() (interface{}, error) {
		return s.API.Menu(ctx)
	}); err != nil {
		return nil, err
	}
	return menu, nil
}

// Courses returns the bookable course list.
func (s *DefaultContentService) Courses(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	if err := s.cached(ctx, keyCourses, &courses, func() (interface{}, error) {
		return s.API.Courses(ctx)
	}); err != nil {
		return nil, err
	}
	return courses, nil
}

// Settings returns checkout-wide parameters such as the VAT rate.
func (s *DefaultContentService) Settings(ctx context.Context) (models.BookingSettings, error) {
	var settings models.BookingSettings
	if err := s.cached(ctx, keySettings, &settings, func() (interface{}, error) {
		return s.API.Settings(ctx)
	}); err != nil {
		return models.BookingSettings{}, err
	}
	return settings, nil
}

// WarmCaches refreshes the settings, course list and menu from upstream.
// Individual failures are logged and skipped; a partially warm cache beats
// no cache.
func (s *DefaultContentService) WarmCaches(ctx context.Context) error {
	logger := utils.GetLogger()

	warm := func(key string, fetch func() (interface{}, error)) {
		fresh, err := fetch()
		if err != nil {
			logger.Warn("cache warm fetch failed", zap.String("key", key), zap.Error(err))
			return
		}
		data, err := json.Marshal(fresh)
		if err != nil {
			logger.Warn("cache warm marshal failed", zap.String("key", key), zap.Error(err))
			return
		}
		if err := s.Cache.Set(ctx, key, data, s.ttl()).Err(); err != nil {
			logger.Warn("cache warm write failed", zap.String("key", key), zap.Error(err))
		}
	}

	warm(keySettings, func() (interface{}, error) { return s.API.Settings(ctx) })
	warm(keyCourses, func() (interface{}, error) { return s.API.Courses(ctx) })
	warm(keyMenu, func() (interface{}, error) { return s.API.Menu(ctx) })
	return nil
}
