package tmdb

import (
	"context"
	"encoding/json"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/EshanAk-dev/Filmex/internal/model"
	"github.com/EshanAk-dev/Filmex/pkg/cache"
)

const (
	genresKey     = "tmdb:genres"
	discoverP1Key = "tmdb:discover:p1"
)

// CachedCatalog caches the genre set and the first discover page, the two
// responses every session requests on startup. Everything else passes
// through. Concurrent misses for the same key are collapsed.
type CachedCatalog struct {
	Catalog
	cache cache.Cache
	ttl   time.Duration
	group singleflight.Group
}

func NewCached(inner Catalog, c cache.Cache, ttl time.Duration) *CachedCatalog {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &CachedCatalog{Catalog: inner, cache: c, ttl: ttl}
}

func (c *CachedCatalog) Genres(ctx context.Context) ([]model.Genre, error) {
	var out []model.Genre
	if err := c.cached(ctx, genresKey, &out, func() (any, error) {
		return c.Catalog.Genres(ctx)
	}); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CachedCatalog) DiscoverMovies(ctx context.Context, page int) ([]model.Movie, error) {
	if page > 1 {
		return c.Catalog.DiscoverMovies(ctx, page)
	}
	var out []model.Movie
	if err := c.cached(ctx, discoverP1Key, &out, func() (any, error) {
		return c.Catalog.DiscoverMovies(ctx, 1)
	}); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CachedCatalog) cached(ctx context.Context, key string, out any, load func() (any, error)) error {
	if s, ok := c.cache.Get(ctx, key); ok {
		if err := json.Unmarshal([]byte(s), out); err == nil {
			return nil
		}
		// corrupt entry, drop it and fall through to a live fetch
		_ = c.cache.Delete(ctx, key)
	}
	v, err, _ := c.group.Do(key, func() (any, error) {
		fresh, err := load()
		if err != nil {
			return nil, err
		}
		if b, err := json.Marshal(fresh); err == nil {
			_ = c.cache.Set(ctx, key, string(b), c.ttl)
		}
		return fresh, nil
	})
	if err != nil {
		return err
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}
