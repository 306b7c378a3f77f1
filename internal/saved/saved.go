// Package saved keeps the per-user saved-movie collection and its local
// cache. The cache is the only state shared across screens; it is mutated
// through Save/Remove/Refresh only and follows the session lifecycle.
package saved

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/EshanAk-dev/Filmex/internal/model"
	"github.com/EshanAk-dev/Filmex/internal/session"
	"github.com/EshanAk-dev/Filmex/pkg/apperr"
)

// Collection is the local reconciliation layer over a Store. Reads
// (IsSaved, Movies) never touch the network and are eventually consistent
// with the remote collection by design.
//
// Concurrent Save and Remove for the same movie are not serialized here;
// callers serialize mutations per movie.
type Collection struct {
	store Store

	mu     sync.RWMutex
	userID string
	movies []model.SavedMovie
}

func NewCollection(store Store) *Collection {
	return &Collection{store: store}
}

// Bind subscribes the collection to the session lifecycle: populate on
// login, clear locally on logout. Remote documents persist across sessions.
func (c *Collection) Bind(m *session.Manager) {
	m.OnLogin(func(ctx context.Context, u model.User) {
		c.mu.Lock()
		c.userID = u.ID
		c.mu.Unlock()
		if err := c.Refresh(ctx); err != nil {
			log.Warn().Err(err).Msg("saved movies refresh after login failed")
		}
	})
	m.OnLogout(func() {
		c.mu.Lock()
		c.userID = ""
		c.movies = nil
		c.mu.Unlock()
	})
}

// Save persists the movie for the signed-in user, then re-fetches the full
// list so the cache carries the server-assigned document id and timestamp.
// Fails with not_authenticated when nobody is signed in and already_saved on
// a duplicate.
func (c *Collection) Save(ctx context.Context, m model.Movie) error {
	userID, ok := c.currentUser()
	if !ok {
		return apperr.NotAuthenticated("sign in to save movies")
	}
	if _, err := c.store.Create(ctx, userID, m); err != nil {
		return err
	}
	return c.Refresh(ctx)
}

// Remove deletes the entry remotely and patches the cache locally, without a
// re-fetch. Removing a movie that is not saved succeeds as a no-op.
func (c *Collection) Remove(ctx context.Context, movieID int64) error {
	userID, ok := c.currentUser()
	if !ok {
		return apperr.NotAuthenticated("sign in to remove saved movies")
	}
	if err := c.store.DeleteByMovie(ctx, userID, movieID); err != nil {
		return err
	}
	c.mu.Lock()
	kept := c.movies[:0]
	for _, e := range c.movies {
		if e.MovieID != movieID {
			kept = append(kept, e)
		}
	}
	c.movies = kept
	c.mu.Unlock()
	return nil
}

// IsSaved is a pure local membership test. It never makes a remote call.
func (c *Collection) IsSaved(movieID int64) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, e := range c.movies {
		if e.MovieID == movieID {
			return true
		}
	}
	return false
}

// Refresh replaces the cache with the remote list, save time descending.
func (c *Collection) Refresh(ctx context.Context) error {
	userID, ok := c.currentUser()
	if !ok {
		return apperr.NotAuthenticated("sign in to load saved movies")
	}
	movies, err := c.store.ListByUser(ctx, userID)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.movies = movies
	c.mu.Unlock()
	return nil
}

// Movies returns a snapshot of the cached list.
func (c *Collection) Movies() []model.SavedMovie {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.SavedMovie, len(c.movies))
	copy(out, c.movies)
	return out
}

func (c *Collection) currentUser() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.userID, c.userID != ""
}
