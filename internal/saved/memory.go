package saved

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/xid"

	"github.com/EshanAk-dev/Filmex/internal/model"
	"github.com/EshanAk-dev/Filmex/pkg/apperr"
)

// MemoryStore implements Store in memory with the same semantics as the
// backend collection. Used in tests and for running the CLI without a
// configured backend.
type MemoryStore struct {
	mu      sync.Mutex
	entries []model.SavedMovie
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

func (s *MemoryStore) Create(_ context.Context, userID string, m model.Movie) (model.SavedMovie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.UserID == userID && e.MovieID == m.ID {
			return model.SavedMovie{}, apperr.AlreadySaved("movie is already saved")
		}
	}
	poster := ""
	if m.PosterPath != nil {
		poster = *m.PosterPath
	}
	entry := model.SavedMovie{
		DocumentID:  xid.New().String(),
		UserID:      userID,
		MovieID:     m.ID,
		Title:       m.Title,
		PosterPath:  poster,
		ReleaseDate: m.ReleaseDate,
		VoteAverage: m.VoteAverage,
		Overview:    m.Overview,
		SavedAt:     s.now().UTC(),
	}
	s.entries = append(s.entries, entry)
	return entry, nil
}

func (s *MemoryStore) DeleteByMovie(_ context.Context, userID string, movieID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.entries {
		if e.UserID == userID && e.MovieID == movieID {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *MemoryStore) ListByUser(_ context.Context, userID string) ([]model.SavedMovie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.SavedMovie
	for _, e := range s.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SavedAt.After(out[j].SavedAt) })
	return out, nil
}
