package saved

import (
	"context"

	"github.com/EshanAk-dev/Filmex/internal/model"
)

// Store is the remote saved-collection surface. Create must enforce the
// one-entry-per-(user, movie) invariant with a pre-write existence check and
// fail with apperr.CodeAlreadySaved on a duplicate. DeleteByMovie is
// idempotent: deleting an absent entry succeeds as a no-op. ListByUser
// returns entries ordered by save time descending.
type Store interface {
	Create(ctx context.Context, userID string, m model.Movie) (model.SavedMovie, error)
	DeleteByMovie(ctx context.Context, userID string, movieID int64) error
	ListByUser(ctx context.Context, userID string) ([]model.SavedMovie, error)
}
