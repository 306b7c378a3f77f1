package saved

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/xid"

	"github.com/EshanAk-dev/Filmex/internal/model"
	"github.com/EshanAk-dev/Filmex/pkg/apperr"
	"github.com/EshanAk-dev/Filmex/pkg/appwrite"
)

// documentsAPI is the slice of the document database the store needs.
// Satisfied by appwrite.Databases.
type documentsAPI interface {
	ListDocuments(ctx context.Context, databaseID, collectionID string, queries []string) (appwrite.DocumentList, error)
	CreateDocument(ctx context.Context, databaseID, collectionID, documentID string, data any) (json.RawMessage, error)
	DeleteDocument(ctx context.Context, databaseID, collectionID, documentID string) error
}

// AppwriteStore keeps saved-movie documents in one backend collection,
// filtered by userId/movieId and ordered by savedAt.
type AppwriteStore struct {
	db           documentsAPI
	databaseID   string
	collectionID string
	now          func() time.Time
}

func NewAppwriteStore(db *appwrite.Databases, databaseID, collectionID string) *AppwriteStore {
	return &AppwriteStore{db: db, databaseID: databaseID, collectionID: collectionID, now: time.Now}
}

// savedDoc is the collection's attribute shape. savedAt travels as an ISO
// timestamp string.
type savedDoc struct {
	UserID      string  `json:"userId"`
	MovieID     int64   `json:"movieId"`
	Title       string  `json:"title"`
	PosterPath  string  `json:"posterPath"`
	ReleaseDate string  `json:"releaseDate"`
	VoteAverage float64 `json:"voteAverage"`
	Overview    string  `json:"overview"`
	SavedAt     string  `json:"savedAt"`
}

func (s *AppwriteStore) Create(ctx context.Context, userID string, m model.Movie) (model.SavedMovie, error) {
	existing, err := s.db.ListDocuments(ctx, s.databaseID, s.collectionID, []string{
		appwrite.QueryEqual("userId", userID),
		appwrite.QueryEqual("movieId", m.ID),
	})
	if err != nil {
		return model.SavedMovie{}, err
	}
	if existing.Total > 0 || len(existing.Documents) > 0 {
		return model.SavedMovie{}, apperr.AlreadySaved("movie is already saved")
	}

	poster := ""
	if m.PosterPath != nil {
		poster = *m.PosterPath
	}
	doc := savedDoc{
		UserID:      userID,
		MovieID:     m.ID,
		Title:       m.Title,
		PosterPath:  poster,
		ReleaseDate: m.ReleaseDate,
		VoteAverage: m.VoteAverage,
		Overview:    m.Overview,
		SavedAt:     s.now().UTC().Format(time.RFC3339),
	}
	raw, err := s.db.CreateDocument(ctx, s.databaseID, s.collectionID, xid.New().String(), doc)
	if err != nil {
		return model.SavedMovie{}, err
	}
	var created model.SavedMovie
	if err := json.Unmarshal(raw, &created); err != nil {
		return model.SavedMovie{}, apperr.NetworkFailure("Failed to decode saved movie", err)
	}
	return created, nil
}

func (s *AppwriteStore) DeleteByMovie(ctx context.Context, userID string, movieID int64) error {
	res, err := s.db.ListDocuments(ctx, s.databaseID, s.collectionID, []string{
		appwrite.QueryEqual("userId", userID),
		appwrite.QueryEqual("movieId", movieID),
	})
	if err != nil {
		return err
	}
	if len(res.Documents) == 0 {
		return nil
	}
	// at most one should exist per the uniqueness invariant
	var first model.SavedMovie
	if err := json.Unmarshal(res.Documents[0], &first); err != nil {
		return apperr.NetworkFailure("Failed to decode saved movie", err)
	}
	return s.db.DeleteDocument(ctx, s.databaseID, s.collectionID, first.DocumentID)
}

func (s *AppwriteStore) ListByUser(ctx context.Context, userID string) ([]model.SavedMovie, error) {
	res, err := s.db.ListDocuments(ctx, s.databaseID, s.collectionID, []string{
		appwrite.QueryEqual("userId", userID),
		appwrite.QueryOrderDesc("savedAt"),
	})
	if err != nil {
		return nil, err
	}
	out := make([]model.SavedMovie, 0, len(res.Documents))
	for _, raw := range res.Documents {
		var sm model.SavedMovie
		if err := json.Unmarshal(raw, &sm); err != nil {
			return nil, apperr.NetworkFailure("Failed to decode saved movie", err)
		}
		out = append(out, sm)
	}
	return out, nil
}
