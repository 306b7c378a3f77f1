// Package trending tracks which catalog searches land, per search term, in
// a backend metrics collection. The home screen's trending rail is the top
// of this collection by hit count.
package trending

import (
	"context"
	"encoding/json"

	"github.com/rs/xid"

	"github.com/EshanAk-dev/Filmex/internal/model"
	"github.com/EshanAk-dev/Filmex/pkg/apperr"
	"github.com/EshanAk-dev/Filmex/pkg/appwrite"
)

// DefaultTop is how many trending entries the home screen shows.
const DefaultTop = 5

type documentsAPI interface {
	ListDocuments(ctx context.Context, databaseID, collectionID string, queries []string) (appwrite.DocumentList, error)
	CreateDocument(ctx context.Context, databaseID, collectionID, documentID string, data any) (json.RawMessage, error)
	UpdateDocument(ctx context.Context, databaseID, collectionID, documentID string, data any) (json.RawMessage, error)
}

type Service struct {
	db           documentsAPI
	databaseID   string
	collectionID string
	imageBase    string
}

func NewService(db *appwrite.Databases, databaseID, collectionID, imageBase string) *Service {
	return &Service{db: db, databaseID: databaseID, collectionID: collectionID, imageBase: imageBase}
}

// RecordSearch upserts the metrics document for term: an existing entry has
// its count incremented, a new term starts at one with the top result's
// title and poster.
func (s *Service) RecordSearch(ctx context.Context, term string, top model.Movie) error {
	res, err := s.db.ListDocuments(ctx, s.databaseID, s.collectionID, []string{
		appwrite.QueryEqual("searchTerm", term),
	})
	if err != nil {
		return err
	}
	if len(res.Documents) > 0 {
		var existing model.TrendingMovie
		if err := json.Unmarshal(res.Documents[0], &existing); err != nil {
			return apperr.NetworkFailure("Failed to decode search metric", err)
		}
		_, err = s.db.UpdateDocument(ctx, s.databaseID, s.collectionID, existing.DocumentID,
			map[string]any{"count": existing.Count + 1})
		return err
	}

	poster := ""
	if top.PosterPath != nil {
		poster = s.imageBase + *top.PosterPath
	}
	_, err = s.db.CreateDocument(ctx, s.databaseID, s.collectionID, xid.New().String(), map[string]any{
		"searchTerm": term,
		"movie_id":   top.ID,
		"title":      top.Title,
		"poster_url": poster,
		"count":      1,
	})
	return err
}

// Top returns the most-searched entries, highest count first.
func (s *Service) Top(ctx context.Context, limit int) ([]model.TrendingMovie, error) {
	if limit <= 0 {
		limit = DefaultTop
	}
	res, err := s.db.ListDocuments(ctx, s.databaseID, s.collectionID, []string{
		appwrite.QueryOrderDesc("count"),
		appwrite.QueryLimit(limit),
	})
	if err != nil {
		return nil, err
	}
	out := make([]model.TrendingMovie, 0, len(res.Documents))
	for _, raw := range res.Documents {
		var tm model.TrendingMovie
		if err := json.Unmarshal(raw, &tm); err != nil {
			return nil, apperr.NetworkFailure("Failed to decode search metric", err)
		}
		out = append(out, tm)
	}
	return out, nil
}
