package model

import "time"

// Movie is a catalog summary row as returned by TMDB list endpoints.
// Immutable once fetched.
type Movie struct {
	ID               int64   `json:"id"` // TMDb id
	Title            string  `json:"title"`
	PosterPath       *string `json:"poster_path,omitempty"`
	ReleaseDate      string  `json:"release_date,omitempty"`
	VoteAverage      float64 `json:"vote_average"`
	OriginalLanguage string  `json:"original_language,omitempty"`
	Overview         string  `json:"overview,omitempty"`
}

type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ProductionCompany struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// MovieDetails is the full record from GET /movie/{id}. Fetched per movie,
// never cached across sessions.
type MovieDetails struct {
	Movie
	Runtime             int64               `json:"runtime"`
	Budget              int64               `json:"budget"`
	Revenue             int64               `json:"revenue"`
	Status              string              `json:"status,omitempty"`
	Tagline             string              `json:"tagline,omitempty"`
	VoteCount           int64               `json:"vote_count"`
	Genres              []Genre             `json:"genres,omitempty"`
	ProductionCompanies []ProductionCompany `json:"production_companies,omitempty"`
}

// SavedMovie is one saved-collection document. DocumentID stays empty until
// the backend has persisted the entry. At most one exists per
// (UserID, MovieID) pair.
type SavedMovie struct {
	DocumentID  string    `json:"$id,omitempty"`
	UserID      string    `json:"userId"`
	MovieID     int64     `json:"movieId"`
	Title       string    `json:"title"`
	PosterPath  string    `json:"posterPath"`
	ReleaseDate string    `json:"releaseDate"`
	VoteAverage float64   `json:"voteAverage"`
	Overview    string    `json:"overview"`
	SavedAt     time.Time `json:"savedAt"`
}

// TrendingMovie aggregates search hits for one term. Backed by the metrics
// collection, incremented on every successful search.
type TrendingMovie struct {
	DocumentID string `json:"$id,omitempty"`
	SearchTerm string `json:"searchTerm"`
	MovieID    int64  `json:"movie_id"`
	Title      string `json:"title"`
	PosterURL  string `json:"poster_url"`
	Count      int64  `json:"count"`
}

// User mirrors the identity service account record.
type User struct {
	ID            string `json:"$id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"emailVerification"`
}
