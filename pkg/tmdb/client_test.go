package tmdb_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/EshanAk-dev/Filmex/pkg/apperr"
	"github.com/EshanAk-dev/Filmex/pkg/tmdb"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *tmdb.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := tmdb.New("test-token")
	c.BaseURL = srv.URL
	return c
}

func TestSearchMoviesRequest(t *testing.T) {
	var gotPath, gotQuery, gotPage, gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("query")
		gotPage = r.URL.Query().Get("page")
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"page":1,"results":[{"id":550,"title":"Fight Club","vote_average":8.4}]}`))
	})

	movies, err := c.SearchMovies(context.Background(), "batman", 1)
	if err != nil {
		t.Fatalf("SearchMovies: %v", err)
	}
	if gotPath != "/search/movie" {
		t.Fatalf("wrong path %q", gotPath)
	}
	if gotQuery != "batman" || gotPage != "1" {
		t.Fatalf("wrong query params query=%q page=%q", gotQuery, gotPage)
	}
	if gotAuth != "Bearer test-token" {
		t.Fatalf("wrong auth header %q", gotAuth)
	}
	if len(movies) != 1 || movies[0].ID != 550 || movies[0].Title != "Fight Club" {
		t.Fatalf("unexpected results %+v", movies)
	}
}

func TestDiscoverMoviesSortsByPopularity(t *testing.T) {
	var gotSort string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotSort = r.URL.Query().Get("sort_by")
		_, _ = w.Write([]byte(`{"results":[]}`))
	})
	if _, err := c.DiscoverMovies(context.Background(), 0); err != nil {
		t.Fatal(err)
	}
	if gotSort != "popularity.desc" {
		t.Fatalf("wrong sort_by %q", gotSort)
	}
}

func TestMoviesByGenreRequest(t *testing.T) {
	var gotPath, gotGenres, gotPage string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotGenres = r.URL.Query().Get("with_genres")
		gotPage = r.URL.Query().Get("page")
		_, _ = w.Write([]byte(`{"results":[{"id":1},{"id":2}]}`))
	})
	movies, err := c.MoviesByGenre(context.Background(), 28, 3)
	if err != nil {
		t.Fatal(err)
	}
	if gotPath != "/discover/movie" || gotGenres != "28" || gotPage != "3" {
		t.Fatalf("wrong request %s with_genres=%q page=%q", gotPath, gotGenres, gotPage)
	}
	if len(movies) != 2 {
		t.Fatalf("unexpected results %+v", movies)
	}
}

func TestMovieDetails(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/550" {
			t.Errorf("wrong path %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"id":550,"title":"Fight Club","runtime":139,"vote_count":25000,"genres":[{"id":18,"name":"Drama"}],"status":"Released"}`))
	})
	d, err := c.MovieDetails(context.Background(), 550)
	if err != nil {
		t.Fatal(err)
	}
	if d.Runtime != 139 || d.Status != "Released" || len(d.Genres) != 1 || d.Genres[0].Name != "Drama" {
		t.Fatalf("unexpected details %+v", d)
	}
}

func TestGenres(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/genre/movie/list" {
			t.Errorf("wrong path %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"genres":[{"id":28,"name":"Action"},{"id":35,"name":"Comedy"}]}`))
	})
	genres, err := c.Genres(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(genres) != 2 || genres[0].Name != "Action" {
		t.Fatalf("unexpected genres %+v", genres)
	}
}

func TestNonOKStatusIsNetworkFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	cases := []struct {
		name string
		call func() error
		msg  string
	}{
		{"search", func() error { _, err := c.SearchMovies(context.Background(), "x", 1); return err }, "failed to fetch movies"},
		{"genre", func() error { _, err := c.MoviesByGenre(context.Background(), 28, 1); return err }, "failed to fetch movies by genre"},
		{"details", func() error { _, err := c.MovieDetails(context.Background(), 1); return err }, "failed to fetch movie details"},
		{"genres", func() error { _, err := c.Genres(context.Background()); return err }, "failed to fetch genres"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.call()
			if err == nil {
				t.Fatal("expected error")
			}
			if !apperr.Is(err, apperr.CodeNetworkFailure) {
				t.Fatalf("expected network_failure, got %v", err)
			}
			var ae *apperr.Error
			if !errors.As(err, &ae) || ae.Message != tc.msg {
				t.Fatalf("expected fixed message %q, got %v", tc.msg, err)
			}
		})
	}
}
