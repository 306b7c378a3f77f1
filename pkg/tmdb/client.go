package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/EshanAk-dev/Filmex/internal/model"
	"github.com/EshanAk-dev/Filmex/pkg/apperr"
	"github.com/EshanAk-dev/Filmex/pkg/requestctx"
)

const (
	DefaultBaseURL = "https://api.themoviedb.org/3"

	// ImageBaseURL is the prefix for poster/backdrop paths returned by the API.
	ImageBaseURL = "https://image.tmdb.org/t/p/w500"
)

// Catalog is the read surface over the movie metadata service. Implemented
// by Client and by CachedCatalog.
type Catalog interface {
	SearchMovies(ctx context.Context, query string, page int) ([]model.Movie, error)
	DiscoverMovies(ctx context.Context, page int) ([]model.Movie, error)
	MoviesByGenre(ctx context.Context, genreID int64, page int) ([]model.Movie, error)
	MovieDetails(ctx context.Context, movieID int64) (model.MovieDetails, error)
	Genres(ctx context.Context) ([]model.Genre, error)
}

// Client is a thin request/response wrapper over the TMDB v3 API. No retry,
// no caching, no pagination bookkeeping lives here; that is layered on top.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func New(token string) *Client {
	return &Client{
		BaseURL: DefaultBaseURL,
		Token:   token,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

type listResp struct {
	Page    int           `json:"page"`
	Results []model.Movie `json:"results"`
}

type genresResp struct {
	Genres []model.Genre `json:"genres"`
}

// SearchMovies queries /search/movie for the given text, 1-based page.
func (c *Client) SearchMovies(ctx context.Context, query string, page int) ([]model.Movie, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("page", strconv.Itoa(pageOrFirst(page)))
	var out listResp
	if err := c.get(ctx, "/search/movie", q, &out, "failed to fetch movies"); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// DiscoverMovies returns the popularity-ordered discover feed.
func (c *Client) DiscoverMovies(ctx context.Context, page int) ([]model.Movie, error) {
	q := url.Values{}
	q.Set("sort_by", "popularity.desc")
	q.Set("page", strconv.Itoa(pageOrFirst(page)))
	var out listResp
	if err := c.get(ctx, "/discover/movie", q, &out, "failed to fetch movies"); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// MoviesByGenre returns the discover feed filtered to one genre.
func (c *Client) MoviesByGenre(ctx context.Context, genreID int64, page int) ([]model.Movie, error) {
	q := url.Values{}
	q.Set("with_genres", strconv.FormatInt(genreID, 10))
	q.Set("page", strconv.Itoa(pageOrFirst(page)))
	var out listResp
	if err := c.get(ctx, "/discover/movie", q, &out, "failed to fetch movies by genre"); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// MovieDetails fetches the full record for one movie.
func (c *Client) MovieDetails(ctx context.Context, movieID int64) (model.MovieDetails, error) {
	var out model.MovieDetails
	path := fmt.Sprintf("/movie/%d", movieID)
	if err := c.get(ctx, path, nil, &out, "failed to fetch movie details"); err != nil {
		return model.MovieDetails{}, err
	}
	return out, nil
}

// Genres fetches the flat genre set.
func (c *Client) Genres(ctx context.Context) ([]model.Genre, error) {
	var out genresResp
	if err := c.get(ctx, "/genre/movie/list", nil, &out, "failed to fetch genres"); err != nil {
		return nil, err
	}
	return out.Genres, nil
}

// get issues one bearer-authenticated request and decodes the body into out.
// Any transport error or non-2xx status becomes a network_failure carrying
// opMsg, the fixed message naming the failed operation.
func (c *Client) get(ctx context.Context, path string, q url.Values, out any, opMsg string) error {
	u, err := url.Parse(c.BaseURL + path)
	if err != nil {
		return apperr.NetworkFailure(opMsg, err)
	}
	if q != nil {
		u.RawQuery = q.Encode()
	}
	ctx, cid := requestctx.Ensure(ctx)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return apperr.NetworkFailure(opMsg, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("X-Correlation-Id", cid)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return apperr.NetworkFailure(opMsg, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apperr.NetworkFailure(opMsg, fmt.Errorf("tmdb status %d", resp.StatusCode))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperr.NetworkFailure(opMsg, err)
	}
	return nil
}

func pageOrFirst(page int) int {
	if page < 1 {
		return 1
	}
	return page
}
