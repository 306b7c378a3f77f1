package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds runtime configuration loaded from env.
type Config struct {
	TMDBToken    string
	TMDBBaseURL  string
	CatalogTTL   time.Duration
	CatalogLRU   int
	QuietPeriod  time.Duration
	MaxListPages int

	AppwriteEndpoint    string
	AppwriteProject     string
	AppwriteDatabaseID  string
	SavedCollectionID   string
	MetricsCollectionID string

	ValkeyAddr     string
	ValkeyPassword string

	// Optional demo credentials so authenticated CLI commands can sign in.
	AccountEmail    string
	AccountPassword string

	Env string
}

func FromEnv() Config {
	return Config{
		TMDBToken:    os.Getenv("TMDB_API_TOKEN"),
		TMDBBaseURL:  getEnv("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
		CatalogTTL:   getDuration("CATALOG_CACHE_TTL", 30*time.Minute),
		CatalogLRU:   getInt("CATALOG_CACHE_SIZE", 512),
		QuietPeriod:  getDuration("SEARCH_QUIET_PERIOD", time.Second),
		MaxListPages: getInt("MAX_LIST_PAGES", 10),

		AppwriteEndpoint:    getEnv("APPWRITE_ENDPOINT", "https://cloud.appwrite.io/v1"),
		AppwriteProject:     os.Getenv("APPWRITE_PROJECT_ID"),
		AppwriteDatabaseID:  os.Getenv("APPWRITE_DATABASE_ID"),
		SavedCollectionID:   os.Getenv("APPWRITE_SAVED_MOVIES_COLLECTION_ID"),
		MetricsCollectionID: os.Getenv("APPWRITE_METRICS_COLLECTION_ID"),

		ValkeyAddr:     os.Getenv("VALKEY_ADDR"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		AccountEmail:    os.Getenv("FILMEX_EMAIL"),
		AccountPassword: os.Getenv("FILMEX_PASSWORD"),

		Env: getEnv("ENV", "development"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
