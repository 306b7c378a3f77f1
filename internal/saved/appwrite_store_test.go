package saved_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/EshanAk-dev/Filmex/internal/saved"
	"github.com/EshanAk-dev/Filmex/pkg/apperr"
	"github.com/EshanAk-dev/Filmex/pkg/appwrite"
)

// collectionServer fakes the backend document endpoints for one collection.
type collectionServer struct {
	mu   sync.Mutex
	docs []map[string]any
}

func (s *collectionServer) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	base := "/databases/db1/collections/saved/documents"
	mux.HandleFunc("GET "+base, func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		var queries []struct {
			Method    string `json:"method"`
			Attribute string `json:"attribute"`
			Values    []any  `json:"values"`
		}
		for _, raw := range r.URL.Query()["queries[]"] {
			var q struct {
				Method    string `json:"method"`
				Attribute string `json:"attribute"`
				Values    []any  `json:"values"`
			}
			if err := json.Unmarshal([]byte(raw), &q); err != nil {
				t.Errorf("bad query %q: %v", raw, err)
			}
			queries = append(queries, q)
		}
		var out []map[string]any
		for _, d := range s.docs {
			match := true
			for _, q := range queries {
				if q.Method != "equal" {
					continue
				}
				if fmt.Sprint(d[q.Attribute]) != fmt.Sprint(q.Values[0]) {
					match = false
					break
				}
			}
			if match {
				out = append(out, d)
			}
		}
		resp := map[string]any{"total": len(out), "documents": out}
		_ = json.NewEncoder(w).Encode(resp)
	})
	mux.HandleFunc("POST "+base, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			DocumentID string         `json:"documentId"`
			Data       map[string]any `json:"data"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		doc := body.Data
		doc["$id"] = body.DocumentID
		s.mu.Lock()
		s.docs = append(s.docs, doc)
		s.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(doc)
	})
	mux.HandleFunc("DELETE "+base+"/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		s.mu.Lock()
		for i, d := range s.docs {
			if d["$id"] == id {
				s.docs = append(s.docs[:i], s.docs[i+1:]...)
				break
			}
		}
		s.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	})
	return mux
}

func newAppwriteStore(t *testing.T) (*saved.AppwriteStore, *collectionServer) {
	t.Helper()
	cs := &collectionServer{}
	srv := httptest.NewServer(cs.handler(t))
	t.Cleanup(srv.Close)
	c := appwrite.New(srv.URL, "test-project")
	return saved.NewAppwriteStore(appwrite.NewDatabases(c), "db1", "saved"), cs
}

func TestAppwriteStoreCreateChecksExistence(t *testing.T) {
	store, cs := newAppwriteStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "u1", movie(550, "Fight Club"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.DocumentID == "" || created.MovieID != 550 || created.UserID != "u1" {
		t.Fatalf("unexpected created entry %+v", created)
	}
	if created.SavedAt.IsZero() {
		t.Fatal("savedAt not stamped")
	}

	if _, err := store.Create(ctx, "u1", movie(550, "Fight Club")); !apperr.Is(err, apperr.CodeAlreadySaved) {
		t.Fatalf("expected already_saved, got %v", err)
	}
	if len(cs.docs) != 1 {
		t.Fatalf("duplicate document written: %d", len(cs.docs))
	}

	// same movie under another user is a distinct entry
	if _, err := store.Create(ctx, "u2", movie(550, "Fight Club")); err != nil {
		t.Fatalf("second user create: %v", err)
	}
}

func TestAppwriteStoreDeleteByMovie(t *testing.T) {
	store, cs := newAppwriteStore(t)
	ctx := context.Background()
	if _, err := store.Create(ctx, "u1", movie(550, "Fight Club")); err != nil {
		t.Fatal(err)
	}
	if err := store.DeleteByMovie(ctx, "u1", 550); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(cs.docs) != 0 {
		t.Fatalf("document not deleted: %v", cs.docs)
	}
	// deleting again is a no-op
	if err := store.DeleteByMovie(ctx, "u1", 550); err != nil {
		t.Fatalf("expected idempotent delete, got %v", err)
	}
}

func TestAppwriteStoreListByUser(t *testing.T) {
	store, _ := newAppwriteStore(t)
	ctx := context.Background()
	for i := int64(0); i < 3; i++ {
		if _, err := store.Create(ctx, "u1", movie(100+i, "m")); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := store.Create(ctx, "u2", movie(999, "other")); err != nil {
		t.Fatal(err)
	}
	list, err := store.ListByUser(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 entries for u1, got %d", len(list))
	}
	for _, e := range list {
		if e.UserID != "u1" {
			t.Fatalf("foreign entry leaked: %+v", e)
		}
	}
}
