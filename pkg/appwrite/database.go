package appwrite

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Databases exposes document CRUD in a fixed database. Document identifiers
// are assigned at create time.
type Databases struct {
	c *Client
}

func NewDatabases(c *Client) *Databases { return &Databases{c: c} }

// DocumentList is a page of documents. Each document is raw JSON with the
// collection's attributes at the top level next to $id and friends, so
// callers unmarshal straight into their own types.
type DocumentList struct {
	Total     int64             `json:"total"`
	Documents []json.RawMessage `json:"documents"`
}

func documentsPath(databaseID, collectionID string) string {
	return fmt.Sprintf("/databases/%s/collections/%s/documents", databaseID, collectionID)
}

// ListDocuments returns documents matching the given queries (see query.go).
func (d *Databases) ListDocuments(ctx context.Context, databaseID, collectionID string, queries []string) (DocumentList, error) {
	q := url.Values{}
	for _, s := range queries {
		q.Add("queries[]", s)
	}
	var out DocumentList
	err := d.c.call(ctx, http.MethodGet, documentsPath(databaseID, collectionID), q, nil, &out, "Failed to list documents")
	if err != nil {
		return DocumentList{}, err
	}
	return out, nil
}

// CreateDocument inserts a document under the given identifier.
func (d *Databases) CreateDocument(ctx context.Context, databaseID, collectionID, documentID string, data any) (json.RawMessage, error) {
	body := map[string]any{"documentId": documentID, "data": data}
	var out json.RawMessage
	err := d.c.call(ctx, http.MethodPost, documentsPath(databaseID, collectionID), nil, body, &out, "Failed to create document")
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateDocument patches the attributes of an existing document.
func (d *Databases) UpdateDocument(ctx context.Context, databaseID, collectionID, documentID string, data any) (json.RawMessage, error) {
	body := map[string]any{"data": data}
	path := documentsPath(databaseID, collectionID) + "/" + documentID
	var out json.RawMessage
	err := d.c.call(ctx, http.MethodPatch, path, nil, body, &out, "Failed to update document")
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteDocument removes a document by identifier.
func (d *Databases) DeleteDocument(ctx context.Context, databaseID, collectionID, documentID string) error {
	path := documentsPath(databaseID, collectionID) + "/" + documentID
	return d.c.call(ctx, http.MethodDelete, path, nil, nil, nil, "Failed to delete document")
}
