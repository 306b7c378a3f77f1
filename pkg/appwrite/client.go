// Package appwrite is a minimal REST client for the slice of the Appwrite
// API this application uses: accounts, email sessions, and database
// documents. Session state lives in the HTTP client's cookie jar, the same
// way the hosted SDKs keep it.
package appwrite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/EshanAk-dev/Filmex/pkg/apperr"
	"github.com/EshanAk-dev/Filmex/pkg/requestctx"
)

const DefaultEndpoint = "https://cloud.appwrite.io/v1"

type Client struct {
	Endpoint string
	Project  string
	HTTP     *http.Client
}

func New(endpoint, project string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	jar, _ := cookiejar.New(nil)
	return &Client{
		Endpoint: strings.TrimRight(endpoint, "/"),
		Project:  project,
		HTTP:     &http.Client{Timeout: 15 * time.Second, Jar: jar},
	}
}

// apiError is the error envelope Appwrite returns on non-2xx responses.
type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    int    `json:"code"`
}

// call issues one request. body (when non-nil) is JSON-encoded; out (when
// non-nil) receives the decoded response. Failures keep the backend's own
// message when one is present, with fallback as the generic message.
func (c *Client) call(ctx context.Context, method, path string, query url.Values, body, out any, fallback string) error {
	u := c.Endpoint + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return apperr.NetworkFailure(fallback, err)
		}
		rd = bytes.NewReader(b)
	}

	ctx, cid := requestctx.Ensure(ctx)
	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return apperr.NetworkFailure(fallback, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Appwrite-Project", c.Project)
	req.Header.Set("X-Correlation-Id", cid)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return apperr.NetworkFailure(fallback, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var ae apiError
		msg := fallback
		if err := json.NewDecoder(resp.Body).Decode(&ae); err == nil && ae.Message != "" {
			msg = ae.Message
		}
		return apperr.NetworkFailure(msg, fmt.Errorf("appwrite status %d", resp.StatusCode))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperr.NetworkFailure(fallback, err)
	}
	return nil
}
