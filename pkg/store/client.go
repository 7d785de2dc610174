// Package store is a thin client for the external table-oriented REST store.
// It addresses named collections with equality filters, ordering, and
// relational embedding; persistence itself lives entirely on the other side
// of the wire.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrNotFound is returned when a single-row read matches no row.
var ErrNotFound = errors.New("store: not found")

// WriteError is a constraint or write failure reported by the store.
type WriteError struct {
	Status  int
	Code    string
	Message string
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("store: write rejected (%d %s): %s", e.Status, e.Code, e.Message)
}

// UniqueViolation reports whether the write hit a uniqueness constraint.
func (e *WriteError) UniqueViolation() bool { return e.Code == "23505" }

// ForeignKeyViolation reports whether the write referenced a missing row.
func (e *WriteError) ForeignKeyViolation() bool { return e.Code == "23503" }

// Client talks to the external store over HTTPS.
type Client struct {
	baseURL string
	key     string
	http    *http.Client
	logger  *zap.Logger
}

// New creates a store client for the given endpoint URL and access key.
func New(rawURL, key string, logger *zap.Logger) (*Client, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse store url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("store url %q missing scheme or host", rawURL)
	}
	if key == "" {
		return nil, errors.New("store access key is empty")
	}
	base := strings.TrimRight(rawURL, "/")
	if !strings.HasSuffix(base, "/rest/v1") {
		base += "/rest/v1"
	}
	c := &Client{
		baseURL: base,
		key:     key,
		http:    &http.Client{Timeout: 15 * time.Second},
		logger:  logger,
	}
	logger.Info("store client initialized", zap.String("endpoint", u.Host))
	return c, nil
}

// From starts a query against a collection.
func (c *Client) From(table string) *Query {
	return &Query{c: c, table: table}
}

func (c *Client) do(ctx context.Context, method, rawQuery string, table string, body interface{}, accept string, prefer string) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	endpoint := c.baseURL + "/" + table
	if rawQuery != "" {
		endpoint += "?" + rawQuery
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", c.key)
	req.Header.Set("Authorization", "Bearer "+c.key)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("store request: %w", err)
	}
	return resp, nil
}

// apiError mirrors the store's error body.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func mapError(resp *http.Response) error {
	defer resp.Body.Close()
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusNotAcceptable {
		return ErrNotFound
	}
	var body apiError
	_ = json.Unmarshal(raw, &body)
	if body.Message == "" {
		body.Message = strings.TrimSpace(string(raw))
	}
	return &WriteError{Status: resp.StatusCode, Code: body.Code, Message: body.Message}
}
