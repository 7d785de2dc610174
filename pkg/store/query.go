package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

const singleObjectAccept = "application/vnd.pgrst.object+json"

// Query builds one request against a collection. Terminal calls (Get,
// Single, Insert, Update, Delete) execute it.
type Query struct {
	c       *Client
	table   string
	selects string
	filters []string // "col=eq.value", already escaped
	orders  []string // "col.asc" / "col.desc"
	limit   int
}

// Select sets the column list; embedded collections use the
// "other_table(cols)" form, "other_table!inner(cols)" to require the join.
func (q *Query) Select(columns string) *Query {
	q.selects = columns
	return q
}

// Eq adds an equality filter.
func (q *Query) Eq(column, value string) *Query {
	q.filters = append(q.filters, url.QueryEscape(column)+"=eq."+url.QueryEscape(value))
	return q
}

// Order appends an ordering term.
func (q *Query) Order(column string, ascending bool) *Query {
	dir := "desc"
	if ascending {
		dir = "asc"
	}
	q.orders = append(q.orders, column+"."+dir)
	return q
}

// Limit caps the number of returned rows.
func (q *Query) Limit(n int) *Query {
	q.limit = n
	return q
}

func (q *Query) rawQuery() string {
	parts := make([]string, 0, len(q.filters)+3)
	if q.selects != "" {
		parts = append(parts, "select="+url.QueryEscape(q.selects))
	}
	parts = append(parts, q.filters...)
	if len(q.orders) > 0 {
		parts = append(parts, "order="+url.QueryEscape(strings.Join(q.orders, ",")))
	}
	if q.limit > 0 {
		parts = append(parts, "limit="+strconv.Itoa(q.limit))
	}
	return strings.Join(parts, "&")
}

// Get fetches all matching rows into dest (a pointer to a slice).
func (q *Query) Get(ctx context.Context, dest interface{}) error {
	resp, err := q.c.do(ctx, http.MethodGet, q.rawQuery(), q.table, nil, "", "")
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return mapError(resp)
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode %s rows: %w", q.table, err)
	}
	return nil
}

// Single fetches exactly one row into dest, or ErrNotFound.
func (q *Query) Single(ctx context.Context, dest interface{}) error {
	resp, err := q.c.do(ctx, http.MethodGet, q.rawQuery(), q.table, nil, singleObjectAccept, "")
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return mapError(resp)
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode %s row: %w", q.table, err)
	}
	return nil
}

// Insert writes a row and, when dest is non-nil, decodes the stored
// representation back into it.
func (q *Query) Insert(ctx context.Context, row interface{}, dest interface{}) error {
	resp, err := q.c.do(ctx, http.MethodPost, q.rawQuery(), q.table, row, "", "return=representation")
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return mapError(resp)
	}
	return decodeFirst(resp, q.table, dest)
}

// Update patches all rows matching the filters and decodes the first
// updated representation into dest when non-nil. No matching row is
// ErrNotFound.
func (q *Query) Update(ctx context.Context, patch interface{}, dest interface{}) error {
	resp, err := q.c.do(ctx, http.MethodPatch, q.rawQuery(), q.table, patch, "", "return=representation")
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return mapError(resp)
	}
	return decodeFirst(resp, q.table, dest)
}

// Delete removes all rows matching the filters and returns how many were
// removed.
func (q *Query) Delete(ctx context.Context) (int, error) {
	resp, err := q.c.do(ctx, http.MethodDelete, q.rawQuery(), q.table, nil, "", "return=representation")
	if err != nil {
		return 0, err
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return 0, mapError(resp)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNoContent {
		return 0, nil
	}
	var rows []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return 0, fmt.Errorf("decode %s rows: %w", q.table, err)
	}
	return len(rows), nil
}

// decodeFirst unmarshals the first returned row into dest. An empty row set
// with a non-nil dest means the write matched nothing.
func decodeFirst(resp *http.Response, table string, dest interface{}) error {
	defer resp.Body.Close()
	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	var rows []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return fmt.Errorf("decode %s rows: %w", table, err)
	}
	if len(rows) == 0 {
		return ErrNotFound
	}
	if err := json.Unmarshal(rows[0], dest); err != nil {
		return fmt.Errorf("decode %s row: %w", table, err)
	}
	return nil
}

// LogSwallowed records an error the access layer converts to a boolean or
// absent-value result, so handlers never see transport failures.
func LogSwallowed(logger *zap.Logger, op string, err error) {
	if err == nil || err == ErrNotFound {
		return
	}
	logger.Warn("store operation failed", zap.String("op", op), zap.Error(err))
}
