// Package pagination implements the opaque cursor tokens used by listing
// and search endpoints. A cursor encodes a position in a stable result
// ordering; clients treat it as an opaque string.
package pagination

import (
	"encoding/base64"
	"encoding/json"
	"errors"
)

// ErrInvalidCursor is returned when a cursor token cannot be decoded.
// Callers should surface it as a client error.
var ErrInvalidCursor = errors.New("invalid pagination cursor")

// DefaultPageSize is used when the caller does not request a page size.
const DefaultPageSize = 10

// MaxPageSize caps client-requested page sizes.
const MaxPageSize = 100

// Cursor marks a position within a stable ordering of results.
type Cursor struct {
	Offset int `json:"o"`
}

// Encode serializes the cursor into an opaque URL-safe token.
func (c Cursor) Encode() string {
	data, _ := json.Marshal(c)
	return base64.RawURLEncoding.EncodeToString(data)
}

// Decode parses a cursor token. An empty token yields the zero cursor
// (start of the result set).
func Decode(token string) (Cursor, error) {
	if token == "" {
		return Cursor{}, nil
	}

	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, ErrInvalidCursor
	}

	var c Cursor
	if err := json.Unmarshal(data, &c); err != nil {
		return Cursor{}, ErrInvalidCursor
	}
	if c.Offset < 0 {
		return Cursor{}, ErrInvalidCursor
	}
	return c, nil
}

// ClampPageSize normalizes a requested page size into [1, MaxPageSize],
// substituting DefaultPageSize for zero or negative values.
func ClampPageSize(size int) int {
	if size <= 0 {
		return DefaultPageSize
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

// Page describes one page of results together with the token for the
// next page. NextCursor is empty when the listing is exhausted.
type Page[T any] struct {
	Items      []T
	NextCursor string
}

// Slice paginates an already-ordered, fully-filtered slice. It is used
// where filtering must complete before page boundaries are computed,
// such as the tag-superset search path.
func Slice[T any](items []T, c Cursor, pageSize int) Page[T] {
	if c.Offset >= len(items) {
		return Page[T]{Items: []T{}}
	}

	end := c.Offset + pageSize
	if end > len(items) {
		end = len(items)
	}

	page := Page[T]{Items: items[c.Offset:end]}
	if end < len(items) {
		page.NextCursor = Cursor{Offset: end}.Encode()
	}
	return page
}
