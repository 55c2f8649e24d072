package pagination

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// DefaultLimit applies when a request does not name a page size.
const DefaultLimit = 20

// Params embeds into Huma input structs for pagination.
type Params struct {
	Cursor string `query:"cursor" doc:"Opaque pagination cursor from the Link header"`
	Limit  int    `query:"limit"  doc:"Maximum entries per page"                       default:"20" minimum:"1" maximum:"100"`
}

// PageSize returns the requested limit, or DefaultLimit when unset.
func (p Params) PageSize() int {
	if p.Limit <= 0 {
		return DefaultLimit
	}
	return p.Limit
}

// Page is one window over a list.
type Page[T any] struct {
	Items []T
	Total int
	Next  string
	Prev  string
}

// Window returns the entries following c, at most limit of them. id identifies entries;
// a cursor naming an ID that is not in items yields ErrUnknownPosition. When paging is
// needed every ID must be non-empty and unique, otherwise Window yields ErrAmbiguousID.
func Window[T any](items []T, c Cursor, limit int, id func(T) string) (Page[T], error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if c.After != "" || len(items) > limit {
		if !uniqueIDs(items, id) {
			return Page[T]{}, ErrAmbiguousID
		}
	}
	start := 0
	if c.After != "" {
		i := slices.IndexFunc(items, func(v T) bool { return id(v) == c.After })
		if i < 0 {
			return Page[T]{}, ErrUnknownPosition
		}
		start = i + 1
	}
	end := min(start+limit, len(items))

	p := Page[T]{Items: items[start:end], Total: len(items)}
	if end < len(items) {
		p.Next = Cursor{Kind: c.Kind, After: id(items[end-1])}.Encode()
	}
	switch {
	case start == 0:
	case start <= limit:
		p.Prev = Cursor{Kind: c.Kind}.Encode()
	default:
		p.Prev = Cursor{Kind: c.Kind, After: id(items[start-limit-1])}.Encode()
	}
	return p, nil
}

func uniqueIDs[T any](items []T, id func(T) string) bool {
	seen := make(map[string]struct{}, len(items))
	for _, v := range items {
		k := id(v)
		if k == "" {
			return false
		}
		if _, dup := seen[k]; dup {
			return false
		}
		seen[k] = struct{}{}
	}
	return true
}

// Links renders the RFC 8288 Link header for p. Existing query parameters are kept
// and the cursor and limit are overwritten.
func (p Page[T]) Links(path string, query url.Values, limit int) string {
	var links []string
	for _, l := range []struct{ rel, cursor string }{{"next", p.Next}, {"prev", p.Prev}} {
		if l.cursor == "" {
			continue
		}
		q := url.Values{}
		for k, v := range query {
			q[k] = slices.Clone(v)
		}
		q.Set("cursor", l.cursor)
		q.Set("limit", strconv.Itoa(limit))
		links = append(links, fmt.Sprintf("<%s?%s>; rel=%q", path, q.Encode(), l.rel))
	}
	return strings.Join(links, ", ")
}
