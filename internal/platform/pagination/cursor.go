// Package pagination windows in-memory lists behind opaque cursors and RFC 8288 links.
package pagination

import (
	"encoding/base64"
	"errors"
	"strings"
)

var (
	// ErrInvalidCursor indicates the cursor could not be decoded.
	ErrInvalidCursor = errors.New("invalid cursor format")
	// ErrCursorKind indicates a cursor minted for a different resource.
	ErrCursorKind = errors.New("cursor type mismatch")
	// ErrUnknownPosition indicates the cursor references an entry no longer in the list.
	ErrUnknownPosition = errors.New("cursor references unknown entry")
	// ErrAmbiguousID indicates a list spanning several pages has an empty or repeated ID,
	// so a cursor could not name a unique position in it.
	ErrAmbiguousID = errors.New("entries lack unique identifiers")
)

// Cursor is a position in a list: the ID of the last entry already seen.
// An empty After means the start of the list.
type Cursor struct {
	Kind  string
	After string
}

// Encode returns a URL-safe opaque representation.
func (c Cursor) Encode() string {
	return base64.RawURLEncoding.EncodeToString([]byte(c.Kind + ":" + c.After))
}

// Decode parses s and checks it was minted for kind. An empty s is the start of the list.
func Decode(s, kind string) (Cursor, error) {
	if s == "" {
		return Cursor{Kind: kind}, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return Cursor{}, ErrInvalidCursor
	}
	k, after, ok := strings.Cut(string(raw), ":")
	if !ok {
		return Cursor{}, ErrInvalidCursor
	}
	if k != kind {
		return Cursor{}, ErrCursorKind
	}
	return Cursor{Kind: k, After: after}, nil
}
