// Package timeutil fixes the timestamp formats used on the wire and in logs.
package timeutil

import (
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/fxamacker/cbor/v2"
)

// RFC3339Millis is RFC 3339 UTC with fixed millisecond precision, used for API output.
const RFC3339Millis = "2006-01-02T15:04:05.000Z"

// RFC3339Micros is RFC 3339 UTC with fixed microsecond precision, used for log timestamps.
const RFC3339Micros = "2006-01-02T15:04:05.000000Z"

// Time renders as an RFC 3339 UTC string with millisecond precision in both JSON and
// CBOR. The zero value renders as null.
type Time struct {
	time.Time
}

// NewTime wraps a standard time.Time.
func NewTime(t time.Time) Time {
	return Time{Time: t}
}

func (t Time) text() string {
	return t.UTC().Format(RFC3339Millis)
}

func (t *Time) parse(s string) error {
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.text() + `"`), nil
}

// UnmarshalJSON accepts RFC 3339 variants. JSON null leaves the value unchanged.
func (t *Time) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	return t.parse(s)
}

// MarshalCBOR implements cbor.Marshaler with the same text form as JSON.
func (t Time) MarshalCBOR() ([]byte, error) {
	if t.IsZero() {
		return cbor.Marshal(nil)
	}
	return cbor.Marshal(t.text())
}

// UnmarshalCBOR accepts a text string or null. Null leaves the value unchanged.
func (t *Time) UnmarshalCBOR(data []byte) error {
	var s *string
	if err := cbor.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == nil {
		return nil
	}
	return t.parse(*s)
}

// Schema documents Time as a nullable date-time string.
func (Time) Schema(huma.Registry) *huma.Schema {
	return &huma.Schema{Type: huma.TypeString, Format: "date-time", Nullable: true}
}
