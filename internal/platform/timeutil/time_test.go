package timeutil

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/fxamacker/cbor/v2"
)

func TestTimeMarshalMillis(t *testing.T) {
	ts := NewTime(time.Date(2024, 1, 15, 10, 30, 0, 123456789, time.FixedZone("EET", 2*3600)))
	data, err := json.Marshal(ts)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got := string(data); got != `"2024-01-15T08:30:00.123Z"` {
		t.Fatalf("unexpected output %s", got)
	}
}

func TestTimeMarshalZeroIsNull(t *testing.T) {
	data, err := json.Marshal(Time{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "null" {
		t.Fatalf("expected null, got %s", data)
	}
}

func TestTimeUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{"millis", `"2024-01-15T10:30:00.000Z"`, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), false},
		{"seconds", `"2024-01-15T10:30:00Z"`, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), false},
		{"garbage", `"yesterday"`, time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Time
			err := json.Unmarshal([]byte(tt.input), &got)
			if (err != nil) != tt.wantErr {
				t.Fatalf("unexpected error state: %v", err)
			}
			if !tt.wantErr && !got.Equal(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got.Time)
			}
		})
	}
}

func TestTimeUnmarshalNullPreservesValue(t *testing.T) {
	orig := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	got := NewTime(orig)
	if err := json.Unmarshal([]byte("null"), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !got.Equal(orig) {
		t.Fatalf("expected value preserved, got %v", got.Time)
	}
}

func TestTimeCBORMatchesJSONText(t *testing.T) {
	ts := NewTime(time.Date(2024, 1, 15, 10, 30, 0, 5_000_000, time.UTC))
	data, err := cbor.Marshal(ts)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var s string
	if err := cbor.Unmarshal(data, &s); err != nil {
		t.Fatalf("expected a CBOR text string: %v", err)
	}
	if s != "2024-01-15T10:30:00.005Z" {
		t.Fatalf("unexpected text %q", s)
	}

	var back Time
	if err := cbor.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(ts.Time) {
		t.Fatalf("expected %v, got %v", ts.Time, back.Time)
	}
}

func TestTimeCBORZeroIsNull(t *testing.T) {
	data, err := cbor.Marshal(Time{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if len(data) != 1 || data[0] != 0xf6 {
		t.Fatalf("expected CBOR null, got %x", data)
	}

	orig := NewTime(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	got := orig
	if err := cbor.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !got.Equal(orig.Time) {
		t.Fatalf("null must leave the value unchanged, got %v", got.Time)
	}
}

func TestTimeSchema(t *testing.T) {
	s := Time{}.Schema(nil)
	if s.Type != huma.TypeString || s.Format != "date-time" || !s.Nullable {
		t.Fatalf("unexpected schema %+v", s)
	}
}
