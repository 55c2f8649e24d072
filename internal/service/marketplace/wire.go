package marketplace

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/fxamacker/cbor/v2"
)

// flexString decodes an opaque identifier that the backend may send as either a string
// or a number, keeping it as text.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	s, err := textOf(v)
	if err != nil {
		return err
	}
	*f = flexString(s)
	return nil
}

func (f *flexString) UnmarshalCBOR(data []byte) error {
	var v any
	if err := cbor.Unmarshal(data, &v); err != nil {
		return err
	}
	s, err := textOf(v)
	if err != nil {
		return err
	}
	*f = flexString(s)
	return nil
}

func textOf(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case json.Number:
		return t.String(), nil
	case uint64:
		return strconv.FormatUint(t, 10), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return "", fmt.Errorf("invalid identifier %v", t)
		}
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("unsupported identifier type %T", v)
	}
}

// Wire types use the backend's camelCase keys. fxamacker/cbor honours the json tags, so
// the same structs decode both encodings.

type guardWire struct {
	ID                flexString `json:"id"`
	Name              string     `json:"name"`
	Role              string     `json:"role"`
	Location          string     `json:"location"`
	HourlyRate        *float64   `json:"hourlyRate"`
	DailyRate         *float64   `json:"dailyRate"`
	MonthlyRate       *float64   `json:"monthlyRate"`
	Rating            float64    `json:"rating"`
	Experience        float64    `json:"experience"`
	Skills            []string   `json:"skills"`
	Bio               string     `json:"bio"`
	ProfilePictureURL string     `json:"profilePictureUrl"`
}

func (g guardWire) toGuard() Guard {
	skills := g.Skills
	if skills == nil {
		skills = []string{}
	}
	return Guard{
		ID:                string(g.ID),
		Name:              g.Name,
		Role:              g.Role,
		Location:          g.Location,
		HourlyRate:        g.HourlyRate,
		DailyRate:         g.DailyRate,
		MonthlyRate:       g.MonthlyRate,
		Rating:            g.Rating,
		Experience:        g.Experience,
		Skills:            skills,
		Bio:               g.Bio,
		ProfilePictureURL: g.ProfilePictureURL,
	}
}

type sessionWire struct {
	Token      string     `json:"token"`
	RedirectTo string     `json:"redirectTo"`
	UserID     flexString `json:"userId"`
}

// errorBody covers the two error shapes the backend uses.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}
