package registration

import (
	"math"
	"strconv"
	"strings"
)

// optionalNumber applies empty-as-absent coercion: blank input yields nil without error.
func optionalNumber(raw string) (*float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, false
	}
	return &v, true
}

// checkbox interprets the value a browser submits for a checked box.
func checkbox(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "on", "1", "yes":
		return true
	default:
		return false
	}
}
