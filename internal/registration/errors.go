package registration

import (
	"slices"
	"strings"
)

// FieldErrors maps a form field name to a single human-readable violation message.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var b strings.Builder
	b.WriteString("validation failed: ")
	for i, k := range keys {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(fe[k])
	}
	return b.String()
}

// Fields returns the offending field names in sorted order.
func (fe FieldErrors) Fields() []string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// set records msg for field unless the field already has a message. The first
// failing rule for a field wins.
func (fe FieldErrors) set(field, msg string) {
	if _, ok := fe[field]; !ok {
		fe[field] = msg
	}
}
