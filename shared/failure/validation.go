package failure

import (
	"sort"
	"strings"
)

// Validation carries per-field error messages from domain validation. The
// handler serializes Fields as-is so the client can render errors next to
// each input.
type Validation struct {
	Fields map[string]string `json:"fields"`
}

func (e *Validation) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for key := range e.Fields {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+": "+e.Fields[key])
	}

	return strings.Join(parts, "; ")
}

// FromFields returns a Validation error when the map is non-empty, nil
// otherwise. The empty map means the draft passed every rule.
func FromFields(fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}

	return &Validation{Fields: fields}
}
