package content

import (
	"fmt"
	"strings"
)

// Metadata holds free-form front-matter values keyed by lowercase name.
type Metadata map[string]any

// Lookup returns the value stored under key as a string. A missing key and a
// nil value both report false.
func (m Metadata) Lookup(key string) (string, bool) {
	v, ok := m[key]
	if !ok || v == nil {
		return "", false
	}
	switch val := v.(type) {
	case string:
		return val, true
	case []string:
		return strings.Join(val, ", "), true
	case fmt.Stringer:
		return val.String(), true
	default:
		return fmt.Sprint(val), true
	}
}

// Get returns the string value under key, or "" when absent.
func (m Metadata) Get(key string) string {
	v, _ := m.Lookup(key)
	return v
}
