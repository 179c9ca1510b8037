package opengraph

import (
	"strings"
	"time"

	"github.com/eringen/opengraph/content"
)

// DateLayout is the format of article:published_time and
// article:modified_time.
const DateLayout = "2006-01-02"

// FormatDate formats t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// JoinURL appends a relative URL to the site base URL with exactly one slash
// between them. An empty base leaves rel unchanged.
func JoinURL(base, rel string) string {
	if base == "" {
		return rel
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(rel, "/")
}

// firstMetadata returns the first of keys holding a non-empty value in m.
func firstMetadata(m content.Metadata, keys ...string) (string, bool) {
	for _, key := range keys {
		if v, ok := m.Lookup(key); ok && v != "" {
			return v, true
		}
	}
	return "", false
}
