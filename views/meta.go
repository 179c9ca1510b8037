// Package views renders content metadata into page <head> markup.
package views

import (
	"context"
	"html"
	"io"
	"regexp"
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/opengraph/content"
)

var reTag = regexp.MustCompile(`<[^>]*>`)

// OGMeta renders one <meta property content> element per tag, in order.
// Content has markup stripped; both attributes are escaped.
func OGMeta(tags []content.MetaTag) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		for _, t := range tags {
			b.WriteString(`<meta property="`)
			b.WriteString(templ.EscapeString(t.Property))
			b.WriteString(`" content="`)
			b.WriteString(templ.EscapeString(StripTags(t.Content)))
			b.WriteString("\" />\n")
		}
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// StripTags removes HTML tags, decodes entities and collapses whitespace.
func StripTags(s string) string {
	s = reTag.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	return strings.Join(strings.Fields(s), " ")
}
