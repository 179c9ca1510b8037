package site

import (
	"sort"
	"strings"
	"time"

	"github.com/eringen/opengraph/content"
)

// Slugify converts a title to a URL-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// FilterEmpty removes empty/whitespace-only strings from a slice.
func FilterEmpty(vals []string) []string {
	var out []string
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// FilterRelatedPosts returns the articles sharing at least one tag with
// current, most shared tags first, capped at max. Ties keep the order of
// articles. The result is non-nil even when nothing is related.
func FilterRelatedPosts(current *content.Article, articles []*content.Article, max int) []*content.Article {
	tagSet := make(map[string]struct{})
	for _, t := range current.Tags {
		tag := strings.ToLower(strings.TrimSpace(t.Name))
		if tag != "" {
			tagSet[tag] = struct{}{}
		}
	}
	type scored struct {
		article *content.Article
		shared  int
	}
	var candidates []scored
	for _, a := range articles {
		if a == current || a.Slug == current.Slug {
			continue
		}
		shared := 0
		for _, t := range a.Tags {
			if _, ok := tagSet[strings.ToLower(strings.TrimSpace(t.Name))]; ok {
				shared++
			}
		}
		if shared > 0 {
			candidates = append(candidates, scored{article: a, shared: shared})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].shared > candidates[j].shared
	})
	related := make([]*content.Article, 0, min(len(candidates), max))
	for _, c := range candidates {
		if len(related) == max {
			break
		}
		related = append(related, c.article)
	}
	return related
}

// expandURL fills the {slug}, {category} and {date} placeholders of a URL
// pattern. {date} becomes YYYY/MM/DD.
func expandURL(pattern string, a *content.Article) string {
	category := ""
	if a.Category != nil {
		category = Slugify(a.Category.Name)
	}
	return strings.NewReplacer(
		"{slug}", a.Slug,
		"{category}", category,
		"{date}", a.Date.Format("2006/01/02"),
	).Replace(pattern)
}

const dateLayout = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, strings.TrimSpace(s))
}
