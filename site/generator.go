// Package site is the generation host: it loads posts from the store, builds
// content items, and emits the signals plugins hook into.
package site

import (
	"context"
	"fmt"
	"maps"
	"strings"

	"github.com/labstack/gommon/log"

	"github.com/eringen/opengraph/content"
	"github.com/eringen/opengraph/signals"
)

// Generator builds the articles and drafts of one generation pass.
type Generator struct {
	store    *Store
	settings Settings
	bus      *signals.Bus
	logger   *log.Logger

	articles []*content.Article
	drafts   []*content.Article
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger replaces the generator's logger.
func WithLogger(l *log.Logger) Option {
	return func(g *Generator) {
		g.logger = l
	}
}

// NewGenerator creates a Generator reading from store and emitting on bus.
func NewGenerator(store *Store, settings Settings, bus *signals.Bus, opts ...Option) *Generator {
	g := &Generator{
		store:    store,
		settings: settings,
		bus:      bus,
		logger:   log.New("site"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate runs one pass: it rebuilds every article and draft from the store
// and then sends ArticleGeneratorFinalized. The signal's error, if any, is
// returned after all receivers ran.
func (g *Generator) Generate(ctx context.Context) error {
	posts, err := g.store.ListPosts(ctx)
	if err != nil {
		return fmt.Errorf("site: list posts: %w", err)
	}

	var articles, drafts []*content.Article
	for _, p := range posts {
		a, err := g.buildArticle(p)
		if err != nil {
			return fmt.Errorf("site: build %q: %w", p.Slug, err)
		}
		if a.Status == content.StatusPublished {
			articles = append(articles, a)
		} else {
			drafts = append(drafts, a)
		}
	}

	// Related posts are drawn from, and attached to, published articles only.
	if g.settings.RelatedPostsMax > 0 {
		for _, a := range articles {
			a.RelatedPosts = FilterRelatedPosts(a, articles, g.settings.RelatedPostsMax)
		}
	}

	g.articles, g.drafts = articles, drafts
	g.logger.Infof("generated %d articles and %d drafts", len(articles), len(drafts))

	if err := ctx.Err(); err != nil {
		return err
	}
	return g.bus.ArticleGeneratorFinalized.Send(g)
}

func (g *Generator) buildArticle(p Post) (*content.Article, error) {
	date, err := parseDate(p.Date)
	if err != nil {
		return nil, fmt.Errorf("parse date: %w", err)
	}
	a := &content.Article{
		Title:            p.Title,
		Slug:             p.Slug,
		Date:             date,
		Status:           content.StatusDraft,
		Metadata:         content.Metadata{},
		Content:          p.Content,
		SummaryMaxLength: g.settings.SummaryMaxLength,
	}
	if p.Published {
		a.Status = content.StatusPublished
	}
	if strings.TrimSpace(p.Modified) != "" {
		modified, err := parseDate(p.Modified)
		if err != nil {
			return nil, fmt.Errorf("parse modified: %w", err)
		}
		a.Modified = &modified
	}
	maps.Copy(a.Metadata, p.Metadata)
	if _, ok := a.Metadata["summary"]; !ok && strings.TrimSpace(p.Summary) != "" {
		a.Metadata["summary"] = p.Summary
	}

	category := strings.TrimSpace(p.Category)
	if category == "" {
		category = g.settings.DefaultCategory
	}
	if category != "" {
		a.Category = &content.Category{Name: category}
	}
	for _, name := range FilterEmpty(p.Authors) {
		a.Authors = append(a.Authors, content.Author{Name: name})
	}
	for _, name := range FilterEmpty(p.Tags) {
		a.Tags = append(a.Tags, content.Tag{Name: name})
	}

	pattern := g.settings.ArticleURL
	if a.Status == content.StatusDraft {
		pattern = g.settings.DraftURL
	}
	a.URL = expandURL(pattern, a)
	return a, nil
}

// Articles returns the published articles of the last pass, newest first.
func (g *Generator) Articles() []content.Item {
	return items(g.articles)
}

// Drafts returns the unpublished articles of the last pass, newest first.
func (g *Generator) Drafts() []content.Item {
	return items(g.drafts)
}

// Article returns the published article or draft with the given slug.
func (g *Generator) Article(slug string) (*content.Article, bool) {
	for _, list := range [][]*content.Article{g.articles, g.drafts} {
		for _, a := range list {
			if a.Slug == slug {
				return a, true
			}
		}
	}
	return nil, false
}

// All returns published articles followed by drafts.
func (g *Generator) All() []*content.Article {
	out := make([]*content.Article, 0, len(g.articles)+len(g.drafts))
	out = append(out, g.articles...)
	return append(out, g.drafts...)
}

func items(articles []*content.Article) []content.Item {
	out := make([]content.Item, len(articles))
	for i, a := range articles {
		out[i] = a
	}
	return out
}
