// Package content defines the content items a site generation pass produces
// and plugins annotate: articles, pages, and the entities hanging off them.
package content

import (
	"fmt"
	"time"

	"github.com/eringen/opengraph/markdown"
)

// Kind classifies a content item.
type Kind string

const (
	KindArticle Kind = "article"
	KindPage    Kind = "page"
)

// Status is the publication state of an article.
type Status string

const (
	StatusPublished Status = "published"
	StatusDraft     Status = "draft"
)

// Item is any content object emitted by a generator.
type Item interface {
	Kind() Kind
}

// Generator exposes the items of one generation pass to finalize receivers.
type Generator interface {
	Articles() []Item
	Drafts() []Item
}

// Author is a named article author.
type Author struct {
	Name string
}

// Category groups articles into a site section.
type Category struct {
	Name string
}

// Tag is a free-form article label.
type Tag struct {
	Name string
}

// MetaTag is one (property, content) pair destined for a <meta> element.
type MetaTag struct {
	Property string `json:"property"`
	Content  string `json:"content"`
}

// Article is a dated blog post.
//
// A nil Modified, Category, Tags or RelatedPosts means the article does not
// carry that field.
type Article struct {
	Title    string
	Slug     string
	URL      string // relative to the site URL
	Date     time.Time
	Modified *time.Time
	Status   Status
	Metadata Metadata
	Content  string // Markdown body

	Authors      []Author
	Category     *Category
	Tags         []Tag
	RelatedPosts []*Article

	// SummaryMaxLength bounds the computed summary in words; 0 keeps it whole.
	SummaryMaxLength int

	// OGTags is set by the Open Graph annotator during the finalize phase.
	OGTags []MetaTag
}

// Kind reports KindArticle.
func (a *Article) Kind() Kind { return KindArticle }

// Summary returns the summary computed from the article body.
func (a *Article) Summary() string {
	return markdown.Summary(a.Content, a.SummaryMaxLength)
}

func (a *Article) String() string {
	return fmt.Sprintf("article %q", a.Slug)
}

// Page is a standalone, undated page. Plugins that target articles skip it.
type Page struct {
	Title    string
	Slug     string
	URL      string
	Metadata Metadata
	Content  string
}

// Kind reports KindPage.
func (p *Page) Kind() Kind { return KindPage }
