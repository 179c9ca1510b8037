// Package opengraph adds Open Graph Protocol tags to articles.
//
// An Annotator runs once per generation pass, on the article generator's
// finalize signal, and stores an ordered list of (property, content) pairs on
// every article and draft:
//
//	bus := signals.NewBus()
//	opengraph.Register(bus, settings)
//
// Templates iterate Article.OGTags and render each pair as
// <meta property="..." content="..." />, stripping markup from and escaping
// the content. views.OGMeta does exactly that.
package opengraph

import (
	"errors"
	"fmt"

	"github.com/labstack/gommon/log"

	"github.com/eringen/opengraph/content"
	"github.com/eringen/opengraph/signals"
	"github.com/eringen/opengraph/site"
)

// Open Graph properties, in the order an article's tags are emitted.
const (
	PropTitle         = "og:title"
	PropType          = "og:type"
	PropImage         = "og:image"
	PropURL           = "og:url"
	PropDescription   = "og:description"
	PropLocale        = "og:locale"
	PropSiteName      = "og:site_name"
	PropSeeAlso       = "og:see_also"
	PropPublishedTime = "article:published_time"
	PropModifiedTime  = "article:modified_time"
	PropAuthor        = "article:author"
	PropSection       = "article:section"
	PropTag           = "article:tag"
)

// TypeArticle is the og:type of every annotated item.
const TypeArticle = "article"

// ErrMissingCategory is returned for an article without a category, which
// article:section cannot do without.
var ErrMissingCategory = errors.New("missing category")

// Annotator computes Open Graph tags from site settings and article fields.
type Annotator struct {
	settings site.Settings
	logger   Logger
}

// New creates an Annotator for the given settings.
func New(settings site.Settings, opts ...Option) *Annotator {
	a := &Annotator{
		settings: settings,
		logger:   log.New("opengraph"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Register creates an Annotator and connects AnnotateAll to the bus's
// article generator finalized signal. Call it once during setup.
func Register(bus *signals.Bus, settings site.Settings, opts ...Option) *Annotator {
	a := New(settings, opts...)
	bus.ArticleGeneratorFinalized.Connect(a.AnnotateAll)
	return a
}

// AnnotateAll annotates every article and then every draft of gen, in order.
// An article that fails is left untouched and the rest are still annotated;
// the failures are returned joined.
func (a *Annotator) AnnotateAll(gen content.Generator) error {
	var errs []error
	for _, items := range [][]content.Item{gen.Articles(), gen.Drafts()} {
		for _, item := range items {
			if err := a.Annotate(item); err != nil {
				a.logger.Warnf("skipping: %v", err)
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// Annotate replaces item's OGTags with freshly computed tags. Items that are
// not articles are ignored. On error the item is not modified.
func (a *Annotator) Annotate(item content.Item) error {
	article, ok := item.(*content.Article)
	if !ok || article == nil {
		return nil
	}
	tags, err := a.Tags(article)
	if err != nil {
		return err
	}
	article.OGTags = tags
	a.logger.Debugf("annotated %q with %d tags", article.Slug, len(tags))
	return nil
}

// ErrNilArticle is returned by Tags for a nil article.
var ErrNilArticle = errors.New("opengraph: nil article")

// Tags computes the Open Graph tags of article without storing them.
func (a *Annotator) Tags(article *content.Article) ([]content.MetaTag, error) {
	if article == nil {
		return nil, ErrNilArticle
	}
	tags := []content.MetaTag{
		{Property: PropTitle, Content: article.Title},
		{Property: PropType, Content: TypeArticle},
	}

	if image, ok := firstMetadata(article.Metadata, "og_image"); ok {
		tags = append(tags, content.MetaTag{Property: PropImage, Content: image})
	}

	tags = append(tags, content.MetaTag{Property: PropURL, Content: JoinURL(a.settings.SiteURL, article.URL)})

	description, ok := firstMetadata(article.Metadata, "og_description", "summary")
	if !ok {
		description = article.Summary()
	}
	tags = append(tags, content.MetaTag{Property: PropDescription, Content: description})

	// og_locale overrides the site default whenever it is set, even to "".
	locale, ok := article.Metadata.Lookup("og_locale")
	if !ok {
		locale = a.settings.DefaultLocale()
	}
	tags = append(tags,
		content.MetaTag{Property: PropLocale, Content: locale},
		content.MetaTag{Property: PropSiteName, Content: a.settings.SiteName},
	)

	for _, related := range article.RelatedPosts {
		tags = append(tags, content.MetaTag{Property: PropSeeAlso, Content: related.URL})
	}

	tags = append(tags, content.MetaTag{Property: PropPublishedTime, Content: FormatDate(article.Date)})
	if article.Modified != nil {
		tags = append(tags, content.MetaTag{Property: PropModifiedTime, Content: FormatDate(*article.Modified)})
	}

	if len(a.settings.AuthorFBID) > 0 {
		for _, author := range article.Authors {
			if id, ok := a.settings.AuthorFBID[author.Name]; ok {
				tags = append(tags, content.MetaTag{Property: PropAuthor, Content: id})
			}
		}
	}

	if article.Category == nil {
		return nil, fmt.Errorf("opengraph: annotate %q: %w", article.Slug, ErrMissingCategory)
	}
	tags = append(tags, content.MetaTag{Property: PropSection, Content: article.Category.Name})

	for _, tag := range article.Tags {
		tags = append(tags, content.MetaTag{Property: PropTag, Content: tag.Name})
	}
	return tags, nil
}
