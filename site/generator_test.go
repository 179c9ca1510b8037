package site

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/opengraph/content"
	"github.com/eringen/opengraph/signals"
)

func quietLogger() *log.Logger {
	l := log.New("test")
	l.SetOutput(io.Discard)
	return l
}

func seedStore(t *testing.T, posts ...Post) *Store {
	t.Helper()
	s := setupTestStore(t)
	for _, p := range posts {
		require.NoError(t, s.SavePost(context.Background(), p))
	}
	return s
}

func TestGeneratePartitionsAndSendsSignal(t *testing.T) {
	store := seedStore(t,
		Post{Slug: "first", Title: "First", Date: "2024-01-01", Category: "Go", Published: true},
		Post{Slug: "second", Title: "Second", Date: "2024-02-01", Category: "Go", Published: true},
		Post{Slug: "wip", Title: "WIP", Date: "2024-03-01", Category: "Go"},
	)
	bus := signals.NewBus()

	var received content.Generator
	bus.ArticleGeneratorFinalized.Connect(func(g content.Generator) error {
		received = g
		return nil
	})

	gen := NewGenerator(store, DefaultSettings(), bus, WithLogger(quietLogger()))
	require.NoError(t, gen.Generate(context.Background()))
	require.Same(t, gen, received)

	articles := gen.Articles()
	require.Len(t, articles, 2)
	assert.Equal(t, "second", articles[0].(*content.Article).Slug)
	assert.Equal(t, "first", articles[1].(*content.Article).Slug)

	drafts := gen.Drafts()
	require.Len(t, drafts, 1)
	draft := drafts[0].(*content.Article)
	assert.Equal(t, "wip", draft.Slug)
	assert.Equal(t, content.StatusDraft, draft.Status)
	assert.Equal(t, "drafts/wip.html", draft.URL)

	all := gen.All()
	require.Len(t, all, 3)
	assert.Equal(t, "wip", all[2].Slug)
}

func TestGenerateBuildsArticleFields(t *testing.T) {
	store := seedStore(t, Post{
		Slug:      "full",
		Title:     "Full Post",
		Date:      "2024-04-05",
		Modified:  "2024-04-09",
		Category:  "Web Dev",
		Authors:   []string{"Alice", "Bob"},
		Tags:      []string{"Go", "HTTP"},
		Summary:   "stored summary",
		Content:   "Body text.",
		Metadata:  map[string]any{"og_image": "/img/full.png"},
		Published: true,
	})
	settings := DefaultSettings()
	settings.ArticleURL = "{category}/{date}/{slug}/"
	settings.SummaryMaxLength = 10

	gen := NewGenerator(store, settings, signals.NewBus(), WithLogger(quietLogger()))
	require.NoError(t, gen.Generate(context.Background()))

	a, ok := gen.Article("full")
	require.True(t, ok)
	assert.Equal(t, "Full Post", a.Title)
	assert.Equal(t, "web-dev/2024/04/05/full/", a.URL)
	assert.Equal(t, "2024-04-05", a.Date.Format("2006-01-02"))
	require.NotNil(t, a.Modified)
	assert.Equal(t, "2024-04-09", a.Modified.Format("2006-01-02"))
	require.NotNil(t, a.Category)
	assert.Equal(t, "Web Dev", a.Category.Name)
	assert.Equal(t, []content.Author{{Name: "Alice"}, {Name: "Bob"}}, a.Authors)
	assert.Equal(t, []content.Tag{{Name: "go"}, {Name: "http"}}, a.Tags)
	assert.Equal(t, "/img/full.png", a.Metadata.Get("og_image"))
	assert.Equal(t, "stored summary", a.Metadata.Get("summary"))
	assert.Equal(t, "Body text.", a.Summary())
	assert.Nil(t, a.RelatedPosts, "related posts are absent when disabled")
	assert.Nil(t, a.OGTags)
}

func TestGenerateOptionalFieldsAbsent(t *testing.T) {
	store := seedStore(t, Post{Slug: "bare", Title: "Bare", Date: "2024-01-01", Published: true})

	gen := NewGenerator(store, DefaultSettings(), signals.NewBus(), WithLogger(quietLogger()))
	require.NoError(t, gen.Generate(context.Background()))

	a, ok := gen.Article("bare")
	require.True(t, ok)
	assert.Nil(t, a.Modified)
	assert.Nil(t, a.Category)
	assert.Nil(t, a.Tags)
	assert.Nil(t, a.Authors)
	_, hasSummary := a.Metadata.Lookup("summary")
	assert.False(t, hasSummary)
	assert.Equal(t, "bare.html", a.URL)
}

func TestGenerateDefaultCategory(t *testing.T) {
	store := seedStore(t, Post{Slug: "bare", Title: "Bare", Date: "2024-01-01", Published: true})
	settings := DefaultSettings()
	settings.DefaultCategory = "misc"

	gen := NewGenerator(store, settings, signals.NewBus(), WithLogger(quietLogger()))
	require.NoError(t, gen.Generate(context.Background()))

	a, _ := gen.Article("bare")
	require.NotNil(t, a.Category)
	assert.Equal(t, "misc", a.Category.Name)
}

func TestGenerateRelatedPosts(t *testing.T) {
	store := seedStore(t,
		Post{Slug: "a", Title: "A", Date: "2024-01-04", Tags: []string{"go", "web"}, Published: true},
		Post{Slug: "b", Title: "B", Date: "2024-01-03", Tags: []string{"go"}, Published: true},
		Post{Slug: "c", Title: "C", Date: "2024-01-02", Tags: []string{"go", "web"}, Published: true},
		Post{Slug: "d", Title: "D", Date: "2024-01-01", Tags: []string{"rust"}, Published: true},
		Post{Slug: "draft", Title: "Draft", Date: "2024-01-05", Tags: []string{"go", "web"}},
	)
	settings := DefaultSettings()
	settings.RelatedPostsMax = 5

	gen := NewGenerator(store, settings, signals.NewBus(), WithLogger(quietLogger()))
	require.NoError(t, gen.Generate(context.Background()))

	b, _ := gen.Article("b")
	assert.Equal(t, []string{"a", "c"}, slugs(b.RelatedPosts))

	a, _ := gen.Article("a")
	assert.Equal(t, []string{"c", "b"}, slugs(a.RelatedPosts), "most shared tags first")

	d, _ := gen.Article("d")
	assert.NotNil(t, d.RelatedPosts)
	assert.Empty(t, d.RelatedPosts)

	draft, _ := gen.Article("draft")
	assert.Nil(t, draft.RelatedPosts, "drafts never carry related posts")
}

func TestGenerateReturnsReceiverErrors(t *testing.T) {
	store := seedStore(t, Post{Slug: "x", Title: "X", Date: "2024-01-01", Published: true})
	bus := signals.NewBus()
	boom := errors.New("boom")
	bus.ArticleGeneratorFinalized.Connect(func(content.Generator) error { return boom })

	gen := NewGenerator(store, DefaultSettings(), bus, WithLogger(quietLogger()))
	assert.ErrorIs(t, gen.Generate(context.Background()), boom)
}

func TestGenerateBadDate(t *testing.T) {
	store := seedStore(t, Post{Slug: "bad", Title: "Bad", Date: "05/01/2024", Published: true})

	gen := NewGenerator(store, DefaultSettings(), signals.NewBus(), WithLogger(quietLogger()))
	err := gen.Generate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `site: build "bad"`)
}

func TestGenerateCanceledContext(t *testing.T) {
	store := seedStore(t)
	bus := signals.NewBus()
	called := false
	bus.ArticleGeneratorFinalized.Connect(func(content.Generator) error {
		called = true
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	gen := NewGenerator(store, DefaultSettings(), bus, WithLogger(quietLogger()))
	assert.Error(t, gen.Generate(ctx))
	assert.False(t, called)
}

func TestFilterRelatedPostsCap(t *testing.T) {
	current := &content.Article{Slug: "cur", Tags: []content.Tag{{Name: "Go"}}}
	others := []*content.Article{
		current,
		{Slug: "one", Tags: []content.Tag{{Name: "go"}}},
		{Slug: "two", Tags: []content.Tag{{Name: " GO "}}},
		{Slug: "three", Tags: []content.Tag{{Name: "go"}}},
	}
	assert.Equal(t, []string{"one", "two"}, slugs(FilterRelatedPosts(current, others, 2)))
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Hello World", "hello-world"},
		{"  Web Dev  ", "web-dev"},
		{"Go 1.24: What's New?", "go-1-24-what-s-new"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, Slugify(tt.input), "Slugify(%q)", tt.input)
	}
}

func slugs(articles []*content.Article) []string {
	out := make([]string, 0, len(articles))
	for _, a := range articles {
		out = append(out, a.Slug)
	}
	return out
}
