package site

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Settings holds site-wide configuration shared by generators and plugins.
// Keys follow the Pelican naming used in pelicanconf files.
type Settings struct {
	SiteURL    string            `toml:"SITEURL"`  // e.g. "https://example.com"
	SiteName   string            `toml:"SITENAME"` // og:site_name
	Locale     []string          `toml:"-"`        // LOCALE, string or list; first entry is the default
	AuthorFBID map[string]string `toml:"-"`        // AUTHOR_FB_ID, ids may be quoted or bare numbers

	ArticleURL string `toml:"ARTICLE_URL"` // default "{slug}.html"
	DraftURL   string `toml:"DRAFT_URL"`   // default "drafts/{slug}.html"

	SummaryMaxLength int    `toml:"SUMMARY_MAX_LENGTH"` // words, default 50, 0 disables
	RelatedPostsMax  int    `toml:"RELATED_POSTS_MAX"`  // 0 disables related posts
	DefaultCategory  string `toml:"DEFAULT_CATEGORY"`
}

// DefaultSettings returns the settings used for keys a file leaves out.
func DefaultSettings() Settings {
	return Settings{
		ArticleURL:       "{slug}.html",
		DraftURL:         "drafts/{slug}.html",
		SummaryMaxLength: 50,
	}
}

// DefaultLocale returns the first configured locale, or "".
func (s Settings) DefaultLocale() string {
	if len(s.Locale) == 0 {
		return ""
	}
	return s.Locale[0]
}

// LoadSettings reads a TOML settings file over DefaultSettings. A missing
// file is not an error; exists reports whether one was read.
func LoadSettings(path string) (settings Settings, exists bool, err error) {
	settings = DefaultSettings()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return settings, false, nil
		}
		return Settings{}, false, fmt.Errorf("site: read settings: %w", err)
	}
	settings, err = ParseSettings(data)
	if err != nil {
		return Settings{}, true, err
	}
	return settings, true, nil
}

// ParseSettings decodes TOML settings over DefaultSettings.
func ParseSettings(data []byte) (Settings, error) {
	settings := DefaultSettings()
	if err := toml.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("site: parse settings: %w", err)
	}
	// LOCALE may be a single string or a list of strings, and AUTHOR_FB_ID
	// values may be strings or integers.
	var raw struct {
		Locale     any            `toml:"LOCALE"`
		AuthorFBID map[string]any `toml:"AUTHOR_FB_ID"`
	}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Settings{}, fmt.Errorf("site: parse settings: %w", err)
	}
	locale, err := localeList(raw.Locale)
	if err != nil {
		return Settings{}, err
	}
	settings.Locale = locale
	authors, err := authorIDs(raw.AuthorFBID)
	if err != nil {
		return Settings{}, err
	}
	settings.AuthorFBID = authors

	settings.normalize()
	if err := settings.Validate(); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

func localeList(v any) ([]string, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{val}, nil
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("site: LOCALE entries must be strings, got %T", item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("site: LOCALE must be a string or list of strings, got %T", v)
	}
}

func authorIDs(raw map[string]any) (map[string]string, error) {
	if raw == nil {
		return nil, nil
	}
	out := make(map[string]string, len(raw))
	for name, v := range raw {
		switch id := v.(type) {
		case string:
			out[name] = strings.TrimSpace(id)
		case int64:
			out[name] = fmt.Sprint(id)
		default:
			return nil, fmt.Errorf("site: AUTHOR_FB_ID[%q] must be a string or integer, got %T", name, v)
		}
	}
	return out, nil
}

func (s *Settings) normalize() {
	s.SiteURL = strings.TrimSpace(s.SiteURL)
	s.SiteName = strings.TrimSpace(s.SiteName)
	for i := range s.Locale {
		s.Locale[i] = strings.TrimSpace(s.Locale[i])
	}
	if strings.TrimSpace(s.ArticleURL) == "" {
		s.ArticleURL = "{slug}.html"
	}
	if strings.TrimSpace(s.DraftURL) == "" {
		s.DraftURL = "drafts/{slug}.html"
	}
	s.DefaultCategory = strings.TrimSpace(s.DefaultCategory)
}

// Validate reports settings that cannot drive a generation pass.
func (s Settings) Validate() error {
	if s.SummaryMaxLength < 0 {
		return fmt.Errorf("site: SUMMARY_MAX_LENGTH must be >= 0, got %d", s.SummaryMaxLength)
	}
	if s.RelatedPostsMax < 0 {
		return fmt.Errorf("site: RELATED_POSTS_MAX must be >= 0, got %d", s.RelatedPostsMax)
	}
	if !strings.Contains(s.ArticleURL, "{slug}") {
		return fmt.Errorf("site: ARTICLE_URL %q must contain {slug}", s.ArticleURL)
	}
	if !strings.Contains(s.DraftURL, "{slug}") {
		return fmt.Errorf("site: DRAFT_URL %q must contain {slug}", s.DraftURL)
	}
	return nil
}
