package site

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a requested post does not exist.
var ErrNotFound = sql.ErrNoRows

// Post is a stored article row as authored, before a generation pass turns
// it into a content.Article.
type Post struct {
	Slug      string
	Title     string
	Date      string // YYYY-MM-DD
	Modified  string // YYYY-MM-DD, empty when never edited
	Category  string
	Authors   []string
	Tags      []string
	Summary   string
	Content   string
	Metadata  map[string]any
	Published bool
}

// Store wraps a SQLite database of posts.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL plus a busy timeout lets a running blog keep writing while a
	// generation pass reads.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// columnMigrations brings databases created by older releases up to date.
var columnMigrations = []string{
	`ALTER TABLE posts ADD COLUMN published INTEGER NOT NULL DEFAULT 1;`,
	`ALTER TABLE posts ADD COLUMN modified TEXT NOT NULL DEFAULT '';`,
	`ALTER TABLE posts ADD COLUMN category TEXT NOT NULL DEFAULT '';`,
	`ALTER TABLE posts ADD COLUMN authors TEXT NOT NULL DEFAULT '';`,
	`ALTER TABLE posts ADD COLUMN metadata TEXT NOT NULL DEFAULT '{}';`,
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    slug TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    date TEXT NOT NULL,
    tags TEXT NOT NULL,
    summary TEXT NOT NULL,
    content TEXT NOT NULL
);
`)
	if err != nil {
		return err
	}
	for _, stmt := range columnMigrations {
		if _, err := s.db.Exec(stmt); err != nil {
			if strings.Contains(strings.ToLower(err.Error()), "duplicate column") {
				continue
			}
			return err
		}
	}
	return nil
}

const postColumns = `slug, title, date, modified, category, authors, tags, summary, content, metadata, published`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (Post, error) {
	var slug, title, date, modified, category, authors, tags, summary, content, metadata string
	var published int
	if err := row.Scan(&slug, &title, &date, &modified, &category, &authors, &tags, &summary, &content, &metadata, &published); err != nil {
		return Post{}, err
	}
	var meta map[string]any
	if err := json.Unmarshal([]byte(metadata), &meta); err != nil {
		return Post{}, fmt.Errorf("decode metadata for %q: %w", slug, err)
	}
	return Post{
		Slug:      slug,
		Title:     title,
		Date:      date,
		Modified:  modified,
		Category:  category,
		Authors:   ParseList(authors),
		Tags:      ParseList(tags),
		Summary:   summary,
		Content:   content,
		Metadata:  meta,
		Published: published == 1,
	}, nil
}

// ListPosts returns every post, published and draft, newest first.
func (s *Store) ListPosts(ctx context.Context) ([]Post, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+postColumns+` FROM posts ORDER BY date DESC, slug ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPost returns a post by slug regardless of published status.
func (s *Store) GetPost(ctx context.Context, slug string) (Post, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM posts WHERE slug = ?`, slug)
	return scanPost(row)
}

// SavePost upserts a post. Tags are normalized to lowercase; author names
// are kept as written since they key AUTHOR_FB_ID.
func (s *Store) SavePost(ctx context.Context, p Post) error {
	normalizedTags := make([]string, len(p.Tags))
	for i, t := range p.Tags {
		normalizedTags[i] = strings.ToLower(strings.TrimSpace(t))
	}
	meta := p.Metadata
	if meta == nil {
		meta = map[string]any{}
	}
	metadata, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("encode metadata for %q: %w", p.Slug, err)
	}
	published := 0
	if p.Published {
		published = 1
	}
	_, err = s.db.ExecContext(ctx, `INSERT OR REPLACE INTO posts (`+postColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Slug, p.Title, p.Date, p.Modified, strings.TrimSpace(p.Category),
		joinList(p.Authors), joinList(normalizedTags), p.Summary, p.Content, string(metadata), published)
	return err
}

// DeletePost removes a post by slug.
func (s *Store) DeletePost(ctx context.Context, slug string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE slug = ?`, slug)
	return err
}

// ParseList splits a comma-delimited list (e.g. ",go,web,") into a slice.
// An empty list yields nil.
func ParseList(s string) []string {
	s = strings.Trim(s, ",")
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func joinList(vals []string) string {
	vals = FilterEmpty(vals)
	if len(vals) == 0 {
		return ""
	}
	return "," + strings.Join(vals, ",") + ","
}
