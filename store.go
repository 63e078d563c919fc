package hubsite

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/flyballhub/hubsite/content"
)

// Store wraps a SQLite database holding page documents, blog posts, redirects,
// newsletter subscribers and uploaded image metadata.
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
	// Enable WAL mode for concurrent read/write access, set a busy timeout
	// so writers wait instead of returning SQLITE_BUSY immediately, and tune
	// performance: synchronous=NORMAL is safe with WAL and avoids an fsync
	// per transaction; larger cache and mmap reduce disk I/O.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
		PRAGMA mmap_size=268435456;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS pages (
    id TEXT PRIMARY KEY,
    slug TEXT NOT NULL UNIQUE,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    blocks TEXT NOT NULL DEFAULT '[]',
    updated_at TEXT NOT NULL DEFAULT '',
    published INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS posts (
    slug TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    date TEXT NOT NULL,
    image TEXT NOT NULL DEFAULT '',
    body TEXT NOT NULL DEFAULT '[]',
    published INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS redirects (
    from_path TEXT PRIMARY KEY,
    to_path TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS subscribers (
    email TEXT PRIMARY KEY,
    created_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS images (
    filename TEXT PRIMARY KEY,
    original_name TEXT NOT NULL,
    width INTEGER NOT NULL,
    height INTEGER NOT NULL,
    size INTEGER NOT NULL,
    uploaded_at TEXT NOT NULL
);
`)
	return err
}

func scanPage(scan func(dest ...interface{}) error) (content.Page, error) {
	var p content.Page
	var blocks string
	var published int
	if err := scan(&p.ID, &p.Slug, &p.Title, &p.Description, &blocks, &p.UpdatedAt, &published); err != nil {
		return content.Page{}, err
	}
	decoded, err := content.DecodeBlocks([]byte(blocks))
	if err != nil {
		return content.Page{}, err
	}
	p.Type = "page"
	p.Blocks = decoded
	p.Published = published == 1
	return p, nil
}

const pageColumns = `id, slug, title, description, blocks, updated_at, published`

// GetPage returns a published page by slug.
func (s *Store) GetPage(slug string) (content.Page, error) {
	row := s.db.QueryRow(`SELECT `+pageColumns+` FROM pages WHERE slug = ? AND published = 1`, slug)
	return scanPage(row.Scan)
}

// GetPageAny returns a page by slug regardless of published status (for admin
// and preview).
func (s *Store) GetPageAny(slug string) (content.Page, error) {
	row := s.db.QueryRow(`SELECT `+pageColumns+` FROM pages WHERE slug = ?`, slug)
	return scanPage(row.Scan)
}

// ListPages returns all published pages ordered by slug.
func (s *Store) ListPages() ([]content.Page, error) {
	return s.listPages(`SELECT ` + pageColumns + ` FROM pages WHERE published = 1 ORDER BY slug`)
}

// ListAllPages returns every page including drafts (for admin).
func (s *Store) ListAllPages() ([]content.Page, error) {
	return s.listPages(`SELECT ` + pageColumns + ` FROM pages ORDER BY slug`)
}

func (s *Store) listPages(query string) ([]content.Page, error) {
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []content.Page
	for rows.Next() {
		p, err := scanPage(rows.Scan)
		if err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

// SavePage upserts a page document. A missing id is minted; block keys are
// left untouched because the editor owns them.
func (s *Store) SavePage(p content.Page) (content.Page, error) {
	if p.ID == "" {
		p.ID = "page-" + uuid.NewString()
	}
	blocks, err := content.EncodeBlocks(p.Blocks)
	if err != nil {
		return content.Page{}, err
	}
	published := 0
	if p.Published {
		published = 1
	}
	_, err = s.db.Exec(`INSERT INTO pages (id, slug, title, description, blocks, updated_at, published)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			slug = excluded.slug, title = excluded.title, description = excluded.description,
			blocks = excluded.blocks, updated_at = excluded.updated_at, published = excluded.published`,
		p.ID, p.Slug, p.Title, p.Description, string(blocks), p.UpdatedAt, published)
	return p, err
}

// DeletePage removes a page by slug.
func (s *Store) DeletePage(slug string) error {
	_, err := s.db.Exec(`DELETE FROM pages WHERE slug = ?`, slug)
	return err
}

func scanPost(scan func(dest ...interface{}) error) (content.Post, error) {
	var p content.Post
	var image, body string
	var published int
	if err := scan(&p.Slug, &p.Title, &p.Description, &p.Date, &image, &body, &published); err != nil {
		return content.Post{}, err
	}
	if image != "" {
		var img content.Image
		if err := json.Unmarshal([]byte(image), &img); err == nil && img.Valid() {
			p.Image = &img
		}
	}
	if body != "" {
		if err := json.Unmarshal([]byte(body), &p.Body); err != nil {
			return content.Post{}, err
		}
	}
	p.Published = published == 1
	return p, nil
}

const postColumns = `slug, title, description, date, image, body, published`

// ListPosts returns all published posts ordered by date descending.
func (s *Store) ListPosts() ([]content.Post, error) {
	return s.listPosts(`SELECT ` + postColumns + ` FROM posts WHERE published = 1 ORDER BY date DESC`)
}

// ListAllPosts returns every post including drafts (for admin).
func (s *Store) ListAllPosts() ([]content.Post, error) {
	return s.listPosts(`SELECT ` + postColumns + ` FROM posts ORDER BY date DESC`)
}

func (s *Store) listPosts(query string) ([]content.Post, error) {
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []content.Post
	for rows.Next() {
		p, err := scanPost(rows.Scan)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// GetPost returns a single published post by slug.
func (s *Store) GetPost(slug string) (content.Post, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE slug = ? AND published = 1`, slug)
	return scanPost(row.Scan)
}

// GetPostAny returns a post by slug regardless of published status (for admin).
func (s *Store) GetPostAny(slug string) (content.Post, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE slug = ?`, slug)
	return scanPost(row.Scan)
}

// SavePost upserts a blog post.
func (s *Store) SavePost(p content.Post) error {
	image := ""
	if p.Image.Valid() {
		b, err := json.Marshal(p.Image)
		if err != nil {
			return err
		}
		image = string(b)
	}
	body, err := json.Marshal(p.Body)
	if err != nil {
		return err
	}
	published := 0
	if p.Published {
		published = 1
	}
	_, err = s.db.Exec(`INSERT OR REPLACE INTO posts (slug, title, description, date, image, body, published) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.Slug, p.Title, p.Description, p.Date, image, string(body), published)
	return err
}

// DeletePost removes a post by slug.
func (s *Store) DeletePost(slug string) error {
	_, err := s.db.Exec(`DELETE FROM posts WHERE slug = ?`, slug)
	return err
}

// ListRedirects returns the redirect table as from -> to pairs ordered by
// source path.
func (s *Store) ListRedirects() ([][2]string, error) {
	rows, err := s.db.Query(`SELECT from_path, to_path FROM redirects ORDER BY from_path`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out [][2]string
	for rows.Next() {
		var from, to string
		if err := rows.Scan(&from, &to); err != nil {
			return nil, err
		}
		out = append(out, [2]string{from, to})
	}
	return out, rows.Err()
}

// SaveRedirect upserts a redirect. Source paths are normalized to a leading
// and trailing slash so lookups match the router's canonical form.
func (s *Store) SaveRedirect(from, to string) error {
	from = normalizeRedirectPath(from)
	if from == "/" || to == "" {
		return nil
	}
	_, err := s.db.Exec(`INSERT OR REPLACE INTO redirects (from_path, to_path) VALUES (?, ?)`, from, to)
	return err
}

// DeleteRedirect removes a redirect by source path.
func (s *Store) DeleteRedirect(from string) error {
	_, err := s.db.Exec(`DELETE FROM redirects WHERE from_path = ?`, normalizeRedirectPath(from))
	return err
}

func normalizeRedirectPath(p string) string {
	p = strings.TrimSpace(p)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p
}

// AddSubscriber records a newsletter subscriber. Duplicate signups are
// silently ignored.
func (s *Store) AddSubscriber(email, createdAt string) error {
	_, err := s.db.Exec(`INSERT OR IGNORE INTO subscribers (email, created_at) VALUES (?, ?)`,
		strings.ToLower(strings.TrimSpace(email)), createdAt)
	return err
}

// CountSubscribers returns the number of newsletter subscribers.
func (s *Store) CountSubscribers() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM subscribers`).Scan(&n)
	return n, err
}

// ListImages returns uploaded image metadata, newest first.
func (s *Store) ListImages() ([]UploadedImage, error) {
	rows, err := s.db.Query(`SELECT filename, original_name, width, height, size, uploaded_at FROM images ORDER BY uploaded_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []UploadedImage
	for rows.Next() {
		var img UploadedImage
		if err := rows.Scan(&img.Filename, &img.OriginalName, &img.Width, &img.Height, &img.Size, &img.UploadedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// SaveImage records uploaded image metadata.
func (s *Store) SaveImage(img UploadedImage) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO images (filename, original_name, width, height, size, uploaded_at) VALUES (?, ?, ?, ?, ?, ?)`,
		img.Filename, img.OriginalName, img.Width, img.Height, img.Size, img.UploadedAt)
	return err
}

// DeleteImage removes image metadata by filename.
func (s *Store) DeleteImage(filename string) error {
	_, err := s.db.Exec(`DELETE FROM images WHERE filename = ?`, filename)
	return err
}
