package hubsite

import (
	"database/sql"
	"sync"
	"time"

	"github.com/flyballhub/hubsite/content"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = sql.ErrNoRows

// ContentCache is an in-memory cache of published pages, posts and redirects
// with TTL. Reads on the hot path never hit SQLite while the cache is fresh.
type ContentCache struct {
	mu        sync.RWMutex
	pages     map[string]content.Page
	posts     []content.Post
	redirects map[string]string
	fetched   time.Time
	ttl       time.Duration
	store     *Store
}

// NewContentCache creates a ContentCache backed by the given Store.
func NewContentCache(s *Store, ttl time.Duration) *ContentCache {
	return &ContentCache{store: s, ttl: ttl}
}

func (c *ContentCache) valid() bool {
	return c.pages != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *ContentCache) Invalidate() {
	c.mu.Lock()
	c.pages = nil
	c.posts = nil
	c.redirects = nil
	c.mu.Unlock()
}

func (c *ContentCache) load() error {
	if c.valid() {
		return nil
	}
	pages, err := c.store.ListPages()
	if err != nil {
		return err
	}
	posts, err := c.store.ListPosts()
	if err != nil {
		return err
	}
	redirects, err := c.store.ListRedirects()
	if err != nil {
		return err
	}
	pageMap := make(map[string]content.Page, len(pages))
	for _, p := range pages {
		pageMap[p.Slug] = p
	}
	redirectMap := make(map[string]string, len(redirects))
	for _, r := range redirects {
		redirectMap[r[0]] = r[1]
	}
	c.pages = pageMap
	c.posts = posts
	c.redirects = redirectMap
	c.fetched = time.Now()
	return nil
}

// ensureLoaded refreshes the cache if stale. It tries a read lock first and
// only takes the write lock when a reload is needed.
func (c *ContentCache) ensureLoaded() (map[string]content.Page, []content.Post, map[string]string, error) {
	c.mu.RLock()
	if c.valid() {
		pages, posts, redirects := c.pages, c.posts, c.redirects
		c.mu.RUnlock()
		return pages, posts, redirects, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return nil, nil, nil, err
	}
	return c.pages, c.posts, c.redirects, nil
}

// GetPage returns a published page by slug.
func (c *ContentCache) GetPage(slug string) (content.Page, error) {
	pages, _, _, err := c.ensureLoaded()
	if err != nil {
		return content.Page{}, err
	}
	p, ok := pages[slug]
	if !ok {
		return content.Page{}, ErrNotFound
	}
	return p, nil
}

// ListPages returns all published pages.
func (c *ContentCache) ListPages() ([]content.Page, error) {
	pages, _, _, err := c.ensureLoaded()
	if err != nil {
		return nil, err
	}
	out := make([]content.Page, 0, len(pages))
	for _, p := range pages {
		out = append(out, p)
	}
	return out, nil
}

// ListPosts returns published posts, newest first.
func (c *ContentCache) ListPosts() ([]content.Post, error) {
	_, posts, _, err := c.ensureLoaded()
	return posts, err
}

// GetPost returns a single published post by slug from the cache.
func (c *ContentCache) GetPost(slug string) (content.Post, error) {
	_, posts, _, err := c.ensureLoaded()
	if err != nil {
		return content.Post{}, err
	}
	for _, p := range posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return content.Post{}, ErrNotFound
}

// Redirect resolves a request path against the redirect table, returning the
// target and whether one exists.
func (c *ContentCache) Redirect(path string) (string, bool) {
	_, _, redirects, err := c.ensureLoaded()
	if err != nil {
		return "", false
	}
	to, ok := redirects[path]
	return to, ok
}
