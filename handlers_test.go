package hubsite

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/flyballhub/hubsite/builder"
	"github.com/flyballhub/hubsite/geo"
	"github.com/flyballhub/hubsite/imgcdn"
	"github.com/flyballhub/hubsite/teams"
	"github.com/flyballhub/hubsite/views"
)

// newTestApp wires an App the way Start does, minus the listener.
func newTestApp(t *testing.T) *App {
	t.Helper()
	a := New(SiteConfig{
		Name:          "FlyballHub",
		URL:           "https://flyballhub.example",
		AdminPassword: "letmein",
		SessionSecret: "0123456789abcdef0123456789abcdef",
		DatabasePath:  filepath.Join(t.TempDir(), "site.db"),
	})

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	a.Store = store
	a.Cache = NewContentCache(store, a.Config.PageCacheTTL)
	a.Overlay = builder.NewOverlay()
	a.Preview = NewPreviewHub(a.Overlay)
	a.imgb = &imgcdn.Builder{
		BaseURL: a.Config.CDNBaseURL,
		Project: "test",
		Dataset: a.Config.CDNDataset,
	}
	a.Blocks = builder.NewRegistry(builder.WithLazyLoading(a.lazyBlocks))
	blockViews := &views.Blocks{Img: a.imgb}
	blockViews.RegisterAll(a.Blocks)
	a.loginLimiter = NewAttemptLimiter(5, time.Minute)
	a.formLimiter = NewAttemptLimiter(10, time.Minute)
	a.setupMiddleware()
	a.setupRoutes()

	t.Cleanup(func() { a.Close() })
	return a
}

func doRequest(a *App, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	return rec
}

func TestHandleRobots(t *testing.T) {
	a := newTestApp(t)

	rec := doRequest(a, http.MethodGet, "/robots.txt")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Disallow: /admin/") || !strings.Contains(body, "Disallow: /preview/") {
		t.Errorf("admin and preview should be disallowed: %s", body)
	}
	if !strings.Contains(body, "Sitemap: https://flyballhub.example/sitemap.xml") {
		t.Errorf("missing sitemap reference: %s", body)
	}
}

func TestHandlePageRendersBlocks(t *testing.T) {
	a := newTestApp(t)
	if _, err := a.Store.SavePage(testPage("features", true, "hero", "textBlock")); err != nil {
		t.Fatal(err)
	}

	rec := doRequest(a, http.MethodGet, "/features/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "<title>Page features | FlyballHub</title>") {
		t.Errorf("missing page title: %s", body[:200])
	}
	if !strings.Contains(body, `id="block-hero-a"`) {
		t.Error("hero section should render inline with its anchor id")
	}
	// The second block is below the fold and defers to the fragment route.
	if !strings.Contains(body, `hx-get="/fragment/features/textBlock-b/"`) {
		t.Error("below-the-fold block should render as a deferred skeleton")
	}
}

func TestHandlePageNotFound(t *testing.T) {
	a := newTestApp(t)

	rec := doRequest(a, http.MethodGet, "/no-such-page/")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Page not found") {
		t.Error("404 should render the styled not-found page")
	}
}

func TestHandleFragment(t *testing.T) {
	a := newTestApp(t)
	if _, err := a.Store.SavePage(testPage("features", true, "hero", "textBlock")); err != nil {
		t.Fatal(err)
	}

	rec := doRequest(a, http.MethodGet, "/fragment/features/textBlock-b/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "hx-get=") {
		t.Error("a fragment response must contain the real block, not another skeleton")
	}

	rec = doRequest(a, http.MethodGet, "/fragment/features/missing-key/")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown block key status = %d, want 404", rec.Code)
	}
}

func TestRedirectMiddleware(t *testing.T) {
	a := newTestApp(t)
	if err := a.Store.SaveRedirect("old", "/features/"); err != nil {
		t.Fatal(err)
	}
	a.Cache.Invalidate()

	rec := doRequest(a, http.MethodGet, "/old/")
	if rec.Code != http.StatusMovedPermanently {
		t.Fatalf("status = %d, want 301", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/features/" {
		t.Errorf("Location = %q, want %q", loc, "/features/")
	}
}

func TestTrailingSlashRedirect(t *testing.T) {
	a := newTestApp(t)
	if _, err := a.Store.SavePage(testPage("features", true, "hero")); err != nil {
		t.Fatal(err)
	}

	rec := doRequest(a, http.MethodGet, "/features")
	if rec.Code != http.StatusMovedPermanently {
		t.Fatalf("status = %d, want 301", rec.Code)
	}
	if loc := rec.Header().Get("Location"); !strings.HasSuffix(loc, "/features/") {
		t.Errorf("Location = %q, want trailing slash", loc)
	}
}

func TestSitemapListsPagesAndPosts(t *testing.T) {
	a := newTestApp(t)
	if _, err := a.Store.SavePage(testPage("features", true, "hero")); err != nil {
		t.Fatal(err)
	}
	if _, err := a.Store.SavePage(testPage("secret", false, "hero")); err != nil {
		t.Fatal(err)
	}

	rec := doRequest(a, http.MethodGet, "/sitemap.xml")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "<loc>https://flyballhub.example/features/</loc>") {
		t.Errorf("published page missing from sitemap: %s", body)
	}
	if strings.Contains(body, "secret") {
		t.Error("drafts must not appear in the sitemap")
	}
	if !strings.Contains(body, "<loc>https://flyballhub.example/blog/</loc>") {
		t.Error("blog index missing from sitemap")
	}
}

func TestPreviewRequiresAdminSession(t *testing.T) {
	a := newTestApp(t)
	if _, err := a.Store.SavePage(testPage("features", true, "hero")); err != nil {
		t.Fatal(err)
	}

	rec := doRequest(a, http.MethodGet, "/preview/features/")
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin/" {
		t.Errorf("Location = %q, want %q", loc, "/admin/")
	}
}

type stubGeocoder struct{ coords *geo.Coords }

func (g stubGeocoder) Geocode(ctx context.Context, query string) *geo.Coords { return g.coords }

type stubDirectory struct{ list []teams.Team }

func (d stubDirectory) ListOrFallback(ctx context.Context, limit int) ([]teams.Team, bool) {
	return d.list, true
}

func TestSetupImportsSeedDir(t *testing.T) {
	seedDir := t.TempDir()
	doc := `{"_type": "page", "slug": "welcome", "title": "Welcome",
		"pageBuilder": [{"_type": "hero", "_key": "h1", "title": "Hi"}]}`
	if err := os.WriteFile(filepath.Join(seedDir, "welcome.json"), []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	a := New(SiteConfig{
		Name:          "FlyballHub",
		AdminPassword: "letmein",
		SessionSecret: "0123456789abcdef0123456789abcdef",
		DatabasePath:  filepath.Join(t.TempDir(), "site.db"),
		SeedDir:       seedDir,
	})
	if err := a.setup(); err != nil {
		t.Fatalf("setup with a seed dir failed: %v", err)
	}
	t.Cleanup(func() { a.Close() })

	page, err := a.Cache.GetPage("welcome")
	if err != nil {
		t.Fatalf("seeded page not served: %v", err)
	}
	if page.Title != "Welcome" {
		t.Errorf("Title = %q, want %q", page.Title, "Welcome")
	}

	rec := doRequest(a, http.MethodGet, "/welcome/")
	if rec.Code != http.StatusOK {
		t.Errorf("seeded page status = %d, want 200", rec.Code)
	}
}

func TestTeamFinderGeocodeFallback(t *testing.T) {
	a := newTestApp(t)
	a.geocoder = stubGeocoder{}
	a.teams = stubDirectory{list: teams.SampleTeams()}
	if _, err := a.Store.SavePage(testPage("find-a-team", true, "hero", "teamFinder")); err != nil {
		t.Fatal(err)
	}

	rec := doRequest(a, http.MethodGet, "/fragment/find-a-team/teamFinder-b/?q=nowhere")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Couldn't find that location. Showing all teams.") {
		t.Errorf("missing geocode-failure notice: %s", body)
	}
	dublin := strings.Index(body, "Dublin Dashers")
	thames := strings.Index(body, "Thames Valley Racers")
	if dublin == -1 || thames == -1 {
		t.Fatalf("full team list should render after a failed geocode: %s", body)
	}
	if dublin > thames {
		t.Error("fallback list should stay alphabetical")
	}
}

func TestContactRequiresCSRF(t *testing.T) {
	a := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/contact/", strings.NewReader("name=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403 without a token", rec.Code)
	}
}
