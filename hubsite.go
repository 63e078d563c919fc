// Package hubsite is the marketing site and content engine for a flyball
// community platform, built with Go, Echo, and templ. Pages are composed from
// typed content blocks stored in SQLite, rendered server-side with deferred
// loading of below-the-fold sections, and editable through a small admin with
// live preview over a websocket.
package hubsite

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/flyballhub/hubsite/builder"
	"github.com/flyballhub/hubsite/contact"
	"github.com/flyballhub/hubsite/geo"
	"github.com/flyballhub/hubsite/imgcdn"
	"github.com/flyballhub/hubsite/teams"
	"github.com/flyballhub/hubsite/views"
)

// Mailer delivers contact form submissions.
type Mailer = contact.Mailer

// Geocoder resolves a free-form location query to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, query string) *geo.Coords
}

// TeamDirectory lists teams for the finder.
type TeamDirectory interface {
	ListOrFallback(ctx context.Context, limit int) ([]teams.Team, bool)
}

// App is the central hubsite application. It wires together the store, cache,
// block registry, preview hub, handlers and middleware.
type App struct {
	Config  SiteConfig
	Echo    *echo.Echo
	Store   *Store
	Cache   *ContentCache
	Blocks  *builder.Registry
	Overlay *builder.Overlay
	Preview *PreviewHub

	imgb     *imgcdn.Builder
	mailer   Mailer
	geocoder Geocoder
	teams    TeamDirectory

	loginLimiter *AttemptLimiter
	formLimiter  *AttemptLimiter

	customRoutes []func(*App)
	staticDir    string
	lazyBlocks   bool
	stopWatch    func()
}

// New creates a hubsite App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:     cfg,
		Echo:       echo.New(),
		staticDir:  "public",
		lazyBlocks: true,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes the database, cache, renderers, middleware and routes,
// then starts the server.
func (a *App) Start() error {
	if err := a.setup(); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// setup wires every dependency short of the listener. The cache must exist
// before the seed import runs: importing invalidates it.
func (a *App) setup() error {
	if a.Config.AdminPassword == "" {
		return fmt.Errorf("hubsite: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("hubsite: SessionSecret is required")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("hubsite: init store: %w", err)
	}
	a.Store = store
	a.Cache = NewContentCache(a.Store, a.Config.PageCacheTTL)

	if a.Config.SeedDir != "" {
		if err := a.ImportSeedDir(a.Config.SeedDir); err != nil {
			return fmt.Errorf("hubsite: seed import: %w", err)
		}
	}

	a.Overlay = builder.NewOverlay()
	a.Preview = NewPreviewHub(a.Overlay)

	a.imgb = &imgcdn.Builder{
		BaseURL: a.Config.CDNBaseURL,
		Project: a.Config.CDNProject,
		Dataset: a.Config.CDNDataset,
	}
	a.Blocks = builder.NewRegistry(builder.WithLazyLoading(a.lazyBlocks))
	blockViews := &views.Blocks{Img: a.imgb}
	blockViews.RegisterAll(a.Blocks)

	if a.mailer == nil {
		a.mailer = &contact.HTTPMailer{
			Endpoint: a.Config.MailEndpoint,
			APIKey:   a.Config.MailAPIKey,
		}
	}
	if a.geocoder == nil {
		a.geocoder = geo.NewGeocoder(a.Config.GeocoderUA)
	}
	if a.teams == nil {
		a.teams = teams.NewClient(a.Config.TeamsAPIURL)
	}

	a.loginLimiter = NewAttemptLimiter(5, time.Minute)
	a.formLimiter = NewAttemptLimiter(10, time.Minute)

	if a.Config.SeedDir != "" && a.Config.WatchSeed {
		stop, err := a.watchSeedDir(a.Config.SeedDir)
		if err != nil {
			return fmt.Errorf("hubsite: seed watch: %w", err)
		}
		a.stopWatch = stop
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Embedded assets: the reveal client runtime and the site styles.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/reveal.js", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))
	e.GET("/public/site.css", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))
	e.GET("/public/admin.css", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))

	// User's static assets
	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	// Public routes
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/teams.json", a.handleTeamsJSON)
	e.POST("/contact/", a.handleContact)
	e.POST("/subscribe/", a.handleSubscribe)
	e.GET("/fragment/:slug/:key/", a.handleFragment)
	e.GET("/blog/", a.handleBlogIndex)
	e.GET("/blog/:slug/", a.handleBlogPost)
	e.GET("/", a.handleHome)
	e.GET("/:slug/", a.handlePage)

	// Preview routes (admin session required)
	e.GET("/preview/:slug/", a.handlePreviewPage)
	e.GET("/preview/ws", a.handlePreviewSocket)

	// Admin routes
	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)
	e.GET("/admin/pages/new/", a.handleAdminPageNew)
	e.GET("/admin/pages/:slug/", a.handleAdminPageEdit)
	e.POST("/admin/pages/save/", a.handleAdminPageSave)
	e.DELETE("/admin/pages/:slug/", a.handleAdminPageDelete)
	e.GET("/admin/posts/new/", a.handleAdminPostNew)
	e.GET("/admin/posts/:slug/", a.handleAdminPostEdit)
	e.POST("/admin/posts/save/", a.handleAdminPostSave)
	e.DELETE("/admin/posts/:slug/", a.handleAdminPostDelete)
	e.GET("/admin/redirects/", a.handleAdminRedirects)
	e.POST("/admin/redirects/save/", a.handleAdminRedirectSave)
	e.POST("/admin/redirects/delete/", a.handleAdminRedirectDelete)
	e.GET("/admin/images/", a.handleImageList)
	e.POST("/admin/images/upload/", a.handleImageUpload)
	e.DELETE("/admin/images/:filename/", a.handleImageDelete)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.stopWatch != nil {
		a.stopWatch()
	}
	if a.Preview != nil {
		a.Preview.Close()
	}
	if a.Store != nil {
		a.Store.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("hubsite: required environment variable %s is not set", key)
	}
	return v
}
