package hubsite

import (
	"time"

	"github.com/flyballhub/hubsite/views"
)

// SiteConfig holds all configuration for a hubsite instance.
type SiteConfig struct {
	Name        string // Site name (default "FlyballHub")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for feeds and meta tags
	Tagline     string // Footer tagline
	AppURL      string // Team management app URL, shown as the nav CTA

	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite path (default "data/site.db")
	SeedDir      string // Optional directory of JSON documents imported at boot
	WatchSeed    bool   // Re-import seed documents when files change

	AdminPassword string // Required: admin login password
	SessionSecret string // Required: session encryption secret
	CookieSecure  bool   // Set true for HTTPS

	// Image CDN settings for asset URL building.
	CDNBaseURL string // default "https://cdn.sanity.io"
	CDNProject string
	CDNDataset string // default "production"

	// Team directory and geocoding.
	TeamsAPIURL     string // default derived from AppURL
	GeocoderUA      string // User-Agent sent to the geocoder (required by Nominatim)
	TeamFinderLimit int    // max teams fetched per search (default 100)

	// Outbound mail for the contact form.
	MailEndpoint string // default "https://api.resend.com/emails"
	MailAPIKey   string
	ContactFrom  string
	ContactTo    []string

	PageCacheTTL time.Duration // content cache TTL (default 5min)

	Nav       []views.NavLink
	FooterNav []views.NavLink
	Social    []views.NavLink
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "FlyballHub"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/site.db"
	}
	if c.CDNBaseURL == "" {
		c.CDNBaseURL = "https://cdn.sanity.io"
	}
	if c.CDNDataset == "" {
		c.CDNDataset = "production"
	}
	if c.TeamsAPIURL == "" && c.AppURL != "" {
		c.TeamsAPIURL = c.AppURL
	}
	if c.TeamFinderLimit == 0 {
		c.TeamFinderLimit = 100
	}
	if c.MailEndpoint == "" {
		c.MailEndpoint = "https://api.resend.com/emails"
	}
	if c.PageCacheTTL == 0 {
		c.PageCacheTTL = 5 * time.Minute
	}
	if len(c.Nav) == 0 {
		c.Nav = []views.NavLink{
			{Label: "Features", Href: "/features/"},
			{Label: "Find a Team", Href: "/find-a-team/"},
			{Label: "News", Href: "/blog/"},
			{Label: "Contact", Href: "/contact/"},
		}
	}
}

// viewConfig projects the app configuration into the shape templates consume.
func (c *SiteConfig) viewConfig() views.SiteConfig {
	return views.SiteConfig{
		Name:        c.Name,
		URL:         c.URL,
		Description: c.Description,
		Tagline:     c.Tagline,
		AppURL:      c.AppURL,
		Nav:         c.Nav,
		FooterNav:   c.FooterNav,
		Social:      c.Social,
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithMailer overrides the outbound mailer, mainly for tests.
func WithMailer(m Mailer) Option {
	return func(a *App) {
		a.mailer = m
	}
}

// WithGeocoder overrides the geocoder, mainly for tests.
func WithGeocoder(g Geocoder) Option {
	return func(a *App) {
		a.geocoder = g
	}
}

// WithTeamDirectory overrides the team directory client, mainly for tests.
func WithTeamDirectory(d TeamDirectory) Option {
	return func(a *App) {
		a.teams = d
	}
}

// WithLazyBlocks toggles deferred fragment loading of below-the-fold blocks.
func WithLazyBlocks(on bool) Option {
	return func(a *App) {
		a.lazyBlocks = on
	}
}
