package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	"github.com/flyballhub/hubsite"
	"github.com/flyballhub/hubsite/views"
)

// version is set at build time via ldflags.
var version = "dev"

// fileConfig is the optional TOML site configuration. Secrets (admin
// password, session secret, API keys) come from the environment only.
type fileConfig struct {
	Name        string `toml:"name"`
	URL         string `toml:"url"`
	Description string `toml:"description"`
	Tagline     string `toml:"tagline"`
	AppURL      string `toml:"app_url"`

	Addr         string `toml:"addr"`
	DatabasePath string `toml:"database_path"`
	SeedDir      string `toml:"seed_dir"`
	WatchSeed    bool   `toml:"watch_seed"`

	CDNBaseURL string `toml:"cdn_base_url"`
	CDNProject string `toml:"cdn_project"`
	CDNDataset string `toml:"cdn_dataset"`

	TeamsAPIURL     string `toml:"teams_api_url"`
	GeocoderUA      string `toml:"geocoder_user_agent"`
	TeamFinderLimit int    `toml:"team_finder_limit"`

	MailEndpoint string   `toml:"mail_endpoint"`
	ContactFrom  string   `toml:"contact_from"`
	ContactTo    []string `toml:"contact_to"`

	CacheTTLSeconds int `toml:"cache_ttl_seconds"`

	Nav       []navLink `toml:"nav"`
	FooterNav []navLink `toml:"footer_nav"`
	Social    []navLink `toml:"social"`
}

type navLink struct {
	Label string `toml:"label"`
	Href  string `toml:"href"`
}

func main() {
	// Missing .env is fine; production sets real environment variables.
	_ = godotenv.Load()

	cmd := &cli.Command{
		Name:    "hubsite",
		Usage:   "Flyball community site and content engine",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to TOML site configuration",
				Value:   "hubsite.toml",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Start the site server",
				Action: func(ctx context.Context, c *cli.Command) error {
					return serve(ctx, c.String("config"))
				},
			},
			{
				Name:      "seed",
				Usage:     "Import seed documents into the database and exit",
				ArgsUsage: "<dir>",
				Action: func(ctx context.Context, c *cli.Command) error {
					return seed(c.String("config"), c.Args().First())
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (hubsite.SiteConfig, error) {
	var fc fileConfig
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &fc); err != nil {
			return hubsite.SiteConfig{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Config file is optional; environment alone can run the site.
	default:
		return hubsite.SiteConfig{}, err
	}

	cfg := hubsite.SiteConfig{
		Name:        hubsite.EnvOr("SITE_NAME", fc.Name),
		URL:         hubsite.EnvOr("SITE_URL", fc.URL),
		Description: hubsite.EnvOr("SITE_DESCRIPTION", fc.Description),
		Tagline:     hubsite.EnvOr("SITE_TAGLINE", fc.Tagline),
		AppURL:      hubsite.EnvOr("APP_URL", fc.AppURL),

		Addr:         hubsite.EnvOr("ADDR", fc.Addr),
		DatabasePath: hubsite.EnvOr("DATABASE_PATH", fc.DatabasePath),
		SeedDir:      hubsite.EnvOr("SEED_DIR", fc.SeedDir),
		WatchSeed:    envBool("WATCH_SEED", fc.WatchSeed),

		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		CookieSecure:  envBool("COOKIE_SECURE", false),

		CDNBaseURL: hubsite.EnvOr("CDN_BASE_URL", fc.CDNBaseURL),
		CDNProject: hubsite.EnvOr("CDN_PROJECT", fc.CDNProject),
		CDNDataset: hubsite.EnvOr("CDN_DATASET", fc.CDNDataset),

		TeamsAPIURL:     hubsite.EnvOr("TEAMS_API_URL", fc.TeamsAPIURL),
		GeocoderUA:      hubsite.EnvOr("GEOCODER_USER_AGENT", fc.GeocoderUA),
		TeamFinderLimit: fc.TeamFinderLimit,

		MailEndpoint: hubsite.EnvOr("MAIL_ENDPOINT", fc.MailEndpoint),
		MailAPIKey:   os.Getenv("MAIL_API_KEY"),
		ContactFrom:  hubsite.EnvOr("CONTACT_FROM", fc.ContactFrom),
		ContactTo:    fc.ContactTo,

		Nav:       viewLinks(fc.Nav),
		FooterNav: viewLinks(fc.FooterNav),
		Social:    viewLinks(fc.Social),
	}
	if fc.CacheTTLSeconds > 0 {
		cfg.PageCacheTTL = time.Duration(fc.CacheTTLSeconds) * time.Second
	}
	return cfg, nil
}

func serve(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	app := hubsite.New(cfg)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		app.Close()
		app.Echo.Shutdown(context.Background())
	}()

	return app.Start()
}

func seed(configPath, dir string) error {
	if dir == "" {
		return fmt.Errorf("usage: hubsite seed <dir>")
	}
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	cfg.SeedDir = ""
	cfg.WatchSeed = false
	// Start() requires these but the seed command never serves requests.
	if cfg.AdminPassword == "" {
		cfg.AdminPassword = "seed"
	}
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = "seed"
	}

	app := hubsite.New(cfg)
	store, err := hubsite.NewStore(app.Config.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()
	app.Store = store
	app.Cache = hubsite.NewContentCache(store, app.Config.PageCacheTTL)

	if err := app.ImportSeedDir(dir); err != nil {
		return err
	}
	fmt.Printf("Seeded from %s into %s\n", dir, app.Config.DatabasePath)
	return nil
}

func viewLinks(links []navLink) []views.NavLink {
	if len(links) == 0 {
		return nil
	}
	out := make([]views.NavLink, len(links))
	for i, l := range links {
		out[i] = views.NavLink{Label: l.Label, Href: l.Href}
	}
	return out
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
