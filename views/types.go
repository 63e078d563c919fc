package views

// SiteConfig holds site-wide settings populated from environment variables.
// Every handler passes this to templates so nothing is hardcoded.
type SiteConfig struct {
	Name        string // SITE_NAME  (default "FlyballHub")
	URL         string // SITE_URL   (default "http://localhost:3000")
	Description string // SITE_DESCRIPTION
	Tagline     string // SITE_TAGLINE, shown in the footer
	AppURL      string // APP_URL, the team management app this site fronts

	Nav       []NavLink
	FooterNav []NavLink
	Social    []NavLink
}

// NavLink is one navigation entry.
type NavLink struct {
	Label string
	Href  string
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head>.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	OGImage     string
	NoIndex     bool
}
