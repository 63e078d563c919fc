package views

import (
	"bytes"
	"context"
	"io"

	"github.com/a-h/templ"
)

// Layout wraps body in the full HTML document: head metadata, navigation and
// footer. Every public page goes through here.
func Layout(cfg SiteConfig, meta PageMeta, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		writeHead(&buf, cfg, meta)
		writeNav(&buf, cfg)
		buf.WriteString(`<main id="main">`)
		if _, err := w.Write(buf.Bytes()); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		buf.Reset()
		buf.WriteString(`</main>`)
		writeFooter(&buf, cfg)
		buf.WriteString(`</body></html>`)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func writeHead(buf *bytes.Buffer, cfg SiteConfig, meta PageMeta) {
	title := meta.Title
	if title == "" {
		title = cfg.Name
	} else if title != cfg.Name {
		title += " | " + cfg.Name
	}
	desc := meta.Description
	if desc == "" {
		desc = cfg.Description
	}
	ogType := meta.OGType
	if ogType == "" {
		ogType = "website"
	}

	buf.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
	buf.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
	buf.WriteString(`<title>` + e(title) + `</title>`)
	if desc != "" {
		buf.WriteString(`<meta name="description" content="` + e(desc) + `">`)
	}
	if meta.NoIndex {
		buf.WriteString(`<meta name="robots" content="noindex, nofollow">`)
	}
	if meta.URL != "" {
		buf.WriteString(`<link rel="canonical" href="` + e(meta.URL) + `">`)
		buf.WriteString(`<meta property="og:url" content="` + e(meta.URL) + `">`)
	}
	buf.WriteString(`<meta property="og:title" content="` + e(title) + `">`)
	if desc != "" {
		buf.WriteString(`<meta property="og:description" content="` + e(desc) + `">`)
	}
	buf.WriteString(`<meta property="og:type" content="` + ogType + `">`)
	buf.WriteString(`<meta property="og:site_name" content="` + e(cfg.Name) + `">`)
	if meta.OGImage != "" {
		buf.WriteString(`<meta property="og:image" content="` + e(meta.OGImage) + `">`)
		buf.WriteString(`<meta name="twitter:card" content="summary_large_image">`)
	}
	buf.WriteString(`<link rel="alternate" type="application/rss+xml" title="` + e(cfg.Name) + `" href="/feed.xml">`)
	buf.WriteString(`<link rel="stylesheet" href="/public/site.css">`)
	buf.WriteString(`<script src="https://unpkg.com/htmx.org@1.9.12/dist/htmx.min.js" defer></script>`)
	buf.WriteString(`<script src="/public/reveal.js" defer></script>`)
	buf.WriteString(`<script type="application/ld+json">` + WebsiteJsonLD(cfg) + `</script>`)
	buf.WriteString(`<script type="application/ld+json">` + OrganizationJsonLD(cfg) + `</script>`)
	buf.WriteString(`</head><body>`)
}

func writeNav(buf *bytes.Buffer, cfg SiteConfig) {
	buf.WriteString(`<a class="skip-link" href="#main">Skip to content</a>`)
	buf.WriteString(`<header class="site-header"><nav class="site-nav" aria-label="Main">`)
	buf.WriteString(`<a class="site-brand" href="/">` + e(cfg.Name) + `</a>`)
	buf.WriteString(`<ul class="site-nav-links">`)
	for _, link := range cfg.Nav {
		buf.WriteString(`<li><a href="` + e(link.Href) + `">` + e(link.Label) + `</a></li>`)
	}
	buf.WriteString(`</ul>`)
	if cfg.AppURL != "" {
		buf.WriteString(`<a class="btn btn-default site-nav-cta" href="` + e(cfg.AppURL) + `">Open App</a>`)
	}
	buf.WriteString(`</nav></header>`)
}

func writeFooter(buf *bytes.Buffer, cfg SiteConfig) {
	buf.WriteString(`<footer class="site-footer"><div class="site-footer-inner">`)
	buf.WriteString(`<p class="site-footer-brand">` + e(cfg.Name) + `</p>`)
	if cfg.Tagline != "" {
		buf.WriteString(`<p class="site-footer-tagline">` + e(cfg.Tagline) + `</p>`)
	}
	if len(cfg.FooterNav) > 0 {
		buf.WriteString(`<ul class="site-footer-links">`)
		for _, link := range cfg.FooterNav {
			buf.WriteString(`<li><a href="` + e(link.Href) + `">` + e(link.Label) + `</a></li>`)
		}
		buf.WriteString(`</ul>`)
	}
	if len(cfg.Social) > 0 {
		buf.WriteString(`<ul class="site-footer-social">`)
		for _, link := range cfg.Social {
			buf.WriteString(`<li><a href="` + e(link.Href) + `" rel="noopener noreferrer">` + e(link.Label) + `</a></li>`)
		}
		buf.WriteString(`</ul>`)
	}
	buf.WriteString(`</div></footer>`)
}

// NotFound is the 404 page body.
func NotFound() templ.Component {
	return component(func(buf *bytes.Buffer) {
		buf.WriteString(`<div class="error-page"><h1>Page not found</h1>`)
		buf.WriteString(`<p>The page you are looking for does not exist or has moved.</p>`)
		buf.WriteString(`<a class="btn btn-default" href="/">Back to home</a></div>`)
	})
}

// ServerError is the 500 page body.
func ServerError() templ.Component {
	return component(func(buf *bytes.Buffer) {
		buf.WriteString(`<div class="error-page"><h1>Something went wrong</h1>`)
		buf.WriteString(`<p>An unexpected error occurred. Please try again later.</p></div>`)
	})
}
