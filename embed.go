package hubsite

import "embed"

// EmbeddedAssets holds the static assets shipped with the site binary:
// reveal.js, site.css and admin.css.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
