package views

import (
	"bytes"
	"encoding/json"
	"html"
	"net/url"
	"path"
	"strings"

	"github.com/flyballhub/hubsite/content"
)

// buildURL joins path segments onto a base URL, ensuring a trailing slash.
func buildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// e escapes text content and attribute values.
func e(s string) string {
	return html.EscapeString(s)
}

// PathEscape wraps url.PathEscape for use in view expressions.
func PathEscape(s string) string {
	return url.PathEscape(s)
}

// writeButton renders one CTA button with its variant class.
func writeButton(buf *bytes.Buffer, btn content.Button, extraClass string) {
	if btn.Text == "" || btn.Href == "" {
		return
	}
	class := "btn btn-" + btn.Variant
	if btn.Variant == "" {
		class = "btn btn-default"
	}
	if extraClass != "" {
		class += " " + extraClass
	}
	buf.WriteString(`<a class="` + e(class) + `" href="` + e(btn.Href) + `"`)
	if btn.OpenInNewTab {
		buf.WriteString(` target="_blank" rel="noopener noreferrer"`)
	}
	buf.WriteString(`>` + e(btn.Text) + `</a>`)
}

// WebsiteJsonLD produces a Schema.org WebSite JSON-LD block using cfg values.
func WebsiteJsonLD(cfg SiteConfig) string {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     cfg.Name,
		"url":      buildURL(cfg.URL),
	}
	if cfg.Description != "" {
		data["description"] = cfg.Description
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// OrganizationJsonLD produces a Schema.org Organization JSON-LD block.
func OrganizationJsonLD(cfg SiteConfig) string {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "Organization",
		"name":     cfg.Name,
		"url":      buildURL(cfg.URL),
	}
	var sameAs []string
	for _, link := range cfg.Social {
		sameAs = append(sameAs, link.Href)
	}
	if len(sameAs) > 0 {
		data["sameAs"] = sameAs
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// BlogPostingJsonLD produces a Schema.org BlogPosting JSON-LD block for a post.
func BlogPostingJsonLD(cfg SiteConfig, post content.Post) string {
	postURL := buildURL(cfg.URL, "blog", post.Slug)
	data := map[string]interface{}{
		"@context":      "https://schema.org",
		"@type":         "BlogPosting",
		"headline":      post.Title,
		"description":   post.Description,
		"datePublished": post.Date,
		"url":           postURL,
		"publisher": map[string]string{
			"@type": "Organization",
			"name":  cfg.Name,
		},
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// FAQJsonLD produces a Schema.org FAQPage JSON-LD block from question and
// plain-text answer pairs.
func FAQJsonLD(pairs [][2]string) string {
	entities := make([]map[string]interface{}, 0, len(pairs))
	for _, p := range pairs {
		if p[0] == "" {
			continue
		}
		entities = append(entities, map[string]interface{}{
			"@type": "Question",
			"name":  p[0],
			"acceptedAnswer": map[string]string{
				"@type": "Answer",
				"text":  p[1],
			},
		})
	}
	data := map[string]interface{}{
		"@context":   "https://schema.org",
		"@type":      "FAQPage",
		"mainEntity": entities,
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
