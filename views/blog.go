package views

import (
	"bytes"

	"github.com/a-h/templ"

	"github.com/flyballhub/hubsite/content"
	"github.com/flyballhub/hubsite/imgcdn"
)

// BlogIndex renders the post listing.
func BlogIndex(cfg SiteConfig, posts []content.Post, img *imgcdn.Builder) templ.Component {
	return component(func(buf *bytes.Buffer) {
		buf.WriteString(`<div class="blog-index"><header class="section-header">`)
		buf.WriteString(`<h1 class="section-title">News</h1>`)
		buf.WriteString(`</header>`)
		if len(posts) == 0 {
			buf.WriteString(`<p class="posts-empty">No posts yet. Check back soon.</p></div>`)
			return
		}
		buf.WriteString(`<div class="post-grid">`)
		for _, p := range posts {
			buf.WriteString(`<article class="post-card">`)
			if p.Image != nil {
				if src := img.URL(p.Image, 600); src != "" {
					buf.WriteString(`<img src="` + e(src) + `" alt="` + e(p.Image.Alt) + `" loading="lazy">`)
				}
			}
			buf.WriteString(`<h2><a href="/blog/` + PathEscape(p.Slug) + `/">` + e(p.Title) + `</a></h2>`)
			if p.Description != "" {
				buf.WriteString(`<p>` + e(p.Description) + `</p>`)
			}
			buf.WriteString(`<time datetime="` + e(p.Date) + `">` + e(p.Date) + `</time>`)
			buf.WriteString(`</article>`)
		}
		buf.WriteString(`</div></div>`)
	})
}

// BlogPost renders a single post with its rich text body.
func BlogPost(cfg SiteConfig, post content.Post, img *imgcdn.Builder) templ.Component {
	return component(func(buf *bytes.Buffer) {
		buf.WriteString(`<article class="blog-post"><header class="blog-post-header">`)
		buf.WriteString(`<h1>` + e(post.Title) + `</h1>`)
		buf.WriteString(`<time datetime="` + e(post.Date) + `">` + e(post.Date) + `</time>`)
		buf.WriteString(`</header>`)
		if post.Image != nil {
			if src := img.URL(post.Image, 1200); src != "" {
				buf.WriteString(`<img class="blog-post-cover" src="` + e(src) + `" alt="` + e(post.Image.Alt) + `" fetchpriority="high">`)
			}
		}
		buf.WriteString(`<div class="prose">`)
		renderRichText(buf, post.Body, img)
		buf.WriteString(`</div>`)
		buf.WriteString(`<script type="application/ld+json">` + BlogPostingJsonLD(cfg, post) + `</script>`)
		buf.WriteString(`</article>`)
	})
}
