package views

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/a-h/templ"

	"github.com/flyballhub/hubsite/builder"
	"github.com/flyballhub/hubsite/content"
	"github.com/flyballhub/hubsite/geo"
	"github.com/flyballhub/hubsite/imgcdn"
	"github.com/flyballhub/hubsite/scrollreveal"
	"github.com/flyballhub/hubsite/teams"
)

// Blocks bundles the renderers for every page builder block type. The image
// builder is injected so URLs come out against the configured CDN.
type Blocks struct {
	Img *imgcdn.Builder
}

// RegisterAll binds every block renderer to its type tag.
func (v *Blocks) RegisterAll(reg *builder.Registry) {
	reg.Register("hero", v.hero)
	reg.Register("textBlock", v.textBlock)
	reg.Register("cta", v.cta)
	reg.Register("featureCardsIcon", v.featureCardsIcon)
	reg.Register("featureCardsScreenshot", v.featureCardsScreenshot)
	reg.Register("faqAccordion", v.faqAccordion)
	reg.Register("imageLinkCards", v.imageLinkCards)
	reg.Register("subscribeNewsletter", v.subscribeNewsletter)
	reg.Register("contactForm", v.contactForm)
	reg.Register("testimonials", v.testimonials)
	reg.Register("logoCloud", v.logoCloud)
	reg.Register("statsSection", v.statsSection)
	reg.Register("macbookScroll", v.macbookScroll)
	reg.Register("videoSection", v.videoSection)
	reg.Register("latestPosts", v.latestPosts)
	reg.Register("teamFinder", v.teamFinder)
	reg.Register("teamFinderTeaser", v.teamFinderTeaser)
	reg.Register("appPromo", v.appPromo)
}

// component wraps a buffer-building function the way the rest of the views
// are written.
func component(build func(buf *bytes.Buffer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		build(&buf)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

var (
	revealOnce = scrollreveal.Config{TriggerOnce: true}
	// Stagger spacing between sibling cards in a grid.
	staggerStep = 100 * time.Millisecond
)

// writeImg emits an <img> for a content image, or nothing when the image is
// unusable.
func (v *Blocks) writeImg(buf *bytes.Buffer, img *content.Image, width int, class string, eager bool) {
	src := v.Img.URL(img, width)
	if src == "" {
		return
	}
	buf.WriteString(`<img src="` + e(src) + `" alt="` + e(img.Alt) + `"`)
	if class != "" {
		buf.WriteString(` class="` + e(class) + `"`)
	}
	if pos := imgcdn.ObjectPosition(img.Hotspot); pos != "" {
		buf.WriteString(` style="object-position:` + e(pos) + `"`)
	}
	if eager {
		buf.WriteString(` fetchpriority="high"`)
	} else {
		buf.WriteString(` loading="lazy" decoding="async"`)
	}
	buf.WriteString(`>`)
}

// writeSectionHeader emits the eyebrow / title / intro stack shared by most
// content sections.
func (v *Blocks) writeSectionHeader(buf *bytes.Buffer, eyebrow, title string, intro content.RichText) {
	if eyebrow == "" && title == "" && intro.Empty() {
		return
	}
	buf.WriteString(`<header class="section-header" ` + scrollreveal.AttrString(revealOnce) + `>`)
	if eyebrow != "" {
		buf.WriteString(`<p class="section-eyebrow">` + e(eyebrow) + `</p>`)
	}
	if title != "" {
		buf.WriteString(`<h2 class="section-title">` + e(title) + `</h2>`)
	}
	if !intro.Empty() {
		buf.WriteString(`<div class="section-intro">`)
		renderRichText(buf, intro, v.Img)
		buf.WriteString(`</div>`)
	}
	buf.WriteString(`</header>`)
}

// writeStaggerAttrs emits reveal attributes plus the per-item transition
// delay the client runtime applies when the container enters view.
func writeStaggerAttrs(buf *bytes.Buffer, i, n int) {
	delays := scrollreveal.StaggerDelays(n, staggerStep)
	buf.WriteString(` ` + scrollreveal.AttrString(revealOnce))
	buf.WriteString(` data-reveal-delay="` + itoa(int(delays[i].Milliseconds())) + `"`)
}

func (v *Blocks) hero(rc builder.RenderContext, b content.Block) templ.Component {
	data := b.Data.(*content.HeroBlock)
	return component(func(buf *bytes.Buffer) {
		variant := data.Variant
		if variant == "" {
			variant = "classic"
		}
		buf.WriteString(`<div class="hero hero-` + e(variant) + `"><div class="hero-copy">`)
		if data.Badge != "" {
			buf.WriteString(`<span class="hero-badge">` + e(data.Badge) + `</span>`)
		}
		if data.Title != "" {
			buf.WriteString(`<h1 class="hero-title">` + e(data.Title) + `</h1>`)
		}
		if !data.RichText.Empty() {
			buf.WriteString(`<div class="hero-intro">`)
			renderRichText(buf, data.RichText, v.Img)
			buf.WriteString(`</div>`)
		}
		if len(data.Buttons) > 0 {
			buf.WriteString(`<div class="hero-actions">`)
			for _, btn := range data.Buttons {
				writeButton(buf, btn, "btn-lg")
			}
			buf.WriteString(`</div>`)
		}
		if len(data.Stats) > 0 {
			buf.WriteString(`<dl class="hero-stats">`)
			for _, s := range data.Stats {
				buf.WriteString(`<div class="hero-stat"><dt>` + e(s.Label) + `</dt><dd>` + e(s.Value) + `</dd></div>`)
			}
			buf.WriteString(`</dl>`)
		}
		buf.WriteString(`</div>`)
		if data.Image != nil {
			buf.WriteString(`<div class="hero-media">`)
			// The hero image is the LCP candidate, never lazy.
			v.writeImg(buf, data.Image, 1200, "hero-image", true)
			buf.WriteString(`</div>`)
		}
		buf.WriteString(`</div>`)
	})
}

func (v *Blocks) textBlock(rc builder.RenderContext, b content.Block) templ.Component {
	data := b.Data.(*content.TextBlock)
	return component(func(buf *bytes.Buffer) {
		buf.WriteString(`<div class="prose" ` + scrollreveal.AttrString(revealOnce) + `>`)
		if data.Title != "" {
			buf.WriteString(`<h2>` + e(data.Title) + `</h2>`)
		}
		renderRichText(buf, data.RichText, v.Img)
		buf.WriteString(`</div>`)
	})
}

func (v *Blocks) cta(rc builder.RenderContext, b content.Block) templ.Component {
	data := b.Data.(*content.CTABlock)
	return component(func(buf *bytes.Buffer) {
		buf.WriteString(`<div class="cta-banner" ` + scrollreveal.AttrString(revealOnce) + `>`)
		if data.Eyebrow != "" {
			buf.WriteString(`<p class="section-eyebrow">` + e(data.Eyebrow) + `</p>`)
		}
		buf.WriteString(`<h2 class="cta-title">` + e(data.Title) + `</h2>`)
		if !data.RichText.Empty() {
			buf.WriteString(`<div class="cta-intro">`)
			renderRichText(buf, data.RichText, v.Img)
			buf.WriteString(`</div>`)
		}
		if len(data.Buttons) > 0 {
			buf.WriteString(`<div class="cta-actions">`)
			for _, btn := range data.Buttons {
				writeButton(buf, btn, "")
			}
			buf.WriteString(`</div>`)
		}
		buf.WriteString(`</div>`)
	})
}

func (v *Blocks) featureCardsIcon(rc builder.RenderContext, b content.Block) templ.Component {
	data := b.Data.(*content.FeatureCardsIconBlock)
	return component(func(buf *bytes.Buffer) {
		v.writeSectionHeader(buf, data.Eyebrow, data.Title, data.RichText)
		buf.WriteString(`<div class="feature-grid">`)
		for i, card := range data.Cards {
			buf.WriteString(`<article class="feature-card"`)
			writeStaggerAttrs(buf, i, len(data.Cards))
			buf.WriteString(`>`)
			if card.Icon != "" {
				buf.WriteString(`<span class="feature-icon" data-icon="` + e(card.Icon) + `" aria-hidden="true"></span>`)
			}
			buf.WriteString(`<h3>` + e(card.Title) + `</h3>`)
			if !card.RichText.Empty() {
				buf.WriteString(`<div class="feature-body">`)
				renderRichText(buf, card.RichText, v.Img)
				buf.WriteString(`</div>`)
			}
			buf.WriteString(`</article>`)
		}
		buf.WriteString(`</div>`)
	})
}

func (v *Blocks) featureCardsScreenshot(rc builder.RenderContext, b content.Block) templ.Component {
	data := b.Data.(*content.FeatureCardsScreenshotBlock)
	return component(func(buf *bytes.Buffer) {
		v.writeSectionHeader(buf, data.Eyebrow, data.Title, data.RichText)
		buf.WriteString(`<div class="screenshot-grid">`)
		for i, card := range data.Cards {
			tag, closeTag := "article", "</article>"
			if card.Href != "" {
				tag, closeTag = "a", "</a>"
			}
			buf.WriteString(`<` + tag + ` class="screenshot-card"`)
			if card.Href != "" {
				buf.WriteString(` href="` + e(card.Href) + `"`)
			}
			writeStaggerAttrs(buf, i, len(data.Cards))
			buf.WriteString(`>`)
			if card.Image != nil {
				v.writeImg(buf, card.Image, 800, "screenshot-card-image", false)
			}
			buf.WriteString(`<h3>` + e(card.Title) + `</h3>`)
			if card.Description != "" {
				buf.WriteString(`<p>` + e(card.Description) + `</p>`)
			}
			buf.WriteString(closeTag)
		}
		buf.WriteString(`</div>`)
	})
}

func (v *Blocks) faqAccordion(rc builder.RenderContext, b content.Block) templ.Component {
	data := b.Data.(*content.FAQAccordionBlock)
	return component(func(buf *bytes.Buffer) {
		buf.WriteString(`<header class="section-header" ` + scrollreveal.AttrString(revealOnce) + `>`)
		if data.Eyebrow != "" {
			buf.WriteString(`<p class="section-eyebrow">` + e(data.Eyebrow) + `</p>`)
		}
		buf.WriteString(`<h2 class="section-title">` + e(data.Title) + `</h2>`)
		if data.Subtitle != "" {
			buf.WriteString(`<p class="section-intro">` + e(data.Subtitle) + `</p>`)
		}
		buf.WriteString(`</header><div class="faq-list">`)
		for _, item := range data.FAQs {
			buf.WriteString(`<details class="faq-item" id="faq-` + e(item.Key) + `"><summary>` + e(item.Question) + `</summary><div class="faq-answer">`)
			renderRichText(buf, item.Answer, v.Img)
			buf.WriteString(`</div></details>`)
		}
		buf.WriteString(`</div>`)
		if data.Link != "" {
			buf.WriteString(`<p class="faq-more"><a href="` + e(data.Link) + `">More questions answered</a></p>`)
		}
		// Structured data so the FAQ is eligible for rich results.
		pairs := make([][2]string, 0, len(data.FAQs))
		for _, item := range data.FAQs {
			pairs = append(pairs, [2]string{item.Question, PlainText(item.Answer, 0)})
		}
		buf.WriteString(`<script type="application/ld+json">` + FAQJsonLD(pairs) + `</script>`)
	})
}

func (v *Blocks) imageLinkCards(rc builder.RenderContext, b content.Block) templ.Component {
	data := b.Data.(*content.ImageLinkCardsBlock)
	return component(func(buf *bytes.Buffer) {
		v.writeSectionHeader(buf, data.Eyebrow, data.Title, data.RichText)
		buf.WriteString(`<div class="image-card-grid">`)
		for i, card := range data.Cards {
			buf.WriteString(`<a class="image-card" href="` + e(card.Href) + `"`)
			writeStaggerAttrs(buf, i, len(data.Cards))
			buf.WriteString(`>`)
			if card.Image != nil {
				v.writeImg(buf, card.Image, 600, "image-card-bg", false)
			}
			buf.WriteString(`<div class="image-card-copy"><h3>` + e(card.Title) + `</h3>`)
			if card.Description != "" {
				buf.WriteString(`<p>` + e(card.Description) + `</p>`)
			}
			buf.WriteString(`</div></a>`)
		}
		buf.WriteString(`</div>`)
	})
}

func (v *Blocks) subscribeNewsletter(rc builder.RenderContext, b content.Block) templ.Component {
	data := b.Data.(*content.SubscribeNewsletterBlock)
	return component(func(buf *bytes.Buffer) {
		buf.WriteString(`<div class="newsletter" ` + scrollreveal.AttrString(revealOnce) + `>`)
		buf.WriteString(`<h2 class="section-title">` + e(data.Title) + `</h2>`)
		if !data.SubTitle.Empty() {
			buf.WriteString(`<div class="section-intro">`)
			renderRichText(buf, data.SubTitle, v.Img)
			buf.WriteString(`</div>`)
		}
		buf.WriteString(`<form class="newsletter-form" hx-post="/subscribe/" hx-target="this" hx-swap="outerHTML">`)
		buf.WriteString(`<input type="hidden" name="_csrf" value="` + e(rc.CSRF) + `">`)
		buf.WriteString(`<label class="sr-only" for="newsletter-email">Email address</label>`)
		buf.WriteString(`<input id="newsletter-email" type="email" name="email" required placeholder="you@example.com">`)
		buf.WriteString(`<button type="submit" class="btn btn-default">Subscribe</button>`)
		buf.WriteString(`</form>`)
		if !data.HelperText.Empty() {
			buf.WriteString(`<div class="newsletter-helper">`)
			renderRichText(buf, data.HelperText, v.Img)
			buf.WriteString(`</div>`)
		}
		buf.WriteString(`</div>`)
	})
}

func (v *Blocks) contactForm(rc builder.RenderContext, b content.Block) templ.Component {
	data := b.Data.(*content.ContactFormBlock)
	return component(func(buf *bytes.Buffer) {
		buf.WriteString(`<div class="contact" ` + scrollreveal.AttrString(revealOnce) + `>`)
		buf.WriteString(`<header class="section-header">`)
		if data.Eyebrow != "" {
			buf.WriteString(`<p class="section-eyebrow">` + e(data.Eyebrow) + `</p>`)
		}
		buf.WriteString(`<h2 class="section-title">` + e(data.Title) + `</h2>`)
		if !data.SubTitle.Empty() {
			buf.WriteString(`<div class="section-intro">`)
			renderRichText(buf, data.SubTitle, v.Img)
			buf.WriteString(`</div>`)
		}
		buf.WriteString(`</header>`)
		WriteContactForm(buf, ContactFormState{
			CSRF:       rc.CSRF,
			Slug:       rc.Slug,
			BlockKey:   b.Key,
			ButtonText: data.ButtonText,
		})
		if !data.HelperText.Empty() {
			buf.WriteString(`<div class="contact-helper">`)
			renderRichText(buf, data.HelperText, v.Img)
			buf.WriteString(`</div>`)
		}
		buf.WriteString(`</div>`)
	})
}

func (v *Blocks) testimonials(rc builder.RenderContext, b content.Block) templ.Component {
	data := b.Data.(*content.TestimonialsBlock)
	return component(func(buf *bytes.Buffer) {
		v.writeSectionHeader(buf, data.Eyebrow, data.Title, nil)
		buf.WriteString(`<div class="testimonial-grid">`)
		for i, t := range data.Testimonials {
			buf.WriteString(`<figure class="testimonial"`)
			writeStaggerAttrs(buf, i, len(data.Testimonials))
			buf.WriteString(`><blockquote>` + e(t.Quote) + `</blockquote><figcaption>`)
			if t.Image != nil {
				v.writeImg(buf, t.Image, 96, "testimonial-avatar", false)
			}
			buf.WriteString(`<span class="testimonial-author">` + e(t.Author) + `</span>`)
			if t.Role != "" {
				buf.WriteString(`<span class="testimonial-role">` + e(t.Role) + `</span>`)
			}
			buf.WriteString(`</figcaption></figure>`)
		}
		buf.WriteString(`</div>`)
	})
}

func (v *Blocks) logoCloud(rc builder.RenderContext, b content.Block) templ.Component {
	data := b.Data.(*content.LogoCloudBlock)
	return component(func(buf *bytes.Buffer) {
		buf.WriteString(`<div class="logo-cloud" ` + scrollreveal.AttrString(revealOnce) + `>`)
		if data.Title != "" {
			buf.WriteString(`<p class="logo-cloud-title">` + e(data.Title) + `</p>`)
		}
		buf.WriteString(`<ul class="logo-cloud-list">`)
		for i := range data.Logos {
			buf.WriteString(`<li>`)
			v.writeImg(buf, &data.Logos[i], 200, "logo-cloud-logo", false)
			buf.WriteString(`</li>`)
		}
		buf.WriteString(`</ul></div>`)
	})
}

func (v *Blocks) statsSection(rc builder.RenderContext, b content.Block) templ.Component {
	data := b.Data.(*content.StatsSectionBlock)
	return component(func(buf *bytes.Buffer) {
		variant := data.Variant
		if variant == "" {
			variant = "default"
		}
		buf.WriteString(`<div class="stats stats-` + e(variant) + `">`)
		v.writeSectionHeader(buf, data.Eyebrow, data.Title, data.RichText)
		buf.WriteString(`<dl class="stats-grid">`)
		for i, s := range data.Stats {
			buf.WriteString(`<div class="stats-item"`)
			writeStaggerAttrs(buf, i, len(data.Stats))
			buf.WriteString(`><dd>` + e(s.Value) + `</dd><dt>` + e(s.Label) + `</dt>`)
			if s.Description != "" {
				buf.WriteString(`<p class="stats-detail">` + e(s.Description) + `</p>`)
			}
			buf.WriteString(`</div>`)
		}
		buf.WriteString(`</dl></div>`)
	})
}

func (v *Blocks) macbookScroll(rc builder.RenderContext, b content.Block) templ.Component {
	data := b.Data.(*content.MacbookScrollBlock)
	return component(func(buf *bytes.Buffer) {
		buf.WriteString(`<div class="macbook-scroll" ` + scrollreveal.AttrString(scrollreveal.Config{Threshold: 0.3}) + `>`)
		if data.Badge != "" {
			buf.WriteString(`<span class="hero-badge">` + e(data.Badge) + `</span>`)
		}
		if data.Title != "" {
			buf.WriteString(`<h2 class="section-title">` + e(data.Title) + `</h2>`)
		}
		if data.Image != nil {
			buf.WriteString(`<div class="macbook-frame">`)
			v.writeImg(buf, data.Image, 1400, "macbook-screen", false)
			buf.WriteString(`</div>`)
		}
		buf.WriteString(`</div>`)
	})
}

func (v *Blocks) videoSection(rc builder.RenderContext, b content.Block) templ.Component {
	data := b.Data.(*content.VideoSectionBlock)
	return component(func(buf *bytes.Buffer) {
		buf.WriteString(`<div class="video-section" ` + scrollreveal.AttrString(revealOnce) + `>`)
		buf.WriteString(`<header class="section-header">`)
		if data.Eyebrow != "" {
			buf.WriteString(`<p class="section-eyebrow">` + e(data.Eyebrow) + `</p>`)
		}
		if data.Title != "" {
			buf.WriteString(`<h2 class="section-title">` + e(data.Title) + `</h2>`)
		}
		buf.WriteString(`</header>`)
		if data.VideoURL != "" {
			buf.WriteString(`<div class="video-frame"><iframe src="` + e(data.VideoURL) + `" title="` + e(data.Title) + `" loading="lazy" allowfullscreen`)
			if data.Poster != nil {
				if poster := v.Img.URL(data.Poster, 1200); poster != "" {
					buf.WriteString(` data-poster="` + e(poster) + `"`)
				}
			}
			buf.WriteString(`></iframe></div>`)
		}
		buf.WriteString(`</div>`)
	})
}

func (v *Blocks) latestPosts(rc builder.RenderContext, b content.Block) templ.Component {
	data := b.Data.(*content.LatestPostsBlock)
	return component(func(buf *bytes.Buffer) {
		v.writeSectionHeader(buf, data.Eyebrow, data.Title, nil)
		limit := data.Limit
		if limit <= 0 {
			limit = 3
		}
		posts := rc.Posts
		if len(posts) > limit {
			posts = posts[:limit]
		}
		if len(posts) == 0 {
			buf.WriteString(`<p class="posts-empty">No posts yet.</p>`)
			return
		}
		buf.WriteString(`<div class="post-grid">`)
		for i, p := range posts {
			buf.WriteString(`<article class="post-card"`)
			writeStaggerAttrs(buf, i, len(posts))
			buf.WriteString(`>`)
			if p.Image != nil {
				v.writeImg(buf, p.Image, 600, "post-card-image", false)
			}
			buf.WriteString(`<h3><a href="/blog/` + PathEscape(p.Slug) + `/">` + e(p.Title) + `</a></h3>`)
			if p.Description != "" {
				buf.WriteString(`<p>` + e(p.Description) + `</p>`)
			}
			buf.WriteString(`<time datetime="` + e(p.Date) + `">` + e(p.Date) + `</time>`)
			buf.WriteString(`</article>`)
		}
		buf.WriteString(`</div><p class="posts-more"><a href="/blog/">All posts</a></p>`)
	})
}

func (v *Blocks) teamFinder(rc builder.RenderContext, b content.Block) templ.Component {
	data := b.Data.(*content.TeamFinderBlock)
	return component(func(buf *bytes.Buffer) {
		placeholder := data.SearchPlaceholder
		if placeholder == "" {
			placeholder = "Enter your city or postcode..."
		}
		noResults := data.NoResultsMessage
		if noResults == "" {
			noResults = "No teams found. Try a different location."
		}
		buf.WriteString(`<div class="team-finder">`)
		buf.WriteString(`<header class="section-header">`)
		if data.Eyebrow != "" {
			buf.WriteString(`<p class="section-eyebrow">` + e(data.Eyebrow) + `</p>`)
		}
		buf.WriteString(`<h2 class="section-title">` + e(data.Title) + `</h2>`)
		if data.Description != "" {
			buf.WriteString(`<p class="section-intro">` + e(data.Description) + `</p>`)
		}
		buf.WriteString(`</header>`)
		// Searches reload this block's fragment with the query applied.
		buf.WriteString(`<form class="team-finder-form" hx-get="` + e(builder.FragmentURL(rc.Slug, b.Key)) + `" hx-target="closest section" hx-swap="outerHTML" action="" method="get">`)
		buf.WriteString(`<label class="sr-only" for="team-query">Location</label>`)
		buf.WriteString(`<input id="team-query" type="search" name="q" value="` + e(rc.TeamQuery) + `" placeholder="` + e(placeholder) + `">`)
		buf.WriteString(`<button type="submit" class="btn btn-default">Search</button>`)
		buf.WriteString(`</form>`)

		if rc.GeocodeFailed {
			buf.WriteString(`<p class="team-finder-notice" role="status">Couldn't find that location. Showing all teams.</p>`)
		}
		if !rc.GeocodeFailed && rc.TeamQuery != "" && len(rc.Teams) == 0 {
			buf.WriteString(`<p class="team-finder-empty">` + e(noResults) + `</p>`)
		} else {
			buf.WriteString(`<ul class="team-list">`)
			for _, t := range rc.Teams {
				writeTeamCard(buf, t)
			}
			buf.WriteString(`</ul>`)
		}
		buf.WriteString(`</div>`)
	})
}

func (v *Blocks) teamFinderTeaser(rc builder.RenderContext, b content.Block) templ.Component {
	data := b.Data.(*content.TeamFinderTeaserBlock)
	return component(func(buf *bytes.Buffer) {
		buf.WriteString(`<div class="team-teaser" ` + scrollreveal.AttrString(revealOnce) + `><div class="team-teaser-copy">`)
		if data.Eyebrow != "" {
			buf.WriteString(`<p class="section-eyebrow">` + e(data.Eyebrow) + `</p>`)
		}
		buf.WriteString(`<h2 class="section-title">` + e(data.Title) + `</h2>`)
		if data.Description != "" {
			buf.WriteString(`<p class="section-intro">` + e(data.Description) + `</p>`)
		}
		text := data.ButtonText
		if text == "" {
			text = "Find a Team"
		}
		href := data.ButtonHref
		if href == "" {
			href = "/find-a-team/"
		}
		writeButton(buf, content.Button{Text: text, Href: href}, "btn-lg")
		buf.WriteString(`</div>`)
		if data.Image != nil {
			buf.WriteString(`<div class="team-teaser-media">`)
			v.writeImg(buf, data.Image, 800, "team-teaser-image", false)
			buf.WriteString(`</div>`)
		}
		buf.WriteString(`</div>`)
	})
}

func (v *Blocks) appPromo(rc builder.RenderContext, b content.Block) templ.Component {
	data := b.Data.(*content.AppPromoBlock)
	return component(func(buf *bytes.Buffer) {
		buf.WriteString(`<div class="app-promo" ` + scrollreveal.AttrString(revealOnce) + `><div class="app-promo-copy">`)
		if data.Eyebrow != "" {
			buf.WriteString(`<p class="section-eyebrow">` + e(data.Eyebrow) + `</p>`)
		}
		buf.WriteString(`<h2 class="section-title">` + e(data.Title) + `</h2>`)
		if !data.RichText.Empty() {
			buf.WriteString(`<div class="section-intro">`)
			renderRichText(buf, data.RichText, v.Img)
			buf.WriteString(`</div>`)
		}
		buf.WriteString(`<div class="app-promo-badges">`)
		if data.AppStoreURL != "" {
			buf.WriteString(`<a class="store-badge" href="` + e(data.AppStoreURL) + `" rel="noopener noreferrer">App Store</a>`)
		}
		if data.PlayStore != "" {
			buf.WriteString(`<a class="store-badge" href="` + e(data.PlayStore) + `" rel="noopener noreferrer">Google Play</a>`)
		}
		buf.WriteString(`</div></div>`)
		if data.Image != nil {
			buf.WriteString(`<div class="app-promo-media">`)
			v.writeImg(buf, data.Image, 600, "app-promo-image", false)
			buf.WriteString(`</div>`)
		}
		buf.WriteString(`</div>`)
	})
}

// writeTeamCard renders one team directory entry.
func writeTeamCard(buf *bytes.Buffer, t teams.Ranked) {
	buf.WriteString(`<li class="team-card">`)
	if t.LogoURL != "" {
		buf.WriteString(`<img class="team-logo" src="` + e(t.LogoURL) + `" alt="" loading="lazy">`)
	}
	buf.WriteString(`<div class="team-card-body"><h3>` + e(t.Name) + `</h3>`)
	if t.LocationName != "" {
		buf.WriteString(`<p class="team-location">`)
		if flag := geo.CountryFlag(t.Country); flag != "" {
			buf.WriteString(flag + ` `)
		}
		buf.WriteString(e(t.LocationName) + `</p>`)
	}
	if len(t.Leagues) > 0 {
		buf.WriteString(`<ul class="team-leagues">`)
		for _, l := range t.Leagues {
			buf.WriteString(`<li>` + e(l) + `</li>`)
		}
		buf.WriteString(`</ul>`)
	}
	buf.WriteString(`</div>`)
	if t.Distance != nil {
		buf.WriteString(`<span class="team-distance">` + e(geo.FormatDistance(*t.Distance)) + `</span>`)
	}
	buf.WriteString(`</li>`)
}
