// Package builder assembles a page from its ordered block list. Each block
// type maps to a registered renderer; unregistered types render a neutral
// placeholder so one bad block never takes down the rest of the page. The
// builder also decides section chrome: full-width blocks escape the content
// container, and below-the-fold blocks are deferred behind lazy fragments.
package builder

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/flyballhub/hubsite/content"
	"github.com/flyballhub/hubsite/teams"
)

// RenderContext carries the request-scoped data renderers need. Renderers
// stay pure: anything fetched (posts, teams, geocoding results) is resolved
// by the handler before rendering starts.
type RenderContext struct {
	DocumentID   string
	DocumentType string
	Slug         string
	CSRF         string

	// Resolved data for blocks that show external content.
	Posts     []content.Post
	Teams     []teams.Ranked
	TeamQuery string
	// The search ran but the location could not be resolved; the team
	// finder shows its no-results message.
	GeocodeFailed bool

	// Editing context. Editor attributes are only emitted in preview so
	// the public HTML stays clean.
	Preview bool
}

// RenderFunc renders one decoded block.
type RenderFunc func(rc RenderContext, b content.Block) templ.Component

// fullWidthTypes escape the max-width container and manage their own
// horizontal padding.
var fullWidthTypes = map[string]bool{
	"hero":             true,
	"statsSection":     true,
	"macbookScroll":    true,
	"cta":              true,
	"videoSection":     true,
	"teamFinderTeaser": true,
}

// eagerTypes are always rendered inline, never deferred. The hero is the LCP
// element and must be in the initial HTML.
var eagerTypes = map[string]bool{
	"hero": true,
}

// IsFullWidth reports whether a block type renders edge to edge.
func IsFullWidth(blockType string) bool {
	return fullWidthTypes[blockType]
}

// IsEager reports whether a block type must render in the initial response.
func IsEager(blockType string) bool {
	return eagerTypes[blockType]
}

// Registry maps block types to renderers.
type Registry struct {
	renderers map[string]RenderFunc
	unknown   RenderFunc
	skeleton  RenderFunc
	lazy      bool
}

// Option configures a Registry.
type Option func(*Registry)

// WithLazyLoading toggles deferred fragment loading for non-eager blocks.
// Fragments also serve the preview path, which always renders inline.
func WithLazyLoading(on bool) Option {
	return func(r *Registry) { r.lazy = on }
}

// WithUnknownRenderer overrides the placeholder for unregistered block types.
func WithUnknownRenderer(fn RenderFunc) Option {
	return func(r *Registry) { r.unknown = fn }
}

// WithSkeletonRenderer overrides the loading skeleton shown while a lazy
// fragment is in flight.
func WithSkeletonRenderer(fn RenderFunc) Option {
	return func(r *Registry) { r.skeleton = fn }
}

// NewRegistry creates an empty renderer registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		renderers: make(map[string]RenderFunc),
		unknown:   defaultUnknown,
		skeleton:  defaultSkeleton,
		lazy:      true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register binds a renderer to a block type, replacing any previous binding.
func (r *Registry) Register(blockType string, fn RenderFunc) {
	r.renderers[blockType] = fn
}

// Registered reports whether a renderer exists for blockType.
func (r *Registry) Registered(blockType string) bool {
	_, ok := r.renderers[blockType]
	return ok
}

// EditorPath returns the authoring-tool path selecting a block by key.
func EditorPath(key string) string {
	return fmt.Sprintf(`pageBuilder[_key=="%s"]`, key)
}

// FragmentURL is the route a lazy skeleton fetches its block from.
func FragmentURL(slug, key string) string {
	if slug == "" {
		slug = "index"
	}
	return fmt.Sprintf("/fragment/%s/%s/", slug, key)
}

// RenderPage renders every block of a page in document order. Blocks after
// the first non-eager one are deferred behind lazy fragments when lazy
// loading is on; preview always renders inline so editors see a full page.
func (r *Registry) RenderPage(rc RenderContext, page *content.Page) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for i, b := range page.Blocks {
			defer_ := r.lazy && !rc.Preview && i > 0 && !IsEager(b.Type)
			if err := r.renderSection(ctx, w, rc, b, defer_); err != nil {
				return err
			}
		}
		return nil
	})
}

// RenderFragment renders a single block with its section chrome, inline. It
// backs the lazy fragment route and the preview patch path.
func (r *Registry) RenderFragment(rc RenderContext, b content.Block) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return r.renderSection(ctx, w, rc, b, false)
	})
}

// RenderBlock renders just the block body, dispatching to the registered
// renderer or the unknown-type placeholder.
func (r *Registry) RenderBlock(rc RenderContext, b content.Block) templ.Component {
	fn, ok := r.renderers[b.Type]
	if !ok || b.Data == nil {
		return r.unknown(rc, b)
	}
	return fn(rc, b)
}

func (r *Registry) renderSection(ctx context.Context, w io.Writer, rc RenderContext, b content.Block, deferred bool) error {
	var sb strings.Builder
	sb.WriteString(`<section id="block-`)
	sb.WriteString(html.EscapeString(b.Key))
	sb.WriteString(`" data-block-type="`)
	sb.WriteString(html.EscapeString(b.Type))
	sb.WriteString(`"`)
	if rc.Preview {
		sb.WriteString(` data-editor-path="`)
		sb.WriteString(html.EscapeString(EditorPath(b.Key)))
		sb.WriteString(`"`)
	}
	sb.WriteString(` class="block-section`)
	if IsFullWidth(b.Type) {
		sb.WriteString(" block-section-full")
	} else {
		sb.WriteString(" block-section-contained")
	}
	sb.WriteString(`"`)
	if deferred {
		sb.WriteString(` hx-get="`)
		sb.WriteString(html.EscapeString(FragmentURL(rc.Slug, b.Key)))
		sb.WriteString(`" hx-trigger="revealed" hx-swap="outerHTML"`)
	}
	sb.WriteString(`>`)
	if _, err := io.WriteString(w, sb.String()); err != nil {
		return err
	}

	body := r.RenderBlock(rc, b)
	if deferred {
		body = r.skeleton(rc, b)
	}
	if err := body.Render(ctx, w); err != nil {
		return err
	}
	_, err := io.WriteString(w, `</section>`)
	return err
}

// defaultUnknown renders a neutral placeholder. It is intentionally quiet on
// the public site and labelled in preview so editors notice the gap.
func defaultUnknown(rc RenderContext, b content.Block) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if !rc.Preview {
			_, err := io.WriteString(w, `<div class="block-unknown" hidden></div>`)
			return err
		}
		_, err := fmt.Fprintf(w, `<div class="block-unknown-preview">Unknown block type &quot;%s&quot;</div>`,
			html.EscapeString(b.Type))
		return err
	})
}

// defaultSkeleton is the pulsing placeholder swapped out when the fragment
// arrives.
func defaultSkeleton(rc RenderContext, b content.Block) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<div class="block-skeleton" aria-hidden="true"><div class="block-skeleton-bar"></div><div class="block-skeleton-bar"></div></div>`)
		return err
	})
}
