// Package scrollreveal manages visibility observation for scroll-triggered
// reveal animations. Rather than one observer per observed element, targets
// sharing a (threshold, rootMargin) configuration are multiplexed onto a
// single underlying observer held in a reference-counted registry; the
// observer is torn down when its last target is released. The underlying
// visibility primitive is abstracted behind an Observer interface so the
// registry is testable and the browser runtime (public/reveal.js) can mirror
// the same pooling contract.
package scrollreveal

import (
	"fmt"
	"strconv"
	"sync"
)

// Config selects the observation parameters. Threshold is the fraction of
// the target that must intersect before it counts as visible.
type Config struct {
	Threshold   float64
	RootMargin  string
	TriggerOnce bool
}

// Defaults matching the site's reveal animations.
const (
	DefaultThreshold  = 0.1
	DefaultRootMargin = "0px"
)

func (c Config) withDefaults() Config {
	if c.Threshold == 0 {
		c.Threshold = DefaultThreshold
	}
	if c.RootMargin == "" {
		c.RootMargin = DefaultRootMargin
	}
	return c
}

// poolKey identifies one shared observer. TriggerOnce is per-handle and
// deliberately not part of the key.
type poolKey struct {
	threshold  float64
	rootMargin string
}

// Observer is the external visibility-detection primitive. Implementations
// may fire synchronously from Observe when the target is already visible.
type Observer interface {
	Observe(target string)
	Unobserve(target string)
	Disconnect()
}

// FireFunc is how an Observer reports intersection changes back.
type FireFunc func(target string, intersecting bool)

// Factory creates an Observer for a configuration. The fire callback is safe
// to invoke from any goroutine, including synchronously from Observe.
type Factory func(cfg Config, fire FireFunc) Observer

// Registry multiplexes reveal subscriptions onto pooled observers. It is an
// explicit object (not package-global state) so tests can tear it down
// cleanly.
type Registry struct {
	mu            sync.Mutex
	factory       Factory
	reducedMotion bool
	pools         map[poolKey]*pool
}

type pool struct {
	observer Observer
	handles  map[string][]*Handle // target -> subscribed handles
	state    map[string]bool      // last reported intersection per target
}

// Option configures a Registry.
type Option func(*Registry)

// WithReducedMotion makes every subscription immediately visible without
// creating observers. This mirrors the user's reduced-motion preference and
// is an accessibility requirement, not an optimization.
func WithReducedMotion(on bool) Option {
	return func(r *Registry) { r.reducedMotion = on }
}

// NewRegistry creates a Registry backed by the given observer factory.
func NewRegistry(factory Factory, opts ...Option) *Registry {
	r := &Registry{
		factory: factory,
		pools:   make(map[poolKey]*pool),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Handle is one subscription. Visible is sticky once TriggerOnce fires.
type Handle struct {
	reg         *Registry
	key         poolKey
	target      string
	triggerOnce bool

	mu       sync.Mutex
	visible  bool
	released bool
	onChange func(bool)
}

// Observe subscribes to visibility changes for target. onChange may be nil.
// If the target is already intersecting when observed, the handle reports
// visible immediately instead of waiting for the next callback.
func (r *Registry) Observe(target string, cfg Config, onChange func(visible bool)) *Handle {
	cfg = cfg.withDefaults()
	h := &Handle{
		reg:         r,
		key:         poolKey{threshold: cfg.Threshold, rootMargin: cfg.RootMargin},
		target:      target,
		triggerOnce: cfg.TriggerOnce,
		onChange:    onChange,
	}

	if r.reducedMotion {
		h.deliver(true)
		h.released = true // nothing registered, nothing to release
		return h
	}

	r.mu.Lock()
	p, ok := r.pools[h.key]
	if !ok {
		p = &pool{
			handles: make(map[string][]*Handle),
			state:   make(map[string]bool),
		}
		p.observer = r.factory(cfg, func(t string, intersecting bool) {
			r.fire(h.key, t, intersecting)
		})
		r.pools[h.key] = p
	}
	existing := len(p.handles[h.target]) > 0
	p.handles[h.target] = append(p.handles[h.target], h)
	known, seen := p.state[h.target]
	observer := p.observer
	r.mu.Unlock()

	if !existing {
		// May fire synchronously; the handle is already registered.
		observer.Observe(h.target)
	} else if seen && known {
		h.deliver(true)
	}
	return h
}

// fire routes an observer callback to the subscribed handles. Callbacks run
// outside the registry lock.
func (r *Registry) fire(key poolKey, target string, intersecting bool) {
	r.mu.Lock()
	p, ok := r.pools[key]
	if !ok {
		r.mu.Unlock()
		return
	}
	p.state[target] = intersecting

	handles := p.handles[target]
	notify := make([]*Handle, len(handles))
	copy(notify, handles)

	var remaining []*Handle
	for _, h := range handles {
		if h.triggerOnce && intersecting {
			h.released = true
			continue
		}
		remaining = append(remaining, h)
	}
	var observer Observer
	var disconnect bool
	if len(remaining) == 0 {
		delete(p.handles, target)
		delete(p.state, target)
		observer = p.observer
		if len(p.handles) == 0 {
			delete(r.pools, key)
			disconnect = true
		}
	} else {
		p.handles[target] = remaining
	}
	r.mu.Unlock()

	if observer != nil {
		observer.Unobserve(target)
		if disconnect {
			observer.Disconnect()
		}
	}
	for _, h := range notify {
		h.deliver(intersecting)
	}
}

// Visible reports the handle's last delivered visibility.
func (h *Handle) Visible() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.visible
}

// Release unsubscribes the handle. The pooled observer is torn down when its
// last target is released, so observers never outlive their subscribers.
func (h *Handle) Release() {
	r := h.reg
	r.mu.Lock()
	if h.released {
		r.mu.Unlock()
		return
	}
	h.released = true
	p, ok := r.pools[h.key]
	if !ok {
		r.mu.Unlock()
		return
	}
	handles := p.handles[h.target]
	for i, other := range handles {
		if other == h {
			handles = append(handles[:i], handles[i+1:]...)
			break
		}
	}
	var observer Observer
	var disconnect bool
	if len(handles) == 0 {
		delete(p.handles, h.target)
		delete(p.state, h.target)
		observer = p.observer
		if len(p.handles) == 0 {
			delete(r.pools, h.key)
			disconnect = true
		}
	} else {
		p.handles[h.target] = handles
	}
	r.mu.Unlock()

	if observer != nil {
		observer.Unobserve(h.target)
		if disconnect {
			observer.Disconnect()
		}
	}
}

func (h *Handle) deliver(visible bool) {
	h.mu.Lock()
	if h.triggerOnce && h.visible {
		h.mu.Unlock()
		return
	}
	changed := h.visible != visible
	h.visible = visible
	onChange := h.onChange
	h.mu.Unlock()

	if changed && onChange != nil {
		onChange(visible)
	}
}

// ObserverCount returns the number of live pooled observers.
func (r *Registry) ObserverCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pools)
}

// AttrString renders the data attributes consumed by the client runtime in
// public/reveal.js, which implements the same pooled-observer contract in
// the browser.
func AttrString(cfg Config) string {
	cfg = cfg.withDefaults()
	s := fmt.Sprintf(`data-reveal data-reveal-threshold="%s" data-reveal-margin="%s"`,
		strconv.FormatFloat(cfg.Threshold, 'f', -1, 64), cfg.RootMargin)
	if cfg.TriggerOnce {
		s += ` data-reveal-once`
	}
	return s
}
