package scrollreveal

import (
	"sync"
	"time"
)

// StaggerGroup reveals n items one after another once their container
// becomes visible: item i appears delay after item i-1, item 0 immediately.
// The fan-out runs once; the container re-entering view does not replay it.
type StaggerGroup struct {
	mu      sync.Mutex
	visible []bool
	timer   *time.Timer
	next    int
	delay   time.Duration
	onItem  func(i int)
	started bool
	stopped bool

	handle *Handle
}

// ObserveStaggered observes container and staggers n item reveals by delay.
// onItem may be nil. With reduced motion active all items are visible
// immediately.
func (r *Registry) ObserveStaggered(container string, n int, delay time.Duration, cfg Config, onItem func(i int)) *StaggerGroup {
	cfg.TriggerOnce = true
	g := &StaggerGroup{
		visible: make([]bool, n),
		delay:   delay,
		onItem:  onItem,
	}
	g.handle = r.Observe(container, cfg, func(visible bool) {
		if visible {
			g.start()
		}
	})
	// Reduced motion reports visible synchronously before Observe returns,
	// in which case start already ran.
	return g
}

func (g *StaggerGroup) start() {
	g.mu.Lock()
	if g.started || g.stopped {
		g.mu.Unlock()
		return
	}
	g.started = true
	g.mu.Unlock()
	g.reveal()
}

// reveal marks the next item visible and chains a timer for the one after,
// guaranteeing item i never appears before item i-1's delay has elapsed.
func (g *StaggerGroup) reveal() {
	g.mu.Lock()
	if g.stopped || g.next >= len(g.visible) {
		g.mu.Unlock()
		return
	}
	i := g.next
	g.visible[i] = true
	g.next++
	onItem := g.onItem
	if g.next < len(g.visible) {
		g.timer = time.AfterFunc(g.delay, g.reveal)
	}
	g.mu.Unlock()

	if onItem != nil {
		onItem(i)
	}
}

// ItemVisible reports whether item i has been revealed.
func (g *StaggerGroup) ItemVisible(i int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if i < 0 || i >= len(g.visible) {
		return false
	}
	return g.visible[i]
}

// VisibleCount returns how many items have been revealed so far.
func (g *StaggerGroup) VisibleCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.next
}

// Stop cancels pending reveals and releases the container subscription.
func (g *StaggerGroup) Stop() {
	g.mu.Lock()
	g.stopped = true
	if g.timer != nil {
		g.timer.Stop()
	}
	g.mu.Unlock()
	g.handle.Release()
}

// StaggerDelays returns the reveal offset of each of n items, used by the
// views to emit per-item transition delays for the client runtime.
func StaggerDelays(n int, delay time.Duration) []time.Duration {
	out := make([]time.Duration, n)
	for i := range out {
		out[i] = time.Duration(i) * delay
	}
	return out
}
