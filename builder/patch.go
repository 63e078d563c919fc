package builder

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/flyballhub/hubsite/content"
)

// Patch is one optimistic document update from an editing session. Seq is
// assigned by the editor and increases per session; Received is stamped on
// arrival and breaks ties between sessions.
type Patch struct {
	DocumentID string          `json:"documentId"`
	Seq        int64           `json:"seq"`
	Document   json.RawMessage `json:"document"`

	Received time.Time `json:"-"`
}

// Overlay holds in-flight preview documents keyed by document id, applying
// last-write-wins: a patch replaces the current one unless it is older by
// sequence (same session) or arrival time. Nothing here touches the store;
// the overlay only shadows published content for preview rendering.
type Overlay struct {
	mu      sync.RWMutex
	patches map[string]Patch
}

// NewOverlay creates an empty preview overlay.
func NewOverlay() *Overlay {
	return &Overlay{patches: make(map[string]Patch)}
}

// Apply records a patch. It reports whether the patch won, i.e. became the
// overlay's current document.
func (o *Overlay) Apply(p Patch) (bool, error) {
	if p.DocumentID == "" {
		return false, fmt.Errorf("builder: patch without document id")
	}
	if len(p.Document) == 0 {
		return false, fmt.Errorf("builder: patch without document body")
	}
	if p.Received.IsZero() {
		p.Received = time.Now()
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	cur, ok := o.patches[p.DocumentID]
	if ok {
		if p.Seq < cur.Seq {
			return false, nil
		}
		if p.Seq == cur.Seq && p.Received.Before(cur.Received) {
			return false, nil
		}
	}
	o.patches[p.DocumentID] = p
	return true, nil
}

// Resolve returns the preview document for id, decoded, or nil when no patch
// is pending. A patch that no longer decodes is dropped rather than served.
func (o *Overlay) Resolve(id string) *content.Page {
	o.mu.RLock()
	p, ok := o.patches[id]
	o.mu.RUnlock()
	if !ok {
		return nil
	}
	page, err := content.DecodePage(p.Document)
	if err != nil {
		o.Clear(id)
		return nil
	}
	return &page
}

// ResolvePage overlays a stored page, returning the patched version when one
// is pending and the stored page otherwise.
func (o *Overlay) ResolvePage(stored *content.Page) *content.Page {
	if stored == nil {
		return nil
	}
	if patched := o.Resolve(stored.ID); patched != nil {
		return patched
	}
	return stored
}

// Clear drops the pending patch for id, typically after publish.
func (o *Overlay) Clear(id string) {
	o.mu.Lock()
	delete(o.patches, id)
	o.mu.Unlock()
}

// Pending returns the number of documents with in-flight patches.
func (o *Overlay) Pending() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.patches)
}
