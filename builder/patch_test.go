package builder

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/flyballhub/hubsite/content"
)

func patchDoc(title string) json.RawMessage {
	doc, _ := json.Marshal(map[string]interface{}{
		"_id":   "page-1",
		"_type": "page",
		"slug":  "index",
		"title": title,
	})
	return doc
}

func TestOverlayApplyAndResolve(t *testing.T) {
	o := NewOverlay()

	applied, err := o.Apply(Patch{DocumentID: "page-1", Seq: 1, Document: patchDoc("Draft Title")})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if !applied {
		t.Fatal("first patch should win")
	}

	page := o.Resolve("page-1")
	if page == nil {
		t.Fatal("Resolve returned nil for a pending patch")
	}
	if page.Title != "Draft Title" {
		t.Errorf("Title = %q, want %q", page.Title, "Draft Title")
	}
	if o.Pending() != 1 {
		t.Errorf("Pending = %d, want 1", o.Pending())
	}
}

func TestOverlayRejectsInvalidPatches(t *testing.T) {
	o := NewOverlay()

	if _, err := o.Apply(Patch{Seq: 1, Document: patchDoc("x")}); err == nil {
		t.Error("patch without document id should be rejected")
	}
	if _, err := o.Apply(Patch{DocumentID: "page-1", Seq: 1}); err == nil {
		t.Error("patch without body should be rejected")
	}
	if o.Pending() != 0 {
		t.Errorf("invalid patches must not be stored, Pending = %d", o.Pending())
	}
}

func TestOverlayLastWriteWinsBySeq(t *testing.T) {
	o := NewOverlay()

	base := time.Now()
	if applied, _ := o.Apply(Patch{DocumentID: "page-1", Seq: 5, Document: patchDoc("five"), Received: base}); !applied {
		t.Fatal("seq 5 should apply")
	}

	// An older edit from the same session arrives late and must lose.
	applied, err := o.Apply(Patch{DocumentID: "page-1", Seq: 3, Document: patchDoc("three"), Received: base.Add(time.Second)})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if applied {
		t.Error("stale seq should lose")
	}
	if got := o.Resolve("page-1").Title; got != "five" {
		t.Errorf("Title = %q, want %q", got, "five")
	}

	// A newer edit supersedes.
	if applied, _ := o.Apply(Patch{DocumentID: "page-1", Seq: 6, Document: patchDoc("six"), Received: base.Add(2 * time.Second)}); !applied {
		t.Error("newer seq should win")
	}
	if got := o.Resolve("page-1").Title; got != "six" {
		t.Errorf("Title = %q, want %q", got, "six")
	}
}

func TestOverlayEqualSeqTieBreaksOnArrival(t *testing.T) {
	o := NewOverlay()

	base := time.Now()
	if applied, _ := o.Apply(Patch{DocumentID: "page-1", Seq: 2, Document: patchDoc("later"), Received: base.Add(time.Second)}); !applied {
		t.Fatal("first patch should apply")
	}

	// Same seq from another session, but it arrived earlier: loses.
	applied, _ := o.Apply(Patch{DocumentID: "page-1", Seq: 2, Document: patchDoc("earlier"), Received: base})
	if applied {
		t.Error("earlier arrival with equal seq should lose")
	}
	if got := o.Resolve("page-1").Title; got != "later" {
		t.Errorf("Title = %q, want %q", got, "later")
	}
}

func TestOverlayDocumentsAreIndependent(t *testing.T) {
	o := NewOverlay()

	o.Apply(Patch{DocumentID: "page-1", Seq: 9, Document: patchDoc("one")})
	if applied, _ := o.Apply(Patch{DocumentID: "page-2", Seq: 1, Document: patchDoc("two")}); !applied {
		t.Error("sequence numbers are per document, not global")
	}
	if o.Pending() != 2 {
		t.Errorf("Pending = %d, want 2", o.Pending())
	}
}

func TestOverlayClear(t *testing.T) {
	o := NewOverlay()

	o.Apply(Patch{DocumentID: "page-1", Seq: 1, Document: patchDoc("draft")})
	o.Clear("page-1")

	if o.Resolve("page-1") != nil {
		t.Error("cleared patch should not resolve")
	}
	if o.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", o.Pending())
	}

	// Clearing after publish resets the sequence horizon: seq 1 applies again.
	if applied, _ := o.Apply(Patch{DocumentID: "page-1", Seq: 1, Document: patchDoc("new draft")}); !applied {
		t.Error("patch after clear should apply")
	}
}

func TestOverlayResolveDropsUndecodablePatch(t *testing.T) {
	o := NewOverlay()

	o.Apply(Patch{DocumentID: "page-1", Seq: 1, Document: json.RawMessage(`{"pageBuilder": "broken"`)})
	if got := o.Resolve("page-1"); got != nil {
		t.Errorf("undecodable patch should resolve to nil, got %+v", got)
	}
	if o.Pending() != 0 {
		t.Error("undecodable patch should be dropped")
	}
}

func TestOverlayResolvePage(t *testing.T) {
	o := NewOverlay()

	page, err := content.DecodePage(patchDoc("Stored"))
	if err != nil {
		t.Fatal(err)
	}
	stored := &page

	// No patch pending: the stored page comes back.
	if got := o.ResolvePage(stored); got != stored {
		t.Error("ResolvePage without a patch should return the stored page")
	}

	o.Apply(Patch{DocumentID: stored.ID, Seq: 1, Document: patchDoc("Patched")})
	got := o.ResolvePage(stored)
	if got == stored {
		t.Fatal("ResolvePage should return the patched document")
	}
	if got.Title != "Patched" {
		t.Errorf("Title = %q, want %q", got.Title, "Patched")
	}

	if o.ResolvePage(nil) != nil {
		t.Error("ResolvePage(nil) should be nil")
	}
}
