package content

import (
	"encoding/json"
	"testing"
)

func TestDecodePageBlockOrder(t *testing.T) {
	doc := []byte(`{
		"_id": "page-home",
		"_type": "page",
		"slug": "index",
		"title": "Home",
		"pageBuilder": [
			{"_type": "hero", "_key": "k1", "title": "Welcome"},
			{"_type": "statsSection", "_key": "k2", "stats": []},
			{"_type": "cta", "_key": "k3", "title": "Join"}
		]
	}`)

	page, err := DecodePage(doc)
	if err != nil {
		t.Fatalf("DecodePage failed: %v", err)
	}
	want := []string{"hero", "statsSection", "cta"}
	if len(page.Blocks) != len(want) {
		t.Fatalf("block count = %d, want %d", len(page.Blocks), len(want))
	}
	for i, bt := range want {
		if page.Blocks[i].Type != bt {
			t.Errorf("block[%d].Type = %q, want %q", i, page.Blocks[i].Type, bt)
		}
	}
}

func TestDecodeBlocksUnknownTypeSurvives(t *testing.T) {
	blocks, err := DecodeBlocks([]byte(`[
		{"_type": "hero", "_key": "k1", "title": "Hi"},
		{"_type": "somethingNew", "_key": "k2", "payload": 42},
		{"_type": "cta", "_key": "k3"}
	]`))
	if err != nil {
		t.Fatalf("DecodeBlocks failed: %v", err)
	}
	if len(blocks) != 3 {
		t.Fatalf("block count = %d, want 3", len(blocks))
	}

	if !blocks[0].Known() || !blocks[2].Known() {
		t.Error("registered types should decode as known")
	}
	if blocks[1].Known() {
		t.Error("unregistered type should be unknown, not dropped")
	}
	if blocks[1].Key != "k2" {
		t.Errorf("unknown block key = %q, want %q", blocks[1].Key, "k2")
	}
	// Siblings around the unknown block keep their payloads.
	hero, ok := blocks[0].Data.(*HeroBlock)
	if !ok || hero.Title != "Hi" {
		t.Errorf("hero payload = %+v, want title %q", blocks[0].Data, "Hi")
	}
}

func TestDecodeBlocksMalformedPayloadDegrades(t *testing.T) {
	// A registered type whose payload fails the typed decode is kept as
	// unknown instead of failing the array.
	blocks, err := DecodeBlocks([]byte(`[
		{"_type": "hero", "_key": "k1", "buttons": "not-an-array"},
		{"_type": "textBlock", "_key": "k2", "title": "Fine"}
	]`))
	if err != nil {
		t.Fatalf("DecodeBlocks failed: %v", err)
	}
	if len(blocks) != 2 {
		t.Fatalf("block count = %d, want 2", len(blocks))
	}
	if blocks[0].Known() {
		t.Error("malformed hero payload should degrade to unknown")
	}
	if !blocks[1].Known() {
		t.Error("sibling block should still decode")
	}
}

func TestEncodeBlocksRoundTripsUnknown(t *testing.T) {
	in := []byte(`[{"_type":"futureWidget","_key":"fw1","knobs":{"depth":3}}]`)
	blocks, err := DecodeBlocks(in)
	if err != nil {
		t.Fatalf("DecodeBlocks failed: %v", err)
	}
	out, err := EncodeBlocks(blocks)
	if err != nil {
		t.Fatalf("EncodeBlocks failed: %v", err)
	}

	var a, b interface{}
	if err := json.Unmarshal(in, &a); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(out, &b); err != nil {
		t.Fatalf("re-encoded blocks are not valid JSON: %v", err)
	}
	aj, _ := json.Marshal(a)
	bj, _ := json.Marshal(b)
	if string(aj) != string(bj) {
		t.Errorf("unknown block did not round-trip:\n in: %s\nout: %s", aj, bj)
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain", "hello", "hello"},
		{"zero width space", "he​llo", "hello"},
		{"bom", "\ufefftitle", "title"},
		{"word joiner", "a⁠b", "ab"},
	}
	for _, tt := range tests {
		if got := CleanText(tt.input); got != tt.want {
			t.Errorf("%s: CleanText(%q) = %q, want %q", tt.name, tt.input, got, tt.want)
		}
	}
}

func TestImageValid(t *testing.T) {
	var nilImg *Image
	if nilImg.Valid() {
		t.Error("nil image should be invalid")
	}
	if (&Image{}).Valid() {
		t.Error("image without id should be invalid")
	}
	if (&Image{ID: "   "}).Valid() {
		t.Error("whitespace id should be invalid")
	}
	if !(&Image{ID: "image-abc-800x600-jpg"}).Valid() {
		t.Error("image with id should be valid")
	}
}
