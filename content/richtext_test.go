package content

import (
	"encoding/json"
	"testing"
)

func TestRichTextDecode(t *testing.T) {
	var rt RichText
	err := json.Unmarshal([]byte(`[
		{"_type": "block", "_key": "b1", "style": "h2",
			"children": [{"_key": "s1", "text": "Heading"}]},
		{"_type": "image", "_key": "i1", "id": "image-abc-800x600-jpg", "alt": "dogs", "caption": "race day"},
		{"_type": "codeBlock", "_key": "c1", "code": "fmt.Println()", "language": "go"},
		{"_type": "table", "_key": "t1", "rows": [["Team", "Time"], ["Racers", "16.2s"]]},
		{"_type": "break", "_key": "r1", "style": "line"}
	]`), &rt)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(rt) != 5 {
		t.Fatalf("node count = %d, want 5", len(rt))
	}

	text, ok := rt[0].(*TextNode)
	if !ok {
		t.Fatalf("node[0] = %T, want *TextNode", rt[0])
	}
	if text.Style != "h2" || text.PlainText() != "Heading" {
		t.Errorf("text node = %+v", text)
	}

	img, ok := rt[1].(*ImageNode)
	if !ok {
		t.Fatalf("node[1] = %T, want *ImageNode", rt[1])
	}
	if img.Image.ID != "image-abc-800x600-jpg" || img.Image.Alt != "dogs" || img.Caption != "race day" {
		t.Errorf("image node = %+v", img)
	}

	table, ok := rt[3].(*TableNode)
	if !ok {
		t.Fatalf("node[3] = %T, want *TableNode", rt[3])
	}
	if len(table.Rows) != 2 || table.Rows[0][0] != "Team" {
		t.Errorf("table node = %+v", table)
	}
}

func TestRichTextSkipsUnknownNodeTypes(t *testing.T) {
	var rt RichText
	err := json.Unmarshal([]byte(`[
		{"_type": "block", "_key": "b1", "children": [{"text": "kept"}]},
		{"_type": "hologram", "_key": "x1"},
		{"_type": "block", "_key": "b2", "children": [{"text": "also kept"}]}
	]`), &rt)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(rt) != 2 {
		t.Fatalf("node count = %d, want 2 (unknown node skipped)", len(rt))
	}
}

func TestSpanScrubsZeroWidthCharacters(t *testing.T) {
	var rt RichText
	err := json.Unmarshal([]byte(`[
		{"_type": "block", "_key": "b1", "children": [{"text": "fly​ball"}]}
	]`), &rt)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got := rt[0].(*TextNode).PlainText(); got != "flyball" {
		t.Errorf("PlainText = %q, want %q", got, "flyball")
	}
}

func TestRichTextEmpty(t *testing.T) {
	var rt RichText
	if !rt.Empty() {
		t.Error("nil rich text should be empty")
	}
	if err := json.Unmarshal([]byte(`[{"_type": "unknownOnly"}]`), &rt); err != nil {
		t.Fatal(err)
	}
	if !rt.Empty() {
		t.Error("rich text with only skipped nodes should be empty")
	}
}
