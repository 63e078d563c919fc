package views

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/flyballhub/hubsite/content"
	"github.com/flyballhub/hubsite/imgcdn"
)

func decodeRT(t *testing.T, raw string) content.RichText {
	t.Helper()
	var rt content.RichText
	if err := json.Unmarshal([]byte(raw), &rt); err != nil {
		t.Fatalf("decode rich text: %v", err)
	}
	return rt
}

func renderRT(t *testing.T, rt content.RichText) string {
	t.Helper()
	img := &imgcdn.Builder{BaseURL: "https://cdn.example.com", Project: "p", Dataset: "d"}
	var sb strings.Builder
	if err := RichText(rt, img).Render(context.Background(), &sb); err != nil {
		t.Fatalf("render: %v", err)
	}
	return sb.String()
}

func TestRichTextHeadingsAndParagraphs(t *testing.T) {
	out := renderRT(t, decodeRT(t, `[
		{"_type": "block", "style": "h2", "children": [{"text": "Rules"}]},
		{"_type": "block", "children": [{"text": "Two lanes, four dogs."}]}
	]`))
	if !strings.Contains(out, "<h2>Rules</h2>") {
		t.Errorf("missing heading: %s", out)
	}
	if !strings.Contains(out, "<p>Two lanes, four dogs.</p>") {
		t.Errorf("missing paragraph: %s", out)
	}
}

func TestRichTextEscapesContent(t *testing.T) {
	out := renderRT(t, decodeRT(t, `[
		{"_type": "block", "children": [{"text": "<script>alert(1)</script>"}]}
	]`))
	if strings.Contains(out, "<script>") {
		t.Errorf("text content must be escaped: %s", out)
	}
}

func TestRichTextMarks(t *testing.T) {
	out := renderRT(t, decodeRT(t, `[
		{"_type": "block",
			"markDefs": [{"_key": "l1", "_type": "link", "href": "/rules/", "openInNewTab": true}],
			"children": [
				{"text": "bold", "marks": ["strong"]},
				{"text": "both", "marks": ["strong", "em"]},
				{"text": "away", "marks": ["l1"]}
			]}
	]`))
	if !strings.Contains(out, "<strong>bold</strong>") {
		t.Errorf("missing strong mark: %s", out)
	}
	if !strings.Contains(out, "<strong><em>both</em></strong>") {
		t.Errorf("nested marks must close in reverse order: %s", out)
	}
	if !strings.Contains(out, `<a href="/rules/" target="_blank" rel="noopener noreferrer">away</a>`) {
		t.Errorf("missing link mark: %s", out)
	}
}

func TestRichTextListGrouping(t *testing.T) {
	out := renderRT(t, decodeRT(t, `[
		{"_type": "block", "listItem": "bullet", "children": [{"text": "one"}]},
		{"_type": "block", "listItem": "bullet", "children": [{"text": "two"}]},
		{"_type": "block", "listItem": "number", "children": [{"text": "first"}]},
		{"_type": "block", "children": [{"text": "after"}]}
	]`))

	if strings.Count(out, "<ul") != 1 {
		t.Errorf("adjacent bullet items should share one list: %s", out)
	}
	if !strings.Contains(out, "<li>one</li><li>two</li></ul>") {
		t.Errorf("bullet list malformed: %s", out)
	}
	if !strings.Contains(out, "<ol") || !strings.Contains(out, "<li>first</li></ol>") {
		t.Errorf("numbered list malformed: %s", out)
	}
	if !strings.Contains(out, "<p>after</p>") {
		t.Errorf("list should close before the paragraph: %s", out)
	}
}

func TestRichTextFigureAndTable(t *testing.T) {
	out := renderRT(t, decodeRT(t, `[
		{"_type": "image", "id": "image-abc-800x600-jpg", "alt": "start line", "caption": "Heat one"},
		{"_type": "table", "rows": [["Team", "Time"], ["Racers", "16.2"]]}
	]`))

	if !strings.Contains(out, `alt="start line"`) || !strings.Contains(out, "<figcaption>Heat one</figcaption>") {
		t.Errorf("figure malformed: %s", out)
	}
	if !strings.Contains(out, "<th>Team</th>") || !strings.Contains(out, "<td>16.2</td>") {
		t.Errorf("table should promote the first row to a header: %s", out)
	}
}

func TestPlainText(t *testing.T) {
	rt := decodeRT(t, `[
		{"_type": "block", "children": [{"text": "Fast dogs."}]},
		{"_type": "image", "id": "image-abc-800x600-jpg"},
		{"_type": "block", "children": [{"text": "Faster handlers."}]}
	]`)

	if got := PlainText(rt, 0); got != "Fast dogs. Faster handlers." {
		t.Errorf("PlainText = %q", got)
	}
	if got := PlainText(rt, 12); got != "Fast dogs. …" {
		t.Errorf("truncated PlainText = %q", got)
	}
	if got := PlainText(nil, 50); got != "" {
		t.Errorf("PlainText(nil) = %q, want empty", got)
	}
}
