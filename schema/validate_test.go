package schema

import (
	"encoding/json"
	"strings"
	"testing"
)

func issuesFor(t *testing.T, blockType, raw string) []Issue {
	t.Helper()
	return ValidateBlock(blockType, "k1", json.RawMessage(raw))
}

func findIssue(issues []Issue, field string, sev Severity) *Issue {
	for i := range issues {
		if issues[i].Field == field && issues[i].Severity == sev {
			return &issues[i]
		}
	}
	return nil
}

func TestValidateBlockUnknownTypeWarns(t *testing.T) {
	issues := issuesFor(t, "brandNewBlock", `{"anything": true}`)
	if len(issues) != 1 {
		t.Fatalf("issues = %v, want exactly one", issues)
	}
	if issues[0].Severity != Warning {
		t.Errorf("unknown type should warn, not error: %v", issues[0])
	}
	if HasErrors(issues) {
		t.Error("unknown block type must not block saving")
	}
}

func TestValidateBlockMalformedPayload(t *testing.T) {
	issues := issuesFor(t, "hero", `"not an object"`)
	if !HasErrors(issues) {
		t.Errorf("non-object payload should error, got %v", issues)
	}
}

func TestValidateBlockCleanHero(t *testing.T) {
	issues := issuesFor(t, "hero", `{
		"_type": "hero", "_key": "k1",
		"title": "Welcome to FlyballHub",
		"variant": "globe",
		"buttons": [{"text": "Get Started", "href": "/signup/"}],
		"stats": [{"value": "150+", "label": "Active Teams"}]
	}`)
	if len(issues) != 0 {
		t.Errorf("clean hero produced issues: %v", issues)
	}
}

func TestValidateBlockRequiredField(t *testing.T) {
	issues := issuesFor(t, "cta", `{"_type": "cta", "_key": "k1"}`)
	i := findIssue(issues, "title", Error)
	if i == nil {
		t.Fatalf("missing required title should error, got %v", issues)
	}
	if !strings.Contains(i.Message, "required") {
		t.Errorf("message = %q", i.Message)
	}
}

func TestValidateBlockVariantOptions(t *testing.T) {
	issues := issuesFor(t, "hero", `{"variant": "sideways"}`)
	if findIssue(issues, "variant", Error) == nil {
		t.Errorf("out-of-set variant should error, got %v", issues)
	}

	issues = issuesFor(t, "hero", `{"variant": "classic"}`)
	if findIssue(issues, "variant", Error) != nil {
		t.Errorf("allowed variant flagged: %v", issues)
	}
}

func TestValidateBlockArrayBounds(t *testing.T) {
	// statsSection requires 2..6 stats.
	one := `{"title": "By The Numbers", "stats": [{"value": "1", "label": "one"}]}`
	if findIssue(issuesFor(t, "statsSection", one), "stats", Error) == nil {
		t.Error("one stat should violate the minimum of 2")
	}

	var items []string
	for i := 0; i < 7; i++ {
		items = append(items, `{"value": "v", "label": "l"}`)
	}
	seven := `{"title": "t", "stats": [` + strings.Join(items, ",") + `]}`
	if findIssue(issuesFor(t, "statsSection", seven), "stats", Error) == nil {
		t.Error("seven stats should violate the maximum of 6")
	}

	two := `{"title": "t", "stats": [{"value": "a", "label": "x"}, {"value": "b", "label": "y"}]}`
	if HasErrors(issuesFor(t, "statsSection", two)) {
		t.Errorf("two stats should be fine, got %v", issuesFor(t, "statsSection", two))
	}
}

func TestValidateBlockNestedItemFields(t *testing.T) {
	// An FAQ entry without a question fails the nested required rule.
	raw := `{"title": "FAQ", "faqs": [{"answer": [{"_type": "block"}]}]}`
	issues := issuesFor(t, "faqAccordion", raw)
	if findIssue(issues, "question", Error) == nil {
		t.Errorf("missing nested question should error, got %v", issues)
	}
}

func TestValidateBlockWarnLength(t *testing.T) {
	long := strings.Repeat("x", 200)
	issues := issuesFor(t, "textBlock", `{"title": "`+long+`"}`)
	i := findIssue(issues, "title", Warning)
	if i == nil {
		t.Fatalf("overlong title should warn, got %v", issues)
	}
	if HasErrors(issues) {
		t.Error("length warning must not block saving")
	}
}

func TestValidateBlockTypeMismatches(t *testing.T) {
	tests := []struct {
		name      string
		blockType string
		raw       string
		field     string
	}{
		{"string field as number", "textBlock", `{"title": 42}`, "title"},
		{"number field as string", "latestPosts", `{"limit": "three"}`, "limit"},
		{"array field as object", "statsSection", `{"stats": {"value": "x"}}`, "stats"},
	}
	for _, tt := range tests {
		issues := issuesFor(t, tt.blockType, tt.raw)
		if findIssue(issues, tt.field, Error) == nil {
			t.Errorf("%s: expected error on %q, got %v", tt.name, tt.field, issues)
		}
	}
}

func TestEveryRegisteredTypeHasPreviewFallback(t *testing.T) {
	for _, name := range Names() {
		def, ok := Lookup(name)
		if !ok {
			t.Fatalf("Lookup(%q) failed for a listed name", name)
		}
		if def.Preview.Fallback == "" {
			t.Errorf("block %q has no preview fallback label", name)
		}
	}
}

func TestHasErrors(t *testing.T) {
	if HasErrors(nil) {
		t.Error("no issues should mean no errors")
	}
	if HasErrors([]Issue{{Severity: Warning}}) {
		t.Error("warnings alone are not errors")
	}
	if !HasErrors([]Issue{{Severity: Warning}, {Severity: Error}}) {
		t.Error("an error among warnings should be detected")
	}
}
