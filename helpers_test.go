package hubsite

import (
	"reflect"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"  Spaces  Everywhere  ", "spaces-everywhere"},
		{"Already-Slugged", "already-slugged"},
		{"Tournament Recap: Spring 2026!", "tournament-recap-spring-2026"},
		{"UPPER case", "upper-case"},
		{"trailing punctuation...", "trailing-punctuation"},
		{"", ""},
		{"!!!", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.input); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base     string
		segments []string
		want     string
	}{
		{"https://flyballhub.com", nil, "https://flyballhub.com"},
		{"https://flyballhub.com", []string{"blog"}, "https://flyballhub.com/blog/"},
		{"https://flyballhub.com/", []string{"blog", "post-1"}, "https://flyballhub.com/blog/post-1/"},
		{"https://flyballhub.com/sub", []string{"features"}, "https://flyballhub.com/sub/features/"},
	}
	for _, tt := range tests {
		if got := BuildURL(tt.base, tt.segments...); got != tt.want {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.segments, got, tt.want)
		}
	}
}

func TestFilterEmpty(t *testing.T) {
	got := FilterEmpty([]string{"a", "", "  ", "b ", "\t"})
	want := []string{"a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FilterEmpty = %v, want %v", got, want)
	}
}
