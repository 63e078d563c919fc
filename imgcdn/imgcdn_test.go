package imgcdn

import (
	"net/url"
	"strings"
	"testing"

	"github.com/flyballhub/hubsite/content"
)

func TestParseAssetID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want Asset
	}{
		{
			"well formed",
			"image-abc123-1920x1080-png",
			Asset{Hash: "abc123", Width: 1920, Height: 1080, Format: "png"},
		},
		{
			"jpg",
			"image-deadbeef-800x600-jpg",
			Asset{Hash: "deadbeef", Width: 800, Height: 600, Format: "jpg"},
		},
		{
			"missing dimensions falls back",
			"image-xyz",
			Asset{Hash: "xyz", Width: DefaultWidth, Height: DefaultHeight, Format: DefaultFormat},
		},
		{
			"garbage falls back with id as hash",
			"not-an-asset",
			Asset{Hash: "not-an-asset", Width: DefaultWidth, Height: DefaultHeight, Format: DefaultFormat},
		},
	}
	for _, tt := range tests {
		if got := ParseAssetID(tt.id); got != tt.want {
			t.Errorf("%s: ParseAssetID(%q) = %+v, want %+v", tt.name, tt.id, got, tt.want)
		}
	}
}

func testBuilder() Builder {
	return Builder{
		BaseURL: "https://cdn.example.com",
		Project: "abc123",
		Dataset: "production",
	}
}

func TestURLBasic(t *testing.T) {
	b := testBuilder()
	img := &content.Image{ID: "image-deadbeef-1600x900-jpg"}

	got := b.URL(img, 800)
	u, err := url.Parse(got)
	if err != nil {
		t.Fatalf("URL returned unparseable url %q: %v", got, err)
	}
	if want := "/images/abc123/production/deadbeef-1600x900.jpg"; u.Path != want {
		t.Errorf("path = %q, want %q", u.Path, want)
	}
	q := u.Query()
	if q.Get("w") != "800" {
		t.Errorf("w = %q, want 800", q.Get("w"))
	}
	if q.Get("auto") != "format" || q.Get("fit") != "max" {
		t.Errorf("missing transform defaults in %q", got)
	}
	if q.Get("q") != "75" {
		t.Errorf("q = %q, want default quality 75", q.Get("q"))
	}
}

func TestURLZeroWidthKeepsNative(t *testing.T) {
	b := testBuilder()
	img := &content.Image{ID: "image-deadbeef-1600x900-jpg"}

	u, _ := url.Parse(b.URL(img, 0))
	if got := u.Query().Get("w"); got != "1600" {
		t.Errorf("w = %q, want native 1600", got)
	}
}

func TestURLInvalidImage(t *testing.T) {
	b := testBuilder()
	if got := b.URL(nil, 800); got != "" {
		t.Errorf("URL(nil) = %q, want empty", got)
	}
	if got := b.URL(&content.Image{}, 800); got != "" {
		t.Errorf("URL(no id) = %q, want empty", got)
	}
}

func TestURLCropAndHotspot(t *testing.T) {
	b := testBuilder()
	img := &content.Image{
		ID:      "image-deadbeef-1000x1000-jpg",
		Crop:    &content.Crop{Top: 0.125, Bottom: 0.125, Left: 0.25, Right: 0.25},
		Hotspot: &content.Hotspot{X: 0.5, Y: 0.25},
	}

	u, _ := url.Parse(b.URL(img, 500))
	q := u.Query()
	if got := q.Get("rect"); got != "0.25,0.125,0.5,0.75" {
		t.Errorf("rect = %q, want 0.25,0.125,0.5,0.75", got)
	}
	if q.Get("fp-x") != "0.5" || q.Get("fp-y") != "0.25" {
		t.Errorf("focal point = (%s, %s), want (0.5, 0.25)", q.Get("fp-x"), q.Get("fp-y"))
	}
}

func TestURLFallbackDimensionsInPath(t *testing.T) {
	b := testBuilder()
	img := &content.Image{ID: "image-nopattern"}

	got := b.URL(img, 400)
	if !strings.Contains(got, "nopattern-800x600.jpg") {
		t.Errorf("malformed id should fall back to 800x600 jpg, got %q", got)
	}
}

func TestObjectPosition(t *testing.T) {
	if got := ObjectPosition(nil); got != "" {
		t.Errorf("ObjectPosition(nil) = %q, want empty", got)
	}
	if got := ObjectPosition(&content.Hotspot{X: 0.5, Y: 0.25}); got != "50% 25%" {
		t.Errorf("ObjectPosition = %q, want %q", got, "50% 25%")
	}
}
