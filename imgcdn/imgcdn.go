// Package imgcdn builds image CDN URLs from content-addressed asset ids.
// Asset ids embed the origin dimensions and format in a fixed pattern
// (image-<hash>-<width>x<height>-<format>), which lets the builder recover
// native dimensions without a metadata round-trip. Malformed ids degrade to
// defaults and never fail.
package imgcdn

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/flyballhub/hubsite/content"
)

// Defaults used when an asset id does not match the expected pattern.
const (
	DefaultWidth   = 800
	DefaultHeight  = 600
	DefaultFormat  = "jpg"
	DefaultQuality = 75
)

var assetIDPattern = regexp.MustCompile(`^image-([a-zA-Z0-9]+)-(\d+)x(\d+)-(\w+)$`)

// Asset is a parsed asset id.
type Asset struct {
	Hash   string
	Width  int
	Height int
	Format string
}

// ParseAssetID extracts the hash, native dimensions and format from an asset
// id. Non-matching ids fall back to the hash-as-given with default dimensions.
func ParseAssetID(id string) Asset {
	if m := assetIDPattern.FindStringSubmatch(id); m != nil {
		w, _ := strconv.Atoi(m[2])
		h, _ := strconv.Atoi(m[3])
		return Asset{Hash: m[1], Width: w, Height: h, Format: m[4]}
	}
	return Asset{
		Hash:   strings.TrimPrefix(id, "image-"),
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Format: DefaultFormat,
	}
}

// Builder constructs CDN URLs for a fixed project and dataset.
type Builder struct {
	BaseURL string // CDN origin, e.g. "https://cdn.flyballhub.com"
	Project string
	Dataset string
	Quality int // 1..100, DefaultQuality when zero
}

// URL builds the transform URL for an image reference at the target width.
// A zero targetWidth keeps the native width. Invalid references yield "".
func (b Builder) URL(img *content.Image, targetWidth int) string {
	if !img.Valid() {
		return ""
	}
	asset := ParseAssetID(strings.TrimSpace(img.ID))
	width := targetWidth
	if width <= 0 {
		width = asset.Width
	}

	quality := b.Quality
	if quality <= 0 {
		quality = DefaultQuality
	}

	params := url.Values{}
	params.Set("w", strconv.Itoa(width))
	params.Set("auto", "format")
	params.Set("fit", "max")
	params.Set("q", strconv.Itoa(quality))

	if c := img.Crop; c != nil {
		rect := fmt.Sprintf("%s,%s,%s,%s",
			formatFraction(c.Left),
			formatFraction(c.Top),
			formatFraction(1-c.Left-c.Right),
			formatFraction(1-c.Top-c.Bottom))
		params.Set("rect", rect)
	}
	if h := img.Hotspot; h != nil {
		params.Set("fp-x", formatFraction(h.X))
		params.Set("fp-y", formatFraction(h.Y))
	}

	return fmt.Sprintf("%s/images/%s/%s/%s-%dx%d.%s?%s",
		strings.TrimSuffix(b.BaseURL, "/"), b.Project, b.Dataset,
		asset.Hash, asset.Width, asset.Height, asset.Format, params.Encode())
}

// ObjectPosition returns a CSS object-position value for a hotspot, or ""
// when no focal point is set.
func ObjectPosition(h *content.Hotspot) string {
	if h == nil {
		return ""
	}
	return fmt.Sprintf("%s%% %s%%", formatFraction(h.X*100), formatFraction(h.Y*100))
}

// formatFraction trims trailing zeros so URLs stay compact and stable.
func formatFraction(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
