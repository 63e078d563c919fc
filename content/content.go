// Package content defines the typed content model delivered by the CMS:
// page documents, the tagged union of page-builder blocks, rich text nodes,
// and image references. Decoding is lenient by design — unknown block types
// and rich text node types survive as placeholders or are skipped, so that
// newly authored content never takes a page down.
package content

import (
	"encoding/json"
	"strings"
)

// Page is the root document fetched per route. Blocks keep their input order;
// renderers treat the whole document as immutable.
type Page struct {
	ID          string  `json:"_id"`
	Type        string  `json:"_type"`
	Slug        string  `json:"slug"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Blocks      []Block `json:"pageBuilder"`
	UpdatedAt   string  `json:"_updatedAt"`
	Published   bool    `json:"-"`
}

// Post is a blog entry referenced by the latestPosts block and the blog routes.
type Post struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        string   `json:"publishedAt"`
	Image       *Image   `json:"image"`
	Body        RichText `json:"richText"`
	Published   bool     `json:"-"`
}

// Image is an opaque CDN asset reference plus optional crop rectangle,
// focal-point hotspot and low-quality preview placeholder.
type Image struct {
	ID      string   `json:"id"`
	Alt     string   `json:"alt"`
	Preview string   `json:"preview"`
	Hotspot *Hotspot `json:"hotspot"`
	Crop    *Crop    `json:"crop"`
}

// Valid reports whether the reference carries an asset id at all. Callers
// skip rendering invalid images rather than emitting a broken request.
func (img *Image) Valid() bool {
	return img != nil && strings.TrimSpace(img.ID) != ""
}

// Hotspot is a fractional focal point (0..1 on both axes).
type Hotspot struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Crop holds fractional insets from each edge.
type Crop struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
}

// Button is a call-to-action link used by hero, cta and promo blocks.
type Button struct {
	Key          string `json:"_key"`
	Text         string `json:"text"`
	Href         string `json:"href"`
	Variant      string `json:"variant"`
	OpenInNewTab bool   `json:"openInNewTab"`
}

// Stat is a single metric (value + label) shown by hero and stats blocks.
type Stat struct {
	Key         string `json:"_key"`
	Value       string `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

var zeroWidthReplacer = strings.NewReplacer(
	"\u200b", "", "\u200c", "", "\u200d", "",
	"\ufeff", "", "\u2060", "", "\u180e", "",
)

// CleanText strips zero-width characters that occasionally leak out of
// rich-text editors and break rendering as literal HTML entities.
func CleanText(s string) string {
	if s == "" {
		return s
	}
	return zeroWidthReplacer.Replace(s)
}

// DecodePage parses a page document from the content source. Malformed
// individual blocks degrade to Unknown entries instead of failing the page.
func DecodePage(data []byte) (Page, error) {
	var p Page
	if err := json.Unmarshal(data, &p); err != nil {
		return Page{}, err
	}
	p.Title = CleanText(p.Title)
	p.Description = CleanText(p.Description)
	return p, nil
}

// DecodeBlocks parses a raw pageBuilder array.
func DecodeBlocks(data []byte) ([]Block, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var blocks []Block
	if err := json.Unmarshal(data, &blocks); err != nil {
		return nil, err
	}
	return blocks, nil
}

// EncodeBlocks serializes blocks back to their wire form, preserving the raw
// payload of each block so round-trips through the store are lossless.
func EncodeBlocks(blocks []Block) ([]byte, error) {
	raws := make([]json.RawMessage, 0, len(blocks))
	for _, b := range blocks {
		raws = append(raws, b.Raw)
	}
	return json.Marshal(raws)
}
