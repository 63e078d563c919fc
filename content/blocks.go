package content

import (
	"encoding/json"
)

// Block is one entry of a page's builder array: a stable key, a type tag and
// a type-specific payload. Data is nil when the tag has no registered shape;
// the raw payload is always retained so unknown blocks round-trip untouched.
type Block struct {
	Type string
	Key  string
	Data BlockData
	Raw  json.RawMessage
}

// BlockData is implemented by every typed block payload.
type BlockData interface {
	BlockType() string
}

// Known reports whether the block decoded into a registered shape.
func (b Block) Known() bool {
	return b.Data != nil
}

type blockEnvelope struct {
	Type string `json:"_type"`
	Key  string `json:"_key"`
}

// blockDecoders maps each registered type tag to a decoder for its payload.
// Adding a shape means adding a struct and one entry here.
var blockDecoders = map[string]func([]byte) (BlockData, error){
	"hero":                   decodeInto[*HeroBlock],
	"textBlock":              decodeInto[*TextBlock],
	"cta":                    decodeInto[*CTABlock],
	"featureCardsIcon":       decodeInto[*FeatureCardsIconBlock],
	"featureCardsScreenshot": decodeInto[*FeatureCardsScreenshotBlock],
	"faqAccordion":           decodeInto[*FAQAccordionBlock],
	"imageLinkCards":         decodeInto[*ImageLinkCardsBlock],
	"subscribeNewsletter":    decodeInto[*SubscribeNewsletterBlock],
	"contactForm":            decodeInto[*ContactFormBlock],
	"testimonials":           decodeInto[*TestimonialsBlock],
	"logoCloud":              decodeInto[*LogoCloudBlock],
	"statsSection":           decodeInto[*StatsSectionBlock],
	"macbookScroll":          decodeInto[*MacbookScrollBlock],
	"videoSection":           decodeInto[*VideoSectionBlock],
	"latestPosts":            decodeInto[*LatestPostsBlock],
	"teamFinder":             decodeInto[*TeamFinderBlock],
	"teamFinderTeaser":       decodeInto[*TeamFinderTeaserBlock],
	"appPromo":               decodeInto[*AppPromoBlock],
}

func decodeInto[T BlockData](data []byte) (BlockData, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// RegisteredBlockTypes returns the closed set of type tags the model decodes.
func RegisteredBlockTypes() []string {
	types := make([]string, 0, len(blockDecoders))
	for t := range blockDecoders {
		types = append(types, t)
	}
	return types
}

// UnmarshalJSON decodes the envelope first, then dispatches on the type tag.
// A payload that fails its typed decode degrades to an unknown block rather
// than failing the surrounding array.
func (b *Block) UnmarshalJSON(data []byte) error {
	var env blockEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	b.Type = env.Type
	b.Key = env.Key
	b.Raw = append(b.Raw[:0], data...)
	b.Data = nil
	if decode, ok := blockDecoders[env.Type]; ok {
		if v, err := decode(data); err == nil {
			b.Data = v
		}
	}
	return nil
}

// MarshalJSON writes back the original payload.
func (b Block) MarshalJSON() ([]byte, error) {
	if len(b.Raw) > 0 {
		return b.Raw, nil
	}
	return json.Marshal(blockEnvelope{Type: b.Type, Key: b.Key})
}

// HeroBlock is the page's primary above-the-fold section.
type HeroBlock struct {
	Badge    string   `json:"badge"`
	Title    string   `json:"title"`
	RichText RichText `json:"richText"`
	Image    *Image   `json:"image"`
	Buttons  []Button `json:"buttons"`
	Stats    []Stat   `json:"stats"`
	Variant  string   `json:"variant"` // globe, dynamic or classic
}

func (*HeroBlock) BlockType() string { return "hero" }

// TextBlock is a plain prose section.
type TextBlock struct {
	Title    string   `json:"title"`
	RichText RichText `json:"richText"`
}

func (*TextBlock) BlockType() string { return "textBlock" }

// CTABlock is a full-width call to action banner.
type CTABlock struct {
	Eyebrow  string   `json:"eyebrow"`
	Title    string   `json:"title"`
	RichText RichText `json:"richText"`
	Buttons  []Button `json:"buttons"`
}

func (*CTABlock) BlockType() string { return "cta" }

// FeatureCard is a single icon-led feature entry.
type FeatureCard struct {
	Key      string   `json:"_key"`
	Icon     string   `json:"icon"`
	Title    string   `json:"title"`
	RichText RichText `json:"richText"`
}

// FeatureCardsIconBlock lists features with icons.
type FeatureCardsIconBlock struct {
	Eyebrow  string        `json:"eyebrow"`
	Title    string        `json:"title"`
	RichText RichText      `json:"richText"`
	Cards    []FeatureCard `json:"cards"`
}

func (*FeatureCardsIconBlock) BlockType() string { return "featureCardsIcon" }

// ScreenshotCard pairs copy with a product screenshot.
type ScreenshotCard struct {
	Key         string `json:"_key"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       *Image `json:"image"`
	Href        string `json:"href"`
}

// FeatureCardsScreenshotBlock lists features illustrated by screenshots.
type FeatureCardsScreenshotBlock struct {
	Eyebrow  string           `json:"eyebrow"`
	Title    string           `json:"title"`
	RichText RichText         `json:"richText"`
	Cards    []ScreenshotCard `json:"cards"`
}

func (*FeatureCardsScreenshotBlock) BlockType() string { return "featureCardsScreenshot" }

// FAQItem is one accordion entry.
type FAQItem struct {
	Key      string   `json:"_key"`
	Question string   `json:"question"`
	Answer   RichText `json:"answer"`
}

// FAQAccordionBlock renders a list of expandable questions.
type FAQAccordionBlock struct {
	Eyebrow  string    `json:"eyebrow"`
	Title    string    `json:"title"`
	Subtitle string    `json:"subtitle"`
	FAQs     []FAQItem `json:"faqs"`
	Link     string    `json:"link"`
}

func (*FAQAccordionBlock) BlockType() string { return "faqAccordion" }

// ImageLinkCard is a navigational card with a background image.
type ImageLinkCard struct {
	Key         string `json:"_key"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       *Image `json:"image"`
	Href        string `json:"href"`
}

// ImageLinkCardsBlock is a grid of image-backed link cards.
type ImageLinkCardsBlock struct {
	Eyebrow  string          `json:"eyebrow"`
	Title    string          `json:"title"`
	RichText RichText        `json:"richText"`
	Cards    []ImageLinkCard `json:"cards"`
}

func (*ImageLinkCardsBlock) BlockType() string { return "imageLinkCards" }

// SubscribeNewsletterBlock is the email capture section.
type SubscribeNewsletterBlock struct {
	Title      string   `json:"title"`
	SubTitle   RichText `json:"subTitle"`
	HelperText RichText `json:"helperText"`
}

func (*SubscribeNewsletterBlock) BlockType() string { return "subscribeNewsletter" }

// ContactFormBlock configures the contact form section's copy.
type ContactFormBlock struct {
	Eyebrow        string   `json:"eyebrow"`
	Title          string   `json:"title"`
	SubTitle       RichText `json:"subTitle"`
	ButtonText     string   `json:"buttonText"`
	HelperText     RichText `json:"helperText"`
	SuccessMessage string   `json:"successMessage"`
}

func (*ContactFormBlock) BlockType() string { return "contactForm" }

// Testimonial is a single quote with attribution.
type Testimonial struct {
	Key    string `json:"_key"`
	Quote  string `json:"quote"`
	Author string `json:"author"`
	Role   string `json:"role"`
	Image  *Image `json:"image"`
}

// TestimonialsBlock shows community quotes.
type TestimonialsBlock struct {
	Eyebrow      string        `json:"eyebrow"`
	Title        string        `json:"title"`
	Testimonials []Testimonial `json:"testimonials"`
}

func (*TestimonialsBlock) BlockType() string { return "testimonials" }

// LogoCloudBlock shows partner or league logos.
type LogoCloudBlock struct {
	Title string  `json:"title"`
	Logos []Image `json:"logos"`
}

func (*LogoCloudBlock) BlockType() string { return "logoCloud" }

// StatsSectionBlock displays prominent metrics.
type StatsSectionBlock struct {
	Eyebrow  string   `json:"eyebrow"`
	Title    string   `json:"title"`
	RichText RichText `json:"richText"`
	Stats    []Stat   `json:"stats"`
	Variant  string   `json:"variant"` // default or accent
}

func (*StatsSectionBlock) BlockType() string { return "statsSection" }

// MacbookScrollBlock is a decorative product showcase.
type MacbookScrollBlock struct {
	Badge string `json:"badge"`
	Title string `json:"title"`
	Image *Image `json:"image"`
}

func (*MacbookScrollBlock) BlockType() string { return "macbookScroll" }

// VideoSectionBlock embeds a promotional video.
type VideoSectionBlock struct {
	Eyebrow  string `json:"eyebrow"`
	Title    string `json:"title"`
	VideoURL string `json:"videoUrl"`
	Poster   *Image `json:"poster"`
}

func (*VideoSectionBlock) BlockType() string { return "videoSection" }

// LatestPostsBlock pulls the most recent blog entries.
type LatestPostsBlock struct {
	Eyebrow string `json:"eyebrow"`
	Title   string `json:"title"`
	Limit   int    `json:"limit"`
}

func (*LatestPostsBlock) BlockType() string { return "latestPosts" }

// TeamFinderBlock is the location search over the team directory.
type TeamFinderBlock struct {
	Eyebrow           string `json:"eyebrow"`
	Title             string `json:"title"`
	Description       string `json:"description"`
	SearchPlaceholder string `json:"searchPlaceholder"`
	NoResultsMessage  string `json:"noResultsMessage"`
}

func (*TeamFinderBlock) BlockType() string { return "teamFinder" }

// TeamFinderTeaserBlock links to the full team finder.
type TeamFinderTeaserBlock struct {
	Eyebrow     string `json:"eyebrow"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ButtonText  string `json:"buttonText"`
	ButtonHref  string `json:"buttonHref"`
	Image       *Image `json:"image"`
}

func (*TeamFinderTeaserBlock) BlockType() string { return "teamFinderTeaser" }

// AppPromoBlock advertises the companion mobile app.
type AppPromoBlock struct {
	Eyebrow     string   `json:"eyebrow"`
	Title       string   `json:"title"`
	RichText    RichText `json:"richText"`
	Image       *Image   `json:"image"`
	AppStoreURL string   `json:"appStoreUrl"`
	PlayStore   string   `json:"playStoreUrl"`
}

func (*AppPromoBlock) BlockType() string { return "appPromo" }
