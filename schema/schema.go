// Package schema declares the authoring-time shape of every page-builder
// block: field lists with constraints and a preview projection for the
// editing UI. It is pure description — the render path never consults it;
// only the admin save path validates against it.
package schema

// FieldType enumerates the primitive field kinds editors work with.
type FieldType string

const (
	TypeString   FieldType = "string"
	TypeText     FieldType = "text"
	TypeRichText FieldType = "richText"
	TypeImage    FieldType = "image"
	TypeURL      FieldType = "url"
	TypeNumber   FieldType = "number"
	TypeBoolean  FieldType = "boolean"
	TypeArray    FieldType = "array"
	TypeObject   FieldType = "object"
)

// Field describes one editable field and its constraints.
type Field struct {
	Name        string
	Title       string
	Type        FieldType
	Description string
	Required    bool

	// Array constraints.
	MinItems int
	MaxItems int
	Of       []Field // item fields for arrays of objects

	// String constraints. WarnLength flags overly long copy without
	// rejecting it.
	MaxLength  int
	WarnLength int

	// Enumerated choices, e.g. hero variants.
	Options      []string
	InitialValue string
}

// Preview selects which fields feed the authoring UI's list preview.
type Preview struct {
	TitleField    string
	SubtitleField string
	MediaField    string
	// Fallback label when the title field is empty.
	Fallback string
}

// BlockDef is the declared shape of one block type.
type BlockDef struct {
	Name    string
	Title   string
	Fields  []Field
	Preview Preview
}

// Lookup returns the definition for a block type tag.
func Lookup(name string) (BlockDef, bool) {
	def, ok := registry[name]
	return def, ok
}

// Names returns every registered block type tag.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	return out
}

var registry = map[string]BlockDef{}

func register(def BlockDef) {
	registry[def.Name] = def
}

// Shared field fragments, mirroring how block shapes reuse common pieces.

func eyebrowField() Field {
	return Field{Name: "eyebrow", Title: "Eyebrow", Type: TypeString,
		Description: "Small text above the title", WarnLength: 60}
}

func titleField(required bool) Field {
	return Field{Name: "title", Title: "Title", Type: TypeString,
		Required: required, WarnLength: 120}
}

func richTextField() Field {
	return Field{Name: "richText", Title: "Rich Text", Type: TypeRichText}
}

func imageField(name string) Field {
	return Field{Name: name, Title: "Image", Type: TypeImage, Of: []Field{
		{Name: "alt", Title: "Alt Text", Type: TypeString,
			Description: "Describe this image for screen readers and SEO"},
	}}
}

func buttonsField() Field {
	return Field{Name: "buttons", Title: "Buttons", Type: TypeArray, MaxItems: 2, Of: []Field{
		{Name: "text", Type: TypeString, Required: true},
		{Name: "href", Type: TypeURL, Required: true},
		{Name: "variant", Type: TypeString, Options: []string{"default", "secondary", "outline", "link"}},
		{Name: "openInNewTab", Type: TypeBoolean},
	}}
}

func statFields() []Field {
	return []Field{
		{Name: "value", Type: TypeString, Required: true,
			Description: "The statistic value (e.g. '150+', '99%')"},
		{Name: "label", Type: TypeString, Required: true,
			Description: "Description of the stat (e.g. 'Active Teams')"},
		{Name: "description", Type: TypeText},
	}
}

func init() {
	register(BlockDef{
		Name: "hero", Title: "Hero",
		Fields: []Field{
			{Name: "badge", Title: "Badge", Type: TypeString},
			titleField(false),
			richTextField(),
			imageField("image"),
			buttonsField(),
			{Name: "stats", Title: "Social Proof Stats", Type: TypeArray, MaxItems: 4, Of: statFields()},
			{Name: "variant", Title: "Hero Variant", Type: TypeString,
				Options: []string{"globe", "dynamic", "classic"}, InitialValue: "classic"},
		},
		Preview: Preview{TitleField: "title", Fallback: "Hero Block", MediaField: "image"},
	})

	register(BlockDef{
		Name: "textBlock", Title: "Text Block",
		Fields:  []Field{titleField(false), richTextField()},
		Preview: Preview{TitleField: "title", Fallback: "Text Block"},
	})

	register(BlockDef{
		Name: "cta", Title: "Call To Action",
		Fields:  []Field{eyebrowField(), titleField(true), richTextField(), buttonsField()},
		Preview: Preview{TitleField: "title", SubtitleField: "eyebrow", Fallback: "CTA"},
	})

	register(BlockDef{
		Name: "featureCardsIcon", Title: "Feature Cards (Icon)",
		Fields: []Field{
			eyebrowField(), titleField(true), richTextField(),
			{Name: "cards", Title: "Cards", Type: TypeArray, Required: true, MinItems: 1, MaxItems: 6, Of: []Field{
				{Name: "icon", Type: TypeString},
				{Name: "title", Type: TypeString, Required: true},
				{Name: "richText", Type: TypeRichText},
			}},
		},
		Preview: Preview{TitleField: "title", Fallback: "Feature Cards"},
	})

	register(BlockDef{
		Name: "featureCardsScreenshot", Title: "Feature Cards (Screenshot)",
		Fields: []Field{
			eyebrowField(), titleField(true), richTextField(),
			{Name: "cards", Title: "Cards", Type: TypeArray, Required: true, MinItems: 1, MaxItems: 6, Of: []Field{
				{Name: "title", Type: TypeString, Required: true},
				{Name: "description", Type: TypeText},
				imageField("image"),
				{Name: "href", Type: TypeURL},
			}},
		},
		Preview: Preview{TitleField: "title", Fallback: "Feature Cards"},
	})

	register(BlockDef{
		Name: "faqAccordion", Title: "FAQ Accordion",
		Fields: []Field{
			eyebrowField(), titleField(true),
			{Name: "subtitle", Title: "Subtitle", Type: TypeText},
			{Name: "faqs", Title: "Questions", Type: TypeArray, Required: true, MinItems: 1, Of: []Field{
				{Name: "question", Type: TypeString, Required: true, WarnLength: 160},
				{Name: "answer", Type: TypeRichText, Required: true},
			}},
			{Name: "link", Title: "Link", Type: TypeURL},
		},
		Preview: Preview{TitleField: "title", Fallback: "FAQ Accordion"},
	})

	register(BlockDef{
		Name: "imageLinkCards", Title: "Image Link Cards",
		Fields: []Field{
			eyebrowField(), titleField(true), richTextField(),
			{Name: "cards", Title: "Cards", Type: TypeArray, Required: true, MinItems: 1, MaxItems: 4, Of: []Field{
				{Name: "title", Type: TypeString, Required: true},
				{Name: "description", Type: TypeText},
				imageField("image"),
				{Name: "href", Type: TypeURL, Required: true},
			}},
		},
		Preview: Preview{TitleField: "title", Fallback: "Image Link Cards"},
	})

	register(BlockDef{
		Name: "subscribeNewsletter", Title: "Subscribe Newsletter",
		Fields: []Field{
			titleField(true),
			{Name: "subTitle", Title: "Subtitle", Type: TypeRichText},
			{Name: "helperText", Title: "Helper Text", Type: TypeRichText},
		},
		Preview: Preview{TitleField: "title", Fallback: "Newsletter"},
	})

	register(BlockDef{
		Name: "contactForm", Title: "Contact Form",
		Fields: []Field{
			eyebrowField(), titleField(true),
			{Name: "subTitle", Title: "Subtitle", Type: TypeRichText},
			{Name: "buttonText", Title: "Button Text", Type: TypeString, InitialValue: "Send Message"},
			{Name: "helperText", Title: "Helper Text", Type: TypeRichText},
			{Name: "successMessage", Title: "Success Message", Type: TypeString,
				InitialValue: "Thank you! We'll get back to you soon."},
		},
		Preview: Preview{TitleField: "title", Fallback: "Contact Form"},
	})

	register(BlockDef{
		Name: "testimonials", Title: "Testimonials",
		Fields: []Field{
			eyebrowField(), titleField(true),
			{Name: "testimonials", Title: "Testimonials", Type: TypeArray, Required: true, MinItems: 1, Of: []Field{
				{Name: "quote", Type: TypeText, Required: true, WarnLength: 400},
				{Name: "author", Type: TypeString, Required: true},
				{Name: "role", Type: TypeString},
				imageField("image"),
			}},
		},
		Preview: Preview{TitleField: "title", Fallback: "Testimonials"},
	})

	register(BlockDef{
		Name: "logoCloud", Title: "Logo Cloud",
		Fields: []Field{
			titleField(false),
			{Name: "logos", Title: "Logos", Type: TypeArray, Required: true, MinItems: 2, MaxItems: 12,
				Of: []Field{imageField("image")}},
		},
		Preview: Preview{TitleField: "title", Fallback: "Logo Cloud"},
	})

	register(BlockDef{
		Name: "statsSection", Title: "Stats Section",
		Fields: []Field{
			eyebrowField(), titleField(false), richTextField(),
			{Name: "stats", Title: "Statistics", Type: TypeArray, Required: true, MinItems: 2, MaxItems: 6, Of: statFields()},
			{Name: "variant", Title: "Variant", Type: TypeString,
				Options: []string{"default", "accent"}, InitialValue: "default"},
		},
		Preview: Preview{TitleField: "title", Fallback: "Stats Section"},
	})

	register(BlockDef{
		Name: "macbookScroll", Title: "Macbook Scroll",
		Fields: []Field{
			{Name: "badge", Title: "Badge", Type: TypeString},
			titleField(false),
			imageField("image"),
		},
		Preview: Preview{TitleField: "title", Fallback: "Macbook Scroll", MediaField: "image"},
	})

	register(BlockDef{
		Name: "videoSection", Title: "Video Section",
		Fields: []Field{
			eyebrowField(), titleField(false),
			{Name: "videoUrl", Title: "Video URL", Type: TypeURL, Required: true},
			imageField("poster"),
		},
		Preview: Preview{TitleField: "title", Fallback: "Video Section"},
	})

	register(BlockDef{
		Name: "latestPosts", Title: "Latest Posts",
		Fields: []Field{
			eyebrowField(), titleField(false),
			{Name: "limit", Title: "Post Count", Type: TypeNumber, InitialValue: "3"},
		},
		Preview: Preview{TitleField: "title", Fallback: "Latest Posts"},
	})

	register(BlockDef{
		Name: "teamFinder", Title: "Team Finder",
		Fields: []Field{
			eyebrowField(), titleField(true),
			{Name: "description", Title: "Description", Type: TypeString},
			{Name: "searchPlaceholder", Title: "Search Placeholder", Type: TypeString,
				InitialValue: "Enter your city or postcode..."},
			{Name: "noResultsMessage", Title: "No Results Message", Type: TypeString,
				InitialValue: "No teams found. Try a different location."},
		},
		Preview: Preview{TitleField: "title", SubtitleField: "eyebrow", Fallback: "Team Finder"},
	})

	register(BlockDef{
		Name: "teamFinderTeaser", Title: "Team Finder Teaser",
		Fields: []Field{
			eyebrowField(), titleField(true),
			{Name: "description", Title: "Description", Type: TypeString},
			{Name: "buttonText", Title: "Button Text", Type: TypeString, InitialValue: "Find a Team"},
			{Name: "buttonHref", Title: "Button Link", Type: TypeURL},
			imageField("image"),
		},
		Preview: Preview{TitleField: "title", Fallback: "Team Finder Teaser"},
	})

	register(BlockDef{
		Name: "appPromo", Title: "App Promo",
		Fields: []Field{
			eyebrowField(), titleField(true), richTextField(),
			imageField("image"),
			{Name: "appStoreUrl", Title: "App Store URL", Type: TypeURL},
			{Name: "playStoreUrl", Title: "Play Store URL", Type: TypeURL},
		},
		Preview: Preview{TitleField: "title", Fallback: "App Promo", MediaField: "image"},
	})
}
