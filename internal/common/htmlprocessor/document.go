package htmlprocessor

// Link is one anchor element with its raw href and visible text.
type Link struct {
	Href string
	Text string
}

// Image is one img element. HasAlt distinguishes a present-but-empty alt
// attribute from a missing one.
type Image struct {
	Src    string
	Alt    string
	HasAlt bool
}

// Document provides read-only queries over one parsed HTML page.
// Implementations tolerate arbitrary malformed markup: a missing element
// resolves to an empty value, never an error. The document is immutable
// for the duration of one analysis run.
type Document interface {
	// Title returns the trimmed text of the first <title> element.
	Title() string

	// MetaContent returns the content attribute of the first
	// <meta name="..."> matching name (case-insensitive).
	MetaContent(name string) string

	// HeadingCount counts heading elements at the given level (1-6).
	HeadingCount(level int) int

	// FirstHeadingText returns the collapsed text of the first heading
	// at the given level, or empty string.
	FirstHeadingText(level int) string

	// Links returns all anchors carrying an href, in document order.
	Links() []Link

	// Images returns all img elements, in document order.
	Images() []Image

	// HasElement reports whether at least one element with the tag exists.
	HasElement(tag string) bool

	// ElementText returns the collapsed visible text of the first element
	// with the tag, or empty string.
	ElementText(tag string) string

	// CanonicalHref returns the href of the first <link rel="canonical">
	// and whether such a link exists at all.
	CanonicalHref() (string, bool)

	// ViewportContent returns the content of the viewport meta tag and
	// whether the tag exists.
	ViewportContent() (string, bool)

	// VisibleText returns the page text with script/style/noscript
	// subtrees removed. When stripChrome is true, nav/header/footer
	// subtrees are removed as well.
	VisibleText(stripChrome bool) string

	// WordCount counts whitespace-separated tokens in VisibleText.
	WordCount(stripChrome bool) int
}
