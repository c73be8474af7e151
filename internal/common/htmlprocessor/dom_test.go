package htmlprocessor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) Document {
	t.Helper()
	doc, err := Parse([]byte(src))
	require.NoError(t, err)
	return doc
}

func TestTitle(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		expected string
	}{
		{
			name:     "simple title",
			html:     `<html><head><title>My Page</title></head></html>`,
			expected: "My Page",
		},
		{
			name:     "title with surrounding whitespace",
			html:     "<html><head><title>\n  Spaced Out  \n</title></head></html>",
			expected: "Spaced Out",
		},
		{
			name:     "no title",
			html:     `<html><head></head><body></body></html>`,
			expected: "",
		},
		{
			name:     "empty input",
			html:     ``,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, mustParse(t, tt.html).Title())
		})
	}
}

func TestMetaContent(t *testing.T) {
	doc := mustParse(t, `<html><head>
		<meta name="Description" content=" A fine page. ">
		<meta name="viewport" content="width=device-width, initial-scale=1">
	</head></html>`)

	assert.Equal(t, "A fine page.", doc.MetaContent("description"))
	assert.Equal(t, "width=device-width, initial-scale=1", doc.MetaContent("viewport"))
	assert.Equal(t, "", doc.MetaContent("keywords"))
}

func TestHeadings(t *testing.T) {
	doc := mustParse(t, `<html><body>
		<h1>Main   Heading</h1>
		<h2>Section A</h2><h2>Section B</h2>
		<h3>Sub</h3>
	</body></html>`)

	assert.Equal(t, 1, doc.HeadingCount(1))
	assert.Equal(t, 2, doc.HeadingCount(2))
	assert.Equal(t, 1, doc.HeadingCount(3))
	assert.Equal(t, 0, doc.HeadingCount(4))
	assert.Equal(t, 0, doc.HeadingCount(0))
	assert.Equal(t, "Main Heading", doc.FirstHeadingText(1))
	assert.Equal(t, "", doc.FirstHeadingText(5))
}

func TestLinks(t *testing.T) {
	doc := mustParse(t, `<html><body>
		<a href="/about">About Us</a>
		<a href="https://other.com">  External  Link </a>
		<a name="anchor-without-href">skip me</a>
	</body></html>`)

	links := doc.Links()
	require.Len(t, links, 2)
	assert.Equal(t, Link{Href: "/about", Text: "About Us"}, links[0])
	assert.Equal(t, Link{Href: "https://other.com", Text: "External Link"}, links[1])
}

func TestImages(t *testing.T) {
	doc := mustParse(t, `<html><body>
		<img src="a.png" alt="A picture">
		<img src="b.png" alt="">
		<img src="c.png">
	</body></html>`)

	images := doc.Images()
	require.Len(t, images, 3)
	assert.True(t, images[0].HasAlt)
	assert.Equal(t, "A picture", images[0].Alt)
	assert.False(t, images[1].HasAlt, "empty alt does not count as alt text")
	assert.False(t, images[2].HasAlt)
}

func TestCanonicalHref(t *testing.T) {
	doc := mustParse(t, `<html><head><link rel="canonical" href="https://example.com/p"></head></html>`)
	href, present := doc.CanonicalHref()
	assert.True(t, present)
	assert.Equal(t, "https://example.com/p", href)

	doc = mustParse(t, `<html><head><link rel="stylesheet" href="s.css"></head></html>`)
	_, present = doc.CanonicalHref()
	assert.False(t, present)
}

func TestViewportContent(t *testing.T) {
	doc := mustParse(t, `<html><head><meta name="viewport" content="width=device-width"></head></html>`)
	content, present := doc.ViewportContent()
	assert.True(t, present)
	assert.Equal(t, "width=device-width", content)

	doc = mustParse(t, `<html><head></head></html>`)
	_, present = doc.ViewportContent()
	assert.False(t, present)
}

func TestVisibleText(t *testing.T) {
	src := `<html><body>
		<nav>Home About Contact</nav>
		<script>var x = 1;</script>
		<style>body { color: red; }</style>
		<noscript>Enable JS</noscript>
		<p>Actual content here.</p>
		<footer>Copyright notice</footer>
	</body></html>`
	doc := mustParse(t, src)

	full := doc.VisibleText(false)
	assert.Contains(t, full, "Actual content here.")
	assert.Contains(t, full, "Home About Contact")
	assert.NotContains(t, full, "var x")
	assert.NotContains(t, full, "color: red")
	assert.NotContains(t, full, "Enable JS")

	stripped := doc.VisibleText(true)
	assert.Contains(t, stripped, "Actual content here.")
	assert.NotContains(t, stripped, "Home About Contact")
	assert.NotContains(t, stripped, "Copyright notice")
}

func TestWordCount(t *testing.T) {
	doc := mustParse(t, `<html><body><nav>one two three</nav><p>four five</p></body></html>`)
	assert.Equal(t, 5, doc.WordCount(false))
	assert.Equal(t, 2, doc.WordCount(true))
}

func TestMalformedMarkup(t *testing.T) {
	// The parser never rejects arbitrary input; queries resolve to
	// empty values on whatever tree results.
	doc := mustParse(t, `<p><b>unclosed <h1>heading</p><<>< garbage`)
	assert.Equal(t, "", doc.Title())
	assert.Equal(t, 1, doc.HeadingCount(1))
}

func TestHasElementAndElementText(t *testing.T) {
	doc := mustParse(t, `<html><body><footer>  All rights   reserved </footer></body></html>`)
	assert.True(t, doc.HasElement("footer"))
	assert.False(t, doc.HasElement("nav"))
	assert.Equal(t, "All rights reserved", doc.ElementText("footer"))
	assert.Equal(t, "", doc.ElementText("aside"))
}
