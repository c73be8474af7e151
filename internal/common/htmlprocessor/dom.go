package htmlprocessor

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// domDocument implements Document over a golang.org/x/net/html node tree.
type domDocument struct {
	root *html.Node
}

// Parse parses HTML bytes into a Document. The underlying parser is
// tolerant of malformed markup, so an error here is exceptional.
func Parse(htmlBytes []byte) (Document, error) {
	root, err := html.Parse(bytes.NewReader(htmlBytes))
	if err != nil {
		return nil, err
	}
	return &domDocument{root: root}, nil
}

// findElement recursively searches for the first element with matching
// tag name (case-insensitive). Returns nil if not found.
func findElement(node *html.Node, tag string) *html.Node {
	if node == nil {
		return nil
	}
	return findElementLower(node, strings.ToLower(tag))
}

func findElementLower(node *html.Node, lowerTag string) *html.Node {
	if node.Type == html.ElementNode && strings.ToLower(node.Data) == lowerTag {
		return node
	}
	for c := node.FirstChild; c != nil; c = c.NextSibling {
		if found := findElementLower(c, lowerTag); found != nil {
			return found
		}
	}
	return nil
}

// findAllElements returns all elements with the tag under root, in
// document order.
func findAllElements(root *html.Node, tag string) []*html.Node {
	if root == nil {
		return nil
	}
	tag = strings.ToLower(tag)
	var results []*html.Node

	var search func(*html.Node)
	search = func(n *html.Node) {
		if n.Type == html.ElementNode && strings.ToLower(n.Data) == tag {
			results = append(results, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			search(c)
		}
	}
	search(root)
	return results
}

// getAttr returns the attribute value for the given name
// (case-insensitive). The second return reports attribute presence.
func getAttr(node *html.Node, name string) (string, bool) {
	if node == nil {
		return "", false
	}
	name = strings.ToLower(name)
	for _, attr := range node.Attr {
		if strings.ToLower(attr.Key) == name {
			return attr.Val, true
		}
	}
	return "", false
}

// getTextContent recursively extracts all text content from node and
// descendants, excluding script/style/noscript subtrees.
func getTextContent(node *html.Node) string {
	if node == nil {
		return ""
	}

	var sb strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		if n.Type == html.ElementNode && isAlwaysStripped(strings.ToLower(n.Data)) {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(node)
	return sb.String()
}

// collapseWhitespace trims leading/trailing whitespace and collapses
// internal whitespace sequences to single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func isAlwaysStripped(lowerTag string) bool {
	switch lowerTag {
	case "script", "style", "noscript":
		return true
	}
	return false
}

func isChrome(lowerTag string) bool {
	switch lowerTag {
	case "nav", "header", "footer":
		return true
	}
	return false
}

func (d *domDocument) Title() string {
	title := findElement(d.root, "title")
	if title == nil {
		return ""
	}
	return strings.TrimSpace(getTextContent(title))
}

func (d *domDocument) MetaContent(name string) string {
	name = strings.ToLower(name)
	for _, meta := range findAllElements(d.root, "meta") {
		metaName, _ := getAttr(meta, "name")
		if strings.ToLower(metaName) == name {
			content, _ := getAttr(meta, "content")
			return strings.TrimSpace(content)
		}
	}
	return ""
}

func (d *domDocument) HeadingCount(level int) int {
	if level < 1 || level > 6 {
		return 0
	}
	return len(findAllElements(d.root, fmt.Sprintf("h%d", level)))
}

func (d *domDocument) FirstHeadingText(level int) string {
	if level < 1 || level > 6 {
		return ""
	}
	h := findElement(d.root, fmt.Sprintf("h%d", level))
	if h == nil {
		return ""
	}
	return collapseWhitespace(getTextContent(h))
}

func (d *domDocument) Links() []Link {
	var links []Link
	for _, a := range findAllElements(d.root, "a") {
		href, ok := getAttr(a, "href")
		if !ok {
			continue
		}
		links = append(links, Link{
			Href: strings.TrimSpace(href),
			Text: collapseWhitespace(getTextContent(a)),
		})
	}
	return links
}

func (d *domDocument) Images() []Image {
	var images []Image
	for _, img := range findAllElements(d.root, "img") {
		src, _ := getAttr(img, "src")
		alt, hasAlt := getAttr(img, "alt")
		images = append(images, Image{
			Src:    strings.TrimSpace(src),
			Alt:    strings.TrimSpace(alt),
			HasAlt: hasAlt && strings.TrimSpace(alt) != "",
		})
	}
	return images
}

func (d *domDocument) HasElement(tag string) bool {
	return findElement(d.root, tag) != nil
}

func (d *domDocument) ElementText(tag string) string {
	elem := findElement(d.root, tag)
	if elem == nil {
		return ""
	}
	return collapseWhitespace(getTextContent(elem))
}

func (d *domDocument) CanonicalHref() (string, bool) {
	for _, link := range findAllElements(d.root, "link") {
		rel, _ := getAttr(link, "rel")
		if strings.ToLower(rel) == "canonical" {
			href, _ := getAttr(link, "href")
			return strings.TrimSpace(href), true
		}
	}
	return "", false
}

func (d *domDocument) ViewportContent() (string, bool) {
	for _, meta := range findAllElements(d.root, "meta") {
		name, _ := getAttr(meta, "name")
		if strings.ToLower(name) == "viewport" {
			content, _ := getAttr(meta, "content")
			return strings.TrimSpace(content), true
		}
	}
	return "", false
}

func (d *domDocument) VisibleText(stripChrome bool) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				if sb.Len() > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(text)
			}
		}
		if n.Type == html.ElementNode {
			lowerTag := strings.ToLower(n.Data)
			if isAlwaysStripped(lowerTag) {
				return
			}
			if stripChrome && isChrome(lowerTag) {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(d.root)
	return sb.String()
}

func (d *domDocument) WordCount(stripChrome bool) int {
	return len(strings.Fields(d.VisibleText(stripChrome)))
}
