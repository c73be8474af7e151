package analyzer

import (
	"strings"

	"github.com/sitegauge/engine/internal/common/htmlprocessor"
	"github.com/sitegauge/engine/internal/common/urlutil"
)

// Page bundles one parsed document with its originating URL. It is built
// once per analysis run and treated as an immutable snapshot; checks never
// mutate it.
type Page struct {
	Doc  htmlprocessor.Document
	URL  string
	Host string
}

// NewPage wraps a parsed document and its source URL. Host extraction is
// best-effort: on an unparseable URL the host stays empty and
// domain-dependent checks degrade to their "unknown" rungs. The host is
// lowercased so link classification matches hrefs case-insensitively.
func NewPage(doc htmlprocessor.Document, pageURL string) *Page {
	return &Page{
		Doc:  doc,
		URL:  pageURL,
		Host: strings.ToLower(urlutil.ExtractHost(pageURL)),
	}
}

// isInternalLink classifies an href as internal to the page. Relative
// hrefs (leading "/", "#", "./"), non-http schemes, and absolute URLs
// containing the page's own hostname all count as internal.
func (p *Page) isInternalLink(href string) bool {
	href = strings.TrimSpace(href)
	if href == "" {
		return false
	}
	if strings.HasPrefix(href, "/") || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "./") {
		return true
	}
	lower := strings.ToLower(href)
	if !strings.HasPrefix(lower, "http") {
		return true
	}
	hostname := urlutil.ExtractHostname(p.Host)
	return hostname != "" && strings.Contains(lower, hostname)
}

// isExternalLink classifies an href as pointing off-site.
func (p *Page) isExternalLink(href string) bool {
	href = strings.TrimSpace(strings.ToLower(href))
	if !strings.HasPrefix(href, "http") {
		return false
	}
	hostname := urlutil.ExtractHostname(p.Host)
	if hostname == "" {
		return true
	}
	return !strings.Contains(href, hostname)
}

// linkCounts tallies internal and external links in one pass.
func (p *Page) linkCounts() (internal, external int) {
	for _, link := range p.Doc.Links() {
		switch {
		case p.isInternalLink(link.Href):
			internal++
		case p.isExternalLink(link.Href):
			external++
		}
	}
	return internal, external
}

// matchedPageCategories reports which of the given keyword categories are
// satisfied by at least one link whose href or visible text contains one
// of the category's keywords (case-insensitive).
func (p *Page) matchedPageCategories(categories []pageCategory) []string {
	links := p.Doc.Links()
	var matched []string
	for _, cat := range categories {
		for _, link := range links {
			if cat.matches(link) {
				matched = append(matched, cat.Name)
				break
			}
		}
	}
	return matched
}

// pageCategory is one essential-page requirement (privacy policy, contact
// page, ...), satisfied by keyword presence in link href or text.
type pageCategory struct {
	Name     string
	Keywords []string
}

func (c pageCategory) matches(link htmlprocessor.Link) bool {
	href := strings.ToLower(link.Href)
	text := strings.ToLower(link.Text)
	for _, kw := range c.Keywords {
		if strings.Contains(href, kw) || strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
