package analyzer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sitegauge/engine/pkg/types"
)

func findCheck(t *testing.T, outcome types.AnalysisOutcome, name string) types.CheckResult {
	t.Helper()
	for _, c := range outcome.Checks {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("check %q not found in outcome", name)
	return types.CheckResult{}
}

func TestTitleLadderBoundaries(t *testing.T) {
	tests := []struct {
		name        string
		titleLength int
		verdict     types.Verdict
		score       int // out of weight 15
	}{
		{name: "missing title", titleLength: 0, verdict: types.VerdictFail, score: 0},
		{name: "short title", titleLength: 29, verdict: types.VerdictWarning, score: 8},
		{name: "exactly 30 is not short", titleLength: 30, verdict: types.VerdictPass, score: 15},
		{name: "mid-range title", titleLength: 55, verdict: types.VerdictPass, score: 15},
		{name: "exactly 70 is not long", titleLength: 70, verdict: types.VerdictPass, score: 15},
		{name: "long title", titleLength: 71, verdict: types.VerdictWarning, score: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "<html><head><title>" + strings.Repeat("x", tt.titleLength) + "</title></head></html>"
			outcome := AnalyzeSEO(parseDoc(t, src), "https://example.com")
			title := findCheck(t, outcome, "Title Tag")
			assert.Equal(t, tt.verdict, title.Verdict)
			assert.Equal(t, tt.score, title.Score)
			assert.Equal(t, 15, title.MaxScore)
		})
	}
}

func TestMetaDescriptionLadder(t *testing.T) {
	tests := []struct {
		name    string
		length  int
		verdict types.Verdict
	}{
		{name: "missing", length: 0, verdict: types.VerdictFail},
		{name: "short", length: 99, verdict: types.VerdictWarning},
		{name: "exactly 100 passes", length: 100, verdict: types.VerdictPass},
		{name: "exactly 170 passes", length: 170, verdict: types.VerdictPass},
		{name: "long", length: 171, verdict: types.VerdictWarning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := `<html><head><meta name="description" content="` + strings.Repeat("d", tt.length) + `"></head></html>`
			outcome := AnalyzeSEO(parseDoc(t, src), "https://example.com")
			assert.Equal(t, tt.verdict, findCheck(t, outcome, "Meta Description").Verdict)
		})
	}
}

func TestH1Check(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		verdict types.Verdict
	}{
		{name: "no h1", body: "<p>text</p>", verdict: types.VerdictFail},
		{name: "multiple h1s", body: "<h1>One heading here</h1><h1>Another heading</h1>", verdict: types.VerdictWarning},
		{name: "too short", body: "<h1>Hi</h1>", verdict: types.VerdictWarning},
		{name: "good h1", body: "<h1>A descriptive heading</h1>", verdict: types.VerdictPass},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := AnalyzeSEO(parseDoc(t, "<html><body>"+tt.body+"</body></html>"), "https://example.com")
			assert.Equal(t, tt.verdict, findCheck(t, outcome, "H1 Heading").Verdict)
		})
	}
}

func TestHeadingHierarchy(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		verdict types.Verdict
	}{
		{name: "no h1", body: "<h2>a</h2>", verdict: types.VerdictFail},
		{name: "no h2", body: "<h1>Main heading here</h1>", verdict: types.VerdictWarning},
		{name: "two h2 with h3", body: "<h1>Main heading here</h1><h2>A</h2><h2>B</h2><h3>C</h3>", verdict: types.VerdictPass},
		{name: "four h2 no h3", body: "<h1>Main heading here</h1><h2>A</h2><h2>B</h2><h2>C</h2><h2>D</h2>", verdict: types.VerdictPass},
		{name: "shallow", body: "<h1>Main heading here</h1><h2>A</h2>", verdict: types.VerdictWarning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := AnalyzeSEO(parseDoc(t, "<html><body>"+tt.body+"</body></html>"), "https://example.com")
			assert.Equal(t, tt.verdict, findCheck(t, outcome, "Heading Hierarchy").Verdict)
		})
	}
}

func TestImageAltCoverage(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		verdict types.Verdict
	}{
		{name: "no images baseline warning", body: "", verdict: types.VerdictWarning},
		{name: "low coverage", body: `<img src="a.png"><img src="b.png"><img src="c.png" alt="c">`, verdict: types.VerdictFail},
		{name: "partial coverage", body: `<img src="a.png" alt="a"><img src="b.png" alt="b"><img src="c.png"><img src="d.png" alt="d">`, verdict: types.VerdictWarning},
		{name: "full coverage", body: `<img src="a.png" alt="a"><img src="b.png" alt="b">`, verdict: types.VerdictPass},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := AnalyzeSEO(parseDoc(t, "<html><body>"+tt.body+"</body></html>"), "https://example.com")
			assert.Equal(t, tt.verdict, findCheck(t, outcome, "Image Alt Text").Verdict)
		})
	}
}

func TestLinkClassification(t *testing.T) {
	page := NewPage(parseDoc(t, "<html></html>"), "https://example.com/page")

	internal := []string{"/about", "#section", "./relative", "contact.html", "https://example.com/x", "https://blog.example.com/y"}
	for _, href := range internal {
		assert.True(t, page.isInternalLink(href), "expected %q internal", href)
	}

	external := []string{"https://other.com", "http://another.org/p"}
	for _, href := range external {
		assert.False(t, page.isInternalLink(href), "expected %q not internal", href)
		assert.True(t, page.isExternalLink(href), "expected %q external", href)
	}
}

func TestLinkClassificationUppercaseHost(t *testing.T) {
	// Hrefs are lowercased before matching, so the page host must be
	// lowercased too or absolute self-links would count as external.
	page := NewPage(parseDoc(t, "<html></html>"), "https://EXAMPLE.com/page")
	assert.True(t, page.isInternalLink("https://example.com/about"))
	assert.False(t, page.isExternalLink("https://example.com/about"))
	assert.True(t, page.isExternalLink("https://other.com"))
}

func TestLinkClassificationUnparseableURL(t *testing.T) {
	// Hostname extraction is best-effort; with no host every http link
	// counts as external and relative links stay internal.
	page := NewPage(parseDoc(t, "<html></html>"), "::bad url::")
	assert.True(t, page.isInternalLink("/about"))
	assert.True(t, page.isExternalLink("https://anywhere.com"))
}

func TestHTTPSCheck(t *testing.T) {
	outcome := AnalyzeSEO(parseDoc(t, "<html></html>"), "http://example.com")
	assert.Equal(t, types.VerdictFail, findCheck(t, outcome, "HTTPS").Verdict)

	outcome = AnalyzeSEO(parseDoc(t, "<html></html>"), "https://example.com")
	assert.Equal(t, types.VerdictPass, findCheck(t, outcome, "HTTPS").Verdict)
}

func TestViewportLadder(t *testing.T) {
	outcome := AnalyzeSEO(parseDoc(t, "<html><head></head></html>"), "https://example.com")
	assert.Equal(t, types.VerdictFail, findCheck(t, outcome, "Mobile Viewport").Verdict)

	outcome = AnalyzeSEO(parseDoc(t, `<html><head><meta name="viewport" content="width=1024"></head></html>`), "https://example.com")
	assert.Equal(t, types.VerdictWarning, findCheck(t, outcome, "Mobile Viewport").Verdict)

	outcome = AnalyzeSEO(parseDoc(t, `<html><head><meta name="viewport" content="width=device-width, initial-scale=1"></head></html>`), "https://example.com")
	assert.Equal(t, types.VerdictPass, findCheck(t, outcome, "Mobile Viewport").Verdict)
}

func TestEmptyPageOverHTTPScoresLow(t *testing.T) {
	outcome := AnalyzeSEO(parseDoc(t, "<html><head></head><body></body></html>"), "http://example.com")

	assert.Equal(t, 0, findCheck(t, outcome, "Title Tag").Score)
	assert.Equal(t, 0, findCheck(t, outcome, "Meta Description").Score)
	assert.Equal(t, 0, findCheck(t, outcome, "H1 Heading").Score)
	assert.Equal(t, 0, findCheck(t, outcome, "HTTPS").Score)

	// Absent images and links earn a baseline, not zero.
	assert.Greater(t, findCheck(t, outcome, "Image Alt Text").Score, 0)
	assert.Greater(t, findCheck(t, outcome, "Internal Links").Score, 0)

	assert.Less(t, outcome.Score, 20)
	assert.Equal(t, "Poor", outcome.Tier)
}

func TestWellFormedPageScoresExcellent(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><head>")
	b.WriteString("<title>" + strings.Repeat("t", 55) + "</title>")
	b.WriteString(`<meta name="description" content="` + strings.Repeat("d", 155) + `">`)
	b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
	b.WriteString("</head><body>")
	b.WriteString("<h1>A well formed main heading</h1>")
	for i := 0; i < 12; i++ {
		b.WriteString(fmt.Sprintf(`<a href="/page-%d">Page %d</a>`, i, i))
	}
	b.WriteString(`<a href="https://refa.org">Ref A</a>`)
	b.WriteString(`<a href="https://refb.org">Ref B</a>`)
	b.WriteString(`<a href="https://refc.org">Ref C</a>`)
	b.WriteString("<p>" + strings.Repeat("word ", 1000) + "</p>")
	b.WriteString("</body></html>")

	outcome := AnalyzeSEO(parseDoc(t, b.String()), "https://example.com/article")

	for _, name := range []string{"Title Tag", "Meta Description", "H1 Heading", "Internal Links", "External Links", "HTTPS", "Mobile Viewport"} {
		check := findCheck(t, outcome, name)
		assert.Equal(t, check.MaxScore, check.Score, "check %s should earn full weight", name)
	}

	assert.GreaterOrEqual(t, outcome.Score, 80)
	assert.Equal(t, "Excellent", outcome.Tier)
}

func TestAdReadinessEssentialPages(t *testing.T) {
	allPages := `<html><body><nav>
		<a href="/privacy">Privacy Policy</a>
		<a href="/terms">Terms of Service</a>
		<a href="/about">About Us</a>
		<a href="/contact">Contact</a>
	</nav></body></html>`

	outcome := AnalyzeAdReadiness(parseDoc(t, allPages), "https://example.com")
	essential := findCheck(t, outcome, "Essential Pages")
	assert.Equal(t, types.VerdictPass, essential.Verdict)
	assert.Equal(t, 20, essential.Score)

	outcome = AnalyzeAdReadiness(parseDoc(t, "<html><body></body></html>"), "https://example.com")
	essential = findCheck(t, outcome, "Essential Pages")
	assert.Equal(t, types.VerdictFail, essential.Verdict)
	assert.Equal(t, 0, essential.Score)

	onlyPrivacy := `<html><body><a href="/privacy-policy">legal</a></body></html>`
	outcome = AnalyzeAdReadiness(parseDoc(t, onlyPrivacy), "https://example.com")
	essential = findCheck(t, outcome, "Essential Pages")
	assert.Equal(t, types.VerdictWarning, essential.Verdict)
	assert.Equal(t, 7, essential.Score)
	assert.Contains(t, essential.Message, "Privacy Policy")
}

func TestContentVolumeStripsChrome(t *testing.T) {
	src := `<html><body>
		<nav>` + strings.Repeat("navword ", 400) + `</nav>
		<p>` + strings.Repeat("body ", 100) + `</p>
	</body></html>`

	// Ad battery keeps nav text: 500 words total.
	adOutcome := AnalyzeAdReadiness(parseDoc(t, src), "https://example.com")
	assert.Contains(t, findCheck(t, adOutcome, "Content Volume").Message, "500")

	// Static-site battery strips nav: only 100 words remain.
	staticOutcome := AnalyzeStaticSite(parseDoc(t, src), "https://example.com")
	assert.Contains(t, findCheck(t, staticOutcome, "Content Volume").Message, "100")
}

func TestStaticSiteCustomDomain(t *testing.T) {
	outcome := AnalyzeStaticSite(parseDoc(t, "<html></html>"), "https://myproject.netlify.app")
	domain := findCheck(t, outcome, "Custom Domain")
	assert.Equal(t, types.VerdictFail, domain.Verdict)
	assert.Equal(t, 3, domain.Score)
	assert.Contains(t, domain.Message, "Netlify")

	outcome = AnalyzeStaticSite(parseDoc(t, "<html></html>"), "https://example.com")
	domain = findCheck(t, outcome, "Custom Domain")
	assert.Equal(t, types.VerdictPass, domain.Verdict)
	assert.Equal(t, 15, domain.Score)
}

func TestStaticSiteFooter(t *testing.T) {
	outcome := AnalyzeStaticSite(parseDoc(t, "<html><body><footer>All rights reserved</footer></body></html>"), "https://example.com")
	assert.Equal(t, types.VerdictPass, findCheck(t, outcome, "Footer").Verdict)

	outcome = AnalyzeStaticSite(parseDoc(t, "<html><body></body></html>"), "https://example.com")
	assert.Equal(t, types.VerdictWarning, findCheck(t, outcome, "Footer").Verdict)
}

func TestNavigationCheck(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		verdict types.Verdict
	}{
		{name: "nav element", body: "<nav><a href='/'>Home</a></nav>", verdict: types.VerdictPass},
		{name: "three links no nav", body: `<a href="/a">a</a><a href="/b">b</a><a href="/c">c</a>`, verdict: types.VerdictPass},
		{name: "one link", body: `<a href="/a">a</a>`, verdict: types.VerdictWarning},
		{name: "no links", body: "<p>text only</p>", verdict: types.VerdictFail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := AnalyzeAdReadiness(parseDoc(t, "<html><body>"+tt.body+"</body></html>"), "https://example.com")
			assert.Equal(t, tt.verdict, findCheck(t, outcome, "Navigation Structure").Verdict)
		})
	}
}
