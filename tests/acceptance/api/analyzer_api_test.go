package api_test

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/valyala/fasthttp"
)

const richPage = `<html><head>
<title>Practical Sourdough Baking For Beginners And Weekend Bakers</title>
<meta name="description" content="A practical walkthrough of sourdough baking, from starter maintenance to shaping and scoring, with timings that fit around a working week.">
<meta name="viewport" content="width=device-width, initial-scale=1">
<link rel="canonical" href="https://example.com/sourdough">
</head><body>
<nav><a href="/">Home</a><a href="/about">About</a><a href="/contact">Contact</a>
<a href="/privacy">Privacy Policy</a><a href="/terms">Terms of Service</a>
<a href="/recipes">Recipes</a><a href="/starter">Starter Guide</a>
<a href="/tools">Tools</a><a href="/faq">FAQ</a><a href="/blog">Blog</a></nav>
<h1>Sourdough Baking That Fits Your Week</h1>
<h2>Keeping A Starter</h2>
<p>Keeping a starter alive takes far less attention than most guides suggest. Feed it once a day at room temperature, or park it in the fridge and feed it weekly. A starter that smells like acetone is hungry, not dead.</p>
<h2>Mixing And Folding</h2>
<p>Mix flour, water, salt and ripe starter until no dry flour remains, then rest. Three or four sets of folds spread over two hours replace kneading entirely. The dough should feel noticeably smoother after each set.</p>
<h3>Timing Around Work</h3>
<p>Cold retardation is the weekday baker's best tool. Shape in the evening, proof overnight in the fridge, and bake before breakfast. The flavor improves and the schedule stops mattering.</p>
<h2>Scoring And Baking</h2>
<p>A hot Dutch oven covers for most home ovens' poor steam. Load at 250 degrees, drop to 230 after twenty minutes, and trust the color over the clock. Darker crusts carry more flavor than most people expect.</p>
<img src="/img/starter.jpg" alt="Ripe sourdough starter in a jar">
<img src="/img/crumb.jpg" alt="Open crumb of a finished loaf">
<p>More depth on each stage: <a href="https://www.kingarthurbaking.com/">King Arthur Baking</a> and <a href="https://www.theperfectloaf.com/">The Perfect Loaf</a>.</p>
<footer><a href="/privacy">Privacy Policy</a><a href="/terms">Terms</a><a href="/about">About Us</a><a href="/contact">Contact</a></footer>
</body></html>`

const emptyPage = `<html><head></head><body></body></html>`

var _ = Describe("Analyzer Service API", func() {
	var (
		service    *exec.Cmd
		configPath string
	)

	BeforeEach(func() {
		configPath = prepareTestConfig()
		service = startService(configPath)
	})

	AfterEach(func() {
		stopService(service)
		os.RemoveAll(filepath.Dir(configPath))
	})

	Describe("SEO analysis", func() {
		It("scores a well-formed page as Excellent", func() {
			status, body, _ := doPOST("/api/v1/analyze/seo", map[string]string{
				"url":  "https://example.com/sourdough",
				"html": richPage,
			})

			Expect(status).To(Equal(fasthttp.StatusOK))

			out := decodeOutcome(body)
			Expect(out.Score).To(BeNumerically(">=", 80))
			Expect(out.Tier).To(Equal("Excellent"))
			Expect(out.Checks).ToNot(BeEmpty())

			for _, check := range out.Checks {
				Expect(check.Score).To(BeNumerically(">=", 0))
				Expect(check.Score).To(BeNumerically("<=", check.MaxScore))
			}
		})

		It("scores an empty page over http as Poor", func() {
			status, body, _ := doPOST("/api/v1/analyze/seo", map[string]string{
				"url":  "http://example.com/",
				"html": emptyPage,
			})

			Expect(status).To(Equal(fasthttp.StatusOK))

			out := decodeOutcome(body)
			Expect(out.Score).To(BeNumerically("<", 60))
			Expect(out.Tier).To(Equal("Poor"))
		})

		It("returns identical results for repeated identical requests", func() {
			_, first, _ := doPOST("/api/v1/analyze/seo", map[string]string{
				"url": "https://example.com/sourdough", "html": richPage,
			})
			_, second, _ := doPOST("/api/v1/analyze/seo", map[string]string{
				"url": "https://example.com/sourdough", "html": richPage,
			})

			Expect(decodeOutcome(first)).To(Equal(decodeOutcome(second)))
		})
	})

	Describe("Ad readiness analysis", func() {
		It("rewards pages that carry the essential legal pages", func() {
			status, body, _ := doPOST("/api/v1/analyze/ads", map[string]string{
				"url":  "https://example.com/sourdough",
				"html": richPage,
			})

			Expect(status).To(Equal(fasthttp.StatusOK))

			out := decodeOutcome(body)
			found := false
			for _, check := range out.Checks {
				if check.Name == "Essential Pages" {
					found = true
					Expect(check.Verdict).To(Equal("pass"))
				}
			}
			Expect(found).To(BeTrue(), "Essential Pages check missing from response")
		})
	})

	Describe("Static site readiness analysis", func() {
		It("flags hosting-platform subdomains", func() {
			status, body, _ := doPOST("/api/v1/analyze/static-site", map[string]string{
				"url":  "https://myproject.netlify.app/",
				"html": richPage,
			})

			Expect(status).To(Equal(fasthttp.StatusOK))

			out := decodeOutcome(body)
			for _, check := range out.Checks {
				if check.Name == "Custom Domain" {
					Expect(check.Verdict).To(Equal("fail"))
					Expect(check.Message).To(ContainSubstring("Netlify"))
				}
			}
		})
	})

	Describe("Low-value content analysis", func() {
		It("accepts plain text and reports a tier", func() {
			text := strings.Repeat("Some sentences carry information. Others merely fill space with words. ", 30)
			status, body, _ := doPOST("/api/v1/analyze/low-value", map[string]string{
				"text": text,
			})

			Expect(status).To(Equal(fasthttp.StatusOK))

			out := decodeOutcome(body)
			Expect(out.Tier).ToNot(BeEmpty())
			Expect(out.Checks).ToNot(BeEmpty())
		})

		It("reduces HTML input to its visible text", func() {
			status, body, _ := doPOST("/api/v1/analyze/low-value", map[string]string{
				"html": richPage,
			})

			Expect(status).To(Equal(fasthttp.StatusOK))
			Expect(decodeOutcome(body).Checks).ToNot(BeEmpty())
		})
	})

	Describe("Humanize", func() {
		It("rewrites text toward the casual tone", func() {
			status, body, _ := doPOST("/api/v1/humanize", map[string]string{
				"text": "We will utilize the new workflow in order to accomplish our objectives.",
				"tone": "casual",
			})

			Expect(status).To(Equal(fasthttp.StatusOK))

			var env envelope
			Expect(json.Unmarshal(body, &env)).To(Succeed())
			Expect(env.Success).To(BeTrue())

			var result struct {
				Text          string `json:"text"`
				WordsBefore   int    `json:"words_before"`
				WordsAfter    int    `json:"words_after"`
				ChangePercent int    `json:"change_percent"`
			}
			Expect(json.Unmarshal(env.Data, &result)).To(Succeed())
			Expect(result.Text).ToNot(ContainSubstring("utilize"))
			Expect(result.WordsBefore).To(BeNumerically(">", 0))
		})

		It("rejects unknown tones", func() {
			status, _, _ := doPOST("/api/v1/humanize", map[string]string{
				"text": "Anything.",
				"tone": "sarcastic",
			})

			Expect(status).To(Equal(fasthttp.StatusBadRequest))
		})
	})

	Describe("Validation", func() {
		It("rejects analysis requests without url or html", func() {
			for _, path := range []string{
				"/api/v1/analyze/seo",
				"/api/v1/analyze/ads",
				"/api/v1/analyze/static-site",
			} {
				status, body, _ := doPOST(path, map[string]string{})
				Expect(status).To(Equal(fasthttp.StatusBadRequest), path)

				var env envelope
				Expect(json.Unmarshal(body, &env)).To(Succeed())
				Expect(env.Success).To(BeFalse())
				Expect(env.Message).ToNot(BeEmpty())
			}
		})

		It("returns 502 when the page cannot be retrieved", func() {
			status, _, _ := doPOST("/api/v1/analyze/seo", map[string]string{
				"url": "http://localhost:1/unreachable",
			})

			Expect(status).To(Equal(fasthttp.StatusBadGateway))
		})
	})

	Describe("Request IDs", func() {
		It("echoes a sanitized caller-supplied request ID", func() {
			customID := "trace " + uuid.New().String()[:8]

			req := fasthttp.AcquireRequest()
			defer fasthttp.ReleaseRequest(req)
			resp := fasthttp.AcquireResponse()
			defer fasthttp.ReleaseResponse(resp)

			req.SetRequestURI(baseURL + "/health")
			req.Header.SetMethod("GET")
			req.Header.SetConnectionClose()
			req.Header.Set("X-Request-ID", customID)

			client := &fasthttp.Client{MaxIdleConnDuration: 0}
			Expect(client.Do(req, resp)).To(Succeed())

			gotID := string(resp.Header.Peek("X-Request-ID"))
			Expect(gotID).To(MatchRegexp(`^[a-f0-9]{5}-trace-[a-f0-9]{8}$`))
		})

		It("assigns a request ID when the caller sends none", func() {
			_, _, gotID := doPOST("/api/v1/analyze/seo", map[string]string{
				"url": "https://example.com/", "html": emptyPage,
			})
			Expect(gotID).ToNot(BeEmpty())
		})
	})

	Describe("Metrics", func() {
		It("exposes analysis counters on the metrics listener", func() {
			_, _, _ = doPOST("/api/v1/analyze/seo", map[string]string{
				"url": "https://example.com/", "html": richPage,
			})

			req := fasthttp.AcquireRequest()
			defer fasthttp.ReleaseRequest(req)
			resp := fasthttp.AcquireResponse()
			defer fasthttp.ReleaseResponse(resp)

			req.SetRequestURI(metricsURL + "/metrics")
			req.Header.SetMethod("GET")
			req.Header.SetConnectionClose()

			client := &fasthttp.Client{MaxIdleConnDuration: 0}
			Expect(client.Do(req, resp)).To(Succeed())
			Expect(resp.StatusCode()).To(Equal(fasthttp.StatusOK))
			Expect(string(resp.Body())).To(ContainSubstring("sitegauge_analyzer_analyses_total"))
		})
	})
})
