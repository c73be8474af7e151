package analyzer

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/sitegauge/engine/internal/common/urlutil"
)

// Shared check constructors. Each battery composes its table from these,
// passing its own weight; thresholds and messages stay identical across
// batteries unless a battery overrides the constructor entirely.

func titleCheck(weight int) Check {
	return Check{
		Name:   "Title Tag",
		Weight: weight,
		Eval: func(p *Page) Rating {
			title := p.Doc.Title()
			length := utf8.RuneCountInString(title)
			return evalLadder(length, []Rung{
				{eqRung(0), fail(0, "Page has no <title> tag",
					"Add a descriptive title between 30 and 70 characters")},
				{ltRung(30), warn(0.5, fmt.Sprintf("Title is only %d characters", length),
					"Expand the title to at least 30 characters")},
				{gtRung(70), warn(0.65, fmt.Sprintf("Title is %d characters and may be truncated in search results", length),
					"Shorten the title to 70 characters or fewer")},
			}, pass(fmt.Sprintf("Title length is good (%d characters)", length)))
		},
	}
}

func metaDescriptionCheck(weight int) Check {
	return Check{
		Name:   "Meta Description",
		Weight: weight,
		Eval: func(p *Page) Rating {
			desc := p.Doc.MetaContent("description")
			length := utf8.RuneCountInString(desc)
			return evalLadder(length, []Rung{
				{eqRung(0), fail(0, "Page has no meta description",
					"Add a meta description between 100 and 170 characters")},
				{ltRung(100), warn(0.5, fmt.Sprintf("Meta description is only %d characters", length),
					"Expand the description to at least 100 characters")},
				{gtRung(170), warn(0.65, fmt.Sprintf("Meta description is %d characters and may be truncated", length),
					"Trim the description to 170 characters or fewer")},
			}, pass(fmt.Sprintf("Meta description length is good (%d characters)", length)))
		},
	}
}

func h1Check(weight int) Check {
	return Check{
		Name:   "H1 Heading",
		Weight: weight,
		Eval: func(p *Page) Rating {
			count := p.Doc.HeadingCount(1)
			if count == 0 {
				return fail(0, "Page has no <h1> heading",
					"Add exactly one <h1> describing the page topic")
			}
			if count > 1 {
				return warn(0.6, fmt.Sprintf("Page has %d <h1> headings", count),
					"Keep a single <h1> and demote the rest to <h2>")
			}
			text := p.Doc.FirstHeadingText(1)
			if utf8.RuneCountInString(text) < 10 {
				return warn(0.6, "The <h1> heading is very short",
					"Use a descriptive <h1> of at least 10 characters")
			}
			return pass("Page has one descriptive <h1> heading")
		},
	}
}

func headingHierarchyCheck(weight int) Check {
	return Check{
		Name:   "Heading Hierarchy",
		Weight: weight,
		Eval: func(p *Page) Rating {
			h1 := p.Doc.HeadingCount(1)
			h2 := p.Doc.HeadingCount(2)
			h3 := p.Doc.HeadingCount(3)
			if h1 == 0 {
				return fail(0, "No <h1> found, so the heading hierarchy has no root",
					"Start the hierarchy with a single <h1>")
			}
			if h2 == 0 {
				return warn(0.4, "Content has no <h2> subheadings",
					"Break the content into sections with <h2> headings")
			}
			if h2 >= 2 && (h3 >= 1 || h2 >= 4) {
				return pass(fmt.Sprintf("Well-structured headings (%d h2, %d h3)", h2, h3))
			}
			return warn(0.7, "Heading structure is shallow",
				"Add more <h2> sections or <h3> subsections")
		},
	}
}

func imageAltCheck(weight int) Check {
	return Check{
		Name:   "Image Alt Text",
		Weight: weight,
		Eval: func(p *Page) Rating {
			images := p.Doc.Images()
			total := len(images)
			if total == 0 {
				return warn(0.7, "Page has no images",
					"Consider adding relevant images with alt text")
			}
			withAlt := 0
			for _, img := range images {
				if img.HasAlt {
					withAlt++
				}
			}
			percentage := int(math.Round(100 * float64(withAlt) / float64(total)))
			return evalLadder(percentage, []Rung{
				{ltRung(50), fail(0.3, fmt.Sprintf("Only %d%% of %d images have alt text", percentage, total),
					"Add alt attributes to every meaningful image")},
				{ltRung(90), warn(0.7, fmt.Sprintf("%d%% of %d images have alt text", percentage, total),
					"Cover the remaining images with alt text")},
			}, pass(fmt.Sprintf("%d%% of images have alt text", percentage)))
		},
	}
}

func internalLinksCheck(weight int) Check {
	return Check{
		Name:   "Internal Links",
		Weight: weight,
		Eval: func(p *Page) Rating {
			internal, _ := p.linkCounts()
			return evalLadder(internal, []Rung{
				{ltRung(3), warn(0.3, fmt.Sprintf("Very few internal links (%d)", internal),
					"Link related pages together to help navigation and crawling")},
				{ltRung(10), warn(0.7, fmt.Sprintf("Some internal links (%d), could be more", internal),
					"Aim for at least 10 contextual internal links")},
			}, pass(fmt.Sprintf("Good internal linking (%d links)", internal)))
		},
	}
}

func externalLinksCheck(weight int) Check {
	return Check{
		Name:   "External Links",
		Weight: weight,
		Eval: func(p *Page) Rating {
			_, external := p.linkCounts()
			if external == 0 {
				return warn(0.5, "Page links to no external sources",
					"Cite a few reputable external sources")
			}
			return pass(fmt.Sprintf("Page references %d external sources", external))
		},
	}
}

func httpsCheck(weight int) Check {
	return Check{
		Name:   "HTTPS",
		Weight: weight,
		Eval: func(p *Page) Rating {
			if urlutil.IsHTTPS(p.URL) {
				return pass("Page is served over HTTPS")
			}
			return fail(0, "Page is not served over HTTPS",
				"Install a TLS certificate and redirect HTTP traffic")
		},
	}
}

func viewportCheck(weight int) Check {
	return Check{
		Name:   "Mobile Viewport",
		Weight: weight,
		Eval: func(p *Page) Rating {
			content, present := p.Doc.ViewportContent()
			if !present {
				return fail(0, "Page has no viewport meta tag",
					`Add <meta name="viewport" content="width=device-width, initial-scale=1">`)
			}
			if strings.Contains(content, "width=device-width") {
				return pass("Viewport is configured for mobile devices")
			}
			return warn(0.6, "Viewport meta tag exists but does not use width=device-width",
				"Set the viewport width to device-width")
		},
	}
}

func canonicalCheck(weight int) Check {
	return Check{
		Name:   "Canonical Link",
		Weight: weight,
		Eval: func(p *Page) Rating {
			href, present := p.Doc.CanonicalHref()
			if !present || href == "" {
				return warn(0.5, "Page declares no canonical URL",
					`Add <link rel="canonical"> pointing to the preferred URL`)
			}
			return pass("Canonical URL is declared")
		},
	}
}

// contentVolumeCheck counts visible words after stripping script, style
// and noscript subtrees; stripChrome additionally removes nav, header and
// footer (the static-site variant).
func contentVolumeCheck(weight int, stripChrome bool) Check {
	return Check{
		Name:   "Content Volume",
		Weight: weight,
		Eval: func(p *Page) Rating {
			words := p.Doc.WordCount(stripChrome)
			return evalLadder(words, []Rung{
				{ltRung(300), fail(0.25, fmt.Sprintf("Very thin content (%d words)", words),
					"Publish at least 300 words of substantial content")},
				{ltRung(500), warn(0.5, fmt.Sprintf("Light content (%d words)", words),
					"Expand the page toward 500+ words")},
				{ltRung(800), warn(0.75, fmt.Sprintf("Moderate content (%d words)", words),
					"In-depth pages of 800+ words tend to perform better")},
			}, pass(fmt.Sprintf("Substantial content (%d words)", words)))
		},
	}
}

// essentialPagesCheck matches link hrefs and texts against keyword
// categories; the count of satisfied categories drives the ladder.
func essentialPagesCheck(weight int, categories []pageCategory, rungs func(matched []string, total int) Rating) Check {
	return Check{
		Name:   "Essential Pages",
		Weight: weight,
		Eval: func(p *Page) Rating {
			matched := p.matchedPageCategories(categories)
			return rungs(matched, len(categories))
		},
	}
}

func navigationCheck(weight int) Check {
	return Check{
		Name:   "Navigation Structure",
		Weight: weight,
		Eval: func(p *Page) Rating {
			if p.Doc.HasElement("nav") {
				return pass("Page has a <nav> element")
			}
			links := len(p.Doc.Links())
			if links >= 3 {
				return pass(fmt.Sprintf("Page has %d links forming a navigation structure", links))
			}
			if links >= 1 {
				return warn(0.5, "Page has only minimal navigation links",
					"Add a site navigation menu")
			}
			return fail(0, "Page has no navigation at all",
				"Add a <nav> element linking the main site sections")
		},
	}
}

func footerCheck(weight int) Check {
	return Check{
		Name:   "Footer",
		Weight: weight,
		Eval: func(p *Page) Rating {
			if p.Doc.HasElement("footer") && p.Doc.ElementText("footer") != "" {
				return pass("Page has a footer with content")
			}
			return warn(0.4, "Page has no meaningful footer",
				"Add a footer with site links and legal information")
		},
	}
}

func customDomainCheck(weight int) Check {
	return Check{
		Name:   "Custom Domain",
		Weight: weight,
		Eval: func(p *Page) Rating {
			if platform := urlutil.PlatformForHost(p.Host); platform != "" {
				return fail(0.2, fmt.Sprintf("Site is hosted on a %s subdomain", platform),
					"Connect a custom domain for a professional appearance")
			}
			if urlutil.LooksLikeCustomDomain(p.Host) {
				return pass("Site uses a custom domain")
			}
			return warn(0.4, "Could not determine the site's domain setup",
				"Serve the site from a registered custom domain")
		},
	}
}
