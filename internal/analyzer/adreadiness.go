package analyzer

import (
	"fmt"
	"strings"

	"github.com/sitegauge/engine/internal/common/htmlprocessor"
	"github.com/sitegauge/engine/pkg/types"
)

// adEssentialCategories are the pages ad networks expect before approving
// a site. Matching is case-insensitive over link href and text.
var adEssentialCategories = []pageCategory{
	{Name: "Privacy Policy", Keywords: []string{"privacy"}},
	{Name: "Terms", Keywords: []string{"terms", "tos", "conditions"}},
	{Name: "About", Keywords: []string{"about"}},
	{Name: "Contact", Keywords: []string{"contact"}},
}

func adEssentialRating(matched []string, total int) Rating {
	missing := total - len(matched)
	switch len(matched) {
	case 0:
		return fail(0, "None of the essential pages (privacy, terms, about, contact) are linked",
			"Ad networks require at minimum a privacy policy; add and link these pages")
	case 1:
		return warn(0.35, fmt.Sprintf("Only %s is linked; %d essential pages are missing", matched[0], missing),
			"Add the remaining essential pages and link them site-wide")
	case 2:
		return warn(0.6, fmt.Sprintf("Found %s; %d essential pages are missing", strings.Join(matched, " and "), missing),
			"Add the remaining essential pages and link them site-wide")
	case 3:
		return warn(0.8, fmt.Sprintf("Found %s; one essential page is missing", strings.Join(matched, ", ")),
			"Add the last essential page to complete the set")
	default:
		return pass("All essential pages (privacy, terms, about, contact) are linked")
	}
}

// adReadinessBattery scores whether a site is ready to apply to ad
// networks. Declared total 100.
var adReadinessBattery = Battery{
	Name:          "ad-readiness",
	DeclaredTotal: 100,
	Checks: []Check{
		contentVolumeCheck(20, false),
		titleCheck(10),
		metaDescriptionCheck(10),
		h1Check(10),
		essentialPagesCheck(20, adEssentialCategories, adEssentialRating),
		navigationCheck(10),
		httpsCheck(10),
		imageAltCheck(10),
	},
	Tiers: []TierSpec{
		{Threshold: 80, Label: "Ready",
			Summary: "This site meets the common ad network requirements. You can apply with confidence."},
		{Threshold: 60, Label: "Almost Ready",
			Summary: "A few requirements are unmet. Fix the warnings below before applying to avoid a rejection."},
		{Threshold: 0, Label: "Not Ready",
			Summary: "This site would very likely be rejected today. Address the failed checks before applying."},
	},
}

// AnalyzeAdReadiness runs the ad-network readiness battery.
func AnalyzeAdReadiness(doc htmlprocessor.Document, pageURL string) types.AnalysisOutcome {
	return adReadinessBattery.Run(NewPage(doc, pageURL))
}
