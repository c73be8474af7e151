package analyzer

import (
	"fmt"
	"strings"

	"github.com/sitegauge/engine/internal/common/htmlprocessor"
	"github.com/sitegauge/engine/pkg/types"
)

var staticEssentialCategories = []pageCategory{
	{Name: "Privacy Policy", Keywords: []string{"privacy"}},
	{Name: "About", Keywords: []string{"about"}},
	{Name: "Contact", Keywords: []string{"contact"}},
}

func staticEssentialRating(matched []string, total int) Rating {
	switch len(matched) {
	case 0:
		return warn(0.2, "No privacy, about, or contact pages are linked",
			"Even a small static site benefits from these trust pages")
	case 1:
		return warn(0.5, fmt.Sprintf("Only %s is linked", matched[0]),
			"Add the remaining trust pages")
	case 2:
		return warn(0.8, fmt.Sprintf("Found %s; one page is missing", strings.Join(matched, " and ")),
			"Add the last trust page to complete the set")
	default:
		return pass("Privacy, about, and contact pages are all linked")
	}
}

// staticSiteBattery scores how production-ready a static site deployment
// is. Declared total 115; this battery's word count strips nav, header
// and footer in addition to script/style/noscript.
var staticSiteBattery = Battery{
	Name:          "static-site",
	DeclaredTotal: 115,
	Checks: []Check{
		customDomainCheck(15),
		contentVolumeCheck(15, true),
		titleCheck(12),
		metaDescriptionCheck(10),
		h1Check(10),
		viewportCheck(10),
		httpsCheck(10),
		canonicalCheck(8),
		footerCheck(10),
		essentialPagesCheck(15, staticEssentialCategories, staticEssentialRating),
	},
	Tiers: []TierSpec{
		{Threshold: 80, Label: "Production Ready",
			Summary: "This static site is polished and deployment-ready. Nothing blocks a serious launch."},
		{Threshold: 55, Label: "Nearly There",
			Summary: "The basics are in place but the site still looks like a side project. The warnings below close the gap."},
		{Threshold: 0, Label: "Prototype",
			Summary: "This deployment reads as a prototype. Work through the failed checks to make it presentable."},
	},
}

// AnalyzeStaticSite runs the static-site readiness battery.
func AnalyzeStaticSite(doc htmlprocessor.Document, pageURL string) types.AnalysisOutcome {
	return staticSiteBattery.Run(NewPage(doc, pageURL))
}
