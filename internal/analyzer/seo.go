package analyzer

import (
	"github.com/sitegauge/engine/internal/common/htmlprocessor"
	"github.com/sitegauge/engine/pkg/types"
)

// seoBattery scores general on-page SEO health. Declared total 105; the
// normalized score always divides by the accumulated max, so the odd
// total is harmless.
var seoBattery = Battery{
	Name:          "seo",
	DeclaredTotal: 105,
	Checks: []Check{
		titleCheck(15),
		metaDescriptionCheck(12),
		h1Check(12),
		headingHierarchyCheck(10),
		imageAltCheck(10),
		internalLinksCheck(10),
		externalLinksCheck(6),
		httpsCheck(10),
		viewportCheck(10),
		canonicalCheck(10),
	},
	Tiers: []TierSpec{
		{Threshold: 80, Label: "Excellent",
			Summary: "This page follows SEO best practices. Keep content fresh to hold the position."},
		{Threshold: 60, Label: "Good",
			Summary: "Solid foundation with a few gaps. Address the warnings below to improve rankings."},
		{Threshold: 0, Label: "Poor",
			Summary: "Significant SEO problems are holding this page back. Work through the failed checks first."},
	},
}

// AnalyzeSEO runs the SEO battery against a parsed page.
func AnalyzeSEO(doc htmlprocessor.Document, pageURL string) types.AnalysisOutcome {
	return seoBattery.Run(NewPage(doc, pageURL))
}
