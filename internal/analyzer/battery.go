// Package analyzer implements the scoring engine: ordered batteries of
// independent heuristic checks over a parsed HTML page or a raw text
// blob, aggregated into a normalized 0-100 score with a severity tier.
package analyzer

import (
	"math"

	"github.com/sitegauge/engine/pkg/types"
)

// Rating is the outcome of one check before weighting: a verdict, the
// fraction of the check's weight earned, and the narrative strings.
type Rating struct {
	Verdict    types.Verdict
	Fraction   float64
	Message    string
	Suggestion string
}

// Check is one battery element: a name, a fixed weight, and a pure
// evaluation function. Eval never returns an error; absent markup maps to
// the lowest-scoring rung of the check's ladder.
type Check struct {
	Name   string
	Weight int
	Eval   func(p *Page) Rating
}

// TierSpec maps a minimum normalized score to a tier label and its fixed
// narrative summary. A battery's tiers are ordered highest threshold
// first; the last entry has threshold 0 and always matches.
type TierSpec struct {
	Threshold int
	Label     string
	Summary   string
}

// Battery is a fixed, statically ordered set of checks for one analysis
// domain, plus its tier ladder. DeclaredTotal is the documented weight
// sum; a test asserts the table matches it. Normalization always uses the
// accumulated max score, so DeclaredTotal cannot silently skew results.
type Battery struct {
	Name          string
	DeclaredTotal int
	Checks        []Check
	Tiers         []TierSpec
}

// Total sums the weights of the battery's checks.
func (b *Battery) Total() int {
	total := 0
	for _, c := range b.Checks {
		total += c.Weight
	}
	return total
}

// Run evaluates every check in definition order and aggregates the
// results. Aggregation cannot fail: checks are total functions.
func (b *Battery) Run(p *Page) types.AnalysisOutcome {
	results := make([]types.CheckResult, 0, len(b.Checks))
	for _, check := range b.Checks {
		rating := check.Eval(p)
		results = append(results, weighted(check, rating))
	}
	return aggregate(results, b.Tiers, p.URL)
}

// weighted converts a rating into a CheckResult against the check weight.
func weighted(check Check, r Rating) types.CheckResult {
	score := int(math.Round(r.Fraction * float64(check.Weight)))
	if score < 0 {
		score = 0
	}
	if score > check.Weight {
		score = check.Weight
	}
	return types.CheckResult{
		Name:       check.Name,
		Verdict:    r.Verdict,
		Score:      score,
		MaxScore:   check.Weight,
		Message:    r.Message,
		Suggestion: r.Suggestion,
	}
}

// aggregate folds check results into one outcome. The normalized score is
// round(100 * sum(score) / sum(maxScore)), which lands in [0,100] by
// construction of the results.
func aggregate(results []types.CheckResult, tiers []TierSpec, source string) types.AnalysisOutcome {
	sumScore := 0
	sumMax := 0
	for _, r := range results {
		sumScore += r.Score
		sumMax += r.MaxScore
	}

	normalized := 0
	if sumMax > 0 {
		normalized = int(math.Round(100 * float64(sumScore) / float64(sumMax)))
	}

	tier := pickTier(normalized, tiers)
	return types.AnalysisOutcome{
		Score:       normalized,
		Tier:        tier.Label,
		TierSummary: tier.Summary,
		Source:      source,
		Checks:      results,
	}
}

func pickTier(score int, tiers []TierSpec) TierSpec {
	for _, t := range tiers {
		if score >= t.Threshold {
			return t
		}
	}
	if len(tiers) > 0 {
		return tiers[len(tiers)-1]
	}
	return TierSpec{}
}

// Rung is one threshold test in a ladder. Ladders are evaluated top to
// bottom; the first matching rung wins.
type Rung struct {
	Match  func(v int) bool
	Rating Rating
}

// evalLadder picks the first matching rung for v, falling back to the
// given rating when no rung matches.
func evalLadder(v int, rungs []Rung, fallback Rating) Rating {
	for _, rung := range rungs {
		if rung.Match(v) {
			return rung.Rating
		}
	}
	return fallback
}

func ltRung(n int) func(int) bool { return func(v int) bool { return v < n } }
func gtRung(n int) func(int) bool { return func(v int) bool { return v > n } }
func eqRung(n int) func(int) bool { return func(v int) bool { return v == n } }

func pass(message string) Rating {
	return Rating{Verdict: types.VerdictPass, Fraction: 1, Message: message}
}

func warn(fraction float64, message, suggestion string) Rating {
	return Rating{Verdict: types.VerdictWarning, Fraction: fraction, Message: message, Suggestion: suggestion}
}

func fail(fraction float64, message, suggestion string) Rating {
	return Rating{Verdict: types.VerdictFail, Fraction: fraction, Message: message, Suggestion: suggestion}
}
