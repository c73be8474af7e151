// Package types holds the value types shared between the analysis engine,
// the HTTP service, and the CLI.
package types

import "fmt"

// Verdict is the qualitative outcome of a single check.
type Verdict string

const (
	VerdictPass    Verdict = "pass"
	VerdictWarning Verdict = "warning"
	VerdictFail    Verdict = "fail"
)

// CheckResult is the outcome of one heuristic check. Results are immutable
// once produced; slice order follows battery definition order.
type CheckResult struct {
	Name       string  `json:"name"`
	Verdict    Verdict `json:"verdict"`
	Score      int     `json:"score"`
	MaxScore   int     `json:"max_score"`
	Message    string  `json:"message"`
	Suggestion string  `json:"suggestion,omitempty"`
}

// Valid reports whether the result respects the score invariant.
func (r CheckResult) Valid() bool {
	return r.Score >= 0 && r.Score <= r.MaxScore
}

// AnalysisOutcome is the aggregated result of running one battery.
// Score = round(100 * sum(Score) / sum(MaxScore)) over Checks.
type AnalysisOutcome struct {
	Score       int           `json:"score"`
	Tier        string        `json:"tier"`
	TierSummary string        `json:"tier_summary"`
	Source      string        `json:"source"`
	Checks      []CheckResult `json:"checks"`
}

// TransformResult is the output of a tone rewrite.
type TransformResult struct {
	Text          string `json:"text"`
	WordsBefore   int    `json:"words_before"`
	WordsAfter    int    `json:"words_after"`
	ChangePercent int    `json:"change_percent"`
}

// ValidationError signals rejected input (empty URL, too-short text,
// unknown tone). The message is safe to surface verbatim to the caller.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NewValidationError builds a ValidationError with a formatted message.
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}
