package analyzer

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/sitegauge/engine/internal/textutil"
	"github.com/sitegauge/engine/pkg/types"
)

// MinTextChars is the shortest input the text battery accepts. Anything
// shorter is rejected before any check runs.
const MinTextChars = 100

// ValidateTextLength rejects text too short to score meaningfully.
func ValidateTextLength(text string) error {
	if n := utf8.RuneCountInString(strings.TrimSpace(text)); n < MinTextChars {
		return types.NewValidationError("text must be at least %d characters to analyze, got %d", MinTextChars, n)
	}
	return nil
}

// TextCheck is one battery element over raw text statistics.
type TextCheck struct {
	Name   string
	Weight int
	Eval   func(s *textStats) Rating
}

// TextBattery mirrors Battery for raw-text input.
type TextBattery struct {
	Name          string
	DeclaredTotal int
	Checks        []TextCheck
	Tiers         []TierSpec
}

// Total sums the weights of the battery's checks.
func (b *TextBattery) Total() int {
	total := 0
	for _, c := range b.Checks {
		total += c.Weight
	}
	return total
}

// Run computes the shared statistics once, evaluates every check in
// definition order, and aggregates.
func (b *TextBattery) Run(text string) types.AnalysisOutcome {
	stats := newTextStats(text)
	results := make([]types.CheckResult, 0, len(b.Checks))
	for _, check := range b.Checks {
		rating := check.Eval(stats)
		results = append(results, weighted(Check{Name: check.Name, Weight: check.Weight}, rating))
	}
	return aggregate(results, b.Tiers, "text")
}

// textStats is the shared parsed view of one text blob, computed once per
// run and read by every check.
type textStats struct {
	text       string
	fields     []string
	sentences  []string
	paragraphs []string
}

var paragraphSplit = regexp.MustCompile(`\n\s*\n`)

func newTextStats(text string) *textStats {
	var paragraphs []string
	for _, p := range paragraphSplit.Split(text, -1) {
		if strings.TrimSpace(p) != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return &textStats{
		text:       text,
		fields:     strings.Fields(text),
		sentences:  textutil.SplitSentences(text),
		paragraphs: paragraphs,
	}
}

var alphaToken = regexp.MustCompile(`[a-zA-Z]+`)

// alphaWords returns lowercased alphabetic tokens.
func (s *textStats) alphaWords() []string {
	words := alphaToken.FindAllString(s.text, -1)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return words
}

func wordCountTextCheck(weight int) TextCheck {
	return TextCheck{
		Name:   "Word Count",
		Weight: weight,
		Eval: func(s *textStats) Rating {
			words := len(s.fields)
			return evalLadder(words, []Rung{
				{ltRung(300), fail(0.25, fmt.Sprintf("Very short text (%d words)", words),
					"Aim for at least 300 words of substantial writing")},
				{ltRung(500), warn(0.5, fmt.Sprintf("Short text (%d words)", words),
					"Expand toward 500+ words")},
				{ltRung(800), warn(0.75, fmt.Sprintf("Moderate length (%d words)", words),
					"Long-form writing of 800+ words signals depth")},
			}, pass(fmt.Sprintf("Substantial length (%d words)", words)))
		},
	}
}

func sentenceVarietyCheck(weight int) TextCheck {
	return TextCheck{
		Name:   "Sentence Variety",
		Weight: weight,
		Eval: func(s *textStats) Rating {
			if len(s.sentences) < 5 {
				return warn(0.5, fmt.Sprintf("Too few sentences to judge variety (%d)", len(s.sentences)),
					"Write at least five sentences")
			}

			lengths := make([]float64, len(s.sentences))
			sum := 0.0
			for i, sentence := range s.sentences {
				lengths[i] = float64(textutil.WordCount(sentence))
				sum += lengths[i]
			}
			mean := sum / float64(len(lengths))
			if mean == 0 {
				return warn(0.5, "Sentences contain no words", "")
			}

			variance := 0.0
			for _, l := range lengths {
				variance += (l - mean) * (l - mean)
			}
			variance /= float64(len(lengths))
			cv := math.Sqrt(variance) / mean

			if cv < 0.2 {
				return fail(0.2, fmt.Sprintf("Sentence lengths are monotonous (variation %.2f)", cv),
					"Mix short punchy sentences with longer explanatory ones")
			}
			if cv < 0.4 {
				return warn(0.6, fmt.Sprintf("Sentence lengths vary somewhat (variation %.2f)", cv),
					"Vary sentence length more for rhythm")
			}
			return pass(fmt.Sprintf("Good sentence length variety (variation %.2f)", cv))
		},
	}
}

func paragraphStructureCheck(weight int) TextCheck {
	return TextCheck{
		Name:   "Paragraph Structure",
		Weight: weight,
		Eval: func(s *textStats) Rating {
			words := len(s.fields)
			paragraphs := len(s.paragraphs)

			if paragraphs <= 1 && words > 200 {
				return fail(0.25, fmt.Sprintf("One wall of text (%d words, no paragraph breaks)", words),
					"Break the text into paragraphs of 3-5 sentences")
			}
			if paragraphs > 0 {
				avg := float64(words) / float64(paragraphs)
				if avg > 150 {
					return warn(0.6, fmt.Sprintf("Paragraphs average %.0f words", avg),
						"Shorter paragraphs are easier to scan")
				}
			}
			if paragraphs < 3 && words > 300 {
				return warn(0.6, fmt.Sprintf("Only %d paragraphs for %d words", paragraphs, words),
					"Split longer texts into more paragraphs")
			}
			return pass(fmt.Sprintf("Readable paragraph structure (%d paragraphs)", paragraphs))
		},
	}
}

func vocabularyRichnessCheck(weight int) TextCheck {
	return TextCheck{
		Name:   "Vocabulary Richness",
		Weight: weight,
		Eval: func(s *textStats) Rating {
			words := s.alphaWords()
			if len(words) < 50 {
				return warn(0.6, fmt.Sprintf("Too few words to judge vocabulary (%d)", len(words)),
					"Write at least 50 words")
			}

			unique := make(map[string]struct{}, len(words))
			for _, w := range words {
				unique[w] = struct{}{}
			}
			density := float64(len(unique)) / float64(len(words))

			if density < 0.3 {
				return fail(0.2, fmt.Sprintf("Very repetitive vocabulary (%.0f%% unique words)", density*100),
					"Use a wider range of words and synonyms")
			}
			if density < 0.45 {
				return warn(0.6, fmt.Sprintf("Somewhat repetitive vocabulary (%.0f%% unique words)", density*100),
					"Vary word choice where it reads naturally")
			}
			return pass(fmt.Sprintf("Rich vocabulary (%.0f%% unique words)", density*100))
		},
	}
}

// repetitionStopWords are common words excluded from overuse detection.
var repetitionStopWords = map[string]struct{}{
	"that": {}, "this": {}, "with": {}, "from": {}, "they": {}, "have": {},
	"will": {}, "your": {}, "their": {}, "which": {}, "would": {}, "there": {},
	"about": {}, "when": {}, "what": {}, "were": {}, "more": {}, "them": {},
	"than": {}, "then": {}, "into": {}, "also": {}, "because": {}, "these": {},
	"other": {}, "some": {}, "such": {}, "only": {}, "over": {}, "most": {},
}

func repetitionCheck(weight int) TextCheck {
	return TextCheck{
		Name:   "Repetition",
		Weight: weight,
		Eval: func(s *textStats) Rating {
			totalWords := len(s.fields)
			counts := make(map[string]int)
			for _, w := range s.alphaWords() {
				if len(w) >= 4 {
					counts[w]++
				}
			}

			limit := 3
			if pct := totalWords * 3 / 100; pct > limit {
				limit = pct
			}

			var overused []string
			for word, count := range counts {
				if _, stop := repetitionStopWords[word]; stop {
					continue
				}
				if count > limit {
					overused = append(overused, word)
				}
			}
			sort.Strings(overused)

			if len(overused) > 5 {
				listed := strings.Join(overused[:5], ", ")
				return fail(0.2, fmt.Sprintf("%d words are heavily overused (%s, ...)", len(overused), listed),
					"Replace repeated words with synonyms or restructure sentences")
			}
			if len(overused) > 2 {
				return warn(0.6, fmt.Sprintf("Overused words: %s", strings.Join(overused, ", ")),
					"Consider varying these words")
			}
			if len(overused) > 0 {
				return pass(fmt.Sprintf("Repetition is within normal range (watch: %s)", strings.Join(overused, ", ")))
			}
			return pass("No words are noticeably overused")
		},
	}
}

// fillerWords is the fixed list counted against total word volume.
var fillerWords = []string{
	"very", "really", "actually", "basically", "literally", "just",
	"quite", "simply", "totally", "definitely", "certainly", "probably",
	"somewhat", "rather", "fairly", "pretty", "honestly", "obviously",
	"essentially", "absolutely",
}

func fillerRatioCheck(weight int) TextCheck {
	return TextCheck{
		Name:   "Filler Words",
		Weight: weight,
		Eval: func(s *textStats) Rating {
			total := len(s.fields)
			if total == 0 {
				return warn(0.5, "No words to analyze", "")
			}

			fillerSet := make(map[string]struct{}, len(fillerWords))
			for _, f := range fillerWords {
				fillerSet[f] = struct{}{}
			}

			fillers := 0
			for _, field := range s.fields {
				word := strings.ToLower(strings.Trim(field, ".,!?;:\"'()"))
				if _, ok := fillerSet[word]; ok {
					fillers++
				}
			}

			ratio := float64(fillers) / float64(total)
			if ratio > 0.05 {
				return fail(0.2, fmt.Sprintf("Heavy filler word usage (%d fillers in %d words)", fillers, total),
					"Cut words like \"very\", \"really\" and \"actually\"")
			}
			if ratio > 0.025 {
				return warn(0.6, fmt.Sprintf("Noticeable filler word usage (%d fillers in %d words)", fillers, total),
					"Trim filler words where they add nothing")
			}
			return pass("Filler word usage is low")
		},
	}
}

var (
	quotedSpan   = regexp.MustCompile(`"[^"]+"`)
	numericToken = regexp.MustCompile(`\d`)
	listLine     = regexp.MustCompile(`(?m)^\s*(?:[-*•]|\d+\.)\s+`)
)

func engagementCheck(weight int) TextCheck {
	return TextCheck{
		Name:   "Engagement Signals",
		Weight: weight,
		Eval: func(s *textStats) Rating {
			signals := 0
			var present []string
			if strings.Contains(s.text, "?") {
				signals++
				present = append(present, "questions")
			}
			if strings.Contains(s.text, "!") {
				signals++
				present = append(present, "exclamations")
			}
			if quotedSpan.MatchString(s.text) {
				signals++
				present = append(present, "quotes")
			}
			if numericToken.MatchString(s.text) {
				signals++
				present = append(present, "numbers")
			}
			if listLine.MatchString(s.text) {
				signals++
				present = append(present, "lists")
			}

			if signals == 0 {
				return fail(0, "No engagement devices found",
					"Add questions, quotes, numbers, or lists to hold attention")
			}
			if signals < 3 {
				return warn(0.6, fmt.Sprintf("Some engagement devices (%s)", strings.Join(present, ", ")),
					"Layer in more devices: questions, quotes, numbers, lists")
			}
			return pass(fmt.Sprintf("Engaging writing (%s)", strings.Join(present, ", ")))
		},
	}
}

var specificityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d+(?:\.\d+)?%`),
	regexp.MustCompile(`\b(?:19|20)\d{2}\b`),
	regexp.MustCompile(`\$\d[\d,]*(?:\.\d+)?`),
	regexp.MustCompile(`\b[A-Z][a-z]+(?: [A-Z][a-z]+)+\b`),
}

func specificityCheck(weight int) TextCheck {
	return TextCheck{
		Name:   "Specificity Signals",
		Weight: weight,
		Eval: func(s *textStats) Rating {
			total := 0
			for _, pat := range specificityPatterns {
				matches := len(pat.FindAllString(s.text, -1))
				if matches > 3 {
					matches = 3
				}
				total += matches
			}

			if total == 0 {
				return warn(0.3, "No concrete details (percentages, years, amounts, names)",
					"Anchor claims with specific figures and names")
			}
			if total < 4 {
				return warn(0.6, fmt.Sprintf("Some concrete details (%d found)", total),
					"More specifics make the writing more credible")
			}
			return pass(fmt.Sprintf("Concrete, specific writing (%d details found)", total))
		},
	}
}

// textQualityBattery detects generic low-value content. Declared total 100.
var textQualityBattery = TextBattery{
	Name:          "low-value",
	DeclaredTotal: 100,
	Checks: []TextCheck{
		wordCountTextCheck(20),
		sentenceVarietyCheck(15),
		paragraphStructureCheck(12),
		vocabularyRichnessCheck(15),
		repetitionCheck(15),
		fillerRatioCheck(10),
		engagementCheck(8),
		specificityCheck(5),
	},
	Tiers: []TierSpec{
		{Threshold: 75, Label: "Valuable",
			Summary: "This reads as substantial, original content."},
		{Threshold: 50, Label: "Mixed",
			Summary: "There is real content here, but parts read as thin or padded."},
		{Threshold: 0, Label: "Low Value",
			Summary: "This text shows the classic signs of low-value content: thin, repetitive, and unspecific."},
	},
}

// AnalyzeTextQuality runs the low-value-content battery on raw text.
func AnalyzeTextQuality(text string) types.AnalysisOutcome {
	return textQualityBattery.Run(text)
}
