// Package rewriter implements the rule-based tone rewriter: sentence
// segmentation, dictionary substitution, randomized structural variation,
// duplicate-word cleanup, and contraction normalization.
package rewriter

import (
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/sitegauge/engine/internal/textutil"
	"github.com/sitegauge/engine/pkg/types"
)

// Tone selects the substitution dictionary and contraction direction.
type Tone string

const (
	ToneCasual       Tone = "casual"
	ToneNarrative    Tone = "narrative"
	ToneProfessional Tone = "professional"
)

// ParseTone validates a tone name from user input.
func ParseTone(s string) (Tone, error) {
	switch Tone(strings.ToLower(strings.TrimSpace(s))) {
	case ToneCasual:
		return ToneCasual, nil
	case ToneNarrative:
		return ToneNarrative, nil
	case ToneProfessional:
		return ToneProfessional, nil
	}
	return "", types.NewValidationError("unknown tone %q: expected casual, narrative, or professional", s)
}

// Rewriter rewrites text toward a target tone. The random source drives
// the structural-variation stages; inject a seeded source to make output
// reproducible (the original behavior was unseeded, which is deliberate
// looseness, not a bug).
type Rewriter struct {
	rng *rand.Rand
}

// New creates a Rewriter with the given random source. A nil source
// falls back to a time-seeded one.
func New(rng *rand.Rand) *Rewriter {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Rewriter{rng: rng}
}

// Rewrite runs the full transformation pipeline and returns the rejoined
// text plus word-count statistics.
func (rw *Rewriter) Rewrite(text string, tone Tone) types.TransformResult {
	wordsBefore := textutil.WordCount(text)

	sentences := textutil.SplitSentences(text)
	sentences = applySubstitutions(sentences, tone)
	sentences = rw.applyStructuralVariation(sentences)
	sentences = rw.applyTransitions(sentences, tone)
	for i, s := range sentences {
		sentences[i] = dedupeAdjacentWords(s)
	}
	result := normalizeContractions(strings.Join(sentences, " "), tone)

	wordsAfter := textutil.WordCount(result)
	return types.TransformResult{
		Text:          result,
		WordsBefore:   wordsBefore,
		WordsAfter:    wordsAfter,
		ChangePercent: changePercent(wordsBefore, wordsAfter),
	}
}

func changePercent(before, after int) int {
	if before == 0 {
		return 0
	}
	diff := after - before
	if diff < 0 {
		diff = -diff
	}
	return int(math.Round(100 * float64(diff) / float64(before)))
}

func dictionaryFor(tone Tone) []substitution {
	switch tone {
	case ToneNarrative:
		return narrativeSubstitutions
	case ToneProfessional:
		return professionalSubstitutions
	default:
		return casualSubstitutions
	}
}

// applySubstitutions runs the tone dictionary over each sentence in
// declaration order. Substitutions chain: each entry sees the output of
// the previous ones within the same sentence.
func applySubstitutions(sentences []string, tone Tone) []string {
	dict := dictionaryFor(tone)
	out := make([]string, len(sentences))
	for i, sentence := range sentences {
		for _, s := range dict {
			sentence = s.pattern.ReplaceAllString(sentence, s.replacement)
		}
		out[i] = sentence
	}
	return out
}

// applyStructuralVariation prepends an introductory phrase to every third
// sentence with probability 0.3, unless one is already there.
func (rw *Rewriter) applyStructuralVariation(sentences []string) []string {
	out := make([]string, len(sentences))
	for i, sentence := range sentences {
		if i%3 == 0 && rw.rng.Float64() < 0.3 && !startsWithAny(sentence, introPhrases) {
			intro := introPhrases[rw.rng.Intn(len(introPhrases))]
			sentence = intro + " " + lowerFirst(sentence)
		}
		out[i] = sentence
	}
	return out
}

// applyTransitions prepends a tone-specific transition to sentences at
// index > 0 divisible by 4, with probability 0.5.
func (rw *Rewriter) applyTransitions(sentences []string, tone Tone) []string {
	phrases := transitionPhrases[tone]
	if len(phrases) == 0 {
		return sentences
	}
	out := make([]string, len(sentences))
	for i, sentence := range sentences {
		if i > 0 && i%4 == 0 && rw.rng.Float64() < 0.5 && !startsWithAny(sentence, phrases) {
			transition := phrases[rw.rng.Intn(len(phrases))]
			sentence = transition + " " + lowerFirst(sentence)
		}
		out[i] = sentence
	}
	return out
}

func startsWithAny(sentence string, phrases []string) bool {
	for _, p := range phrases {
		if strings.HasPrefix(sentence, p) {
			return true
		}
	}
	return false
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	// Leave likely proper nouns and acronyms alone.
	if len(runes) > 1 && runes[1] >= 'A' && runes[1] <= 'Z' {
		return s
	}
	runes[0] = []rune(strings.ToLower(string(runes[0])))[0]
	return string(runes)
}

// dedupeAdjacentWords collapses immediately repeated words
// (case-insensitive), keeping the first occurrence. Common short words
// are exempt.
func dedupeAdjacentWords(sentence string) string {
	words := strings.Fields(sentence)
	if len(words) < 2 {
		return sentence
	}
	out := words[:1]
	for _, w := range words[1:] {
		prev := strings.ToLower(strings.Trim(out[len(out)-1], ".,!?;:"))
		curr := strings.ToLower(strings.Trim(w, ".,!?;:"))
		if prev == curr && curr != "" {
			if _, allowed := dedupeAllowlist[curr]; !allowed {
				continue
			}
		}
		out = append(out, w)
	}
	return strings.Join(out, " ")
}

// normalizeContractions contracts for casual and narrative tones and
// expands for professional, applying the fixed pair list in order.
func normalizeContractions(text string, tone Tone) string {
	if tone == ToneProfessional {
		for _, pair := range contractionPairs {
			text = pair.contractedPattern.ReplaceAllString(text, pair.expandedForm)
		}
		return text
	}
	for _, pair := range contractionPairs {
		text = pair.expanded.ReplaceAllString(text, pair.contracted)
	}
	return text
}
