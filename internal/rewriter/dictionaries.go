package rewriter

import "regexp"

// substitution is one dictionary entry. Entries apply in declaration
// order and later entries see the output of earlier ones, so the order
// below is part of the observable behavior and must not be reshuffled
// into a single-pass replace.
type substitution struct {
	pattern     *regexp.Regexp
	replacement string
}

func sub(pattern, replacement string) substitution {
	return substitution{
		pattern:     regexp.MustCompile(`(?i)` + pattern),
		replacement: replacement,
	}
}

var casualSubstitutions = []substitution{
	sub(`\butilize\b`, "use"),
	sub(`\bpurchase\b`, "buy"),
	sub(`\bassist\b`, "help"),
	sub(`\bobtain\b`, "get"),
	sub(`\brequire\b`, "need"),
	sub(`\badditionally\b`, "also"),
	sub(`\btherefore\b`, "so"),
	sub(`\bhowever\b`, "but"),
	sub(`\bcommence\b`, "start"),
	sub(`\bterminate\b`, "end"),
	sub(`\bdemonstrate\b`, "show"),
	sub(`\bsufficient\b`, "enough"),
	sub(`\bnumerous\b`, "lots of"),
	sub(`\bindividuals\b`, "people"),
	sub(`\bin order to\b`, "to"),
}

var narrativeSubstitutions = []substitution{
	sub(`\bsaid\b`, "remarked"),
	sub(`\bwalked\b`, "strolled"),
	sub(`\blooked\b`, "gazed"),
	sub(`\bvery big\b`, "enormous"),
	sub(`\bvery small\b`, "tiny"),
	sub(`\bsuddenly\b`, "all at once"),
	sub(`\bbegan\b`, "set about"),
	sub(`\bimportant\b`, "momentous"),
	sub(`\bhappy\b`, "delighted"),
	sub(`\bsad\b`, "crestfallen"),
	sub(`\bold\b`, "weathered"),
	sub(`\bin the end\b`, "when all was done"),
}

var professionalSubstitutions = []substitution{
	sub(`\buse\b`, "utilize"),
	sub(`\bbuy\b`, "purchase"),
	sub(`\bhelp\b`, "assist"),
	sub(`\bget\b`, "obtain"),
	sub(`\bneed\b`, "require"),
	sub(`\balso\b`, "additionally"),
	sub(`\bso\b`, "therefore"),
	sub(`\bbut\b`, "however"),
	sub(`\bstart\b`, "commence"),
	sub(`\bend\b`, "conclude"),
	sub(`\bshow\b`, "demonstrate"),
	sub(`\benough\b`, "sufficient"),
	sub(`\blots of\b`, "numerous"),
	sub(`\bpeople\b`, "individuals"),
	sub(`\bbig\b`, "substantial"),
}

// introPhrases may be prepended to every third sentence.
var introPhrases = []string{
	"Here's the thing:",
	"Interestingly,",
	"As it turns out,",
	"Worth noting:",
	"To put it plainly,",
}

// transitionPhrases are tone-specific sentence openers.
var transitionPhrases = map[Tone][]string{
	ToneCasual:       {"Anyway,", "On top of that,", "Plus,"},
	ToneNarrative:    {"Meanwhile,", "Before long,", "In that moment,"},
	ToneProfessional: {"Furthermore,", "Moreover,", "In addition,"},
}

// contractionPairs maps expanded forms to contractions, applied in order.
// Casual and narrative tones contract; professional expands by applying
// the table in reverse direction.
var contractionPairs = []struct {
	expanded   *regexp.Regexp
	contracted string
	// backward direction
	contractedPattern *regexp.Regexp
	expandedForm      string
}{
	{regexp.MustCompile(`(?i)\bdo not\b`), "don't", regexp.MustCompile(`(?i)\bdon't\b`), "do not"},
	{regexp.MustCompile(`(?i)\bdoes not\b`), "doesn't", regexp.MustCompile(`(?i)\bdoesn't\b`), "does not"},
	{regexp.MustCompile(`(?i)\bdid not\b`), "didn't", regexp.MustCompile(`(?i)\bdidn't\b`), "did not"},
	{regexp.MustCompile(`(?i)\bcannot\b`), "can't", regexp.MustCompile(`(?i)\bcan't\b`), "cannot"},
	{regexp.MustCompile(`(?i)\bwill not\b`), "won't", regexp.MustCompile(`(?i)\bwon't\b`), "will not"},
	{regexp.MustCompile(`(?i)\bis not\b`), "isn't", regexp.MustCompile(`(?i)\bisn't\b`), "is not"},
	{regexp.MustCompile(`(?i)\bare not\b`), "aren't", regexp.MustCompile(`(?i)\baren't\b`), "are not"},
	{regexp.MustCompile(`(?i)\bwas not\b`), "wasn't", regexp.MustCompile(`(?i)\bwasn't\b`), "was not"},
	{regexp.MustCompile(`(?i)\bhave not\b`), "haven't", regexp.MustCompile(`(?i)\bhaven't\b`), "have not"},
	{regexp.MustCompile(`(?i)\bhas not\b`), "hasn't", regexp.MustCompile(`(?i)\bhasn't\b`), "has not"},
	{regexp.MustCompile(`(?i)\bwould not\b`), "wouldn't", regexp.MustCompile(`(?i)\bwouldn't\b`), "would not"},
	{regexp.MustCompile(`(?i)\bcould not\b`), "couldn't", regexp.MustCompile(`(?i)\bcouldn't\b`), "could not"},
	{regexp.MustCompile(`(?i)\bshould not\b`), "shouldn't", regexp.MustCompile(`(?i)\bshouldn't\b`), "should not"},
	{regexp.MustCompile(`(?i)\bit is\b`), "it's", regexp.MustCompile(`(?i)\bit's\b`), "it is"},
	{regexp.MustCompile(`(?i)\bthat is\b`), "that's", regexp.MustCompile(`(?i)\bthat's\b`), "that is"},
	{regexp.MustCompile(`(?i)\bthere is\b`), "there's", regexp.MustCompile(`(?i)\bthere's\b`), "there is"},
	{regexp.MustCompile(`(?i)\bwe are\b`), "we're", regexp.MustCompile(`(?i)\bwe're\b`), "we are"},
	{regexp.MustCompile(`(?i)\bthey are\b`), "they're", regexp.MustCompile(`(?i)\bthey're\b`), "they are"},
	{regexp.MustCompile(`(?i)\byou are\b`), "you're", regexp.MustCompile(`(?i)\byou're\b`), "you are"},
	{regexp.MustCompile(`(?i)\bI am\b`), "I'm", regexp.MustCompile(`(?i)\bI'm\b`), "I am"},
}

// dedupeAllowlist holds short common words that legitimately repeat
// ("had had", "that that" in some registers, articles in lists).
var dedupeAllowlist = map[string]struct{}{
	"had": {}, "that": {}, "the": {}, "a": {}, "an": {}, "is": {}, "do": {}, "no": {},
}
