// Package textutil holds small text primitives shared by the text
// quality battery and the tone rewriter.
package textutil

import "strings"

// SplitSentences segments text into sentences on terminal punctuation
// (".", "!", "?") followed by whitespace. Punctuation stays attached to
// its sentence; empty segments are dropped.
func SplitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		current.WriteRune(r)
		if isTerminal(r) {
			next := i + 1
			if next >= len(runes) || isSpace(runes[next]) {
				if s := strings.TrimSpace(current.String()); s != "" {
					sentences = append(sentences, s)
				}
				current.Reset()
			}
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

// WordCount counts whitespace-separated tokens.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
