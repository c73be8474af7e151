// Package pattern matches names against user-supplied selectors.
//
// Selector forms:
//
//   - Exact (no prefix): case-insensitive exact match
//   - Wildcard (*): case-insensitive, * matches any characters
//   - Regexp (~): case-sensitive regular expression
//   - Regexp (~*): case-insensitive regular expression
package pattern

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind is the selector matching mode.
type Kind int

const (
	KindExact Kind = iota
	KindWildcard
	KindRegexp
)

// Selector is a compiled selector ready for matching.
type Selector struct {
	original string
	kind     Kind
	clean    string
	re       *regexp.Regexp
}

// Compile parses a selector string. Call once, match many times.
func Compile(s string) (*Selector, error) {
	if s == "" {
		return nil, fmt.Errorf("selector cannot be empty")
	}

	sel := &Selector{original: s}

	switch {
	case strings.HasPrefix(s, "~*"):
		sel.kind = KindRegexp
		sel.clean = s[2:]
		re, err := regexp.Compile("(?i)" + sel.clean)
		if err != nil {
			return nil, fmt.Errorf("invalid selector %q: %w", s, err)
		}
		sel.re = re
	case strings.HasPrefix(s, "~"):
		sel.kind = KindRegexp
		sel.clean = s[1:]
		re, err := regexp.Compile(sel.clean)
		if err != nil {
			return nil, fmt.Errorf("invalid selector %q: %w", s, err)
		}
		sel.re = re
	case strings.Contains(s, "*"):
		sel.kind = KindWildcard
		sel.clean = s
	default:
		sel.kind = KindExact
		sel.clean = s
	}

	return sel, nil
}

// String returns the original selector text.
func (s *Selector) String() string { return s.original }

// Kind returns the matching mode.
func (s *Selector) Kind() Kind { return s.kind }

// Match reports whether input satisfies the selector.
func (s *Selector) Match(input string) bool {
	if s == nil {
		return false
	}
	switch s.kind {
	case KindRegexp:
		return s.re.MatchString(input)
	case KindWildcard:
		return matchWildcard(strings.ToLower(input), strings.ToLower(s.clean))
	default:
		return strings.EqualFold(input, s.clean)
	}
}

// matchWildcard matches text against a pattern where * matches any run of
// characters. Multiple wildcards are supported.
func matchWildcard(text, pattern string) bool {
	if !strings.Contains(pattern, "*") {
		return text == pattern
	}

	parts := strings.Split(pattern, "*")

	if !strings.HasPrefix(text, parts[0]) {
		return false
	}
	text = text[len(parts[0]):]

	last := parts[len(parts)-1]
	if !strings.HasSuffix(text, last) {
		return false
	}
	text = text[:len(text)-len(last)]

	for i := 1; i < len(parts)-1; i++ {
		if parts[i] == "" {
			continue
		}
		idx := strings.Index(text, parts[i])
		if idx == -1 {
			return false
		}
		text = text[idx+len(parts[i]):]
	}

	return true
}
