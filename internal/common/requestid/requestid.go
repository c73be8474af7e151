// Package requestid generates unique request identifiers for log correlation.
package requestid

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const (
	// MaxRequestIDLength is the maximum total length (same as UUID: 36 chars)
	MaxRequestIDLength = 36
	// PrefixLength is the length of the random prefix
	PrefixLength = 5
	// MaxCustomIDLength is the max length for the sanitized custom portion
	MaxCustomIDLength = MaxRequestIDLength - PrefixLength - 1
)

var (
	sanitizeRegex           = regexp.MustCompile(`[^a-zA-Z0-9-]+`)
	consecutiveHyphensRegex = regexp.MustCompile(`-+`)
)

// Generate creates a unique request ID from an optional caller-supplied ID.
// A supplied ID is sanitized (keeping only [a-zA-Z0-9-]) and prepended with
// 5 random hex characters so two clients sending the same ID stay distinct.
// If customID is empty or sanitizes to nothing, a plain UUID is returned.
func Generate(customID string) string {
	sanitized := strings.ReplaceAll(customID, " ", "-")
	sanitized = sanitizeRegex.ReplaceAllString(sanitized, "")
	sanitized = consecutiveHyphensRegex.ReplaceAllString(sanitized, "-")
	sanitized = strings.Trim(sanitized, "-")

	if sanitized == "" {
		return uuid.New().String()
	}

	if len(sanitized) > MaxCustomIDLength {
		sanitized = sanitized[:MaxCustomIDLength]
	}

	return randomPrefix() + "-" + sanitized
}

func randomPrefix() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return uuid.New().String()[:PrefixLength]
	}
	return hex.EncodeToString(bytes)[:PrefixLength]
}
