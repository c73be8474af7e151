package urlutil

import (
	"net/url"
	"strings"
)

// ExtractHost extracts and lowercases the host from a URL string.
// Returns empty string if the URL is invalid or has no host; callers
// treat an empty host as "unknown" and degrade gracefully.
func ExtractHost(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(parsed.Host)
}

// ExtractHostname strips the port from a host string if present.
// Input is a host (NOT a full URL), e.g. "example.com:8080".
// Bracketed IPv6 literals keep their address portion intact.
func ExtractHostname(host string) string {
	if strings.HasPrefix(host, "[") {
		if bracketIdx := strings.Index(host, "]"); bracketIdx != -1 {
			return host[:bracketIdx+1]
		}
		return host
	}
	// Only strip a port when there is exactly one colon, so bare IPv6
	// addresses pass through unchanged.
	if idx := strings.LastIndex(host, ":"); idx != -1 && strings.Count(host, ":") == 1 {
		return host[:idx]
	}
	return host
}

// IsHTTPS reports whether the URL uses the https scheme. This is a pure
// string check on the URL prefix; no network verification happens.
func IsHTTPS(rawURL string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(rawURL)), "https://")
}
