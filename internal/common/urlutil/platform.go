package urlutil

import "strings"

// platformSuffixes maps known static-hosting subdomain suffixes to a
// display label. Order matters only for deterministic iteration in tests;
// lookup walks the slice so the match is stable.
var platformSuffixes = []struct {
	Suffix string
	Label  string
}{
	{"netlify.app", "Netlify"},
	{"github.io", "GitHub Pages"},
	{"vercel.app", "Vercel"},
	{"surge.sh", "Surge"},
	{"pages.dev", "Cloudflare Pages"},
	{"onrender.com", "Render"},
}

// PlatformForHost returns the hosting platform label when the hostname is
// a subdomain of a known PaaS suffix (e.g. "myproject.netlify.app" ->
// "Netlify"). Returns empty string for custom domains or unknown hosts.
func PlatformForHost(host string) string {
	hostname := strings.ToLower(ExtractHostname(host))
	for _, p := range platformSuffixes {
		if hostname == p.Suffix || strings.HasSuffix(hostname, "."+p.Suffix) {
			return p.Label
		}
	}
	return ""
}

// LooksLikeCustomDomain reports whether the hostname has at least two
// dot-separated labels (e.g. "example.com"), the best-effort signal for a
// registered custom domain once platform suffixes are ruled out.
func LooksLikeCustomDomain(host string) bool {
	hostname := ExtractHostname(strings.ToLower(host))
	if hostname == "" {
		return false
	}
	labels := strings.Split(hostname, ".")
	if len(labels) < 2 {
		return false
	}
	for _, l := range labels {
		if l == "" {
			return false
		}
	}
	return true
}
