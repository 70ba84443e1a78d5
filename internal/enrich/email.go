// Package enrich obtains contact emails for qualified leads through an
// ordered waterfall of progressively more expensive strategies.
package enrich

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	// obfuscatedPattern catches the "name [at] domain.tld" convention
	// creators use to dodge scrapers.
	obfuscatedPattern = regexp.MustCompile(`(?i)([\w.-]+)\s*\[at\]\s*([\w.-]+\.\w+)`)
)

// excludedPatterns reject role addresses, platform infrastructure and
// regex matches that are actually image filenames. Shared by every tier.
var excludedPatterns = []string{
	"noreply", "no-reply", "support@", "info@", "hello@",
	"contact@", "admin@", "sales@", "help@", "wix.com",
	"sentry.io", "example.com", "domain.com", ".png", ".jpg",
}

// IsValidEmail reports whether an extracted address looks like a personal
// contact rather than a role address or placeholder.
func IsValidEmail(email string) bool {
	if email == "" {
		return false
	}

	lower := strings.ToLower(email)
	for _, pattern := range excludedPatterns {
		if strings.Contains(lower, pattern) {
			return false
		}
	}
	return true
}

// ExtractEmail scans text for the first valid email, trying the standard
// pattern before de-obfuscation. Returns "" when nothing valid is found.
func ExtractEmail(text string) string {
	if text == "" {
		return ""
	}

	for _, match := range emailPattern.FindAllString(text, -1) {
		if IsValidEmail(match) {
			return strings.ToLower(match)
		}
	}

	if m := obfuscatedPattern.FindStringSubmatch(text); m != nil {
		candidate := m[1] + "@" + m[2]
		if IsValidEmail(candidate) {
			return strings.ToLower(candidate)
		}
	}

	return ""
}

// CleanMailto strips the scheme and any query parameters from a mailto
// href, returning just the address.
func CleanMailto(href string) string {
	addr := strings.TrimPrefix(href, "mailto:")
	if i := strings.IndexByte(addr, '?'); i >= 0 {
		addr = addr[:i]
	}
	return strings.ToLower(strings.TrimSpace(addr))
}
