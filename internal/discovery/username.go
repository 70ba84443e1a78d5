package discovery

import (
	"regexp"
	"strings"

	"github.com/jonesrussell/leadscout/internal/domain"
)

var (
	instagramURLPattern = regexp.MustCompile(`instagram\.com/([a-zA-Z0-9_\.]+)`)
	tiktokURLPattern    = regexp.MustCompile(`tiktok\.com/@([a-zA-Z0-9_\.]+)`)
)

// instagramReservedPaths are path segments that look like usernames in a
// profile URL but are platform routes.
var instagramReservedPaths = map[string]struct{}{
	"p":       {},
	"reel":    {},
	"reels":   {},
	"explore": {},
	"tags":    {},
	"stories": {},
	"legal":   {},
	"about":   {},
}

// ExtractUsername pulls a platform and username out of a search result
// URL. Returns false for URLs that do not point at a profile.
func ExtractUsername(rawURL string) (domain.Platform, string, bool) {
	if m := tiktokURLPattern.FindStringSubmatch(rawURL); m != nil {
		if username := normalizeUsername(m[1]); username != "" {
			return domain.PlatformTikTok, username, true
		}
	}

	if m := instagramURLPattern.FindStringSubmatch(rawURL); m != nil {
		username := normalizeUsername(m[1])
		if username == "" {
			return "", "", false
		}
		if _, reserved := instagramReservedPaths[username]; reserved {
			return "", "", false
		}
		return domain.PlatformInstagram, username, true
	}

	return "", "", false
}

// normalizeUsername lowercases and strips the trailing dot that sentence
// punctuation leaves on usernames scraped from prose.
func normalizeUsername(username string) string {
	return strings.TrimSuffix(strings.ToLower(username), ".")
}
