// Package classifier scores discovered accounts against the signal catalog.
// matcher.go wraps an Aho-Corasick automaton so every keyword group is
// evaluated in a single O(n+m) pass over the text.
package classifier

import (
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"
	"github.com/jonesrussell/leadscout/internal/catalog"
)

// keywordMatcher matches a fixed set of keyword groups against text. Hits
// are deduplicated to group level: a group matches once no matter how many
// of its keywords appear. A keyword shared by several groups credits every
// group containing it.
type keywordMatcher struct {
	matcher     *ahocorasick.Matcher
	groups      []catalog.Group
	hitToGroups [][]int // pattern index -> indices of groups containing it
}

// newKeywordMatcher builds the automaton over all group keywords.
// Normalization is lowercase-only: keywords carry spaces, punctuation and
// emoji that must survive into the automaton. Patterns are deduplicated so
// the automaton holds each keyword once, mapped to all of its groups.
func newKeywordMatcher(groups []catalog.Group) *keywordMatcher {
	m := &keywordMatcher{groups: groups}

	index := make(map[string]int)
	var keywords []string
	for gi, g := range groups {
		for _, kw := range g.Keywords {
			normalized := strings.ToLower(strings.TrimSpace(kw))
			if normalized == "" {
				continue
			}
			pi, ok := index[normalized]
			if !ok {
				pi = len(keywords)
				index[normalized] = pi
				keywords = append(keywords, normalized)
				m.hitToGroups = append(m.hitToGroups, nil)
			}
			m.hitToGroups[pi] = append(m.hitToGroups[pi], gi)
		}
	}

	if len(keywords) > 0 {
		m.matcher = ahocorasick.NewStringMatcher(keywords)
	}

	return m
}

// Match returns the indices of matched groups in declared order.
// The input must already be lowercased.
func (m *keywordMatcher) Match(text string) []int {
	if m.matcher == nil {
		return nil
	}

	hits := m.matcher.Match([]byte(text))

	seen := make(map[int]bool, len(hits))
	for _, hit := range hits {
		if hit >= len(m.hitToGroups) {
			continue
		}
		for _, gi := range m.hitToGroups[hit] {
			seen[gi] = true
		}
	}

	matched := make([]int, 0, len(seen))
	for gi := range m.groups {
		if seen[gi] {
			matched = append(matched, gi)
		}
	}
	return matched
}

// MatchAny reports whether any keyword of any group appears in the text.
func (m *keywordMatcher) MatchAny(text string) bool {
	if m.matcher == nil {
		return false
	}
	return len(m.matcher.Match([]byte(text))) > 0
}
