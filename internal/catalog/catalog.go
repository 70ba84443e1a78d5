// Package catalog holds the versioned signal tables consumed by the
// classifier. The tables are data, not code: a YAML file can replace the
// compiled-in defaults so scoring can be tuned without a redeploy.
package catalog

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Group is a named keyword group carrying a fixed point value. A group
// contributes its points once when any keyword substring-matches, no matter
// how many keywords hit.
type Group struct {
	Name     string   `yaml:"name"`
	Points   int      `yaml:"points"`
	Keywords []string `yaml:"keywords"`
}

// LocationTier is one rung of the community location cascade. Tiers are
// evaluated in order and the first match wins; lower tiers are not added.
type LocationTier struct {
	Name     string   `yaml:"name"`
	Points   int      `yaml:"points"`
	Keywords []string `yaml:"keywords"`
	// ExcludeWith skips a matched keyword when this substring is also
	// present in the text (the "baja california" case).
	ExcludeWith string `yaml:"exclude_with,omitempty"`
}

// Community holds the tables for the group/community account profile.
type Community struct {
	LocationTiers     []LocationTier `yaml:"location_tiers"`
	LocationBlacklist []string       `yaml:"location_blacklist"`
	ContentGroups     []Group        `yaml:"content_groups"`
	// IntegrityGroups name the content groups at least one of which must
	// match for the account to be considered on-topic at all.
	IntegrityGroups   []string `yaml:"integrity_groups"`
	UsernameBlacklist []string `yaml:"username_blacklist"`
	UsernameWhitelist []string `yaml:"username_whitelist"`
}

// Catalog is the full signal catalogue. Positive and Negative keep their
// declared order so score breakdowns come out deterministic.
type Catalog struct {
	Version            string   `yaml:"version"`
	Positive           []Group  `yaml:"positive"`
	VenueAnchors       Group    `yaml:"venue_anchors"`
	GoodCategories     []string `yaml:"good_categories"`
	GoodCategoryPoints int      `yaml:"good_category_points"`
	// SoftCategory earns GoodCategoryPoints only for non-business accounts.
	SoftCategory      string    `yaml:"soft_category"`
	Negative          []Group   `yaml:"negative"`
	BadCategories     []string  `yaml:"bad_categories"`
	BadCategoryPoints int       `yaml:"bad_category_points"`
	Community         Community `yaml:"community"`
}

// LoadFile reads a catalog from a YAML file and validates it.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file %s: %w", path, err)
	}

	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	if err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	return &cat, nil
}

// Validate checks the catalog for structural problems.
func (c *Catalog) Validate() error {
	if c.Version == "" {
		return fmt.Errorf("catalog version is required")
	}
	if len(c.Positive) == 0 {
		return fmt.Errorf("catalog has no positive signal groups")
	}

	seen := make(map[string]bool)
	for _, g := range append(append([]Group{}, c.Positive...), c.Negative...) {
		if g.Name == "" {
			return fmt.Errorf("signal group with empty name")
		}
		if seen[g.Name] {
			return fmt.Errorf("duplicate signal group %q", g.Name)
		}
		seen[g.Name] = true
		if len(g.Keywords) == 0 {
			return fmt.Errorf("signal group %q has no keywords", g.Name)
		}
	}

	for _, g := range c.Negative {
		if g.Points >= 0 {
			return fmt.Errorf("negative signal group %q has non-negative points %d", g.Name, g.Points)
		}
	}

	for _, pattern := range c.Community.UsernameWhitelist {
		if _, err := regexp.Compile(pattern); err != nil {
			return fmt.Errorf("username whitelist pattern %q: %w", pattern, err)
		}
	}

	return nil
}

// GroupNames returns every signal group name in evaluation order, for the
// catalog inspection endpoint.
func (c *Catalog) GroupNames() []string {
	names := make([]string, 0, len(c.Positive)+len(c.Negative)+1)
	for _, g := range c.Positive {
		names = append(names, g.Name)
	}
	names = append(names, c.VenueAnchors.Name)
	for _, g := range c.Negative {
		names = append(names, g.Name)
	}
	return names
}
