package classifier

import (
	"fmt"
	"time"

	"github.com/jonesrussell/leadscout/internal/domain"
)

const hoursPerDay = 24

// HardFilterConfig holds the boundary checks applied before any scoring.
type HardFilterConfig struct {
	FollowerMin int
	FollowerMax int
	RatioMax    float64
	MinMedia    int
	RecencyDays int
}

// HardFilter disqualifies candidates on boundary checks alone. All checks
// run independently so a rejection carries every violated bound, not just
// the first.
type HardFilter struct {
	cfg HardFilterConfig
	now func() time.Time
}

// NewHardFilter creates a hard filter with the given bounds.
func NewHardFilter(cfg HardFilterConfig) *HardFilter {
	return &HardFilter{cfg: cfg, now: time.Now}
}

// Check returns the list of violated bounds, empty when the candidate
// passes. Missing numeric fields count as zero, missing flags as false.
func (f *HardFilter) Check(c *domain.Candidate) []string {
	var reasons []string

	if c.FollowerCount < f.cfg.FollowerMin || c.FollowerCount > f.cfg.FollowerMax {
		reasons = append(reasons, fmt.Sprintf("followers (%d) outside range %d-%d",
			c.FollowerCount, f.cfg.FollowerMin, f.cfg.FollowerMax))
	}

	if c.FollowerCount > 0 {
		ratio := float64(c.FollowingCount) / float64(c.FollowerCount)
		if ratio > f.cfg.RatioMax {
			reasons = append(reasons, fmt.Sprintf("follow ratio %.2f > %.1f", ratio, f.cfg.RatioMax))
		}
	}

	if c.IsPrivate {
		reasons = append(reasons, "account is private")
	}

	if c.MediaCount < f.cfg.MinMedia {
		reasons = append(reasons, fmt.Sprintf("media count %d < %d", c.MediaCount, f.cfg.MinMedia))
	}

	// Recency only applies when a last-post timestamp is known. Compare
	// durations so a post 30.5 days old fails a 30-day bound; the truncated
	// day count is for the message only.
	if c.LastPostAt != nil {
		age := f.now().Sub(*c.LastPostAt)
		if age > time.Duration(f.cfg.RecencyDays)*hoursPerDay*time.Hour {
			reasons = append(reasons, fmt.Sprintf("inactive: last post %d days ago (>%d)",
				int(age.Hours()/hoursPerDay), f.cfg.RecencyDays))
		}
	}

	return reasons
}
