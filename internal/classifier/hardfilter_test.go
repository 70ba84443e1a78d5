package classifier

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHardFilterRecencyBoundary(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		lastPost time.Time
		inactive bool
	}{
		{"posted yesterday", now.Add(-24 * time.Hour), false},
		{"exactly thirty days", now.Add(-30 * 24 * time.Hour), false},
		{"thirty and a half days", now.Add(-30*24*time.Hour - 12*time.Hour), true},
		{"thirty-one days", now.Add(-31 * 24 * time.Hour), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewHardFilter(testConfig().HardFilter)
			f.now = func() time.Time { return now }

			cand := healthyCandidate("")
			cand.LastPostAt = &tt.lastPost

			reasons := f.Check(cand)
			if tt.inactive {
				require.Len(t, reasons, 1)
				assert.Contains(t, reasons[0], "inactive: last post")
				assert.Contains(t, reasons[0], "(>30)")
			} else {
				assert.Empty(t, reasons)
			}
		})
	}
}
