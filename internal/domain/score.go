package domain

import "strings"

// HardFailPrefix tags reasons produced by the hard-filter stage so they can
// be told apart from keyword signals in a breakdown.
const HardFailPrefix = "hard_fail:"

// SignalScore is one named contribution to a classification score.
type SignalScore struct {
	Name   string `json:"name"`
	Points int    `json:"points"`
}

// ScoreBreakdown is the full result of classifying a candidate. Signals are
// ordered by evaluation order, so identical input yields an identical
// breakdown.
type ScoreBreakdown struct {
	Signals   []SignalScore `json:"signals"`
	Total     int           `json:"total"`
	Qualified bool          `json:"qualified"`
}

// Add appends a signal contribution and updates the running total.
func (b *ScoreBreakdown) Add(name string, points int) {
	b.Signals = append(b.Signals, SignalScore{Name: name, Points: points})
	b.Total += points
}

// HardFailed reports whether the breakdown was produced by a hard-filter
// rejection rather than keyword scoring.
func (b *ScoreBreakdown) HardFailed() bool {
	for _, s := range b.Signals {
		if strings.HasPrefix(s.Name, HardFailPrefix) {
			return true
		}
	}
	return false
}

// SignalNames returns the names of all contributing signals in order.
func (b *ScoreBreakdown) SignalNames() []string {
	names := make([]string, 0, len(b.Signals))
	for _, s := range b.Signals {
		names = append(names, s.Name)
	}
	return names
}
