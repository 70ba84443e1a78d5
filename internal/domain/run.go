package domain

import "time"

// Run status values.
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// Run records one pipeline sweep: what was discovered, how many candidates
// survived each stage, and the settings the sweep ran with.
type Run struct {
	ID             string     `db:"id"              json:"id"`
	Status         string     `db:"status"          json:"status"`
	Discovered     int        `db:"discovered"      json:"discovered"`
	Classified     int        `db:"classified"      json:"classified"`
	Qualified      int        `db:"qualified"       json:"qualified"`
	Rejected       int        `db:"rejected"        json:"rejected"`
	Enriched       int        `db:"enriched"        json:"enriched"`
	Errors         int        `db:"errors"          json:"errors"`
	FollowerMin    int        `db:"follower_min"    json:"follower_min"`
	FollowerMax    int        `db:"follower_max"    json:"follower_max"`
	ScoreThreshold int        `db:"score_threshold" json:"score_threshold"`
	CatalogVersion string     `db:"catalog_version" json:"catalog_version"`
	StartedAt      time.Time  `db:"started_at"      json:"started_at"`
	CompletedAt    *time.Time `db:"completed_at"    json:"completed_at,omitempty"`
}

// DiscoveryStats counts what a single discovery source produced.
type DiscoveryStats struct {
	Source     string `json:"source"`
	Fetched    int    `json:"fetched"`
	Gated      int    `json:"gated"`
	Duplicates int    `json:"duplicates"`
	Emitted    int    `json:"emitted"`
	Errors     int    `json:"errors"`
}
