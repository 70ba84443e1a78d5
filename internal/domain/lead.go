package domain

import "time"

// Lead is a qualified candidate persisted for outreach.
type Lead struct {
	ID                  int        `db:"id"                   json:"id"`
	Platform            Platform   `db:"platform"             json:"platform"`
	Username            string     `db:"username"             json:"username"`
	DisplayName         string     `db:"display_name"         json:"display_name"`
	Bio                 string     `db:"bio"                  json:"bio"`
	FollowerCount       int        `db:"follower_count"       json:"follower_count"`
	FollowingCount      int        `db:"following_count"      json:"following_count"`
	MediaCount          int        `db:"media_count"          json:"media_count"`
	IsVerified          bool       `db:"is_verified"          json:"is_verified"`
	IsBusiness          bool       `db:"is_business"          json:"is_business"`
	Category            string     `db:"category"             json:"category"`
	ExternalURL         string     `db:"external_url"         json:"external_url"`
	City                string     `db:"city"                 json:"city"`
	Score               int        `db:"score"                json:"score"`
	MatchedSignals      []string   `db:"matched_signals"      json:"matched_signals"`
	EngagementScore     int        `db:"engagement_score"     json:"engagement_score"`
	EngagementStatus    string     `db:"engagement_status"    json:"engagement_status"`
	Email               string     `db:"email"                json:"email"`
	EmailSource         string     `db:"email_source"         json:"email_source"`
	Phone               string     `db:"phone"                json:"phone"`
	EnrichmentAttempted bool       `db:"enrichment_attempted" json:"enrichment_attempted"`
	Source              string     `db:"source"               json:"source"`
	DiscoveredAt        time.Time  `db:"discovered_at"        json:"discovered_at"`
	CreatedAt           time.Time  `db:"created_at"           json:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at"           json:"updated_at"`
	EnrichedAt          *time.Time `db:"enriched_at"          json:"enriched_at,omitempty"`
}

// RejectionRecord remembers why a candidate was turned away. Deleting a
// record forces re-evaluation on the next encounter; a later qualifying
// classification replaces it with a lead.
type RejectionRecord struct {
	ID         int       `db:"id"          json:"id"`
	Platform   Platform  `db:"platform"    json:"platform"`
	Username   string    `db:"username"    json:"username"`
	Reasons    []string  `db:"reasons"     json:"reasons"`
	Signals    []string  `db:"signals"     json:"signals"`
	Score      int       `db:"score"       json:"score"`
	RejectedAt time.Time `db:"rejected_at" json:"rejected_at"`
}

// EnrichmentTier names the waterfall stage that produced a contact email.
type EnrichmentTier string

const (
	TierBioRegex        EnrichmentTier = "bio_regex"
	TierBioLink         EnrichmentTier = "bio_link"
	TierRenderedProfile EnrichmentTier = "rendered_profile"
	TierNone            EnrichmentTier = "none"
)

// EnrichmentResult is the outcome of one contact-waterfall pass. Email is
// empty when every tier missed; AttemptedAt is always set.
type EnrichmentResult struct {
	Email       string         `json:"email"`
	Tier        EnrichmentTier `json:"tier"`
	AttemptedAt time.Time      `json:"attempted_at"`
}

// Found reports whether the waterfall produced a usable email.
func (r EnrichmentResult) Found() bool {
	return r.Email != ""
}
