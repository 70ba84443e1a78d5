// Package domain contains the core types shared across leadscout.
package domain

import "time"

// Platform identifies the social network a candidate was discovered on.
type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformTikTok    Platform = "tiktok"
)

// Candidate is a discovered account under evaluation. The (Platform, Username)
// pair is its identity and never changes after discovery.
type Candidate struct {
	Platform       Platform   `db:"platform"         json:"platform"`
	Username       string     `db:"username"         json:"username"`
	DisplayName    string     `db:"display_name"     json:"display_name"`
	Bio            string     `db:"bio"              json:"bio"`
	FollowerCount  int        `db:"follower_count"   json:"follower_count"`
	FollowingCount int        `db:"following_count"  json:"following_count"`
	MediaCount     int        `db:"media_count"      json:"media_count"`
	IsPrivate      bool       `db:"is_private"       json:"is_private"`
	IsVerified     bool       `db:"is_verified"      json:"is_verified"`
	IsBusiness     bool       `db:"is_business"      json:"is_business"`
	IsProfessional bool       `db:"is_professional"  json:"is_professional"`
	Category       string     `db:"category"         json:"category"`
	ExternalURL    string     `db:"external_url"     json:"external_url"`
	PublicEmail    string     `db:"public_email"     json:"public_email"`
	Phone          string     `db:"phone"            json:"phone"`
	City           string     `db:"city"             json:"city"`
	LastPostAt     *time.Time `db:"last_post_at"     json:"last_post_at,omitempty"`
	DiscoveredAt   time.Time  `db:"discovered_at"    json:"discovered_at"`
	Source         string     `db:"source"           json:"source"`
}

// Post is one engagement sample from a candidate's recent feed.
type Post struct {
	Views    int       `json:"views"`
	Likes    int       `json:"likes"`
	Comments int       `json:"comments"`
	TakenAt  time.Time `json:"taken_at"`
}
