package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/jonesrussell/leadscout/internal/domain"
	"github.com/jonesrussell/leadscout/internal/logger"
)

// FeedPost is one post from a hashtag or user feed, carrying just the
// fields discovery and engagement analysis consume.
type FeedPost struct {
	Shortcode string `json:"shortcode"`
	OwnerID   string `json:"owner_id"`
	Likes     int    `json:"like_count"`
	Comments  int    `json:"comment_count"`
	Views     int    `json:"view_count"`
	TakenAt   int64  `json:"taken_at"`
}

// Post converts the feed entry to an engagement sample.
func (p FeedPost) Post() domain.Post {
	return domain.Post{
		Views:    p.Views,
		Likes:    p.Likes,
		Comments: p.Comments,
		TakenAt:  time.Unix(p.TakenAt, 0).UTC(),
	}
}

// Profile is the provider's view of an account.
type Profile struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	FullName       string `json:"full_name"`
	Biography      string `json:"biography"`
	FollowerCount  int    `json:"follower_count"`
	FollowingCount int    `json:"following_count"`
	MediaCount     int    `json:"media_count"`
	IsPrivate      bool   `json:"is_private"`
	IsVerified     bool   `json:"is_verified"`
	IsBusiness     bool   `json:"is_business"`
	IsProfessional bool   `json:"is_professional"`
	Category       string `json:"category_name"`
	ExternalURL    string `json:"external_url"`
	PublicEmail    string `json:"public_email"`
	PublicPhone    string `json:"public_phone_number"`
	CityName       string `json:"city_name"`
	LatestPostAt   int64  `json:"latest_reel_media"`
}

// Candidate converts the profile to a pipeline candidate.
func (p *Profile) Candidate(platform domain.Platform, source string) *domain.Candidate {
	c := &domain.Candidate{
		Platform:       platform,
		Username:       p.Username,
		DisplayName:    p.FullName,
		Bio:            p.Biography,
		FollowerCount:  p.FollowerCount,
		FollowingCount: p.FollowingCount,
		MediaCount:     p.MediaCount,
		IsPrivate:      p.IsPrivate,
		IsVerified:     p.IsVerified,
		IsBusiness:     p.IsBusiness,
		IsProfessional: p.IsProfessional,
		Category:       p.Category,
		ExternalURL:    p.ExternalURL,
		PublicEmail:    p.PublicEmail,
		Phone:          p.PublicPhone,
		City:           p.CityName,
		DiscoveredAt:   time.Now().UTC(),
		Source:         source,
	}
	if p.LatestPostAt > 0 {
		ts := time.Unix(p.LatestPostAt, 0).UTC()
		c.LastPostAt = &ts
	}
	return c
}

// envelope is the provider's common response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

// ProfileClient talks to the profile data provider.
type ProfileClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  logger.Logger
}

// NewProfileClient creates a profile provider client.
func NewProfileClient(baseURL, apiKey string, timeout time.Duration, log logger.Logger) *ProfileClient {
	return &ProfileClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  newHTTPClient(timeout),
		logger:  log,
	}
}

// FetchHashtagFeed returns recent posts tagged with the hashtag.
func (c *ProfileClient) FetchHashtagFeed(ctx context.Context, tag string, pages int) ([]FeedPost, error) {
	params := url.Values{"tag": {tag}, "pages": {fmt.Sprint(pages)}}

	var posts []FeedPost
	if err := c.get(ctx, "/v1/hashtag/feed", params, &posts); err != nil {
		return nil, fmt.Errorf("fetch hashtag feed %q: %w", tag, err)
	}
	return posts, nil
}

// ResolvePostAuthor resolves a post shortcode to its author's username.
func (c *ProfileClient) ResolvePostAuthor(ctx context.Context, shortcode string) (string, error) {
	params := url.Values{"shortcode": {shortcode}}

	var out struct {
		Username string `json:"username"`
	}
	if err := c.get(ctx, "/v1/post/author", params, &out); err != nil {
		return "", fmt.Errorf("resolve post author %q: %w", shortcode, err)
	}
	if out.Username == "" {
		return "", fmt.Errorf("resolve post author %q: %w", shortcode, ErrUnrecognizedShape)
	}
	return out.Username, nil
}

// FetchProfile returns the full profile for a username.
func (c *ProfileClient) FetchProfile(ctx context.Context, username string) (*Profile, error) {
	params := url.Values{"username": {username}}

	var profile Profile
	if err := c.get(ctx, "/v1/user/profile", params, &profile); err != nil {
		return nil, fmt.Errorf("fetch profile %q: %w", username, err)
	}
	if profile.Username == "" {
		return nil, fmt.Errorf("fetch profile %q: %w", username, ErrUnrecognizedShape)
	}
	return &profile, nil
}

// FetchProfileID resolves a username to the provider's numeric account id.
func (c *ProfileClient) FetchProfileID(ctx context.Context, username string) (string, error) {
	profile, err := c.FetchProfile(ctx, username)
	if err != nil {
		return "", err
	}
	if profile.ID == "" {
		return "", fmt.Errorf("fetch profile id %q: %w", username, ErrUnrecognizedShape)
	}
	return profile.ID, nil
}

// FetchUserFeed returns the user's recent posts for engagement analysis.
func (c *ProfileClient) FetchUserFeed(ctx context.Context, username string) ([]FeedPost, error) {
	params := url.Values{"username": {username}}

	var posts []FeedPost
	if err := c.get(ctx, "/v1/user/feed", params, &posts); err != nil {
		return nil, fmt.Errorf("fetch user feed %q: %w", username, err)
	}
	return posts, nil
}

// FetchFollowers returns usernames following the given user id.
func (c *ProfileClient) FetchFollowers(ctx context.Context, userID string) ([]string, error) {
	params := url.Values{"user_id": {userID}}

	var out []struct {
		Username string `json:"username"`
	}
	if err := c.get(ctx, "/v1/user/followers", params, &out); err != nil {
		return nil, fmt.Errorf("fetch followers of %q: %w", userID, err)
	}
	return usernames(out), nil
}

// FetchSimilarAccounts returns accounts the provider considers lookalikes.
func (c *ProfileClient) FetchSimilarAccounts(ctx context.Context, username string) ([]string, error) {
	params := url.Values{"username": {username}}

	var out []struct {
		Username string `json:"username"`
	}
	if err := c.get(ctx, "/v1/user/similar", params, &out); err != nil {
		return nil, fmt.Errorf("fetch similar accounts of %q: %w", username, err)
	}
	return usernames(out), nil
}

func usernames(out []struct {
	Username string `json:"username"`
}) []string {
	names := make([]string, 0, len(out))
	for _, u := range out {
		if u.Username != "" {
			names = append(names, u.Username)
		}
	}
	return names
}

// get performs a GET and decodes the success envelope into target.
func (c *ProfileClient) get(ctx context.Context, path string, params url.Values, target any) error {
	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		return ErrRateLimited
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("%w: %v", ErrUnrecognizedShape, err)
	}
	if !env.Success || env.Data == nil {
		return ErrUnrecognizedShape
	}
	if err := json.Unmarshal(env.Data, target); err != nil {
		return fmt.Errorf("%w: %v", ErrUnrecognizedShape, err)
	}
	return nil
}
