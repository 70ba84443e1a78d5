package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/leadscout/internal/logger"
)

func testLogger(t *testing.T) logger.Logger {
	t.Helper()
	log, err := logger.New(logger.Config{Level: "error"})
	require.NoError(t, err)
	return log
}

func TestProfileClientFetchProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/user/profile", r.URL.Path)
		assert.Equal(t, "lafoodie", r.URL.Query().Get("username"))
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		_, _ = w.Write([]byte(`{
			"success": true,
			"data": {
				"id": "123",
				"username": "lafoodie",
				"full_name": "LA Foodie",
				"biography": "Los Angeles eats",
				"follower_count": 5000,
				"following_count": 800,
				"media_count": 120,
				"category_name": "Digital Creator",
				"latest_reel_media": 1700000000
			}
		}`))
	}))
	defer srv.Close()

	c := NewProfileClient(srv.URL, "test-key", time.Second, testLogger(t))

	profile, err := c.FetchProfile(context.Background(), "lafoodie")
	require.NoError(t, err)
	assert.Equal(t, "123", profile.ID)
	assert.Equal(t, 5000, profile.FollowerCount)

	cand := profile.Candidate("instagram", "hashtag:socalfoodie")
	assert.Equal(t, "lafoodie", cand.Username)
	assert.Equal(t, "Digital Creator", cand.Category)
	require.NotNil(t, cand.LastPostAt)
	assert.Equal(t, int64(1700000000), cand.LastPostAt.Unix())
}

func TestProfileClientRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewProfileClient(srv.URL, "k", time.Second, testLogger(t))

	_, err := c.FetchProfile(context.Background(), "anyone")
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestProfileClientNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewProfileClient(srv.URL, "k", time.Second, testLogger(t))

	_, err := c.FetchProfile(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProfileClientUnrecognizedShape(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"success false", `{"success": false}`},
		{"missing data", `{"success": true}`},
		{"not json", `<html>gateway error</html>`},
		{"empty profile", `{"success": true, "data": {}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewProfileClient(srv.URL, "k", time.Second, testLogger(t))
			_, err := c.FetchProfile(context.Background(), "anyone")
			assert.ErrorIs(t, err, ErrUnrecognizedShape)
		})
	}
}

func TestProfileClientHashtagFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/hashtag/feed", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"success": true,
			"data": [
				{"shortcode": "abc", "owner_id": "1", "like_count": 120, "comment_count": 4, "view_count": 900},
				{"shortcode": "def", "owner_id": "2", "like_count": 3, "comment_count": 0, "view_count": 40}
			]
		}`))
	}))
	defer srv.Close()

	c := NewProfileClient(srv.URL, "k", time.Second, testLogger(t))

	posts, err := c.FetchHashtagFeed(context.Background(), "socalfoodie", 3)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "1", posts[0].OwnerID)
	assert.Equal(t, 120, posts[0].Likes)
}

func TestSearchClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/search", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		_, _ = w.Write([]byte(`{
			"success": true,
			"data": [
				{"url": "https://instagram.com/lafoodie"},
				{"url": "https://instagram.com/p/xyz"}
			]
		}`))
	}))
	defer srv.Close()

	c := NewSearchClient(srv.URL, "k", time.Second, testLogger(t))

	urls, err := c.Search(context.Background(), "site:instagram.com socal foodie")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://instagram.com/lafoodie",
		"https://instagram.com/p/xyz",
	}, urls)
}

func TestSearchClientRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewSearchClient(srv.URL, "k", time.Second, testLogger(t))

	_, err := c.Search(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestRenderClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/render", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"success": true,
			"data": {
				"mailto_links": ["mailto:jane@lafoodie.com"],
				"visible_text": "Contact me at jane@lafoodie.com"
			}
		}`))
	}))
	defer srv.Close()

	c := NewRenderClient(srv.URL, "k", time.Second, testLogger(t))

	page, err := c.Render(context.Background(), "https://instagram.com/lafoodie", "iPhone 13")
	require.NoError(t, err)
	assert.Equal(t, []string{"mailto:jane@lafoodie.com"}, page.MailtoLinks)
	assert.Contains(t, page.VisibleText, "jane@lafoodie.com")
}
