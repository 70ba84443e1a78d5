package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"jane@lafoodie.com", true},
		{"collabs@creatorhub.co", true},
		{"noreply@platform.com", false},
		{"no-reply@platform.com", false},
		{"info@business.com", false},
		{"support@shop.com", false},
		{"hello@brand.com", false},
		{"contact@venue.com", false},
		{"admin@site.com", false},
		{"sales@store.com", false},
		{"help@app.com", false},
		{"user@wix.com", false},
		{"errors@sentry.io", false},
		{"someone@example.com", false},
		{"someone@domain.com", false},
		{"photo@2x.png", false},
		{"banner@header.jpg", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsValidEmail(tt.email), "email %q", tt.email)
	}
}

func TestExtractEmail(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"plain email", "business: jane@lafoodie.com", "jane@lafoodie.com"},
		{"uppercase normalized", "Reach me: JANE@LAFOODIE.COM", "jane@lafoodie.com"},
		{"obfuscated at", "collabs: jane [at] lafoodie.com", "jane@lafoodie.com"},
		{"obfuscated with spacing", "jane  [at]  lafoodie.com", "jane@lafoodie.com"},
		{"skips invalid picks next", "info@business.com or jane@lafoodie.com", "jane@lafoodie.com"},
		{"only invalid", "write info@business.com", ""},
		{"no email", "LA foodie, DM for collabs", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractEmail(tt.text))
		})
	}
}

func TestCleanMailto(t *testing.T) {
	assert.Equal(t, "jane@lafoodie.com", CleanMailto("mailto:jane@lafoodie.com"))
	assert.Equal(t, "jane@lafoodie.com", CleanMailto("mailto:Jane@lafoodie.com?subject=Collab"))
	assert.Equal(t, "jane@lafoodie.com", CleanMailto("jane@lafoodie.com"))
}

func TestIsAggregatorLink(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://linktr.ee/lafoodie", true},
		{"https://www.linktr.ee/lafoodie", true},
		{"https://beacons.ai/lafoodie", true},
		{"https://stan.store/lafoodie", true},
		{"https://lafoodie.com", false},
		{"https://evil.com/linktr.ee", false},
		{"https://fakelinktr.ee.evil.com", false},
		{"not a url at all ://", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsAggregatorLink(tt.url), "url %q", tt.url)
	}
}
