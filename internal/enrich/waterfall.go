package enrich

import (
	"context"
	"fmt"
	"time"

	"github.com/jonesrussell/leadscout/internal/domain"
	"github.com/jonesrussell/leadscout/internal/logger"
	"github.com/jonesrussell/leadscout/internal/provider"
)

// BioLinkScanner is the tier-2 capability: fetch a bio link and return an
// email or "".
type BioLinkScanner interface {
	ScanLink(ctx context.Context, pageURL string) (string, error)
}

// Renderer is the tier-3 capability: render a page in a mobile context.
// The implementation owns the browser resource per invocation.
type Renderer interface {
	Render(ctx context.Context, pageURL, device string) (*provider.RenderedPage, error)
}

// Waterfall runs the contact-discovery tiers in strict cost order. A tier
// failure is logged and treated as a miss, never an error for the
// candidate; total failure yields an absent email with the attempt still
// recorded.
type Waterfall struct {
	scanner  BioLinkScanner
	renderer Renderer
	device   string
	logger   logger.Logger
	now      func() time.Time
}

// NewWaterfall wires the waterfall. scanner and renderer may be nil to
// disable their tiers (tier 1 is always available).
func NewWaterfall(scanner BioLinkScanner, renderer Renderer, device string, log logger.Logger) *Waterfall {
	return &Waterfall{
		scanner:  scanner,
		renderer: renderer,
		device:   device,
		logger:   log,
		now:      time.Now,
	}
}

// Enrich tries each tier in order and stops at the first valid email.
func (w *Waterfall) Enrich(ctx context.Context, cand *domain.Candidate) domain.EnrichmentResult {
	result := domain.EnrichmentResult{Tier: domain.TierNone, AttemptedAt: w.now().UTC()}

	if email := ExtractEmail(cand.Bio); email != "" {
		result.Email = email
		result.Tier = domain.TierBioRegex
		return result
	}

	if email := w.tryBioLink(ctx, cand); email != "" {
		result.Email = email
		result.Tier = domain.TierBioLink
		return result
	}

	if email := w.tryRenderedProfile(ctx, cand); email != "" {
		result.Email = email
		result.Tier = domain.TierRenderedProfile
		return result
	}

	return result
}

// tryBioLink drills into the candidate's external link, but only when it
// points at a known aggregator.
func (w *Waterfall) tryBioLink(ctx context.Context, cand *domain.Candidate) string {
	if w.scanner == nil || cand.ExternalURL == "" || !IsAggregatorLink(cand.ExternalURL) {
		return ""
	}

	email, err := w.scanner.ScanLink(ctx, cand.ExternalURL)
	if err != nil {
		w.logger.Warn("bio link scan failed",
			logger.String("username", cand.Username),
			logger.String("url", cand.ExternalURL),
			logger.Error(err))
		return ""
	}
	return email
}

// tryRenderedProfile renders the candidate's own profile page as a mobile
// client and scans the result, mailto links first.
func (w *Waterfall) tryRenderedProfile(ctx context.Context, cand *domain.Candidate) string {
	if w.renderer == nil {
		return ""
	}

	page, err := w.renderer.Render(ctx, ProfileURL(cand), w.device)
	if err != nil {
		w.logger.Warn("profile render failed",
			logger.String("username", cand.Username),
			logger.Error(err))
		return ""
	}

	for _, href := range page.MailtoLinks {
		if addr := CleanMailto(href); IsValidEmail(addr) {
			return addr
		}
	}
	return ExtractEmail(page.VisibleText)
}

// ProfileURL builds the public profile URL for a candidate.
func ProfileURL(cand *domain.Candidate) string {
	switch cand.Platform {
	case domain.PlatformTikTok:
		return fmt.Sprintf("https://www.tiktok.com/@%s", cand.Username)
	default:
		return fmt.Sprintf("https://www.instagram.com/%s/", cand.Username)
	}
}
