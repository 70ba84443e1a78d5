package enrich

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/leadscout/internal/logger"
)

// aggregatorDomains is the allow-list of link-in-bio aggregators worth
// fetching. Arbitrary external sites are not followed: the drill-down is
// one round-trip against a page that exists to list contact methods.
var aggregatorDomains = []string{
	"linktr.ee", "beacons.ai", "carrd.co", "taplink.cc",
	"linkin.bio", "tap.bio", "bio.link", "hoo.be",
	"campsite.bio", "stan.store", "snipfeed.co",
}

const linkFetchUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// IsAggregatorLink reports whether the URL's host is a known link
// aggregator.
func IsAggregatorLink(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	host := strings.ToLower(strings.TrimPrefix(u.Hostname(), "www."))
	for _, domain := range aggregatorDomains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

// LinkScanner fetches a bio-link page and scans it for a contact email.
type LinkScanner struct {
	client *http.Client
	logger logger.Logger
}

// NewLinkScanner creates a scanner with a pooled client bounded by timeout.
func NewLinkScanner(timeout time.Duration, log logger.Logger) *LinkScanner {
	return &LinkScanner{
		client: &http.Client{Timeout: timeout},
		logger: log,
	}
}

// ScanLink fetches the page and returns the first valid email, preferring
// an explicit mailto anchor over a regex hit in the page text. Returns ""
// when the page yields nothing valid.
func (s *LinkScanner) ScanLink(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("build bio-link request: %w", err)
	}
	req.Header.Set("User-Agent", linkFetchUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch bio link %q: %w", pageURL, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch bio link %q: status %d", pageURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse bio link %q: %w", pageURL, err)
	}

	email := ""
	doc.Find(`a[href^="mailto:"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, ok := sel.Attr("href")
		if !ok {
			return true
		}
		if addr := CleanMailto(href); IsValidEmail(addr) {
			email = addr
			return false
		}
		return true
	})
	if email != "" {
		return email, nil
	}

	return ExtractEmail(doc.Text()), nil
}
