package fetch

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/pundit-agent/pkg/logger"
	"github.com/pundit-agent/pkg/ratelimit"
)

// Fetcher retrieves live page headlines for the instant-review flow
type Fetcher struct {
	client      *http.Client
	rateLimiter *ratelimit.MultiLimiter
	log         *logger.Logger
}

// New creates a page fetcher with a bounded request timeout
func New(limiter *ratelimit.MultiLimiter, log *logger.Logger) *Fetcher {
	return &Fetcher{
		client:      &http.Client{Timeout: 15 * time.Second},
		rateLimiter: limiter,
		log:         log.WithComponent("fetch"),
	}
}

// Headline fetches a URL and extracts its headline, preferring the
// Open Graph title over the document title. Returns an error when the page
// is unreachable; callers treat that as "headline unknown", not fatal.
func (f *Fetcher) Headline(ctx context.Context, url string) (string, error) {
	if err := f.rateLimiter.Wait(ctx, ratelimit.LimiterPages); err != nil {
		return "", fmt.Errorf("rate limit error: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("invalid URL %s: %w", url, err)
	}
	req.Header.Set("User-Agent", "pundit-agent/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching %s: status %d", url, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parsing %s: %w", url, err)
	}

	if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
		if og = strings.TrimSpace(og); og != "" {
			return og, nil
		}
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		return "", fmt.Errorf("no headline found at %s", url)
	}
	return title, nil
}
