package discovery

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/pundit-agent/internal/models"
	"github.com/pundit-agent/pkg/logger"
	"github.com/pundit-agent/pkg/ratelimit"
)

// DefaultScanBound caps the number of stubs one scan may return
const DefaultScanBound = 30

// maxItemAge drops feed items older than a week
const maxItemAge = 7 * 24 * time.Hour

// Scanner fetches active feed sources and matches items against the
// tracked-term set. Failures degrade to zero stubs: a broken feed is logged
// and skipped, never surfaced to the user.
type Scanner struct {
	parser      *gofeed.Parser
	rateLimiter *ratelimit.MultiLimiter
	bound       int
	log         *logger.Logger
}

// New creates a scanner with the given per-scan result bound
func New(limiter *ratelimit.MultiLimiter, bound int, log *logger.Logger) *Scanner {
	if bound <= 0 {
		bound = DefaultScanBound
	}
	return &Scanner{
		parser:      gofeed.NewParser(),
		rateLimiter: limiter,
		bound:       bound,
		log:         log.WithComponent("discovery"),
	}
}

// Scan fetches every active source concurrently and returns candidate stubs
// whose title or summary mentions at least one tracked term, newest first,
// bounded to the scanner's limit
func (s *Scanner) Scan(ctx context.Context, sources []models.FeedSource, terms []string) []models.Stub {
	type result struct {
		stubs []models.Stub
		err   error
		name  string
	}

	var active []models.FeedSource
	for _, src := range sources {
		if src.Active {
			active = append(active, src)
		}
	}
	if len(active) == 0 {
		s.log.Warn().Msg("No active sources to scan")
		return nil
	}

	results := make(chan result, len(active))
	for _, src := range active {
		go func(src models.FeedSource) {
			stubs, err := s.fetchSource(ctx, src, terms)
			results <- result{stubs: stubs, err: err, name: src.Name}
		}(src)
	}

	var all []models.Stub
	for range active {
		r := <-results
		if r.err != nil {
			s.log.Warn().Err(r.err).Str("source", r.name).Msg("Feed scan failed, skipping source")
			continue
		}
		all = append(all, r.stubs...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].PublishedAt.After(all[j].PublishedAt)
	})
	if len(all) > s.bound {
		all = all[:s.bound]
	}

	s.log.Info().
		Int("stubs", len(all)).
		Int("sources", len(active)).
		Msg("Scan completed")
	return all
}

func (s *Scanner) fetchSource(ctx context.Context, src models.FeedSource, terms []string) ([]models.Stub, error) {
	if err := s.rateLimiter.Wait(ctx, ratelimit.LimiterFeeds); err != nil {
		return nil, err
	}

	feed, err := s.parser.ParseURLWithContext(src.URL, ctx)
	if err != nil {
		return nil, err
	}

	var stubs []models.Stub
	for _, item := range feed.Items {
		publishedAt := time.Now()
		if item.PublishedParsed != nil {
			publishedAt = *item.PublishedParsed
			if time.Since(publishedAt) > maxItemAge {
				continue
			}
		}

		title := cleanText(item.Title)
		summary := cleanText(item.Description)
		matched := matchTerms(title+" "+summary, terms)
		if len(matched) == 0 {
			continue
		}

		stubs = append(stubs, models.Stub{
			Title:        title,
			Summary:      summary,
			Link:         item.Link,
			SourceName:   src.Name,
			MatchedTerms: matched,
			PublishedAt:  publishedAt,
		})
	}

	return stubs, nil
}

// matchTerms returns the tracked terms mentioned in the text, preserving
// the order of the tracked-term set. Matching is case-insensitive
// containment; the returned terms keep their tracked casing.
func matchTerms(text string, terms []string) []string {
	lower := strings.ToLower(text)
	var matched []string
	for _, term := range terms {
		if term == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(term)) {
			matched = append(matched, term)
		}
	}
	return matched
}

// cleanText strips HTML tags and collapses whitespace in feed fields
func cleanText(text string) string {
	var b strings.Builder
	inTag := false
	for _, r := range text {
		switch {
		case r == '<':
			inTag = true
			b.WriteRune(' ')
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
