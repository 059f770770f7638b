package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pundit-agent/internal/models"
	"github.com/pundit-agent/pkg/logger"
)

var (
	// ErrArticleNotFound is returned when an ID is in neither collection
	ErrArticleNotFound = errors.New("article not found")
	// ErrNotInInbox is returned when archiving an article outside the Inbox
	ErrNotInInbox = errors.New("article not in inbox")
	// ErrGenerationInFlight is returned when a generation run is already
	// pending for the article
	ErrGenerationInFlight = errors.New("generation already in flight")
	// ErrStaleGeneration is returned when a response arrives after the
	// article was removed or superseded; the response is discarded
	ErrStaleGeneration = errors.New("stale generation response discarded")
)

// DefaultInboxCap bounds the Inbox size; oldest entries beyond the cap are
// evicted on ingest
const DefaultInboxCap = 100

// Generator produces platform drafts for an article. Implemented by the AI
// client; faked in tests.
type Generator interface {
	Process(ctx context.Context, req models.GenerationRequest) (*models.GenerationResult, error)
}

// TermSource supplies the tracked-term set attached to generation requests.
// The controller only ever reads from it.
type TermSource interface {
	Terms() []string
}

// Scope names one of the two article collections
type Scope string

const (
	ScopeInbox   Scope = "inbox"
	ScopeArchive Scope = "archive"
)

// Controller owns the Inbox and Archive collections and is the only writer
// of article processing status and results. All multi-step mutations happen
// under one lock so an observer never sees an article in neither or both
// collections.
type Controller struct {
	mu      sync.Mutex
	inbox   []*models.Article
	archive []*models.Article
	cap     int

	// monotonic per-article request tokens; responses carrying a stale
	// token never touch state
	tokens map[string]uint64

	selection     map[string]struct{}
	selectionView Scope
	focusedID     string

	terms    TermSource
	gen      Generator
	log      *logger.Logger
	onChange func()
}

// New creates a controller with an empty Inbox and Archive
func New(terms TermSource, gen Generator, inboxCap int, log *logger.Logger) *Controller {
	if inboxCap <= 0 {
		inboxCap = DefaultInboxCap
	}
	return &Controller{
		cap:           inboxCap,
		tokens:        make(map[string]uint64),
		selection:     make(map[string]struct{}),
		selectionView: ScopeInbox,
		terms:         terms,
		gen:           gen,
		log:           log.WithComponent("lifecycle"),
	}
}

// OnChange registers a callback invoked after every state mutation, used by
// the persistence bridge to schedule debounced writes
func (c *Controller) OnChange(fn func()) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

func (c *Controller) notify() {
	c.mu.Lock()
	fn := c.onChange
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Load replaces both collections from a persisted snapshot. Articles stuck
// in PROCESSING from a previous session are reset to IDLE since no call can
// still be in flight. Does not fire the change callback.
func (c *Controller) Load(inbox, archive []*models.Article) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inbox = append([]*models.Article(nil), inbox...)
	c.archive = append([]*models.Article(nil), archive...)
	for _, a := range append(append([]*models.Article(nil), c.inbox...), c.archive...) {
		if a.ProcessingStatus == models.StatusProcessing {
			a.ProcessingStatus = models.StatusIdle
		}
	}
	c.tokens = make(map[string]uint64)
	c.selection = make(map[string]struct{})
	c.focusedID = ""
}

// Inbox returns a copy of the Inbox, most recent first
func (c *Controller) Inbox() []*models.Article {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*models.Article(nil), c.inbox...)
}

// Archive returns a copy of the Archive, most recently archived first
func (c *Controller) Archive() []*models.Article {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*models.Article(nil), c.archive...)
}

// Find returns the article with the given ID from either collection
func (c *Controller) Find(id string) (*models.Article, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if a := c.findLocked(id); a != nil {
		return a, nil
	}
	return nil, ErrArticleNotFound
}

func (c *Controller) findLocked(id string) *models.Article {
	for _, a := range c.inbox {
		if a.ID == id {
			return a
		}
	}
	for _, a := range c.archive {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// Ingest merges discovered stubs into the Inbox. Stubs whose link already
// exists anywhere in Inbox or Archive, or earlier in the same batch, are
// silently discarded so a re-scan is idempotent. Survivors get a fresh ID,
// IDLE status and are prepended newest-first; the Inbox is then trimmed to
// the cap, evicting the oldest entries. Returns the number of articles added.
func (c *Controller) Ingest(stubs []models.Stub) int {
	c.mu.Lock()

	seen := make(map[string]struct{}, len(c.inbox)+len(c.archive))
	for _, a := range c.inbox {
		seen[a.Link] = struct{}{}
	}
	for _, a := range c.archive {
		seen[a.Link] = struct{}{}
	}

	var fresh []*models.Article
	for _, s := range stubs {
		if _, dup := seen[s.Link]; dup {
			continue
		}
		seen[s.Link] = struct{}{}
		publishedAt := s.PublishedAt
		if publishedAt.IsZero() {
			publishedAt = time.Now()
		}
		fresh = append(fresh, &models.Article{
			ID:               uuid.NewString(),
			Title:            s.Title,
			Summary:          s.Summary,
			Link:             s.Link,
			SourceName:       s.SourceName,
			PublishedAt:      publishedAt,
			MatchedTerms:     append([]string(nil), s.MatchedTerms...),
			ProcessingStatus: models.StatusIdle,
		})
	}

	c.inbox = append(fresh, c.inbox...)
	if len(c.inbox) > c.cap {
		evicted := c.inbox[c.cap:]
		for _, a := range evicted {
			delete(c.selection, a.ID)
			delete(c.tokens, a.ID)
			if c.focusedID == a.ID {
				c.focusedID = ""
			}
		}
		c.inbox = c.inbox[:c.cap]
	}
	added := len(fresh)
	c.mu.Unlock()

	if added > 0 {
		c.log.Info().Int("added", added).Int("discarded", len(stubs)-added).Msg("Ingested discovered articles")
		c.notify()
	}
	return added
}

// Generate runs a tone-controlled generation for the article. Status flips
// to PROCESSING synchronously before the external call so observers see the
// in-flight work. On success the result fully replaces any prior one and a
// non-empty LinkedIn hook overwrites the article title, since the generation
// step verifies the live content. On failure the status becomes ERROR and
// the prior result is left untouched; there is no automatic retry.
//
// A second Generate on an article already PROCESSING is rejected, and each
// dispatch carries a monotonic token so a response that lost the race with a
// delete or a newer run is discarded instead of resurrecting state.
func (c *Controller) Generate(ctx context.Context, id string, tone models.Tone) (*models.GenerationResult, error) {
	c.mu.Lock()
	a := c.findLocked(id)
	if a == nil {
		c.mu.Unlock()
		return nil, ErrArticleNotFound
	}
	if a.ProcessingStatus == models.StatusProcessing {
		c.mu.Unlock()
		return nil, ErrGenerationInFlight
	}
	a.ProcessingStatus = models.StatusProcessing
	c.tokens[id]++
	token := c.tokens[id]

	req := models.GenerationRequest{
		Context:    fmt.Sprintf("TITLE: %s\nSUMMARY: %s\nSOURCE: %s", a.Title, a.Summary, a.SourceName),
		Terms:      c.terms.Terms(),
		ArticleURL: a.Link,
		Tone:       tone,
	}
	c.mu.Unlock()
	c.notify()

	result, genErr := c.gen.Process(ctx, req)

	c.mu.Lock()
	a = c.findLocked(id)
	if a == nil || c.tokens[id] != token {
		c.mu.Unlock()
		c.log.Debug().Str("article_id", id).Msg("Dropping stale generation response")
		return nil, ErrStaleGeneration
	}
	if genErr != nil {
		a.ProcessingStatus = models.StatusError
		c.mu.Unlock()
		c.notify()
		c.log.Error().Err(genErr).Str("article_id", id).Msg("Generation failed")
		return nil, genErr
	}
	a.ProcessingStatus = models.StatusCompleted
	a.Result = result
	if result.Posts != nil && result.Posts.LinkedIn.Hook != "" {
		a.Title = result.Posts.LinkedIn.Hook
	}
	c.mu.Unlock()
	c.notify()

	c.log.Info().
		Str("article_id", id).
		Str("tone", string(result.Meta.AppliedTone)).
		Str("status", string(result.Meta.Status)).
		Msg("Generation completed")
	return result, nil
}

// ArchiveArticle atomically moves an Inbox article to the head of the
// Archive, pruning it from the selection set and clearing detail focus
func (c *Controller) ArchiveArticle(id string) error {
	c.mu.Lock()
	moved := c.removeFromInboxLocked(id)
	if moved == nil {
		c.mu.Unlock()
		return ErrNotInInbox
	}
	c.archive = append([]*models.Article{moved}, c.archive...)
	delete(c.selection, id)
	if c.focusedID == id {
		c.focusedID = ""
	}
	c.mu.Unlock()
	c.notify()
	return nil
}

// DeleteArticle removes the article from whichever collection holds it.
// Idempotent: deleting an unknown ID is a no-op.
func (c *Controller) DeleteArticle(id string) {
	c.mu.Lock()
	removed := c.removeFromInboxLocked(id)
	if removed == nil {
		removed = c.removeFromArchiveLocked(id)
	}
	delete(c.selection, id)
	delete(c.tokens, id)
	if c.focusedID == id {
		c.focusedID = ""
	}
	c.mu.Unlock()
	if removed != nil {
		c.notify()
	}
}

func (c *Controller) removeFromInboxLocked(id string) *models.Article {
	for i, a := range c.inbox {
		if a.ID == id {
			c.inbox = append(c.inbox[:i], c.inbox[i+1:]...)
			return a
		}
	}
	return nil
}

func (c *Controller) removeFromArchiveLocked(id string) *models.Article {
	for i, a := range c.archive {
		if a.ID == id {
			c.archive = append(c.archive[:i], c.archive[i+1:]...)
			return a
		}
	}
	return nil
}

// BulkArchive moves every selected ID present in the Inbox to the Archive
// as one atomic set, preserving their Inbox order at the head of the
// Archive. IDs not in the Inbox are ignored. Clears the selection set.
// Returns the number of articles moved.
func (c *Controller) BulkArchive(ids []string) int {
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}

	c.mu.Lock()
	var moved []*models.Article
	remaining := c.inbox[:0]
	for _, a := range c.inbox {
		if _, ok := want[a.ID]; ok {
			moved = append(moved, a)
			if c.focusedID == a.ID {
				c.focusedID = ""
			}
		} else {
			remaining = append(remaining, a)
		}
	}
	c.inbox = remaining
	c.archive = append(moved, c.archive...)
	c.selection = make(map[string]struct{})
	c.mu.Unlock()

	if len(moved) > 0 {
		c.notify()
	}
	return len(moved)
}

// BulkDelete removes every listed ID from both collections as one atomic
// set and clears the selection. Unknown IDs are ignored.
func (c *Controller) BulkDelete(ids []string) int {
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}

	c.mu.Lock()
	removed := 0
	filter := func(list []*models.Article) []*models.Article {
		out := list[:0]
		for _, a := range list {
			if _, ok := want[a.ID]; ok {
				removed++
				delete(c.tokens, a.ID)
				if c.focusedID == a.ID {
					c.focusedID = ""
				}
			} else {
				out = append(out, a)
			}
		}
		return out
	}
	c.inbox = filter(c.inbox)
	c.archive = filter(c.archive)
	c.selection = make(map[string]struct{})
	c.mu.Unlock()

	if removed > 0 {
		c.notify()
	}
	return removed
}

// ClearAll empties the named collection
func (c *Controller) ClearAll(scope Scope) {
	c.mu.Lock()
	switch scope {
	case ScopeInbox:
		for _, a := range c.inbox {
			delete(c.selection, a.ID)
			delete(c.tokens, a.ID)
			if c.focusedID == a.ID {
				c.focusedID = ""
			}
		}
		c.inbox = nil
	case ScopeArchive:
		for _, a := range c.archive {
			delete(c.selection, a.ID)
			delete(c.tokens, a.ID)
			if c.focusedID == a.ID {
				c.focusedID = ""
			}
		}
		c.archive = nil
	}
	c.mu.Unlock()
	c.notify()
}

// Focus marks an article as detail-expanded; cleared automatically when the
// article is archived or deleted
func (c *Controller) Focus(id string) {
	c.mu.Lock()
	c.focusedID = id
	c.mu.Unlock()
}

// Focused returns the detail-expanded article ID, if any
func (c *Controller) Focused() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.focusedID
}
