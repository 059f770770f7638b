package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/pundit-agent/internal/models"
	"github.com/pundit-agent/pkg/logger"
)

type staticTerms []string

func (s staticTerms) Terms() []string { return s }

// fakeGenerator returns canned results keyed by call order and records the
// requests it saw. An optional gate blocks Process until released, for
// exercising races between generation and removal.
type fakeGenerator struct {
	mu       sync.Mutex
	requests []models.GenerationRequest
	result   *models.GenerationResult
	err      error
	gate     chan struct{}
	entered  chan struct{}
}

func (g *fakeGenerator) Process(ctx context.Context, req models.GenerationRequest) (*models.GenerationResult, error) {
	g.mu.Lock()
	g.requests = append(g.requests, req)
	g.mu.Unlock()
	if g.entered != nil {
		g.entered <- struct{}{}
	}
	if g.gate != nil {
		<-g.gate
	}
	return g.result, g.err
}

func processedResult(tone models.Tone, hook string) *models.GenerationResult {
	return &models.GenerationResult{
		Posts: &models.PlatformPosts{
			LinkedIn:  models.LinkedInPost{Hook: hook, Body: "body", Kicker: "kicker", Hashtags: []string{"#ai"}},
			ShortForm: models.ShortFormPost{Content: "short", Hashtags: []string{"#ai"}},
		},
		Meta: models.MetaData{
			SourceTopic:   "AI Regulation",
			Sentiment:     models.SentimentNeutral,
			ViralityScore: 7,
			Status:        models.ResultProcessed,
			AppliedTone:   tone,
		},
	}
}

func newTestController(gen Generator, cap int) *Controller {
	return New(staticTerms{"AI", "OpenAI"}, gen, cap, logger.Default())
}

func stub(n int) models.Stub {
	return models.Stub{
		Title:      fmt.Sprintf("Article %d", n),
		Summary:    "summary",
		Link:       fmt.Sprintf("https://example.com/articles/%d", n),
		SourceName: "Example Feed",
	}
}

func stubs(from, to int) []models.Stub {
	var out []models.Stub
	for n := from; n <= to; n++ {
		out = append(out, stub(n))
	}
	return out
}

func TestIngestDeduplicatesByLink(t *testing.T) {
	c := newTestController(nil, 10)

	if added := c.Ingest(stubs(1, 3)); added != 3 {
		t.Fatalf("added = %d, want 3", added)
	}

	// Re-scan of the same items is a no-op
	if added := c.Ingest(stubs(1, 3)); added != 0 {
		t.Errorf("re-ingest added = %d, want 0", added)
	}
	if got := len(c.Inbox()); got != 3 {
		t.Errorf("inbox size = %d, want 3", got)
	}
}

func TestIngestDeduplicatesWithinBatch(t *testing.T) {
	c := newTestController(nil, 10)

	batch := []models.Stub{stub(1), stub(1), stub(2)}
	if added := c.Ingest(batch); added != 2 {
		t.Errorf("added = %d, want 2", added)
	}
}

func TestIngestDeduplicatesAgainstArchive(t *testing.T) {
	c := newTestController(nil, 10)
	c.Ingest(stubs(1, 1))
	id := c.Inbox()[0].ID
	if err := c.ArchiveArticle(id); err != nil {
		t.Fatalf("ArchiveArticle: %v", err)
	}

	if added := c.Ingest(stubs(1, 1)); added != 0 {
		t.Errorf("added = %d, want 0 for archived link", added)
	}
}

func TestIngestPrependsNewestFirst(t *testing.T) {
	c := newTestController(nil, 10)
	c.Ingest(stubs(1, 1))
	c.Ingest(stubs(2, 2))

	inbox := c.Inbox()
	if inbox[0].Title != "Article 2" || inbox[1].Title != "Article 1" {
		t.Errorf("inbox order = [%s, %s], want newest first", inbox[0].Title, inbox[1].Title)
	}
}

func TestIngestEvictsOldestBeyondCap(t *testing.T) {
	c := newTestController(nil, 100)
	c.Ingest(stubs(1, 100))

	oldest := c.Inbox()[99]
	c.Focus(oldest.ID)

	if added := c.Ingest(stubs(101, 105)); added != 5 {
		t.Fatalf("added = %d, want 5", added)
	}

	inbox := c.Inbox()
	if len(inbox) != 100 {
		t.Fatalf("inbox size = %d, want 100", len(inbox))
	}
	if inbox[0].Title != "Article 101" {
		t.Errorf("head = %s, want new batch at the head", inbox[0].Title)
	}
	for _, a := range inbox {
		if a.ID == oldest.ID {
			t.Errorf("evicted article %s still present", oldest.ID)
		}
	}
	if c.Focused() != "" {
		t.Errorf("focus = %q, want cleared after eviction", c.Focused())
	}
}

func TestGenerateSuccess(t *testing.T) {
	gen := &fakeGenerator{result: processedResult(models.ToneProvocative, "Verified hook")}
	c := newTestController(gen, 10)
	c.Ingest(stubs(1, 1))
	id := c.Inbox()[0].ID

	result, err := c.Generate(context.Background(), id, models.ToneProvocative)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if result.Meta.AppliedTone != models.ToneProvocative {
		t.Errorf("applied tone = %s, want Provocative", result.Meta.AppliedTone)
	}

	a, _ := c.Find(id)
	if a.ProcessingStatus != models.StatusCompleted {
		t.Errorf("status = %s, want COMPLETED", a.ProcessingStatus)
	}
	if a.Title != "Verified hook" {
		t.Errorf("title = %q, want overwritten by hook", a.Title)
	}

	req := gen.requests[0]
	if req.ArticleURL != "https://example.com/articles/1" {
		t.Errorf("request URL = %s", req.ArticleURL)
	}
	if len(req.Terms) != 2 {
		t.Errorf("request terms = %v, want tracked set", req.Terms)
	}
}

func TestGenerateSkipLeavesTitle(t *testing.T) {
	gen := &fakeGenerator{result: &models.GenerationResult{
		Meta: models.MetaData{
			SourceTopic: "Unknown",
			Sentiment:   models.SentimentNeutral,
			Status:      models.ResultSkip,
			AppliedTone: models.ToneAIChoice,
		},
	}}
	c := newTestController(gen, 10)
	c.Ingest(stubs(1, 1))
	id := c.Inbox()[0].ID

	result, err := c.Generate(context.Background(), id, models.ToneAIChoice)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !result.Skipped() {
		t.Fatal("result not marked skipped")
	}

	a, _ := c.Find(id)
	if a.ProcessingStatus != models.StatusCompleted {
		t.Errorf("status = %s, want COMPLETED for SKIP", a.ProcessingStatus)
	}
	if a.Title != "Article 1" {
		t.Errorf("title = %q, want original preserved on SKIP", a.Title)
	}
}

func TestGenerateFailureKeepsPriorResult(t *testing.T) {
	gen := &fakeGenerator{result: processedResult(models.ToneAuthoritative, "First hook")}
	c := newTestController(gen, 10)
	c.Ingest(stubs(1, 1))
	id := c.Inbox()[0].ID

	if _, err := c.Generate(context.Background(), id, models.ToneAuthoritative); err != nil {
		t.Fatalf("first Generate: %v", err)
	}

	gen.result = nil
	gen.err = errors.New("api unavailable")
	if _, err := c.Generate(context.Background(), id, models.ToneProvocative); err == nil {
		t.Fatal("second Generate should fail")
	}

	a, _ := c.Find(id)
	if a.ProcessingStatus != models.StatusError {
		t.Errorf("status = %s, want ERROR", a.ProcessingStatus)
	}
	if a.Result == nil || a.Result.Meta.AppliedTone != models.ToneAuthoritative {
		t.Error("prior result lost on failure")
	}
}

func TestGenerateRecoverableAfterError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("api unavailable")}
	c := newTestController(gen, 10)
	c.Ingest(stubs(1, 1))
	id := c.Inbox()[0].ID

	if _, err := c.Generate(context.Background(), id, models.ToneAIChoice); err == nil {
		t.Fatal("expected failure")
	}

	gen.err = nil
	gen.result = processedResult(models.ToneAIChoice, "Recovered hook")
	if _, err := c.Generate(context.Background(), id, models.ToneAIChoice); err != nil {
		t.Fatalf("retry Generate: %v", err)
	}
	a, _ := c.Find(id)
	if a.ProcessingStatus != models.StatusCompleted {
		t.Errorf("status = %s, want COMPLETED after retry", a.ProcessingStatus)
	}
}

func TestGenerateRejectsConcurrentRun(t *testing.T) {
	gen := &fakeGenerator{
		result:  processedResult(models.ToneAIChoice, "Hook"),
		gate:    make(chan struct{}),
		entered: make(chan struct{}, 1),
	}
	c := newTestController(gen, 10)
	c.Ingest(stubs(1, 1))
	id := c.Inbox()[0].ID

	done := make(chan error, 1)
	go func() {
		_, err := c.Generate(context.Background(), id, models.ToneAIChoice)
		done <- err
	}()
	<-gen.entered

	if _, err := c.Generate(context.Background(), id, models.ToneProvocative); !errors.Is(err, ErrGenerationInFlight) {
		t.Errorf("concurrent Generate err = %v, want ErrGenerationInFlight", err)
	}

	close(gen.gate)
	if err := <-done; err != nil {
		t.Errorf("first Generate: %v", err)
	}
}

func TestGenerateDiscardsResponseAfterDelete(t *testing.T) {
	gen := &fakeGenerator{
		result:  processedResult(models.ToneAIChoice, "Hook"),
		gate:    make(chan struct{}),
		entered: make(chan struct{}, 1),
	}
	c := newTestController(gen, 10)
	c.Ingest(stubs(1, 1))
	id := c.Inbox()[0].ID

	done := make(chan error, 1)
	go func() {
		_, err := c.Generate(context.Background(), id, models.ToneAIChoice)
		done <- err
	}()
	<-gen.entered

	c.DeleteArticle(id)
	close(gen.gate)

	if err := <-done; !errors.Is(err, ErrStaleGeneration) {
		t.Errorf("err = %v, want ErrStaleGeneration", err)
	}
	if len(c.Inbox()) != 0 {
		t.Error("deleted article resurrected by late response")
	}
}

func TestGenerateUnknownArticle(t *testing.T) {
	c := newTestController(&fakeGenerator{}, 10)
	if _, err := c.Generate(context.Background(), "missing", models.ToneAIChoice); !errors.Is(err, ErrArticleNotFound) {
		t.Errorf("err = %v, want ErrArticleNotFound", err)
	}
}

func TestArchiveArticle(t *testing.T) {
	c := newTestController(nil, 10)
	c.Ingest(stubs(1, 2))
	first := c.Inbox()[1]

	if err := c.ArchiveArticle(first.ID); err != nil {
		t.Fatalf("ArchiveArticle: %v", err)
	}
	if len(c.Inbox()) != 1 {
		t.Errorf("inbox size = %d, want 1", len(c.Inbox()))
	}
	archive := c.Archive()
	if len(archive) != 1 || archive[0].ID != first.ID {
		t.Errorf("archive = %v, want moved article at head", archive)
	}

	// Archiving from the archive is rejected
	if err := c.ArchiveArticle(first.ID); !errors.Is(err, ErrNotInInbox) {
		t.Errorf("re-archive err = %v, want ErrNotInInbox", err)
	}
}

func TestDeleteArticleIdempotent(t *testing.T) {
	c := newTestController(nil, 10)
	c.Ingest(stubs(1, 1))
	id := c.Inbox()[0].ID

	c.DeleteArticle(id)
	c.DeleteArticle(id)
	c.DeleteArticle("never-existed")

	if len(c.Inbox()) != 0 || len(c.Archive()) != 0 {
		t.Error("collections not empty after delete")
	}
}

func TestBulkArchivePreservesOrder(t *testing.T) {
	c := newTestController(nil, 10)
	c.Ingest(stubs(1, 4))
	inbox := c.Inbox()

	moved := c.BulkArchive([]string{inbox[1].ID, inbox[3].ID, "unknown"})
	if moved != 2 {
		t.Fatalf("moved = %d, want 2", moved)
	}

	archive := c.Archive()
	if archive[0].ID != inbox[1].ID || archive[1].ID != inbox[3].ID {
		t.Errorf("archive order = [%s, %s], want inbox order preserved", archive[0].Title, archive[1].Title)
	}
	if len(c.Inbox()) != 2 {
		t.Errorf("inbox size = %d, want 2", len(c.Inbox()))
	}
}

func TestBulkDeleteSpansCollections(t *testing.T) {
	c := newTestController(nil, 10)
	c.Ingest(stubs(1, 3))
	inbox := c.Inbox()
	c.ArchiveArticle(inbox[2].ID)

	removed := c.BulkDelete([]string{inbox[0].ID, inbox[2].ID})
	if removed != 2 {
		t.Fatalf("removed = %d, want 2", removed)
	}
	if len(c.Inbox()) != 1 || len(c.Archive()) != 0 {
		t.Errorf("inbox=%d archive=%d, want 1 and 0", len(c.Inbox()), len(c.Archive()))
	}
}

func TestClearAll(t *testing.T) {
	c := newTestController(nil, 10)
	c.Ingest(stubs(1, 3))
	c.ArchiveArticle(c.Inbox()[0].ID)

	c.ClearAll(ScopeInbox)
	if len(c.Inbox()) != 0 {
		t.Error("inbox not cleared")
	}
	if len(c.Archive()) != 1 {
		t.Error("archive touched by inbox clear")
	}

	c.ClearAll(ScopeArchive)
	if len(c.Archive()) != 0 {
		t.Error("archive not cleared")
	}
}

func TestLoadResetsStuckProcessing(t *testing.T) {
	c := newTestController(nil, 10)
	c.Load([]*models.Article{
		{ID: "a", Link: "https://example.com/a", ProcessingStatus: models.StatusProcessing},
		{ID: "b", Link: "https://example.com/b", ProcessingStatus: models.StatusCompleted},
	}, nil)

	inbox := c.Inbox()
	if inbox[0].ProcessingStatus != models.StatusIdle {
		t.Errorf("status = %s, want stuck PROCESSING reset to IDLE", inbox[0].ProcessingStatus)
	}
	if inbox[1].ProcessingStatus != models.StatusCompleted {
		t.Errorf("status = %s, want COMPLETED untouched", inbox[1].ProcessingStatus)
	}
}

func TestOnChangeFires(t *testing.T) {
	c := newTestController(nil, 10)
	fired := 0
	c.OnChange(func() { fired++ })

	c.Ingest(stubs(1, 1))
	if fired != 1 {
		t.Errorf("fired = %d after ingest, want 1", fired)
	}

	// Duplicate ingest mutates nothing and stays silent
	c.Ingest(stubs(1, 1))
	if fired != 1 {
		t.Errorf("fired = %d after no-op ingest, want 1", fired)
	}
}
