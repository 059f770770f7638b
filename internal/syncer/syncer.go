package syncer

import (
	"context"
	"sync"
	"time"

	"github.com/pundit-agent/internal/models"
	"github.com/pundit-agent/internal/storage"
	"github.com/pundit-agent/pkg/logger"
)

// DefaultDebounce is the quiet period before a snapshot write
const DefaultDebounce = 3 * time.Second

const writeTimeout = 30 * time.Second

// Syncer is the persistence bridge: a trailing-edge debounced, best-effort
// mirror of the workspace to the document store. Every change restarts the
// quiet-period timer, so rapid edits collapse into a single write of the
// final snapshot. Write failures are logged and swallowed; local state
// remains the source of truth for the session.
type Syncer struct {
	repo     storage.Repository
	delay    time.Duration
	snapshot func() *models.Snapshot
	log      *logger.Logger

	mu     sync.Mutex
	userID string
	timer  *time.Timer
	wg     sync.WaitGroup
}

// New creates a syncer. snapshot is called at write time so the settled
// state, not the state at scheduling time, is what gets mirrored.
func New(repo storage.Repository, delay time.Duration, snapshot func() *models.Snapshot, log *logger.Logger) *Syncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Syncer{
		repo:     repo,
		delay:    delay,
		snapshot: snapshot,
		log:      log.WithComponent("syncer"),
	}
}

// SetUser binds the syncer to an authenticated user. An empty ID disables
// scheduling (logged-out or mid-onboarding sessions are never mirrored).
func (s *Syncer) SetUser(userID string) {
	s.mu.Lock()
	s.userID = userID
	if userID == "" && s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()
}

// Notify schedules a write after the quiet period, cancelling any
// previously scheduled write. Safe to call from any goroutine.
func (s *Syncer) Notify() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userID == "" {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, s.fire)
}

func (s *Syncer) fire() {
	s.mu.Lock()
	userID := s.userID
	s.timer = nil
	s.mu.Unlock()
	if userID == "" {
		return
	}

	s.wg.Add(1)
	defer s.wg.Done()
	s.write(userID)
}

// Flush cancels any pending timer and writes the current snapshot
// immediately. Used on shutdown and after operations the user expects to
// stick right away.
func (s *Syncer) Flush() {
	s.mu.Lock()
	userID := s.userID
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()
	if userID == "" {
		return
	}
	s.write(userID)
}

// Wait blocks until any in-flight write completes
func (s *Syncer) Wait() {
	s.wg.Wait()
}

func (s *Syncer) write(userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	snap := s.snapshot()
	if err := s.repo.WriteSnapshot(ctx, userID, snap); err != nil {
		// Data loss risk accepted: the session keeps running on local state
		s.log.Error().Err(err).Str("user_id", userID).Msg("Snapshot write failed")
		return
	}
	s.log.Debug().
		Str("user_id", userID).
		Int("inbox", len(snap.Inbox)).
		Int("archive", len(snap.Archive)).
		Msg("Snapshot written")
}
