package settings

import (
	"errors"
	"net/url"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/pundit-agent/internal/models"
)

var (
	// ErrDuplicateTerm is returned when a keyword or company already exists
	ErrDuplicateTerm = errors.New("term already tracked")
	// ErrInvalidURL is returned when a source URL fails validation
	ErrInvalidURL = errors.New("invalid source URL")
	// ErrSourceNotFound is returned when a source ID is unknown
	ErrSourceNotFound = errors.New("source not found")
)

// Store owns the user's tracked keyword list, tracked company list and feed
// source list. Term sets are ordered, insertion order preserved, uniqueness
// enforced on insert with case-sensitive exact matching.
type Store struct {
	mu        sync.RWMutex
	keywords  []string
	companies []string
	sources   []models.FeedSource
	onChange  func()
}

// New creates an empty settings store
func New() *Store {
	return &Store{}
}

// OnChange registers a callback invoked after every successful mutation.
// Used by the persistence bridge to schedule debounced writes.
func (s *Store) OnChange(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

func (s *Store) notify() {
	s.mu.RLock()
	fn := s.onChange
	s.mu.RUnlock()
	if fn != nil {
		fn()
	}
}

// Load replaces the store contents from a persisted snapshot. Does not fire
// the change callback.
func (s *Store) Load(snap *models.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keywords = append([]string(nil), snap.Keywords...)
	s.companies = append([]string(nil), snap.Companies...)
	s.sources = append([]models.FeedSource(nil), snap.Sources...)
}

// Keywords returns the tracked keywords in insertion order
func (s *Store) Keywords() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.keywords...)
}

// Companies returns the tracked companies in insertion order
func (s *Store) Companies() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.companies...)
}

// Terms returns keywords followed by companies, the full tracked-term set
// passed to discovery and generation
func (s *Store) Terms() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	terms := make([]string, 0, len(s.keywords)+len(s.companies))
	terms = append(terms, s.keywords...)
	terms = append(terms, s.companies...)
	return terms
}

// IsCompany reports whether a matched term is a tracked company
func (s *Store) IsCompany(term string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.companies {
		if c == term {
			return true
		}
	}
	return false
}

// AddKeyword appends a keyword, rejecting blanks and exact duplicates
func (s *Store) AddKeyword(kw string) error {
	if err := s.addTerm(&s.keywords, kw); err != nil {
		return err
	}
	s.notify()
	return nil
}

// RemoveKeyword deletes a keyword; no-op when absent
func (s *Store) RemoveKeyword(kw string) {
	s.removeTerm(&s.keywords, kw)
	s.notify()
}

// AddCompany appends a tracked company, rejecting blanks and exact duplicates
func (s *Store) AddCompany(c string) error {
	if err := s.addTerm(&s.companies, c); err != nil {
		return err
	}
	s.notify()
	return nil
}

// RemoveCompany deletes a tracked company; no-op when absent
func (s *Store) RemoveCompany(c string) {
	s.removeTerm(&s.companies, c)
	s.notify()
}

func (s *Store) addTerm(set *[]string, term string) error {
	term = strings.TrimSpace(term)
	if term == "" {
		return errors.New("term is empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range *set {
		if existing == term {
			return ErrDuplicateTerm
		}
	}
	*set = append(*set, term)
	return nil
}

func (s *Store) removeTerm(set *[]string, term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := (*set)[:0]
	for _, existing := range *set {
		if existing != term {
			out = append(out, existing)
		}
	}
	*set = out
}

// Sources returns all feed sources in insertion order
func (s *Store) Sources() []models.FeedSource {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.FeedSource(nil), s.sources...)
}

// ActiveSources returns only sources with the active flag set
func (s *Store) ActiveSources() []models.FeedSource {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var active []models.FeedSource
	for _, src := range s.sources {
		if src.Active {
			active = append(active, src)
		}
	}
	return active
}

// AddSource validates and appends a feed source from a raw URL. The URL is
// validated synchronously before any state mutation; a missing scheme
// defaults to https and the display name derives from the hostname.
func (s *Store) AddSource(rawURL string) (*models.FeedSource, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, ErrInvalidURL
	}
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		rawURL = "https://" + rawURL
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Hostname() == "" {
		return nil, ErrInvalidURL
	}

	src := models.FeedSource{
		ID:     uuid.NewString(),
		Name:   strings.TrimPrefix(parsed.Hostname(), "www."),
		URL:    parsed.String(),
		Active: true,
	}

	s.mu.Lock()
	s.sources = append(s.sources, src)
	s.mu.Unlock()
	s.notify()
	return &src, nil
}

// AddNamedSource appends a source with an explicit display name, used when
// seeding from onboarding suggestions
func (s *Store) AddNamedSource(name, rawURL string) (*models.FeedSource, error) {
	src, err := s.AddSource(rawURL)
	if err != nil {
		return nil, err
	}
	if name = strings.TrimSpace(name); name != "" {
		s.mu.Lock()
		for i := range s.sources {
			if s.sources[i].ID == src.ID {
				s.sources[i].Name = name
			}
		}
		s.mu.Unlock()
		src.Name = name
	}
	return src, nil
}

// ToggleSource flips the active flag of a source
func (s *Store) ToggleSource(id string) error {
	s.mu.Lock()
	for i := range s.sources {
		if s.sources[i].ID == id {
			s.sources[i].Active = !s.sources[i].Active
			s.mu.Unlock()
			s.notify()
			return nil
		}
	}
	s.mu.Unlock()
	return ErrSourceNotFound
}

// RemoveSource deletes a source; no-op when absent
func (s *Store) RemoveSource(id string) {
	s.mu.Lock()
	out := s.sources[:0]
	for _, src := range s.sources {
		if src.ID != id {
			out = append(out, src)
		}
	}
	s.sources = out
	s.mu.Unlock()
	s.notify()
}
