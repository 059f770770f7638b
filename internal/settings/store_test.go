package settings

import (
	"errors"
	"reflect"
	"testing"

	"github.com/pundit-agent/internal/models"
)

func TestAddTermRejectsDuplicates(t *testing.T) {
	s := New()

	if err := s.AddKeyword("AI"); err != nil {
		t.Fatalf("AddKeyword: %v", err)
	}
	if err := s.AddKeyword("AI"); !errors.Is(err, ErrDuplicateTerm) {
		t.Errorf("duplicate err = %v, want ErrDuplicateTerm", err)
	}

	// Matching is case-sensitive exact, so a different casing is a new term
	if err := s.AddKeyword("ai"); err != nil {
		t.Errorf("case-variant AddKeyword: %v", err)
	}
}

func TestAddTermRejectsBlank(t *testing.T) {
	s := New()
	if err := s.AddKeyword("   "); err == nil {
		t.Error("blank keyword accepted")
	}
	if err := s.AddCompany(""); err == nil {
		t.Error("empty company accepted")
	}
}

func TestTermsKeywordsThenCompanies(t *testing.T) {
	s := New()
	s.AddKeyword("LLM")
	s.AddCompany("OpenAI")
	s.AddKeyword("regulation")

	want := []string{"LLM", "regulation", "OpenAI"}
	if got := s.Terms(); !reflect.DeepEqual(got, want) {
		t.Errorf("Terms() = %v, want %v", got, want)
	}

	if !s.IsCompany("OpenAI") {
		t.Error("OpenAI not recognized as company")
	}
	if s.IsCompany("LLM") {
		t.Error("keyword misclassified as company")
	}
}

func TestRemoveTermNoOpWhenAbsent(t *testing.T) {
	s := New()
	s.AddKeyword("AI")
	s.RemoveKeyword("missing")
	s.RemoveKeyword("AI")

	if got := s.Keywords(); len(got) != 0 {
		t.Errorf("keywords = %v, want empty", got)
	}
}

func TestAddSourceDefaultsSchemeAndName(t *testing.T) {
	s := New()

	src, err := s.AddSource("www.techcrunch.com/feed")
	if err != nil {
		t.Fatalf("AddSource: %v", err)
	}
	if src.URL != "https://www.techcrunch.com/feed" {
		t.Errorf("URL = %s, want https scheme added", src.URL)
	}
	if src.Name != "techcrunch.com" {
		t.Errorf("Name = %s, want hostname without www", src.Name)
	}
	if !src.Active {
		t.Error("new source not active")
	}
	if src.ID == "" {
		t.Error("new source missing ID")
	}
}

func TestAddSourceRejectsInvalid(t *testing.T) {
	s := New()
	for _, raw := range []string{"", "   ", "https://"} {
		if _, err := s.AddSource(raw); !errors.Is(err, ErrInvalidURL) {
			t.Errorf("AddSource(%q) err = %v, want ErrInvalidURL", raw, err)
		}
	}
	if got := s.Sources(); len(got) != 0 {
		t.Errorf("sources = %v, want no partial state after rejection", got)
	}
}

func TestAddNamedSource(t *testing.T) {
	s := New()
	src, err := s.AddNamedSource("TechCrunch", "https://techcrunch.com/feed")
	if err != nil {
		t.Fatalf("AddNamedSource: %v", err)
	}
	if src.Name != "TechCrunch" {
		t.Errorf("Name = %s, want explicit name kept", src.Name)
	}
	if s.Sources()[0].Name != "TechCrunch" {
		t.Error("stored source missing explicit name")
	}
}

func TestToggleSource(t *testing.T) {
	s := New()
	src, _ := s.AddSource("https://example.com/rss")

	if err := s.ToggleSource(src.ID); err != nil {
		t.Fatalf("ToggleSource: %v", err)
	}
	if len(s.ActiveSources()) != 0 {
		t.Error("source still active after toggle")
	}

	if err := s.ToggleSource("missing"); !errors.Is(err, ErrSourceNotFound) {
		t.Errorf("unknown toggle err = %v, want ErrSourceNotFound", err)
	}
}

func TestLoadReplacesState(t *testing.T) {
	s := New()
	s.AddKeyword("stale")

	s.Load(&models.Snapshot{
		Keywords:  []string{"AI"},
		Companies: []string{"OpenAI"},
		Sources:   []models.FeedSource{{ID: "s1", Name: "Feed", URL: "https://example.com/rss", Active: true}},
	})

	if got := s.Keywords(); !reflect.DeepEqual(got, []string{"AI"}) {
		t.Errorf("keywords = %v after load", got)
	}
	if len(s.ActiveSources()) != 1 {
		t.Error("loaded source not active")
	}
}

func TestOnChangeFiresOnMutations(t *testing.T) {
	s := New()
	fired := 0
	s.OnChange(func() { fired++ })

	s.AddKeyword("AI")
	s.AddCompany("OpenAI")
	s.AddSource("https://example.com/rss")

	if fired != 3 {
		t.Errorf("fired = %d, want 3", fired)
	}

	// Rejected mutations stay silent
	s.AddKeyword("AI")
	if fired != 3 {
		t.Errorf("fired = %d after rejected add, want 3", fired)
	}
}
