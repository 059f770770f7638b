package models

import (
	"fmt"
	"time"
)

// ProcessingStatus represents the generation state of an article
type ProcessingStatus string

const (
	StatusIdle       ProcessingStatus = "IDLE"
	StatusProcessing ProcessingStatus = "PROCESSING"
	StatusCompleted  ProcessingStatus = "COMPLETED"
	StatusError      ProcessingStatus = "ERROR"
)

// Tone is the editorial voice requested for a generation run
type Tone string

const (
	ToneAuthoritative Tone = "Authoritative"
	ToneProvocative   Tone = "Provocative"
	ToneControversial Tone = "Controversial"
	ToneAIChoice      Tone = "AI Choice" // let the model pick the angle
)

// Tones lists every selectable tone in display order
func Tones() []Tone {
	return []Tone{ToneAuthoritative, ToneProvocative, ToneControversial, ToneAIChoice}
}

// ParseTone validates a tone string from user input
func ParseTone(s string) (Tone, error) {
	for _, t := range Tones() {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown tone %q (valid: Authoritative, Provocative, Controversial, AI Choice)", s)
}

// Sentiment classifies the article's stance as judged by the model
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNegative Sentiment = "Negative"
	SentimentNeutral  Sentiment = "Neutral"
)

// ResultStatus tags a generation result as usable or intentionally skipped
type ResultStatus string

const (
	ResultProcessed ResultStatus = "PROCESSED"
	ResultSkip      ResultStatus = "SKIP"
)

// LinkedInPost is the long-form draft variant
type LinkedInPost struct {
	Hook     string   `json:"hook"`
	Body     string   `json:"body"`
	Kicker   string   `json:"kicker"`
	Hashtags []string `json:"hashtags"`
}

// ShortFormPost is the Twitter/X draft variant
type ShortFormPost struct {
	Content  string   `json:"content"`
	Hashtags []string `json:"hashtags"`
}

// PlatformPosts bundles the per-platform drafts of one generation run
type PlatformPosts struct {
	LinkedIn  LinkedInPost  `json:"linkedin"`
	ShortForm ShortFormPost `json:"short_form"`
}

// MetaData describes the model's analysis of the article
type MetaData struct {
	SourceTopic   string       `json:"source_topic"`
	Sentiment     Sentiment    `json:"sentiment"`
	ViralityScore float64      `json:"virality_score"` // 1-10
	Status        ResultStatus `json:"status"`
	AppliedTone   Tone         `json:"applied_tone"`
}

// GenerationResult is the outcome of one generation run. Posts is nil when
// the result was tagged SKIP; SKIP is a terminal outcome, not an error.
type GenerationResult struct {
	Posts *PlatformPosts `json:"posts,omitempty"`
	Meta  MetaData       `json:"meta"`
}

// Skipped reports whether the run declined to produce drafts
func (r *GenerationResult) Skipped() bool {
	return r.Meta.Status == ResultSkip
}

// Stub is a discovery-phase candidate article, pre-deduplication
type Stub struct {
	Title        string    `json:"title"`
	Summary      string    `json:"summary"`
	Link         string    `json:"link"`
	SourceName   string    `json:"source_name"`
	MatchedTerms []string  `json:"matched_terms"`
	PublishedAt  time.Time `json:"published_at"`
}

// Article is a tracked article in the Inbox or Archive. The link acts as the
// de-duplication key across both collections; the ID is unique within their
// union and never present in both at once.
type Article struct {
	ID               string            `json:"id"`
	Title            string            `json:"title"`
	Summary          string            `json:"summary"`
	Link             string            `json:"link"`
	SourceName       string            `json:"source_name"`
	PublishedAt      time.Time         `json:"published_at"`
	MatchedTerms     []string          `json:"matched_terms"`
	ProcessingStatus ProcessingStatus  `json:"processing_status"`
	Result           *GenerationResult `json:"result,omitempty"`
}

// GenerationRequest is the payload handed to the content generation client
type GenerationRequest struct {
	Context      string   // free-text article context (title, summary, source)
	Terms        []string // ordered tracked terms, keywords then companies
	ArticleURL   string   // canonical link, used for grounding
	Tone         Tone
	LiveHeadline string // non-empty when the live page headline was fetched
}
