package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pundit-agent/internal/models"
)

// extractJSON trims markdown fences and surrounding prose from a model
// response, leaving just the outermost JSON object
func extractJSON(response string) string {
	response = strings.TrimSpace(response)

	startIdx := strings.Index(response, "{")
	if startIdx == -1 {
		return response
	}
	endIdx := strings.LastIndex(response, "}")
	if endIdx == -1 || endIdx < startIdx {
		return response
	}
	return response[startIdx : endIdx+1]
}

// wireResult mirrors the strict JSON contract of the generation prompt
type wireResult struct {
	Status string `json:"status"`
	Meta   struct {
		SourceTopic   string  `json:"source_topic"`
		Sentiment     string  `json:"sentiment"`
		ViralityScore float64 `json:"virality_score"`
	} `json:"meta"`
	Posts *struct {
		LinkedIn struct {
			Hook     string   `json:"hook"`
			Body     string   `json:"body"`
			Kicker   string   `json:"kicker"`
			Hashtags []string `json:"hashtags"`
		} `json:"linkedin"`
		ShortForm struct {
			Content  string   `json:"content"`
			Hashtags []string `json:"hashtags"`
		} `json:"short_form"`
	} `json:"posts"`
}

// decodeResult maps a raw model response onto the tagged result type. SKIP
// yields a valid result with nil posts and neutral metadata rather than an
// error; malformed JSON is the only failure mode here.
func decodeResult(raw string, req models.GenerationRequest) (*models.GenerationResult, error) {
	var wire wireResult
	if err := json.Unmarshal([]byte(extractJSON(raw)), &wire); err != nil {
		return nil, fmt.Errorf("failed to parse generation response: %w", err)
	}

	if wire.Status == string(models.ResultSkip) {
		return &models.GenerationResult{
			Posts: nil,
			Meta: models.MetaData{
				SourceTopic:   "Unknown",
				Sentiment:     models.SentimentNeutral,
				ViralityScore: 0,
				Status:        models.ResultSkip,
				AppliedTone:   req.Tone,
			},
		}, nil
	}

	result := &models.GenerationResult{
		Meta: models.MetaData{
			SourceTopic:   wire.Meta.SourceTopic,
			Sentiment:     parseSentiment(wire.Meta.Sentiment),
			ViralityScore: wire.Meta.ViralityScore,
			Status:        models.ResultProcessed,
			AppliedTone:   req.Tone,
		},
	}
	if wire.Posts != nil {
		result.Posts = &models.PlatformPosts{
			LinkedIn: models.LinkedInPost{
				Hook:     wire.Posts.LinkedIn.Hook,
				Body:     wire.Posts.LinkedIn.Body,
				Kicker:   wire.Posts.LinkedIn.Kicker,
				Hashtags: wire.Posts.LinkedIn.Hashtags,
			},
			ShortForm: models.ShortFormPost{
				Content:  wire.Posts.ShortForm.Content,
				Hashtags: wire.Posts.ShortForm.Hashtags,
			},
		}
		// The live headline is authoritative over whatever the model chose
		if req.LiveHeadline != "" {
			result.Posts.LinkedIn.Hook = req.LiveHeadline
		}
	}
	return result, nil
}

func parseSentiment(s string) models.Sentiment {
	switch models.Sentiment(s) {
	case models.SentimentPositive, models.SentimentNegative, models.SentimentNeutral:
		return models.Sentiment(s)
	default:
		return models.SentimentNeutral
	}
}

// Process runs one tone-controlled generation for an article. Implements
// the lifecycle.Generator interface.
func (c *Client) Process(ctx context.Context, req models.GenerationRequest) (*models.GenerationResult, error) {
	response, err := c.CompleteWithJSON(ctx, generationSystemPrompt(req), req.Context)
	if err != nil {
		return nil, err
	}

	result, err := decodeResult(response, req)
	if err != nil {
		c.log.Error().
			Err(err).
			Str("response", response).
			Msg("Failed to parse generation response")
		return nil, err
	}

	c.log.Info().
		Str("status", string(result.Meta.Status)).
		Str("tone", string(result.Meta.AppliedTone)).
		Float64("virality", result.Meta.ViralityScore).
		Msg("Generation run finished")
	return result, nil
}

// SuggestedSource is one onboarding feed suggestion
type SuggestedSource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// OnboardingData seeds the settings store for a new user
type OnboardingData struct {
	SuggestedSources   []SuggestedSource `json:"suggested_sources"`
	SuggestedKeywords  []string          `json:"suggested_keywords"`
	SuggestedCompanies []string          `json:"suggested_companies"`
	Analysis           string            `json:"analysis"`
}

// AnalyzeProfession expands a profession description into suggested sources,
// keywords and companies for the onboarding flow
func (c *Client) AnalyzeProfession(ctx context.Context, profession string) (*OnboardingData, error) {
	userPrompt := fmt.Sprintf(onboardingUserPrompt, profession)

	response, err := c.CompleteWithJSON(ctx, onboardingSystemPrompt, userPrompt)
	if err != nil {
		return nil, err
	}

	var data OnboardingData
	if err := json.Unmarshal([]byte(extractJSON(response)), &data); err != nil {
		c.log.Error().
			Err(err).
			Str("response", response).
			Msg("Failed to parse onboarding response")
		return nil, fmt.Errorf("failed to parse onboarding response: %w", err)
	}

	return &data, nil
}
