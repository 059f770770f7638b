package share

import (
	"strings"
	"testing"

	"github.com/pundit-agent/internal/config"
	"github.com/pundit-agent/internal/models"
)

func testPosts() *models.PlatformPosts {
	return &models.PlatformPosts{
		LinkedIn: models.LinkedInPost{
			Hook:     "The headline",
			Body:     "My take on this.",
			Kicker:   "Watch this space.",
			Hashtags: []string{"#AI", "#News"},
		},
		ShortForm: models.ShortFormPost{
			Content:  "The headline: my short take",
			Hashtags: []string{"#AI"},
		},
	}
}

func TestPostTextLinkedIn(t *testing.T) {
	got := PostText(testPosts(), PlatformLinkedIn, "https://example.com/a")

	want := "The headline\n\nMy take on this.\n\nWatch this space.\n\nSource: https://example.com/a\n\n#AI #News"
	if got != want {
		t.Errorf("PostText() = %q, want %q", got, want)
	}
}

func TestPostTextTwitter(t *testing.T) {
	got := PostText(testPosts(), PlatformTwitter, "https://example.com/a")

	want := "The headline: my short take\n\nSource: https://example.com/a\n\n#AI"
	if got != want {
		t.Errorf("PostText() = %q, want %q", got, want)
	}
}

func TestPostTextNilPosts(t *testing.T) {
	if got := PostText(nil, PlatformLinkedIn, "https://example.com"); got != "" {
		t.Errorf("PostText(nil) = %q, want empty", got)
	}
}

func TestIntentURLsEscapeText(t *testing.T) {
	text := "hello world & more"

	li := LinkedInIntentURL(text)
	if !strings.HasPrefix(li, "https://www.linkedin.com/feed/?shareActive=true&text=") {
		t.Errorf("LinkedIn URL = %s", li)
	}
	if strings.Contains(li, " ") || strings.Contains(strings.TrimPrefix(li, "https://www.linkedin.com/feed/?shareActive=true&text="), "&") {
		t.Errorf("LinkedIn URL not escaped: %s", li)
	}

	tw := TweetIntentURL(text)
	if !strings.HasPrefix(tw, "https://twitter.com/intent/tweet?text=") {
		t.Errorf("Tweet URL = %s", tw)
	}

	legacy := LinkedInLegacyShareURL("https://example.com/a?x=1")
	if !strings.Contains(legacy, "share-offsite") || strings.Contains(legacy, "?x=1") {
		t.Errorf("legacy URL = %s", legacy)
	}
}

func TestConfigured(t *testing.T) {
	if Configured(config.LinkedInConfig{}) {
		t.Error("empty credentials reported configured")
	}
	if !Configured(config.LinkedInConfig{ClientID: "id", ClientSecret: "secret"}) {
		t.Error("full credentials reported unconfigured")
	}
}

func TestAuthURL(t *testing.T) {
	cfg := config.LinkedInConfig{
		ClientID:     "id",
		ClientSecret: "secret",
		RedirectURI:  "http://localhost:8080/callback",
		Scopes:       []string{"w_member_social"},
	}

	got := AuthURL(cfg, "state-token")
	for _, want := range []string{"linkedin.com/oauth/v2/authorization", "client_id=id", "state=state-token", "w_member_social"} {
		if !strings.Contains(got, want) {
			t.Errorf("AuthURL missing %q: %s", want, got)
		}
	}
}
