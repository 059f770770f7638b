package share

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/oauth2"

	"github.com/pundit-agent/internal/config"
	"github.com/pundit-agent/internal/models"
)

// Platform names a share target
type Platform string

const (
	PlatformLinkedIn Platform = "linkedin"
	PlatformTwitter  Platform = "twitter"
)

// PostText composes the full shareable text for one platform variant,
// including the source trailer and hashtags
func PostText(posts *models.PlatformPosts, platform Platform, articleURL string) string {
	if posts == nil {
		return ""
	}
	switch platform {
	case PlatformTwitter:
		return fmt.Sprintf("%s\n\nSource: %s\n\n%s",
			posts.ShortForm.Content, articleURL, strings.Join(posts.ShortForm.Hashtags, " "))
	default:
		return fmt.Sprintf("%s\n\n%s\n\n%s\n\nSource: %s\n\n%s",
			posts.LinkedIn.Hook, posts.LinkedIn.Body, posts.LinkedIn.Kicker,
			articleURL, strings.Join(posts.LinkedIn.Hashtags, " "))
	}
}

// LinkedInIntentURL opens the LinkedIn feed with the share box pre-filled.
// The most reliable non-API sharing path.
func LinkedInIntentURL(text string) string {
	return "https://www.linkedin.com/feed/?shareActive=true&text=" + url.QueryEscape(text)
}

// LinkedInLegacyShareURL shares only the article URL, without a pre-filled body
func LinkedInLegacyShareURL(articleURL string) string {
	return "https://www.linkedin.com/sharing/share-offsite/?url=" + url.QueryEscape(articleURL)
}

// TweetIntentURL opens the Twitter/X composer pre-filled with the draft
func TweetIntentURL(text string) string {
	return "https://twitter.com/intent/tweet?text=" + url.QueryEscape(text)
}

// linkedinEndpoint is the LinkedIn OAuth2 endpoint for native posting
var linkedinEndpoint = oauth2.Endpoint{
	AuthURL:  "https://www.linkedin.com/oauth/v2/authorization",
	TokenURL: "https://www.linkedin.com/oauth/v2/accessToken",
}

// Configured reports whether native posting credentials are present
func Configured(cfg config.LinkedInConfig) bool {
	return cfg.ClientID != "" && cfg.ClientSecret != ""
}

// OAuthConfig builds the oauth2 configuration for the optional native
// posting flow. Callers must check Configured first.
func OAuthConfig(cfg config.LinkedInConfig) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURI,
		Scopes:       cfg.Scopes,
		Endpoint:     linkedinEndpoint,
	}
}

// AuthURL returns the authorization URL to start the native-posting flow
func AuthURL(cfg config.LinkedInConfig, state string) string {
	return OAuthConfig(cfg).AuthCodeURL(state, oauth2.AccessTypeOffline)
}
