// Package authdiscord holds the Discord OAuth endpoint configuration consumed
// by the presentation layer's login flow.
package authdiscord

import (
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

// ProviderName tags users created from Discord profiles.
const ProviderName = "discord"

// Scopes requested during login: enough to read the profile, nothing more.
var Scopes = []string{"identify"}

// NewOAuthConfig builds the oauth2 config for the Discord authorization code
// flow.
func NewOAuthConfig(clientID, clientSecret, redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes:       Scopes,
		Endpoint:     endpoints.Discord,
	}
}
