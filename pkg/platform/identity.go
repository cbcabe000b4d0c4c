package platform

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// OAuthSpec is the inbound OAuth client an agent endpoint accepts.
type OAuthSpec struct {
	ClientID     string   `json:"client_id"`
	ClientSecret string   `json:"client_secret,omitempty"`
	AuthURL      string   `json:"auth_url"`
	TokenURL     string   `json:"token_url"`
	RedirectURL  string   `json:"redirect_url"`
	Scopes       []string `json:"scopes"`
}

// OAuthSetup is what the operator needs to finish the inbound flow.
type OAuthSetup struct {
	ClientID   string `json:"client_id"`
	ConsentURL string `json:"consent_url"`
	State      string `json:"state"`
}

// Consent records an outbound delegation to a third-party service.
type Consent struct {
	Service string   `json:"service"`
	Scopes  []string `json:"scopes"`
	Granted bool     `json:"granted"`
}

// Identity configures how agents authenticate and what they may access.
type Identity struct{ c *Client }

// ConfigureInboundOAuth registers an OAuth client and returns the consent
// URL a user would visit to authorize it.
func (i *Identity) ConfigureInboundOAuth(ctx context.Context, spec OAuthSpec) (Response[OAuthSetup], error) {
	if spec.ClientID == "" {
		return Response[OAuthSetup]{}, invalid("client id is required")
	}
	if !strings.HasPrefix(spec.AuthURL, "https://") && !strings.HasPrefix(spec.AuthURL, "http://") {
		return Response[OAuthSetup]{}, invalid("auth url must be absolute, got %q", spec.AuthURL)
	}

	conf := &oauth2.Config{
		ClientID:     spec.ClientID,
		ClientSecret: spec.ClientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:  spec.AuthURL,
			TokenURL: spec.TokenURL,
		},
		RedirectURL: spec.RedirectURL,
		Scopes:      spec.Scopes,
	}

	return invoke(ctx, i.c, "identity.configure_inbound_oauth", func() (OAuthSetup, error) {
		state := uuid.NewString()
		return OAuthSetup{
			ClientID:   spec.ClientID,
			ConsentURL: conf.AuthCodeURL(state, oauth2.AccessTypeOffline),
			State:      state,
		}, nil
	})
}

// ConfigureOutboundConsent grants agents scopes on an external service.
func (i *Identity) ConfigureOutboundConsent(ctx context.Context, service string, scopes []string) (Response[Consent], error) {
	if strings.TrimSpace(service) == "" {
		return Response[Consent]{}, invalid("service is required")
	}
	return invoke(ctx, i.c, "identity.configure_outbound_consent", func() (Consent, error) {
		return Consent{Service: service, Scopes: nonNil(scopes), Granted: true}, nil
	})
}
