package auth

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	googleoauth "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

// GoogleProvider runs the authorization-code flow against Google and reads
// the signed-in account's userinfo.
type GoogleProvider struct {
	config *oauth2.Config

	// endpoint overrides the userinfo API base URL in tests.
	endpoint string
}

func NewGoogleProvider(clientID, clientSecret, redirectURL string) *GoogleProvider {
	return &GoogleProvider{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     google.Endpoint,
			Scopes: []string{
				googleoauth.OpenIDScope,
				googleoauth.UserinfoEmailScope,
				googleoauth.UserinfoProfileScope,
			},
		},
	}
}

// AuthURL returns the consent page link carrying state.
func (gp *GoogleProvider) AuthURL(state string) string {
	return gp.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange trades the callback code for a token and resolves the identity.
func (gp *GoogleProvider) Exchange(ctx context.Context, code string) (GoogleIdentity, error) {
	tok, err := gp.config.Exchange(ctx, code)
	if err != nil {
		return GoogleIdentity{}, fmt.Errorf("unable to retrieve token from web: %w", err)
	}

	opts := []option.ClientOption{option.WithHTTPClient(gp.config.Client(ctx, tok))}
	if gp.endpoint != "" {
		opts = append(opts, option.WithEndpoint(gp.endpoint))
	}

	service, err := googleoauth.NewService(ctx, opts...)
	if err != nil {
		return GoogleIdentity{}, fmt.Errorf("failed to create oauth2 service: %w", err)
	}

	info, err := service.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return GoogleIdentity{}, fmt.Errorf("failed to fetch userinfo: %w", err)
	}
	if info.VerifiedEmail != nil && !*info.VerifiedEmail {
		return GoogleIdentity{}, fmt.Errorf("google account email %s is not verified", info.Email)
	}

	return GoogleIdentity{
		Subject: info.Id,
		Email:   info.Email,
		Name:    info.Name,
		Picture: info.Picture,
	}, nil
}
