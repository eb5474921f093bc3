package oauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/beyond-ems/ems-attendance-go/internal/domain/auth"
	"golang.org/x/oauth2"
)

const DiscordAPIBaseURL = "https://discord.com/api"

// DiscordEndpoint is Discord's OAuth2 authorization-code endpoint.
var DiscordEndpoint = oauth2.Endpoint{
	AuthURL:   "https://discord.com/api/oauth2/authorize",
	TokenURL:  "https://discord.com/api/oauth2/token",
	AuthStyle: oauth2.AuthStyleInParams,
}

type DiscordService interface {
	// GenerateState generates a random state string for OAuth2 flows.
	GenerateState() (string, error)
	// RedirectURL generates the OAuth2 redirect URL with a state.
	RedirectURL(state string) string
	// VerifyToken exchanges the code for an OAuth2 token.
	VerifyToken(ctx context.Context, code string) (*oauth2.Token, error)
	// VerifyUser fetches the Discord user behind the token.
	VerifyUser(ctx context.Context, token *oauth2.Token) (auth.DiscordIdentity, error)
}

type DiscordServiceImpl struct {
	config     *oauth2.Config
	apiBaseURL string
}

func NewDiscordService(clientID string, clientSecret string, redirectURL string, scopes []string) DiscordService {
	return NewDiscordServiceWithEndpoint(clientID, clientSecret, redirectURL, scopes, DiscordEndpoint, DiscordAPIBaseURL)
}

// NewDiscordServiceWithEndpoint points the provider at another OAuth2 and API host.
func NewDiscordServiceWithEndpoint(clientID string, clientSecret string, redirectURL string, scopes []string, endpoint oauth2.Endpoint, apiBaseURL string) DiscordService {
	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes:       scopes,
		Endpoint:     endpoint,
	}
	return &DiscordServiceImpl{config: config, apiBaseURL: apiBaseURL}
}

// GenerateState generates a random state string for OAuth2 flows.
func (d *DiscordServiceImpl) GenerateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate oauth state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func (d *DiscordServiceImpl) RedirectURL(state string) string {
	return d.config.AuthCodeURL(state, oauth2.SetAuthURLParam("prompt", "none"))
}

func (d *DiscordServiceImpl) VerifyToken(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := d.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange discord code: %w", err)
	}
	return token, nil
}

func (d *DiscordServiceImpl) VerifyUser(ctx context.Context, token *oauth2.Token) (auth.DiscordIdentity, error) {
	var identity auth.DiscordIdentity

	client := d.config.Client(ctx, token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.apiBaseURL+"/users/@me", nil)
	if err != nil {
		return auth.DiscordIdentity{}, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return auth.DiscordIdentity{}, fmt.Errorf("fetch discord user: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return auth.DiscordIdentity{}, fmt.Errorf("fetch discord user: status %d: %s", resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return auth.DiscordIdentity{}, fmt.Errorf("decode discord user: %w", err)
	}

	if identity.ID == "" {
		return auth.DiscordIdentity{}, fmt.Errorf("discord user has no id")
	}

	return identity, nil
}
