package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

const (
	GoogleProvider = "google"
	stateTTL       = 10 * time.Minute
	stateIssuer    = "jobs-tracker/oauth-state"
)

var ErrInvalidState = errors.New("invalid oauth state")

type stateClaims struct {
	CallbackURL string `json:"cb,omitempty"`
	jwt.RegisteredClaims
}

// GoogleOAuth runs the authorization code flow and turns the Google account
// into a secondary session.
type GoogleOAuth struct {
	Config *oauth2.Config
	secret []byte
	now    func() time.Time

	// userinfoEndpoint overrides the userinfo API base, for tests.
	userinfoEndpoint string
}

func NewGoogleOAuth(clientID, clientSecret, redirectURL, stateSecret string) *GoogleOAuth {
	return &GoogleOAuth{
		Config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{oauth2api.UserinfoEmailScope, oauth2api.UserinfoProfileScope},
			Endpoint:     google.Endpoint,
		},
		secret: []byte(stateSecret),
		now:    time.Now,
	}
}

// LoginURL returns the consent page address. The state parameter is a signed,
// short-lived token carrying the post-login callback URL.
func (g *GoogleOAuth) LoginURL(callbackURL string) (string, error) {
	now := g.now()
	claims := stateClaims{
		CallbackURL: callbackURL,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    stateIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(stateTTL)),
		},
	}
	state, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign oauth state: %w", err)
	}
	return g.Config.AuthCodeURL(state, oauth2.AccessTypeOnline), nil
}

// Exchange validates state, trades the code for a token and reads the
// account's email and name. It returns the session and the callback URL that
// was requested at login.
func (g *GoogleOAuth) Exchange(ctx context.Context, code, state string) (*SecondarySession, string, error) {
	claims := &stateClaims{}
	_, err := jwt.ParseWithClaims(state, claims, func(t *jwt.Token) (interface{}, error) {
		return g.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(stateIssuer),
		jwt.WithTimeFunc(g.now),
	)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	tok, err := g.Config.Exchange(ctx, code)
	if err != nil {
		return nil, "", fmt.Errorf("unable to retrieve token from google: %w", err)
	}

	opts := []option.ClientOption{option.WithTokenSource(g.Config.TokenSource(ctx, tok))}
	if g.userinfoEndpoint != "" {
		opts = append(opts, option.WithEndpoint(g.userinfoEndpoint))
	}
	svc, err := oauth2api.NewService(ctx, opts...)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create userinfo client: %w", err)
	}
	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch google userinfo: %w", err)
	}
	if info.Email == "" {
		return nil, "", errors.New("google account has no email")
	}

	return &SecondarySession{Provider: GoogleProvider, Email: info.Email, Name: info.Name}, claims.CallbackURL, nil
}
