package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func newGoogleStub(t *testing.T) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/token":
			_ = r.ParseForm()
			if r.Form.Get("code") != "good-code" {
				w.WriteHeader(http.StatusBadRequest)
				fmt.Fprint(w, `{"error":"invalid_grant"}`)
				return
			}
			fmt.Fprint(w, `{"access_token":"access-123","token_type":"Bearer","expires_in":3600}`)
		case strings.HasSuffix(r.URL.Path, "/userinfo"):
			assert.Equal(t, "Bearer access-123", r.Header.Get("Authorization"))
			fmt.Fprint(w, `{"id":"42","email":"jane@example.com","name":"Jane Doe","verified_email":true}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func newTestGoogleOAuth(serverURL string) *GoogleOAuth {
	g := NewGoogleOAuth("client-id", "client-secret", "http://localhost:8080/api/auth/google/callback", "state-secret")
	g.Config.Endpoint = oauth2.Endpoint{
		AuthURL:  serverURL + "/auth",
		TokenURL: serverURL + "/token",
	}
	g.userinfoEndpoint = serverURL + "/"
	return g
}

func stateFrom(t *testing.T, loginURL string) string {
	t.Helper()
	u, err := url.Parse(loginURL)
	require.NoError(t, err)
	return u.Query().Get("state")
}

func TestGoogleOAuthLoginURL(t *testing.T) {
	g := newTestGoogleOAuth("https://accounts.example.com")

	loginURL, err := g.LoginURL("/dashboard/stats")
	require.NoError(t, err)

	u, err := url.Parse(loginURL)
	require.NoError(t, err)
	assert.Equal(t, "client-id", u.Query().Get("client_id"))
	assert.Equal(t, "http://localhost:8080/api/auth/google/callback", u.Query().Get("redirect_uri"))
	assert.NotEmpty(t, u.Query().Get("state"))
}

func TestGoogleOAuthExchange(t *testing.T) {
	server := newGoogleStub(t)
	defer server.Close()
	g := newTestGoogleOAuth(server.URL)

	loginURL, err := g.LoginURL("/dashboard/stats")
	require.NoError(t, err)

	session, callback, err := g.Exchange(context.Background(), "good-code", stateFrom(t, loginURL))
	require.NoError(t, err)
	assert.Equal(t, "/dashboard/stats", callback)
	assert.Equal(t, GoogleProvider, session.Provider)
	assert.Equal(t, "jane@example.com", session.Email)
	assert.Equal(t, "Jane Doe", session.Name)
}

func TestGoogleOAuthExchangeRejectsForgedState(t *testing.T) {
	server := newGoogleStub(t)
	defer server.Close()
	g := newTestGoogleOAuth(server.URL)

	forged := newTestGoogleOAuth(server.URL)
	forged.secret = []byte("attacker")
	loginURL, err := forged.LoginURL("https://evil.example.com")
	require.NoError(t, err)

	_, _, err = g.Exchange(context.Background(), "good-code", stateFrom(t, loginURL))
	assert.True(t, errors.Is(err, ErrInvalidState))
}

func TestGoogleOAuthExchangeBadCode(t *testing.T) {
	server := newGoogleStub(t)
	defer server.Close()
	g := newTestGoogleOAuth(server.URL)

	loginURL, err := g.LoginURL("")
	require.NoError(t, err)

	_, _, err = g.Exchange(context.Background(), "bad-code", stateFrom(t, loginURL))
	assert.Error(t, err)
}
