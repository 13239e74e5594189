package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/jobs-tracker/internal/auth"
	"github.com/justsurfingit/jobs-tracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct{}

func (stubProvider) Verify(ctx context.Context, token string) (*auth.PrimarySession, error) {
	if token == "good" {
		return &auth.PrimarySession{UserID: "primary-user", Email: "p@example.com"}, nil
	}
	return nil, errors.New("invalid or expired token")
}

type countingShadows struct{ calls int }

func (s *countingShadows) UpsertShadow(ctx context.Context, u *models.User) error {
	s.calls++
	return nil
}

func newTestRouter(shadows *countingShadows, codec *auth.SessionCodec) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Authenticate(stubProvider{}, codec, auth.NewResolver(shadows)))
	r.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": UserID(c), "primary": IsPrimary(c)})
	})
	return r
}

func TestAuthenticateBearer(t *testing.T) {
	shadows := &countingShadows{}
	r := newTestRouter(shadows, auth.NewSessionCodec("s", false))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer good")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":"primary-user","primary":true}`, w.Body.String())
	assert.Zero(t, shadows.calls)
}

func TestAuthenticateInvalidBearer(t *testing.T) {
	r := newTestRouter(&countingShadows{}, auth.NewSessionCodec("s", false))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer bad")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateSessionCookie(t *testing.T) {
	shadows := &countingShadows{}
	codec := auth.NewSessionCodec("s", false)
	r := newTestRouter(shadows, codec)

	value, err := codec.Encode(auth.SecondarySession{Provider: "google", Email: "jane@example.com"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(codec.Cookie(value))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	want := `{"user_id":"` + auth.DeriveUserID("google", "jane@example.com") + `","primary":false}`
	assert.JSONEq(t, want, w.Body.String())
	assert.Equal(t, 1, shadows.calls)
}

func TestAuthenticateNoSession(t *testing.T) {
	shadows := &countingShadows{}
	codec := auth.NewSessionCodec("s", false)
	r := newTestRouter(shadows, codec)

	for _, cookie := range []*http.Cookie{nil, codec.Cookie("garbage")} {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		if cookie != nil {
			req.AddCookie(cookie)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}
	assert.Zero(t, shadows.calls, "unauthenticated requests never reach storage")
}
