package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	SessionCookieName = "jobs_tracker_session"
	sessionTTL        = 30 * 24 * time.Hour
	sessionIssuer     = "jobs-tracker/session"
)

var ErrInvalidSession = errors.New("invalid session")

type sessionClaims struct {
	SecondarySession
	jwt.RegisteredClaims
}

// SessionCodec signs secondary sessions into the cookie value and back.
type SessionCodec struct {
	secret []byte
	secure bool
	now    func() time.Time
}

func NewSessionCodec(secret string, secure bool) *SessionCodec {
	return &SessionCodec{secret: []byte(secret), secure: secure, now: time.Now}
}

func (c *SessionCodec) Encode(s SecondarySession) (string, error) {
	now := c.now()
	claims := sessionClaims{
		SecondarySession: s,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionIssuer,
			Subject:   s.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session: %w", err)
	}
	return signed, nil
}

func (c *SessionCodec) Decode(value string) (*SecondarySession, error) {
	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(value, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	if claims.Email == "" || claims.Provider == "" {
		return nil, fmt.Errorf("%w: missing identity", ErrInvalidSession)
	}
	return &claims.SecondarySession, nil
}

// Cookie wraps an encoded session for the response.
func (c *SessionCodec) Cookie(value string) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (c *SessionCodec) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
