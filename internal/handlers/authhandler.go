package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/jobs-tracker/internal/auth"
	"github.com/justsurfingit/jobs-tracker/internal/dtos"
)

type AuthHandler struct {
	Local    *auth.LocalProvider
	Google   *auth.GoogleOAuth
	Sessions *auth.SessionCodec
	BaseURL  string
}

func NewAuthHandler(local *auth.LocalProvider, google *auth.GoogleOAuth, sessions *auth.SessionCodec, baseURL string) *AuthHandler {
	return &AuthHandler{Local: local, Google: google, Sessions: sessions, BaseURL: baseURL}
}

// SignUp is POST /auth/signup
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req dtos.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	if err := h.Local.SignUp(c.Request.Context(), req.Email, req.Password, req.ConfirmPassword, req.Name); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dtos.SignUpResponse{Message: "Check your email to confirm your account"})
}

// Confirm is GET /auth/confirm?token=
func (h *AuthHandler) Confirm(c *gin.Context) {
	if err := h.Local.Confirm(c.Request.Context(), c.Query("token")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// SignIn is POST /auth/signin
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req dtos.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	token, ttl, err := h.Local.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(ttl.Seconds()),
	})
}

// GoogleLogin is GET /auth/google/login?callbackUrl=
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	if h.Google == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Google sign-in is not configured"})
		return
	}
	loginURL, err := h.Google.LoginURL(c.Query("callbackUrl"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, loginURL)
}

// GoogleCallback is GET /auth/google/callback
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	if h.Google == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Google sign-in is not configured"})
		return
	}
	session, callbackURL, err := h.Google.Exchange(c.Request.Context(), c.Query("code"), c.Query("state"))
	if err != nil {
		respondError(c, err)
		return
	}
	value, err := h.Sessions.Encode(*session)
	if err != nil {
		respondError(c, err)
		return
	}
	http.SetCookie(c.Writer, h.Sessions.Cookie(value))
	log.Printf("✅ Google sign-in for %s", session.Email)
	c.Redirect(http.StatusFound, auth.RedirectTarget(callbackURL, h.BaseURL))
}

// SignOut is POST /auth/signout. Primary tokens are stateless and simply dropped by the client.
func (h *AuthHandler) SignOut(c *gin.Context) {
	http.SetCookie(c.Writer, h.Sessions.ClearCookie())
	c.JSON(http.StatusOK, gin.H{"success": true})
}
