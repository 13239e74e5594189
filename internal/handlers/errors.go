package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/jobs-tracker/internal/auth"
	"github.com/justsurfingit/jobs-tracker/internal/services"
)

// statusFor maps service and auth errors onto HTTP statuses. Anything
// unrecognised is an upstream failure.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrUnauthenticated),
		errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrEmailNotConfirmed),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrInvalidState):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrNotFound), errors.Is(err, services.ErrNoCV):
		return http.StatusNotFound
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrConfirmationRequired),
		errors.Is(err, auth.ErrPasswordMismatch),
		errors.Is(err, auth.ErrPasswordTooShort):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrEmailTaken), errors.Is(err, services.ErrInvalidTransition):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// respondError writes {"error": ...}. The upstream message is passed through as is.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("❌ %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	msg := err.Error()
	if errors.Is(err, services.ErrNoCV) {
		msg = services.ErrNoCV.Error()
	}
	c.JSON(status, gin.H{"error": msg})
}
