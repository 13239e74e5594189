package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/jobs-tracker/internal/auth"
	"github.com/justsurfingit/jobs-tracker/internal/dtos"
	"github.com/justsurfingit/jobs-tracker/internal/middleware"
	"github.com/justsurfingit/jobs-tracker/internal/services"
)

const maxDocumentSize = 10 << 20

type ProfileHandler struct {
	Profiles  *services.ProfileService
	Documents *services.DocumentService
	Local     *auth.LocalProvider
}

func NewProfileHandler(p *services.ProfileService, d *services.DocumentService, local *auth.LocalProvider) *ProfileHandler {
	return &ProfileHandler{Profiles: p, Documents: d, Local: local}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	resp, err := h.Profiles.GetProfile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req dtos.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	resp, err := h.Profiles.UpdateProfile(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ChangePassword only applies to password accounts; OAuth users have none.
func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	if !middleware.IsPrimary(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Password change is only available for email accounts"})
		return
	}
	var req dtos.PasswordChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	if err := h.Local.UpdatePassword(c.Request.Context(), middleware.UserID(c), req.Password, req.ConfirmPassword); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteAccount is not implemented; accounts are never removed.
func (h *ProfileHandler) DeleteAccount(c *gin.Context) {
	c.JSON(http.StatusNotImplemented, gin.H{"error": "Account deletion is not available yet"})
}

// UploadDocument is POST /profile/documents/:kind with a multipart "file" field.
func (h *ProfileHandler) UploadDocument(c *gin.Context) {
	kind, err := services.ParseDocumentKind(c.Param("kind"))
	if err != nil {
		respondError(c, err)
		return
	}
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file: " + err.Error()})
		return
	}
	if header.Size > maxDocumentSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File is larger than 10MB"})
		return
	}
	f, err := header.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer f.Close()
	content, err := io.ReadAll(io.LimitReader(f, maxDocumentSize+1))
	if err != nil {
		respondError(c, err)
		return
	}

	ref, err := h.Documents.Upload(c.Request.Context(), middleware.UserID(c), kind,
		header.Filename, content, header.Header.Get("Content-Type"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.DocumentResponse{Kind: string(kind), URL: ref.URL, Name: ref.Name})
}

func (h *ProfileHandler) RemoveDocument(c *gin.Context) {
	kind, err := services.ParseDocumentKind(c.Param("kind"))
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.Documents.Remove(c.Request.Context(), middleware.UserID(c), kind); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
