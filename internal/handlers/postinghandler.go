package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/jobs-tracker/internal/services"
)

type PostingHandler struct {
	Postings *services.PostingService
}

func NewPostingHandler(p *services.PostingService) *PostingHandler {
	return &PostingHandler{Postings: p}
}

func (h *PostingHandler) ListPostings(c *gin.Context) {
	postings, err := h.Postings.ListPostings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"postings": postings})
}

func (h *PostingHandler) GetPosting(c *gin.Context) {
	p, err := h.Postings.GetPosting(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
