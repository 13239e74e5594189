package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/jobs-tracker/internal/dtos"
	"github.com/justsurfingit/jobs-tracker/internal/middleware"
	"github.com/justsurfingit/jobs-tracker/internal/services"
)

// AgentHandler answers 503 when no LLM is configured.
type AgentHandler struct {
	Agent services.JobAgent
}

func NewAgentHandler(agent services.JobAgent) *AgentHandler {
	return &AgentHandler{Agent: agent}
}

// FindJob is POST /ai-job-agent
func (h *AgentHandler) FindJob(c *gin.Context) {
	if h.Agent == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI job agent is not configured"})
		return
	}
	job, err := h.Agent.FindJob(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.AgentFindResponse{Job: *job})
}

// ApplyJob is POST /ai-job-apply with {"job": {...}}
func (h *AgentHandler) ApplyJob(c *gin.Context) {
	if h.Agent == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI job agent is not configured"})
		return
	}
	var req dtos.AgentApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Job == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No job provided"})
		return
	}
	if _, err := h.Agent.Apply(c.Request.Context(), middleware.UserID(c), req.Job); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
