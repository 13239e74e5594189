package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/jobs-tracker/internal/middleware"
	"github.com/justsurfingit/jobs-tracker/internal/services"
)

type StatsHandler struct {
	Stats *services.StatsService
}

func NewStatsHandler(s *services.StatsService) *StatsHandler {
	return &StatsHandler{Stats: s}
}

// GetStats is GET /stats?window=30d|90d|all
func (h *StatsHandler) GetStats(c *gin.Context) {
	window, err := services.ParseWindow(c.Query("window"))
	if err != nil {
		respondError(c, err)
		return
	}
	summary, err := h.Stats.Summarize(c.Request.Context(), middleware.UserID(c), window)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ExportStats is GET /stats/export?window=&format=csv|xlsx
func (h *StatsHandler) ExportStats(c *gin.Context) {
	window, err := services.ParseWindow(c.Query("window"))
	if err != nil {
		respondError(c, err)
		return
	}
	format, err := services.ParseExportFormat(c.Query("format"))
	if err != nil {
		respondError(c, err)
		return
	}
	summary, err := h.Stats.Summarize(c.Request.Context(), middleware.UserID(c), window)
	if err != nil {
		respondError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := services.Export(&buf, format, summary); err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, services.ExportFileName(format, time.Now())))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}
