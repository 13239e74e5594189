package dtos

import "github.com/justsurfingit/jobs-tracker/internal/models"

// JobRequest is the editable field set for create and full-overwrite update.
type JobRequest struct {
	Position        string `json:"position" validate:"required"`
	Company         string `json:"company" validate:"required"`
	City            string `json:"city"`
	ApplicationDate string `json:"application_date" validate:"omitempty,datetime=2006-01-02"`
	Status          string `json:"status" validate:"omitempty,oneof=applied interview offer rejected accepted"` // Defaults to "applied" if empty
	Description     string `json:"description"`
	Details         string `json:"details"`
	JobLink         string `json:"job_link"`
}

type ListJobsQuery struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Search   string `form:"search"`
	Status   string `form:"status"`
}

type JobListResponse struct {
	Jobs      []models.Job `json:"jobs"`
	Total     int64        `json:"total"`
	Page      int          `json:"page"`
	PageSize  int          `json:"page_size"`
	PageCount int          `json:"page_count"`
}

// DeleteTokenResponse is phase one of the two-step delete.
type DeleteTokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

type ConfirmDeleteRequest struct {
	Token string `json:"token" binding:"required"`
}
