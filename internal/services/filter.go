package services

import (
	"strings"

	"github.com/justsurfingit/jobs-tracker/internal/models"
)

// FilterJobs keeps the jobs matching both the search text and the status.
// It only sees the jobs it is given, so on a paginated list matches on other
// pages are not reported.
func FilterJobs(jobs []models.Job, search, status string) []models.Job {
	if search == "" && status == "" {
		return jobs
	}
	needle := strings.ToLower(search)

	filtered := make([]models.Job, 0, len(jobs))
	for _, job := range jobs {
		// --- RULE 1: Status is an exact, case-sensitive match ---
		if status != "" && string(job.Status) != status {
			continue
		}

		// --- RULE 2: Search hits position, company or city ---
		if needle != "" &&
			!strings.Contains(strings.ToLower(job.Position), needle) &&
			!strings.Contains(strings.ToLower(job.Company), needle) &&
			!strings.Contains(strings.ToLower(job.City), needle) {
			continue
		}
		filtered = append(filtered, job)
	}
	return filtered
}
