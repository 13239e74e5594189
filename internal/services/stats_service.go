package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/justsurfingit/jobs-tracker/internal/models"
)

type Window string

const (
	Window30d Window = "30d"
	Window90d Window = "90d"
	WindowAll Window = "all"
)

const recentLimit = 5

// ParseWindow defaults to the last 30 days when s is empty.
func ParseWindow(s string) (Window, error) {
	switch Window(s) {
	case "":
		return Window30d, nil
	case Window30d, Window90d, WindowAll:
		return Window(s), nil
	}
	return "", fmt.Errorf("%w: window must be 30d, 90d or all", ErrValidation)
}

func (w Window) days() int {
	switch w {
	case Window30d:
		return 30
	case Window90d:
		return 90
	}
	return 0
}

// Bar is one column of the status chart. Height is relative to the tallest bar.
type Bar struct {
	Status models.Status `json:"status"`
	Label  string        `json:"label"`
	Count  int           `json:"count"`
	Height float64       `json:"height"`
}

type Summary struct {
	Window Window                `json:"window"`
	Total  int                   `json:"total"`
	Counts map[models.Status]int `json:"counts"`
	Recent []models.Job          `json:"recent"`
	Chart  []Bar                 `json:"chart"`
	Jobs   []models.Job          `json:"-"`
}

type StatsService struct {
	Jobs JobStore
	now  func() time.Time
}

func NewStatsService(jobs JobStore) *StatsService {
	return &StatsService{Jobs: jobs, now: time.Now}
}

func (s *StatsService) Summarize(ctx context.Context, userID string, window Window) (*Summary, error) {
	jobs, err := s.Jobs.ListAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	return Aggregate(jobs, window, s.now()), nil
}

// Aggregate counts jobs inside the window. Jobs with an unknown status still
// count toward the total but not toward any status.
func Aggregate(jobs []models.Job, window Window, now time.Time) *Summary {
	filtered := jobsInWindow(jobs, window, now)

	counts := make(map[models.Status]int, len(models.Statuses))
	for _, st := range models.Statuses {
		counts[st] = 0
	}
	for _, job := range filtered {
		if _, known := counts[job.Status]; known {
			counts[job.Status]++
		}
	}

	recent := make([]models.Job, len(filtered))
	copy(recent, filtered)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].ApplicationDate > recent[j].ApplicationDate
	})
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}

	return &Summary{
		Window: window,
		Total:  len(filtered),
		Counts: counts,
		Recent: recent,
		Chart:  chart(counts),
		Jobs:   filtered,
	}
}

// jobsInWindow compares whole days in now's location: a job dated today is
// always inside the window, whatever the server's offset from UTC.
func jobsInWindow(jobs []models.Job, window Window, now time.Time) []models.Job {
	days := window.days()
	if days == 0 {
		return jobs
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	cutoff := today.AddDate(0, 0, -days)
	end := today.AddDate(0, 0, 1)

	var out []models.Job
	for _, job := range jobs {
		applied, ok := parseApplicationDate(job.ApplicationDate, now.Location())
		if !ok {
			continue
		}
		if !applied.Before(cutoff) && applied.Before(end) {
			out = append(out, job)
		}
	}
	return out
}

func parseApplicationDate(s string, loc *time.Location) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.ParseInLocation("2006-01-02", s, loc); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func chart(counts map[models.Status]int) []Bar {
	max := 1
	for _, c := range counts {
		if c > max {
			max = c
		}
	}
	bars := make([]Bar, 0, len(models.Statuses))
	for _, st := range models.Statuses {
		bars = append(bars, Bar{
			Status: st,
			Label:  st.Label(),
			Count:  counts[st],
			Height: float64(counts[st]) / float64(max),
		})
	}
	return bars
}
