package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/justsurfingit/jobs-tracker/internal/database"
	"github.com/justsurfingit/jobs-tracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var statsNow = time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)

func statsJob(date string, status models.Status) models.Job {
	return models.Job{Position: "Role " + date, Company: "Acme", ApplicationDate: date, Status: status}
}

func TestAggregateCountsEveryStatus(t *testing.T) {
	jobs := []models.Job{
		statsJob("2024-06-01", models.StatusApplied),
		statsJob("2024-06-02", models.StatusApplied),
		statsJob("2024-06-03", models.StatusInterview),
		statsJob("2024-06-04", models.StatusOffer),
		statsJob("2024-06-05", models.StatusRejected),
		statsJob("2024-06-06", models.StatusAccepted),
	}

	s := Aggregate(jobs, Window30d, statsNow)
	assert.Equal(t, 6, s.Total)
	assert.Equal(t, map[models.Status]int{
		models.StatusApplied:   2,
		models.StatusInterview: 1,
		models.StatusOffer:     1,
		models.StatusRejected:  1,
		models.StatusAccepted:  1,
	}, s.Counts)

	require.Len(t, s.Chart, 5)
	assert.Equal(t, "Applied", s.Chart[0].Label)
	assert.InDelta(t, 1.0, s.Chart[0].Height, 1e-9)
	assert.InDelta(t, 0.5, s.Chart[1].Height, 1e-9)

	require.Len(t, s.Recent, 5)
	assert.Equal(t, "2024-06-06", s.Recent[0].ApplicationDate)
	assert.Equal(t, "2024-06-02", s.Recent[4].ApplicationDate)
}

func TestAggregateEmpty(t *testing.T) {
	s := Aggregate(nil, WindowAll, statsNow)
	assert.Zero(t, s.Total)
	for _, st := range models.Statuses {
		assert.Zero(t, s.Counts[st])
	}
	for _, bar := range s.Chart {
		assert.Zero(t, bar.Height)
	}
	assert.Empty(t, s.Recent)
}

func TestAggregateWindows(t *testing.T) {
	jobs := []models.Job{
		statsJob("2024-06-20", models.StatusApplied),
		statsJob("2024-05-15", models.StatusInterview),
		statsJob("2024-02-01", models.StatusOffer),
		statsJob("2025-01-01", models.StatusApplied),
		statsJob("", models.StatusRejected),
		statsJob("last tuesday", models.StatusRejected),
		statsJob("2024-06-25T09:00:00Z", models.StatusAccepted),
	}

	assert.Equal(t, 2, Aggregate(jobs, Window30d, statsNow).Total)
	assert.Equal(t, 3, Aggregate(jobs, Window90d, statsNow).Total)
	assert.Equal(t, len(jobs), Aggregate(jobs, WindowAll, statsNow).Total)
}

func TestAggregateTodayAheadOfUTC(t *testing.T) {
	sydney := time.FixedZone("AEST", 10*60*60)
	now := time.Date(2024, 7, 1, 8, 0, 0, 0, sydney)
	jobs := []models.Job{
		statsJob("2024-07-01", models.StatusApplied),
		statsJob("2024-06-01", models.StatusInterview),
		statsJob("2024-05-31", models.StatusOffer),
		statsJob("2024-07-02", models.StatusRejected),
	}

	s := Aggregate(jobs, Window30d, now)
	assert.Equal(t, 2, s.Total)
	assert.Equal(t, 1, s.Counts[models.StatusApplied])
	assert.Equal(t, 1, s.Counts[models.StatusInterview])
	require.NotEmpty(t, s.Recent)
	assert.Equal(t, "2024-07-01", s.Recent[0].ApplicationDate)
}

func TestAggregateUnknownStatusCountsTowardTotal(t *testing.T) {
	s := Aggregate([]models.Job{statsJob("2024-06-20", "ghosted"), statsJob("2024-06-21", models.StatusOffer)}, Window30d, statsNow)
	assert.Equal(t, 2, s.Total)
	assert.Equal(t, 1, s.Counts[models.StatusOffer])
	_, tracked := s.Counts["ghosted"]
	assert.False(t, tracked)
}

func TestParseWindow(t *testing.T) {
	w, err := ParseWindow("")
	require.NoError(t, err)
	assert.Equal(t, Window30d, w)

	w, err = ParseWindow("all")
	require.NoError(t, err)
	assert.Equal(t, WindowAll, w)

	_, err = ParseWindow("7d")
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestSummarizeReadsOwnJobs(t *testing.T) {
	repo := database.NewJobRepository(openTestDB(t))
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &models.Job{UserID: alice, Position: "A", Company: "Acme", ApplicationDate: "2024-06-10", Status: models.StatusInterview}))
	require.NoError(t, repo.Create(ctx, &models.Job{UserID: bob, Position: "B", Company: "Beta", ApplicationDate: "2024-06-10", Status: models.StatusOffer}))

	svc := NewStatsService(repo)
	svc.now = func() time.Time { return statsNow }

	s, err := svc.Summarize(ctx, alice, Window30d)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Total)
	assert.Equal(t, 1, s.Counts[models.StatusInterview])
	assert.Zero(t, s.Counts[models.StatusOffer])
}
