package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/justsurfingit/jobs-tracker/internal/dtos"
	"github.com/justsurfingit/jobs-tracker/internal/models"
	"gorm.io/gorm"
)

const (
	maxPageSize    = 100
	deleteTokenTTL = 5 * time.Minute
)

type pendingDelete struct {
	jobID     uint
	userID    string
	expiresAt time.Time
}

type JobService struct {
	Jobs     JobStore
	PageSize int

	validate *validator.Validate
	now      func() time.Time

	mu      sync.Mutex
	pending map[string]pendingDelete
}

func NewJobService(jobs JobStore, pageSize int) *JobService {
	return &JobService{
		Jobs:     jobs,
		PageSize: pageSize,
		validate: validator.New(),
		now:      time.Now,
		pending:  make(map[string]pendingDelete),
	}
}

func (s *JobService) CreateJob(ctx context.Context, userID string, req *dtos.JobRequest) (*models.Job, error) {
	job, err := s.buildJob(req)
	if err != nil {
		return nil, err
	}
	job.UserID = userID
	if err := s.Jobs.Create(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// ListJobs fetches one page ordered by application date and filters it in memory.
// Total and page count describe the unfiltered result.
func (s *JobService) ListJobs(ctx context.Context, userID string, q dtos.ListJobsQuery) (*dtos.JobListResponse, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	size := q.PageSize
	if size < 1 {
		size = s.PageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	jobs, total, err := s.Jobs.List(ctx, userID, (page-1)*size, size)
	if err != nil {
		return nil, err
	}

	return &dtos.JobListResponse{
		Jobs:      FilterJobs(jobs, q.Search, q.Status),
		Total:     total,
		Page:      page,
		PageSize:  size,
		PageCount: int((total + int64(size) - 1) / int64(size)),
	}, nil
}

func (s *JobService) GetJob(ctx context.Context, id uint, userID string) (*models.Job, error) {
	job, err := s.Jobs.FindByID(ctx, id, userID)
	if err != nil {
		return nil, notFound(err, "job %d", id)
	}
	return job, nil
}

// UpdateJob overwrites every editable field. Concurrent edits are last write wins.
func (s *JobService) UpdateJob(ctx context.Context, id uint, userID string, req *dtos.JobRequest) (*models.Job, error) {
	fields, err := s.buildJob(req)
	if err != nil {
		return nil, err
	}
	matched, err := s.Jobs.Update(ctx, id, userID, fields)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, fmt.Errorf("job %d: %w", id, ErrNotFound)
	}
	return s.GetJob(ctx, id, userID)
}

// RequestDelete is the first phase of a delete. Nothing is removed until the
// returned token is handed back to ConfirmDelete.
func (s *JobService) RequestDelete(ctx context.Context, id uint, userID string) (*dtos.DeleteTokenResponse, error) {
	if _, err := s.GetJob(ctx, id, userID); err != nil {
		return nil, err
	}

	now := s.now()
	token := uuid.NewString()
	expires := now.Add(deleteTokenTTL)

	s.mu.Lock()
	for t, p := range s.pending {
		if now.After(p.expiresAt) {
			delete(s.pending, t)
		}
	}
	s.pending[token] = pendingDelete{jobID: id, userID: userID, expiresAt: expires}
	s.mu.Unlock()

	return &dtos.DeleteTokenResponse{Token: token, ExpiresAt: expires.UTC().Format(time.RFC3339)}, nil
}

// ConfirmDelete consumes the token and removes the job. The token is single use
// and bound to the job and owner it was issued for.
func (s *JobService) ConfirmDelete(ctx context.Context, id uint, userID, token string) error {
	s.mu.Lock()
	p, ok := s.pending[token]
	if ok {
		delete(s.pending, token)
	}
	s.mu.Unlock()

	if !ok || p.jobID != id || p.userID != userID || s.now().After(p.expiresAt) {
		return ErrConfirmationRequired
	}

	deleted, err := s.Jobs.Delete(ctx, id, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("job %d: %w", id, ErrNotFound)
	}
	return nil
}

func (s *JobService) buildJob(req *dtos.JobRequest) (*models.Job, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: empty job", ErrValidation)
	}
	clean := *req
	clean.Position = strings.TrimSpace(clean.Position)
	clean.Company = strings.TrimSpace(clean.Company)
	clean.City = strings.TrimSpace(clean.City)
	clean.ApplicationDate = strings.TrimSpace(clean.ApplicationDate)
	clean.Status = strings.TrimSpace(clean.Status)

	if err := s.validate.Struct(&clean); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, describeValidation(err))
	}

	status := models.Status(clean.Status)
	if status == "" {
		status = models.StatusApplied
	}
	return &models.Job{
		Position:        clean.Position,
		Company:         clean.Company,
		City:            clean.City,
		ApplicationDate: clean.ApplicationDate,
		Status:          status,
		Description:     clean.Description,
		Details:         clean.Details,
		JobLink:         strings.TrimSpace(clean.JobLink),
	}, nil
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, strings.ToLower(fe.Field())+" is required")
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("status must be one of: %s", fe.Param()))
		case "datetime":
			msgs = append(msgs, "application_date must be YYYY-MM-DD")
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", strings.ToLower(fe.Field())))
		}
	}
	return strings.Join(msgs, "; ")
}

// notFound maps a missing gorm record onto ErrNotFound and passes anything
// else through untouched.
func notFound(err error, format string, args ...interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
	}
	return err
}
