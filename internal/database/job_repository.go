package database

import (
	"context"
	"fmt"

	"github.com/justsurfingit/jobs-tracker/internal/models"
	"gorm.io/gorm"
)

// editableColumns is the full-overwrite set used by Update.
var editableColumns = []string{
	"position", "company", "city", "application_date",
	"status", "description", "details", "job_link",
}

type JobRepository struct {
	DB *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{DB: db}
}

func (r *JobRepository) Create(ctx context.Context, job *models.Job) error {
	if err := r.DB.WithContext(ctx).Create(job).Error; err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}
	return nil
}

// List returns one page of the user's jobs, newest application first, and the
// exact total across all pages.
func (r *JobRepository) List(ctx context.Context, userID string, offset, limit int) ([]models.Job, int64, error) {
	var total int64
	base := r.DB.WithContext(ctx).Model(&models.Job{}).Where("user_id = ?", userID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count jobs: %w", err)
	}

	jobs := []models.Job{}
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("application_date DESC").
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&jobs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, total, nil
}

// ListAll returns every job owned by the user, in insertion order.
func (r *JobRepository) ListAll(ctx context.Context, userID string) ([]models.Job, error) {
	jobs := []models.Job{}
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, nil
}

func (r *JobRepository) FindByID(ctx context.Context, id uint, userID string) (*models.Job, error) {
	var job models.Job
	if err := r.DB.WithContext(ctx).First(&job, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, fmt.Errorf("failed to find job %d: %w", id, err)
	}
	return &job, nil
}

// Update overwrites every editable column of the job matching both id and
// owner. It reports whether a row matched.
func (r *JobRepository) Update(ctx context.Context, id uint, userID string, fields *models.Job) (bool, error) {
	res := r.DB.WithContext(ctx).
		Model(&models.Job{}).
		Where("id = ? AND user_id = ?", id, userID).
		Select(editableColumns).
		Updates(fields)
	if res.Error != nil {
		return false, fmt.Errorf("failed to update job %d: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *JobRepository) Delete(ctx context.Context, id uint, userID string) (bool, error) {
	res := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Job{})
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete job %d: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}
