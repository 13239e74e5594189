package services

import (
	"context"

	"github.com/justsurfingit/jobs-tracker/internal/models"
	"github.com/justsurfingit/jobs-tracker/internal/storage"
)

// JobStore is satisfied by database.JobRepository. Every call is scoped by owner.
type JobStore interface {
	Create(ctx context.Context, job *models.Job) error
	List(ctx context.Context, userID string, offset, limit int) ([]models.Job, int64, error)
	ListAll(ctx context.Context, userID string) ([]models.Job, error)
	FindByID(ctx context.Context, id uint, userID string) (*models.Job, error)
	Update(ctx context.Context, id uint, userID string, fields *models.Job) (bool, error)
	Delete(ctx context.Context, id uint, userID string) (bool, error)
}

// UserStore is satisfied by database.UserRepository.
type UserStore interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	UpdateName(ctx context.Context, id, name string) error
	GetMetadata(ctx context.Context, id string) (models.UserMetadata, error)
	SaveMetadata(ctx context.Context, id string, meta models.UserMetadata) error
}

// BlobStore is satisfied by storage.S3Store.
type BlobStore interface {
	Upload(ctx context.Context, key string, body []byte, contentType string, overwrite bool) error
	PublicURL(key string) string
	Download(ctx context.Context, key string) ([]byte, error)
	Remove(ctx context.Context, keys ...string) error
	List(ctx context.Context, prefix, search string) ([]storage.Object, error)
}

// PostingStore is satisfied by storage.PostingBoard.
type PostingStore interface {
	List(ctx context.Context) ([]models.Posting, error)
	Get(ctx context.Context, id string) (*models.Posting, error)
	Put(ctx context.Context, p *models.Posting) (bool, error)
}
