package database

import (
	"context"
	"fmt"
	"time"

	"github.com/justsurfingit/jobs-tracker/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.DB.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// UpsertShadow inserts the row unless one with the same id exists already.
func (r *UserRepository) UpsertShadow(ctx context.Context, user *models.User) error {
	err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(user).Error
	if err != nil {
		return fmt.Errorf("failed to upsert user %s: %w", user.ID, err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to find user %s: %w", id, err)
	}
	return &user, nil
}

// FindByEmail only matches password accounts; shadow rows share the email column.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.DB.WithContext(ctx).
		Where("email = ? AND provider = ?", email, "email").
		First(&user).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) FindByConfirmToken(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("confirm_token = ?", token).First(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to find confirmation token: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) Confirm(ctx context.Context, id string, at time.Time) error {
	return r.updateColumns(ctx, id, map[string]interface{}{
		"confirmed_at":  at,
		"confirm_token": "",
	})
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, hash string) error {
	return r.updateColumns(ctx, id, map[string]interface{}{"password": hash})
}

func (r *UserRepository) UpdateName(ctx context.Context, id, name string) error {
	return r.updateColumns(ctx, id, map[string]interface{}{"name": name})
}

func (r *UserRepository) GetMetadata(ctx context.Context, id string) (models.UserMetadata, error) {
	user, err := r.FindByID(ctx, id)
	if err != nil {
		return models.UserMetadata{}, err
	}
	return user.Metadata, nil
}

// SaveMetadata overwrites the whole metadata document for the user.
func (r *UserRepository) SaveMetadata(ctx context.Context, id string, meta models.UserMetadata) error {
	res := r.DB.WithContext(ctx).
		Model(&models.User{ID: id}).
		Select("metadata").
		Updates(&models.User{Metadata: meta})
	if res.Error != nil {
		return fmt.Errorf("failed to save metadata for %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("failed to save metadata for %s: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *UserRepository) updateColumns(ctx context.Context, id string, values map[string]interface{}) error {
	res := r.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(values)
	if res.Error != nil {
		return fmt.Errorf("failed to update user %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("failed to update user %s: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}
