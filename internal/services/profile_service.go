package services

import (
	"context"
	"strings"

	"github.com/justsurfingit/jobs-tracker/internal/dtos"
)

type ProfileService struct {
	Users UserStore
}

func NewProfileService(users UserStore) *ProfileService {
	return &ProfileService{Users: users}
}

func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*dtos.ProfileResponse, error) {
	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "user %s", userID)
	}
	resp := dtos.NewProfileResponse(user)
	return &resp, nil
}

// UpdateProfile changes the display name and the avatar placeholder. Empty
// fields are left as they are.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, req *dtos.ProfileUpdateRequest) (*dtos.ProfileResponse, error) {
	if name := strings.TrimSpace(req.Name); name != "" {
		if err := s.Users.UpdateName(ctx, userID, name); err != nil {
			return nil, notFound(err, "user %s", userID)
		}
	}
	if avatar := strings.TrimSpace(req.AvatarURL); avatar != "" {
		meta, err := s.Users.GetMetadata(ctx, userID)
		if err != nil {
			return nil, notFound(err, "user %s", userID)
		}
		meta.AvatarURL = avatar
		if err := s.Users.SaveMetadata(ctx, userID, meta); err != nil {
			return nil, err
		}
	}
	return s.GetProfile(ctx, userID)
}
