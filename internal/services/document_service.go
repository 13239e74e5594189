package services

import (
	"context"
	"fmt"
	"log"
	"path"
	"path/filepath"
	"strings"

	"github.com/justsurfingit/jobs-tracker/internal/models"
)

type DocumentKind string

const (
	KindCV          DocumentKind = "cv"
	KindCoverLetter DocumentKind = "cover_letter"
)

// ParseDocumentKind accepts the long names and the cl shorthand.
func ParseDocumentKind(s string) (DocumentKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cv":
		return KindCV, nil
	case "cover_letter", "cl":
		return KindCoverLetter, nil
	}
	return "", fmt.Errorf("%w: unknown document kind %q", ErrValidation, s)
}

// slug is the file-name suffix, matching the cv_*/cl_* profile keys.
func (k DocumentKind) slug() string {
	if k == KindCoverLetter {
		return "cl"
	}
	return "cv"
}

// DocumentKey is the deterministic blob path for a user's document.
func DocumentKey(userID string, kind DocumentKind, filename string) string {
	key := fmt.Sprintf("%s/%s-%s", userID, userID, kind.slug())
	if ext := strings.TrimPrefix(filepath.Ext(filename), "."); ext != "" {
		key += "." + strings.ToLower(ext)
	}
	return key
}

// keyFromURL rebuilds the blob path from the trailing segment of a public URL.
func keyFromURL(userID, url string) string {
	return userID + "/" + path.Base(url)
}

type DocumentService struct {
	Users UserStore
	Blobs BlobStore
}

func NewDocumentService(users UserStore, blobs BlobStore) *DocumentService {
	return &DocumentService{Users: users, Blobs: blobs}
}

// Upload stores the file at the kind's path and records it on the profile.
// A failed profile write after a successful upload returns ErrProfileUpdate and
// leaves the blob in place.
func (s *DocumentService) Upload(ctx context.Context, userID string, kind DocumentKind, filename string, content []byte, contentType string) (*models.DocumentRef, error) {
	if strings.TrimSpace(filename) == "" {
		return nil, fmt.Errorf("%w: file name is required", ErrValidation)
	}

	meta, err := s.Users.GetMetadata(ctx, userID)
	if err != nil {
		return nil, notFound(err, "user %s", userID)
	}

	key := DocumentKey(userID, kind, filename)
	if err := s.Blobs.Upload(ctx, key, content, contentType, true); err != nil {
		return nil, err
	}

	ref := &models.DocumentRef{URL: s.Blobs.PublicURL(key), Name: filename}
	slot := documentSlot(&meta, kind)
	previous := *slot
	*slot = ref

	if err := s.Users.SaveMetadata(ctx, userID, meta); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProfileUpdate, err)
	}

	// A different extension lands on a different path; drop the old blob.
	if previous != nil {
		if oldKey := keyFromURL(userID, previous.URL); oldKey != key {
			if err := s.Blobs.Remove(ctx, oldKey); err != nil {
				log.Printf("⚠️  Failed to remove replaced document %s: %v", oldKey, err)
			}
		}
	}
	return ref, nil
}

// Remove deletes the blob and clears the profile fields. No-op when nothing is stored.
func (s *DocumentService) Remove(ctx context.Context, userID string, kind DocumentKind) error {
	meta, err := s.Users.GetMetadata(ctx, userID)
	if err != nil {
		return notFound(err, "user %s", userID)
	}

	slot := documentSlot(&meta, kind)
	if *slot == nil || (*slot).URL == "" {
		return nil
	}

	if err := s.Blobs.Remove(ctx, keyFromURL(userID, (*slot).URL)); err != nil {
		return err
	}
	*slot = nil
	return s.Users.SaveMetadata(ctx, userID, meta)
}

func documentSlot(meta *models.UserMetadata, kind DocumentKind) **models.DocumentRef {
	if kind == KindCoverLetter {
		return &meta.CoverLetter
	}
	return &meta.CV
}
