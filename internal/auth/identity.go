package auth

import (
	"context"
	"crypto/sha256"
	"log"

	"github.com/google/uuid"
	"github.com/justsurfingit/jobs-tracker/internal/models"
)

// PrimarySession comes from a verified access token issued by LocalProvider.
type PrimarySession struct {
	UserID string
	Email  string
}

// SecondarySession is an OAuth identity carried in the session cookie.
type SecondarySession struct {
	Provider string `json:"provider"`
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
}

// DeriveUserID maps an OAuth identity onto a stable user id: the first 16
// bytes of SHA-256("<provider>_<email>") in 8-4-4-4-12 form.
func DeriveUserID(provider, email string) string {
	sum := sha256.Sum256([]byte(provider + "_" + email))
	id, _ := uuid.FromBytes(sum[:16])
	return id.String()
}

type ShadowStore interface {
	UpsertShadow(ctx context.Context, user *models.User) error
}

type Resolver struct {
	Users ShadowStore
}

func NewResolver(users ShadowStore) *Resolver {
	return &Resolver{Users: users}
}

// Resolve returns the canonical user id for whichever session is present,
// preferring the primary one. For a secondary session a shadow user row is
// upserted; failures there are logged and ignored.
func (r *Resolver) Resolve(ctx context.Context, primary *PrimarySession, secondary *SecondarySession) (string, bool) {
	if primary != nil && primary.UserID != "" {
		return primary.UserID, true
	}
	if secondary == nil || secondary.Email == "" {
		return "", false
	}

	id := DeriveUserID(secondary.Provider, secondary.Email)
	shadow := &models.User{
		ID:       id,
		Email:    secondary.Email,
		Name:     secondary.Name,
		Provider: secondary.Provider,
	}
	if err := r.Users.UpsertShadow(ctx, shadow); err != nil {
		log.Printf("⚠️  Shadow user upsert for %s failed: %v", id, err)
	}
	return id, true
}
