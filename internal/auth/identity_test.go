package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/justsurfingit/jobs-tracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingShadowStore struct {
	calls []*models.User
	err   error
}

func (s *recordingShadowStore) UpsertShadow(ctx context.Context, user *models.User) error {
	s.calls = append(s.calls, user)
	return s.err
}

func TestDeriveUserIDIsDeterministic(t *testing.T) {
	a := DeriveUserID("google", "jane@example.com")
	b := DeriveUserID("google", "jane@example.com")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, DeriveUserID("google", "john@example.com"))
	assert.NotEqual(t, a, DeriveUserID("github", "jane@example.com"))
}

func TestDeriveUserIDMatchesHexGrouping(t *testing.T) {
	sum := sha256.Sum256([]byte("google_jane@example.com"))
	h := hex.EncodeToString(sum[:])
	want := h[0:8] + "-" + h[8:12] + "-" + h[12:16] + "-" + h[16:20] + "-" + h[20:32]

	assert.Equal(t, want, DeriveUserID("google", "jane@example.com"))
}

func TestResolvePrefersPrimary(t *testing.T) {
	store := &recordingShadowStore{}
	r := NewResolver(store)

	id, ok := r.Resolve(context.Background(),
		&PrimarySession{UserID: "primary-id"},
		&SecondarySession{Provider: "google", Email: "jane@example.com"})

	require.True(t, ok)
	assert.Equal(t, "primary-id", id)
	assert.Empty(t, store.calls, "primary sessions never touch storage")
}

func TestResolveSecondaryUpsertsShadow(t *testing.T) {
	store := &recordingShadowStore{}
	r := NewResolver(store)

	id, ok := r.Resolve(context.Background(), nil,
		&SecondarySession{Provider: "google", Email: "jane@example.com", Name: "Jane"})

	require.True(t, ok)
	assert.Equal(t, DeriveUserID("google", "jane@example.com"), id)
	require.Len(t, store.calls, 1)
	assert.Equal(t, id, store.calls[0].ID)
	assert.Equal(t, "Jane", store.calls[0].Name)
	assert.Equal(t, "google", store.calls[0].Provider)
}

func TestResolveSwallowsUpsertFailure(t *testing.T) {
	r := NewResolver(&recordingShadowStore{err: errors.New("duplicate key")})

	id, ok := r.Resolve(context.Background(), nil, &SecondarySession{Provider: "google", Email: "jane@example.com"})
	assert.True(t, ok)
	assert.NotEmpty(t, id)
}

func TestResolveWithoutSession(t *testing.T) {
	store := &recordingShadowStore{}
	r := NewResolver(store)

	_, ok := r.Resolve(context.Background(), nil, nil)
	assert.False(t, ok)

	_, ok = r.Resolve(context.Background(), nil, &SecondarySession{Provider: "google"})
	assert.False(t, ok)
	assert.Empty(t, store.calls)
}
