package services

import (
	"context"
	"errors"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/justsurfingit/jobs-tracker/internal/database"
	"github.com/justsurfingit/jobs-tracker/internal/models"
	"github.com/justsurfingit/jobs-tracker/internal/storage"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	alice = "11111111-1111-1111-1111-111111111111"
	bob   = "22222222-2222-2222-2222-222222222222"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "svc.db")), &gorm.Config{Logger: logger.Discard, TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedUser(t *testing.T, users *database.UserRepository, id string) {
	t.Helper()
	require.NoError(t, users.Create(context.Background(), &models.User{ID: id, Email: id + "@example.com", Provider: "email"}))
}

// fixedClock returns a clock that can be moved forward by the test.
func fixedClock(start time.Time) (func() time.Time, func(time.Duration)) {
	now := start
	return func() time.Time { return now }, func(d time.Duration) { now = now.Add(d) }
}

type memoryBlobs struct {
	mu        sync.Mutex
	objects   map[string][]byte
	removed   []string
	uploadErr error
}

func newMemoryBlobs() *memoryBlobs {
	return &memoryBlobs{objects: map[string][]byte{}}
}

func (m *memoryBlobs) Upload(_ context.Context, key string, body []byte, _ string, overwrite bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.uploadErr != nil {
		return m.uploadErr
	}
	if _, exists := m.objects[key]; exists && !overwrite {
		return storage.ErrObjectExists
	}
	m.objects[key] = append([]byte(nil), body...)
	return nil
}

func (m *memoryBlobs) PublicURL(key string) string {
	return "https://blobs.test/" + key
}

func (m *memoryBlobs) Download(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	body, ok := m.objects[key]
	if !ok {
		return nil, storage.ErrObjectNotFound
	}
	return body, nil
}

func (m *memoryBlobs) Remove(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.objects, k)
		m.removed = append(m.removed, k)
	}
	return nil
}

func (m *memoryBlobs) List(_ context.Context, prefix, search string) ([]storage.Object, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []storage.Object
	for k, body := range m.objects {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		name := path.Base(k)
		if search != "" && !strings.Contains(strings.ToLower(name), strings.ToLower(search)) {
			continue
		}
		out = append(out, storage.Object{Key: k, Name: name, Size: int64(len(body))})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (m *memoryBlobs) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[key]
	return ok
}

// failingMetadata wraps a UserStore and fails every SaveMetadata call.
type failingMetadata struct {
	UserStore
}

func (f failingMetadata) SaveMetadata(context.Context, string, models.UserMetadata) error {
	return errors.New("metadata store unavailable")
}
