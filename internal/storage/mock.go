package storage

import (
	"context"
	"sync"
	"time"
)

// MockStore is an in-memory ObjectStore for tests.
type MockStore struct {
	mu      sync.Mutex
	Deleted []string
	MintErr error
	DelErr  error
}

// MintUploadToken returns a canned credential or the configured error.
func (m *MockStore) MintUploadToken(ctx context.Context) (*UploadCredential, error) {
	if m.MintErr != nil {
		return nil, m.MintErr
	}
	return &UploadCredential{
		Token:     "https://storage.test/upload?signature=mock",
		Key:       "sounds/mock-key",
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

// DeleteObject records the key or returns the configured error.
func (m *MockStore) DeleteObject(ctx context.Context, key string) error {
	if m.DelErr != nil {
		return m.DelErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Deleted = append(m.Deleted, key)
	return nil
}

// DeletedKeys returns a copy of the recorded deletions.
func (m *MockStore) DeletedKeys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.Deleted))
	copy(out, m.Deleted)
	return out
}

var _ ObjectStore = (*MockStore)(nil)
