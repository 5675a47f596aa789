package testutils

import (
	"context"
	"fmt"
	"sync"

	"github.com/hearthhq/hearth/pkg/storage"
)

// MockStorage is a storage driver with injectable failures for exercising
// the memory service's error paths.
type MockStorage struct {
	mu   sync.Mutex
	data []byte

	// Seed is returned by the first Load when set, letting tests start
	// from arbitrary (including corrupt) persisted bytes.
	Seed []byte

	// FailLoad and FailSave force the next call of the matching
	// operation to return an error.
	FailLoad bool
	FailSave bool

	// SaveCount tracks how many saves succeeded.
	SaveCount int
}

func NewMockStorage() *MockStorage {
	return &MockStorage{}
}

func (m *MockStorage) Load(_ context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailLoad {
		return nil, fmt.Errorf("mock load failure")
	}
	if m.data == nil && m.Seed == nil {
		return nil, storage.NotFoundError{Name: "mock"}
	}
	if m.data == nil {
		return m.Seed, nil
	}
	return m.data, nil
}

func (m *MockStorage) Save(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailSave {
		return fmt.Errorf("mock save failure")
	}

	stored := make([]byte, len(data))
	copy(stored, data)
	m.data = stored
	m.SaveCount++
	return nil
}

func (m *MockStorage) Close() error {
	return nil
}
