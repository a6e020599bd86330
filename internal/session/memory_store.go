package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"marketplace-service/internal/identity"
)

// MemoryStore holds the serialized identity in process memory. Used in
// demo mode and tests. It round-trips through JSON so the lenient
// decode path is exercised the same way as the Redis store.
type MemoryStore struct {
	mu   sync.Mutex
	data []byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(_ context.Context) (*identity.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.data == nil {
		return nil, nil
	}
	return decodeIdentity(m.data), nil
}

func (m *MemoryStore) Save(_ context.Context, ident *identity.Identity) error {
	if err := ident.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(ident)
	if err != nil {
		return fmt.Errorf("session: failed to marshal: %w", err)
	}

	m.mu.Lock()
	m.data = data
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	m.data = nil
	m.mu.Unlock()
	return nil
}

// Corrupt overwrites the stored record with garbage. Test hook for the
// malformed-persisted-state recovery path.
func (m *MemoryStore) Corrupt() {
	m.mu.Lock()
	m.data = []byte("{not json")
	m.mu.Unlock()
}
