package directory

import (
	"context"
	"sync"

	"marketplace-service/internal/identity"
)

// MemoryDirectory is an in-process directory used in demo mode and tests.
type MemoryDirectory struct {
	mu        sync.RWMutex
	bySubject map[string]*identity.Identity
	byPhone   map[string]*identity.Identity
}

func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{
		bySubject: make(map[string]*identity.Identity),
		byPhone:   make(map[string]*identity.Identity),
	}
}

// NewSeededDirectory returns a memory directory preloaded with the demo
// agent and vendor accounts.
func NewSeededDirectory() *MemoryDirectory {
	d := NewMemoryDirectory()

	agent := &identity.Identity{
		SubjectID:   "user_agent_1",
		Phone:       "+15550000001",
		Roles:       []identity.Role{identity.RoleAgent},
		ActiveRole:  identity.RoleAgent,
		DisplayName: "James Bond",
		Badges:      []string{"Verified Payer"},
		Agent:       &identity.AgentProfile{ProducerNumber: "1234567890"},
	}

	vendor := &identity.Identity{
		SubjectID:   "user_vendor_1",
		Phone:       "+15550000002",
		Roles:       []identity.Role{identity.RoleVendor},
		ActiveRole:  identity.RoleVendor,
		DisplayName: "Acme Marketing",
		Badges:      []string{"Top Rated"},
		Vendor:      &identity.VendorProfile{BusinessName: "Acme Marketing LLC"},
	}

	_ = d.Put(context.Background(), agent)
	_ = d.Put(context.Background(), vendor)

	return d
}

func (d *MemoryDirectory) BySubject(_ context.Context, subjectID string) (*identity.Identity, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	ident, ok := d.bySubject[subjectID]
	if !ok {
		return nil, ErrNotFound
	}
	return ident.Clone(), nil
}

func (d *MemoryDirectory) ByPhone(_ context.Context, phone string) (*identity.Identity, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if phone == "" {
		return nil, ErrNotFound
	}
	ident, ok := d.byPhone[phone]
	if !ok {
		return nil, ErrNotFound
	}
	return ident.Clone(), nil
}

func (d *MemoryDirectory) Put(_ context.Context, ident *identity.Identity) error {
	if err := ident.Validate(); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	stored := ident.Clone()
	d.bySubject[stored.SubjectID] = stored
	if stored.Phone != "" {
		d.byPhone[stored.Phone] = stored
	}
	return nil
}
