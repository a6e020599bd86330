package session_test

import (
	"context"
	"testing"

	"marketplace-service/internal/identity"
	"marketplace-service/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storedIdentity() *identity.Identity {
	return &identity.Identity{
		SubjectID:   "user_vendor_1",
		Phone:       "+15550000002",
		Roles:       []identity.Role{identity.RoleVendor},
		ActiveRole:  identity.RoleVendor,
		DisplayName: "Acme Marketing",
		Badges:      []string{"Top Rated"},
		Vendor:      &identity.VendorProfile{BusinessName: "Acme Marketing LLC"},
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()

	ident := storedIdentity()
	require.NoError(t, store.Save(ctx, ident))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, ident, loaded)
}

func TestMemoryStoreAbsent(t *testing.T) {
	loaded, err := session.NewMemoryStore().Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestMemoryStoreClear(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()

	require.NoError(t, store.Save(ctx, storedIdentity()))
	require.NoError(t, store.Clear(ctx))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

// A corrupt record behaves as absent rather than failing the caller.
func TestMalformedStoredIdentityTreatedAsAbsent(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()

	require.NoError(t, store.Save(ctx, storedIdentity()))
	store.Corrupt()

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestSaveRejectsInvalidIdentity(t *testing.T) {
	store := session.NewMemoryStore()

	broken := storedIdentity()
	broken.ActiveRole = identity.RoleAgent // not in roles

	assert.ErrorIs(t, store.Save(context.Background(), broken), identity.ErrActiveNotHeld)
}

func TestGenerateIDUnique(t *testing.T) {
	a, err := session.GenerateID()
	require.NoError(t, err)
	b, err := session.GenerateID()
	require.NoError(t, err)

	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
