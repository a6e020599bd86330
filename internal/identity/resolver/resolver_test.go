package resolver_test

import (
	"context"
	"testing"

	"marketplace-service/internal/identity"
	"marketplace-service/internal/identity/directory"
	"marketplace-service/internal/identity/resolver"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePriorityOrder(t *testing.T) {
	ctx := context.Background()
	dir := directory.NewSeededDirectory()

	// Deliberately cross the keys: the agent's subject id with the
	// vendor's phone. The subject-id match must win.
	r := resolver.NewDirectoryResolver(dir)
	ident, err := r.Resolve(ctx, "user_agent_1", "+15550000002")
	require.NoError(t, err)
	assert.Equal(t, "user_agent_1", ident.SubjectID)
	assert.Equal(t, identity.RoleAgent, ident.ActiveRole)
}

func TestResolveByPhone(t *testing.T) {
	r := resolver.NewDirectoryResolver(directory.NewSeededDirectory())

	ident, err := r.Resolve(context.Background(), "unknown_subject", "+15550000002")
	require.NoError(t, err)
	assert.Equal(t, "user_vendor_1", ident.SubjectID)
	assert.Equal(t, identity.RoleVendor, ident.ActiveRole)
}

func TestResolveDualRoleSentinel(t *testing.T) {
	r := resolver.NewDirectoryResolver(directory.NewSeededDirectory())

	// The sentinel yields a two-role identity regardless of subject id.
	for _, subject := range []string{"", "some_subject", "another_subject"} {
		ident, err := r.Resolve(context.Background(), subject, resolver.DualRolePhone)
		require.NoError(t, err)
		assert.ElementsMatch(t,
			[]identity.Role{identity.RoleAgent, identity.RoleVendor},
			ident.Roles,
		)
		assert.True(t, ident.MultiRole())
		require.NoError(t, ident.Validate())
	}
}

func TestResolveDualRoleSubjectIsFresh(t *testing.T) {
	r := resolver.NewDirectoryResolver(directory.NewMemoryDirectory())

	a, err := r.Resolve(context.Background(), "s1", resolver.DualRolePhone)
	require.NoError(t, err)
	b, err := r.Resolve(context.Background(), "s2", resolver.DualRolePhone)
	require.NoError(t, err)

	assert.NotEqual(t, a.SubjectID, b.SubjectID)
}

func TestResolveNoMatch(t *testing.T) {
	r := resolver.NewDirectoryResolver(directory.NewSeededDirectory())

	_, err := r.Resolve(context.Background(), "nobody", "+15559999999")
	assert.ErrorIs(t, err, resolver.ErrNoMatch)
}

func TestResolveDoesNotMutateStoredRecord(t *testing.T) {
	ctx := context.Background()
	dir := directory.NewSeededDirectory()
	r := resolver.NewDirectoryResolver(dir)

	ident, err := r.Resolve(ctx, "user_agent_1", "")
	require.NoError(t, err)
	ident.DisplayName = "tampered"

	again, err := r.Resolve(ctx, "user_agent_1", "")
	require.NoError(t, err)
	assert.Equal(t, "James Bond", again.DisplayName)
}
