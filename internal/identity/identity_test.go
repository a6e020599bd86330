package identity_test

import (
	"testing"

	"marketplace-service/internal/identity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAgent() *identity.Identity {
	return &identity.Identity{
		SubjectID:   "user_agent_1",
		Phone:       "+15550000001",
		Roles:       []identity.Role{identity.RoleAgent},
		ActiveRole:  identity.RoleAgent,
		DisplayName: "James Bond",
		Agent:       &identity.AgentProfile{ProducerNumber: "1234567890"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*identity.Identity)
		wantErr error
	}{
		{
			name:   "valid agent",
			mutate: func(*identity.Identity) {},
		},
		{
			name: "valid dual role",
			mutate: func(i *identity.Identity) {
				i.Roles = []identity.Role{identity.RoleAgent, identity.RoleVendor}
				i.Vendor = &identity.VendorProfile{BusinessName: "Bond LLC"}
			},
		},
		{
			name:    "empty roles",
			mutate:  func(i *identity.Identity) { i.Roles = nil },
			wantErr: identity.ErrNoRoles,
		},
		{
			name:    "active role not held",
			mutate:  func(i *identity.Identity) { i.ActiveRole = identity.RoleVendor },
			wantErr: identity.ErrActiveNotHeld,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ident := validAgent()
			tt.mutate(ident)
			err := ident.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateProfileRoleMismatch(t *testing.T) {
	ident := validAgent()
	ident.Vendor = &identity.VendorProfile{BusinessName: "Bond LLC"}
	assert.Error(t, ident.Validate(), "vendor profile on an agent-only identity")

	ident = validAgent()
	ident.Roles = []identity.Role{identity.RoleVendor}
	ident.ActiveRole = identity.RoleVendor
	ident.Agent = nil
	ident.Vendor = &identity.VendorProfile{}
	assert.Error(t, ident.Validate(), "vendor profile requires a business name")
}

func TestParseRole(t *testing.T) {
	r, err := identity.ParseRole("vendor")
	require.NoError(t, err)
	assert.Equal(t, identity.RoleVendor, r)

	_, err = identity.ParseRole("guest")
	assert.Error(t, err)
}

func TestCloneIsIndependent(t *testing.T) {
	orig := validAgent()
	clone := orig.Clone()

	clone.Roles[0] = identity.RoleVendor
	clone.Agent.ProducerNumber = "changed"

	assert.Equal(t, identity.RoleAgent, orig.Roles[0])
	assert.Equal(t, "1234567890", orig.Agent.ProducerNumber)
}

func TestMultiRole(t *testing.T) {
	ident := validAgent()
	assert.False(t, ident.MultiRole())

	ident.Roles = append(ident.Roles, identity.RoleVendor)
	assert.True(t, ident.MultiRole())
}
