package resolver

import (
	"context"
	"errors"
	"fmt"

	"marketplace-service/internal/identity"
	"marketplace-service/internal/identity/directory"

	"github.com/google/uuid"
)

// DualRolePhone is the sentinel number that always resolves to a
// two-role account. It exists so the role-selection flow can be
// exercised end to end without provisioning a real dual-role record.
const DualRolePhone = "+15550000003"

// DirectoryResolver resolves verified credentials against the identity
// directory. Lookup order is a deliberate policy, first match wins:
//
//  1. exact subject-id match
//  2. exact phone match
//  3. the dual-role sentinel phone
//  4. no match
type DirectoryResolver struct {
	dir directory.Directory
}

func NewDirectoryResolver(dir directory.Directory) *DirectoryResolver {
	return &DirectoryResolver{dir: dir}
}

func (r *DirectoryResolver) Resolve(
	ctx context.Context,
	subjectID, phone string,
) (*identity.Identity, error) {

	if subjectID != "" {
		ident, err := r.dir.BySubject(ctx, subjectID)
		if err == nil {
			return ident, nil
		}
		if !errors.Is(err, directory.ErrNotFound) {
			return nil, fmt.Errorf("resolver: subject lookup: %w", err)
		}
	}

	if phone != "" {
		ident, err := r.dir.ByPhone(ctx, phone)
		if err == nil {
			return ident, nil
		}
		if !errors.Is(err, directory.ErrNotFound) {
			return nil, fmt.Errorf("resolver: phone lookup: %w", err)
		}
	}

	if phone == DualRolePhone {
		return dualRoleIdentity(), nil
	}

	return nil, ErrNoMatch
}

// dualRoleIdentity builds a fresh two-role account. The subject id is
// generated per resolution so it never collides with a real record.
func dualRoleIdentity() *identity.Identity {
	return &identity.Identity{
		SubjectID:   "dual_" + uuid.NewString(),
		Phone:       DualRolePhone,
		Roles:       []identity.Role{identity.RoleAgent, identity.RoleVendor},
		ActiveRole:  identity.RoleAgent,
		DisplayName: "Super User",
		Badges:      []string{"Verified Payer"},
		Agent:       &identity.AgentProfile{ProducerNumber: "1234567890"},
		Vendor:      &identity.VendorProfile{BusinessName: "Super User LLC"},
	}
}
