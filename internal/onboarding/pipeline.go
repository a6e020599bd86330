package onboarding

import (
	"context"
	"errors"
	"fmt"

	"marketplace-service/internal/identity"
	"marketplace-service/internal/identity/directory"

	"github.com/google/uuid"
)

// PendingAuth is the verified auth binding captured when a login attempt
// matched no known identity. It is carried into onboarding so the
// finalized record reuses the real subject id and phone instead of
// inventing them. Discarded once onboarding completes or is abandoned.
type PendingAuth struct {
	SubjectID string
	Phone     string
}

// Profile is the raw onboarding form input. Fields that do not apply to
// the chosen role are ignored at finalization.
type Profile struct {
	DisplayName    string
	Email          string
	ProducerNumber string // agent only
	BusinessName   string // vendor only
	BusinessPhone  string // vendor only
	Website        string // vendor only
	Categories     []string
}

var (
	ErrMissingName     = errors.New("onboarding: display name is required")
	ErrMissingBusiness = errors.New("onboarding: business name is required for vendors")
)

// Validate is the caller-side gate: the pipeline itself assumes
// validated input and performs no recovery.
func (p Profile) Validate(role identity.Role) error {
	if p.DisplayName == "" {
		return ErrMissingName
	}
	if role == identity.RoleVendor && p.BusinessName == "" {
		return ErrMissingBusiness
	}
	return nil
}

// Pipeline turns a chosen role plus profile data into a finalized
// single-role identity and registers it in the directory. Multi-role
// identities never originate here.
type Pipeline struct {
	dir directory.Directory
}

func NewPipeline(dir directory.Directory) *Pipeline {
	return &Pipeline{dir: dir}
}

func (p *Pipeline) Complete(
	ctx context.Context,
	role identity.Role,
	profile Profile,
	auth *PendingAuth,
) (*identity.Identity, error) {

	subjectID, phone := authBinding(auth)

	ident := &identity.Identity{
		SubjectID:   subjectID,
		Phone:       phone,
		Roles:       []identity.Role{role},
		ActiveRole:  role,
		DisplayName: profile.DisplayName,
		Email:       profile.Email,
	}

	switch role {
	case identity.RoleAgent:
		ident.Agent = &identity.AgentProfile{
			ProducerNumber: profile.ProducerNumber,
		}
	case identity.RoleVendor:
		ident.Vendor = &identity.VendorProfile{
			BusinessName:  profile.BusinessName,
			BusinessPhone: profile.BusinessPhone,
			Website:       profile.Website,
			Categories:    append([]string(nil), profile.Categories...),
		}
	}

	if err := ident.Validate(); err != nil {
		return nil, err
	}

	if err := p.dir.Put(ctx, ident); err != nil {
		return nil, fmt.Errorf("onboarding: register identity: %w", err)
	}

	return ident, nil
}

// authBinding prefers the real verified binding. The synthesized id is
// the degraded path for flows where authentication is unavailable; it
// carries a recognizable prefix so downstream systems can tell the two
// apart.
func authBinding(auth *PendingAuth) (subjectID, phone string) {
	if auth != nil && auth.SubjectID != "" {
		return auth.SubjectID, auth.Phone
	}
	return "local_" + uuid.NewString(), ""
}
