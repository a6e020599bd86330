package identity

import (
	"errors"
	"fmt"
)

// Role is a marketplace role tag held by an identity.
type Role string

const (
	RoleAgent  Role = "agent"
	RoleVendor Role = "vendor"
)

// ParseRole converts a wire value into a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAgent:
		return RoleAgent, nil
	case RoleVendor:
		return RoleVendor, nil
	}
	return "", fmt.Errorf("unknown role: %q", s)
}

// AgentProfile holds the attributes that only exist for the agent role.
type AgentProfile struct {
	ProducerNumber string `json:"npn,omitempty"` // national producer number
}

// VendorProfile holds the attributes that only exist for the vendor role.
type VendorProfile struct {
	BusinessName  string   `json:"business_name"`
	BusinessPhone string   `json:"business_phone,omitempty"`
	Website       string   `json:"website,omitempty"`
	Categories    []string `json:"categories,omitempty"`
}

// Identity represents a person using the marketplace. It contains the
// stable auth binding (SubjectID + Phone), the set of roles the person
// holds, and exactly one active role that decides which screens are
// reachable. Role-conditional attributes live in typed sub-profiles so
// an agent record cannot carry vendor fields and vice versa.
type Identity struct {
	SubjectID   string   `json:"subject_id"`
	Phone       string   `json:"phone,omitempty"`
	Roles       []Role   `json:"roles"`
	ActiveRole  Role     `json:"active_role"`
	DisplayName string   `json:"display_name"`
	Email       string   `json:"email,omitempty"`
	Badges      []string `json:"badges,omitempty"`

	Agent  *AgentProfile  `json:"agent,omitempty"`
	Vendor *VendorProfile `json:"vendor,omitempty"`
}

var (
	ErrNoRoles       = errors.New("identity: roles must not be empty")
	ErrActiveNotHeld = errors.New("identity: active role not in held roles")
)

// HasRole reports whether the identity holds the given role tag.
func (i *Identity) HasRole(r Role) bool {
	for _, held := range i.Roles {
		if held == r {
			return true
		}
	}
	return false
}

// MultiRole reports whether the identity needs role arbitration
// before it can enter the app.
func (i *Identity) MultiRole() bool {
	return len(i.Roles) > 1
}

// Validate checks the finalized-identity invariants: a non-empty role
// set, an active role drawn from it, and profile attachments that match
// the held roles.
func (i *Identity) Validate() error {
	if i.SubjectID == "" {
		return errors.New("identity: missing subject id")
	}
	if len(i.Roles) == 0 {
		return ErrNoRoles
	}
	if !i.HasRole(i.ActiveRole) {
		return ErrActiveNotHeld
	}
	if i.Agent != nil && !i.HasRole(RoleAgent) {
		return errors.New("identity: agent profile on non-agent")
	}
	if i.Vendor != nil && !i.HasRole(RoleVendor) {
		return errors.New("identity: vendor profile on non-vendor")
	}
	if i.Vendor != nil && i.Vendor.BusinessName == "" {
		return errors.New("identity: vendor profile missing business name")
	}
	return nil
}

// Clone returns a deep copy so pending identities can be handed out
// without aliasing the stored record.
func (i *Identity) Clone() *Identity {
	if i == nil {
		return nil
	}
	out := *i
	out.Roles = append([]Role(nil), i.Roles...)
	out.Badges = append([]string(nil), i.Badges...)
	if i.Agent != nil {
		a := *i.Agent
		out.Agent = &a
	}
	if i.Vendor != nil {
		v := *i.Vendor
		v.Categories = append([]string(nil), i.Vendor.Categories...)
		out.Vendor = &v
	}
	return &out
}
