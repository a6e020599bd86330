package resolver

import (
	"context"
	"errors"

	"marketplace-service/internal/identity"
)

// ErrNoMatch means the credentials belong to no known identity and the
// caller should start onboarding.
var ErrNoMatch = errors.New("resolver: no matching identity")

// Resolver decides which known identity, if any, a verified auth binding
// belongs to. It is the ONLY place where credential-to-identity mapping
// policy lives. Implementations are pure lookups and never mutate role
// assignment.
type Resolver interface {
	Resolve(ctx context.Context, subjectID, phone string) (*identity.Identity, error)
}
