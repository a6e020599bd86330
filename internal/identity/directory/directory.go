package directory

import (
	"context"
	"errors"

	"marketplace-service/internal/identity"
)

// ErrNotFound is returned when no known identity matches the lookup key.
var ErrNotFound = errors.New("directory: identity not found")

// Directory is the store of known identities. Resolution policy does not
// live here; this is lookup and registration only.
type Directory interface {
	// BySubject returns the identity bound to the given auth subject id.
	BySubject(ctx context.Context, subjectID string) (*identity.Identity, error)

	// ByPhone returns the identity bound to the given canonical phone number.
	ByPhone(ctx context.Context, phone string) (*identity.Identity, error)

	// Put registers or replaces an identity record.
	Put(ctx context.Context, ident *identity.Identity) error
}
