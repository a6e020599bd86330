package session

import (
	"context"
	"encoding/json"

	"marketplace-service/internal/identity"
	"marketplace-service/internal/logger"
)

// Store persists the authenticated identity for one browser session.
// Load returns (nil, nil) when nothing usable is stored: absence and
// corruption are both treated as logged-out, never as a caller failure.
type Store interface {
	Load(ctx context.Context) (*identity.Identity, error)
	Save(ctx context.Context, ident *identity.Identity) error
	Clear(ctx context.Context) error
}

// decodeIdentity leniently deserializes a stored identity record.
// Malformed or invariant-breaking data yields nil, with the condition
// logged, so a corrupt record degrades to a fresh logged-out session.
func decodeIdentity(data []byte) *identity.Identity {
	var ident identity.Identity
	if err := json.Unmarshal(data, &ident); err != nil {
		logger.Warn("discarding malformed stored identity", map[string]any{
			"error": err.Error(),
		})
		return nil
	}
	if err := ident.Validate(); err != nil {
		logger.Warn("discarding invalid stored identity", map[string]any{
			"error": err.Error(),
		})
		return nil
	}
	return &ident
}
