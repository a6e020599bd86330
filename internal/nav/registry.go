package nav

import (
	"context"
	"sync"

	"marketplace-service/internal/identity/resolver"
	"marketplace-service/internal/onboarding"
	"marketplace-service/internal/session"
)

// StoreFactory builds a session store scoped to one browser session id.
type StoreFactory func(sessionID string) session.Store

// Registry hands out one controller per browser session, creating it on
// first use and restoring its identity from the scoped session store.
type Registry struct {
	mu          sync.Mutex
	controllers map[string]*Controller

	stores   StoreFactory
	resolver resolver.Resolver
	pipeline *onboarding.Pipeline
}

func NewRegistry(
	stores StoreFactory,
	res resolver.Resolver,
	pipeline *onboarding.Pipeline,
) *Registry {
	return &Registry{
		controllers: make(map[string]*Controller),
		stores:      stores,
		resolver:    res,
		pipeline:    pipeline,
	}
}

// Controller returns the controller for the given session id.
func (r *Registry) Controller(ctx context.Context, sessionID string) *Controller {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.controllers[sessionID]; ok {
		return c
	}

	c := NewController(ctx, r.stores(sessionID), r.resolver, r.pipeline)
	r.controllers[sessionID] = c
	return c
}

// Drop discards the controller for a session id, e.g. after logout of
// an expired session. The next request builds a fresh one.
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	delete(r.controllers, sessionID)
	r.mu.Unlock()
}
