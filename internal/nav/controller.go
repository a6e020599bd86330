package nav

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"marketplace-service/internal/identity"
	"marketplace-service/internal/identity/resolver"
	"marketplace-service/internal/logger"
	"marketplace-service/internal/onboarding"
	"marketplace-service/internal/session"
)

// ErrInvalidRoleSelection means a role outside the pending identity's
// role set was selected. The UI must only ever offer the held roles, so
// hitting this is a contract violation, not a user-facing condition.
var ErrInvalidRoleSelection = errors.New("nav: selected role not held by pending identity")

// Controller is the per-session state machine driving which screen is
// current and how identity evolves across login, onboarding, role
// selection and logout. Triggers are serialized by a mutex: each user's
// flow is logically single-threaded, but the HTTP server is not.
type Controller struct {
	mu sync.Mutex

	screen  Screen
	ident   *identity.Identity
	pending *identity.Identity      // multi-role identity awaiting arbitration
	auth    *onboarding.PendingAuth // verified binding awaiting onboarding

	store    session.Store
	resolver resolver.Resolver
	pipeline *onboarding.Pipeline
}

// NewController restores the session's identity, if any, and starts at
// Home. A load failure degrades to logged-out rather than failing the
// session.
func NewController(
	ctx context.Context,
	store session.Store,
	res resolver.Resolver,
	pipeline *onboarding.Pipeline,
) *Controller {

	c := &Controller{
		screen:   ScreenHome,
		store:    store,
		resolver: res,
		pipeline: pipeline,
	}

	ident, err := store.Load(ctx)
	if err != nil {
		logger.Warn("session restore failed", map[string]any{
			"error": err.Error(),
		})
	}
	c.ident = ident

	return c
}

// Current returns the current screen.
func (c *Controller) Current() Screen {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.screen
}

// Identity returns the authenticated identity, or nil when logged out.
func (c *Controller) Identity() *identity.Identity {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ident.Clone()
}

// PendingRoles returns the role choices awaiting arbitration. Empty
// when no arbitration is in progress. The set offered to the user must
// always equal the pending identity's held roles.
func (c *Controller) PendingRoles() []identity.Role {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return nil
	}
	return append([]identity.Role(nil), c.pending.Roles...)
}

// Navigate moves to the screen for path, applying the guard policy.
// Guard failures land on Home silently; unknown paths land on Home.
func (c *Controller) Navigate(path string) Screen {
	c.mu.Lock()
	defer c.mu.Unlock()

	target, ok := screenForPath(path)
	if !ok {
		c.screen = ScreenHome
		return c.screen
	}

	c.screen = c.guard(target)
	return c.screen
}

// guard applies the reachability policy. VendorDashboard needs an
// active vendor role, Inbox needs any authenticated identity,
// RoleSelection needs an arbitration in progress. Everything else is
// open. Failures redirect to Home rather than erroring; that
// fail-open behavior is deliberate product behavior.
func (c *Controller) guard(target Screen) Screen {
	switch target {
	case ScreenVendorDashboard:
		if c.ident == nil || c.ident.ActiveRole != identity.RoleVendor {
			return ScreenHome
		}
	case ScreenInbox:
		if c.ident == nil {
			return ScreenHome
		}
	case ScreenRoleSelection:
		if c.pending == nil {
			return ScreenHome
		}
	}
	return target
}

// LoginSuccess handles a verified phone login. Depending on what the
// resolver finds, the session either lands in the app (single role),
// parks on role selection (multi role), or enters onboarding with the
// auth binding carried forward (no match).
func (c *Controller) LoginSuccess(ctx context.Context, subjectID, phone string) (Screen, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ident, err := c.resolver.Resolve(ctx, subjectID, phone)
	if errors.Is(err, resolver.ErrNoMatch) {
		c.auth = &onboarding.PendingAuth{SubjectID: subjectID, Phone: phone}
		c.screen = ScreenOnboarding
		return c.screen, nil
	}
	if err != nil {
		return c.screen, fmt.Errorf("nav: login resolution: %w", err)
	}

	if ident.MultiRole() {
		c.pending = ident
		c.screen = ScreenRoleSelection
		return c.screen, nil
	}

	if err := c.store.Save(ctx, ident); err != nil {
		return c.screen, fmt.Errorf("nav: persist identity: %w", err)
	}

	c.ident = ident
	c.screen = landingScreen(ident.ActiveRole)
	return c.screen, nil
}

// CompleteOnboarding validates the profile, runs the onboarding
// pipeline with any pending auth binding, persists the finalized
// identity and routes to the role's landing screen.
func (c *Controller) CompleteOnboarding(
	ctx context.Context,
	role identity.Role,
	profile onboarding.Profile,
) (Screen, error) {

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := profile.Validate(role); err != nil {
		return c.screen, err
	}

	ident, err := c.pipeline.Complete(ctx, role, profile, c.auth)
	if err != nil {
		return c.screen, err
	}

	if err := c.store.Save(ctx, ident); err != nil {
		return c.screen, fmt.Errorf("nav: persist identity: %w", err)
	}

	c.ident = ident
	c.auth = nil
	c.screen = landingScreen(role)
	return c.screen, nil
}

// SelectRole finishes role arbitration. The chosen role must be one of
// the pending identity's held roles; anything else signals
// ErrInvalidRoleSelection and mutates nothing.
func (c *Controller) SelectRole(ctx context.Context, role identity.Role) (Screen, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending == nil {
		return c.screen, fmt.Errorf("nav: no role selection in progress")
	}
	if !c.pending.HasRole(role) {
		return c.screen, ErrInvalidRoleSelection
	}

	final := c.pending.Clone()
	final.ActiveRole = role

	if err := c.store.Save(ctx, final); err != nil {
		return c.screen, fmt.Errorf("nav: persist identity: %w", err)
	}

	c.ident = final
	c.pending = nil
	c.screen = landingScreen(role)
	return c.screen, nil
}

// Logout clears the persisted identity and returns to Home. Clearing
// is best-effort; the in-memory state is dropped regardless.
func (c *Controller) Logout(ctx context.Context) Screen {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Clear(ctx); err != nil {
		logger.Warn("session clear failed", map[string]any{
			"error": err.Error(),
		})
	}

	c.ident = nil
	c.pending = nil
	c.auth = nil
	c.screen = ScreenHome
	return c.screen
}

// landingScreen is where a role lands after login, onboarding or role
// selection: agents browse, vendors see their dashboard.
func landingScreen(role identity.Role) Screen {
	if role == identity.RoleVendor {
		return ScreenVendorDashboard
	}
	return ScreenBrowse
}
