package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"marketplace-service/internal/catalog"
	"marketplace-service/internal/handler"
	"marketplace-service/internal/identity/directory"
	"marketplace-service/internal/identity/resolver"
	"marketplace-service/internal/middleware"
	"marketplace-service/internal/nav"
	"marketplace-service/internal/onboarding"
	"marketplace-service/internal/phone/dev"
	"marketplace-service/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// client drives the router while carrying cookies between requests,
// like a browser would.
type client struct {
	t       *testing.T
	router  *gin.Engine
	cookies map[string]string
}

func newTestClient(t *testing.T) *client {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := directory.NewSeededDirectory()
	stores := make(map[string]*session.MemoryStore)
	registry := nav.NewRegistry(
		func(sessionID string) session.Store {
			if s, ok := stores[sessionID]; ok {
				return s
			}
			s := session.NewMemoryStore()
			stores[sessionID] = s
			return s
		},
		resolver.NewDirectoryResolver(dir),
		onboarding.NewPipeline(dir),
	)

	h := handler.NewHandler(dev.New(), nil, catalog.NewSeededStore(), nil, registry)

	router := gin.New()
	router.Use(middleware.Session(registry))
	h.RegisterRoutes(router)

	return &client{t: t, router: router, cookies: make(map[string]string)}
}

func (c *client) do(method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	c.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for name, value := range c.cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}

	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	for _, cookie := range w.Result().Cookies() {
		if cookie.MaxAge < 0 || cookie.Value == "" {
			delete(c.cookies, cookie.Name)
			continue
		}
		c.cookies[cookie.Name] = cookie.Value
	}

	var resp map[string]any
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
	}
	return w, resp
}

// login runs the full OTP flow with the dev verifier's fixed code.
func (c *client) login(phoneNumber string) map[string]any {
	c.t.Helper()

	w, _ := c.do(http.MethodPost, "/auth/phone/send", gin.H{"phone": phoneNumber})
	require.Equal(c.t, http.StatusOK, w.Code)

	w, resp := c.do(http.MethodPost, "/auth/phone/verify", gin.H{"code": "123456"})
	require.Equal(c.t, http.StatusOK, w.Code)
	return resp
}

func TestKnownAgentLoginLandsOnBrowse(t *testing.T) {
	c := newTestClient(t)

	resp := c.login("+15550000001")
	assert.Equal(t, "browse", resp["screen"])

	ident := resp["identity"].(map[string]any)
	assert.Equal(t, "user_agent_1", ident["subject_id"])

	// Inbox is reachable and holds the seeded conversation.
	w, inboxResp := c.do(http.MethodGet, "/inbox", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, inboxResp["conversations"], 1)
}

func TestNewUserOnboardsAsVendor(t *testing.T) {
	c := newTestClient(t)

	resp := c.login("+15559998877")
	assert.Equal(t, "onboarding", resp["screen"])
	assert.Nil(t, resp["identity"])

	w, resp := c.do(http.MethodPost, "/onboarding", gin.H{
		"role":          "vendor",
		"display_name":  "New Vendor",
		"business_name": "New Vendor LLC",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "dashboard", resp["screen"])

	ident := resp["identity"].(map[string]any)
	// The verified dev auth binding flows into the finalized identity.
	assert.Equal(t, "dev_15559998877", ident["subject_id"])

	// The vendor can now list an offer.
	w, resp = c.do(http.MethodPost, "/offers", gin.H{
		"title":       "Exclusive FE Leads",
		"category":    "Inbound Call Vendor",
		"price_cents": 25000,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	offer := resp["offer"].(map[string]any)
	assert.Equal(t, "New Vendor LLC", offer["vendor_name"])

	w, resp = c.do(http.MethodGet, "/offers/mine", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp["offers"], 1)
}

func TestDualRoleLoginRequiresSelection(t *testing.T) {
	c := newTestClient(t)

	resp := c.login("+15550000003")
	assert.Equal(t, "role-selection", resp["screen"])
	assert.Nil(t, resp["identity"], "not authenticated until a role is picked")
	assert.ElementsMatch(t, []any{"agent", "vendor"}, resp["roles"])

	w, resp := c.do(http.MethodPost, "/auth/role", gin.H{"role": "vendor"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "dashboard", resp["screen"])
	ident := resp["identity"].(map[string]any)
	assert.Equal(t, "vendor", ident["active_role"])
}

func TestSelectUnknownRoleRejected(t *testing.T) {
	c := newTestClient(t)
	c.login("+15550000003")

	w, _ := c.do(http.MethodPost, "/auth/role", gin.H{"role": "admin"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWrongCodeKeepsFlowInPlace(t *testing.T) {
	c := newTestClient(t)

	w, _ := c.do(http.MethodPost, "/auth/phone/send", gin.H{"phone": "+15550000001"})
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = c.do(http.MethodPost, "/auth/phone/verify", gin.H{"code": "999999"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Still logged out.
	w, _ = c.do(http.MethodGet, "/inbox", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGuardsFailClosedOnDataRoutes(t *testing.T) {
	c := newTestClient(t)

	w, _ := c.do(http.MethodGet, "/inbox", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// An agent cannot create offers.
	c.login("+15550000001")
	w, _ = c.do(http.MethodPost, "/offers", gin.H{
		"title": "x", "category": "Coach",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestScreenGuardsRedirectSilently(t *testing.T) {
	c := newTestClient(t)
	c.login("+15550000001") // agent

	w, resp := c.do(http.MethodPost, "/nav/goto", gin.H{"path": "/dashboard"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "home", resp["screen"], "vendor dashboard bounces agents to home")

	w, resp = c.do(http.MethodPost, "/nav/goto", gin.H{"path": "/no-such-screen"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "home", resp["screen"])
}

func TestLogoutRoundTrip(t *testing.T) {
	c := newTestClient(t)
	c.login("+15550000001")

	w, resp := c.do(http.MethodPost, "/auth/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "home", resp["screen"])

	w, _ = c.do(http.MethodGet, "/inbox", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, resp = c.do(http.MethodGet, "/nav/current", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "home", resp["screen"])
}

func TestDescriptionFallsBackWithoutGenerator(t *testing.T) {
	c := newTestClient(t)

	w, resp := c.do(http.MethodPost, "/offers/description", gin.H{
		"title":    "Weekly Sales Coaching",
		"category": "Coach",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, resp["generated"])
	assert.NotEmpty(t, resp["description"])
}

func TestPublicOffersListing(t *testing.T) {
	c := newTestClient(t)

	w, resp := c.do(http.MethodGet, "/offers", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp["offers"], 3)

	w, resp = c.do(http.MethodGet, "/offers/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp["categories"], 5)
}
