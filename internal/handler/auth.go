package handler

import (
	"errors"
	"net/http"
	"time"

	"marketplace-service/internal/events"
	"marketplace-service/internal/identity"
	"marketplace-service/internal/logger"
	"marketplace-service/internal/middleware"
	"marketplace-service/internal/nav"
	"marketplace-service/internal/phone"
	"marketplace-service/internal/session"

	"github.com/gin-gonic/gin"
)

const (
	challengeCookieName = "__otp_challenge"
	challengeTTL        = 5 * time.Minute
)

type sendCodeRequest struct {
	Phone string `json:"phone"`
}

// sendCode starts phone verification. The challenge handle lives in a
// short-lived cookie scoped to the login flow; re-sending replaces the
// outstanding challenge, and expiry abandons it.
func (h *Handler) sendCode(c *gin.Context) {
	var req sendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	number, err := phone.Normalize(req.Phone)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid phone number"})
		return
	}

	challenge, err := h.verifier.SendCode(c.Request.Context(), number)
	if err != nil {
		status, msg := verifyErrorResponse(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	setChallengeCookie(c, challenge.ID)

	c.JSON(http.StatusOK, gin.H{
		"status": "code_sent",
		"phone":  number,
	})
}

type verifyCodeRequest struct {
	Code string `json:"code"`
}

// verifyCode confirms the outstanding challenge and, on success, feeds
// the verified binding into the navigation controller's login
// transition. A bad code leaves the flow in place for a retry.
func (h *Handler) verifyCode(c *gin.Context) {
	var req verifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	cookie, err := c.Request.Cookie(challengeCookieName)
	if err != nil || cookie.Value == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no verification in progress"})
		return
	}

	result, err := h.verifier.ConfirmCode(c.Request.Context(), cookie.Value, req.Code)
	if err != nil {
		status, msg := verifyErrorResponse(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	clearChallengeCookie(c)

	ctrl := middleware.Controller(c)
	screen, err := ctrl.LoginSuccess(c.Request.Context(), result.SubjectID, result.Phone)
	if err != nil {
		logger.Error("login transition failed", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	h.events.Publish(events.SubjectLogin, map[string]any{
		"subject_id": result.SubjectID,
		"screen":     string(screen),
	})

	c.JSON(http.StatusOK, loginResponse(ctrl, screen))
}

type selectRoleRequest struct {
	Role string `json:"role"`
}

// selectRole finishes role arbitration for a multi-role login.
func (h *Handler) selectRole(c *gin.Context) {
	var req selectRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	role, err := identity.ParseRole(req.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown role"})
		return
	}

	ctrl := middleware.Controller(c)
	screen, err := ctrl.SelectRole(c.Request.Context(), role)
	if errors.Is(err, nav.ErrInvalidRoleSelection) {
		// Should be unreachable with a correct client: the offered
		// choices always equal the held roles.
		logger.Error("invalid role selection", map[string]any{
			"role": string(role),
		})
		c.JSON(http.StatusConflict, gin.H{"error": "role not available"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, loginResponse(ctrl, screen))
}

func (h *Handler) logout(c *gin.Context) {
	ctrl := middleware.Controller(c)

	var subjectID string
	if ident := ctrl.Identity(); ident != nil {
		subjectID = ident.SubjectID
	}

	screen := ctrl.Logout(c.Request.Context())
	clearChallengeCookie(c)

	// Retire the browser session entirely; the next request starts a
	// fresh one at Home.
	h.sessions.Drop(middleware.SessionID(c))
	session.ClearCookie(c.Writer)

	if subjectID != "" {
		h.events.Publish(events.SubjectLogout, map[string]any{
			"subject_id": subjectID,
		})
	}

	c.JSON(http.StatusOK, gin.H{"screen": string(screen)})
}

func (h *Handler) me(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.Controller(c).Identity())
}

// loginResponse reports where the flow landed plus whatever the client
// needs next: the identity once authenticated, or the role choices
// while arbitration is pending.
func loginResponse(ctrl *nav.Controller, screen nav.Screen) gin.H {
	resp := gin.H{"screen": string(screen)}
	if ident := ctrl.Identity(); ident != nil {
		resp["identity"] = ident
	}
	if roles := ctrl.PendingRoles(); len(roles) > 0 {
		resp["roles"] = roles
	}
	return resp
}

func verifyErrorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, phone.ErrInvalidPhone):
		return http.StatusBadRequest, "invalid phone number"
	case errors.Is(err, phone.ErrInvalidCode):
		return http.StatusUnauthorized, "invalid verification code"
	default:
		return http.StatusServiceUnavailable, "verification service unavailable, try again"
	}
}

func setChallengeCookie(c *gin.Context, challengeID string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     challengeCookieName,
		Value:    challengeID,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(challengeTTL.Seconds()),
	})
}

func clearChallengeCookie(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     challengeCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
