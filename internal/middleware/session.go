package middleware

import (
	"net/http"
	"time"

	"marketplace-service/internal/logger"
	"marketplace-service/internal/nav"
	"marketplace-service/internal/session"

	"github.com/gin-gonic/gin"
)

const (
	controllerKey = "navController"
	sessionIDKey  = "sessionID"
)

// Session attaches the browser session's navigation controller to the
// request, minting a session cookie on first contact.
func Session(registry *nav.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := ""
		if cookie, err := c.Request.Cookie(session.CookieName); err == nil {
			sid = cookie.Value
		}

		if sid == "" {
			generated, err := session.GenerateID()
			if err != nil {
				logger.Error("session id generation failed", map[string]any{
					"error": err.Error(),
				})
				c.AbortWithStatus(http.StatusInternalServerError)
				return
			}
			sid = generated
			session.SetCookie(c.Writer, sid, time.Now().Add(24*time.Hour))
		}

		ctrl := registry.Controller(c.Request.Context(), sid)
		c.Set(controllerKey, ctrl)
		c.Set(sessionIDKey, sid)
		c.Next()
	}
}

// Controller extracts the session's navigation controller.
func Controller(c *gin.Context) *nav.Controller {
	v, _ := c.Get(controllerKey)
	ctrl, _ := v.(*nav.Controller)
	return ctrl
}

// SessionID extracts the browser session id.
func SessionID(c *gin.Context) string {
	v, _ := c.Get(sessionIDKey)
	sid, _ := v.(string)
	return sid
}
