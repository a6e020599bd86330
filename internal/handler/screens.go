package handler

import (
	"net/http"

	"marketplace-service/internal/middleware"

	"github.com/gin-gonic/gin"
)

func (h *Handler) currentScreen(c *gin.Context) {
	ctrl := middleware.Controller(c)
	c.JSON(http.StatusOK, gin.H{"screen": string(ctrl.Current())})
}

type gotoRequest struct {
	Path string `json:"path"`
}

// goToScreen runs a navigation through the controller. Guard failures
// and unknown paths come back as Home; this endpoint never errors on
// where the user asked to go.
func (h *Handler) goToScreen(c *gin.Context) {
	var req gotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	ctrl := middleware.Controller(c)
	screen := ctrl.Navigate(req.Path)
	c.JSON(http.StatusOK, gin.H{"screen": string(screen)})
}
