package handler

import (
	"errors"
	"net/http"

	"marketplace-service/internal/events"
	"marketplace-service/internal/identity"
	"marketplace-service/internal/middleware"
	"marketplace-service/internal/onboarding"

	"github.com/gin-gonic/gin"
)

type onboardingRequest struct {
	Role           string   `json:"role"`
	DisplayName    string   `json:"display_name"`
	Email          string   `json:"email"`
	ProducerNumber string   `json:"npn"`
	BusinessName   string   `json:"business_name"`
	BusinessPhone  string   `json:"business_phone"`
	Website        string   `json:"website"`
	Categories     []string `json:"categories"`
}

// completeOnboarding finalizes a new identity with the chosen role and
// profile. Validation failures stay on the onboarding screen.
func (h *Handler) completeOnboarding(c *gin.Context) {
	var req onboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	role, err := identity.ParseRole(req.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown role"})
		return
	}

	profile := onboarding.Profile{
		DisplayName:    req.DisplayName,
		Email:          req.Email,
		ProducerNumber: req.ProducerNumber,
		BusinessName:   req.BusinessName,
		BusinessPhone:  req.BusinessPhone,
		Website:        req.Website,
		Categories:     req.Categories,
	}

	ctrl := middleware.Controller(c)
	screen, err := ctrl.CompleteOnboarding(c.Request.Context(), role, profile)
	if errors.Is(err, onboarding.ErrMissingName) || errors.Is(err, onboarding.ErrMissingBusiness) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "onboarding failed"})
		return
	}

	ident := ctrl.Identity()
	h.events.Publish(events.SubjectOnboarded, map[string]any{
		"subject_id": ident.SubjectID,
		"role":       string(role),
	})

	c.JSON(http.StatusOK, gin.H{
		"screen":   string(screen),
		"identity": ident,
	})
}
