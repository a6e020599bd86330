package handler

import (
	"marketplace-service/internal/catalog"
	"marketplace-service/internal/events"
	"marketplace-service/internal/gen"
	"marketplace-service/internal/identity"
	"marketplace-service/internal/middleware"
	"marketplace-service/internal/nav"
	"marketplace-service/internal/phone"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	verifier  phone.Verifier
	generator gen.Generator
	catalog   *catalog.Store
	events    *events.Publisher
	sessions  *nav.Registry
}

func NewHandler(
	verifier phone.Verifier,
	generator gen.Generator,
	cat *catalog.Store,
	publisher *events.Publisher,
	sessions *nav.Registry,
) *Handler {
	return &Handler{
		verifier:  verifier,
		generator: generator,
		catalog:   cat,
		events:    publisher,
		sessions:  sessions,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/auth/phone/send", h.sendCode)
	r.POST("/auth/phone/verify", h.verifyCode)
	r.POST("/auth/role", h.selectRole)
	r.POST("/auth/logout", h.logout)

	r.POST("/onboarding", h.completeOnboarding)

	r.GET("/nav/current", h.currentScreen)
	r.POST("/nav/goto", h.goToScreen)

	r.GET("/offers", h.listOffers)
	r.GET("/offers/categories", h.listCategories)
	r.POST("/offers/description", h.describeOffer)
	r.POST("/offers/image", h.cropOfferImage)

	vendor := r.Group("/")
	vendor.Use(middleware.RequireRole(identity.RoleVendor))
	vendor.POST("/offers", h.createOffer)
	vendor.GET("/offers/mine", h.myOffers)

	authed := r.Group("/")
	authed.Use(middleware.RequireIdentity())
	authed.GET("/inbox", h.inbox)
	authed.GET("/me", h.me)
}
