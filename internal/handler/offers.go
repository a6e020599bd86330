package handler

import (
	"encoding/base64"
	"errors"
	"io"
	"net/http"

	"marketplace-service/internal/catalog"
	"marketplace-service/internal/events"
	"marketplace-service/internal/gen"
	"marketplace-service/internal/imaging"
	"marketplace-service/internal/middleware"

	"github.com/gin-gonic/gin"
)

const maxImageBytes = 10 << 20 // 10 MiB upload cap

func (h *Handler) listOffers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"offers": h.catalog.Offers()})
}

func (h *Handler) listCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": catalog.Categories})
}

func (h *Handler) myOffers(c *gin.Context) {
	ident := middleware.Controller(c).Identity()
	c.JSON(http.StatusOK, gin.H{"offers": h.catalog.OffersByVendor(ident.SubjectID)})
}

type createOfferRequest struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Category       string   `json:"category"`
	PricingModel   string   `json:"pricing_model"`
	PriceCents     int64    `json:"price_cents"`
	SetupFeeCents  int64    `json:"setup_fee_cents"`
	TurnaroundDays int      `json:"turnaround_days"`
	ImageURL       string   `json:"image_url"`
	VideoURL       string   `json:"video_url"`
	Keywords       []string `json:"keywords"`
}

// createOffer lists a new offer for the authenticated vendor. The
// vendor identity on the listing always comes from the session, never
// from the request body.
func (h *Handler) createOffer(c *gin.Context) {
	var req createOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	ident := middleware.Controller(c).Identity()

	vendorName := ident.DisplayName
	if ident.Vendor != nil && ident.Vendor.BusinessName != "" {
		vendorName = ident.Vendor.BusinessName
	}

	offer, err := h.catalog.AddOffer(catalog.Offer{
		VendorID:       ident.SubjectID,
		VendorName:     vendorName,
		Title:          req.Title,
		Description:    req.Description,
		Category:       req.Category,
		PricingModel:   catalog.PricingModel(req.PricingModel),
		PriceCents:     req.PriceCents,
		SetupFeeCents:  req.SetupFeeCents,
		TurnaroundDays: req.TurnaroundDays,
		ImageURL:       req.ImageURL,
		VideoURL:       req.VideoURL,
		Keywords:       req.Keywords,
	})
	if errors.Is(err, catalog.ErrInvalidOffer) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "title and category are required"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create offer"})
		return
	}

	h.events.Publish(events.SubjectOfferCreated, map[string]any{
		"offer_id":  offer.ID,
		"vendor_id": offer.VendorID,
	})

	c.JSON(http.StatusCreated, gin.H{"offer": offer})
}

type describeRequest struct {
	Title    string `json:"title"`
	Category string `json:"category"`
}

// describeOffer generates a marketing description for the offer form.
// When the provider is unconfigured or down, the static fallback text
// is returned with generated=false instead of an error.
func (h *Handler) describeOffer(c *gin.Context) {
	var req describeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	text, generated := gen.Describe(c.Request.Context(), h.generator, req.Title, req.Category)
	c.JSON(http.StatusOK, gin.H{
		"description": text,
		"generated":   generated,
	})
}

// cropOfferImage crops an uploaded image to the requested region and
// returns it as a base64 JPEG data URL, mirroring what the offer form
// stores on the listing.
func (h *Handler) cropOfferImage(c *gin.Context) {
	region := imaging.Region{}
	if err := c.ShouldBindQuery(&region); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid crop region"})
		return
	}

	file, _, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read image"})
		return
	}

	cropped, err := imaging.Crop(data, region)
	if errors.Is(err, imaging.ErrDecode) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "could not decode image, use JPG or PNG"})
		return
	}
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"image": "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(cropped),
	})
}

func (h *Handler) inbox(c *gin.Context) {
	ident := middleware.Controller(c).Identity()
	c.JSON(http.StatusOK, gin.H{
		"conversations": h.catalog.ConversationsFor(ident.SubjectID),
	})
}
