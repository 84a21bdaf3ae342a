package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shopsync/backend/internal/domain/listing"
)

// PlatformHandler serves the platform reference data
type PlatformHandler struct {
	BaseHandler
	platforms listing.PlatformRepository
}

// NewPlatformHandler creates a new PlatformHandler
func NewPlatformHandler(platforms listing.PlatformRepository) *PlatformHandler {
	return &PlatformHandler{platforms: platforms}
}

// PlatformResponse represents a platform in the response
type PlatformResponse struct {
	ID                        string    `json:"id"`
	Code                      string    `json:"code"`
	DisplayName               string    `json:"display_name"`
	SupportsCategories        bool      `json:"supports_categories"`
	SupportsShippingTemplates bool      `json:"supports_shipping_templates"`
	IsActive                  bool      `json:"is_active"`
	CreatedAt                 time.Time `json:"created_at"`
}

func toPlatformResponse(p *listing.Platform) PlatformResponse {
	return PlatformResponse{
		ID:                        p.ID.String(),
		Code:                      p.Code.String(),
		DisplayName:               p.DisplayName,
		SupportsCategories:        p.SupportsCategories,
		SupportsShippingTemplates: p.SupportsShippingTemplates,
		IsActive:                  p.IsActive,
		CreatedAt:                 p.CreatedAt,
	}
}

// List returns every active platform
func (h *PlatformHandler) List(c *gin.Context) {
	platforms, err := h.platforms.FindAllActive(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	responses := make([]PlatformResponse, len(platforms))
	for i := range platforms {
		responses[i] = toPlatformResponse(&platforms[i])
	}
	h.Success(c, responses)
}

// GetByID returns one platform
func (h *PlatformHandler) GetByID(c *gin.Context) {
	platformID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid platform ID format")
		return
	}

	platform, err := h.platforms.FindByID(c.Request.Context(), platformID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toPlatformResponse(platform))
}
