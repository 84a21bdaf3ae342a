package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	listingapp "github.com/shopsync/backend/internal/application/listing"
	"github.com/shopsync/backend/internal/domain/listing"
)

// TemplateHandler handles listing template endpoints
type TemplateHandler struct {
	BaseHandler
	templates *listingapp.TemplateService
}

// NewTemplateHandler creates a new TemplateHandler
func NewTemplateHandler(templates *listingapp.TemplateService) *TemplateHandler {
	return &TemplateHandler{templates: templates}
}

// CreateTemplateRequest represents a request to create a template
type CreateTemplateRequest struct {
	PlatformID           string            `json:"platform_id" binding:"required,uuid"`
	Name                 string            `json:"name" binding:"required,min=1,max=100"`
	TitleTemplate        string            `json:"title_template" binding:"required"`
	DescriptionTemplate  string            `json:"description_template"`
	CategoryMapping      map[string]string `json:"category_mapping"`
	PriceAdjustmentType  string            `json:"price_adjustment_type" binding:"omitempty,oneof=none fixed percentage"`
	PriceAdjustmentValue float64           `json:"price_adjustment_value"`
	ShippingTemplate     string            `json:"shipping_template"`
	IsDefault            bool              `json:"is_default"`
}

// UpdateTemplateRequest represents a request to update a template
type UpdateTemplateRequest struct {
	Name                 string            `json:"name" binding:"omitempty,min=1,max=100"`
	TitleTemplate        string            `json:"title_template"`
	DescriptionTemplate  string            `json:"description_template"`
	CategoryMapping      map[string]string `json:"category_mapping"`
	PriceAdjustmentType  string            `json:"price_adjustment_type" binding:"omitempty,oneof=none fixed percentage"`
	PriceAdjustmentValue float64           `json:"price_adjustment_value"`
	ShippingTemplate     string            `json:"shipping_template"`
	IsDefault            bool              `json:"is_default"`
	IsActive             bool              `json:"is_active"`
}

// TemplateResponse represents a template in the response
type TemplateResponse struct {
	ID                   string            `json:"id"`
	PlatformID           string            `json:"platform_id"`
	Name                 string            `json:"name"`
	TitleTemplate        string            `json:"title_template"`
	DescriptionTemplate  string            `json:"description_template"`
	CategoryMapping      map[string]string `json:"category_mapping,omitempty"`
	PriceAdjustmentType  string            `json:"price_adjustment_type"`
	PriceAdjustmentValue string            `json:"price_adjustment_value"`
	ShippingTemplate     string            `json:"shipping_template,omitempty"`
	IsDefault            bool              `json:"is_default"`
	IsActive             bool              `json:"is_active"`
	CreatedAt            time.Time         `json:"created_at"`
	UpdatedAt            time.Time         `json:"updated_at"`
}

func toTemplateResponse(t *listing.ListingTemplate) TemplateResponse {
	return TemplateResponse{
		ID:                   t.ID.String(),
		PlatformID:           t.PlatformID.String(),
		Name:                 t.Name,
		TitleTemplate:        t.TitleTemplate,
		DescriptionTemplate:  t.DescriptionTemplate,
		CategoryMapping:      t.CategoryMapping,
		PriceAdjustmentType:  t.PriceAdjustmentType.String(),
		PriceAdjustmentValue: t.PriceAdjustmentValue.String(),
		ShippingTemplate:     t.ShippingTemplate,
		IsDefault:            t.IsDefault,
		IsActive:             t.IsActive,
		CreatedAt:            t.CreatedAt,
		UpdatedAt:            t.UpdatedAt,
	}
}

// Create stores a new template
func (h *TemplateHandler) Create(c *gin.Context) {
	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	platformID, err := uuid.Parse(req.PlatformID)
	if err != nil {
		h.BadRequest(c, "Invalid platform ID format")
		return
	}

	template, err := h.templates.Create(c.Request.Context(), listingapp.CreateTemplateRequest{
		PlatformID:           platformID,
		Name:                 req.Name,
		TitleTemplate:        req.TitleTemplate,
		DescriptionTemplate:  req.DescriptionTemplate,
		CategoryMapping:      req.CategoryMapping,
		PriceAdjustmentType:  listing.PriceAdjustmentType(req.PriceAdjustmentType),
		PriceAdjustmentValue: decimal.NewFromFloat(req.PriceAdjustmentValue),
		ShippingTemplate:     req.ShippingTemplate,
		IsDefault:            req.IsDefault,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, toTemplateResponse(template))
}

// GetByID returns one template
func (h *TemplateHandler) GetByID(c *gin.Context) {
	templateID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid template ID format")
		return
	}

	template, err := h.templates.Get(c.Request.Context(), templateID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toTemplateResponse(template))
}

// ListByPlatform returns the templates configured for one platform
func (h *TemplateHandler) ListByPlatform(c *gin.Context) {
	platformID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid platform ID format")
		return
	}

	templates, err := h.templates.ListByPlatform(c.Request.Context(), platformID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	responses := make([]TemplateResponse, len(templates))
	for i := range templates {
		responses[i] = toTemplateResponse(&templates[i])
	}
	h.Success(c, responses)
}

// Update edits a template
func (h *TemplateHandler) Update(c *gin.Context) {
	templateID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid template ID format")
		return
	}

	var req UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	template, err := h.templates.Update(c.Request.Context(), templateID, listingapp.UpdateTemplateRequest{
		Name:                 req.Name,
		TitleTemplate:        req.TitleTemplate,
		DescriptionTemplate:  req.DescriptionTemplate,
		CategoryMapping:      req.CategoryMapping,
		PriceAdjustmentType:  listing.PriceAdjustmentType(req.PriceAdjustmentType),
		PriceAdjustmentValue: decimal.NewFromFloat(req.PriceAdjustmentValue),
		ShippingTemplate:     req.ShippingTemplate,
		IsDefault:            req.IsDefault,
		IsActive:             req.IsActive,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toTemplateResponse(template))
}

// Delete removes a template
func (h *TemplateHandler) Delete(c *gin.Context) {
	templateID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid template ID format")
		return
	}

	if err := h.templates.Delete(c.Request.Context(), templateID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
