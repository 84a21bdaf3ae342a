package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	listingapp "github.com/shopsync/backend/internal/application/listing"
	"github.com/shopsync/backend/internal/domain/listing"
)

// ListingService is the slice of the orchestrator the HTTP layer drives
type ListingService interface {
	CreateListings(ctx context.Context, req listingapp.CreateListingsRequest) (*listingapp.BulkResult, error)
	DeleteListings(ctx context.Context, req listingapp.DeleteListingsRequest) (*listingapp.BulkResult, error)
	SyncListingStatuses(ctx context.Context, req listingapp.SyncRequest) (*listingapp.BulkResult, error)
	ResetListing(ctx context.Context, productID, platformID uuid.UUID) error
	TestCredentials(ctx context.Context, actorID, platformID uuid.UUID) (bool, error)
}

// ListingHandler handles listing lifecycle endpoints
type ListingHandler struct {
	BaseHandler
	service  ListingService
	listings listing.ListingRepository
}

// NewListingHandler creates a new ListingHandler
func NewListingHandler(service ListingService, listings listing.ListingRepository) *ListingHandler {
	return &ListingHandler{service: service, listings: listings}
}

// CreateListingsRequest represents a request to publish a product
type CreateListingsRequest struct {
	PlatformIDs []string          `json:"platform_ids" binding:"required,min=1,dive,uuid"`
	TemplateIDs map[string]string `json:"template_ids"`
	CustomData  map[string]string `json:"custom_data"`
}

// DeleteListingsRequest represents a request to withdraw a product
type DeleteListingsRequest struct {
	PlatformIDs []string `json:"platform_ids" binding:"omitempty,dive,uuid"`
}

// SyncListingsRequest represents a request to reconcile listing statuses
type SyncListingsRequest struct {
	ProductID *string `json:"product_id" binding:"omitempty,uuid"`
}

// ListingRowResponse represents one stored listing row
type ListingRowResponse struct {
	ID                string                 `json:"id"`
	ProductID         string                 `json:"product_id"`
	PlatformID        string                 `json:"platform_id"`
	ExternalListingID string                 `json:"external_listing_id,omitempty"`
	Status            string                 `json:"status"`
	LastSyncedAt      *time.Time             `json:"last_synced_at,omitempty"`
	LastError         string                 `json:"last_error,omitempty"`
	ContentSnapshot   *listing.ListingContent `json:"content_snapshot,omitempty"`
	CreatedAt         time.Time              `json:"created_at"`
	UpdatedAt         time.Time              `json:"updated_at"`
}

func toListingRowResponse(row *listing.ProductListing) ListingRowResponse {
	return ListingRowResponse{
		ID:                row.ID.String(),
		ProductID:         row.ProductID.String(),
		PlatformID:        row.PlatformID.String(),
		ExternalListingID: row.ExternalListingID,
		Status:            row.Status.String(),
		LastSyncedAt:      row.LastSyncedAt,
		LastError:         row.LastError,
		ContentSnapshot:   row.ContentSnapshot,
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}
}

// Create publishes a product to the requested platforms
func (h *ListingHandler) Create(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req CreateListingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	appReq := listingapp.CreateListingsRequest{
		ProductID:  productID,
		ActorID:    actorID,
		CustomData: req.CustomData,
	}

	appReq.PlatformIDs = make([]uuid.UUID, len(req.PlatformIDs))
	for i, raw := range req.PlatformIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid platform ID format")
			return
		}
		appReq.PlatformIDs[i] = id
	}

	if len(req.TemplateIDs) > 0 {
		appReq.TemplateIDs = make(map[uuid.UUID]uuid.UUID, len(req.TemplateIDs))
		for rawPlatform, rawTemplate := range req.TemplateIDs {
			platformID, err := uuid.Parse(rawPlatform)
			if err != nil {
				h.BadRequest(c, "Invalid platform ID in template map")
				return
			}
			templateID, err := uuid.Parse(rawTemplate)
			if err != nil {
				h.BadRequest(c, "Invalid template ID in template map")
				return
			}
			appReq.TemplateIDs[platformID] = templateID
		}
	}

	result, err := h.service.CreateListings(c.Request.Context(), appReq)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// List returns the stored listing rows for a product
func (h *ListingHandler) List(c *gin.Context) {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	rows, err := h.listings.FindByProduct(c.Request.Context(), productID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	responses := make([]ListingRowResponse, len(rows))
	for i := range rows {
		responses[i] = toListingRowResponse(&rows[i])
	}
	h.Success(c, responses)
}

// Delete withdraws a product's listings
func (h *ListingHandler) Delete(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req DeleteListingsRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, err.Error())
			return
		}
	}

	appReq := listingapp.DeleteListingsRequest{ProductID: productID, ActorID: actorID}
	for _, raw := range req.PlatformIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid platform ID format")
			return
		}
		appReq.PlatformIDs = append(appReq.PlatformIDs, id)
	}

	result, err := h.service.DeleteListings(c.Request.Context(), appReq)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Sync reconciles listing statuses against the platforms
func (h *ListingHandler) Sync(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req SyncListingsRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, err.Error())
			return
		}
	}

	appReq := listingapp.SyncRequest{ActorID: actorID}
	if req.ProductID != nil && *req.ProductID != "" {
		productID, err := uuid.Parse(*req.ProductID)
		if err != nil {
			h.BadRequest(c, "Invalid product ID format")
			return
		}
		appReq.ProductID = &productID
	}

	result, err := h.service.SyncListingStatuses(c.Request.Context(), appReq)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Reset deletes an error listing row so the pair can be listed again
func (h *ListingHandler) Reset(c *gin.Context) {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	platformID, err := parseIDParam(c, "platformId")
	if err != nil {
		h.BadRequest(c, "Invalid platform ID format")
		return
	}

	if err := h.service.ResetListing(c.Request.Context(), productID, platformID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
