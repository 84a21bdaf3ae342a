package handler

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	listingapp "github.com/shopsync/backend/internal/application/listing"
)

// CredentialHandler handles per-user platform credential endpoints. Plain
// payloads never leave the request scope; responses only carry metadata.
type CredentialHandler struct {
	BaseHandler
	credentials *listingapp.CredentialService
	listings    ListingService
}

// NewCredentialHandler creates a new CredentialHandler
func NewCredentialHandler(credentials *listingapp.CredentialService, listings ListingService) *CredentialHandler {
	return &CredentialHandler{credentials: credentials, listings: listings}
}

// StoreCredentialsRequest represents a request to store platform credentials
type StoreCredentialsRequest struct {
	// Payload is the provider-specific credential object, stored sealed
	Payload json.RawMessage `json:"payload" binding:"required"`
}

// TestCredentialsResponse reports the outcome of an authentication probe
type TestCredentialsResponse struct {
	Valid bool `json:"valid"`
}

// Store seals and upserts the caller's credentials for one platform
func (h *CredentialHandler) Store(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	platformID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid platform ID format")
		return
	}

	var req StoreCredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	info, err := h.credentials.Store(c.Request.Context(), userID, platformID, req.Payload)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, info)
}

// List returns the caller's configured credentials, payload omitted
func (h *CredentialHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	infos, err := h.credentials.List(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, infos)
}

// Delete removes the caller's credentials for one platform
func (h *CredentialHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	platformID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid platform ID format")
		return
	}

	if err := h.credentials.Delete(c.Request.Context(), userID, platformID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Test runs the platform's authentication probe with the stored credentials
func (h *CredentialHandler) Test(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	platformID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid platform ID format")
		return
	}

	valid, err := h.listings.TestCredentials(c.Request.Context(), userID, platformID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, TestCredentialsResponse{Valid: valid})
}
