// Package handler contains the gin handlers of the listing API.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shopsync/backend/internal/domain/catalog"
	"github.com/shopsync/backend/internal/domain/listing"
	"github.com/shopsync/backend/internal/interfaces/http/dto"
	"github.com/shopsync/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	if id := c.GetString("request_id"); id != "" {
		return id
	}
	return c.GetHeader("X-Request-ID")
}

// getUserID extracts the authenticated user's ID from JWT claims
func getUserID(c *gin.Context) (uuid.UUID, error) {
	userIDStr := middleware.GetJWTUserID(c)
	if userIDStr == "" {
		return uuid.Nil, errors.New("user ID not found in context")
	}
	return uuid.Parse(userIDStr)
}

// parseIDParam parses a UUID path parameter
func parseIDParam(c *gin.Context, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Param(name))
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a success response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, page, pageSize, count int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, page, pageSize, count))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the given status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// Unauthorized sends a 401 unauthorized response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// domainErrorCodes maps domain sentinel errors to API error codes
var domainErrorCodes = []struct {
	err  error
	code string
}{
	{catalog.ErrProductNotFound, dto.ErrCodeNotFound},
	{listing.ErrPlatformNotFound, dto.ErrCodeNotFound},
	{listing.ErrTemplateNotFound, dto.ErrCodeNotFound},
	{listing.ErrListingNotFound, dto.ErrCodeNotFound},
	{listing.ErrCredentialsNotFound, dto.ErrCodeNotFound},
	{listing.ErrPairLocked, dto.ErrCodePairLocked},
	{listing.ErrPlatformUnavailable, dto.ErrCodePlatformUnavailable},
	{listing.ErrPlatformInactive, dto.ErrCodeInvalidState},
	{listing.ErrTemplateInactive, dto.ErrCodeInvalidState},
	{listing.ErrTemplatePlatformMix, dto.ErrCodeValidation},
	{listing.ErrInvalidAdjustment, dto.ErrCodeValidation},
	{listing.ErrInvalidCredentials, dto.ErrCodeValidation},
	{listing.ErrInvalidPlatformCode, dto.ErrCodeValidation},
	{listing.ErrNegativePrice, dto.ErrCodeInvalidState},
	{catalog.ErrInvalidProductSKU, dto.ErrCodeValidation},
	{catalog.ErrInvalidProductName, dto.ErrCodeValidation},
	{catalog.ErrInvalidBundlePricing, dto.ErrCodeValidation},
	{catalog.ErrComponentCycle, dto.ErrCodeValidation},
	{catalog.ErrNotABundle, dto.ErrCodeInvalidState},
}

// HandleDomainError converts domain errors to HTTP responses
func (h *BaseHandler) HandleDomainError(c *gin.Context, err error) {
	for _, mapping := range domainErrorCodes {
		if errors.Is(err, mapping.err) {
			h.Error(c, dto.GetHTTPStatus(mapping.code), mapping.code, mapping.err.Error())
			return
		}
	}
	h.InternalError(c, "An unexpected error occurred")
}
