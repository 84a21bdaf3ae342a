package listing

import (
	"context"
	"fmt"
	"time"
)

// ---------------------------------------------------------------------------
// RemoteStatus
// ---------------------------------------------------------------------------

// RemoteStatus is the platform's authoritative view of one listing
type RemoteStatus string

const (
	// RemoteStatusActive means the listing is live on the platform
	RemoteStatusActive RemoteStatus = "active"
	// RemoteStatusInactive means the listing exists but is not purchasable
	RemoteStatusInactive RemoteStatus = "inactive"
	// RemoteStatusNotFound means the listing no longer exists on the platform
	RemoteStatusNotFound RemoteStatus = "not_found"
)

// ListingStatusReport is the result of a status probe against the platform
type ListingStatusReport struct {
	// Status is the platform's view of the listing
	Status RemoteStatus
	// LastModified is when the platform last changed the listing, if known
	LastModified *time.Time
}

// ---------------------------------------------------------------------------
// PlatformError
// ---------------------------------------------------------------------------

// PlatformError carries the platform's own error text when a remote API
// rejects a payload: bad category, missing fields, expired auth, rate limits.
type PlatformError struct {
	// Platform is the platform that rejected the request
	Platform PlatformCode
	// Code is the platform-specific error code, if any
	Code string
	// Message is the platform-supplied error text
	Message string
}

// Error implements the error interface
func (e *PlatformError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Platform, e.Message, e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Platform, e.Message)
}

// NewPlatformError creates a new platform rejection error
func NewPlatformError(platform PlatformCode, code, message string) *PlatformError {
	return &PlatformError{Platform: platform, Code: code, Message: message}
}

// ---------------------------------------------------------------------------
// PlatformAdapter Port
// ---------------------------------------------------------------------------

// PlatformAdapter is the capability set every marketplace implementation must
// satisfy. Adapters are pure platform I/O: they never touch repositories.
// One adapter instance is bound to one platform and one user's credentials.
type PlatformAdapter interface {
	// PlatformCode returns the platform this adapter talks to
	PlatformCode() PlatformCode

	// Authenticate performs a cheap call validating the bound credentials
	Authenticate(ctx context.Context) (bool, error)

	// CreateListing publishes the content and returns the external listing ID.
	// Rejections surface as *PlatformError.
	CreateListing(ctx context.Context, content *ListingContent) (string, error)

	// UpdateListing replaces the content of an existing listing
	UpdateListing(ctx context.Context, externalID string, content *ListingContent) error

	// DeleteListing withdraws a listing. Deleting a listing that no longer
	// exists on the platform is success (idempotent).
	DeleteListing(ctx context.Context, externalID string) error

	// GetListingStatus probes the platform's view of a listing. A remote
	// 404-equivalent yields RemoteStatusNotFound, not an error.
	GetListingStatus(ctx context.Context, externalID string) (*ListingStatusReport, error)
}

// AdapterFactory constructs the adapter for a platform from its reference
// data and one user's unsealed credentials. Construction performs no I/O.
type AdapterFactory interface {
	NewAdapter(platform *Platform, credentialPayload []byte) (PlatformAdapter, error)
}
