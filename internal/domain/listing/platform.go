package listing

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ---------------------------------------------------------------------------
// PlatformCode
// ---------------------------------------------------------------------------

// PlatformCode identifies a supported marketplace platform
type PlatformCode string

const (
	// PlatformCodeFacebook represents Facebook Marketplace
	PlatformCodeFacebook PlatformCode = "FACEBOOK"
	// PlatformCodeEbay represents eBay
	PlatformCodeEbay PlatformCode = "EBAY"
)

// IsValid returns true if the platform code is valid
func (c PlatformCode) IsValid() bool {
	switch c {
	case PlatformCodeFacebook, PlatformCodeEbay:
		return true
	default:
		return false
	}
}

// String returns the string representation of PlatformCode
func (c PlatformCode) String() string {
	return string(c)
}

// DisplayName returns a human-readable name for the platform
func (c PlatformCode) DisplayName() string {
	switch c {
	case PlatformCodeFacebook:
		return "Facebook Marketplace"
	case PlatformCodeEbay:
		return "eBay"
	default:
		return string(c)
	}
}

// ---------------------------------------------------------------------------
// Platform
// ---------------------------------------------------------------------------

// Platform is immutable reference data describing one marketplace target.
// Rows are created by configuration/seed and never mutated by the sync engine.
type Platform struct {
	// ID is the unique identifier of the platform
	ID uuid.UUID
	// Code identifies which marketplace this is
	Code PlatformCode
	// DisplayName is the name shown in the dashboard
	DisplayName string
	// APIBaseURL is the base URL of the platform API
	APIBaseURL string
	// SupportsCategories indicates the platform accepts a category on listings
	SupportsCategories bool
	// SupportsShippingTemplates indicates the platform accepts a shipping template
	SupportsShippingTemplates bool
	// IsActive indicates the platform is available for new listings
	IsActive bool
	// CreatedAt is when the platform row was seeded
	CreatedAt time.Time
}

// Validate validates the platform reference data
func (p *Platform) Validate() error {
	if p.ID == uuid.Nil {
		return ErrInvalidPlatformID
	}
	if !p.Code.IsValid() {
		return ErrInvalidPlatformCode
	}
	return nil
}

// ---------------------------------------------------------------------------
// PlatformRepository
// ---------------------------------------------------------------------------

// PlatformRepository provides read access to platform reference data
type PlatformRepository interface {
	// FindByID finds a platform by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Platform, error)

	// FindByCode finds a platform by its code
	FindByCode(ctx context.Context, code PlatformCode) (*Platform, error)

	// FindAllActive returns every active platform
	FindAllActive(ctx context.Context) ([]Platform, error)
}
