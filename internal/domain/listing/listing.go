package listing

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ---------------------------------------------------------------------------
// ListingStatus
// ---------------------------------------------------------------------------

// ListingStatus represents the local lifecycle state of a product listing
type ListingStatus string

const (
	// ListingStatusNotListed is the implicit state of a (product, platform)
	// pair with no ProductListing row; it never appears on a stored row
	ListingStatusNotListed ListingStatus = "not_listed"
	// ListingStatusPending indicates a create is in flight
	ListingStatusPending ListingStatus = "pending"
	// ListingStatusActive indicates the listing is live on the platform
	ListingStatusActive ListingStatus = "active"
	// ListingStatusError indicates the last operation against the platform failed
	ListingStatusError ListingStatus = "error"
	// ListingStatusRemoved indicates the listing vanished on the platform side
	ListingStatusRemoved ListingStatus = "removed"
)

// IsValid returns true if the status is valid
func (s ListingStatus) IsValid() bool {
	switch s {
	case ListingStatusNotListed, ListingStatusPending, ListingStatusActive,
		ListingStatusError, ListingStatusRemoved:
		return true
	default:
		return false
	}
}

// String returns the string representation of ListingStatus
func (s ListingStatus) String() string {
	return string(s)
}

// ---------------------------------------------------------------------------
// ProductListing
// ---------------------------------------------------------------------------

// ProductListing tracks one product's presence on one platform. At most one
// row exists per (product, platform) pair. The row is created on the first
// create attempt, successful or not, and deleted outright by the delete and
// error-reset flows, returning the pair to the implicit not_listed state.
type ProductListing struct {
	// ID is the unique identifier of the listing row
	ID uuid.UUID
	// ProductID is the local product
	ProductID uuid.UUID
	// PlatformID is the target platform
	PlatformID uuid.UUID
	// ExternalListingID is the platform's listing ID, empty until created
	ExternalListingID string
	// Status is the local lifecycle state
	Status ListingStatus
	// LastSyncedAt is when local state last agreed with the platform
	LastSyncedAt *time.Time
	// LastError holds the platform-supplied message of the last failure
	LastError string
	// ContentSnapshot is the payload actually sent to the platform
	ContentSnapshot *ListingContent
	// CreatedAt is when the row was created
	CreatedAt time.Time
	// UpdatedAt is when the row was last written
	UpdatedAt time.Time
}

// NewProductListing creates a pending listing row for a (product, platform) pair
func NewProductListing(productID, platformID uuid.UUID) (*ProductListing, error) {
	if productID == uuid.Nil {
		return nil, ErrInvalidListingID
	}
	if platformID == uuid.Nil {
		return nil, ErrInvalidPlatformID
	}

	now := time.Now()
	return &ProductListing{
		ID:         uuid.New(),
		ProductID:  productID,
		PlatformID: platformID,
		Status:     ListingStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// MarkActive records a confirmed live listing
func (l *ProductListing) MarkActive(externalID string, content *ListingContent) {
	now := time.Now()
	if externalID != "" {
		l.ExternalListingID = externalID
	}
	if content != nil {
		l.ContentSnapshot = content
	}
	l.Status = ListingStatusActive
	l.LastSyncedAt = &now
	l.LastError = ""
	l.UpdatedAt = now
}

// MarkError records a failed operation, keeping the platform message for
// operator diagnosis. The external ID is left untouched.
func (l *ProductListing) MarkError(message string) {
	l.Status = ListingStatusError
	l.LastError = message
	l.UpdatedAt = time.Now()
}

// MarkRemoved records that the listing vanished on the platform side. The
// external ID is retained so the row still identifies the remote listing.
func (l *ProductListing) MarkRemoved() {
	now := time.Now()
	l.Status = ListingStatusRemoved
	l.LastSyncedAt = &now
	l.UpdatedAt = now
}

// MarkSynced refreshes the sync timestamp and clears the last error after
// the platform confirmed the listing as active
func (l *ProductListing) MarkSynced() {
	now := time.Now()
	l.Status = ListingStatusActive
	l.LastSyncedAt = &now
	l.LastError = ""
	l.UpdatedAt = now
}

// HasRemotePresence reports whether a delete call must reach the platform
func (l *ProductListing) HasRemotePresence() bool {
	return l.ExternalListingID != "" && l.Status != ListingStatusNotListed
}

// ---------------------------------------------------------------------------
// ListingRepository
// ---------------------------------------------------------------------------

// ListingRepository persists ProductListing rows. Implementations must keep
// the (product_id, platform_id) pair unique; Save upserts by that pair.
type ListingRepository interface {
	// FindByID finds a listing by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*ProductListing, error)

	// FindByProductAndPlatform finds the row for one pair, or ErrListingNotFound
	FindByProductAndPlatform(ctx context.Context, productID, platformID uuid.UUID) (*ProductListing, error)

	// FindByProduct returns every listing row for a product
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]ProductListing, error)

	// FindAll returns listing rows with pagination
	FindAll(ctx context.Context, limit, offset int) ([]ProductListing, error)

	// Save creates or updates a listing row, upserting on (product, platform)
	Save(ctx context.Context, l *ProductListing) error

	// Delete removes a listing row, returning the pair to not_listed
	Delete(ctx context.Context, id uuid.UUID) error
}

// ---------------------------------------------------------------------------
// PairLocker
// ---------------------------------------------------------------------------

// PairLocker serializes operations on one (product, platform) pair so two
// concurrent requests cannot race to write conflicting rows. Acquire returns
// ErrPairLocked when another operation holds the pair.
type PairLocker interface {
	// Acquire takes the lock for a pair; the returned release func must be
	// called exactly once
	Acquire(ctx context.Context, productID, platformID uuid.UUID) (release func(), err error)
}
