package listing

import (
	"github.com/google/uuid"

	"github.com/shopsync/backend/internal/domain/listing"
)

// CreateListingsRequest asks the orchestrator to publish one product to a
// set of platforms
type CreateListingsRequest struct {
	// ProductID is the product to publish
	ProductID uuid.UUID
	// PlatformIDs are the target platforms; result order follows this order
	PlatformIDs []uuid.UUID
	// TemplateIDs optionally pins a template per platform; platforms not in
	// the map fall back to the platform's default active template
	TemplateIDs map[uuid.UUID]uuid.UUID
	// CustomData overrides computed substitution tokens
	CustomData map[string]string
	// ActorID is the admin whose stored credentials are used
	ActorID uuid.UUID
}

// DeleteListingsRequest asks the orchestrator to withdraw a product's listings
type DeleteListingsRequest struct {
	// ProductID is the product to withdraw
	ProductID uuid.UUID
	// PlatformIDs limits the withdrawal; empty means every listed platform
	PlatformIDs []uuid.UUID
	// ActorID is the admin whose stored credentials are used
	ActorID uuid.UUID
}

// SyncRequest asks the orchestrator to reconcile local rows with the platforms
type SyncRequest struct {
	// ProductID limits the sync to one product; nil means all listings
	ProductID *uuid.UUID
	// ActorID is the admin whose stored credentials are used
	ActorID uuid.UUID
}

// PlatformResult is one platform's outcome within a bulk operation. A bulk
// action over several platforms reports partial success explicitly; only
// global preconditions surface as errors from the orchestrator itself.
type PlatformResult struct {
	// PlatformID is the platform this outcome belongs to
	PlatformID uuid.UUID `json:"platform_id"`
	// PlatformCode is the platform's code, for display
	PlatformCode listing.PlatformCode `json:"platform_code"`
	// Status is the listing's local status after the operation
	Status listing.ListingStatus `json:"status"`
	// ExternalListingID is the platform's listing ID, when known
	ExternalListingID string `json:"external_listing_id,omitempty"`
	// Error is the failure message for this platform, empty on success
	Error string `json:"error,omitempty"`
}

// BulkResult aggregates per-platform outcomes in the caller-given order
type BulkResult struct {
	// ProductID is the product the operation ran for, when scoped to one
	ProductID uuid.UUID `json:"product_id,omitempty"`
	// Results holds one entry per requested platform, input order preserved
	Results []PlatformResult `json:"results"`
}

// Succeeded counts outcomes that ended in the given status
func (r *BulkResult) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if res.Error == "" {
			n++
		}
	}
	return n
}

// Failed counts outcomes that carry an error
func (r *BulkResult) Failed() int {
	return len(r.Results) - r.Succeeded()
}
