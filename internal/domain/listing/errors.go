package listing

import "errors"

var (
	// Platform errors
	ErrInvalidPlatformID   = errors.New("listing: invalid platform ID")
	ErrInvalidPlatformCode = errors.New("listing: invalid platform code")
	ErrPlatformNotFound    = errors.New("listing: platform not found")
	ErrPlatformInactive    = errors.New("listing: platform is not active")

	// Credential errors
	ErrCredentialsNotFound = errors.New("listing: no credentials configured")
	ErrInvalidCredentials  = errors.New("listing: invalid credential payload")

	// Template errors
	ErrTemplateNotFound    = errors.New("listing: no template available")
	ErrTemplateInactive    = errors.New("listing: template is not active")
	ErrInvalidAdjustment   = errors.New("listing: invalid price adjustment type")
	ErrTemplatePlatformMix = errors.New("listing: template belongs to another platform")

	// Rendering errors
	ErrNegativePrice = errors.New("listing: rendered price is negative")

	// Listing errors
	ErrListingNotFound   = errors.New("listing: product listing not found")
	ErrListingExists     = errors.New("listing: product already listed on platform")
	ErrInvalidListingID  = errors.New("listing: invalid listing ID")
	ErrMissingExternalID = errors.New("listing: listing has no external ID")

	// Adapter errors
	ErrRemoteListingNotFound = errors.New("listing: remote listing not found")
	ErrAuthenticationFailed  = errors.New("listing: platform authentication failed")
	ErrPlatformUnavailable   = errors.New("listing: platform temporarily unavailable")

	// Concurrency errors
	ErrPairLocked = errors.New("listing: another operation is in progress for this product and platform")
)
