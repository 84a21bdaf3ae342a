package listing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// PriceAdjustmentType
// ---------------------------------------------------------------------------

// PriceAdjustmentType is the closed set of template pricing rules
type PriceAdjustmentType string

const (
	// PriceAdjustmentNone leaves the base price unchanged
	PriceAdjustmentNone PriceAdjustmentType = "none"
	// PriceAdjustmentFixed adds a fixed amount to the base price
	PriceAdjustmentFixed PriceAdjustmentType = "fixed"
	// PriceAdjustmentPercentage scales the base price by a percentage
	PriceAdjustmentPercentage PriceAdjustmentType = "percentage"
)

// IsValid returns true if the adjustment type is valid
func (t PriceAdjustmentType) IsValid() bool {
	switch t {
	case PriceAdjustmentNone, PriceAdjustmentFixed, PriceAdjustmentPercentage:
		return true
	default:
		return false
	}
}

// String returns the string representation of PriceAdjustmentType
func (t PriceAdjustmentType) String() string {
	return string(t)
}

// Apply applies the adjustment to a base price
func (t PriceAdjustmentType) Apply(base, value decimal.Decimal) decimal.Decimal {
	switch t {
	case PriceAdjustmentFixed:
		return base.Add(value)
	case PriceAdjustmentPercentage:
		factor := decimal.NewFromInt(1).Add(value.Div(decimal.NewFromInt(100)))
		return base.Mul(factor)
	default:
		return base
	}
}

// ---------------------------------------------------------------------------
// ListingTemplate
// ---------------------------------------------------------------------------

// ListingTemplate is a reusable, platform-scoped rule set for turning a
// product into listing content. Templates are created and edited by admins;
// the sync engine only reads them.
type ListingTemplate struct {
	// ID is the unique identifier of the template
	ID uuid.UUID
	// PlatformID is the platform this template targets
	PlatformID uuid.UUID
	// Name is the admin-facing template name
	Name string
	// TitleTemplate is the token-substitution string for listing titles
	TitleTemplate string
	// DescriptionTemplate is the token-substitution string for descriptions
	DescriptionTemplate string
	// CategoryMapping maps local category IDs to platform category IDs
	CategoryMapping map[string]string
	// PriceAdjustmentType selects the pricing rule
	PriceAdjustmentType PriceAdjustmentType
	// PriceAdjustmentValue is the fixed amount or percentage to apply
	PriceAdjustmentValue decimal.Decimal
	// ShippingTemplate is passed through verbatim to the adapter
	ShippingTemplate string
	// IsDefault marks the template used when the caller names none.
	// At most one template per platform should be the default; resolution
	// tolerates violations by picking the first match deterministically.
	IsDefault bool
	// IsActive indicates the template may be used for new listings
	IsActive bool
	// CreatedAt is when the template was created
	CreatedAt time.Time
	// UpdatedAt is when the template was last edited
	UpdatedAt time.Time
}

// NewListingTemplate creates a new template with no price adjustment
func NewListingTemplate(platformID uuid.UUID, name, titleTemplate, descriptionTemplate string) (*ListingTemplate, error) {
	if platformID == uuid.Nil {
		return nil, ErrInvalidPlatformID
	}

	now := time.Now()
	return &ListingTemplate{
		ID:                   uuid.New(),
		PlatformID:           platformID,
		Name:                 name,
		TitleTemplate:        titleTemplate,
		DescriptionTemplate:  descriptionTemplate,
		CategoryMapping:      make(map[string]string),
		PriceAdjustmentType:  PriceAdjustmentNone,
		PriceAdjustmentValue: decimal.Zero,
		IsActive:             true,
		CreatedAt:            now,
		UpdatedAt:            now,
	}, nil
}

// Validate validates the template
func (t *ListingTemplate) Validate() error {
	if t.PlatformID == uuid.Nil {
		return ErrInvalidPlatformID
	}
	if !t.PriceAdjustmentType.IsValid() {
		return ErrInvalidAdjustment
	}
	return nil
}

// SetPriceAdjustment sets the pricing rule
func (t *ListingTemplate) SetPriceAdjustment(adjType PriceAdjustmentType, value decimal.Decimal) error {
	if !adjType.IsValid() {
		return ErrInvalidAdjustment
	}
	t.PriceAdjustmentType = adjType
	t.PriceAdjustmentValue = value
	t.UpdatedAt = time.Now()
	return nil
}

// MapCategory maps a local category ID to a platform category ID
func (t *ListingTemplate) MapCategory(localCategoryID, platformCategoryID string) {
	if t.CategoryMapping == nil {
		t.CategoryMapping = make(map[string]string)
	}
	t.CategoryMapping[localCategoryID] = platformCategoryID
	t.UpdatedAt = time.Now()
}

// ResolveCategory returns the platform category for a local category ID.
// A missing mapping is not fatal; the adapter receives an empty category.
func (t *ListingTemplate) ResolveCategory(localCategoryID string) string {
	if t.CategoryMapping == nil {
		return ""
	}
	return t.CategoryMapping[localCategoryID]
}

// MarkDefault marks this template as the platform default
func (t *ListingTemplate) MarkDefault() {
	t.IsDefault = true
	t.UpdatedAt = time.Now()
}

// ClearDefault clears the default flag
func (t *ListingTemplate) ClearDefault() {
	t.IsDefault = false
	t.UpdatedAt = time.Now()
}

// Deactivate removes the template from resolution
func (t *ListingTemplate) Deactivate() {
	t.IsActive = false
	t.UpdatedAt = time.Now()
}

// ---------------------------------------------------------------------------
// TemplateRepository
// ---------------------------------------------------------------------------

// TemplateRepository persists listing templates
type TemplateRepository interface {
	// FindByID finds a template by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*ListingTemplate, error)

	// FindActiveByPlatform returns active templates for a platform, default
	// templates first, then oldest first. Resolution relies on this ordering.
	FindActiveByPlatform(ctx context.Context, platformID uuid.UUID) ([]ListingTemplate, error)

	// FindByPlatform returns all templates for a platform
	FindByPlatform(ctx context.Context, platformID uuid.UUID) ([]ListingTemplate, error)

	// Save creates or updates a template
	Save(ctx context.Context, template *ListingTemplate) error

	// Delete removes a template
	Delete(ctx context.Context, id uuid.UUID) error
}
