package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// BundlePricingType
// ---------------------------------------------------------------------------

// BundlePricingType selects how a bundle's selling price is derived
type BundlePricingType string

const (
	// BundlePricingFixed uses the bundle's own price field
	BundlePricingFixed BundlePricingType = "fixed"
	// BundlePricingCalculated sums component prices and applies the bundle discount
	BundlePricingCalculated BundlePricingType = "calculated"
)

// IsValid returns true if the pricing type is valid
func (t BundlePricingType) IsValid() bool {
	return t == BundlePricingFixed || t == BundlePricingCalculated
}

// ---------------------------------------------------------------------------
// ProductStatus
// ---------------------------------------------------------------------------

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusActive       ProductStatus = "active"
	ProductStatusInactive     ProductStatus = "inactive"
	ProductStatusDiscontinued ProductStatus = "discontinued"
)

// ---------------------------------------------------------------------------
// Product
// ---------------------------------------------------------------------------

// Product is a catalog item. A product may be a bundle composed of other
// products; bundle components and their pricing policy feed the listing
// engine's price computation.
type Product struct {
	// ID is the unique identifier of the product
	ID uuid.UUID
	// SKU is the stock keeping unit, unique across the catalog
	SKU string
	// Name is the product name
	Name string
	// Description is the long-form product description
	Description string
	// CategoryID is the local category, if any
	CategoryID *uuid.UUID
	// Price is the selling price; for fixed-priced bundles it is the bundle price
	Price decimal.Decimal
	// Currency is the ISO currency code
	Currency string
	// ImageURLs contains product image URLs
	ImageURLs []string
	// IsBundle indicates the product is composed of other products
	IsBundle bool
	// BundlePricingType selects the bundle price derivation; meaningless
	// unless IsBundle is true
	BundlePricingType BundlePricingType
	// BundleDiscountPercentage is the discount applied to the summed
	// component price under calculated pricing
	BundleDiscountPercentage decimal.Decimal
	// Status is the catalog status
	Status ProductStatus
	// CreatedAt is when the product was created
	CreatedAt time.Time
	// UpdatedAt is when the product was last edited
	UpdatedAt time.Time
}

// NewProduct creates a new non-bundle product
func NewProduct(sku, name string, price decimal.Decimal) (*Product, error) {
	if err := validateSKU(sku); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidProductName
	}

	now := time.Now()
	return &Product{
		ID:        uuid.New(),
		SKU:       strings.ToUpper(sku),
		Name:      name,
		Price:     price,
		Currency:  "USD",
		Status:    ProductStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// MakeBundle turns the product into a bundle with the given pricing policy
func (p *Product) MakeBundle(pricingType BundlePricingType, discountPercentage decimal.Decimal) error {
	if !pricingType.IsValid() {
		return ErrInvalidBundlePricing
	}
	p.IsBundle = true
	p.BundlePricingType = pricingType
	p.BundleDiscountPercentage = discountPercentage
	p.UpdatedAt = time.Now()
	return nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description string) error {
	if strings.TrimSpace(name) == "" {
		return ErrInvalidProductName
	}
	p.Name = name
	p.Description = description
	p.UpdatedAt = time.Now()
	return nil
}

func validateSKU(sku string) error {
	sku = strings.TrimSpace(sku)
	if sku == "" || len(sku) > 50 {
		return ErrInvalidProductSKU
	}
	return nil
}

// ---------------------------------------------------------------------------
// BundleComponent
// ---------------------------------------------------------------------------

// BundleComponent is one ordered line of a bundle
type BundleComponent struct {
	// ID is the unique identifier of the component line
	ID uuid.UUID
	// BundleID is the owning bundle product
	BundleID uuid.UUID
	// ComponentProductID is the contained product
	ComponentProductID uuid.UUID
	// Quantity is how many units of the component the bundle contains
	Quantity int
	// SortOrder orders components within the bundle
	SortOrder int
}

// ---------------------------------------------------------------------------
// Category
// ---------------------------------------------------------------------------

// Category is a local product category
type Category struct {
	// ID is the unique identifier of the category
	ID uuid.UUID
	// Name is the category name
	Name string
}

// ---------------------------------------------------------------------------
// ProductRepository
// ---------------------------------------------------------------------------

// ProductRepository persists products and assembles the snapshots the
// listing engine renders from
type ProductRepository interface {
	// FindByID finds a product by its ID, or ErrProductNotFound
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindAll returns products with pagination
	FindAll(ctx context.Context, limit, offset int) ([]Product, error)

	// GetSnapshot loads a product together with its category and, for
	// bundles, its components and their current prices
	GetSnapshot(ctx context.Context, id uuid.UUID) (*ProductSnapshot, error)

	// Save creates or updates a product
	Save(ctx context.Context, p *Product) error

	// ReplaceComponents replaces the component lines of a bundle
	ReplaceComponents(ctx context.Context, bundleID uuid.UUID, components []BundleComponent) error

	// Delete removes a product
	Delete(ctx context.Context, id uuid.UUID) error
}
