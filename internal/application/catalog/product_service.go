// Package catalog contains the application services for managing the local
// product catalog the listing engine publishes from.
package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/shopsync/backend/internal/domain/catalog"
)

// ProductService manages catalog products and their bundle composition
type ProductService struct {
	products catalog.ProductRepository
	log      *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(products catalog.ProductRepository, log *zap.Logger) *ProductService {
	return &ProductService{products: products, log: log}
}

// CreateProductRequest carries the fields of a new product
type CreateProductRequest struct {
	SKU         string
	Name        string
	Description string
	CategoryID  *uuid.UUID
	Price       decimal.Decimal
	Currency    string
	ImageURLs   []string
}

// UpdateProductRequest carries the editable fields of a product
type UpdateProductRequest struct {
	Name        string
	Description string
	CategoryID  *uuid.UUID
	Price       *decimal.Decimal
	ImageURLs   []string
}

// BundleRequest turns a product into a bundle with the given components
type BundleRequest struct {
	PricingType        catalog.BundlePricingType
	DiscountPercentage decimal.Decimal
	Components         []BundleComponentRequest
}

// BundleComponentRequest is one component line of a bundle request
type BundleComponentRequest struct {
	ProductID uuid.UUID
	Quantity  int
}

// Create stores a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*catalog.Product, error) {
	product, err := catalog.NewProduct(req.SKU, req.Name, req.Price)
	if err != nil {
		return nil, err
	}

	product.Description = req.Description
	product.CategoryID = req.CategoryID
	product.ImageURLs = req.ImageURLs
	if req.Currency != "" {
		product.Currency = req.Currency
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	s.log.Info("product created",
		zap.String("product_id", product.ID.String()),
		zap.String("sku", product.SKU))

	return product, nil
}

// Update edits an existing product
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*catalog.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := product.Update(req.Name, req.Description); err != nil {
		return nil, err
	}
	product.CategoryID = req.CategoryID
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.ImageURLs != nil {
		product.ImageURLs = req.ImageURLs
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Get returns one product by ID
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	return s.products.FindByID(ctx, id)
}

// GetSnapshot returns the listing read model for a product
func (s *ProductService) GetSnapshot(ctx context.Context, id uuid.UUID) (*catalog.ProductSnapshot, error) {
	return s.products.GetSnapshot(ctx, id)
}

// List returns products with pagination
func (s *ProductService) List(ctx context.Context, limit, offset int) ([]catalog.Product, error) {
	return s.products.FindAll(ctx, limit, offset)
}

// MakeBundle converts a product into a bundle and replaces its components
func (s *ProductService) MakeBundle(ctx context.Context, id uuid.UUID, req BundleRequest) (*catalog.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	components := make([]catalog.BundleComponent, len(req.Components))
	for i, line := range req.Components {
		if line.ProductID == id {
			return nil, catalog.ErrComponentCycle
		}
		if _, err := s.products.FindByID(ctx, line.ProductID); err != nil {
			return nil, err
		}
		components[i] = catalog.BundleComponent{
			ID:                 uuid.New(),
			BundleID:           id,
			ComponentProductID: line.ProductID,
			Quantity:           line.Quantity,
			SortOrder:          i,
		}
	}

	if err := product.MakeBundle(req.PricingType, req.DiscountPercentage); err != nil {
		return nil, err
	}
	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	if err := s.products.ReplaceComponents(ctx, id, components); err != nil {
		return nil, err
	}

	return product, nil
}

// Delete removes a product from the catalog
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.products.FindByID(ctx, id); err != nil {
		return err
	}
	return s.products.Delete(ctx, id)
}
