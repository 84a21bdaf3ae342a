package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shopsync/backend/internal/domain/catalog"
	"github.com/shopsync/backend/internal/infrastructure/persistence/models"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrProductNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll pages through products, oldest first
func (r *GormProductRepository) FindAll(ctx context.Context, limit, offset int) ([]catalog.Product, error) {
	var productModels []models.ProductModel
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&productModels).Error; err != nil {
		return nil, err
	}

	products := make([]catalog.Product, len(productModels))
	for i, model := range productModels {
		products[i] = *model.ToDomain()
	}
	return products, nil
}

// GetSnapshot loads a product together with its category and, for bundles,
// the component rows joined with their products' name and price. This is the
// single read the listing pipeline works from.
func (r *GormProductRepository) GetSnapshot(ctx context.Context, id uuid.UUID) (*catalog.ProductSnapshot, error) {
	product, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	snapshot := &catalog.ProductSnapshot{Product: *product}

	if product.CategoryID != nil {
		var categoryModel models.CategoryModel
		err := r.db.WithContext(ctx).First(&categoryModel, "id = ?", *product.CategoryID).Error
		if err == nil {
			snapshot.Category = categoryModel.ToDomain()
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	if product.IsBundle {
		components, err := r.loadComponentSnapshots(ctx, id)
		if err != nil {
			return nil, err
		}
		snapshot.Components = components
	}

	return snapshot, nil
}

// componentRow is the scan target for the component join
type componentRow struct {
	models.BundleComponentModel
	ProductName  string          `gorm:"column:product_name"`
	ProductPrice decimal.Decimal `gorm:"column:product_price"`
}

// loadComponentSnapshots joins bundle components with their products
func (r *GormProductRepository) loadComponentSnapshots(ctx context.Context, bundleID uuid.UUID) ([]catalog.ComponentSnapshot, error) {
	var rows []componentRow
	if err := r.db.WithContext(ctx).
		Table("bundle_components").
		Select("bundle_components.*, products.name AS product_name, products.price AS product_price").
		Joins("JOIN products ON products.id = bundle_components.component_product_id").
		Where("bundle_components.bundle_id = ?", bundleID).
		Order("bundle_components.sort_order ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	components := make([]catalog.ComponentSnapshot, len(rows))
	for i, row := range rows {
		components[i] = catalog.ComponentSnapshot{
			Component: row.BundleComponentModel.ToDomain(),
			Name:      row.ProductName,
			Price:     row.ProductPrice,
		}
	}
	return components, nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	model := models.ProductModelFromDomain(product)
	return r.db.WithContext(ctx).Save(model).Error
}

// ReplaceComponents swaps a bundle's component set atomically
func (r *GormProductRepository) ReplaceComponents(ctx context.Context, bundleID uuid.UUID, components []catalog.BundleComponent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.BundleComponentModel{}, "bundle_id = ?", bundleID).Error; err != nil {
			return err
		}
		if len(components) == 0 {
			return nil
		}

		componentModels := make([]*models.BundleComponentModel, len(components))
		for i, c := range components {
			componentModels[i] = models.BundleComponentModelFromDomain(c)
		}
		return tx.Create(componentModels).Error
	})
}

// Delete deletes a product and its component rows
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.BundleComponentModel{}, "bundle_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.ProductModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return catalog.ErrProductNotFound
		}
		return nil
	})
}

// Ensure GormProductRepository implements ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
