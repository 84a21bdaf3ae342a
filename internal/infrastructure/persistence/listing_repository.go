package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shopsync/backend/internal/domain/listing"
	"github.com/shopsync/backend/internal/infrastructure/persistence/models"
)

// GormListingRepository implements ListingRepository using GORM
type GormListingRepository struct {
	db *gorm.DB
}

// NewGormListingRepository creates a new GormListingRepository
func NewGormListingRepository(db *gorm.DB) *GormListingRepository {
	return &GormListingRepository{db: db}
}

// FindByID finds a listing row by its ID
func (r *GormListingRepository) FindByID(ctx context.Context, id uuid.UUID) (*listing.ProductListing, error) {
	var model models.ProductListingModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, listing.ErrListingNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByProductAndPlatform finds the row for a (product, platform) pair
func (r *GormListingRepository) FindByProductAndPlatform(ctx context.Context, productID, platformID uuid.UUID) (*listing.ProductListing, error) {
	var model models.ProductListingModel
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND platform_id = ?", productID, platformID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, listing.ErrListingNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByProduct finds all rows for a product
func (r *GormListingRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]listing.ProductListing, error) {
	var listingModels []models.ProductListingModel
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at ASC").
		Find(&listingModels).Error; err != nil {
		return nil, err
	}

	rows := make([]listing.ProductListing, len(listingModels))
	for i, model := range listingModels {
		rows[i] = *model.ToDomain()
	}
	return rows, nil
}

// FindAll pages through every listing row, oldest first
func (r *GormListingRepository) FindAll(ctx context.Context, limit, offset int) ([]listing.ProductListing, error) {
	var listingModels []models.ProductListingModel
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&listingModels).Error; err != nil {
		return nil, err
	}

	rows := make([]listing.ProductListing, len(listingModels))
	for i, model := range listingModels {
		rows[i] = *model.ToDomain()
	}
	return rows, nil
}

// Save creates or updates a listing row. The (product_id, platform_id) pair is
// unique, so a concurrent insert for the same pair collapses into an update.
func (r *GormListingRepository) Save(ctx context.Context, row *listing.ProductListing) error {
	model := models.ProductListingModelFromDomain(row)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "product_id"}, {Name: "platform_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"external_listing_id", "status", "last_synced_at",
				"last_error", "content_snapshot", "updated_at",
			}),
		}).
		Create(model).Error
}

// Delete deletes a listing row
func (r *GormListingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ProductListingModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return listing.ErrListingNotFound
	}
	return nil
}

// Ensure GormListingRepository implements ListingRepository
var _ listing.ListingRepository = (*GormListingRepository)(nil)
