package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopsync/backend/internal/domain/listing"
	"github.com/shopsync/backend/internal/infrastructure/persistence/models"
)

// GormPlatformRepository implements PlatformRepository using GORM
type GormPlatformRepository struct {
	db *gorm.DB
}

// NewGormPlatformRepository creates a new GormPlatformRepository
func NewGormPlatformRepository(db *gorm.DB) *GormPlatformRepository {
	return &GormPlatformRepository{db: db}
}

// FindByID finds a platform by its ID
func (r *GormPlatformRepository) FindByID(ctx context.Context, id uuid.UUID) (*listing.Platform, error) {
	var model models.PlatformModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, listing.ErrPlatformNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a platform by its code
func (r *GormPlatformRepository) FindByCode(ctx context.Context, code listing.PlatformCode) (*listing.Platform, error) {
	var model models.PlatformModel
	if err := r.db.WithContext(ctx).First(&model, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, listing.ErrPlatformNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllActive finds all active platforms
func (r *GormPlatformRepository) FindAllActive(ctx context.Context) ([]listing.Platform, error) {
	var platformModels []models.PlatformModel
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("code ASC").
		Find(&platformModels).Error; err != nil {
		return nil, err
	}

	platforms := make([]listing.Platform, len(platformModels))
	for i, model := range platformModels {
		platforms[i] = *model.ToDomain()
	}
	return platforms, nil
}

// Ensure GormPlatformRepository implements PlatformRepository
var _ listing.PlatformRepository = (*GormPlatformRepository)(nil)
