package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopsync/backend/internal/domain/listing"
	"github.com/shopsync/backend/internal/infrastructure/persistence/models"
)

// GormTemplateRepository implements TemplateRepository using GORM
type GormTemplateRepository struct {
	db *gorm.DB
}

// NewGormTemplateRepository creates a new GormTemplateRepository
func NewGormTemplateRepository(db *gorm.DB) *GormTemplateRepository {
	return &GormTemplateRepository{db: db}
}

// FindByID finds a template by its ID
func (r *GormTemplateRepository) FindByID(ctx context.Context, id uuid.UUID) (*listing.ListingTemplate, error) {
	var model models.ListingTemplateModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, listing.ErrTemplateNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindActiveByPlatform finds the active templates for a platform, default
// templates first, then oldest first. The leading entry is the one the
// orchestrator falls back to.
func (r *GormTemplateRepository) FindActiveByPlatform(ctx context.Context, platformID uuid.UUID) ([]listing.ListingTemplate, error) {
	var templateModels []models.ListingTemplateModel
	if err := r.db.WithContext(ctx).
		Where("platform_id = ? AND is_active = ?", platformID, true).
		Order("is_default DESC, created_at ASC").
		Find(&templateModels).Error; err != nil {
		return nil, err
	}

	templates := make([]listing.ListingTemplate, len(templateModels))
	for i, model := range templateModels {
		templates[i] = *model.ToDomain()
	}
	return templates, nil
}

// FindByPlatform finds all templates for a platform, active or not
func (r *GormTemplateRepository) FindByPlatform(ctx context.Context, platformID uuid.UUID) ([]listing.ListingTemplate, error) {
	var templateModels []models.ListingTemplateModel
	if err := r.db.WithContext(ctx).
		Where("platform_id = ?", platformID).
		Order("created_at ASC").
		Find(&templateModels).Error; err != nil {
		return nil, err
	}

	templates := make([]listing.ListingTemplate, len(templateModels))
	for i, model := range templateModels {
		templates[i] = *model.ToDomain()
	}
	return templates, nil
}

// Save creates or updates a template. Marking a template default clears the
// default flag on its platform siblings in the same transaction.
func (r *GormTemplateRepository) Save(ctx context.Context, template *listing.ListingTemplate) error {
	model := models.ListingTemplateModelFromDomain(template)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if template.IsDefault {
			if err := tx.Model(&models.ListingTemplateModel{}).
				Where("platform_id = ? AND id != ?", template.PlatformID, template.ID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Save(model).Error
	})
}

// Delete deletes a template
func (r *GormTemplateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ListingTemplateModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return listing.ErrTemplateNotFound
	}
	return nil
}

// Ensure GormTemplateRepository implements TemplateRepository
var _ listing.TemplateRepository = (*GormTemplateRepository)(nil)
