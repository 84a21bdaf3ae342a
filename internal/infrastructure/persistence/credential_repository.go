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

// GormCredentialRepository implements CredentialRepository using GORM
type GormCredentialRepository struct {
	db *gorm.DB
}

// NewGormCredentialRepository creates a new GormCredentialRepository
func NewGormCredentialRepository(db *gorm.DB) *GormCredentialRepository {
	return &GormCredentialRepository{db: db}
}

// GetByUserAndPlatform finds the credentials a user stored for one platform
func (r *GormCredentialRepository) GetByUserAndPlatform(ctx context.Context, userID, platformID uuid.UUID) (*listing.PlatformCredentials, error) {
	var model models.PlatformCredentialsModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND platform_id = ?", userID, platformID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, listing.ErrCredentialsNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUser finds all credentials a user has stored
func (r *GormCredentialRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]listing.PlatformCredentials, error) {
	var credentialModels []models.PlatformCredentialsModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&credentialModels).Error; err != nil {
		return nil, err
	}

	credentials := make([]listing.PlatformCredentials, len(credentialModels))
	for i, model := range credentialModels {
		credentials[i] = *model.ToDomain()
	}
	return credentials, nil
}

// Save creates or updates credentials. One row per (user, platform) pair; a
// second save for the same pair replaces the sealed payload.
func (r *GormCredentialRepository) Save(ctx context.Context, creds *listing.PlatformCredentials) error {
	model := models.PlatformCredentialsModelFromDomain(creds)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "platform_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(model).Error
}

// Delete deletes credentials by ID
func (r *GormCredentialRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PlatformCredentialsModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return listing.ErrCredentialsNotFound
	}
	return nil
}

// Ensure GormCredentialRepository implements CredentialRepository
var _ listing.CredentialRepository = (*GormCredentialRepository)(nil)
