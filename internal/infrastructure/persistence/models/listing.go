package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopsync/backend/internal/domain/listing"
)

// PlatformModel is the persistence model for the Platform domain entity.
type PlatformModel struct {
	ID                        uuid.UUID            `gorm:"type:uuid;primary_key"`
	Code                      listing.PlatformCode `gorm:"type:varchar(20);not null;uniqueIndex"`
	DisplayName               string               `gorm:"type:varchar(100);not null"`
	APIBaseURL                string               `gorm:"type:varchar(255)"`
	SupportsCategories        bool                 `gorm:"not null;default:false"`
	SupportsShippingTemplates bool                 `gorm:"not null;default:false"`
	IsActive                  bool                 `gorm:"not null;default:true"`
	CreatedAt                 time.Time            `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PlatformModel) TableName() string {
	return "platforms"
}

// ToDomain converts the persistence model to a domain Platform entity.
func (m *PlatformModel) ToDomain() *listing.Platform {
	return &listing.Platform{
		ID:                        m.ID,
		Code:                      m.Code,
		DisplayName:               m.DisplayName,
		APIBaseURL:                m.APIBaseURL,
		SupportsCategories:        m.SupportsCategories,
		SupportsShippingTemplates: m.SupportsShippingTemplates,
		IsActive:                  m.IsActive,
		CreatedAt:                 m.CreatedAt,
	}
}

// PlatformModelFromDomain creates a new persistence model from a domain Platform entity.
func PlatformModelFromDomain(p *listing.Platform) *PlatformModel {
	return &PlatformModel{
		ID:                        p.ID,
		Code:                      p.Code,
		DisplayName:               p.DisplayName,
		APIBaseURL:                p.APIBaseURL,
		SupportsCategories:        p.SupportsCategories,
		SupportsShippingTemplates: p.SupportsShippingTemplates,
		IsActive:                  p.IsActive,
		CreatedAt:                 p.CreatedAt,
	}
}

// PlatformCredentialsModel is the persistence model for PlatformCredentials.
// The payload column holds the sealed ciphertext, never the raw tokens.
type PlatformCredentialsModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_credentials_user_platform,priority:1"`
	PlatformID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_credentials_user_platform,priority:2"`
	Payload    []byte    `gorm:"type:bytea;not null"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PlatformCredentialsModel) TableName() string {
	return "platform_credentials"
}

// ToDomain converts the persistence model to a domain PlatformCredentials entity.
func (m *PlatformCredentialsModel) ToDomain() *listing.PlatformCredentials {
	return &listing.PlatformCredentials{
		ID:         m.ID,
		UserID:     m.UserID,
		PlatformID: m.PlatformID,
		Payload:    m.Payload,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// PlatformCredentialsModelFromDomain creates a new persistence model from a domain entity.
func PlatformCredentialsModelFromDomain(c *listing.PlatformCredentials) *PlatformCredentialsModel {
	return &PlatformCredentialsModel{
		ID:         c.ID,
		UserID:     c.UserID,
		PlatformID: c.PlatformID,
		Payload:    c.Payload,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

// ListingTemplateModel is the persistence model for the ListingTemplate domain entity.
type ListingTemplateModel struct {
	ID                   uuid.UUID                   `gorm:"type:uuid;primary_key"`
	PlatformID           uuid.UUID                   `gorm:"type:uuid;not null;index:idx_templates_platform"`
	Name                 string                      `gorm:"type:varchar(100);not null"`
	TitleTemplate        string                      `gorm:"type:text;not null"`
	DescriptionTemplate  string                      `gorm:"type:text"`
	CategoryMappingJSON  string                      `gorm:"type:jsonb;column:category_mapping"`
	PriceAdjustmentType  listing.PriceAdjustmentType `gorm:"type:varchar(20);not null;default:'none'"`
	PriceAdjustmentValue decimal.Decimal             `gorm:"type:decimal(12,4);not null;default:0"`
	ShippingTemplate     string                      `gorm:"type:varchar(100)"`
	IsDefault            bool                        `gorm:"not null;default:false"`
	IsActive             bool                        `gorm:"not null;default:true"`
	CreatedAt            time.Time                   `gorm:"not null"`
	UpdatedAt            time.Time                   `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ListingTemplateModel) TableName() string {
	return "listing_templates"
}

// ToDomain converts the persistence model to a domain ListingTemplate entity.
func (m *ListingTemplateModel) ToDomain() *listing.ListingTemplate {
	template := &listing.ListingTemplate{
		ID:                   m.ID,
		PlatformID:           m.PlatformID,
		Name:                 m.Name,
		TitleTemplate:        m.TitleTemplate,
		DescriptionTemplate:  m.DescriptionTemplate,
		CategoryMapping:      make(map[string]string),
		PriceAdjustmentType:  m.PriceAdjustmentType,
		PriceAdjustmentValue: m.PriceAdjustmentValue,
		ShippingTemplate:     m.ShippingTemplate,
		IsDefault:            m.IsDefault,
		IsActive:             m.IsActive,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}

	if m.CategoryMappingJSON != "" {
		var mapping map[string]string
		if err := json.Unmarshal([]byte(m.CategoryMappingJSON), &mapping); err == nil {
			template.CategoryMapping = mapping
		}
	}

	return template
}

// FromDomain populates the persistence model from a domain ListingTemplate entity.
func (m *ListingTemplateModel) FromDomain(t *listing.ListingTemplate) {
	m.ID = t.ID
	m.PlatformID = t.PlatformID
	m.Name = t.Name
	m.TitleTemplate = t.TitleTemplate
	m.DescriptionTemplate = t.DescriptionTemplate
	m.PriceAdjustmentType = t.PriceAdjustmentType
	m.PriceAdjustmentValue = t.PriceAdjustmentValue
	m.ShippingTemplate = t.ShippingTemplate
	m.IsDefault = t.IsDefault
	m.IsActive = t.IsActive
	m.CreatedAt = t.CreatedAt
	m.UpdatedAt = t.UpdatedAt

	if len(t.CategoryMapping) > 0 {
		if jsonBytes, err := json.Marshal(t.CategoryMapping); err == nil {
			m.CategoryMappingJSON = string(jsonBytes)
		}
	} else {
		m.CategoryMappingJSON = "{}"
	}
}

// ListingTemplateModelFromDomain creates a new persistence model from a domain entity.
func ListingTemplateModelFromDomain(t *listing.ListingTemplate) *ListingTemplateModel {
	m := &ListingTemplateModel{}
	m.FromDomain(t)
	return m
}

// ProductListingModel is the persistence model for the ProductListing domain entity.
// The (product_id, platform_id) pair is unique: one row per pair.
type ProductListingModel struct {
	ID                  uuid.UUID             `gorm:"type:uuid;primary_key"`
	ProductID           uuid.UUID             `gorm:"type:uuid;not null;uniqueIndex:idx_listings_product_platform,priority:1"`
	PlatformID          uuid.UUID             `gorm:"type:uuid;not null;uniqueIndex:idx_listings_product_platform,priority:2"`
	ExternalListingID   string                `gorm:"type:varchar(100);index"`
	Status              listing.ListingStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	LastSyncedAt        *time.Time
	LastError           string    `gorm:"type:text"`
	ContentSnapshotJSON string    `gorm:"type:jsonb;column:content_snapshot"`
	CreatedAt           time.Time `gorm:"not null"`
	UpdatedAt           time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProductListingModel) TableName() string {
	return "product_listings"
}

// ToDomain converts the persistence model to a domain ProductListing entity.
func (m *ProductListingModel) ToDomain() *listing.ProductListing {
	row := &listing.ProductListing{
		ID:                m.ID,
		ProductID:         m.ProductID,
		PlatformID:        m.PlatformID,
		ExternalListingID: m.ExternalListingID,
		Status:            m.Status,
		LastSyncedAt:      m.LastSyncedAt,
		LastError:         m.LastError,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}

	if m.ContentSnapshotJSON != "" {
		var snapshot listing.ListingContent
		if err := json.Unmarshal([]byte(m.ContentSnapshotJSON), &snapshot); err == nil {
			row.ContentSnapshot = &snapshot
		}
	}

	return row
}

// FromDomain populates the persistence model from a domain ProductListing entity.
func (m *ProductListingModel) FromDomain(l *listing.ProductListing) {
	m.ID = l.ID
	m.ProductID = l.ProductID
	m.PlatformID = l.PlatformID
	m.ExternalListingID = l.ExternalListingID
	m.Status = l.Status
	m.LastSyncedAt = l.LastSyncedAt
	m.LastError = l.LastError
	m.CreatedAt = l.CreatedAt
	m.UpdatedAt = l.UpdatedAt

	if l.ContentSnapshot != nil {
		if jsonBytes, err := json.Marshal(l.ContentSnapshot); err == nil {
			m.ContentSnapshotJSON = string(jsonBytes)
		}
	} else {
		m.ContentSnapshotJSON = ""
	}
}

// ProductListingModelFromDomain creates a new persistence model from a domain entity.
func ProductListingModelFromDomain(l *listing.ProductListing) *ProductListingModel {
	m := &ProductListingModel{}
	m.FromDomain(l)
	return m
}
