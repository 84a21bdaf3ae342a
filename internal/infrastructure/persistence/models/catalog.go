package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopsync/backend/internal/domain/catalog"
)

// ProductModel is the persistence model for the Product domain entity.
type ProductModel struct {
	ID                       uuid.UUID                 `gorm:"type:uuid;primary_key"`
	SKU                      string                    `gorm:"type:varchar(100);not null;uniqueIndex"`
	Name                     string                    `gorm:"type:varchar(255);not null"`
	Description              string                    `gorm:"type:text"`
	CategoryID               *uuid.UUID                `gorm:"type:uuid;index"`
	Price                    decimal.Decimal           `gorm:"type:decimal(12,2);not null"`
	Currency                 string                    `gorm:"type:varchar(3);not null;default:'USD'"`
	ImageURLsJSON            string                    `gorm:"type:jsonb;column:image_urls"`
	IsBundle                 bool                      `gorm:"not null;default:false"`
	BundlePricingType        catalog.BundlePricingType `gorm:"type:varchar(20);not null;default:'fixed'"`
	BundleDiscountPercentage decimal.Decimal           `gorm:"type:decimal(5,2);not null;default:0"`
	Status                   catalog.ProductStatus     `gorm:"type:varchar(20);not null;default:'active'"`
	CreatedAt                time.Time                 `gorm:"not null"`
	UpdatedAt                time.Time                 `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *catalog.Product {
	product := &catalog.Product{
		ID:                       m.ID,
		SKU:                      m.SKU,
		Name:                     m.Name,
		Description:              m.Description,
		CategoryID:               m.CategoryID,
		Price:                    m.Price,
		Currency:                 m.Currency,
		ImageURLs:                make([]string, 0),
		IsBundle:                 m.IsBundle,
		BundlePricingType:        m.BundlePricingType,
		BundleDiscountPercentage: m.BundleDiscountPercentage,
		Status:                   m.Status,
		CreatedAt:                m.CreatedAt,
		UpdatedAt:                m.UpdatedAt,
	}

	if m.ImageURLsJSON != "" {
		var urls []string
		if err := json.Unmarshal([]byte(m.ImageURLsJSON), &urls); err == nil {
			product.ImageURLs = urls
		}
	}

	return product
}

// FromDomain populates the persistence model from a domain Product entity.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.ID = p.ID
	m.SKU = p.SKU
	m.Name = p.Name
	m.Description = p.Description
	m.CategoryID = p.CategoryID
	m.Price = p.Price
	m.Currency = p.Currency
	m.IsBundle = p.IsBundle
	m.BundlePricingType = p.BundlePricingType
	m.BundleDiscountPercentage = p.BundleDiscountPercentage
	m.Status = p.Status
	m.CreatedAt = p.CreatedAt
	m.UpdatedAt = p.UpdatedAt

	if len(p.ImageURLs) > 0 {
		if jsonBytes, err := json.Marshal(p.ImageURLs); err == nil {
			m.ImageURLsJSON = string(jsonBytes)
		}
	} else {
		m.ImageURLsJSON = "[]"
	}
}

// ProductModelFromDomain creates a new persistence model from a domain Product entity.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}

// BundleComponentModel is the persistence model for a bundle component row.
type BundleComponentModel struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key"`
	BundleID           uuid.UUID `gorm:"type:uuid;not null;index:idx_bundle_components_bundle"`
	ComponentProductID uuid.UUID `gorm:"type:uuid;not null"`
	Quantity           int       `gorm:"not null;default:1"`
	SortOrder          int       `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (BundleComponentModel) TableName() string {
	return "bundle_components"
}

// ToDomain converts the persistence model to a domain BundleComponent.
func (m *BundleComponentModel) ToDomain() catalog.BundleComponent {
	return catalog.BundleComponent{
		ID:                 m.ID,
		BundleID:           m.BundleID,
		ComponentProductID: m.ComponentProductID,
		Quantity:           m.Quantity,
		SortOrder:          m.SortOrder,
	}
}

// BundleComponentModelFromDomain creates a new persistence model from a domain component.
func BundleComponentModelFromDomain(c catalog.BundleComponent) *BundleComponentModel {
	return &BundleComponentModel{
		ID:                 c.ID,
		BundleID:           c.BundleID,
		ComponentProductID: c.ComponentProductID,
		Quantity:           c.Quantity,
		SortOrder:          c.SortOrder,
	}
}

// CategoryModel is the persistence model for the Category domain entity.
type CategoryModel struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key"`
	Name string    `gorm:"type:varchar(100);not null"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// ToDomain converts the persistence model to a domain Category.
func (m *CategoryModel) ToDomain() *catalog.Category {
	return &catalog.Category{ID: m.ID, Name: m.Name}
}
