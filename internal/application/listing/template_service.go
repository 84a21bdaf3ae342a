package listing

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/shopsync/backend/internal/domain/listing"
)

// TemplateService manages listing templates for the admin dashboard. The
// orchestrator only reads templates; all edits go through here.
type TemplateService struct {
	templates listing.TemplateRepository
	platforms listing.PlatformRepository
	log       *zap.Logger
}

// NewTemplateService creates a new TemplateService
func NewTemplateService(
	templates listing.TemplateRepository,
	platforms listing.PlatformRepository,
	log *zap.Logger,
) *TemplateService {
	return &TemplateService{templates: templates, platforms: platforms, log: log}
}

// CreateTemplateRequest carries the fields of a new template
type CreateTemplateRequest struct {
	PlatformID           uuid.UUID
	Name                 string
	TitleTemplate        string
	DescriptionTemplate  string
	CategoryMapping      map[string]string
	PriceAdjustmentType  listing.PriceAdjustmentType
	PriceAdjustmentValue decimal.Decimal
	ShippingTemplate     string
	IsDefault            bool
}

// UpdateTemplateRequest carries the editable fields of a template
type UpdateTemplateRequest struct {
	Name                 string
	TitleTemplate        string
	DescriptionTemplate  string
	CategoryMapping      map[string]string
	PriceAdjustmentType  listing.PriceAdjustmentType
	PriceAdjustmentValue decimal.Decimal
	ShippingTemplate     string
	IsDefault            bool
	IsActive             bool
}

// Create validates the target platform and stores a new template
func (s *TemplateService) Create(ctx context.Context, req CreateTemplateRequest) (*listing.ListingTemplate, error) {
	if _, err := s.platforms.FindByID(ctx, req.PlatformID); err != nil {
		return nil, err
	}

	template, err := listing.NewListingTemplate(req.PlatformID, req.Name, req.TitleTemplate, req.DescriptionTemplate)
	if err != nil {
		return nil, err
	}

	if req.PriceAdjustmentType != "" {
		if err := template.SetPriceAdjustment(req.PriceAdjustmentType, req.PriceAdjustmentValue); err != nil {
			return nil, err
		}
	}
	if req.CategoryMapping != nil {
		template.CategoryMapping = req.CategoryMapping
	}
	template.ShippingTemplate = req.ShippingTemplate
	if req.IsDefault {
		template.MarkDefault()
	}

	if err := s.templates.Save(ctx, template); err != nil {
		return nil, err
	}

	s.log.Info("template created",
		zap.String("template_id", template.ID.String()),
		zap.String("platform_id", req.PlatformID.String()))

	return template, nil
}

// Update edits an existing template
func (s *TemplateService) Update(ctx context.Context, id uuid.UUID, req UpdateTemplateRequest) (*listing.ListingTemplate, error) {
	template, err := s.templates.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		template.Name = req.Name
	}
	template.TitleTemplate = req.TitleTemplate
	template.DescriptionTemplate = req.DescriptionTemplate
	if req.CategoryMapping != nil {
		template.CategoryMapping = req.CategoryMapping
	}
	if req.PriceAdjustmentType != "" {
		if err := template.SetPriceAdjustment(req.PriceAdjustmentType, req.PriceAdjustmentValue); err != nil {
			return nil, err
		}
	}
	template.ShippingTemplate = req.ShippingTemplate
	template.IsDefault = req.IsDefault
	template.IsActive = req.IsActive

	if err := template.Validate(); err != nil {
		return nil, err
	}
	if err := s.templates.Save(ctx, template); err != nil {
		return nil, err
	}

	return template, nil
}

// Get returns one template by ID
func (s *TemplateService) Get(ctx context.Context, id uuid.UUID) (*listing.ListingTemplate, error) {
	return s.templates.FindByID(ctx, id)
}

// ListByPlatform returns every template configured for a platform
func (s *TemplateService) ListByPlatform(ctx context.Context, platformID uuid.UUID) ([]listing.ListingTemplate, error) {
	if _, err := s.platforms.FindByID(ctx, platformID); err != nil {
		return nil, err
	}
	return s.templates.FindByPlatform(ctx, platformID)
}

// Delete removes a template. Existing listings keep their rendered content;
// only future creates are affected.
func (s *TemplateService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.templates.FindByID(ctx, id); err != nil {
		return err
	}
	return s.templates.Delete(ctx, id)
}
