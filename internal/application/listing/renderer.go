package listing

import (
	"fmt"
	"strings"

	"github.com/shopsync/backend/internal/domain/catalog"
	"github.com/shopsync/backend/internal/domain/listing"
)

// ContentRenderer deterministically renders platform-ready listing content
// from a product snapshot, a template, and caller-supplied overrides.
type ContentRenderer struct{}

// NewContentRenderer creates a new ContentRenderer
func NewContentRenderer() *ContentRenderer {
	return &ContentRenderer{}
}

// Render builds the ListingContent for one (product, template) pair.
// Title and description run through token substitution; customData keys
// override computed tokens when present. Pricing starts from the snapshot's
// base price (bundle-aware) and applies the template's adjustment; a
// negative result is a validation error, never silently clamped.
func (r *ContentRenderer) Render(
	snapshot *catalog.ProductSnapshot,
	template *listing.ListingTemplate,
	customData map[string]string,
) (*listing.ListingContent, error) {
	if err := template.Validate(); err != nil {
		return nil, err
	}

	price := template.PriceAdjustmentType.Apply(snapshot.BasePrice(), template.PriceAdjustmentValue)
	if price.IsNegative() {
		return nil, fmt.Errorf("%w: %s after %s adjustment",
			listing.ErrNegativePrice, price.StringFixed(2), template.PriceAdjustmentType)
	}

	categoryName := ""
	localCategoryID := ""
	if snapshot.Category != nil {
		categoryName = snapshot.Category.Name
	}
	if snapshot.Product.CategoryID != nil {
		localCategoryID = snapshot.Product.CategoryID.String()
	}

	tokens := map[string]string{
		"name":        snapshot.Product.Name,
		"sku":         snapshot.Product.SKU,
		"description": snapshot.Product.Description,
		"category":    categoryName,
		"price":       price.StringFixed(2),
	}
	for key, value := range customData {
		tokens[key] = value
	}

	return &listing.ListingContent{
		Title:            substituteTokens(template.TitleTemplate, tokens),
		Description:      substituteTokens(template.DescriptionTemplate, tokens),
		SKU:              snapshot.Product.SKU,
		Price:            price,
		Currency:         snapshot.Product.Currency,
		Category:         template.ResolveCategory(localCategoryID),
		ShippingTemplate: template.ShippingTemplate,
		ImageURLs:        snapshot.Product.ImageURLs,
	}, nil
}

// substituteTokens replaces every {{token}} occurrence with its value.
// Unknown tokens are left in place so broken templates stay visible.
func substituteTokens(tpl string, tokens map[string]string) string {
	pairs := make([]string, 0, len(tokens)*2)
	for key, value := range tokens {
		pairs = append(pairs, "{{"+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(tpl)
}
