package listing

import "github.com/shopspring/decimal"

// ListingContent is the rendered, platform-ready payload for one listing.
// It carries no platform-specific API types; adapters translate it further
// into their own wire formats.
type ListingContent struct {
	// Title is the rendered listing title
	Title string `json:"title"`
	// Description is the rendered listing description
	Description string `json:"description"`
	// SKU is the product's stock keeping unit
	SKU string `json:"sku"`
	// Price is the final listed price after template adjustment
	Price decimal.Decimal `json:"price"`
	// Currency is the ISO currency code of the price
	Currency string `json:"currency"`
	// Category is the platform category ID, empty when no mapping exists
	Category string `json:"category,omitempty"`
	// ShippingTemplate is the template's shipping template, verbatim
	ShippingTemplate string `json:"shipping_template,omitempty"`
	// ImageURLs contains the product image URLs
	ImageURLs []string `json:"image_urls,omitempty"`
}
