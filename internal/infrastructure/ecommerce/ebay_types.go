package ecommerce

// EbayErrorDetail is one entry of the Sell API error array
type EbayErrorDetail struct {
	// ErrorID is the numeric Sell API error identifier
	ErrorID int `json:"errorId"`
	// Domain groups errors by API area
	Domain string `json:"domain,omitempty"`
	// Category is REQUEST, BUSINESS or APPLICATION
	Category string `json:"category,omitempty"`
	// Message is the human readable error text
	Message string `json:"message"`
	// LongMessage elaborates on Message when present
	LongMessage string `json:"longMessage,omitempty"`
}

// EbayErrorResponse is the common Sell API error envelope
type EbayErrorResponse struct {
	Errors []EbayErrorDetail `json:"errors,omitempty"`
}

// IsSuccess returns true when the response carries no errors
func (r *EbayErrorResponse) IsSuccess() bool {
	return len(r.Errors) == 0
}

// FirstError returns the leading error detail, or nil
func (r *EbayErrorResponse) FirstError() *EbayErrorDetail {
	if len(r.Errors) == 0 {
		return nil
	}
	return &r.Errors[0]
}

// EbayAmount is the Sell API money representation
type EbayAmount struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

// EbayPricingSummary wraps the offer price
type EbayPricingSummary struct {
	Price EbayAmount `json:"price"`
}

// EbayInventoryProduct is the product block of an inventory item
type EbayInventoryProduct struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ImageURLs   []string `json:"imageUrls,omitempty"`
}

// EbayInventoryItem is the Sell Inventory API item payload
type EbayInventoryItem struct {
	SKU     string               `json:"sku,omitempty"`
	Product EbayInventoryProduct `json:"product"`
}

// EbayOffer is the Sell Inventory API offer payload
type EbayOffer struct {
	SKU                 string             `json:"sku"`
	MarketplaceID       string             `json:"marketplaceId"`
	Format              string             `json:"format"`
	CategoryID          string             `json:"categoryId,omitempty"`
	FulfillmentPolicyID string             `json:"fulfillmentPolicyId,omitempty"`
	PricingSummary      EbayPricingSummary `json:"pricingSummary"`
	// Status is returned on reads: PUBLISHED, UNPUBLISHED or ENDED
	Status string `json:"status,omitempty"`
}

// EbayOfferResponse wraps offer create and read responses
type EbayOfferResponse struct {
	EbayOffer
	OfferID string            `json:"offerId,omitempty"`
	Errors  []EbayErrorDetail `json:"errors,omitempty"`
}

// IsSuccess returns true when the response carries no errors
func (r *EbayOfferResponse) IsSuccess() bool {
	return len(r.Errors) == 0
}

// EbayPublishResponse is the response to publishing an offer
type EbayPublishResponse struct {
	ListingID string            `json:"listingId,omitempty"`
	Errors    []EbayErrorDetail `json:"errors,omitempty"`
}

// IsSuccess returns true when the response carries no errors
func (r *EbayPublishResponse) IsSuccess() bool {
	return len(r.Errors) == 0
}

// Sell API error IDs the adapter reacts to
const (
	// ebayErrorOfferNotFound is returned for reads of unknown offers
	ebayErrorOfferNotFound = 25713
	// ebayErrorInvalidToken marks invalid or expired OAuth tokens
	ebayErrorInvalidToken = 1001
)
