package ecommerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/shopsync/backend/internal/domain/listing"
)

// EbayAdapter implements PlatformAdapter for eBay via the Sell Inventory API.
// The external listing ID stored locally is the eBay offer ID; the offer is
// the handle every later operation needs.
type EbayAdapter struct {
	config     *EbayConfig
	httpClient *http.Client
}

// NewEbayAdapter creates a new eBay adapter with the given configuration
func NewEbayAdapter(config *EbayConfig) (*EbayAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &EbayAdapter{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
	}, nil
}

// PlatformCode returns the platform code this adapter handles
func (a *EbayAdapter) PlatformCode() listing.PlatformCode {
	return listing.PlatformCodeEbay
}

// Authenticate verifies the bound token against the account privilege endpoint
func (a *EbayAdapter) Authenticate(ctx context.Context) (bool, error) {
	status, body, err := a.doRequest(ctx, http.MethodGet, "/account/v1/privilege", nil)
	if err != nil {
		return false, err
	}

	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return false, nil
	}
	if status >= 400 {
		var resp EbayErrorResponse
		if err := json.Unmarshal(body, &resp); err == nil {
			if detail := resp.FirstError(); detail != nil && detail.ErrorID == ebayErrorInvalidToken {
				return false, nil
			}
		}
		return false, fmt.Errorf("%w: HTTP %d", listing.ErrPlatformUnavailable, status)
	}
	return true, nil
}

// CreateListing publishes the content as an inventory item with a published
// offer. The returned external ID is the offer ID.
func (a *EbayAdapter) CreateListing(ctx context.Context, content *listing.ListingContent) (string, error) {
	if err := a.putInventoryItem(ctx, content); err != nil {
		return "", err
	}

	offerID, err := a.createOffer(ctx, content)
	if err != nil {
		return "", err
	}

	if err := a.publishOffer(ctx, offerID); err != nil {
		return "", err
	}
	return offerID, nil
}

// UpdateListing replaces the content of an existing offer
func (a *EbayAdapter) UpdateListing(ctx context.Context, externalID string, content *listing.ListingContent) error {
	if err := a.putInventoryItem(ctx, content); err != nil {
		return err
	}

	offer := a.offerPayload(content)
	status, body, err := a.doRequest(ctx, http.MethodPut, "/inventory/v1/offer/"+externalID, offer)
	if err != nil {
		return err
	}
	return a.checkResponse(status, body)
}

// DeleteListing withdraws an offer. An offer already gone on the platform is
// treated as deleted.
func (a *EbayAdapter) DeleteListing(ctx context.Context, externalID string) error {
	status, body, err := a.doRequest(ctx, http.MethodDelete, "/inventory/v1/offer/"+externalID, nil)
	if err != nil {
		return err
	}

	if status == http.StatusNotFound {
		return nil
	}
	if status >= 400 {
		var resp EbayErrorResponse
		if jsonErr := json.Unmarshal(body, &resp); jsonErr == nil {
			if detail := resp.FirstError(); detail != nil {
				if detail.ErrorID == ebayErrorOfferNotFound {
					return nil
				}
				return a.platformError(detail)
			}
		}
		return fmt.Errorf("%w: HTTP %d", listing.ErrPlatformUnavailable, status)
	}
	return nil
}

// GetListingStatus probes the platform's view of an offer
func (a *EbayAdapter) GetListingStatus(ctx context.Context, externalID string) (*listing.ListingStatusReport, error) {
	status, body, err := a.doRequest(ctx, http.MethodGet, "/inventory/v1/offer/"+externalID, nil)
	if err != nil {
		return nil, err
	}

	if status == http.StatusNotFound {
		return &listing.ListingStatusReport{Status: listing.RemoteStatusNotFound}, nil
	}

	var resp EbayOfferResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("ebay: failed to parse response: %w", err)
	}
	if !resp.IsSuccess() {
		detail := resp.Errors[0]
		if detail.ErrorID == ebayErrorOfferNotFound {
			return &listing.ListingStatusReport{Status: listing.RemoteStatusNotFound}, nil
		}
		return nil, a.platformError(&detail)
	}
	if status >= 400 {
		return nil, fmt.Errorf("%w: HTTP %d", listing.ErrPlatformUnavailable, status)
	}

	report := &listing.ListingStatusReport{Status: listing.RemoteStatusActive}
	if resp.Status != "PUBLISHED" {
		report.Status = listing.RemoteStatusInactive
	}
	return report, nil
}

// ---------------------------------------------------------------------------
// Internal Helpers
// ---------------------------------------------------------------------------

// putInventoryItem upserts the SKU-keyed inventory item behind an offer
func (a *EbayAdapter) putInventoryItem(ctx context.Context, content *listing.ListingContent) error {
	item := EbayInventoryItem{
		Product: EbayInventoryProduct{
			Title:       content.Title,
			Description: content.Description,
			ImageURLs:   content.ImageURLs,
		},
	}

	status, body, err := a.doRequest(ctx, http.MethodPut, "/inventory/v1/inventory_item/"+content.SKU, item)
	if err != nil {
		return err
	}
	return a.checkResponse(status, body)
}

// createOffer creates an unpublished offer for the SKU
func (a *EbayAdapter) createOffer(ctx context.Context, content *listing.ListingContent) (string, error) {
	offer := a.offerPayload(content)
	status, body, err := a.doRequest(ctx, http.MethodPost, "/inventory/v1/offer", offer)
	if err != nil {
		return "", err
	}

	var resp EbayOfferResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("ebay: failed to parse response: %w", err)
	}

	if !resp.IsSuccess() {
		return "", a.platformError(&resp.Errors[0])
	}
	if status >= 400 || resp.OfferID == "" {
		return "", fmt.Errorf("%w: HTTP %d", listing.ErrPlatformUnavailable, status)
	}
	return resp.OfferID, nil
}

// publishOffer takes an unpublished offer live
func (a *EbayAdapter) publishOffer(ctx context.Context, offerID string) error {
	status, body, err := a.doRequest(ctx, http.MethodPost, "/inventory/v1/offer/"+offerID+"/publish", nil)
	if err != nil {
		return err
	}

	var resp EbayPublishResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("ebay: failed to parse response: %w", err)
	}

	if !resp.IsSuccess() {
		return a.platformError(&resp.Errors[0])
	}
	if status >= 400 {
		return fmt.Errorf("%w: HTTP %d", listing.ErrPlatformUnavailable, status)
	}
	return nil
}

// offerPayload maps listing content to the Sell API offer shape
func (a *EbayAdapter) offerPayload(content *listing.ListingContent) EbayOffer {
	return EbayOffer{
		SKU:                 content.SKU,
		MarketplaceID:       a.config.MarketplaceID,
		Format:              "FIXED_PRICE",
		CategoryID:          content.Category,
		FulfillmentPolicyID: pickShippingPolicy(content.ShippingTemplate, a.config.FulfillmentPolicyID),
		PricingSummary: EbayPricingSummary{
			Price: EbayAmount{
				Value:    content.Price.StringFixed(2),
				Currency: content.Currency,
			},
		},
	}
}

// pickShippingPolicy prefers the template's policy over the config default
func pickShippingPolicy(templatePolicy, configPolicy string) string {
	if templatePolicy != "" {
		return templatePolicy
	}
	return configPolicy
}

// checkResponse converts an error body or status into an adapter error
func (a *EbayAdapter) checkResponse(status int, body []byte) error {
	if len(body) > 0 {
		var resp EbayErrorResponse
		if err := json.Unmarshal(body, &resp); err == nil && !resp.IsSuccess() {
			return a.platformError(resp.FirstError())
		}
	}
	if status >= 400 {
		return fmt.Errorf("%w: HTTP %d", listing.ErrPlatformUnavailable, status)
	}
	return nil
}

// doRequest performs an HTTP request against the Sell API
func (a *EbayAdapter) doRequest(ctx context.Context, method, path string, payload any) (int, []byte, error) {
	var reqBody io.Reader
	if payload != nil {
		bodyBytes, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("ebay: failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.config.APIBaseURL+path, reqBody)
	if err != nil {
		return 0, nil, fmt.Errorf("ebay: failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+a.config.OAuthToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-EBAY-C-MARKETPLACE-ID", a.config.MarketplaceID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", listing.ErrPlatformUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return 0, nil, fmt.Errorf("ebay: failed to read response: %w", err)
	}

	return resp.StatusCode, body, nil
}

// platformError converts a Sell API error detail into a PlatformError
func (a *EbayAdapter) platformError(detail *EbayErrorDetail) error {
	return listing.NewPlatformError(listing.PlatformCodeEbay,
		strconv.Itoa(detail.ErrorID), detail.Message)
}

// Ensure EbayAdapter implements PlatformAdapter interface
var _ listing.PlatformAdapter = (*EbayAdapter)(nil)
