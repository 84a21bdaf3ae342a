// Package ecommerce contains the marketplace platform adapters. Each adapter
// binds one platform API to one user's credentials and translates between
// listing content and the platform's wire format.
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

	"github.com/shopspring/decimal"

	"github.com/shopsync/backend/internal/domain/listing"
)

// maxResponseSize limits the response body size to prevent memory exhaustion
const maxResponseSize = 10 * 1024 * 1024 // 10MB max response

// centsPerUnit converts major currency units to the minor units the Graph
// API expects for catalog prices
const centsPerUnit = 100

var centsDecimal = decimal.NewFromInt(centsPerUnit)

// FacebookAdapter implements PlatformAdapter for Facebook Marketplace via the
// Graph API commerce catalog
type FacebookAdapter struct {
	config     *FacebookConfig
	httpClient *http.Client
}

// NewFacebookAdapter creates a new Facebook adapter with the given configuration
func NewFacebookAdapter(config *FacebookConfig) (*FacebookAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &FacebookAdapter{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
	}, nil
}

// PlatformCode returns the platform code this adapter handles
func (a *FacebookAdapter) PlatformCode() listing.PlatformCode {
	return listing.PlatformCodeFacebook
}

// Authenticate verifies the bound token by reading the catalog object
func (a *FacebookAdapter) Authenticate(ctx context.Context) (bool, error) {
	path := "/" + a.config.CatalogID + "?fields=id"
	status, body, err := a.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return false, err
	}

	var resp FacebookResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return false, fmt.Errorf("facebook: failed to parse response: %w", err)
	}

	if !resp.IsSuccess() {
		if resp.Error.Code == facebookCodeOAuthException {
			return false, nil
		}
		return false, a.platformError(resp.Error)
	}
	if status >= 400 {
		return false, fmt.Errorf("%w: HTTP %d", listing.ErrPlatformUnavailable, status)
	}
	return true, nil
}

// CreateListing publishes the content as a new catalog product
func (a *FacebookAdapter) CreateListing(ctx context.Context, content *listing.ListingContent) (string, error) {
	path := "/" + a.config.CatalogID + "/products"
	status, body, err := a.doRequest(ctx, http.MethodPost, path, a.productParams(content))
	if err != nil {
		return "", err
	}

	var resp FacebookResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("facebook: failed to parse response: %w", err)
	}

	if !resp.IsSuccess() {
		return "", a.platformError(resp.Error)
	}
	if status >= 400 || resp.ID == "" {
		return "", fmt.Errorf("%w: HTTP %d", listing.ErrPlatformUnavailable, status)
	}
	return resp.ID, nil
}

// UpdateListing replaces the content of an existing catalog product
func (a *FacebookAdapter) UpdateListing(ctx context.Context, externalID string, content *listing.ListingContent) error {
	status, body, err := a.doRequest(ctx, http.MethodPost, "/"+externalID, a.productParams(content))
	if err != nil {
		return err
	}

	var resp FacebookResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("facebook: failed to parse response: %w", err)
	}

	if !resp.IsSuccess() {
		return a.platformError(resp.Error)
	}
	if status >= 400 {
		return fmt.Errorf("%w: HTTP %d", listing.ErrPlatformUnavailable, status)
	}
	return nil
}

// DeleteListing withdraws a catalog product. A product already gone on the
// platform is treated as deleted.
func (a *FacebookAdapter) DeleteListing(ctx context.Context, externalID string) error {
	status, body, err := a.doRequest(ctx, http.MethodDelete, "/"+externalID, nil)
	if err != nil {
		return err
	}

	if status == http.StatusNotFound {
		return nil
	}

	var resp FacebookDeleteResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("facebook: failed to parse response: %w", err)
	}

	if resp.Error != nil {
		if isFacebookNotFound(status, resp.Error) {
			return nil
		}
		return a.platformError(resp.Error)
	}
	if status >= 400 {
		return fmt.Errorf("%w: HTTP %d", listing.ErrPlatformUnavailable, status)
	}
	return nil
}

// GetListingStatus probes the platform's view of a catalog product
func (a *FacebookAdapter) GetListingStatus(ctx context.Context, externalID string) (*listing.ListingStatusReport, error) {
	path := "/" + externalID + "?fields=id,availability"
	status, body, err := a.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	if status == http.StatusNotFound {
		return &listing.ListingStatusReport{Status: listing.RemoteStatusNotFound}, nil
	}

	var resp FacebookProductItemResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("facebook: failed to parse response: %w", err)
	}

	if resp.Error != nil {
		if isFacebookNotFound(status, resp.Error) {
			return &listing.ListingStatusReport{Status: listing.RemoteStatusNotFound}, nil
		}
		return nil, a.platformError(resp.Error)
	}
	if status >= 400 {
		return nil, fmt.Errorf("%w: HTTP %d", listing.ErrPlatformUnavailable, status)
	}

	report := &listing.ListingStatusReport{Status: listing.RemoteStatusActive}
	if resp.Availability != "" && resp.Availability != "in stock" {
		report.Status = listing.RemoteStatusInactive
	}
	return report, nil
}

// ---------------------------------------------------------------------------
// Internal Helpers
// ---------------------------------------------------------------------------

// productParams maps listing content to the catalog product fields
func (a *FacebookAdapter) productParams(content *listing.ListingContent) map[string]any {
	params := map[string]any{
		"retailer_id":  content.SKU,
		"name":         content.Title,
		"description":  content.Description,
		"availability": "in stock",
		// Catalog prices are sent in minor currency units
		"price":    strconv.FormatInt(content.Price.Mul(centsDecimal).IntPart(), 10),
		"currency": content.Currency,
	}
	if content.Category != "" {
		params["fb_product_category"] = content.Category
	}
	if len(content.ImageURLs) > 0 {
		params["image_url"] = content.ImageURLs[0]
	}
	return params
}

// doRequest performs an HTTP request against the Graph API. The access token
// travels in the Authorization header, never in the URL.
func (a *FacebookAdapter) doRequest(ctx context.Context, method, path string, params map[string]any) (int, []byte, error) {
	var reqBody io.Reader
	if params != nil {
		bodyBytes, err := json.Marshal(params)
		if err != nil {
			return 0, nil, fmt.Errorf("facebook: failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.config.APIBaseURL+path, reqBody)
	if err != nil {
		return 0, nil, fmt.Errorf("facebook: failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+a.config.AccessToken)
	req.Header.Set("Accept", "application/json")
	if params != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", listing.ErrPlatformUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return 0, nil, fmt.Errorf("facebook: failed to read response: %w", err)
	}

	return resp.StatusCode, body, nil
}

// platformError converts a Graph API error envelope into a PlatformError
func (a *FacebookAdapter) platformError(fbErr *FacebookError) error {
	return listing.NewPlatformError(listing.PlatformCodeFacebook,
		strconv.Itoa(fbErr.Code), fbErr.Message)
}

// isFacebookNotFound reports whether the error means the object is gone
func isFacebookNotFound(status int, fbErr *FacebookError) bool {
	return status == http.StatusNotFound || fbErr.Code == facebookCodeUnknownObject
}

// Ensure FacebookAdapter implements PlatformAdapter interface
var _ listing.PlatformAdapter = (*FacebookAdapter)(nil)
