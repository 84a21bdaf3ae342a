package ecommerce

import (
	"errors"
)

// FacebookConfig holds configuration for Facebook Marketplace integration.
// It is decoded from a user's unsealed credential payload.
type FacebookConfig struct {
	// AccessToken is the page access token from Meta for Business
	AccessToken string `json:"access_token"`
	// CatalogID is the commerce catalog the listings are published into
	CatalogID string `json:"catalog_id"`
	// PageID is the business page acting as the seller
	PageID string `json:"page_id"`
	// APIBaseURL is the base URL for the Graph API
	APIBaseURL string `json:"api_base_url,omitempty"`
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int `json:"timeout_seconds,omitempty"`
}

// FacebookGraphAPIURL is the production Graph API endpoint
const FacebookGraphAPIURL = "https://graph.facebook.com/v19.0"

// Errors for Facebook configuration
var (
	ErrFacebookMissingAccessToken = errors.New("facebook: access token is required")
	ErrFacebookMissingCatalogID   = errors.New("facebook: catalog ID is required")
)

// NewFacebookConfig creates a new Facebook configuration with defaults
func NewFacebookConfig(accessToken, catalogID string) *FacebookConfig {
	return &FacebookConfig{
		AccessToken:    accessToken,
		CatalogID:      catalogID,
		APIBaseURL:     FacebookGraphAPIURL,
		TimeoutSeconds: 30,
	}
}

// Validate validates the Facebook configuration
func (c *FacebookConfig) Validate() error {
	if c.AccessToken == "" {
		return ErrFacebookMissingAccessToken
	}
	if c.CatalogID == "" {
		return ErrFacebookMissingCatalogID
	}
	if c.APIBaseURL == "" {
		c.APIBaseURL = FacebookGraphAPIURL
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}
