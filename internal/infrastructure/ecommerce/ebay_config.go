package ecommerce

import (
	"errors"
)

// EbayConfig holds configuration for eBay Sell API integration.
// It is decoded from a user's unsealed credential payload.
type EbayConfig struct {
	// OAuthToken is the user access token minted through the eBay consent flow
	OAuthToken string `json:"oauth_token"`
	// MarketplaceID identifies the eBay site, e.g. EBAY_US
	MarketplaceID string `json:"marketplace_id"`
	// FulfillmentPolicyID is the seller's shipping policy for new offers
	FulfillmentPolicyID string `json:"fulfillment_policy_id,omitempty"`
	// APIBaseURL is the base URL for the Sell API (production or sandbox)
	APIBaseURL string `json:"api_base_url,omitempty"`
	// IsSandbox indicates if this is a sandbox environment
	IsSandbox bool `json:"is_sandbox,omitempty"`
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int `json:"timeout_seconds,omitempty"`
}

const (
	// EbayProductionAPIURL is the production Sell API endpoint
	EbayProductionAPIURL = "https://api.ebay.com/sell"
	// EbaySandboxAPIURL is the sandbox Sell API endpoint
	EbaySandboxAPIURL = "https://api.sandbox.ebay.com/sell"
	// EbayDefaultMarketplaceID is used when the payload names no site
	EbayDefaultMarketplaceID = "EBAY_US"
)

// Errors for eBay configuration
var (
	ErrEbayMissingOAuthToken = errors.New("ebay: oauth token is required")
)

// NewEbayConfig creates a new eBay configuration with defaults
func NewEbayConfig(oauthToken string) *EbayConfig {
	return &EbayConfig{
		OAuthToken:     oauthToken,
		MarketplaceID:  EbayDefaultMarketplaceID,
		APIBaseURL:     EbayProductionAPIURL,
		TimeoutSeconds: 30,
	}
}

// NewSandboxEbayConfig creates a new eBay configuration for sandbox environment
func NewSandboxEbayConfig(oauthToken string) *EbayConfig {
	return &EbayConfig{
		OAuthToken:     oauthToken,
		MarketplaceID:  EbayDefaultMarketplaceID,
		APIBaseURL:     EbaySandboxAPIURL,
		IsSandbox:      true,
		TimeoutSeconds: 30,
	}
}

// Validate validates the eBay configuration
func (c *EbayConfig) Validate() error {
	if c.OAuthToken == "" {
		return ErrEbayMissingOAuthToken
	}
	if c.MarketplaceID == "" {
		c.MarketplaceID = EbayDefaultMarketplaceID
	}
	if c.APIBaseURL == "" {
		if c.IsSandbox {
			c.APIBaseURL = EbaySandboxAPIURL
		} else {
			c.APIBaseURL = EbayProductionAPIURL
		}
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}
