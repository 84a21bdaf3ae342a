package ecommerce

import (
	"encoding/json"
	"fmt"

	"github.com/shopsync/backend/internal/domain/listing"
)

// Factory builds platform adapters from platform reference data and a user's
// unsealed credential payload. Construction decodes and validates the payload
// but performs no network I/O.
type Factory struct{}

// NewFactory creates a new adapter factory
func NewFactory() *Factory {
	return &Factory{}
}

// NewAdapter constructs the adapter for the platform. The payload is the
// JSON credential document the user stored for this platform.
func (f *Factory) NewAdapter(platform *listing.Platform, credentialPayload []byte) (listing.PlatformAdapter, error) {
	switch platform.Code {
	case listing.PlatformCodeFacebook:
		var config FacebookConfig
		if err := json.Unmarshal(credentialPayload, &config); err != nil {
			return nil, fmt.Errorf("%w: facebook payload: %v", listing.ErrInvalidCredentials, err)
		}
		if platform.APIBaseURL != "" {
			config.APIBaseURL = platform.APIBaseURL
		}
		adapter, err := NewFacebookAdapter(&config)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", listing.ErrInvalidCredentials, err)
		}
		return adapter, nil

	case listing.PlatformCodeEbay:
		var config EbayConfig
		if err := json.Unmarshal(credentialPayload, &config); err != nil {
			return nil, fmt.Errorf("%w: ebay payload: %v", listing.ErrInvalidCredentials, err)
		}
		if platform.APIBaseURL != "" {
			config.APIBaseURL = platform.APIBaseURL
		}
		adapter, err := NewEbayAdapter(&config)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", listing.ErrInvalidCredentials, err)
		}
		return adapter, nil

	default:
		return nil, fmt.Errorf("%w: %s", listing.ErrInvalidPlatformCode, platform.Code)
	}
}

// Ensure Factory implements AdapterFactory interface
var _ listing.AdapterFactory = (*Factory)(nil)
