package ecommerce

// FacebookError is the Graph API error envelope
type FacebookError struct {
	// Message is the human readable error text
	Message string `json:"message"`
	// Type is the error class, e.g. OAuthException
	Type string `json:"type"`
	// Code is the numeric Graph API error code
	Code int `json:"code"`
	// ErrorSubcode narrows the code when present
	ErrorSubcode int `json:"error_subcode,omitempty"`
}

// FacebookResponse is the common response wrapper for Graph API calls
type FacebookResponse struct {
	ID    string         `json:"id,omitempty"`
	Error *FacebookError `json:"error,omitempty"`
}

// IsSuccess returns true when the response carries no error envelope
func (r *FacebookResponse) IsSuccess() bool {
	return r.Error == nil
}

// FacebookProductItem is the Graph API representation of a catalog product
type FacebookProductItem struct {
	ID           string `json:"id"`
	RetailerID   string `json:"retailer_id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Availability string `json:"availability"`
	// Price is formatted by the Graph API, e.g. "$12.99"
	Price    string `json:"price"`
	Currency string `json:"currency"`
	URL      string `json:"url,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

// FacebookProductItemResponse wraps a single catalog product read
type FacebookProductItemResponse struct {
	FacebookProductItem
	Error *FacebookError `json:"error,omitempty"`
}

// IsSuccess returns true when the response carries no error envelope
func (r *FacebookProductItemResponse) IsSuccess() bool {
	return r.Error == nil
}

// FacebookDeleteResponse is the response to a catalog product deletion
type FacebookDeleteResponse struct {
	Success bool           `json:"success"`
	Error   *FacebookError `json:"error,omitempty"`
}

// IsSuccess returns true when the deletion was acknowledged
func (r *FacebookDeleteResponse) IsSuccess() bool {
	return r.Error == nil && r.Success
}

// Graph API error codes the adapter reacts to
const (
	// facebookCodeUnknownObject is returned for reads of deleted objects
	facebookCodeUnknownObject = 803
	// facebookCodeOAuthException marks invalid or expired tokens
	facebookCodeOAuthException = 190
)
