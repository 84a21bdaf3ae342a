package catalog

import "errors"

var (
	ErrProductNotFound      = errors.New("catalog: product not found")
	ErrInvalidProductSKU    = errors.New("catalog: invalid product SKU")
	ErrInvalidProductName   = errors.New("catalog: invalid product name")
	ErrInvalidBundlePricing = errors.New("catalog: invalid bundle pricing type")
	ErrNotABundle           = errors.New("catalog: product is not a bundle")
	ErrComponentCycle       = errors.New("catalog: bundle cannot contain itself")
)
