package listing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProductListing(t *testing.T) {
	productID := uuid.New()
	platformID := uuid.New()

	l, err := NewProductListing(productID, platformID)
	require.NoError(t, err)

	assert.Equal(t, productID, l.ProductID)
	assert.Equal(t, platformID, l.PlatformID)
	assert.Equal(t, ListingStatusPending, l.Status)
	assert.Empty(t, l.ExternalListingID)
	assert.Nil(t, l.LastSyncedAt)
}

func TestNewProductListing_NilIDs(t *testing.T) {
	_, err := NewProductListing(uuid.Nil, uuid.New())
	assert.ErrorIs(t, err, ErrInvalidListingID)

	_, err = NewProductListing(uuid.New(), uuid.Nil)
	assert.ErrorIs(t, err, ErrInvalidPlatformID)
}

func TestMarkActive(t *testing.T) {
	l, err := NewProductListing(uuid.New(), uuid.New())
	require.NoError(t, err)
	l.LastError = "previous failure"

	content := &ListingContent{Title: "Widget", Price: decimal.NewFromInt(10)}
	l.MarkActive("ext-123", content)

	assert.Equal(t, ListingStatusActive, l.Status)
	assert.Equal(t, "ext-123", l.ExternalListingID)
	assert.Empty(t, l.LastError)
	assert.NotNil(t, l.LastSyncedAt)
	assert.Equal(t, content, l.ContentSnapshot)
}

func TestMarkActive_KeepsExternalIDWhenEmpty(t *testing.T) {
	l, err := NewProductListing(uuid.New(), uuid.New())
	require.NoError(t, err)
	l.ExternalListingID = "ext-123"

	l.MarkActive("", nil)

	assert.Equal(t, "ext-123", l.ExternalListingID)
}

func TestMarkError_KeepsExternalID(t *testing.T) {
	l, err := NewProductListing(uuid.New(), uuid.New())
	require.NoError(t, err)
	l.MarkActive("ext-123", nil)

	l.MarkError("rate limited")

	assert.Equal(t, ListingStatusError, l.Status)
	assert.Equal(t, "rate limited", l.LastError)
	assert.Equal(t, "ext-123", l.ExternalListingID)
}

func TestMarkRemoved_KeepsExternalID(t *testing.T) {
	l, err := NewProductListing(uuid.New(), uuid.New())
	require.NoError(t, err)
	l.MarkActive("ext-123", nil)

	l.MarkRemoved()

	assert.Equal(t, ListingStatusRemoved, l.Status)
	assert.Equal(t, "ext-123", l.ExternalListingID)
}

func TestHasRemotePresence(t *testing.T) {
	l, err := NewProductListing(uuid.New(), uuid.New())
	require.NoError(t, err)

	assert.False(t, l.HasRemotePresence())

	l.MarkActive("ext-123", nil)
	assert.True(t, l.HasRemotePresence())
}

func TestPriceAdjustmentApply(t *testing.T) {
	base := decimal.NewFromInt(100)

	assert.True(t, PriceAdjustmentNone.Apply(base, decimal.NewFromInt(50)).Equal(base))
	assert.True(t, PriceAdjustmentFixed.Apply(base, decimal.NewFromInt(5)).Equal(decimal.NewFromInt(105)))
	assert.True(t, PriceAdjustmentPercentage.Apply(base, decimal.NewFromInt(10)).Equal(decimal.NewFromInt(110)))
	assert.True(t, PriceAdjustmentPercentage.Apply(base, decimal.NewFromInt(-25)).Equal(decimal.NewFromInt(75)))
}

func TestTemplateResolveCategory(t *testing.T) {
	tpl, err := NewListingTemplate(uuid.New(), "Default", "{{name}}", "{{description}}")
	require.NoError(t, err)

	assert.Empty(t, tpl.ResolveCategory("unknown"))

	tpl.MapCategory("cat-1", "FB-100")
	assert.Equal(t, "FB-100", tpl.ResolveCategory("cat-1"))
}

func TestTemplateSetPriceAdjustment(t *testing.T) {
	tpl, err := NewListingTemplate(uuid.New(), "Default", "", "")
	require.NoError(t, err)

	err = tpl.SetPriceAdjustment(PriceAdjustmentType("markup"), decimal.NewFromInt(5))
	assert.ErrorIs(t, err, ErrInvalidAdjustment)

	require.NoError(t, tpl.SetPriceAdjustment(PriceAdjustmentPercentage, decimal.NewFromInt(10)))
	assert.Equal(t, PriceAdjustmentPercentage, tpl.PriceAdjustmentType)
}

func TestPlatformError(t *testing.T) {
	err := NewPlatformError(PlatformCodeEbay, "21919188", "title too long")
	assert.Equal(t, "EBAY: title too long (21919188)", err.Error())

	err = NewPlatformError(PlatformCodeFacebook, "", "invalid category")
	assert.Equal(t, "FACEBOOK: invalid category", err.Error())
}

func TestPlatformCode(t *testing.T) {
	assert.True(t, PlatformCodeFacebook.IsValid())
	assert.True(t, PlatformCodeEbay.IsValid())
	assert.False(t, PlatformCode("AMAZON").IsValid())
	assert.Equal(t, "Facebook Marketplace", PlatformCodeFacebook.DisplayName())
}
