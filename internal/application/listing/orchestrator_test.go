package listing

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shopsync/backend/internal/domain/catalog"
	"github.com/shopsync/backend/internal/domain/listing"
)

// ---------------------------------------------------------------------------
// Mocks
// ---------------------------------------------------------------------------

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, limit, offset int) ([]catalog.Product, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) GetSnapshot(ctx context.Context, id uuid.UUID) (*catalog.ProductSnapshot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ProductSnapshot), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, p *catalog.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) ReplaceComponents(ctx context.Context, bundleID uuid.UUID, components []catalog.BundleComponent) error {
	args := m.Called(ctx, bundleID, components)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPlatformRepository struct {
	mock.Mock
}

func (m *MockPlatformRepository) FindByID(ctx context.Context, id uuid.UUID) (*listing.Platform, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*listing.Platform), args.Error(1)
}

func (m *MockPlatformRepository) FindByCode(ctx context.Context, code listing.PlatformCode) (*listing.Platform, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*listing.Platform), args.Error(1)
}

func (m *MockPlatformRepository) FindAllActive(ctx context.Context) ([]listing.Platform, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]listing.Platform), args.Error(1)
}

type MockTemplateRepository struct {
	mock.Mock
}

func (m *MockTemplateRepository) FindByID(ctx context.Context, id uuid.UUID) (*listing.ListingTemplate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*listing.ListingTemplate), args.Error(1)
}

func (m *MockTemplateRepository) FindActiveByPlatform(ctx context.Context, platformID uuid.UUID) ([]listing.ListingTemplate, error) {
	args := m.Called(ctx, platformID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]listing.ListingTemplate), args.Error(1)
}

func (m *MockTemplateRepository) FindByPlatform(ctx context.Context, platformID uuid.UUID) ([]listing.ListingTemplate, error) {
	args := m.Called(ctx, platformID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]listing.ListingTemplate), args.Error(1)
}

func (m *MockTemplateRepository) Save(ctx context.Context, template *listing.ListingTemplate) error {
	args := m.Called(ctx, template)
	return args.Error(0)
}

func (m *MockTemplateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCredentialRepository struct {
	mock.Mock
}

func (m *MockCredentialRepository) GetByUserAndPlatform(ctx context.Context, userID, platformID uuid.UUID) (*listing.PlatformCredentials, error) {
	args := m.Called(ctx, userID, platformID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*listing.PlatformCredentials), args.Error(1)
}

func (m *MockCredentialRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]listing.PlatformCredentials, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]listing.PlatformCredentials), args.Error(1)
}

func (m *MockCredentialRepository) Save(ctx context.Context, creds *listing.PlatformCredentials) error {
	args := m.Called(ctx, creds)
	return args.Error(0)
}

func (m *MockCredentialRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) FindByID(ctx context.Context, id uuid.UUID) (*listing.ProductListing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*listing.ProductListing), args.Error(1)
}

func (m *MockListingRepository) FindByProductAndPlatform(ctx context.Context, productID, platformID uuid.UUID) (*listing.ProductListing, error) {
	args := m.Called(ctx, productID, platformID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*listing.ProductListing), args.Error(1)
}

func (m *MockListingRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]listing.ProductListing, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]listing.ProductListing), args.Error(1)
}

func (m *MockListingRepository) FindAll(ctx context.Context, limit, offset int) ([]listing.ProductListing, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]listing.ProductListing), args.Error(1)
}

func (m *MockListingRepository) Save(ctx context.Context, l *listing.ProductListing) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockListingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockAdapter struct {
	mock.Mock
}

func (m *MockAdapter) PlatformCode() listing.PlatformCode {
	args := m.Called()
	return args.Get(0).(listing.PlatformCode)
}

func (m *MockAdapter) Authenticate(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockAdapter) CreateListing(ctx context.Context, content *listing.ListingContent) (string, error) {
	args := m.Called(ctx, content)
	return args.String(0), args.Error(1)
}

func (m *MockAdapter) UpdateListing(ctx context.Context, externalID string, content *listing.ListingContent) error {
	args := m.Called(ctx, externalID, content)
	return args.Error(0)
}

func (m *MockAdapter) DeleteListing(ctx context.Context, externalID string) error {
	args := m.Called(ctx, externalID)
	return args.Error(0)
}

func (m *MockAdapter) GetListingStatus(ctx context.Context, externalID string) (*listing.ListingStatusReport, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*listing.ListingStatusReport), args.Error(1)
}

type MockAdapterFactory struct {
	mock.Mock
}

func (m *MockAdapterFactory) NewAdapter(platform *listing.Platform, credentialPayload []byte) (listing.PlatformAdapter, error) {
	args := m.Called(platform, credentialPayload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(listing.PlatformAdapter), args.Error(1)
}

// plainOpener passes sealed payloads through untouched
type plainOpener struct{}

func (plainOpener) Open(sealed []byte) ([]byte, error) { return sealed, nil }

// nopLocker hands out uncontended locks
type nopLocker struct{}

func (nopLocker) Acquire(ctx context.Context, productID, platformID uuid.UUID) (func(), error) {
	return func() {}, nil
}

// Interface guards
var (
	_ catalog.ProductRepository    = (*MockProductRepository)(nil)
	_ listing.PlatformRepository   = (*MockPlatformRepository)(nil)
	_ listing.TemplateRepository   = (*MockTemplateRepository)(nil)
	_ listing.CredentialRepository = (*MockCredentialRepository)(nil)
	_ listing.ListingRepository    = (*MockListingRepository)(nil)
	_ listing.PlatformAdapter      = (*MockAdapter)(nil)
	_ listing.AdapterFactory       = (*MockAdapterFactory)(nil)
)

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

type orchestratorFixture struct {
	products    *MockProductRepository
	platforms   *MockPlatformRepository
	templates   *MockTemplateRepository
	credentials *MockCredentialRepository
	listings    *MockListingRepository
	factory     *MockAdapterFactory
	orch        *Orchestrator
}

func newFixture() *orchestratorFixture {
	f := &orchestratorFixture{
		products:    new(MockProductRepository),
		platforms:   new(MockPlatformRepository),
		templates:   new(MockTemplateRepository),
		credentials: new(MockCredentialRepository),
		listings:    new(MockListingRepository),
		factory:     new(MockAdapterFactory),
	}
	f.orch = NewOrchestrator(
		f.products, f.platforms, f.templates, f.credentials, f.listings,
		f.factory, plainOpener{}, nopLocker{}, zap.NewNop(),
	)
	return f
}

func platformFixture(code listing.PlatformCode) *listing.Platform {
	return &listing.Platform{
		ID:          uuid.New(),
		Code:        code,
		DisplayName: code.DisplayName(),
		IsActive:    true,
	}
}

func credsFixture(actorID, platformID uuid.UUID) *listing.PlatformCredentials {
	creds, _ := listing.NewPlatformCredentials(actorID, platformID, []byte(`{"token":"t"}`))
	return creds
}

func activeTemplate(platformID uuid.UUID) listing.ListingTemplate {
	tpl, _ := listing.NewListingTemplate(platformID, "Default", "{{name}}", "{{description}}")
	tpl.IsDefault = true
	return *tpl
}

func productSnapshot() *catalog.ProductSnapshot {
	product, _ := catalog.NewProduct("SKU-1", "Widget", decimal.NewFromInt(100))
	return &catalog.ProductSnapshot{Product: *product}
}

// ---------------------------------------------------------------------------
// CreateListings
// ---------------------------------------------------------------------------

func TestCreateListings_MissingProductFailsWholeCall(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	productID := uuid.New()

	f.products.On("GetSnapshot", ctx, productID).Return(nil, catalog.ErrProductNotFound)

	_, err := f.orch.CreateListings(ctx, CreateListingsRequest{
		ProductID:   productID,
		PlatformIDs: []uuid.UUID{uuid.New()},
		ActorID:     uuid.New(),
	})

	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
	f.listings.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCreateListings_PartialFailurePreservesOrder(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	actorID := uuid.New()
	productID := uuid.New()

	platformA := platformFixture(listing.PlatformCodeFacebook)
	platformB := platformFixture(listing.PlatformCodeEbay)
	platformC := platformFixture(listing.PlatformCodeFacebook)

	f.products.On("GetSnapshot", ctx, productID).Return(productSnapshot(), nil)

	for _, p := range []*listing.Platform{platformA, platformB, platformC} {
		f.platforms.On("FindByID", ctx, p.ID).Return(p, nil)
		f.templates.On("FindActiveByPlatform", ctx, p.ID).
			Return([]listing.ListingTemplate{activeTemplate(p.ID)}, nil)
		f.listings.On("FindByProductAndPlatform", ctx, productID, p.ID).
			Return(nil, listing.ErrListingNotFound)
	}

	// Credentials exist for A and C only
	adapterA := new(MockAdapter)
	adapterA.On("CreateListing", ctx, mock.AnythingOfType("*listing.ListingContent")).Return("fb-1", nil)
	adapterC := new(MockAdapter)
	adapterC.On("CreateListing", ctx, mock.AnythingOfType("*listing.ListingContent")).Return("fb-2", nil)

	f.credentials.On("GetByUserAndPlatform", ctx, actorID, platformA.ID).
		Return(credsFixture(actorID, platformA.ID), nil)
	f.credentials.On("GetByUserAndPlatform", ctx, actorID, platformB.ID).
		Return(nil, listing.ErrCredentialsNotFound)
	f.credentials.On("GetByUserAndPlatform", ctx, actorID, platformC.ID).
		Return(credsFixture(actorID, platformC.ID), nil)

	f.factory.On("NewAdapter", platformA, mock.Anything).Return(adapterA, nil)
	f.factory.On("NewAdapter", platformC, mock.Anything).Return(adapterC, nil)

	f.listings.On("Save", ctx, mock.AnythingOfType("*listing.ProductListing")).Return(nil)

	result, err := f.orch.CreateListings(ctx, CreateListingsRequest{
		ProductID:   productID,
		PlatformIDs: []uuid.UUID{platformA.ID, platformB.ID, platformC.ID},
		ActorID:     actorID,
	})
	require.NoError(t, err)
	require.Len(t, result.Results, 3)

	// Result order follows the request order regardless of completion order
	assert.Equal(t, platformA.ID, result.Results[0].PlatformID)
	assert.Equal(t, platformB.ID, result.Results[1].PlatformID)
	assert.Equal(t, platformC.ID, result.Results[2].PlatformID)

	assert.Equal(t, listing.ListingStatusActive, result.Results[0].Status)
	assert.Equal(t, "fb-1", result.Results[0].ExternalListingID)

	assert.Equal(t, listing.ListingStatusError, result.Results[1].Status)
	assert.Contains(t, result.Results[1].Error, "no credentials configured")

	assert.Equal(t, listing.ListingStatusActive, result.Results[2].Status)
	assert.Equal(t, "fb-2", result.Results[2].ExternalListingID)

	assert.Equal(t, 2, result.Succeeded())
	assert.Equal(t, 1, result.Failed())
}

func TestCreateListings_NoTemplateAvailable(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	actorID := uuid.New()
	productID := uuid.New()
	platform := platformFixture(listing.PlatformCodeEbay)

	f.products.On("GetSnapshot", ctx, productID).Return(productSnapshot(), nil)
	f.platforms.On("FindByID", ctx, platform.ID).Return(platform, nil)
	f.templates.On("FindActiveByPlatform", ctx, platform.ID).
		Return([]listing.ListingTemplate{}, nil)
	f.listings.On("FindByProductAndPlatform", ctx, productID, platform.ID).
		Return(nil, listing.ErrListingNotFound)
	f.listings.On("Save", ctx, mock.MatchedBy(func(l *listing.ProductListing) bool {
		return l.Status == listing.ListingStatusError
	})).Return(nil)

	result, err := f.orch.CreateListings(ctx, CreateListingsRequest{
		ProductID:   productID,
		PlatformIDs: []uuid.UUID{platform.ID},
		ActorID:     actorID,
	})
	require.NoError(t, err)

	assert.Equal(t, listing.ListingStatusError, result.Results[0].Status)
	assert.Contains(t, result.Results[0].Error, "no template available")
	f.credentials.AssertNotCalled(t, "GetByUserAndPlatform", mock.Anything, mock.Anything, mock.Anything)
	f.listings.AssertExpectations(t)
}

func TestCreateListings_PlatformRejectionRecordedOnRow(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	actorID := uuid.New()
	productID := uuid.New()
	platform := platformFixture(listing.PlatformCodeEbay)

	f.products.On("GetSnapshot", ctx, productID).Return(productSnapshot(), nil)
	f.platforms.On("FindByID", ctx, platform.ID).Return(platform, nil)
	f.templates.On("FindActiveByPlatform", ctx, platform.ID).
		Return([]listing.ListingTemplate{activeTemplate(platform.ID)}, nil)
	f.credentials.On("GetByUserAndPlatform", ctx, actorID, platform.ID).
		Return(credsFixture(actorID, platform.ID), nil)
	f.listings.On("FindByProductAndPlatform", ctx, productID, platform.ID).
		Return(nil, listing.ErrListingNotFound)

	adapter := new(MockAdapter)
	adapter.On("CreateListing", ctx, mock.AnythingOfType("*listing.ListingContent")).
		Return("", listing.NewPlatformError(listing.PlatformCodeEbay, "240", "invalid category"))
	f.factory.On("NewAdapter", platform, mock.Anything).Return(adapter, nil)

	var saved *listing.ProductListing
	f.listings.On("Save", ctx, mock.AnythingOfType("*listing.ProductListing")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*listing.ProductListing)
		}).Return(nil)

	result, err := f.orch.CreateListings(ctx, CreateListingsRequest{
		ProductID:   productID,
		PlatformIDs: []uuid.UUID{platform.ID},
		ActorID:     actorID,
	})
	require.NoError(t, err)

	assert.Equal(t, listing.ListingStatusError, result.Results[0].Status)
	assert.Contains(t, result.Results[0].Error, "invalid category")

	require.NotNil(t, saved)
	assert.Equal(t, listing.ListingStatusError, saved.Status)
	assert.Contains(t, saved.LastError, "invalid category")
	assert.Empty(t, saved.ExternalListingID)
}

// ---------------------------------------------------------------------------
// DeleteListings
// ---------------------------------------------------------------------------

func TestDeleteListings_NoRowsIsNoOp(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	productID := uuid.New()

	f.listings.On("FindByProduct", ctx, productID).Return([]listing.ProductListing{}, nil)

	result, err := f.orch.DeleteListings(ctx, DeleteListingsRequest{
		ProductID: productID,
		ActorID:   uuid.New(),
	})

	require.NoError(t, err)
	assert.Empty(t, result.Results)
}

func TestDeleteListings_SuccessRemovesRow(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	actorID := uuid.New()
	productID := uuid.New()
	platform := platformFixture(listing.PlatformCodeFacebook)

	row, err := listing.NewProductListing(productID, platform.ID)
	require.NoError(t, err)
	row.MarkActive("fb-9", nil)

	f.listings.On("FindByProduct", ctx, productID).Return([]listing.ProductListing{*row}, nil)
	f.platforms.On("FindByID", ctx, platform.ID).Return(platform, nil)
	f.credentials.On("GetByUserAndPlatform", ctx, actorID, platform.ID).
		Return(credsFixture(actorID, platform.ID), nil)

	adapter := new(MockAdapter)
	adapter.On("DeleteListing", ctx, "fb-9").Return(nil)
	f.factory.On("NewAdapter", platform, mock.Anything).Return(adapter, nil)

	f.listings.On("Delete", ctx, row.ID).Return(nil)

	result, err := f.orch.DeleteListings(ctx, DeleteListingsRequest{
		ProductID: productID,
		ActorID:   actorID,
	})
	require.NoError(t, err)
	require.Len(t, result.Results, 1)

	assert.Equal(t, listing.ListingStatusNotListed, result.Results[0].Status)
	f.listings.AssertCalled(t, "Delete", ctx, row.ID)
}

func TestDeleteListings_AdapterFailureLeavesRow(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	actorID := uuid.New()
	productID := uuid.New()
	platform := platformFixture(listing.PlatformCodeFacebook)

	row, err := listing.NewProductListing(productID, platform.ID)
	require.NoError(t, err)
	row.MarkActive("fb-9", nil)

	f.listings.On("FindByProduct", ctx, productID).Return([]listing.ProductListing{*row}, nil)
	f.platforms.On("FindByID", ctx, platform.ID).Return(platform, nil)
	f.credentials.On("GetByUserAndPlatform", ctx, actorID, platform.ID).
		Return(credsFixture(actorID, platform.ID), nil)

	adapter := new(MockAdapter)
	adapter.On("DeleteListing", ctx, "fb-9").
		Return(listing.NewPlatformError(listing.PlatformCodeFacebook, "", "rate limited"))
	f.factory.On("NewAdapter", platform, mock.Anything).Return(adapter, nil)

	result, err := f.orch.DeleteListings(ctx, DeleteListingsRequest{
		ProductID: productID,
		ActorID:   actorID,
	})
	require.NoError(t, err)
	require.Len(t, result.Results, 1)

	assert.Contains(t, result.Results[0].Error, "rate limited")
	f.listings.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	f.listings.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// ---------------------------------------------------------------------------
// SyncListingStatuses
// ---------------------------------------------------------------------------

func syncFixtureRow(t *testing.T, productID uuid.UUID, platform *listing.Platform) *listing.ProductListing {
	t.Helper()
	row, err := listing.NewProductListing(productID, platform.ID)
	require.NoError(t, err)
	row.MarkActive("ext-7", nil)
	return row
}

func TestSync_RemoteNotFoundMarksRemoved(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	actorID := uuid.New()
	productID := uuid.New()
	platform := platformFixture(listing.PlatformCodeEbay)
	row := syncFixtureRow(t, productID, platform)

	f.listings.On("FindByProduct", ctx, productID).Return([]listing.ProductListing{*row}, nil)
	f.platforms.On("FindByID", ctx, platform.ID).Return(platform, nil)
	f.credentials.On("GetByUserAndPlatform", ctx, actorID, platform.ID).
		Return(credsFixture(actorID, platform.ID), nil)

	adapter := new(MockAdapter)
	adapter.On("GetListingStatus", ctx, "ext-7").
		Return(&listing.ListingStatusReport{Status: listing.RemoteStatusNotFound}, nil)
	f.factory.On("NewAdapter", platform, mock.Anything).Return(adapter, nil)

	var saved *listing.ProductListing
	f.listings.On("Save", ctx, mock.AnythingOfType("*listing.ProductListing")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*listing.ProductListing) }).
		Return(nil)

	result, err := f.orch.SyncListingStatuses(ctx, SyncRequest{ProductID: &productID, ActorID: actorID})
	require.NoError(t, err)

	assert.Equal(t, listing.ListingStatusRemoved, result.Results[0].Status)
	require.NotNil(t, saved)
	assert.Equal(t, listing.ListingStatusRemoved, saved.Status)
	// The external ID survives the removed transition
	assert.Equal(t, "ext-7", saved.ExternalListingID)
	f.listings.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestSync_RemoteActiveRecoversErrorRow(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	actorID := uuid.New()
	productID := uuid.New()
	platform := platformFixture(listing.PlatformCodeEbay)
	row := syncFixtureRow(t, productID, platform)
	row.MarkError("transient outage")

	f.listings.On("FindByProduct", ctx, productID).Return([]listing.ProductListing{*row}, nil)
	f.platforms.On("FindByID", ctx, platform.ID).Return(platform, nil)
	f.credentials.On("GetByUserAndPlatform", ctx, actorID, platform.ID).
		Return(credsFixture(actorID, platform.ID), nil)

	adapter := new(MockAdapter)
	adapter.On("GetListingStatus", ctx, "ext-7").
		Return(&listing.ListingStatusReport{Status: listing.RemoteStatusActive}, nil)
	f.factory.On("NewAdapter", platform, mock.Anything).Return(adapter, nil)

	var saved *listing.ProductListing
	f.listings.On("Save", ctx, mock.AnythingOfType("*listing.ProductListing")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*listing.ProductListing) }).
		Return(nil)

	result, err := f.orch.SyncListingStatuses(ctx, SyncRequest{ProductID: &productID, ActorID: actorID})
	require.NoError(t, err)

	assert.Equal(t, listing.ListingStatusActive, result.Results[0].Status)
	require.NotNil(t, saved)
	assert.Empty(t, saved.LastError)
	assert.NotNil(t, saved.LastSyncedAt)
}

func TestSync_ProbeFailureMarksErrorWithoutDeleting(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	actorID := uuid.New()
	productID := uuid.New()
	platform := platformFixture(listing.PlatformCodeEbay)
	row := syncFixtureRow(t, productID, platform)

	f.listings.On("FindByProduct", ctx, productID).Return([]listing.ProductListing{*row}, nil)
	f.platforms.On("FindByID", ctx, platform.ID).Return(platform, nil)
	f.credentials.On("GetByUserAndPlatform", ctx, actorID, platform.ID).
		Return(credsFixture(actorID, platform.ID), nil)

	adapter := new(MockAdapter)
	adapter.On("GetListingStatus", ctx, "ext-7").
		Return(nil, listing.ErrPlatformUnavailable)
	f.factory.On("NewAdapter", platform, mock.Anything).Return(adapter, nil)

	var saved *listing.ProductListing
	f.listings.On("Save", ctx, mock.AnythingOfType("*listing.ProductListing")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*listing.ProductListing) }).
		Return(nil)

	result, err := f.orch.SyncListingStatuses(ctx, SyncRequest{ProductID: &productID, ActorID: actorID})
	require.NoError(t, err)

	assert.Equal(t, listing.ListingStatusError, result.Results[0].Status)
	require.NotNil(t, saved)
	assert.Equal(t, listing.ListingStatusError, saved.Status)
	f.listings.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestSync_AllListingsPagination(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	actorID := uuid.New()
	platform := platformFixture(listing.PlatformCodeFacebook)

	rows := make([]listing.ProductListing, syncPageSize)
	for i := range rows {
		row, err := listing.NewProductListing(uuid.New(), platform.ID)
		require.NoError(t, err)
		rows[i] = *row
	}

	f.listings.On("FindAll", ctx, syncPageSize, 0).Return(rows, nil)
	f.listings.On("FindAll", ctx, syncPageSize, syncPageSize).Return([]listing.ProductListing{}, nil)
	f.platforms.On("FindByID", ctx, platform.ID).Return(platform, nil)

	result, err := f.orch.SyncListingStatuses(ctx, SyncRequest{ActorID: actorID})
	require.NoError(t, err)

	// Rows without an external ID are reported as-is, no adapter calls made
	assert.Len(t, result.Results, syncPageSize)
	f.credentials.AssertNotCalled(t, "GetByUserAndPlatform", mock.Anything, mock.Anything, mock.Anything)
}

// ---------------------------------------------------------------------------
// ResetListing
// ---------------------------------------------------------------------------

func TestResetListing_DeletesRow(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	productID := uuid.New()
	platformID := uuid.New()

	row, err := listing.NewProductListing(productID, platformID)
	require.NoError(t, err)
	row.MarkError("bad category")

	f.listings.On("FindByProductAndPlatform", ctx, productID, platformID).Return(row, nil)
	f.listings.On("Delete", ctx, row.ID).Return(nil)

	require.NoError(t, f.orch.ResetListing(ctx, productID, platformID))
	f.listings.AssertCalled(t, "Delete", ctx, row.ID)
}

func TestResetListing_MissingRow(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	productID := uuid.New()
	platformID := uuid.New()

	f.listings.On("FindByProductAndPlatform", ctx, productID, platformID).
		Return(nil, listing.ErrListingNotFound)

	err := f.orch.ResetListing(ctx, productID, platformID)
	assert.ErrorIs(t, err, listing.ErrListingNotFound)
}

// ---------------------------------------------------------------------------
// TestCredentials
// ---------------------------------------------------------------------------

func TestTestCredentials(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	actorID := uuid.New()
	platform := platformFixture(listing.PlatformCodeFacebook)

	f.platforms.On("FindByID", ctx, platform.ID).Return(platform, nil)
	f.credentials.On("GetByUserAndPlatform", ctx, actorID, platform.ID).
		Return(credsFixture(actorID, platform.ID), nil)

	adapter := new(MockAdapter)
	adapter.On("Authenticate", ctx).Return(true, nil)
	f.factory.On("NewAdapter", platform, mock.Anything).Return(adapter, nil)

	ok, err := f.orch.TestCredentials(ctx, actorID, platform.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}
