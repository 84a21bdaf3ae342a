package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	listingapp "github.com/shopsync/backend/internal/application/listing"
	"github.com/shopsync/backend/internal/domain/catalog"
	"github.com/shopsync/backend/internal/domain/listing"
	"github.com/shopsync/backend/internal/interfaces/http/middleware"
)

type MockListingService struct {
	mock.Mock
}

func (m *MockListingService) CreateListings(ctx context.Context, req listingapp.CreateListingsRequest) (*listingapp.BulkResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*listingapp.BulkResult), args.Error(1)
}

func (m *MockListingService) DeleteListings(ctx context.Context, req listingapp.DeleteListingsRequest) (*listingapp.BulkResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*listingapp.BulkResult), args.Error(1)
}

func (m *MockListingService) SyncListingStatuses(ctx context.Context, req listingapp.SyncRequest) (*listingapp.BulkResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*listingapp.BulkResult), args.Error(1)
}

func (m *MockListingService) ResetListing(ctx context.Context, productID, platformID uuid.UUID) error {
	args := m.Called(ctx, productID, platformID)
	return args.Error(0)
}

func (m *MockListingService) TestCredentials(ctx context.Context, actorID, platformID uuid.UUID) (bool, error) {
	args := m.Called(ctx, actorID, platformID)
	return args.Bool(0), args.Error(1)
}

var _ ListingService = (*MockListingService)(nil)

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

var _ listing.ListingRepository = (*MockListingRepository)(nil)

// withTestUser injects the authenticated user the JWT middleware would set
func withTestUser(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.JWTUserIDKey, userID.String())
		c.Next()
	}
}

func newListingTestRouter(svc *MockListingService, repo *MockListingRepository, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewListingHandler(svc, repo)
	r := gin.New()
	r.Use(withTestUser(userID))
	r.POST("/products/:id/listings", h.Create)
	r.GET("/products/:id/listings", h.List)
	r.DELETE("/products/:id/listings", h.Delete)
	r.POST("/products/:id/listings/:platformId/reset", h.Reset)
	r.POST("/listings/sync", h.Sync)
	return r
}

func TestListingHandler_Create(t *testing.T) {
	svc := new(MockListingService)
	repo := new(MockListingRepository)
	userID := uuid.New()
	productID := uuid.New()
	platformID := uuid.New()
	router := newListingTestRouter(svc, repo, userID)

	svc.On("CreateListings", mock.Anything, mock.MatchedBy(func(req listingapp.CreateListingsRequest) bool {
		return req.ProductID == productID && req.ActorID == userID &&
			len(req.PlatformIDs) == 1 && req.PlatformIDs[0] == platformID
	})).Return(&listingapp.BulkResult{
		ProductID: productID,
		Results: []listingapp.PlatformResult{{
			PlatformID:        platformID,
			PlatformCode:      listing.PlatformCodeFacebook,
			Status:            listing.ListingStatusActive,
			ExternalListingID: "fb-1",
		}},
	}, nil)

	body, _ := json.Marshal(CreateListingsRequest{PlatformIDs: []string{platformID.String()}})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/products/%s/listings", productID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "fb-1")
	assert.Contains(t, w.Body.String(), `"status":"active"`)
	svc.AssertExpectations(t)
}

func TestListingHandler_CreateRequiresPlatforms(t *testing.T) {
	svc := new(MockListingService)
	repo := new(MockListingRepository)
	router := newListingTestRouter(svc, repo, uuid.New())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/products/%s/listings", uuid.New()),
		bytes.NewReader([]byte(`{"platform_ids":[]}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "CreateListings", mock.Anything, mock.Anything)
}

func TestListingHandler_CreateMissingProduct(t *testing.T) {
	svc := new(MockListingService)
	repo := new(MockListingRepository)
	router := newListingTestRouter(svc, repo, uuid.New())
	productID := uuid.New()

	svc.On("CreateListings", mock.Anything, mock.Anything).
		Return(nil, catalog.ErrProductNotFound)

	body := fmt.Sprintf(`{"platform_ids":[%q]}`, uuid.New())
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/products/%s/listings", productID), bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_NOT_FOUND")
}

func TestListingHandler_DeleteWithoutBody(t *testing.T) {
	svc := new(MockListingService)
	repo := new(MockListingRepository)
	userID := uuid.New()
	productID := uuid.New()
	router := newListingTestRouter(svc, repo, userID)

	svc.On("DeleteListings", mock.Anything, mock.MatchedBy(func(req listingapp.DeleteListingsRequest) bool {
		return req.ProductID == productID && len(req.PlatformIDs) == 0
	})).Return(&listingapp.BulkResult{ProductID: productID, Results: []listingapp.PlatformResult{}}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/products/%s/listings", productID), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestListingHandler_SyncAll(t *testing.T) {
	svc := new(MockListingService)
	repo := new(MockListingRepository)
	userID := uuid.New()
	router := newListingTestRouter(svc, repo, userID)

	svc.On("SyncListingStatuses", mock.Anything, mock.MatchedBy(func(req listingapp.SyncRequest) bool {
		return req.ProductID == nil && req.ActorID == userID
	})).Return(&listingapp.BulkResult{Results: []listingapp.PlatformResult{}}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/listings/sync", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestListingHandler_Reset(t *testing.T) {
	svc := new(MockListingService)
	repo := new(MockListingRepository)
	productID := uuid.New()
	platformID := uuid.New()
	router := newListingTestRouter(svc, repo, uuid.New())

	t.Run("deletes the row", func(t *testing.T) {
		svc.On("ResetListing", mock.Anything, productID, platformID).Return(nil).Once()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost,
			fmt.Sprintf("/products/%s/listings/%s/reset", productID, platformID), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("missing row maps to 404", func(t *testing.T) {
		svc.On("ResetListing", mock.Anything, productID, platformID).
			Return(listing.ErrListingNotFound).Once()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost,
			fmt.Sprintf("/products/%s/listings/%s/reset", productID, platformID), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestListingHandler_List(t *testing.T) {
	svc := new(MockListingService)
	repo := new(MockListingRepository)
	productID := uuid.New()
	router := newListingTestRouter(svc, repo, uuid.New())

	row, _ := listing.NewProductListing(productID, uuid.New())
	row.MarkActive("ext-1", nil)
	repo.On("FindByProduct", mock.Anything, productID).
		Return([]listing.ProductListing{*row}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/products/%s/listings", productID), nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ext-1")
}
