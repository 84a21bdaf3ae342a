package listing

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shopsync/backend/internal/domain/listing"
)

// prefixSealer marks payloads so tests can tell sealed from plain
type prefixSealer struct{}

func (prefixSealer) Seal(payload []byte) ([]byte, error) {
	return append([]byte("sealed:"), payload...), nil
}

type credentialFixture struct {
	credentials *MockCredentialRepository
	platforms   *MockPlatformRepository
	factory     *MockAdapterFactory
	svc         *CredentialService
}

func newCredentialFixture() *credentialFixture {
	f := &credentialFixture{
		credentials: new(MockCredentialRepository),
		platforms:   new(MockPlatformRepository),
		factory:     new(MockAdapterFactory),
	}
	f.svc = NewCredentialService(f.credentials, f.platforms, f.factory, prefixSealer{}, zap.NewNop())
	return f
}

func TestCredentialService_StoreSealsPayload(t *testing.T) {
	f := newCredentialFixture()
	ctx := context.Background()
	userID := uuid.New()
	platform := platformFixture(listing.PlatformCodeFacebook)
	payload := []byte(`{"access_token":"tok","catalog_id":"c1"}`)

	f.platforms.On("FindByID", ctx, platform.ID).Return(platform, nil)
	f.factory.On("NewAdapter", platform, mock.Anything).Return(new(MockAdapter), nil)
	f.credentials.On("GetByUserAndPlatform", ctx, userID, platform.ID).
		Return(nil, listing.ErrCredentialsNotFound)
	f.credentials.On("Save", ctx, mock.MatchedBy(func(c *listing.PlatformCredentials) bool {
		return string(c.Payload[:7]) == "sealed:" && c.UserID == userID
	})).Return(nil)

	info, err := f.svc.Store(ctx, userID, platform.ID, payload)
	require.NoError(t, err)
	assert.Equal(t, platform.ID, info.PlatformID)
	assert.Equal(t, listing.PlatformCodeFacebook, info.PlatformCode)
	f.credentials.AssertExpectations(t)
}

func TestCredentialService_StoreRotatesExistingRow(t *testing.T) {
	f := newCredentialFixture()
	ctx := context.Background()
	userID := uuid.New()
	platform := platformFixture(listing.PlatformCodeEbay)
	existing := credsFixture(userID, platform.ID)

	f.platforms.On("FindByID", ctx, platform.ID).Return(platform, nil)
	f.factory.On("NewAdapter", platform, mock.Anything).Return(new(MockAdapter), nil)
	f.credentials.On("GetByUserAndPlatform", ctx, userID, platform.ID).Return(existing, nil)
	f.credentials.On("Save", ctx, existing).Return(nil)

	info, err := f.svc.Store(ctx, userID, platform.ID, []byte(`{"oauth_token":"new"}`))
	require.NoError(t, err)
	assert.Equal(t, existing.ID, info.ID)
	assert.Equal(t, []byte(`sealed:{"oauth_token":"new"}`), existing.Payload)
}

func TestCredentialService_StoreRejectsUnusablePayload(t *testing.T) {
	f := newCredentialFixture()
	ctx := context.Background()
	platform := platformFixture(listing.PlatformCodeFacebook)

	f.platforms.On("FindByID", ctx, platform.ID).Return(platform, nil)
	f.factory.On("NewAdapter", platform, mock.Anything).
		Return(nil, listing.ErrInvalidCredentials)

	_, err := f.svc.Store(ctx, uuid.New(), platform.ID, []byte(`{}`))
	assert.ErrorIs(t, err, listing.ErrInvalidCredentials)
	f.credentials.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCredentialService_ListOmitsPayload(t *testing.T) {
	f := newCredentialFixture()
	ctx := context.Background()
	userID := uuid.New()
	platform := platformFixture(listing.PlatformCodeFacebook)
	row := credsFixture(userID, platform.ID)

	f.credentials.On("FindByUser", ctx, userID).
		Return([]listing.PlatformCredentials{*row}, nil)
	f.platforms.On("FindByID", ctx, platform.ID).Return(platform, nil)

	infos, err := f.svc.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, row.ID, infos[0].ID)
	assert.Equal(t, listing.PlatformCodeFacebook, infos[0].PlatformCode)
}

func TestCredentialService_DeleteChecksOwnership(t *testing.T) {
	f := newCredentialFixture()
	ctx := context.Background()
	userID := uuid.New()
	platformID := uuid.New()

	f.credentials.On("GetByUserAndPlatform", ctx, userID, platformID).
		Return(nil, listing.ErrCredentialsNotFound)

	err := f.svc.Delete(ctx, userID, platformID)
	assert.ErrorIs(t, err, listing.ErrCredentialsNotFound)
	f.credentials.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
