package listing

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ---------------------------------------------------------------------------
// PlatformCredentials
// ---------------------------------------------------------------------------

// PlatformCredentials holds the auth material one user configured for one
// platform. The payload is an opaque, sealed blob whose inner shape is owned
// by the platform adapter (app keys, tokens, session secrets). One row exists
// per (user, platform); the sync engine only reads it.
type PlatformCredentials struct {
	// ID is the unique identifier of this credential row
	ID uuid.UUID
	// UserID is the owner of the credentials
	UserID uuid.UUID
	// PlatformID is the platform these credentials authenticate against
	PlatformID uuid.UUID
	// Payload is the sealed provider-specific auth material
	Payload []byte
	// CreatedAt is when the credentials were first stored
	CreatedAt time.Time
	// UpdatedAt is when the credentials were last rotated
	UpdatedAt time.Time
}

// NewPlatformCredentials creates a new credential row
func NewPlatformCredentials(userID, platformID uuid.UUID, payload []byte) (*PlatformCredentials, error) {
	if userID == uuid.Nil || platformID == uuid.Nil {
		return nil, ErrInvalidCredentials
	}
	if len(payload) == 0 {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	return &PlatformCredentials{
		ID:         uuid.New(),
		UserID:     userID,
		PlatformID: platformID,
		Payload:    payload,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// Rotate replaces the sealed payload
func (c *PlatformCredentials) Rotate(payload []byte) error {
	if len(payload) == 0 {
		return ErrInvalidCredentials
	}
	c.Payload = payload
	c.UpdatedAt = time.Now()
	return nil
}

// ---------------------------------------------------------------------------
// CredentialRepository
// ---------------------------------------------------------------------------

// CredentialRepository persists platform credentials. The sync engine only
// uses GetByUserAndPlatform; the remaining methods serve the credential
// management flow.
type CredentialRepository interface {
	// GetByUserAndPlatform returns the credentials one user configured for one
	// platform, or ErrCredentialsNotFound
	GetByUserAndPlatform(ctx context.Context, userID, platformID uuid.UUID) (*PlatformCredentials, error)

	// FindByUser returns all credentials a user has configured
	FindByUser(ctx context.Context, userID uuid.UUID) ([]PlatformCredentials, error)

	// Save creates or updates a credential row
	Save(ctx context.Context, creds *PlatformCredentials) error

	// Delete removes a credential row
	Delete(ctx context.Context, id uuid.UUID) error
}
