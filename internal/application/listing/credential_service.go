package listing

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopsync/backend/internal/domain/listing"
)

// PayloadSealer seals provider credential payloads before they hit storage
type PayloadSealer interface {
	Seal(payload []byte) ([]byte, error)
}

// CredentialService manages the sealed per-user platform credentials. Plain
// payloads exist only inside a request; storage and listing responses only
// ever see the sealed form.
type CredentialService struct {
	credentials listing.CredentialRepository
	platforms   listing.PlatformRepository
	adapters    listing.AdapterFactory
	sealer      PayloadSealer
	log         *zap.Logger
}

// NewCredentialService creates a new CredentialService
func NewCredentialService(
	credentials listing.CredentialRepository,
	platforms listing.PlatformRepository,
	adapters listing.AdapterFactory,
	sealer PayloadSealer,
	log *zap.Logger,
) *CredentialService {
	return &CredentialService{
		credentials: credentials,
		platforms:   platforms,
		adapters:    adapters,
		sealer:      sealer,
		log:         log,
	}
}

// CredentialInfo is the payload-free view of a stored credential row
type CredentialInfo struct {
	ID           uuid.UUID            `json:"id"`
	PlatformID   uuid.UUID            `json:"platform_id"`
	PlatformCode listing.PlatformCode `json:"platform_code,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// Store validates a plain credential payload against the platform's adapter,
// seals it, and upserts the (user, platform) row
func (s *CredentialService) Store(ctx context.Context, userID, platformID uuid.UUID, payload json.RawMessage) (*CredentialInfo, error) {
	platform, err := s.platforms.FindByID(ctx, platformID)
	if err != nil {
		return nil, err
	}

	// Reject payloads the platform adapter cannot construct from, before
	// anything is persisted.
	if _, err := s.adapters.NewAdapter(platform, payload); err != nil {
		return nil, err
	}

	sealed, err := s.sealer.Seal(payload)
	if err != nil {
		return nil, err
	}

	creds, err := s.credentials.GetByUserAndPlatform(ctx, userID, platformID)
	switch {
	case err == nil:
		if err := creds.Rotate(sealed); err != nil {
			return nil, err
		}
	case errors.Is(err, listing.ErrCredentialsNotFound):
		creds, err = listing.NewPlatformCredentials(userID, platformID, sealed)
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if err := s.credentials.Save(ctx, creds); err != nil {
		return nil, err
	}

	s.log.Info("credentials stored",
		zap.String("user_id", userID.String()),
		zap.String("platform", platform.Code.String()))

	return &CredentialInfo{
		ID:           creds.ID,
		PlatformID:   creds.PlatformID,
		PlatformCode: platform.Code,
		CreatedAt:    creds.CreatedAt,
		UpdatedAt:    creds.UpdatedAt,
	}, nil
}

// List returns the payload-free credential rows a user has configured
func (s *CredentialService) List(ctx context.Context, userID uuid.UUID) ([]CredentialInfo, error) {
	rows, err := s.credentials.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	infos := make([]CredentialInfo, len(rows))
	for i, row := range rows {
		infos[i] = CredentialInfo{
			ID:         row.ID,
			PlatformID: row.PlatformID,
			CreatedAt:  row.CreatedAt,
			UpdatedAt:  row.UpdatedAt,
		}
		if platform, err := s.platforms.FindByID(ctx, row.PlatformID); err == nil {
			infos[i].PlatformCode = platform.Code
		}
	}
	return infos, nil
}

// Delete removes a user's credentials for one platform. Ownership is checked
// so one user cannot delete another's rows.
func (s *CredentialService) Delete(ctx context.Context, userID, platformID uuid.UUID) error {
	creds, err := s.credentials.GetByUserAndPlatform(ctx, userID, platformID)
	if err != nil {
		return err
	}
	return s.credentials.Delete(ctx, creds.ID)
}
