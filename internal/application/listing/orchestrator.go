package listing

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopsync/backend/internal/domain/catalog"
	"github.com/shopsync/backend/internal/domain/listing"
)

// syncPageSize is the batch size when reconciling all listings
const syncPageSize = 100

// PayloadOpener unseals stored credential payloads before they are handed to
// an adapter factory
type PayloadOpener interface {
	Open(sealed []byte) ([]byte, error)
}

// Orchestrator drives creation, withdrawal, and status reconciliation of
// product listings across marketplace platforms. Each platform within one
// call is an independent unit of work: per-platform configuration and remote
// failures are captured into the ordered result set and never abort sibling
// platforms. Only global preconditions (missing product, unknown platform)
// surface as errors.
type Orchestrator struct {
	products    catalog.ProductRepository
	platforms   listing.PlatformRepository
	templates   listing.TemplateRepository
	credentials listing.CredentialRepository
	listings    listing.ListingRepository
	adapters    listing.AdapterFactory
	opener      PayloadOpener
	locks       listing.PairLocker
	renderer    *ContentRenderer
	log         *zap.Logger
}

// NewOrchestrator creates a new listing Orchestrator
func NewOrchestrator(
	products catalog.ProductRepository,
	platforms listing.PlatformRepository,
	templates listing.TemplateRepository,
	credentials listing.CredentialRepository,
	listings listing.ListingRepository,
	adapters listing.AdapterFactory,
	opener PayloadOpener,
	locks listing.PairLocker,
	log *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		products:    products,
		platforms:   platforms,
		templates:   templates,
		credentials: credentials,
		listings:    listings,
		adapters:    adapters,
		opener:      opener,
		locks:       locks,
		renderer:    NewContentRenderer(),
		log:         log,
	}
}

// ---------------------------------------------------------------------------
// CreateListings
// ---------------------------------------------------------------------------

// CreateListings publishes one product to every requested platform. The
// returned result holds one entry per platform in the caller-given order,
// regardless of completion order.
func (o *Orchestrator) CreateListings(ctx context.Context, req CreateListingsRequest) (*BulkResult, error) {
	snapshot, err := o.products.GetSnapshot(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	platforms, err := o.resolvePlatforms(ctx, req.PlatformIDs)
	if err != nil {
		return nil, err
	}

	results := make([]PlatformResult, len(req.PlatformIDs))
	var wg sync.WaitGroup
	for i, platform := range platforms {
		wg.Add(1)
		go func(slot int, platform *listing.Platform) {
			defer wg.Done()
			results[slot] = o.createOne(ctx, snapshot, platform, req)
		}(i, platform)
	}
	wg.Wait()

	o.log.Info("create listings finished",
		zap.String("product_id", req.ProductID.String()),
		zap.Int("platforms", len(results)))

	return &BulkResult{ProductID: req.ProductID, Results: results}, nil
}

// createOne runs the full create workflow for a single platform. Every
// failure past this point is captured into the result, never returned.
func (o *Orchestrator) createOne(
	ctx context.Context,
	snapshot *catalog.ProductSnapshot,
	platform *listing.Platform,
	req CreateListingsRequest,
) PlatformResult {
	result := PlatformResult{PlatformID: platform.ID, PlatformCode: platform.Code}

	release, err := o.locks.Acquire(ctx, req.ProductID, platform.ID)
	if err != nil {
		return o.failResult(result, err)
	}
	defer release()

	if !platform.IsActive {
		return o.failResult(result, listing.ErrPlatformInactive)
	}

	template, err := o.resolveTemplate(ctx, platform.ID, req.TemplateIDs)
	if err != nil {
		return o.failAndRecord(ctx, result, req.ProductID, platform.ID, err)
	}

	adapter, err := o.buildAdapter(ctx, req.ActorID, platform)
	if err != nil {
		return o.failAndRecord(ctx, result, req.ProductID, platform.ID, err)
	}

	content, err := o.renderer.Render(snapshot, template, req.CustomData)
	if err != nil {
		return o.failAndRecord(ctx, result, req.ProductID, platform.ID, err)
	}

	row, err := o.loadOrNewRow(ctx, req.ProductID, platform.ID)
	if err != nil {
		return o.failResult(result, err)
	}

	externalID, err := adapter.CreateListing(ctx, content)
	if err != nil {
		o.log.Warn("platform rejected listing",
			zap.String("platform", platform.Code.String()),
			zap.String("product_id", req.ProductID.String()),
			zap.Error(err))
		row.MarkError(err.Error())
		if saveErr := o.listings.Save(ctx, row); saveErr != nil {
			o.log.Error("failed to persist listing error state", zap.Error(saveErr))
		}
		result.Status = listing.ListingStatusError
		result.ExternalListingID = row.ExternalListingID
		result.Error = err.Error()
		return result
	}

	row.MarkActive(externalID, content)
	if err := o.listings.Save(ctx, row); err != nil {
		// The listing is live but the commit failed; the next sync pass
		// reconciles the row from the platform's authoritative state.
		o.log.Error("listing created but local save failed",
			zap.String("platform", platform.Code.String()),
			zap.String("external_id", externalID),
			zap.Error(err))
		return o.failResult(result, err)
	}

	result.Status = listing.ListingStatusActive
	result.ExternalListingID = externalID
	return result
}

// ---------------------------------------------------------------------------
// DeleteListings
// ---------------------------------------------------------------------------

// DeleteListings withdraws a product's listings. With no platform filter it
// operates on every row the product has; a product with no rows yields an
// empty, successful result. On adapter failure the row is left untouched and
// the failure recorded; deletion is not retried automatically.
func (o *Orchestrator) DeleteListings(ctx context.Context, req DeleteListingsRequest) (*BulkResult, error) {
	rows, err := o.collectRows(ctx, req.ProductID, req.PlatformIDs)
	if err != nil {
		return nil, err
	}

	results := make([]PlatformResult, len(rows))
	var wg sync.WaitGroup
	for i, row := range rows {
		wg.Add(1)
		go func(slot int, row *listing.ProductListing) {
			defer wg.Done()
			results[slot] = o.deleteOne(ctx, row, req.ActorID)
		}(i, row)
	}
	wg.Wait()

	return &BulkResult{ProductID: req.ProductID, Results: results}, nil
}

func (o *Orchestrator) deleteOne(ctx context.Context, row *listing.ProductListing, actorID uuid.UUID) PlatformResult {
	result := PlatformResult{PlatformID: row.PlatformID}

	platform, err := o.platforms.FindByID(ctx, row.PlatformID)
	if err != nil {
		return o.failResult(result, err)
	}
	result.PlatformCode = platform.Code

	release, err := o.locks.Acquire(ctx, row.ProductID, row.PlatformID)
	if err != nil {
		return o.failResult(result, err)
	}
	defer release()

	if row.HasRemotePresence() {
		adapter, err := o.buildAdapter(ctx, actorID, platform)
		if err != nil {
			return o.failResult(result, err)
		}
		// A listing already gone on the platform resolves as success here;
		// adapters treat the remote 404 as idempotent deletion.
		if err := adapter.DeleteListing(ctx, row.ExternalListingID); err != nil {
			o.log.Warn("platform delete failed",
				zap.String("platform", platform.Code.String()),
				zap.String("external_id", row.ExternalListingID),
				zap.Error(err))
			result.Status = row.Status
			result.ExternalListingID = row.ExternalListingID
			result.Error = err.Error()
			return result
		}
	}

	if err := o.listings.Delete(ctx, row.ID); err != nil && !errors.Is(err, listing.ErrListingNotFound) {
		return o.failResult(result, err)
	}

	result.Status = listing.ListingStatusNotListed
	return result
}

// ---------------------------------------------------------------------------
// SyncListingStatuses
// ---------------------------------------------------------------------------

// SyncListingStatuses reconciles local rows against each platform's
// authoritative state: remote-active rows become active with a fresh sync
// timestamp, remote-missing rows become removed, and probe failures become
// error rows that are never deleted. This is the only path by which an error
// listing recovers to active without user intervention.
func (o *Orchestrator) SyncListingStatuses(ctx context.Context, req SyncRequest) (*BulkResult, error) {
	rows, err := o.rowsInScope(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	results := make([]PlatformResult, len(rows))
	var wg sync.WaitGroup
	for i, row := range rows {
		wg.Add(1)
		go func(slot int, row *listing.ProductListing) {
			defer wg.Done()
			results[slot] = o.syncOne(ctx, row, req.ActorID)
		}(i, row)
	}
	wg.Wait()

	result := &BulkResult{Results: results}
	if req.ProductID != nil {
		result.ProductID = *req.ProductID
	}

	o.log.Info("listing sync finished",
		zap.Int("total", len(results)),
		zap.Int("failed", result.Failed()))

	return result, nil
}

func (o *Orchestrator) syncOne(ctx context.Context, row *listing.ProductListing, actorID uuid.UUID) PlatformResult {
	result := PlatformResult{PlatformID: row.PlatformID, ExternalListingID: row.ExternalListingID}

	platform, err := o.platforms.FindByID(ctx, row.PlatformID)
	if err != nil {
		return o.failResult(result, err)
	}
	result.PlatformCode = platform.Code

	// Rows that never reached the platform have nothing to reconcile.
	if row.ExternalListingID == "" {
		result.Status = row.Status
		return result
	}

	release, err := o.locks.Acquire(ctx, row.ProductID, row.PlatformID)
	if err != nil {
		return o.failResult(result, err)
	}
	defer release()

	adapter, err := o.buildAdapter(ctx, actorID, platform)
	if err != nil {
		row.MarkError(err.Error())
		if saveErr := o.listings.Save(ctx, row); saveErr != nil {
			o.log.Error("failed to persist listing error state", zap.Error(saveErr))
		}
		return o.failResult(result, err)
	}

	report, err := adapter.GetListingStatus(ctx, row.ExternalListingID)
	if err != nil {
		row.MarkError(err.Error())
		if saveErr := o.listings.Save(ctx, row); saveErr != nil {
			o.log.Error("failed to persist listing error state", zap.Error(saveErr))
		}
		return o.failResult(result, err)
	}

	switch report.Status {
	case listing.RemoteStatusNotFound:
		// Removed out-of-band on the platform; the external ID is kept so
		// the row still names the vanished listing.
		row.MarkRemoved()
	default:
		row.MarkSynced()
	}

	if err := o.listings.Save(ctx, row); err != nil {
		return o.failResult(result, err)
	}

	result.Status = row.Status
	return result
}

// ---------------------------------------------------------------------------
// ResetListing
// ---------------------------------------------------------------------------

// ResetListing is the administrative error-reset: it deletes the listing row
// outright, returning the (product, platform) pair to the implicit
// not_listed state so a fresh CreateListings can start from scratch. The
// remote listing, if any, is not touched.
func (o *Orchestrator) ResetListing(ctx context.Context, productID, platformID uuid.UUID) error {
	release, err := o.locks.Acquire(ctx, productID, platformID)
	if err != nil {
		return err
	}
	defer release()

	row, err := o.listings.FindByProductAndPlatform(ctx, productID, platformID)
	if err != nil {
		return err
	}

	o.log.Info("resetting listing",
		zap.String("product_id", productID.String()),
		zap.String("platform_id", platformID.String()),
		zap.String("status", row.Status.String()))

	return o.listings.Delete(ctx, row.ID)
}

// ---------------------------------------------------------------------------
// TestCredentials
// ---------------------------------------------------------------------------

// TestCredentials builds an adapter from the actor's stored credentials and
// runs its cheap authentication probe
func (o *Orchestrator) TestCredentials(ctx context.Context, actorID, platformID uuid.UUID) (bool, error) {
	platform, err := o.platforms.FindByID(ctx, platformID)
	if err != nil {
		return false, err
	}

	adapter, err := o.buildAdapter(ctx, actorID, platform)
	if err != nil {
		return false, err
	}

	return adapter.Authenticate(ctx)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// resolvePlatforms loads every requested platform up front; an unknown
// platform ID fails the whole call before any unit of work starts.
func (o *Orchestrator) resolvePlatforms(ctx context.Context, ids []uuid.UUID) ([]*listing.Platform, error) {
	platforms := make([]*listing.Platform, len(ids))
	for i, id := range ids {
		platform, err := o.platforms.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		platforms[i] = platform
	}
	return platforms, nil
}

// resolveTemplate picks the explicit template when the caller named one,
// otherwise the platform's default active template, otherwise the first
// active template. No active template means the platform cannot be listed to.
func (o *Orchestrator) resolveTemplate(
	ctx context.Context,
	platformID uuid.UUID,
	explicit map[uuid.UUID]uuid.UUID,
) (*listing.ListingTemplate, error) {
	if templateID, ok := explicit[platformID]; ok {
		template, err := o.templates.FindByID(ctx, templateID)
		if err != nil {
			return nil, err
		}
		if template.PlatformID != platformID {
			return nil, listing.ErrTemplatePlatformMix
		}
		if !template.IsActive {
			return nil, listing.ErrTemplateInactive
		}
		return template, nil
	}

	candidates, err := o.templates.FindActiveByPlatform(ctx, platformID)
	if err != nil && !errors.Is(err, listing.ErrTemplateNotFound) {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, listing.ErrTemplateNotFound
	}

	for i := range candidates {
		if candidates[i].IsDefault {
			return &candidates[i], nil
		}
	}
	return &candidates[0], nil
}

// buildAdapter resolves the actor's credentials for one platform, unseals
// the payload, and constructs the platform adapter
func (o *Orchestrator) buildAdapter(ctx context.Context, actorID uuid.UUID, platform *listing.Platform) (listing.PlatformAdapter, error) {
	creds, err := o.credentials.GetByUserAndPlatform(ctx, actorID, platform.ID)
	if err != nil {
		return nil, err
	}

	payload, err := o.opener.Open(creds.Payload)
	if err != nil {
		return nil, err
	}

	return o.adapters.NewAdapter(platform, payload)
}

// loadOrNewRow returns the existing row for a pair or a fresh pending one
func (o *Orchestrator) loadOrNewRow(ctx context.Context, productID, platformID uuid.UUID) (*listing.ProductListing, error) {
	row, err := o.listings.FindByProductAndPlatform(ctx, productID, platformID)
	if err == nil {
		return row, nil
	}
	if !errors.Is(err, listing.ErrListingNotFound) {
		return nil, err
	}
	return listing.NewProductListing(productID, platformID)
}

// collectRows gathers the rows a delete request addresses. Requested
// platforms with no row are omitted: the pair is already not_listed.
func (o *Orchestrator) collectRows(ctx context.Context, productID uuid.UUID, platformIDs []uuid.UUID) ([]*listing.ProductListing, error) {
	if len(platformIDs) == 0 {
		all, err := o.listings.FindByProduct(ctx, productID)
		if err != nil {
			return nil, err
		}
		rows := make([]*listing.ProductListing, len(all))
		for i := range all {
			rows[i] = &all[i]
		}
		return rows, nil
	}

	rows := make([]*listing.ProductListing, 0, len(platformIDs))
	for _, platformID := range platformIDs {
		row, err := o.listings.FindByProductAndPlatform(ctx, productID, platformID)
		if errors.Is(err, listing.ErrListingNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// rowsInScope returns the rows a sync request addresses, paging through the
// whole table when no product filter is given
func (o *Orchestrator) rowsInScope(ctx context.Context, productID *uuid.UUID) ([]*listing.ProductListing, error) {
	if productID != nil {
		all, err := o.listings.FindByProduct(ctx, *productID)
		if err != nil {
			return nil, err
		}
		rows := make([]*listing.ProductListing, len(all))
		for i := range all {
			rows[i] = &all[i]
		}
		return rows, nil
	}

	var rows []*listing.ProductListing
	for offset := 0; ; offset += syncPageSize {
		page, err := o.listings.FindAll(ctx, syncPageSize, offset)
		if err != nil {
			return nil, err
		}
		for i := range page {
			rows = append(rows, &page[i])
		}
		if len(page) < syncPageSize {
			return rows, nil
		}
	}
}

// failResult records a failure that produced no row write
func (o *Orchestrator) failResult(result PlatformResult, err error) PlatformResult {
	result.Status = listing.ListingStatusError
	result.Error = err.Error()
	return result
}

// failAndRecord captures a configuration or rendering failure into both the
// result and the listing row, so the dashboard shows why the platform is in
// error without aborting sibling platforms
func (o *Orchestrator) failAndRecord(
	ctx context.Context,
	result PlatformResult,
	productID, platformID uuid.UUID,
	err error,
) PlatformResult {
	row, rowErr := o.loadOrNewRow(ctx, productID, platformID)
	if rowErr == nil {
		row.MarkError(err.Error())
		if saveErr := o.listings.Save(ctx, row); saveErr != nil {
			o.log.Error("failed to persist listing error state", zap.Error(saveErr))
		}
	}
	return o.failResult(result, err)
}
