// Package lock provides the per-(product, platform) mutual exclusion used by
// the listing orchestrator. Concurrent bulk operations touching the same pair
// serialize here instead of racing on the listing row.
package lock

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/shopsync/backend/internal/domain/listing"
)

// InMemoryPairLock implements PairLocker with per-key channels
// This is suitable for single-instance deployments and testing
type InMemoryPairLock struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
}

// NewInMemoryPairLock creates a new in-memory pair lock
func NewInMemoryPairLock() *InMemoryPairLock {
	return &InMemoryPairLock{
		locks: make(map[string]chan struct{}),
	}
}

// Acquire blocks until the (product, platform) pair is free or the context
// is cancelled. The returned release function must be called exactly once.
func (l *InMemoryPairLock) Acquire(ctx context.Context, productID, platformID uuid.UUID) (func(), error) {
	key := pairKey(productID, platformID)

	for {
		l.mu.Lock()
		ch, held := l.locks[key]
		if !held {
			ch = make(chan struct{})
			l.locks[key] = ch
			l.mu.Unlock()

			var once sync.Once
			release := func() {
				once.Do(func() {
					l.mu.Lock()
					delete(l.locks, key)
					l.mu.Unlock()
					close(ch)
				})
			}
			return release, nil
		}
		l.mu.Unlock()

		// Wait for the current holder to release, then race again
		select {
		case <-ch:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func pairKey(productID, platformID uuid.UUID) string {
	return productID.String() + ":" + platformID.String()
}

// Ensure InMemoryPairLock implements PairLocker
var _ listing.PairLocker = (*InMemoryPairLock)(nil)
