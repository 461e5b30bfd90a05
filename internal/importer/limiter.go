package importer

// limiter.go bounds how many import calls run at once.
//
// Each import holds one database transaction for its whole duration;
// without a bound, a burst of large pastes could pin every pool
// connection. The limiter is a plain semaphore: callers wait up to
// maxWait for a slot, then fail fast with ErrTooManyImports. It adds no
// entity-level locking — concurrent imports touching the same player or
// game still race under the store's default isolation.

import (
	"context"
	"errors"
	"time"
)

// ErrTooManyImports is returned when every import slot is occupied and the
// wait timeout expires. Callers should retry after a short delay.
var ErrTooManyImports = errors.New("too many concurrent imports, please try again later")

const (
	defaultMaxConcurrentImports = 4
	defaultMaxSlotWait          = 30 * time.Second
)

type importLimiter struct {
	semaphore chan struct{}
	maxWait   time.Duration
}

func newImportLimiter(maxConcurrent int, maxWait time.Duration) *importLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrentImports
	}
	if maxWait <= 0 {
		maxWait = defaultMaxSlotWait
	}
	return &importLimiter{
		semaphore: make(chan struct{}, maxConcurrent),
		maxWait:   maxWait,
	}
}

// acquire blocks until a slot is free, the wait times out, or ctx is
// cancelled. Callers must release() on success.
func (l *importLimiter) acquire(ctx context.Context) error {
	waitCtx, cancel := context.WithTimeout(ctx, l.maxWait)
	defer cancel()

	select {
	case l.semaphore <- struct{}{}:
		return nil
	case <-waitCtx.Done():
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrTooManyImports
	}
}

func (l *importLimiter) release() {
	<-l.semaphore
}
