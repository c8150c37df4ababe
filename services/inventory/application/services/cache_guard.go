package services

import (
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/ghuser/barstock/services/inventory/domain/models"
)

const cacheStripes = 64

// cacheGuard orders cache fills against invalidations. Every id hashes to a
// stripe holding a generation counter. A reader records the generation before
// it reads storage and may fill the cache only while the generation is
// unchanged; an invalidation bumps it and deletes under the same lock, so a
// fill that read storage before the mutation can never land after it.
// Ids sharing a stripe also skip each other's fills, which only costs a miss.
type cacheGuard struct {
	stripes [cacheStripes]cacheStripe
}

type cacheStripe struct {
	mu  sync.Mutex
	gen uint64
}

func (g *cacheGuard) stripe(id models.ItemID) *cacheStripe {
	return &g.stripes[xxhash.Sum64String(id.String())%cacheStripes]
}

// generation returns the current generation of id's stripe.
func (g *cacheGuard) generation(id models.ItemID) uint64 {
	s := g.stripe(id)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// fill runs fn if no invalidation of id's stripe happened since gen was read.
// It reports whether fn ran.
func (g *cacheGuard) fill(id models.ItemID, gen uint64, fn func()) bool {
	s := g.stripe(id)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return false
	}
	fn()
	return true
}

// invalidate bumps id's stripe generation and runs fn under the stripe lock.
func (g *cacheGuard) invalidate(id models.ItemID, fn func() error) error {
	s := g.stripe(id)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	return fn()
}
