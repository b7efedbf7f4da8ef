package services

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/harentsoaR/medics-admin/internal/models"
)

type ReferenceSource interface {
	References(ctx context.Context) (models.ReferenceBundle, error)
}

// ReferenceCatalog caches the first reference bundle the backend returns.
// Until then every failed fetch yields the hardcoded fallback and the next
// call tries again.
type ReferenceCatalog struct {
	src ReferenceSource
	log zerolog.Logger

	mu     sync.Mutex
	cached *models.ReferenceBundle
}

func NewReferenceCatalog(src ReferenceSource, log zerolog.Logger) *ReferenceCatalog {
	return &ReferenceCatalog{src: src, log: log}
}

// Bundle never fails. The bool reports whether the data came from the backend.
func (c *ReferenceCatalog) Bundle(ctx context.Context) (models.ReferenceBundle, bool) {
	c.mu.Lock()
	if c.cached != nil {
		b := *c.cached
		c.mu.Unlock()
		return b, true
	}
	c.mu.Unlock()

	b, err := c.src.References(ctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("reference data unavailable, using fallback")
		return models.FallbackReferences(), false
	}
	if len(b.AppointmentStatuses) == 0 {
		b.AppointmentStatuses = models.FallbackReferences().AppointmentStatuses
	}
	if len(b.PaymentStatuses) == 0 {
		b.PaymentStatuses = models.FallbackReferences().PaymentStatuses
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cached == nil {
		c.cached = &b
	}
	return *c.cached, true
}
