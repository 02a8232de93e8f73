package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"websafe-game-service/internal/domain"
	"golang.org/x/sync/singleflight"
)

// CatalogLoader fetches the scenario catalog from a backing store.
type CatalogLoader interface {
	LoadCatalog(ctx context.Context) ([]domain.Scenario, error)
}

// CatalogRepository caches the catalog with TTL to avoid repeated DB hits.
type CatalogRepository struct {
	loader CatalogLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu        sync.RWMutex
	cached    []domain.Scenario
	expiresAt time.Time
}

func NewCatalogRepository(loader CatalogLoader, ttl time.Duration) *CatalogRepository {
	return &CatalogRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *CatalogRepository) GetCatalog(ctx context.Context) ([]domain.Scenario, error) {
	now := r.clock()

	r.mu.RLock()
	if r.cached != nil && r.expiresAt.After(now) {
		scenarios := r.cached
		r.mu.RUnlock()
		return scenarios, nil
	}
	r.mu.RUnlock()

	result, err, _ := r.sf.Do("catalog", func() (interface{}, error) {
		now := r.clock()
		r.mu.RLock()
		if r.cached != nil && r.expiresAt.After(now) {
			scenarios := r.cached
			r.mu.RUnlock()
			return scenarios, nil
		}
		r.mu.RUnlock()

		scenarios, err := r.loader.LoadCatalog(ctx)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.cached = scenarios
		r.expiresAt = now.Add(r.ttlWithJitter())
		r.mu.Unlock()
		return scenarios, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Scenario), nil
}

// StaticCatalogLoader is a simple loader backed by an in-memory slice
// (useful for tests/demos and for running without Postgres).
type StaticCatalogLoader struct {
	scenarios []domain.Scenario
}

func NewStaticCatalogLoader(scenarios []domain.Scenario) *StaticCatalogLoader {
	return &StaticCatalogLoader{scenarios: scenarios}
}

func (l *StaticCatalogLoader) LoadCatalog(_ context.Context) ([]domain.Scenario, error) {
	if len(l.scenarios) == 0 {
		return nil, domain.ErrCatalogUnavailable
	}
	out := make([]domain.Scenario, len(l.scenarios))
	copy(out, l.scenarios)
	return out, nil
}

func (r *CatalogRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
