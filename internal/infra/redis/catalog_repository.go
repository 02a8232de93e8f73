package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"websafe-game-service/internal/domain"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const catalogKey = "game:catalog:scenarios"

// CatalogLoader fetches the scenario catalog from a backing store.
type CatalogLoader interface {
	LoadCatalog(ctx context.Context) ([]domain.Scenario, error)
}

// CatalogRepository caches the catalog in Redis as one JSON document and
// falls back to a loader on cache miss. Scenario answer keys are
// polymorphic, so the whole record is cached rather than per-field hashes.
type CatalogRepository struct {
	client *redis.Client
	loader CatalogLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewCatalogRepository(client *redis.Client, loader CatalogLoader, ttl time.Duration) *CatalogRepository {
	return &CatalogRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *CatalogRepository) GetCatalog(ctx context.Context) ([]domain.Scenario, error) {
	if scenarios, ok := r.fromCache(ctx); ok {
		return scenarios, nil
	}

	result, err, _ := r.sf.Do(catalogKey, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if scenarios, ok := r.fromCache(ctx); ok {
			return scenarios, nil
		}

		scenarios, err := r.loader.LoadCatalog(ctx)
		if err != nil {
			return nil, err
		}

		data, err := json.Marshal(scenarios)
		if err != nil {
			return nil, fmt.Errorf("marshal catalog: %w", err)
		}
		// best-effort; a failed SET just means the next call loads again
		_ = r.client.Set(ctx, catalogKey, data, r.ttlWithJitter()).Err()

		return scenarios, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Scenario), nil
}

func (r *CatalogRepository) fromCache(ctx context.Context) ([]domain.Scenario, bool) {
	data, err := r.client.Get(ctx, catalogKey).Bytes()
	if err != nil || len(data) == 0 {
		return nil, false
	}
	var scenarios []domain.Scenario
	if err := json.Unmarshal(data, &scenarios); err != nil {
		return nil, false
	}
	return scenarios, true
}

func (r *CatalogRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
