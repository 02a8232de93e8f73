package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"websafe-game-service/internal/domain"
	"github.com/jackc/pgx/v4/pgxpool"
)

// CatalogLoader loads scenario JSONB rows from Postgres, ordered by the
// authored catalog position.
type CatalogLoader struct {
	pool *pgxpool.Pool
}

func NewCatalogLoader(pool *pgxpool.Pool) *CatalogLoader {
	return &CatalogLoader{pool: pool}
}

func (l *CatalogLoader) LoadCatalog(ctx context.Context) ([]domain.Scenario, error) {
	rows, err := l.pool.Query(ctx, `SELECT data FROM scenarios ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	defer rows.Close()

	var scenarios []domain.Scenario
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan scenario: %w", err)
		}
		var scenario domain.Scenario
		if err := json.Unmarshal(raw, &scenario); err != nil {
			return nil, fmt.Errorf("unmarshal scenario: %w", err)
		}
		scenarios = append(scenarios, scenario)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	if len(scenarios) == 0 {
		return nil, domain.ErrCatalogUnavailable
	}
	return scenarios, nil
}
