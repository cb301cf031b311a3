package governance

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// StateSource provides the per-symbol metric states maintained by the
// governance collaborator.
type StateSource interface {
	FetchStates(ctx context.Context, symbol string) ([]MetricState, error)
}

// PgStateSource reads metric states from the collaborator's PostgreSQL store.
// The schema is owned by the collaborator; queries here are read-only.
type PgStateSource struct {
	pool *pgxpool.Pool
}

// NewPgStateSource creates a PostgreSQL-backed state source.
func NewPgStateSource(pool *pgxpool.Pool) *PgStateSource {
	return &PgStateSource{pool: pool}
}

func (r *PgStateSource) FetchStates(ctx context.Context, symbol string) ([]MetricState, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT metric_key, value, benchmark_value, status, required_for_sector
		 FROM metric_states
		 WHERE symbol = $1
		 ORDER BY metric_key`,
		symbol)
	if err != nil {
		return nil, fmt.Errorf("querying metric states for %s: %w", symbol, err)
	}
	defer rows.Close()

	var states []MetricState
	for rows.Next() {
		var s MetricState
		if err := rows.Scan(&s.Key, &s.Value, &s.BenchmarkValue, &s.Status, &s.RequiredForSector); err != nil {
			return nil, fmt.Errorf("scanning metric state: %w", err)
		}
		states = append(states, s)
	}
	return states, rows.Err()
}

// StaticStateSource serves a fixed state set, used when no governance store is
// configured and in tests.
type StaticStateSource struct {
	States map[string][]MetricState
}

func (s *StaticStateSource) FetchStates(_ context.Context, symbol string) ([]MetricState, error) {
	return s.States[symbol], nil
}
