package repository

import (
	"context"
	"fmt"

	"matchbook/database"
	"matchbook/domain/entities"
	"matchbook/domain/interfaces"
)

type roundRepository struct {
	q Queryable
}

// NewRoundRepository creates a new round repository
func NewRoundRepository(db *database.DB) interfaces.RoundRepository {
	return &roundRepository{q: db.Pool}
}

// Get returns the single round state row. The row is seeded by the initial
// migration, so a missing row is a backend error, not a miss.
func (r *roundRepository) Get(ctx context.Context) (*entities.Round, error) {
	query := `SELECT state, distribution, updated_at FROM rounds WHERE id = 1`

	var round entities.Round
	err := r.q.QueryRow(ctx, query).Scan(&round.State, &round.Distribution, &round.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get round state: %w", err)
	}

	return &round, nil
}

func (r *roundRepository) Save(ctx context.Context, round *entities.Round) error {
	query := `
		UPDATE rounds
		SET state = $1, distribution = $2, updated_at = NOW()
		WHERE id = 1`

	tag, err := r.q.Exec(ctx, query, round.State, round.Distribution)
	if err != nil {
		return fmt.Errorf("failed to save round state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("round state row missing")
	}

	return nil
}
