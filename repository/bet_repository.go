package repository

import (
	"context"
	"fmt"

	"matchbook/database"
	"matchbook/domain/entities"
	"matchbook/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

type betRepository struct {
	q Queryable
}

// NewBetRepository creates a new bet repository
func NewBetRepository(db *database.DB) interfaces.BetRepository {
	return &betRepository{q: db.Pool}
}

func (r *betRepository) Create(ctx context.Context, bet *entities.Bet) error {
	query := `
		INSERT INTO bets (user_id, match_id, player, prop, amount, odds)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, resolved, won, created_at`

	err := r.q.QueryRow(ctx, query,
		bet.UserID,
		bet.MatchID,
		bet.Player,
		bet.Prop,
		bet.Amount,
		bet.Odds,
	).Scan(&bet.ID, &bet.Resolved, &bet.Won, &bet.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create bet: %w", err)
	}

	return nil
}

func (r *betRepository) GetByID(ctx context.Context, id int64) (*entities.Bet, error) {
	query := `
		SELECT id, user_id, match_id, player, prop, amount, odds, resolved, won, created_at
		FROM bets
		WHERE id = $1`

	var bet entities.Bet
	err := r.q.QueryRow(ctx, query, id).Scan(
		&bet.ID,
		&bet.UserID,
		&bet.MatchID,
		&bet.Player,
		&bet.Prop,
		&bet.Amount,
		&bet.Odds,
		&bet.Resolved,
		&bet.Won,
		&bet.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bet %d: %w", id, err)
	}

	return &bet, nil
}

func (r *betRepository) ListByMatch(ctx context.Context, matchID string, unresolvedOnly bool) ([]*entities.Bet, error) {
	query := `
		SELECT id, user_id, match_id, player, prop, amount, odds, resolved, won, created_at
		FROM bets
		WHERE match_id = $1`
	if unresolvedOnly {
		query += ` AND NOT resolved`
	}
	query += ` ORDER BY id ASC`

	rows, err := r.q.Query(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bets for match %s: %w", matchID, err)
	}
	defer rows.Close()

	return collectBets(rows)
}

func (r *betRepository) ListByUser(ctx context.Context, userID, matchID string) ([]*entities.Bet, error) {
	query := `
		SELECT id, user_id, match_id, player, prop, amount, odds, resolved, won, created_at
		FROM bets
		WHERE user_id = $1 AND match_id = $2
		ORDER BY id ASC`

	rows, err := r.q.Query(ctx, query, userID, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bets for user %s: %w", userID, err)
	}
	defer rows.Close()

	return collectBets(rows)
}

// Resolve marks a bet with its outcome. The NOT resolved guard makes settled
// bets immutable even if the same id is submitted twice.
func (r *betRepository) Resolve(ctx context.Context, id int64, won bool) error {
	query := `UPDATE bets SET resolved = TRUE, won = $1 WHERE id = $2 AND NOT resolved`

	tag, err := r.q.Exec(ctx, query, won, id)
	if err != nil {
		return fmt.Errorf("failed to resolve bet %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("bet %d not found or already resolved", id)
	}

	return nil
}

func collectBets(rows pgx.Rows) ([]*entities.Bet, error) {
	var bets []*entities.Bet
	for rows.Next() {
		var bet entities.Bet
		err := rows.Scan(
			&bet.ID,
			&bet.UserID,
			&bet.MatchID,
			&bet.Player,
			&bet.Prop,
			&bet.Amount,
			&bet.Odds,
			&bet.Resolved,
			&bet.Won,
			&bet.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bet: %w", err)
		}
		bets = append(bets, &bet)
	}

	return bets, rows.Err()
}
