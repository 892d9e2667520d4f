package repository

import (
	"context"
	"fmt"

	"matchbook/database"
	"matchbook/domain/entities"
	"matchbook/domain/interfaces"
)

type voteRepository struct {
	q Queryable
}

// NewVoteRepository creates a new vote repository
func NewVoteRepository(db *database.DB) interfaces.VoteRepository {
	return &voteRepository{q: db.Pool}
}

// Upsert replaces any prior vote for (user, match). Delete-then-insert keeps
// the stored vote's created_at pointing at the latest submission.
func (r *voteRepository) Upsert(ctx context.Context, vote *entities.Vote) error {
	deleteQuery := `DELETE FROM votes WHERE user_id = $1 AND match_id = $2`
	if _, err := r.q.Exec(ctx, deleteQuery, vote.UserID, vote.MatchID); err != nil {
		return fmt.Errorf("failed to delete prior vote for user %s: %w", vote.UserID, err)
	}

	insertQuery := `
		INSERT INTO votes (user_id, match_id, first_place, second_place, third_place)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.q.QueryRow(ctx, insertQuery,
		vote.UserID,
		vote.MatchID,
		vote.FirstPlace,
		vote.SecondPlace,
		vote.ThirdPlace,
	).Scan(&vote.ID, &vote.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to insert vote for user %s: %w", vote.UserID, err)
	}

	return nil
}

func (r *voteRepository) ListByMatch(ctx context.Context, matchID string) ([]*entities.Vote, error) {
	query := `
		SELECT id, user_id, match_id, first_place, second_place, third_place, created_at
		FROM votes
		WHERE match_id = $1
		ORDER BY created_at ASC`

	rows, err := r.q.Query(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes for match %s: %w", matchID, err)
	}
	defer rows.Close()

	var votes []*entities.Vote
	for rows.Next() {
		var v entities.Vote
		if err := rows.Scan(&v.ID, &v.UserID, &v.MatchID, &v.FirstPlace, &v.SecondPlace, &v.ThirdPlace, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		votes = append(votes, &v)
	}

	return votes, rows.Err()
}

func (r *voteRepository) DeleteByMatch(ctx context.Context, matchID string) (int64, error) {
	query := `DELETE FROM votes WHERE match_id = $1`

	tag, err := r.q.Exec(ctx, query, matchID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete votes for match %s: %w", matchID, err)
	}

	return tag.RowsAffected(), nil
}
