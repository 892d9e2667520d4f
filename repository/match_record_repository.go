package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"matchbook/database"
	"matchbook/domain/entities"
	"matchbook/domain/interfaces"
)

type matchRecordRepository struct {
	q Queryable
}

// NewMatchRecordRepository creates a new match record repository
func NewMatchRecordRepository(db *database.DB) interfaces.MatchRecordRepository {
	return &matchRecordRepository{q: db.Pool}
}

func (r *matchRecordRepository) Append(ctx context.Context, record *entities.MatchRecord) error {
	betsData, err := json.Marshal(record.Bets)
	if err != nil {
		return fmt.Errorf("failed to marshal bets snapshot: %w", err)
	}

	query := `
		INSERT INTO match_records (user_id, match_name, bets_data)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err = r.q.QueryRow(ctx, query, record.UserID, record.MatchName, betsData).
		Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append match record for user %s: %w", record.UserID, err)
	}

	return nil
}

func (r *matchRecordRepository) ListByUser(ctx context.Context, userID string) ([]*entities.MatchRecord, error) {
	query := `
		SELECT id, user_id, match_name, bets_data, created_at
		FROM match_records
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`

	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list match records for user %s: %w", userID, err)
	}
	defer rows.Close()

	var records []*entities.MatchRecord
	for rows.Next() {
		var record entities.MatchRecord
		var betsData []byte
		if err := rows.Scan(&record.ID, &record.UserID, &record.MatchName, &betsData, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan match record: %w", err)
		}
		if err := json.Unmarshal(betsData, &record.Bets); err != nil {
			return nil, fmt.Errorf("failed to unmarshal bets snapshot for record %d: %w", record.ID, err)
		}
		records = append(records, &record)
	}

	return records, rows.Err()
}

func (r *matchRecordRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	query := `SELECT COUNT(*) FROM match_records WHERE user_id = $1`

	var count int64
	if err := r.q.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count match records for user %s: %w", userID, err)
	}

	return count, nil
}
