package repository

import (
	"context"
	"fmt"
	"time"

	"matchbook/database"
	"matchbook/domain/interfaces"
)

type tokenRepository struct {
	q Queryable
}

// NewTokenRepository creates a new revoked-token repository
func NewTokenRepository(db *database.DB) interfaces.TokenRepository {
	return &tokenRepository{q: db.Pool}
}

func (r *tokenRepository) Revoke(ctx context.Context, tokenHash string, expiresAt time.Time) error {
	query := `
		INSERT INTO revoked_tokens (token_hash, expires_at)
		VALUES ($1, $2)
		ON CONFLICT (token_hash) DO NOTHING`

	if _, err := r.q.Exec(ctx, query, tokenHash, expiresAt); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	return nil
}

func (r *tokenRepository) IsRevoked(ctx context.Context, tokenHash string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE token_hash = $1)`

	var revoked bool
	if err := r.q.QueryRow(ctx, query, tokenHash).Scan(&revoked); err != nil {
		return false, fmt.Errorf("failed to check revoked token: %w", err)
	}

	return revoked, nil
}

func (r *tokenRepository) PurgeExpired(ctx context.Context) (int64, error) {
	query := `DELETE FROM revoked_tokens WHERE expires_at < NOW()`

	tag, err := r.q.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired tokens: %w", err)
	}

	return tag.RowsAffected(), nil
}
