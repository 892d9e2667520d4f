package repository

import (
	"context"
	"fmt"

	"matchbook/database"
	"matchbook/domain/entities"
	"matchbook/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

type userRepository struct {
	q Queryable
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) interfaces.UserRepository {
	return &userRepository{q: db.Pool}
}

const userColumns = `id, username, password_hash, is_admin, total_coins, available_coins, mvp_points, voted, created_at, updated_at`

func scanUser(row pgx.Row) (*entities.User, error) {
	var u entities.User
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&u.IsAdmin,
		&u.TotalCoins,
		&u.AvailableCoins,
		&u.MVPPoints,
		&u.Voted,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entities.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", id, err)
	}
	return user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	user, err := scanUser(r.q.QueryRow(ctx, query, username))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username %q: %w", username, err)
	}
	return user, nil
}

func (r *userRepository) Create(ctx context.Context, user *entities.User) error {
	query := `
		INSERT INTO users (id, username, password_hash, is_admin, total_coins, available_coins, mvp_points, voted)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	err := r.q.QueryRow(ctx, query,
		user.ID,
		user.Username,
		user.PasswordHash,
		user.IsAdmin,
		user.TotalCoins,
		user.AvailableCoins,
		user.MVPPoints,
		user.Voted,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create user %q: %w", user.Username, err)
	}

	return nil
}

func (r *userRepository) List(ctx context.Context) ([]*entities.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY total_coins DESC, username ASC`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*entities.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

func (r *userRepository) UpdateCoins(ctx context.Context, id string, totalCoins, availableCoins int64) error {
	query := `
		UPDATE users
		SET total_coins = $1, available_coins = $2, updated_at = NOW()
		WHERE id = $3`

	tag, err := r.q.Exec(ctx, query, totalCoins, availableCoins, id)
	if err != nil {
		return fmt.Errorf("failed to update coins for user %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found", id)
	}

	return nil
}

func (r *userRepository) SetVoted(ctx context.Context, id string, voted bool) error {
	query := `UPDATE users SET voted = $1, updated_at = NOW() WHERE id = $2`

	tag, err := r.q.Exec(ctx, query, voted, id)
	if err != nil {
		return fmt.Errorf("failed to set voted flag for user %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found", id)
	}

	return nil
}

func (r *userRepository) ResetVoted(ctx context.Context) error {
	query := `UPDATE users SET voted = FALSE, updated_at = NOW() WHERE voted`

	if _, err := r.q.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to reset voted flags: %w", err)
	}

	return nil
}

func (r *userRepository) ZeroAvailableCoins(ctx context.Context) (int64, error) {
	query := `
		UPDATE users
		SET available_coins = 0, updated_at = NOW()
		WHERE NOT is_admin AND available_coins > 0`

	tag, err := r.q.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to zero available coins: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *userRepository) AddMVPPoints(ctx context.Context, id string, points int64) error {
	query := `UPDATE users SET mvp_points = mvp_points + $1, updated_at = NOW() WHERE id = $2`

	tag, err := r.q.Exec(ctx, query, points, id)
	if err != nil {
		return fmt.Errorf("failed to add MVP points for user %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found", id)
	}

	return nil
}
