package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/beyond-ems/ems-attendance-go/internal/domain/user"
	"github.com/beyond-ems/ems-attendance-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

const userColumns = `id, discord_id, username, display_name, custom_name, rank, department,
		is_web_admin, is_active, total_minutes, join_date, created_at, updated_at`

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID,
		&u.DiscordID,
		&u.Username,
		&u.DisplayName,
		&u.CustomName,
		&u.Rank,
		&u.Department,
		&u.IsWebAdmin,
		&u.IsActive,
		&u.TotalMinutes,
		&u.JoinDate,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	found, err := scanUser(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, fmt.Errorf("user %s: %w", id, err)
		}
		return user.User{}, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return found, nil
}

// GetByDiscordID implements user.UserRepository.
func (r *userRepositoryImpl) GetByDiscordID(ctx context.Context, discordID string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE discord_id = $1`

	found, err := scanUser(q.QueryRow(ctx, query, discordID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, fmt.Errorf("user with discord id %s: %w", discordID, err)
		}
		return user.User{}, fmt.Errorf("failed to get user by discord ID: %w", err)
	}

	return found, nil
}

// Upsert implements user.UserRepository.
func (r *userRepositoryImpl) Upsert(ctx context.Context, u user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return user.User{}, fmt.Errorf("generate user id: %w", err)
	}

	query := `
		INSERT INTO users (id, discord_id, username, display_name, rank, department, is_web_admin, is_active, total_minutes)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE, TRUE, 0)
		ON CONFLICT (discord_id) DO UPDATE
		SET username = EXCLUDED.username,
			display_name = EXCLUDED.display_name,
			updated_at = NOW()
		RETURNING ` + userColumns

	saved, err := scanUser(q.QueryRow(ctx, query,
		id.String(),
		u.DiscordID,
		u.Username,
		u.DisplayName,
		u.Rank,
		u.Department,
	))
	if err != nil {
		return user.User{}, fmt.Errorf("failed to upsert user: %w", err)
	}

	return saved, nil
}

// List implements user.UserRepository.
func (r *userRepositoryImpl) List(ctx context.Context, filter user.ListUserFilter) ([]user.User, int64, error) {
	q := GetQuerier(ctx, r.db)

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`

	rows, err := q.Query(ctx, query, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := make([]user.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, total, nil
}

// ListActive implements user.UserRepository.
func (r *userRepositoryImpl) ListActive(ctx context.Context) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE is_active = TRUE ORDER BY created_at`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query active users: %w", err)
	}
	defer rows.Close()

	users := make([]user.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

// Update implements user.UserRepository.
func (r *userRepositoryImpl) Update(ctx context.Context, u user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET custom_name = $1,
			rank = $2,
			department = $3,
			is_active = $4,
			is_web_admin = $5,
			updated_at = NOW()
		WHERE id = $6
		RETURNING ` + userColumns

	updated, err := scanUser(q.QueryRow(ctx, query,
		u.CustomName,
		u.Rank,
		u.Department,
		u.IsActive,
		u.IsWebAdmin,
		u.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, fmt.Errorf("user %s: %w", u.ID, err)
		}
		return user.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	return updated, nil
}

// AddMinutes implements user.UserRepository.
func (r *userRepositoryImpl) AddMinutes(ctx context.Context, id string, delta int64) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET total_minutes = total_minutes + $1, updated_at = NOW()
		WHERE id = $2
		RETURNING total_minutes
	`

	var total int64
	if err := q.QueryRow(ctx, query, delta, id).Scan(&total); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("user %s: %w", id, err)
		}
		return 0, fmt.Errorf("failed to add minutes: %w", err)
	}

	return total, nil
}
