package user

import (
	"context"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (User, error)
	GetByDiscordID(ctx context.Context, discordID string) (User, error)
	// Upsert inserts a new user or refreshes username and display name of the
	// user with the same discord id. Rank, department, flags and totals of an
	// existing user are never touched.
	Upsert(ctx context.Context, u User) (User, error)
	List(ctx context.Context, filter ListUserFilter) ([]User, int64, error)
	ListActive(ctx context.Context) ([]User, error)
	Update(ctx context.Context, u User) (User, error)
	// AddMinutes increments total_minutes by delta and returns the new total.
	AddMinutes(ctx context.Context, id string, delta int64) (int64, error)
}
