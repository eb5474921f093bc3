package user

import "context"

type UserService interface {
	LoginOrCreate(ctx context.Context, req LoginOrCreateRequest) (User, error)
	EnsureByDiscordID(ctx context.Context, discordID string, username string) (User, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
	List(ctx context.Context, filter ListUserFilter) (ListUserResponse, error)
	UpdateUser(ctx context.Context, req UpdateUserRequest) (UserResponse, error)
}
