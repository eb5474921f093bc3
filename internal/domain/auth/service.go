package auth

import (
	"context"

	"github.com/beyond-ems/ems-attendance-go/internal/domain/user"
)

type AuthService interface {
	// LoginWithDiscord upserts the member and issues a session token
	LoginWithDiscord(ctx context.Context, identity DiscordIdentity) (LoginResponse, error)
	// Me returns the session's user freshly read from storage
	Me(ctx context.Context) (user.UserResponse, error)
	// VerifyBotToken checks the shared bot secret
	VerifyBotToken(token string) error
}
