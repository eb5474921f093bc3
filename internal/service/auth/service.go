package auth

import (
	"context"
	"fmt"

	"github.com/beyond-ems/ems-attendance-go/internal/domain/auth"
	"github.com/beyond-ems/ems-attendance-go/internal/domain/user"
	"github.com/beyond-ems/ems-attendance-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	user.UserService
	jwt.Service
	botTokenHash []byte
}

func NewAuthService(userService user.UserService, jwtService jwt.Service, botTokenHash string) auth.AuthService {
	return &AuthServiceImpl{
		UserService:  userService,
		Service:      jwtService,
		botTokenHash: []byte(botTokenHash),
	}
}

// LoginWithDiscord implements auth.AuthService.
func (a *AuthServiceImpl) LoginWithDiscord(ctx context.Context, identity auth.DiscordIdentity) (auth.LoginResponse, error) {
	u, err := a.UserService.LoginOrCreate(ctx, user.LoginOrCreateRequest{
		DiscordID:   identity.ID,
		Username:    identity.Username,
		DisplayName: identity.DisplayName(),
	})
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to login discord user: %w", err)
	}

	token, expiresAt, err := a.Service.GenerateSessionToken(auth.NewSession(u))
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate session token: %w", err)
	}

	return auth.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user.ToResponse(u),
	}, nil
}

// Me implements auth.AuthService.
func (a *AuthServiceImpl) Me(ctx context.Context) (user.UserResponse, error) {
	session, err := auth.SessionFromContext(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}
	return a.UserService.GetByID(ctx, session.UserID)
}

// VerifyBotToken implements auth.AuthService.
func (a *AuthServiceImpl) VerifyBotToken(token string) error {
	if token == "" || len(a.botTokenHash) == 0 {
		return auth.ErrInvalidBotToken
	}
	if err := bcrypt.CompareHashAndPassword(a.botTokenHash, []byte(token)); err != nil {
		return auth.ErrInvalidBotToken
	}
	return nil
}
