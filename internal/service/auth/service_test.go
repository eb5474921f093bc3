package auth

import (
	"context"
	"testing"
	"time"

	"github.com/beyond-ems/ems-attendance-go/internal/domain/auth"
	"github.com/beyond-ems/ems-attendance-go/internal/domain/user"
	"github.com/beyond-ems/ems-attendance-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-key-for-jwt"

type fakeUserService struct {
	users map[string]user.User
}

func (f *fakeUserService) LoginOrCreate(ctx context.Context, req user.LoginOrCreateRequest) (user.User, error) {
	if err := req.Validate(); err != nil {
		return user.User{}, err
	}
	u, ok := f.users[req.DiscordID]
	if !ok {
		u = user.User{ID: "u-" + req.DiscordID, DiscordID: req.DiscordID, Rank: user.RankTrainee, Department: user.DepartmentEMS, IsActive: true}
	}
	u.Username = req.Username
	u.DisplayName = req.DisplayName
	f.users[req.DiscordID] = u
	return u, nil
}

func (f *fakeUserService) EnsureByDiscordID(ctx context.Context, discordID string, username string) (user.User, error) {
	return f.LoginOrCreate(ctx, user.LoginOrCreateRequest{DiscordID: discordID, Username: username})
}

func (f *fakeUserService) GetByID(ctx context.Context, id string) (user.UserResponse, error) {
	for _, u := range f.users {
		if u.ID == id {
			return user.ToResponse(u), nil
		}
	}
	return user.UserResponse{}, user.ErrUserNotFound
}

func (f *fakeUserService) List(ctx context.Context, filter user.ListUserFilter) (user.ListUserResponse, error) {
	return user.ListUserResponse{}, nil
}

func (f *fakeUserService) UpdateUser(ctx context.Context, req user.UpdateUserRequest) (user.UserResponse, error) {
	return user.UserResponse{}, nil
}

func newTestService(t *testing.T, botToken string) (auth.AuthService, jwt.Service, *fakeUserService) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(botToken), bcrypt.MinCost)
	require.NoError(t, err)

	users := &fakeUserService{users: make(map[string]user.User)}
	jwtService := jwt.NewJWTService(testSecret, time.Hour, "user_session", false)
	return NewAuthService(users, jwtService, string(hash)), jwtService, users
}

func TestLoginWithDiscord(t *testing.T) {
	svc, jwtService, _ := newTestService(t, "bot-secret")
	global := "Medic One"

	resp, err := svc.LoginWithDiscord(context.Background(), auth.DiscordIdentity{
		ID:         "123456789012345678",
		Username:   "medic",
		GlobalName: &global,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "Medic One", resp.User.DisplayName)
	assert.Equal(t, "Trainee", resp.User.Rank)

	token, err := jwtService.JWTAuth().Decode(resp.Token)
	require.NoError(t, err)
	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)
	session, err := jwtService.SessionFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, "u-123456789012345678", session.UserID)
	assert.False(t, session.IsAdmin())
}

func TestLoginWithDiscord_InvalidIdentity(t *testing.T) {
	svc, _, users := newTestService(t, "bot-secret")

	_, err := svc.LoginWithDiscord(context.Background(), auth.DiscordIdentity{ID: "nope"})
	assert.Error(t, err)
	assert.Empty(t, users.users)
}

func TestMe(t *testing.T) {
	svc, _, users := newTestService(t, "bot-secret")

	_, err := svc.Me(context.Background())
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)

	users.users["123456789012345678"] = user.User{ID: "u1", DiscordID: "123456789012345678", Username: "medic", Rank: user.RankPerawat}

	// the stored rank wins over a stale session snapshot
	ctx := auth.WithSession(context.Background(), auth.Session{UserID: "u1", Rank: user.RankTrainee})
	me, err := svc.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Perawat", me.Rank)
}

func TestVerifyBotToken(t *testing.T) {
	svc, _, _ := newTestService(t, "bot-secret")

	assert.NoError(t, svc.VerifyBotToken("bot-secret"))
	assert.ErrorIs(t, svc.VerifyBotToken("wrong"), auth.ErrInvalidBotToken)
	assert.ErrorIs(t, svc.VerifyBotToken(""), auth.ErrInvalidBotToken)

	empty := NewAuthService(&fakeUserService{}, jwt.NewJWTService(testSecret, time.Hour, "user_session", false), "")
	assert.ErrorIs(t, empty.VerifyBotToken("bot-secret"), auth.ErrInvalidBotToken)
}
