package auth

import (
	"context"

	"github.com/beyond-ems/ems-attendance-go/internal/domain/user"
)

// Session is the identity snapshot carried by the signed session cookie.
// It reflects the user row at login time; rank changes apply after re-login.
type Session struct {
	UserID      string          `json:"user_id"`
	DiscordID   string          `json:"discord_id"`
	Username    string          `json:"username"`
	DisplayName string          `json:"display_name"`
	Rank        user.Rank       `json:"rank"`
	Department  user.Department `json:"department"`
	IsWebAdmin  bool            `json:"is_web_admin"`
}

func NewSession(u user.User) Session {
	return Session{
		UserID:      u.ID,
		DiscordID:   u.DiscordID,
		Username:    u.Username,
		DisplayName: u.EffectiveName(),
		Rank:        u.Rank,
		Department:  u.Department,
		IsWebAdmin:  u.IsWebAdmin,
	}
}

func (s Session) IsAdmin() bool {
	return user.IsAdmin(s.Rank, s.IsWebAdmin)
}

type sessionKey struct{}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext returns ErrUnauthenticated when no session was stored.
func SessionFromContext(ctx context.Context) (Session, error) {
	s, ok := ctx.Value(sessionKey{}).(Session)
	if !ok || s.UserID == "" {
		return Session{}, ErrUnauthenticated
	}
	return s, nil
}

// RequireAdmin returns the session when it belongs to an admin.
func RequireAdmin(ctx context.Context) (Session, error) {
	s, err := SessionFromContext(ctx)
	if err != nil {
		return Session{}, err
	}
	if !s.IsAdmin() {
		return Session{}, user.ErrAdminPrivilegeRequired
	}
	return s, nil
}
