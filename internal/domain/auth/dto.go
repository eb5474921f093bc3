package auth

import "github.com/beyond-ems/ems-attendance-go/internal/domain/user"

// DiscordIdentity is the subset of GET /users/@me we rely on
type DiscordIdentity struct {
	ID         string  `json:"id"`
	Username   string  `json:"username"`
	GlobalName *string `json:"global_name"`
	Avatar     *string `json:"avatar"`
}

// DisplayName falls back to the username when no global name is set.
func (d DiscordIdentity) DisplayName() string {
	if d.GlobalName != nil && *d.GlobalName != "" {
		return *d.GlobalName
	}
	return d.Username
}

type LoginResponse struct {
	Token     string            `json:"-"`
	ExpiresAt int64             `json:"expires_at"`
	User      user.UserResponse `json:"user"`
}
