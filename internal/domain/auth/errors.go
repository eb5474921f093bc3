package auth

import "errors"

var (
	ErrUnauthenticated   = errors.New("authentication required")
	ErrInvalidToken      = errors.New("invalid or expired token")
	ErrTokenExpired      = errors.New("token has expired")
	ErrInvalidBotToken   = errors.New("invalid bot token")
	ErrStateCookieEmpty  = errors.New("state cookie is empty")
	ErrStateParamEmpty   = errors.New("state param is empty")
	ErrStateMismatch     = errors.New("state mismatch")
	ErrCodeValueEmpty    = errors.New("code value is empty")
	ErrDiscordAccessDeny = errors.New("discord access denied by user")
)
