package user

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrDiscordIDExists        = errors.New("discord id already registered")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
	ErrUserInactive           = errors.New("user is inactive")
)
