package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/beyond-ems/ems-attendance-go/internal/domain/adminlog"
	"github.com/beyond-ems/ems-attendance-go/internal/domain/auth"
	"github.com/beyond-ems/ems-attendance-go/internal/domain/user"
	"github.com/beyond-ems/ems-attendance-go/internal/pkg/database"
	"github.com/beyond-ems/ems-attendance-go/internal/pkg/validator"
	"github.com/jackc/pgx/v5"
)

type UserServiceImpl struct {
	user.UserRepository
	adminLogs adminlog.AdminLogRepository
	tx        database.Transactor
}

func NewUserService(tx database.Transactor, userRepository user.UserRepository, adminLogRepository adminlog.AdminLogRepository) user.UserService {
	return &UserServiceImpl{
		UserRepository: userRepository,
		adminLogs:      adminLogRepository,
		tx:             tx,
	}
}

// LoginOrCreate implements user.UserService.
func (s *UserServiceImpl) LoginOrCreate(ctx context.Context, req user.LoginOrCreateRequest) (user.User, error) {
	if err := req.Validate(); err != nil {
		return user.User{}, err
	}

	displayName := req.DisplayName
	if validator.IsEmpty(displayName) {
		displayName = req.Username
	}

	saved, err := s.UserRepository.Upsert(ctx, user.User{
		DiscordID:   req.DiscordID,
		Username:    req.Username,
		DisplayName: displayName,
		Rank:        user.RankTrainee,
		Department:  user.DepartmentEMS,
		IsActive:    true,
	})
	if err != nil {
		return user.User{}, fmt.Errorf("failed to login or create user: %w", err)
	}

	return saved, nil
}

// EnsureByDiscordID implements user.UserService.
func (s *UserServiceImpl) EnsureByDiscordID(ctx context.Context, discordID string, username string) (user.User, error) {
	existing, err := s.UserRepository.GetByDiscordID(ctx, discordID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return user.User{}, fmt.Errorf("failed to get user by discord ID: %w", err)
	}

	if validator.IsEmpty(username) {
		username = "User_" + discordID
	}

	return s.LoginOrCreate(ctx, user.LoginOrCreateRequest{
		DiscordID: discordID,
		Username:  username,
	})
}

// GetByID implements user.UserService.
func (s *UserServiceImpl) GetByID(ctx context.Context, id string) (user.UserResponse, error) {
	if !validator.IsValidUUID(id) {
		return user.UserResponse{}, user.ErrUserNotFound
	}

	found, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.UserResponse{}, user.ErrUserNotFound
		}
		return user.UserResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	return user.ToResponse(found), nil
}

// List implements user.UserService.
func (s *UserServiceImpl) List(ctx context.Context, filter user.ListUserFilter) (user.ListUserResponse, error) {
	filter.Normalize()

	users, total, err := s.UserRepository.List(ctx, filter)
	if err != nil {
		return user.ListUserResponse{}, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, user.ToResponse(u))
	}

	return user.ListUserResponse{
		Users:      responses,
		TotalCount: total,
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	}, nil
}

// UpdateUser implements user.UserService. The caller must be an admin; the
// check runs before anything is read.
func (s *UserServiceImpl) UpdateUser(ctx context.Context, req user.UpdateUserRequest) (user.UserResponse, error) {
	session, err := auth.RequireAdmin(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	if !validator.IsValidUUID(req.ID) {
		return user.UserResponse{}, user.ErrUserNotFound
	}

	var updated user.User
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		current, err := s.UserRepository.GetByID(txCtx, req.ID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return user.ErrUserNotFound
			}
			return fmt.Errorf("failed to get user: %w", err)
		}

		updated, err = s.UserRepository.Update(txCtx, req.Apply(current))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return user.ErrUserNotFound
			}
			return fmt.Errorf("failed to update user: %w", err)
		}

		entry := adminlog.NewEntry(txCtx, session.UserID, adminlog.ActionUpdateUser, adminlog.TargetUsers, updated.ID, req)
		if _, err := s.adminLogs.Create(txCtx, entry); err != nil {
			return fmt.Errorf("failed to write admin log: %w", err)
		}

		return nil
	})
	if err != nil {
		return user.UserResponse{}, err
	}

	return user.ToResponse(updated), nil
}
