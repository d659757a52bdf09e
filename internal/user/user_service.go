package user

import (
	"context"
	"errors"

	"go-hr-portal/internal/shared/contextutil"
	usererrors "go-hr-portal/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	GetAll(ctx context.Context, companyID string) ([]UserResponse, error)
	GetByID(ctx context.Context, companyID, id string) (UserResponse, error)
	ToggleStatus(ctx context.Context, companyID, actorID, id string, isActive bool) error
	ChangePassword(ctx context.Context, companyID, userID string, req ChangePasswordRequest) error
	ForceResetPassword(ctx context.Context, companyID, userID, newPassword string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) find(ctx context.Context, companyID, id string) (*User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, usererrors.ErrInvalidUserID
	}
	u, err := s.repo.FindByID(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usererrors.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]UserResponse, error) {
	users, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("list users failed", zap.String("company_id", companyID), zap.Error(err))
		return nil, err
	}

	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = mapToResponse(u)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (UserResponse, error) {
	u, err := s.find(ctx, companyID, id)
	if err != nil {
		return UserResponse{}, err
	}
	return mapToResponse(*u), nil
}

func (s *service) ToggleStatus(ctx context.Context, companyID, actorID, id string, isActive bool) error {
	l := contextutil.GetLogger(ctx, s.logger)

	if actorID == id && !isActive {
		return usererrors.ErrCannotDeactivateSelf
	}

	u, err := s.find(ctx, companyID, id)
	if err != nil {
		return err
	}

	u.IsActive = isActive
	if err := s.repo.Update(ctx, u); err != nil {
		l.Error("update user status failed", zap.String("user_id", id), zap.Error(err))
		return err
	}

	l.Info("user status updated", zap.String("user_id", id), zap.Bool("is_active", isActive))
	return nil
}

func (s *service) ChangePassword(ctx context.Context, companyID, userID string, req ChangePasswordRequest) error {
	u, err := s.find(ctx, companyID, userID)
	if err != nil {
		return err
	}

	if !CheckPassword(u.Password, req.CurrentPassword) {
		return usererrors.ErrWrongPassword
	}

	return s.setPassword(ctx, u, req.NewPassword)
}

func (s *service) ForceResetPassword(ctx context.Context, companyID, userID, newPassword string) error {
	u, err := s.find(ctx, companyID, userID)
	if err != nil {
		return err
	}
	return s.setPassword(ctx, u, newPassword)
}

func (s *service) setPassword(ctx context.Context, u *User, plain string) error {
	hashed, err := HashPassword(plain)
	if err != nil {
		s.logger.Error("hash password failed", zap.Error(err))
		return err
	}

	u.Password = hashed
	if err := s.repo.Update(ctx, u); err != nil {
		s.logger.Error("update password failed", zap.String("user_id", u.ID.String()), zap.Error(err))
		return err
	}
	return nil
}

func mapToResponse(u User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		UserType:  u.UserType,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
