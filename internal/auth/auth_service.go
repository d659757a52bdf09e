package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	autherrors "go-hr-portal/internal/auth/errors"
	"go-hr-portal/internal/auth/token"
	"go-hr-portal/internal/company"
	"go-hr-portal/internal/shared/dberr"
	"go-hr-portal/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EmployeeFinder resolves the employee profile owned by a user. Employers
// have none and get "" with a nil error.
type EmployeeFinder interface {
	FindIDByUserID(ctx context.Context, userID string) (string, error)
}

type Service interface {
	Login(ctx context.Context, email, password string) (TokenPair, AuthResponse, error)
	RegisterEmployer(ctx context.Context, req RegisterEmployerRequest) (AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (TokenPair, AuthResponse, error)
	GetMe(ctx context.Context, userID string) (*AuthResponse, error)
}

type service struct {
	db        *gorm.DB
	users     user.Repository
	companies company.Repository
	employees EmployeeFinder
	tokens    *token.Manager
	logger    *zap.Logger
}

func NewService(
	db *gorm.DB,
	users user.Repository,
	companies company.Repository,
	employees EmployeeFinder,
	tokens *token.Manager,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		db:        db,
		users:     users,
		companies: companies,
		employees: employees,
		tokens:    tokens,
		logger:    l,
	}
}

func (s *service) Login(ctx context.Context, email, password string) (TokenPair, AuthResponse, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("login lookup failed", zap.Error(err))
		}
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if !user.CheckPassword(u.Password, password) {
		s.logger.Warn("login rejected", zap.String("user_id", u.ID.String()))
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if !u.IsActive {
		return TokenPair{}, AuthResponse{}, autherrors.ErrUserInactive
	}

	return s.issue(ctx, u)
}

func (s *service) RegisterEmployer(ctx context.Context, req RegisterEmployerRequest) (AuthResponse, error) {
	hashed, err := user.HashPassword(req.Password)
	if err != nil {
		return AuthResponse{}, err
	}

	now := time.Now().UTC()
	comp := &company.Company{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(req.CompanyName),
		CreatedAt: now,
		UpdatedAt: now,
	}
	owner := &user.User{
		ID:        uuid.New(),
		CompanyID: comp.ID,
		Name:      strings.TrimSpace(req.Name),
		Email:     req.Email,
		Password:  hashed,
		UserType:  user.TypeEmployer,
		IsActive:  true,
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return AuthResponse{}, tx.Error
	}
	defer tx.Rollback()

	if err := s.companies.WithTx(tx).Create(ctx, comp); err != nil {
		s.logger.Error("create company failed", zap.Error(err))
		return AuthResponse{}, err
	}

	if err := s.users.WithTx(tx).Create(ctx, owner); err != nil {
		if dberr.IsUniqueViolation(err, "uq_users_email") {
			return AuthResponse{}, autherrors.ErrEmailAlreadyRegistered
		}
		s.logger.Error("create employer user failed", zap.Error(err))
		return AuthResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return AuthResponse{}, err
	}

	s.logger.Info("employer registered",
		zap.String("company_id", comp.ID.String()),
		zap.String("user_id", owner.ID.String()),
	)
	return toResponse(owner, ""), nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (TokenPair, AuthResponse, error) {
	claims, err := s.tokens.Parse(refreshToken, token.TypeRefresh)
	if err != nil {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	u, err := s.users.FindByIDAnyCompany(ctx, claims.UserID)
	if err != nil {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}
	if !u.IsActive {
		return TokenPair{}, AuthResponse{}, autherrors.ErrUserInactive
	}

	return s.issue(ctx, u)
}

func (s *service) GetMe(ctx context.Context, userID string) (*AuthResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, autherrors.ErrInvalidToken
	}

	u, err := s.users.FindByIDAnyCompany(ctx, userID)
	if err != nil {
		return nil, autherrors.ErrInvalidToken
	}

	employeeID, err := s.employees.FindIDByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := toResponse(u, employeeID)
	return &resp, nil
}

func (s *service) issue(ctx context.Context, u *user.User) (TokenPair, AuthResponse, error) {
	employeeID := ""
	if u.UserType == user.TypeEmployee {
		id, err := s.employees.FindIDByUserID(ctx, u.ID.String())
		if err != nil {
			s.logger.Error("resolve employee profile failed", zap.String("user_id", u.ID.String()), zap.Error(err))
			return TokenPair{}, AuthResponse{}, err
		}
		employeeID = id
	}

	access, refresh, err := s.tokens.IssuePair(token.Subject{
		UserID:     u.ID.String(),
		UserType:   u.UserType,
		CompanyID:  u.CompanyID.String(),
		EmployeeID: employeeID,
	})
	if err != nil {
		s.logger.Error("issue tokens failed", zap.Error(err))
		return TokenPair{}, AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return TokenPair{AccessToken: access, RefreshToken: refresh}, toResponse(u, employeeID), nil
}

func toResponse(u *user.User, employeeID string) AuthResponse {
	return AuthResponse{
		ID:         u.ID.String(),
		CompanyID:  u.CompanyID.String(),
		EmployeeID: employeeID,
		Email:      u.Email,
		Name:       u.Name,
		UserType:   u.UserType,
	}
}
