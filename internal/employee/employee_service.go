package employee

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	employeeerrors "go-hr-portal/internal/employee/errors"
	"go-hr-portal/internal/events"
	"go-hr-portal/internal/messaging/kafka"
	"go-hr-portal/internal/shared/calendar"
	"go-hr-portal/internal/shared/contextutil"
	"go-hr-portal/internal/shared/counter"
	"go-hr-portal/internal/shared/dberr"
	"go-hr-portal/internal/user"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const EmployeeOptionsKeyPrefix = "employees:options:"

func GetEmployeeOptionsKey(companyID string) string {
	return EmployeeOptionsKeyPrefix + companyID
}

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateEmployeeRequest) (CreateEmployeeResponse, error)
	GetAll(ctx context.Context, companyID string, filter EmployeeFilter) ([]EmployeeResponse, error)
	GetOptions(ctx context.Context, companyID string) ([]EmployeeOptionResponse, error)
	GetByID(ctx context.Context, companyID, id string) (EmployeeResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Deactivate(ctx context.Context, companyID, id string) error
	HardDelete(ctx context.Context, companyID, id string) (HardDeleteResponse, error)
}

type service struct {
	db      *gorm.DB
	repo    Repository
	users   user.Repository
	counter counter.Repository
	outbox  kafka.OutboxRepository
	rdb     redis.Cmdable
	sf      *singleflight.Group
	logger  *zap.Logger
}

// NewService wires the employee lifecycle. outboxRepo and rdb may be nil.
func NewService(
	db *gorm.DB,
	repo Repository,
	users user.Repository,
	counter counter.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb redis.Cmdable,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		users:   users,
		counter: counter,
		outbox:  outboxRepo,
		rdb:     rdb,
		sf:      &singleflight.Group{},
		logger:  l,
	}
}

func (s *service) Create(ctx context.Context, companyID string, req CreateEmployeeRequest) (CreateEmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("email", req.Email),
	)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return CreateEmployeeResponse{}, employeeerrors.ErrInvalidCompanyID
	}

	hireDate, err := calendar.ParseDay(req.HireDate)
	if err != nil {
		s.logger.Warn("create employee invalid hire_date", zap.String("hire_date", req.HireDate))
		return CreateEmployeeResponse{}, employeeerrors.ErrInvalidHireDate
	}

	tempPassword, err := user.TemporaryPassword()
	if err != nil {
		return CreateEmployeeResponse{}, err
	}
	hashed, err := user.HashPassword(tempPassword)
	if err != nil {
		return CreateEmployeeResponse{}, err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(tx.Error))
		return CreateEmployeeResponse{}, mapRepositoryError(tx.Error)
	}
	defer tx.Rollback()

	if req.EmployeeNumber == "" {
		nextVal, err := s.counter.WithTx(tx).GetNextValue(ctx, companyID, counter.TypeEmployeeNumber)
		if err != nil {
			s.logger.Error("create employee generate number failed", zap.Error(err))
			return CreateEmployeeResponse{}, err
		}
		req.EmployeeNumber = fmt.Sprintf("EMP-%06d", nextVal)
	}

	login := &user.User{
		ID:        uuid.New(),
		CompanyID: companyUUID,
		Name:      strings.TrimSpace(req.FullName),
		Email:     req.Email,
		Password:  hashed,
		UserType:  user.TypeEmployee,
		IsActive:  true,
	}
	if err := s.users.WithTx(tx).Create(ctx, login); err != nil {
		if dberr.IsUniqueViolation(err, "uq_users_email") {
			return CreateEmployeeResponse{}, employeeerrors.ErrEmployeeAlreadyExists
		}
		s.logger.Error("create employee user persist failed", zap.Error(err))
		return CreateEmployeeResponse{}, mapRepositoryError(err)
	}

	empl := &Employee{
		ID:               uuid.New(),
		CompanyID:        companyUUID,
		UserID:           login.ID,
		EmployeeNumber:   req.EmployeeNumber,
		FullName:         strings.TrimSpace(req.FullName),
		Email:            login.Email,
		Phone:            req.Phone,
		Department:       req.Department,
		Designation:      req.Designation,
		HireDate:         hireDate,
		EmploymentStatus: StatusActive,
	}
	if err := s.repo.WithTx(tx).Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return CreateEmployeeResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event, err := kafka.NewOutboxEvent(rid, "employee", empl.ID.String(),
			events.EmployeeCreatedType, events.EmployeeCreatedTopic,
			events.EmployeeCreatedEvent{
				EventType:      events.EmployeeCreatedType,
				EmployeeID:     empl.ID.String(),
				CompanyID:      companyID,
				EmployeeNumber: empl.EmployeeNumber,
				FullName:       empl.FullName,
				Email:          empl.Email,
				OccurredAt:     time.Now().UTC(),
			},
		)
		if err != nil {
			return CreateEmployeeResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
			s.logger.Error("create employee outbox persist failed",
				zap.String("employee_id", empl.ID.String()),
				zap.Error(err),
			)
			return CreateEmployeeResponse{}, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		s.logger.Error("create employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return CreateEmployeeResponse{}, err
	}

	s.invalidateOptions(ctx, companyID)
	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
		zap.String("employee_number", empl.EmployeeNumber),
	)

	return CreateEmployeeResponse{
		EmployeeResponse:  mapToResponse(*empl),
		TemporaryPassword: tempPassword,
	}, nil
}

func (s *service) GetAll(ctx context.Context, companyID string, filter EmployeeFilter) ([]EmployeeResponse, error) {
	s.logger.Debug("get all employees requested", zap.String("company_id", companyID))
	employees, err := s.repo.FindAllByCompany(ctx, companyID, filter)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	resp := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		resp[i] = mapToResponse(e)
	}
	return resp, nil
}

func (s *service) GetOptions(ctx context.Context, companyID string) ([]EmployeeOptionResponse, error) {
	cacheKey := GetEmployeeOptionsKey(companyID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []EmployeeOptionResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		employees, err := s.repo.FindOptionsByCompany(ctx, companyID)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := make([]EmployeeOptionResponse, len(employees))
		for i, e := range employees {
			resp[i] = EmployeeOptionResponse{
				ID:             e.ID.String(),
				EmployeeNumber: e.EmployeeNumber,
				FullName:       e.FullName,
			}
		}

		if s.rdb != nil {
			if data, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, string(data), time.Hour).Err(); err != nil {
					s.logger.Warn("cache employee options failed", zap.String("key", cacheKey), zap.Error(err))
				}
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]EmployeeOptionResponse), nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	empl, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("get employee by id failed", zap.String("employee_id", id), zap.Error(err))
		}
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*empl), nil
}

func (s *service) Update(ctx context.Context, companyID, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	empl, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	empl.FullName = strings.TrimSpace(req.FullName)
	empl.Phone = req.Phone
	empl.Department = req.Department
	empl.Designation = req.Designation
	if req.EmploymentStatus != "" {
		empl.EmploymentStatus = req.EmploymentStatus
	}

	if err := s.repo.Update(ctx, empl); err != nil {
		s.logger.Error("update employee persist failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.invalidateOptions(ctx, companyID)
	s.logger.Info("update employee success", zap.String("employee_id", id))

	return mapToResponse(*empl), nil
}

// Deactivate marks the employee INACTIVE and disables the login in one
// transaction. Owned rows stay untouched.
func (s *service) Deactivate(ctx context.Context, companyID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return mapRepositoryError(tx.Error)
	}
	defer tx.Rollback()

	repo := s.repo.WithTx(tx)
	empl, err := repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	empl.EmploymentStatus = StatusInactive
	if err := repo.Update(ctx, empl); err != nil {
		s.logger.Error("deactivate employee failed", zap.String("employee_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	users := s.users.WithTx(tx)
	login, err := users.FindByID(ctx, companyID, empl.UserID.String())
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return mapRepositoryError(err)
	}
	if login != nil {
		login.IsActive = false
		if err := users.Update(ctx, login); err != nil {
			s.logger.Error("deactivate employee login failed", zap.String("user_id", login.ID.String()), zap.Error(err))
			return mapRepositoryError(err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	s.invalidateOptions(ctx, companyID)
	s.logger.Info("employee deactivated", zap.String("employee_id", id))
	return nil
}

// HardDelete removes the employee, its login and every owned row. It refuses
// while the employee still reviews someone else.
func (s *service) HardDelete(ctx context.Context, companyID, id string) (HardDeleteResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	if _, err := uuid.Parse(id); err != nil {
		return HardDeleteResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	if err := validateCascadePlan(employeeCascade); err != nil {
		l.Error("employee cascade plan invalid", zap.Error(err))
		return HardDeleteResponse{}, err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return HardDeleteResponse{}, mapRepositoryError(tx.Error)
	}
	defer tx.Rollback()

	repo := s.repo.WithTx(tx)
	empl, err := repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return HardDeleteResponse{}, mapRepositoryError(err)
	}

	assigned, err := repo.CountReviewAssignments(ctx, id)
	if err != nil {
		l.Error("count reviewer assignments failed", zap.String("employee_id", id), zap.Error(err))
		return HardDeleteResponse{}, mapRepositoryError(err)
	}
	if assigned > 0 {
		l.Warn("hard delete blocked by reviewer dependency",
			zap.String("employee_id", id),
			zap.Int64("reviews", assigned),
		)
		return HardDeleteResponse{}, employeeerrors.ReviewerDependency(assigned)
	}

	deleted, err := runCascade(ctx, tx, employeeCascade, cascadeKeys{
		EmployeeID: id,
		UserID:     empl.UserID.String(),
	})
	if err != nil {
		l.Error("hard delete cascade failed", zap.String("employee_id", id), zap.Error(err))
		return HardDeleteResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit().Error; err != nil {
		l.Error("hard delete commit failed", zap.String("employee_id", id), zap.Error(err))
		return HardDeleteResponse{}, err
	}

	s.invalidateOptions(ctx, companyID)
	l.Info("employee hard deleted", zap.String("employee_id", id), zap.Any("deleted", deleted))

	return HardDeleteResponse{EmployeeID: id, Deleted: deleted}, nil
}

func (s *service) invalidateOptions(ctx context.Context, companyID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetEmployeeOptionsKey(companyID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee options cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

func mapToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:               e.ID.String(),
		CompanyID:        e.CompanyID.String(),
		UserID:           e.UserID.String(),
		EmployeeNumber:   e.EmployeeNumber,
		FullName:         e.FullName,
		Email:            e.Email,
		Phone:            e.Phone,
		Department:       e.Department,
		Designation:      e.Designation,
		HireDate:         e.HireDate.Format(calendar.DayLayout),
		EmploymentStatus: e.EmploymentStatus,
	}
}
