package leave

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"go-hr-portal/internal/events"
	leaveerrors "go-hr-portal/internal/leave/errors"
	"go-hr-portal/internal/messaging/kafka"
	"go-hr-portal/internal/shared/apperror"
	"go-hr-portal/internal/shared/calendar"
	"go-hr-portal/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID, actorID string, req CreateLeaveRequest) (LeaveResponse, error)
	UpdateStatus(ctx context.Context, companyID, actorID, id string, req UpdateLeaveStatusRequest) (LeaveResponse, error)
	Delete(ctx context.Context, companyID, id string) error
	GetAll(ctx context.Context, companyID, actorEmployeeID string, canReadAll bool, filter LeaveFilter) ([]LeaveResponse, error)
	GetByID(ctx context.Context, companyID, id string) (LeaveResponse, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	outbox kafka.OutboxRepository
	now    func() time.Time
	logger *zap.Logger
}

// NewService wires leave requests. outboxRepo may be nil, in which case no
// status notifications are queued.
func NewService(db *gorm.DB, repo Repository, outboxRepo kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		now:    func() time.Time { return time.Now().UTC() },
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, companyID, actorID string, req CreateLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create leave requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("employee_id", req.EmployeeID),
	)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidCompanyID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}

	if err := validateCreate(req); err != nil {
		s.logger.Warn("create leave rejected", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidEmployeeID
	}

	start, errStart := calendar.ParseDay(req.StartDate)
	end, errEnd := calendar.ParseDay(req.EndDate)
	if errStart != nil || errEnd != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateFormat
	}
	if !start.Before(end) {
		s.logger.Warn("create leave invalid range",
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}

	totalDays, err := calendar.InclusiveDays(start, end)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		s.logger.Error("create leave begin tx failed", zap.String("request_id", rid), zap.Error(tx.Error))
		return LeaveResponse{}, mapRepositoryError(tx.Error)
	}
	defer tx.Rollback()

	repo := s.repo.WithTx(tx)
	if _, err := repo.FindEmployee(ctx, companyID, req.EmployeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrEmployeeNotInCompany
		}
		s.logger.Error("create leave employee lookup failed", zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}

	existing, err := repo.FindActiveByEmployee(ctx, companyID, req.EmployeeID)
	if err != nil {
		s.logger.Error("create leave load existing failed", zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}
	if calendar.OverlapsAny(calendar.Range{Start: start, End: end}, toStatusRanges(existing), ActiveStatuses...) {
		s.logger.Warn("create leave overlap",
			zap.String("employee_id", req.EmployeeID),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	l := &Leave{
		ID:         uuid.New(),
		CompanyID:  companyUUID,
		EmployeeID: employeeUUID,
		LeaveType:  req.LeaveType,
		StartDate:  start,
		EndDate:    end,
		TotalDays:  totalDays,
		Reason:     strings.TrimSpace(req.Reason),
		Status:     StatusPending,
		CreatedBy:  actorUUID,
	}
	if err := repo.Create(ctx, l); err != nil {
		s.logger.Error("create leave persist failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit().Error; err != nil {
		s.logger.Error("create leave commit failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", l.ID.String()),
		zap.Int("total_days", totalDays),
	)
	return mapToResponse(*l), nil
}

// UpdateStatus decides a PENDING request. The outbox row for the
// notification is written in the same transaction as the decision.
func (s *service) UpdateStatus(ctx context.Context, companyID, actorID, id string, req UpdateLeaveStatusRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}
	status := strings.ToUpper(strings.TrimSpace(req.Status))
	if status != StatusApproved && status != StatusRejected {
		return LeaveResponse{}, leaveerrors.ErrInvalidTargetStatus
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return LeaveResponse{}, mapRepositoryError(tx.Error)
	}
	defer tx.Rollback()

	repo := s.repo.WithTx(tx)
	l, err := repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}
	if l.Status != StatusPending {
		s.logger.Warn("update leave status rejected",
			zap.String("leave_id", id),
			zap.String("current_status", l.Status),
			zap.String("target_status", status),
		)
		return LeaveResponse{}, leaveerrors.ErrLeaveNotPending
	}

	now := s.now()
	l.Status = status
	l.ApprovedBy = &actorUUID
	l.ApprovedAt = &now
	l.ApproverNotes = req.ApproverNotes
	l.UpdatedAt = now

	updated, err := repo.UpdateStatusIfPending(ctx, l)
	if err != nil {
		s.logger.Error("update leave status persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}
	if updated == 0 {
		// decided concurrently between the read and the write
		return LeaveResponse{}, leaveerrors.ErrLeaveNotPending
	}

	if s.outbox != nil {
		if err := s.queueStatusChanged(ctx, tx, rid, l); err != nil {
			return LeaveResponse{}, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		s.logger.Error("update leave status commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("leave status updated",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("status", status),
	)
	return mapToResponse(*l), nil
}

func (s *service) queueStatusChanged(ctx context.Context, tx *gorm.DB, rid string, l *Leave) error {
	empl, err := s.repo.WithTx(tx).FindEmployee(ctx, l.CompanyID.String(), l.EmployeeID.String())
	if err != nil {
		s.logger.Error("leave notification employee lookup failed", zap.String("leave_id", l.ID.String()), zap.Error(err))
		return mapRepositoryError(err)
	}

	payload := events.LeaveStatusChangedEvent{
		EventType:     events.LeaveStatusChangedType,
		LeaveID:       l.ID.String(),
		CompanyID:     l.CompanyID.String(),
		EmployeeID:    l.EmployeeID.String(),
		EmployeeName:  empl.FullName,
		EmployeeEmail: empl.Email,
		Status:        l.Status,
		StartDate:     l.StartDate.Format(calendar.DayLayout),
		EndDate:       l.EndDate.Format(calendar.DayLayout),
		OccurredAt:    s.now(),
	}
	if l.ApproverNotes != nil {
		payload.ApproverNotes = *l.ApproverNotes
	}

	event, err := kafka.NewOutboxEvent(rid, "leave", l.ID.String(),
		events.LeaveStatusChangedType, events.LeaveStatusChangedTopic, payload)
	if err != nil {
		return err
	}
	if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
		s.logger.Error("leave outbox persist failed", zap.String("leave_id", l.ID.String()), zap.Error(err))
		return err
	}
	return nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return leaveerrors.ErrLeaveNotFound
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return mapRepositoryError(tx.Error)
	}
	defer tx.Rollback()

	repo := s.repo.WithTx(tx)
	l, err := repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	if l.Status == StatusApproved {
		s.logger.Warn("delete approved leave rejected", zap.String("leave_id", id))
		return leaveerrors.ErrApprovedLeaveImmutable
	}

	if err := repo.Delete(ctx, companyID, id); err != nil {
		s.logger.Error("delete leave failed", zap.String("leave_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return mapRepositoryError(err)
	}

	s.logger.Info("leave deleted", zap.String("leave_id", id), zap.String("status", l.Status))
	return nil
}

// GetAll lists leaves of the company. Callers without read_all only ever see
// their own requests, whatever the filter says.
func (s *service) GetAll(ctx context.Context, companyID, actorEmployeeID string, canReadAll bool, filter LeaveFilter) ([]LeaveResponse, error) {
	if !canReadAll {
		if actorEmployeeID == "" {
			return nil, apperror.ErrForbidden
		}
		filter.EmployeeID = actorEmployeeID
	}
	if filter.Status != "" {
		filter.Status = strings.ToUpper(filter.Status)
	}

	leaves, err := s.repo.FindAll(ctx, companyID, filter)
	if err != nil {
		s.logger.Error("get all leaves failed", zap.String("company_id", companyID), zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (LeaveResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}

	l, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("get leave by id failed", zap.String("leave_id", id), zap.Error(err))
		}
		return LeaveResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*l), nil
}

func validateCreate(req CreateLeaveRequest) error {
	switch {
	case strings.TrimSpace(req.EmployeeID) == "":
		return apperror.RequiredField("employee_id")
	case strings.TrimSpace(req.LeaveType) == "":
		return apperror.RequiredField("leave_type")
	case strings.TrimSpace(req.StartDate) == "":
		return apperror.RequiredField("start_date")
	case strings.TrimSpace(req.EndDate) == "":
		return apperror.RequiredField("end_date")
	case strings.TrimSpace(req.Reason) == "":
		return apperror.RequiredField("reason")
	case !slices.Contains(LeaveTypes, req.LeaveType):
		return leaveerrors.ErrInvalidLeaveType
	}
	return nil
}

func toStatusRanges(leaves []Leave) []calendar.StatusRange {
	out := make([]calendar.StatusRange, len(leaves))
	for i, l := range leaves {
		out[i] = calendar.StatusRange{
			Range:  calendar.Range{Start: l.StartDate, End: l.EndDate},
			Status: l.Status,
		}
	}
	return out
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:            l.ID.String(),
		CompanyID:     l.CompanyID.String(),
		EmployeeID:    l.EmployeeID.String(),
		LeaveType:     l.LeaveType,
		StartDate:     l.StartDate.Format(calendar.DayLayout),
		EndDate:       l.EndDate.Format(calendar.DayLayout),
		TotalDays:     l.TotalDays,
		Reason:        l.Reason,
		Status:        l.Status,
		CreatedBy:     l.CreatedBy.String(),
		ApproverNotes: l.ApproverNotes,
	}
	if wd, err := calendar.WorkingDays(l.StartDate, l.EndDate); err == nil {
		resp.WorkingDays = wd
	}
	if l.ApprovedBy != nil {
		v := l.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if l.ApprovedAt != nil {
		v := l.ApprovedAt.UTC().Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	return resp
}
