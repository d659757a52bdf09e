package attendance

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	attendanceerrors "go-hr-portal/internal/attendance/errors"
	"go-hr-portal/internal/shared/apperror"
	"go-hr-portal/internal/shared/calendar"
	"go-hr-portal/internal/shared/contextutil"
	"go-hr-portal/internal/shared/dberr"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	ClockEvent(ctx context.Context, companyID string, req ClockEventRequest) (AttendanceResponse, error)
	ClockIn(ctx context.Context, companyID, employeeID string, req ClockInRequest) (AttendanceResponse, error)
	ClockOut(ctx context.Context, companyID, employeeID string, req ClockOutRequest) (AttendanceResponse, error)
	UpdateTimes(ctx context.Context, companyID, id string, req UpdateTimesRequest) (AttendanceResponse, error)
	Query(ctx context.Context, companyID string, filter AttendanceFilter) (QueryResult, error)
	ExportXLSX(ctx context.Context, companyID string, filter AttendanceFilter) (*bytes.Buffer, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		now:    func() time.Time { return time.Now().UTC() },
		logger: l,
	}
}

// ClockEvent records one employee day in a single call, typically from an
// employer correcting or back-filling attendance.
func (s *service) ClockEvent(ctx context.Context, companyID string, req ClockEventRequest) (AttendanceResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("clock event requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("date", req.Date),
	)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidCompanyID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}
	day, err := calendar.ParseDay(strings.TrimSpace(req.Date))
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidDate
	}

	in, out, err := parseTimes(day, req.CheckIn, req.CheckOut)
	if err != nil {
		s.logger.Warn("clock event invalid time", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, err
	}

	status := StatusPresent
	if req.Status != "" {
		status = strings.ToUpper(strings.TrimSpace(req.Status))
		if !slices.Contains(Statuses, status) {
			return AttendanceResponse{}, attendanceerrors.ErrInvalidStatus
		}
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return AttendanceResponse{}, mapRepositoryError(tx.Error)
	}
	defer tx.Rollback()

	repo := s.repo.WithTx(tx)
	empl, err := s.findEmployee(ctx, repo, companyID, req.EmployeeID)
	if err != nil {
		return AttendanceResponse{}, err
	}

	if err := s.ensureNoRecord(ctx, repo, companyID, req.EmployeeID, day); err != nil {
		return AttendanceResponse{}, err
	}

	working, overtime := computeHours(in, out)
	row := &Attendance{
		ID:             uuid.New(),
		CompanyID:      companyUUID,
		EmployeeID:     employeeUUID,
		AttendanceDate: day,
		ClockIn:        in,
		ClockOut:       out,
		WorkingHours:   working,
		OvertimeHours:  overtime,
		Status:         status,
		Source:         SourceManual,
		Notes:          req.Notes,
	}
	if err := repo.Create(ctx, row); err != nil {
		s.logger.Error("clock event persist failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	row.Employee = empl
	s.logger.Info("clock event recorded",
		zap.String("request_id", rid),
		zap.String("attendance_id", row.ID.String()),
		zap.Float64("working_hours", working),
	)
	return mapToResponse(*row), nil
}

func (s *service) ClockIn(ctx context.Context, companyID, employeeID string, req ClockInRequest) (AttendanceResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidCompanyID
	}
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	now := s.now()
	today := calendar.DayOf(now)

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return AttendanceResponse{}, mapRepositoryError(tx.Error)
	}
	defer tx.Rollback()

	repo := s.repo.WithTx(tx)
	if err := s.ensureNoRecord(ctx, repo, companyID, employeeID, today); err != nil {
		return AttendanceResponse{}, err
	}

	status := StatusPresent
	if isLate(now) {
		status = StatusLate
	}

	row := &Attendance{
		ID:             uuid.New(),
		CompanyID:      companyUUID,
		EmployeeID:     employeeUUID,
		AttendanceDate: today,
		ClockIn:        &now,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		Status:         status,
		Source:         SourceClock,
		Notes:          req.Notes,
	}
	if err := repo.Create(ctx, row); err != nil {
		s.logger.Error("clock in persist failed", zap.String("employee_id", employeeID), zap.Error(err))
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("clocked in", zap.String("employee_id", employeeID), zap.String("status", status))
	return mapToResponse(*row), nil
}

func (s *service) ClockOut(ctx context.Context, companyID, employeeID string, req ClockOutRequest) (AttendanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	now := s.now()

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return AttendanceResponse{}, mapRepositoryError(tx.Error)
	}
	defer tx.Rollback()

	repo := s.repo.WithTx(tx)
	row, err := findShift(ctx, repo, companyID, employeeID, now)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrNotClockedIn
		}
		return AttendanceResponse{}, mapRepositoryError(err)
	}
	if row.ClockIn == nil {
		return AttendanceResponse{}, attendanceerrors.ErrNotClockedIn
	}
	if row.ClockOut != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyClockedOut
	}

	row.ClockOut = &now
	if req.Latitude != nil {
		row.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		row.Longitude = req.Longitude
	}
	if req.Notes != nil {
		row.Notes = req.Notes
	}
	row.WorkingHours, row.OvertimeHours = computeHours(row.ClockIn, row.ClockOut)

	if err := repo.Update(ctx, row); err != nil {
		s.logger.Error("clock out persist failed", zap.String("employee_id", employeeID), zap.Error(err))
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("clocked out",
		zap.String("employee_id", employeeID),
		zap.Float64("working_hours", row.WorkingHours),
		zap.Float64("overtime_hours", row.OvertimeHours),
	)
	return mapToResponse(*row), nil
}

// findShift returns today's record, or yesterday's when it is still open so a
// shift crossing midnight can be closed.
func findShift(ctx context.Context, repo Repository, companyID, employeeID string, now time.Time) (*Attendance, error) {
	row, err := repo.FindByEmployeeAndDate(ctx, companyID, employeeID, now)
	if err == nil || !errors.Is(err, gorm.ErrRecordNotFound) {
		return row, err
	}

	prev, prevErr := repo.FindByEmployeeAndDate(ctx, companyID, employeeID, now.AddDate(0, 0, -1))
	if prevErr != nil {
		return nil, prevErr
	}
	if prev.ClockIn == nil || prev.ClockOut != nil {
		return nil, gorm.ErrRecordNotFound
	}
	return prev, nil
}

// UpdateTimes corrects clock times, status or notes. Omitted fields keep their
// value and hours are recomputed from the result.
func (s *service) UpdateTimes(ctx context.Context, companyID, id string, req UpdateTimesRequest) (AttendanceResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAttendanceNotFound
	}

	status := ""
	if req.Status != "" {
		status = strings.ToUpper(strings.TrimSpace(req.Status))
		if !slices.Contains(Statuses, status) {
			return AttendanceResponse{}, attendanceerrors.ErrInvalidStatus
		}
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return AttendanceResponse{}, mapRepositoryError(tx.Error)
	}
	defer tx.Rollback()

	repo := s.repo.WithTx(tx)
	row, err := repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	in, out, err := parseTimes(row.AttendanceDate, req.CheckIn, req.CheckOut)
	if err != nil {
		return AttendanceResponse{}, err
	}
	if in != nil {
		row.ClockIn = in
	}
	if out != nil {
		row.ClockOut = out
	}
	if status != "" {
		row.Status = status
	}
	if req.Notes != nil {
		row.Notes = req.Notes
	}
	row.WorkingHours, row.OvertimeHours = computeHours(row.ClockIn, row.ClockOut)

	if err := repo.Update(ctx, row); err != nil {
		s.logger.Error("update attendance times failed", zap.String("attendance_id", id), zap.Error(err))
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("attendance times updated", zap.String("attendance_id", id))
	return mapToResponse(*row), nil
}

// Query never fails because the store is unreachable or the table is
// missing; it reports Degraded with no items instead.
func (s *service) Query(ctx context.Context, companyID string, filter AttendanceFilter) (QueryResult, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	if filter.Date != "" {
		if _, err := calendar.ParseDay(filter.Date); err != nil {
			return QueryResult{}, attendanceerrors.ErrInvalidDate
		}
	}
	if filter.EmployeeID != "" {
		if _, err := uuid.Parse(filter.EmployeeID); err != nil {
			return QueryResult{}, attendanceerrors.ErrInvalidEmployeeID
		}
	}

	rows, err := s.repo.Query(ctx, companyID, filter)
	if err != nil {
		if dberr.IsStorageUnavailable(err) {
			l.Warn("attendance query degraded",
				zap.String("company_id", companyID),
				zap.Error(err),
			)
			return QueryResult{Items: []AttendanceResponse{}, Degraded: true}, nil
		}
		l.Error("attendance query failed", zap.String("company_id", companyID), zap.Error(err))
		return QueryResult{}, mapRepositoryError(err)
	}

	items := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		items[i] = mapToResponse(r)
	}
	return QueryResult{Items: items}, nil
}

func (s *service) findEmployee(ctx context.Context, repo Repository, companyID, employeeID string) (*EmployeeRef, error) {
	empl, err := repo.FindEmployee(ctx, companyID, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, attendanceerrors.ErrEmployeeNotInCompany
		}
		s.logger.Error("attendance employee lookup failed", zap.String("employee_id", employeeID), zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return empl, nil
}

func (s *service) ensureNoRecord(ctx context.Context, repo Repository, companyID, employeeID string, day time.Time) error {
	_, err := repo.FindByEmployeeAndDate(ctx, companyID, employeeID, day)
	switch {
	case err == nil:
		s.logger.Warn("attendance already recorded",
			zap.String("employee_id", employeeID),
			zap.String("date", day.Format(calendar.DayLayout)),
		)
		return attendanceerrors.ErrAttendanceExists
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil
	default:
		return mapRepositoryError(err)
	}
}

func parseTimes(day time.Time, checkIn, checkOut *string) (in, out *time.Time, err error) {
	if checkIn != nil && strings.TrimSpace(*checkIn) != "" {
		t, err := parseClock(day, *checkIn)
		if err != nil {
			return nil, nil, apperror.Wrap(err, attendanceerrors.ErrInvalidTime.Code, attendanceerrors.ErrInvalidTime.Message, attendanceerrors.ErrInvalidTime.HTTPStatus)
		}
		in = &t
	}
	if checkOut != nil && strings.TrimSpace(*checkOut) != "" {
		t, err := parseClock(day, *checkOut)
		if err != nil {
			return nil, nil, apperror.Wrap(err, attendanceerrors.ErrInvalidTime.Code, attendanceerrors.ErrInvalidTime.Message, attendanceerrors.ErrInvalidTime.HTTPStatus)
		}
		out = &t
	}
	return in, out, nil
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:             a.ID.String(),
		CompanyID:      a.CompanyID.String(),
		EmployeeID:     a.EmployeeID.String(),
		AttendanceDate: a.AttendanceDate.Format(calendar.DayLayout),
		WorkingHours:   a.WorkingHours,
		OvertimeHours:  a.OvertimeHours,
		Latitude:       a.Latitude,
		Longitude:      a.Longitude,
		Status:         a.Status,
		Source:         a.Source,
		Notes:          a.Notes,
	}
	if a.Employee != nil {
		resp.EmployeeName = a.Employee.FullName
		resp.Department = a.Employee.Department
	}
	if a.ClockIn != nil {
		v := a.ClockIn.UTC().Format(time.RFC3339)
		resp.ClockIn = &v
	}
	if a.ClockOut != nil {
		v := a.ClockOut.UTC().Format(time.RFC3339)
		resp.ClockOut = &v
	}
	return resp
}
