package leave_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-hr-portal/internal/events"
	"go-hr-portal/internal/leave"
	leaveerrors "go-hr-portal/internal/leave/errors"
	leaveMock "go-hr-portal/internal/leave/mock"
	"go-hr-portal/internal/messaging/kafka"
	kafkaMock "go-hr-portal/internal/messaging/kafka/mock"
	"go-hr-portal/internal/shared/apperror"
	"go-hr-portal/internal/shared/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	sqlMock sqlmock.Sqlmock
	service leave.Service
	repo    *leaveMock.MockRepository
	outbox  *kafkaMock.MockOutboxRepository
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock := testutil.NewMockDB(t)
	repo := leaveMock.NewMockRepository(ctrl)
	outboxRepo := kafkaMock.NewMockOutboxRepository(ctrl)

	return &serviceDeps{
		sqlMock: sqlMock,
		service: leave.NewService(db, repo, outboxRepo),
		repo:    repo,
		outbox:  outboxRepo,
	}
}

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func existingLeave(start, end, status string) leave.Leave {
	return leave.Leave{ID: uuid.New(), StartDate: day(start), EndDate: day(end), Status: status}
}

func TestLeaveService_Create(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	actorID := uuid.New().String()
	employeeID := uuid.New().String()

	newReq := func(start, end string) leave.CreateLeaveRequest {
		return leave.CreateLeaveRequest{
			EmployeeID: employeeID,
			LeaveType:  "ANNUAL",
			StartDate:  start,
			EndDate:    end,
			Reason:     "family trip",
		}
	}

	expectLookups := func(deps *serviceDeps, existing []leave.Leave) {
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			FindEmployee(gomock.Any(), companyID, employeeID).
			Return(&leave.EmployeeRef{ID: uuid.MustParse(employeeID)}, nil)
		deps.repo.EXPECT().
			FindActiveByEmployee(gomock.Any(), companyID, employeeID).
			Return(existing, nil)
	}

	t.Run("success counts inclusive days", func(t *testing.T) {
		deps := setupServiceTest(t)
		testutil.ExpectTx(deps.sqlMock, true)
		expectLookups(deps, nil)

		deps.repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, l *leave.Leave) error {
				assert.Equal(t, leave.StatusPending, l.Status)
				assert.Equal(t, 4, l.TotalDays)
				assert.Equal(t, actorID, l.CreatedBy.String())
				return nil
			})

		// 2026-01-09 is a Friday, so only the Friday and Monday are worked.
		resp, err := deps.service.Create(ctx, companyID, actorID, newReq("2026-01-09", "2026-01-12"))

		require.NoError(t, err)
		assert.Equal(t, 4, resp.TotalDays)
		assert.Equal(t, 2, resp.WorkingDays)
		assert.Equal(t, leave.StatusPending, resp.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative start equal to end", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Create(ctx, companyID, actorID, newReq("2026-01-10", "2026-01-10"))

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
		assert.True(t, apperror.HasCode(err, apperror.CodeInvalidInput))
	})

	t.Run("negative start after end", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Create(ctx, companyID, actorID, newReq("2026-01-12", "2026-01-10"))

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
	})

	t.Run("negative bad date format", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Create(ctx, companyID, actorID, newReq("10/01/2026", "2026-01-12"))

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateFormat)
	})

	t.Run("negative missing reason", func(t *testing.T) {
		deps := setupServiceTest(t)
		req := newReq("2026-01-10", "2026-01-12")
		req.Reason = " "

		_, err := deps.service.Create(ctx, companyID, actorID, req)

		assert.True(t, apperror.HasCode(err, apperror.CodeInvalidInput))
	})

	t.Run("negative bad employee id", func(t *testing.T) {
		deps := setupServiceTest(t)
		req := newReq("2026-01-10", "2026-01-12")
		req.EmployeeID = "nope"

		_, err := deps.service.Create(ctx, companyID, actorID, req)

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidEmployeeID)
	})

	t.Run("negative employee from another company", func(t *testing.T) {
		deps := setupServiceTest(t)
		testutil.ExpectTx(deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			FindEmployee(gomock.Any(), companyID, employeeID).
			Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Create(ctx, companyID, actorID, newReq("2026-01-10", "2026-01-12"))

		assert.ErrorIs(t, err, leaveerrors.ErrEmployeeNotInCompany)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative overlap with pending request", func(t *testing.T) {
		deps := setupServiceTest(t)
		testutil.ExpectTx(deps.sqlMock, false)
		expectLookups(deps, []leave.Leave{existingLeave("2026-01-10", "2026-01-12", leave.StatusPending)})

		_, err := deps.service.Create(ctx, companyID, actorID, newReq("2026-01-12", "2026-01-14"))

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveOverlap)
		assert.True(t, apperror.HasCode(err, apperror.CodeConflict))
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("success adjacent to pending request", func(t *testing.T) {
		deps := setupServiceTest(t)
		testutil.ExpectTx(deps.sqlMock, true)
		expectLookups(deps, []leave.Leave{existingLeave("2026-01-10", "2026-01-12", leave.StatusPending)})
		deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		_, err := deps.service.Create(ctx, companyID, actorID, newReq("2026-01-13", "2026-01-15"))

		assert.NoError(t, err)
	})

	t.Run("negative concurrent insert hits exclusion constraint", func(t *testing.T) {
		deps := setupServiceTest(t)
		testutil.ExpectTx(deps.sqlMock, false)
		expectLookups(deps, nil)
		deps.repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(&pgconn.PgError{Code: "23P01", ConstraintName: "ex_leaves_employee_period"})

		_, err := deps.service.Create(ctx, companyID, actorID, newReq("2026-01-10", "2026-01-12"))

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveOverlap)
	})
}

func TestLeaveService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	actorID := uuid.New().String()
	notes := "enjoy"

	pending := func() *leave.Leave {
		return &leave.Leave{
			ID:         uuid.New(),
			CompanyID:  companyID,
			EmployeeID: uuid.New(),
			StartDate:  day("2026-02-02"),
			EndDate:    day("2026-02-04"),
			Status:     leave.StatusPending,
		}
	}

	t.Run("success approves and queues notification", func(t *testing.T) {
		deps := setupServiceTest(t)
		testutil.ExpectTx(deps.sqlMock, true)
		l := pending()

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo).Times(2)
		deps.repo.EXPECT().FindByIDAndCompany(gomock.Any(), companyID.String(), l.ID.String()).Return(l, nil)
		deps.repo.EXPECT().
			UpdateStatusIfPending(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, got *leave.Leave) (int64, error) {
				assert.Equal(t, leave.StatusApproved, got.Status)
				require.NotNil(t, got.ApprovedAt)
				assert.Equal(t, actorID, got.ApprovedBy.String())
				return 1, nil
			})
		deps.repo.EXPECT().
			FindEmployee(gomock.Any(), companyID.String(), l.EmployeeID.String()).
			Return(&leave.EmployeeRef{FullName: "Jane Doe", Email: "jane@acme.test"}, nil)
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, ev kafka.OutboxEvent) error {
				assert.Equal(t, events.LeaveStatusChangedTopic, ev.Topic)

				var payload events.LeaveStatusChangedEvent
				require.NoError(t, json.Unmarshal(ev.Payload, &payload))
				assert.Equal(t, "jane@acme.test", payload.EmployeeEmail)
				assert.Equal(t, leave.StatusApproved, payload.Status)
				assert.Equal(t, "enjoy", payload.ApproverNotes)
				assert.Equal(t, "2026-02-02", payload.StartDate)
				return nil
			})

		resp, err := deps.service.UpdateStatus(ctx, companyID.String(), actorID, l.ID.String(), leave.UpdateLeaveStatusRequest{
			Status:        "approved",
			ApproverNotes: &notes,
		})

		require.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, resp.Status)
		assert.NotNil(t, resp.ApprovedAt)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative already decided", func(t *testing.T) {
		deps := setupServiceTest(t)
		testutil.ExpectTx(deps.sqlMock, false)
		l := pending()
		l.Status = leave.StatusRejected

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDAndCompany(gomock.Any(), companyID.String(), l.ID.String()).Return(l, nil)

		_, err := deps.service.UpdateStatus(ctx, companyID.String(), actorID, l.ID.String(), leave.UpdateLeaveStatusRequest{Status: "APPROVED"})

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotPending)
		assert.True(t, apperror.HasCode(err, apperror.CodeInvalidState))
	})

	t.Run("negative decided concurrently", func(t *testing.T) {
		deps := setupServiceTest(t)
		testutil.ExpectTx(deps.sqlMock, false)
		l := pending()

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDAndCompany(gomock.Any(), gomock.Any(), gomock.Any()).Return(l, nil)
		deps.repo.EXPECT().UpdateStatusIfPending(gomock.Any(), gomock.Any()).Return(int64(0), nil)

		_, err := deps.service.UpdateStatus(ctx, companyID.String(), actorID, l.ID.String(), leave.UpdateLeaveStatusRequest{Status: "REJECTED"})

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotPending)
	})

	t.Run("negative unknown leave", func(t *testing.T) {
		deps := setupServiceTest(t)
		testutil.ExpectTx(deps.sqlMock, false)
		id := uuid.NewString()

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDAndCompany(gomock.Any(), companyID.String(), id).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.UpdateStatus(ctx, companyID.String(), actorID, id, leave.UpdateLeaveStatusRequest{Status: "APPROVED"})

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
	})

	t.Run("negative invalid target status", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.UpdateStatus(ctx, companyID.String(), actorID, uuid.NewString(), leave.UpdateLeaveStatusRequest{Status: "PENDING"})

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidTargetStatus)
	})

	t.Run("negative outbox failure rolls back", func(t *testing.T) {
		deps := setupServiceTest(t)
		testutil.ExpectTx(deps.sqlMock, false)
		l := pending()

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo).Times(2)
		deps.repo.EXPECT().FindByIDAndCompany(gomock.Any(), gomock.Any(), gomock.Any()).Return(l, nil)
		deps.repo.EXPECT().UpdateStatusIfPending(gomock.Any(), gomock.Any()).Return(int64(1), nil)
		deps.repo.EXPECT().FindEmployee(gomock.Any(), gomock.Any(), gomock.Any()).Return(&leave.EmployeeRef{}, nil)
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("outbox down"))

		_, err := deps.service.UpdateStatus(ctx, companyID.String(), actorID, l.ID.String(), leave.UpdateLeaveStatusRequest{Status: "APPROVED"})

		assert.EqualError(t, err, "outbox down")
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestLeaveService_Delete(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.NewString()

	t.Run("success pending leave", func(t *testing.T) {
		deps := setupServiceTest(t)
		testutil.ExpectTx(deps.sqlMock, true)
		l := existingLeave("2026-03-01", "2026-03-02", leave.StatusPending)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDAndCompany(gomock.Any(), companyID, l.ID.String()).Return(&l, nil)
		deps.repo.EXPECT().Delete(gomock.Any(), companyID, l.ID.String()).Return(nil)

		assert.NoError(t, deps.service.Delete(ctx, companyID, l.ID.String()))
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative approved leave", func(t *testing.T) {
		deps := setupServiceTest(t)
		testutil.ExpectTx(deps.sqlMock, false)
		l := existingLeave("2026-03-01", "2026-03-02", leave.StatusApproved)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDAndCompany(gomock.Any(), companyID, l.ID.String()).Return(&l, nil)

		err := deps.service.Delete(ctx, companyID, l.ID.String())

		assert.ErrorIs(t, err, leaveerrors.ErrApprovedLeaveImmutable)
		assert.True(t, apperror.HasCode(err, apperror.CodeInvalidState))
	})

	t.Run("negative unknown leave", func(t *testing.T) {
		deps := setupServiceTest(t)
		testutil.ExpectTx(deps.sqlMock, false)
		id := uuid.NewString()

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDAndCompany(gomock.Any(), companyID, id).Return(nil, gorm.ErrRecordNotFound)

		assert.ErrorIs(t, deps.service.Delete(ctx, companyID, id), leaveerrors.ErrLeaveNotFound)
	})
}

func TestLeaveService_GetAll(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.NewString()
	ownID := uuid.NewString()

	t.Run("employee only sees own requests", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().
			FindAll(gomock.Any(), companyID, leave.LeaveFilter{EmployeeID: ownID, Status: "PENDING"}).
			Return([]leave.Leave{existingLeave("2026-03-01", "2026-03-02", leave.StatusPending)}, nil)

		resp, err := deps.service.GetAll(ctx, companyID, ownID, false, leave.LeaveFilter{
			EmployeeID: uuid.NewString(),
			Status:     "pending",
		})

		require.NoError(t, err)
		assert.Len(t, resp, 1)
	})

	t.Run("employer filter passes through", func(t *testing.T) {
		deps := setupServiceTest(t)
		other := uuid.NewString()
		deps.repo.EXPECT().
			FindAll(gomock.Any(), companyID, leave.LeaveFilter{EmployeeID: other}).
			Return(nil, nil)

		resp, err := deps.service.GetAll(ctx, companyID, "", true, leave.LeaveFilter{EmployeeID: other})

		require.NoError(t, err)
		assert.Empty(t, resp)
	})

	t.Run("negative no employee and no read_all", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.GetAll(ctx, companyID, "", false, leave.LeaveFilter{})

		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})
}
