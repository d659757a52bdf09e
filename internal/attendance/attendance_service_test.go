package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	attendanceerrors "go-hr-portal/internal/attendance/errors"
	"go-hr-portal/internal/shared/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepo struct {
	withTxFn                func(tx *gorm.DB) Repository
	createFn                func(ctx context.Context, a *Attendance) error
	findByIDFn              func(ctx context.Context, companyID, id string) (*Attendance, error)
	findByEmployeeAndDateFn func(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error)
	findEmployeeFn          func(ctx context.Context, companyID, employeeID string) (*EmployeeRef, error)
	queryFn                 func(ctx context.Context, companyID string, filter AttendanceFilter) ([]Attendance, error)
	updateFn                func(ctx context.Context, a *Attendance) error
}

func (f *fakeRepo) WithTx(tx *gorm.DB) Repository { return f.withTxFn(tx) }
func (f *fakeRepo) Create(ctx context.Context, a *Attendance) error {
	return f.createFn(ctx, a)
}
func (f *fakeRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Attendance, error) {
	return f.findByIDFn(ctx, companyID, id)
}
func (f *fakeRepo) FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error) {
	return f.findByEmployeeAndDateFn(ctx, companyID, employeeID, date)
}
func (f *fakeRepo) FindEmployee(ctx context.Context, companyID, employeeID string) (*EmployeeRef, error) {
	return f.findEmployeeFn(ctx, companyID, employeeID)
}
func (f *fakeRepo) Query(ctx context.Context, companyID string, filter AttendanceFilter) ([]Attendance, error) {
	return f.queryFn(ctx, companyID, filter)
}
func (f *fakeRepo) Update(ctx context.Context, a *Attendance) error { return f.updateFn(ctx, a) }

func newTestService(t *testing.T, repo Repository, now time.Time) (*service, sqlmock.Sqlmock) {
	db, mock := testutil.NewMockDB(t)
	svc := NewService(db, repo).(*service)
	svc.now = func() time.Time { return now }
	return svc, mock
}

func TestComputeHours(t *testing.T) {
	at := func(h, m int) *time.Time {
		v := time.Date(2026, 1, 5, h, m, 0, 0, time.UTC)
		return &v
	}

	tests := []struct {
		name     string
		in, out  *time.Time
		working  float64
		overtime float64
	}{
		{"full day with overtime", at(8, 0), at(17, 30), 9.5, 1.5},
		{"exactly eight hours", at(9, 0), at(17, 0), 8, 0},
		{"rounded to two decimals", at(9, 0), at(9, 20), 0.33, 0},
		{"out before in clamps to zero", at(17, 0), at(9, 0), 0, 0},
		{"missing clock out", at(9, 0), nil, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			working, overtime := computeHours(tt.in, tt.out)
			assert.Equal(t, tt.working, working)
			assert.Equal(t, tt.overtime, overtime)
		})
	}
}

func TestIsLate(t *testing.T) {
	assert.False(t, isLate(time.Date(2026, 1, 5, 9, 15, 59, 0, time.UTC)))
	assert.True(t, isLate(time.Date(2026, 1, 5, 9, 16, 0, 0, time.UTC)))
	assert.True(t, isLate(time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)))
	assert.False(t, isLate(time.Date(2026, 1, 5, 7, 59, 0, 0, time.UTC)))
}

func TestParseClock(t *testing.T) {
	day := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	got, err := parseClock(day, "08:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 5, 8, 30, 0, 0, time.UTC), got)

	got, err = parseClock(day, "2026-01-05T10:00:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC), got)

	_, err = parseClock(day, "8h")
	assert.Error(t, err)
}

func TestService_ClockInAndClockOut(t *testing.T) {
	companyID := uuid.New().String()
	employeeID := uuid.New().String()
	ctx := context.Background()

	var saved Attendance
	repo := &fakeRepo{}
	repo.withTxFn = func(*gorm.DB) Repository { return repo }
	repo.createFn = func(_ context.Context, a *Attendance) error { saved = *a; return nil }
	repo.updateFn = func(_ context.Context, a *Attendance) error { saved = *a; return nil }
	repo.findByEmployeeAndDateFn = func(context.Context, string, string, time.Time) (*Attendance, error) {
		if saved.ID == uuid.Nil {
			return nil, gorm.ErrRecordNotFound
		}
		cp := saved
		return &cp, nil
	}

	svc, mock := newTestService(t, repo, time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC))

	testutil.ExpectTx(mock, true)
	inResp, err := svc.ClockIn(ctx, companyID, employeeID, ClockInRequest{})
	require.NoError(t, err)
	assert.Equal(t, StatusPresent, inResp.Status)
	assert.Equal(t, SourceClock, inResp.Source)

	svc.now = func() time.Time { return time.Date(2026, 1, 5, 17, 30, 0, 0, time.UTC) }
	testutil.ExpectTx(mock, true)
	outResp, err := svc.ClockOut(ctx, companyID, employeeID, ClockOutRequest{})
	require.NoError(t, err)
	require.NotNil(t, outResp.ClockOut)
	assert.Equal(t, 9.5, outResp.WorkingHours)
	assert.Equal(t, 1.5, outResp.OvertimeHours)

	testutil.ExpectTx(mock, false)
	_, err = svc.ClockOut(ctx, companyID, employeeID, ClockOutRequest{})
	assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyClockedOut)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_ClockIn(t *testing.T) {
	companyID := uuid.New().String()
	employeeID := uuid.New().String()
	ctx := context.Background()

	t.Run("late after quarter past nine", func(t *testing.T) {
		repo := &fakeRepo{}
		repo.withTxFn = func(*gorm.DB) Repository { return repo }
		repo.findByEmployeeAndDateFn = func(context.Context, string, string, time.Time) (*Attendance, error) {
			return nil, gorm.ErrRecordNotFound
		}
		repo.createFn = func(context.Context, *Attendance) error { return nil }

		svc, mock := newTestService(t, repo, time.Date(2026, 1, 5, 9, 16, 0, 0, time.UTC))
		testutil.ExpectTx(mock, true)

		resp, err := svc.ClockIn(ctx, companyID, employeeID, ClockInRequest{})
		require.NoError(t, err)
		assert.Equal(t, StatusLate, resp.Status)
		assert.Equal(t, "2026-01-05", resp.AttendanceDate)
	})

	t.Run("duplicate for the day", func(t *testing.T) {
		repo := &fakeRepo{}
		repo.withTxFn = func(*gorm.DB) Repository { return repo }
		repo.findByEmployeeAndDateFn = func(context.Context, string, string, time.Time) (*Attendance, error) {
			return &Attendance{ID: uuid.New()}, nil
		}

		svc, mock := newTestService(t, repo, time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC))
		testutil.ExpectTx(mock, false)

		_, err := svc.ClockIn(ctx, companyID, employeeID, ClockInRequest{})
		assert.ErrorIs(t, err, attendanceerrors.ErrAttendanceExists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("race lost to unique index", func(t *testing.T) {
		repo := &fakeRepo{}
		repo.withTxFn = func(*gorm.DB) Repository { return repo }
		repo.findByEmployeeAndDateFn = func(context.Context, string, string, time.Time) (*Attendance, error) {
			return nil, gorm.ErrRecordNotFound
		}
		repo.createFn = func(context.Context, *Attendance) error { return gorm.ErrDuplicatedKey }

		svc, mock := newTestService(t, repo, time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC))
		testutil.ExpectTx(mock, false)

		_, err := svc.ClockIn(ctx, companyID, employeeID, ClockInRequest{})
		assert.ErrorIs(t, err, attendanceerrors.ErrAttendanceExists)
	})
}

func TestService_ClockOut_NotClockedIn(t *testing.T) {
	repo := &fakeRepo{}
	repo.withTxFn = func(*gorm.DB) Repository { return repo }
	repo.findByEmployeeAndDateFn = func(context.Context, string, string, time.Time) (*Attendance, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc, mock := newTestService(t, repo, time.Date(2026, 1, 5, 17, 0, 0, 0, time.UTC))
	testutil.ExpectTx(mock, false)

	_, err := svc.ClockOut(context.Background(), uuid.NewString(), uuid.NewString(), ClockOutRequest{})
	assert.ErrorIs(t, err, attendanceerrors.ErrNotClockedIn)
}

func TestService_ClockOut_OvernightShift(t *testing.T) {
	companyID := uuid.NewString()
	employeeID := uuid.NewString()
	ctx := context.Background()

	newRepo := func(prev *Attendance) (*fakeRepo, *Attendance) {
		var saved Attendance
		repo := &fakeRepo{}
		repo.withTxFn = func(*gorm.DB) Repository { return repo }
		repo.updateFn = func(_ context.Context, a *Attendance) error { saved = *a; return nil }
		repo.findByEmployeeAndDateFn = func(_ context.Context, _, _ string, date time.Time) (*Attendance, error) {
			if prev != nil && date.Format("2006-01-02") == "2026-01-05" {
				cp := *prev
				return &cp, nil
			}
			return nil, gorm.ErrRecordNotFound
		}
		return repo, &saved
	}

	t.Run("closes yesterday's open record", func(t *testing.T) {
		in := time.Date(2026, 1, 5, 22, 0, 0, 0, time.UTC)
		repo, saved := newRepo(&Attendance{
			ID:             uuid.New(),
			AttendanceDate: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
			ClockIn:        &in,
			Status:         StatusPresent,
		})

		svc, mock := newTestService(t, repo, time.Date(2026, 1, 6, 6, 0, 0, 0, time.UTC))
		testutil.ExpectTx(mock, true)

		resp, err := svc.ClockOut(ctx, companyID, employeeID, ClockOutRequest{})
		require.NoError(t, err)
		assert.Equal(t, "2026-01-05", resp.AttendanceDate)
		assert.Equal(t, 8.0, resp.WorkingHours)
		assert.Equal(t, 0.0, resp.OvertimeHours)
		require.NotNil(t, saved.ClockOut)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("closed record from yesterday does not count", func(t *testing.T) {
		in := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)
		out := time.Date(2026, 1, 5, 17, 0, 0, 0, time.UTC)
		repo, _ := newRepo(&Attendance{
			ID:             uuid.New(),
			AttendanceDate: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
			ClockIn:        &in,
			ClockOut:       &out,
		})

		svc, mock := newTestService(t, repo, time.Date(2026, 1, 6, 6, 0, 0, 0, time.UTC))
		testutil.ExpectTx(mock, false)

		_, err := svc.ClockOut(ctx, companyID, employeeID, ClockOutRequest{})
		assert.ErrorIs(t, err, attendanceerrors.ErrNotClockedIn)
	})
}

func TestService_Query_Degraded(t *testing.T) {
	repo := &fakeRepo{}

	t.Run("missing table degrades", func(t *testing.T) {
		repo.queryFn = func(context.Context, string, AttendanceFilter) ([]Attendance, error) {
			return nil, errors.New("no such table: attendances")
		}
		svc, _ := newTestService(t, repo, time.Now())

		result, err := svc.Query(context.Background(), uuid.NewString(), AttendanceFilter{})
		require.NoError(t, err)
		assert.True(t, result.Degraded)
		assert.Empty(t, result.Items)
	})

	t.Run("other errors surface", func(t *testing.T) {
		repo.queryFn = func(context.Context, string, AttendanceFilter) ([]Attendance, error) {
			return nil, errors.New("syntax error")
		}
		svc, _ := newTestService(t, repo, time.Now())

		_, err := svc.Query(context.Background(), uuid.NewString(), AttendanceFilter{})
		assert.EqualError(t, err, "syntax error")
	})

	t.Run("bad date filter", func(t *testing.T) {
		svc, _ := newTestService(t, repo, time.Now())

		_, err := svc.Query(context.Background(), uuid.NewString(), AttendanceFilter{Date: "05/01/2026"})
		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDate)
	})
}
