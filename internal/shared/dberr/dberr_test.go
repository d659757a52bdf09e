package dberr_test

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	"go-hr-portal/internal/shared/dberr"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	pgDup := &pgconn.PgError{Code: "23505", ConstraintName: "uq_attendance_employee_date"}

	assert.True(t, dberr.IsUniqueViolation(pgDup))
	assert.True(t, dberr.IsUniqueViolation(fmt.Errorf("insert: %w", pgDup), "uq_attendance_employee_date"))
	assert.False(t, dberr.IsUniqueViolation(pgDup, "uq_users_email"))
	assert.True(t, dberr.IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, dberr.IsUniqueViolation(errors.New("UNIQUE constraint failed: attendances.employee_id")))
	assert.False(t, dberr.IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, dberr.IsUniqueViolation(nil))
}

func TestIsExclusionViolation(t *testing.T) {
	err := &pgconn.PgError{Code: "23P01", ConstraintName: "ex_leaves_employee_period"}

	assert.True(t, dberr.IsExclusionViolation(err))
	assert.True(t, dberr.IsExclusionViolation(err, "ex_leaves_employee_period"))
	assert.False(t, dberr.IsExclusionViolation(err, "other"))
	assert.False(t, dberr.IsExclusionViolation(errors.New("boom")))
}

func TestIsStorageUnavailable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"undefined table", &pgconn.PgError{Code: "42P01"}, true},
		{"connection failure class", &pgconn.PgError{Code: "08006"}, true},
		{"bad conn", fmt.Errorf("query: %w", driver.ErrBadConn), true},
		{"sqlite missing table", errors.New("no such table: attendances"), true},
		{"constraint error", &pgconn.PgError{Code: "23505"}, false},
		{"nil", nil, false},
		{"record not found", gorm.ErrRecordNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dberr.IsStorageUnavailable(tt.err))
		})
	}
}
