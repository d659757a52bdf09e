package attendance

import (
	"errors"

	attendanceerrors "go-hr-portal/internal/attendance/errors"
	"go-hr-portal/internal/shared/apperror"
	"go-hr-portal/internal/shared/dberr"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return attendanceerrors.ErrAttendanceNotFound
	case dberr.IsUniqueViolation(err, "uq_attendance_employee_date"):
		return attendanceerrors.ErrAttendanceExists
	case dberr.IsStorageUnavailable(err):
		return apperror.Wrap(err, apperror.CodeServiceUnavailable, apperror.ErrServiceUnavailable.Message, apperror.ErrServiceUnavailable.HTTPStatus)
	}

	return err
}
