package leave

import (
	"errors"

	leaveerrors "go-hr-portal/internal/leave/errors"
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
		return leaveerrors.ErrLeaveNotFound
	case dberr.IsExclusionViolation(err, "ex_leaves_employee_period"):
		return leaveerrors.ErrLeaveOverlap
	case dberr.IsStorageUnavailable(err):
		return apperror.Wrap(err, apperror.CodeServiceUnavailable, apperror.ErrServiceUnavailable.Message, apperror.ErrServiceUnavailable.HTTPStatus)
	}

	return err
}
