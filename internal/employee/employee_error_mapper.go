package employee

import (
	"errors"

	employeeerrors "go-hr-portal/internal/employee/errors"
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
		return employeeerrors.ErrEmployeeNotFound
	case dberr.IsUniqueViolation(err, "uq_employee_number"):
		return employeeerrors.ErrEmployeeNumberAlreadyExists
	case dberr.IsStorageUnavailable(err):
		return apperror.Wrap(err, apperror.CodeServiceUnavailable, apperror.ErrServiceUnavailable.Message, apperror.ErrServiceUnavailable.HTTPStatus)
	}

	return err
}
