package development

import (
	"errors"

	developmenterrors "go-hr-portal/internal/development/errors"
	"go-hr-portal/internal/shared/apperror"
	"go-hr-portal/internal/shared/dberr"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return developmenterrors.ErrEnrollmentNotFound
	case dberr.IsUniqueViolation(err, "uq_user_badges_employee_badge"):
		return developmenterrors.ErrBadgeAlreadyAwarded
	case dberr.IsStorageUnavailable(err):
		return apperror.Wrap(err, apperror.CodeServiceUnavailable, apperror.ErrServiceUnavailable.Message, apperror.ErrServiceUnavailable.HTTPStatus)
	default:
		return err
	}
}
