package developmenterrors

import (
	"net/http"

	"go-hr-portal/internal/shared/apperror"
)

var (
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidBadgeCode = apperror.New(
		apperror.CodeInvalidInput,
		"badge_code must be 2-50 characters of A-Z, 0-9 or _",
		http.StatusBadRequest,
	)
	ErrEmployeeNotInCompany = apperror.New(
		apperror.CodeInvalidInput,
		"employee does not belong to this company",
		http.StatusBadRequest,
	)
	ErrEnrollmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"enrollment not found",
		http.StatusNotFound,
	)
	ErrEnrollmentClosed = apperror.New(
		apperror.CodeInvalidState,
		"only ENROLLED courses can be completed",
		http.StatusUnprocessableEntity,
	)
	ErrBadgeAlreadyAwarded = apperror.New(
		apperror.CodeConflict,
		"badge already awarded to this employee",
		http.StatusConflict,
	)
)
