package reviewerrors

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
	ErrInvalidReviewerID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid reviewer id",
		http.StatusBadRequest,
	)
	ErrSelfReview = apperror.New(
		apperror.CodeInvalidInput,
		"reviewer must be a different employee",
		http.StatusBadRequest,
	)
	ErrParticipantNotInCompany = apperror.New(
		apperror.CodeInvalidInput,
		"employee and reviewer must belong to this company",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"invalid review status",
		http.StatusBadRequest,
	)
	ErrInvalidGoalStatus = apperror.New(
		apperror.CodeInvalidInput,
		"goal status must be one of OPEN, ACHIEVED, MISSED",
		http.StatusBadRequest,
	)
	ErrInvalidProgress = apperror.New(
		apperror.CodeInvalidInput,
		"progress must be between 0 and 100",
		http.StatusBadRequest,
	)
	ErrReviewNotFound = apperror.New(
		apperror.CodeNotFound,
		"review not found",
		http.StatusNotFound,
	)
	ErrInvalidTransition = apperror.New(
		apperror.CodeInvalidState,
		"review status can only move one step forward",
		http.StatusUnprocessableEntity,
	)
	ErrReviewCompleted = apperror.New(
		apperror.CodeInvalidState,
		"completed reviews cannot be changed",
		http.StatusUnprocessableEntity,
	)
)
