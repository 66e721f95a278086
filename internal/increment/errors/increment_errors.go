package incrementerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrIncrementNotFound = apperror.New(
		apperror.CodeNotFound,
		"salary increment not found",
		http.StatusNotFound,
	)
	ErrInvalidIncrementType = apperror.New(
		apperror.CodeInvalidInput,
		"invalid increment_type",
		http.StatusBadRequest,
	)
	ErrInvalidBasicAmount = apperror.New(
		apperror.CodeInvalidInput,
		"previous_basic and new_basic must be non-negative, new_basic must be positive",
		http.StatusBadRequest,
	)
	ErrZeroPreviousBasic = apperror.New(
		apperror.CodeInvalidInput,
		"increment_percentage cannot be derived when previous_basic is zero",
		http.StatusBadRequest,
	)
	ErrNotPending = apperror.New(
		apperror.CodeInvalidState,
		"only pending increments can be modified",
		http.StatusConflict,
	)
	ErrAlreadyFinalized = apperror.New(
		apperror.CodeInvalidState,
		"increment has already been applied or rejected",
		http.StatusConflict,
	)
	ErrRejectionReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"rejection_reason is required when rejecting an increment",
		http.StatusBadRequest,
	)
)
