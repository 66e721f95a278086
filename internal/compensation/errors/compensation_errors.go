package compensationerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrCompensationNotFound = apperror.New(
		apperror.CodeNotFound,
		"Compensation record not found",
		http.StatusNotFound,
	)

	ErrNoCurrentCompensation = apperror.New(
		apperror.CodeNotFound,
		"Employee has no current compensation",
		http.StatusNotFound,
	)

	ErrDeleteCurrentCompensation = apperror.New(
		apperror.CodeInvalidState,
		"The current compensation record cannot be deleted",
		http.StatusConflict,
	)

	ErrDuplicateCurrentCompensation = apperror.New(
		apperror.CodeConflict,
		"Employee already has a current compensation for this effective date",
		http.StatusConflict,
	)

	ErrInvalidEffectiveDate = apperror.New(
		apperror.CodeInvalidInput,
		"effective_from must be a valid YYYY-MM-DD date",
		http.StatusBadRequest,
	)
)
