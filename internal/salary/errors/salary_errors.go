package salaryerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrInvalidGross = apperror.New(
		apperror.CodeInvalidInput,
		"monthly gross salary must be a positive amount",
		http.StatusBadRequest,
	)
	ErrInvalidPercentage = apperror.New(
		apperror.CodeInvalidInput,
		"component percentages must be between 0 and 1 and sum to at most 1",
		http.StatusBadRequest,
	)
	ErrNegativeAdjustment = apperror.New(
		apperror.CodeInvalidInput,
		"other allowances and deductions must not be negative",
		http.StatusBadRequest,
	)
)
