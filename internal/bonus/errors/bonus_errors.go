package bonuserrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrBonusNotFound = apperror.New(
		apperror.CodeNotFound,
		"bonus not found",
		http.StatusNotFound,
	)
	ErrInvalidBonusType = apperror.New(
		apperror.CodeInvalidInput,
		"invalid bonus_type",
		http.StatusBadRequest,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"amount must be positive and tax_amount must not exceed it",
		http.StatusBadRequest,
	)
	ErrNotPending = apperror.New(
		apperror.CodeInvalidState,
		"only pending bonuses can be modified",
		http.StatusConflict,
	)
	ErrNotApproved = apperror.New(
		apperror.CodeInvalidState,
		"only approved bonuses can be marked paid",
		http.StatusConflict,
	)
	ErrNotCancellable = apperror.New(
		apperror.CodeInvalidState,
		"only pending or approved bonuses can be cancelled",
		http.StatusConflict,
	)
	ErrInvalidPaymentDate = apperror.New(
		apperror.CodeInvalidInput,
		"payment_date must be a valid YYYY-MM-DD date",
		http.StatusBadRequest,
	)
)
