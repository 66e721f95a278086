package credentialerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrPasswordTooShort = apperror.New(
		apperror.CodeInvalidInput,
		"password must be at least 8 characters long",
		http.StatusBadRequest,
	)
	ErrPasswordNeedsUppercase = apperror.New(
		apperror.CodeInvalidInput,
		"password must contain at least one uppercase letter",
		http.StatusBadRequest,
	)
	ErrPasswordNeedsLowercase = apperror.New(
		apperror.CodeInvalidInput,
		"password must contain at least one lowercase letter",
		http.StatusBadRequest,
	)
	ErrPasswordNeedsDigit = apperror.New(
		apperror.CodeInvalidInput,
		"password must contain at least one digit",
		http.StatusBadRequest,
	)
	ErrPasswordNeedsSymbol = apperror.New(
		apperror.CodeInvalidInput,
		"password must contain at least one special character",
		http.StatusBadRequest,
	)
	ErrTemporaryPasswordTooShort = apperror.New(
		apperror.CodeInvalidInput,
		"temporary password length must be at least 8",
		http.StatusBadRequest,
	)
)
