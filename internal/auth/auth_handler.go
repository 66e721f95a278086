package auth

import (
	"fmt"
	"net/http"

	autherrors "go-payroll/internal/auth/errors"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("auth.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("auth request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	result, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	switch result.Outcome {
	case OutcomeSuccess:
		employeeID := result.Employee.ID.String()
		accessToken, err := generateToken(employeeID, accessTokenTTL)
		if err != nil {
			h.writeServiceError(c, autherrors.ErrTokenGenerationFailed)
			return
		}
		refreshToken, err := generateToken(employeeID, refreshTokenTTL)
		if err != nil {
			h.writeServiceError(c, autherrors.ErrTokenGenerationFailed)
			return
		}

		response.Success(c, http.StatusOK, gin.H{
			"access_token":  accessToken,
			"refresh_token": refreshToken,
			"employee": LoginResponse{
				EmployeeID:            employeeID,
				Email:                 result.Employee.Email,
				FullName:              result.Employee.FullName,
				RequirePasswordChange: result.RequirePasswordChange,
			},
		}, nil)

	case OutcomeAccountLocked:
		response.Error(c, http.StatusUnauthorized, "ACCOUNT_LOCKED",
			fmt.Sprintf("Account is temporarily locked. Try again in %d minutes", result.MinutesRemaining),
			gin.H{"minutes_remaining": result.MinutesRemaining})

	case OutcomePasswordNotSet:
		response.Error(c, http.StatusConflict, apperror.CodeInvalidState,
			"No password has been set for this account. Contact your administrator", nil)

	default:
		// invalid credentials and unknown accounts share one message
		response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized,
			"Invalid email or password",
			gin.H{"attempts_remaining": result.AttemptsRemaining})
	}
}

func (h *Handler) ChangePassword(c *gin.Context) {
	employeeID := c.GetString("employee_id")
	if employeeID == "" {
		response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Authentication is required", nil)
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	err := h.service.ChangePassword(c.Request.Context(), employeeID, req.OldPassword, req.NewPassword, req.IsFirstLogin)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Password updated"}, nil)
}

func (h *Handler) SetTemporaryPassword(c *gin.Context) {
	var req TemporaryPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	password, err := h.service.SetTemporaryPassword(c.Request.Context(), req.EmployeeID, req.Password)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, TemporaryPasswordResponse{
		EmployeeID: req.EmployeeID,
		Password:   password,
	}, nil)
}
