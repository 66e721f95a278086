package auth

import (
	"context"
	"errors"
	"math"
	"net/http"
	"time"

	autherrors "go-payroll/internal/auth/errors"
	"go-payroll/internal/credential"
	"go-payroll/internal/employee"
	"go-payroll/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	MaxFailedAttempts = 5
	LockDuration      = 30 * time.Minute
)

// LoginOutcome is the externally visible result of a login attempt. An
// unknown or inactive email resolves to OutcomeInvalidCredentials so the
// response never reveals whether an account exists; the precise reason is
// only logged.
type LoginOutcome string

const (
	OutcomeSuccess            LoginOutcome = "success"
	OutcomeInvalidCredentials LoginOutcome = "invalid_credentials"
	OutcomeAccountLocked      LoginOutcome = "account_locked"
	OutcomePasswordNotSet     LoginOutcome = "password_not_set"
)

type LoginResult struct {
	Outcome               LoginOutcome
	Employee              *employee.Employee
	RequirePasswordChange bool
	AttemptsRemaining     int
	MinutesRemaining      int
}

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (LoginResult, error)

	ChangePassword(ctx context.Context, employeeID, oldPassword, newPassword string, isFirstLogin bool) error

	// SetTemporaryPassword is the administrator onboarding/reset path. An
	// empty password means "generate one". Returns the plaintext exactly
	// once; only the hash is stored.
	SetTemporaryPassword(ctx context.Context, employeeID, password string) (string, error)
}

type service struct {
	db     *gorm.DB
	repo   employee.Repository
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo employee.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	var result LoginResult

	err := s.db.Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		emp, err := qtx.FindActiveByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Same shape as a wrong password so responses cannot be
				// used to enumerate accounts.
				s.logger.Info("login rejected",
					zap.String("reason", "unknown_or_inactive_email"),
				)
				result = LoginResult{
					Outcome:           OutcomeInvalidCredentials,
					AttemptsRemaining: MaxFailedAttempts - 1,
				}
				return nil
			}
			return apperror.Persistence(err)
		}

		if emp.PasswordHash == "" {
			s.logger.Info("login rejected",
				zap.String("reason", "password_not_set"),
				zap.String("employee_id", emp.ID.String()),
			)
			result = LoginResult{Outcome: OutcomePasswordNotSet}
			return nil
		}

		now := time.Now().UTC()

		if emp.AccountLocked {
			if emp.LockedUntil != nil && !now.Before(*emp.LockedUntil) {
				// Lock window elapsed; clear lazily and let the attempt
				// proceed.
				if err := qtx.UpdateCredential(ctx, emp.ID.String(), map[string]any{
					"account_locked":        false,
					"failed_login_attempts": 0,
					"locked_until":          nil,
				}); err != nil {
					return apperror.Persistence(err)
				}
				emp.AccountLocked = false
				emp.FailedLoginAttempts = 0
				emp.LockedUntil = nil
			} else {
				minutes := 0
				if emp.LockedUntil != nil {
					minutes = int(math.Ceil(emp.LockedUntil.Sub(now).Minutes()))
				}
				s.logger.Info("login rejected",
					zap.String("reason", "account_locked"),
					zap.String("employee_id", emp.ID.String()),
					zap.Int("minutes_remaining", minutes),
				)
				result = LoginResult{
					Outcome:          OutcomeAccountLocked,
					MinutesRemaining: minutes,
				}
				return nil
			}
		}

		if credential.Verify(password, emp.PasswordHash) {
			if err := qtx.UpdateCredential(ctx, emp.ID.String(), map[string]any{
				"failed_login_attempts": 0,
				"account_locked":        false,
				"locked_until":          nil,
				"last_login_at":         now,
			}); err != nil {
				return apperror.Persistence(err)
			}

			s.logger.Info("login success", zap.String("employee_id", emp.ID.String()))
			result = LoginResult{
				Outcome:               OutcomeSuccess,
				Employee:              emp,
				RequirePasswordChange: emp.IsFirstLogin,
			}
			return nil
		}

		count, err := qtx.RecordFailedAttempt(ctx, emp.ID.String(), MaxFailedAttempts, now.Add(LockDuration))
		if err != nil {
			return apperror.Persistence(err)
		}

		remaining := MaxFailedAttempts - count
		if remaining < 0 {
			remaining = 0
		}
		s.logger.Info("login rejected",
			zap.String("reason", "wrong_password"),
			zap.String("employee_id", emp.ID.String()),
			zap.Int("failed_attempts", count),
		)
		result = LoginResult{
			Outcome:           OutcomeInvalidCredentials,
			AttemptsRemaining: remaining,
		}
		return nil
	})
	if err != nil {
		return LoginResult{}, err
	}

	return result, nil
}

func (s *service) ChangePassword(ctx context.Context, employeeID, oldPassword, newPassword string, isFirstLogin bool) error {
	if _, err := uuid.Parse(employeeID); err != nil {
		return autherrors.ErrInvalidEmployeeID
	}

	// Strength first: nothing is mutated for a weak password.
	if err := credential.ValidatePasswordStrength(newPassword); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		emp, err := qtx.FindByID(ctx, employeeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return autherrors.ErrEmployeeNotFound
			}
			return apperror.Persistence(err)
		}

		if !isFirstLogin {
			if emp.PasswordHash == "" {
				return autherrors.ErrPasswordNotSet
			}
			if !credential.Verify(oldPassword, emp.PasswordHash) {
				s.logger.Info("change password rejected",
					zap.String("reason", "wrong_old_password"),
					zap.String("employee_id", employeeID),
				)
				return autherrors.ErrWrongOldPassword
			}
		}

		hash, err := credential.Hash(newPassword)
		if err != nil {
			return apperror.Wrap(err, apperror.CodeInternalError, "failed to hash password", http.StatusInternalServerError)
		}

		// The only path that clears is_first_login.
		if err := qtx.UpdateCredential(ctx, employeeID, map[string]any{
			"password_hash":       hash,
			"is_first_login":      false,
			"password_changed_at": time.Now().UTC(),
		}); err != nil {
			return apperror.Persistence(err)
		}

		s.logger.Info("password changed", zap.String("employee_id", employeeID))
		return nil
	})
}

func (s *service) SetTemporaryPassword(ctx context.Context, employeeID, password string) (string, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return "", autherrors.ErrInvalidEmployeeID
	}

	if password == "" {
		generated, err := credential.GenerateTemporaryPassword(0)
		if err != nil {
			return "", err
		}
		password = generated
	} else if err := credential.ValidatePasswordStrength(password); err != nil {
		return "", err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		if _, err := qtx.FindByID(ctx, employeeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return autherrors.ErrEmployeeNotFound
			}
			return apperror.Persistence(err)
		}

		hash, err := credential.Hash(password)
		if err != nil {
			return apperror.Wrap(err, apperror.CodeInternalError, "failed to hash password", http.StatusInternalServerError)
		}

		// An admin reset also unlocks the account.
		if err := qtx.UpdateCredential(ctx, employeeID, map[string]any{
			"password_hash":         hash,
			"is_first_login":        true,
			"account_locked":        false,
			"failed_login_attempts": 0,
			"locked_until":          nil,
		}); err != nil {
			return apperror.Persistence(err)
		}

		s.logger.Info("temporary password issued", zap.String("employee_id", employeeID))
		return nil
	})
	if err != nil {
		return "", err
	}

	return password, nil
}
