package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-payroll/internal/auth"
	autherrors "go-payroll/internal/auth/errors"
	"go-payroll/internal/credential"
	"go-payroll/internal/employee"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// fakeEmployeeRepository keeps one employee in memory and mirrors the
// atomic counter semantics of the SQL implementation.
type fakeEmployeeRepository struct {
	emp       *employee.Employee
	findErr   error
	updateErr error
}

func (f *fakeEmployeeRepository) WithTx(tx *gorm.DB) employee.Repository { return f }

func (f *fakeEmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	if f.emp == nil || f.emp.ID.String() != id {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *f.emp
	return &cp, nil
}

func (f *fakeEmployeeRepository) FindActiveByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	if f.emp == nil || !f.emp.IsActive() {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *f.emp
	return &cp, nil
}

func (f *fakeEmployeeRepository) UpdateCredential(ctx context.Context, id string, patch map[string]any) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if v, ok := patch["password_hash"]; ok {
		f.emp.PasswordHash = v.(string)
	}
	if v, ok := patch["is_first_login"]; ok {
		f.emp.IsFirstLogin = v.(bool)
	}
	if v, ok := patch["failed_login_attempts"]; ok {
		f.emp.FailedLoginAttempts = v.(int)
	}
	if v, ok := patch["account_locked"]; ok {
		f.emp.AccountLocked = v.(bool)
	}
	if v, ok := patch["locked_until"]; ok {
		if v == nil {
			f.emp.LockedUntil = nil
		} else {
			t := v.(time.Time)
			f.emp.LockedUntil = &t
		}
	}
	if v, ok := patch["last_login_at"]; ok {
		t := v.(time.Time)
		f.emp.LastLoginAt = &t
	}
	if v, ok := patch["password_changed_at"]; ok {
		t := v.(time.Time)
		f.emp.PasswordChangedAt = &t
	}
	return nil
}

func (f *fakeEmployeeRepository) RecordFailedAttempt(ctx context.Context, id string, maxAttempts int, lockUntil time.Time) (int, error) {
	if f.updateErr != nil {
		return 0, f.updateErr
	}
	f.emp.FailedLoginAttempts++
	if f.emp.FailedLoginAttempts >= maxAttempts {
		f.emp.AccountLocked = true
		f.emp.LockedUntil = &lockUntil
	}
	return f.emp.FailedLoginAttempts, nil
}

type serviceDeps struct {
	sqlMock sqlmock.Sqlmock
	service auth.Service
	repo    *fakeEmployeeRepository
}

func setupServiceTest(t *testing.T, emp *employee.Employee) *serviceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)

	repo := &fakeEmployeeRepository{emp: emp}
	svc := auth.NewService(gdb, repo)

	return &serviceDeps{sqlMock: sqlMock, service: svc, repo: repo}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func activeEmployee(t *testing.T, password string) *employee.Employee {
	t.Helper()

	hash := ""
	if password != "" {
		var err error
		hash, err = credential.Hash(password)
		assert.NoError(t, err)
	}

	return &employee.Employee{
		ID:               uuid.New(),
		FullName:         "Asha Rao",
		Email:            "asha.rao@example.com",
		EmploymentStatus: employee.StatusActive,
		PasswordHash:     hash,
	}
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success resets counters and stamps last login", func(t *testing.T) {
		emp := activeEmployee(t, "Corr3ct!Pass")
		emp.FailedLoginAttempts = 3
		deps := setupServiceTest(t, emp)
		expectTx(t, deps.sqlMock, true)

		result, err := deps.service.Login(ctx, emp.Email, "Corr3ct!Pass")

		assert.NoError(t, err)
		assert.Equal(t, auth.OutcomeSuccess, result.Outcome)
		assert.Equal(t, 0, deps.repo.emp.FailedLoginAttempts)
		assert.NotNil(t, deps.repo.emp.LastLoginAt)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("first login flags a required password change", func(t *testing.T) {
		emp := activeEmployee(t, "Corr3ct!Pass")
		emp.IsFirstLogin = true
		deps := setupServiceTest(t, emp)
		expectTx(t, deps.sqlMock, true)

		result, err := deps.service.Login(ctx, emp.Email, "Corr3ct!Pass")

		assert.NoError(t, err)
		assert.Equal(t, auth.OutcomeSuccess, result.Outcome)
		assert.True(t, result.RequirePasswordChange)
	})

	t.Run("wrong password counts down attempts", func(t *testing.T) {
		emp := activeEmployee(t, "Corr3ct!Pass")
		deps := setupServiceTest(t, emp)
		expectTx(t, deps.sqlMock, true)

		result, err := deps.service.Login(ctx, emp.Email, "wrong")

		assert.NoError(t, err)
		assert.Equal(t, auth.OutcomeInvalidCredentials, result.Outcome)
		assert.Equal(t, auth.MaxFailedAttempts-1, result.AttemptsRemaining)
	})

	t.Run("unknown email is indistinguishable from a wrong password", func(t *testing.T) {
		deps := setupServiceTest(t, nil)
		expectTx(t, deps.sqlMock, true)

		result, err := deps.service.Login(ctx, "ghost@example.com", "whatever")

		assert.NoError(t, err)
		assert.Equal(t, auth.OutcomeInvalidCredentials, result.Outcome)
		assert.Equal(t, auth.MaxFailedAttempts-1, result.AttemptsRemaining)
	})

	t.Run("inactive employee is indistinguishable from a wrong password", func(t *testing.T) {
		emp := activeEmployee(t, "Corr3ct!Pass")
		emp.EmploymentStatus = employee.StatusResigned
		deps := setupServiceTest(t, emp)
		expectTx(t, deps.sqlMock, true)

		result, err := deps.service.Login(ctx, emp.Email, "Corr3ct!Pass")

		assert.NoError(t, err)
		assert.Equal(t, auth.OutcomeInvalidCredentials, result.Outcome)
	})

	t.Run("empty hash reports password not set", func(t *testing.T) {
		emp := activeEmployee(t, "")
		deps := setupServiceTest(t, emp)
		expectTx(t, deps.sqlMock, true)

		result, err := deps.service.Login(ctx, emp.Email, "anything")

		assert.NoError(t, err)
		assert.Equal(t, auth.OutcomePasswordNotSet, result.Outcome)
	})

	t.Run("five straight failures lock the account even for the right password", func(t *testing.T) {
		emp := activeEmployee(t, "Corr3ct!Pass")
		deps := setupServiceTest(t, emp)

		for i := 0; i < auth.MaxFailedAttempts; i++ {
			expectTx(t, deps.sqlMock, true)
			result, err := deps.service.Login(ctx, emp.Email, "wrong")
			assert.NoError(t, err)
			assert.Equal(t, auth.OutcomeInvalidCredentials, result.Outcome)
			assert.Equal(t, auth.MaxFailedAttempts-i-1, result.AttemptsRemaining)
		}

		assert.True(t, deps.repo.emp.AccountLocked)

		expectTx(t, deps.sqlMock, true)
		result, err := deps.service.Login(ctx, emp.Email, "Corr3ct!Pass")

		assert.NoError(t, err)
		assert.Equal(t, auth.OutcomeAccountLocked, result.Outcome)
		assert.Greater(t, result.MinutesRemaining, 0)
		assert.LessOrEqual(t, result.MinutesRemaining, 30)
	})

	t.Run("expired lock clears lazily and the login succeeds", func(t *testing.T) {
		emp := activeEmployee(t, "Corr3ct!Pass")
		past := time.Now().UTC().Add(-time.Minute)
		emp.AccountLocked = true
		emp.FailedLoginAttempts = auth.MaxFailedAttempts
		emp.LockedUntil = &past
		deps := setupServiceTest(t, emp)
		expectTx(t, deps.sqlMock, true)

		result, err := deps.service.Login(ctx, emp.Email, "Corr3ct!Pass")

		assert.NoError(t, err)
		assert.Equal(t, auth.OutcomeSuccess, result.Outcome)
		assert.False(t, deps.repo.emp.AccountLocked)
		assert.Equal(t, 0, deps.repo.emp.FailedLoginAttempts)
	})

	t.Run("locked rejection does not consume an attempt", func(t *testing.T) {
		emp := activeEmployee(t, "Corr3ct!Pass")
		until := time.Now().UTC().Add(10 * time.Minute)
		emp.AccountLocked = true
		emp.FailedLoginAttempts = auth.MaxFailedAttempts
		emp.LockedUntil = &until
		deps := setupServiceTest(t, emp)
		expectTx(t, deps.sqlMock, true)

		result, err := deps.service.Login(ctx, emp.Email, "wrong")

		assert.NoError(t, err)
		assert.Equal(t, auth.OutcomeAccountLocked, result.Outcome)
		assert.Equal(t, auth.MaxFailedAttempts, deps.repo.emp.FailedLoginAttempts)
	})

	t.Run("store failure propagates", func(t *testing.T) {
		emp := activeEmployee(t, "Corr3ct!Pass")
		deps := setupServiceTest(t, emp)
		deps.repo.findErr = errors.New("connection refused")
		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Login(ctx, emp.Email, "Corr3ct!Pass")

		assert.Error(t, err)
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("success stores a fresh hash and clears first login", func(t *testing.T) {
		emp := activeEmployee(t, "OldPass1!")
		emp.IsFirstLogin = false
		oldHash := emp.PasswordHash
		deps := setupServiceTest(t, emp)
		expectTx(t, deps.sqlMock, true)

		err := deps.service.ChangePassword(ctx, emp.ID.String(), "OldPass1!", "NewPass1!", false)

		assert.NoError(t, err)
		assert.NotEqual(t, oldHash, deps.repo.emp.PasswordHash)
		assert.False(t, deps.repo.emp.IsFirstLogin)
		assert.NotNil(t, deps.repo.emp.PasswordChangedAt)
		assert.True(t, credential.Verify("NewPass1!", deps.repo.emp.PasswordHash))
	})

	t.Run("first login skips the old password check", func(t *testing.T) {
		emp := activeEmployee(t, "TempPass1!")
		emp.IsFirstLogin = true
		deps := setupServiceTest(t, emp)
		expectTx(t, deps.sqlMock, true)

		err := deps.service.ChangePassword(ctx, emp.ID.String(), "", "NewPass1!", true)

		assert.NoError(t, err)
		assert.False(t, deps.repo.emp.IsFirstLogin)
	})

	t.Run("wrong old password", func(t *testing.T) {
		emp := activeEmployee(t, "OldPass1!")
		deps := setupServiceTest(t, emp)
		expectTx(t, deps.sqlMock, false)

		err := deps.service.ChangePassword(ctx, emp.ID.String(), "NotTheOld1!", "NewPass1!", false)

		assert.ErrorIs(t, err, autherrors.ErrWrongOldPassword)
	})

	t.Run("weak password rejected before any read", func(t *testing.T) {
		emp := activeEmployee(t, "OldPass1!")
		deps := setupServiceTest(t, emp)

		err := deps.service.ChangePassword(ctx, emp.ID.String(), "OldPass1!", "short", false)

		assert.Error(t, err)
		assert.True(t, credential.Verify("OldPass1!", deps.repo.emp.PasswordHash), "hash must be untouched")
	})

	t.Run("invalid employee id", func(t *testing.T) {
		deps := setupServiceTest(t, nil)

		err := deps.service.ChangePassword(ctx, "abc", "x", "NewPass1!", false)

		assert.ErrorIs(t, err, autherrors.ErrInvalidEmployeeID)
	})

	t.Run("unknown employee", func(t *testing.T) {
		deps := setupServiceTest(t, nil)
		expectTx(t, deps.sqlMock, false)

		err := deps.service.ChangePassword(ctx, uuid.NewString(), "x", "NewPass1!", false)

		assert.ErrorIs(t, err, autherrors.ErrEmployeeNotFound)
	})
}

func TestAuthService_SetTemporaryPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("generates a password when none is supplied", func(t *testing.T) {
		emp := activeEmployee(t, "OldPass1!")
		emp.AccountLocked = true
		emp.FailedLoginAttempts = auth.MaxFailedAttempts
		deps := setupServiceTest(t, emp)
		expectTx(t, deps.sqlMock, true)

		password, err := deps.service.SetTemporaryPassword(ctx, emp.ID.String(), "")

		assert.NoError(t, err)
		assert.Len(t, password, credential.DefaultTempPasswordLength)
		assert.NoError(t, credential.ValidatePasswordStrength(password))
		assert.True(t, credential.Verify(password, deps.repo.emp.PasswordHash))
		assert.True(t, deps.repo.emp.IsFirstLogin)
		assert.False(t, deps.repo.emp.AccountLocked)
		assert.Equal(t, 0, deps.repo.emp.FailedLoginAttempts)
	})

	t.Run("accepts a supplied strong password", func(t *testing.T) {
		emp := activeEmployee(t, "")
		deps := setupServiceTest(t, emp)
		expectTx(t, deps.sqlMock, true)

		password, err := deps.service.SetTemporaryPassword(ctx, emp.ID.String(), "Onboard1!")

		assert.NoError(t, err)
		assert.Equal(t, "Onboard1!", password)
		assert.True(t, credential.Verify("Onboard1!", deps.repo.emp.PasswordHash))
	})

	t.Run("weak supplied password rejected", func(t *testing.T) {
		emp := activeEmployee(t, "")
		deps := setupServiceTest(t, emp)

		_, err := deps.service.SetTemporaryPassword(ctx, emp.ID.String(), "weak")

		assert.Error(t, err)
	})

	t.Run("unknown employee", func(t *testing.T) {
		deps := setupServiceTest(t, nil)
		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.SetTemporaryPassword(ctx, uuid.NewString(), "")

		assert.ErrorIs(t, err, autherrors.ErrEmployeeNotFound)
	})
}
