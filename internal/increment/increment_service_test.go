package increment_test

import (
	"context"
	"testing"
	"time"

	"go-payroll/internal/compensation"
	"go-payroll/internal/events"
	"go-payroll/internal/increment"
	incrementerrors "go-payroll/internal/increment/errors"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/salary"
	"go-payroll/internal/taxtable"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type fakeIncrementRepository struct {
	createFn            func(ctx context.Context, inc *increment.SalaryIncrement) error
	findByIDFn          func(ctx context.Context, id string) (*increment.SalaryIncrement, error)
	findByIDForUpdateFn func(ctx context.Context, id string) (*increment.SalaryIncrement, error)
	findByEmployeeFn    func(ctx context.Context, employeeID string) ([]increment.SalaryIncrement, error)
	findByStatusFn      func(ctx context.Context, status string) ([]increment.SalaryIncrement, error)
	updateFn            func(ctx context.Context, inc *increment.SalaryIncrement) error
	deleteFn            func(ctx context.Context, id string) error
}

func (f *fakeIncrementRepository) WithTx(tx *gorm.DB) increment.Repository {
	return f
}

func (f *fakeIncrementRepository) Create(ctx context.Context, inc *increment.SalaryIncrement) error {
	if f.createFn != nil {
		return f.createFn(ctx, inc)
	}
	return nil
}

func (f *fakeIncrementRepository) FindByID(ctx context.Context, id string) (*increment.SalaryIncrement, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeIncrementRepository) FindByIDForUpdate(ctx context.Context, id string) (*increment.SalaryIncrement, error) {
	if f.findByIDForUpdateFn != nil {
		return f.findByIDForUpdateFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeIncrementRepository) FindByEmployee(ctx context.Context, employeeID string) ([]increment.SalaryIncrement, error) {
	if f.findByEmployeeFn != nil {
		return f.findByEmployeeFn(ctx, employeeID)
	}
	return nil, nil
}

func (f *fakeIncrementRepository) FindByStatus(ctx context.Context, status string) ([]increment.SalaryIncrement, error) {
	if f.findByStatusFn != nil {
		return f.findByStatusFn(ctx, status)
	}
	return nil, nil
}

func (f *fakeIncrementRepository) Update(ctx context.Context, inc *increment.SalaryIncrement) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, inc)
	}
	return nil
}

func (f *fakeIncrementRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

type fakeCompensationService struct {
	applyFn func(ctx context.Context, tx *gorm.DB, input compensation.NewCompensationInput) (*compensation.CompensationRecord, error)
}

func (f *fakeCompensationService) Create(ctx context.Context, req compensation.CreateCompensationRequest) (compensation.CompensationResponse, error) {
	return compensation.CompensationResponse{}, nil
}
func (f *fakeCompensationService) GetCurrent(ctx context.Context, employeeID string) (compensation.CompensationResponse, error) {
	return compensation.CompensationResponse{}, nil
}
func (f *fakeCompensationService) GetHistory(ctx context.Context, employeeID string) ([]compensation.CompensationResponse, error) {
	return nil, nil
}
func (f *fakeCompensationService) GetByID(ctx context.Context, id string) (compensation.CompensationResponse, error) {
	return compensation.CompensationResponse{}, nil
}
func (f *fakeCompensationService) Delete(ctx context.Context, id string) error {
	return nil
}
func (f *fakeCompensationService) ApplyWithinTx(ctx context.Context, tx *gorm.DB, input compensation.NewCompensationInput) (*compensation.CompensationRecord, error) {
	if f.applyFn != nil {
		return f.applyFn(ctx, tx, input)
	}
	return &compensation.CompensationRecord{ID: uuid.New(), EmployeeID: input.EmployeeID, IsCurrent: true}, nil
}

type fakeOutboxRepository struct {
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepository) WithTx(tx *gorm.DB) kafka.OutboxRepository { return f }
func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}
func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }
func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type serviceDeps struct {
	sqlMock      sqlmock.Sqlmock
	service      increment.Service
	repo         *fakeIncrementRepository
	compensation *fakeCompensationService
	outbox       *fakeOutboxRepository
}

func setupServiceTest(t *testing.T) *serviceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)

	repo := &fakeIncrementRepository{}
	compSvc := &fakeCompensationService{}
	outbox := &fakeOutboxRepository{}
	engine := salary.NewEngine(taxtable.Current())
	svc := increment.NewService(gdb, repo, compSvc, outbox, engine)

	return &serviceDeps{
		sqlMock:      sqlMock,
		service:      svc,
		repo:         repo,
		compensation: compSvc,
		outbox:       outbox,
	}
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

func TestIncrementService_Create(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()

	t.Run("derives amount and percentage", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		deps.repo.createFn = func(ctx context.Context, inc *increment.SalaryIncrement) error {
			assert.Equal(t, increment.StatusPending, inc.Status)
			assert.Equal(t, 5000.0, inc.IncrementAmount)
			assert.Equal(t, 25.0, inc.IncrementPercentage)
			return nil
		}

		resp, err := deps.service.Create(ctx, increment.CreateIncrementRequest{
			EmployeeID:    employeeID.String(),
			IncrementType: increment.TypeAnnual,
			PreviousBasic: 20000,
			NewBasic:      25000,
			EffectiveDate: "2026-04-01",
		})

		assert.NoError(t, err)
		assert.Equal(t, increment.StatusPending, resp.Status)
		assert.Equal(t, 25.0, resp.IncrementPercentage)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("percentage rounds to two decimals", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.Create(ctx, increment.CreateIncrementRequest{
			EmployeeID:    employeeID.String(),
			IncrementType: increment.TypePerformance,
			PreviousBasic: 30000,
			NewBasic:      31000,
			EffectiveDate: "2026-04-01",
		})

		assert.NoError(t, err)
		assert.Equal(t, 3.33, resp.IncrementPercentage)
	})

	t.Run("zero previous basic rejected", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Create(ctx, increment.CreateIncrementRequest{
			EmployeeID:    employeeID.String(),
			IncrementType: increment.TypeAnnual,
			PreviousBasic: 0,
			NewBasic:      25000,
			EffectiveDate: "2026-04-01",
		})

		assert.ErrorIs(t, err, incrementerrors.ErrZeroPreviousBasic)
	})

	t.Run("unknown increment type rejected", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Create(ctx, increment.CreateIncrementRequest{
			EmployeeID:    employeeID.String(),
			IncrementType: "RAISE",
			PreviousBasic: 20000,
			NewBasic:      25000,
			EffectiveDate: "2026-04-01",
		})

		assert.ErrorIs(t, err, incrementerrors.ErrInvalidIncrementType)
	})
}

func TestIncrementService_Approve(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()
	incrementID := uuid.New()

	pendingIncrement := func() *increment.SalaryIncrement {
		return &increment.SalaryIncrement{
			ID:            incrementID,
			EmployeeID:    employeeID,
			IncrementType: increment.TypePromotion,
			PreviousBasic: 20000,
			NewBasic:      24000,
			Status:        increment.StatusPending,
			EffectiveDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		}
	}

	t.Run("applies compensation and moves straight to applied", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*increment.SalaryIncrement, error) {
			assert.Equal(t, incrementID.String(), id)
			return pendingIncrement(), nil
		}

		compensationID := uuid.New()
		deps.compensation.applyFn = func(ctx context.Context, tx *gorm.DB, input compensation.NewCompensationInput) (*compensation.CompensationRecord, error) {
			assert.Equal(t, employeeID, input.EmployeeID)
			// gross derived from new_basic at the default 40% split
			assert.Equal(t, 60000.0, input.Breakdown.GrossSalary)
			assert.Equal(t, 24000.0, input.Breakdown.BasicSalary)
			assert.Equal(t, "2026-04-01", input.EffectiveFrom.Format("2006-01-02"))
			return &compensation.CompensationRecord{ID: compensationID, EmployeeID: employeeID, IsCurrent: true}, nil
		}

		var saved *increment.SalaryIncrement
		deps.repo.updateFn = func(ctx context.Context, inc *increment.SalaryIncrement) error {
			saved = inc
			return nil
		}

		resp, err := deps.service.Approve(ctx, incrementID.String(), increment.ApproveIncrementRequest{})

		assert.NoError(t, err)
		assert.Equal(t, increment.StatusApplied, resp.Status)
		assert.Equal(t, compensationID.String(), resp.CompensationID)
		assert.NotNil(t, saved.ApprovedAt)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("explicit gross overrides derivation", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*increment.SalaryIncrement, error) {
			return pendingIncrement(), nil
		}
		deps.compensation.applyFn = func(ctx context.Context, tx *gorm.DB, input compensation.NewCompensationInput) (*compensation.CompensationRecord, error) {
			assert.Equal(t, 65000.0, input.Breakdown.GrossSalary)
			return &compensation.CompensationRecord{ID: uuid.New(), EmployeeID: employeeID}, nil
		}

		_, err := deps.service.Approve(ctx, incrementID.String(), increment.ApproveIncrementRequest{
			GrossSalary: 65000,
		})

		assert.NoError(t, err)
	})

	t.Run("rejected increment cannot be approved", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		inc := pendingIncrement()
		inc.Status = increment.StatusRejected
		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*increment.SalaryIncrement, error) {
			return inc, nil
		}

		deps.compensation.applyFn = func(ctx context.Context, tx *gorm.DB, input compensation.NewCompensationInput) (*compensation.CompensationRecord, error) {
			t.Fatal("ledger must not be touched for a non-pending increment")
			return nil, nil
		}

		_, err := deps.service.Approve(ctx, incrementID.String(), increment.ApproveIncrementRequest{})

		assert.ErrorIs(t, err, incrementerrors.ErrNotPending)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("applied increment cannot be approved twice", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		inc := pendingIncrement()
		inc.Status = increment.StatusApplied
		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*increment.SalaryIncrement, error) {
			return inc, nil
		}

		_, err := deps.service.Approve(ctx, incrementID.String(), increment.ApproveIncrementRequest{})

		assert.ErrorIs(t, err, incrementerrors.ErrNotPending)
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Approve(ctx, uuid.NewString(), increment.ApproveIncrementRequest{})

		assert.ErrorIs(t, err, incrementerrors.ErrIncrementNotFound)
	})
}

func TestIncrementService_Reject(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()
	incrementID := uuid.New()

	t.Run("stores reason and publishes event", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*increment.SalaryIncrement, error) {
			return &increment.SalaryIncrement{
				ID:         incrementID,
				EmployeeID: employeeID,
				Status:     increment.StatusPending,
			}, nil
		}

		var published kafka.OutboxEvent
		deps.outbox.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
			published = event
			return nil
		}

		resp, err := deps.service.Reject(ctx, incrementID.String(), "budget freeze")

		assert.NoError(t, err)
		assert.Equal(t, increment.StatusRejected, resp.Status)
		assert.Equal(t, "budget freeze", resp.RejectionReason)
		assert.Equal(t, events.TypeIncrementRejected, published.EventType)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("empty reason rejected before any read", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Reject(ctx, incrementID.String(), "")

		assert.ErrorIs(t, err, incrementerrors.ErrRejectionReasonRequired)
	})

	t.Run("applied increment cannot be rejected", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*increment.SalaryIncrement, error) {
			return &increment.SalaryIncrement{
				ID:         incrementID,
				EmployeeID: employeeID,
				Status:     increment.StatusApplied,
			}, nil
		}

		_, err := deps.service.Reject(ctx, incrementID.String(), "too late")

		assert.ErrorIs(t, err, incrementerrors.ErrNotPending)
	})
}

func TestIncrementService_UpdateDelete(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()
	incrementID := uuid.New()

	t.Run("update recomputes derived fields", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*increment.SalaryIncrement, error) {
			return &increment.SalaryIncrement{
				ID:            incrementID,
				EmployeeID:    employeeID,
				PreviousBasic: 20000,
				NewBasic:      22000,
				Status:        increment.StatusPending,
			}, nil
		}

		resp, err := deps.service.Update(ctx, incrementID.String(), increment.UpdateIncrementRequest{
			IncrementType: increment.TypeCorrection,
			PreviousBasic: 20000,
			NewBasic:      23000,
			EffectiveDate: "2026-05-01",
		})

		assert.NoError(t, err)
		assert.Equal(t, 3000.0, resp.IncrementAmount)
		assert.Equal(t, 15.0, resp.IncrementPercentage)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("update refuses non-pending", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*increment.SalaryIncrement, error) {
			return &increment.SalaryIncrement{ID: incrementID, Status: increment.StatusRejected}, nil
		}

		_, err := deps.service.Update(ctx, incrementID.String(), increment.UpdateIncrementRequest{
			IncrementType: increment.TypeAnnual,
			PreviousBasic: 20000,
			NewBasic:      23000,
			EffectiveDate: "2026-05-01",
		})

		assert.ErrorIs(t, err, incrementerrors.ErrNotPending)
	})

	t.Run("delete refuses non-pending", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*increment.SalaryIncrement, error) {
			return &increment.SalaryIncrement{ID: incrementID, Status: increment.StatusApplied}, nil
		}

		err := deps.service.Delete(ctx, incrementID.String())

		assert.ErrorIs(t, err, incrementerrors.ErrNotPending)
	})

	t.Run("delete pending succeeds", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*increment.SalaryIncrement, error) {
			return &increment.SalaryIncrement{ID: incrementID, Status: increment.StatusPending}, nil
		}

		deleted := false
		deps.repo.deleteFn = func(ctx context.Context, id string) error {
			deleted = true
			return nil
		}

		err := deps.service.Delete(ctx, incrementID.String())

		assert.NoError(t, err)
		assert.True(t, deleted)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}
