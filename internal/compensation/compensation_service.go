package compensation

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	compensationerrors "go-payroll/internal/compensation/errors"
	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/salary"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewCompensationInput carries a fully computed breakdown into the ledger.
// Callers own validation and the breakdown math; the service owns the
// single-current bookkeeping.
type NewCompensationInput struct {
	EmployeeID     uuid.UUID
	Breakdown      salary.Breakdown
	EffectiveFrom  time.Time
	RevisionReason string
	Notes          string
}

//go:generate mockgen -source=compensation_service.go -destination=mock/compensation_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateCompensationRequest) (CompensationResponse, error)
	GetCurrent(ctx context.Context, employeeID string) (CompensationResponse, error)
	GetHistory(ctx context.Context, employeeID string) ([]CompensationResponse, error)
	GetByID(ctx context.Context, id string) (CompensationResponse, error)
	Delete(ctx context.Context, id string) error

	// ApplyWithinTx records a new current compensation inside the caller's
	// transaction, superseding the previous current row if any.
	ApplyWithinTx(ctx context.Context, tx *gorm.DB, input NewCompensationInput) (*CompensationRecord, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	outbox kafka.OutboxRepository
	engine *salary.Engine
	logger *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	outbox kafka.OutboxRepository,
	engine *salary.Engine,
	loggers ...*zap.Logger,
) Service {
	logger := zap.L()
	if len(loggers) > 0 && loggers[0] != nil {
		logger = loggers[0]
	}

	return &service{
		db:     db,
		repo:   repo,
		outbox: outbox,
		engine: engine,
		logger: logger.Named("compensation.service"),
	}
}

func (s *service) Create(ctx context.Context, req CreateCompensationRequest) (CompensationResponse, error) {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return CompensationResponse{}, apperror.InvalidField("employee_id")
	}

	effectiveFrom, err := time.Parse("2006-01-02", req.EffectiveFrom)
	if err != nil {
		return CompensationResponse{}, compensationerrors.ErrInvalidEffectiveDate
	}

	breakdown, err := s.engine.Compute(req.GrossSalary, salary.Options{
		BasicPct:        req.BasicPct,
		HRAPct:          req.HRAPct,
		OtherAllowances: req.OtherAllowances,
		OtherDeductions: req.OtherDeductions,
	})
	if err != nil {
		return CompensationResponse{}, err
	}

	var created *CompensationRecord
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		created, err = s.ApplyWithinTx(ctx, tx, NewCompensationInput{
			EmployeeID:     employeeID,
			Breakdown:      breakdown,
			EffectiveFrom:  effectiveFrom,
			RevisionReason: req.RevisionReason,
			Notes:          req.Notes,
		})
		return err
	})
	if err != nil {
		return CompensationResponse{}, err
	}

	contextutil.GetLogger(ctx, s.logger).Info("compensation recorded",
		zap.String("employee_id", employeeID.String()),
		zap.String("compensation_id", created.ID.String()),
		zap.Float64("gross_salary", created.GrossSalary),
	)

	return mapToResponse(*created), nil
}

func (s *service) ApplyWithinTx(ctx context.Context, tx *gorm.DB, input NewCompensationInput) (*CompensationRecord, error) {
	qtx := s.repo.WithTx(tx)

	current, err := qtx.FindCurrentForUpdate(ctx, input.EmployeeID.String())
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.Persistence(err)
	}

	if err == nil {
		effectiveTo := input.EffectiveFrom.Format("2006-01-02")
		if err := qtx.Supersede(ctx, current.ID.String(), effectiveTo); err != nil {
			return nil, apperror.Persistence(err)
		}
	}

	record := &CompensationRecord{
		ID:         uuid.New(),
		EmployeeID: input.EmployeeID,

		BasicSalary:        input.Breakdown.BasicSalary,
		HRA:                input.Breakdown.HRA,
		DA:                 input.Breakdown.DA,
		SpecialAllowance:   input.Breakdown.SpecialAllowance,
		TransportAllowance: input.Breakdown.TransportAllowance,
		MedicalAllowance:   input.Breakdown.MedicalAllowance,
		OtherAllowances:    input.Breakdown.OtherAllowances,
		GrossSalary:        input.Breakdown.GrossSalary,

		ProfessionalTax: input.Breakdown.ProfessionalTax,
		ESI:             input.Breakdown.ESI,
		TDS:             input.Breakdown.TDS,
		OtherDeductions: input.Breakdown.OtherDeductions,
		TotalDeductions: input.Breakdown.TotalDeductions,
		NetSalary:       input.Breakdown.NetSalary,

		EffectiveFrom:  input.EffectiveFrom,
		IsCurrent:      true,
		RevisionReason: input.RevisionReason,
		Notes:          input.Notes,
	}

	if err := qtx.Create(ctx, record); err != nil {
		return nil, mapRepositoryError(err)
	}

	if err := s.enqueueAppliedEvent(ctx, tx, record); err != nil {
		return nil, err
	}

	return record, nil
}

func (s *service) enqueueAppliedEvent(ctx context.Context, tx *gorm.DB, record *CompensationRecord) error {
	payload, err := json.Marshal(events.CompensationAppliedEvent{
		EventType:      events.TypeCompensationApplied,
		EmployeeID:     record.EmployeeID.String(),
		CompensationID: record.ID.String(),
		GrossSalary:    record.GrossSalary,
		EffectiveFrom:  record.EffectiveFrom.Format("2006-01-02"),
		OccurredAt:     time.Now().UTC(),
	})
	if err != nil {
		return apperror.Persistence(err)
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "compensation",
		AggregateID:   record.EmployeeID.String(),
		EventType:     events.TypeCompensationApplied,
		Topic:         events.CompensationTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) GetCurrent(ctx context.Context, employeeID string) (CompensationResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return CompensationResponse{}, apperror.InvalidField("employee_id")
	}

	record, err := s.repo.FindCurrentByEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CompensationResponse{}, compensationerrors.ErrNoCurrentCompensation
		}
		return CompensationResponse{}, apperror.Persistence(err)
	}

	return mapToResponse(*record), nil
}

func (s *service) GetHistory(ctx context.Context, employeeID string) ([]CompensationResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, apperror.InvalidField("employee_id")
	}

	records, err := s.repo.HistoryByEmployee(ctx, employeeID)
	if err != nil {
		return nil, apperror.Persistence(err)
	}

	return mapToListResponse(records), nil
}

func (s *service) GetByID(ctx context.Context, id string) (CompensationResponse, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CompensationResponse{}, compensationerrors.ErrCompensationNotFound
		}
		return CompensationResponse{}, apperror.Persistence(err)
	}

	return mapToResponse(*record), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		record, err := qtx.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return compensationerrors.ErrCompensationNotFound
			}
			return apperror.Persistence(err)
		}

		if record.IsCurrent {
			return compensationerrors.ErrDeleteCurrentCompensation
		}

		if err := qtx.Delete(ctx, id); err != nil {
			return apperror.Persistence(err)
		}

		return nil
	})
}

func mapToResponse(record CompensationRecord) CompensationResponse {
	resp := CompensationResponse{
		ID:         record.ID.String(),
		EmployeeID: record.EmployeeID.String(),

		BasicSalary:        record.BasicSalary,
		HRA:                record.HRA,
		DA:                 record.DA,
		SpecialAllowance:   record.SpecialAllowance,
		TransportAllowance: record.TransportAllowance,
		MedicalAllowance:   record.MedicalAllowance,
		OtherAllowances:    record.OtherAllowances,
		GrossSalary:        record.GrossSalary,

		ProfessionalTax: record.ProfessionalTax,
		ESI:             record.ESI,
		TDS:             record.TDS,
		OtherDeductions: record.OtherDeductions,
		TotalDeductions: record.TotalDeductions,
		NetSalary:       record.NetSalary,

		EffectiveFrom:  record.EffectiveFrom.Format("2006-01-02"),
		IsCurrent:      record.IsCurrent,
		RevisionReason: record.RevisionReason,
		Notes:          record.Notes,
	}

	if record.EffectiveTo != nil {
		resp.EffectiveTo = record.EffectiveTo.Format("2006-01-02")
	}

	return resp
}

func mapToListResponse(records []CompensationRecord) []CompensationResponse {
	res := make([]CompensationResponse, len(records))
	for i, record := range records {
		res[i] = mapToResponse(record)
	}
	return res
}
