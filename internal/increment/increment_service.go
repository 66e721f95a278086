package increment

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"time"

	"go-payroll/internal/compensation"
	"go-payroll/internal/events"
	incrementerrors "go-payroll/internal/increment/errors"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/salary"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=increment_service.go -destination=mock/increment_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateIncrementRequest) (IncrementResponse, error)
	GetByID(ctx context.Context, id string) (IncrementResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]IncrementResponse, error)
	GetByStatus(ctx context.Context, status string) ([]IncrementResponse, error)
	Update(ctx context.Context, id string, req UpdateIncrementRequest) (IncrementResponse, error)
	Approve(ctx context.Context, id string, req ApproveIncrementRequest) (IncrementResponse, error)
	Reject(ctx context.Context, id string, reason string) (IncrementResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db           *gorm.DB
	repo         Repository
	compensation compensation.Service
	outbox       kafka.OutboxRepository
	engine       *salary.Engine
	logger       *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	compensationSvc compensation.Service,
	outbox kafka.OutboxRepository,
	engine *salary.Engine,
	loggers ...*zap.Logger,
) Service {
	logger := zap.L()
	if len(loggers) > 0 && loggers[0] != nil {
		logger = loggers[0]
	}

	return &service{
		db:           db,
		repo:         repo,
		compensation: compensationSvc,
		outbox:       outbox,
		engine:       engine,
		logger:       logger.Named("increment.service"),
	}
}

// derivePercentage is the only place increment_percentage is computed, so
// every row carries the same two-decimal rounding.
func derivePercentage(previousBasic, newBasic float64) (float64, error) {
	if previousBasic == 0 {
		return 0, incrementerrors.ErrZeroPreviousBasic
	}
	pct := (newBasic - previousBasic) / previousBasic * 100
	return math.Round(pct*100) / 100, nil
}

func validateAmounts(previousBasic, newBasic float64) error {
	if previousBasic < 0 || newBasic <= 0 ||
		math.IsNaN(previousBasic) || math.IsNaN(newBasic) ||
		math.IsInf(previousBasic, 0) || math.IsInf(newBasic, 0) {
		return incrementerrors.ErrInvalidBasicAmount
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CreateIncrementRequest) (IncrementResponse, error) {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return IncrementResponse{}, apperror.InvalidField("employee_id")
	}

	if !isValidIncrementType(req.IncrementType) {
		return IncrementResponse{}, incrementerrors.ErrInvalidIncrementType
	}

	if err := validateAmounts(req.PreviousBasic, req.NewBasic); err != nil {
		return IncrementResponse{}, err
	}

	effectiveDate, err := time.Parse("2006-01-02", req.EffectiveDate)
	if err != nil {
		return IncrementResponse{}, apperror.InvalidField("effective_date")
	}

	percentage, err := derivePercentage(req.PreviousBasic, req.NewBasic)
	if err != nil {
		return IncrementResponse{}, err
	}

	inc := &SalaryIncrement{
		ID:                  uuid.New(),
		EmployeeID:          employeeID,
		IncrementType:       req.IncrementType,
		PreviousBasic:       req.PreviousBasic,
		NewBasic:            req.NewBasic,
		IncrementAmount:     req.NewBasic - req.PreviousBasic,
		IncrementPercentage: percentage,
		Status:              StatusPending,
		EffectiveDate:       effectiveDate,
		Remarks:             req.Remarks,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, inc); err != nil {
			return apperror.Persistence(err)
		}
		return nil
	})
	if err != nil {
		return IncrementResponse{}, err
	}

	s.logger.Info("increment created",
		zap.String("increment_id", inc.ID.String()),
		zap.String("employee_id", employeeID.String()),
		zap.String("increment_type", inc.IncrementType),
		zap.Float64("increment_percentage", inc.IncrementPercentage),
	)

	return mapToResponse(*inc), nil
}

func (s *service) GetByID(ctx context.Context, id string) (IncrementResponse, error) {
	inc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return IncrementResponse{}, incrementerrors.ErrIncrementNotFound
		}
		return IncrementResponse{}, apperror.Persistence(err)
	}
	return mapToResponse(*inc), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) ([]IncrementResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, apperror.InvalidField("employee_id")
	}

	incs, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, apperror.Persistence(err)
	}
	return mapToListResponse(incs), nil
}

func (s *service) GetByStatus(ctx context.Context, status string) ([]IncrementResponse, error) {
	switch status {
	case StatusPending, StatusRejected, StatusApplied:
	default:
		return nil, apperror.InvalidField("status")
	}

	incs, err := s.repo.FindByStatus(ctx, status)
	if err != nil {
		return nil, apperror.Persistence(err)
	}
	return mapToListResponse(incs), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateIncrementRequest) (IncrementResponse, error) {
	if !isValidIncrementType(req.IncrementType) {
		return IncrementResponse{}, incrementerrors.ErrInvalidIncrementType
	}

	if err := validateAmounts(req.PreviousBasic, req.NewBasic); err != nil {
		return IncrementResponse{}, err
	}

	effectiveDate, err := time.Parse("2006-01-02", req.EffectiveDate)
	if err != nil {
		return IncrementResponse{}, apperror.InvalidField("effective_date")
	}

	percentage, err := derivePercentage(req.PreviousBasic, req.NewBasic)
	if err != nil {
		return IncrementResponse{}, err
	}

	var inc *SalaryIncrement
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		inc, err = qtx.FindByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return incrementerrors.ErrIncrementNotFound
			}
			return apperror.Persistence(err)
		}

		if inc.Status != StatusPending {
			return incrementerrors.ErrNotPending
		}

		inc.IncrementType = req.IncrementType
		inc.PreviousBasic = req.PreviousBasic
		inc.NewBasic = req.NewBasic
		inc.IncrementAmount = req.NewBasic - req.PreviousBasic
		inc.IncrementPercentage = percentage
		inc.EffectiveDate = effectiveDate
		inc.Remarks = req.Remarks

		if err := qtx.Update(ctx, inc); err != nil {
			return apperror.Persistence(err)
		}
		return nil
	})
	if err != nil {
		return IncrementResponse{}, err
	}

	return mapToResponse(*inc), nil
}

// Approve fuses approval and application: the new compensation becomes
// current and the increment moves straight to APPLIED in one transaction.
func (s *service) Approve(ctx context.Context, id string, req ApproveIncrementRequest) (IncrementResponse, error) {
	var inc *SalaryIncrement

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		var err error
		inc, err = qtx.FindByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return incrementerrors.ErrIncrementNotFound
			}
			return apperror.Persistence(err)
		}

		if inc.Status != StatusPending {
			return incrementerrors.ErrNotPending
		}

		gross := req.GrossSalary
		if gross == 0 {
			gross = inc.NewBasic / salary.DefaultBasicPct
		}

		effectiveFrom := inc.EffectiveDate
		if req.EffectiveFrom != "" {
			effectiveFrom, err = time.Parse("2006-01-02", req.EffectiveFrom)
			if err != nil {
				return apperror.InvalidField("effective_from")
			}
		}

		breakdown, err := s.engine.Compute(gross, salary.Options{
			OtherAllowances: req.OtherAllowances,
			OtherDeductions: req.OtherDeductions,
		})
		if err != nil {
			return err
		}

		revisionReason := req.RevisionReason
		if revisionReason == "" {
			revisionReason = "increment " + inc.IncrementType
		}

		record, err := s.compensation.ApplyWithinTx(ctx, tx, compensation.NewCompensationInput{
			EmployeeID:     inc.EmployeeID,
			Breakdown:      breakdown,
			EffectiveFrom:  effectiveFrom,
			RevisionReason: revisionReason,
			Notes:          req.Notes,
		})
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		inc.Status = StatusApplied
		inc.CompensationID = &record.ID
		inc.ApprovedAt = &now

		if err := qtx.Update(ctx, inc); err != nil {
			return apperror.Persistence(err)
		}
		return nil
	})
	if err != nil {
		return IncrementResponse{}, err
	}

	s.logger.Info("increment applied",
		zap.String("increment_id", inc.ID.String()),
		zap.String("employee_id", inc.EmployeeID.String()),
		zap.String("compensation_id", inc.CompensationID.String()),
	)

	return mapToResponse(*inc), nil
}

func (s *service) Reject(ctx context.Context, id string, reason string) (IncrementResponse, error) {
	if reason == "" {
		return IncrementResponse{}, incrementerrors.ErrRejectionReasonRequired
	}

	var inc *SalaryIncrement
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		var err error
		inc, err = qtx.FindByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return incrementerrors.ErrIncrementNotFound
			}
			return apperror.Persistence(err)
		}

		if inc.Status != StatusPending {
			return incrementerrors.ErrNotPending
		}

		inc.Status = StatusRejected
		inc.RejectionReason = &reason

		if err := qtx.Update(ctx, inc); err != nil {
			return apperror.Persistence(err)
		}

		return s.enqueueRejectedEvent(ctx, tx, inc, reason)
	})
	if err != nil {
		return IncrementResponse{}, err
	}

	s.logger.Info("increment rejected",
		zap.String("increment_id", inc.ID.String()),
		zap.String("employee_id", inc.EmployeeID.String()),
	)

	return mapToResponse(*inc), nil
}

func (s *service) enqueueRejectedEvent(ctx context.Context, tx *gorm.DB, inc *SalaryIncrement, reason string) error {
	payload, err := json.Marshal(events.IncrementRejectedEvent{
		EventType:   events.TypeIncrementRejected,
		EmployeeID:  inc.EmployeeID.String(),
		IncrementID: inc.ID.String(),
		Reason:      reason,
		OccurredAt:  time.Now().UTC(),
	})
	if err != nil {
		return apperror.Persistence(err)
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "increment",
		AggregateID:   inc.EmployeeID.String(),
		EventType:     events.TypeIncrementRejected,
		Topic:         events.CompensationTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		inc, err := qtx.FindByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return incrementerrors.ErrIncrementNotFound
			}
			return apperror.Persistence(err)
		}

		if inc.Status != StatusPending {
			return incrementerrors.ErrNotPending
		}

		if err := qtx.Delete(ctx, id); err != nil {
			return apperror.Persistence(err)
		}
		return nil
	})
}

func mapToResponse(inc SalaryIncrement) IncrementResponse {
	resp := IncrementResponse{
		ID:         inc.ID.String(),
		EmployeeID: inc.EmployeeID.String(),

		IncrementType:       inc.IncrementType,
		PreviousBasic:       inc.PreviousBasic,
		NewBasic:            inc.NewBasic,
		IncrementAmount:     inc.IncrementAmount,
		IncrementPercentage: inc.IncrementPercentage,

		Status:        inc.Status,
		EffectiveDate: inc.EffectiveDate.Format("2006-01-02"),
		Remarks:       inc.Remarks,
	}

	if inc.RejectionReason != nil {
		resp.RejectionReason = *inc.RejectionReason
	}
	if inc.CompensationID != nil {
		resp.CompensationID = inc.CompensationID.String()
	}
	if inc.ApprovedAt != nil {
		resp.ApprovedAt = inc.ApprovedAt.UTC().Format(time.RFC3339)
	}

	return resp
}

func mapToListResponse(incs []SalaryIncrement) []IncrementResponse {
	res := make([]IncrementResponse, len(incs))
	for i, inc := range incs {
		res[i] = mapToResponse(inc)
	}
	return res
}
