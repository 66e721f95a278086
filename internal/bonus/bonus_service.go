package bonus

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"time"

	bonuserrors "go-payroll/internal/bonus/errors"
	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=bonus_service.go -destination=mock/bonus_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateBonusRequest) (BonusResponse, error)
	GetByID(ctx context.Context, id string) (BonusResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]BonusResponse, error)
	GetByStatus(ctx context.Context, status string) ([]BonusResponse, error)
	Update(ctx context.Context, id string, req UpdateBonusRequest) (BonusResponse, error)
	Approve(ctx context.Context, id string) (BonusResponse, error)
	MarkPaid(ctx context.Context, id string, paymentDate string) (BonusResponse, error)
	Cancel(ctx context.Context, id string) (BonusResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *gorm.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	outbox kafka.OutboxRepository,
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
		logger: logger.Named("bonus.service"),
	}
}

func validateBonusAmounts(amount float64, isTaxable bool, taxAmount float64) error {
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return bonuserrors.ErrInvalidAmount
	}
	if taxAmount < 0 || math.IsNaN(taxAmount) || math.IsInf(taxAmount, 0) {
		return bonuserrors.ErrInvalidAmount
	}
	if isTaxable && taxAmount > amount {
		return bonuserrors.ErrInvalidAmount
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CreateBonusRequest) (BonusResponse, error) {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return BonusResponse{}, apperror.InvalidField("employee_id")
	}

	if !isValidBonusType(req.BonusType) {
		return BonusResponse{}, bonuserrors.ErrInvalidBonusType
	}

	if err := validateBonusAmounts(req.Amount, req.IsTaxable, req.TaxAmount); err != nil {
		return BonusResponse{}, err
	}

	b := &EmployeeBonus{
		ID:            uuid.New(),
		EmployeeID:    employeeID,
		BonusType:     req.BonusType,
		Amount:        req.Amount,
		IsTaxable:     req.IsTaxable,
		TaxAmount:     req.TaxAmount,
		NetAmount:     netAmount(req.Amount, req.IsTaxable, req.TaxAmount),
		PaymentStatus: StatusPending,
		Remarks:       req.Remarks,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, b); err != nil {
			return apperror.Persistence(err)
		}
		return nil
	})
	if err != nil {
		return BonusResponse{}, err
	}

	s.logger.Info("bonus created",
		zap.String("bonus_id", b.ID.String()),
		zap.String("employee_id", employeeID.String()),
		zap.String("bonus_type", b.BonusType),
		zap.Float64("net_amount", b.NetAmount),
	)

	return mapToResponse(*b), nil
}

func (s *service) GetByID(ctx context.Context, id string) (BonusResponse, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BonusResponse{}, bonuserrors.ErrBonusNotFound
		}
		return BonusResponse{}, apperror.Persistence(err)
	}
	return mapToResponse(*b), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) ([]BonusResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, apperror.InvalidField("employee_id")
	}

	bonuses, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, apperror.Persistence(err)
	}
	return mapToListResponse(bonuses), nil
}

func (s *service) GetByStatus(ctx context.Context, status string) ([]BonusResponse, error) {
	switch status {
	case StatusPending, StatusApproved, StatusPaid, StatusCancelled:
	default:
		return nil, apperror.InvalidField("status")
	}

	bonuses, err := s.repo.FindByStatus(ctx, status)
	if err != nil {
		return nil, apperror.Persistence(err)
	}
	return mapToListResponse(bonuses), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateBonusRequest) (BonusResponse, error) {
	if !isValidBonusType(req.BonusType) {
		return BonusResponse{}, bonuserrors.ErrInvalidBonusType
	}

	if err := validateBonusAmounts(req.Amount, req.IsTaxable, req.TaxAmount); err != nil {
		return BonusResponse{}, err
	}

	var b *EmployeeBonus
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		var err error
		b, err = qtx.FindByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return bonuserrors.ErrBonusNotFound
			}
			return apperror.Persistence(err)
		}

		if b.PaymentStatus != StatusPending {
			return bonuserrors.ErrNotPending
		}

		b.BonusType = req.BonusType
		b.Amount = req.Amount
		b.IsTaxable = req.IsTaxable
		b.TaxAmount = req.TaxAmount
		b.NetAmount = netAmount(req.Amount, req.IsTaxable, req.TaxAmount)
		b.Remarks = req.Remarks

		if err := qtx.Update(ctx, b); err != nil {
			return apperror.Persistence(err)
		}
		return nil
	})
	if err != nil {
		return BonusResponse{}, err
	}

	return mapToResponse(*b), nil
}

func (s *service) Approve(ctx context.Context, id string) (BonusResponse, error) {
	var b *EmployeeBonus
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		var err error
		b, err = qtx.FindByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return bonuserrors.ErrBonusNotFound
			}
			return apperror.Persistence(err)
		}

		if b.PaymentStatus != StatusPending {
			return bonuserrors.ErrNotPending
		}

		now := time.Now().UTC()
		b.PaymentStatus = StatusApproved
		b.ApprovedAt = &now

		if err := qtx.Update(ctx, b); err != nil {
			return apperror.Persistence(err)
		}
		return nil
	})
	if err != nil {
		return BonusResponse{}, err
	}

	s.logger.Info("bonus approved",
		zap.String("bonus_id", b.ID.String()),
		zap.String("employee_id", b.EmployeeID.String()),
	)

	return mapToResponse(*b), nil
}

// MarkPaid requires a prior approval; a pending bonus cannot jump straight
// to paid.
func (s *service) MarkPaid(ctx context.Context, id string, paymentDate string) (BonusResponse, error) {
	// an empty payment date means paid today
	paidOn := time.Now().UTC().Truncate(24 * time.Hour)
	if paymentDate != "" {
		var err error
		paidOn, err = time.Parse("2006-01-02", paymentDate)
		if err != nil {
			return BonusResponse{}, bonuserrors.ErrInvalidPaymentDate
		}
	}

	var b *EmployeeBonus
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		var err error
		b, err = qtx.FindByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return bonuserrors.ErrBonusNotFound
			}
			return apperror.Persistence(err)
		}

		if b.PaymentStatus != StatusApproved {
			return bonuserrors.ErrNotApproved
		}

		b.PaymentStatus = StatusPaid
		b.PaymentDate = &paidOn

		if err := qtx.Update(ctx, b); err != nil {
			return apperror.Persistence(err)
		}

		return s.enqueuePaidEvent(ctx, tx, b)
	})
	if err != nil {
		return BonusResponse{}, err
	}

	s.logger.Info("bonus paid",
		zap.String("bonus_id", b.ID.String()),
		zap.String("employee_id", b.EmployeeID.String()),
		zap.Float64("net_amount", b.NetAmount),
	)

	return mapToResponse(*b), nil
}

func (s *service) enqueuePaidEvent(ctx context.Context, tx *gorm.DB, b *EmployeeBonus) error {
	payload, err := json.Marshal(events.BonusPaidEvent{
		EventType:  events.TypeBonusPaid,
		EmployeeID: b.EmployeeID.String(),
		BonusID:    b.ID.String(),
		NetAmount:  b.NetAmount,
		PaidAt:     b.PaymentDate.Format("2006-01-02"),
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return apperror.Persistence(err)
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "bonus",
		AggregateID:   b.EmployeeID.String(),
		EventType:     events.TypeBonusPaid,
		Topic:         events.CompensationTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) Cancel(ctx context.Context, id string) (BonusResponse, error) {
	var b *EmployeeBonus
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		var err error
		b, err = qtx.FindByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return bonuserrors.ErrBonusNotFound
			}
			return apperror.Persistence(err)
		}

		if b.PaymentStatus != StatusPending && b.PaymentStatus != StatusApproved {
			return bonuserrors.ErrNotCancellable
		}

		b.PaymentStatus = StatusCancelled

		if err := qtx.Update(ctx, b); err != nil {
			return apperror.Persistence(err)
		}
		return nil
	})
	if err != nil {
		return BonusResponse{}, err
	}

	return mapToResponse(*b), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		b, err := qtx.FindByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return bonuserrors.ErrBonusNotFound
			}
			return apperror.Persistence(err)
		}

		if b.PaymentStatus != StatusPending {
			return bonuserrors.ErrNotPending
		}

		if err := qtx.Delete(ctx, id); err != nil {
			return apperror.Persistence(err)
		}
		return nil
	})
}

func mapToResponse(b EmployeeBonus) BonusResponse {
	resp := BonusResponse{
		ID:         b.ID.String(),
		EmployeeID: b.EmployeeID.String(),

		BonusType: b.BonusType,
		Amount:    b.Amount,
		IsTaxable: b.IsTaxable,
		TaxAmount: b.TaxAmount,
		NetAmount: b.NetAmount,

		PaymentStatus: b.PaymentStatus,
		Remarks:       b.Remarks,
	}

	if b.PaymentDate != nil {
		resp.PaymentDate = b.PaymentDate.Format("2006-01-02")
	}
	if b.ApprovedAt != nil {
		resp.ApprovedAt = b.ApprovedAt.UTC().Format(time.RFC3339)
	}

	return resp
}

func mapToListResponse(bonuses []EmployeeBonus) []BonusResponse {
	res := make([]BonusResponse, len(bonuses))
	for i, b := range bonuses {
		res[i] = mapToResponse(b)
	}
	return res
}
