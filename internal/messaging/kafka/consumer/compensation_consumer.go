package consumer

import (
	"context"
	"encoding/json"

	"go-payroll/internal/bootstrap"
	"go-payroll/internal/compensation"
	"go-payroll/internal/events"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeCompensationEvents tails the compensation topic, drops stale cache
// entries for the affected employee, and records an audit entry per event.
func ConsumeCompensationEvents(
	ctx context.Context,
	reader *kafkago.Reader,
	cache *redis.Client,
	auditLogger bootstrap.AuditLogger,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.compensation")
	log.Info("compensation consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("compensation consumer stopped")
				return
			}
			log.Error("fetch compensation message failed", zap.Error(err))
			continue
		}

		eventType := headerValue(msg, "event_type")
		if err := handleCompensationMessage(ctx, eventType, msg.Value, cache, auditLogger); err != nil {
			log.Error("handle compensation event failed",
				zap.String("event_type", eventType),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit compensation message failed", zap.Error(err))
			continue
		}

		log.Info("compensation event handled", zap.String("event_type", eventType))
	}
}

func handleCompensationMessage(
	ctx context.Context,
	eventType string,
	payload []byte,
	cache *redis.Client,
	auditLogger bootstrap.AuditLogger,
) error {
	switch eventType {
	case events.TypeCompensationApplied:
		var event events.CompensationAppliedEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			return err
		}

		if cache != nil {
			_ = cache.Del(ctx, compensation.CurrentCacheKey(event.EmployeeID)).Err()
		}

		auditLogger.Log(ctx, bootstrap.AuditLog{
			Action:  "COMPENSATION_APPLIED",
			Message: "New current compensation recorded",
			Meta: map[string]any{
				"employee_id":     event.EmployeeID,
				"compensation_id": event.CompensationID,
				"gross_salary":    event.GrossSalary,
				"effective_from":  event.EffectiveFrom,
			},
		})

	case events.TypeIncrementRejected:
		var event events.IncrementRejectedEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			return err
		}

		auditLogger.Log(ctx, bootstrap.AuditLog{
			Action:  "INCREMENT_REJECTED",
			Message: "Salary increment rejected",
			Meta: map[string]any{
				"employee_id":  event.EmployeeID,
				"increment_id": event.IncrementID,
				"reason":       event.Reason,
			},
		})

	case events.TypeBonusPaid:
		var event events.BonusPaidEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			return err
		}

		auditLogger.Log(ctx, bootstrap.AuditLog{
			Action:  "BONUS_PAID",
			Message: "Bonus disbursed",
			Meta: map[string]any{
				"employee_id": event.EmployeeID,
				"bonus_id":    event.BonusID,
				"net_amount":  event.NetAmount,
				"paid_at":     event.PaidAt,
			},
		})
	}

	return nil
}

func headerValue(msg kafkago.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
