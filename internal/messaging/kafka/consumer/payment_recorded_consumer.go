package consumer

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/events"
	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/reconciliation"
)

// ConsumePaymentRecorded keeps the reconciliation stats cache fresh:
// setiap payment/reversal baru meng-invalidate cache stats milik company tsb.
// Duplikat message aman karena invalidasi bersifat idempotent.
func ConsumePaymentRecorded(
	ctx context.Context,
	reader *kafkago.Reader,
	reconService reconciliation.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.payment_recorded")
	log.Info("payment recorded consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("payment recorded consumer stopped")
				return
			}
			log.Error("fetch payment recorded message failed", zap.Error(err))
			continue
		}

		var event events.PaymentRecordedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode payment_recorded event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := reconService.InvalidateStats(ctx, event.CompanyID); err != nil {
			log.Error("invalidate reconciliation stats failed",
				zap.String("company_id", event.CompanyID),
				zap.String("payment_id", event.PaymentID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit payment recorded message failed", zap.Error(err))
			continue
		}

		log.Info("reconciliation stats invalidated",
			zap.String("company_id", event.CompanyID),
			zap.String("payment_id", event.PaymentID),
			zap.Bool("reversal", event.Reversal),
		)
	}
}
