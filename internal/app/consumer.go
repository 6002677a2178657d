package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/events"
	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/messaging/kafka/consumer"
	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/reconciliation"
	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/shared/connection"
)

// RunConsumer mendengarkan event payment untuk menjaga cache stats
// rekonsiliasi tetap segar.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	reconciliationRepo := reconciliation.NewRepository(gormDB)
	reconciliationService := reconciliation.NewService(reconciliationRepo, redisClient)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.PaymentRecordedTopic,
		GroupID:        "payroll-reconciliation-stats",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumePaymentRecorded(ctx, reader, reconciliationService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
