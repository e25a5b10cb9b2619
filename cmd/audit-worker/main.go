package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"costmanager/internal/amqp"
	"costmanager/internal/config"
	"costmanager/internal/log"
	"costmanager/internal/storage"
)

func main() {
	cfg := config.Load()

	logger := log.New(log.Config{
		Level:     log.ParseLevel(cfg.LogLevel),
		Component: log.ComponentWorker,
	})
	log.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	if !cfg.AuditViaAMQP() {
		logger.Error("AMQP_URL must be set for the audit worker")
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open record store", log.FieldError, err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to connect to AMQP broker", log.FieldError, err)
		os.Exit(1)
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Audit worker consuming", "queue", cfg.AMQPQueue)

	err = client.ConsumeAudit(ctx, func(msg *amqp.AuditMessage) error {
		entry := msg.AccessLog()
		if err := repo.CreateAccessLog(ctx, entry); err != nil {
			logger.ErrorContext(ctx, "Failed to persist audit entry",
				log.FieldError, err,
				log.FieldMethod, entry.Method,
				log.FieldPath, entry.URL,
			)
			return err
		}
		logger.DebugContext(ctx, "Audit entry persisted",
			log.FieldMethod, entry.Method,
			log.FieldPath, entry.URL,
			log.FieldStatusCode, entry.Status,
			log.FieldRequestID, msg.RequestID,
		)
		return nil
	})
	if err != nil && ctx.Err() == nil {
		logger.Error("Audit worker stopped with error", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Audit worker stopped")
}
