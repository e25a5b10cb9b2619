package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"costmanager/internal/amqp"
	"costmanager/internal/audit"
	"costmanager/internal/config"
	apphttp "costmanager/internal/http"
	"costmanager/internal/log"
	"costmanager/internal/storage"
)

func main() {
	cfg := config.Load()

	logger := log.New(log.Config{
		Level:     log.ParseLevel(cfg.LogLevel),
		Component: log.ComponentAdmin,
	})
	log.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open record store", log.FieldError, err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	recorder, closeRecorder, err := buildRecorder(cfg, repo)
	if err != nil {
		logger.Error("Failed to initialize audit recorder", log.FieldError, err)
		os.Exit(1)
	}
	defer closeRecorder()

	srv := apphttp.NewAdminServer(":"+cfg.AdminPort, cfg.Team, repo, recorder, logger.WithComponent(log.ComponentHTTP))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Admin service listening", "port", cfg.AdminPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Admin service error", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Admin service stopped")
}

func buildRecorder(cfg *config.Config, repo *storage.SQLiteRepository) (audit.Recorder, func(), error) {
	if !cfg.AuditViaAMQP() {
		return audit.NewStoreRecorder(repo), func() {}, nil
	}

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		return nil, nil, err
	}
	return audit.NewAMQPRecorder(client), func() { _ = client.Close() }, nil
}
