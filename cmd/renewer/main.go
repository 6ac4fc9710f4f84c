package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/hszk-dev/vidshare/internal/config"
	"github.com/hszk-dev/vidshare/internal/domain/repository"
	"github.com/hszk-dev/vidshare/internal/infrastructure/filehost"
	"github.com/hszk-dev/vidshare/internal/infrastructure/postgres"
	"github.com/hszk-dev/vidshare/internal/infrastructure/queue"
	"github.com/hszk-dev/vidshare/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	pgClient, err := postgres.NewClient(ctx, postgres.DefaultClientConfig(cfg.Database.DSN()))
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	defer pgClient.Close()
	logger.Info("connected to PostgreSQL")

	queueClient, err := queue.NewClient(ctx, queue.DefaultClientConfig(cfg.RabbitMQ.URL()))
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	defer queueClient.Close()
	logger.Info("connected to RabbitMQ")

	hostClient := filehost.NewClient(filehost.ClientConfig{
		BaseURL:      cfg.FileHost.BaseURL,
		BotToken:     cfg.FileHost.BotToken,
		Timeout:      cfg.FileHost.Timeout,
		ProbeTimeout: cfg.FileHost.ProbeTimeout,
	})

	videoRepo := postgres.NewVideoRepository(pgClient.Pool())
	renewalSvc := usecase.NewRenewalService(
		videoRepo,
		hostClient,
		hostClient,
		usecase.RenewalConfig{
			PageSize:    cfg.Renewer.PageSize,
			MaxInFlight: int64(cfg.Renewer.MaxInFlight),
		},
		logger,
	)

	var wg sync.WaitGroup
	errCh := make(chan error, 2)

	sweep := func(reason string) {
		wg.Add(1)
		defer wg.Done()

		logger.Info("starting link renewal sweep", slog.String("reason", reason))
		if err := renewalSvc.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error("link renewal sweep failed",
				slog.String("reason", reason),
				slog.String("error", err.Error()))
		}
	}

	// First sweep runs immediately so a restart never leaves links
	// stale for a full interval.
	go func() {
		sweep("startup")

		ticker := time.NewTicker(cfg.Renewer.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sweep("schedule")
			}
		}
	}()

	// On-demand sweeps arrive through the queue.
	go func() {
		err := queueClient.ConsumeRenewalTasks(ctx, func(task repository.RenewalTask) error {
			logger.Info("renewal task received",
				slog.String("reason", task.Reason),
				slog.Time("requested_at", task.RequestedAt))
			sweep(task.Reason)
			return nil
		})
		if err != nil && ctx.Err() == nil {
			errCh <- fmt.Errorf("consumer error: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down renewer", slog.String("signal", sig.String()))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Renewer.ShutdownTimeout)
	defer shutdownCancel()

	cancel()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logger.Info("in-flight sweep completed")
	case <-shutdownCtx.Done():
		logger.Warn("shutdown timeout exceeded, sweep interrupted")
	}

	logger.Info("renewer stopped")
	return nil
}
