package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/hszk-dev/vidshare/internal/api/handler"
	"github.com/hszk-dev/vidshare/internal/api/middleware"
	"github.com/hszk-dev/vidshare/internal/config"
	"github.com/hszk-dev/vidshare/internal/infrastructure/cache"
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

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	logger.Info("connected to Redis")

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

	pool := pgClient.Pool()
	videoRepo := postgres.NewVideoRepository(pool)
	wordRepo := postgres.NewWordIndexRepository(pool)
	tagRepo := postgres.NewTagRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	subRepo := postgres.NewSubscriptionRepository(pool)
	historyRepo := postgres.NewHistoryRepository(pool)

	redisCache := cache.NewRedisCache(redisClient)
	invalidator := usecase.NewCacheInvalidator(redisCache)

	videoSvc := usecase.NewVideoService(videoRepo, wordRepo, tagRepo, userRepo, hostClient, invalidator, redisCache, cfg.Cache.TTL, logger)
	searchSvc := usecase.NewCachedSearchService(
		usecase.NewSearchService(wordRepo, tagRepo),
		redisCache,
		cfg.Cache.TTL,
		logger,
	)
	userSvc := usecase.NewUserService(userRepo, redisCache, cfg.Cache.TTL, logger)
	subSvc := usecase.NewSubscriptionService(subRepo, userRepo, redisCache, cfg.Cache.TTL, invalidator, logger)
	tagSvc := usecase.NewTagService(tagRepo, redisCache, cfg.Cache.TTL, invalidator, logger)
	historySvc := usecase.NewHistoryService(historyRepo, videoRepo)

	r := setupRouter(routerDeps{
		logger:       logger,
		videos:       handler.NewVideoHandler(videoSvc),
		search:       handler.NewSearchHandler(searchSvc),
		users:        handler.NewUserHandler(userSvc),
		subscription: handler.NewSubscriptionHandler(subSvc),
		tags:         handler.NewTagHandler(tagSvc),
		history:      handler.NewHistoryHandler(historySvc),
		admin:        handler.NewAdminHandler(queueClient),
		health: handler.NewHealthHandler(map[string]handler.Pinger{
			"postgres": pgClient,
			"redis":    pingAdapter{func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }},
		}),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down server", slog.String("signal", sig.String()))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

type pingAdapter struct {
	ping func(ctx context.Context) error
}

func (p pingAdapter) Ping(ctx context.Context) error { return p.ping(ctx) }

type routerDeps struct {
	logger       *slog.Logger
	videos       *handler.VideoHandler
	search       *handler.SearchHandler
	users        *handler.UserHandler
	subscription *handler.SubscriptionHandler
	tags         *handler.TagHandler
	history      *handler.HistoryHandler
	admin        *handler.AdminHandler
	health       *handler.HealthHandler
}

func setupRouter(deps routerDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.logger))
	r.Use(middleware.Recoverer(deps.logger))

	r.Get("/health", deps.health.Live)
	r.Get("/ready", deps.health.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Route("/videos", func(r chi.Router) {
			r.Post("/", deps.videos.Create)
			r.Get("/", deps.videos.List)
			r.Get("/slug/{slug}", deps.videos.GetBySlug)
			r.Route("/{mediaID}", func(r chi.Router) {
				r.Get("/", deps.videos.Get)
				r.Patch("/", deps.videos.Edit)
				r.Delete("/", deps.videos.Delete)
				r.Post("/views", deps.videos.RegisterView)
				r.Post("/stars", deps.videos.AddStar)
			})
		})

		r.Get("/search", deps.search.Search)

		r.Route("/users", func(r chi.Router) {
			r.Post("/", deps.users.Register)
			r.Route("/{userID}", func(r chi.Router) {
				r.Get("/", deps.users.GetProfile)
				r.Get("/subscriptions", deps.subscription.List)
				r.Post("/subscriptions", deps.subscription.Subscribe)
				r.Delete("/subscriptions/{toUser}", deps.subscription.Unsubscribe)
				r.Get("/history", deps.history.List)
				r.Post("/history", deps.history.RecordWatch)
			})
		})

		r.Route("/tags", func(r chi.Router) {
			r.Get("/", deps.tags.List)
			r.Post("/", deps.tags.Create)
		})

		r.Post("/admin/renewals", deps.admin.TriggerRenewal)
	})

	return r
}
