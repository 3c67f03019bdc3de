// Package application собирает зависимости и запускает модули сервиса.
package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"wishly/internal/config"
	"wishly/internal/domain/service/claim"
	"wishly/internal/domain/service/notification"
	"wishly/internal/domain/service/registry"
	"wishly/internal/domain/service/suggestion"
	"wishly/internal/domain/service/view"
	"wishly/internal/infrastructure/email"
	"wishly/internal/infrastructure/identity"
	"wishly/internal/infrastructure/persistence"
	"wishly/internal/infrastructure/viewcache"
	"wishly/internal/server"
	"wishly/internal/worker"
	"wishly/pkg/application/connectors"
	"wishly/pkg/application/modules"
	"wishly/pkg/contextx"
	"wishly/pkg/httpx"
	"wishly/pkg/logx"
	"wishly/pkg/middlewarex"
	"wishly/pkg/probe"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

//nolint:funlen
func Run(ctx context.Context, cfg config.Config) error {
	pg := &connectors.Postgres{
		DSN:             cfg.Postgres.DSN,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	}
	db := pg.Client(ctx)
	defer pg.Close(ctx)

	if cfg.Postgres.AutoMigrate {
		if err := persistence.Migrate(ctx, db.DB, persistence.MigrateUp); err != nil {
			return fmt.Errorf("persistence.Migrate: %w", err)
		}
	}

	rds := &connectors.Redis{
		Username:       cfg.Redis.Username,
		Password:       cfg.Redis.Password,
		Address:        cfg.Redis.Address,
		DatabaseNumber: cfg.Redis.DB,
		PoolSize:       cfg.Redis.PoolSize,
	}
	redisClient := rds.Client(ctx)
	defer rds.Close(ctx)

	// repositories
	users := persistence.NewUserRepository(db)
	events := persistence.NewEventRepository(db)
	gifts := persistence.NewGiftRepository(db)
	claims := persistence.NewClaimRepository(db)
	notifications := persistence.NewNotificationRepository(db)
	suggestions := persistence.NewSuggestionRepository(db)

	var views *view.Service

	switch cfg.Cache.Backend {
	case config.CacheBackendRedis:
		views = view.NewService(events, gifts, users, viewcache.NewRedis(redisClient), cfg.Cache.ViewTTL)
	case config.CacheBackendLocal:
		views = view.NewService(events, gifts, users, viewcache.NewLocal(), cfg.Cache.ViewTTL)
	default:
		return fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}

	// side effects
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Address,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}

	taskClient := asynq.NewClient(redisOpt)
	defer func() {
		if err := taskClient.Close(); err != nil {
			logger(ctx).Error("taskClient.Close", logx.Error(err))
		}
	}()

	enqueuer := worker.NewEnqueuer(taskClient, cfg.Tasks.EnqueueTimeout)

	mailer := email.NewClient(
		cfg.Email.APIURL,
		cfg.Email.APIKey,
		cfg.Email.From,
		cfg.Email.Timeout,
		httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
		httpx.WithLogFieldMaxLen(cfg.HTTP.LogFieldMaxLen),
	)

	// services
	notificationService := notification.NewService(notifications)
	claimService := claim.NewService(gifts, claims, users, enqueuer, views, cfg.App.PublicURL)
	registryService := registry.NewService(events, gifts, views)
	suggestionService := suggestion.NewService(suggestions, events, users, enqueuer, views)

	handlers := worker.NewHandlers(notificationService, mailer)

	authenticator := identity.NewAuthenticator(
		cfg.Auth.JWTSecret,
		cfg.Auth.SessionCookie,
		users,
		cfg.Auth.SessionCacheTTL,
	)

	srv := server.NewServer(
		server.NewClaimServer(claimService),
		server.NewNotificationServer(notificationService),
		server.NewRegistryServer(registryService),
		server.NewViewServer(views),
		server.NewSuggestionServer(suggestionService),
	)

	router := server.NewRouter(srv, server.RouterOptions{
		Resolver:       authenticator,
		Masker:         logx.NewSensitiveDataMasker(),
		LogFieldMaxLen: cfg.HTTP.LogFieldMaxLen,
		ClaimLimiter:   middlewarex.NewRateLimiter(cfg.Claim.RatePerMinute, cfg.Claim.Burst),
	})

	taskLogger, err := newTaskLogger(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("newTaskLogger: %w", err)
	}
	defer taskLogger.Sync() //nolint:errcheck

	g, ctx := errgroup.WithContext(ctx)

	modules.HTTPServer{
		ListenAddress:   cfg.HTTP.ListenAddress,
		Handler:         router,
		ShutdownTimeout: cfg.HTTP.ShutdownTimeout,
	}.Run(ctx, g)

	modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.App.ProbeListenAddress,
		Checks: map[string]probe.Check{
			"postgres": pg.Check,
			"redis":    rds.Check,
		},
	}.Run(ctx, g)

	modules.MetricServer{ListenAddress: cfg.App.MetricsListenAddress}.Run(ctx, g)

	modules.AsynqServer{
		Redis:       redisOpt,
		Queues:      modules.AsynqQueues{worker.QueueDefault: 1},
		Concurrency: cfg.Tasks.Concurrency,
		Logger:      taskLogger,
	}.Run(ctx, g, handlers.Routes()...)

	logger(ctx).Info(
		"application started",
		slog.String("name", cfg.App.Name),
		slog.String("version", cfg.App.Version),
		slog.String("cache", cfg.Cache.Backend),
	)

	if err = g.Wait(); err != nil {
		return fmt.Errorf("g.Wait: %w", err)
	}

	return nil
}
