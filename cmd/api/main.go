// @title        School Event Hub API
// @version      1.0
// @description  Role-based school event catalog, registrations, reminders and assistant.
// @BasePath     /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"

	_ "github.com/schoolevents/eventhub/docs"
	"github.com/schoolevents/eventhub/internal/api"
	"github.com/schoolevents/eventhub/internal/api/handler"
	"github.com/schoolevents/eventhub/internal/core/ports"
	"github.com/schoolevents/eventhub/internal/core/service"
	mongostore "github.com/schoolevents/eventhub/internal/infrastructure/db/mongo"
	pgstore "github.com/schoolevents/eventhub/internal/infrastructure/db/postgres"
	redisstore "github.com/schoolevents/eventhub/internal/infrastructure/db/redis"
	"github.com/schoolevents/eventhub/internal/infrastructure/genai"
	"github.com/schoolevents/eventhub/internal/infrastructure/notify"
	"github.com/schoolevents/eventhub/internal/infrastructure/queue"
	"github.com/schoolevents/eventhub/internal/jobs"
	"github.com/schoolevents/eventhub/internal/pkg/config"
	"github.com/schoolevents/eventhub/pkg/logger"
)

const (
	serviceName     = "eventhub"
	shutdownTimeout = 10 * time.Second
	devJWTSecret    = "dev-secret-change-me"
)

// repositories is the set of store adapters selected by STORE_DRIVER.
type repositories struct {
	creds         ports.CredentialRepository
	users         ports.UserRepository
	events        ports.EventRepository
	registrations ports.RegistrationRepository
	reminders     ports.ReminderRepository
	check         handler.DependencyCheck
	close         func(ctx context.Context) error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New(logger.Options{})
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Development(),
		Service: serviceName,
		Env:     cfg.Env,
	})

	if cfg.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET not set, using development secret")
		cfg.JWTSecret = devJWTSecret
	}

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid display timezone")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("failed to open store")
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := repos.close(closeCtx); err != nil {
			log.Warn().Err(err).Msg("store close error")
		}
	}()

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Warn().Err(err).Msg("redis close error")
		}
	}()

	log.Info().
		Str("store", cfg.StoreDriver).
		Str("redis", cfg.Redis.Addr).
		Str("timezone", loc.String()).
		Msg("dependencies ready")

	// --- Core services ---
	hub := service.NewSessionHub()
	denylist := redisstore.NewTokenDenylist(rdb)

	resolver := service.NewRoleResolver(repos.users, hub, logger.Component(log, "roles"))
	defer resolver.Close()

	authService := service.NewAuthService(repos.creds, repos.users, denylist, hub, cfg.JWTSecret, cfg.TokenTTL, logger.Component(log, "auth"))
	eventService := service.NewEventService(repos.events, logger.Component(log, "events"))
	registrationService := service.NewRegistrationService(
		repos.events,
		repos.registrations,
		redisstore.NewRegistrationGuard(rdb),
		logger.Component(log, "registrations"),
	)
	reminderService := service.NewReminderService(repos.reminders, loc, cfg.Reminders.Lookahead, logger.Component(log, "reminders"))
	adminService := service.NewAdminService(
		repos.users,
		repos.creds,
		repos.events,
		repos.registrations,
		denylist,
		cfg.TokenTTL,
		hub,
		logger.Component(log, "admin"),
	)

	if cfg.Assistant.APIKey == "" {
		log.Warn().Msg("GEMINI_API_KEY not set, assistant requests will fail")
	}
	generator := genai.NewClient(genai.Config{
		APIKey:  cfg.Assistant.APIKey,
		BaseURL: cfg.Assistant.BaseURL,
		Model:   cfg.Assistant.Model,
	})
	assistantService := service.NewAssistantService(generator, eventService, loc, service.AssistantConfig{
		Temperature:    cfg.Assistant.Temperature,
		MaxTokens:      cfg.Assistant.MaxTokens,
		DraftMaxTokens: cfg.Assistant.DraftMaxTokens,
		Timeout:        cfg.Assistant.Timeout,
	}, logger.Component(log, "assistant"))

	// --- Reminder notifications ---
	notifyLog := logger.Component(log, "notify")
	notifyService := service.NewNotifyService(notify.NewLogNotifier(notifyLog, loc), redisstore.NewNotifyDedup(rdb), notifyLog)
	dispatcher := queue.NewDispatcher(cfg.Reminders.NotifyWorkers, notifyService, notifyLog)
	scan := jobs.NewReminderScan(repos.reminders, dispatcher, jobs.ReminderScanConfig{
		Interval:  cfg.Reminders.NotifyInterval,
		Lookahead: cfg.Reminders.Lookahead,
	}, logger.Component(log, "reminder-scan"))

	// --- HTTP ---
	e := api.NewRouter(api.Dependencies{
		Log:          logger.Component(log, "http"),
		JWTSecret:    cfg.JWTSecret,
		Denylist:     denylist,
		Resolver:     resolver,
		Auth:         authService,
		Events:       eventService,
		Registration: registrationService,
		Reminders:    reminderService,
		Assistant:    assistantService,
		Admin:        adminService,
		HealthChecks: []handler.DependencyCheck{
			repos.check,
			{Name: "redis", Ping: redisstore.Ping(rdb)},
		},
	})

	g, gctx := errgroup.WithContext(ctx)

	dispatcher.Start(gctx)
	g.Go(func() error {
		return scan.Run(gctx)
	})

	g.Go(func() error {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Msg("http server listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("server stopped with error")
		return
	}
	log.Info().Msg("server stopped")
}

func openStore(ctx context.Context, cfg *config.Config) (*repositories, error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		pool, err := pgstore.Connect(ctx, pgstore.Config{URL: cfg.Postgres.URL, MaxConns: cfg.Postgres.MaxConns})
		if err != nil {
			return nil, err
		}
		if err := pgstore.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return postgresRepositories(pool), nil
	default:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		return mongoRepositories(client, db), nil
	}
}

func mongoRepositories(client *mongo.Client, db *mongo.Database) *repositories {
	return &repositories{
		creds:         mongostore.NewCredentialRepository(db),
		users:         mongostore.NewUserRepository(db),
		events:        mongostore.NewEventRepository(db),
		registrations: mongostore.NewRegistrationRepository(db),
		reminders:     mongostore.NewReminderRepository(db),
		check: handler.DependencyCheck{
			Name: "mongodb",
			Ping: func(ctx context.Context) error { return client.Ping(ctx, nil) },
		},
		close: client.Disconnect,
	}
}

func postgresRepositories(pool *pgxpool.Pool) *repositories {
	return &repositories{
		creds:         pgstore.NewCredentialRepository(pool),
		users:         pgstore.NewUserRepository(pool),
		events:        pgstore.NewEventRepository(pool),
		registrations: pgstore.NewRegistrationRepository(pool),
		reminders:     pgstore.NewReminderRepository(pool),
		check: handler.DependencyCheck{
			Name: "postgres",
			Ping: pool.Ping,
		},
		close: func(context.Context) error {
			pool.Close()
			return nil
		},
	}
}
