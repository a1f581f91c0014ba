// Package main is the entry point for the fantaprof server.
//
// The architecture follows Clean Architecture and DDD:
// - Domain: professors, teams, users, scoring
// - Application: use case orchestration (Commands/Queries)
// - Infrastructure: persistence, cache, event bus, scheduler
// - Interface: HTTP API
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/fantaprof/fantaprof-server/config"
	"github.com/fantaprof/fantaprof-server/internal/application/command"
	"github.com/fantaprof/fantaprof-server/internal/application/eventhandler"
	"github.com/fantaprof/fantaprof-server/internal/application/query"
	"github.com/fantaprof/fantaprof-server/internal/domain/professor"
	"github.com/fantaprof/fantaprof-server/internal/domain/scoring"
	"github.com/fantaprof/fantaprof-server/internal/domain/shared"
	"github.com/fantaprof/fantaprof-server/internal/domain/team"
	"github.com/fantaprof/fantaprof-server/internal/domain/user"
	"github.com/fantaprof/fantaprof-server/internal/infrastructure/auth"
	"github.com/fantaprof/fantaprof-server/internal/infrastructure/messaging"
	"github.com/fantaprof/fantaprof-server/internal/infrastructure/persistence/memory"
	"github.com/fantaprof/fantaprof-server/internal/infrastructure/persistence/postgres"
	"github.com/fantaprof/fantaprof-server/internal/infrastructure/persistence/redis"
	"github.com/fantaprof/fantaprof-server/internal/infrastructure/scheduler"
	"github.com/fantaprof/fantaprof-server/internal/infrastructure/scheduler/jobs"
	httpserver "github.com/fantaprof/fantaprof-server/internal/interface/http"
	"github.com/fantaprof/fantaprof-server/pkg/logger"
)

func main() {
	ctx := context.Background()
	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(logger.Options{
		Output:    os.Stdout,
		Level:     logger.ParseLevel(cfg.Observability.LogLevel),
		AddCaller: cfg.App.Debug,
	})

	log.Info("starting",
		logger.String("app", cfg.App.Name),
		logger.String("env", string(cfg.App.Environment)),
		logger.String("version", cfg.App.Version),
		logger.String("timezone", cfg.App.Timezone),
	)

	// ─────────────────────────────────────────────────────────────────────────
	// Persistence
	// ─────────────────────────────────────────────────────────────────────────

	var (
		professors professor.Store
		teams      team.Store
		users      user.Store
		dbPinger   httpserver.Pinger
	)

	if cfg.Database.URL != "" {
		conn, err := postgres.NewConnection(ctx, cfg.Database.URL, postgres.PoolSettings{
			MaxConns:        int32(cfg.Database.MaxConns),
			MinConns:        int32(cfg.Database.MinConns),
			MaxConnLifetime: cfg.Database.ConnMaxLifetime,
			MaxConnIdleTime: cfg.Database.ConnMaxIdleTime,
		})
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer conn.Close()

		if err := postgres.NewMigrator(conn).Migrate(ctx); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}

		professors = postgres.NewProfessorRepository(conn)
		teams = postgres.NewTeamRepository(conn)
		users = postgres.NewUserRepository(conn)
		dbPinger = conn
		log.Info("postgres connected")
	} else {
		if cfg.IsProduction() {
			return fmt.Errorf("DATABASE_URL is required in production")
		}
		professors = memory.NewProfessorStore()
		teams = memory.NewTeamStore()
		users = memory.NewUserStore()
		log.Warn("DATABASE_URL not set, using in-memory stores")
	}

	// ─────────────────────────────────────────────────────────────────────────
	// Cache
	// ─────────────────────────────────────────────────────────────────────────

	var standingsCache *redis.StandingsCache
	if !cfg.Redis.Disabled {
		var cache *redis.Cache
		var err error
		if cfg.Redis.URL != "" {
			cache, err = redis.NewCacheFromURL(cfg.Redis.URL)
		} else {
			cache, err = redis.NewCache(redis.Config{
				Host:         cfg.Redis.Host,
				Port:         cfg.Redis.Port,
				Password:     cfg.Redis.Password,
				DB:           cfg.Redis.DB,
				PoolSize:     cfg.Redis.PoolSize,
				MinIdleConns: cfg.Redis.MinIdleConns,
				DialTimeout:  cfg.Redis.DialTimeout,
				ReadTimeout:  cfg.Redis.ReadTimeout,
				WriteTimeout: cfg.Redis.WriteTimeout,
			})
		}
		switch {
		case err != nil && cfg.IsProduction():
			return fmt.Errorf("connect redis: %w", err)
		case err != nil:
			log.Warn("redis unavailable, serving without standings cache", logger.Err(err))
		default:
			defer cache.Close()
			standingsCache = redis.NewStandingsCache(cache)
			log.Info("redis connected")
		}
	}

	// ─────────────────────────────────────────────────────────────────────────
	// Domain services and event bus
	// ─────────────────────────────────────────────────────────────────────────

	bus := messaging.NewInMemoryEventBus(log)
	throttle := scoring.NewThrottle(cfg.App.Location)
	engine := scoring.NewEngine(professors, teams)
	assembler := team.NewAssembler(professors, teams)
	authenticator := auth.NewBcryptAuthenticator(users)

	if standingsCache != nil {
		invalidate := eventhandler.InvalidateStandingsOnChange(standingsCache, log)
		bus.Subscribe(shared.EventProfessorScoreUpdated, invalidate)
		bus.Subscribe(shared.EventProfessorDeleted, invalidate)
		bus.Subscribe(shared.EventTeamAssembled, invalidate)
	}

	if err := bootstrapAdmin(ctx, cfg, users, log); err != nil {
		return err
	}

	// ─────────────────────────────────────────────────────────────────────────
	// Application handlers
	// ─────────────────────────────────────────────────────────────────────────

	var cacheForQueries query.StandingsCache
	if standingsCache != nil {
		cacheForQueries = standingsCache
	}

	deps := httpserver.Dependencies{
		CreateProfessor: command.NewCreateProfessorHandler(professors, bus, log),
		DeleteProfessor: command.NewDeleteProfessorHandler(professors, bus, log),
		UpdateScore:     command.NewUpdateScoreHandler(professors, throttle, bus, log),
		AssembleTeam:    command.NewAssembleTeamHandler(assembler, bus, log),
		GetLeaderboard:  query.NewGetLeaderboardHandler(engine, cacheForQueries, log),
		GetTeam:         query.NewGetTeamHandler(engine),
		ListProfessors:  query.NewListProfessorsHandler(professors),
		Throttle:        throttle,
		Authenticator:   authenticator,
		Database:        dbPinger,
		Logger:          log,
	}

	// ─────────────────────────────────────────────────────────────────────────
	// Background jobs
	// ─────────────────────────────────────────────────────────────────────────

	if cfg.Scheduler.Enabled && standingsCache != nil {
		sched := scheduler.New(log)
		job := jobs.NewRebuildStandingsJob(engine, standingsCache, log)
		if err := sched.Register(job, cfg.Scheduler.RebuildStandingsInterval); err != nil {
			return fmt.Errorf("register job: %w", err)
		}
		if err := sched.Start(ctx); err != nil {
			return fmt.Errorf("start scheduler: %w", err)
		}
		defer sched.Stop()
	}

	// ─────────────────────────────────────────────────────────────────────────
	// HTTP server
	// ─────────────────────────────────────────────────────────────────────────

	server := httpserver.NewServer(httpserver.Config{
		Host:               cfg.HTTP.Host,
		Port:               cfg.HTTP.Port,
		ReadTimeout:        cfg.HTTP.ReadTimeout,
		WriteTimeout:       cfg.HTTP.WriteTimeout,
		IdleTimeout:        cfg.HTTP.IdleTimeout,
		MaxHeaderBytes:     1 << 20,
		EnableCORS:         cfg.HTTP.EnableCORS,
		AllowedOrigins:     cfg.HTTP.AllowedOrigins,
		RateLimitPerMinute: cfg.HTTP.RateLimitPerMinute,
	}, deps)

	errCh := server.StartAsync()
	log.Info("http server listening", logger.String("address", server.Address()))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutdown signal received", logger.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	log.Info("stopped")
	return nil
}

// bootstrapAdmin creates the admin account from ADMIN_USERNAME and
// ADMIN_PASSWORD when both are set. An existing account is left as is.
func bootstrapAdmin(ctx context.Context, cfg *config.Config, users user.Store, log *logger.Logger) error {
	if cfg.Auth.AdminUsername == "" || cfg.Auth.AdminPassword == "" {
		return nil
	}

	hash, err := auth.HashPassword(cfg.Auth.AdminPassword)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin, err := user.New(uuid.NewString(), cfg.Auth.AdminUsername, hash, user.RoleAdmin)
	if err != nil {
		return fmt.Errorf("build admin account: %w", err)
	}

	if err := users.Create(ctx, admin); err != nil {
		if shared.IsAlreadyExists(err) {
			log.Debug("admin account already exists", logger.Username(cfg.Auth.AdminUsername))
			return nil
		}
		return fmt.Errorf("create admin account: %w", err)
	}

	log.Info("admin account created", logger.Username(cfg.Auth.AdminUsername))
	return nil
}
