package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"

	"github.com/soundcord/soundcord-bot/app/eventbus"
	audioservice "github.com/soundcord/soundcord-bot/app/modules/audio/application"
	audiodb "github.com/soundcord/soundcord-bot/app/modules/audio/infrastructure/repositories"
	authservice "github.com/soundcord/soundcord-bot/app/modules/auth/application"
	"github.com/soundcord/soundcord-bot/app/modules/playback"
	discordvoice "github.com/soundcord/soundcord-bot/app/modules/playback/discord"
	userservice "github.com/soundcord/soundcord-bot/app/modules/user/application"
	userdb "github.com/soundcord/soundcord-bot/app/modules/user/infrastructure/repositories"
	"github.com/soundcord/soundcord-bot/config"
	"github.com/soundcord/soundcord-bot/internal/db/bundb"
	"github.com/soundcord/soundcord-bot/internal/observability"
)

// App is the composition root: every collaborator is constructed here and
// injected explicitly, so tests can substitute fakes without global state.
type App struct {
	Cfg     *config.Config
	Bus     eventbus.EventBus
	Metrics *observability.Metrics

	UserService  *userservice.UserService
	AudioService *audioservice.AudioService
	AuthService  *authservice.AuthService
	Orchestrator *playback.Orchestrator

	db     *bun.DB
	voice  *discordvoice.Connector
	logger *slog.Logger
}

// NewApp initializes the application with the necessary services.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := bundb.Open(ctx, cfg.Postgres.Driver, cfg.Postgres.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	metrics := observability.NewMetrics()
	bus := eventbus.New(logger)
	tracer := otel.Tracer("soundcord-bot")

	userRepo := userdb.NewRepository(db)
	audioRepo := audiodb.NewRepository(db)

	userSvc := userservice.NewUserService(userRepo, db, logger, metrics, tracer)
	audioSvc := audioservice.NewAudioService(audioRepo, db, bus, logger, metrics, tracer)
	authSvc := authservice.NewAuthService(userSvc, logger, tracer, cfg.JWT.Secret, cfg.JWT.DefaultTTL)

	a := &App{
		Cfg:          cfg,
		Bus:          bus,
		Metrics:      metrics,
		UserService:  userSvc,
		AudioService: audioSvc,
		AuthService:  authSvc,
		db:           db,
		logger:       logger,
	}

	// Without a bot token there is no voice capability; the command surface
	// still works, play requests just have no consumer.
	if cfg.Discord.Token == "" {
		logger.Warn("No discord token configured, playback orchestrator disabled")
		return a, nil
	}

	voice, err := discordvoice.NewConnector(cfg.Discord.Token, cfg.Discord.GuildID, logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize discord voice connector: %w", err)
	}
	a.voice = voice

	a.Orchestrator = playback.NewOrchestrator(bus, audioRepo, voice, logger, metrics)
	if err := a.Orchestrator.Start(ctx); err != nil {
		voice.Close()
		db.Close()
		return nil, fmt.Errorf("failed to start playback orchestrator: %w", err)
	}

	return a, nil
}

// ServeMetrics exposes the Prometheus registry when a metrics address is
// configured. Blocks; run in its own goroutine.
func (a *App) ServeMetrics() error {
	addr := a.Cfg.Observability.MetricsAddress
	if addr == "" {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(a.Metrics.Registry(), promhttp.HandlerOpts{}))
	return http.ListenAndServe(addr, mux)
}

// DB returns the database connection pool.
func (a *App) DB() *bun.DB {
	return a.db
}

// Close releases the voice connection, the event bus and the database pool.
func (a *App) Close() {
	if a.voice != nil {
		if err := a.voice.Close(); err != nil {
			a.logger.Error("Failed to close discord connection", slog.Any("error", err))
		}
	}
	if err := a.Bus.Close(); err != nil {
		a.logger.Error("Failed to close event bus", slog.Any("error", err))
	}
	if err := a.db.Close(); err != nil {
		a.logger.Error("Failed to close database connection", slog.Any("error", err))
	}
}
