package userservice

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	userdb "github.com/soundcord/soundcord-bot/app/modules/user/infrastructure/repositories"
	"github.com/soundcord/soundcord-bot/internal/db"
	"github.com/soundcord/soundcord-bot/internal/observability"
)

// UserService handles user-related logic.
type UserService struct {
	repo    userdb.Repository
	db      db.TxRunner
	logger  *slog.Logger
	metrics *observability.Metrics
	tracer  trace.Tracer
}

// NewUserService creates a new UserService.
func NewUserService(
	repo userdb.Repository,
	txRunner db.TxRunner,
	logger *slog.Logger,
	metrics *observability.Metrics,
	tracer trace.Tracer,
) *UserService {
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("userservice")
	}
	return &UserService{
		repo:    repo,
		db:      txRunner,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
	}
}
