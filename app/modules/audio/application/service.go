package audioservice

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/soundcord/soundcord-bot/app/eventbus"
	audiodb "github.com/soundcord/soundcord-bot/app/modules/audio/infrastructure/repositories"
	"github.com/soundcord/soundcord-bot/internal/db"
	"github.com/soundcord/soundcord-bot/internal/observability"
)

// AudioService handles audio command logic and publishes playback requests.
type AudioService struct {
	repo     audiodb.Repository
	db       db.TxRunner
	eventBus eventbus.EventBus
	logger   *slog.Logger
	metrics  *observability.Metrics
	tracer   trace.Tracer
}

// NewAudioService creates a new AudioService.
func NewAudioService(
	repo audiodb.Repository,
	txRunner db.TxRunner,
	bus eventbus.EventBus,
	logger *slog.Logger,
	metrics *observability.Metrics,
	tracer trace.Tracer,
) *AudioService {
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("audioservice")
	}
	return &AudioService{
		repo:     repo,
		db:       txRunner,
		eventBus: bus,
		logger:   logger,
		metrics:  metrics,
		tracer:   tracer,
	}
}
