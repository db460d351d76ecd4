// Package observability holds the Prometheus instrumentation for the
// application core. The registry is owned by the composition root; nothing is
// registered globally.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Playback session outcomes.
const (
	PlaybackFinished  = "finished"
	PlaybackFailed    = "failed"
	PlaybackPreempted = "preempted"
	PlaybackNoData    = "no_data"
)

// Metrics bundles the counters recorded by services and the playback
// orchestrator. All methods are safe on a nil receiver so tests can pass nil.
type Metrics struct {
	registry *prometheus.Registry

	commandsExecuted *prometheus.CounterVec
	playbackSessions *prometheus.CounterVec
}

// NewMetrics creates a metrics bundle on a fresh registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		commandsExecuted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "soundcord",
			Name:      "commands_executed_total",
			Help:      "Application commands executed, by operation and outcome.",
		}, []string{"operation", "outcome"}),
		playbackSessions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "soundcord",
			Name:      "playback_sessions_total",
			Help:      "Voice playback sessions, by outcome.",
		}, []string{"outcome"}),
	}
}

// Registry exposes the underlying registry for scraping.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// RecordCommand counts one executed application command.
func (m *Metrics) RecordCommand(operation string, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.commandsExecuted.WithLabelValues(operation, outcome).Inc()
}

// RecordPlayback counts one playback session outcome.
func (m *Metrics) RecordPlayback(outcome string) {
	if m == nil {
		return
	}
	m.playbackSessions.WithLabelValues(outcome).Inc()
}
