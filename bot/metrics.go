package bot

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	commandInvocations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_commands_total",
			Help: "Total number of slash command invocations",
		},
		[]string{"command"},
	)

	interactionEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_interactions_total",
			Help: "Total number of interaction payloads received",
		},
		[]string{"type"},
	)

	documentBuilds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_document_builds_total",
			Help: "Total number of UI documents assembled",
		},
		[]string{"document"},
	)

	handlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_handler_errors_total",
			Help: "Total number of handler failures",
		},
		[]string{"handler"},
	)

	handlerDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bot_handler_duration_seconds",
			Help:    "Time spent handling one event",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"handler"},
	)
)
