// Package httpapi exposes the study space service over HTTP.
package httpapi

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"studyspace/internal/core"
)

// Options configures the HTTP handler. The zero value uses a private
// registry and drops logs.
type Options struct {
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
	AccessLog  io.Writer
	Logger     *slog.Logger
}

// Handler serves the JSON API.
type Handler struct {
	svc    *core.Service
	logger *slog.Logger
}

// NewHandler builds the routed, instrumented API handler for svc.
func NewHandler(svc *core.Service, opts Options) (http.Handler, error) {
	if opts.Registerer == nil && opts.Gatherer == nil {
		reg := prometheus.NewRegistry()
		opts.Registerer, opts.Gatherer = reg, reg
	}
	if opts.Gatherer == nil {
		if g, ok := opts.Registerer.(prometheus.Gatherer); ok {
			opts.Gatherer = g
		} else {
			opts.Gatherer = prometheus.DefaultGatherer
		}
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	metrics, err := newHTTPMetrics(opts.Registerer)
	if err != nil {
		return nil, err
	}

	h := &Handler{svc: svc, logger: opts.Logger}
	r := mux.NewRouter()
	r.Use(metrics.middleware)

	r.HandleFunc("/health", h.health).Methods("GET")
	r.HandleFunc("/login", h.login).Methods("POST")

	r.HandleFunc("/locations", h.listLocations).Methods("GET")
	r.HandleFunc("/locations/{id}", h.getLocation).Methods("GET")
	r.HandleFunc("/locations/{id}/analysis", h.locationAnalysis).Methods("GET")
	r.HandleFunc("/locations/{id}/feedback", h.locationFeedback).Methods("GET")

	r.HandleFunc("/analysis", h.listAnalyses).Methods("GET")
	r.HandleFunc("/analysis", h.analyzeReading).Methods("POST")
	r.HandleFunc("/history", h.history).Methods("GET")
	r.HandleFunc("/recommendations", h.recommendations).Methods("GET")

	r.HandleFunc("/feedback", h.listFeedback).Methods("GET")
	r.HandleFunc("/feedback", h.submitFeedback).Methods("POST")
	r.HandleFunc("/feedback", h.clearFeedback).Methods("DELETE")
	r.HandleFunc("/feedback/summary", h.feedbackSummary).Methods("GET")

	r.HandleFunc("/reports", h.listReports).Methods("GET")
	r.HandleFunc("/reports", h.exportReport).Methods("POST")

	r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})).Methods("GET")

	var out http.Handler = r
	if opts.AccessLog != nil {
		out = handlers.LoggingHandler(opts.AccessLog, out)
	}
	out = handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLogger{opts.Logger}), handlers.PrintRecoveryStack(false))(out)
	return out, nil
}

type recoveryLogger struct{ logger *slog.Logger }

func (l recoveryLogger) Println(args ...any) {
	l.logger.Error("handler panic", "detail", args)
}
