// Package server implements the local dashboard: an HTML view, a JSON
// data API, Prometheus metrics, and an optional scheduled refresh.
package server

import (
	"database/sql"
	"embed"
	"html/template"
	"net/http"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/driftindex/adictl/pkg/tracker"
)

// RefreshCronDefault runs the scheduled refresh every morning at 06:00.
const RefreshCronDefault = "0 6 * * *"

//go:embed templates/*
var embedFS embed.FS

// Server serves the dashboard for one database.
type Server struct {
	db           *sql.DB
	tracker      *tracker.Tracker
	forecastDays int
	tmpl         *template.Template
	metrics      *metrics
	registry     *prometheus.Registry
	cron         *cron.Cron
}

// New creates a dashboard server over the store and tracker.
func New(db *sql.DB, tr *tracker.Tracker, forecastDays int) (*Server, error) {
	if db == nil {
		return nil, errors.New("db required")
	}
	if tr == nil {
		return nil, errors.New("tracker required")
	}

	tmpl, err := template.ParseFS(embedFS, "templates/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "error parsing templates")
	}

	registry := prometheus.NewRegistry()

	return &Server{
		db:           db,
		tracker:      tr,
		forecastDays: forecastDays,
		tmpl:         tmpl,
		metrics:      newMetrics(registry),
		registry:     registry,
	}, nil
}

// Handler returns the routed handler for the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Views
	mux.HandleFunc("GET /{$}", s.metrics.instrument("/", s.homeViewHandler))

	// Data API
	mux.HandleFunc("GET /data/score", s.metrics.instrument("/data/score", s.scoreHandler))
	mux.HandleFunc("GET /data/trend", s.metrics.instrument("/data/trend", s.trendHandler))
	mux.HandleFunc("GET /data/forecast", s.metrics.instrument("/data/forecast", s.forecastHandler))
	mux.HandleFunc("GET /data/compare", s.metrics.instrument("/data/compare", s.compareHandler))
	mux.HandleFunc("GET /data/baselines", s.metrics.instrument("/data/baselines", s.baselinesHandler))
	mux.HandleFunc("GET /data/events", s.metrics.instrument("/data/events", s.eventsHandler))
	mux.HandleFunc("GET /data/categories", s.metrics.instrument("/data/categories", s.categoriesHandler))
	mux.HandleFunc("POST /data/refresh", s.metrics.instrument("/data/refresh", s.refreshHandler))

	// Metrics
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	return mux
}

// StartScheduler begins running refreshes on the cron spec.
func (s *Server) StartScheduler(spec string) error {
	if spec == "" {
		spec = RefreshCronDefault
	}

	c := cron.New()
	if _, err := c.AddFunc(spec, s.scheduledRefresh); err != nil {
		return errors.Wrapf(err, "invalid refresh schedule: %s", spec)
	}
	c.Start()
	s.cron = c

	log.Debugf("refresh scheduler started: %s", spec)
	return nil
}

// StopScheduler stops the scheduled refresh, waiting for a running job.
func (s *Server) StopScheduler() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}
