package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/driftindex/adictl/pkg/data"
)

const (
	trendDaysDefault = 30
	refreshTimeout   = 2 * time.Minute
)

type homeView struct {
	Score     float64
	ShoeLevel int
	Shoes     string
	Status    string
	Date      string
	Empty     bool
}

func (s *Server) homeViewHandler(w http.ResponseWriter, r *http.Request) {
	last, err := data.GetLatestSnapshot(s.db)
	if err != nil {
		serverError(w, err)
		return
	}

	view := homeView{Empty: last == nil}
	if last != nil {
		view.Score = last.Score
		view.ShoeLevel = last.ShoeLevel
		view.Shoes = strings.Repeat("\U0001F45F", last.ShoeLevel)
		view.Status = last.Status
		view.Date = last.Date
		s.metrics.observeSnapshot(last.Score, last.ShoeLevel)
	}

	if err := s.tmpl.ExecuteTemplate(w, "index.html", view); err != nil {
		serverError(w, err)
	}
}

func (s *Server) scoreHandler(w http.ResponseWriter, r *http.Request) {
	last, err := data.GetLatestSnapshot(s.db)
	if err != nil {
		serverError(w, err)
		return
	}
	if last == nil {
		http.Error(w, "no snapshots recorded yet", http.StatusNotFound)
		return
	}
	s.metrics.observeSnapshot(last.Score, last.ShoeLevel)
	writeJSON(w, last)
}

func (s *Server) trendHandler(w http.ResponseWriter, r *http.Request) {
	days := intParam(r, "days", trendDaysDefault)
	since := time.Now().UTC().AddDate(0, 0, -days).Format(data.DateFormat)

	snapshots, err := data.GetSnapshots(s.db, since)
	if err != nil {
		serverError(w, err)
		return
	}

	points := make([]ChartPoint, 0, len(snapshots))
	for _, snap := range snapshots {
		points = append(points, ChartPoint{Label: snap.Date, Value: snap.Score})
	}

	chart := buildChart("Index Trend", "Date", "Score (0-100)",
		ChartSeries{Name: "Index", Data: points})
	writeJSON(w, chart)
}

func (s *Server) forecastHandler(w http.ResponseWriter, r *http.Request) {
	f, err := s.tracker.Forecast(s.forecastDays)
	if err != nil {
		serverError(w, err)
		return
	}
	writeJSON(w, f)
}

func (s *Server) compareHandler(w http.ResponseWriter, r *http.Request) {
	comps, err := s.tracker.Compare()
	if err != nil {
		serverError(w, err)
		return
	}
	writeJSON(w, comps)
}

func (s *Server) baselinesHandler(w http.ResponseWriter, r *http.Request) {
	baselines, err := data.GetBaselines(s.db)
	if err != nil {
		serverError(w, err)
		return
	}

	series := make([]ChartSeries, 0, len(baselines)+1)
	for _, b := range baselines {
		points := make([]ChartPoint, 0, len(b.Values))
		for i, v := range b.Values {
			points = append(points, ChartPoint{Label: "stage " + strconv.Itoa(i+1), Value: v})
		}
		series = append(series, ChartSeries{Name: b.Name, Data: points})
	}

	chart := buildChart("Historical Drift (Reference)", "Relative Timeline", "Score (0-100)", series...)
	writeJSON(w, chart)
}

func (s *Server) eventsHandler(w http.ResponseWriter, r *http.Request) {
	events, err := data.GetEvents(s.db,
		r.URL.Query().Get("since"),
		r.URL.Query().Get("category"),
		intParam(r, "limit", 0))
	if err != nil {
		serverError(w, err)
		return
	}
	writeJSON(w, events)
}

func (s *Server) categoriesHandler(w http.ResponseWriter, r *http.Request) {
	totals, err := data.GetCategoryTotals(s.db, r.URL.Query().Get("since"))
	if err != nil {
		serverError(w, err)
		return
	}
	writeJSON(w, totals)
}

func (s *Server) refreshHandler(w http.ResponseWriter, r *http.Request) {
	force := r.URL.Query().Get("force") == "true"

	ctx, cancel := context.WithTimeout(r.Context(), refreshTimeout)
	defer cancel()

	res, err := s.tracker.Update(ctx, force)
	if err != nil {
		s.metrics.refreshErrors.Inc()
		serverError(w, err)
		return
	}

	s.metrics.refreshRuns.Inc()
	if res.Snapshot != nil {
		s.metrics.observeSnapshot(res.Snapshot.Score, res.Snapshot.ShoeLevel)
	}
	writeJSON(w, res)
}

// scheduledRefresh is the cron entry point.
func (s *Server) scheduledRefresh() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	res, err := s.tracker.Update(ctx, false)
	if err != nil {
		s.metrics.refreshErrors.Inc()
		log.Errorf("scheduled refresh failed: %v", err)
		return
	}

	s.metrics.refreshRuns.Inc()
	if res.Snapshot != nil {
		s.metrics.observeSnapshot(res.Snapshot.Score, res.Snapshot.ShoeLevel)
	}
	log.Debugf("scheduled refresh complete, changed: %v", res.Changed)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("error encoding response: %v", err)
	}
}

func serverError(w http.ResponseWriter, err error) {
	log.Errorf("server error: %v", err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func intParam(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}
