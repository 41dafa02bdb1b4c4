// Package tracker orchestrates a full index run: fetch sources, detect
// meaningful change, classify and score events, and persist the daily
// snapshot.
package tracker

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/driftindex/adictl/pkg/checkpoint"
	"github.com/driftindex/adictl/pkg/data"
	"github.com/driftindex/adictl/pkg/index"
	"github.com/driftindex/adictl/pkg/source"
	"github.com/driftindex/adictl/pkg/trend"
)

// Tracker wires the sources, the scoring engine, and the store.
type Tracker struct {
	db       *sql.DB
	calc     *index.Calculator
	check    *checkpoint.Checkpoint
	fetchers []source.Fetcher
	now      func() time.Time
}

// Result describes the outcome of one update run.
type Result struct {
	Changed   bool           `json:"changed"`
	NewEvents int            `json:"new_events"`
	Snapshot  *data.Snapshot `json:"snapshot,omitempty"`
}

// New creates a Tracker. The checkpoint may be nil to disable change
// detection.
func New(db *sql.DB, calc *index.Calculator, check *checkpoint.Checkpoint, fetchers ...source.Fetcher) (*Tracker, error) {
	if db == nil {
		return nil, errors.New("db required")
	}
	if calc == nil {
		return nil, errors.New("calculator required")
	}
	if len(fetchers) == 0 {
		return nil, errors.New("at least one fetcher required")
	}
	return &Tracker{
		db:       db,
		calc:     calc,
		check:    check,
		fetchers: fetchers,
		now:      time.Now,
	}, nil
}

// Update runs the daily cycle. When force is false and the fetched items
// do not differ meaningfully from the previous run, nothing is written
// and the last snapshot is returned with Changed false.
func (t *Tracker) Update(ctx context.Context, force bool) (*Result, error) {
	items, err := source.FetchAll(ctx, t.fetchers...)
	if err != nil {
		return nil, errors.Wrap(err, "error fetching sources")
	}
	if len(items) == 0 {
		return nil, errors.New("no items returned by any source")
	}

	titles := source.Titles(items)

	if !force && t.check != nil {
		changed, err := t.check.MeaningfulChange(titles)
		if err != nil {
			return nil, errors.Wrap(err, "error checking for meaningful change")
		}
		if !changed {
			log.Debug("no meaningful change since last run")
			last, err := data.GetLatestSnapshot(t.db)
			if err != nil {
				return nil, err
			}
			return &Result{Changed: false, Snapshot: last}, nil
		}
	}

	today := t.now().UTC().Format(data.DateFormat)

	events := make([]*data.Event, 0, len(items))
	for _, item := range items {
		e := &data.Event{
			Title:  item.Title,
			URL:    item.URL,
			Source: item.Source,
			Date:   today,
		}
		if rule, ok := index.Classify(t.calc.Rules(), item.Title); ok {
			e.Category = rule.Category
			e.Points = rule.Points
		}
		events = append(events, e)
	}

	scores := t.calc.Score(titles)
	rawToday := t.calc.Calculate(scores)

	var prevRaw float64
	if last, err := data.GetLatestSnapshot(t.db); err != nil {
		return nil, err
	} else if last != nil {
		prevRaw = last.RawScore
	}
	raw := t.calc.Combine(prevRaw, rawToday)

	baselines, err := t.baselines()
	if err != nil {
		return nil, err
	}
	scaled := t.calc.ScaleToHistorical(raw, trend.TerminalValues(baselines))
	level, status := index.ShoeLevel(scaled)

	snapshot := &data.Snapshot{
		Date:      today,
		RawScore:  raw,
		Score:     scaled,
		ShoeLevel: level,
		Status:    status,
	}
	if err := data.SaveSnapshot(t.db, snapshot); err != nil {
		return nil, err
	}

	n, err := data.InsertEvents(t.db, events)
	if err != nil {
		return nil, err
	}

	log.Debugf("update complete: score=%.2f level=%d events=%d", scaled, level, n)
	return &Result{Changed: true, NewEvents: n, Snapshot: snapshot}, nil
}

// Forecast fits the trend over the configured window and projects the
// index at the given month horizons.
func (t *Tracker) Forecast(windowDays int, horizons ...int) (*trend.Forecast, error) {
	snapshots, err := data.GetSnapshots(t.db, "")
	if err != nil {
		return nil, err
	}

	points := make([]trend.Point, 0, len(snapshots))
	for _, s := range snapshots {
		d, err := time.Parse(data.DateFormat, s.Date)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid snapshot date: %s", s.Date)
		}
		points = append(points, trend.Point{Date: d, Score: s.Score})
	}
	return trend.ForecastTrend(points, windowDays, horizons...)
}

// Compare locates the latest score on each baseline trajectory.
func (t *Tracker) Compare() ([]trend.Comparison, error) {
	last, err := data.GetLatestSnapshot(t.db)
	if err != nil {
		return nil, err
	}
	if last == nil {
		return nil, errors.New("no snapshots recorded yet")
	}

	baselines, err := t.baselines()
	if err != nil {
		return nil, err
	}
	return trend.Compare(last.Score, baselines)
}

// baselines returns the stored trajectories, falling back to the
// defaults when the baseline table has not been seeded.
func (t *Tracker) baselines() ([]trend.Baseline, error) {
	baselines, err := data.GetBaselines(t.db)
	if err != nil {
		return nil, err
	}
	if len(baselines) == 0 {
		baselines = trend.DefaultBaselines()
	}
	return baselines, nil
}
