package data

import (
	"database/sql"

	"github.com/pkg/errors"

	"github.com/driftindex/adictl/pkg/index"
	"github.com/driftindex/adictl/pkg/trend"
)

const (
	upsertBaselineSQL = `INSERT INTO baseline (name, stage, value)
		VALUES (?, ?, ?)
		ON CONFLICT (name, stage) DO UPDATE SET value = excluded.value
	`

	selectBaselineSQL = `SELECT name, stage, value
		FROM baseline
		ORDER BY name, stage
	`
)

// seedEvent is a dated historical score used to seed the snapshot log.
type seedEvent struct {
	date  string
	score float64
	note  string
}

// Historical US events with approximate index scores on the 0-100 scale.
var historicalSeeds = []seedEvent{
	{"2001-09-11", 20, "9/11 Terror Attacks"},
	{"2001-10-26", 30, "Patriot Act signed"},
	{"2003-03-19", 32, "Iraq War begins"},
	{"2008-09-15", 28, "Financial crisis"},
	{"2013-06-05", 33, "Snowden NSA revelations"},
	{"2016-11-08", 35, "2016 Presidential Election"},
	{"2020-03-15", 40, "COVID lockdowns & emergency powers"},
	{"2020-06-01", 45, "George Floyd protests & civil unrest"},
	{"2021-01-06", 55, "Capitol Riot & election disputes"},
	{"2022-06-24", 50, "Roe v. Wade overturned"},
	{"2023-08-01", 45, "Federal indictments and polarization spike"},
	{"2024-11-05", 48, "2024 Presidential Election"},
}

// SaveBaselines stores the baseline trajectories.
func SaveBaselines(db *sql.DB, baselines []trend.Baseline) error {
	if db == nil {
		return errors.New("db required")
	}

	tx, err := db.Begin()
	if err != nil {
		return errors.Wrap(err, "error starting transaction")
	}

	stmt, err := tx.Prepare(upsertBaselineSQL)
	if err != nil {
		tx.Rollback()
		return errors.Wrap(err, "error preparing baseline upsert")
	}
	defer stmt.Close()

	for _, b := range baselines {
		for i, v := range b.Values {
			if _, err := stmt.Exec(b.Name, i, v); err != nil {
				tx.Rollback()
				return errors.Wrapf(err, "error saving baseline: %s", b.Name)
			}
		}
	}

	return errors.Wrap(tx.Commit(), "error committing baselines")
}

// GetBaselines returns the stored baseline trajectories in stage order.
func GetBaselines(db *sql.DB) ([]trend.Baseline, error) {
	if db == nil {
		return nil, errors.New("db required")
	}

	rows, err := db.Query(selectBaselineSQL)
	if err != nil {
		return nil, errors.Wrap(err, "error querying baselines")
	}
	defer rows.Close()

	out := make([]trend.Baseline, 0)
	for rows.Next() {
		var name string
		var stage int
		var value float64
		if err := rows.Scan(&name, &stage, &value); err != nil {
			return nil, errors.Wrap(err, "error scanning baseline row")
		}
		if len(out) == 0 || out[len(out)-1].Name != name {
			out = append(out, trend.Baseline{Name: name})
		}
		out[len(out)-1].Values = append(out[len(out)-1].Values, value)
	}
	return out, rows.Err()
}

// Seed loads the historical snapshot log and the baseline trajectories.
// Existing rows for the same dates are overwritten.
func Seed(db *sql.DB, baselines []trend.Baseline) (int, error) {
	if db == nil {
		return 0, errors.New("db required")
	}
	if len(baselines) == 0 {
		baselines = trend.DefaultBaselines()
	}

	snapshots := make([]*Snapshot, 0, len(historicalSeeds))
	for _, h := range historicalSeeds {
		level, status := index.ShoeLevel(h.score)
		snapshots = append(snapshots, &Snapshot{
			Date:      h.date,
			RawScore:  h.score,
			Score:     h.score,
			ShoeLevel: level,
			Status:    status,
			Note:      h.note,
		})
	}

	count, err := SaveSnapshots(db, snapshots)
	if err != nil {
		return 0, errors.Wrap(err, "error seeding snapshots")
	}

	if err := SaveBaselines(db, baselines); err != nil {
		return count, errors.Wrap(err, "error seeding baselines")
	}
	return count, nil
}
