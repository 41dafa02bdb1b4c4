package data

import (
	"database/sql"

	"github.com/pkg/errors"
)

const (
	upsertSnapshotSQL = `INSERT INTO snapshot (
			snapshot_date, raw_score, scaled_score, shoe_level, status, note
		)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (snapshot_date) DO UPDATE SET
			raw_score = excluded.raw_score,
			scaled_score = excluded.scaled_score,
			shoe_level = excluded.shoe_level,
			status = excluded.status,
			note = excluded.note
	`

	selectSnapshotSQL = `SELECT
			snapshot_date, raw_score, scaled_score, shoe_level, status, note
		FROM snapshot
		WHERE snapshot_date >= COALESCE(?, snapshot_date)
		ORDER BY snapshot_date
	`

	selectLatestSnapshotSQL = `SELECT
			snapshot_date, raw_score, scaled_score, shoe_level, status, note
		FROM snapshot
		ORDER BY snapshot_date DESC
		LIMIT 1
	`
)

// Snapshot is the daily index record, one row per date.
type Snapshot struct {
	Date      string  `json:"date"`
	RawScore  float64 `json:"raw_score"`
	Score     float64 `json:"score"`
	ShoeLevel int     `json:"shoe_level"`
	Status    string  `json:"status"`
	Note      string  `json:"note,omitempty"`
}

// SaveSnapshot upserts the snapshot, keeping the last value per date.
func SaveSnapshot(db *sql.DB, s *Snapshot) error {
	if db == nil {
		return errors.New("db required")
	}
	if s == nil || s.Date == "" {
		return errors.New("snapshot with date required")
	}

	_, err := db.Exec(upsertSnapshotSQL, s.Date, s.RawScore, s.Score, s.ShoeLevel, s.Status, s.Note)
	if err != nil {
		return errors.Wrapf(err, "error saving snapshot for: %s", s.Date)
	}
	return nil
}

// SaveSnapshots upserts a batch of snapshots in one transaction.
func SaveSnapshots(db *sql.DB, snapshots []*Snapshot) (int, error) {
	if db == nil {
		return 0, errors.New("db required")
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, errors.Wrap(err, "error starting transaction")
	}

	stmt, err := tx.Prepare(upsertSnapshotSQL)
	if err != nil {
		tx.Rollback()
		return 0, errors.Wrap(err, "error preparing snapshot upsert")
	}
	defer stmt.Close()

	var count int
	for _, s := range snapshots {
		if s == nil || s.Date == "" {
			continue
		}
		if _, err := stmt.Exec(s.Date, s.RawScore, s.Score, s.ShoeLevel, s.Status, s.Note); err != nil {
			tx.Rollback()
			return 0, errors.Wrapf(err, "error saving snapshot for: %s", s.Date)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.Wrap(err, "error committing snapshots")
	}
	return count, nil
}

// GetSnapshots lists snapshots in date order, optionally since a date.
func GetSnapshots(db *sql.DB, since string) ([]*Snapshot, error) {
	if db == nil {
		return nil, errors.New("db required")
	}

	rows, err := db.Query(selectSnapshotSQL, nilIfEmpty(since))
	if err != nil {
		return nil, errors.Wrap(err, "error querying snapshots")
	}
	defer rows.Close()

	out := make([]*Snapshot, 0)
	for rows.Next() {
		s := &Snapshot{}
		if err := rows.Scan(&s.Date, &s.RawScore, &s.Score, &s.ShoeLevel, &s.Status, &s.Note); err != nil {
			return nil, errors.Wrap(err, "error scanning snapshot row")
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetLatestSnapshot returns the most recent snapshot, or nil when the
// log is empty.
func GetLatestSnapshot(db *sql.DB) (*Snapshot, error) {
	if db == nil {
		return nil, errors.New("db required")
	}

	s := &Snapshot{}
	err := db.QueryRow(selectLatestSnapshotSQL).
		Scan(&s.Date, &s.RawScore, &s.Score, &s.ShoeLevel, &s.Status, &s.Note)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "error querying latest snapshot")
	}
	return s, nil
}
