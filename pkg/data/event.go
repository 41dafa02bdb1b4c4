package data

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	eventLimitDefault = 100

	insertEventSQL = `INSERT INTO event (
			id, title, url, source, category, points, event_date
		)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (title, event_date) DO NOTHING
	`

	selectEventSQL = `SELECT
			id, title, url, source, category, points, event_date
		FROM event
		WHERE event_date >= COALESCE(?, event_date)
		  AND category = COALESCE(?, category)
		ORDER BY event_date DESC, title
		LIMIT ?
	`

	selectCategoryTotalsSQL = `SELECT
			category, SUM(points) as points, COUNT(*) as events
		FROM event
		WHERE event_date >= COALESCE(?, event_date)
		  AND category != ''
		GROUP BY category
		ORDER BY points DESC
	`
)

// Event is a single classified item pulled from one of the sources.
type Event struct {
	ID       string `json:"id,omitempty"`
	Title    string `json:"title,omitempty"`
	URL      string `json:"url,omitempty"`
	Source   string `json:"source,omitempty"`
	Category string `json:"category,omitempty"`
	Points   int    `json:"points,omitempty"`
	Date     string `json:"date,omitempty"`
}

// CategoryTotal aggregates event points within one category.
type CategoryTotal struct {
	Category string `json:"category"`
	Points   int    `json:"points"`
	Events   int    `json:"events"`
}

// InsertEvents stores the events, assigning IDs where missing. Duplicate
// title/date pairs are ignored. Returns the number of rows inserted.
func InsertEvents(db *sql.DB, events []*Event) (int, error) {
	if db == nil {
		return 0, errors.New("db required")
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, errors.Wrap(err, "error starting transaction")
	}

	stmt, err := tx.Prepare(insertEventSQL)
	if err != nil {
		tx.Rollback()
		return 0, errors.Wrap(err, "error preparing event insert")
	}
	defer stmt.Close()

	var count int
	for _, e := range events {
		if e == nil || e.Title == "" {
			continue
		}
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		res, err := stmt.Exec(e.ID, e.Title, e.URL, e.Source, e.Category, e.Points, e.Date)
		if err != nil {
			tx.Rollback()
			return 0, errors.Wrapf(err, "error inserting event: %s", e.Title)
		}
		if n, err := res.RowsAffected(); err == nil {
			count += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.Wrap(err, "error committing events")
	}

	log.Debugf("inserted %d of %d events", count, len(events))
	return count, nil
}

// GetEvents lists events, optionally filtered by start date and category.
func GetEvents(db *sql.DB, since, category string, limit int) ([]*Event, error) {
	if db == nil {
		return nil, errors.New("db required")
	}
	if limit < 1 {
		limit = eventLimitDefault
	}

	rows, err := db.Query(selectEventSQL, nilIfEmpty(since), nilIfEmpty(category), limit)
	if err != nil {
		return nil, errors.Wrap(err, "error querying events")
	}
	defer rows.Close()

	out := make([]*Event, 0)
	for rows.Next() {
		e := &Event{}
		if err := rows.Scan(&e.ID, &e.Title, &e.URL, &e.Source, &e.Category, &e.Points, &e.Date); err != nil {
			return nil, errors.Wrap(err, "error scanning event row")
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// GetCategoryTotals sums classified event points per category since a date.
func GetCategoryTotals(db *sql.DB, since string) ([]*CategoryTotal, error) {
	if db == nil {
		return nil, errors.New("db required")
	}

	rows, err := db.Query(selectCategoryTotalsSQL, nilIfEmpty(since))
	if err != nil {
		return nil, errors.Wrap(err, "error querying category totals")
	}
	defer rows.Close()

	out := make([]*CategoryTotal, 0)
	for rows.Next() {
		c := &CategoryTotal{}
		if err := rows.Scan(&c.Category, &c.Points, &c.Events); err != nil {
			return nil, errors.Wrap(err, "error scanning category total row")
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func nilIfEmpty(v string) any {
	if v == "" {
		return nil
	}
	return v
}
