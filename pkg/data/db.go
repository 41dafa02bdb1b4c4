// Package data implements the SQLite persistence layer for events,
// daily index snapshots, and historical baselines.
package data

import (
	"database/sql"
	"embed"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

const (
	// DataFileName is the default database file name in the app home dir.
	DataFileName = "data.db"

	// DateFormat is the canonical date layout used across tables.
	DateFormat = "2006-01-02"
)

//go:embed sql/*
var f embed.FS

// Init creates the database schema for a given file path when missing.
func Init(dbFilePath string) error {
	if dbFilePath == "" {
		return errors.New("dbFilePath not specified")
	}

	if _, err := os.Stat(dbFilePath); errors.Is(err, os.ErrNotExist) {
		db, err := GetDB(dbFilePath)
		if err != nil {
			return errors.Wrapf(err, "error opening database: %s", dbFilePath)
		}
		defer db.Close()

		log.Debug("creating db schema...")
		b, err := f.ReadFile("sql/ddl.sql")
		if err != nil {
			return errors.Wrap(err, "failed to read the schema creation file")
		}
		if _, err := db.Exec(string(b)); err != nil {
			return errors.Wrapf(err, "failed to create database schema in: %s", dbFilePath)
		}
		log.Debug("db schema created")
	}

	return nil
}

// GetDB opens the SQLite database at path.
func GetDB(path string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database: %s", path)
	}
	return conn, nil
}
