package data

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), DataFileName)
	require.NoError(t, Init(path))

	db, err := GetDB(path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), DataFileName)
	require.NoError(t, Init(path))

	// idempotent on an existing file
	require.NoError(t, Init(path))

	db, err := GetDB(path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM snapshot").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestInit_EmptyPath(t *testing.T) {
	assert.Error(t, Init(""))
}
