package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveSnapshot_Upsert(t *testing.T) {
	db := setupTestDB(t)

	s := &Snapshot{Date: "2026-08-01", RawScore: 12.5, Score: 34.7, ShoeLevel: 2, Status: "Caution"}
	require.NoError(t, SaveSnapshot(db, s))

	// second write for the same date wins
	s.Score = 36.1
	s.ShoeLevel = 2
	require.NoError(t, SaveSnapshot(db, s))

	list, err := GetSnapshots(db, "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 36.1, list[0].Score)
}

func TestSaveSnapshot_Invalid(t *testing.T) {
	db := setupTestDB(t)

	assert.Error(t, SaveSnapshot(nil, &Snapshot{Date: "2026-08-01"}))
	assert.Error(t, SaveSnapshot(db, nil))
	assert.Error(t, SaveSnapshot(db, &Snapshot{}))
}

func TestGetSnapshots_Since(t *testing.T) {
	db := setupTestDB(t)

	_, err := SaveSnapshots(db, []*Snapshot{
		{Date: "2026-06-01", Score: 30, ShoeLevel: 2, Status: "Caution"},
		{Date: "2026-07-01", Score: 40, ShoeLevel: 2, Status: "Caution"},
		{Date: "2026-08-01", Score: 52, ShoeLevel: 3, Status: "Warning"},
	})
	require.NoError(t, err)

	all, err := GetSnapshots(db, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "2026-06-01", all[0].Date)

	recent, err := GetSnapshots(db, "2026-07-01")
	require.NoError(t, err)
	assert.Len(t, recent, 2)
}

func TestGetLatestSnapshot(t *testing.T) {
	db := setupTestDB(t)

	latest, err := GetLatestSnapshot(db)
	require.NoError(t, err)
	assert.Nil(t, latest)

	_, err = SaveSnapshots(db, []*Snapshot{
		{Date: "2026-07-01", Score: 40, ShoeLevel: 2, Status: "Caution"},
		{Date: "2026-08-01", Score: 52, ShoeLevel: 3, Status: "Warning"},
	})
	require.NoError(t, err)

	latest, err = GetLatestSnapshot(db)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "2026-08-01", latest.Date)
	assert.Equal(t, 52.0, latest.Score)
}
