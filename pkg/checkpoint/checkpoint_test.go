package checkpoint

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_EmptyPath(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)
}

func TestMeaningfulChange_FirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), CacheFileName)
	c, err := New(path)
	require.NoError(t, err)

	changed, err := c.MeaningfulChange([]string{"president signs executive order"})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.FileExists(t, path)
}

func TestMeaningfulChange_IdenticalHash(t *testing.T) {
	path := filepath.Join(t.TempDir(), CacheFileName)
	c, err := New(path)
	require.NoError(t, err)

	titles := []string{"president signs executive order", "congress debates border security"}
	changed, err := c.MeaningfulChange(titles)
	require.NoError(t, err)
	require.True(t, changed)

	changed, err = c.MeaningfulChange(titles)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestMeaningfulChange_HighSimilarity(t *testing.T) {
	path := filepath.Join(t.TempDir(), CacheFileName)
	c, err := New(path)
	require.NoError(t, err)

	first := []string{
		"president signs executive order on trade policy and tariffs",
		"congress debates the annual border security funding bill",
	}
	changed, err := c.MeaningfulChange(first)
	require.NoError(t, err)
	require.True(t, changed)

	// one trailing word changed, nearly identical term vector
	second := []string{
		"president signs executive order on trade policy and tariffs",
		"congress debates the annual border security funding measure",
	}
	changed, err = c.MeaningfulChange(second)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestMeaningfulChange_DifferentContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), CacheFileName)
	c, err := New(path)
	require.NoError(t, err)

	changed, err := c.MeaningfulChange([]string{"court ruling overturns travel restrictions"})
	require.NoError(t, err)
	require.True(t, changed)

	changed, err = c.MeaningfulChange([]string{"markets rally after earnings surprise upside"})
	require.NoError(t, err)
	assert.True(t, changed)
}

func TestMeaningfulChange_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), CacheFileName)

	c1, err := New(path)
	require.NoError(t, err)
	_, err = c1.MeaningfulChange([]string{"voter suppression reported in three counties"})
	require.NoError(t, err)

	c2, err := New(path)
	require.NoError(t, err)
	changed, err := c2.MeaningfulChange([]string{"voter suppression reported in three counties"})
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity("a b c", "a b c"), 0.0001)
	assert.Equal(t, 0.0, cosineSimilarity("a b c", "x y z"))
	assert.Equal(t, 0.0, cosineSimilarity("", "a"))

	sim := cosineSimilarity("a b c d", "a b c e")
	assert.Greater(t, sim, 0.5)
	assert.Less(t, sim, 1.0)
}
