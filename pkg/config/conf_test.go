package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadOrCreate_CreatesDefault(t *testing.T) {
	dir := t.TempDir()

	c, err := ReadOrCreate(dir)
	require.NoError(t, err)
	require.NotNil(t, c)

	assert.NotEmpty(t, c.Feeds)
	assert.NotEmpty(t, c.ActionsURL)
	assert.Len(t, c.Weights, 9)
	assert.NotEmpty(t, c.Rules)
	assert.Len(t, c.Baselines, 3)
	assert.Equal(t, 0.95, c.DecayFactor)
	assert.FileExists(t, filepath.Join(dir, configFileName))
}

func TestReadOrCreate_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	c, err := ReadOrCreate(dir)
	require.NoError(t, err)

	c.DecayFactor = 0.9
	c.Feeds = []string{"https://example.com/feed.xml"}
	require.NoError(t, Save(dir, c))

	c2, err := ReadOrCreate(dir)
	require.NoError(t, err)
	assert.Equal(t, 0.9, c2.DecayFactor)
	assert.Equal(t, c.Feeds, c2.Feeds)
}

func TestReadOrCreate_EmptyDir(t *testing.T) {
	_, err := ReadOrCreate("")
	assert.Error(t, err)
}

func TestReadOrCreate_InvalidWeights(t *testing.T) {
	dir := t.TempDir()
	bad := `
feeds: ["https://example.com/feed.xml"]
decay_factor: 0.95
weights:
  judicial: 0.5
  media: 0.1
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte(bad), 0600))

	_, err := ReadOrCreate(dir)
	assert.Error(t, err)
}

func TestReadOrCreate_InvalidDecay(t *testing.T) {
	dir := t.TempDir()
	bad := `
feeds: ["https://example.com/feed.xml"]
decay_factor: 1.5
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte(bad), 0600))

	_, err := ReadOrCreate(dir)
	assert.Error(t, err)
}

func TestReadOrCreate_NoSources(t *testing.T) {
	dir := t.TempDir()
	bad := `
decay_factor: 0.95
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte(bad), 0600))

	_, err := ReadOrCreate(dir)
	assert.Error(t, err)
}

func TestSave_NilConfig(t *testing.T) {
	assert.Error(t, Save(t.TempDir(), nil))
	assert.Error(t, Save("", getDefaultConfig()))
}
