package trend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultBaselines(t *testing.T) {
	baselines := DefaultBaselines()
	require.Len(t, baselines, 3)
	for _, b := range baselines {
		assert.NotEmpty(t, b.Name)
		assert.NotEmpty(t, b.Values)
	}
}

func TestTerminalValues(t *testing.T) {
	vals := TerminalValues(DefaultBaselines())
	assert.Equal(t, []float64{85, 80, 85}, vals)

	assert.Empty(t, TerminalValues(nil))
	assert.Empty(t, TerminalValues([]Baseline{{Name: "empty"}}))
}

func TestCompare(t *testing.T) {
	comps, err := Compare(42, DefaultBaselines())
	require.NoError(t, err)
	require.Len(t, comps, 3)

	// Weimar values: 20 25 30 40 55 70 85 -> closest to 42 is stage 4 (40)
	assert.Equal(t, 4, comps[0].Stage)
	assert.Equal(t, 7, comps[0].Stages)
	assert.Equal(t, 40.0, comps[0].Value)
	assert.Contains(t, comps[0].Summary, "Weimar Germany")

	// Chile values: 15 20 28 40 60 80 -> closest to 42 is stage 4 (40)
	assert.Equal(t, 4, comps[1].Stage)

	// Turkey values: 18 22 30 45 65 78 85 -> closest to 42 is stage 4 (45)
	assert.Equal(t, 45.0, comps[2].Value)
}

func TestCompare_NoBaselines(t *testing.T) {
	_, err := Compare(42, nil)
	assert.Error(t, err)
}

func TestCompare_TiePrefersEarlierStage(t *testing.T) {
	b := []Baseline{{Name: "tie", Values: []float64{10, 30}}}
	comps, err := Compare(20, b)
	require.NoError(t, err)
	assert.Equal(t, 1, comps[0].Stage)
}
