package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCalculator_Defaults(t *testing.T) {
	c, err := NewCalculator(nil, nil, 0)
	require.NoError(t, err)
	assert.Len(t, c.Categories(), 9)
	assert.InDelta(t, 0.15, c.Weight(CategoryJudicial), 0.0001)
	assert.Equal(t, 0.0, c.Weight("bogus"))
}

func TestNewCalculator_BadWeights(t *testing.T) {
	_, err := NewCalculator(map[string]float64{"a": 0.5}, nil, 0)
	assert.Error(t, err)

	_, err = NewCalculator(map[string]float64{"a": 1.5, "b": -0.5}, nil, 0)
	assert.Error(t, err)
}

func TestNewCalculator_RuleUnknownCategory(t *testing.T) {
	rules := []Rule{{Keyword: "test", Category: "nope", Points: 3}}
	_, err := NewCalculator(nil, rules, 0)
	assert.Error(t, err)
}

func TestScore_Accumulates(t *testing.T) {
	c, err := NewCalculator(nil, nil, 0)
	require.NoError(t, err)

	titles := []string{
		"Administration announces new travel ban",
		"White House imposes tariff on imports",
	}
	scores := c.Score(titles)
	assert.Equal(t, 4.0, scores[CategoryCivilRights])
	assert.Equal(t, 3.0, scores[CategoryEconomy])
	assert.Equal(t, 0.0, scores[CategoryJudicial])
}

func TestScore_ClampsCategory(t *testing.T) {
	c, err := NewCalculator(nil, nil, 0)
	require.NoError(t, err)

	// four ban headlines would be 16 points unclamped
	titles := []string{"ban one", "ban two", "ban three", "ban four"}
	scores := c.Score(titles)
	assert.Equal(t, CategoryMax, scores[CategoryCivilRights])
}

func TestScore_CorrectiveFloorsAtZero(t *testing.T) {
	c, err := NewCalculator(nil, nil, 0)
	require.NoError(t, err)

	scores := c.Score([]string{"court ruling overturns detention policy"})
	assert.Equal(t, 0.0, scores[CategoryRuleOfLaw])
}

func TestScore_Bidirectional(t *testing.T) {
	c, err := NewCalculator(nil, nil, 0)
	require.NoError(t, err)

	scores := c.Score([]string{
		"new ban announced",
		"another ban enacted",
		"civil liberties upheld by appeals court",
	})
	// 4 + 4 - 5, floored per-step at 0 only when it would go negative
	assert.Equal(t, 3.0, scores[CategoryCivilRights])
}

func TestCalculate_Weighted(t *testing.T) {
	c, err := NewCalculator(nil, nil, 0)
	require.NoError(t, err)

	scores := c.Score([]string{"new ban announced"})
	// civil_rights: 4 * 10 * 0.15 = 6.0
	assert.Equal(t, 6.0, c.Calculate(scores))
}

func TestCalculate_AllMaxed(t *testing.T) {
	c, err := NewCalculator(nil, nil, 0)
	require.NoError(t, err)

	scores := make(map[string]float64)
	for _, cat := range c.Categories() {
		scores[cat] = CategoryMax
	}
	assert.Equal(t, 100.0, c.Calculate(scores))
}

func TestCombine_Decay(t *testing.T) {
	c, err := NewCalculator(nil, nil, 0.95)
	require.NoError(t, err)

	assert.Equal(t, 15.5, c.Combine(10, 6))
	assert.Equal(t, 6.0, c.Combine(0, 6))
}

func TestScaleToHistorical(t *testing.T) {
	c, err := NewCalculator(nil, nil, 0)
	require.NoError(t, err)

	ends := []float64{85, 80, 85} // avg ~83.33

	assert.Equal(t, 0.0, c.ScaleToHistorical(0, ends))
	assert.Equal(t, 0.0, c.ScaleToHistorical(-3, ends))
	assert.Equal(t, 0.0, c.ScaleToHistorical(10, nil))

	got := c.ScaleToHistorical(15, ends)
	assert.InDelta(t, 41.67, got, 0.01)

	// capped at 100
	assert.Equal(t, 100.0, c.ScaleToHistorical(50, ends))
}
