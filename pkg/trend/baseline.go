package trend

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// Baseline is a named historical drift trajectory, one value per stage.
type Baseline struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// DefaultBaselines returns the built-in historical reference trajectories.
func DefaultBaselines() []Baseline {
	return []Baseline{
		{Name: "Weimar Germany (1929-1933)", Values: []float64{20, 25, 30, 40, 55, 70, 85}},
		{Name: "Chile (1970-1973)", Values: []float64{15, 20, 28, 40, 60, 80}},
		{Name: "Turkey (2013-2017)", Values: []float64{18, 22, 30, 45, 65, 78, 85}},
	}
}

// TerminalValues returns the final value of each baseline trajectory.
func TerminalValues(baselines []Baseline) []float64 {
	out := make([]float64, 0, len(baselines))
	for _, b := range baselines {
		if len(b.Values) > 0 {
			out = append(out, b.Values[len(b.Values)-1])
		}
	}
	return out
}

// Comparison locates the current score on one baseline trajectory.
type Comparison struct {
	Baseline string  `json:"baseline"`
	Stage    int     `json:"stage"`
	Stages   int     `json:"stages"`
	Value    float64 `json:"value"`
	Summary  string  `json:"summary"`
}

// Compare finds, for each baseline, the stage whose value is closest to
// the current score.
func Compare(score float64, baselines []Baseline) ([]Comparison, error) {
	if len(baselines) == 0 {
		return nil, errors.New("no baselines to compare against")
	}

	out := make([]Comparison, 0, len(baselines))
	for _, b := range baselines {
		if len(b.Values) == 0 {
			continue
		}
		stage := 0
		best := math.Abs(b.Values[0] - score)
		for i, v := range b.Values[1:] {
			if d := math.Abs(v - score); d < best {
				best = d
				stage = i + 1
			}
		}
		c := Comparison{
			Baseline: b.Name,
			Stage:    stage + 1,
			Stages:   len(b.Values),
			Value:    b.Values[stage],
		}
		c.Summary = fmt.Sprintf("comparable to %s at stage %d of %d (%.0f)",
			b.Name, c.Stage, c.Stages, c.Value)
		out = append(out, c)
	}
	return out, nil
}
