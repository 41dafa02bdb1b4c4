package index

import (
	"math"

	"github.com/pkg/errors"
)

const (
	// CategoryMax is the cap on any single category score.
	CategoryMax = 10.0

	// ScoreMax is the upper bound of the scaled index.
	ScoreMax = 100.0

	// DecayFactorDefault is applied to the previous day's raw score
	// before adding the current day's contribution.
	DecayFactorDefault = 0.95

	// rawFullScale is the raw score treated as equivalent to the average
	// terminal value of the historical baselines.
	rawFullScale = 30.0
)

// Category identifiers used by the default weight table and severity rules.
const (
	CategoryJudicial      = "judicial"
	CategoryCivilService  = "civil_service"
	CategoryCivilRights   = "civil_rights"
	CategoryMedia         = "media"
	CategoryRuleOfLaw     = "rule_of_law"
	CategoryPolarization  = "polarization"
	CategoryEconomy       = "economy"
	CategoryForeignPolicy = "foreign_policy"
	CategoryElections     = "elections"
)

// DefaultWeights returns the default category weight table (sums to 1.0).
func DefaultWeights() map[string]float64 {
	return map[string]float64{
		CategoryJudicial:      0.15,
		CategoryCivilService:  0.15,
		CategoryCivilRights:   0.15,
		CategoryMedia:         0.10,
		CategoryRuleOfLaw:     0.10,
		CategoryPolarization:  0.10,
		CategoryEconomy:       0.10,
		CategoryForeignPolicy: 0.05,
		CategoryElections:     0.10,
	}
}

// Calculator computes the Authoritarian Drift Index from classified events.
type Calculator struct {
	weights     map[string]float64
	rules       []Rule
	decayFactor float64
	fullScale   float64
}

// NewCalculator creates a Calculator. Nil or empty weights/rules select the
// defaults. Weights must sum to ~1.0.
func NewCalculator(weights map[string]float64, rules []Rule, decayFactor float64) (*Calculator, error) {
	if len(weights) == 0 {
		weights = DefaultWeights()
	}
	var sum float64
	for cat, w := range weights {
		if w < 0 {
			return nil, errors.Errorf("negative weight for category: %s", cat)
		}
		sum += w
	}
	if math.Abs(sum-1.0) > 0.001 {
		return nil, errors.Errorf("category weights must sum to 1.0, got %.3f", sum)
	}

	if len(rules) == 0 {
		rules = DefaultRules()
	}
	for _, r := range rules {
		if _, ok := weights[r.Category]; !ok {
			return nil, errors.Errorf("rule %q references unknown category: %s", r.Keyword, r.Category)
		}
	}

	if decayFactor <= 0 || decayFactor > 1 {
		decayFactor = DecayFactorDefault
	}

	// copy to keep the table immutable after construction
	w := make(map[string]float64, len(weights))
	for k, v := range weights {
		w[k] = v
	}

	return &Calculator{
		weights:     w,
		rules:       rules,
		decayFactor: decayFactor,
		fullScale:   rawFullScale,
	}, nil
}

// Categories returns the known category names.
func (c *Calculator) Categories() []string {
	out := make([]string, 0, len(c.weights))
	for k := range c.weights {
		out = append(out, k)
	}
	return out
}

// Rules returns the active severity rule set.
func (c *Calculator) Rules() []Rule {
	return c.rules
}

// Weight returns the weight for a category (0 if unknown).
func (c *Calculator) Weight(category string) float64 {
	return c.weights[category]
}

// Score matches each title against the severity rules and accumulates
// points per category. Category totals clamp to [0, CategoryMax].
func (c *Calculator) Score(titles []string) map[string]float64 {
	scores := make(map[string]float64, len(c.weights))
	for cat := range c.weights {
		scores[cat] = 0
	}
	for _, title := range titles {
		for _, m := range MatchRules(c.rules, title) {
			v := scores[m.Category] + float64(m.Points)
			scores[m.Category] = math.Min(math.Max(v, 0), CategoryMax)
		}
	}
	return scores
}

// Calculate folds per-category scores into the weighted raw index.
func (c *Calculator) Calculate(scores map[string]float64) float64 {
	var total float64
	for cat, w := range c.weights {
		total += scores[cat] * 10 * w
	}
	return round2(total)
}

// Combine applies daily decay to the previous raw score and adds the
// current day's contribution.
func (c *Calculator) Combine(prev, today float64) float64 {
	return round2(prev*c.decayFactor + today)
}

// ScaleToHistorical maps a raw score onto the 0-100 scale anchored to the
// average terminal value of the historical baseline trajectories.
func (c *Calculator) ScaleToHistorical(raw float64, baselineEnds []float64) float64 {
	if raw <= 0 || len(baselineEnds) == 0 {
		return 0
	}
	var sum float64
	for _, v := range baselineEnds {
		sum += v
	}
	avgEnd := sum / float64(len(baselineEnds))
	scaled := (raw / c.fullScale) * avgEnd
	return round2(math.Min(scaled, ScoreMax))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
