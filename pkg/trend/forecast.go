// Package trend derives short-term projections and historical context
// from the daily index snapshots.
package trend

import (
	"math"
	"time"

	"github.com/pkg/errors"
)

const (
	// WindowDaysDefault is the snapshot window used to fit the trend.
	WindowDaysDefault = 30

	// flatSlopeEpsilon is the points/day magnitude below which the
	// velocity is reported as flat.
	flatSlopeEpsilon = 0.05

	scoreMin = 0.0
	scoreMax = 100.0

	daysPerMonth = 30
)

// Velocity labels.
const (
	VelocityRising  = "rising"
	VelocityFalling = "falling"
	VelocityFlat    = "flat"
)

// Point is a dated index observation.
type Point struct {
	Date  time.Time `json:"date"`
	Score float64   `json:"score"`
}

// Projection is a forecasted index value at a future horizon.
type Projection struct {
	Months int     `json:"months"`
	Score  float64 `json:"score"`
}

// Forecast holds the fitted trend and its projections.
type Forecast struct {
	WindowDays  int          `json:"window_days"`
	Samples     int          `json:"samples"`
	Slope       float64      `json:"slope_per_day"`
	Velocity    string       `json:"velocity"`
	Current     float64      `json:"current"`
	Projections []Projection `json:"projections"`
}

// ForecastTrend fits an ordinary least squares line through the points and
// projects the index at the given month horizons. Points must be in
// ascending date order. At least two points are required.
func ForecastTrend(points []Point, windowDays int, horizons ...int) (*Forecast, error) {
	if len(points) < 2 {
		return nil, errors.New("at least two snapshots required for a forecast")
	}
	if windowDays < 2 {
		windowDays = WindowDaysDefault
	}
	if len(horizons) == 0 {
		horizons = []int{3, 6}
	}

	cutoff := points[len(points)-1].Date.AddDate(0, 0, -windowDays)
	window := points
	for i, p := range points {
		if !p.Date.Before(cutoff) {
			window = points[i:]
			break
		}
	}
	if len(window) < 2 {
		window = points[len(points)-2:]
	}

	slope, intercept := leastSquares(window)
	lastDay := dayIndex(window[0].Date, window[len(window)-1].Date)
	current := window[len(window)-1].Score

	f := &Forecast{
		WindowDays: windowDays,
		Samples:    len(window),
		Slope:      round2(slope),
		Velocity:   velocity(slope),
		Current:    current,
	}

	for _, m := range horizons {
		x := lastDay + float64(m*daysPerMonth)
		v := intercept + slope*x
		f.Projections = append(f.Projections, Projection{
			Months: m,
			Score:  round2(clamp(v)),
		})
	}
	return f, nil
}

// leastSquares fits y = intercept + slope*x with x in days since the
// first point.
func leastSquares(points []Point) (slope, intercept float64) {
	n := float64(len(points))
	var sumX, sumY, sumXY, sumXX float64
	for _, p := range points {
		x := dayIndex(points[0].Date, p.Date)
		sumX += x
		sumY += p.Score
		sumXY += x * p.Score
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, sumY / n
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}

func velocity(slope float64) string {
	switch {
	case slope > flatSlopeEpsilon:
		return VelocityRising
	case slope < -flatSlopeEpsilon:
		return VelocityFalling
	default:
		return VelocityFlat
	}
}

func dayIndex(first, d time.Time) float64 {
	return d.Sub(first).Hours() / 24
}

func clamp(v float64) float64 {
	return math.Min(math.Max(v, scoreMin), scoreMax)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
