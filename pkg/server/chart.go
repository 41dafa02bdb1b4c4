package server

// Chart payloads rendered by the dashboard front end.

var chartColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// ChartPoint is one labeled value in a series.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ChartSeries is a named sequence of points.
type ChartSeries struct {
	Name string       `json:"name"`
	Data []ChartPoint `json:"data"`
}

// ChartConfig is a renderable chart description.
type ChartConfig struct {
	ChartType string        `json:"chart_type"`
	Title     string        `json:"title"`
	XAxis     string        `json:"x_axis,omitempty"`
	YAxis     string        `json:"y_axis,omitempty"`
	Series    []ChartSeries `json:"series"`
	Colors    []string      `json:"colors"`
}

// buildChart assembles a line chart from the given series.
func buildChart(title, xAxis, yAxis string, series ...ChartSeries) *ChartConfig {
	return &ChartConfig{
		ChartType: "line",
		Title:     title,
		XAxis:     xAxis,
		YAxis:     yAxis,
		Series:    series,
		Colors:    assignColors(len(series)),
	}
}

func assignColors(n int) []string {
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, chartColors[i%len(chartColors)])
	}
	return out
}
