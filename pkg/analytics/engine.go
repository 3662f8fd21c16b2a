// Package analytics aggregates RMA cases into dashboard figures and
// chart-ready series.
package analytics

import (
	"math"
	"sort"
)

// ChartData represents data formatted for charts
type ChartData struct {
	Type     string    `json:"type"`
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Dataset represents a data series
type Dataset struct {
	Label           string      `json:"label"`
	Data            []float64   `json:"data"`
	BackgroundColor interface{} `json:"backgroundColor,omitempty"`
	BorderColor     interface{} `json:"borderColor,omitempty"`
	Fill            bool        `json:"fill,omitempty"`
}

// StatisticalSummary describes a sample of values.
type StatisticalSummary struct {
	Count  int     `json:"count"`
	Sum    float64 `json:"sum"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"std_dev"`
	P90    float64 `json:"p90"`
}

// Statistics summarises values. It returns nil for an empty sample.
func Statistics(values []float64) *StatisticalSummary {
	if len(values) == 0 {
		return nil
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	s := &StatisticalSummary{Count: len(values)}
	for _, v := range values {
		s.Sum += v
	}
	s.Mean = s.Sum / float64(s.Count)
	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	s.Median = percentile(sorted, 50)
	s.P90 = percentile(sorted, 90)

	var sq float64
	for _, v := range values {
		d := v - s.Mean
		sq += d * d
	}
	s.StdDev = math.Sqrt(sq / float64(s.Count))
	return s
}

// percentile interpolates linearly between the closest ranks.
func percentile(sorted []float64, p float64) float64 {
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}
	index := (p / 100) * float64(len(sorted)-1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))
	if lower == upper {
		return sorted[lower]
	}
	w := index - float64(lower)
	return sorted[lower]*(1-w) + sorted[upper]*w
}

// GrowthRate is the period-over-period change in percent; 0 when the
// previous period was 0.
func GrowthRate(previous, current float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

var baseColors = []string{
	"#3B82F6", // Blue
	"#10B981", // Green
	"#F59E0B", // Amber
	"#EF4444", // Red
	"#8B5CF6", // Purple
	"#EC4899", // Pink
	"#14B8A6", // Teal
	"#F97316", // Orange
	"#6366F1", // Indigo
	"#84CC16", // Lime
}

func chartColors(count int) []string {
	colors := make([]string, count)
	for i := range colors {
		colors[i] = baseColors[i%len(baseColors)]
	}
	return colors
}

// NewChart builds a single-series chart. Pie and doughnut charts colour
// every slice; line and bar charts use one colour for the series.
func NewChart(chartType, label string, labels []string, values []float64) *ChartData {
	ds := Dataset{Label: label, Data: values}
	switch chartType {
	case "pie", "doughnut":
		ds.BackgroundColor = chartColors(len(values))
		ds.BorderColor = "#ffffff"
	case "line":
		ds.BorderColor = baseColors[0]
		ds.Fill = false
	default:
		ds.BackgroundColor = baseColors[0]
		ds.BorderColor = baseColors[0]
	}
	return &ChartData{Type: chartType, Labels: labels, Datasets: []Dataset{ds}}
}
