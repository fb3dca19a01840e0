package render

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/ukaji3/heatgrid-go/pkg/heatgrid/models"
)

// Aggregate builds the per-sheet matrix: one row per record, one column per
// field series, each cell the arithmetic mean of that series.
// It returns nil when there are no records.
func Aggregate(records []models.Record) *mat.Dense {
	if len(records) == 0 {
		return nil
	}

	data := make([]float64, 0, len(records)*models.FieldCount)
	for _, r := range records {
		for _, series := range r.Series() {
			data = append(data, seriesMean(series))
		}
	}
	return mat.NewDense(len(records), models.FieldCount, data)
}

// seriesMean returns the mean of series, or 0 for an empty series.
func seriesMean(series []float64) float64 {
	mean, err := stats.Mean(stats.Float64Data(series))
	if err != nil {
		return 0
	}
	return mean
}

// Bounds returns the minimum and maximum over every cell of m.
// m must be non-empty.
func Bounds(m *mat.Dense) (lo, hi float64) {
	data := m.RawMatrix().Data
	return floats.Min(data), floats.Max(data)
}

// Ratio places v within [lo, hi]. A degenerate range maps to the midpoint 0.5.
func Ratio(v, lo, hi float64) float64 {
	if hi == lo {
		return 0.5
	}
	r := (v - lo) / (hi - lo)
	if math.IsNaN(r) {
		return 0.5
	}
	return r
}
