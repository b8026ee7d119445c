package domain

// Aggregator combines per-objective scores into one plan score.
// Implementations provide different combination strategies such as the
// weighted arithmetic mean used by default.
type Aggregator interface {
	// Aggregate combines scores using the weight at the same index.
	// Both slices must have the same length.
	//
	// Implementations must reject:
	//   - empty score lists
	//   - NaN or infinite scores
	//   - negative weights or a zero weight sum
	//
	// Example:
	//
	//	scores := []float64{1, 0.5, 1}
	//	weights := []float64{1, 1, 2}
	//	combined, err := agg.Aggregate(scores, weights) // 0.875
	Aggregate(scores, weights []float64) (float64, error)
}
