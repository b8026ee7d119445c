package application

import (
	"errors"
	"fmt"
	"math"

	"github.com/ahrav/teamform/internal/domain"
)

var _ domain.Aggregator = WeightedMean{}

// Errors returned by WeightedMean.
var (
	// ErrEmptyScores is returned when aggregating zero scores.
	ErrEmptyScores = errors.New("cannot aggregate empty scores")

	// ErrLengthMismatch is returned when scores and weights differ in length.
	ErrLengthMismatch = errors.New("scores and weights differ in length")

	// ErrNonFiniteScore is returned when a score is NaN or infinite.
	ErrNonFiniteScore = errors.New("score is not finite")
)

// WeightedMean combines scores as Σ w·s / Σ w.
//
// Accumulation runs in slice order, so identical inputs always produce
// bit-identical results. When every score equals 1 the result is exactly 1,
// and for scores within [0, 1] the result never leaves that range.
type WeightedMean struct{}

// Aggregate implements domain.Aggregator.
func (WeightedMean) Aggregate(scores, weights []float64) (float64, error) {
	if len(scores) == 0 {
		return 0, ErrEmptyScores
	}
	if len(scores) != len(weights) {
		return 0, fmt.Errorf("%w: %d scores, %d weights", ErrLengthMismatch, len(scores), len(weights))
	}

	var weighted, total float64
	for i, s := range scores {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return 0, fmt.Errorf("%w: index %d", ErrNonFiniteScore, i)
		}
		w := weights[i]
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return 0, fmt.Errorf("%w: weight %v at index %d", ErrInvalidWeights, w, i)
		}
		weighted += w * s
		total += w
	}

	if total == 0 {
		return 0, fmt.Errorf("%w: weights sum to zero", ErrInvalidWeights)
	}
	return weighted / total, nil
}
