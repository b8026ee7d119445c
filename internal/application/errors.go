package application

import "errors"

// Errors returned by the appraiser and the selection loop.
var (
	// ErrNilPool is returned when an appraiser is built without a pool.
	ErrNilPool = errors.New("pool cannot be nil")

	// ErrNoObjectives is returned when an appraiser is configured with an
	// empty objective set.
	ErrNoObjectives = errors.New("at least one objective is required")

	// ErrInvalidWeights is returned for a negative or non-finite weight, or
	// when the weights sum to zero.
	ErrInvalidWeights = errors.New("invalid objective weights")

	// ErrDuplicateObjective is returned when two objectives share a name.
	ErrDuplicateObjective = errors.New("duplicate objective name")

	// ErrInvalidObjectiveScore is returned when an objective produces NaN,
	// an infinity, or a value outside [0, 1]. It signals a defective
	// objective, never a bad plan.
	ErrInvalidObjectiveScore = errors.New("objective score out of range")

	// ErrNoCandidates is returned when selection is asked to choose among
	// zero plans.
	ErrNoCandidates = errors.New("no candidate plans")

	// ErrNoValidPlan is returned when every candidate violates a
	// precondition.
	ErrNoValidPlan = errors.New("no candidate plan passed validation")
)
