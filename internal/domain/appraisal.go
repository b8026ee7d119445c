package domain

// ObjectiveScore records one objective's contribution to an appraisal.
type ObjectiveScore struct {
	// Objective is the registered name of the objective.
	Objective string `json:"objective"`

	// Weight is the non-negative weight the objective carried.
	Weight float64 `json:"weight"`

	// Score is the objective's normalized value in [0, 1].
	Score float64 `json:"score"`
}

// Appraisal is the scored outcome for a single candidate plan. It carries
// the combined score and the per-objective breakdown that produced it.
type Appraisal struct {
	// PlanID echoes the appraised plan's label.
	PlanID string `json:"plan_id,omitempty"`

	// Score is the weighted mean of all objective scores, in [0, 1].
	Score float64 `json:"score"`

	// Objectives lists each objective's score in registration order.
	// It is omitted from JSON when empty to reduce payload size.
	Objectives []ObjectiveScore `json:"objectives,omitempty"`
}

// ObjectiveScore returns the recorded score for the named objective.
func (a *Appraisal) ObjectiveScore(name string) (float64, bool) {
	for _, o := range a.Objectives {
		if o.Objective == name {
			return o.Score, true
		}
	}
	return 0, false
}
