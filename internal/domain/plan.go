package domain

// Team is one goal-pursuing group within a candidate plan.
type Team struct {
	// GoalID references a goal in the bound Pool.
	GoalID string `json:"goal_id" yaml:"goal_id"`

	// TeamSize must equal len(ParticipantIDs).
	TeamSize int `json:"team_size" yaml:"team_size"`

	// MatchesRecommendedSize is the generator's claim that TeamSize equals
	// the goal's recommended size.
	MatchesRecommendedSize bool `json:"matches_recommended_size" yaml:"matches_recommended_size"`

	// ParticipantIDs lists the members in placement order.
	ParticipantIDs []string `json:"participant_ids" yaml:"participant_ids"`
}

// Plan is one candidate partition of participants into teams. Plans are
// built by an external generator and treated as read-only.
type Plan struct {
	// ID optionally labels the candidate for reporting.
	ID string `json:"id,omitempty" yaml:"id,omitempty"`

	// SeatCount is the generator's total of participant slots. It is
	// informational; zero means unspecified.
	SeatCount int `json:"seat_count,omitempty" yaml:"seat_count,omitempty"`

	// Teams holds the partition.
	Teams []Team `json:"teams" yaml:"teams"`
}

// Seats returns the sum of all team member counts.
func (p *Plan) Seats() int {
	n := 0
	for _, t := range p.Teams {
		n += len(t.ParticipantIDs)
	}
	return n
}

// Placements maps every placed participant to the index of its team.
// On a plan that places someone twice the last placement wins; validated
// plans never do.
func (p *Plan) Placements() map[string]int {
	out := make(map[string]int, p.Seats())
	for i, t := range p.Teams {
		for _, id := range t.ParticipantIDs {
			out[id] = i
		}
	}
	return out
}
