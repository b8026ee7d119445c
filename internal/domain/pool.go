// Package domain contains pure, dependency-free domain models and types
// for the team formation engine.
package domain

import (
	"cmp"
	"fmt"
	"slices"
)

// Vote is one participant's ranked goal preferences, most preferred first.
type Vote struct {
	// ParticipantID identifies the voter.
	ParticipantID string `json:"participant_id" yaml:"participant_id"`

	// RankedGoalIDs lists goal ids in preference order. Repeated ids are
	// tolerated and collapse to their best position.
	RankedGoalIDs []string `json:"ranked_goal_ids" yaml:"ranked_goal_ids"`
}

// Rank returns the position of goalID within the ranked list, or -1 when
// the voter did not rank it.
func (v Vote) Rank(goalID string) int { return slices.Index(v.RankedGoalIDs, goalID) }

// Goal is a candidate goal a team may pursue.
type Goal struct {
	// ID uniquely identifies the goal within a pool.
	ID string `json:"id" yaml:"id"`

	// RecommendedTeamSize is the ideal number of members for a team on
	// this goal.
	RecommendedTeamSize int `json:"recommended_team_size" yaml:"recommended_team_size"`
}

// AdvancedParticipant is a participant with additional placement constraints.
type AdvancedParticipant struct {
	// ParticipantID identifies the participant. It need not have voted.
	ParticipantID string `json:"participant_id" yaml:"participant_id"`

	// MaxTeams caps how many teams the participant should anchor.
	// Zero means no explicit cap.
	MaxTeams int `json:"max_teams,omitempty" yaml:"max_teams,omitempty"`
}

// Capped reports whether the participant carries an explicit team cap.
func (a AdvancedParticipant) Capped() bool { return a.MaxTeams > 0 }

// Pool is the fixed universe of votes, goals, and constrained participants
// for one formation cycle. A Pool is immutable once built and safe for
// concurrent readers.
type Pool struct {
	votes      []Vote
	voteIndex  map[string]int
	goals      []Goal
	goalIndex  map[string]int
	advanced   []AdvancedParticipant
	advIndex   map[string]int
	rankedGoal map[string]struct{}
}

// NewPool validates and normalizes the inputs into a Pool. Votes, goals and
// advanced participants are stored sorted by id so that scoring never
// depends on input order. Each ranked list keeps only the first occurrence
// of a goal id. All problems are reported together in a ValidationError
// wrapped with ErrInvalidPool.
func NewPool(votes []Vote, goals []Goal, advanced []AdvancedParticipant) (*Pool, error) {
	verr := NewValidationError("Pool")

	p := &Pool{
		votes:      make([]Vote, 0, len(votes)),
		voteIndex:  make(map[string]int, len(votes)),
		goals:      make([]Goal, 0, len(goals)),
		goalIndex:  make(map[string]int, len(goals)),
		advanced:   make([]AdvancedParticipant, 0, len(advanced)),
		advIndex:   make(map[string]int, len(advanced)),
		rankedGoal: make(map[string]struct{}),
	}

	seen := make(map[string]struct{}, len(votes))
	for i, v := range votes {
		if v.ParticipantID == "" {
			verr.AddErrorf("vote %d has empty participant id", i)
			continue
		}
		if _, dup := seen[v.ParticipantID]; dup {
			verr.AddErrorf("duplicate vote for participant %s", v.ParticipantID)
			continue
		}
		seen[v.ParticipantID] = struct{}{}
		p.votes = append(p.votes, Vote{
			ParticipantID: v.ParticipantID,
			RankedGoalIDs: dedupe(v.RankedGoalIDs),
		})
	}

	seen = make(map[string]struct{}, len(goals))
	for i, g := range goals {
		if g.ID == "" {
			verr.AddErrorf("goal %d has empty id", i)
			continue
		}
		if _, dup := seen[g.ID]; dup {
			verr.AddErrorf("duplicate goal %s", g.ID)
			continue
		}
		if g.RecommendedTeamSize < 1 {
			verr.AddErrorf("goal %s has recommended team size %d, must be at least 1", g.ID, g.RecommendedTeamSize)
			continue
		}
		seen[g.ID] = struct{}{}
		p.goals = append(p.goals, g)
	}

	seen = make(map[string]struct{}, len(advanced))
	for i, a := range advanced {
		if a.ParticipantID == "" {
			verr.AddErrorf("advanced participant %d has empty id", i)
			continue
		}
		if _, dup := seen[a.ParticipantID]; dup {
			verr.AddErrorf("duplicate advanced participant %s", a.ParticipantID)
			continue
		}
		if a.MaxTeams < 0 {
			verr.AddErrorf("advanced participant %s has negative max teams %d", a.ParticipantID, a.MaxTeams)
			continue
		}
		seen[a.ParticipantID] = struct{}{}
		p.advanced = append(p.advanced, a)
	}

	if verr.HasErrors() {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPool, verr)
	}

	slices.SortFunc(p.votes, func(a, b Vote) int { return cmp.Compare(a.ParticipantID, b.ParticipantID) })
	slices.SortFunc(p.goals, func(a, b Goal) int { return cmp.Compare(a.ID, b.ID) })
	slices.SortFunc(p.advanced, func(a, b AdvancedParticipant) int {
		return cmp.Compare(a.ParticipantID, b.ParticipantID)
	})

	for i, v := range p.votes {
		p.voteIndex[v.ParticipantID] = i
		for _, g := range v.RankedGoalIDs {
			p.rankedGoal[g] = struct{}{}
		}
	}
	for i, g := range p.goals {
		p.goalIndex[g.ID] = i
	}
	for i, a := range p.advanced {
		p.advIndex[a.ParticipantID] = i
	}

	return p, nil
}

// Votes returns all votes sorted by participant id.
// The returned slice is shared and MUST NOT be modified.
func (p *Pool) Votes() []Vote { return p.votes }

// Vote returns the vote cast by participantID, if any.
func (p *Pool) Vote(participantID string) (Vote, bool) {
	i, ok := p.voteIndex[participantID]
	if !ok {
		return Vote{}, false
	}
	return p.votes[i], true
}

// Goals returns all goals sorted by id.
// The returned slice is shared and MUST NOT be modified.
func (p *Pool) Goals() []Goal { return p.goals }

// Goal looks up a goal by id.
func (p *Pool) Goal(id string) (Goal, bool) {
	i, ok := p.goalIndex[id]
	if !ok {
		return Goal{}, false
	}
	return p.goals[i], true
}

// AdvancedParticipants returns the advanced participants sorted by id.
// The returned slice is shared and MUST NOT be modified.
func (p *Pool) AdvancedParticipants() []AdvancedParticipant { return p.advanced }

// Advanced looks up the constraints for an advanced participant.
func (p *Pool) Advanced(participantID string) (AdvancedParticipant, bool) {
	i, ok := p.advIndex[participantID]
	if !ok {
		return AdvancedParticipant{}, false
	}
	return p.advanced[i], true
}

// IsAdvanced reports whether participantID is an advanced participant.
func (p *Pool) IsAdvanced(participantID string) bool {
	_, ok := p.advIndex[participantID]
	return ok
}

// HasInterest reports whether any voter ranked goalID.
func (p *Pool) HasInterest(goalID string) bool {
	_, ok := p.rankedGoal[goalID]
	return ok
}

// WithoutAdvanced returns a copy of the pool with no advanced participants.
func (p *Pool) WithoutAdvanced() *Pool {
	cp := *p
	cp.advanced = nil
	cp.advIndex = map[string]int{}
	return &cp
}

// dedupe returns ids with repeats removed, keeping first occurrences.
func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
