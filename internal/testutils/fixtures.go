// Package testutils provides fixtures and test data generators for the
// project's test suites. These components are intended for internal use
// and are not part of the public API.
package testutils

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ahrav/teamform/internal/domain"
)

// WorkedExampleVotes are the eight voters of the reference formation cycle.
// A0 and A1 are advanced; p2 ranks the same goal twice.
func WorkedExampleVotes() []domain.Vote {
	return []domain.Vote{
		{ParticipantID: "A0", RankedGoalIDs: []string{"g1", "g2"}},
		{ParticipantID: "p0", RankedGoalIDs: []string{"g1", "g2"}},
		{ParticipantID: "p1", RankedGoalIDs: []string{"g1", "g2"}},
		{ParticipantID: "A1", RankedGoalIDs: []string{"g2", "g1"}},
		{ParticipantID: "p2", RankedGoalIDs: []string{"g2", "g2"}},
		{ParticipantID: "p3", RankedGoalIDs: []string{"g2", "g1"}},
		{ParticipantID: "p4", RankedGoalIDs: []string{"g2", "g1"}},
		{ParticipantID: "p5", RankedGoalIDs: []string{"g2", "g1"}},
	}
}

// WorkedExampleGoals are the two goals of the reference cycle, each with a
// recommended team size of three.
func WorkedExampleGoals() []domain.Goal {
	return []domain.Goal{
		{ID: "g1", RecommendedTeamSize: 3},
		{ID: "g2", RecommendedTeamSize: 3},
	}
}

// WorkedExampleAdvanced marks A0 as unconstrained and caps A1 at one team.
func WorkedExampleAdvanced() []domain.AdvancedParticipant {
	return []domain.AdvancedParticipant{
		{ParticipantID: "A0"},
		{ParticipantID: "A1", MaxTeams: 1},
	}
}

// WorkedExamplePool builds the reference pool.
func WorkedExamplePool(t testing.TB) *domain.Pool {
	t.Helper()
	return MustPool(t, WorkedExampleVotes(), WorkedExampleGoals(), WorkedExampleAdvanced())
}

// MustPool builds a pool or fails the test.
func MustPool(t testing.TB, votes []domain.Vote, goals []domain.Goal, adv []domain.AdvancedParticipant) *domain.Pool {
	t.Helper()
	pool, err := domain.NewPool(votes, goals, adv)
	require.NoError(t, err)
	return pool
}

// ReferencePlan places every voter on their first choice in teams of
// three. The non-voter n0 fills the last seat. It scores exactly 1.
func ReferencePlan() *domain.Plan {
	return &domain.Plan{
		ID:        "reference",
		SeatCount: 9,
		Teams: []domain.Team{
			NewTeam("g1", true, "A0", "p0", "p1"),
			NewTeam("g2", true, "A1", "p2", "p5"),
			NewTeam("g2", true, "p3", "p4", "n0"),
		},
	}
}

// SecondChoicePlan moves p3 and p4 onto their second choice g1. It scores
// exactly 1 under the default objectives, which credit the top two ranks.
func SecondChoicePlan() *domain.Plan {
	return &domain.Plan{
		ID:        "second-choice",
		SeatCount: 9,
		Teams: []domain.Team{
			NewTeam("g1", true, "A0", "p0", "p1"),
			NewTeam("g1", true, "p3", "p4", "n0"),
			NewTeam("g2", true, "A1", "p2", "p5"),
		},
	}
}

// UnrankedPlacementPlan puts p2, who only ranked g2, on a g1 team. Every
// other voter sits on one of their top two choices.
func UnrankedPlacementPlan() *domain.Plan {
	return &domain.Plan{
		ID:        "unranked",
		SeatCount: 9,
		Teams: []domain.Team{
			NewTeam("g1", true, "A0", "p0", "p1"),
			NewTeam("g1", true, "p2", "p3", "p4"),
			NewTeam("g2", true, "A1", "p5", "n0"),
		},
	}
}

// DoublePlacedPlan seats A0 on two teams and therefore violates the plan
// preconditions.
func DoublePlacedPlan() *domain.Plan {
	return &domain.Plan{
		ID:        "double-placed",
		SeatCount: 9,
		Teams: []domain.Team{
			NewTeam("g1", true, "A0", "p0", "p1"),
			NewTeam("g1", true, "A0", "p3", "p4"),
			NewTeam("g2", true, "A1", "p2", "p5"),
		},
	}
}

// NewTeam builds a team whose TeamSize matches its member count.
func NewTeam(goalID string, matches bool, ids ...string) domain.Team {
	return domain.Team{
		GoalID:                 goalID,
		TeamSize:               len(ids),
		MatchesRecommendedSize: matches,
		ParticipantIDs:         ids,
	}
}
