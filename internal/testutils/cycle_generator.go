package testutils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/ahrav/teamform/internal/domain"
)

// SyntheticCycle is a generated pool together with candidate plans.
type SyntheticCycle struct {
	Votes    []domain.Vote
	Goals    []domain.Goal
	Advanced []domain.AdvancedParticipant
	Plans    []*domain.Plan
}

// CycleShape controls the size of a generated cycle.
type CycleShape struct {
	Participants int
	Goals        int
	Advanced     int
	Plans        int
	TeamSize     int
}

// DefaultCycleShape returns a small but non-trivial cycle shape.
func DefaultCycleShape() CycleShape {
	return CycleShape{Participants: 24, Goals: 5, Advanced: 3, Plans: 16, TeamSize: 4}
}

// GenerateSyntheticCycle creates a random formation cycle for testing.
// The seed parameter controls randomization - use time.Now().UnixNano() for
// non-deterministic generation or a fixed value for reproducible tests.
// Every generated plan is structurally valid against the generated pool.
func GenerateSyntheticCycle(shape CycleShape, seed int64) *SyntheticCycle {
	rng := rand.New(rand.NewSource(seed))

	cycle := &SyntheticCycle{
		Votes:    make([]domain.Vote, 0, shape.Participants),
		Goals:    make([]domain.Goal, 0, shape.Goals),
		Advanced: make([]domain.AdvancedParticipant, 0, shape.Advanced),
		Plans:    make([]*domain.Plan, 0, shape.Plans),
	}

	goalIDs := make([]string, shape.Goals)
	for i := range shape.Goals {
		goalIDs[i] = fmt.Sprintf("goal-%02d", i)
		size := shape.TeamSize
		if rng.Intn(3) == 0 {
			size++
		}
		cycle.Goals = append(cycle.Goals, domain.Goal{ID: goalIDs[i], RecommendedTeamSize: size})
	}

	participants := make([]string, shape.Participants)
	for i := range shape.Participants {
		participants[i] = fmt.Sprintf("player-%03d", i)

		// Roughly one in eight participants does not vote.
		if rng.Intn(8) == 0 {
			continue
		}
		ranked := make([]string, 1+rng.Intn(3))
		for j := range ranked {
			ranked[j] = goalIDs[rng.Intn(len(goalIDs))]
		}
		cycle.Votes = append(cycle.Votes, domain.Vote{ParticipantID: participants[i], RankedGoalIDs: ranked})
	}

	for _, i := range rng.Perm(shape.Participants)[:min(shape.Advanced, shape.Participants)] {
		cycle.Advanced = append(cycle.Advanced, domain.AdvancedParticipant{
			ParticipantID: participants[i],
			MaxTeams:      rng.Intn(3),
		})
	}

	for p := range shape.Plans {
		cycle.Plans = append(cycle.Plans, randomPlan(rng, fmt.Sprintf("plan-%03d", p), participants, cycle.Goals, shape.TeamSize))
	}

	return cycle
}

// GenerateSyntheticCycleDefault creates a cycle with a time-based seed.
func GenerateSyntheticCycleDefault() *SyntheticCycle {
	return GenerateSyntheticCycle(DefaultCycleShape(), time.Now().UnixNano())
}

// randomPlan shuffles participants and deals them into teams of roughly
// teamSize members, each pursuing a random goal. Goals must be non-empty.
func randomPlan(rng *rand.Rand, id string, participants []string, goals []domain.Goal, teamSize int) *domain.Plan {
	order := rng.Perm(len(participants))
	plan := &domain.Plan{ID: id}

	for start := 0; start < len(order); {
		size := teamSize + rng.Intn(3) - 1
		size = max(1, min(size, len(order)-start))

		ids := make([]string, size)
		for j := range size {
			ids[j] = participants[order[start+j]]
		}
		start += size

		goal := goals[rng.Intn(len(goals))]
		plan.Teams = append(plan.Teams, NewTeam(goal.ID, size == goal.RecommendedTeamSize, ids...))
		plan.SeatCount += size
	}

	return plan
}
