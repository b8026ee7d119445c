package application

import (
	"fmt"

	"github.com/ahrav/teamform/internal/domain"
)

// ValidatePlan checks the structural preconditions of plan against pool
// and returns the first violation as a *domain.PlanError. Teams are
// inspected in order, so the reported violation is deterministic.
//
// When strictSeatCount is set, a non-zero SeatCount that disagrees with
// the number of placed participants is also rejected.
func ValidatePlan(pool *domain.Pool, plan *domain.Plan, strictSeatCount bool) error {
	if plan == nil || len(plan.Teams) == 0 {
		id := ""
		if plan != nil {
			id = plan.ID
		}
		return domain.NewPlanError(id, -1, "", domain.ErrEmptyPlan)
	}

	seen := make(map[string]int, plan.Seats())
	for i, team := range plan.Teams {
		if _, ok := pool.Goal(team.GoalID); !ok {
			return domain.NewPlanError(plan.ID, i, team.GoalID, domain.ErrUnknownGoal)
		}

		if team.TeamSize != len(team.ParticipantIDs) {
			detail := fmt.Sprintf("team_size=%d members=%d", team.TeamSize, len(team.ParticipantIDs))
			return domain.NewPlanError(plan.ID, i, detail, domain.ErrTeamSizeMismatch)
		}

		for _, id := range team.ParticipantIDs {
			if id == "" {
				return domain.NewPlanError(plan.ID, i, "", domain.ErrInvalidParticipant)
			}
			if first, dup := seen[id]; dup {
				detail := fmt.Sprintf("%s also in team %d", id, first)
				return domain.NewPlanError(plan.ID, i, detail, domain.ErrDuplicateParticipant)
			}
			seen[id] = i
		}
	}

	if strictSeatCount && plan.SeatCount != 0 && plan.SeatCount != len(seen) {
		detail := fmt.Sprintf("seat_count=%d placed=%d", plan.SeatCount, len(seen))
		return domain.NewPlanError(plan.ID, -1, detail, domain.ErrSeatCountMismatch)
	}

	return nil
}
