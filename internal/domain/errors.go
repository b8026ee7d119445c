package domain

import (
	"errors"
	"fmt"
)

// ErrPrecondition is the root of every structural plan violation. A plan
// failing a precondition is a caller bug and is never scored.
var ErrPrecondition = errors.New("precondition violation")

// Precondition violations detected while validating a Plan against a Pool.
// Each wraps ErrPrecondition so callers can test for the whole class with
// errors.Is(err, ErrPrecondition).
var (
	// ErrEmptyPlan indicates a plan with no teams.
	ErrEmptyPlan = fmt.Errorf("%w: plan has no teams", ErrPrecondition)

	// ErrUnknownGoal indicates a team referencing a goal absent from the pool.
	ErrUnknownGoal = fmt.Errorf("%w: goal not in pool", ErrPrecondition)

	// ErrDuplicateParticipant indicates a participant placed more than once.
	ErrDuplicateParticipant = fmt.Errorf("%w: participant placed more than once", ErrPrecondition)

	// ErrTeamSizeMismatch indicates TeamSize disagrees with the member count.
	ErrTeamSizeMismatch = fmt.Errorf("%w: team size does not match member count", ErrPrecondition)

	// ErrInvalidParticipant indicates an empty participant id in a team.
	ErrInvalidParticipant = fmt.Errorf("%w: empty participant id", ErrPrecondition)

	// ErrSeatCountMismatch indicates SeatCount disagrees with the sum of team
	// sizes. Only reported when strict seat counting is enabled.
	ErrSeatCountMismatch = fmt.Errorf("%w: seat count does not match team sizes", ErrPrecondition)
)

// ErrInvalidPool indicates that pool construction received conflicting input.
var ErrInvalidPool = errors.New("invalid pool")

// PlanError describes where in a plan a precondition violation was found.
type PlanError struct {
	// PlanID is the optional label of the offending plan.
	PlanID string

	// TeamIndex is the position of the offending team, or -1 when the
	// violation concerns the plan as a whole.
	TeamIndex int

	// Detail carries the goal or participant id involved, if any.
	Detail string

	// Err is one of the precondition sentinels above.
	Err error
}

// Error implements the error interface for PlanError.
func (e *PlanError) Error() string {
	msg := fmt.Sprintf("plan error: plan=%q", e.PlanID)
	if e.TeamIndex >= 0 {
		msg += fmt.Sprintf(", team=%d", e.TeamIndex)
	}
	if e.Detail != "" {
		msg += fmt.Sprintf(", detail=%s", e.Detail)
	}
	return msg + fmt.Sprintf(", err=%v", e.Err)
}

// Unwrap returns the underlying sentinel.
func (e *PlanError) Unwrap() error { return e.Err }

// NewPlanError creates a new PlanError with the given details.
func NewPlanError(planID string, teamIndex int, detail string, err error) *PlanError {
	return &PlanError{
		PlanID:    planID,
		TeamIndex: teamIndex,
		Detail:    detail,
		Err:       err,
	}
}

// IsPrecondition reports whether err is a structural plan violation.
func IsPrecondition(err error) bool { return errors.Is(err, ErrPrecondition) }

// ValidationError represents an error that occurred during validation.
// It can contain multiple validation failures.
type ValidationError struct {
	// Entity is the name of the entity that failed validation.
	Entity string

	// Errors contains the list of validation error messages.
	Errors []string
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation error for %s: %s", e.Entity, e.Errors[0])
	}
	return fmt.Sprintf("validation errors for %s: %v", e.Entity, e.Errors)
}

// AddError adds a new error message to the validation error.
func (e *ValidationError) AddError(msg string) { e.Errors = append(e.Errors, msg) }

// AddErrorf adds a formatted error message to the validation error.
func (e *ValidationError) AddErrorf(format string, args ...any) {
	e.AddError(fmt.Sprintf(format, args...))
}

// HasErrors returns true if there are any validation errors.
func (e *ValidationError) HasErrors() bool { return len(e.Errors) > 0 }

// NewValidationError creates a new ValidationError for the given entity.
func NewValidationError(entity string) *ValidationError {
	return &ValidationError{
		Entity: entity,
		Errors: make([]string, 0),
	}
}
