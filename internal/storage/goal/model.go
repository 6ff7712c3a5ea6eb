package goal

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/money"
)

// Goal represents a savings goal. CurrentAmount is derived from the
// contribution transactions linked to the goal.
type Goal struct {
	ID            uuid.UUID
	HouseholdID   uuid.UUID
	Name          string
	TargetAmount  money.Cents
	CurrentAmount money.Cents
	CreatedAt     time.Time
}

// GoalCreate is the input for creating a savings goal.
type GoalCreate struct {
	HouseholdID  uuid.UUID
	Name         string
	TargetAmount money.Cents
}

// Milestone is an append-only record of a percentage-saved threshold first
// being crossed, with the same one-shot stamping semantics as debt milestones.
type Milestone struct {
	ID          uuid.UUID
	HouseholdID uuid.UUID
	GoalID      uuid.UUID
	Percent     int16
	AchievedAt  time.Time
}

// IGoalTable defines the interface for savings goal read operations.
type IGoalTable interface {
	FindByID(ctx context.Context, householdID, id uuid.UUID) (*Goal, error)
	ListMilestones(ctx context.Context, householdID, goalID uuid.UUID) ([]*Milestone, error)
}
