package cascade

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/money"
	"github.com/carson-networks/ledger-server/internal/storage/goal"
)

var ErrGoalNotFound = errors.New("linked savings goal not found")

// GoalTable is the slice of the savings goal table the cascade needs.
type GoalTable interface {
	FindByIDForUpdate(ctx context.Context, householdID, id uuid.UUID) (*goal.Goal, error)
	UpdateCurrent(ctx context.Context, householdID, id uuid.UUID, current money.Cents) error
	AchievedPercents(ctx context.Context, householdID, goalID uuid.UUID) ([]int16, error)
	StampMilestone(ctx context.Context, householdID, goalID uuid.UUID, percent int16, achievedAt time.Time) error
}

// GoalContributions sums the contributions currently linked to a goal.
type GoalContributions interface {
	SumByGoal(ctx context.Context, householdID, goalID uuid.UUID) (money.Cents, error)
}

// RecalculateGoal recomputes a goal's accumulated amount from the full set
// of linked contributions and stamps any newly crossed milestones.
func RecalculateGoal(ctx context.Context, goals GoalTable, contributions GoalContributions, householdID, goalID uuid.UUID, now time.Time) error {
	g, err := goals.FindByIDForUpdate(ctx, householdID, goalID)
	if err != nil {
		return err
	}
	if g == nil {
		return ErrGoalNotFound
	}

	current, err := contributions.SumByGoal(ctx, householdID, goalID)
	if err != nil {
		return err
	}

	if err := goals.UpdateCurrent(ctx, householdID, goalID, current); err != nil {
		return err
	}

	achieved, err := goals.AchievedPercents(ctx, householdID, goalID)
	if err != nil {
		return err
	}
	for _, percent := range newlyCrossed(current, g.TargetAmount, achieved) {
		if err := goals.StampMilestone(ctx, householdID, goalID, percent, now); err != nil {
			return err
		}
	}
	return nil
}
