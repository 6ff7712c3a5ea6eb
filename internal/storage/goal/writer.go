package goal

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/carson-networks/ledger-server/internal/money"
)

var ErrGoalNotFound = errors.New("savings goal not found")

type Writer struct {
	tx pgx.Tx
	Reader
}

func NewWriter(tx pgx.Tx) *Writer {
	return &Writer{
		tx: tx,
		Reader: Reader{
			exec: tx,
		},
	}
}

// FindByIDForUpdate locks the goal row for recalculation.
// Returns nil when no such goal exists.
func (w *Writer) FindByIDForUpdate(ctx context.Context, householdID, id uuid.UUID) (*Goal, error) {
	row := w.tx.QueryRow(ctx,
		`SELECT `+goalColumns+` FROM savings_goals
		 WHERE household_id = $1 AND id = $2
		 FOR UPDATE`,
		householdID, id)
	return scanGoal(row)
}

// Create inserts a new savings goal and returns its generated ID.
func (w *Writer) Create(ctx context.Context, create *GoalCreate) (uuid.UUID, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}

	_, err = w.tx.Exec(ctx,
		`INSERT INTO savings_goals
		   (id, household_id, goal_name, target_amount_cents, target_amount, current_amount_cents, current_amount)
		 VALUES ($1, $2, $3, $4, $5::numeric, 0, 0)`,
		id, create.HouseholdID, create.Name, create.TargetAmount, create.TargetAmount.String())
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// UpdateCurrent writes the recomputed accumulated amount.
func (w *Writer) UpdateCurrent(ctx context.Context, householdID, id uuid.UUID, current money.Cents) error {
	tag, err := w.tx.Exec(ctx,
		`UPDATE savings_goals SET current_amount_cents = $3, current_amount = $4::numeric
		 WHERE household_id = $1 AND id = $2`,
		householdID, id, current, current.String())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrGoalNotFound
	}
	return nil
}

// StampMilestone records the first crossing of a percentage threshold.
// Append-only: re-stamping an achieved threshold is a no-op.
func (w *Writer) StampMilestone(ctx context.Context, householdID, goalID uuid.UUID, percent int16, achievedAt time.Time) error {
	id, err := uuid.NewV4()
	if err != nil {
		return err
	}

	_, err = w.tx.Exec(ctx,
		`INSERT INTO goal_milestones (id, household_id, goal_id, percent, achieved_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (goal_id, percent) DO NOTHING`,
		id, householdID, goalID, percent, achievedAt)
	return err
}
