package goal

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of pgx satisfied by both a pool and a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const goalColumns = `id, household_id, goal_name, target_amount_cents, current_amount_cents, created_at`

type Reader struct {
	exec Querier
}

func NewReader(exec Querier) *Reader {
	return &Reader{exec: exec}
}

func scanGoal(row pgx.Row) (*Goal, error) {
	var g Goal
	err := row.Scan(&g.ID, &g.HouseholdID, &g.Name, &g.TargetAmount, &g.CurrentAmount, &g.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// FindByID retrieves a goal by primary key within a household.
// Returns nil when no such goal exists.
func (r *Reader) FindByID(ctx context.Context, householdID, id uuid.UUID) (*Goal, error) {
	row := r.exec.QueryRow(ctx,
		`SELECT `+goalColumns+` FROM savings_goals WHERE household_id = $1 AND id = $2`,
		householdID, id)
	return scanGoal(row)
}

// AchievedPercents returns the thresholds already stamped for a goal.
func (r *Reader) AchievedPercents(ctx context.Context, householdID, goalID uuid.UUID) ([]int16, error) {
	rows, err := r.exec.Query(ctx,
		`SELECT percent FROM goal_milestones
		 WHERE household_id = $1 AND goal_id = $2
		 ORDER BY percent ASC`,
		householdID, goalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var percents []int16
	for rows.Next() {
		var p int16
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		percents = append(percents, p)
	}
	return percents, rows.Err()
}

// ListMilestones returns the stamped milestones for a goal.
func (r *Reader) ListMilestones(ctx context.Context, householdID, goalID uuid.UUID) ([]*Milestone, error) {
	rows, err := r.exec.Query(ctx,
		`SELECT id, household_id, goal_id, percent, achieved_at FROM goal_milestones
		 WHERE household_id = $1 AND goal_id = $2
		 ORDER BY percent ASC`,
		householdID, goalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*Milestone
	for rows.Next() {
		var m Milestone
		if err := rows.Scan(&m.ID, &m.HouseholdID, &m.GoalID, &m.Percent, &m.AchievedAt); err != nil {
			return nil, err
		}
		result = append(result, &m)
	}
	return result, rows.Err()
}
