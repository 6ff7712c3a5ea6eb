package bill

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

const instanceColumns = `id, household_id, bill_name, due_amount_cents, amount_paid_cents, remaining_cents, due_date, status, created_at`

type Reader struct {
	exec Querier
}

func NewReader(exec Querier) *Reader {
	return &Reader{exec: exec}
}

func scanInstance(row pgx.Row) (*Instance, error) {
	var b Instance
	err := row.Scan(&b.ID, &b.HouseholdID, &b.Name, &b.DueAmount, &b.AmountPaid,
		&b.Remaining, &b.DueDate, &b.Status, &b.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// FindByID retrieves a bill instance by primary key within a household.
// Returns nil when no such instance exists.
func (r *Reader) FindByID(ctx context.Context, householdID, id uuid.UUID) (*Instance, error) {
	row := r.exec.QueryRow(ctx,
		`SELECT `+instanceColumns+` FROM bill_instances WHERE household_id = $1 AND id = $2`,
		householdID, id)
	return scanInstance(row)
}

// AchievedPercents returns the thresholds already stamped for a bill instance.
func (r *Reader) AchievedPercents(ctx context.Context, householdID, billInstanceID uuid.UUID) ([]int16, error) {
	rows, err := r.exec.Query(ctx,
		`SELECT percent FROM bill_milestones
		 WHERE household_id = $1 AND bill_instance_id = $2
		 ORDER BY percent ASC`,
		householdID, billInstanceID)
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

// ListMilestones returns the stamped milestones for a bill instance.
func (r *Reader) ListMilestones(ctx context.Context, householdID, billInstanceID uuid.UUID) ([]*Milestone, error) {
	rows, err := r.exec.Query(ctx,
		`SELECT id, household_id, bill_instance_id, percent, achieved_at FROM bill_milestones
		 WHERE household_id = $1 AND bill_instance_id = $2
		 ORDER BY percent ASC`,
		householdID, billInstanceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*Milestone
	for rows.Next() {
		var m Milestone
		if err := rows.Scan(&m.ID, &m.HouseholdID, &m.BillInstanceID, &m.Percent, &m.AchievedAt); err != nil {
			return nil, err
		}
		result = append(result, &m)
	}
	return result, rows.Err()
}
