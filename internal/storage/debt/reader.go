package debt

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// Querier is the subset of pgx satisfied by both a pool and a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const debtColumns = `id, household_id, debt_name, original_balance_cents, remaining_balance_cents, annual_rate::text, compounding, created_at`

type Reader struct {
	exec Querier
}

func NewReader(exec Querier) *Reader {
	return &Reader{exec: exec}
}

func scanDebt(row pgx.Row) (*Debt, error) {
	var d Debt
	var rate string
	err := row.Scan(&d.ID, &d.HouseholdID, &d.Name, &d.OriginalBalance,
		&d.RemainingBalance, &rate, &d.Compounding, &d.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	d.AnnualRate, err = decimal.NewFromString(rate)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// FindByID retrieves a debt by primary key within a household.
// Returns nil when no such debt exists.
func (r *Reader) FindByID(ctx context.Context, householdID, id uuid.UUID) (*Debt, error) {
	row := r.exec.QueryRow(ctx,
		`SELECT `+debtColumns+` FROM debts WHERE household_id = $1 AND id = $2`,
		householdID, id)
	return scanDebt(row)
}

// AchievedPercents returns the thresholds already stamped for a debt.
func (r *Reader) AchievedPercents(ctx context.Context, householdID, debtID uuid.UUID) ([]int16, error) {
	rows, err := r.exec.Query(ctx,
		`SELECT percent FROM debt_milestones
		 WHERE household_id = $1 AND debt_id = $2
		 ORDER BY percent ASC`,
		householdID, debtID)
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

// ListMilestones returns the stamped milestones for a debt.
func (r *Reader) ListMilestones(ctx context.Context, householdID, debtID uuid.UUID) ([]*Milestone, error) {
	rows, err := r.exec.Query(ctx,
		`SELECT id, household_id, debt_id, percent, achieved_at FROM debt_milestones
		 WHERE household_id = $1 AND debt_id = $2
		 ORDER BY percent ASC`,
		householdID, debtID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*Milestone
	for rows.Next() {
		var m Milestone
		if err := rows.Scan(&m.ID, &m.HouseholdID, &m.DebtID, &m.Percent, &m.AchievedAt); err != nil {
			return nil, err
		}
		result = append(result, &m)
	}
	return result, rows.Err()
}
