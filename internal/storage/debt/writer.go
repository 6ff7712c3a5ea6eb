package debt

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/carson-networks/ledger-server/internal/money"
)

var ErrDebtNotFound = errors.New("debt not found")

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

// FindByIDForUpdate locks the debt row for recalculation.
// Returns nil when no such debt exists.
func (w *Writer) FindByIDForUpdate(ctx context.Context, householdID, id uuid.UUID) (*Debt, error) {
	row := w.tx.QueryRow(ctx,
		`SELECT `+debtColumns+` FROM debts
		 WHERE household_id = $1 AND id = $2
		 FOR UPDATE`,
		householdID, id)
	return scanDebt(row)
}

// Create inserts a new debt with its full balance remaining and returns the
// generated ID.
func (w *Writer) Create(ctx context.Context, create *DebtCreate) (uuid.UUID, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}

	compounding := create.Compounding
	if compounding == "" {
		compounding = CompoundingMonthly
	}

	_, err = w.tx.Exec(ctx,
		`INSERT INTO debts
		   (id, household_id, debt_name, original_balance_cents, remaining_balance_cents, remaining_balance, annual_rate, compounding)
		 VALUES ($1, $2, $3, $4, $4, $5::numeric, $6::numeric, $7)`,
		id, create.HouseholdID, create.Name, create.OriginalBalance,
		create.OriginalBalance.String(), create.AnnualRate.String(), compounding)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// UpdateRemaining writes the recomputed remaining balance.
func (w *Writer) UpdateRemaining(ctx context.Context, householdID, id uuid.UUID, remaining money.Cents) error {
	tag, err := w.tx.Exec(ctx,
		`UPDATE debts SET remaining_balance_cents = $3, remaining_balance = $4::numeric
		 WHERE household_id = $1 AND id = $2`,
		householdID, id, remaining, remaining.String())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrDebtNotFound
	}
	return nil
}

// StampMilestone records the first crossing of a percentage threshold.
// Stamping an already-achieved threshold is a no-op: milestones are
// append-only history.
func (w *Writer) StampMilestone(ctx context.Context, householdID, debtID uuid.UUID, percent int16, achievedAt time.Time) error {
	id, err := uuid.NewV4()
	if err != nil {
		return err
	}

	_, err = w.tx.Exec(ctx,
		`INSERT INTO debt_milestones (id, household_id, debt_id, percent, achieved_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (debt_id, percent) DO NOTHING`,
		id, householdID, debtID, percent, achievedAt)
	return err
}
