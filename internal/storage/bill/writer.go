package bill

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/carson-networks/ledger-server/internal/money"
)

var ErrBillInstanceNotFound = errors.New("bill instance not found")

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

// FindByIDForUpdate locks the bill instance row for recalculation.
// Returns nil when no such instance exists.
func (w *Writer) FindByIDForUpdate(ctx context.Context, householdID, id uuid.UUID) (*Instance, error) {
	row := w.tx.QueryRow(ctx,
		`SELECT `+instanceColumns+` FROM bill_instances
		 WHERE household_id = $1 AND id = $2
		 FOR UPDATE`,
		householdID, id)
	return scanInstance(row)
}

// Create inserts a new unpaid bill instance and returns its generated ID.
func (w *Writer) Create(ctx context.Context, create *InstanceCreate) (uuid.UUID, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}

	_, err = w.tx.Exec(ctx,
		`INSERT INTO bill_instances
		   (id, household_id, bill_name, due_amount_cents, due_amount, amount_paid_cents, amount_paid, remaining_cents, due_date, status)
		 VALUES ($1, $2, $3, $4, $5::numeric, 0, 0, $4, $6, $7)`,
		id, create.HouseholdID, create.Name, create.DueAmount, create.DueAmount.String(),
		create.DueDate, StatusUnpaid)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// StampMilestone records the first crossing of a percentage threshold.
// Append-only: re-stamping an achieved threshold is a no-op.
func (w *Writer) StampMilestone(ctx context.Context, householdID, billInstanceID uuid.UUID, percent int16, achievedAt time.Time) error {
	id, err := uuid.NewV4()
	if err != nil {
		return err
	}

	_, err = w.tx.Exec(ctx,
		`INSERT INTO bill_milestones (id, household_id, bill_instance_id, percent, achieved_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (bill_instance_id, percent) DO NOTHING`,
		id, householdID, billInstanceID, percent, achievedAt)
	return err
}

// UpdateProgress writes the recomputed derived state of the instance.
func (w *Writer) UpdateProgress(ctx context.Context, householdID, id uuid.UUID, amountPaid, remaining money.Cents, status Status) error {
	tag, err := w.tx.Exec(ctx,
		`UPDATE bill_instances SET
		   amount_paid_cents = $3, amount_paid = $4::numeric, remaining_cents = $5, status = $6
		 WHERE household_id = $1 AND id = $2`,
		householdID, id, amountPaid, amountPaid.String(), remaining, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrBillInstanceNotFound
	}
	return nil
}
