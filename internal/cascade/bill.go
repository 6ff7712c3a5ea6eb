package cascade

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/money"
	"github.com/carson-networks/ledger-server/internal/storage/bill"
)

var ErrBillInstanceNotFound = errors.New("linked bill instance not found")

// BillTable is the slice of the bill instance table the cascade needs.
type BillTable interface {
	FindByIDForUpdate(ctx context.Context, householdID, id uuid.UUID) (*bill.Instance, error)
	UpdateProgress(ctx context.Context, householdID, id uuid.UUID, amountPaid, remaining money.Cents, status bill.Status) error
	AchievedPercents(ctx context.Context, householdID, billInstanceID uuid.UUID) ([]int16, error)
	StampMilestone(ctx context.Context, householdID, billInstanceID uuid.UUID, percent int16, achievedAt time.Time) error
}

// BillPayments sums the transactions currently linked to a bill instance.
type BillPayments interface {
	SumByBillInstance(ctx context.Context, householdID, billInstanceID uuid.UUID) (money.Cents, error)
}

// RecalculateBill recomputes a bill instance's paid/remaining/status state
// from the full set of linked transactions and stamps any newly crossed
// payment milestones. Working from the set rather than applying increments
// makes delete and edit reversal exact by construction.
func RecalculateBill(ctx context.Context, bills BillTable, payments BillPayments, householdID, billInstanceID uuid.UUID, now time.Time) error {
	instance, err := bills.FindByIDForUpdate(ctx, householdID, billInstanceID)
	if err != nil {
		return err
	}
	if instance == nil {
		return ErrBillInstanceNotFound
	}

	amountPaid, err := payments.SumByBillInstance(ctx, householdID, billInstanceID)
	if err != nil {
		return err
	}

	remaining := instance.DueAmount - amountPaid
	if remaining < 0 {
		// Overpayment: remaining floors at zero, amountPaid keeps the true sum.
		remaining = 0
	}

	status := bill.StatusUnpaid
	switch {
	case remaining == 0 && amountPaid > 0:
		status = bill.StatusPaid
	case now.After(instance.DueDate):
		status = bill.StatusOverdue
	}

	if err := bills.UpdateProgress(ctx, householdID, billInstanceID, amountPaid, remaining, status); err != nil {
		return err
	}

	achieved, err := bills.AchievedPercents(ctx, householdID, billInstanceID)
	if err != nil {
		return err
	}
	for _, percent := range newlyCrossed(amountPaid, instance.DueAmount, achieved) {
		if err := bills.StampMilestone(ctx, householdID, billInstanceID, percent, now); err != nil {
			return err
		}
	}
	return nil
}
