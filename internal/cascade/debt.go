package cascade

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/money"
	"github.com/carson-networks/ledger-server/internal/storage/debt"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

var ErrDebtNotFound = errors.New("linked debt not found")

// DebtTable is the slice of the debt table the cascade needs.
type DebtTable interface {
	FindByIDForUpdate(ctx context.Context, householdID, id uuid.UUID) (*debt.Debt, error)
	UpdateRemaining(ctx context.Context, householdID, id uuid.UUID, remaining money.Cents) error
	AchievedPercents(ctx context.Context, householdID, debtID uuid.UUID) ([]int16, error)
	StampMilestone(ctx context.Context, householdID, debtID uuid.UUID, percent int16, achievedAt time.Time) error
}

// DebtPayments lists the payments linked to a debt in replay order.
type DebtPayments interface {
	ListByDebt(ctx context.Context, householdID, debtID uuid.UUID) ([]*transaction.Transaction, error)
}

// RecalculateDebt recomputes a debt's remaining balance by replaying the
// currently linked payments in (date, id) order. Each payment is split into
// interest and principal at the debt's periodic rate; only the principal
// portion reduces the balance. Milestones stamp once per threshold.
func RecalculateDebt(ctx context.Context, debts DebtTable, payments DebtPayments, householdID, debtID uuid.UUID, now time.Time) error {
	d, err := debts.FindByIDForUpdate(ctx, householdID, debtID)
	if err != nil {
		return err
	}
	if d == nil {
		return ErrDebtNotFound
	}

	linked, err := payments.ListByDebt(ctx, householdID, debtID)
	if err != nil {
		return err
	}

	rate := periodicRate(d)
	remaining := d.OriginalBalance
	for _, payment := range linked {
		principal, _ := SplitPayment(payment.Amount.Abs(), remaining, rate)
		remaining -= principal
	}

	if err := debts.UpdateRemaining(ctx, householdID, debtID, remaining); err != nil {
		return err
	}

	achieved, err := debts.AchievedPercents(ctx, householdID, debtID)
	if err != nil {
		return err
	}
	for _, percent := range newlyCrossed(d.OriginalBalance-remaining, d.OriginalBalance, achieved) {
		if err := debts.StampMilestone(ctx, householdID, debtID, percent, now); err != nil {
			return err
		}
	}
	return nil
}

// SplitPayment divides one payment into its principal and interest portions
// against the balance outstanding when the payment lands. Interest is
// rounded half away from zero to whole cents and never exceeds the payment;
// principal never exceeds the remaining balance.
func SplitPayment(payment, remaining money.Cents, periodicRate decimal.Decimal) (principal, interest money.Cents) {
	interest = money.Cents(decimal.NewFromInt(int64(remaining)).Mul(periodicRate).Round(0).IntPart())
	if interest < 0 {
		interest = 0
	}
	if interest > payment {
		interest = payment
	}

	principal = payment - interest
	if principal > remaining {
		principal = remaining
	}
	return principal, interest
}

func periodicRate(d *debt.Debt) decimal.Decimal {
	return d.AnnualRate.Div(decimal.NewFromInt(d.Compounding.PeriodsPerYear()))
}
