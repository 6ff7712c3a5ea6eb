package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/money"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/debt"
)

type CreateDebt struct {
	HouseholdID     uuid.UUID
	Name            string
	OriginalBalance money.Cents
	AnnualRate      decimal.Decimal
	Compounding     debt.Compounding

	// CreatedID is populated on success.
	CreatedID uuid.UUID

	IAction
}

func (c *CreateDebt) Perform(ctx context.Context, writer *storage.Writer) error {
	if c.Name == "" {
		return &money.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if c.OriginalBalance <= 0 {
		return &money.ValidationError{Field: "original_balance", Reason: "must be positive"}
	}
	if c.AnnualRate.IsNegative() {
		return &money.ValidationError{Field: "annual_rate", Reason: "must not be negative"}
	}
	switch c.Compounding {
	case "", debt.CompoundingMonthly, debt.CompoundingBiweekly, debt.CompoundingWeekly:
	default:
		return &money.ValidationError{Field: "compounding", Reason: "must be monthly, biweekly, or weekly"}
	}

	id, err := writer.Debt.Create(ctx, &debt.DebtCreate{
		HouseholdID:     c.HouseholdID,
		Name:            c.Name,
		OriginalBalance: c.OriginalBalance,
		AnnualRate:      c.AnnualRate,
		Compounding:     c.Compounding,
	})
	if err != nil {
		return err
	}

	c.CreatedID = id
	return nil
}
