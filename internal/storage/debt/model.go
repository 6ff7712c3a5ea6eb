package debt

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/money"
)

// Compounding is how often interest accrues on the debt. It fixes the
// periodic rate used to split payments into principal and interest.
type Compounding string

const (
	CompoundingMonthly  Compounding = "monthly"
	CompoundingBiweekly Compounding = "biweekly"
	CompoundingWeekly   Compounding = "weekly"
)

// PeriodsPerYear returns the number of compounding periods in a year.
func (c Compounding) PeriodsPerYear() int64 {
	switch c {
	case CompoundingBiweekly:
		return 26
	case CompoundingWeekly:
		return 52
	default:
		return 12
	}
}

// Debt represents an outstanding debt. RemainingBalance is derived by
// replaying the linked payment transactions; milestones record the first
// crossing of each percentage-paid threshold.
type Debt struct {
	ID               uuid.UUID
	HouseholdID      uuid.UUID
	Name             string
	OriginalBalance  money.Cents
	RemainingBalance money.Cents
	AnnualRate       decimal.Decimal
	Compounding      Compounding
	CreatedAt        time.Time
}

// DebtCreate is the input for creating a debt.
type DebtCreate struct {
	HouseholdID     uuid.UUID
	Name            string
	OriginalBalance money.Cents
	AnnualRate      decimal.Decimal
	Compounding     Compounding
}

// Milestone is an append-only record of a percentage-paid threshold first
// being crossed. Once stamped, it is never removed or re-stamped, even if
// later edits regress the progress below the threshold.
type Milestone struct {
	ID          uuid.UUID
	HouseholdID uuid.UUID
	DebtID      uuid.UUID
	Percent     int16
	AchievedAt  time.Time
}

// IDebtTable defines the interface for debt read operations.
type IDebtTable interface {
	FindByID(ctx context.Context, householdID, id uuid.UUID) (*Debt, error)
	ListMilestones(ctx context.Context, householdID, debtID uuid.UUID) ([]*Milestone, error)
}
