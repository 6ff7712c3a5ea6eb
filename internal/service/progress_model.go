package service

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/money"
	"github.com/carson-networks/ledger-server/internal/storage/bill"
	"github.com/carson-networks/ledger-server/internal/storage/debt"
)

// BillInstance represents one billing period in the service layer. All money
// fields besides DueAmount are derived from the linked transactions.
type BillInstance struct {
	ID         uuid.UUID
	BillName   string
	DueAmount  money.Cents
	AmountPaid money.Cents
	Remaining  money.Cents
	DueDate    time.Time
	Status     bill.Status
	CreatedAt  time.Time
	Milestones []ProgressMilestone
}

// ProgressMilestone is one stamped percentage threshold.
type ProgressMilestone struct {
	Percent    int16
	AchievedAt time.Time
}

// Debt represents a debt with its milestone history in the service layer.
type Debt struct {
	ID               uuid.UUID
	DebtName         string
	OriginalBalance  money.Cents
	RemainingBalance money.Cents
	AnnualRate       decimal.Decimal
	Compounding      debt.Compounding
	CreatedAt        time.Time
	Milestones       []ProgressMilestone
}

// Goal represents a savings goal with its milestone history in the service
// layer.
type Goal struct {
	ID            uuid.UUID
	GoalName      string
	TargetAmount  money.Cents
	CurrentAmount money.Cents
	CreatedAt     time.Time
	Milestones    []ProgressMilestone
}
