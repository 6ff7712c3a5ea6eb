package bill

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/money"
)

// Status is the derived payment state of a bill instance.
type Status string

const (
	StatusUnpaid  Status = "unpaid"
	StatusPaid    Status = "paid"
	StatusOverdue Status = "overdue"
)

// Instance represents one billing period of a recurring bill. AmountPaid,
// Remaining, and Status are derived from the transactions linked to the
// instance and are recomputed whenever a linked transaction changes.
type Instance struct {
	ID          uuid.UUID
	HouseholdID uuid.UUID
	Name        string
	DueAmount   money.Cents
	AmountPaid  money.Cents
	Remaining   money.Cents
	DueDate     time.Time
	Status      Status
	CreatedAt   time.Time
}

// InstanceCreate is the input for creating a bill instance.
type InstanceCreate struct {
	HouseholdID uuid.UUID
	Name        string
	DueAmount   money.Cents
	DueDate     time.Time
}

// Milestone is an append-only record of a percentage-paid threshold first
// being crossed. Once stamped, it is never removed or re-stamped, even if
// later edits regress the progress below the threshold.
type Milestone struct {
	ID             uuid.UUID
	HouseholdID    uuid.UUID
	BillInstanceID uuid.UUID
	Percent        int16
	AchievedAt     time.Time
}

// IBillInstanceTable defines the interface for bill instance read operations.
type IBillInstanceTable interface {
	FindByID(ctx context.Context, householdID, id uuid.UUID) (*Instance, error)
	ListMilestones(ctx context.Context, householdID, billInstanceID uuid.UUID) ([]*Milestone, error)
}
