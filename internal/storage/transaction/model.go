package transaction

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/money"
)

// Type classifies a ledger entry. Transfer legs always come in pairs that
// share a transfer id; the legacy single-row "transfer" type only survives
// until the legacy migration converts it to the two-row model.
type Type string

const (
	TypeIncome         Type = "income"
	TypeExpense        Type = "expense"
	TypeTransferOut    Type = "transfer_out"
	TypeTransferIn     Type = "transfer_in"
	TypeLegacyTransfer Type = "transfer"
)

// IsTransferLeg reports whether the type is one of the two paired legs.
// Leg rows are only mutated through transfer operations, never directly.
func (t Type) IsTransferLeg() bool {
	return t == TypeTransferOut || t == TypeTransferIn
}

// Transaction represents a transaction record: the atomic ledger entry.
// Amount is signed Cents and is the authoritative value; the decimal column
// persisted alongside it is derived on every write.
type Transaction struct {
	ID                   uuid.UUID
	HouseholdID          uuid.UUID
	AccountID            uuid.UUID
	CategoryID           *uuid.UUID
	Type                 Type
	Amount               money.Cents
	Name                 string
	Notes                string
	Date                 time.Time
	TransferID           *uuid.UUID
	DestinationAccountID *uuid.UUID
	BillInstanceID       *uuid.UUID
	DebtID               *uuid.UUID
	GoalID               *uuid.UUID
	CreatedAt            time.Time
}

// Split is a sub-allocation of one transaction's amount to a category.
// The split amounts of a transaction always sum to the parent amount.
type Split struct {
	ID            uuid.UUID
	TransactionID uuid.UUID
	CategoryID    uuid.UUID
	Amount        money.Cents
}

// SplitCreate is the input for one split row.
type SplitCreate struct {
	CategoryID uuid.UUID
	Amount     money.Cents
}

// TransactionCreate is the input for creating a new transaction.
type TransactionCreate struct {
	HouseholdID          uuid.UUID
	AccountID            uuid.UUID
	CategoryID           *uuid.UUID
	Type                 Type
	Amount               money.Cents
	Name                 string
	Notes                string
	Date                 time.Time
	TransferID           *uuid.UUID
	DestinationAccountID *uuid.UUID
	BillInstanceID       *uuid.UUID
	DebtID               *uuid.UUID
	GoalID               *uuid.UUID
}

// TransactionUpdate carries the replacement values for an edit. Edits are
// applied as reverse-old-then-apply-new, so the update always holds the full
// new state rather than a diff.
type TransactionUpdate struct {
	AccountID      uuid.UUID
	CategoryID     *uuid.UUID
	Type           Type
	Amount         money.Cents
	Name           string
	Notes          string
	Date           time.Time
	BillInstanceID *uuid.UUID
	DebtID         *uuid.UUID
	GoalID         *uuid.UUID
}

// TransactionFilter specifies filters for listing transactions.
type TransactionFilter struct {
	AccountID       *uuid.UUID
	CategoryID      *uuid.UUID
	Limit           int
	Offset          int
	MaxCreationTime *time.Time
}

// TransactionCursor identifies a position in a paginated result set
// and carries the limit and maxCreationTime so subsequent pages are consistent.
type TransactionCursor struct {
	Position        int
	Limit           int
	MaxCreationTime time.Time
}

// ITransactionTable defines the interface for transaction storage operations.
// This abstraction allows swapping the implementation without changing callers.
type ITransactionTable interface {
	FindByID(ctx context.Context, householdID, id uuid.UUID) (*Transaction, error)
	List(ctx context.Context, householdID uuid.UUID, filter *TransactionFilter) ([]*Transaction, error)
	ListSplits(ctx context.Context, householdID, transactionID uuid.UUID) ([]*Split, error)
}
