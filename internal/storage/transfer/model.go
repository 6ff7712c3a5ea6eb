package transfer

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/money"
)

// Transfer is the logical pairing record for one money movement between two
// accounts. It links the transfer_out and transfer_in transactions and never
// exists with only one leg persisted: create, edit, and delete are all-or-nothing.
type Transfer struct {
	ID                   uuid.UUID
	HouseholdID          uuid.UUID
	SourceAccountID      uuid.UUID
	DestinationAccountID uuid.UUID
	Amount               money.Cents
	Fee                  money.Cents
	OutTransactionID     uuid.UUID
	InTransactionID      uuid.UUID
	Name                 string
	Notes                string
	Date                 time.Time
	CreatedAt            time.Time
}

// ITransferTable defines the interface for transfer read operations.
// This abstraction allows swapping the implementation without changing callers.
type ITransferTable interface {
	FindByID(ctx context.Context, householdID, id uuid.UUID) (*Transfer, error)
	ListAll(ctx context.Context, householdID uuid.UUID) ([]*Transfer, error)
}

// TransferCreate is the input for persisting a transfer record. The two leg
// transactions are inserted first; their ids are linked here.
type TransferCreate struct {
	ID                   uuid.UUID
	HouseholdID          uuid.UUID
	SourceAccountID      uuid.UUID
	DestinationAccountID uuid.UUID
	Amount               money.Cents
	Fee                  money.Cents
	OutTransactionID     uuid.UUID
	InTransactionID      uuid.UUID
	Name                 string
	Notes                string
	Date                 time.Time
}
