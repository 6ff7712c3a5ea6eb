package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/cascade"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
	"github.com/carson-networks/ledger-server/internal/storage/transfer"
)

// transactionTable is the slice of the transaction table the actions need.
// Single-row reads go through FindByIDForUpdate, so an edit or delete always
// works from the latest committed amount rather than a stale read taken
// before the row lock.
type transactionTable interface {
	FindByIDForUpdate(ctx context.Context, householdID, id uuid.UUID) (*transaction.Transaction, error)
	Insert(ctx context.Context, create *transaction.TransactionCreate) (uuid.UUID, error)
	Update(ctx context.Context, householdID, id uuid.UUID, update *transaction.TransactionUpdate) error
	UpdateDetails(ctx context.Context, householdID, id uuid.UUID, name, notes string, date time.Time) error
	Delete(ctx context.Context, householdID, id uuid.UUID) error
	ReplaceSplits(ctx context.Context, householdID, transactionID uuid.UUID, splits []transaction.SplitCreate) error
}

// transferTable is the slice of the transfer record table the actions need.
type transferTable interface {
	FindByIDForUpdate(ctx context.Context, householdID, id uuid.UUID) (*transfer.Transfer, error)
	Insert(ctx context.Context, create *transfer.TransferCreate) error
	UpdateDetails(ctx context.Context, householdID, id uuid.UUID, name, notes string, date time.Time) error
	Delete(ctx context.Context, householdID, id uuid.UUID) error
}

// linkRecalculator recomputes the dependent entities named by the given link
// sets. Perform binds it to the cascade running against the live writer.
type linkRecalculator func(links ...cascade.Links) error
