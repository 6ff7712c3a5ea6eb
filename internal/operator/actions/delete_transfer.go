package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/transfer"
)

type DeleteTransfer struct {
	HouseholdID uuid.UUID
	ID          uuid.UUID

	IAction
}

func (t *DeleteTransfer) Perform(ctx context.Context, writer *storage.Writer) error {
	return t.perform(ctx, writer.Account, writer.Transaction, writer.Transfer)
}

// perform reverses both legs and removes the legs and the pairing record
// atomically. A transfer never survives with a single leg.
func (t *DeleteTransfer) perform(ctx context.Context, accounts ledger.Accounts, transactions transactionTable, transfers transferTable) error {
	existing, err := transfers.FindByIDForUpdate(ctx, t.HouseholdID, t.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return transfer.ErrTransferNotFound
	}

	return removeTransfer(ctx, accounts, transactions, transfers, t.HouseholdID, existing)
}
