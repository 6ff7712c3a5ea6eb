package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/cascade"
	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/money"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

type DeleteTransaction struct {
	HouseholdID uuid.UUID
	ID          uuid.UUID

	IAction
}

func (t *DeleteTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	return t.perform(ctx, writer.Account, writer.Transaction, func(links ...cascade.Links) error {
		return cascade.Run(ctx, writer, t.HouseholdID, time.Now(), links...)
	})
}

// perform reads the row under a row lock before reversing it, so a delete
// racing an edit of the same transaction reverses the amount the edit left
// behind, never a stale one.
func (t *DeleteTransaction) perform(ctx context.Context, accounts ledger.Accounts, transactions transactionTable, recalculate linkRecalculator) error {
	existing, err := transactions.FindByIDForUpdate(ctx, t.HouseholdID, t.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return transaction.ErrTransactionNotFound
	}
	if existing.Type.IsTransferLeg() || existing.Type == transaction.TypeLegacyTransfer {
		return &money.ValidationError{Field: "id", Reason: "transfer legs are deleted through transfer operations"}
	}

	if _, err := ledger.ReverseDelta(ctx, accounts, t.HouseholdID, existing.AccountID, existing.Amount); err != nil {
		return err
	}

	if err := transactions.Delete(ctx, t.HouseholdID, t.ID); err != nil {
		return err
	}

	return recalculate(cascade.LinksOf(existing))
}
