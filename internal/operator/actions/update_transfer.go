package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/money"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
	"github.com/carson-networks/ledger-server/internal/storage/transfer"
)

type UpdateTransfer struct {
	HouseholdID uuid.UUID
	ID          uuid.UUID

	SourceAccountID      uuid.UUID
	DestinationAccountID uuid.UUID
	Amount               money.Cents
	Fee                  money.Cents
	Name                 string
	Notes                string
	Date                 time.Time

	IAction
}

func (t *UpdateTransfer) Perform(ctx context.Context, writer *storage.Writer) error {
	return t.perform(ctx, writer.Account, writer.Transaction, writer.Transfer)
}

// perform edits a transfer. A financial change (amount, fee, source, or
// destination) is applied as delete-then-recreate of both legs under the
// same transfer id, so the pairing invariants hold by construction at every
// commit point. A purely descriptive change updates both legs and the record
// in place with no balance effects.
func (t *UpdateTransfer) perform(ctx context.Context, accounts ledger.Accounts, transactions transactionTable, transfers transferTable) error {
	existing, err := transfers.FindByIDForUpdate(ctx, t.HouseholdID, t.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return transfer.ErrTransferNotFound
	}

	if !t.financialChange(existing) {
		if err := transactions.UpdateDetails(ctx, t.HouseholdID, existing.OutTransactionID, t.Name, t.Notes, t.Date); err != nil {
			return err
		}
		if err := transactions.UpdateDetails(ctx, t.HouseholdID, existing.InTransactionID, t.Name, t.Notes, t.Date); err != nil {
			return err
		}
		return transfers.UpdateDetails(ctx, t.HouseholdID, t.ID, t.Name, t.Notes, t.Date)
	}

	if err := validateTransfer(t.SourceAccountID, t.DestinationAccountID, t.Amount, t.Fee); err != nil {
		return err
	}

	if err := removeTransfer(ctx, accounts, transactions, transfers, t.HouseholdID, existing); err != nil {
		return err
	}

	outAmount, inAmount := LegAmounts(t.Amount, t.Fee)

	if _, err := ledger.ApplyDelta(ctx, accounts, t.HouseholdID, t.SourceAccountID, outAmount); err != nil {
		return err
	}
	if _, err := ledger.ApplyDelta(ctx, accounts, t.HouseholdID, t.DestinationAccountID, inAmount); err != nil {
		return err
	}

	outID, err := transactions.Insert(ctx, &transaction.TransactionCreate{
		HouseholdID: t.HouseholdID,
		AccountID:   t.SourceAccountID,
		Type:        transaction.TypeTransferOut,
		Amount:      outAmount,
		Name:        t.Name,
		Notes:       t.Notes,
		Date:        t.Date,
		TransferID:  &t.ID,
	})
	if err != nil {
		return err
	}

	inID, err := transactions.Insert(ctx, &transaction.TransactionCreate{
		HouseholdID: t.HouseholdID,
		AccountID:   t.DestinationAccountID,
		Type:        transaction.TypeTransferIn,
		Amount:      inAmount,
		Name:        t.Name,
		Notes:       t.Notes,
		Date:        t.Date,
		TransferID:  &t.ID,
	})
	if err != nil {
		return err
	}

	return transfers.Insert(ctx, &transfer.TransferCreate{
		ID:                   t.ID,
		HouseholdID:          t.HouseholdID,
		SourceAccountID:      t.SourceAccountID,
		DestinationAccountID: t.DestinationAccountID,
		Amount:               t.Amount,
		Fee:                  t.Fee,
		OutTransactionID:     outID,
		InTransactionID:      inID,
		Name:                 t.Name,
		Notes:                t.Notes,
		Date:                 t.Date,
	})
}

func (t *UpdateTransfer) financialChange(existing *transfer.Transfer) bool {
	return t.Amount != existing.Amount ||
		t.Fee != existing.Fee ||
		t.SourceAccountID != existing.SourceAccountID ||
		t.DestinationAccountID != existing.DestinationAccountID
}

// removeTransfer reverses both legs' balance effects and deletes the legs
// and the pairing record. Shared by delete and the recreate half of edit.
func removeTransfer(ctx context.Context, accounts ledger.Accounts, transactions transactionTable, transfers transferTable, householdID uuid.UUID, existing *transfer.Transfer) error {
	outAmount, inAmount := LegAmounts(existing.Amount, existing.Fee)

	if _, err := ledger.ReverseDelta(ctx, accounts, householdID, existing.SourceAccountID, outAmount); err != nil {
		return err
	}
	if _, err := ledger.ReverseDelta(ctx, accounts, householdID, existing.DestinationAccountID, inAmount); err != nil {
		return err
	}

	if err := transactions.Delete(ctx, householdID, existing.OutTransactionID); err != nil {
		return err
	}
	if err := transactions.Delete(ctx, householdID, existing.InTransactionID); err != nil {
		return err
	}
	return transfers.Delete(ctx, householdID, existing.ID)
}
