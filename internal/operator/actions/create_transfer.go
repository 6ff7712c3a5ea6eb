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

type CreateTransfer struct {
	HouseholdID          uuid.UUID
	SourceAccountID      uuid.UUID
	DestinationAccountID uuid.UUID
	Amount               money.Cents
	Fee                  money.Cents
	Name                 string
	Notes                string
	Date                 time.Time

	// CreatedID is populated on success with the transfer record's id.
	CreatedID uuid.UUID

	IAction
}

func (t *CreateTransfer) Perform(ctx context.Context, writer *storage.Writer) error {
	return t.perform(ctx, writer.Account, writer.Transaction, writer.Transfer)
}

// perform creates both legs and the pairing record in one store transaction.
// The source leg carries the fee; the destination leg never does.
func (t *CreateTransfer) perform(ctx context.Context, accounts ledger.Accounts, transactions transactionTable, transfers transferTable) error {
	if err := validateTransfer(t.SourceAccountID, t.DestinationAccountID, t.Amount, t.Fee); err != nil {
		return err
	}

	transferID, err := uuid.NewV4()
	if err != nil {
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
		TransferID:  &transferID,
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
		TransferID:  &transferID,
	})
	if err != nil {
		return err
	}

	err = transfers.Insert(ctx, &transfer.TransferCreate{
		ID:                   transferID,
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
	if err != nil {
		return err
	}

	t.CreatedID = transferID
	return nil
}

// LegAmounts derives the signed leg amounts from a transfer's amount and fee.
// The full cost including the fee leaves the source; only the amount arrives
// at the destination.
func LegAmounts(amount, fee money.Cents) (out, in money.Cents) {
	return -(amount + fee), amount
}

func validateTransfer(source, destination uuid.UUID, amount, fee money.Cents) error {
	if amount <= 0 {
		return &money.ValidationError{Field: "amount", Reason: "must be positive"}
	}
	if fee < 0 {
		return &money.ValidationError{Field: "fee", Reason: "must not be negative"}
	}
	if source == destination {
		return &money.ValidationError{Field: "destination_account_id", Reason: "must differ from the source account"}
	}
	return nil
}
