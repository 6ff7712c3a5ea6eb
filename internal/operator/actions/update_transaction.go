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

type UpdateTransaction struct {
	HouseholdID uuid.UUID
	ID          uuid.UUID

	AccountID      uuid.UUID
	CategoryID     *uuid.UUID
	Type           transaction.Type
	Amount         money.Cents
	Name           string
	Notes          string
	Date           time.Time
	Splits         []transaction.SplitCreate
	BillInstanceID *uuid.UUID
	DebtID         *uuid.UUID
	GoalID         *uuid.UUID

	IAction
}

func (t *UpdateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	return t.perform(ctx, writer.Account, writer.Transaction, func(links ...cascade.Links) error {
		return cascade.Run(ctx, writer, t.HouseholdID, time.Now(), links...)
	})
}

// perform applies an edit as reverse-old-then-apply-new: the existing amount
// is backed out of the account it sat on, then the replacement amount lands
// on the (possibly different) target account. The existing row is read under
// a row lock so two concurrent edits of the same transaction serialize and
// the second reverses the first's amount, not the stale original. Links held
// before and after the edit both recalculate.
func (t *UpdateTransaction) perform(ctx context.Context, accounts ledger.Accounts, transactions transactionTable, recalculate linkRecalculator) error {
	if err := validateEntry(t.Type, t.Amount); err != nil {
		return err
	}
	if err := validateSplits(t.Amount, t.Splits); err != nil {
		return err
	}

	existing, err := transactions.FindByIDForUpdate(ctx, t.HouseholdID, t.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return transaction.ErrTransactionNotFound
	}
	if existing.Type.IsTransferLeg() || existing.Type == transaction.TypeLegacyTransfer {
		return &money.ValidationError{Field: "id", Reason: "transfer legs are edited through transfer operations"}
	}

	if _, err := ledger.ReverseDelta(ctx, accounts, t.HouseholdID, existing.AccountID, existing.Amount); err != nil {
		return err
	}
	if _, err := ledger.ApplyDelta(ctx, accounts, t.HouseholdID, t.AccountID, t.Amount); err != nil {
		return err
	}

	err = transactions.Update(ctx, t.HouseholdID, t.ID, &transaction.TransactionUpdate{
		AccountID:      t.AccountID,
		CategoryID:     t.CategoryID,
		Type:           t.Type,
		Amount:         t.Amount,
		Name:           t.Name,
		Notes:          t.Notes,
		Date:           t.Date,
		BillInstanceID: t.BillInstanceID,
		DebtID:         t.DebtID,
		GoalID:         t.GoalID,
	})
	if err != nil {
		return err
	}

	if err := transactions.ReplaceSplits(ctx, t.HouseholdID, t.ID, t.Splits); err != nil {
		return err
	}

	newLinks := cascade.Links{
		BillInstanceID: t.BillInstanceID,
		DebtID:         t.DebtID,
		GoalID:         t.GoalID,
	}
	return recalculate(cascade.LinksOf(existing), newLinks)
}
