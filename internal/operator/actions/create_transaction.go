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

type CreateTransaction struct {
	HouseholdID    uuid.UUID
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

	// CreatedID is populated on success.
	CreatedID uuid.UUID

	IAction
}

func (t *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := validateEntry(t.Type, t.Amount); err != nil {
		return err
	}
	if err := validateSplits(t.Amount, t.Splits); err != nil {
		return err
	}

	if _, err := ledger.ApplyDelta(ctx, writer.Account, t.HouseholdID, t.AccountID, t.Amount); err != nil {
		return err
	}

	id, err := writer.Transaction.Insert(ctx, &transaction.TransactionCreate{
		HouseholdID:    t.HouseholdID,
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

	if len(t.Splits) > 0 {
		if err := writer.Transaction.ReplaceSplits(ctx, t.HouseholdID, id, t.Splits); err != nil {
			return err
		}
	}

	links := cascade.Links{
		BillInstanceID: t.BillInstanceID,
		DebtID:         t.DebtID,
		GoalID:         t.GoalID,
	}
	if err := cascade.Run(ctx, writer, t.HouseholdID, time.Now(), links); err != nil {
		return err
	}

	t.CreatedID = id
	return nil
}

// validateEntry rejects anything but the two single-entry types. Transfer
// legs are created and mutated exclusively by the transfer actions so a pair
// can never be half-edited.
func validateEntry(typ transaction.Type, amount money.Cents) error {
	switch typ {
	case transaction.TypeIncome:
		if amount <= 0 {
			return &money.ValidationError{Field: "amount", Reason: "income must be positive"}
		}
	case transaction.TypeExpense:
		if amount >= 0 {
			return &money.ValidationError{Field: "amount", Reason: "expense must be negative"}
		}
	default:
		return &money.ValidationError{Field: "type", Reason: "must be income or expense"}
	}
	return nil
}

// validateSplits requires split amounts to sum exactly to the parent amount.
func validateSplits(amount money.Cents, splits []transaction.SplitCreate) error {
	if len(splits) == 0 {
		return nil
	}
	var sum money.Cents
	for _, s := range splits {
		sum += s.Amount
	}
	if sum != amount {
		return &money.ValidationError{Field: "splits", Reason: "split amounts must sum to the transaction amount"}
	}
	return nil
}
