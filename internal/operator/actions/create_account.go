package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/money"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/account"
)

type CreateAccount struct {
	HouseholdID     uuid.UUID
	Name            string
	Type            account.AccountType
	SubType         string
	StartingBalance money.Cents
	CreditLimit     money.Cents

	// CreatedID is populated on success.
	CreatedID uuid.UUID

	IAction
}

func (c *CreateAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	if c.Name == "" {
		return &money.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if c.CreditLimit < 0 {
		return &money.ValidationError{Field: "credit_limit", Reason: "must not be negative"}
	}
	if c.Type != account.AccountTypeCredit && c.CreditLimit != 0 {
		return &money.ValidationError{Field: "credit_limit", Reason: "only credit accounts carry a credit limit"}
	}

	id, err := writer.Account.Create(ctx, &account.AccountCreate{
		HouseholdID:     c.HouseholdID,
		Name:            c.Name,
		Type:            c.Type,
		SubType:         c.SubType,
		StartingBalance: c.StartingBalance,
		CreditLimit:     c.CreditLimit,
	})
	if err != nil {
		return err
	}

	c.CreatedID = id
	return nil
}
