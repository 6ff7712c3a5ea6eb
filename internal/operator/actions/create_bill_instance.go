package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/money"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/bill"
)

type CreateBillInstance struct {
	HouseholdID uuid.UUID
	Name        string
	DueAmount   money.Cents
	DueDate     time.Time

	// CreatedID is populated on success.
	CreatedID uuid.UUID

	IAction
}

func (c *CreateBillInstance) Perform(ctx context.Context, writer *storage.Writer) error {
	if c.Name == "" {
		return &money.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if c.DueAmount <= 0 {
		return &money.ValidationError{Field: "due_amount", Reason: "must be positive"}
	}

	id, err := writer.Bill.Create(ctx, &bill.InstanceCreate{
		HouseholdID: c.HouseholdID,
		Name:        c.Name,
		DueAmount:   c.DueAmount,
		DueDate:     c.DueDate,
	})
	if err != nil {
		return err
	}

	c.CreatedID = id
	return nil
}
