package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/money"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/goal"
)

type CreateGoal struct {
	HouseholdID  uuid.UUID
	Name         string
	TargetAmount money.Cents

	// CreatedID is populated on success.
	CreatedID uuid.UUID

	IAction
}

func (c *CreateGoal) Perform(ctx context.Context, writer *storage.Writer) error {
	if c.Name == "" {
		return &money.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if c.TargetAmount <= 0 {
		return &money.ValidationError{Field: "target_amount", Reason: "must be positive"}
	}

	id, err := writer.Goal.Create(ctx, &goal.GoalCreate{
		HouseholdID:  c.HouseholdID,
		Name:         c.Name,
		TargetAmount: c.TargetAmount,
	})
	if err != nil {
		return err
	}

	c.CreatedID = id
	return nil
}
