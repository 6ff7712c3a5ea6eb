// Package cascade recomputes the derived state of bills, debts, and savings
// goals when a transaction linked to them changes. Recalculation runs
// synchronously inside the same store transaction as the triggering write,
// keyed by the mutated transaction's links, so the propagation commits or
// rolls back with the transaction change itself.
package cascade

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/money"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// Links names the dependent entities a transaction points at. A mutation
// triggers recomputation for the links it had before and after the change.
type Links struct {
	BillInstanceID *uuid.UUID
	DebtID         *uuid.UUID
	GoalID         *uuid.UUID
}

// LinksOf extracts the links carried by a transaction row.
func LinksOf(t *transaction.Transaction) Links {
	return Links{
		BillInstanceID: t.BillInstanceID,
		DebtID:         t.DebtID,
		GoalID:         t.GoalID,
	}
}

// Run recomputes every entity referenced by the given link sets, each at
// most once.
func Run(ctx context.Context, w *storage.Writer, householdID uuid.UUID, now time.Time, links ...Links) error {
	bills := map[uuid.UUID]bool{}
	debts := map[uuid.UUID]bool{}
	goals := map[uuid.UUID]bool{}

	for _, l := range links {
		if l.BillInstanceID != nil {
			bills[*l.BillInstanceID] = true
		}
		if l.DebtID != nil {
			debts[*l.DebtID] = true
		}
		if l.GoalID != nil {
			goals[*l.GoalID] = true
		}
	}

	for id := range bills {
		if err := RecalculateBill(ctx, w.Bill, w.Transaction, householdID, id, now); err != nil {
			return err
		}
	}
	for id := range debts {
		if err := RecalculateDebt(ctx, w.Debt, w.Transaction, householdID, id, now); err != nil {
			return err
		}
	}
	for id := range goals {
		if err := RecalculateGoal(ctx, w.Goal, w.Transaction, householdID, id, now); err != nil {
			return err
		}
	}
	return nil
}

// milestoneThresholds are the percentage-paid points stamped for bills,
// debts, and goals.
var milestoneThresholds = []int16{25, 50, 75, 100}

// newlyCrossed returns the thresholds that progress has reached but that
// have not been stamped yet. Already-achieved thresholds never re-stamp:
// milestones are append-only history and survive later regression.
func newlyCrossed(progress, target money.Cents, achieved []int16) []int16 {
	if target <= 0 {
		return nil
	}

	achievedSet := make(map[int16]bool, len(achieved))
	for _, p := range achieved {
		achievedSet[p] = true
	}

	pct := int64(progress) * 100 / int64(target)

	var crossed []int16
	for _, threshold := range milestoneThresholds {
		if pct >= int64(threshold) && !achievedSet[threshold] {
			crossed = append(crossed, threshold)
		}
	}
	return crossed
}
