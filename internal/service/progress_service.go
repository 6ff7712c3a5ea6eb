package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/storage/bill"
	"github.com/carson-networks/ledger-server/internal/storage/debt"
	"github.com/carson-networks/ledger-server/internal/storage/goal"
)

// ProgressService reads the derived progress state of bills, debts, and
// savings goals. The state itself is maintained by the recalculation that
// runs inside write transactions.
type ProgressService struct {
	bills bill.IBillInstanceTable
	debts debt.IDebtTable
	goals goal.IGoalTable
}

// NewProgressService creates a new ProgressService.
func NewProgressService(bills bill.IBillInstanceTable, debts debt.IDebtTable, goals goal.IGoalTable) *ProgressService {
	return &ProgressService{bills: bills, debts: debts, goals: goals}
}

// GetBill retrieves a bill instance and its stamped milestones. Returns nil
// when no such instance exists in the household.
func (s *ProgressService) GetBill(ctx context.Context, householdID, id uuid.UUID) (*BillInstance, error) {
	row, err := s.bills.FindByID(ctx, householdID, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}

	milestones, err := s.bills.ListMilestones(ctx, householdID, id)
	if err != nil {
		return nil, err
	}

	converted := &BillInstance{
		ID:         row.ID,
		BillName:   row.Name,
		DueAmount:  row.DueAmount,
		AmountPaid: row.AmountPaid,
		Remaining:  row.Remaining,
		DueDate:    row.DueDate,
		Status:     row.Status,
		CreatedAt:  row.CreatedAt,
	}
	for _, m := range milestones {
		converted.Milestones = append(converted.Milestones, ProgressMilestone{
			Percent:    m.Percent,
			AchievedAt: m.AchievedAt,
		})
	}
	return converted, nil
}

// GetDebt retrieves a debt and its stamped milestones. Returns nil when no
// such debt exists in the household.
func (s *ProgressService) GetDebt(ctx context.Context, householdID, id uuid.UUID) (*Debt, error) {
	row, err := s.debts.FindByID(ctx, householdID, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}

	milestones, err := s.debts.ListMilestones(ctx, householdID, id)
	if err != nil {
		return nil, err
	}

	converted := &Debt{
		ID:               row.ID,
		DebtName:         row.Name,
		OriginalBalance:  row.OriginalBalance,
		RemainingBalance: row.RemainingBalance,
		AnnualRate:       row.AnnualRate,
		Compounding:      row.Compounding,
		CreatedAt:        row.CreatedAt,
	}
	for _, m := range milestones {
		converted.Milestones = append(converted.Milestones, ProgressMilestone{
			Percent:    m.Percent,
			AchievedAt: m.AchievedAt,
		})
	}
	return converted, nil
}

// GetGoal retrieves a savings goal and its stamped milestones. Returns nil
// when no such goal exists in the household.
func (s *ProgressService) GetGoal(ctx context.Context, householdID, id uuid.UUID) (*Goal, error) {
	row, err := s.goals.FindByID(ctx, householdID, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}

	milestones, err := s.goals.ListMilestones(ctx, householdID, id)
	if err != nil {
		return nil, err
	}

	converted := &Goal{
		ID:            row.ID,
		GoalName:      row.Name,
		TargetAmount:  row.TargetAmount,
		CurrentAmount: row.CurrentAmount,
		CreatedAt:     row.CreatedAt,
	}
	for _, m := range milestones {
		converted.Milestones = append(converted.Milestones, ProgressMilestone{
			Percent:    m.Percent,
			AchievedAt: m.AchievedAt,
		})
	}
	return converted, nil
}
