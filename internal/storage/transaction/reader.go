package transaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/carson-networks/ledger-server/internal/money"
)

// Querier is the subset of pgx satisfied by both a pool and a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const transactionColumns = `id, household_id, account_id, category_id, type, amount_cents, transaction_name, notes,
	transaction_date, transfer_id, destination_account_id, bill_instance_id, debt_id, goal_id, created_at`

type Reader struct {
	exec Querier
}

func NewReader(exec Querier) *Reader {
	return &Reader{exec: exec}
}

func scanTransaction(row pgx.Row) (*Transaction, error) {
	var t Transaction
	err := row.Scan(&t.ID, &t.HouseholdID, &t.AccountID, &t.CategoryID, &t.Type, &t.Amount,
		&t.Name, &t.Notes, &t.Date, &t.TransferID, &t.DestinationAccountID,
		&t.BillInstanceID, &t.DebtID, &t.GoalID, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func collectTransactions(rows pgx.Rows) ([]*Transaction, error) {
	defer rows.Close()

	var result []*Transaction
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(&t.ID, &t.HouseholdID, &t.AccountID, &t.CategoryID, &t.Type, &t.Amount,
			&t.Name, &t.Notes, &t.Date, &t.TransferID, &t.DestinationAccountID,
			&t.BillInstanceID, &t.DebtID, &t.GoalID, &t.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &t)
	}
	return result, rows.Err()
}

// FindByID retrieves a transaction by primary key within a household.
// Returns nil when no such transaction exists.
func (r *Reader) FindByID(ctx context.Context, householdID, id uuid.UUID) (*Transaction, error) {
	row := r.exec.QueryRow(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE household_id = $1 AND id = $2`,
		householdID, id)
	return scanTransaction(row)
}

// List returns transactions matching the filter, newest first.
// One extra row beyond the limit is fetched so the caller can detect a next page.
func (r *Reader) List(ctx context.Context, householdID uuid.UUID, filter *TransactionFilter) ([]*Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE household_id = $1`
	args := []any{householdID}

	if filter != nil {
		if filter.AccountID != nil {
			args = append(args, *filter.AccountID)
			query += fmt.Sprintf(" AND account_id = $%d", len(args))
		}
		if filter.CategoryID != nil {
			args = append(args, *filter.CategoryID)
			query += fmt.Sprintf(" AND category_id = $%d", len(args))
		}
		if filter.MaxCreationTime != nil {
			args = append(args, *filter.MaxCreationTime)
			query += fmt.Sprintf(" AND created_at <= $%d", len(args))
		}
	}

	query += " ORDER BY created_at DESC, id DESC"

	if filter != nil {
		if filter.Limit > 0 {
			args = append(args, filter.Limit+1)
			query += fmt.Sprintf(" LIMIT $%d", len(args))
		}
		if filter.Offset > 0 {
			args = append(args, filter.Offset)
			query += fmt.Sprintf(" OFFSET $%d", len(args))
		}
	}

	rows, err := r.exec.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectTransactions(rows)
}

// SumByBillInstance returns the summed magnitude of all transactions linked
// to a bill instance.
func (r *Reader) SumByBillInstance(ctx context.Context, householdID, billInstanceID uuid.UUID) (money.Cents, error) {
	return r.sumLinked(ctx, "bill_instance_id", householdID, billInstanceID)
}

// SumByGoal returns the summed magnitude of all contributions linked to a
// savings goal.
func (r *Reader) SumByGoal(ctx context.Context, householdID, goalID uuid.UUID) (money.Cents, error) {
	return r.sumLinked(ctx, "goal_id", householdID, goalID)
}

func (r *Reader) sumLinked(ctx context.Context, column string, householdID, linkID uuid.UUID) (money.Cents, error) {
	var total money.Cents
	err := r.exec.QueryRow(ctx,
		`SELECT COALESCE(SUM(ABS(amount_cents)), 0) FROM transactions
		 WHERE household_id = $1 AND `+column+` = $2`,
		householdID, linkID).Scan(&total)
	return total, err
}

// ListByDebt returns the payments linked to a debt in (date, id) order, the
// order the debt recalculation replays them in.
func (r *Reader) ListByDebt(ctx context.Context, householdID, debtID uuid.UUID) ([]*Transaction, error) {
	rows, err := r.exec.Query(ctx,
		`SELECT `+transactionColumns+` FROM transactions
		 WHERE household_id = $1 AND debt_id = $2
		 ORDER BY transaction_date ASC, id ASC`,
		householdID, debtID)
	if err != nil {
		return nil, err
	}
	return collectTransactions(rows)
}

// ListSplits returns the split rows for a transaction.
func (r *Reader) ListSplits(ctx context.Context, householdID, transactionID uuid.UUID) ([]*Split, error) {
	rows, err := r.exec.Query(ctx,
		`SELECT s.id, s.transaction_id, s.category_id, s.amount_cents
		 FROM transaction_splits s
		 JOIN transactions t ON t.id = s.transaction_id
		 WHERE t.household_id = $1 AND s.transaction_id = $2
		 ORDER BY s.id ASC`,
		householdID, transactionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*Split
	for rows.Next() {
		var s Split
		if err := rows.Scan(&s.ID, &s.TransactionID, &s.CategoryID, &s.Amount); err != nil {
			return nil, err
		}
		result = append(result, &s)
	}
	return result, rows.Err()
}
