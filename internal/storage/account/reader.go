package account

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of pgx satisfied by both a pool and a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const accountColumns = `id, household_id, name, type, sub_type, balance_cents, starting_balance_cents, credit_limit_cents, active, created_at`

type Reader struct {
	exec Querier
}

func NewReader(exec Querier) *Reader {
	return &Reader{exec: exec}
}

func scanAccount(row pgx.Row) (*Account, error) {
	var a Account
	err := row.Scan(&a.ID, &a.HouseholdID, &a.Name, &a.Type, &a.SubType,
		&a.Balance, &a.StartingBalance, &a.CreditLimit, &a.Active, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// FindByID retrieves an account by primary key within a household.
// Returns nil when no such account exists.
func (r *Reader) FindByID(ctx context.Context, householdID, id uuid.UUID) (*Account, error) {
	row := r.exec.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE household_id = $1 AND id = $2`,
		householdID, id)
	return scanAccount(row)
}

// List returns a page of accounts for the household. One extra row is
// fetched to decide whether a next cursor exists.
func (r *Reader) List(ctx context.Context, householdID uuid.UUID, filter *AccountFilter) (*AccountListResult, error) {
	limit := 20
	offset := 0
	if filter != nil {
		if filter.Limit > 0 {
			limit = filter.Limit
		}
		offset = filter.Offset
	}

	rows, err := r.exec.Query(ctx,
		`SELECT `+accountColumns+` FROM accounts
		 WHERE household_id = $1 AND active
		 ORDER BY name ASC, id ASC
		 LIMIT $2 OFFSET $3`,
		householdID, limit+1, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*Account
	for rows.Next() {
		var a Account
		if err := rows.Scan(&a.ID, &a.HouseholdID, &a.Name, &a.Type, &a.SubType,
			&a.Balance, &a.StartingBalance, &a.CreditLimit, &a.Active, &a.CreatedAt); err != nil {
			return nil, err
		}
		accounts = append(accounts, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var nextCursor *AccountCursor
	if len(accounts) > limit {
		accounts = accounts[:limit]
		nextCursor = &AccountCursor{
			Position: offset + limit,
			Limit:    limit,
		}
	}

	return &AccountListResult{Accounts: accounts, NextCursor: nextCursor}, nil
}
