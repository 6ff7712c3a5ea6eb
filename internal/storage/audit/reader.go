// Package audit reads raw row snapshots for the consistency verifier.
package audit

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/storage/transaction"
	"github.com/carson-networks/ledger-server/internal/verify"
)

// Querier is the subset of pgx satisfied by both a pool and a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Reader struct {
	exec Querier
}

func NewReader(exec Querier) *Reader {
	return &Reader{exec: exec}
}

var _ verify.Source = (*Reader)(nil)

// moneyPair names one integer/decimal column pair to audit.
type moneyPair struct {
	table      string
	centsCol   string
	decimalCol string
	scoped     bool // filtered by household_id directly
}

var moneyPairs = []moneyPair{
	{table: "accounts", centsCol: "balance_cents", decimalCol: "balance", scoped: true},
	{table: "transactions", centsCol: "amount_cents", decimalCol: "amount", scoped: true},
	{table: "transfers", centsCol: "amount_cents", decimalCol: "amount", scoped: true},
	{table: "bill_instances", centsCol: "amount_paid_cents", decimalCol: "amount_paid", scoped: true},
	{table: "bill_instances", centsCol: "due_amount_cents", decimalCol: "due_amount", scoped: true},
	{table: "debts", centsCol: "remaining_balance_cents", decimalCol: "remaining_balance", scoped: true},
	{table: "savings_goals", centsCol: "current_amount_cents", decimalCol: "current_amount", scoped: true},
	{table: "savings_goals", centsCol: "target_amount_cents", decimalCol: "target_amount", scoped: true},
}

// MoneyRows returns every audited (cents, decimal) pair for the household.
func (r *Reader) MoneyRows(ctx context.Context, householdID uuid.UUID) ([]verify.MoneyRow, error) {
	var result []verify.MoneyRow

	for _, pair := range moneyPairs {
		rows, err := r.exec.Query(ctx,
			`SELECT id, `+pair.centsCol+`, `+pair.decimalCol+`::text FROM `+pair.table+` WHERE household_id = $1`,
			householdID)
		if err != nil {
			return nil, err
		}
		collected, err := collectMoneyRows(rows, pair.table)
		if err != nil {
			return nil, err
		}
		result = append(result, collected...)
	}

	// Splits carry no household column of their own; scope through the parent.
	rows, err := r.exec.Query(ctx,
		`SELECT s.id, s.amount_cents, s.amount::text
		 FROM transaction_splits s
		 JOIN transactions t ON t.id = s.transaction_id
		 WHERE t.household_id = $1`,
		householdID)
	if err != nil {
		return nil, err
	}
	collected, err := collectMoneyRows(rows, "transaction_splits")
	if err != nil {
		return nil, err
	}
	return append(result, collected...), nil
}

func collectMoneyRows(rows pgx.Rows, table string) ([]verify.MoneyRow, error) {
	defer rows.Close()

	var result []verify.MoneyRow
	for rows.Next() {
		var row verify.MoneyRow
		var decimalText string
		if err := rows.Scan(&row.ID, &row.Cents, &decimalText); err != nil {
			return nil, err
		}
		parsed, err := decimal.NewFromString(decimalText)
		if err != nil {
			return nil, err
		}
		row.Table = table
		row.Decimal = parsed
		result = append(result, row)
	}
	return result, rows.Err()
}

// TransferRecords returns the pairing records for the household.
func (r *Reader) TransferRecords(ctx context.Context, householdID uuid.UUID) ([]verify.TransferRecord, error) {
	rows, err := r.exec.Query(ctx,
		`SELECT id, out_transaction_id, in_transaction_id, amount_cents, fee_cents
		 FROM transfers WHERE household_id = $1`,
		householdID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []verify.TransferRecord
	for rows.Next() {
		var rec verify.TransferRecord
		if err := rows.Scan(&rec.ID, &rec.OutTransactionID, &rec.InTransactionID, &rec.Amount, &rec.Fee); err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}

// TransferLegs returns every transfer_out/transfer_in transaction for the
// household.
func (r *Reader) TransferLegs(ctx context.Context, householdID uuid.UUID) ([]verify.Leg, error) {
	rows, err := r.exec.Query(ctx,
		`SELECT id, transfer_id, type, amount_cents FROM transactions
		 WHERE household_id = $1 AND type IN ($2, $3)`,
		householdID, transaction.TypeTransferOut, transaction.TypeTransferIn)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []verify.Leg
	for rows.Next() {
		var leg verify.Leg
		var legType transaction.Type
		if err := rows.Scan(&leg.ID, &leg.TransferID, &legType, &leg.Amount); err != nil {
			return nil, err
		}
		leg.Out = legType == transaction.TypeTransferOut
		result = append(result, leg)
	}
	return result, rows.Err()
}
