package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

const defaultLimit = 20

// TransactionService handles transaction business logic.
type TransactionService struct {
	transactions transaction.ITransactionTable
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(transactions transaction.ITransactionTable) *TransactionService {
	return &TransactionService{transactions: transactions}
}

// GetTransaction retrieves a transaction by ID together with its splits.
// Returns nil when no such transaction exists in the household.
func (s *TransactionService) GetTransaction(ctx context.Context, householdID, id uuid.UUID) (*Transaction, error) {
	row, err := s.transactions.FindByID(ctx, householdID, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}

	splits, err := s.transactions.ListSplits(ctx, householdID, id)
	if err != nil {
		return nil, err
	}

	converted := convertTransaction(row)
	for _, split := range splits {
		converted.Splits = append(converted.Splits, TransactionSplit{
			ID:         split.ID,
			CategoryID: split.CategoryID,
			Amount:     split.Amount,
		})
	}
	return &converted, nil
}

// ListTransactions returns a page of transactions using cursor-based pagination.
func (s *TransactionService) ListTransactions(ctx context.Context, householdID uuid.UUID, filter *TransactionFilter, cursor *TransactionCursor) ([]Transaction, *TransactionCursor, error) {
	limit := defaultLimit
	offset := 0
	var maxCreationTime *time.Time
	if cursor != nil {
		limit = cursor.Limit
		offset = cursor.Position
		maxCreationTime = &cursor.MaxCreationTime
	}

	storageFilter := &transaction.TransactionFilter{
		Limit:           limit,
		Offset:          offset,
		MaxCreationTime: maxCreationTime,
	}
	if filter != nil {
		storageFilter.AccountID = filter.AccountID
		storageFilter.CategoryID = filter.CategoryID
	}

	rows, err := s.transactions.List(ctx, householdID, storageFilter)
	if err != nil {
		return nil, nil, err
	}

	if len(rows) == 0 {
		return nil, nil, nil
	}

	var nextCursor *TransactionCursor
	if len(rows) > limit {
		rows = rows[:limit]

		cursorMaxCreationTime := rows[0].CreatedAt
		if maxCreationTime != nil {
			cursorMaxCreationTime = *maxCreationTime
		}

		nextCursor = &TransactionCursor{
			Position:        offset + limit,
			Limit:           limit,
			MaxCreationTime: cursorMaxCreationTime,
		}
	}

	convertedTransactions := make([]Transaction, len(rows))
	for i, row := range rows {
		convertedTransactions[i] = convertTransaction(row)
	}

	return convertedTransactions, nextCursor, nil
}

func convertTransaction(row *transaction.Transaction) Transaction {
	return Transaction{
		ID:              row.ID,
		AccountID:       row.AccountID,
		CategoryID:      row.CategoryID,
		Type:            row.Type,
		Amount:          row.Amount,
		TransactionName: row.Name,
		Notes:           row.Notes,
		TransactionDate: row.Date,
		TransferID:      row.TransferID,
		BillInstanceID:  row.BillInstanceID,
		DebtID:          row.DebtID,
		GoalID:          row.GoalID,
		CreatedAt:       row.CreatedAt,
	}
}
