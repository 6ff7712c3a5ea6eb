package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/money"
	"github.com/carson-networks/ledger-server/internal/storage/account"
)

const defaultAccountLimit = 20

// AccountService handles account business logic.
type AccountService struct {
	accounts account.IAccountTable
}

// NewAccountService creates a new AccountService.
func NewAccountService(accounts account.IAccountTable) *AccountService {
	return &AccountService{accounts: accounts}
}

// GetAccount retrieves an account by ID. Returns nil when no such account
// exists in the household.
func (s *AccountService) GetAccount(ctx context.Context, householdID, id uuid.UUID) (*Account, error) {
	row, err := s.accounts.FindByID(ctx, householdID, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}
	converted := convertAccount(row)
	return &converted, nil
}

// ListAccounts returns a page of active accounts using cursor pagination.
func (s *AccountService) ListAccounts(ctx context.Context, householdID uuid.UUID, cursor *AccountCursor) ([]Account, *AccountCursor, error) {
	limit := defaultAccountLimit
	offset := 0
	if cursor != nil {
		limit = cursor.Limit
		offset = cursor.Position
	}

	result, err := s.accounts.List(ctx, householdID, &account.AccountFilter{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, nil, err
	}

	if len(result.Accounts) == 0 {
		return nil, nil, nil
	}

	var nextCursor *AccountCursor
	if result.NextCursor != nil {
		nextCursor = &AccountCursor{
			Position: result.NextCursor.Position,
			Limit:    result.NextCursor.Limit,
		}
	}

	convertedAccounts := make([]Account, len(result.Accounts))
	for i, row := range result.Accounts {
		convertedAccounts[i] = convertAccount(row)
	}

	return convertedAccounts, nextCursor, nil
}

func convertAccount(row *account.Account) Account {
	availableCredit := money.Cents(0)
	if row.Type == account.AccountTypeCredit {
		availableCredit = ledger.AvailableCredit(row)
	}

	return Account{
		ID:              row.ID,
		Name:            row.Name,
		Type:            row.Type,
		SubType:         row.SubType,
		Balance:         row.Balance,
		StartingBalance: row.StartingBalance,
		CreditLimit:     row.CreditLimit,
		AvailableCredit: availableCredit,
		CreatedAt:       row.CreatedAt,
	}
}
