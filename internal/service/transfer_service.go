package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/storage/transfer"
)

// TransferService handles transfer read logic. Writes go through the
// operator, never through here.
type TransferService struct {
	transfers transfer.ITransferTable
}

// NewTransferService creates a new TransferService.
func NewTransferService(transfers transfer.ITransferTable) *TransferService {
	return &TransferService{transfers: transfers}
}

// GetTransfer retrieves a transfer record by ID. Returns nil when no such
// transfer exists in the household.
func (s *TransferService) GetTransfer(ctx context.Context, householdID, id uuid.UUID) (*Transfer, error) {
	row, err := s.transfers.FindByID(ctx, householdID, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}
	converted := convertTransfer(row)
	return &converted, nil
}

// ListTransfers returns every transfer record for the household, oldest first.
func (s *TransferService) ListTransfers(ctx context.Context, householdID uuid.UUID) ([]Transfer, error) {
	rows, err := s.transfers.ListAll(ctx, householdID)
	if err != nil {
		return nil, err
	}

	converted := make([]Transfer, len(rows))
	for i, row := range rows {
		converted[i] = convertTransfer(row)
	}
	return converted, nil
}

func convertTransfer(row *transfer.Transfer) Transfer {
	return Transfer{
		ID:                   row.ID,
		SourceAccountID:      row.SourceAccountID,
		DestinationAccountID: row.DestinationAccountID,
		Amount:               row.Amount,
		Fee:                  row.Fee,
		OutTransactionID:     row.OutTransactionID,
		InTransactionID:      row.InTransactionID,
		TransferName:         row.Name,
		Notes:                row.Notes,
		TransferDate:         row.Date,
		CreatedAt:            row.CreatedAt,
	}
}
