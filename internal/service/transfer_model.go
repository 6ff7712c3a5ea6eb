package service

import (
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/money"
)

// Transfer represents a paired transfer in the service layer.
type Transfer struct {
	ID                   uuid.UUID
	SourceAccountID      uuid.UUID
	DestinationAccountID uuid.UUID
	Amount               money.Cents
	Fee                  money.Cents
	OutTransactionID     uuid.UUID
	InTransactionID      uuid.UUID
	TransferName         string
	Notes                string
	TransferDate         time.Time
	CreatedAt            time.Time
}
