package transfer

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/service"
)

// GetTransferInput is the Huma input for fetching one transfer.
type GetTransferInput struct {
	ID          string `path:"id" format:"uuid" doc:"Transfer UUID"`
	HouseholdID string `query:"householdID" required:"true" format:"uuid" doc:"Household UUID"`
}

// Transfer is the API response model for a transfer.
type Transfer struct {
	ID                   string `json:"id" doc:"Transfer UUID"`
	SourceAccountID      string `json:"sourceAccountID" doc:"Source account UUID"`
	DestinationAccountID string `json:"destinationAccountID" doc:"Destination account UUID"`
	Amount               string `json:"amount" doc:"Decimal amount received by the destination"`
	Fee                  string `json:"fee" doc:"Decimal fee charged on the source"`
	OutTransactionID     string `json:"outTransactionID" doc:"UUID of the transfer_out leg"`
	InTransactionID      string `json:"inTransactionID" doc:"UUID of the transfer_in leg"`
	TransferName         string `json:"transferName" doc:"Name of the transfer"`
	Notes                string `json:"notes,omitempty" doc:"Free-form notes"`
	TransferDate         string `json:"transferDate" doc:"RFC3339 transfer date"`
	CreatedAt            string `json:"createdAt" doc:"RFC3339 creation time"`
}

// GetTransferOutput is the Huma output for fetching one transfer.
type GetTransferOutput struct {
	Body Transfer
}

// transferGetter is the interface for fetching a single transfer.
type transferGetter interface {
	GetTransfer(ctx context.Context, householdID, id uuid.UUID) (*service.Transfer, error)
}

// GetTransferHandler handles GET /v1/transfer/{id}.
type GetTransferHandler struct {
	TransferService transferGetter
}

// NewGetTransferHandler creates a new GetTransferHandler.
func NewGetTransferHandler(svc transferGetter) *GetTransferHandler {
	return &GetTransferHandler{TransferService: svc}
}

// Register registers the get transfer endpoint with the Huma API.
func (h *GetTransferHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-transfer",
		Method:      http.MethodGet,
		Path:        "/v1/transfer/{id}",
		Summary:     "Get a transfer",
		Description: "Returns a transfer record with both leg transaction ids.",
		Tags:        []string{"Transfers"},
	}, h.handle)
}

func (h *GetTransferHandler) handle(ctx context.Context, input *GetTransferInput) (*GetTransferOutput, error) {
	logData := logging.GetLogData(ctx)

	householdID, err := uuid.FromString(input.HouseholdID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid householdID", err)
	}
	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid transfer id", err)
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("getTransferMs")
	}
	result, err := h.TransferService.GetTransfer(ctx, householdID, id)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to get transfer", err)
	}
	if result == nil {
		return nil, huma.NewError(http.StatusNotFound, "transfer not found")
	}

	return &GetTransferOutput{Body: convertTransfer(*result)}, nil
}

func convertTransfer(t service.Transfer) Transfer {
	return Transfer{
		ID:                   t.ID.String(),
		SourceAccountID:      t.SourceAccountID.String(),
		DestinationAccountID: t.DestinationAccountID.String(),
		Amount:               t.Amount.String(),
		Fee:                  t.Fee.String(),
		OutTransactionID:     t.OutTransactionID.String(),
		InTransactionID:      t.InTransactionID.String(),
		TransferName:         t.TransferName,
		Notes:                t.Notes,
		TransferDate:         t.TransferDate.Format(time.RFC3339),
		CreatedAt:            t.CreatedAt.Format(time.RFC3339),
	}
}
