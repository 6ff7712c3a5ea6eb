package transfer

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/apierror"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/money"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
)

// UpdateTransferBody is the request body for editing a transfer. The body
// carries the full replacement state, not a diff.
type UpdateTransferBody struct {
	HouseholdID          string `json:"householdID" required:"true" format:"uuid" doc:"Household UUID"`
	SourceAccountID      string `json:"sourceAccountID" required:"true" format:"uuid" doc:"Account the money leaves"`
	DestinationAccountID string `json:"destinationAccountID" required:"true" format:"uuid" doc:"Account the money arrives at"`
	Amount               string `json:"amount" required:"true" doc:"Positive decimal amount moved"`
	Fee                  string `json:"fee,omitempty" doc:"Non-negative decimal fee charged to the source account"`
	TransferName         string `json:"transferName" required:"true" minLength:"1" doc:"Name of the transfer"`
	Notes                string `json:"notes,omitempty" doc:"Free-form notes"`
	TransferDate         string `json:"transferDate" required:"true" format:"date-time" doc:"RFC3339 transfer date"`
}

// UpdateTransferInput is the Huma input for editing a transfer.
type UpdateTransferInput struct {
	ID   string `path:"id" format:"uuid" doc:"Transfer UUID"`
	Body UpdateTransferBody
}

// UpdateTransferOutput is the Huma output for editing a transfer.
type UpdateTransferOutput struct {
	Status int
}

// UpdateTransferHandler handles PUT /v1/transfer/{id}.
type UpdateTransferHandler struct {
	Operator actionProcessor
}

// NewUpdateTransferHandler creates a new UpdateTransferHandler.
func NewUpdateTransferHandler(op actionProcessor) *UpdateTransferHandler {
	return &UpdateTransferHandler{Operator: op}
}

// Register registers the update transfer endpoint with the Huma API.
func (h *UpdateTransferHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-transfer",
		Method:      http.MethodPut,
		Path:        "/v1/transfer/{id}",
		Summary:     "Update transfer",
		Description: "Replaces a transfer's state. Financial changes recreate both legs; descriptive changes update in place.",
		Tags:        []string{"Transfers"},
	}, h.handle)
}

func parseUpdateTransferInput(input *UpdateTransferInput) (*actions.UpdateTransfer, error) {
	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid id", err)
	}
	householdID, err := uuid.FromString(input.Body.HouseholdID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid householdID", err)
	}
	sourceID, err := uuid.FromString(input.Body.SourceAccountID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid sourceAccountID", err)
	}
	destinationID, err := uuid.FromString(input.Body.DestinationAccountID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid destinationAccountID", err)
	}
	amount, err := money.FromString(input.Body.Amount)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}

	fee := money.Cents(0)
	if input.Body.Fee != "" {
		fee, err = money.FromString(input.Body.Fee)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid fee", err)
		}
	}

	transferDate, err := time.Parse(time.RFC3339, input.Body.TransferDate)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid transferDate", err)
	}

	return &actions.UpdateTransfer{
		HouseholdID:          householdID,
		ID:                   id,
		SourceAccountID:      sourceID,
		DestinationAccountID: destinationID,
		Amount:               amount,
		Fee:                  fee,
		Name:                 input.Body.TransferName,
		Notes:                input.Body.Notes,
		Date:                 transferDate,
	}, nil
}

func (h *UpdateTransferHandler) handle(ctx context.Context, input *UpdateTransferInput) (*UpdateTransferOutput, error) {
	logData := logging.GetLogData(ctx)

	action, err := parseUpdateTransferInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("updateTransferMs")
	}
	err = h.Operator.Process(ctx, action)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, apierror.Map("failed to update transfer", err)
	}

	return &UpdateTransferOutput{Status: http.StatusNoContent}, nil
}
