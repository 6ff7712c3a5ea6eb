package transfer

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/apierror"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
)

// DeleteTransferInput is the Huma input for deleting a transfer.
type DeleteTransferInput struct {
	ID          string `path:"id" format:"uuid" doc:"Transfer UUID"`
	HouseholdID string `query:"householdID" required:"true" format:"uuid" doc:"Household UUID"`
}

// DeleteTransferOutput is the Huma output for deleting a transfer.
type DeleteTransferOutput struct {
	Status int
}

// DeleteTransferHandler handles DELETE /v1/transfer/{id}.
type DeleteTransferHandler struct {
	Operator actionProcessor
}

// NewDeleteTransferHandler creates a new DeleteTransferHandler.
func NewDeleteTransferHandler(op actionProcessor) *DeleteTransferHandler {
	return &DeleteTransferHandler{Operator: op}
}

// Register registers the delete transfer endpoint with the Huma API.
func (h *DeleteTransferHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "delete-transfer",
		Method:      http.MethodDelete,
		Path:        "/v1/transfer/{id}",
		Summary:     "Delete transfer",
		Description: "Reverses and removes both legs and the pairing record atomically.",
		Tags:        []string{"Transfers"},
	}, h.handle)
}

func (h *DeleteTransferHandler) handle(ctx context.Context, input *DeleteTransferInput) (*DeleteTransferOutput, error) {
	logData := logging.GetLogData(ctx)

	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid id", err)
	}
	householdID, err := uuid.FromString(input.HouseholdID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid householdID", err)
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("deleteTransferMs")
	}
	err = h.Operator.Process(ctx, &actions.DeleteTransfer{
		HouseholdID: householdID,
		ID:          id,
	})
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, apierror.Map("failed to delete transfer", err)
	}

	return &DeleteTransferOutput{Status: http.StatusNoContent}, nil
}
