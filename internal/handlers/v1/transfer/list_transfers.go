package transfer

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/service"
)

// ListTransfersInput is the Huma input for listing transfers.
type ListTransfersInput struct {
	HouseholdID string `query:"householdID" required:"true" format:"uuid" doc:"Household UUID"`
}

// ListTransfersResponseBody is the response body for listing transfers.
type ListTransfersResponseBody struct {
	Transfers []Transfer `json:"transfers" doc:"All transfers for the household, oldest first"`
}

// ListTransfersOutput is the Huma output for listing transfers.
type ListTransfersOutput struct {
	Body ListTransfersResponseBody
}

// transferLister is the interface for listing transfers.
type transferLister interface {
	ListTransfers(ctx context.Context, householdID uuid.UUID) ([]service.Transfer, error)
}

// ListTransfersHandler handles GET /v1/transfers.
type ListTransfersHandler struct {
	TransferService transferLister
}

// NewListTransfersHandler creates a new ListTransfersHandler.
func NewListTransfersHandler(svc transferLister) *ListTransfersHandler {
	return &ListTransfersHandler{TransferService: svc}
}

// Register registers the list transfers endpoint with the Huma API.
func (h *ListTransfersHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transfers",
		Method:      http.MethodGet,
		Path:        "/v1/transfers",
		Summary:     "List transfers",
		Description: "Returns every transfer record for the household.",
		Tags:        []string{"Transfers"},
	}, h.handle)
}

func (h *ListTransfersHandler) handle(ctx context.Context, input *ListTransfersInput) (*ListTransfersOutput, error) {
	logData := logging.GetLogData(ctx)

	householdID, err := uuid.FromString(input.HouseholdID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid householdID", err)
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("listTransfersMs")
	}
	transfers, err := h.TransferService.ListTransfers(ctx, householdID)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to list transfers", err)
	}

	if logData != nil {
		logData.AddData("transferCount", len(transfers))
	}

	resp := ListTransfersResponseBody{
		Transfers: make([]Transfer, len(transfers)),
	}
	for i, t := range transfers {
		resp.Transfers[i] = convertTransfer(t)
	}

	return &ListTransfersOutput{Body: resp}, nil
}
