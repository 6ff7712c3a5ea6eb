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

// CreateTransferBody is the request body for creating a transfer.
type CreateTransferBody struct {
	HouseholdID          string `json:"householdID" required:"true" format:"uuid" doc:"Household UUID"`
	SourceAccountID      string `json:"sourceAccountID" required:"true" format:"uuid" doc:"Account the money leaves"`
	DestinationAccountID string `json:"destinationAccountID" required:"true" format:"uuid" doc:"Account the money arrives at"`
	Amount               string `json:"amount" required:"true" doc:"Positive decimal amount moved"`
	Fee                  string `json:"fee,omitempty" doc:"Non-negative decimal fee charged to the source account"`
	TransferName         string `json:"transferName" required:"true" minLength:"1" doc:"Name of the transfer"`
	Notes                string `json:"notes,omitempty" doc:"Free-form notes"`
	TransferDate         string `json:"transferDate,omitempty" format:"date-time" doc:"RFC3339 transfer date, defaults to now"`
}

// CreateTransferInput is the Huma input for creating a transfer.
type CreateTransferInput struct {
	Body CreateTransferBody
}

// CreateTransferResponse is the response body for creating a transfer.
type CreateTransferResponse struct {
	ID string `json:"id" doc:"Created transfer UUID"`
}

// CreateTransferOutput is the Huma output for creating a transfer.
type CreateTransferOutput struct {
	Status int
	Body   CreateTransferResponse
}

// actionProcessor is the interface for submitting write actions.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// CreateTransferHandler handles POST /v1/transfer.
type CreateTransferHandler struct {
	Operator actionProcessor
}

// NewCreateTransferHandler creates a new CreateTransferHandler.
func NewCreateTransferHandler(op actionProcessor) *CreateTransferHandler {
	return &CreateTransferHandler{Operator: op}
}

// Register registers the create transfer endpoint with the Huma API.
func (h *CreateTransferHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-transfer",
		Method:      http.MethodPost,
		Path:        "/v1/transfer",
		Summary:     "Create transfer",
		Description: "Moves money between two accounts, creating both legs and the pairing record atomically.",
		Tags:        []string{"Transfers"},
	}, h.handle)
}

func parseCreateTransferInput(input *CreateTransferInput) (*actions.CreateTransfer, error) {
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

	var transferDate time.Time
	if input.Body.TransferDate != "" {
		transferDate, err = time.Parse(time.RFC3339, input.Body.TransferDate)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid transferDate", err)
		}
	} else {
		transferDate = time.Now()
	}

	return &actions.CreateTransfer{
		HouseholdID:          householdID,
		SourceAccountID:      sourceID,
		DestinationAccountID: destinationID,
		Amount:               amount,
		Fee:                  fee,
		Name:                 input.Body.TransferName,
		Notes:                input.Body.Notes,
		Date:                 transferDate,
	}, nil
}

func (h *CreateTransferHandler) handle(ctx context.Context, input *CreateTransferInput) (*CreateTransferOutput, error) {
	logData := logging.GetLogData(ctx)

	action, err := parseCreateTransferInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createTransferMs")
	}
	err = h.Operator.Process(ctx, action)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, apierror.Map("failed to create transfer", err)
	}

	if logData != nil {
		logData.AddData("transferID", action.CreatedID.String())
	}

	return &CreateTransferOutput{
		Status: http.StatusCreated,
		Body:   CreateTransferResponse{ID: action.CreatedID.String()},
	}, nil
}
