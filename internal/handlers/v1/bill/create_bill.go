package bill

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

// CreateBillBody is the request body for creating a bill instance.
type CreateBillBody struct {
	HouseholdID string `json:"householdID" required:"true" format:"uuid" doc:"Household UUID"`
	Name        string `json:"name" required:"true" minLength:"1" doc:"Bill name"`
	DueAmount   string `json:"dueAmount" required:"true" doc:"Positive decimal amount due (e.g. '200.00')"`
	DueDate     string `json:"dueDate" required:"true" format:"date-time" doc:"RFC3339 due date"`
}

// CreateBillInput is the Huma input for creating a bill instance.
type CreateBillInput struct {
	Body CreateBillBody
}

// CreateBillResponse is the response body for creating a bill instance.
type CreateBillResponse struct {
	ID string `json:"id" doc:"Created bill instance UUID"`
}

// CreateBillOutput is the response for creating a bill instance.
type CreateBillOutput struct {
	Status int
	Body   CreateBillResponse
}

// actionProcessor is the interface for submitting write actions.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// CreateBillHandler handles POST /v1/bill.
type CreateBillHandler struct {
	Operator actionProcessor
}

// NewCreateBillHandler creates a new CreateBillHandler.
func NewCreateBillHandler(op actionProcessor) *CreateBillHandler {
	return &CreateBillHandler{Operator: op}
}

// Register registers the create bill endpoint with the Huma API.
func (h *CreateBillHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-bill",
		Method:      http.MethodPost,
		Path:        "/v1/bill",
		Summary:     "Create a bill instance",
		Description: "Creates a new unpaid bill instance. Payment progress is derived from the transactions linked to it.",
		Tags:        []string{"Bills"},
	}, h.handle)
}

func parseCreateBillInput(input *CreateBillInput) (*actions.CreateBillInstance, error) {
	householdID, err := uuid.FromString(input.Body.HouseholdID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid householdID", err)
	}

	dueAmount, err := money.FromString(input.Body.DueAmount)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid dueAmount", err)
	}

	dueDate, err := time.Parse(time.RFC3339, input.Body.DueDate)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid dueDate", err)
	}

	return &actions.CreateBillInstance{
		HouseholdID: householdID,
		Name:        input.Body.Name,
		DueAmount:   dueAmount,
		DueDate:     dueDate,
	}, nil
}

func (h *CreateBillHandler) handle(ctx context.Context, input *CreateBillInput) (*CreateBillOutput, error) {
	logData := logging.GetLogData(ctx)

	action, err := parseCreateBillInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createBillMs")
	}
	err = h.Operator.Process(ctx, action)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, apierror.Map("failed to create bill", err)
	}

	if logData != nil {
		logData.AddData("billInstanceID", action.CreatedID.String())
	}

	return &CreateBillOutput{
		Status: http.StatusCreated,
		Body:   CreateBillResponse{ID: action.CreatedID.String()},
	}, nil
}
