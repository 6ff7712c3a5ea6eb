package goal

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/apierror"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/money"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
)

// CreateGoalBody is the request body for creating a savings goal.
type CreateGoalBody struct {
	HouseholdID  string `json:"householdID" required:"true" format:"uuid" doc:"Household UUID"`
	Name         string `json:"name" required:"true" minLength:"1" doc:"Goal name"`
	TargetAmount string `json:"targetAmount" required:"true" doc:"Positive decimal target (e.g. '5000.00')"`
}

// CreateGoalInput is the Huma input for creating a savings goal.
type CreateGoalInput struct {
	Body CreateGoalBody
}

// CreateGoalResponse is the response body for creating a savings goal.
type CreateGoalResponse struct {
	ID string `json:"id" doc:"Created goal UUID"`
}

// CreateGoalOutput is the response for creating a savings goal.
type CreateGoalOutput struct {
	Status int
	Body   CreateGoalResponse
}

// actionProcessor is the interface for submitting write actions.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// CreateGoalHandler handles POST /v1/goal.
type CreateGoalHandler struct {
	Operator actionProcessor
}

// NewCreateGoalHandler creates a new CreateGoalHandler.
func NewCreateGoalHandler(op actionProcessor) *CreateGoalHandler {
	return &CreateGoalHandler{Operator: op}
}

// Register registers the create goal endpoint with the Huma API.
func (h *CreateGoalHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-goal",
		Method:      http.MethodPost,
		Path:        "/v1/goal",
		Summary:     "Create a savings goal",
		Description: "Creates a new savings goal. Progress is derived from the contributions linked to it.",
		Tags:        []string{"Goals"},
	}, h.handle)
}

func parseCreateGoalInput(input *CreateGoalInput) (*actions.CreateGoal, error) {
	householdID, err := uuid.FromString(input.Body.HouseholdID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid householdID", err)
	}

	targetAmount, err := money.FromString(input.Body.TargetAmount)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid targetAmount", err)
	}

	return &actions.CreateGoal{
		HouseholdID:  householdID,
		Name:         input.Body.Name,
		TargetAmount: targetAmount,
	}, nil
}

func (h *CreateGoalHandler) handle(ctx context.Context, input *CreateGoalInput) (*CreateGoalOutput, error) {
	logData := logging.GetLogData(ctx)

	action, err := parseCreateGoalInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createGoalMs")
	}
	err = h.Operator.Process(ctx, action)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, apierror.Map("failed to create goal", err)
	}

	if logData != nil {
		logData.AddData("goalID", action.CreatedID.String())
	}

	return &CreateGoalOutput{
		Status: http.StatusCreated,
		Body:   CreateGoalResponse{ID: action.CreatedID.String()},
	}, nil
}
