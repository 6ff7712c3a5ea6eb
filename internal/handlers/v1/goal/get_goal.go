package goal

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/service"
)

// GetGoalInput is the Huma input for fetching one savings goal.
type GetGoalInput struct {
	ID          string `path:"id" format:"uuid" doc:"Goal UUID"`
	HouseholdID string `query:"householdID" required:"true" format:"uuid" doc:"Household UUID"`
}

// Milestone is the API model for one stamped savings threshold.
type Milestone struct {
	Percent    int16  `json:"percent" doc:"Threshold percentage: 25, 50, 75, or 100"`
	AchievedAt string `json:"achievedAt" doc:"RFC3339 time the threshold was first crossed"`
}

// Goal is the API response model for a savings goal.
type Goal struct {
	ID            string      `json:"id" doc:"Goal UUID"`
	Name          string      `json:"name" doc:"Goal name"`
	TargetAmount  string      `json:"targetAmount" doc:"Decimal target amount"`
	CurrentAmount string      `json:"currentAmount" doc:"Decimal amount saved so far"`
	CreatedAt     string      `json:"createdAt" doc:"RFC3339 creation time"`
	Milestones    []Milestone `json:"milestones" doc:"Stamped savings thresholds, never un-stamped"`
}

// GetGoalOutput is the Huma output for fetching one savings goal.
type GetGoalOutput struct {
	Body Goal
}

// goalGetter is the interface for fetching a single savings goal.
type goalGetter interface {
	GetGoal(ctx context.Context, householdID, id uuid.UUID) (*service.Goal, error)
}

// GetGoalHandler handles GET /v1/goal/{id}.
type GetGoalHandler struct {
	ProgressService goalGetter
}

// NewGetGoalHandler creates a new GetGoalHandler.
func NewGetGoalHandler(svc goalGetter) *GetGoalHandler {
	return &GetGoalHandler{ProgressService: svc}
}

// Register registers the get goal endpoint with the Huma API.
func (h *GetGoalHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-goal",
		Method:      http.MethodGet,
		Path:        "/v1/goal/{id}",
		Summary:     "Get a savings goal",
		Description: "Returns a savings goal with its derived progress and milestone history.",
		Tags:        []string{"Goals"},
	}, h.handle)
}

func (h *GetGoalHandler) handle(ctx context.Context, input *GetGoalInput) (*GetGoalOutput, error) {
	logData := logging.GetLogData(ctx)

	householdID, err := uuid.FromString(input.HouseholdID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid householdID", err)
	}
	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid goal id", err)
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("getGoalMs")
	}
	result, err := h.ProgressService.GetGoal(ctx, householdID, id)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to get goal", err)
	}
	if result == nil {
		return nil, huma.NewError(http.StatusNotFound, "goal not found")
	}

	body := Goal{
		ID:            result.ID.String(),
		Name:          result.GoalName,
		TargetAmount:  result.TargetAmount.String(),
		CurrentAmount: result.CurrentAmount.String(),
		CreatedAt:     result.CreatedAt.Format(time.RFC3339),
		Milestones:    make([]Milestone, len(result.Milestones)),
	}
	for i, m := range result.Milestones {
		body.Milestones[i] = Milestone{
			Percent:    m.Percent,
			AchievedAt: m.AchievedAt.Format(time.RFC3339),
		}
	}

	return &GetGoalOutput{Body: body}, nil
}
