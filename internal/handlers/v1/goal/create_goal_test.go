package goal

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/ledger-server/internal/money"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/service"
)

type mockActionProcessor struct {
	mock.Mock
}

func (m *mockActionProcessor) Process(ctx context.Context, action actions.IAction) error {
	args := m.Called(ctx, action)
	return args.Error(0)
}

type mockGoalGetter struct {
	mock.Mock
}

func (m *mockGoalGetter) GetGoal(ctx context.Context, householdID, id uuid.UUID) (*service.Goal, error) {
	args := m.Called(ctx, householdID, id)
	result, _ := args.Get(0).(*service.Goal)
	return result, args.Error(1)
}

func TestParseCreateGoalInput_Valid(t *testing.T) {
	householdID := uuid.Must(uuid.NewV4())

	action, err := parseCreateGoalInput(&CreateGoalInput{Body: CreateGoalBody{
		HouseholdID:  householdID.String(),
		Name:         "Vacation",
		TargetAmount: "5000.00",
	}})

	assert.NoError(t, err)
	assert.Equal(t, householdID, action.HouseholdID)
	assert.Equal(t, money.Cents(500000), action.TargetAmount)
}

func TestParseCreateGoalInput_BadAmount(t *testing.T) {
	_, err := parseCreateGoalInput(&CreateGoalInput{Body: CreateGoalBody{
		HouseholdID:  uuid.Must(uuid.NewV4()).String(),
		Name:         "Vacation",
		TargetAmount: "not-a-number",
	}})

	assert.Error(t, err)
}

func TestHTTP_CreateGoal_Success(t *testing.T) {
	createdID := uuid.Must(uuid.NewV4())

	mockOp := new(mockActionProcessor)
	mockOp.On("Process", mock.Anything, mock.AnythingOfType("*actions.CreateGoal")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*actions.CreateGoal).CreatedID = createdID
		}).Return(nil)

	_, api := humatest.New(t)
	NewCreateGoalHandler(mockOp).Register(api)

	resp := api.Post("/v1/goal", CreateGoalBody{
		HouseholdID:  uuid.Must(uuid.NewV4()).String(),
		Name:         "Vacation",
		TargetAmount: "5000.00",
	})

	assert.Equal(t, http.StatusCreated, resp.Code)
	var body CreateGoalResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, createdID.String(), body.ID)
	mockOp.AssertExpectations(t)
}

func TestHTTP_GetGoal_IncludesMilestones(t *testing.T) {
	householdID := uuid.Must(uuid.NewV4())
	goalID := uuid.Must(uuid.NewV4())

	mockSvc := new(mockGoalGetter)
	mockSvc.On("GetGoal", mock.Anything, householdID, goalID).Return(&service.Goal{
		ID:            goalID,
		GoalName:      "Vacation",
		TargetAmount:  500000,
		CurrentAmount: 260000,
		Milestones: []service.ProgressMilestone{
			{Percent: 25, AchievedAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
			{Percent: 50, AchievedAt: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)},
		},
	}, nil)

	_, api := humatest.New(t)
	NewGetGoalHandler(mockSvc).Register(api)

	resp := api.Get("/v1/goal/" + goalID.String() + "?householdID=" + householdID.String())

	assert.Equal(t, http.StatusOK, resp.Code)
	var body Goal
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "2600.00", body.CurrentAmount)
	assert.Len(t, body.Milestones, 2)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_GetGoal_NotFound(t *testing.T) {
	mockSvc := new(mockGoalGetter)
	mockSvc.On("GetGoal", mock.Anything, mock.Anything, mock.Anything).
		Return((*service.Goal)(nil), nil)

	_, api := humatest.New(t)
	NewGetGoalHandler(mockSvc).Register(api)

	resp := api.Get("/v1/goal/" + uuid.Must(uuid.NewV4()).String() +
		"?householdID=" + uuid.Must(uuid.NewV4()).String())

	assert.Equal(t, http.StatusNotFound, resp.Code)
}
