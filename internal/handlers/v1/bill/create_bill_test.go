package bill

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
	storagebill "github.com/carson-networks/ledger-server/internal/storage/bill"
)

type mockActionProcessor struct {
	mock.Mock
}

func (m *mockActionProcessor) Process(ctx context.Context, action actions.IAction) error {
	args := m.Called(ctx, action)
	return args.Error(0)
}

type mockBillGetter struct {
	mock.Mock
}

func (m *mockBillGetter) GetBill(ctx context.Context, householdID, id uuid.UUID) (*service.BillInstance, error) {
	args := m.Called(ctx, householdID, id)
	instance, _ := args.Get(0).(*service.BillInstance)
	return instance, args.Error(1)
}

func TestParseCreateBillInput_Valid(t *testing.T) {
	householdID := uuid.Must(uuid.NewV4())

	action, err := parseCreateBillInput(&CreateBillInput{Body: CreateBillBody{
		HouseholdID: householdID.String(),
		Name:        "Electric",
		DueAmount:   "200.00",
		DueDate:     "2025-07-01T00:00:00Z",
	}})

	assert.NoError(t, err)
	assert.Equal(t, householdID, action.HouseholdID)
	assert.Equal(t, money.Cents(20000), action.DueAmount)
	assert.Equal(t, 2025, action.DueDate.Year())
}

func TestParseCreateBillInput_SubCentAmount(t *testing.T) {
	_, err := parseCreateBillInput(&CreateBillInput{Body: CreateBillBody{
		HouseholdID: uuid.Must(uuid.NewV4()).String(),
		Name:        "Electric",
		DueAmount:   "200.005",
		DueDate:     "2025-07-01T00:00:00Z",
	}})

	assert.Error(t, err)
}

func TestHTTP_CreateBill_Success(t *testing.T) {
	createdID := uuid.Must(uuid.NewV4())

	mockOp := new(mockActionProcessor)
	mockOp.On("Process", mock.Anything, mock.AnythingOfType("*actions.CreateBillInstance")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*actions.CreateBillInstance).CreatedID = createdID
		}).Return(nil)

	_, api := humatest.New(t)
	NewCreateBillHandler(mockOp).Register(api)

	resp := api.Post("/v1/bill", CreateBillBody{
		HouseholdID: uuid.Must(uuid.NewV4()).String(),
		Name:        "Electric",
		DueAmount:   "200.00",
		DueDate:     "2025-07-01T00:00:00Z",
	})

	assert.Equal(t, http.StatusCreated, resp.Code)
	var body CreateBillResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, createdID.String(), body.ID)
	mockOp.AssertExpectations(t)
}

func TestHTTP_CreateBill_MissingName(t *testing.T) {
	mockOp := new(mockActionProcessor)

	_, api := humatest.New(t)
	NewCreateBillHandler(mockOp).Register(api)

	resp := api.Post("/v1/bill", CreateBillBody{
		HouseholdID: uuid.Must(uuid.NewV4()).String(),
		DueAmount:   "200.00",
		DueDate:     "2025-07-01T00:00:00Z",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockOp.AssertNotCalled(t, "Process")
}

func TestHTTP_GetBill_Success(t *testing.T) {
	householdID := uuid.Must(uuid.NewV4())
	billID := uuid.Must(uuid.NewV4())

	mockSvc := new(mockBillGetter)
	mockSvc.On("GetBill", mock.Anything, householdID, billID).Return(&service.BillInstance{
		ID:         billID,
		BillName:   "Electric",
		DueAmount:  20000,
		AmountPaid: 20000,
		Remaining:  0,
		DueDate:    time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		Status:     storagebill.StatusPaid,
		Milestones: []service.ProgressMilestone{
			{Percent: 100, AchievedAt: time.Date(2025, 6, 28, 0, 0, 0, 0, time.UTC)},
		},
	}, nil)

	_, api := humatest.New(t)
	NewGetBillHandler(mockSvc).Register(api)

	resp := api.Get("/v1/bill/" + billID.String() + "?householdID=" + householdID.String())

	assert.Equal(t, http.StatusOK, resp.Code)
	var body BillInstance
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "200.00", body.DueAmount)
	assert.Equal(t, "0.00", body.Remaining)
	assert.Equal(t, "paid", body.Status)
	assert.Len(t, body.Milestones, 1)
	assert.Equal(t, int16(100), body.Milestones[0].Percent)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_GetBill_NotFound(t *testing.T) {
	mockSvc := new(mockBillGetter)
	mockSvc.On("GetBill", mock.Anything, mock.Anything, mock.Anything).
		Return((*service.BillInstance)(nil), nil)

	_, api := humatest.New(t)
	NewGetBillHandler(mockSvc).Register(api)

	resp := api.Get("/v1/bill/" + uuid.Must(uuid.NewV4()).String() +
		"?householdID=" + uuid.Must(uuid.NewV4()).String())

	assert.Equal(t, http.StatusNotFound, resp.Code)
}
