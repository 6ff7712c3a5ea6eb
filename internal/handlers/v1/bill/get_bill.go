package bill

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/service"
)

// GetBillInput is the Huma input for fetching one bill instance.
type GetBillInput struct {
	ID          string `path:"id" format:"uuid" doc:"Bill instance UUID"`
	HouseholdID string `query:"householdID" required:"true" format:"uuid" doc:"Household UUID"`
}

// Milestone is the API model for one stamped payment threshold.
type Milestone struct {
	Percent    int16  `json:"percent" doc:"Threshold percentage: 25, 50, 75, or 100"`
	AchievedAt string `json:"achievedAt" doc:"RFC3339 time the threshold was first crossed"`
}

// BillInstance is the API response model for a bill instance.
type BillInstance struct {
	ID         string      `json:"id" doc:"Bill instance UUID"`
	Name       string      `json:"name" doc:"Bill name"`
	DueAmount  string      `json:"dueAmount" doc:"Decimal amount due"`
	AmountPaid string      `json:"amountPaid" doc:"Decimal amount paid so far"`
	Remaining  string      `json:"remaining" doc:"Decimal amount still owed"`
	DueDate    string      `json:"dueDate" doc:"RFC3339 due date"`
	Status     string      `json:"status" doc:"Payment status: unpaid, paid, overdue"`
	CreatedAt  string      `json:"createdAt" doc:"RFC3339 creation time"`
	Milestones []Milestone `json:"milestones" doc:"Stamped payment thresholds, never un-stamped"`
}

// GetBillOutput is the Huma output for fetching one bill instance.
type GetBillOutput struct {
	Body BillInstance
}

// billGetter is the interface for fetching a single bill instance.
type billGetter interface {
	GetBill(ctx context.Context, householdID, id uuid.UUID) (*service.BillInstance, error)
}

// GetBillHandler handles GET /v1/bill/{id}.
type GetBillHandler struct {
	ProgressService billGetter
}

// NewGetBillHandler creates a new GetBillHandler.
func NewGetBillHandler(svc billGetter) *GetBillHandler {
	return &GetBillHandler{ProgressService: svc}
}

// Register registers the get bill endpoint with the Huma API.
func (h *GetBillHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-bill",
		Method:      http.MethodGet,
		Path:        "/v1/bill/{id}",
		Summary:     "Get a bill instance",
		Description: "Returns a bill instance with its derived payment progress.",
		Tags:        []string{"Bills"},
	}, h.handle)
}

func (h *GetBillHandler) handle(ctx context.Context, input *GetBillInput) (*GetBillOutput, error) {
	logData := logging.GetLogData(ctx)

	householdID, err := uuid.FromString(input.HouseholdID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid householdID", err)
	}
	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid bill id", err)
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("getBillMs")
	}
	instance, err := h.ProgressService.GetBill(ctx, householdID, id)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to get bill", err)
	}
	if instance == nil {
		return nil, huma.NewError(http.StatusNotFound, "bill instance not found")
	}

	body := BillInstance{
		ID:         instance.ID.String(),
		Name:       instance.BillName,
		DueAmount:  instance.DueAmount.String(),
		AmountPaid: instance.AmountPaid.String(),
		Remaining:  instance.Remaining.String(),
		DueDate:    instance.DueDate.Format(time.RFC3339),
		Status:     string(instance.Status),
		CreatedAt:  instance.CreatedAt.Format(time.RFC3339),
		Milestones: make([]Milestone, len(instance.Milestones)),
	}
	for i, m := range instance.Milestones {
		body.Milestones[i] = Milestone{
			Percent:    m.Percent,
			AchievedAt: m.AchievedAt.Format(time.RFC3339),
		}
	}

	return &GetBillOutput{Body: body}, nil
}
