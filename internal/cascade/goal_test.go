package cascade

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/ledger-server/internal/money"
	"github.com/carson-networks/ledger-server/internal/storage/goal"
)

type mockGoalTable struct {
	mock.Mock
}

func (m *mockGoalTable) FindByIDForUpdate(ctx context.Context, householdID, id uuid.UUID) (*goal.Goal, error) {
	args := m.Called(ctx, householdID, id)
	g, _ := args.Get(0).(*goal.Goal)
	return g, args.Error(1)
}

func (m *mockGoalTable) UpdateCurrent(ctx context.Context, householdID, id uuid.UUID, current money.Cents) error {
	args := m.Called(ctx, householdID, id, current)
	return args.Error(0)
}

func (m *mockGoalTable) AchievedPercents(ctx context.Context, householdID, goalID uuid.UUID) ([]int16, error) {
	args := m.Called(ctx, householdID, goalID)
	percents, _ := args.Get(0).([]int16)
	return percents, args.Error(1)
}

func (m *mockGoalTable) StampMilestone(ctx context.Context, householdID, goalID uuid.UUID, percent int16, achievedAt time.Time) error {
	args := m.Called(ctx, householdID, goalID, percent, achievedAt)
	return args.Error(0)
}

type mockGoalContributions struct {
	mock.Mock
}

func (m *mockGoalContributions) SumByGoal(ctx context.Context, householdID, goalID uuid.UUID) (money.Cents, error) {
	args := m.Called(ctx, householdID, goalID)
	return args.Get(0).(money.Cents), args.Error(1)
}

func testGoal(target money.Cents) *goal.Goal {
	return &goal.Goal{
		ID:           uuid.Must(uuid.NewV4()),
		HouseholdID:  uuid.Must(uuid.NewV4()),
		Name:         "Emergency fund",
		TargetAmount: target,
	}
}

func TestRecalculateGoal_StampsEachCrossedMilestoneOnce(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	g := testGoal(100000)

	// $520 of $1,000 saved: 25 and 50 cross in one pass.
	goals := new(mockGoalTable)
	goals.On("FindByIDForUpdate", mock.Anything, g.HouseholdID, g.ID).Return(g, nil)
	goals.On("UpdateCurrent", mock.Anything, g.HouseholdID, g.ID, money.Cents(52000)).Return(nil)
	goals.On("AchievedPercents", mock.Anything, g.HouseholdID, g.ID).Return([]int16(nil), nil)
	goals.On("StampMilestone", mock.Anything, g.HouseholdID, g.ID, int16(25), now).Return(nil)
	goals.On("StampMilestone", mock.Anything, g.HouseholdID, g.ID, int16(50), now).Return(nil)

	contributions := new(mockGoalContributions)
	contributions.On("SumByGoal", mock.Anything, g.HouseholdID, g.ID).
		Return(money.Cents(52000), nil)

	err := RecalculateGoal(context.Background(), goals, contributions, g.HouseholdID, g.ID, now)

	assert.NoError(t, err)
	goals.AssertExpectations(t)
	goals.AssertNotCalled(t, "StampMilestone", mock.Anything, mock.Anything, mock.Anything, int16(75), mock.Anything)
}

func TestRecalculateGoal_FullTargetStampsHundred(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	g := testGoal(100000)

	goals := new(mockGoalTable)
	goals.On("FindByIDForUpdate", mock.Anything, g.HouseholdID, g.ID).Return(g, nil)
	goals.On("UpdateCurrent", mock.Anything, g.HouseholdID, g.ID, money.Cents(100000)).Return(nil)
	goals.On("AchievedPercents", mock.Anything, g.HouseholdID, g.ID).Return([]int16{25, 50}, nil)
	goals.On("StampMilestone", mock.Anything, g.HouseholdID, g.ID, int16(75), now).Return(nil)
	goals.On("StampMilestone", mock.Anything, g.HouseholdID, g.ID, int16(100), now).Return(nil)

	contributions := new(mockGoalContributions)
	contributions.On("SumByGoal", mock.Anything, g.HouseholdID, g.ID).
		Return(money.Cents(100000), nil)

	err := RecalculateGoal(context.Background(), goals, contributions, g.HouseholdID, g.ID, now)

	assert.NoError(t, err)
	goals.AssertExpectations(t)
}

func TestRecalculateGoal_WithdrawalKeepsMilestones(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	g := testGoal(100000)

	// A deleted contribution drops progress back under 25%; the stamp stays.
	goals := new(mockGoalTable)
	goals.On("FindByIDForUpdate", mock.Anything, g.HouseholdID, g.ID).Return(g, nil)
	goals.On("UpdateCurrent", mock.Anything, g.HouseholdID, g.ID, money.Cents(20000)).Return(nil)
	goals.On("AchievedPercents", mock.Anything, g.HouseholdID, g.ID).Return([]int16{25}, nil)

	contributions := new(mockGoalContributions)
	contributions.On("SumByGoal", mock.Anything, g.HouseholdID, g.ID).
		Return(money.Cents(20000), nil)

	err := RecalculateGoal(context.Background(), goals, contributions, g.HouseholdID, g.ID, now)

	assert.NoError(t, err)
	goals.AssertNotCalled(t, "StampMilestone", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRecalculateGoal_MissingGoal(t *testing.T) {
	goals := new(mockGoalTable)
	goals.On("FindByIDForUpdate", mock.Anything, mock.Anything, mock.Anything).
		Return((*goal.Goal)(nil), nil)

	contributions := new(mockGoalContributions)

	err := RecalculateGoal(context.Background(), goals, contributions,
		uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4()), time.Now())

	assert.ErrorIs(t, err, ErrGoalNotFound)
	contributions.AssertNotCalled(t, "SumByGoal")
}

func TestNewlyCrossed(t *testing.T) {
	assert.Equal(t, []int16{25, 50}, newlyCrossed(52000, 100000, nil))
	assert.Equal(t, []int16{75, 100}, newlyCrossed(100000, 100000, []int16{25, 50}))
	assert.Empty(t, newlyCrossed(20000, 100000, []int16{25}))
	assert.Empty(t, newlyCrossed(52000, 0, nil))
	assert.Equal(t, []int16{25, 50, 75, 100}, newlyCrossed(100000, 100000, nil))
}
