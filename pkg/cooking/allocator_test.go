package cooking

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func day(value string) *time.Time {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return &parsed
}

func TestComputePlan(t *testing.T) {
	today := *day("2026-09-01")
	eggs := RequirementKey{Name: "eggs", Unit: "pcs"}
	milk := RequirementKey{Name: "milk", Unit: "l"}

	t.Run("soonest expiring batch is consumed first", func(t *testing.T) {
		later := uuid.New()
		sooner := uuid.New()
		plan := ComputePlan(
			map[RequirementKey]float64{eggs: 4},
			map[RequirementKey][]Batch{eggs: {
				{ID: later, Quantity: 10, ExpiryDate: day("2026-09-20")},
				{ID: sooner, Quantity: 3, ExpiryDate: day("2026-09-03")},
			}},
			today,
		)

		require.Len(t, plan.Actions, 2)
		require.Equal(t, sooner, plan.Actions[0].BatchID)
		require.Equal(t, ActionDelete, plan.Actions[0].Kind)
		require.Equal(t, later, plan.Actions[1].BatchID)
		require.Equal(t, ActionUpdate, plan.Actions[1].Kind)
		require.Equal(t, 9.0, plan.Actions[1].NewQuantity)
		require.Empty(t, plan.Shortfall)
	})

	t.Run("expired batches are never touched", func(t *testing.T) {
		expired := uuid.New()
		fresh := uuid.New()
		plan := ComputePlan(
			map[RequirementKey]float64{milk: 1},
			map[RequirementKey][]Batch{milk: {
				{ID: expired, Quantity: 5, ExpiryDate: day("2026-08-30")},
				{ID: fresh, Quantity: 2, ExpiryDate: day("2026-09-05")},
			}},
			today,
		)

		require.Len(t, plan.Actions, 1)
		require.Equal(t, fresh, plan.Actions[0].BatchID)
		require.Equal(t, 1.0, plan.Actions[0].NewQuantity)
	})

	t.Run("batch expiring today is still eligible", func(t *testing.T) {
		id := uuid.New()
		plan := ComputePlan(
			map[RequirementKey]float64{milk: 1},
			map[RequirementKey][]Batch{milk: {
				{ID: id, Quantity: 2, ExpiryDate: day("2026-09-01")},
			}},
			today,
		)

		require.Len(t, plan.Actions, 1)
		require.Equal(t, id, plan.Actions[0].BatchID)
	})

	t.Run("undated batches are consumed after all dated batches", func(t *testing.T) {
		undated := uuid.New()
		dated := uuid.New()
		plan := ComputePlan(
			map[RequirementKey]float64{eggs: 5},
			map[RequirementKey][]Batch{eggs: {
				{ID: undated, Quantity: 10},
				{ID: dated, Quantity: 3, ExpiryDate: day("2026-09-10")},
			}},
			today,
		)

		require.Len(t, plan.Actions, 2)
		require.Equal(t, dated, plan.Actions[0].BatchID)
		require.Equal(t, ActionDelete, plan.Actions[0].Kind)
		require.Equal(t, undated, plan.Actions[1].BatchID)
		require.Equal(t, 8.0, plan.Actions[1].NewQuantity)
	})

	t.Run("exact zero remainder deletes instead of storing zero", func(t *testing.T) {
		id := uuid.New()
		plan := ComputePlan(
			map[RequirementKey]float64{milk: 0.5},
			map[RequirementKey][]Batch{milk: {
				{ID: id, Quantity: 0.5, ExpiryDate: day("2026-09-05")},
			}},
			today,
		)

		require.Len(t, plan.Actions, 1)
		require.Equal(t, ActionDelete, plan.Actions[0].Kind)
	})

	t.Run("shortfall is recorded but stock is still consumed", func(t *testing.T) {
		id := uuid.New()
		plan := ComputePlan(
			map[RequirementKey]float64{eggs: 10},
			map[RequirementKey][]Batch{eggs: {
				{ID: id, Quantity: 6, ExpiryDate: day("2026-09-05")},
			}},
			today,
		)

		require.Len(t, plan.Actions, 1)
		require.Equal(t, ActionDelete, plan.Actions[0].Kind)
		require.Equal(t, 4.0, plan.Shortfall[eggs])
	})

	t.Run("requirement with no eligible batches is skipped", func(t *testing.T) {
		plan := ComputePlan(
			map[RequirementKey]float64{eggs: 2},
			map[RequirementKey][]Batch{},
			today,
		)

		require.Empty(t, plan.Actions)
		require.Empty(t, plan.Shortfall)
	})

	t.Run("unit mismatch never cross-allocates", func(t *testing.T) {
		id := uuid.New()
		plan := ComputePlan(
			map[RequirementKey]float64{{Name: "milk", Unit: "ml"}: 200},
			map[RequirementKey][]Batch{milk: {
				{ID: id, Quantity: 1, ExpiryDate: day("2026-09-05")},
			}},
			today,
		)

		require.Empty(t, plan.Actions)
	})

	t.Run("fractional deduction stays at three decimals", func(t *testing.T) {
		id := uuid.New()
		plan := ComputePlan(
			map[RequirementKey]float64{milk: 0.1},
			map[RequirementKey][]Batch{milk: {
				{ID: id, Quantity: 0.3, ExpiryDate: day("2026-09-05")},
			}},
			today,
		)

		require.Len(t, plan.Actions, 1)
		require.Equal(t, 0.2, plan.Actions[0].NewQuantity)
	})
}
