package cooking

import (
	"math"
	"sort"
	"time"

	"fridge-assistant-backend/pkg/inventory"

	"github.com/google/uuid"
)

type ActionKind string

const (
	ActionUpdate ActionKind = "update"
	ActionDelete ActionKind = "delete"
)

type (
	// RequirementKey matches recipe needs against inventory batches: exact
	// string equality on both fields, units are never converted.
	RequirementKey struct {
		Name string
		Unit string
	}

	// Batch is the slice of a ProductEntry the allocator needs.
	Batch struct {
		ID         uuid.UUID
		Quantity   float64
		ExpiryDate *time.Time
	}

	// Action is one step of a deduction plan: lower a batch to NewQuantity,
	// or delete it when it is consumed down to exactly zero.
	Action struct {
		BatchID     uuid.UUID
		Key         RequirementKey
		Kind        ActionKind
		NewQuantity float64
	}

	// Plan is the allocator output. Shortfall records requirement quantity
	// that no eligible batch could cover; it is logged but never surfaced as
	// an error.
	Plan struct {
		Actions   []Action
		Shortfall map[RequirementKey]float64
	}
)

// ComputePlan maps required ingredient quantities onto available batches,
// consuming soonest-to-expire stock first. Batches expired strictly before
// today are never touched; batches without expiry are eligible but consumed
// after every dated batch. Requirement keys with no eligible batches are
// skipped entirely. The plan never fabricates batches and never drives a
// quantity negative.
func ComputePlan(requirements map[RequirementKey]float64, batches map[RequirementKey][]Batch, today time.Time) Plan {
	plan := Plan{Shortfall: make(map[RequirementKey]float64)}
	today = dateOnly(today)

	for _, key := range sortedKeys(requirements) {
		eligible := excludeExpired(batches[key], today)
		if len(eligible) == 0 {
			continue
		}
		sortByExpiry(eligible)

		remaining := requirements[key]
		for _, batch := range eligible {
			if remaining <= 0 {
				break
			}
			used := math.Min(batch.Quantity, remaining)
			remaining = inventory.Round3(remaining - used)

			newQuantity := inventory.Round3(batch.Quantity - used)
			if newQuantity > 0 {
				plan.Actions = append(plan.Actions, Action{
					BatchID:     batch.ID,
					Key:         key,
					Kind:        ActionUpdate,
					NewQuantity: newQuantity,
				})
			} else {
				plan.Actions = append(plan.Actions, Action{
					BatchID: batch.ID,
					Key:     key,
					Kind:    ActionDelete,
				})
			}
		}

		if remaining > 0 {
			plan.Shortfall[key] = remaining
		}
	}

	return plan
}

// excludeExpired keeps batches whose expiry date is today or later; batches
// without expiry are always kept.
func excludeExpired(batches []Batch, today time.Time) []Batch {
	kept := make([]Batch, 0, len(batches))
	for _, b := range batches {
		if b.ExpiryDate == nil || !dateOnly(*b.ExpiryDate).Before(today) {
			kept = append(kept, b)
		}
	}
	return kept
}

// sortByExpiry orders batches ascending by expiry date with undated batches
// last, so undated stock is only consumed once all dated stock is gone.
func sortByExpiry(batches []Batch) {
	sort.SliceStable(batches, func(i, j int) bool {
		a, b := batches[i].ExpiryDate, batches[j].ExpiryDate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
}

func sortedKeys(requirements map[RequirementKey]float64) []RequirementKey {
	keys := make([]RequirementKey, 0, len(requirements))
	for key := range requirements {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Name != keys[j].Name {
			return keys[i].Name < keys[j].Name
		}
		return keys[i].Unit < keys[j].Unit
	})
	return keys
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
