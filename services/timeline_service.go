package services

import (
	"sort"
	"strings"

	"github.com/stockhub/storefront-service/models"
)

// TimelineSequence is the fixed step labels of the delivery progress
// view. Note the first step is labelled ORDER PLACED even though the
// order status enum starts at PENDING; matching is by label.
var TimelineSequence = []string{"ORDER PLACED", "PROCESSING", "SHIPPED", "DELIVERED"}

// ReconcileTimeline merges the server's event log with the fixed step
// sequence into a consistent progress view. It is a pure function of its
// inputs: no hidden state, fully re-derivable.
//
// Events are sorted ascending by timestamp and the first event matching
// a step (case-insensitive) defines that step's completion. A step with
// no matching event is pending, unless it equals the order's current
// status, which makes it in progress. A cancelled order short-circuits:
// the step view is suppressed entirely in favour of IsCancelled.
//
// The result always has exactly len(TimelineSequence) steps, no matter
// how many events exist, including duplicates.
func ReconcileTimeline(events []models.TimelineEvent, currentStatus models.OrderStatus) models.Timeline {
	if currentStatus == models.StatusCancelled {
		return models.Timeline{IsCancelled: true, Steps: []models.TimelineStep{}}
	}

	sorted := append([]models.TimelineEvent(nil), events...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	current := strings.ToUpper(string(currentStatus))

	steps := make([]models.TimelineStep, 0, len(TimelineSequence))
	for _, label := range TimelineSequence {
		step := models.TimelineStep{Step: label, State: models.StepPending}

		for i := range sorted {
			if strings.EqualFold(sorted[i].Status, label) {
				ts := sorted[i].Timestamp
				step.State = models.StepCompleted
				step.Timestamp = &ts
				step.Description = sorted[i].Description
				break
			}
		}

		if step.State == models.StepPending && strings.EqualFold(label, current) {
			step.State = models.StepInProgress
		}

		steps = append(steps, step)
	}

	return models.Timeline{Steps: steps}
}
