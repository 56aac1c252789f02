package models

import "time"

// TimelineEvent is one entry of the server-authoritative, append-only
// status log for an order.
type TimelineEvent struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description,omitempty"`
}

// StepState is the derived state of one timeline step.
type StepState string

const (
	StepCompleted  StepState = "completed"
	StepInProgress StepState = "in_progress"
	StepPending    StepState = "pending"
)

// TimelineStep is one reconciled step of the fixed delivery sequence.
type TimelineStep struct {
	Step        string     `json:"step"`
	State       StepState  `json:"state"`
	Timestamp   *time.Time `json:"timestamp,omitempty"`
	Description string     `json:"description,omitempty"`
}

// Timeline is the reconciled progress view for one order. When the order
// is cancelled, Steps is empty and IsCancelled is the whole story.
type Timeline struct {
	IsCancelled bool           `json:"is_cancelled"`
	Steps       []TimelineStep `json:"steps"`
}
