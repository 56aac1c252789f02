package models

import (
	"strings"

	"github.com/stockhub/storefront-service/apperrors"
)

// OrderStatus is the lifecycle status of an order as reported by the
// backend.
type OrderStatus string

const (
	StatusPending    OrderStatus = "PENDING"
	StatusProcessing OrderStatus = "PROCESSING"
	StatusShipped    OrderStatus = "SHIPPED"
	StatusDelivered  OrderStatus = "DELIVERED"
	StatusCancelled  OrderStatus = "CANCELLED"
)

// StatusSequence is the forward order of the lifecycle. CANCELLED sits
// outside the sequence and is reachable from any non-terminal state.
var StatusSequence = []OrderStatus{StatusPending, StatusProcessing, StatusShipped, StatusDelivered}

// ParseStatus normalizes a backend-reported status string.
func ParseStatus(s string) (OrderStatus, bool) {
	status := OrderStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch status {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return status, true
	}
	return "", false
}

// IsTerminal reports whether no further transition is permitted.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Next returns the single legal forward step, if one exists. There is no
// next step from SHIPPED's successor DELIVERED, nor from CANCELLED.
func (s OrderStatus) Next() (OrderStatus, bool) {
	for i, st := range StatusSequence {
		if st == s && i+1 < len(StatusSequence) {
			return StatusSequence[i+1], true
		}
	}
	return "", false
}

// CanCancel reports whether the order may move to CANCELLED from here.
func (s OrderStatus) CanCancel() bool {
	return !s.IsTerminal()
}

// ValidateTransition checks that moving from one status to another is
// legal: forward by exactly one step, or sideways to CANCELLED from any
// non-terminal state. Anything else, including any move out of a terminal
// state, is rejected.
func ValidateTransition(from, to OrderStatus) error {
	if from.IsTerminal() {
		return apperrors.Newf(apperrors.KindInvalidTransition,
			"order is %s and cannot change status", from)
	}
	if to == StatusCancelled {
		return nil
	}
	next, ok := from.Next()
	if !ok || to != next {
		return apperrors.Newf(apperrors.KindInvalidTransition,
			"cannot move order from %s to %s", from, to)
	}
	return nil
}
