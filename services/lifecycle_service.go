package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/stockhub/storefront-service/apperrors"
	"github.com/stockhub/storefront-service/clients"
	"github.com/stockhub/storefront-service/models"
)

// StagedTransition is a requested-but-unconfirmed status change, held
// until the user confirms or discards it.
type StagedTransition struct {
	OrderID     int64              `json:"order_id"`
	From        models.OrderStatus `json:"from"`
	To          models.OrderStatus `json:"to"`
	Description string             `json:"description"`
	RequestedAt time.Time          `json:"requested_at"`
}

// LifecycleService runs the order status state machine behind a
// two-phase stage/confirm protocol: no single-step unconfirmed status
// mutation can ever reach the backend. At most one transition may be
// staged per session; a second request is rejected rather than silently
// overwriting the first.
type LifecycleService struct {
	backend clients.API
	logger  *zap.Logger

	mu     sync.Mutex
	staged map[string]*StagedTransition
}

func NewLifecycleService(backend clients.API, logger *zap.Logger) *LifecycleService {
	return &LifecycleService{
		backend: backend,
		logger:  logger,
		staged:  make(map[string]*StagedTransition),
	}
}

// RequestTransition validates the requested change against the state
// machine and stages it. The order itself is untouched until
// ConfirmTransition succeeds.
func (s *LifecycleService) RequestTransition(sessionID string, order *models.Order, to models.OrderStatus) (*StagedTransition, error) {
	to, ok := models.ParseStatus(string(to))
	if !ok {
		return nil, apperrors.Newf(apperrors.KindValidation, "unknown status %q", string(to))
	}
	if err := models.ValidateTransition(order.Status, to); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.staged[sessionID]; ok {
		return nil, apperrors.Newf(apperrors.KindTransitionPending,
			"a transition for order %d is already pending confirmation", existing.OrderID)
	}

	staged := &StagedTransition{
		OrderID:     order.ID,
		From:        order.Status,
		To:          to,
		Description: fmt.Sprintf("Order status updated to %s", to),
		RequestedAt: time.Now(),
	}
	s.staged[sessionID] = staged

	return staged, nil
}

// Staged returns the session's pending transition, if any.
func (s *LifecycleService) Staged(sessionID string) (*StagedTransition, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	staged, ok := s.staged[sessionID]
	return staged, ok
}

// ConfirmTransition commits the staged change through the backend. On
// success the stage is cleared and the updated order returned. On
// failure the stage is kept so the user can retry or discard; nothing
// about the order has changed.
func (s *LifecycleService) ConfirmTransition(ctx context.Context, sessionID, bearer string) (*models.Order, error) {
	s.mu.Lock()
	staged, ok := s.staged[sessionID]
	s.mu.Unlock()
	if !ok {
		return nil, apperrors.New(apperrors.KindNotFound, "no transition is pending confirmation")
	}

	order, err := s.backend.UpdateOrderStatus(ctx, staged.OrderID, staged.To, staged.Description, bearer)
	if err != nil {
		s.logger.Warn("status update failed",
			zap.Int64("order_id", staged.OrderID),
			zap.String("to", string(staged.To)),
			zap.Error(err),
		)
		return nil, err
	}

	s.mu.Lock()
	delete(s.staged, sessionID)
	s.mu.Unlock()

	s.logger.Info("order status updated",
		zap.Int64("order_id", order.ID),
		zap.String("from", string(staged.From)),
		zap.String("to", string(order.Status)),
	)
	return order, nil
}

// CancelTransitionRequest discards the staged change without side
// effects.
func (s *LifecycleService) CancelTransitionRequest(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.staged[sessionID]; !ok {
		return apperrors.New(apperrors.KindNotFound, "no transition is pending confirmation")
	}
	delete(s.staged, sessionID)
	return nil
}
