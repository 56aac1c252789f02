package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/stockhub/storefront-service/apperrors"
	"github.com/stockhub/storefront-service/clients"
	"github.com/stockhub/storefront-service/database"
	"github.com/stockhub/storefront-service/models"
)

// CheckoutDecision is the gate between cart and order placement.
type CheckoutDecision struct {
	Allowed bool     `json:"allowed"`
	Reasons []string `json:"reasons,omitempty"`
}

// CanCheckout validates every cart line against the given snapshot. The
// snapshot is taken once per attempt so a concurrent refresh cannot
// change the rules mid-validation.
func CanCheckout(cart *models.Cart, snapshot models.InventorySnapshot) CheckoutDecision {
	var reasons []string
	for _, line := range cart.Items {
		available := snapshot.QuantityOf(line.ItemID)
		switch {
		case available == 0:
			reasons = append(reasons, fmt.Sprintf("item %d out of stock", line.ItemID))
		case line.Quantity > available:
			reasons = append(reasons, fmt.Sprintf("item %d exceeds stock", line.ItemID))
		}
	}
	return CheckoutDecision{Allowed: len(reasons) == 0, Reasons: reasons}
}

// CheckoutSummary is the order-summary view model: enriched lines and
// totals recomputed from the latest snapshot. Discounts are backend
// owned; the engine reports zero.
type CheckoutSummary struct {
	Items    []models.EnrichedCartLine `json:"items"`
	Subtotal float64                   `json:"subtotal"`
	Discount float64                   `json:"discount"`
	Total    float64                   `json:"total"`
	Decision CheckoutDecision          `json:"decision"`
}

// PlaceOrderInput is the user-supplied checkout form.
type PlaceOrderInput struct {
	Username       string `json:"username"`
	Address        string `json:"address"`
	PaymentMethod  string `json:"paymentMethod"`
	IdempotencyKey string `json:"-"`
}

// CheckoutService gates the transition from cart to order placement.
type CheckoutService struct {
	store     database.SessionStore
	snapshots SnapshotSource
	backend   clients.API
	logger    *zap.Logger
	idemTTL   time.Duration
}

func NewCheckoutService(store database.SessionStore, snapshots SnapshotSource, backend clients.API, idemTTL time.Duration, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		store:     store,
		snapshots: snapshots,
		backend:   backend,
		logger:    logger,
		idemTTL:   idemTTL,
	}
}

// Summary builds the checkout view for the session.
func (s *CheckoutService) Summary(ctx context.Context, sessionID string) (*CheckoutSummary, error) {
	cart, err := s.loadCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	snapshot := s.snapshots.Snapshot(sessionID)
	subtotal := models.PriceLines(cart.Items, snapshot)

	return &CheckoutSummary{
		Items:    models.EnrichLines(cart.Items, snapshot),
		Subtotal: subtotal,
		Discount: 0,
		Total:    subtotal,
		Decision: CanCheckout(cart, snapshot),
	}, nil
}

// Decide runs the checkout gate for the session's current cart.
func (s *CheckoutService) Decide(ctx context.Context, sessionID string) (CheckoutDecision, error) {
	cart, err := s.loadCart(ctx, sessionID)
	if err != nil {
		return CheckoutDecision{}, err
	}
	return CanCheckout(cart, s.snapshots.Snapshot(sessionID)), nil
}

// PlaceOrder validates the form, submits the order-creation request and,
// only on success, clears the cart and stores the invoice. On any
// transport or server error the cart is untouched: the user never loses
// their cart to a failed submission, and the cart is cleared at most
// once.
func (s *CheckoutService) PlaceOrder(ctx context.Context, sessionID string, in PlaceOrderInput) (*models.Order, error) {
	if strings.TrimSpace(in.Username) == "" ||
		strings.TrimSpace(in.Address) == "" ||
		strings.TrimSpace(in.PaymentMethod) == "" {
		return nil, apperrors.New(apperrors.KindValidation,
			"username, address and payment method are required")
	}

	cart, err := s.loadCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, apperrors.New(apperrors.KindValidation, "cart is empty")
	}

	// A replayed submission returns the invoice the first attempt
	// produced instead of placing a second order.
	if in.IdempotencyKey != "" {
		orderID, err := s.store.GetIdempotency(ctx, in.IdempotencyKey)
		if err == nil && orderID != "" {
			if invoice, invErr := s.store.GetInvoice(ctx, sessionID); invErr == nil && invoice != nil {
				s.logger.Info("duplicate checkout suppressed",
					zap.String("session", sessionID),
					zap.String("idempotency_key", in.IdempotencyKey),
				)
				return invoice, nil
			}
		}
	}

	order, err := s.backend.PlaceOrder(ctx, &models.PlaceOrderRequest{
		Username:      in.Username,
		Address:       in.Address,
		PaymentMethod: in.PaymentMethod,
		CartItems:     cart.Items,
	})
	if err != nil {
		return nil, err
	}

	if in.IdempotencyKey != "" {
		if err := s.store.SetIdempotency(ctx, in.IdempotencyKey, fmt.Sprintf("%d", order.ID), s.idemTTL); err != nil {
			s.logger.Warn("failed to record idempotency key", zap.Error(err))
		}
	}

	if err := s.store.SaveInvoice(ctx, sessionID, order); err != nil {
		s.logger.Warn("failed to persist invoice",
			zap.String("session", sessionID), zap.Error(err))
	}

	// The order exists on the backend now; a failed clear must not undo
	// that, so it is logged and the invoice still handed to the caller.
	if err := s.store.DeleteCart(ctx, sessionID); err != nil {
		s.logger.Error("failed to clear cart after successful order",
			zap.String("session", sessionID),
			zap.Int64("order_id", order.ID),
			zap.Error(err),
		)
	}

	s.logger.Info("order placed",
		zap.String("session", sessionID),
		zap.Int64("order_id", order.ID),
		zap.Float64("total", order.TotalAmount),
	)
	return order, nil
}

// LatestInvoice returns the session's last successful order, if any.
func (s *CheckoutService) LatestInvoice(ctx context.Context, sessionID string) (*models.Order, error) {
	invoice, err := s.store.GetInvoice(ctx, sessionID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to load invoice", err)
	}
	return invoice, nil
}

func (s *CheckoutService) loadCart(ctx context.Context, sessionID string) (*models.Cart, error) {
	cart, err := s.store.GetCart(ctx, sessionID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to load cart", err)
	}
	if cart == nil {
		cart = &models.Cart{SessionID: sessionID, Items: []models.CartLine{}}
	}
	return cart, nil
}
