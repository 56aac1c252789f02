package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/stockhub/storefront-service/apperrors"
	"github.com/stockhub/storefront-service/clients"
	"github.com/stockhub/storefront-service/models"
)

// OrderView is an order plus the advance affordance the UI may offer:
// the single next status in the sequence, empty for terminal orders.
type OrderView struct {
	models.Order
	NextStatus models.OrderStatus `json:"nextStatus,omitempty"`
	CanCancel  bool               `json:"canCancel"`
}

// OrderList is a filtered listing with per-status counts for the filter
// bar.
type OrderList struct {
	Orders []OrderView    `json:"orders"`
	Counts map[string]int `json:"counts"`
}

// OrderService reads orders and timelines from the backend on behalf of
// the session, forwarding the caller's bearer credential.
type OrderService struct {
	backend clients.API
	logger  *zap.Logger
}

func NewOrderService(backend clients.API, logger *zap.Logger) *OrderService {
	return &OrderService{backend: backend, logger: logger}
}

// MyOrders lists the caller's own orders.
func (s *OrderService) MyOrders(ctx context.Context, bearer, statusFilter string) (*OrderList, error) {
	orders, err := s.backend.MyOrders(ctx, bearer)
	if err != nil {
		return nil, err
	}
	return buildList(orders, statusFilter), nil
}

// AllOrders lists every order; the backend enforces the admin role.
func (s *OrderService) AllOrders(ctx context.Context, bearer, statusFilter string) (*OrderList, error) {
	orders, err := s.backend.AllOrders(ctx, bearer)
	if err != nil {
		return nil, err
	}
	return buildList(orders, statusFilter), nil
}

// Timeline fetches the order's event log and reconciles it against the
// fixed delivery sequence.
func (s *OrderService) Timeline(ctx context.Context, orderID int64, currentStatus string) (models.Timeline, error) {
	status, ok := models.ParseStatus(currentStatus)
	if !ok {
		return models.Timeline{}, apperrors.Newf(apperrors.KindValidation,
			"unknown order status %q", currentStatus)
	}

	events, err := s.backend.GetTimeline(ctx, orderID)
	if err != nil {
		return models.Timeline{}, err
	}
	return ReconcileTimeline(events, status), nil
}

func buildList(orders []models.Order, statusFilter string) *OrderList {
	filter, hasFilter := models.ParseStatus(statusFilter)

	counts := make(map[string]int, len(models.StatusSequence)+2)
	views := make([]OrderView, 0, len(orders))

	for _, order := range orders {
		counts["ALL"]++
		counts[string(order.Status)]++

		if hasFilter && order.Status != filter {
			continue
		}
		views = append(views, OrderView{
			Order:      order,
			NextStatus: order.NextStatus(),
			CanCancel:  order.Status.CanCancel(),
		})
	}

	return &OrderList{Orders: views, Counts: counts}
}
