package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/stockhub/storefront-service/apperrors"
	"github.com/stockhub/storefront-service/models"
)

func sampleOrders() []models.Order {
	return []models.Order{
		{ID: 1, Status: models.StatusPending},
		{ID: 2, Status: models.StatusPending},
		{ID: 3, Status: models.StatusShipped},
		{ID: 4, Status: models.StatusDelivered},
		{ID: 5, Status: models.StatusCancelled},
	}
}

func TestMyOrders_CountsAndAffordances(t *testing.T) {
	svc := NewOrderService(&mockBackend{myOrders: sampleOrders()}, zap.NewNop())

	list, err := svc.MyOrders(context.Background(), "Bearer tok", "")

	assert.NoError(t, err)
	assert.Len(t, list.Orders, 5)
	assert.Equal(t, 5, list.Counts["ALL"])
	assert.Equal(t, 2, list.Counts["PENDING"])
	assert.Equal(t, 1, list.Counts["SHIPPED"])
	assert.Equal(t, 1, list.Counts["DELIVERED"])
	assert.Equal(t, 1, list.Counts["CANCELLED"])

	byID := make(map[int64]OrderView, len(list.Orders))
	for _, v := range list.Orders {
		byID[v.ID] = v
	}
	assert.Equal(t, models.StatusProcessing, byID[1].NextStatus)
	assert.True(t, byID[1].CanCancel)
	assert.Equal(t, models.StatusDelivered, byID[3].NextStatus)
	assert.True(t, byID[3].CanCancel)

	// Terminal orders offer nothing
	assert.Equal(t, models.OrderStatus(""), byID[4].NextStatus)
	assert.False(t, byID[4].CanCancel)
	assert.False(t, byID[5].CanCancel)
}

func TestMyOrders_StatusFilterKeepsFullCounts(t *testing.T) {
	svc := NewOrderService(&mockBackend{myOrders: sampleOrders()}, zap.NewNop())

	list, err := svc.MyOrders(context.Background(), "Bearer tok", "pending")

	assert.NoError(t, err)
	assert.Len(t, list.Orders, 2)
	for _, v := range list.Orders {
		assert.Equal(t, models.StatusPending, v.Status)
	}
	assert.Equal(t, 5, list.Counts["ALL"])
}

func TestMyOrders_BackendError(t *testing.T) {
	svc := NewOrderService(&mockBackend{
		ordersErr: apperrors.New(apperrors.KindUnauthorized, "token expired"),
	}, zap.NewNop())

	_, err := svc.MyOrders(context.Background(), "Bearer stale", "")

	assert.True(t, apperrors.IsKind(err, apperrors.KindUnauthorized))
}

func TestAllOrders(t *testing.T) {
	svc := NewOrderService(&mockBackend{allOrders: sampleOrders()}, zap.NewNop())

	list, err := svc.AllOrders(context.Background(), "Bearer admin", "shipped")

	assert.NoError(t, err)
	assert.Len(t, list.Orders, 1)
	assert.Equal(t, int64(3), list.Orders[0].ID)
}

func TestTimeline_ReconcilesEvents(t *testing.T) {
	placed := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc := NewOrderService(&mockBackend{
		timeline: []models.TimelineEvent{
			{Status: "ORDER PLACED", Timestamp: placed},
		},
	}, zap.NewNop())

	tl, err := svc.Timeline(context.Background(), 9, "PROCESSING")

	assert.NoError(t, err)
	assert.False(t, tl.IsCancelled)
	assert.Len(t, tl.Steps, 4)
	assert.Equal(t, models.StepCompleted, tl.Steps[0].State)
	assert.Equal(t, models.StepInProgress, tl.Steps[1].State)
}

func TestTimeline_UnknownStatusRejected(t *testing.T) {
	svc := NewOrderService(&mockBackend{}, zap.NewNop())

	_, err := svc.Timeline(context.Background(), 9, "LOST")

	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestTimeline_BackendError(t *testing.T) {
	svc := NewOrderService(&mockBackend{
		timelineErr: apperrors.New(apperrors.KindNotFound, "Order not found with id: 9"),
	}, zap.NewNop())

	_, err := svc.Timeline(context.Background(), 9, "PENDING")

	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}
