package services

import (
	"context"

	"github.com/stockhub/storefront-service/models"
)

// mockBackend implements clients.API for service tests.
type mockBackend struct {
	stock []models.InventoryRecord

	listErr error

	placedReq   *models.PlaceOrderRequest
	placeOrder  *models.Order
	placeErr    error
	placeCalls  int
	timeline    []models.TimelineEvent
	timelineErr error

	updatedOrderID int64
	updatedStatus  models.OrderStatus
	updatedDesc    string
	updatedBearer  string
	updateResult   *models.Order
	updateErr      error

	myOrders  []models.Order
	allOrders []models.Order
	ordersErr error
}

func (m *mockBackend) ListStock(_ context.Context) ([]models.InventoryRecord, error) {
	return m.stock, m.listErr
}

func (m *mockBackend) GetStock(_ context.Context, itemID int64) (*models.InventoryRecord, error) {
	for _, rec := range m.stock {
		if rec.ItemID == itemID {
			r := rec
			return &r, nil
		}
	}
	return &models.InventoryRecord{ItemID: itemID}, nil
}

func (m *mockBackend) PlaceOrder(_ context.Context, req *models.PlaceOrderRequest) (*models.Order, error) {
	m.placeCalls++
	m.placedReq = req
	return m.placeOrder, m.placeErr
}

func (m *mockBackend) GetTimeline(_ context.Context, _ int64) ([]models.TimelineEvent, error) {
	return m.timeline, m.timelineErr
}

func (m *mockBackend) UpdateOrderStatus(_ context.Context, orderID int64, newStatus models.OrderStatus, description, bearer string) (*models.Order, error) {
	m.updatedOrderID = orderID
	m.updatedStatus = newStatus
	m.updatedDesc = description
	m.updatedBearer = bearer
	return m.updateResult, m.updateErr
}

func (m *mockBackend) MyOrders(_ context.Context, _ string) ([]models.Order, error) {
	return m.myOrders, m.ordersErr
}

func (m *mockBackend) AllOrders(_ context.Context, _ string) ([]models.Order, error) {
	return m.allOrders, m.ordersErr
}

// stubSnapshots pins a snapshot so cart and checkout tests control stock
// without a backend round trip.
type stubSnapshots struct {
	snap models.InventorySnapshot
}

func (s *stubSnapshots) Snapshot(_ string) models.InventorySnapshot {
	return s.snap
}
