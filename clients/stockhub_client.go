package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/stockhub/storefront-service/apperrors"
	"github.com/stockhub/storefront-service/models"
)

// API is the surface of the StockHub backend the engine consumes. The
// backend owns persistence and re-validates everything at commit time;
// this client only shuttles the wire contract.
type API interface {
	ListStock(ctx context.Context) ([]models.InventoryRecord, error)
	GetStock(ctx context.Context, itemID int64) (*models.InventoryRecord, error)
	PlaceOrder(ctx context.Context, req *models.PlaceOrderRequest) (*models.Order, error)
	GetTimeline(ctx context.Context, orderID int64) ([]models.TimelineEvent, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, newStatus models.OrderStatus, description, bearer string) (*models.Order, error)
	MyOrders(ctx context.Context, bearer string) ([]models.Order, error)
	AllOrders(ctx context.Context, bearer string) ([]models.Order, error)
}

// StockHubClient talks to the StockHub REST backend over HTTP.
type StockHubClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewStockHubClient(baseURL string, timeout time.Duration) *StockHubClient {
	return &StockHubClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// errorPayload is the backend's error body; Message is shown to the user
// verbatim when present.
type errorPayload struct {
	Message string `json:"message"`
}

func (c *StockHubClient) do(ctx context.Context, method, path string, query url.Values, bearer string, payload, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return apperrors.Wrap(apperrors.KindInternal, "failed to encode request", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to build request", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Transport failures and timeouts are retryable; the caller's
		// state is unchanged.
		return apperrors.Wrap(apperrors.KindNetwork, "backend unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp errorPayload
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		msg := errResp.Message
		if msg == "" {
			msg = fmt.Sprintf("backend returned %d", resp.StatusCode)
		}
		if resp.StatusCode == http.StatusNotFound {
			return apperrors.New(apperrors.KindNotFound, msg)
		}
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return apperrors.New(apperrors.KindUnauthorized, msg)
		}
		return apperrors.New(apperrors.KindServer, msg)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Wrap(apperrors.KindServer, "backend returned malformed response", err)
	}
	return nil
}

// ListStock fetches current stock levels and prices for all items.
func (c *StockHubClient) ListStock(ctx context.Context) ([]models.InventoryRecord, error) {
	var records []models.InventoryRecord
	if err := c.do(ctx, http.MethodGet, "/stock", nil, "", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// GetStock fetches a single item's record.
func (c *StockHubClient) GetStock(ctx context.Context, itemID int64) (*models.InventoryRecord, error) {
	var record models.InventoryRecord
	path := fmt.Sprintf("/stock/%d", itemID)
	if err := c.do(ctx, http.MethodGet, path, nil, "", nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// PlaceOrder submits the order-creation request and returns the created
// order, including the backend-generated id and invoice fields.
func (c *StockHubClient) PlaceOrder(ctx context.Context, req *models.PlaceOrderRequest) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodPost, "/orders", nil, "", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// GetTimeline fetches the status event log for one order.
func (c *StockHubClient) GetTimeline(ctx context.Context, orderID int64) ([]models.TimelineEvent, error) {
	var events []models.TimelineEvent
	path := fmt.Sprintf("/orders/%d/timeline", orderID)
	if err := c.do(ctx, http.MethodGet, path, nil, "", nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// UpdateOrderStatus commits a confirmed status change. The new status and
// description ride as query parameters, matching the backend contract.
func (c *StockHubClient) UpdateOrderStatus(ctx context.Context, orderID int64, newStatus models.OrderStatus, description, bearer string) (*models.Order, error) {
	query := url.Values{}
	query.Set("newStatus", string(newStatus))
	if description != "" {
		query.Set("description", description)
	}

	var order models.Order
	path := fmt.Sprintf("/orders/%d/status", orderID)
	if err := c.do(ctx, http.MethodPut, path, query, bearer, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// MyOrders lists the caller's orders; the bearer credential comes from
// the excluded auth layer and is forwarded verbatim.
func (c *StockHubClient) MyOrders(ctx context.Context, bearer string) ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(ctx, http.MethodGet, "/orders/my-orders", nil, bearer, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// AllOrders lists every order; admin only, enforced by the backend.
func (c *StockHubClient) AllOrders(ctx context.Context, bearer string) ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(ctx, http.MethodGet, "/orders/all", nil, bearer, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
