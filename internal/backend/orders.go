package backend

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tonmoyth/landing-page-two/internal/models"
)

// OrdersByEmail fetches a buyer's orders (GET /orders?email=).
func (s *Session) OrdersByEmail(ctx context.Context, email string) ([]models.Order, error) {
	q := url.Values{"email": {email}}
	var orders []models.Order
	if _, err := s.do(ctx, "orders_by_email", http.MethodGet, "/orders", q, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// AllOrders fetches every order, admin only (GET /ordersA).
func (s *Session) AllOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if _, err := s.do(ctx, "all_orders", http.MethodGet, "/ordersA", nil, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// RecentOrders fetches the most recent orders (GET /orders/recent?limit=N).
func (s *Session) RecentOrders(ctx context.Context, limit int) ([]models.Order, error) {
	q := url.Values{"limit": {strconv.Itoa(limit)}}
	var orders []models.Order
	if _, err := s.do(ctx, "recent_orders", http.MethodGet, "/orders/recent", q, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

type createOrderResponse struct {
	OrderID string `json:"orderId"`
}

// CreateOrder submits a new order (POST /orders). Success requires the
// backend to acknowledge with an order identifier; a 2xx answer without one
// is treated as a malformed response, not a success.
func (s *Session) CreateOrder(ctx context.Context, order models.Order) (string, error) {
	var resp createOrderResponse
	if _, err := s.do(ctx, "create_order", http.MethodPost, "/orders", nil, order, &resp); err != nil {
		return "", err
	}
	if resp.OrderID == "" {
		return "", &DecodeError{Op: "create_order", Err: errors.New("missing orderId in response")}
	}
	return resp.OrderID, nil
}

type statusUpdate struct {
	Status string `json:"status"`
}

// UpdateOrderStatus issues a partial update carrying only the status field
// (PATCH /orders/:id). The ack body is ignored; a 2xx with an empty body
// still counts as success.
func (s *Session) UpdateOrderStatus(ctx context.Context, id, status string) error {
	if _, err := s.do(ctx, "update_order_status", http.MethodPatch, "/orders/"+url.PathEscape(id), nil, statusUpdate{Status: status}, nil); err != nil {
		return err
	}
	return nil
}
