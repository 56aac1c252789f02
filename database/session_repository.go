package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/stockhub/storefront-service/models"
)

// SessionRepository implements SessionStore on Redis, one JSON value per
// key.
type SessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionRepository(client *redis.Client, ttl time.Duration) *SessionRepository {
	return &SessionRepository{
		client: client,
		ttl:    ttl,
	}
}

func (r *SessionRepository) cartKey(sessionID string) string {
	return fmt.Sprintf("session:%s:cart", sessionID)
}

func (r *SessionRepository) invoiceKey(sessionID string) string {
	return fmt.Sprintf("session:%s:invoice", sessionID)
}

func (r *SessionRepository) idemKey(key string) string {
	return "idem:checkout:" + key
}

func (r *SessionRepository) GetCart(ctx context.Context, sessionID string) (*models.Cart, error) {
	data, err := r.client.Get(ctx, r.cartKey(sessionID)).Result()
	if err == redis.Nil {
		// No cart for this session
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var cart models.Cart
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *SessionRepository) SaveCart(ctx context.Context, cart *models.Cart) error {
	cart.UpdatedAt = time.Now()

	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, r.cartKey(cart.SessionID), data, r.ttl).Err()
}

// DeleteCart removes the persisted key outright rather than writing an
// empty cart, so stale readers cannot resurrect cleared contents.
func (r *SessionRepository) DeleteCart(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, r.cartKey(sessionID)).Err()
}

func (r *SessionRepository) GetInvoice(ctx context.Context, sessionID string) (*models.Order, error) {
	data, err := r.client.Get(ctx, r.invoiceKey(sessionID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var order models.Order
	if err := json.Unmarshal([]byte(data), &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *SessionRepository) SaveInvoice(ctx context.Context, sessionID string, order *models.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.invoiceKey(sessionID), data, r.ttl).Err()
}

func (r *SessionRepository) GetIdempotency(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, r.idemKey(key)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (r *SessionRepository) SetIdempotency(ctx context.Context, key, orderID string, ttl time.Duration) error {
	return r.client.Set(ctx, r.idemKey(key), orderID, ttl).Err()
}
