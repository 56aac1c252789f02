package database

import (
	"context"
	"time"

	"github.com/stockhub/storefront-service/models"
)

// SessionStore is the durable per-session key-value port: the cart and
// the latest invoice survive reloads of the client but are private to
// one session. GetCart and GetInvoice return (nil, nil) when the key is
// absent; DeleteCart removes the key entirely, so "no cart" and "cleared
// cart" are indistinguishable to readers.
type SessionStore interface {
	GetCart(ctx context.Context, sessionID string) (*models.Cart, error)
	SaveCart(ctx context.Context, cart *models.Cart) error
	DeleteCart(ctx context.Context, sessionID string) error

	GetInvoice(ctx context.Context, sessionID string) (*models.Order, error)
	SaveInvoice(ctx context.Context, sessionID string, order *models.Order) error

	// Idempotency helpers guard duplicate checkout submissions: the key
	// maps to the id of the order it already produced.
	GetIdempotency(ctx context.Context, key string) (string, error)
	SetIdempotency(ctx context.Context, key, orderID string, ttl time.Duration) error
}
