package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/stockhub/storefront-service/apperrors"
	"github.com/stockhub/storefront-service/database"
	"github.com/stockhub/storefront-service/models"
)

// CartService maintains the session's itemId → quantity mapping. Every
// mutation is read-modify-write against the session store: the stored
// cart only changes when the whole persist succeeds, so a failed call
// leaves the cart exactly as it was.
type CartService struct {
	store     database.SessionStore
	snapshots SnapshotSource
	logger    *zap.Logger
}

func NewCartService(store database.SessionStore, snapshots SnapshotSource, logger *zap.Logger) *CartService {
	return &CartService{
		store:     store,
		snapshots: snapshots,
		logger:    logger,
	}
}

// Get returns the session's cart, an empty one when none is persisted.
func (s *CartService) Get(ctx context.Context, sessionID string) (*models.Cart, error) {
	cart, err := s.store.GetCart(ctx, sessionID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to load cart", err)
	}
	if cart == nil {
		cart = &models.Cart{SessionID: sessionID, Items: []models.CartLine{}}
	}
	return cart, nil
}

// Add puts requestedQty of an item into the cart. An existing line goes
// through the same stock gate as SetQuantity; a new line requires the
// snapshot to show stock at all.
func (s *CartService) Add(ctx context.Context, sessionID string, itemID int64, requestedQty int) (*models.Cart, error) {
	if requestedQty < 1 {
		requestedQty = 1
	}

	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if line := cart.Find(itemID); line != nil {
		return s.SetQuantity(ctx, sessionID, itemID, line.Quantity+requestedQty)
	}

	snapshot := s.snapshots.Snapshot(sessionID)
	available := snapshot.QuantityOf(itemID)
	if available == 0 {
		return nil, apperrors.Newf(apperrors.KindOutOfStock, "item %d is out of stock", itemID)
	}
	if requestedQty > available {
		return nil, apperrors.Newf(apperrors.KindExceedsStock,
			"only %d of item %d available in stock", available, itemID)
	}

	cart.Items = append(cart.Items, models.CartLine{ItemID: itemID, Quantity: requestedQty})
	if err := s.persist(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// SetQuantity replaces a line's quantity. Quantities below 1 are rejected
// (remove the line instead); quantities above the snapshot's then-current
// stock are rejected and the cart is left unchanged.
func (s *CartService) SetQuantity(ctx context.Context, sessionID string, itemID int64, newQty int) (*models.Cart, error) {
	if newQty < 1 {
		return nil, apperrors.New(apperrors.KindInvalidQuantity,
			"quantity must be at least 1; remove the item instead")
	}

	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	line := cart.Find(itemID)
	if line == nil {
		return nil, apperrors.Newf(apperrors.KindNotFound, "item %d is not in the cart", itemID)
	}

	// Stock is read from the snapshot at call time, never cached on the
	// line.
	available := s.snapshots.Snapshot(sessionID).QuantityOf(itemID)
	if newQty > available {
		return nil, apperrors.Newf(apperrors.KindExceedsStock,
			"only %d of item %d available in stock", available, itemID)
	}

	line.Quantity = newQty
	if err := s.persist(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Remove deletes the line unconditionally.
func (s *CartService) Remove(ctx context.Context, sessionID string, itemID int64) (*models.Cart, error) {
	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cart.RemoveLine(itemID)
	if err := s.persist(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear empties the cart and deletes the persisted key entirely.
func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	if err := s.store.DeleteCart(ctx, sessionID); err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to clear cart", err)
	}
	return nil
}

// Total prices the cart against the latest snapshot. It is recomputed on
// every call; nothing is cached.
func (s *CartService) Total(ctx context.Context, sessionID string) (float64, error) {
	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	return models.PriceLines(cart.Items, s.snapshots.Snapshot(sessionID)), nil
}

// Enriched returns the cart joined with snapshot display fields.
func (s *CartService) Enriched(ctx context.Context, sessionID string) ([]models.EnrichedCartLine, error) {
	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return models.EnrichLines(cart.Items, s.snapshots.Snapshot(sessionID)), nil
}

func (s *CartService) persist(ctx context.Context, cart *models.Cart) error {
	if err := s.store.SaveCart(ctx, cart); err != nil {
		s.logger.Error("failed to persist cart",
			zap.String("session", cart.SessionID), zap.Error(err))
		return apperrors.Wrap(apperrors.KindInternal, "failed to save cart", err)
	}
	return nil
}
