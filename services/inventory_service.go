package services

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/stockhub/storefront-service/clients"
	"github.com/stockhub/storefront-service/models"
)

// RefreshScope selects what a snapshot refresh covers.
type RefreshScope string

const (
	// ScopeAll replaces the snapshot wholesale with the backend's full
	// stock list; entries for items no longer listed are dropped.
	ScopeAll RefreshScope = "all"
	// ScopeCart fetches only the items referenced by the session's cart
	// and merges them into the existing snapshot.
	ScopeCart RefreshScope = "cart"
)

// SnapshotSource hands out the per-session inventory snapshot. The cart
// and checkout services read stock through this seam so tests can pin a
// snapshot without a backend.
type SnapshotSource interface {
	Snapshot(sessionID string) models.InventorySnapshot
}

// InventoryService keeps one advisory stock snapshot per session,
// refreshed in a single round trip instead of per keystroke. Snapshots
// are immutable values: a refresh swaps the whole snapshot, it never
// mutates one a checkout attempt is already validating against.
type InventoryService struct {
	backend clients.API
	logger  *zap.Logger

	mu        sync.RWMutex
	snapshots map[string]models.InventorySnapshot
}

func NewInventoryService(backend clients.API, logger *zap.Logger) *InventoryService {
	return &InventoryService{
		backend:   backend,
		logger:    logger,
		snapshots: make(map[string]models.InventorySnapshot),
	}
}

// Snapshot returns the session's current snapshot. A session that never
// refreshed gets a zero snapshot, which treats every item as unavailable.
func (s *InventoryService) Snapshot(sessionID string) models.InventorySnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshots[sessionID]
}

// QuantityOf reads the session's snapshot stock for one item, 0 for
// unknown ids.
func (s *InventoryService) QuantityOf(sessionID string, itemID int64) int {
	return s.Snapshot(sessionID).QuantityOf(itemID)
}

// Refresh fetches stock from the backend and installs a new snapshot for
// the session. ScopeAll replaces; ScopeCart merges the given item ids
// into the existing snapshot so entries outside the scope don't flicker
// to zero.
func (s *InventoryService) Refresh(ctx context.Context, sessionID string, scope RefreshScope, itemIDs []int64) (models.InventorySnapshot, error) {
	var fetched []models.InventoryRecord

	switch scope {
	case ScopeCart:
		for _, id := range itemIDs {
			rec, err := s.backend.GetStock(ctx, id)
			if err != nil {
				return models.InventorySnapshot{}, err
			}
			fetched = append(fetched, *rec)
		}
	default:
		records, err := s.backend.ListStock(ctx)
		if err != nil {
			return models.InventorySnapshot{}, err
		}
		fetched = records
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var next models.InventorySnapshot
	if scope == ScopeCart {
		next = s.snapshots[sessionID].Merge(fetched)
	} else {
		next = models.NewSnapshot(fetched)
	}
	s.snapshots[sessionID] = next

	s.logger.Debug("inventory snapshot refreshed",
		zap.String("session", sessionID),
		zap.String("scope", string(scope)),
		zap.Int("records", next.Len()),
	)
	return next, nil
}

// Drop discards a session's snapshot, e.g. when the session ends.
func (s *InventoryService) Drop(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snapshots, sessionID)
}
