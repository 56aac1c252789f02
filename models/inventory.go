package models

// InventoryRecord is a point-in-time read of one item's stock level and
// price. It is advisory: the backend re-validates at commit time.
type InventoryRecord struct {
	ItemID   int64   `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// InventorySnapshot is an immutable per-session view of stock levels,
// keyed by item id. A zero-value snapshot answers every lookup with
// "unavailable", which is the fail-safe direction.
type InventorySnapshot struct {
	records map[int64]InventoryRecord
}

// NewSnapshot builds a snapshot from a list of records.
func NewSnapshot(records []InventoryRecord) InventorySnapshot {
	m := make(map[int64]InventoryRecord, len(records))
	for _, rec := range records {
		m[rec.ItemID] = rec
	}
	return InventorySnapshot{records: m}
}

// QuantityOf returns the stock level for itemID, 0 when unknown.
func (s InventorySnapshot) QuantityOf(itemID int64) int {
	return s.records[itemID].Quantity
}

// PriceOf returns the price for itemID, 0 when unknown.
func (s InventorySnapshot) PriceOf(itemID int64) float64 {
	return s.records[itemID].Price
}

// Record returns the full record for itemID.
func (s InventorySnapshot) Record(itemID int64) (InventoryRecord, bool) {
	rec, ok := s.records[itemID]
	return rec, ok
}

// Len returns the number of records held.
func (s InventorySnapshot) Len() int {
	return len(s.records)
}

// Merge returns a new snapshot with the given records layered on top of
// the existing ones. Scoped refreshes use this so entries outside the
// refresh scope survive instead of flickering to "unavailable".
func (s InventorySnapshot) Merge(records []InventoryRecord) InventorySnapshot {
	m := make(map[int64]InventoryRecord, len(s.records)+len(records))
	for id, rec := range s.records {
		m[id] = rec
	}
	for _, rec := range records {
		m[rec.ItemID] = rec
	}
	return InventorySnapshot{records: m}
}
