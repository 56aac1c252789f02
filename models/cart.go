package models

import "time"

// CartLine is one item/quantity pair in a session's cart. Display fields
// (name, price, category) are never stored on the line; they are derived
// from the inventory snapshot at read time.
type CartLine struct {
	ItemID   int64 `json:"id"`
	Quantity int   `json:"quantity"`
}

// Cart is the session-local collection of lines pending order placement.
type Cart struct {
	SessionID string     `json:"session_id"`
	Items     []CartLine `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Find returns a pointer to the line for itemID, or nil.
func (c *Cart) Find(itemID int64) *CartLine {
	for i := range c.Items {
		if c.Items[i].ItemID == itemID {
			return &c.Items[i]
		}
	}
	return nil
}

// RemoveLine deletes the line for itemID, if present.
func (c *Cart) RemoveLine(itemID int64) {
	kept := c.Items[:0]
	for _, line := range c.Items {
		if line.ItemID != itemID {
			kept = append(kept, line)
		}
	}
	c.Items = kept
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}

// Clone returns a deep copy, used to keep a pre-mutation snapshot so a
// failed persist never leaves callers observing a half-applied cart.
func (c *Cart) Clone() *Cart {
	if c == nil {
		return nil
	}
	cp := *c
	cp.Items = append([]CartLine(nil), c.Items...)
	return &cp
}

// EnrichedCartLine is a cart line joined with its snapshot record for
// display: the view model the checkout page renders.
type EnrichedCartLine struct {
	ItemID    int64   `json:"id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Available int     `json:"available"`
	LineTotal float64 `json:"line_total"`
}

// PriceLines is the single pricing function used by the cart total, the
// checkout summary and the invoice view. Lines missing from the snapshot
// price at zero; totals are always recomputed from the latest snapshot,
// never cached.
func PriceLines(lines []CartLine, snapshot InventorySnapshot) float64 {
	var total float64
	for _, line := range lines {
		total += snapshot.PriceOf(line.ItemID) * float64(line.Quantity)
	}
	return total
}

// EnrichLines joins cart lines with the snapshot for display.
func EnrichLines(lines []CartLine, snapshot InventorySnapshot) []EnrichedCartLine {
	enriched := make([]EnrichedCartLine, 0, len(lines))
	for _, line := range lines {
		rec, ok := snapshot.Record(line.ItemID)
		if !ok {
			rec = InventoryRecord{ItemID: line.ItemID, Name: "Unknown Item"}
		}
		enriched = append(enriched, EnrichedCartLine{
			ItemID:    line.ItemID,
			Name:      rec.Name,
			Category:  rec.Category,
			Price:     rec.Price,
			Quantity:  line.Quantity,
			Available: rec.Quantity,
			LineTotal: rec.Price * float64(line.Quantity),
		})
	}
	return enriched
}
