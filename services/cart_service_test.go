package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/stockhub/storefront-service/apperrors"
	"github.com/stockhub/storefront-service/database"
	"github.com/stockhub/storefront-service/models"
)

const testSession = "alice"

func newCartFixture(records ...models.InventoryRecord) (*CartService, *database.MemoryStore, *stubSnapshots) {
	store := database.NewMemoryStore()
	snaps := &stubSnapshots{snap: models.NewSnapshot(records)}
	svc := NewCartService(store, snaps, zap.NewNop())
	return svc, store, snaps
}

func TestAdd_NewLine(t *testing.T) {
	svc, _, _ := newCartFixture(models.InventoryRecord{ItemID: 1, Price: 100, Quantity: 5})

	cart, err := svc.Add(context.Background(), testSession, 1, 1)

	assert.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestAdd_OutOfStock(t *testing.T) {
	svc, store, _ := newCartFixture(models.InventoryRecord{ItemID: 1, Price: 100, Quantity: 0})

	_, err := svc.Add(context.Background(), testSession, 1, 1)

	assert.True(t, apperrors.IsKind(err, apperrors.KindOutOfStock))
	cart, _ := store.GetCart(context.Background(), testSession)
	assert.Nil(t, cart)
}

func TestAdd_UnknownItemTreatedAsUnavailable(t *testing.T) {
	svc, _, _ := newCartFixture()

	_, err := svc.Add(context.Background(), testSession, 42, 1)

	assert.True(t, apperrors.IsKind(err, apperrors.KindOutOfStock))
}

func TestAdd_ExistingLineIncreases(t *testing.T) {
	svc, _, _ := newCartFixture(models.InventoryRecord{ItemID: 1, Price: 100, Quantity: 5})
	ctx := context.Background()

	_, err := svc.Add(ctx, testSession, 1, 2)
	assert.NoError(t, err)
	cart, err := svc.Add(ctx, testSession, 1, 1)
	assert.NoError(t, err)
	assert.Equal(t, 3, cart.Items[0].Quantity)
}

func TestAdd_ExistingLineIncreasePastStock(t *testing.T) {
	svc, _, _ := newCartFixture(models.InventoryRecord{ItemID: 1, Price: 100, Quantity: 2})
	ctx := context.Background()

	_, err := svc.Add(ctx, testSession, 1, 2)
	assert.NoError(t, err)

	_, err = svc.Add(ctx, testSession, 1, 1)
	assert.True(t, apperrors.IsKind(err, apperrors.KindExceedsStock))

	cart, err := svc.Get(ctx, testSession)
	assert.NoError(t, err)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestSetQuantity_BelowOneRejected(t *testing.T) {
	svc, _, _ := newCartFixture(models.InventoryRecord{ItemID: 1, Price: 100, Quantity: 5})
	ctx := context.Background()
	_, _ = svc.Add(ctx, testSession, 1, 1)

	for _, qty := range []int{0, -1} {
		_, err := svc.SetQuantity(ctx, testSession, 1, qty)
		assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidQuantity), "qty %d", qty)
	}
}

func TestSetQuantity_ExceedsStockLeavesCartUnchanged(t *testing.T) {
	svc, _, _ := newCartFixture(models.InventoryRecord{ItemID: 1, Price: 100, Quantity: 5})
	ctx := context.Background()
	_, _ = svc.Add(ctx, testSession, 1, 2)

	_, err := svc.SetQuantity(ctx, testSession, 1, 6)

	assert.True(t, apperrors.IsKind(err, apperrors.KindExceedsStock))
	cart, _ := svc.Get(ctx, testSession)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestSetQuantity_ReadsStockAtCallTime(t *testing.T) {
	svc, _, snaps := newCartFixture(models.InventoryRecord{ItemID: 1, Price: 100, Quantity: 10})
	ctx := context.Background()
	_, _ = svc.Add(ctx, testSession, 1, 2)

	// Stock drops between calls; the new limit applies immediately.
	snaps.snap = models.NewSnapshot([]models.InventoryRecord{{ItemID: 1, Price: 100, Quantity: 3}})

	_, err := svc.SetQuantity(ctx, testSession, 1, 5)
	assert.True(t, apperrors.IsKind(err, apperrors.KindExceedsStock))

	cart, err := svc.SetQuantity(ctx, testSession, 1, 3)
	assert.NoError(t, err)
	assert.Equal(t, 3, cart.Items[0].Quantity)
}

func TestRemove_DeletesLine(t *testing.T) {
	svc, _, _ := newCartFixture(
		models.InventoryRecord{ItemID: 1, Price: 100, Quantity: 5},
		models.InventoryRecord{ItemID: 2, Price: 50, Quantity: 5},
	)
	ctx := context.Background()
	_, _ = svc.Add(ctx, testSession, 1, 1)
	_, _ = svc.Add(ctx, testSession, 2, 1)

	cart, err := svc.Remove(ctx, testSession, 1)

	assert.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, int64(2), cart.Items[0].ItemID)
}

func TestClear_DeletesPersistedKey(t *testing.T) {
	svc, store, _ := newCartFixture(models.InventoryRecord{ItemID: 1, Price: 100, Quantity: 5})
	ctx := context.Background()
	_, _ = svc.Add(ctx, testSession, 1, 1)

	assert.NoError(t, svc.Clear(ctx, testSession))

	// Key is absent, not an empty cart
	stored, err := store.GetCart(ctx, testSession)
	assert.NoError(t, err)
	assert.Nil(t, stored)

	// But readers still see an empty cart
	cart, err := svc.Get(ctx, testSession)
	assert.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestTotal_RecomputedFromLatestSnapshot(t *testing.T) {
	svc, _, snaps := newCartFixture(models.InventoryRecord{ItemID: 1, Price: 100, Quantity: 5})
	ctx := context.Background()
	_, _ = svc.Add(ctx, testSession, 1, 2)

	total, err := svc.Total(ctx, testSession)
	assert.NoError(t, err)
	assert.Equal(t, 200.0, total)

	// Price changes on refresh; the total follows, never the add-time price.
	snaps.snap = models.NewSnapshot([]models.InventoryRecord{{ItemID: 1, Price: 120, Quantity: 5}})

	total, err = svc.Total(ctx, testSession)
	assert.NoError(t, err)
	assert.Equal(t, 240.0, total)
}

func TestTotal_MissingSnapshotEntryPricesAtZero(t *testing.T) {
	svc, _, snaps := newCartFixture(models.InventoryRecord{ItemID: 1, Price: 100, Quantity: 5})
	ctx := context.Background()
	_, _ = svc.Add(ctx, testSession, 1, 2)

	snaps.snap = models.InventorySnapshot{}

	total, err := svc.Total(ctx, testSession)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, total)
}

func TestEnriched_JoinsSnapshotFields(t *testing.T) {
	svc, _, _ := newCartFixture(models.InventoryRecord{
		ItemID: 1, Name: "Keyboard", Category: "Electronics", Price: 100, Quantity: 5,
	})
	ctx := context.Background()
	_, _ = svc.Add(ctx, testSession, 1, 2)

	lines, err := svc.Enriched(ctx, testSession)

	assert.NoError(t, err)
	assert.Len(t, lines, 1)
	assert.Equal(t, "Keyboard", lines[0].Name)
	assert.Equal(t, 200.0, lines[0].LineTotal)
	assert.Equal(t, 5, lines[0].Available)
}
