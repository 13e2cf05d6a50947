// internal/domain/cart/service_test.go
package cart

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baskitup/storefront/internal/domain/basket"
	"github.com/baskitup/storefront/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	st, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return NewService(st)
}

func newBasket(id, price string, stock int) *basket.Basket {
	return &basket.Basket{
		ID:    id,
		Slug:  "basket-" + id,
		Title: "Basket " + id,
		Price: decimal.RequireFromString(price),
		Stock: stock,
	}
}

func TestAddItemClampsToStock(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	identity := store.Identity{UserID: "u1"}
	b := newBasket("b1", "50", 3)

	items := svc.AddItem(ctx, identity, b, 2)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)

	// Merging past stock clamps at the available amount.
	items = svc.AddItem(ctx, identity, b, 5)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)

	// Already at stock, adding again changes nothing.
	items = svc.AddItem(ctx, identity, b, 1)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestAddItemZeroOrNegativeQuantity(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	identity := store.Identity{UserID: "u1"}

	items := svc.AddItem(ctx, identity, newBasket("b1", "50", 3), 0)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)

	items = svc.AddItem(ctx, identity, newBasket("b2", "20", 3), -4)
	require.Len(t, items, 2)
}

func TestAddItemOutOfStock(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	identity := store.Identity{UserID: "u1"}

	items := svc.AddItem(ctx, identity, newBasket("b1", "50", 0), 2)
	assert.Empty(t, items, "zero stock lines are dropped")
}

func TestUpdateQuantity(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	identity := store.Identity{UserID: "u1"}

	svc.AddItem(ctx, identity, newBasket("b1", "50", 5), 2)

	items := svc.UpdateQuantity(ctx, identity, "b1", 4)
	require.Len(t, items, 1)
	assert.Equal(t, 4, items[0].Quantity)

	// Clamped to stock.
	items = svc.UpdateQuantity(ctx, identity, "b1", 99)
	assert.Equal(t, 5, items[0].Quantity)

	// Floor at one, never silently removed.
	items = svc.UpdateQuantity(ctx, identity, "b1", 0)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)

	// Unknown id leaves the cart untouched.
	items = svc.UpdateQuantity(ctx, identity, "missing", 3)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestRemoveItemAndClear(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	identity := store.Identity{UserID: "u1"}

	svc.AddItem(ctx, identity, newBasket("b1", "50", 5), 1)
	svc.AddItem(ctx, identity, newBasket("b2", "20", 5), 2)

	items := svc.RemoveItem(ctx, identity, "b1")
	require.Len(t, items, 1)
	assert.Equal(t, "b2", items[0].ID)

	// Removing the same id again is a no-op.
	items = svc.RemoveItem(ctx, identity, "b1")
	assert.Len(t, items, 1)

	svc.Clear(ctx, identity)
	assert.Empty(t, svc.Items(ctx, identity))
	assert.Equal(t, 0, svc.ItemCount(ctx, identity))
}

func TestIdentityIsolation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	alice := store.Identity{UserID: "alice"}
	guest := store.Guest

	svc.AddItem(ctx, alice, newBasket("b1", "50", 5), 2)
	svc.AddItem(ctx, guest, newBasket("b2", "20", 5), 1)

	aliceItems := svc.Items(ctx, alice)
	require.Len(t, aliceItems, 1)
	assert.Equal(t, "b1", aliceItems[0].ID)

	guestItems := svc.Items(ctx, guest)
	require.Len(t, guestItems, 1)
	assert.Equal(t, "b2", guestItems[0].ID)

	svc.Clear(ctx, alice)
	assert.Empty(t, svc.Items(ctx, alice))
	assert.Len(t, svc.Items(ctx, guest), 1)
}

func TestComputeTotals(t *testing.T) {
	items := []Item{
		{ID: "b1", Price: decimal.RequireFromString("100"), Quantity: 2, Stock: 10},
	}

	totals := ComputeTotals(items, ShippingStandard)
	assert.True(t, totals.Subtotal.Equal(decimal.RequireFromString("200")))
	assert.True(t, totals.Shipping.Equal(decimal.RequireFromString("25")))
	assert.True(t, totals.VAT.Equal(decimal.RequireFromString("42.75")))
	assert.True(t, totals.Total.Equal(decimal.RequireFromString("267.75")))

	totals = ComputeTotals(items, ShippingExpress)
	assert.True(t, totals.Shipping.Equal(decimal.RequireFromString("35")))
	assert.True(t, totals.VAT.Equal(decimal.RequireFromString("44.65")))
	assert.True(t, totals.Total.Equal(decimal.RequireFromString("279.65")))
}

func TestComputeTotalsEmptyCart(t *testing.T) {
	totals := ComputeTotals(nil, ShippingExpress)
	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.Shipping.IsZero(), "no shipping charged on an empty cart")
	assert.True(t, totals.VAT.IsZero())
	assert.True(t, totals.Total.IsZero())
}

func TestParseShippingMethod(t *testing.T) {
	assert.Equal(t, ShippingExpress, ParseShippingMethod("express"))
	assert.Equal(t, ShippingStandard, ParseShippingMethod("standard"))
	assert.Equal(t, ShippingStandard, ParseShippingMethod(""))
	assert.Equal(t, ShippingStandard, ParseShippingMethod("overnight"))
}

func TestItemCountSumsQuantities(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	identity := store.Identity{UserID: "u1"}

	svc.AddItem(ctx, identity, newBasket("b1", "50", 5), 2)
	svc.AddItem(ctx, identity, newBasket("b2", "20", 5), 3)

	assert.Equal(t, 5, svc.ItemCount(ctx, identity))
}
