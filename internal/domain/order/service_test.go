// internal/domain/order/service_test.go
package order

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baskitup/storefront/internal/domain/basket"
	"github.com/baskitup/storefront/internal/domain/cart"
	"github.com/baskitup/storefront/internal/store"
)

func newTestTracker(t *testing.T) (*Tracker, *cart.Service, store.Store) {
	t.Helper()

	st, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)

	carts := cart.NewService(st)

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	tracker := NewTracker(st, carts, NewLocalPersister(st), nil, log)
	return tracker, carts, st
}

func testBasket(price string, stock int) *basket.Basket {
	return &basket.Basket{
		ID:    "basket-1",
		Slug:  "test-basket",
		Title: "Test Basket",
		Price: decimal.RequireFromString(price),
		Stock: stock,
	}
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	tracker, _, _ := newTestTracker(t)
	ctx := context.Background()
	identity := store.Identity{UserID: "u1"}

	record, err := tracker.PlaceOrder(ctx, identity, PlaceOrderParams{ShippingMethod: cart.ShippingStandard})
	assert.Nil(t, record)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestPlaceOrderStandardShippingTotals(t *testing.T) {
	tracker, carts, _ := newTestTracker(t)
	ctx := context.Background()
	identity := store.Identity{UserID: "u1"}

	carts.AddItem(ctx, identity, testBasket("100", 10), 2)

	record, err := tracker.PlaceOrder(ctx, identity, PlaceOrderParams{ShippingMethod: cart.ShippingStandard})
	require.NoError(t, err)

	assert.True(t, record.Totals.Subtotal.Equal(decimal.RequireFromString("200")), "subtotal %s", record.Totals.Subtotal)
	assert.True(t, record.Totals.Shipping.Equal(decimal.RequireFromString("25")), "shipping %s", record.Totals.Shipping)
	assert.True(t, record.Totals.VAT.Equal(decimal.RequireFromString("42.75")), "vat %s", record.Totals.VAT)
	assert.True(t, record.Totals.Total.Equal(decimal.RequireFromString("267.75")), "total %s", record.Totals.Total)
}

func TestPlaceOrderExpressShippingTotals(t *testing.T) {
	tracker, carts, _ := newTestTracker(t)
	ctx := context.Background()
	identity := store.Identity{UserID: "u1"}

	carts.AddItem(ctx, identity, testBasket("100", 10), 2)

	record, err := tracker.PlaceOrder(ctx, identity, PlaceOrderParams{ShippingMethod: cart.ShippingExpress})
	require.NoError(t, err)

	assert.True(t, record.Totals.Shipping.Equal(decimal.RequireFromString("35")), "shipping %s", record.Totals.Shipping)
	assert.True(t, record.Totals.VAT.Equal(decimal.RequireFromString("44.65")), "vat %s", record.Totals.VAT)
	assert.True(t, record.Totals.Total.Equal(decimal.RequireFromString("279.65")), "total %s", record.Totals.Total)
}

func TestPlaceOrderClearsCartAndRecords(t *testing.T) {
	tracker, carts, _ := newTestTracker(t)
	ctx := context.Background()
	identity := store.Identity{UserID: "u1"}

	carts.AddItem(ctx, identity, testBasket("49.99", 5), 1)

	record, err := tracker.PlaceOrder(ctx, identity, PlaceOrderParams{
		ShippingMethod: cart.ShippingStandard,
		Customer:       &Customer{Name: "Ana", Email: "ana@example.com"},
	})
	require.NoError(t, err)

	assert.Equal(t, StatusProcessing, record.Status)
	assert.NotEmpty(t, record.ID)
	assert.Regexp(t, `^BK-\d{4}-[0-9A-F]{6}$`, record.Number)
	assert.Empty(t, record.EmailHistory)

	assert.Empty(t, carts.Items(ctx, identity))

	orders := tracker.Orders(ctx, identity)
	require.Len(t, orders, 1)
	assert.Equal(t, record.ID, orders[0].ID)
}

func TestPlaceOrderPrependsNewest(t *testing.T) {
	tracker, carts, _ := newTestTracker(t)
	ctx := context.Background()
	identity := store.Identity{UserID: "u1"}

	carts.AddItem(ctx, identity, testBasket("10", 5), 1)
	first, err := tracker.PlaceOrder(ctx, identity, PlaceOrderParams{ShippingMethod: cart.ShippingStandard})
	require.NoError(t, err)

	carts.AddItem(ctx, identity, testBasket("10", 5), 1)
	second, err := tracker.PlaceOrder(ctx, identity, PlaceOrderParams{ShippingMethod: cart.ShippingStandard})
	require.NoError(t, err)

	orders := tracker.Orders(ctx, identity)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)
}

func TestUpdateOrderStatusAcrossIdentities(t *testing.T) {
	tracker, carts, _ := newTestTracker(t)
	ctx := context.Background()

	alice := store.Identity{UserID: "alice"}
	bob := store.Identity{Email: "bob@example.com"}

	carts.AddItem(ctx, alice, testBasket("10", 5), 1)
	_, err := tracker.PlaceOrder(ctx, alice, PlaceOrderParams{ShippingMethod: cart.ShippingStandard})
	require.NoError(t, err)

	carts.AddItem(ctx, bob, testBasket("20", 5), 1)
	target, err := tracker.PlaceOrder(ctx, bob, PlaceOrderParams{ShippingMethod: cart.ShippingStandard})
	require.NoError(t, err)

	updated, err := tracker.UpdateOrderStatus(ctx, target.ID, StatusShipped)
	require.NoError(t, err)
	assert.Equal(t, StatusShipped, updated.Status)

	bobOrders := tracker.Orders(ctx, bob)
	require.Len(t, bobOrders, 1)
	assert.Equal(t, StatusShipped, bobOrders[0].Status)

	aliceOrders := tracker.Orders(ctx, alice)
	require.Len(t, aliceOrders, 1)
	assert.Equal(t, StatusProcessing, aliceOrders[0].Status)
}

func TestUpdateOrderStatusUnknownID(t *testing.T) {
	tracker, carts, _ := newTestTracker(t)
	ctx := context.Background()
	identity := store.Identity{UserID: "u1"}

	carts.AddItem(ctx, identity, testBasket("10", 5), 1)
	_, err := tracker.PlaceOrder(ctx, identity, PlaceOrderParams{ShippingMethod: cart.ShippingStandard})
	require.NoError(t, err)

	_, err = tracker.UpdateOrderStatus(ctx, "missing", StatusShipped)
	assert.ErrorIs(t, err, ErrNotFound)

	orders := tracker.Orders(ctx, identity)
	require.Len(t, orders, 1)
	assert.Equal(t, StatusProcessing, orders[0].Status)
}

func TestUpdateOrderStatusTransitions(t *testing.T) {
	tracker, carts, _ := newTestTracker(t)
	ctx := context.Background()
	identity := store.Identity{UserID: "u1"}

	carts.AddItem(ctx, identity, testBasket("10", 5), 1)
	record, err := tracker.PlaceOrder(ctx, identity, PlaceOrderParams{ShippingMethod: cart.ShippingStandard})
	require.NoError(t, err)

	// Same status is a no-op success.
	same, err := tracker.UpdateOrderStatus(ctx, record.ID, StatusProcessing)
	require.NoError(t, err)
	assert.Equal(t, StatusProcessing, same.Status)

	_, err = tracker.UpdateOrderStatus(ctx, record.ID, StatusDelivered)
	require.NoError(t, err)

	// Delivered is terminal.
	_, err = tracker.UpdateOrderStatus(ctx, record.ID, StatusShipped)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = tracker.UpdateOrderStatus(ctx, record.ID, Status("lost"))
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestRecordEmailPrepends(t *testing.T) {
	tracker, carts, _ := newTestTracker(t)
	ctx := context.Background()
	identity := store.Identity{UserID: "u1"}

	carts.AddItem(ctx, identity, testBasket("10", 5), 1)
	record, err := tracker.PlaceOrder(ctx, identity, PlaceOrderParams{
		ShippingMethod: cart.ShippingStandard,
		Customer:       &Customer{Name: "Ana", Email: "ana@example.com"},
	})
	require.NoError(t, err)

	first, err := tracker.RecordEmail(ctx, record.ID, "Order confirmed", "Thanks for your order")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", first.To)

	second, err := tracker.RecordEmail(ctx, record.ID, "Order shipped", "Your order is on the way")
	require.NoError(t, err)

	orders := tracker.Orders(ctx, identity)
	require.Len(t, orders, 1)
	require.Len(t, orders[0].EmailHistory, 2)
	assert.Equal(t, second.ID, orders[0].EmailHistory[0].ID)
	assert.Equal(t, first.ID, orders[0].EmailHistory[1].ID)
	assert.Equal(t, "Order confirmed", orders[0].EmailHistory[1].Subject)
}

func TestRecordEmailWithoutCustomer(t *testing.T) {
	tracker, carts, _ := newTestTracker(t)
	ctx := context.Background()
	identity := store.Identity{UserID: "u1"}

	carts.AddItem(ctx, identity, testBasket("10", 5), 1)
	record, err := tracker.PlaceOrder(ctx, identity, PlaceOrderParams{ShippingMethod: cart.ShippingStandard})
	require.NoError(t, err)

	entry, err := tracker.RecordEmail(ctx, record.ID, "Hello", "Body")
	require.NoError(t, err)
	assert.Equal(t, "unknown", entry.To)

	_, err = tracker.RecordEmail(ctx, "missing", "Hello", "Body")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSeedDemoOrders(t *testing.T) {
	tracker, _, st := newTestTracker(t)
	ctx := context.Background()
	identity := store.Identity{UserID: "u1"}

	err := tracker.SeedDemoOrders(ctx, identity, DemoOrders(), SeedOptions{})
	require.NoError(t, err)

	bucket := store.ReadBucket[Record](ctx, st, store.OrderKey)
	assert.Len(t, bucket.ByIdentity[DemoIdentityKey], 3)
	assert.Empty(t, bucket.ByIdentity[identity.Key()])

	for _, r := range bucket.ByIdentity[DemoIdentityKey] {
		assert.NotEmpty(t, r.Number)
		assert.False(t, r.Totals.Total.IsZero(), "totals computed during normalization")
	}
}

func TestSeedDemoOrdersIncludeCurrentUser(t *testing.T) {
	tracker, carts, _ := newTestTracker(t)
	ctx := context.Background()
	identity := store.Identity{UserID: "u1"}

	carts.AddItem(ctx, identity, testBasket("10", 5), 1)
	existing, err := tracker.PlaceOrder(ctx, identity, PlaceOrderParams{ShippingMethod: cart.ShippingStandard})
	require.NoError(t, err)

	err = tracker.SeedDemoOrders(ctx, identity, DemoOrders(), SeedOptions{IncludeCurrentUser: true})
	require.NoError(t, err)

	orders := tracker.Orders(ctx, identity)
	require.Len(t, orders, 4)
	assert.Equal(t, existing.ID, orders[3].ID, "existing orders kept after the seeded batch")

	err = tracker.SeedDemoOrders(ctx, identity, DemoOrders(), SeedOptions{IncludeCurrentUser: true, ReplaceExisting: true})
	require.NoError(t, err)

	orders = tracker.Orders(ctx, identity)
	assert.Len(t, orders, 3)
}

func TestAllOrdersSortedNewestFirst(t *testing.T) {
	tracker, carts, _ := newTestTracker(t)
	ctx := context.Background()

	alice := store.Identity{UserID: "alice"}
	bob := store.Identity{UserID: "bob"}

	carts.AddItem(ctx, alice, testBasket("10", 5), 1)
	_, err := tracker.PlaceOrder(ctx, alice, PlaceOrderParams{ShippingMethod: cart.ShippingStandard})
	require.NoError(t, err)

	carts.AddItem(ctx, bob, testBasket("20", 5), 1)
	second, err := tracker.PlaceOrder(ctx, bob, PlaceOrderParams{ShippingMethod: cart.ShippingStandard})
	require.NoError(t, err)

	all := tracker.AllOrders(ctx)
	require.Len(t, all, 2)
	assert.False(t, all[0].CreatedAt.Before(all[1].CreatedAt))
	assert.Equal(t, second.ID, all[0].ID)

	buckets := tracker.Buckets(ctx)
	assert.Len(t, buckets, 2)
	assert.Len(t, buckets[alice.Key()], 1)
	assert.Len(t, buckets[bob.Key()], 1)
}
