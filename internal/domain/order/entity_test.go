// internal/domain/order/entity_test.go
package order

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/baskitup/storefront/internal/domain/cart"
)

func TestNormalizeSparseEqualsExplicitDefaults(t *testing.T) {
	createdAt := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	items := []cart.Item{{
		ID:       "basket-1",
		Slug:     "test-basket",
		Title:    "Test Basket",
		Price:    decimal.RequireFromString("100"),
		Quantity: 2,
		Stock:    10,
	}}

	tests := []struct {
		name     string
		sparse   Record
		explicit Record
	}{
		{
			name:   "missing status shipping and lists",
			sparse: Record{ID: "o1", CreatedAt: createdAt},
			explicit: Record{
				ID:             "o1",
				CreatedAt:      createdAt,
				Status:         StatusProcessing,
				ShippingMethod: cart.ShippingStandard,
				Items:          []cart.Item{},
				EmailHistory:   []EmailLog{},
				Totals:         cart.ComputeTotals([]cart.Item{}, cart.ShippingStandard),
			},
		},
		{
			name: "missing totals recomputed from items",
			sparse: Record{
				ID:             "o2",
				CreatedAt:      createdAt,
				Status:         StatusShipped,
				ShippingMethod: cart.ShippingExpress,
				Items:          items,
			},
			explicit: Record{
				ID:             "o2",
				CreatedAt:      createdAt,
				Status:         StatusShipped,
				ShippingMethod: cart.ShippingExpress,
				Items:          items,
				EmailHistory:   []EmailLog{},
				Totals:         cart.ComputeTotals(items, cart.ShippingExpress),
			},
		},
		{
			name: "unknown status falls back to processing",
			sparse: Record{
				ID:        "o3",
				CreatedAt: createdAt,
				Status:    Status("mystery"),
				Items:     items,
			},
			explicit: Record{
				ID:             "o3",
				CreatedAt:      createdAt,
				Status:         StatusProcessing,
				ShippingMethod: cart.ShippingStandard,
				Items:          items,
				EmailHistory:   []EmailLog{},
				Totals:         cart.ComputeTotals(items, cart.ShippingStandard),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, Normalize(tt.explicit), Normalize(tt.sparse))
			assert.Equal(t, tt.explicit, Normalize(tt.sparse))
		})
	}
}

func TestNormalizeKeepsStoredTotals(t *testing.T) {
	stored := cart.Totals{
		Subtotal: decimal.RequireFromString("200"),
		Shipping: decimal.RequireFromString("25"),
		VAT:      decimal.RequireFromString("42.75"),
		Total:    decimal.RequireFromString("267.75"),
	}
	r := Normalize(Record{Status: StatusDelivered, Totals: stored})
	assert.True(t, stored.Total.Equal(r.Totals.Total))
	assert.True(t, stored.VAT.Equal(r.Totals.VAT))
}
