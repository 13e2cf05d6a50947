// internal/domain/order/demo.go
package order

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/baskitup/storefront/internal/domain/cart"
)

// DemoOrders returns a small batch of showcase orders used to seed the
// reserved demo identity. Totals are left zero so normalization computes
// them from the items.
func DemoOrders() []Record {
	now := time.Now().UTC()

	return []Record{
		{
			ID:             "demo-order-1",
			CreatedAt:      now.AddDate(0, 0, -12),
			Status:         StatusDelivered,
			ShippingMethod: cart.ShippingExpress,
			Customer: &Customer{
				Name:    "Maria Popescu",
				Email:   "maria.popescu@example.com",
				Phone:   "+40 721 000 111",
				Address: "Str. Florilor 12, Bucuresti",
			},
			Items: []cart.Item{
				{
					ID:       "demo-item-1",
					Slug:     "craciun-clasic",
					Title:    "Crăciun Clasic",
					Price:    decimal.RequireFromString("249.99"),
					Quantity: 1,
					Stock:    10,
				},
			},
		},
		{
			ID:             "demo-order-2",
			CreatedAt:      now.AddDate(0, 0, -3),
			Status:         StatusProcessing,
			ShippingMethod: cart.ShippingStandard,
			Note:           "Please deliver after 18:00.",
			Customer: &Customer{
				Name:    "Alex Ionescu",
				Email:   "alex.ionescu@example.com",
				Phone:   "+40 722 333 444",
				Address: "Bd. Unirii 45, Cluj-Napoca",
			},
			Items: []cart.Item{
				{
					ID:       "demo-item-2",
					Slug:     "gourmet-deluxe",
					Title:    "Gourmet Deluxe",
					Price:    decimal.RequireFromString("389.00"),
					Quantity: 2,
					Stock:    5,
				},
			},
		},
		{
			ID:             "demo-order-3",
			CreatedAt:      now.AddDate(0, 0, -30),
			Status:         StatusDelivered,
			ShippingMethod: cart.ShippingStandard,
			Customer: &Customer{
				Name:    "Andreea Mihai",
				Email:   "andreea.mihai@example.com",
				Phone:   "+40 723 555 666",
				Address: "Str. Libertatii 7, Timisoara",
			},
			Items: []cart.Item{
				{
					ID:       "demo-item-3",
					Slug:     "love-roses",
					Title:    "Love & Roses",
					Price:    decimal.RequireFromString("189.50"),
					Quantity: 1,
					Stock:    8,
				},
			},
		},
	}
}
