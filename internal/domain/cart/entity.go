// internal/domain/cart/entity.go
package cart

import (
	"github.com/shopspring/decimal"
)

// ShippingMethod selects the flat-fee shipping tier for a cart or order.
type ShippingMethod string

const (
	ShippingStandard ShippingMethod = "standard"
	ShippingExpress  ShippingMethod = "express"
)

// ParseShippingMethod maps a raw string to a shipping method, defaulting to
// standard for anything unrecognized.
func ParseShippingMethod(raw string) ShippingMethod {
	if raw == string(ShippingExpress) {
		return ShippingExpress
	}
	return ShippingStandard
}

// VATRate is the value-added tax applied to subtotal plus shipping.
var VATRate = decimal.RequireFromString("0.19")

var (
	shippingStandardFee = decimal.NewFromInt(25)
	shippingExpressFee  = decimal.NewFromInt(35)
)

// Item is one product line in a cart. Stock is the ceiling captured when the
// product was added; later quantity updates clamp against this snapshot, not
// against live catalog stock.
type Item struct {
	ID        string          `json:"id"`
	Slug      string          `json:"slug"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Stock     int             `json:"stock"`
	HeroImage string          `json:"heroImage,omitempty"`
}

// Totals is derived from items and shipping method, never stored on its own.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	VAT      decimal.Decimal `json:"vat"`
	Total    decimal.Decimal `json:"total"`
}

// ShippingCost returns the flat fee for a shipping method.
func ShippingCost(method ShippingMethod) decimal.Decimal {
	if method == ShippingExpress {
		return shippingExpressFee
	}
	return shippingStandardFee
}

// ComputeTotals derives cart totals: sum of line prices, a flat shipping fee
// (zero for an empty cart) and 19% VAT on subtotal plus shipping. Pure
// function of its inputs; callers recompute whenever items or method change.
func ComputeTotals(items []Item, method ShippingMethod) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	shipping := decimal.Zero
	if len(items) > 0 {
		shipping = ShippingCost(method)
	}

	vat := subtotal.Add(shipping).Mul(VATRate)
	total := subtotal.Add(shipping).Add(vat)

	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		VAT:      vat,
		Total:    total,
	}
}
