// internal/domain/cart/service.go
package cart

import (
	"context"

	"github.com/baskitup/storefront/internal/domain/basket"
	"github.com/baskitup/storefront/internal/store"
)

// Service owns the cart aggregate for each identity. Every mutation reloads
// the bucket document, applies the change to the caller's list and writes the
// full document back. Writes are best-effort: an unavailable store must not
// break the cart the caller is looking at.
type Service struct {
	store store.Store
}

// NewService creates a new cart service on top of a bucket store.
func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// Items returns the cart belonging to identity.
func (s *Service) Items(ctx context.Context, identity store.Identity) []Item {
	bucket := store.ReadBucket[Item](ctx, s.store, store.CartKey)
	items := bucket.ByIdentity[identity.Key()]
	if items == nil {
		items = []Item{}
	}
	return items
}

// ItemCount returns the total quantity across all lines in identity's cart.
func (s *Service) ItemCount(ctx context.Context, identity store.Identity) int {
	count := 0
	for _, item := range s.Items(ctx, identity) {
		count += item.Quantity
	}
	return count
}

// AddItem puts quantity units of a basket into identity's cart. If a line for
// the same basket exists its quantity is incremented; the result is always
// clamped to the stock ceiling captured on the line.
func (s *Service) AddItem(ctx context.Context, identity store.Identity, b *basket.Basket, quantity int) []Item {
	if quantity < 1 {
		quantity = 1
	}

	items := s.Items(ctx, identity)

	merged := false
	for i := range items {
		if items[i].ID == b.ID {
			items[i].Quantity = clamp(items[i].Quantity+quantity, 1, items[i].Stock)
			merged = true
			break
		}
	}

	if !merged {
		items = append(items, Item{
			ID:        b.ID,
			Slug:      b.Slug,
			Title:     b.Title,
			Price:     b.Price,
			Quantity:  clamp(quantity, 1, b.Stock),
			Stock:     b.Stock,
			HeroImage: b.HeroImage,
		})
	}

	items = dropEmpty(items)
	s.save(ctx, identity, items)
	return items
}

// UpdateQuantity sets the quantity of a cart line, clamped to [1, stock].
// A line whose quantity still resolves to zero or below (stock exhausted)
// is dropped. Unknown ids are a no-op. Idempotent.
func (s *Service) UpdateQuantity(ctx context.Context, identity store.Identity, id string, quantity int) []Item {
	items := s.Items(ctx, identity)

	for i := range items {
		if items[i].ID == id {
			items[i].Quantity = clamp(quantity, 1, items[i].Stock)
		}
	}

	items = dropEmpty(items)
	s.save(ctx, identity, items)
	return items
}

// RemoveItem removes a cart line unconditionally.
func (s *Service) RemoveItem(ctx context.Context, identity store.Identity, id string) []Item {
	items := s.Items(ctx, identity)

	kept := items[:0]
	for _, item := range items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	items = append([]Item{}, kept...)

	s.save(ctx, identity, items)
	return items
}

// Clear empties identity's cart. Called after a successful checkout.
func (s *Service) Clear(ctx context.Context, identity store.Identity) {
	s.save(ctx, identity, []Item{})
}

// Totals computes totals for identity's current cart.
func (s *Service) Totals(ctx context.Context, identity store.Identity, method ShippingMethod) Totals {
	return ComputeTotals(s.Items(ctx, identity), method)
}

func (s *Service) save(ctx context.Context, identity store.Identity, items []Item) {
	bucket := store.ReadBucket[Item](ctx, s.store, store.CartKey)
	bucket.ByIdentity[identity.Key()] = items
	bucket.LastIdentity = identity.Key()
	// Best-effort write: the bucket store tolerates unavailability.
	_ = store.WriteBucket(ctx, s.store, store.CartKey, bucket)
}

func clamp(quantity, low, high int) int {
	if quantity < low {
		quantity = low
	}
	if quantity > high {
		quantity = high
	}
	return quantity
}

func dropEmpty(items []Item) []Item {
	kept := make([]Item, 0, len(items))
	for _, item := range items {
		if item.Quantity > 0 {
			kept = append(kept, item)
		}
	}
	return kept
}
