// internal/domain/order/service.go
package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/baskitup/storefront/internal/domain/cart"
	"github.com/baskitup/storefront/internal/store"
)

var (
	// ErrEmptyCart is returned when checkout is attempted with no items.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrNotFound is returned when no order matches the given id.
	ErrNotFound = errors.New("order not found")

	// ErrInvalidStatus is returned for unknown status values.
	ErrInvalidStatus = errors.New("invalid order status")

	// ErrInvalidTransition is returned when a status change would revert or
	// leave a terminal state.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// DemoIdentityKey is the reserved synthetic identity that holds seeded
// demonstration orders.
const DemoIdentityKey = "__demo__"

// PlaceOrderParams carries the checkout choices frozen onto the order.
type PlaceOrderParams struct {
	ShippingMethod cart.ShippingMethod
	Note           string
	Customer       *Customer
}

// SeedOptions controls how demo orders reach the current identity's list.
type SeedOptions struct {
	IncludeCurrentUser bool
	ReplaceExisting    bool
}

// Tracker handles the order lifecycle: checkout, status transitions and the
// email log, all on top of the shared bucket store.
type Tracker struct {
	store     store.Store
	carts     *cart.Service
	persister Persister
	remote    *Client
	log       *logrus.Logger
}

// NewTracker creates a new order tracker. remote may be nil; when set,
// status updates are pushed upstream before being applied locally.
func NewTracker(st store.Store, carts *cart.Service, persister Persister, remote *Client, log *logrus.Logger) *Tracker {
	return &Tracker{
		store:     st,
		carts:     carts,
		persister: persister,
		remote:    remote,
		log:       log,
	}
}

// NewOrderNumber derives the human-readable order number from the creation
// year and an opaque suffix of the order id. Best-effort unique; there is no
// collision check.
func NewOrderNumber(createdAt time.Time, id string) string {
	suffix := id
	if len(suffix) > 6 {
		suffix = suffix[len(suffix)-6:]
	}
	return fmt.Sprintf("BK-%d-%s", createdAt.Year(), strings.ToUpper(suffix))
}

// PlaceOrder freezes the identity's cart into a new order record, persists
// it through the configured strategy and clears the cart. Fails with
// ErrEmptyCart when there is nothing to check out. One attempt only; the
// remote strategy handles its own local fallback.
func (t *Tracker) PlaceOrder(ctx context.Context, identity store.Identity, params PlaceOrderParams) (*Record, error) {
	items := t.carts.Items(ctx, identity)
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	method := cart.ParseShippingMethod(string(params.ShippingMethod))
	now := time.Now().UTC()
	id := uuid.New().String()

	record := Record{
		ID:             id,
		Number:         NewOrderNumber(now, id),
		CreatedAt:      now,
		Status:         StatusProcessing,
		ShippingMethod: method,
		Note:           params.Note,
		Customer:       params.Customer,
		Totals:         cart.ComputeTotals(items, method),
		Items:          items,
		EmailHistory:   []EmailLog{},
	}

	persisted, err := t.persister.Persist(ctx, identity, record)
	if err != nil {
		// The record was produced; losing the write must not lose the
		// user-visible order.
		t.log.WithError(err).WithField("order_id", record.ID).
			Warn("order persistence failed, keeping in-memory record")
		persisted = record
	}

	t.carts.Clear(ctx, identity)

	return &persisted, nil
}

// Orders returns the normalized order list belonging to identity, newest
// first as stored.
func (t *Tracker) Orders(ctx context.Context, identity store.Identity) []Record {
	bucket := store.ReadBucket[Record](ctx, t.store, store.OrderKey)
	records := bucket.ByIdentity[identity.Key()]

	normalized := make([]Record, 0, len(records))
	for _, r := range records {
		normalized = append(normalized, Normalize(r))
	}
	return normalized
}

// AllOrders returns every identity's orders flattened and sorted by creation
// time descending. Admin-scope view.
func (t *Tracker) AllOrders(ctx context.Context) []Record {
	return Aggregate(store.ReadBucket[Record](ctx, t.store, store.OrderKey))
}

// Buckets returns the raw identity-to-orders mapping, normalized. When
// composed against an upstream orders service its view wins; local state is
// the fallback.
func (t *Tracker) Buckets(ctx context.Context) map[string][]Record {
	if t.remote != nil {
		buckets, err := t.remote.FetchBuckets(ctx)
		if err == nil {
			for key, records := range buckets {
				normalized := make([]Record, 0, len(records))
				for _, r := range records {
					normalized = append(normalized, Normalize(r))
				}
				buckets[key] = normalized
			}
			return buckets
		}
		t.log.WithError(err).Warn("orders service unreachable, serving local buckets")
	}

	bucket := store.ReadBucket[Record](ctx, t.store, store.OrderKey)

	out := make(map[string][]Record, len(bucket.ByIdentity))
	for key, records := range bucket.ByIdentity {
		normalized := make([]Record, 0, len(records))
		for _, r := range records {
			normalized = append(normalized, Normalize(r))
		}
		out[key] = normalized
	}
	return out
}

// UpdateOrderStatus locates the order by id across all identities' buckets
// and rewrites its status. Admin-scope operation. Returns ErrNotFound without
// writing when no order matched, and ErrInvalidTransition when the change
// would revert or leave a terminal state. Setting the current status again is
// accepted without a write.
func (t *Tracker) UpdateOrderStatus(ctx context.Context, id string, status Status) (*Record, error) {
	if _, ok := ParseStatus(string(status)); !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	bucket := store.ReadBucket[Record](ctx, t.store, store.OrderKey)

	var updated *Record
	for key, records := range bucket.ByIdentity {
		for i, r := range records {
			if r.ID != id {
				continue
			}

			current := Normalize(r)
			if current.Status == status {
				return &current, nil
			}
			if !CanTransition(current.Status, status) {
				return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, status)
			}

			// Push upstream first when composed remotely; a failed remote
			// update leaves local state untouched.
			if t.remote != nil {
				if _, err := t.remote.UpdateStatus(ctx, id, status); err != nil {
					t.log.WithError(err).WithField("order_id", id).
						Error("remote status update failed")
					return nil, fmt.Errorf("failed to update order status: %w", err)
				}
			}

			current.Status = status
			records[i] = current
			bucket.ByIdentity[key] = records
			updated = &current
			break
		}
		if updated != nil {
			break
		}
	}

	if updated == nil {
		return nil, ErrNotFound
	}

	if err := store.WriteBucket(ctx, t.store, store.OrderKey, bucket); err != nil {
		return nil, fmt.Errorf("failed to persist status update: %w", err)
	}

	return updated, nil
}

// RecordEmail prepends a new entry to the matched order's email history,
// across all identities' buckets. Prior entries are never touched. Returns
// ErrNotFound without writing when no order matched.
func (t *Tracker) RecordEmail(ctx context.Context, id, subject, message string) (*EmailLog, error) {
	bucket := store.ReadBucket[Record](ctx, t.store, store.OrderKey)

	var logged *EmailLog
	for key, records := range bucket.ByIdentity {
		for i, r := range records {
			if r.ID != id {
				continue
			}

			current := Normalize(r)

			to := "unknown"
			if current.Customer != nil && current.Customer.Email != "" {
				to = current.Customer.Email
			}

			entry := EmailLog{
				ID:        uuid.New().String(),
				To:        to,
				Subject:   subject,
				Message:   message,
				CreatedAt: time.Now().UTC(),
			}

			current.EmailHistory = append([]EmailLog{entry}, current.EmailHistory...)
			records[i] = current
			bucket.ByIdentity[key] = records
			logged = &entry
			break
		}
		if logged != nil {
			break
		}
	}

	if logged == nil {
		return nil, ErrNotFound
	}

	if err := store.WriteBucket(ctx, t.store, store.OrderKey, bucket); err != nil {
		return nil, fmt.Errorf("failed to persist email log: %w", err)
	}

	return logged, nil
}

// SeedDemoOrders installs a normalized batch of orders under the reserved
// demo identity, optionally merging them into the current identity's own
// list with either append or full-replace semantics.
func (t *Tracker) SeedDemoOrders(ctx context.Context, identity store.Identity, orders []Record, opts SeedOptions) error {
	now := time.Now().UTC()

	normalized := make([]Record, 0, len(orders))
	for _, r := range orders {
		if r.ID == "" {
			r.ID = uuid.New().String()
		}
		if r.CreatedAt.IsZero() {
			r.CreatedAt = now
		}
		if r.Number == "" {
			r.Number = NewOrderNumber(r.CreatedAt, r.ID)
		}
		normalized = append(normalized, Normalize(r))
	}

	bucket := store.ReadBucket[Record](ctx, t.store, store.OrderKey)
	bucket.ByIdentity[DemoIdentityKey] = normalized

	if opts.IncludeCurrentUser {
		key := identity.Key()
		if opts.ReplaceExisting {
			bucket.ByIdentity[key] = normalized
		} else {
			bucket.ByIdentity[key] = append(append([]Record{}, normalized...), bucket.ByIdentity[key]...)
		}
	}

	if err := store.WriteBucket(ctx, t.store, store.OrderKey, bucket); err != nil {
		return fmt.Errorf("failed to persist demo orders: %w", err)
	}

	return nil
}
