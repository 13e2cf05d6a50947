// internal/store/store.go
package store

import (
	"context"
	"encoding/json"
)

// Well-known bucket document keys. The version suffix allows a clean break
// when the persisted shape changes.
const (
	CartKey  = "baskit.cart.v3"
	OrderKey = "baskit.orders.v3"
)

// GuestKey is the identity key used when no user is authenticated.
const GuestKey = "guest"

// Store is a keyed document store. Implementations persist whole documents;
// the last write for a key wins, no merging or versioning is attempted.
type Store interface {
	// Get returns the raw document for key. The boolean reports whether a
	// document exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set persists the full document for key.
	Set(ctx context.Context, key string, data []byte) error
}

// Identity names the owner of a cart or order list.
type Identity struct {
	UserID string
	Email  string
}

// Key resolves the bucket key for this identity: user id, else email,
// else "guest".
func (i Identity) Key() string {
	if i.UserID != "" {
		return i.UserID
	}
	if i.Email != "" {
		return i.Email
	}
	return GuestKey
}

// Guest is the anonymous identity.
var Guest = Identity{}

// Bucket maps identity keys to per-identity record lists. All identities
// share one document so administrative views can aggregate across them.
type Bucket[T any] struct {
	ByIdentity   map[string][]T `json:"byUser"`
	LastIdentity string         `json:"lastUserId,omitempty"`
}

// NewBucket returns an empty bucket.
func NewBucket[T any]() Bucket[T] {
	return Bucket[T]{ByIdentity: make(map[string][]T)}
}

// ReadBucket loads the bucket stored under key. Missing documents, corrupt
// JSON and backend failures all yield an empty bucket; reads never fail.
func ReadBucket[T any](ctx context.Context, s Store, key string) Bucket[T] {
	raw, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return NewBucket[T]()
	}

	var bucket Bucket[T]
	if err := json.Unmarshal(raw, &bucket); err != nil || bucket.ByIdentity == nil {
		return NewBucket[T]()
	}

	return bucket
}

// WriteBucket persists the full bucket under key.
func WriteBucket[T any](ctx context.Context, s Store, key string, bucket Bucket[T]) error {
	data, err := json.Marshal(bucket)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, data)
}
