// internal/domain/order/persister.go
package order

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/baskitup/storefront/internal/store"
)

// Persister writes a freshly placed order to its home. Implementations may
// rewrite the record's identifiers; callers keep the returned copy.
type Persister interface {
	Persist(ctx context.Context, identity store.Identity, record Record) (Record, error)
}

// LocalPersister prepends new orders to the identity's list in the bucket
// store.
type LocalPersister struct {
	store store.Store
}

func NewLocalPersister(st store.Store) *LocalPersister {
	return &LocalPersister{store: st}
}

func (p *LocalPersister) Persist(ctx context.Context, identity store.Identity, record Record) (Record, error) {
	record = Normalize(record)

	bucket := store.ReadBucket[Record](ctx, p.store, store.OrderKey)
	key := identity.Key()
	bucket.ByIdentity[key] = append([]Record{record}, bucket.ByIdentity[key]...)
	bucket.LastIdentity = key

	if err := store.WriteBucket(ctx, p.store, store.OrderKey, bucket); err != nil {
		return record, err
	}
	return record, nil
}

// RemotePersister sends new orders to the upstream orders service and mirrors
// the accepted record locally. When the upstream is unreachable the order
// falls back to local persistence so checkout never loses it.
type RemotePersister struct {
	client *Client
	local  *LocalPersister
	log    *logrus.Logger
}

func NewRemotePersister(client *Client, local *LocalPersister, log *logrus.Logger) *RemotePersister {
	return &RemotePersister{client: client, local: local, log: log}
}

func (p *RemotePersister) Persist(ctx context.Context, identity store.Identity, record Record) (Record, error) {
	accepted, err := p.client.PersistSnapshot(ctx, identity, record)
	if err != nil {
		p.log.WithError(err).WithField("order_number", record.Number).
			Warn("orders service unreachable, falling back to local persistence")
		return p.local.Persist(ctx, identity, record)
	}

	// The upstream owns the canonical id and number once it accepts the
	// snapshot.
	record.ID = accepted.ID
	record.Number = accepted.Number
	record.Status = accepted.Status
	record.CreatedAt = accepted.CreatedAt

	return p.local.Persist(ctx, identity, record)
}
