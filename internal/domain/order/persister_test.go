// internal/domain/order/persister_test.go
package order

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baskitup/storefront/internal/domain/cart"
	"github.com/baskitup/storefront/internal/store"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func snapshotRecord() Record {
	return Record{
		ID:             "local-id",
		Number:         "BK-2026-AAAAAA",
		Status:         StatusProcessing,
		CreatedAt:      time.Now().UTC(),
		ShippingMethod: cart.ShippingStandard,
		Items: []cart.Item{
			{ID: "i1", Slug: "test", Title: "Test", Price: decimal.RequireFromString("10"), Quantity: 1, Stock: 5},
		},
		EmailHistory: []EmailLog{},
	}
}

func TestRemotePersisterAdoptsUpstreamRecord(t *testing.T) {
	var received SnapshotPayload

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/orders", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Record{
			ID:        "remote-id",
			Number:    "BK-2026-REMOTE",
			Status:    StatusProcessing,
			CreatedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		})
	}))
	defer server.Close()

	st, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)

	client := NewClient(server.URL, 5*time.Second)
	persister := NewRemotePersister(client, NewLocalPersister(st), quietLogger())

	identity := store.Identity{UserID: "u1"}
	persisted, err := persister.Persist(context.Background(), identity, snapshotRecord())
	require.NoError(t, err)

	assert.Equal(t, "u1", received.UserKey)
	assert.Equal(t, "remote-id", persisted.ID)
	assert.Equal(t, "BK-2026-REMOTE", persisted.Number)

	bucket := store.ReadBucket[Record](context.Background(), st, store.OrderKey)
	require.Len(t, bucket.ByIdentity["u1"], 1)
	assert.Equal(t, "remote-id", bucket.ByIdentity["u1"][0].ID)
}

func TestRemotePersisterFallsBackOnFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]string{"message": "upstream down"})
	}))
	defer server.Close()

	st, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)

	client := NewClient(server.URL, 5*time.Second)
	persister := NewRemotePersister(client, NewLocalPersister(st), quietLogger())

	identity := store.Identity{UserID: "u1"}
	record := snapshotRecord()

	persisted, err := persister.Persist(context.Background(), identity, record)
	require.NoError(t, err)
	assert.Equal(t, record.ID, persisted.ID, "local identifiers kept on fallback")

	bucket := store.ReadBucket[Record](context.Background(), st, store.OrderKey)
	require.Len(t, bucket.ByIdentity["u1"], 1)
}

func TestClientUpdateStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/orders/abc/status", r.URL.Path)

		var payload map[string]Status
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, StatusShipped, payload["status"])

		json.NewEncoder(w).Encode(Record{ID: "abc", Status: StatusShipped})
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	updated, err := client.UpdateStatus(context.Background(), "abc", StatusShipped)
	require.NoError(t, err)
	assert.Equal(t, StatusShipped, updated.Status)
}

func TestClientFetchBuckets(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/orders", r.URL.Path)

		json.NewEncoder(w).Encode(map[string][]Record{
			"u1":       {{ID: "o1", Status: StatusProcessing}},
			"__demo__": {{ID: "o2", Status: StatusDelivered}},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	buckets, err := client.FetchBuckets(context.Background())
	require.NoError(t, err)
	require.Len(t, buckets, 2)
	assert.Equal(t, "o1", buckets["u1"][0].ID)
}

func TestClientSurfacesErrorMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "order not found"})
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	_, err := client.UpdateStatus(context.Background(), "missing", StatusShipped)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "order not found")
	assert.Contains(t, err.Error(), "404")
}
