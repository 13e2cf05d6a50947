// internal/domain/order/entity.go
package order

import (
	"sort"
	"strings"
	"time"

	"github.com/baskitup/storefront/internal/domain/cart"
	"github.com/baskitup/storefront/internal/store"
)

// Status represents the order status
type Status string

const (
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCanceled   Status = "canceled"
)

// ParseStatus maps a raw string to a status; unknown values are reported.
func ParseStatus(raw string) (Status, bool) {
	switch Status(strings.ToLower(raw)) {
	case StatusProcessing:
		return StatusProcessing, true
	case StatusShipped:
		return StatusShipped, true
	case StatusDelivered:
		return StatusDelivered, true
	case StatusCanceled:
		return StatusCanceled, true
	}
	return "", false
}

// CanTransition reports whether an order may move from one status to
// another. Delivered and canceled are terminal; no state reverts.
func CanTransition(from, to Status) bool {
	validTransitions := map[Status][]Status{
		StatusProcessing: {StatusShipped, StatusDelivered, StatusCanceled},
		StatusShipped:    {StatusDelivered, StatusCanceled},
	}

	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Customer is the contact snapshot frozen onto an order at checkout.
type Customer struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// EmailLog is one entry in an order's email history. Entries are immutable
// once created; the history only grows, newest first.
type EmailLog struct {
	ID        string    `json:"id"`
	To        string    `json:"to"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Record is an order: an immutable snapshot of the cart taken at checkout.
// After creation only Status changes and EmailHistory grows.
type Record struct {
	ID             string              `json:"id"`
	Number         string              `json:"number"`
	CreatedAt      time.Time           `json:"createdAt"`
	Status         Status              `json:"status"`
	ShippingMethod cart.ShippingMethod `json:"shippingMethod"`
	Note           string              `json:"note,omitempty"`
	Customer       *Customer           `json:"customer,omitempty"`
	Totals         cart.Totals         `json:"totals"`
	Items          []cart.Item         `json:"items"`
	EmailHistory   []EmailLog          `json:"emailHistory"`
}

// Normalize fills the defaults for a record read from or written to the
// store: processing status, standard shipping, empty item and email lists,
// and totals recomputed from items when absent. Applied at every store
// boundary so the rest of the engine never sees a partial record.
func Normalize(r Record) Record {
	if _, ok := ParseStatus(string(r.Status)); !ok {
		r.Status = StatusProcessing
	}
	r.ShippingMethod = cart.ParseShippingMethod(string(r.ShippingMethod))
	if r.Items == nil {
		r.Items = []cart.Item{}
	}
	if r.EmailHistory == nil {
		r.EmailHistory = []EmailLog{}
	}
	if r.Totals.Total.IsZero() {
		r.Totals = cart.ComputeTotals(r.Items, r.ShippingMethod)
	}
	return r
}

// Aggregate flattens every identity's orders into one normalized list,
// newest first, for cross-identity administrative views.
func Aggregate(bucket store.Bucket[Record]) []Record {
	all := make([]Record, 0)
	for _, records := range bucket.ByIdentity {
		for _, r := range records {
			all = append(all, Normalize(r))
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	return all
}
