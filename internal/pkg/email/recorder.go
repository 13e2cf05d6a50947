// internal/pkg/email/recorder.go
package email

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/baskitup/storefront/internal/config"
	"github.com/baskitup/storefront/internal/domain/order"
)

// Message is a rendered notification ready to be logged onto an order.
type Message struct {
	Subject string
	Body    string
}

// Recorder composes customer notifications and records them instead of
// sending them. Delivery is out of scope; the history lives on the order.
type Recorder struct {
	fromEmail string
	fromName  string
	log       *logrus.Logger
}

// NewRecorder creates a new email recorder
func NewRecorder(cfg *config.Config, log *logrus.Logger) *Recorder {
	return &Recorder{
		fromEmail: cfg.Email.FromEmail,
		fromName:  cfg.Email.FromName,
		log:       log,
	}
}

// OrderConfirmation renders the checkout confirmation for an order.
func (r *Recorder) OrderConfirmation(rec *order.Record) Message {
	name := "customer"
	if rec.Customer != nil && rec.Customer.Name != "" {
		name = rec.Customer.Name
	}

	return Message{
		Subject: fmt.Sprintf("Order %s confirmed", rec.Number),
		Body: fmt.Sprintf(
			"Hi %s,\n\nThank you for your order %s. We are preparing your baskets and will let you know once they ship.\n\nTotal: %s RON\n\n%s",
			name, rec.Number, rec.Totals.Total.StringFixed(2), r.signature(),
		),
	}
}

// StatusUpdate renders the notification for a status change.
func (r *Recorder) StatusUpdate(rec *order.Record, status order.Status) Message {
	var line string
	switch status {
	case order.StatusShipped:
		line = "Your order is on its way."
	case order.StatusDelivered:
		line = "Your order has been delivered. Enjoy!"
	case order.StatusCanceled:
		line = "Your order has been canceled. If this is unexpected, please contact us."
	default:
		line = "Your order is being prepared."
	}

	return Message{
		Subject: fmt.Sprintf("Order %s is now %s", rec.Number, status),
		Body:    fmt.Sprintf("Hi,\n\n%s\n\n%s", line, r.signature()),
	}
}

// Record logs the message instead of delivering it.
func (r *Recorder) Record(to string, msg Message) {
	r.log.WithFields(logrus.Fields{
		"to":      to,
		"from":    r.fromEmail,
		"subject": msg.Subject,
	}).Info("Email recorded, not sent")
}

func (r *Recorder) signature() string {
	return fmt.Sprintf("Warm regards,\n%s", r.fromName)
}
