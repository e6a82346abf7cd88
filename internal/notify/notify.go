package notify

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/wneessen/go-mail"

	"normanbakes_back_end/internal/models"
	"normanbakes_back_end/internal/pricing"
)

type Kind string

const (
	KindNewOrder         Kind = "new_order"
	KindPaymentConfirmed Kind = "payment_confirmed"
)

// Notifier delivers owner notifications. It reports success/failure and
// never lets a transport error escape; an undelivered e-mail must not
// block an order.
type Notifier interface {
	Notify(kind Kind, order models.Order) bool
}

// RetryPolicy is the bounded immediate-retry rule for the SMTP transport.
type RetryPolicy struct {
	Attempts int
}

var DefaultRetry = RetryPolicy{Attempts: 3}

// Dispatcher sends order summaries to the shop owner's inbox. Send is the
// pluggable transport; a nil Send means notifications are disabled and the
// payload is only logged.
type Dispatcher struct {
	From  string
	To    string
	Retry RetryPolicy
	Send  func(msg *mail.Msg) error
}

// NewFromEnv wires the SMTP transport from SMTP_HOST / SMTP_PORT /
// SMTP_USERNAME / SMTP_PASSWORD and the NOTIFY_FROM / NOTIFY_TO addresses.
func NewFromEnv() *Dispatcher {
	d := &Dispatcher{
		From:  os.Getenv("NOTIFY_FROM"),
		To:    os.Getenv("NOTIFY_TO"),
		Retry: DefaultRetry,
	}
	if d.From == "" {
		d.From = "noreply@normanbakes.co.uk"
	}
	if d.To == "" {
		d.To = "normanbakes38@gmail.com"
	}

	host := os.Getenv("SMTP_HOST")
	if host == "" {
		log.Println("⚠️ SMTP_HOST not set, owner notifications disabled")
		return d
	}

	port := 587
	if v, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil && v > 0 {
		port = v
	}
	username := os.Getenv("SMTP_USERNAME")
	password := os.Getenv("SMTP_PASSWORD")

	d.Send = func(msg *mail.Msg) error {
		client, err := mail.NewClient(host,
			mail.WithPort(port),
			mail.WithSMTPAuth(mail.SMTPAuthLogin),
			mail.WithUsername(username),
			mail.WithPassword(password),
			mail.WithTLSPolicy(mail.TLSMandatory),
		)
		if err != nil {
			return err
		}
		return client.DialAndSend(msg)
	}
	return d
}

// Notify builds the message for the given kind and pushes it through the
// retry policy. On exhaustion the full order is logged verbatim so nothing
// is silently lost, and false is returned.
func (d *Dispatcher) Notify(kind Kind, order models.Order) bool {
	subject, html := buildMessage(kind, order)

	if d.Send == nil {
		d.logFallback(kind, order, fmt.Errorf("notifications disabled"))
		return false
	}

	msg := mail.NewMsg()
	if err := msg.From(d.From); err != nil {
		d.logFallback(kind, order, err)
		return false
	}
	if err := msg.To(d.To); err != nil {
		d.logFallback(kind, order, err)
		return false
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, html)

	var lastErr error
	for attempt := 1; attempt <= d.Retry.Attempts; attempt++ {
		if lastErr = d.Send(msg); lastErr == nil {
			log.Printf("📧 Notification sent (%s) for order #%d", kind, order.ID)
			return true
		}
		log.Printf("⚠️ Notification attempt %d/%d failed: %v", attempt, d.Retry.Attempts, lastErr)
	}

	d.logFallback(kind, order, lastErr)
	return false
}

func (d *Dispatcher) logFallback(kind Kind, order models.Order, err error) {
	payload, marshalErr := json.Marshal(order)
	if marshalErr != nil {
		payload = []byte(fmt.Sprintf("%+v", order))
	}
	log.Printf("❌ Notification (%s) undelivered: %v, order payload: %s", kind, err, payload)
}

func buildMessage(kind Kind, order models.Order) (subject, html string) {
	switch kind {
	case KindPaymentConfirmed:
		subject = fmt.Sprintf("Deposit Paid - Order #%d", order.ID)
	default:
		subject = fmt.Sprintf("New Order #%d from %s", order.ID, order.CustomerName)
	}

	heading := "New Cake Order Received"
	if kind == KindPaymentConfirmed {
		heading = "Deposit Payment Confirmed"
	}

	extras := "None"
	if len(order.Extras) > 0 {
		extras = ""
		for i, e := range order.Extras {
			if i > 0 {
				extras += ", "
			}
			extras += e
		}
	}
	special := order.SpecialRequirements
	if special == "" {
		special = "None"
	}

	html = fmt.Sprintf(`
<h2>%s</h2>
<p><strong>Order ID:</strong> %d</p>
<p><strong>Customer:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Phone:</strong> %s</p>
<p><strong>Collection Date:</strong> %s</p>
<p><strong>Product:</strong> %s</p>
<p><strong>Details:</strong> %s</p>
<p><strong>Extras:</strong> %s</p>
<p><strong>Special Requirements:</strong> %s</p>
<p><strong>Total:</strong> %s</p>
<p><strong>Deposit:</strong> %s</p>
<p><strong>Payment Status:</strong> %s</p>`,
		heading, order.ID, order.CustomerName, order.CustomerEmail, order.CustomerPhone,
		order.CollectionDate, order.ProductType, order.ProductDetails, extras, special,
		pricing.FormatGBP(order.TotalPence), pricing.FormatGBP(order.DepositPence),
		order.PaymentStatus)

	if order.StripePaymentIntentID != "" {
		html += fmt.Sprintf("\n<p><strong>Payment Intent ID:</strong> %s</p>", order.StripePaymentIntentID)
	}
	return subject, html
}
