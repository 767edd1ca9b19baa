package domain

import "context"

// ImageStore uploads processed images to the public image host.
type ImageStore interface {
	UploadBuffer(ctx context.Context, data []byte, contentType string) (string, error)
	DeleteFile(ctx context.Context, fileURL string) error
}

// CheckoutLine is one priced line on a hosted payment page.
type CheckoutLine struct {
	Name       string
	UnitAmount int64 // minor currency units
	Quantity   int64
}

type CheckoutRequest struct {
	OrderID string
	UserID  string
	Lines   []CheckoutLine
}

type PaymentEventType string

const (
	PaymentSucceeded PaymentEventType = "succeeded"
	PaymentFailed    PaymentEventType = "failed"
	PaymentIgnored   PaymentEventType = "ignored"
)

// PaymentEvent is a verified provider notification reduced to what orders need.
type PaymentEvent struct {
	Type    PaymentEventType
	OrderID string
	UserID  string
}

type PaymentGateway interface {
	// CreateCheckout returns the hosted payment page URL.
	CreateCheckout(ctx context.Context, req CheckoutRequest) (string, error)
	// ParseEvent verifies the signature and decodes the event.
	ParseEvent(payload []byte, signature string) (*PaymentEvent, error)
}
