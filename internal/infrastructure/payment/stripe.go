package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"greencart/internal/domain"
	"greencart/pkg/logger"

	"github.com/goccy/go-json"
	"github.com/sony/gobreaker/v2"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
)

const (
	eventCheckoutCompleted = "checkout.session.completed"
	eventCheckoutExpired   = "checkout.session.expired"

	metaOrderID = "orderId"
	metaUserID  = "userId"
)

// sessionCreator is the part of the Stripe checkout client the gateway uses.
type sessionCreator interface {
	New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

type StripeOptions struct {
	SecretKey     string
	WebhookSecret string
	Currency      string
	FrontendURL   string
}

// StripeGateway opens hosted Checkout sessions and verifies webhooks.
type StripeGateway struct {
	sessions      sessionCreator
	breaker       *gobreaker.CircuitBreaker[*stripe.CheckoutSession]
	webhookSecret string
	currency      string
	frontendURL   string
}

func NewStripeGateway(opts StripeOptions) *StripeGateway {
	sc := client.New(opts.SecretKey, nil)
	return newStripeGateway(sc.CheckoutSessions, opts)
}

func newStripeGateway(sessions sessionCreator, opts StripeOptions) *StripeGateway {
	log := logger.Component("payment")
	breaker := gobreaker.NewCircuitBreaker[*stripe.CheckoutSession](gobreaker.Settings{
		Name:        "stripe-checkout",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("Circuit breaker state changed")
		},
	})

	return &StripeGateway{
		sessions:      sessions,
		breaker:       breaker,
		webhookSecret: opts.WebhookSecret,
		currency:      opts.Currency,
		frontendURL:   opts.FrontendURL,
	}
}

func (g *StripeGateway) CreateCheckout(ctx context.Context, req domain.CheckoutRequest) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(g.frontendURL + "/loader?next=my-orders"),
		CancelURL:  stripe.String(g.frontendURL + "/cart"),
	}
	params.Context = ctx
	for _, line := range req.Lines {
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(g.currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(line.Name),
				},
				UnitAmount: stripe.Int64(line.UnitAmount),
			},
			Quantity: stripe.Int64(line.Quantity),
		})
	}
	params.AddMetadata(metaOrderID, req.OrderID)
	params.AddMetadata(metaUserID, req.UserID)

	session, err := g.breaker.Execute(func() (*stripe.CheckoutSession, error) {
		return g.sessions.New(params)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", domain.Errorf(domain.ErrUnavailable, "Payment provider is unavailable, try again later")
		}
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}
	return session.URL, nil
}

func (g *StripeGateway) ParseEvent(payload []byte, signature string) (*domain.PaymentEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, domain.Errorf(domain.ErrUnauthorized, "Webhook Error: %v", err)
	}

	var kind domain.PaymentEventType
	switch event.Type {
	case eventCheckoutCompleted:
		kind = domain.PaymentSucceeded
	case eventCheckoutExpired:
		kind = domain.PaymentFailed
	default:
		return &domain.PaymentEvent{Type: domain.PaymentIgnored}, nil
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return nil, domain.Errorf(domain.ErrInvalidInput, "Malformed checkout session")
	}
	orderID := session.Metadata[metaOrderID]
	if orderID == "" {
		return nil, domain.Errorf(domain.ErrInvalidInput, "Checkout session has no order")
	}

	return &domain.PaymentEvent{
		Type:    kind,
		OrderID: orderID,
		UserID:  session.Metadata[metaUserID],
	}, nil
}
