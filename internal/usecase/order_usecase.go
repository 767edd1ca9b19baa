package usecase

import (
	"context"
	"errors"

	"greencart/internal/domain"
	"greencart/pkg/logger"

	"github.com/shopspring/decimal"
)

type OrderUsecase struct {
	orderRepo   domain.OrderRepository
	productRepo domain.ProductRepository
	addressRepo domain.AddressRepository
	userRepo    domain.UserRepository
	payments    domain.PaymentGateway
	taxRate     decimal.Decimal
	maxQuantity int
}

type OrderOptions struct {
	TaxRate     float64
	MaxQuantity int
}

// NewOrderUsecase wires order placement. payments may be nil, which
// disables online checkout.
func NewOrderUsecase(orderRepo domain.OrderRepository, productRepo domain.ProductRepository, addressRepo domain.AddressRepository, userRepo domain.UserRepository, payments domain.PaymentGateway, opts OrderOptions) *OrderUsecase {
	return &OrderUsecase{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		addressRepo: addressRepo,
		userRepo:    userRepo,
		payments:    payments,
		taxRate:     decimal.NewFromFloat(opts.TaxRate),
		maxQuantity: opts.MaxQuantity,
	}
}

// pricedOrder is a validated order with its products resolved.
type pricedOrder struct {
	order    *domain.Order
	products map[string]domain.Product
}

// PlaceCOD stores a cash-on-delivery order. It is visible immediately.
func (u *OrderUsecase) PlaceCOD(ctx context.Context, userID string, req domain.PlaceOrderRequest) (*domain.Order, error) {
	priced, err := u.price(ctx, userID, req, domain.PaymentTypeCOD)
	if err != nil {
		return nil, err
	}
	if err := u.orderRepo.Create(ctx, priced.order); err != nil {
		return nil, err
	}
	logger.WithContext(ctx).Info().
		Str("order_id", priced.order.ID).
		Float64("amount", priced.order.Amount).
		Msg("COD order placed")
	return priced.order, nil
}

// PlaceOnline stores an unpaid order and opens a hosted checkout for it.
// The order stays hidden until the provider confirms payment.
func (u *OrderUsecase) PlaceOnline(ctx context.Context, userID string, req domain.PlaceOrderRequest) (string, error) {
	if u.payments == nil {
		return "", domain.Errorf(domain.ErrUnavailable, "Online payment is not available")
	}
	priced, err := u.price(ctx, userID, req, domain.PaymentTypeOnline)
	if err != nil {
		return "", err
	}
	if err := u.orderRepo.Create(ctx, priced.order); err != nil {
		return "", err
	}

	lines := make([]domain.CheckoutLine, 0, len(priced.order.Items))
	for _, item := range priced.order.Items {
		p := priced.products[item.ProductID]
		lines = append(lines, domain.CheckoutLine{
			Name:       p.Name,
			UnitAmount: u.unitAmountWithTax(p.OfferPrice),
			Quantity:   int64(item.Quantity),
		})
	}

	url, err := u.payments.CreateCheckout(ctx, domain.CheckoutRequest{
		OrderID: priced.order.ID,
		UserID:  userID,
		Lines:   lines,
	})
	if err != nil {
		if delErr := u.orderRepo.Delete(ctx, priced.order.ID); delErr != nil {
			logger.WithContext(ctx).Warn().Err(delErr).Str("order_id", priced.order.ID).Msg("Failed to remove order after checkout error")
		}
		return "", err
	}
	return url, nil
}

// HandlePaymentEvent applies a verified provider notification.
func (u *OrderUsecase) HandlePaymentEvent(ctx context.Context, payload []byte, signature string) error {
	if u.payments == nil {
		return domain.Errorf(domain.ErrUnavailable, "Online payment is not available")
	}
	event, err := u.payments.ParseEvent(payload, signature)
	if err != nil {
		return err
	}
	log := logger.WithContext(ctx)

	switch event.Type {
	case domain.PaymentSucceeded:
		if err := u.orderRepo.MarkPaid(ctx, event.OrderID); err != nil {
			return err
		}
		if event.UserID != "" {
			if err := u.userRepo.SetCartItems(ctx, event.UserID, domain.CartItems{}); err != nil {
				return err
			}
		}
		log.Info().Str("order_id", event.OrderID).Msg("Order paid")
	case domain.PaymentFailed:
		err := u.orderRepo.Delete(ctx, event.OrderID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		log.Info().Str("order_id", event.OrderID).Msg("Unpaid order discarded")
	default:
		log.Debug().Msg("Ignoring payment event")
	}
	return nil
}

// UserOrders lists the caller's COD or paid orders, newest first.
func (u *OrderUsecase) UserOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	orders, err := u.orderRepo.ListVisible(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.populate(ctx, orders)
}

// SellerOrders lists COD or paid orders across all customers.
func (u *OrderUsecase) SellerOrders(ctx context.Context) ([]domain.Order, error) {
	orders, err := u.orderRepo.ListVisible(ctx, "")
	if err != nil {
		return nil, err
	}
	return u.populate(ctx, orders)
}

func (u *OrderUsecase) price(ctx context.Context, userID string, req domain.PlaceOrderRequest, paymentType string) (*pricedOrder, error) {
	if req.Address == "" || len(req.Items) == 0 {
		return nil, domain.Errorf(domain.ErrInvalidInput, "Invalid data")
	}
	if _, err := u.addressRepo.GetByID(ctx, req.Address, userID); err != nil {
		return nil, err
	}

	// Repeated lines for one product are merged.
	quantities := make(map[string]int, len(req.Items))
	ids := make([]string, 0, len(req.Items))
	for _, item := range req.Items {
		if item.ProductID == "" || item.Quantity <= 0 {
			return nil, domain.Errorf(domain.ErrInvalidInput, "Invalid order item")
		}
		if _, seen := quantities[item.ProductID]; !seen {
			ids = append(ids, item.ProductID)
		}
		quantities[item.ProductID] += item.Quantity
		if u.maxQuantity > 0 && quantities[item.ProductID] > u.maxQuantity {
			return nil, domain.Errorf(domain.ErrInvalidInput, "Quantity exceeds maximum of %d", u.maxQuantity)
		}
	}

	found, err := u.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	products := make(map[string]domain.Product, len(found))
	for _, p := range found {
		products[p.ID] = p
	}

	items := make([]domain.OrderItem, 0, len(ids))
	subtotal := decimal.Zero
	for _, id := range ids {
		p, ok := products[id]
		if !ok {
			return nil, domain.Errorf(domain.ErrNotFound, "product %s not found", id)
		}
		if !p.InStock {
			return nil, domain.Errorf(domain.ErrInvalidInput, "%s is out of stock", p.Name)
		}
		qty := quantities[id]
		subtotal = subtotal.Add(decimal.NewFromFloat(p.OfferPrice).Mul(decimal.NewFromInt(int64(qty))))
		items = append(items, domain.OrderItem{ProductID: id, Quantity: qty})
	}

	return &pricedOrder{
		order: &domain.Order{
			UserID:      userID,
			Items:       items,
			Amount:      u.totalWithTax(subtotal).InexactFloat64(),
			AddressID:   req.Address,
			Status:      domain.OrderStatusPlaced,
			PaymentType: paymentType,
			IsPaid:      false,
		},
		products: products,
	}, nil
}

// totalWithTax adds tax rounded down to whole currency units.
func (u *OrderUsecase) totalWithTax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Add(subtotal.Mul(u.taxRate).Floor())
}

// unitAmountWithTax is the taxed unit price in minor units, rounded down.
func (u *OrderUsecase) unitAmountWithTax(offerPrice float64) int64 {
	price := decimal.NewFromFloat(offerPrice)
	return price.Add(price.Mul(u.taxRate)).Shift(2).Floor().IntPart()
}

// populate attaches products and delivery addresses for display.
func (u *OrderUsecase) populate(ctx context.Context, orders []domain.Order) ([]domain.Order, error) {
	seen := make(map[string]bool)
	var ids []string
	for _, o := range orders {
		for _, item := range o.Items {
			if !seen[item.ProductID] {
				seen[item.ProductID] = true
				ids = append(ids, item.ProductID)
			}
		}
	}

	products, err := u.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*domain.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	for i := range orders {
		for j := range orders[i].Items {
			orders[i].Items[j].Product = byID[orders[i].Items[j].ProductID]
		}
		addr, err := u.addressRepo.GetByID(ctx, orders[i].AddressID, orders[i].UserID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, err
		}
		orders[i].Address = addr
	}
	return orders, nil
}
