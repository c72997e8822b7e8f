package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/tailorhub/internal/client/client"
	"github.com/dmitrijs2005/tailorhub/internal/client/models"
	"github.com/dmitrijs2005/tailorhub/internal/common"
	"github.com/dmitrijs2005/tailorhub/internal/logging"
)

// OrderService places orders from the current cart and reads order history.
type OrderService struct {
	api  client.OrderAPI
	cart *CartService
	log  logging.Logger
	keys retryKeys
}

func NewOrderService(api client.OrderAPI, cart *CartService, log logging.Logger) *OrderService {
	if log == nil {
		log = logging.Discard()
	}
	return &OrderService{api: api, cart: cart, log: log.With("component", "orders")}
}

// Checkout turns the current cart into an order. After the order is created
// the cart snapshot is reloaded from the server; a failed reload does not
// fail the checkout. Re-issuing a checkout whose outcome was unknown sends
// the same Idempotency-Key.
func (s *OrderService) Checkout(ctx context.Context, req models.CheckoutRequest) (models.Order, error) {
	req.ShippingAddress = trimAddress(req.ShippingAddress)
	req.Notes = sanitizeText(req.Notes)
	if err := validateAddress(req.ShippingAddress); err != nil {
		return models.Order{}, err
	}
	if !req.PaymentMethod.Valid() {
		return models.Order{}, common.NewValidationError("paymentMethod", "must be cod or online")
	}
	if s.cart != nil && len(s.cart.State().Cart.Items) == 0 {
		return models.Order{}, common.NewValidationError("cart", "is empty")
	}

	order, err := s.api.CreateOrder(s.keys.attach(ctx, fmt.Sprintf("%+v", req)), req)
	s.keys.settle(err)
	if err != nil {
		s.log.Warn(ctx, "checkout failed", "error", err)
		return models.Order{}, fmt.Errorf("checkout: %w", err)
	}
	s.log.Info(ctx, "order placed", "order_id", order.ID, "amount", order.TotalAmount,
		"payment", string(order.PaymentMethod))

	if s.cart != nil {
		if err := s.cart.Load(ctx); err != nil {
			s.log.Warn(ctx, "cart reload after checkout failed", "error", err)
		}
	}
	return order, nil
}

func (s *OrderService) List(ctx context.Context) ([]models.Order, error) {
	orders, err := s.api.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (s *OrderService) Get(ctx context.Context, id string) (models.Order, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return models.Order{}, common.NewValidationError("id", "is required")
	}
	o, err := s.api.GetOrder(ctx, id)
	if err != nil {
		return models.Order{}, fmt.Errorf("get order %s: %w", id, err)
	}
	return o, nil
}

func trimAddress(a models.Address) models.Address {
	a.Name = strings.TrimSpace(a.Name)
	a.Address = strings.TrimSpace(a.Address)
	a.City = strings.TrimSpace(a.City)
	a.State = strings.TrimSpace(a.State)
	a.ZipCode = strings.TrimSpace(a.ZipCode)
	a.Phone = strings.TrimSpace(a.Phone)
	return a
}

func validateAddress(a models.Address) error {
	required := []struct{ field, value string }{
		{"name", a.Name},
		{"address", a.Address},
		{"city", a.City},
		{"state", a.State},
		{"zipCode", a.ZipCode},
		{"phone", a.Phone},
	}
	for _, r := range required {
		if r.value == "" {
			return common.NewValidationError(r.field, "is required")
		}
	}
	return nil
}
