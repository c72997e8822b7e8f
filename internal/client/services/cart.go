package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/tailorhub/internal/client/client"
	"github.com/dmitrijs2005/tailorhub/internal/client/models"
	"github.com/dmitrijs2005/tailorhub/internal/client/state"
	"github.com/dmitrijs2005/tailorhub/internal/common"
	"github.com/dmitrijs2005/tailorhub/internal/logging"
)

// CartService mirrors the server-owned cart.
//
// Every successful call replaces the whole local snapshot with the one the
// server returned; totals are never computed locally. A failed call only
// touches Loading and Error. Calls are serialized: a mutation waits until
// the previous round trip has finished, so the snapshot always reflects the
// last mutation issued.
type CartService struct {
	api client.CartAPI
	log logging.Logger

	mu    sync.Mutex
	keys  retryKeys
	state *state.Holder[models.CartState]
}

func NewCartService(api client.CartAPI, log logging.Logger) *CartService {
	if log == nil {
		log = logging.Discard()
	}
	return &CartService{
		api:   api,
		log:   log.With("component", "cart"),
		state: state.New(models.CartState{}),
	}
}

// State returns a copy of the current cart state.
func (c *CartService) State() models.CartState {
	st := c.state.Get()
	st.Cart = st.Cart.Clone()
	return st
}

func (c *CartService) Subscribe(fn func(models.CartState)) (unsubscribe func()) {
	return c.state.Subscribe(fn)
}

// Load fetches the current snapshot.
func (c *CartService) Load(ctx context.Context) error {
	return c.mutate(ctx, "load", "", c.api.GetCart)
}

// AddItem adds quantity units of fabricID. quantity must be at least 1.
func (c *CartService) AddItem(ctx context.Context, fabricID string, quantity int) error {
	fabricID = strings.TrimSpace(fabricID)
	if err := validateFabricID(fabricID); err != nil {
		return c.reject(err)
	}
	if quantity < 1 {
		return c.reject(common.NewValidationError("quantity", "must be at least 1"))
	}
	return c.mutate(ctx, "add item", fmt.Sprintf("add|%s|%d", fabricID, quantity), func(ctx context.Context) (models.Cart, error) {
		return c.api.AddCartItem(ctx, models.AddCartItemRequest{FabricID: fabricID, Quantity: quantity})
	})
}

// SetQuantity sets the line quantity. A quantity of zero or less removes
// the line, exactly like RemoveItem.
func (c *CartService) SetQuantity(ctx context.Context, fabricID string, quantity int) error {
	if quantity <= 0 {
		return c.RemoveItem(ctx, fabricID)
	}
	fabricID = strings.TrimSpace(fabricID)
	if err := validateFabricID(fabricID); err != nil {
		return c.reject(err)
	}
	return c.mutate(ctx, "set quantity", fmt.Sprintf("set|%s|%d", fabricID, quantity), func(ctx context.Context) (models.Cart, error) {
		return c.api.UpdateCartItem(ctx, fabricID, quantity)
	})
}

// RemoveItem deletes the line for fabricID. Removing a line the server does
// not know is a no-op.
func (c *CartService) RemoveItem(ctx context.Context, fabricID string) error {
	fabricID = strings.TrimSpace(fabricID)
	if err := validateFabricID(fabricID); err != nil {
		return c.reject(err)
	}
	return c.mutate(ctx, "remove item", "remove|"+fabricID, func(ctx context.Context) (models.Cart, error) {
		return c.api.RemoveCartItem(ctx, fabricID)
	})
}

// Clear empties the cart.
func (c *CartService) Clear(ctx context.Context) error {
	return c.mutate(ctx, "clear", "clear", c.api.ClearCart)
}

// Reset drops the local snapshot without contacting the server. It is used
// when the session ends.
func (c *CartService) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.keys.settle(nil)
	c.state.Set(models.CartState{})
}

// mutate runs call under the cart lock. A non-empty sig names the logical
// mutation for idempotency-key reuse; every settled call, loads included,
// drops pending keys.
func (c *CartService) mutate(ctx context.Context, op, sig string, call func(context.Context) (models.Cart, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Update(func(v *models.CartState) {
		v.Loading = true
		v.Error = ""
	})

	if sig != "" {
		ctx = c.keys.attach(ctx, sig)
	}
	cart, err := call(ctx)
	c.keys.settle(err)
	if err != nil {
		if op == "remove item" && errors.Is(err, client.ErrNotFound) {
			c.state.Update(func(v *models.CartState) { v.Loading = false })
			c.log.Debug(ctx, "cart line already absent")
			return nil
		}
		c.state.Update(func(v *models.CartState) {
			v.Loading = false
			v.Error = client.ErrorMessage(err)
		})
		c.log.Warn(ctx, "cart "+op+" failed", "error", err)
		return fmt.Errorf("cart %s: %w", op, err)
	}

	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	c.state.Update(func(v *models.CartState) {
		*v = models.CartState{Cart: cart}
	})
	c.log.Debug(ctx, "cart "+op, "items", cart.TotalItems, "amount", cart.TotalAmount)
	return nil
}

// reject records a validation failure without issuing a request.
func (c *CartService) reject(err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Update(func(v *models.CartState) { v.Error = client.ErrorMessage(err) })
	return err
}

func validateFabricID(id string) error {
	if id == "" {
		return common.NewValidationError("fabricId", "is required")
	}
	return nil
}
