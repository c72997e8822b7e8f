package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/tailorhub/internal/client/models"
)

func (a *App) printCart(c models.Cart) {
	if len(c.Items) == 0 {
		printlnFn("Your cart is empty.")
		return
	}
	rows := make([][]string, 0, len(c.Items))
	for _, it := range c.Items {
		rows = append(rows, []string{it.FabricID, it.Fabric.Name, strconv.Itoa(it.Quantity),
			a.amount(it.PriceAtAdd), a.amount(it.Subtotal)})
	}
	table([]string{"FABRIC", "NAME", "QTY", "PRICE", "SUBTOTAL"}, rows)
	printlnFn(fmt.Sprintf("%d items, total %s", c.TotalItems, a.amount(c.TotalAmount)))
}

// printLine reports how much of fabricID the cart now holds.
func printLine(c models.Cart, fabricID string) {
	if it, ok := c.Find(strings.TrimSpace(fabricID)); ok {
		printlnFn(fmt.Sprintf("%s: %d in cart", orDash(it.Fabric.Name), it.Quantity))
	}
}

func (a *App) CartCmd(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return errUsage
	}
	if err := a.svc.Cart.Load(ctx); err != nil {
		return err
	}
	a.printCart(a.svc.Cart.State().Cart)
	return nil
}

func (a *App) Add(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errUsage
	}
	qty := 1
	if len(args) == 2 {
		n, err := parseIntArg("quantity", args[1])
		if err != nil {
			return err
		}
		qty = n
	}
	if err := a.svc.Cart.AddItem(ctx, args[0], qty); err != nil {
		return err
	}
	cart := a.svc.Cart.State().Cart
	printLine(cart, args[0])
	a.printCart(cart)
	return nil
}

func (a *App) Qty(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	n, err := parseIntArg("quantity", args[1])
	if err != nil {
		return err
	}
	if err := a.svc.Cart.SetQuantity(ctx, args[0], n); err != nil {
		return err
	}
	cart := a.svc.Cart.State().Cart
	printLine(cart, args[0])
	a.printCart(cart)
	return nil
}

func (a *App) Remove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	if err := a.svc.Cart.RemoveItem(ctx, args[0]); err != nil {
		return err
	}
	a.printCart(a.svc.Cart.State().Cart)
	return nil
}

func (a *App) ClearCart(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return errUsage
	}
	if err := a.svc.Cart.Clear(ctx); err != nil {
		return err
	}
	printlnFn("Cart cleared.")
	return nil
}

// Checkout offers the saved default address, otherwise prompts for one, and
// places the order.
func (a *App) Checkout(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return errUsage
	}
	if err := a.svc.Cart.Load(ctx); err != nil {
		return err
	}
	cart := a.svc.Cart.State().Cart
	if len(cart.Items) == 0 {
		printlnFn("Your cart is empty.")
		return nil
	}
	a.printCart(cart)

	var req models.CheckoutRequest
	addr, found, err := a.svc.Profile.DefaultAddress(ctx)
	if err != nil {
		a.log.Warn(ctx, "default address lookup failed", "error", err)
	}
	use := false
	if found {
		use, err = a.confirm(fmt.Sprintf("Ship to %s, %s, %s %s?", addr.Name, addr.Address, addr.City, addr.ZipCode), true)
		if err != nil {
			return err
		}
	}
	if use {
		req.ShippingAddress = addr
	} else if req.ShippingAddress, err = a.promptAddress(); err != nil {
		return err
	}

	pm, err := getSimpleText(a.reader, "Payment method (cod, online)", a.out)
	if err != nil {
		return err
	}
	req.PaymentMethod = models.PaymentMethod(pm)
	if pm == "" {
		req.PaymentMethod = models.PaymentCashOnDelivery
	}
	if req.Notes, err = getSimpleText(a.reader, "Notes (optional)", a.out); err != nil {
		return err
	}

	order, err := a.svc.Orders.Checkout(ctx, req)
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Order %s placed: %s, %s", order.ID, a.amount(order.TotalAmount), order.Status))
	return nil
}

// promptAddress reads every address field in order.
func (a *App) promptAddress() (models.Address, error) {
	var addr models.Address
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Recipient name", &addr.Name},
		{"Street address", &addr.Address},
		{"City", &addr.City},
		{"State", &addr.State},
		{"ZIP code", &addr.ZipCode},
		{"Phone", &addr.Phone},
	}
	for _, f := range fields {
		v, err := getSimpleText(a.reader, f.prompt, a.out)
		if err != nil {
			return models.Address{}, err
		}
		*f.dst = v
	}
	return addr, nil
}
