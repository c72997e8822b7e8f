package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/tailorhub/internal/client/models"
)

const lowStockThreshold = 5

// Dashboard prints a role-specific overview.
func (a *App) Dashboard(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return errUsage
	}
	u, ok := a.currentUser()
	if !ok {
		return fmt.Errorf("not logged in")
	}

	printlnFn(fmt.Sprintf("Dashboard for %s (%s)", u.Name, u.Role))
	switch u.Role {
	case models.RoleCustomer:
		return a.customerDashboard(ctx)
	case models.RoleTailor:
		return a.tailorDashboard(ctx)
	case models.RoleShop:
		return a.shopDashboard(ctx)
	default:
		return fmt.Errorf("no dashboard for role %s", u.Role)
	}
}

func (a *App) customerDashboard(ctx context.Context) error {
	if err := a.svc.Cart.Load(ctx); err != nil {
		return err
	}
	c := a.svc.Cart.State().Cart
	printlnFn(fmt.Sprintf("cart: %d items, %s", c.TotalItems, a.amount(c.TotalAmount)))

	orders, err := a.svc.Orders.List(ctx)
	if err != nil {
		return err
	}
	var spent float64
	for _, o := range orders {
		spent += o.TotalAmount
	}
	printlnFn(fmt.Sprintf("orders: %d, spent %s", len(orders), a.amount(spent)))
	return nil
}

func (a *App) tailorDashboard(ctx context.Context) error {
	list, err := a.svc.Inquiries.List(ctx)
	if err != nil {
		return err
	}
	counts := map[models.InquiryStatus]int{}
	for _, q := range list {
		counts[q.Status]++
	}
	printlnFn(fmt.Sprintf("inquiries: %d open, %d read, %d closed",
		counts[models.InquiryOpen], counts[models.InquiryRead], counts[models.InquiryClosed]))
	return nil
}

func (a *App) shopDashboard(ctx context.Context) error {
	shop, err := a.svc.Shops.Mine(ctx)
	if err != nil {
		return err
	}
	fabrics, err := a.svc.Shops.Fabrics(ctx, shop.ID)
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("shop: %s, %s, %s", shop.Name, orDash(shop.City), stars(shop.Rating)))
	printlnFn(fmt.Sprintf("fabrics listed: %d", len(fabrics)))

	var low []models.Fabric
	for _, f := range fabrics {
		if f.Stock < lowStockThreshold {
			low = append(low, f)
		}
	}
	if len(low) > 0 {
		printlnFn(fmt.Sprintf("low stock (under %d):", lowStockThreshold))
		a.printFabrics(low, 0)
	}
	return nil
}
