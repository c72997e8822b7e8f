package cli

import "github.com/dmitrijs2005/tailorhub/internal/client/models"

var customerOnly = []models.Role{models.RoleCustomer}

func (a *App) commandTable() map[string]command {
	return map[string]command{
		"register": {usage: "register", help: "create an account", guest: true, run: a.Register},
		"login":    {usage: "login", help: "sign in", guest: true, run: a.Login},
		"logout":   {usage: "logout", help: "sign out", auth: true, run: a.Logout},
		"whoami":   {usage: "whoami", help: "show the current account", run: a.WhoAmI},

		"fabrics": {usage: "fabrics [reload] [category= price= color= material= rating= q= sort=]", help: "browse fabrics", run: a.Fabrics},
		"fabric":  {usage: "fabric <id>", help: "fabric details and reviews", run: a.Fabric},
		"review":  {usage: "review <fabricId>", help: "rate a fabric", auth: true, roles: customerOnly, run: a.Review},
		"shops":   {usage: "shops [reload] [city= rating= q= sort=]", help: "browse shops", run: a.ShopsCmd},
		"shop":    {usage: "shop <id>", help: "shop details and fabrics", run: a.Shop},
		"tailors": {usage: "tailors [reload] [spec= city= rating= exp= price= sort=]", help: "browse tailors", run: a.TailorsCmd},
		"tailor":  {usage: "tailor <id>", help: "tailor profile", run: a.TailorCmd},

		"inquire":   {usage: "inquire <tailorId>", help: "send an inquiry to a tailor", auth: true, roles: customerOnly, run: a.Inquire},
		"inquiries": {usage: "inquiries [read|close <id>]", help: "list or update inquiries", auth: true, run: a.InquiriesCmd},

		"cart":     {usage: "cart", help: "show the cart", auth: true, roles: customerOnly, run: a.CartCmd},
		"add":      {usage: "add <fabricId> [qty]", help: "add a fabric to the cart", auth: true, roles: customerOnly, run: a.Add},
		"qty":      {usage: "qty <fabricId> <n>", help: "change a quantity (0 removes)", auth: true, roles: customerOnly, run: a.Qty},
		"rm":       {usage: "rm <fabricId>", help: "remove a fabric from the cart", auth: true, roles: customerOnly, run: a.Remove},
		"clear":    {usage: "clear", help: "empty the cart", auth: true, roles: customerOnly, run: a.ClearCart},
		"checkout": {usage: "checkout", help: "place an order for the cart", auth: true, roles: customerOnly, run: a.Checkout},

		"orders":     {usage: "orders", help: "order history", auth: true, run: a.OrdersCmd},
		"order":      {usage: "order <id>", help: "order details", auth: true, run: a.Order},
		"profile":    {usage: "profile [edit]", help: "show or edit your profile", auth: true, run: a.ProfileCmd},
		"addresses":  {usage: "addresses [rm|default <id>]", help: "saved addresses", auth: true, run: a.AddressesCmd},
		"addaddress": {usage: "addaddress", help: "save a new address", auth: true, run: a.AddAddress},
		"upload":     {usage: "upload <file...>", help: "upload images", auth: true, run: a.Upload},
		"dashboard":  {usage: "dashboard", help: "overview for your role", auth: true, run: a.Dashboard},
	}
}
