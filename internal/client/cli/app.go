package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dmitrijs2005/tailorhub/internal/client/client"
	"github.com/dmitrijs2005/tailorhub/internal/client/models"
	"github.com/dmitrijs2005/tailorhub/internal/client/repositories/credentials"
	"github.com/dmitrijs2005/tailorhub/internal/client/services"
	"github.com/dmitrijs2005/tailorhub/internal/logging"
)

// Services is everything the terminal client talks to.
type Services struct {
	Session   *services.SessionService
	Cart      *services.CartService
	Fabrics   *services.FabricCatalog
	Fabric    *services.FabricService
	Tailors   *services.TailorCatalog
	Tailor    *services.TailorService
	Shops     *services.ShopService
	Inquiries *services.InquiryService
	Orders    *services.OrderService
	Profile   *services.ProfileService
	Uploads   *services.UploadService
}

// NewServices builds every feature service on top of api. The returned
// Session is the token source api should use.
func NewServices(api client.Client, creds credentials.Repository, log logging.Logger) Services {
	cart := services.NewCartService(api, log)
	return Services{
		Session:   services.NewSessionService(api, creds, log),
		Cart:      cart,
		Fabrics:   services.NewFabricCatalog(api, log),
		Fabric:    services.NewFabricService(api, log),
		Tailors:   services.NewTailorCatalog(api, log),
		Tailor:    services.NewTailorService(api),
		Shops:     services.NewShopService(api, services.NewShopCatalog(api, log)),
		Inquiries: services.NewInquiryService(api, log),
		Orders:    services.NewOrderService(api, cart, log),
		Profile:   services.NewProfileService(api, log),
		Uploads:   services.NewUploadService(api),
	}
}

type App struct {
	svc      Services
	log      logging.Logger
	reader   *bufio.Reader
	out      io.Writer
	printer  *message.Printer
	commands map[string]command
}

// NewApp builds the client. Prompts read from in and write to out; command
// output goes through printlnFn.
func NewApp(svc Services, log logging.Logger, lang language.Tag, in io.Reader, out io.Writer) *App {
	if log == nil {
		log = logging.Discard()
	}
	a := &App{
		svc:     svc,
		log:     log.With("component", "cli"),
		reader:  bufio.NewReader(in),
		out:     out,
		printer: message.NewPrinter(lang),
	}
	a.commands = a.commandTable()
	return a
}

// Run restores the previous session and blocks in the REPL until the user
// exits or input ends.
func (a *App) Run(ctx context.Context) error {
	if err := a.svc.Session.Bootstrap(ctx); err != nil {
		return fmt.Errorf("restore session: %w", err)
	}

	printlnFn("Welcome to tailorhub (type 'help' for commands)")
	if st := a.svc.Session.State(); st.IsAuthenticated {
		printlnFn(fmt.Sprintf("Signed in as %s (%s)", st.User.Name, st.User.Role))
	} else if st.Error != "" {
		printlnFn(st.Error)
	}

	runREPL(ctx, a, a.status, a.reader)
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.svc.Session.State().IsAuthenticated
}

// currentUser returns the logged-in user, if any.
func (a *App) currentUser() (models.User, bool) {
	st := a.svc.Session.State()
	if !st.IsAuthenticated || st.User == nil {
		return models.User{}, false
	}
	return *st.User, true
}

func (a *App) status() string {
	u, ok := a.currentUser()
	if !ok {
		return "guest"
	}
	s := fmt.Sprintf("%s, %s", u.Name, u.Role)
	if n := a.svc.Cart.State().Cart.TotalItems; n > 0 && u.Role == models.RoleCustomer {
		s += fmt.Sprintf(", cart %d", n)
	}
	return s
}
