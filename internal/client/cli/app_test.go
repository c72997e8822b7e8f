package cli

import (
	"context"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dmitrijs2005/tailorhub/internal/client/client"
	"github.com/dmitrijs2005/tailorhub/internal/client/repositories/credentials"
	"github.com/dmitrijs2005/tailorhub/internal/devserver"
)

// harness runs Apps against an in-memory backend and a shared local store.
type harness struct {
	t     *testing.T
	url   string
	creds credentials.Repository
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := devserver.NewStore(bcrypt.MinCost)
	require.NoError(t, store.Seed())
	srv := httptest.NewServer(devserver.NewRouter(store, devserver.Options{SecretKey: []byte("k"), TokenTTL: time.Hour}))
	t.Cleanup(srv.Close)

	db, err := client.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return &harness{t: t, url: srv.URL + "/api/v1", creds: credentials.NewSQLiteRepository(db)}
}

// run feeds lines to a fresh App and returns everything it printed.
func (h *harness) run(password string, lines ...string) string {
	h.t.Helper()

	var out []string
	origPrint, origPw := printlnFn, readPassword
	printlnFn = func(a ...any) (int, error) {
		out = append(out, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	readPassword = func(int) ([]byte, error) { return []byte(password), nil }
	defer func() { printlnFn, readPassword = origPrint, origPw }()

	api, err := client.NewHTTPClient(client.Options{BaseURL: h.url, Timeout: 5 * time.Second})
	require.NoError(h.t, err)
	svc := NewServices(api, h.creds, nil)
	api.SetTokenSource(svc.Session)

	app := NewApp(svc, nil, language.English, strings.NewReader(strings.Join(lines, "\n")+"\n"), io.Discard)
	require.NoError(h.t, app.Run(context.Background()))
	return strings.Join(out, "\n")
}

func TestApp_CustomerJourney(t *testing.T) {
	h := newHarness(t)

	out := h.run(devserver.DemoPassword,
		"login", devserver.DemoCustomerEmail, "customer",
		"fabrics category=cotton sort=price_asc",
		"add fab-2 2",
		"qty fab-2 5",
		"addaddress", "Asha Rao", "1 MG Road", "Bengaluru", "KA", "560001", "9999999999", "y",
		"checkout", "y", "cod", "",
		"orders",
		"dashboard",
		"exit",
	)

	assert.Contains(t, out, "Signed in as Asha Rao (customer)")
	assert.Contains(t, out, "2 of 5 fabrics")
	assert.Less(t, strings.Index(out, "Khadi Plain"), strings.Index(out, "Chanderi Cotton"))
	assert.Contains(t, out, "Chanderi Cotton: 2 in cart")
	assert.Contains(t, out, "Chanderi Cotton: 5 in cart")
	assert.Contains(t, out, "2 items, total ₹1,000.00")
	assert.Contains(t, out, "5 items, total ₹2,500.00")
	assert.Contains(t, out, "placed: ₹2,500.00, pending")
	assert.Contains(t, out, "cart: 0 items, ₹0.00")
	assert.Contains(t, out, "orders: 1, spent ₹2,500.00")
	assert.NotContains(t, out, "Error:")
}

func TestApp_SessionSurvivesRestart(t *testing.T) {
	h := newHarness(t)

	h.run(devserver.DemoPassword, "login", devserver.DemoCustomerEmail, "customer", "exit")

	out := h.run("", "whoami", "logout", "exit")
	assert.Contains(t, out, "Signed in as Asha Rao (customer)")
	assert.Contains(t, out, "Asha Rao <"+devserver.DemoCustomerEmail+">")
	assert.Contains(t, out, "Signed out.")

	out = h.run("", "cart", "exit")
	assert.Contains(t, out, "Please log in first.")
}

func TestApp_WrongPassword(t *testing.T) {
	h := newHarness(t)

	out := h.run("not-it", "login", devserver.DemoCustomerEmail, "customer", "exit")

	assert.Contains(t, out, "Error: "+client.MsgInvalidCredentials)
	assert.Contains(t, out, "tailorhub (guest)>")
	assert.NotContains(t, out, "Signed in as")
}

func TestApp_RegisterDuplicate(t *testing.T) {
	h := newHarness(t)

	out := h.run("secret1", "register", "Someone", devserver.DemoCustomerEmail, "customer", "", "", "exit")

	assert.Contains(t, out, "Error: "+client.MsgDuplicateEmail)
}

func TestApp_TailorDashboard(t *testing.T) {
	h := newHarness(t)
	h.run(devserver.DemoPassword, "login", devserver.DemoCustomerEmail, "customer",
		"inquire tailor-1", "Sherwani", "Need one by December", "", "logout", "exit")

	out := h.run(devserver.DemoPassword, "login", devserver.DemoTailorEmail, "tailor", "cart", "dashboard", "exit")

	assert.Contains(t, out, "'cart' is not available for tailor accounts.")
	assert.Contains(t, out, "inquiries: 1 open, 0 read, 0 closed")
}

func TestApp_ShopDashboard(t *testing.T) {
	h := newHarness(t)

	out := h.run(devserver.DemoPassword, "login", devserver.DemoShopEmail, "shop", "dashboard", "exit")

	assert.Contains(t, out, "shop: Meera Textiles, Surat")
	assert.Contains(t, out, "fabrics listed: 2")
	assert.Contains(t, out, "low stock (under 5):")
	assert.Contains(t, out, "Georgette Print")
}

func TestApp_BrowseErrors(t *testing.T) {
	h := newHarness(t)

	out := h.run("", "fabrics price=abc", "fabrics colour=red", "fabrics sort=cheapest", "fabric nope", "fabric", "exit")

	assert.Contains(t, out, "Error: priceRange:")
	assert.Contains(t, out, `Error: unknown filter "colour"`)
	assert.Contains(t, out, "Error: sortBy:")
	assert.Contains(t, out, "Error: Fabric not found")
	assert.Contains(t, out, "Usage: fabric <id>")
}

func TestFormatAmount(t *testing.T) {
	p := message.NewPrinter(language.English)
	assert.Equal(t, "₹1,000.00", formatAmount(p, 1000))
	assert.Equal(t, "₹0.50", formatAmount(p, 0.5))
}
