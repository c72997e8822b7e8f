package devserver

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/tailorhub/internal/client/models"
)

var testSecret = []byte("test-secret")

type testServer struct {
	t      *testing.T
	router *gin.Engine
	store  *Store
	reg    *prometheus.Registry
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := NewStore(bcrypt.MinCost)
	require.NoError(t, store.Seed())
	reg := prometheus.NewRegistry()
	r := NewRouter(store, Options{SecretKey: testSecret, TokenTTL: time.Hour, Registry: reg})
	return &testServer{t: t, router: r, store: store, reg: reg}
}

func (s *testServer) do(method, path, token string, body any, headers ...string) *httptest.ResponseRecorder {
	s.t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(s.t, err)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, "/api/v1"+path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) login(email string, role models.Role) string {
	s.t.Helper()
	w := s.do(http.MethodPost, "/auth/login", "", models.LoginRequest{Email: email, Password: DemoPassword, Role: role})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	var out models.AuthResponse
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &out))
	require.NotEmpty(s.t, out.Token)
	return out.Token
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func message(t *testing.T, w *httptest.ResponseRecorder) string {
	return decode[struct {
		Message string `json:"message"`
	}](t, w).Message
}

func TestAuthRoutes(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/auth/login", "", models.LoginRequest{Email: DemoCustomerEmail, Password: "nope", Role: models.RoleCustomer})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", message(t, w))

	w = s.do(http.MethodPost, "/auth/login", "", models.LoginRequest{Email: DemoCustomerEmail, Password: DemoPassword, Role: models.RoleShop})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodPost, "/auth/register", "", models.RegisterRequest{
		Name: "Dup", Email: strings.ToUpper(DemoCustomerEmail), Password: "secret1", Role: models.RoleCustomer})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "User already exists", message(t, w))

	w = s.do(http.MethodPost, "/auth/register", "", models.RegisterRequest{
		Name: "Kiran", Email: "kiran@example.com", Password: "secret1", Role: models.RoleTailor, City: "Pune"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	reg := decode[models.AuthResponse](t, w)
	assert.Equal(t, models.RoleTailor, reg.User.Role)
	assert.Len(t, s.store.Tailors(), 4)

	w = s.do(http.MethodGet, "/auth/me", reg.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	me := decode[struct {
		User models.User `json:"user"`
	}](t, w)
	assert.Equal(t, reg.User, me.User)

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/auth/me", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/auth/me", "garbage", nil).Code)
}

func TestCartRoutes_Scenario(t *testing.T) {
	s := newTestServer(t)
	tok := s.login(DemoCustomerEmail, models.RoleCustomer)

	w := s.do(http.MethodPost, "/cart/items", tok, models.AddCartItemRequest{FabricID: "fab-2", Quantity: 2})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	cart := decode[models.Cart](t, w)
	assert.Equal(t, 2, cart.TotalItems)
	assert.Equal(t, 1000.0, cart.TotalAmount)

	w = s.do(http.MethodPut, "/cart/items/fab-2", tok, models.UpdateCartItemRequest{Quantity: 5})
	cart = decode[models.Cart](t, w)
	assert.Equal(t, 2500.0, cart.TotalAmount)
	assert.Equal(t, 2500.0, cart.Items[0].Subtotal)

	w = s.do(http.MethodDelete, "/cart/items/fab-2", tok, nil)
	cart = decode[models.Cart](t, w)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.TotalAmount)

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, "/cart/items/fab-2", tok, nil).Code)

	w = s.do(http.MethodPost, "/cart/items", tok, models.AddCartItemRequest{FabricID: "fab-3", Quantity: 4})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Only 3 in stock", message(t, w))

	w = s.do(http.MethodDelete, "/cart", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"items":[],"totalItems":0,"totalAmount":0}`, w.Body.String())
}

func TestCartRoutes_IdempotencyReplay(t *testing.T) {
	s := newTestServer(t)
	tok := s.login(DemoCustomerEmail, models.RoleCustomer)
	add := models.AddCartItemRequest{FabricID: "fab-1", Quantity: 1}

	first := s.do(http.MethodPost, "/cart/items", tok, add, "Idempotency-Key", "k1")
	second := s.do(http.MethodPost, "/cart/items", tok, add, "Idempotency-Key", "k1")
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get("Idempotent-Replayed"))
	assert.Equal(t, 1, s.store.Cart("user-asha").TotalItems)

	s.do(http.MethodPost, "/cart/items", tok, add, "Idempotency-Key", "k2")
	assert.Equal(t, 2, s.store.Cart("user-asha").TotalItems)
}

func TestRoleGates(t *testing.T) {
	s := newTestServer(t)
	tailorTok := s.login(DemoTailorEmail, models.RoleTailor)

	w := s.do(http.MethodGet, "/cart", tailorTok, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Only customer accounts can do this", message(t, w))

	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, "/shops/me", tailorTok, nil).Code)

	shopTok := s.login(DemoShopEmail, models.RoleShop)
	w = s.do(http.MethodGet, "/shops/me", shopTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "shop-1", decode[struct {
		Shop models.Shop `json:"shop"`
	}](t, w).Shop.ID)
}

func TestCatalogRoutes(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/fabrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	fabrics := decode[struct {
		Fabrics []models.Fabric `json:"fabrics"`
	}](t, w).Fabrics
	assert.Len(t, fabrics, 5)

	w = s.do(http.MethodGet, "/shops/shop-2/fabrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[struct {
		Fabrics []models.Fabric `json:"fabrics"`
	}](t, w).Fabrics, 2)

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/fabrics/none", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/shops/none/fabrics", "", nil).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/tailors/tailor-1", "", nil).Code)

	tok := s.login(DemoCustomerEmail, models.RoleCustomer)
	w = s.do(http.MethodPost, "/fabrics/fab-5/reviews", tok, models.Review{Rating: 2, Comment: "thin"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	f, err := s.store.Fabric("fab-5")
	require.NoError(t, err)
	assert.Equal(t, 1, f.NumReviews)
	assert.Equal(t, 2.0, f.Rating)
	assert.Equal(t, "Asha Rao", f.Reviews[0].UserName)

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, "/fabrics/fab-5/reviews", tok, models.Review{Rating: 6}).Code)
}

func TestOrderRoutes(t *testing.T) {
	s := newTestServer(t)
	tok := s.login(DemoCustomerEmail, models.RoleCustomer)
	req := models.CheckoutRequest{
		ShippingAddress: models.Address{Name: "Asha", Address: "1 MG Road", City: "Bengaluru",
			State: "KA", ZipCode: "560001", Phone: "9999999999"},
		PaymentMethod: models.PaymentCashOnDelivery,
	}

	w := s.do(http.MethodPost, "/orders", tok, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Cart is empty", message(t, w))

	s.do(http.MethodPost, "/cart/items", tok, models.AddCartItemRequest{FabricID: "fab-3", Quantity: 3})
	w = s.do(http.MethodPost, "/orders", tok, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	o := decode[struct {
		Order models.Order `json:"order"`
	}](t, w).Order
	assert.Equal(t, 9000.0, o.TotalAmount)
	assert.Equal(t, "pending", o.Status)

	f, _ := s.store.Fabric("fab-3")
	assert.Zero(t, f.Stock)
	assert.Empty(t, s.store.Cart("user-asha").Items)

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/orders/"+o.ID, tok, nil).Code)
	other := s.login(DemoTailorEmail, models.RoleTailor)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/orders/"+o.ID, other, nil).Code)
}

func TestInquiryRoutes(t *testing.T) {
	s := newTestServer(t)
	cust := s.login(DemoCustomerEmail, models.RoleCustomer)
	tail := s.login(DemoTailorEmail, models.RoleTailor)

	w := s.do(http.MethodPost, "/tailors/tailor-1/inquiries", cust, models.InquiryRequest{Subject: "Sherwani", Message: "For December"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	q := decode[struct {
		Inquiry models.Inquiry `json:"inquiry"`
	}](t, w).Inquiry
	assert.Equal(t, models.InquiryOpen, q.Status)

	w = s.do(http.MethodGet, "/inquiries", tail, nil)
	assert.Len(t, decode[struct {
		Inquiries []models.Inquiry `json:"inquiries"`
	}](t, w).Inquiries, 1)

	assert.Equal(t, http.StatusForbidden, s.do(http.MethodPatch, "/inquiries/"+q.ID+"/read", cust, nil).Code)

	w = s.do(http.MethodPatch, "/inquiries/"+q.ID+"/close", tail, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do(http.MethodPatch, "/inquiries/"+q.ID+"/read", tail, nil)
	assert.Equal(t, models.InquiryClosed, decode[struct {
		Inquiry models.Inquiry `json:"inquiry"`
	}](t, w).Inquiry.Status)
}

func TestAddressRoutes(t *testing.T) {
	s := newTestServer(t)
	tok := s.login(DemoCustomerEmail, models.RoleCustomer)
	addr := models.Address{Name: "Asha", Address: "1 MG Road", City: "Bengaluru", State: "KA", ZipCode: "560001", Phone: "99"}

	type one struct {
		Address models.Address `json:"address"`
	}
	first := decode[one](t, s.do(http.MethodPost, "/users/addresses", tok, addr)).Address
	assert.True(t, first.IsDefault)

	addr.Address = "2 Brigade Road"
	addr.IsDefault = true
	second := decode[one](t, s.do(http.MethodPost, "/users/addresses", tok, addr)).Address
	assert.True(t, second.IsDefault)

	list := s.store.Addresses("user-asha")
	require.Len(t, list, 2)
	assert.False(t, list[0].IsDefault)

	assert.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, "/users/addresses/"+second.ID, tok, nil).Code)
	list = s.store.Addresses("user-asha")
	require.Len(t, list, 1)
	assert.True(t, list[0].IsDefault)

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, "/users/addresses", tok, models.Address{Name: "x"}).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, "/users/addresses/none", tok, nil).Code)
}

func multipartBody(t *testing.T, field string, names ...string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, n := range names {
		fw, err := mw.CreateFormFile(field, n)
		require.NoError(t, err)
		_, err = fw.Write([]byte("img"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUploadRoutes(t *testing.T) {
	s := newTestServer(t)
	tok := s.login(DemoShopEmail, models.RoleShop)

	upload := func(path, field string, names ...string) *httptest.ResponseRecorder {
		body, ct := multipartBody(t, field, names...)
		req := httptest.NewRequest(http.MethodPost, "/api/v1"+path, body)
		req.Header.Set("Content-Type", ct)
		req.Header.Set("Authorization", "Bearer "+tok)
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		return w
	}

	w := upload("/upload/single", "image", "a.png")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, strings.HasSuffix(decode[models.UploadResult](t, w).URL, ".png"))

	w = upload("/upload/multiple", "images", "a.jpg", "b.webp")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[models.MultiUploadResult](t, w).URLs, 2)

	assert.Equal(t, http.StatusBadRequest, upload("/upload/single", "image", "notes.txt").Code)
	assert.Equal(t, http.StatusBadRequest, upload("/upload/single", "file", "a.png").Code)
}

func TestMetrics(t *testing.T) {
	s := newTestServer(t)
	s.do(http.MethodGet, "/fabrics", "", nil)
	s.do(http.MethodGet, "/fabrics/none", "", nil)

	assert.Equal(t, 2, testutil.CollectAndCount(s.reg, "tailorhub_devserver_http_request_duration_seconds"))
	assert.Equal(t, 2, testutil.CollectAndCount(s.reg, "tailorhub_devserver_http_requests_total"))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Contains(t, w.Body.String(), `tailorhub_devserver_http_requests_total{method="GET",route="/api/v1/fabrics/:id",status="404"} 1`)
}
