package services

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/tailorhub/internal/client/client"
	"github.com/dmitrijs2005/tailorhub/internal/client/models"
	"github.com/dmitrijs2005/tailorhub/internal/common"
)

// fakeClient implements client.Client. Each hook is optional; an unset hook
// returns the zero value.
type fakeClient struct {
	mu    sync.Mutex
	calls map[string]int
	keys  []string

	LoginFn    func(models.LoginRequest) (models.AuthResponse, error)
	RegisterFn func(models.RegisterRequest) (models.AuthResponse, error)
	MeFn       func() (models.User, error)

	GetCartFn    func() (models.Cart, error)
	AddItemFn    func(models.AddCartItemRequest) (models.Cart, error)
	UpdateItemFn func(id string, qty int) (models.Cart, error)
	RemoveItemFn func(id string) (models.Cart, error)
	ClearCartFn  func() (models.Cart, error)

	Fabrics      []models.Fabric
	Tailors      []models.Tailor
	Shops        []models.Shop
	ListErr      error
	GetFabricFn  func(id string) (models.Fabric, error)
	AddReviewFn  func(id string, r models.Review) (models.Review, error)
	GetTailorFn  func(id string) (models.Tailor, error)
	GetShopFn    func(id string) (models.Shop, error)
	MyShopFn     func() (models.Shop, error)
	ShopFabricFn func(id string) ([]models.Fabric, error)

	SendInquiryFn func(tailorID string, req models.InquiryRequest) (models.Inquiry, error)
	InquiryFn     func(op, id string) (models.Inquiry, error)
	Inquiries     []models.Inquiry

	CreateOrderFn func(models.CheckoutRequest) (models.Order, error)
	Orders        []models.Order
	GetOrderFn    func(id string) (models.Order, error)

	Profile      models.User
	ProfileErr   error
	UpdatedWith  models.Profile
	Addresses    []models.Address
	AddressFn    func(op string, a models.Address) (models.Address, error)
	DeleteAddrFn func(id string) error

	Uploaded      []models.UploadedFile
	UploadErr     error
	UploadBaseURL string
}

var _ client.Client = (*fakeClient)(nil)

func newFakeClient() *fakeClient {
	return &fakeClient{calls: map[string]int{}}
}

func (f *fakeClient) hit(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
}

// hitKeyed records the call and the idempotency key it carried.
func (f *fakeClient) hitKeyed(ctx context.Context, name string) {
	f.hit(name)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys = append(f.keys, client.IdempotencyKey(ctx))
}

func (f *fakeClient) sentKeys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.keys...)
}

func (f *fakeClient) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeClient) Login(_ context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	f.hit("Login")
	if f.LoginFn == nil {
		return models.AuthResponse{}, nil
	}
	return f.LoginFn(req)
}

func (f *fakeClient) Register(_ context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	f.hit("Register")
	if f.RegisterFn == nil {
		return models.AuthResponse{}, nil
	}
	return f.RegisterFn(req)
}

func (f *fakeClient) Me(_ context.Context) (models.User, error) {
	f.hit("Me")
	if f.MeFn == nil {
		return models.User{}, nil
	}
	return f.MeFn()
}

func (f *fakeClient) GetCart(_ context.Context) (models.Cart, error) {
	f.hit("GetCart")
	if f.GetCartFn == nil {
		return models.Cart{}, nil
	}
	return f.GetCartFn()
}

func (f *fakeClient) AddCartItem(ctx context.Context, req models.AddCartItemRequest) (models.Cart, error) {
	f.hitKeyed(ctx, "AddCartItem")
	if f.AddItemFn == nil {
		return models.Cart{}, nil
	}
	return f.AddItemFn(req)
}

func (f *fakeClient) UpdateCartItem(ctx context.Context, id string, qty int) (models.Cart, error) {
	f.hitKeyed(ctx, "UpdateCartItem")
	if f.UpdateItemFn == nil {
		return models.Cart{}, nil
	}
	return f.UpdateItemFn(id, qty)
}

func (f *fakeClient) RemoveCartItem(ctx context.Context, id string) (models.Cart, error) {
	f.hitKeyed(ctx, "RemoveCartItem")
	if f.RemoveItemFn == nil {
		return models.Cart{}, nil
	}
	return f.RemoveItemFn(id)
}

func (f *fakeClient) ClearCart(ctx context.Context) (models.Cart, error) {
	f.hitKeyed(ctx, "ClearCart")
	if f.ClearCartFn == nil {
		return models.Cart{}, nil
	}
	return f.ClearCartFn()
}

func (f *fakeClient) ListFabrics(_ context.Context) ([]models.Fabric, error) {
	f.hit("ListFabrics")
	return f.Fabrics, f.ListErr
}

func (f *fakeClient) GetFabric(_ context.Context, id string) (models.Fabric, error) {
	f.hit("GetFabric")
	if f.GetFabricFn == nil {
		return models.Fabric{ID: id}, nil
	}
	return f.GetFabricFn(id)
}

func (f *fakeClient) AddReview(_ context.Context, id string, r models.Review) (models.Review, error) {
	f.hit("AddReview")
	if f.AddReviewFn == nil {
		return r, nil
	}
	return f.AddReviewFn(id, r)
}

func (f *fakeClient) ListShops(_ context.Context) ([]models.Shop, error) {
	f.hit("ListShops")
	return f.Shops, f.ListErr
}

func (f *fakeClient) GetShop(_ context.Context, id string) (models.Shop, error) {
	f.hit("GetShop")
	if f.GetShopFn == nil {
		return models.Shop{ID: id}, nil
	}
	return f.GetShopFn(id)
}

func (f *fakeClient) MyShop(_ context.Context) (models.Shop, error) {
	f.hit("MyShop")
	if f.MyShopFn == nil {
		return models.Shop{}, nil
	}
	return f.MyShopFn()
}

func (f *fakeClient) ListShopFabrics(_ context.Context, id string) ([]models.Fabric, error) {
	f.hit("ListShopFabrics")
	if f.ShopFabricFn == nil {
		return nil, nil
	}
	return f.ShopFabricFn(id)
}

func (f *fakeClient) ListTailors(_ context.Context) ([]models.Tailor, error) {
	f.hit("ListTailors")
	return f.Tailors, f.ListErr
}

func (f *fakeClient) GetTailor(_ context.Context, id string) (models.Tailor, error) {
	f.hit("GetTailor")
	if f.GetTailorFn == nil {
		return models.Tailor{ID: id}, nil
	}
	return f.GetTailorFn(id)
}

func (f *fakeClient) SendInquiry(_ context.Context, tailorID string, req models.InquiryRequest) (models.Inquiry, error) {
	f.hit("SendInquiry")
	if f.SendInquiryFn == nil {
		return models.Inquiry{TailorID: tailorID, Subject: req.Subject, Message: req.Message, Status: models.InquiryOpen}, nil
	}
	return f.SendInquiryFn(tailorID, req)
}

func (f *fakeClient) ListInquiries(_ context.Context) ([]models.Inquiry, error) {
	f.hit("ListInquiries")
	return f.Inquiries, f.ListErr
}

func (f *fakeClient) MarkInquiryRead(_ context.Context, id string) (models.Inquiry, error) {
	f.hit("MarkInquiryRead")
	if f.InquiryFn == nil {
		return models.Inquiry{ID: id, Status: models.InquiryRead}, nil
	}
	return f.InquiryFn("read", id)
}

func (f *fakeClient) CloseInquiry(_ context.Context, id string) (models.Inquiry, error) {
	f.hit("CloseInquiry")
	if f.InquiryFn == nil {
		return models.Inquiry{ID: id, Status: models.InquiryClosed}, nil
	}
	return f.InquiryFn("close", id)
}

func (f *fakeClient) CreateOrder(ctx context.Context, req models.CheckoutRequest) (models.Order, error) {
	f.hitKeyed(ctx, "CreateOrder")
	if f.CreateOrderFn == nil {
		return models.Order{ID: "o1", PaymentMethod: req.PaymentMethod, ShippingAddress: req.ShippingAddress}, nil
	}
	return f.CreateOrderFn(req)
}

func (f *fakeClient) ListOrders(_ context.Context) ([]models.Order, error) {
	f.hit("ListOrders")
	return f.Orders, f.ListErr
}

func (f *fakeClient) GetOrder(_ context.Context, id string) (models.Order, error) {
	f.hit("GetOrder")
	if f.GetOrderFn == nil {
		return models.Order{ID: id}, nil
	}
	return f.GetOrderFn(id)
}

func (f *fakeClient) GetProfile(_ context.Context) (models.User, error) {
	f.hit("GetProfile")
	return f.Profile, f.ProfileErr
}

func (f *fakeClient) UpdateProfile(_ context.Context, p models.Profile) (models.User, error) {
	f.hit("UpdateProfile")
	f.UpdatedWith = p
	u := f.Profile
	u.Name, u.City, u.Phone = p.Name, p.City, p.Phone
	return u, f.ProfileErr
}

func (f *fakeClient) ListAddresses(_ context.Context) ([]models.Address, error) {
	f.hit("ListAddresses")
	return f.Addresses, f.ListErr
}

func (f *fakeClient) AddAddress(_ context.Context, a models.Address) (models.Address, error) {
	f.hit("AddAddress")
	if f.AddressFn == nil {
		a.ID = "a-new"
		return a, nil
	}
	return f.AddressFn("add", a)
}

func (f *fakeClient) UpdateAddress(_ context.Context, a models.Address) (models.Address, error) {
	f.hit("UpdateAddress")
	if f.AddressFn == nil {
		return a, nil
	}
	return f.AddressFn("update", a)
}

func (f *fakeClient) DeleteAddress(_ context.Context, id string) error {
	f.hit("DeleteAddress")
	if f.DeleteAddrFn == nil {
		return nil
	}
	return f.DeleteAddrFn(id)
}

func (f *fakeClient) UploadSingle(_ context.Context, file models.UploadedFile) (models.UploadResult, error) {
	f.hit("UploadSingle")
	f.Uploaded = append(f.Uploaded, file)
	return models.UploadResult{URL: f.UploadBaseURL + file.Name}, f.UploadErr
}

func (f *fakeClient) UploadMultiple(_ context.Context, files []models.UploadedFile) (models.MultiUploadResult, error) {
	f.hit("UploadMultiple")
	f.Uploaded = append(f.Uploaded, files...)
	var urls []string
	for _, file := range files {
		urls = append(urls, f.UploadBaseURL+file.Name)
	}
	return models.MultiUploadResult{URLs: urls}, f.UploadErr
}

// memStore is an in-memory credentials.Repository.
type memStore struct {
	mu      sync.Mutex
	cred    *models.Credential
	cleared int
	saveErr error
	loadErr error
}

func (m *memStore) Load(context.Context) (models.Credential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return models.Credential{}, m.loadErr
	}
	if m.cred == nil {
		return models.Credential{}, common.ErrorNotFound
	}
	return *m.cred, nil
}

func (m *memStore) Save(_ context.Context, c models.Credential) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	if c.SavedAt.IsZero() {
		c.SavedAt = time.Now()
	}
	m.cred = &c
	return nil
}

func (m *memStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cred = nil
	m.cleared++
	return nil
}

func (m *memStore) token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cred == nil {
		return ""
	}
	return m.cred.Token
}

// cartBackend is a server-side cart with server-computed totals.
type cartBackend struct {
	mu     sync.Mutex
	prices map[string]float64
	lines  []models.CartItem
}

func newCartBackend(prices map[string]float64) *cartBackend {
	return &cartBackend{prices: prices}
}

func (b *cartBackend) snapshot() models.Cart {
	c := models.Cart{Items: make([]models.CartItem, len(b.lines))}
	copy(c.Items, b.lines)
	for _, it := range b.lines {
		c.TotalItems += it.Quantity
		c.TotalAmount += it.Subtotal
	}
	return c
}

func (b *cartBackend) set(id string, qty int) (models.Cart, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, it := range b.lines {
		if it.FabricID == id {
			b.lines[i].Quantity = qty
			b.lines[i].Subtotal = float64(qty) * it.PriceAtAdd
			return b.snapshot(), nil
		}
	}
	return models.Cart{}, &client.APIError{Status: 404, Message: "Item not in cart", Kind: client.ErrNotFound}
}

func (b *cartBackend) add(req models.AddCartItemRequest) (models.Cart, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	price, ok := b.prices[req.FabricID]
	if !ok {
		return models.Cart{}, &client.APIError{Status: 404, Message: "Fabric not found", Kind: client.ErrNotFound}
	}
	for i, it := range b.lines {
		if it.FabricID == req.FabricID {
			b.lines[i].Quantity += req.Quantity
			b.lines[i].Subtotal = float64(b.lines[i].Quantity) * it.PriceAtAdd
			return b.snapshot(), nil
		}
	}
	b.lines = append(b.lines, models.CartItem{
		FabricID:   req.FabricID,
		Fabric:     models.FabricRef{ID: req.FabricID, Price: price},
		Quantity:   req.Quantity,
		PriceAtAdd: price,
		Subtotal:   float64(req.Quantity) * price,
	})
	return b.snapshot(), nil
}

func (b *cartBackend) remove(id string) (models.Cart, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, it := range b.lines {
		if it.FabricID == id {
			b.lines = append(b.lines[:i:i], b.lines[i+1:]...)
			return b.snapshot(), nil
		}
	}
	return models.Cart{}, &client.APIError{Status: 404, Message: "Item not in cart", Kind: client.ErrNotFound}
}

func (b *cartBackend) clear() (models.Cart, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = nil
	return b.snapshot(), nil
}

func (b *cartBackend) get() (models.Cart, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshot(), nil
}

// wire installs the backend behind the cart hooks of f.
func (b *cartBackend) wire(f *fakeClient) {
	f.GetCartFn = b.get
	f.AddItemFn = b.add
	f.UpdateItemFn = b.set
	f.RemoveItemFn = b.remove
	f.ClearCartFn = b.clear
}
