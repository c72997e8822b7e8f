package client

import (
	"context"

	"github.com/dmitrijs2005/tailorhub/internal/client/models"
)

// TokenSource supplies the bearer token attached to outgoing requests.
// An empty token means the request is sent anonymously.
type TokenSource interface {
	Token() string
}

type AuthAPI interface {
	Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error)
	Me(ctx context.Context) (models.User, error)
}

// CartAPI mutations all return the full cart snapshot.
type CartAPI interface {
	GetCart(ctx context.Context) (models.Cart, error)
	AddCartItem(ctx context.Context, req models.AddCartItemRequest) (models.Cart, error)
	UpdateCartItem(ctx context.Context, fabricID string, quantity int) (models.Cart, error)
	RemoveCartItem(ctx context.Context, fabricID string) (models.Cart, error)
	ClearCart(ctx context.Context) (models.Cart, error)
}

type CatalogAPI interface {
	ListFabrics(ctx context.Context) ([]models.Fabric, error)
	GetFabric(ctx context.Context, id string) (models.Fabric, error)
	AddReview(ctx context.Context, fabricID string, review models.Review) (models.Review, error)

	ListShops(ctx context.Context) ([]models.Shop, error)
	GetShop(ctx context.Context, id string) (models.Shop, error)
	MyShop(ctx context.Context) (models.Shop, error)
	ListShopFabrics(ctx context.Context, shopID string) ([]models.Fabric, error)

	ListTailors(ctx context.Context) ([]models.Tailor, error)
	GetTailor(ctx context.Context, id string) (models.Tailor, error)
}

type InquiryAPI interface {
	SendInquiry(ctx context.Context, tailorID string, req models.InquiryRequest) (models.Inquiry, error)
	ListInquiries(ctx context.Context) ([]models.Inquiry, error)
	MarkInquiryRead(ctx context.Context, id string) (models.Inquiry, error)
	CloseInquiry(ctx context.Context, id string) (models.Inquiry, error)
}

type OrderAPI interface {
	CreateOrder(ctx context.Context, req models.CheckoutRequest) (models.Order, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	GetOrder(ctx context.Context, id string) (models.Order, error)
}

type ProfileAPI interface {
	GetProfile(ctx context.Context) (models.User, error)
	UpdateProfile(ctx context.Context, p models.Profile) (models.User, error)
	ListAddresses(ctx context.Context) ([]models.Address, error)
	AddAddress(ctx context.Context, a models.Address) (models.Address, error)
	UpdateAddress(ctx context.Context, a models.Address) (models.Address, error)
	DeleteAddress(ctx context.Context, id string) error
}

type UploadAPI interface {
	UploadSingle(ctx context.Context, file models.UploadedFile) (models.UploadResult, error)
	UploadMultiple(ctx context.Context, files []models.UploadedFile) (models.MultiUploadResult, error)
}

// Client is the complete backend contract used by the marketplace client.
type Client interface {
	AuthAPI
	CartAPI
	CatalogAPI
	InquiryAPI
	OrderAPI
	ProfileAPI
	UploadAPI
}
