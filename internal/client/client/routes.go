package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/tailorhub/internal/client/models"
)

// Route templates, relative to the versioned base URL.
const (
	routeLogin           = "/auth/login"
	routeRegister        = "/auth/register"
	routeMe              = "/auth/me"
	routeCart            = "/cart"
	routeCartItems       = "/cart/items"
	routeCartItem        = "/cart/items/:id"
	routeFabrics         = "/fabrics"
	routeFabric          = "/fabrics/:id"
	routeFabricReviews   = "/fabrics/:id/reviews"
	routeShops           = "/shops"
	routeMyShop          = "/shops/me"
	routeShop            = "/shops/:id"
	routeShopFabrics     = "/shops/:id/fabrics"
	routeTailors         = "/tailors"
	routeTailor          = "/tailors/:id"
	routeTailorInquiries = "/tailors/:id/inquiries"
	routeInquiries       = "/inquiries"
	routeInquiryRead     = "/inquiries/:id/read"
	routeInquiryClose    = "/inquiries/:id/close"
	routeOrders          = "/orders"
	routeOrder           = "/orders/:id"
	routeProfile         = "/users/profile"
	routeAddresses       = "/users/addresses"
	routeAddress         = "/users/addresses/:id"
	routeUploadSingle    = "/upload/single"
	routeUploadMultiple  = "/upload/multiple"
)

func seg(id string) string {
	return "/" + url.PathEscape(id)
}

func (c *HTTPClient) Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	var out models.AuthResponse
	err := c.doJSON(ctx, http.MethodPost, routeLogin, routeLogin, req, &out, false)
	return out, err
}

func (c *HTTPClient) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	var out models.AuthResponse
	err := c.doJSON(ctx, http.MethodPost, routeRegister, routeRegister, req, &out, false)
	return out, err
}

func (c *HTTPClient) Me(ctx context.Context) (models.User, error) {
	var out struct {
		User models.User `json:"user"`
	}
	err := c.doJSON(ctx, http.MethodGet, routeMe, routeMe, nil, &out, false)
	return out.User, err
}

func (c *HTTPClient) GetCart(ctx context.Context) (models.Cart, error) {
	var out models.Cart
	err := c.doJSON(ctx, http.MethodGet, routeCart, routeCart, nil, &out, false)
	return out, err
}

func (c *HTTPClient) AddCartItem(ctx context.Context, req models.AddCartItemRequest) (models.Cart, error) {
	var out models.Cart
	err := c.doJSON(ctx, http.MethodPost, routeCartItems, routeCartItems, req, &out, true)
	return out, err
}

func (c *HTTPClient) UpdateCartItem(ctx context.Context, fabricID string, quantity int) (models.Cart, error) {
	var out models.Cart
	err := c.doJSON(ctx, http.MethodPut, routeCartItem, routeCartItems+seg(fabricID),
		models.UpdateCartItemRequest{Quantity: quantity}, &out, true)
	return out, err
}

func (c *HTTPClient) RemoveCartItem(ctx context.Context, fabricID string) (models.Cart, error) {
	var out models.Cart
	err := c.doJSON(ctx, http.MethodDelete, routeCartItem, routeCartItems+seg(fabricID), nil, &out, true)
	return out, err
}

func (c *HTTPClient) ClearCart(ctx context.Context) (models.Cart, error) {
	var out models.Cart
	err := c.doJSON(ctx, http.MethodDelete, routeCart, routeCart, nil, &out, true)
	return out, err
}

func (c *HTTPClient) ListFabrics(ctx context.Context) ([]models.Fabric, error) {
	var out struct {
		Fabrics []models.Fabric `json:"fabrics"`
	}
	err := c.doJSON(ctx, http.MethodGet, routeFabrics, routeFabrics, nil, &out, false)
	return out.Fabrics, err
}

func (c *HTTPClient) GetFabric(ctx context.Context, id string) (models.Fabric, error) {
	var out struct {
		Fabric models.Fabric `json:"fabric"`
	}
	err := c.doJSON(ctx, http.MethodGet, routeFabric, routeFabrics+seg(id), nil, &out, false)
	return out.Fabric, err
}

func (c *HTTPClient) AddReview(ctx context.Context, fabricID string, review models.Review) (models.Review, error) {
	var out struct {
		Review models.Review `json:"review"`
	}
	err := c.doJSON(ctx, http.MethodPost, routeFabricReviews, routeFabrics+seg(fabricID)+"/reviews", review, &out, false)
	return out.Review, err
}

func (c *HTTPClient) ListShops(ctx context.Context) ([]models.Shop, error) {
	var out struct {
		Shops []models.Shop `json:"shops"`
	}
	err := c.doJSON(ctx, http.MethodGet, routeShops, routeShops, nil, &out, false)
	return out.Shops, err
}

func (c *HTTPClient) GetShop(ctx context.Context, id string) (models.Shop, error) {
	var out struct {
		Shop models.Shop `json:"shop"`
	}
	err := c.doJSON(ctx, http.MethodGet, routeShop, routeShops+seg(id), nil, &out, false)
	return out.Shop, err
}

func (c *HTTPClient) MyShop(ctx context.Context) (models.Shop, error) {
	var out struct {
		Shop models.Shop `json:"shop"`
	}
	err := c.doJSON(ctx, http.MethodGet, routeMyShop, routeMyShop, nil, &out, false)
	return out.Shop, err
}

func (c *HTTPClient) ListShopFabrics(ctx context.Context, shopID string) ([]models.Fabric, error) {
	var out struct {
		Fabrics []models.Fabric `json:"fabrics"`
	}
	err := c.doJSON(ctx, http.MethodGet, routeShopFabrics, routeShops+seg(shopID)+"/fabrics", nil, &out, false)
	return out.Fabrics, err
}

func (c *HTTPClient) ListTailors(ctx context.Context) ([]models.Tailor, error) {
	var out struct {
		Tailors []models.Tailor `json:"tailors"`
	}
	err := c.doJSON(ctx, http.MethodGet, routeTailors, routeTailors, nil, &out, false)
	return out.Tailors, err
}

func (c *HTTPClient) GetTailor(ctx context.Context, id string) (models.Tailor, error) {
	var out struct {
		Tailor models.Tailor `json:"tailor"`
	}
	err := c.doJSON(ctx, http.MethodGet, routeTailor, routeTailors+seg(id), nil, &out, false)
	return out.Tailor, err
}

func (c *HTTPClient) SendInquiry(ctx context.Context, tailorID string, req models.InquiryRequest) (models.Inquiry, error) {
	var out struct {
		Inquiry models.Inquiry `json:"inquiry"`
	}
	err := c.doJSON(ctx, http.MethodPost, routeTailorInquiries, routeTailors+seg(tailorID)+"/inquiries", req, &out, false)
	return out.Inquiry, err
}

func (c *HTTPClient) ListInquiries(ctx context.Context) ([]models.Inquiry, error) {
	var out struct {
		Inquiries []models.Inquiry `json:"inquiries"`
	}
	err := c.doJSON(ctx, http.MethodGet, routeInquiries, routeInquiries, nil, &out, false)
	return out.Inquiries, err
}

func (c *HTTPClient) MarkInquiryRead(ctx context.Context, id string) (models.Inquiry, error) {
	var out struct {
		Inquiry models.Inquiry `json:"inquiry"`
	}
	err := c.doJSON(ctx, http.MethodPatch, routeInquiryRead, routeInquiries+seg(id)+"/read", nil, &out, false)
	return out.Inquiry, err
}

func (c *HTTPClient) CloseInquiry(ctx context.Context, id string) (models.Inquiry, error) {
	var out struct {
		Inquiry models.Inquiry `json:"inquiry"`
	}
	err := c.doJSON(ctx, http.MethodPatch, routeInquiryClose, routeInquiries+seg(id)+"/close", nil, &out, false)
	return out.Inquiry, err
}

func (c *HTTPClient) CreateOrder(ctx context.Context, req models.CheckoutRequest) (models.Order, error) {
	var out struct {
		Order models.Order `json:"order"`
	}
	err := c.doJSON(ctx, http.MethodPost, routeOrders, routeOrders, req, &out, true)
	return out.Order, err
}

func (c *HTTPClient) ListOrders(ctx context.Context) ([]models.Order, error) {
	var out struct {
		Orders []models.Order `json:"orders"`
	}
	err := c.doJSON(ctx, http.MethodGet, routeOrders, routeOrders, nil, &out, false)
	return out.Orders, err
}

func (c *HTTPClient) GetOrder(ctx context.Context, id string) (models.Order, error) {
	var out struct {
		Order models.Order `json:"order"`
	}
	err := c.doJSON(ctx, http.MethodGet, routeOrder, routeOrders+seg(id), nil, &out, false)
	return out.Order, err
}

func (c *HTTPClient) GetProfile(ctx context.Context) (models.User, error) {
	var out struct {
		User models.User `json:"user"`
	}
	err := c.doJSON(ctx, http.MethodGet, routeProfile, routeProfile, nil, &out, false)
	return out.User, err
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, p models.Profile) (models.User, error) {
	var out struct {
		User models.User `json:"user"`
	}
	err := c.doJSON(ctx, http.MethodPut, routeProfile, routeProfile, p, &out, false)
	return out.User, err
}

func (c *HTTPClient) ListAddresses(ctx context.Context) ([]models.Address, error) {
	var out struct {
		Addresses []models.Address `json:"addresses"`
	}
	err := c.doJSON(ctx, http.MethodGet, routeAddresses, routeAddresses, nil, &out, false)
	return out.Addresses, err
}

func (c *HTTPClient) AddAddress(ctx context.Context, a models.Address) (models.Address, error) {
	var out struct {
		Address models.Address `json:"address"`
	}
	err := c.doJSON(ctx, http.MethodPost, routeAddresses, routeAddresses, a, &out, false)
	return out.Address, err
}

func (c *HTTPClient) UpdateAddress(ctx context.Context, a models.Address) (models.Address, error) {
	var out struct {
		Address models.Address `json:"address"`
	}
	err := c.doJSON(ctx, http.MethodPut, routeAddress, routeAddresses+seg(a.ID), a, &out, false)
	return out.Address, err
}

func (c *HTTPClient) DeleteAddress(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, routeAddress, routeAddresses+seg(id), nil, nil, false)
}

func (c *HTTPClient) UploadSingle(ctx context.Context, file models.UploadedFile) (models.UploadResult, error) {
	var out models.UploadResult
	cl, err := multipartCall(routeUploadSingle, routeUploadSingle, "image", []models.UploadedFile{file})
	if err != nil {
		return out, err
	}
	err = c.do(ctx, cl, &out)
	return out, err
}

func (c *HTTPClient) UploadMultiple(ctx context.Context, files []models.UploadedFile) (models.MultiUploadResult, error) {
	var out models.MultiUploadResult
	cl, err := multipartCall(routeUploadMultiple, routeUploadMultiple, "images", files)
	if err != nil {
		return out, err
	}
	err = c.do(ctx, cl, &out)
	return out, err
}
