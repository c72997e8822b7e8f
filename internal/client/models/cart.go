package models

// FabricRef is the fabric summary embedded in a cart line.
type FabricRef struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Price    float64  `json:"price"`
	Images   []string `json:"images,omitempty"`
	ShopID   string   `json:"shopId,omitempty"`
	ShopName string   `json:"shopName,omitempty"`
}

type CartItem struct {
	FabricID   string    `json:"fabricId"`
	Fabric     FabricRef `json:"fabric"`
	Quantity   int       `json:"quantity"`
	PriceAtAdd float64   `json:"priceAtAdd"`
	Subtotal   float64   `json:"subtotal"`
}

// Cart is the server-owned snapshot. TotalItems and TotalAmount are computed by
// the backend and trusted as-is.
type Cart struct {
	Items       []CartItem `json:"items"`
	TotalItems  int        `json:"totalItems"`
	TotalAmount float64    `json:"totalAmount"`
}

// Clone returns a copy whose Items slice is not shared with c.
func (c Cart) Clone() Cart {
	out := c
	if c.Items != nil {
		out.Items = make([]CartItem, len(c.Items))
		copy(out.Items, c.Items)
	}
	return out
}

// Find returns the line for fabricID.
func (c Cart) Find(fabricID string) (CartItem, bool) {
	for _, it := range c.Items {
		if it.FabricID == fabricID {
			return it, true
		}
	}
	return CartItem{}, false
}

type CartState struct {
	Cart    Cart
	Loading bool
	Error   string
}

type AddCartItemRequest struct {
	FabricID string `json:"fabricId"`
	Quantity int    `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}
