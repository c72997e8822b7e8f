package models

import "time"

type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "cod"
	PaymentOnline         PaymentMethod = "online"
)

func (p PaymentMethod) Valid() bool {
	return p == PaymentCashOnDelivery || p == PaymentOnline
}

type Address struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
	Phone     string `json:"phone"`
	IsDefault bool   `json:"isDefault"`
}

type OrderItem struct {
	FabricID string  `json:"fabricId"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type Order struct {
	ID              string        `json:"id"`
	Items           []OrderItem   `json:"items"`
	ShippingAddress Address       `json:"shippingAddress"`
	PaymentMethod   PaymentMethod `json:"paymentMethod"`
	TotalAmount     float64       `json:"totalAmount"`
	Status          string        `json:"status"`
	CreatedAt       time.Time     `json:"createdAt"`
}

type CheckoutRequest struct {
	ShippingAddress Address       `json:"shippingAddress"`
	PaymentMethod   PaymentMethod `json:"paymentMethod"`
	Notes           string        `json:"notes,omitempty"`
}

type Review struct {
	ID        string    `json:"id,omitempty"`
	UserName  string    `json:"userName,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

type InquiryStatus string

const (
	InquiryOpen   InquiryStatus = "open"
	InquiryRead   InquiryStatus = "read"
	InquiryClosed InquiryStatus = "closed"
)

type Inquiry struct {
	ID         string        `json:"id"`
	TailorID   string        `json:"tailorId"`
	CustomerID string        `json:"customerId"`
	Subject    string        `json:"subject"`
	Message    string        `json:"message"`
	Status     InquiryStatus `json:"status"`
	CreatedAt  time.Time     `json:"createdAt"`
}

type InquiryRequest struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// UploadedFile is one file handed to the upload endpoints.
type UploadedFile struct {
	Name    string
	Content []byte
}

type UploadResult struct {
	URL string `json:"url"`
}

type MultiUploadResult struct {
	URLs []string `json:"urls"`
}
