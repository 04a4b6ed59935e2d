package models

// CheckoutRequest is the cart checkout payload. Field presence is
// validated by the order service, not by binding tags, so that the
// response can name the first missing field.
type CheckoutRequest struct {
	CustomerName string         `json:"customerName"`
	PhoneNumber  string         `json:"phoneNumber"`
	Address      string         `json:"address"`
	TotalAmount  float64        `json:"totalAmount"`
	Items        []CheckoutItem `json:"items"`
}

type CheckoutItem struct {
	ProductID uint    `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// DirectPurchaseRequest is the single-product express checkout payload.
type DirectPurchaseRequest struct {
	FullName    string  `json:"fullName"`
	Phone       string  `json:"phone"`
	Address     string  `json:"address"`
	Governorate string  `json:"governorate"`
	ProductID   uint    `json:"productId"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// ProductFilter carries the catalog query parameters.
type ProductFilter struct {
	Category      string
	Collaborateur string
	Sort          string
	Product       string
}

// UpdateProductRequest replaces product fields and the whole image set.
type UpdateProductRequest struct {
	Name           string              `json:"name"`
	Description    string              `json:"description"`
	Price          float64             `json:"price"`
	SalePrice      *float64            `json:"salePrice"`
	Category       string              `json:"category"`
	Collaborateur  string              `json:"collaborateur"`
	ShowInHome     bool                `json:"showInHome"`
	ShowInPromo    bool                `json:"showInPromo"`
	ShowInTopSales bool                `json:"showInTopSales"`
	Priority       int                 `json:"priority"`
	ViewCount      int                 `json:"viewCount"`
	OrderCount     int                 `json:"orderCount"`
	Images         []ProductImageInput `json:"images"`
}

type ProductImageInput struct {
	URL      string `json:"url"`
	Position string `json:"position"`
	IsMain   bool   `json:"isMain"`
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
