package models

import (
	"time"

	"gorm.io/gorm"
)

// Product is a catalog entry. Prices are in TND.
type Product struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Name           string         `gorm:"not null" json:"name"`
	Description    string         `json:"description"`
	Price          float64        `gorm:"not null" json:"price"`
	SalePrice      *float64       `json:"salePrice"`
	Category       string         `gorm:"index" json:"category"`
	Collaborateur  string         `gorm:"index" json:"collaborateur"`
	ShowInHome     bool           `gorm:"default:false" json:"showInHome"`
	ShowInPromo    bool           `gorm:"default:false" json:"showInPromo"`
	ShowInTopSales bool           `gorm:"default:false" json:"showInTopSales"`
	Priority       int            `gorm:"default:0" json:"priority"`
	ViewCount      int            `gorm:"default:0" json:"viewCount"`
	OrderCount     int            `gorm:"default:0" json:"orderCount"`
	Images         []ProductImage `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
}

// ProductImage is owned by exactly one product. Exactly one image per
// product carries IsMain; repository writes normalize the flag.
type ProductImage struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ProductID uint   `gorm:"not null;index" json:"productId"`
	URL       string `gorm:"not null" json:"url"`
	Position  string `gorm:"type:varchar(10)" json:"position"` // front, back, side
	IsMain    bool   `gorm:"default:false" json:"isMain"`
}

// Stock is keyed by (product, size, color). A product with no stock rows
// is treated as unavailable at checkout.
type Stock struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ProductID uint   `gorm:"not null;index" json:"productId"`
	Size      string `gorm:"type:varchar(10)" json:"size"`
	ColorID   uint   `json:"colorId"`
	InStock   bool   `gorm:"default:true" json:"inStock"`
}

const OrderStatusPending = "PENDING"

type Order struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	CustomerName string      `gorm:"not null" json:"customerName"`
	PhoneNumber  string      `gorm:"not null" json:"phoneNumber"`
	Address      string      `gorm:"not null" json:"address"`
	TotalAmount  float64     `gorm:"not null" json:"totalAmount"`
	Status       string      `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	UserID       *uint       `gorm:"index" json:"userId"`
	Items        []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt    time.Time   `gorm:"autoCreateTime" json:"createdAt"`
}

// OrderItem captures the unit price at order time; it is never re-derived
// from the product. ProductID is a plain reference, not a foreign key:
// deleting a product leaves historical lines with an unresolvable product.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `gorm:"not null;index" json:"orderId"`
	ProductID uint    `gorm:"not null" json:"productId"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	Price     float64 `gorm:"not null" json:"price"`

	Product *Product `gorm:"-" json:"product,omitempty"`
}

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"not null" json:"username"`
	Email        string    `gorm:"unique;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// Migrate runs auto migration for all storefront tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Product{}, &ProductImage{}, &Stock{}, &Order{}, &OrderItem{}, &User{})
}
