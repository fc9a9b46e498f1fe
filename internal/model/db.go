package model

import (
	"time"

	"gorm.io/gorm"
)

type Store struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:128;not null" json:"name"`
	Slug      string    `gorm:"size:64;uniqueIndex;not null" json:"slug"` // url-safe storefront handle
	Color     string    `gorm:"size:16;not null" json:"color"`
	IsActive  bool      `gorm:"not null" json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

type Product struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	StoreID     *uint          `gorm:"index" json:"storeId"` // nil for the global catalog
	Name        string         `gorm:"size:255;not null" json:"name"`
	Description string         `gorm:"type:text;not null" json:"description"`
	Price       int64          `gorm:"not null" json:"price"` // minor currency units
	Category    string         `gorm:"size:64;index;not null" json:"category"`
	Stock       int            `gorm:"not null;check:stock >= 0" json:"stock"`
	ImageURL    string         `gorm:"type:text;not null" json:"imageUrl"`
	CreatedAt   time.Time      `json:"createdAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

type Order struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	UserID        string        `gorm:"size:64;index;not null" json:"userId"`
	StoreID       uint          `gorm:"index;not null" json:"storeId"`
	Status        OrderStatus   `gorm:"size:16;index;not null" json:"status"`
	Total         int64         `gorm:"not null" json:"total"` // sum of item price * quantity
	PaymentMethod PaymentMethod `gorm:"size:16;not null" json:"paymentMethod"`
	PaymentStatus PaymentStatus `gorm:"size:16;not null" json:"paymentStatus"`
	PaymentPhone  string        `gorm:"size:20" json:"paymentPhone,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`

	Items []*OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

type OrderItem struct {
	ID uint `gorm:"primaryKey" json:"id"`
	// FK → orders.id
	OrderID uint `gorm:"index;not null" json:"orderId"`
	// FK → products.id
	ProductID uint  `gorm:"index;not null" json:"productId"`
	Quantity  int   `gorm:"not null" json:"quantity"`
	Price     int64 `gorm:"not null" json:"price"` // product price when the order was placed

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// InventoryLog is the append-only stock ledger. Rows are never updated or deleted.
type InventoryLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"index;not null" json:"productId"`
	Change    int       `gorm:"not null" json:"change"`
	Reason    string    `gorm:"size:255;not null" json:"reason"`
	CreatedAt time.Time `json:"createdAt"`
}

// Ledger reasons for stock changes that do not come from an order.
const (
	ReasonInitialStock     = "Initial stock"
	ReasonManualAdjustment = "Manual adjustment"
)

func All() []any {
	return []any{
		&Store{},
		&Product{},
		&Order{},
		&OrderItem{},
		&InventoryLog{},
	}
}
