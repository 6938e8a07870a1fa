package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderStatus string
type PaymentMethod string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusCompleted OrderStatus = "COMPLETED" // terminal, no cancellation path

	PaymentMethodCOD    PaymentMethod = "COD"
	PaymentMethodOnline PaymentMethod = "ONLINE"
)

// Order is the per-user container accumulating order items over time.
// It is created lazily on the first placed order and reused afterwards.
type Order struct {
	ID        string      `gorm:"primaryKey" json:"id"`
	UserID    string      `gorm:"uniqueIndex;not null" json:"user_id"`
	Items     []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time   `json:"created_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

type OrderItem struct {
	ID                string        `gorm:"primaryKey" json:"id"`
	OrderID           string        `gorm:"index;not null" json:"order_id"`
	ProductID         string        `gorm:"index;not null" json:"product_id"`
	ShippingAddressID string        `gorm:"not null" json:"shipping_address_id"`
	Quantity          int           `gorm:"not null" json:"quantity"`
	PaymentMethod     PaymentMethod `gorm:"type:VARCHAR(10)" json:"payment_method"`
	Price             float64       `gorm:"not null" json:"price"`
	Status            OrderStatus   `gorm:"type:VARCHAR(20);default:'PENDING'" json:"status"`
	CreatedAt         time.Time     `json:"created_at"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
