package models

import "time"

type PaymentMethod string

const (
	PaymentMethodCOD    PaymentMethod = "COD"
	PaymentMethodOnline PaymentMethod = "ONLINE"
)

// Order statuses. Status is stored as a free-form string so operators can
// introduce intermediate states without a migration; these are the ones the
// application itself sets or displays.
const (
	OrderStatusPending   = "PENDING"
	OrderStatusConfirmed = "CONFIRMED"
	OrderStatusShipped   = "SHIPPED"
	OrderStatusDelivered = "DELIVERED"
	OrderStatusCancelled = "CANCELLED"
)

// Order items are immutable after creation; only Status and DeliveryDate
// mutate. PriceAtPurchase on each item is a snapshot decoupled from the live
// variant price.
type Order struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	OrderRef        string        `gorm:"uniqueIndex" json:"orderRef"`
	UserID          uint          `gorm:"not null;index" json:"userId"`
	User            *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	AddressID       uint          `gorm:"not null" json:"addressId"`
	ShippingAddress *Address      `gorm:"foreignKey:AddressID" json:"shippingAddress,omitempty"`
	PaymentMethod   PaymentMethod `gorm:"type:VARCHAR(10);not null" json:"paymentMethod"`
	IsPaid          bool          `json:"isPaid"`
	Status          string        `gorm:"type:VARCHAR(30);not null;default:'PENDING'" json:"status"`
	TotalPrice      float64       `gorm:"not null" json:"totalPrice"`
	OrderItems      []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"orderItems"`
	OrderDate       time.Time     `json:"orderDate"`
	DeliveryDate    *time.Time    `json:"deliveryDate"`
}

type OrderItem struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	OrderID         uint            `gorm:"not null;index" json:"orderId"`
	ProductID       uint            `gorm:"not null" json:"productId"`
	Product         *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	VariantID       *uint           `json:"variantId"`
	Variant         *ProductVariant `gorm:"foreignKey:VariantID" json:"variant,omitempty"`
	Quantity        int             `gorm:"not null" json:"quantity"`
	PriceAtPurchase float64         `gorm:"not null" json:"priceAtPurchase"`
}
