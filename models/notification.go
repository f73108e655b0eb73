package models

import "time"

type NotificationType string

const (
	NotificationOrderCreated NotificationType = "ORDER_CREATED"
	NotificationOrderUpdated NotificationType = "ORDER_UPDATED"
)

// Notification is the durable half of the fan-out: the websocket push is
// best-effort, the row is what a client reconciles against on reconnect.
type Notification struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	RecipientID uint             `gorm:"not null;index" json:"recipientId"`
	Recipient   *User            `gorm:"foreignKey:RecipientID" json:"recipient,omitempty"`
	Type        NotificationType `gorm:"type:VARCHAR(20);not null" json:"type"`
	Title       string           `json:"title"`
	Message     string           `gorm:"not null" json:"message"`
	IsRead      bool             `gorm:"not null;default:false" json:"isRead"`
	OrderID     *uint            `json:"orderId"`
	CreatedAt   time.Time        `json:"createdAt"`
}
