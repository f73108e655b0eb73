package models

import "time"

// User roles. Role is assigned at creation and never changes through the API.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

type User struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Username      string         `gorm:"not null" json:"username"`
	Email         *string        `gorm:"uniqueIndex" json:"email,omitempty"`
	PhoneNumber   *string        `gorm:"uniqueIndex" json:"phoneNumber,omitempty"`
	PasswordHash  string         `json:"-"`
	Role          string         `gorm:"type:VARCHAR(20);not null;default:'customer'" json:"role"`
	Cart          *Cart          `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"cart,omitempty"`
	Addresses     []Address      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"addresses,omitempty"`
	Orders        []Order        `gorm:"foreignKey:UserID" json:"orders,omitempty"`
	Notifications []Notification `gorm:"foreignKey:RecipientID" json:"-"`
	CreatedAt     time.Time      `json:"createdAt"`
}

// Address is a free-text shipping address owned by a user.
type Address struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index" json:"userId"`
	StreetAddress string    `gorm:"not null" json:"streetAddress"`
	Landmark      string    `json:"landmark"`
	City          string    `gorm:"not null" json:"city"`
	State         string    `gorm:"not null" json:"state"`
	ZipCode       string    `gorm:"not null" json:"zipCode"`
	CreatedAt     time.Time `json:"createdAt"`
}
