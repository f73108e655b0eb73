package models

import "time"

type Cart struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"uniqueIndex" json:"userId"` // one cart per user
	CartItems []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"cartItems"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// CartItem quantity is always positive: the cart controllers delete the row
// instead of persisting a zero quantity. The composite unique index backs
// the atomic upsert-with-increment in AddToCart, so two concurrent adds for
// the same (cart, variant) pair can never produce two rows.
type CartItem struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	CartID           uint            `gorm:"not null;uniqueIndex:idx_cart_item_cart_variant" json:"cartId"`
	ProductVariantID uint            `gorm:"not null;uniqueIndex:idx_cart_item_cart_variant" json:"productVariantId"`
	ProductVariant   *ProductVariant `gorm:"foreignKey:ProductVariantID" json:"productVariant,omitempty"`
	Quantity         int             `gorm:"not null" json:"quantity"`
	AddedAt          time.Time       `json:"addedAt"`
}
