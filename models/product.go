package models

import "time"

type Product struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	Name        string           `gorm:"not null" json:"name"`
	Description string           `json:"description"`
	CategoryID  uint             `gorm:"not null;index" json:"categoryId"`
	ImageURL    string           `json:"imageUrl"`
	IsActive    bool             `gorm:"default:true" json:"isActive"`
	Variants    []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"variants,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// ProductVariant is a purchasable SKU of a product, distinguished by a
// packaged weight label ("100g", "500g", "1kg"), each with its own price,
// MRP and stock flag. A product with zero variants is valid but unsellable.
type ProductVariant struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	ProductID uint     `gorm:"not null;index" json:"productId"`
	Product   *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Weight    string   `gorm:"not null" json:"weight"`
	Price     float64  `gorm:"not null" json:"price"`
	MRP       float64  `json:"mrp"`
	InStock   bool     `gorm:"default:true" json:"inStock"`
}
