package models

import "time"

// Category is self-referential: a null ParentCategoryID marks a top-level
// category, anything else is a subcategory. (Name, ParentCategoryID) pairs
// are unique, enforced by the catalog controllers rather than a composite
// index so that the conflict surfaces as a typed error.
type Category struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	Name             string     `gorm:"not null;index" json:"name"`
	Description      string     `json:"description"`
	ImageURL         string     `json:"imageUrl"`
	ParentCategoryID *uint      `gorm:"index" json:"parentCategoryId"`
	SubCategories    []Category `gorm:"foreignKey:ParentCategoryID" json:"subCategories,omitempty"`
	Products         []Product  `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}
