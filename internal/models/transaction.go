package models

import "time"

// Transaction represents a financial transaction in the system. Amount is
// signed and never zero: positive for income, negative for expenses.
type Transaction struct {
	Base
	UserID      string     `gorm:"type:uuid;not null;index" json:"-"`
	Title       string     `gorm:"not null;size:25" json:"title"`
	Description *string    `gorm:"size:250" json:"description,omitempty"`
	Amount      float64    `gorm:"type:decimal(13,2);not null" json:"amount"`
	Date        *time.Time `json:"date,omitempty"`
	CategoryID  *string    `gorm:"type:uuid" json:"category_id,omitempty"`
	ImageID     *string    `gorm:"type:uuid;uniqueIndex" json:"image_id,omitempty"`

	// Relationships
	User     User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"-"`
	Image    *Media    `gorm:"foreignKey:ImageID" json:"-"`
}
