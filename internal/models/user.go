package models

import "time"

// Currency represents a user's preferred currency
type Currency string

const (
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
	CurrencyGBP Currency = "GBP"
	CurrencyCHF Currency = "CHF"
)

// Valid reports whether the currency is one of the supported codes.
func (c Currency) Valid() bool {
	switch c {
	case CurrencyEUR, CurrencyUSD, CurrencyGBP, CurrencyCHF:
		return true
	}
	return false
}

// User represents the user model in the database
type User struct {
	Base
	Email             string     `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Password          string     `gorm:"not null;size:60" json:"-"`
	Currency          Currency   `gorm:"not null;default:EUR" json:"currency"`
	Verified          bool       `gorm:"not null;default:false" json:"-"`
	DefaultCategoryID *string    `gorm:"type:uuid" json:"default_category_id,omitempty"`
	PictureID         *string    `gorm:"type:uuid;uniqueIndex" json:"picture_id,omitempty"`
	LastLoginAt       *time.Time `json:"last_login_at,omitempty"`
	LastLoginIP       string     `gorm:"size:255" json:"-"`

	// Relationships
	DefaultCategory *Category     `gorm:"foreignKey:DefaultCategoryID" json:"-"`
	Picture         *Media        `gorm:"foreignKey:PictureID" json:"-"`
	Categories      []Category    `gorm:"foreignKey:UserID" json:"-"`
	Transactions    []Transaction `gorm:"foreignKey:UserID" json:"-"`
	Media           []Media       `gorm:"foreignKey:UserID" json:"-"`
}
