package models

import "time"

// VerificationToken holds the one-time email verification token issued at
// signup. One token per user; consumed when the email is verified.
type VerificationToken struct {
	UserID    string    `gorm:"type:uuid;primaryKey" json:"-"`
	Token     string    `gorm:"not null;size:32;index" json:"-"`
	Email     string    `gorm:"not null;size:255" json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
