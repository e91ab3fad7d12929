package models

import (
	"time"

	"shargea/internal/uuid"

	"gorm.io/gorm"
)

// Base contains common columns for all tables. Version mirrors the row
// version kept by the database layer: it is bumped on every persisted
// update and left untouched by no-op (empty) patches.
type Base struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `gorm:"not null;default:1" json:"version"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New()
	}
	if b.Version == 0 {
		b.Version = 1
	}
	return nil
}

// BeforeUpdate hook increments the row version on every write.
func (b *Base) BeforeUpdate(tx *gorm.DB) error {
	b.Version++
	tx.Statement.SetColumn("version", b.Version)
	return nil
}
