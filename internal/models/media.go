package models

// MediaType represents the kind of media a row points to
type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

// Media references an externally hosted image or video. A media row may be
// linked by at most one category, one transaction, or one user picture at a
// time; the unique indexes on the referencing side enforce this.
type Media struct {
	Base
	UserID      string    `gorm:"type:uuid;not null;index" json:"-"`
	Title       string    `gorm:"not null;size:25" json:"title"`
	Description *string   `gorm:"size:250" json:"description,omitempty"`
	URL         string    `gorm:"not null;size:2048" json:"url"`
	Type        MediaType `gorm:"not null;default:image" json:"type"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
