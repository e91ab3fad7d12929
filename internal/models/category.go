package models

// Category organizes transactions in a per-user tree. The parent chain of
// any category must terminate without revisiting the category itself.
type Category struct {
	Base
	UserID           string  `gorm:"type:uuid;not null;index" json:"-"`
	Title            string  `gorm:"not null;size:25" json:"title"`
	Description      *string `gorm:"size:250" json:"description,omitempty"`
	ImageID          *string `gorm:"type:uuid;uniqueIndex" json:"image_id,omitempty"`
	ParentCategoryID *string `gorm:"type:uuid" json:"parent_category_id,omitempty"`

	// Relationships
	User           User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Image          *Media     `gorm:"foreignKey:ImageID" json:"-"`
	ParentCategory *Category  `gorm:"foreignKey:ParentCategoryID" json:"-"`
	Children       []Category `gorm:"foreignKey:ParentCategoryID" json:"-"`
}
