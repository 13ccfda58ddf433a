package model

import "time"

// Linktree is a user's public link-in-bio page. One per user, resolved
// publicly by slug.
type Linktree struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	Title     string    `json:"title" gorm:"size:128;not null"`
	Slug      string    `json:"slug" gorm:"size:160;uniqueIndex;not null"`
	PhotoURL  string    `json:"photo_url" gorm:"size:512"`
	Active    bool      `json:"active" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Links []DetailLink `json:"links,omitempty" gorm:"foreignKey:LinktreeID"`
}

// DetailLink is one entry on a Linktree. SortOrder is only meaningful
// relative to siblings; duplicates are allowed and ties resolve by ID.
type DetailLink struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	LinktreeID uint      `json:"linktree_id" gorm:"index;not null"`
	CategoryID *uint     `json:"category_id" gorm:"index"`
	Title      string    `json:"title" gorm:"size:128;not null"`
	URL        string    `json:"url" gorm:"type:text;not null"`
	SortOrder  int       `json:"sort_order" gorm:"not null;default:0"`
	Visible    bool      `json:"visible" gorm:"not null;default:true"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
