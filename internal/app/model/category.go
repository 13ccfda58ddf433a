package model

import "time"

// Category is a platform-wide tag for links. Name is globally unique;
// deletion is blocked while any DetailLink references it.
type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:128;uniqueIndex;not null"`
	Icon      string    `json:"icon" gorm:"size:128"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// ArticleCategory is a platform-wide tag for articles, addressed by slug.
type ArticleCategory struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:128;not null"`
	Slug        string    `json:"slug" gorm:"size:160;uniqueIndex;not null"`
	Description string    `json:"description" gorm:"type:text"`
	Icon        string    `json:"icon" gorm:"size:128"`
	Color       string    `json:"color" gorm:"size:32"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
