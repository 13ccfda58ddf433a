package model

import "time"

// Article lifecycle states.
const (
	ArticleDraft     = "DRAFT"
	ArticlePublished = "PUBLISHED"
	ArticleArchived  = "ARCHIVED"
)

// ValidArticleStatus reports whether s is a known lifecycle state.
func ValidArticleStatus(s string) bool {
	return s == ArticleDraft || s == ArticlePublished || s == ArticleArchived
}

// Article is a CMS content entity. ViewCount is a denormalized counter kept
// in step with deduplicated ArticleView events.
type Article struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	AuthorID      uint       `json:"author_id" gorm:"index;not null"`
	CategoryID    *uint      `json:"category_id" gorm:"index"`
	Title         string     `json:"title" gorm:"size:255;not null"`
	Slug          string     `json:"slug" gorm:"size:280;uniqueIndex;not null"`
	Body          string     `json:"body" gorm:"type:text;not null"`
	Excerpt       string     `json:"excerpt" gorm:"type:text"`
	FeaturedImage string     `json:"featured_image" gorm:"size:512"`
	Status        string     `json:"status" gorm:"size:16;not null;default:DRAFT;index"`
	ReadingTime   int        `json:"reading_time" gorm:"not null;default:1"`
	Tags          []string   `json:"tags" gorm:"serializer:json;type:text"`
	Featured      bool       `json:"featured" gorm:"not null;default:false;index"`
	ViewCount     int64      `json:"view_count" gorm:"not null;default:0"`
	PublishedAt   *time.Time `json:"published_at"`
	CreatedAt     time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}
