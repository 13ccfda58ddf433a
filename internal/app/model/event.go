package model

import "time"

// LinktreeView is an append-only page-view record. Views are stored
// unconditionally; aggregation happens at read time.
type LinktreeView struct {
	ID         string    `json:"id" gorm:"primaryKey;size:36"`
	LinktreeID uint      `json:"linktree_id" gorm:"index:idx_linktree_views_tree_ts;not null"`
	IP         string    `json:"ip" gorm:"size:45"`
	UserAgent  string    `json:"user_agent" gorm:"size:512"`
	Timestamp  time.Time `json:"timestamp" gorm:"index:idx_linktree_views_tree_ts"`
}

// LinkClick is an append-only click record for a DetailLink.
type LinkClick struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	LinkID    uint      `json:"link_id" gorm:"index:idx_link_clicks_link_ts;not null"`
	IP        string    `json:"ip" gorm:"size:45"`
	UserAgent string    `json:"user_agent" gorm:"size:512"`
	Referrer  string    `json:"referrer" gorm:"size:512"`
	Timestamp time.Time `json:"timestamp" gorm:"index:idx_link_clicks_link_ts"`
}

// ArticleView is an append-only article-view record, deduplicated per
// (article, IP) per server-local calendar day at insert time.
type ArticleView struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	ArticleID uint      `json:"article_id" gorm:"index:idx_article_views_article_ts;not null"`
	IP        string    `json:"ip" gorm:"size:45;index"`
	UserAgent string    `json:"user_agent" gorm:"size:512"`
	Timestamp time.Time `json:"timestamp" gorm:"index:idx_article_views_article_ts"`
}

// JetStream wiring for the async engagement pipeline. Linktree views and
// link clicks flow through the stream; article views are written
// synchronously because of the dedup window.
const (
	EngagementStreamName    = "ENGAGEMENT"
	EngagementViewSubject   = "engagement.views"
	EngagementClickSubject  = "engagement.clicks"
	EngagementSubjectPrefix = "engagement.>"
	EngagementConsumerName  = "engagement-logger"
	EngagementStreamMaxSize = 1024 * 1024 * 100 // 100MB
)
