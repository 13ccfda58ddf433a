package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DashboardTotals are the headline counts shown on the admin dashboard.
type DashboardTotals struct {
	Users             int64 `json:"users"`
	Linktrees         int64 `json:"linktrees"`
	Links             int64 `json:"links"`
	Articles          int64 `json:"articles"`
	PublishedArticles int64 `json:"published_articles"`
	LinktreeViews     int64 `json:"linktree_views"`
	ArticleViews      int64 `json:"article_views"`
	LinkClicks        int64 `json:"link_clicks"`
}

// DailyCount is one day of an aggregated time series.
type DailyCount struct {
	Day   time.Time `json:"day"`
	Count int64     `json:"count"`
}

// RoleCount is the number of accounts holding one role.
type RoleCount struct {
	Role  string `json:"role"`
	Count int64  `json:"count"`
}

// TopLink is a link ranked by recorded clicks.
type TopLink struct {
	LinkID uint   `json:"link_id"`
	Title  string `json:"title"`
	Clicks int64  `json:"clicks"`
}

// AnalyticsRepository runs the aggregate queries behind the dashboard. These
// are raw SQL on the pgx pool rather than GORM chains.
type AnalyticsRepository interface {
	Totals(ctx context.Context) (*DashboardTotals, error)
	DailyLinktreeViews(ctx context.Context, since time.Time) ([]DailyCount, error)
	DailyArticleViews(ctx context.Context, since time.Time) ([]DailyCount, error)
	DailyLinkClicks(ctx context.Context, since time.Time) ([]DailyCount, error)
	TopLinks(ctx context.Context, limit int) ([]TopLink, error)
	UsersByRole(ctx context.Context) ([]RoleCount, error)
}

type analyticsRepository struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository returns an AnalyticsRepository backed by the pgx pool.
func NewAnalyticsRepository(pool *pgxpool.Pool) AnalyticsRepository {
	return &analyticsRepository{pool: pool}
}

func (r *analyticsRepository) Totals(ctx context.Context) (*DashboardTotals, error) {
	const query = `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM linktrees),
			(SELECT COUNT(*) FROM detail_links),
			(SELECT COUNT(*) FROM articles),
			(SELECT COUNT(*) FROM articles WHERE status = 'PUBLISHED'),
			(SELECT COUNT(*) FROM linktree_views),
			(SELECT COUNT(*) FROM article_views),
			(SELECT COUNT(*) FROM link_clicks)`

	var t DashboardTotals
	if err := r.pool.QueryRow(ctx, query).Scan(
		&t.Users, &t.Linktrees, &t.Links, &t.Articles,
		&t.PublishedArticles, &t.LinktreeViews, &t.ArticleViews, &t.LinkClicks,
	); err != nil {
		return nil, fmt.Errorf("analytics: totals: %w", err)
	}
	return &t, nil
}

func (r *analyticsRepository) DailyLinktreeViews(ctx context.Context, since time.Time) ([]DailyCount, error) {
	return r.dailySeries(ctx, "linktree_views", since)
}

func (r *analyticsRepository) DailyArticleViews(ctx context.Context, since time.Time) ([]DailyCount, error) {
	return r.dailySeries(ctx, "article_views", since)
}

func (r *analyticsRepository) DailyLinkClicks(ctx context.Context, since time.Time) ([]DailyCount, error) {
	return r.dailySeries(ctx, "link_clicks", since)
}

// dailySeries buckets one event table by calendar day. The table name comes
// from a fixed internal set, never from user input.
func (r *analyticsRepository) dailySeries(ctx context.Context, table string, since time.Time) ([]DailyCount, error) {
	query := fmt.Sprintf(`
		SELECT date_trunc('day', timestamp) AS day, COUNT(*)
		FROM %s
		WHERE timestamp >= $1
		GROUP BY day
		ORDER BY day ASC`, table)

	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("analytics: daily %s: %w", table, err)
	}
	defer rows.Close()

	var series []DailyCount
	for rows.Next() {
		var dc DailyCount
		if err := rows.Scan(&dc.Day, &dc.Count); err != nil {
			return nil, fmt.Errorf("analytics: scan daily %s: %w", table, err)
		}
		series = append(series, dc)
	}
	return series, rows.Err()
}

func (r *analyticsRepository) TopLinks(ctx context.Context, limit int) ([]TopLink, error) {
	if limit <= 0 {
		limit = 10
	}

	const query = `
		SELECT l.id, l.title, COUNT(c.id) AS clicks
		FROM detail_links l
		JOIN link_clicks c ON c.link_id = l.id
		GROUP BY l.id, l.title
		ORDER BY clicks DESC
		LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics: top links: %w", err)
	}
	defer rows.Close()

	var top []TopLink
	for rows.Next() {
		var tl TopLink
		if err := rows.Scan(&tl.LinkID, &tl.Title, &tl.Clicks); err != nil {
			return nil, fmt.Errorf("analytics: scan top links: %w", err)
		}
		top = append(top, tl)
	}
	return top, rows.Err()
}

func (r *analyticsRepository) UsersByRole(ctx context.Context) ([]RoleCount, error) {
	const query = `SELECT role, COUNT(*) FROM users GROUP BY role ORDER BY role`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics: users by role: %w", err)
	}
	defer rows.Close()

	var counts []RoleCount
	for rows.Next() {
		var rc RoleCount
		if err := rows.Scan(&rc.Role, &rc.Count); err != nil {
			return nil, fmt.Errorf("analytics: scan users by role: %w", err)
		}
		counts = append(counts, rc)
	}
	return counts, rows.Err()
}
