package service

import (
	"context"
	"fmt"
	"time"

	"github.com/linktrove/linktrove/internal/app/repository"
)

const (
	dashboardSeriesDays = 30
	dashboardTopLinks   = 10
)

// Dashboard bundles the aggregates behind the admin dashboard: headline
// totals, 30-day daily series, and the most-clicked links.
type Dashboard struct {
	Totals        *repository.DashboardTotals `json:"totals"`
	LinktreeViews []repository.DailyCount     `json:"linktree_views"`
	ArticleViews  []repository.DailyCount     `json:"article_views"`
	LinkClicks    []repository.DailyCount     `json:"link_clicks"`
	TopLinks      []repository.TopLink        `json:"top_links"`
}

// AnalyticsService serves the read-only aggregate views.
type AnalyticsService interface {
	Dashboard(ctx context.Context) (*Dashboard, error)
	RoleBreakdown(ctx context.Context) ([]repository.RoleCount, error)
}

type analyticsService struct {
	analytics repository.AnalyticsRepository
}

// NewAnalyticsService returns a service implementation backed by the given repository.
func NewAnalyticsService(analytics repository.AnalyticsRepository) AnalyticsService {
	return &analyticsService{analytics: analytics}
}

func (s *analyticsService) Dashboard(ctx context.Context) (*Dashboard, error) {
	totals, err := s.analytics.Totals(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard totals: %w", err)
	}

	since := time.Now().AddDate(0, 0, -dashboardSeriesDays)

	treeViews, err := s.analytics.DailyLinktreeViews(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("dashboard linktree views: %w", err)
	}
	articleViews, err := s.analytics.DailyArticleViews(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("dashboard article views: %w", err)
	}
	clicks, err := s.analytics.DailyLinkClicks(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("dashboard link clicks: %w", err)
	}
	top, err := s.analytics.TopLinks(ctx, dashboardTopLinks)
	if err != nil {
		return nil, fmt.Errorf("dashboard top links: %w", err)
	}

	return &Dashboard{
		Totals:        totals,
		LinktreeViews: treeViews,
		ArticleViews:  articleViews,
		LinkClicks:    clicks,
		TopLinks:      top,
	}, nil
}

func (s *analyticsService) RoleBreakdown(ctx context.Context) ([]repository.RoleCount, error) {
	counts, err := s.analytics.UsersByRole(ctx)
	if err != nil {
		return nil, fmt.Errorf("role breakdown: %w", err)
	}
	return counts, nil
}
