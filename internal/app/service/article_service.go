package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/linktrove/linktrove/internal/app/model"
	"github.com/linktrove/linktrove/internal/app/repository"
	infraprom "github.com/linktrove/linktrove/internal/infra/prometheus"
)

const readingWordsPerMinute = 200

// EstimateReadingTime returns the article's reading time in whole minutes,
// never less than one.
func EstimateReadingTime(body string) int {
	words := len(strings.Fields(body))
	minutes := (words + readingWordsPerMinute - 1) / readingWordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

// dayWindow returns the server-local calendar day [start, end) containing t.
// This is the article-view dedup window.
func dayWindow(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

// CreateArticleInput captures data required to create an article.
type CreateArticleInput struct {
	Title         string
	Body          string
	Excerpt       string
	FeaturedImage string
	Status        string
	Tags          []string
	Featured      bool
	CategoryID    *uint
}

// UpdateArticleInput captures fields that can be changed on an article.
type UpdateArticleInput struct {
	Title         *string
	Body          *string
	Excerpt       *string
	FeaturedImage *string
	Status        *string
	Tags          []string
	Featured      *bool
	CategoryID    *uint
}

// PublicArticleFilter narrows the public published-article listing.
type PublicArticleFilter struct {
	CategorySlug string
	Tag          string
	Search       string
	Featured     *bool
	Limit        int
	Offset       int
}

// ArticleService defines behaviour-level operations on CMS articles.
type ArticleService interface {
	Create(ctx context.Context, authorID uint, input CreateArticleInput) (*model.Article, error)
	Update(ctx context.Context, id uint, input UpdateArticleInput) (*model.Article, error)
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*model.Article, error)
	List(ctx context.Context, filter repository.ArticleFilter) ([]model.Article, int64, error)
	ListPublished(ctx context.Context, filter PublicArticleFilter) ([]model.Article, int64, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*model.Article, error)
	RecordView(ctx context.Context, articleID uint, ip, userAgent string) (bool, error)
}

type articleService struct {
	articles   repository.ArticleRepository
	categories repository.ArticleCategoryRepository
	slugs      *SlugAllocator
}

// NewArticleService returns a service implementation backed by the given repositories.
func NewArticleService(
	articles repository.ArticleRepository,
	categories repository.ArticleCategoryRepository,
	slugs *SlugAllocator,
) ArticleService {
	return &articleService{articles: articles, categories: categories, slugs: slugs}
}

func (s *articleService) Create(ctx context.Context, authorID uint, input CreateArticleInput) (*model.Article, error) {
	status := input.Status
	if status == "" {
		status = model.ArticleDraft
	}

	if input.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, *input.CategoryID); err != nil {
			return nil, fmt.Errorf("load category: %w", err)
		}
	}

	article := &model.Article{
		AuthorID:      authorID,
		CategoryID:    input.CategoryID,
		Title:         input.Title,
		Body:          input.Body,
		Excerpt:       input.Excerpt,
		FeaturedImage: input.FeaturedImage,
		Status:        status,
		ReadingTime:   EstimateReadingTime(input.Body),
		Tags:          input.Tags,
		Featured:      input.Featured,
	}
	if status == model.ArticlePublished {
		now := time.Now()
		article.PublishedAt = &now
	}

	_, err := s.slugs.Allocate(ctx, input.Title,
		func(ctx context.Context, slug string) (bool, error) {
			return s.articles.SlugExists(ctx, slug, 0)
		},
		func(ctx context.Context, slug string) error {
			article.Slug = slug
			return s.articles.Create(ctx, article)
		},
	)
	if err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}
	return article, nil
}

func (s *articleService) Update(ctx context.Context, id uint, input UpdateArticleInput) (*model.Article, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load article: %w", err)
	}

	if input.Body != nil {
		article.Body = *input.Body
		article.ReadingTime = EstimateReadingTime(article.Body)
	}
	if input.Excerpt != nil {
		article.Excerpt = *input.Excerpt
	}
	if input.FeaturedImage != nil {
		article.FeaturedImage = *input.FeaturedImage
	}
	if input.Tags != nil {
		article.Tags = input.Tags
	}
	if input.Featured != nil {
		article.Featured = *input.Featured
	}
	if input.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, *input.CategoryID); err != nil {
			return nil, fmt.Errorf("load category: %w", err)
		}
		article.CategoryID = input.CategoryID
	}
	if input.Status != nil {
		// First transition into PUBLISHED stamps the publication time;
		// re-publishing after archival keeps the original stamp.
		if *input.Status == model.ArticlePublished && article.PublishedAt == nil {
			now := time.Now()
			article.PublishedAt = &now
		}
		article.Status = *input.Status
	}

	// The slug is only reallocated when the title actually changed.
	if input.Title != nil && *input.Title != article.Title {
		article.Title = *input.Title
		_, err = s.slugs.Allocate(ctx, article.Title,
			func(ctx context.Context, slug string) (bool, error) {
				return s.articles.SlugExists(ctx, slug, article.ID)
			},
			func(ctx context.Context, slug string) error {
				article.Slug = slug
				return s.articles.Update(ctx, article)
			},
		)
	} else {
		err = s.articles.Update(ctx, article)
	}
	if err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}
	return article, nil
}

func (s *articleService) Delete(ctx context.Context, id uint) error {
	if err := s.articles.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	return nil
}

func (s *articleService) GetByID(ctx context.Context, id uint) (*model.Article, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	return article, nil
}

func (s *articleService) List(ctx context.Context, filter repository.ArticleFilter) ([]model.Article, int64, error) {
	articles, total, err := s.articles.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list articles: %w", err)
	}
	return articles, total, nil
}

// ListPublished is the public listing: status is pinned to PUBLISHED and the
// category filter is resolved from its public slug.
func (s *articleService) ListPublished(ctx context.Context, filter PublicArticleFilter) ([]model.Article, int64, error) {
	repoFilter := repository.ArticleFilter{
		Status:   model.ArticlePublished,
		Tag:      filter.Tag,
		Search:   filter.Search,
		Featured: filter.Featured,
		Limit:    filter.Limit,
		Offset:   filter.Offset,
	}

	if filter.CategorySlug != "" {
		category, err := s.categories.GetBySlug(ctx, filter.CategorySlug)
		if err != nil {
			return nil, 0, fmt.Errorf("load category: %w", err)
		}
		repoFilter.CategoryID = &category.ID
	}

	articles, total, err := s.articles.List(ctx, repoFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("list published articles: %w", err)
	}
	return articles, total, nil
}

func (s *articleService) GetPublishedBySlug(ctx context.Context, slug string) (*model.Article, error) {
	article, err := s.articles.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	if article.Status != model.ArticlePublished {
		return nil, fmt.Errorf("get article: %w", repository.ErrArticleNotFound)
	}
	return article, nil
}

// RecordView stores at most one view per (article, IP) per server-local
// calendar day and bumps the view counter only when the event landed.
// Returns whether a new view was counted.
func (s *articleService) RecordView(ctx context.Context, articleID uint, ip, userAgent string) (bool, error) {
	now := time.Now()
	windowStart, windowEnd := dayWindow(now)

	view := &model.ArticleView{
		ID:        uuid.New().String(),
		ArticleID: articleID,
		IP:        ip,
		UserAgent: userAgent,
		Timestamp: now,
	}

	inserted, err := s.articles.RecordView(ctx, view, windowStart, windowEnd)
	if err != nil {
		return false, fmt.Errorf("record article view: %w", err)
	}

	if inserted {
		infraprom.ViewsRecorded.WithLabelValues("article").Inc()
	} else {
		infraprom.DuplicateViewsSuppressed.Inc()
	}
	return inserted, nil
}
