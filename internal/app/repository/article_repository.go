package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/linktrove/linktrove/internal/app/model"
	"gorm.io/gorm"
)

// ArticleFilter narrows article listings. Zero values mean "no filter".
type ArticleFilter struct {
	Status     string
	CategoryID *uint
	AuthorID   *uint
	Tag        string
	Search     string
	Featured   *bool
	Limit      int
	Offset     int
}

// ArticleRepository defines the data access contract for CMS articles.
type ArticleRepository interface {
	Create(ctx context.Context, article *model.Article) error
	GetByID(ctx context.Context, id uint) (*model.Article, error)
	GetBySlug(ctx context.Context, slug string) (*model.Article, error)
	List(ctx context.Context, filter ArticleFilter) ([]model.Article, int64, error)
	Update(ctx context.Context, article *model.Article) error
	Delete(ctx context.Context, id uint) error
	SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error)
	AllSlugs(ctx context.Context) ([]string, error)
	AllImagePaths(ctx context.Context) ([]string, error)
	RecordView(ctx context.Context, view *model.ArticleView, windowStart, windowEnd time.Time) (bool, error)
}

type articleRepository struct {
	db *gorm.DB
}

// NewArticleRepository returns a GORM-backed ArticleRepository.
func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) Create(ctx context.Context, article *model.Article) error {
	if err := r.db.WithContext(ctx).Create(article).Error; err != nil {
		if _, ok := uniqueViolation(err); ok {
			return ErrSlugTaken
		}
		return err
	}
	return nil
}

func (r *articleRepository) GetByID(ctx context.Context, id uint) (*model.Article, error) {
	var article model.Article
	if err := r.db.WithContext(ctx).First(&article, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) GetBySlug(ctx context.Context, slug string) (*model.Article, error) {
	var article model.Article
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&article).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) List(ctx context.Context, filter ArticleFilter) ([]model.Article, int64, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	q := r.db.WithContext(ctx).Model(&model.Article{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.CategoryID != nil {
		q = q.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.AuthorID != nil {
		q = q.Where("author_id = ?", *filter.AuthorID)
	}
	if filter.Tag != "" {
		// Tags are serialized as a JSON array in a text column; match the
		// quoted element.
		q = q.Where("tags LIKE ?", `%"`+filter.Tag+`"%`)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where("title ILIKE ? OR excerpt ILIKE ?", pattern, pattern)
	}
	if filter.Featured != nil {
		q = q.Where("featured = ?", *filter.Featured)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var result []model.Article
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&result).Error; err != nil {
		return nil, 0, err
	}

	return result, total, nil
}

// articleUpdateValues flattens the article into plain column assignments.
// GORM serializers do not run for map-based updates, so tags are marshaled
// here to land as a single JSON string bind value.
func articleUpdateValues(article *model.Article) (map[string]interface{}, error) {
	tags := article.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"category_id":    article.CategoryID,
		"title":          article.Title,
		"slug":           article.Slug,
		"body":           article.Body,
		"excerpt":        article.Excerpt,
		"featured_image": article.FeaturedImage,
		"status":         article.Status,
		"reading_time":   article.ReadingTime,
		"tags":           string(tagsJSON),
		"featured":       article.Featured,
		"published_at":   article.PublishedAt,
	}, nil
}

func (r *articleRepository) Update(ctx context.Context, article *model.Article) error {
	values, err := articleUpdateValues(article)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&model.Article{}).
		Where("id = ?", article.ID).
		Updates(values)

	if result.Error != nil {
		if _, ok := uniqueViolation(result.Error); ok {
			return ErrSlugTaken
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrArticleNotFound
	}

	return r.db.WithContext(ctx).First(article, article.ID).Error
}

func (r *articleRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.Article{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrArticleNotFound
	}
	return nil
}

func (r *articleRepository) SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error) {
	q := r.db.WithContext(ctx).Model(&model.Article{}).Where("slug = ?", slug)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *articleRepository) AllSlugs(ctx context.Context) ([]string, error) {
	var slugs []string
	if err := r.db.WithContext(ctx).Model(&model.Article{}).Pluck("slug", &slugs).Error; err != nil {
		return nil, err
	}
	return slugs, nil
}

func (r *articleRepository) AllImagePaths(ctx context.Context) ([]string, error) {
	var paths []string
	if err := r.db.WithContext(ctx).
		Model(&model.Article{}).
		Where("featured_image <> ''").
		Pluck("featured_image", &paths).Error; err != nil {
		return nil, err
	}
	return paths, nil
}

// RecordView inserts the view event unless one already exists for the same
// (article, IP) inside the window, and bumps the denormalized counter only
// when the insert landed. Both statements run in one transaction so the
// counter can never drift from the event log.
func (r *articleRepository) RecordView(ctx context.Context, view *model.ArticleView, windowStart, windowEnd time.Time) (bool, error) {
	inserted := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Exec(`
			INSERT INTO article_views (id, article_id, ip, user_agent, timestamp)
			SELECT ?, ?, ?, ?, ?
			WHERE NOT EXISTS (
				SELECT 1 FROM article_views
				WHERE article_id = ? AND ip = ? AND timestamp >= ? AND timestamp < ?
			)`,
			view.ID, view.ArticleID, view.IP, view.UserAgent, view.Timestamp,
			view.ArticleID, view.IP, windowStart, windowEnd,
		)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}

		inserted = true
		return tx.Model(&model.Article{}).
			Where("id = ?", view.ArticleID).
			Update("view_count", gorm.Expr("view_count + 1")).Error
	})
	if err != nil {
		return false, err
	}

	return inserted, nil
}
