package repository

import (
	"context"
	"errors"

	"github.com/linktrove/linktrove/internal/app/model"
	"gorm.io/gorm"
)

// ArticleCategoryRepository defines the data access contract for article categories.
type ArticleCategoryRepository interface {
	Create(ctx context.Context, category *model.ArticleCategory) error
	GetByID(ctx context.Context, id uint) (*model.ArticleCategory, error)
	GetBySlug(ctx context.Context, slug string) (*model.ArticleCategory, error)
	List(ctx context.Context) ([]model.ArticleCategory, error)
	Update(ctx context.Context, category *model.ArticleCategory) error
	Delete(ctx context.Context, id uint) error
	SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error)
	AllSlugs(ctx context.Context) ([]string, error)
	CountArticles(ctx context.Context, categoryID uint) (int64, error)
}

type articleCategoryRepository struct {
	db *gorm.DB
}

// NewArticleCategoryRepository returns a GORM-backed ArticleCategoryRepository.
func NewArticleCategoryRepository(db *gorm.DB) ArticleCategoryRepository {
	return &articleCategoryRepository{db: db}
}

func (r *articleCategoryRepository) Create(ctx context.Context, category *model.ArticleCategory) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		if _, ok := uniqueViolation(err); ok {
			return ErrSlugTaken
		}
		return err
	}
	return nil
}

func (r *articleCategoryRepository) GetByID(ctx context.Context, id uint) (*model.ArticleCategory, error) {
	var category model.ArticleCategory
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *articleCategoryRepository) GetBySlug(ctx context.Context, slug string) (*model.ArticleCategory, error) {
	var category model.ArticleCategory
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *articleCategoryRepository) List(ctx context.Context) ([]model.ArticleCategory, error) {
	var result []model.ArticleCategory
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

func (r *articleCategoryRepository) Update(ctx context.Context, category *model.ArticleCategory) error {
	result := r.db.WithContext(ctx).
		Model(&model.ArticleCategory{}).
		Where("id = ?", category.ID).
		Updates(map[string]interface{}{
			"name":        category.Name,
			"slug":        category.Slug,
			"description": category.Description,
			"icon":        category.Icon,
			"color":       category.Color,
		})

	if result.Error != nil {
		if _, ok := uniqueViolation(result.Error); ok {
			return ErrSlugTaken
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrArticleCategoryNotFound
	}

	return r.db.WithContext(ctx).First(category, category.ID).Error
}

func (r *articleCategoryRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.ArticleCategory{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrArticleCategoryNotFound
	}
	return nil
}

func (r *articleCategoryRepository) SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error) {
	q := r.db.WithContext(ctx).Model(&model.ArticleCategory{}).Where("slug = ?", slug)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *articleCategoryRepository) AllSlugs(ctx context.Context) ([]string, error) {
	var slugs []string
	if err := r.db.WithContext(ctx).Model(&model.ArticleCategory{}).Pluck("slug", &slugs).Error; err != nil {
		return nil, err
	}
	return slugs, nil
}

func (r *articleCategoryRepository) CountArticles(ctx context.Context, categoryID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.Article{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
