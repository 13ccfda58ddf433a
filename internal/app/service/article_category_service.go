package service

import (
	"context"
	"fmt"

	"github.com/linktrove/linktrove/internal/app/model"
	"github.com/linktrove/linktrove/internal/app/repository"
)

// ArticleCategoryInput captures the writable fields of an article category.
type ArticleCategoryInput struct {
	Name        *string
	Description *string
	Icon        *string
	Color       *string
}

// ArticleCategoryService defines behaviour-level operations on article categories.
type ArticleCategoryService interface {
	Create(ctx context.Context, input ArticleCategoryInput) (*model.ArticleCategory, error)
	List(ctx context.Context) ([]model.ArticleCategory, error)
	Update(ctx context.Context, id uint, input ArticleCategoryInput) (*model.ArticleCategory, error)
	Delete(ctx context.Context, id uint) error
}

type articleCategoryService struct {
	categories repository.ArticleCategoryRepository
	slugs      *SlugAllocator
}

// NewArticleCategoryService returns a service implementation backed by the given repository.
func NewArticleCategoryService(categories repository.ArticleCategoryRepository, slugs *SlugAllocator) ArticleCategoryService {
	return &articleCategoryService{categories: categories, slugs: slugs}
}

func (s *articleCategoryService) Create(ctx context.Context, input ArticleCategoryInput) (*model.ArticleCategory, error) {
	name := ""
	if input.Name != nil {
		name = *input.Name
	}

	category := &model.ArticleCategory{Name: name}
	if input.Description != nil {
		category.Description = *input.Description
	}
	if input.Icon != nil {
		category.Icon = *input.Icon
	}
	if input.Color != nil {
		category.Color = *input.Color
	}

	_, err := s.slugs.Allocate(ctx, name,
		func(ctx context.Context, slug string) (bool, error) {
			return s.categories.SlugExists(ctx, slug, 0)
		},
		func(ctx context.Context, slug string) error {
			category.Slug = slug
			return s.categories.Create(ctx, category)
		},
	)
	if err != nil {
		return nil, fmt.Errorf("create article category: %w", err)
	}
	return category, nil
}

func (s *articleCategoryService) List(ctx context.Context) ([]model.ArticleCategory, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list article categories: %w", err)
	}
	return categories, nil
}

func (s *articleCategoryService) Update(ctx context.Context, id uint, input ArticleCategoryInput) (*model.ArticleCategory, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load article category: %w", err)
	}

	if input.Description != nil {
		category.Description = *input.Description
	}
	if input.Icon != nil {
		category.Icon = *input.Icon
	}
	if input.Color != nil {
		category.Color = *input.Color
	}

	// Renaming reallocates the slug; an unchanged name leaves it alone.
	if input.Name != nil && *input.Name != category.Name {
		category.Name = *input.Name
		_, err = s.slugs.Allocate(ctx, category.Name,
			func(ctx context.Context, slug string) (bool, error) {
				return s.categories.SlugExists(ctx, slug, category.ID)
			},
			func(ctx context.Context, slug string) error {
				category.Slug = slug
				return s.categories.Update(ctx, category)
			},
		)
	} else {
		err = s.categories.Update(ctx, category)
	}
	if err != nil {
		return nil, fmt.Errorf("update article category: %w", err)
	}
	return category, nil
}

func (s *articleCategoryService) Delete(ctx context.Context, id uint) error {
	if _, err := s.categories.GetByID(ctx, id); err != nil {
		return fmt.Errorf("load article category: %w", err)
	}

	refs, err := s.categories.CountArticles(ctx, id)
	if err != nil {
		return fmt.Errorf("count references: %w", err)
	}
	if refs > 0 {
		return fmt.Errorf("article category %d has %d articles: %w", id, refs, ErrArticleCategoryInUse)
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete article category: %w", err)
	}
	return nil
}
