package service

import (
	"context"
	"fmt"

	"github.com/linktrove/linktrove/internal/app/model"
	"github.com/linktrove/linktrove/internal/app/repository"
)

// CategoryInput captures the writable fields of a link category. Nil fields
// are left unchanged on update.
type CategoryInput struct {
	Name *string
	Icon *string
}

// CategoryService defines behaviour-level operations on link categories.
type CategoryService interface {
	Create(ctx context.Context, input CategoryInput) (*model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
	Update(ctx context.Context, id uint, input CategoryInput) (*model.Category, error)
	Delete(ctx context.Context, id uint) error
}

type categoryService struct {
	categories repository.CategoryRepository
	links      repository.LinkRepository
}

// NewCategoryService returns a service implementation backed by the given repositories.
func NewCategoryService(categories repository.CategoryRepository, links repository.LinkRepository) CategoryService {
	return &categoryService{categories: categories, links: links}
}

func (s *categoryService) Create(ctx context.Context, input CategoryInput) (*model.Category, error) {
	category := &model.Category{}
	if input.Name != nil {
		category.Name = *input.Name
	}
	if input.Icon != nil {
		category.Icon = *input.Icon
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

func (s *categoryService) List(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (s *categoryService) Update(ctx context.Context, id uint, input CategoryInput) (*model.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load category: %w", err)
	}

	if input.Name != nil {
		category.Name = *input.Name
	}
	if input.Icon != nil {
		category.Icon = *input.Icon
	}

	if err := s.categories.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return category, nil
}

// Delete removes a category unless any link still references it; in that
// case nothing is deleted and the caller gets a conflict.
func (s *categoryService) Delete(ctx context.Context, id uint) error {
	if _, err := s.categories.GetByID(ctx, id); err != nil {
		return fmt.Errorf("load category: %w", err)
	}

	refs, err := s.links.CountByCategory(ctx, id)
	if err != nil {
		return fmt.Errorf("count references: %w", err)
	}
	if refs > 0 {
		return fmt.Errorf("category %d has %d links: %w", id, refs, ErrCategoryInUse)
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
