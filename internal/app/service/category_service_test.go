package service

import (
	"context"
	"errors"
	"testing"

	"github.com/linktrove/linktrove/internal/app/model"
)

func TestCategoryService_Delete_BlockedWhenReferenced(t *testing.T) {
	categories := &mockCategoryRepository{
		getByIDFn: func(ctx context.Context, id uint) (*model.Category, error) {
			return &model.Category{ID: id, Name: "Social"}, nil
		},
		deleteFn: func(ctx context.Context, id uint) error {
			t.Fatal("delete must not run for a referenced category")
			return nil
		},
	}
	links := &mockLinkRepository{
		countByCategoryFn: func(ctx context.Context, categoryID uint) (int64, error) {
			return 3, nil
		},
	}

	svc := NewCategoryService(categories, links)
	err := svc.Delete(context.Background(), 1)
	if !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("expected ErrCategoryInUse, got %v", err)
	}
}

func TestCategoryService_Delete_Unreferenced(t *testing.T) {
	deleted := false
	categories := &mockCategoryRepository{
		getByIDFn: func(ctx context.Context, id uint) (*model.Category, error) {
			return &model.Category{ID: id}, nil
		},
		deleteFn: func(ctx context.Context, id uint) error {
			deleted = true
			return nil
		},
	}

	svc := NewCategoryService(categories, &mockLinkRepository{})
	if err := svc.Delete(context.Background(), 1); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if !deleted {
		t.Fatal("expected repository delete to run")
	}
}

func TestCategoryService_Update_ClearsIcon(t *testing.T) {
	categories := &mockCategoryRepository{
		getByIDFn: func(ctx context.Context, id uint) (*model.Category, error) {
			return &model.Category{ID: id, Name: "Social", Icon: "camera"}, nil
		},
	}

	svc := NewCategoryService(categories, &mockLinkRepository{})
	icon := ""
	category, err := svc.Update(context.Background(), 1, CategoryInput{Icon: &icon})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if category.Icon != "" {
		t.Fatalf("icon not cleared, got %q", category.Icon)
	}
	if category.Name != "Social" {
		t.Fatalf("nil name must leave the name alone, got %q", category.Name)
	}
}

func TestArticleCategoryService_Delete_BlockedWhenReferenced(t *testing.T) {
	categories := &mockArticleCategoryRepository{
		getByIDFn: func(ctx context.Context, id uint) (*model.ArticleCategory, error) {
			return &model.ArticleCategory{ID: id, Name: "News"}, nil
		},
		countArticlesFn: func(ctx context.Context, categoryID uint) (int64, error) {
			return 1, nil
		},
		deleteFn: func(ctx context.Context, id uint) error {
			t.Fatal("delete must not run for a referenced article category")
			return nil
		},
	}

	svc := NewArticleCategoryService(categories, NewSlugAllocator(nil))
	err := svc.Delete(context.Background(), 2)
	if !errors.Is(err, ErrArticleCategoryInUse) {
		t.Fatalf("expected ErrArticleCategoryInUse, got %v", err)
	}
}

func TestArticleCategoryService_Create_AllocatesSlug(t *testing.T) {
	categories := &mockArticleCategoryRepository{}
	svc := NewArticleCategoryService(categories, NewSlugAllocator(nil))

	name := "Product News"
	category, err := svc.Create(context.Background(), ArticleCategoryInput{Name: &name})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if category.Slug != "product-news" {
		t.Fatalf("expected product-news, got %q", category.Slug)
	}
}

func TestArticleCategoryService_Update_UnchangedNameKeepsSlug(t *testing.T) {
	stored := &model.ArticleCategory{ID: 2, Name: "News", Slug: "news"}
	categories := &mockArticleCategoryRepository{
		getByIDFn: func(ctx context.Context, id uint) (*model.ArticleCategory, error) { return stored, nil },
		slugExistsFn: func(ctx context.Context, slug string, excludeID uint) (bool, error) {
			t.Fatal("slug probe must not run when the name is unchanged")
			return false, nil
		},
	}

	svc := NewArticleCategoryService(categories, NewSlugAllocator(nil))
	name := "News"
	description := "All the news"
	category, err := svc.Update(context.Background(), 2, ArticleCategoryInput{Name: &name, Description: &description})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if category.Slug != "news" {
		t.Fatalf("slug changed to %q", category.Slug)
	}
	if category.Description != "All the news" {
		t.Fatal("description not applied")
	}
}
