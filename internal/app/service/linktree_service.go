package service

import (
	"context"
	"fmt"

	"github.com/linktrove/linktrove/internal/app/model"
	"github.com/linktrove/linktrove/internal/app/repository"
)

// CreateLinktreeInput captures data required to create a linktree.
type CreateLinktreeInput struct {
	Title    string
	PhotoURL string
}

// UpdateLinktreeInput captures fields that can be changed on a linktree.
type UpdateLinktreeInput struct {
	Title    *string
	PhotoURL *string
	Active   *bool
}

// PublicLinktree is the page payload served to anonymous visitors: the tree
// plus its visible links in display order.
type PublicLinktree struct {
	Linktree model.Linktree     `json:"linktree"`
	Links    []model.DetailLink `json:"links"`
}

// LinktreeService defines behaviour-level operations on linktrees.
type LinktreeService interface {
	GetOwn(ctx context.Context, userID uint) (*model.Linktree, []model.DetailLink, error)
	Create(ctx context.Context, userID uint, input CreateLinktreeInput) (*model.Linktree, error)
	Update(ctx context.Context, userID uint, input UpdateLinktreeInput) (*model.Linktree, error)
	GetPublicBySlug(ctx context.Context, slug string) (*PublicLinktree, error)
}

type linktreeService struct {
	trees repository.LinktreeRepository
	links repository.LinkRepository
	slugs *SlugAllocator
	cache *PageCache
}

// NewLinktreeService returns a service implementation backed by the given repositories.
func NewLinktreeService(
	trees repository.LinktreeRepository,
	links repository.LinkRepository,
	slugs *SlugAllocator,
	cache *PageCache,
) LinktreeService {
	return &linktreeService{trees: trees, links: links, slugs: slugs, cache: cache}
}

func (s *linktreeService) GetOwn(ctx context.Context, userID uint) (*model.Linktree, []model.DetailLink, error) {
	tree, err := s.trees.GetByUserID(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("get linktree: %w", err)
	}

	links, err := s.links.ListByLinktree(ctx, tree.ID, false)
	if err != nil {
		return nil, nil, fmt.Errorf("list links: %w", err)
	}
	return tree, links, nil
}

// Create sets up the caller's single linktree. The slug comes from the
// allocator; the one-tree-per-user rule rests on the user_id unique index.
func (s *linktreeService) Create(ctx context.Context, userID uint, input CreateLinktreeInput) (*model.Linktree, error) {
	tree := &model.Linktree{
		UserID:   userID,
		Title:    input.Title,
		PhotoURL: input.PhotoURL,
		Active:   true,
	}

	_, err := s.slugs.Allocate(ctx, input.Title,
		func(ctx context.Context, slug string) (bool, error) {
			return s.trees.SlugExists(ctx, slug, 0)
		},
		func(ctx context.Context, slug string) error {
			tree.Slug = slug
			return s.trees.Create(ctx, tree)
		},
	)
	if err != nil {
		return nil, fmt.Errorf("create linktree: %w", err)
	}
	return tree, nil
}

func (s *linktreeService) Update(ctx context.Context, userID uint, input UpdateLinktreeInput) (*model.Linktree, error) {
	tree, err := s.trees.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load linktree: %w", err)
	}
	oldSlug := tree.Slug

	if input.PhotoURL != nil {
		tree.PhotoURL = *input.PhotoURL
	}
	if input.Active != nil {
		tree.Active = *input.Active
	}

	// The slug is only reallocated when the title actually changed.
	if input.Title != nil && *input.Title != tree.Title {
		tree.Title = *input.Title
		_, err = s.slugs.Allocate(ctx, tree.Title,
			func(ctx context.Context, slug string) (bool, error) {
				return s.trees.SlugExists(ctx, slug, tree.ID)
			},
			func(ctx context.Context, slug string) error {
				tree.Slug = slug
				return s.trees.Update(ctx, tree)
			},
		)
	} else {
		if input.Title != nil {
			tree.Title = *input.Title
		}
		err = s.trees.Update(ctx, tree)
	}
	if err != nil {
		return nil, fmt.Errorf("update linktree: %w", err)
	}

	s.cache.Invalidate(ctx, oldSlug)
	if tree.Slug != oldSlug {
		s.cache.Invalidate(ctx, tree.Slug)
	}
	return tree, nil
}

// GetPublicBySlug serves the anonymous page: active trees only, visible
// links only, in display order. Responses are cached briefly in Redis.
func (s *linktreeService) GetPublicBySlug(ctx context.Context, slug string) (*PublicLinktree, error) {
	var cached PublicLinktree
	if s.cache.Get(ctx, slug, &cached) {
		return &cached, nil
	}

	tree, err := s.trees.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get linktree: %w", err)
	}
	if !tree.Active {
		return nil, fmt.Errorf("get linktree: %w", repository.ErrLinktreeNotFound)
	}

	links, err := s.links.ListByLinktree(ctx, tree.ID, true)
	if err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}

	page := &PublicLinktree{Linktree: *tree, Links: links}
	s.cache.Set(ctx, slug, page)
	return page, nil
}
