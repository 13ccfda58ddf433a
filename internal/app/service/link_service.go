package service

import (
	"context"
	"fmt"

	"github.com/linktrove/linktrove/internal/app/model"
	"github.com/linktrove/linktrove/internal/app/repository"
)

// CreateLinkInput captures data required to create a link.
type CreateLinkInput struct {
	Title      string
	URL        string
	CategoryID *uint
	SortOrder  int
	Visible    bool
}

// UpdateLinkInput captures fields that can be changed on an existing link.
type UpdateLinkInput struct {
	Title      *string
	URL        *string
	CategoryID *uint
	SortOrder  *int
	Visible    *bool
}

// LinkService defines behaviour-level operations on a user's links.
type LinkService interface {
	Create(ctx context.Context, userID uint, input CreateLinkInput) (*model.DetailLink, error)
	Update(ctx context.Context, userID, linkID uint, input UpdateLinkInput) (*model.DetailLink, error)
	Delete(ctx context.Context, userID, linkID uint) error
	Reorder(ctx context.Context, userID uint, updates []repository.SortUpdate) error
	GetByID(ctx context.Context, linkID uint) (*model.DetailLink, error)
}

type linkService struct {
	links      repository.LinkRepository
	trees      repository.LinktreeRepository
	categories repository.CategoryRepository
	cache      *PageCache
}

// NewLinkService returns a service implementation backed by the given repositories.
func NewLinkService(
	links repository.LinkRepository,
	trees repository.LinktreeRepository,
	categories repository.CategoryRepository,
	cache *PageCache,
) LinkService {
	return &linkService{links: links, trees: trees, categories: categories, cache: cache}
}

func (s *linkService) Create(ctx context.Context, userID uint, input CreateLinkInput) (*model.DetailLink, error) {
	tree, err := s.trees.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load linktree: %w", err)
	}

	if input.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, *input.CategoryID); err != nil {
			return nil, fmt.Errorf("load category: %w", err)
		}
	}

	link := &model.DetailLink{
		LinktreeID: tree.ID,
		CategoryID: input.CategoryID,
		Title:      input.Title,
		URL:        input.URL,
		SortOrder:  input.SortOrder,
		Visible:    input.Visible,
	}
	if err := s.links.Create(ctx, link); err != nil {
		return nil, fmt.Errorf("create link: %w", err)
	}

	s.cache.Invalidate(ctx, tree.Slug)
	return link, nil
}

func (s *linkService) Update(ctx context.Context, userID, linkID uint, input UpdateLinkInput) (*model.DetailLink, error) {
	tree, link, err := s.loadOwned(ctx, userID, linkID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		link.Title = *input.Title
	}
	if input.URL != nil {
		link.URL = *input.URL
	}
	if input.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, *input.CategoryID); err != nil {
			return nil, fmt.Errorf("load category: %w", err)
		}
		link.CategoryID = input.CategoryID
	}
	if input.SortOrder != nil {
		link.SortOrder = *input.SortOrder
	}
	if input.Visible != nil {
		link.Visible = *input.Visible
	}

	if err := s.links.Update(ctx, link); err != nil {
		return nil, fmt.Errorf("update link: %w", err)
	}

	s.cache.Invalidate(ctx, tree.Slug)
	return link, nil
}

func (s *linkService) Delete(ctx context.Context, userID, linkID uint) error {
	tree, link, err := s.loadOwned(ctx, userID, linkID)
	if err != nil {
		return err
	}

	if err := s.links.Delete(ctx, link.ID); err != nil {
		return fmt.Errorf("delete link: %w", err)
	}

	s.cache.Invalidate(ctx, tree.Slug)
	return nil
}

// Reorder validates that every referenced link belongs to the caller's tree
// before anything is written: one foreign ID rejects the whole batch with
// zero rows changed. The batch itself commits in a single transaction.
func (s *linkService) Reorder(ctx context.Context, userID uint, updates []repository.SortUpdate) error {
	tree, err := s.trees.GetByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("load linktree: %w", err)
	}

	ids, err := s.links.IDsByLinktree(ctx, tree.ID)
	if err != nil {
		return fmt.Errorf("list link ids: %w", err)
	}

	owned := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		owned[id] = struct{}{}
	}
	for _, u := range updates {
		if _, ok := owned[u.LinkID]; !ok {
			return fmt.Errorf("link %d: %w", u.LinkID, ErrNotOwner)
		}
	}

	if err := s.links.Reorder(ctx, updates); err != nil {
		return fmt.Errorf("reorder links: %w", err)
	}

	s.cache.Invalidate(ctx, tree.Slug)
	return nil
}

// GetByID loads a link without an ownership check; used by the public click
// endpoint to confirm the target exists.
func (s *linkService) GetByID(ctx context.Context, linkID uint) (*model.DetailLink, error) {
	link, err := s.links.GetByID(ctx, linkID)
	if err != nil {
		return nil, fmt.Errorf("get link: %w", err)
	}
	return link, nil
}

func (s *linkService) loadOwned(ctx context.Context, userID, linkID uint) (*model.Linktree, *model.DetailLink, error) {
	tree, err := s.trees.GetByUserID(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("load linktree: %w", err)
	}

	link, err := s.links.GetByID(ctx, linkID)
	if err != nil {
		return nil, nil, fmt.Errorf("load link: %w", err)
	}
	if link.LinktreeID != tree.ID {
		return nil, nil, fmt.Errorf("link %d: %w", linkID, ErrNotOwner)
	}
	return tree, link, nil
}
