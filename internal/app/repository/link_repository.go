package repository

import (
	"context"
	"errors"

	"github.com/linktrove/linktrove/internal/app/model"
	"gorm.io/gorm"
)

// SortUpdate is one (link, position) pair of a reorder batch.
type SortUpdate struct {
	LinkID    uint `json:"link_id"`
	SortOrder int  `json:"sort_order"`
}

// LinkRepository defines the data access contract for detail links.
type LinkRepository interface {
	Create(ctx context.Context, link *model.DetailLink) error
	GetByID(ctx context.Context, id uint) (*model.DetailLink, error)
	ListByLinktree(ctx context.Context, linktreeID uint, visibleOnly bool) ([]model.DetailLink, error)
	IDsByLinktree(ctx context.Context, linktreeID uint) ([]uint, error)
	Update(ctx context.Context, link *model.DetailLink) error
	Delete(ctx context.Context, id uint) error
	Reorder(ctx context.Context, updates []SortUpdate) error
	CountByCategory(ctx context.Context, categoryID uint) (int64, error)
}

type linkRepository struct {
	db *gorm.DB
}

// NewLinkRepository returns a GORM-backed LinkRepository.
func NewLinkRepository(db *gorm.DB) LinkRepository {
	return &linkRepository{db: db}
}

func (r *linkRepository) Create(ctx context.Context, link *model.DetailLink) error {
	return r.db.WithContext(ctx).Create(link).Error
}

func (r *linkRepository) GetByID(ctx context.Context, id uint) (*model.DetailLink, error) {
	var link model.DetailLink
	if err := r.db.WithContext(ctx).First(&link, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, err
	}
	return &link, nil
}

// ListByLinktree returns the tree's links in display order. SortOrder ties
// resolve by ID so the order is stable.
func (r *linkRepository) ListByLinktree(ctx context.Context, linktreeID uint, visibleOnly bool) ([]model.DetailLink, error) {
	q := r.db.WithContext(ctx).Where("linktree_id = ?", linktreeID)
	if visibleOnly {
		q = q.Where("visible = ?", true)
	}

	var result []model.DetailLink
	if err := q.Order("sort_order ASC, id ASC").Find(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

func (r *linkRepository) IDsByLinktree(ctx context.Context, linktreeID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&model.DetailLink{}).
		Where("linktree_id = ?", linktreeID).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *linkRepository) Update(ctx context.Context, link *model.DetailLink) error {
	result := r.db.WithContext(ctx).
		Model(&model.DetailLink{}).
		Where("id = ?", link.ID).
		Updates(map[string]interface{}{
			"title":       link.Title,
			"url":         link.URL,
			"category_id": link.CategoryID,
			"sort_order":  link.SortOrder,
			"visible":     link.Visible,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLinkNotFound
	}

	return r.db.WithContext(ctx).First(link, link.ID).Error
}

func (r *linkRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.DetailLink{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLinkNotFound
	}
	return nil
}

// Reorder applies all position updates in one transaction so readers never
// observe a partially reordered list. Ownership is validated by the caller
// before this runs.
func (r *linkRepository) Reorder(ctx context.Context, updates []SortUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			result := tx.Model(&model.DetailLink{}).
				Where("id = ?", u.LinkID).
				Update("sort_order", u.SortOrder)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrLinkNotFound
			}
		}
		return nil
	})
}

func (r *linkRepository) CountByCategory(ctx context.Context, categoryID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.DetailLink{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
