package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/linktrove/linktrove/internal/app/model"
	"gorm.io/gorm"
)

// LinktreeRepository defines the data access contract for linktrees.
type LinktreeRepository interface {
	Create(ctx context.Context, tree *model.Linktree) error
	GetByUserID(ctx context.Context, userID uint) (*model.Linktree, error)
	GetBySlug(ctx context.Context, slug string) (*model.Linktree, error)
	Update(ctx context.Context, tree *model.Linktree) error
	SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error)
	AllSlugs(ctx context.Context) ([]string, error)
	AllPhotoURLs(ctx context.Context) ([]string, error)
}

type linktreeRepository struct {
	db *gorm.DB
}

// NewLinktreeRepository returns a GORM-backed LinktreeRepository.
func NewLinktreeRepository(db *gorm.DB) LinktreeRepository {
	return &linktreeRepository{db: db}
}

func (r *linktreeRepository) Create(ctx context.Context, tree *model.Linktree) error {
	if err := r.db.WithContext(ctx).Create(tree).Error; err != nil {
		if constraint, ok := uniqueViolation(err); ok {
			if strings.Contains(constraint, "user_id") {
				return ErrLinktreeExists
			}
			return ErrSlugTaken
		}
		return err
	}
	return nil
}

func (r *linktreeRepository) GetByUserID(ctx context.Context, userID uint) (*model.Linktree, error) {
	var tree model.Linktree
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&tree).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLinktreeNotFound
		}
		return nil, err
	}
	return &tree, nil
}

func (r *linktreeRepository) GetBySlug(ctx context.Context, slug string) (*model.Linktree, error) {
	var tree model.Linktree
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&tree).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLinktreeNotFound
		}
		return nil, err
	}
	return &tree, nil
}

func (r *linktreeRepository) Update(ctx context.Context, tree *model.Linktree) error {
	result := r.db.WithContext(ctx).
		Model(&model.Linktree{}).
		Where("id = ?", tree.ID).
		Updates(map[string]interface{}{
			"title":     tree.Title,
			"slug":      tree.Slug,
			"photo_url": tree.PhotoURL,
			"active":    tree.Active,
		})

	if result.Error != nil {
		if _, ok := uniqueViolation(result.Error); ok {
			return ErrSlugTaken
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLinktreeNotFound
	}

	return r.db.WithContext(ctx).First(tree, tree.ID).Error
}

// SlugExists reports whether slug is taken by a row other than excludeID.
// excludeID zero means no exclusion.
func (r *linktreeRepository) SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error) {
	q := r.db.WithContext(ctx).Model(&model.Linktree{}).Where("slug = ?", slug)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *linktreeRepository) AllSlugs(ctx context.Context) ([]string, error) {
	var slugs []string
	if err := r.db.WithContext(ctx).Model(&model.Linktree{}).Pluck("slug", &slugs).Error; err != nil {
		return nil, err
	}
	return slugs, nil
}

func (r *linktreeRepository) AllPhotoURLs(ctx context.Context) ([]string, error) {
	var urls []string
	if err := r.db.WithContext(ctx).
		Model(&model.Linktree{}).
		Where("photo_url <> ''").
		Pluck("photo_url", &urls).Error; err != nil {
		return nil, err
	}
	return urls, nil
}
