package repository

import (
	"context"
	"time"

	"github.com/linktrove/linktrove/internal/app/model"
	"gorm.io/gorm"
)

// EventRepository defines the data access contract for the append-only
// engagement event logs.
type EventRepository interface {
	CreateLinktreeView(ctx context.Context, view *model.LinktreeView) error
	CreateLinkClick(ctx context.Context, click *model.LinkClick) error
	PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository returns a GORM-backed EventRepository.
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) CreateLinktreeView(ctx context.Context, view *model.LinktreeView) error {
	return r.db.WithContext(ctx).Create(view).Error
}

func (r *eventRepository) CreateLinkClick(ctx context.Context, click *model.LinkClick) error {
	return r.db.WithContext(ctx).Create(click).Error
}

// PruneOlderThan deletes events recorded before cutoff from all three event
// logs and returns the total number of rows removed. Article view counters
// are not decremented; they represent lifetime totals.
func (r *eventRepository) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var removed int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, target := range []interface{}{
			&model.LinktreeView{},
			&model.LinkClick{},
			&model.ArticleView{},
		} {
			result := tx.Where("timestamp < ?", cutoff).Delete(target)
			if result.Error != nil {
				return result.Error
			}
			removed += result.RowsAffected
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return removed, nil
}
