package repository

import (
	"context"
	"errors"

	"github.com/linktrove/linktrove/internal/app/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingRepository defines the data access contract for the typed
// key-value settings store.
type SettingRepository interface {
	Get(ctx context.Context, key string) (*model.Setting, error)
	List(ctx context.Context) ([]model.Setting, error)
	Upsert(ctx context.Context, setting *model.Setting) error
}

type settingRepository struct {
	db *gorm.DB
}

// NewSettingRepository returns a GORM-backed SettingRepository.
func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) Get(ctx context.Context, key string) (*model.Setting, error) {
	var setting model.Setting
	if err := r.db.WithContext(ctx).Where("key = ?", key).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}
		return nil, err
	}
	return &setting, nil
}

func (r *settingRepository) List(ctx context.Context) ([]model.Setting, error) {
	var result []model.Setting
	if err := r.db.WithContext(ctx).Order("key ASC").Find(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

// Upsert writes the setting in a single conflict-aware statement.
func (r *settingRepository) Upsert(ctx context.Context, setting *model.Setting) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"type", "value", "updated_at"}),
		}).
		Create(setting).Error
}
