package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/linktrove/linktrove/internal/app/model"
	"github.com/linktrove/linktrove/internal/app/repository"
)

// SettingsService defines behaviour-level operations on the typed key-value
// site configuration store.
type SettingsService interface {
	Get(ctx context.Context, key string) (*model.Setting, error)
	List(ctx context.Context) ([]model.Setting, error)
	Set(ctx context.Context, key, valueType, value string) (*model.Setting, error)
}

type settingsService struct {
	settings repository.SettingRepository
}

// NewSettingsService returns a service implementation backed by the given repository.
func NewSettingsService(settings repository.SettingRepository) SettingsService {
	return &settingsService{settings: settings}
}

// Get falls back to the built-in default when a key has never been written.
func (s *settingsService) Get(ctx context.Context, key string) (*model.Setting, error) {
	setting, err := s.settings.Get(ctx, key)
	if err == nil {
		return setting, nil
	}
	if def, ok := model.DefaultSettings[key]; ok {
		return &def, nil
	}
	return nil, fmt.Errorf("get setting: %w", err)
}

// List merges stored settings over the defaults, sorted by key.
func (s *settingsService) List(ctx context.Context) ([]model.Setting, error) {
	stored, err := s.settings.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}

	merged := make(map[string]model.Setting, len(model.DefaultSettings)+len(stored))
	for key, def := range model.DefaultSettings {
		merged[key] = def
	}
	for _, setting := range stored {
		merged[setting.Key] = setting
	}

	result := make([]model.Setting, 0, len(merged))
	for _, setting := range merged {
		result = append(result, setting)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Key < result[j].Key })
	return result, nil
}

// Set validates the value against its declared type before persisting.
func (s *settingsService) Set(ctx context.Context, key, valueType, value string) (*model.Setting, error) {
	if !model.ValidSettingType(valueType) {
		return nil, fmt.Errorf("type %q: %w", valueType, ErrInvalidSettingValue)
	}
	if err := validateSettingValue(valueType, value); err != nil {
		return nil, err
	}

	setting := &model.Setting{Key: key, Type: valueType, Value: value}
	if err := s.settings.Upsert(ctx, setting); err != nil {
		return nil, fmt.Errorf("save setting: %w", err)
	}
	return setting, nil
}

func validateSettingValue(valueType, value string) error {
	switch valueType {
	case model.SettingBoolean:
		if _, err := strconv.ParseBool(value); err != nil {
			return fmt.Errorf("value %q is not a boolean: %w", value, ErrInvalidSettingValue)
		}
	case model.SettingNumber:
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return fmt.Errorf("value %q is not a number: %w", value, ErrInvalidSettingValue)
		}
	case model.SettingJSON:
		if !json.Valid([]byte(value)) {
			return fmt.Errorf("value is not valid JSON: %w", ErrInvalidSettingValue)
		}
	}
	return nil
}
