package service

import (
	"context"
	"errors"
	"testing"

	"github.com/linktrove/linktrove/internal/app/model"
	"github.com/linktrove/linktrove/internal/app/repository"
)

func TestSettingsService_Get_FallsBackToDefault(t *testing.T) {
	svc := NewSettingsService(&mockSettingRepository{})

	setting, err := svc.Get(context.Background(), "registration_open")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if setting.Value != "true" || setting.Type != model.SettingBoolean {
		t.Fatalf("unexpected default: %+v", setting)
	}
}

func TestSettingsService_Get_UnknownKey(t *testing.T) {
	svc := NewSettingsService(&mockSettingRepository{})

	_, err := svc.Get(context.Background(), "no_such_key")
	if !errors.Is(err, repository.ErrSettingNotFound) {
		t.Fatalf("expected ErrSettingNotFound, got %v", err)
	}
}

func TestSettingsService_Get_StoredWinsOverDefault(t *testing.T) {
	settings := &mockSettingRepository{
		getFn: func(ctx context.Context, key string) (*model.Setting, error) {
			return &model.Setting{Key: key, Type: model.SettingBoolean, Value: "false"}, nil
		},
	}
	svc := NewSettingsService(settings)

	setting, err := svc.Get(context.Background(), "registration_open")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if setting.Value != "false" {
		t.Fatalf("stored value should win, got %q", setting.Value)
	}
}

func TestSettingsService_List_MergesDefaults(t *testing.T) {
	settings := &mockSettingRepository{
		listFn: func(ctx context.Context) ([]model.Setting, error) {
			return []model.Setting{
				{Key: "site_name", Type: model.SettingString, Value: "My Shop"},
				{Key: "custom_key", Type: model.SettingString, Value: "x"},
			}, nil
		},
	}
	svc := NewSettingsService(settings)

	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	byKey := make(map[string]model.Setting, len(list))
	for _, s := range list {
		byKey[s.Key] = s
	}
	if byKey["site_name"].Value != "My Shop" {
		t.Fatal("stored site_name should override the default")
	}
	if _, ok := byKey["registration_open"]; !ok {
		t.Fatal("defaults missing from merged list")
	}
	if _, ok := byKey["custom_key"]; !ok {
		t.Fatal("stored non-default key missing from merged list")
	}
}

func TestSettingsService_Set_TypeValidation(t *testing.T) {
	svc := NewSettingsService(&mockSettingRepository{})
	ctx := context.Background()

	cases := []struct {
		valueType string
		value     string
		ok        bool
	}{
		{model.SettingBoolean, "true", true},
		{model.SettingBoolean, "yes", false},
		{model.SettingNumber, "12.5", true},
		{model.SettingNumber, "twelve", false},
		{model.SettingJSON, `{"a":1}`, true},
		{model.SettingJSON, `{"a":`, false},
		{model.SettingString, "anything goes", true},
		{"enum", "x", false},
	}

	for _, tc := range cases {
		_, err := svc.Set(ctx, "k", tc.valueType, tc.value)
		if tc.ok && err != nil {
			t.Errorf("Set(%s, %q) unexpected error: %v", tc.valueType, tc.value, err)
		}
		if !tc.ok && !errors.Is(err, ErrInvalidSettingValue) {
			t.Errorf("Set(%s, %q) expected ErrInvalidSettingValue, got %v", tc.valueType, tc.value, err)
		}
	}
}

func TestSettingsService_Set_Persists(t *testing.T) {
	var saved *model.Setting
	settings := &mockSettingRepository{
		upsertFn: func(ctx context.Context, setting *model.Setting) error {
			saved = setting
			return nil
		},
	}
	svc := NewSettingsService(settings)

	_, err := svc.Set(context.Background(), "articles_per_page", model.SettingNumber, "25")
	if err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if saved == nil || saved.Key != "articles_per_page" || saved.Value != "25" {
		t.Fatalf("unexpected upsert payload: %+v", saved)
	}
}
