//go:generate mockery --name SettingsRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"papervocab/internal/middleware"
	"papervocab/internal/model"
)

// settingsKey はユーザー設定を保存するKVのキー
const settingsKey = "settings"

// SettingsRepository はユーザー設定の読み書きを提供します
type SettingsRepository interface {
	Get(ctx context.Context) (model.Settings, error)
	Save(ctx context.Context, settings model.Settings) error
}

type kvSettingsRepository struct {
	kv KVStore
}

func NewKVSettingsRepository(kv KVStore) SettingsRepository {
	return &kvSettingsRepository{kv: kv}
}

// Get は保存済み設定をデフォルト値にマージして返します。
// 何も保存されていなければデフォルトをそのまま返す。
func (r *kvSettingsRepository) Get(ctx context.Context) (model.Settings, error) {
	logger := middleware.GetLogger(ctx)
	settings := model.DefaultSettings()

	raw, found, err := r.kv.Get(ctx, settingsKey)
	if err != nil {
		return settings, fmt.Errorf("kvSettingsRepository.Get: %w", err)
	}
	if !found {
		return settings, nil
	}
	// デフォルト値の上にデコードすることで、欠けているフィールドだけデフォルトが残る
	if err := json.Unmarshal(raw, &settings); err != nil {
		logger.Error("Corrupt settings in storage", "error", err)
		return model.DefaultSettings(), fmt.Errorf("kvSettingsRepository.Get: corrupt settings: %w", err)
	}
	if settings.ReviewBatchSize <= 0 {
		settings.ReviewBatchSize = model.DefaultSettings().ReviewBatchSize
	}
	return settings, nil
}

func (r *kvSettingsRepository) Save(ctx context.Context, settings model.Settings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("kvSettingsRepository.Save: %w", err)
	}
	if err := r.kv.Set(ctx, settingsKey, raw); err != nil {
		return fmt.Errorf("kvSettingsRepository.Save: %w", err)
	}
	return nil
}
