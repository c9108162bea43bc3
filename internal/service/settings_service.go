// internal/service/settings_service.go
package service

import (
	"context"

	"papervocab/internal/middleware"
	"papervocab/internal/model"
	"papervocab/internal/repository"
)

// SettingsService はユーザー設定の取得と更新を提供します
type SettingsService interface {
	Get(ctx context.Context) (*model.Settings, error)
	Put(ctx context.Context, req *model.PutSettingsRequest) (*model.Settings, error)
}

type settingsService struct {
	settings repository.SettingsRepository
}

func NewSettingsService(settings repository.SettingsRepository) SettingsService {
	return &settingsService{settings: settings}
}

func (s *settingsService) Get(ctx context.Context) (*model.Settings, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "設定の読み込みに失敗しました。", "", model.ErrInternalServer)
	}
	return &settings, nil
}

// Put は設定全体を置き換えます。部分更新はサポートしない。
func (s *settingsService) Put(ctx context.Context, req *model.PutSettingsRequest) (*model.Settings, error) {
	logger := middleware.GetLogger(ctx)

	settings := model.Settings{
		LLMProvider:     req.LLMProvider,
		APIKey:          req.APIKey,
		APIBaseURL:      req.APIBaseURL,
		ModelName:       req.ModelName,
		TriggerMode:     req.TriggerMode,
		Hotkey:          req.Hotkey,
		ReviewBatchSize: req.ReviewBatchSize,
	}
	if settings.TriggerMode == "" {
		settings.TriggerMode = model.DefaultSettings().TriggerMode
	}

	if err := s.settings.Save(ctx, settings); err != nil {
		logger.Error("Failed to save settings", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "設定の保存に失敗しました。", "", model.ErrInternalServer)
	}
	logger.Info("Settings updated", "provider", string(settings.LLMProvider), "model", settings.ModelName)
	return &settings, nil
}
