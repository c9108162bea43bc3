// internal/service/impex_service.go
package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"papervocab/internal/middleware"
	"papervocab/internal/model"
	"papervocab/internal/repository"

	"github.com/google/uuid"
)

// ImpexService は単語帳のエクスポート/インポートを提供します
type ImpexService interface {
	Export(ctx context.Context) (*model.ExportSnapshot, error)
	// Import はエクスポートファイルまたは素の配列を取り込み、追加件数を返します
	Import(ctx context.Context, raw []byte) (int, error)
}

type impexService struct {
	words repository.WordRepository
	now   func() time.Time
}

func NewImpexService(words repository.WordRepository) ImpexService {
	return &impexService{words: words, now: time.Now}
}

func (s *impexService) Export(ctx context.Context) (*model.ExportSnapshot, error) {
	records, err := s.words.GetAll(ctx)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "単語帳の読み込みに失敗しました。", "", model.ErrInternalServer)
	}
	return &model.ExportSnapshot{
		Version:    model.ExportVersion,
		ExportedAt: s.now(),
		Words:      records,
	}, nil
}

// Import は2つの形式を受け付けます: エクスポートファイル ({"words": [...]})
// と素の配列 ([...]). どちらでもない場合はストアに触れずにエラーを返す。
func (s *impexService) Import(ctx context.Context, raw []byte) (int, error) {
	logger := middleware.GetLogger(ctx)

	incoming, err := decodeImportPayload(raw)
	if err != nil {
		return 0, err
	}

	existing, err := s.words.GetAll(ctx)
	if err != nil {
		return 0, model.NewAppError("INTERNAL_SERVER_ERROR", "単語帳の読み込みに失敗しました。", "", model.ErrInternalServer)
	}

	// 既存分とインポート分の両方に対して原形 (小文字) で重複排除する
	seen := make(map[string]bool, len(existing))
	for _, rec := range existing {
		seen[strings.ToLower(rec.Word)] = true
	}

	merged := existing
	added := 0
	now := s.now()
	for _, rec := range incoming {
		if rec.Word == "" {
			continue
		}
		key := strings.ToLower(rec.Word)
		if seen[key] {
			continue
		}
		seen[key] = true

		if rec.ID == "" {
			rec.ID = uuid.NewString()
		}
		if rec.CreatedAt.IsZero() {
			rec.CreatedAt = now
		}
		if rec.UpdatedAt.IsZero() {
			rec.UpdatedAt = now
		}
		if rec.QueryCount < 1 {
			rec.QueryCount = 1
		}
		// mastered はファイルの値を信用せず習熟度から導出し直す
		rec.SetMasteryLevel(rec.MasteryLevel)

		merged = append(merged, rec)
		added++
	}

	if added > 0 {
		if err := s.words.Replace(ctx, merged); err != nil {
			logger.Error("Failed to persist imported words", "error", err)
			return 0, model.NewAppError("INTERNAL_SERVER_ERROR", "インポート結果の保存に失敗しました。", "", model.ErrInternalServer)
		}
	}

	logger.Info("Words imported", "received", len(incoming), "added", added)
	return added, nil
}

func decodeImportPayload(raw []byte) ([]model.WordRecord, error) {
	var snapshot model.ExportSnapshot
	if err := json.Unmarshal(raw, &snapshot); err == nil && snapshot.Words != nil {
		return snapshot.Words, nil
	}

	var records []model.WordRecord
	if err := json.Unmarshal(raw, &records); err == nil && records != nil {
		return records, nil
	}

	return nil, model.NewAppError("INVALID_IMPORT_FORMAT", "インポートファイルの形式が不正です。", "", model.ErrInvalidInput)
}
