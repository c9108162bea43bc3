// internal/service/word_service.go
package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"papervocab/internal/middleware"
	"papervocab/internal/model"
	"papervocab/internal/repository"
)

// WordService は単語帳そのものの管理操作 (一覧・更新・削除・統計) を提供します
type WordService interface {
	List(ctx context.Context, query, sortBy string) ([]model.WordRecord, error)
	Get(ctx context.Context, id string) (*model.WordRecord, error)
	Patch(ctx context.Context, id string, req *model.PatchWordRequest) (*model.WordRecord, error)
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
	Stats(ctx context.Context) (*model.VocabStats, error)
}

type wordService struct {
	words repository.WordRepository
	now   func() time.Time
}

func NewWordService(words repository.WordRepository) WordService {
	return &wordService{words: words, now: time.Now}
}

func (s *wordService) List(ctx context.Context, query, sortBy string) ([]model.WordRecord, error) {
	records, err := s.words.GetAll(ctx)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "単語帳の読み込みに失敗しました。", "", model.ErrInternalServer)
	}

	if query != "" {
		q := strings.ToLower(strings.TrimSpace(query))
		filtered := make([]model.WordRecord, 0, len(records))
		for _, rec := range records {
			if strings.Contains(strings.ToLower(rec.Word), q) ||
				strings.Contains(strings.ToLower(rec.Definition), q) {
				filtered = append(filtered, rec)
			}
		}
		records = filtered
	}

	switch sortBy {
	case "created_at":
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].CreatedAt.After(records[j].CreatedAt)
		})
	case "word":
		sort.SliceStable(records, func(i, j int) bool {
			return strings.ToLower(records[i].Word) < strings.ToLower(records[j].Word)
		})
	default:
		// 既定は検索回数の多い順。よく調べる単語を先頭に出す。
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].QueryCount > records[j].QueryCount
		})
	}

	return records, nil
}

func (s *wordService) Get(ctx context.Context, id string) (*model.WordRecord, error) {
	records, err := s.words.GetAll(ctx)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "単語帳の読み込みに失敗しました。", "", model.ErrInternalServer)
	}
	for i := range records {
		if records[i].ID == id {
			rec := records[i]
			return &rec, nil
		}
	}
	return nil, model.NewAppError("WORD_NOT_FOUND", "指定された単語が見つかりません。", "word_id", model.ErrNotFound)
}

func (s *wordService) Patch(ctx context.Context, id string, req *model.PatchWordRequest) (*model.WordRecord, error) {
	logger := middleware.GetLogger(ctx).With("word_id", id)

	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	var persisted model.WordRecord
	err := s.words.Update(ctx, id, func(rec *model.WordRecord) {
		if req.Word != nil {
			rec.Word = *req.Word
		}
		if req.Phonetic != nil {
			rec.Phonetic = *req.Phonetic
		}
		if req.Definition != nil {
			rec.Definition = *req.Definition
		}
		if req.Example != nil {
			rec.Example = *req.Example
		}
		persisted = *rec
	})
	if err != nil {
		logger.Error("Failed to patch word", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "単語の更新に失敗しました。", "", model.ErrInternalServer)
	}
	logger.Info("Word patched")
	return &persisted, nil
}

func (s *wordService) Delete(ctx context.Context, id string) error {
	logger := middleware.GetLogger(ctx).With("word_id", id)

	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.words.Delete(ctx, id); err != nil {
		logger.Error("Failed to delete word", "error", err)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "単語の削除に失敗しました。", "", model.ErrInternalServer)
	}
	logger.Info("Word deleted")
	return nil
}

func (s *wordService) Clear(ctx context.Context) error {
	logger := middleware.GetLogger(ctx)
	if err := s.words.Clear(ctx); err != nil {
		logger.Error("Failed to clear vocabulary", "error", err)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "単語帳の全削除に失敗しました。", "", model.ErrInternalServer)
	}
	logger.Warn("Vocabulary cleared")
	return nil
}

func (s *wordService) Stats(ctx context.Context) (*model.VocabStats, error) {
	records, err := s.words.GetAll(ctx)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "単語帳の読み込みに失敗しました。", "", model.ErrInternalServer)
	}

	weekAgo := s.now().AddDate(0, 0, -7)
	stats := &model.VocabStats{Total: len(records)}
	for _, rec := range records {
		if !rec.CreatedAt.Before(weekAgo) {
			stats.ThisWeek++
		}
		if rec.Mastered {
			stats.Mastered++
		}
	}
	return stats, nil
}
