// internal/service/word_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"papervocab/internal/model"
	"papervocab/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupWordTest(t *testing.T) (*wordService, repository.WordRepository) {
	t.Helper()
	wordRepo := repository.NewKVWordRepository(repository.NewMemoryKVStore())
	svc := NewWordService(wordRepo).(*wordService)
	return svc, wordRepo
}

func seedWord(t *testing.T, repo repository.WordRepository, id, word string, mutate func(*model.WordRecord)) {
	t.Helper()
	now := time.Now()
	rec := model.WordRecord{
		ID:         id,
		Word:       word,
		Definition: "def-" + word,
		QueryCount: 1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	rec.SetMasteryLevel(0)
	if mutate != nil {
		mutate(&rec)
	}
	require.NoError(t, repo.Create(context.Background(), &rec))
}

func TestWordService_List(t *testing.T) {
	ctx := context.Background()
	svc, repo := setupWordTest(t)
	seedWord(t, repo, "id-1", "alpha", func(r *model.WordRecord) {
		r.QueryCount = 1
		r.CreatedAt = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	})
	seedWord(t, repo, "id-2", "Beta", func(r *model.WordRecord) {
		r.QueryCount = 5
		r.CreatedAt = time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)
	})
	seedWord(t, repo, "id-3", "gamma", func(r *model.WordRecord) {
		r.QueryCount = 3
		r.CreatedAt = time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)
		r.Definition = "含有 alpha 的释义"
	})

	tests := []struct {
		name    string
		query   string
		sortBy  string
		wantIDs []string
	}{
		{
			name:    "正常系: 既定は検索回数の多い順",
			wantIDs: []string{"id-2", "id-3", "id-1"},
		},
		{
			name:    "正常系: 登録日時の新しい順",
			sortBy:  "created_at",
			wantIDs: []string{"id-2", "id-3", "id-1"},
		},
		{
			name:    "正常系: アルファベット順 (大文字小文字は無視)",
			sortBy:  "word",
			wantIDs: []string{"id-1", "id-2", "id-3"},
		},
		{
			name:    "正常系: 単語と定義の両方から絞り込む",
			query:   "alpha",
			wantIDs: []string{"id-3", "id-1"},
		},
		{
			name:    "正常系: 絞り込みは大文字小文字を無視",
			query:   "BETA",
			wantIDs: []string{"id-2"},
		},
		{
			name:    "正常系: 一致なしは空",
			query:   "zzz",
			wantIDs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := svc.List(ctx, tt.query, tt.sortBy)
			require.NoError(t, err)
			gotIDs := make([]string, 0, len(records))
			for _, rec := range records {
				gotIDs = append(gotIDs, rec.ID)
			}
			assert.Equal(t, tt.wantIDs, gotIDs)
		})
	}
}

func TestWordService_Get(t *testing.T) {
	ctx := context.Background()
	svc, repo := setupWordTest(t)
	seedWord(t, repo, "id-1", "alpha", nil)

	t.Run("正常系: IDで取得", func(t *testing.T) {
		rec, err := svc.Get(ctx, "id-1")
		require.NoError(t, err)
		assert.Equal(t, "alpha", rec.Word)
	})

	t.Run("異常系: 存在しないID", func(t *testing.T) {
		_, err := svc.Get(ctx, "missing")
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestWordService_Patch(t *testing.T) {
	ctx := context.Background()
	svc, repo := setupWordTest(t)
	seedWord(t, repo, "id-1", "alpha", nil)

	t.Run("正常系: 指定フィールドだけ更新される", func(t *testing.T) {
		newDef := "新しい释义"
		rec, err := svc.Patch(ctx, "id-1", &model.PatchWordRequest{Definition: &newDef})
		require.NoError(t, err)
		assert.Equal(t, "新しい释义", rec.Definition)
		// 指定しなかったフィールドは変わらない
		assert.Equal(t, "alpha", rec.Word)

		stored, err := svc.Get(ctx, "id-1")
		require.NoError(t, err)
		assert.Equal(t, "新しい释义", stored.Definition)
	})

	t.Run("異常系: 存在しないID", func(t *testing.T) {
		newDef := "x"
		_, err := svc.Patch(ctx, "missing", &model.PatchWordRequest{Definition: &newDef})
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestWordService_DeleteとClear(t *testing.T) {
	ctx := context.Background()
	svc, repo := setupWordTest(t)
	seedWord(t, repo, "id-1", "alpha", nil)
	seedWord(t, repo, "id-2", "beta", nil)

	t.Run("異常系: 存在しないIDの削除は404", func(t *testing.T) {
		err := svc.Delete(ctx, "missing")
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("正常系: 1件削除", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, "id-1"))
		records, err := svc.List(ctx, "", "")
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("正常系: 全削除", func(t *testing.T) {
		require.NoError(t, svc.Clear(ctx))
		records, err := svc.List(ctx, "", "")
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestWordService_Stats(t *testing.T) {
	ctx := context.Background()
	svc, repo := setupWordTest(t)
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	seedWord(t, repo, "id-1", "recent", func(r *model.WordRecord) {
		r.CreatedAt = now.AddDate(0, 0, -2)
	})
	seedWord(t, repo, "id-2", "old", func(r *model.WordRecord) {
		r.CreatedAt = now.AddDate(0, 0, -30)
	})
	seedWord(t, repo, "id-3", "mastered", func(r *model.WordRecord) {
		r.CreatedAt = now.AddDate(0, 0, -1)
		r.SetMasteryLevel(model.MaxMasteryLevel)
	})

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.ThisWeek)
	assert.Equal(t, 1, stats.Mastered)
}
