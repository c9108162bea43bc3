//go:generate mockery --name WordRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"papervocab/internal/middleware"
	"papervocab/internal/model"
)

// wordsKey は単語コレクション全体を保存するKVのキー
const wordsKey = "words"

// WordRepository は単語コレクションへのアクセスを提供します。
// 各操作はコレクション全体の read-modify-write として実行される。
// 同時に書き込む呼び出し元がいない前提 (single logical writer)。
type WordRepository interface {
	GetAll(ctx context.Context) ([]model.WordRecord, error)
	FindByLemma(ctx context.Context, lemma string) (*model.WordRecord, error)
	Create(ctx context.Context, record *model.WordRecord) error
	Update(ctx context.Context, id string, apply func(*model.WordRecord)) error
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
	Replace(ctx context.Context, records []model.WordRecord) error
}

type kvWordRepository struct {
	kv KVStore
}

func NewKVWordRepository(kv KVStore) WordRepository {
	return &kvWordRepository{kv: kv}
}

func (r *kvWordRepository) load(ctx context.Context) ([]model.WordRecord, error) {
	logger := middleware.GetLogger(ctx)
	raw, found, err := r.kv.Get(ctx, wordsKey)
	if err != nil {
		return nil, fmt.Errorf("kvWordRepository.load: %w", err)
	}
	if !found {
		return []model.WordRecord{}, nil
	}
	var records []model.WordRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		// 保存データの破損は呼び出し元に伝播させる (黙って空扱いにしない)
		logger.Error("Corrupt words collection in storage", "error", err)
		return nil, fmt.Errorf("kvWordRepository.load: corrupt words collection: %w", err)
	}
	return records, nil
}

func (r *kvWordRepository) store(ctx context.Context, records []model.WordRecord) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("kvWordRepository.store: %w", err)
	}
	if err := r.kv.Set(ctx, wordsKey, raw); err != nil {
		return fmt.Errorf("kvWordRepository.store: %w", err)
	}
	return nil
}

func (r *kvWordRepository) GetAll(ctx context.Context) ([]model.WordRecord, error) {
	return r.load(ctx)
}

// FindByLemma は原形で単語を検索します (大文字小文字は無視)。
// 見つからない場合は model.ErrNotFound。
func (r *kvWordRepository) FindByLemma(ctx context.Context, lemma string) (*model.WordRecord, error) {
	records, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].LemmaEquals(lemma) {
			rec := records[i]
			return &rec, nil
		}
	}
	return nil, model.ErrNotFound
}

// Create はレコードを末尾に追加します。
// 原形の一意性はここでは強制しない。重複チェックは呼び出し元の責務。
func (r *kvWordRepository) Create(ctx context.Context, record *model.WordRecord) error {
	records, err := r.load(ctx)
	if err != nil {
		return err
	}
	records = append(records, *record)
	return r.store(ctx, records)
}

// Update は id が一致するレコードに apply を適用し、UpdatedAt を更新します。
// id が見つからない場合は何もしない (エラーにもしない)。
func (r *kvWordRepository) Update(ctx context.Context, id string, apply func(*model.WordRecord)) error {
	records, err := r.load(ctx)
	if err != nil {
		return err
	}
	for i := range records {
		if records[i].ID == id {
			// 先にスタンプしてから apply を呼ぶ。呼び出し元が閉包内で
			// 永続化される最終状態をそのまま観測できるようにするため。
			records[i].UpdatedAt = time.Now()
			apply(&records[i])
			return r.store(ctx, records)
		}
	}
	return nil
}

// Delete は id が一致するレコードを取り除きます。存在しなければ何もしない。
func (r *kvWordRepository) Delete(ctx context.Context, id string) error {
	records, err := r.load(ctx)
	if err != nil {
		return err
	}
	filtered := records[:0]
	changed := false
	for _, rec := range records {
		if rec.ID == id {
			changed = true
			continue
		}
		filtered = append(filtered, rec)
	}
	if !changed {
		return nil
	}
	return r.store(ctx, filtered)
}

func (r *kvWordRepository) Clear(ctx context.Context) error {
	return r.store(ctx, []model.WordRecord{})
}

// Replace はコレクション全体を置き換えます (インポートで使用)
func (r *kvWordRepository) Replace(ctx context.Context, records []model.WordRecord) error {
	return r.store(ctx, records)
}
