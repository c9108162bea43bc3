// internal/model/word.go
package model

import (
	"strings"
	"time"
)

// MaxMasteryLevel は習熟度の上限。ここに達した単語は mastered 扱いになる。
const MaxMasteryLevel = 3

// WordContext は単語を調べたときの出典情報を表します
type WordContext struct {
	Sentence    string    `json:"sentence"`
	SourceTitle string    `json:"sourceTitle"`
	SourceURL   string    `json:"sourceUrl"`
	QueriedAt   time.Time `json:"queriedAt"`
}

// WordRecord は保存済みの単語とその学習状態を表します。
// JSONのフィールド名はエクスポートファイルの互換性のため camelCase 固定。
type WordRecord struct {
	ID           string        `json:"id"`
	Word         string        `json:"word"`         // 原形 (lemma)。大文字小文字を無視して一意
	OriginalForm string        `json:"originalForm"` // ユーザーが選択した表層形
	Phonetic     string        `json:"phonetic"`
	Definition   string        `json:"definition"`
	Example      string        `json:"example"`
	Contexts     []WordContext `json:"contexts"`
	QueryCount   int           `json:"queryCount"`
	MasteryLevel int           `json:"masteryLevel"`
	Mastered     bool          `json:"mastered"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// SetMasteryLevel は習熟度を更新する唯一の入り口です。
// mastered は常にここで導出するため、呼び出し側が直接セットしてはいけない。
func (w *WordRecord) SetMasteryLevel(level int) {
	if level < 0 {
		level = 0
	}
	if level > MaxMasteryLevel {
		level = MaxMasteryLevel
	}
	w.MasteryLevel = level
	w.Mastered = level >= MaxMasteryLevel
}

// LemmaEquals は原形同士を大文字小文字を無視して比較します
func (w *WordRecord) LemmaEquals(lemma string) bool {
	return strings.EqualFold(w.Word, lemma)
}

// WordCandidate はLLMから取得した、まだ保存されていない定義です。
// 保存は明示的な save 操作でのみ行われる。
type WordCandidate struct {
	Word           string      `json:"word"`
	OriginalForm   string      `json:"originalForm"`
	Phonetic       string      `json:"phonetic"`
	Definition     string      `json:"definition"`
	Example        string      `json:"example"`
	PendingContext WordContext `json:"context"`
}

// 単語検索リクエストDTO
type LookupRequest struct {
	Word        string `json:"word" validate:"required,max=50"`
	Sentence    string `json:"sentence"`
	SourceTitle string `json:"source_title"`
	SourceURL   string `json:"source_url"`
}

// LookupResult は検索結果。既存単語なら Record、新規なら Candidate が入る。
type LookupResult struct {
	Exists    bool           `json:"exists"`
	Record    *WordRecord    `json:"record,omitempty"`
	Candidate *WordCandidate `json:"candidate,omitempty"`
}

// 単語更新（部分）リクエストDTO
type PatchWordRequest struct {
	Word       *string `json:"word,omitempty" validate:"omitempty,min=1"`
	Phonetic   *string `json:"phonetic,omitempty"`
	Definition *string `json:"definition,omitempty"`
	Example    *string `json:"example,omitempty"`
}

// VocabStats は単語帳の統計情報レスポンスDTO
type VocabStats struct {
	Total    int `json:"total"`
	ThisWeek int `json:"this_week"`
	Mastered int `json:"mastered"`
}

// エクスポートファイルの形式 (version は固定)
const ExportVersion = "1.0.0"

// ExportSnapshot はエクスポート/インポートで使うファイル形式です
type ExportSnapshot struct {
	Version    string       `json:"version"`
	ExportedAt time.Time    `json:"exportedAt"`
	Words      []WordRecord `json:"words"`
}
