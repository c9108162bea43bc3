// internal/model/review.go
package model

// ReviewState は復習セッションの状態 (idle → reviewing → completed)
type ReviewState string

const (
	ReviewIdle      ReviewState = "idle"
	ReviewReviewing ReviewState = "reviewing"
	ReviewCompleted ReviewState = "completed"
)

// ReviewFilter は出題範囲の指定
type ReviewFilter string

const (
	FilterUnmastered ReviewFilter = "unmastered" // 未習得のみ
	FilterUnknown    ReviewFilter = "unknown"    // 未習得かつレベル0
	FilterFrequent   ReviewFilter = "frequent"   // 3回以上調べた単語
	FilterRandom     ReviewFilter = "random"     // 全単語
)

// FrequentThreshold は frequent フィルタの検索回数の下限
const FrequentThreshold = 3

// ReviewGrade はカードの自己評価
type ReviewGrade string

const (
	GradeKnow    ReviewGrade = "know"
	GradeFuzzy   ReviewGrade = "fuzzy"
	GradeUnknown ReviewGrade = "unknown"
)

// ReviewTally はセッション内の評価集計
type ReviewTally struct {
	Know    int `json:"know"`
	Fuzzy   int `json:"fuzzy"`
	Unknown int `json:"unknown"`
}

// ReviewCard はセッション中の1枚のカード。
// 状態はレコードへの参照とセッション内のフリップ状態だけを持つ。
type ReviewCard struct {
	Record  *WordRecord `json:"record"`
	Flipped bool        `json:"flipped"`
}

// ReviewSession は1回の復習の実体。永続化されず、セッション終了で破棄される。
// カードの並びは開始時に固定され、途中でシャッフルし直すことはない。
type ReviewSession struct {
	Filter       ReviewFilter
	Cards        []*ReviewCard
	CurrentIndex int
	Tally        ReviewTally
}

// Current はカーソル位置のカードを返します。セッション終端では nil。
func (s *ReviewSession) Current() *ReviewCard {
	if s == nil || s.CurrentIndex >= len(s.Cards) {
		return nil
	}
	return s.Cards[s.CurrentIndex]
}

// Finished はカーソルが終端に達したかどうか
func (s *ReviewSession) Finished() bool {
	return s.CurrentIndex >= len(s.Cards)
}

// 復習開始リクエストDTO
type StartReviewRequest struct {
	Filter    ReviewFilter `json:"filter" validate:"required,oneof=unmastered unknown frequent random"`
	BatchSize int          `json:"batch_size" validate:"omitempty,min=1"`
}

// 評価送信リクエストDTO
type GradeCardRequest struct {
	Grade ReviewGrade `json:"grade" validate:"required,oneof=know fuzzy unknown"`
}

// ReviewStatus は復習タブ表示用のレスポンスDTO
type ReviewStatus struct {
	State         ReviewState  `json:"state"`
	EligibleCount int          `json:"eligible_count"` // idle 時の unmastered 件数
	Position      int          `json:"position"`       // 1始まり。reviewing のときのみ意味を持つ
	Total         int          `json:"total"`
	Tally         *ReviewTally `json:"tally,omitempty"`
}

// CardView は現在のカードのレスポンスDTO。
// 表面は単語のみ、裏面 (flipped) で定義まで返す。
type CardView struct {
	Position   int    `json:"position"`
	Total      int    `json:"total"`
	Word       string `json:"word"`
	QueryCount int    `json:"query_count"`
	Flipped    bool   `json:"flipped"`
	Phonetic   string `json:"phonetic,omitempty"`
	Definition string `json:"definition,omitempty"`
	Example    string `json:"example,omitempty"`
}
