// internal/service/review_service.go
package service

import (
	"context"
	"math/rand"
	"sync"

	"papervocab/internal/middleware"
	"papervocab/internal/model"
	"papervocab/internal/repository"
)

// ReviewService はフラッシュカード復習のセッション管理を提供します。
// セッションは同時に1つだけで、メモリ上にのみ存在する。
// 評価による習熟度の更新だけは即時に永続化される。
type ReviewService interface {
	Status(ctx context.Context) (*model.ReviewStatus, error)
	Start(ctx context.Context, req *model.StartReviewRequest) (*model.ReviewStatus, error)
	Abort(ctx context.Context) (*model.ReviewStatus, error)
	CurrentCard(ctx context.Context) (*model.CardView, error)
	Flip(ctx context.Context) (*model.CardView, error)
	Grade(ctx context.Context, req *model.GradeCardRequest) (*model.ReviewStatus, error)
}

type reviewService struct {
	words            repository.WordRepository
	settings         repository.SettingsRepository
	defaultBatchSize int
	shuffle          func(n int, swap func(i, j int))

	mu      sync.Mutex
	state   model.ReviewState
	session *model.ReviewSession
}

// NewReviewService は復習サービスを生成します。
// defaultBatchSize はリクエストにもユーザー設定にも枚数がない場合の最終フォールバック。
func NewReviewService(words repository.WordRepository, settings repository.SettingsRepository, defaultBatchSize int) ReviewService {
	if defaultBatchSize <= 0 {
		defaultBatchSize = model.DefaultSettings().ReviewBatchSize
	}
	return &reviewService{
		words:            words,
		settings:         settings,
		defaultBatchSize: defaultBatchSize,
		shuffle:          rand.Shuffle,
		state:            model.ReviewIdle,
	}
}

func (s *reviewService) Status(ctx context.Context) (*model.ReviewStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusLocked(ctx)
}

// statusLocked は現在の状態からレスポンスを組み立てます。mu を保持して呼ぶこと。
func (s *reviewService) statusLocked(ctx context.Context) (*model.ReviewStatus, error) {
	status := &model.ReviewStatus{State: s.state}

	switch s.state {
	case model.ReviewIdle:
		records, err := s.words.GetAll(ctx)
		if err != nil {
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "単語帳の読み込みに失敗しました。", "", model.ErrInternalServer)
		}
		for _, rec := range records {
			if !rec.Mastered {
				status.EligibleCount++
			}
		}
	case model.ReviewReviewing:
		status.Position = s.session.CurrentIndex + 1
		status.Total = len(s.session.Cards)
		tally := s.session.Tally
		status.Tally = &tally
	case model.ReviewCompleted:
		status.Total = len(s.session.Cards)
		tally := s.session.Tally
		status.Tally = &tally
	}
	return status, nil
}

func (s *reviewService) Start(ctx context.Context, req *model.StartReviewRequest) (*model.ReviewStatus, error) {
	logger := middleware.GetLogger(ctx).With("filter", string(req.Filter))

	records, err := s.words.GetAll(ctx)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "単語帳の読み込みに失敗しました。", "", model.ErrInternalServer)
	}

	pool := filterPool(records, req.Filter)
	if len(pool) == 0 {
		return nil, model.NewAppError("EMPTY_POOL", "復習対象の単語がありません。", "filter", model.ErrInvalidInput)
	}

	batchSize := req.BatchSize
	if batchSize <= 0 {
		settings, err := s.settings.Get(ctx)
		if err != nil {
			logger.Error("Failed to load settings", "error", err)
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "設定の読み込みに失敗しました。", "", model.ErrInternalServer)
		}
		batchSize = settings.ReviewBatchSize
	}
	if batchSize <= 0 {
		batchSize = s.defaultBatchSize
	}

	s.shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	if len(pool) > batchSize {
		pool = pool[:batchSize]
	}

	cards := make([]*model.ReviewCard, len(pool))
	for i := range pool {
		rec := pool[i]
		cards[i] = &model.ReviewCard{Record: &rec}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// 進行中のセッションは黙って破棄する。集計も引き継がない。
	s.session = &model.ReviewSession{Filter: req.Filter, Cards: cards}
	s.state = model.ReviewReviewing

	logger.Info("Review session started", "cards", len(cards))
	return s.statusLocked(ctx)
}

func (s *reviewService) Abort(ctx context.Context) (*model.ReviewStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	s.state = model.ReviewIdle
	return s.statusLocked(ctx)
}

func (s *reviewService) CurrentCard(ctx context.Context) (*model.CardView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	card, err := s.currentLocked()
	if err != nil {
		return nil, err
	}
	return s.cardViewLocked(card), nil
}

func (s *reviewService) Flip(ctx context.Context) (*model.CardView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	card, err := s.currentLocked()
	if err != nil {
		return nil, err
	}
	card.Flipped = !card.Flipped
	return s.cardViewLocked(card), nil
}

// Grade は現在のカードを評価して次へ進めます。
// 習熟度の永続化に失敗した場合はカーソルを進めず、同じカードに留まる。
func (s *reviewService) Grade(ctx context.Context, req *model.GradeCardRequest) (*model.ReviewStatus, error) {
	logger := middleware.GetLogger(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	card, err := s.currentLocked()
	if err != nil {
		return nil, err
	}

	// fuzzy は習熟度を変えないが、updatedAt の更新と書き戻しは全評価共通で行う
	record := card.Record
	err = s.words.Update(ctx, record.ID, func(rec *model.WordRecord) {
		switch req.Grade {
		case model.GradeKnow:
			rec.SetMasteryLevel(rec.MasteryLevel + 1)
		case model.GradeUnknown:
			rec.SetMasteryLevel(0)
		}
		*record = *rec
	})
	if err != nil {
		logger.Error("Failed to persist grade", "error", err, "word_id", record.ID)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "評価の保存に失敗しました。", "", model.ErrInternalServer)
	}

	switch req.Grade {
	case model.GradeKnow:
		s.session.Tally.Know++
	case model.GradeFuzzy:
		s.session.Tally.Fuzzy++
	case model.GradeUnknown:
		s.session.Tally.Unknown++
	}

	s.session.CurrentIndex++
	if s.session.Finished() {
		s.state = model.ReviewCompleted
		logger.Info("Review session completed",
			"know", s.session.Tally.Know,
			"fuzzy", s.session.Tally.Fuzzy,
			"unknown", s.session.Tally.Unknown)
	}
	return s.statusLocked(ctx)
}

// currentLocked は reviewing 中の現在カードを返します。mu を保持して呼ぶこと。
func (s *reviewService) currentLocked() (*model.ReviewCard, error) {
	if s.state != model.ReviewReviewing {
		return nil, model.NewAppError("NO_ACTIVE_SESSION", "進行中の復習セッションがありません。", "", model.ErrConflict)
	}
	card := s.session.Current()
	if card == nil {
		return nil, model.NewAppError("NO_ACTIVE_SESSION", "進行中の復習セッションがありません。", "", model.ErrConflict)
	}
	return card, nil
}

func (s *reviewService) cardViewLocked(card *model.ReviewCard) *model.CardView {
	view := &model.CardView{
		Position:   s.session.CurrentIndex + 1,
		Total:      len(s.session.Cards),
		Word:       card.Record.Word,
		QueryCount: card.Record.QueryCount,
		Flipped:    card.Flipped,
	}
	// 定義は裏返したカードだけに載せる
	if card.Flipped {
		view.Phonetic = card.Record.Phonetic
		view.Definition = card.Record.Definition
		view.Example = card.Record.Example
	}
	return view
}

// filterPool は出題範囲のフィルタを適用します
func filterPool(records []model.WordRecord, filter model.ReviewFilter) []model.WordRecord {
	pool := make([]model.WordRecord, 0, len(records))
	for _, rec := range records {
		switch filter {
		case model.FilterUnmastered:
			if !rec.Mastered {
				pool = append(pool, rec)
			}
		case model.FilterUnknown:
			if !rec.Mastered && rec.MasteryLevel == 0 {
				pool = append(pool, rec)
			}
		case model.FilterFrequent:
			if rec.QueryCount >= model.FrequentThreshold {
				pool = append(pool, rec)
			}
		case model.FilterRandom:
			pool = append(pool, rec)
		}
	}
	return pool
}
