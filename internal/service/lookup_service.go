// internal/service/lookup_service.go
package service

import (
	"context"
	"errors"
	"time"

	"papervocab/internal/llm"
	"papervocab/internal/middleware"
	"papervocab/internal/model"
	"papervocab/internal/repository"
	"papervocab/internal/textutil"

	"github.com/google/uuid"
)

// LookupService は単語検索のオーケストレータです。
// 既知の単語なら文脈を追記するだけでLLMは呼ばず、新規の単語だけ問い合わせる。
// 取得した定義 (candidate) の保存は明示的な Save でのみ行われる。
type LookupService interface {
	Lookup(ctx context.Context, req *model.LookupRequest) (*model.LookupResult, error)
	Save(ctx context.Context, candidate *model.WordCandidate) (*model.WordRecord, error)
}

type lookupService struct {
	words    repository.WordRepository
	settings repository.SettingsRepository
	llm      llm.Client
	now      func() time.Time
}

func NewLookupService(words repository.WordRepository, settings repository.SettingsRepository, client llm.Client) LookupService {
	return &lookupService{
		words:    words,
		settings: settings,
		llm:      client,
		now:      time.Now,
	}
}

func (s *lookupService) Lookup(ctx context.Context, req *model.LookupRequest) (*model.LookupResult, error) {
	logger := middleware.GetLogger(ctx).With("word", req.Word)

	if !textutil.IsEnglishWord(req.Word) {
		return nil, model.NewAppError("INVALID_WORD", "検索対象が英単語ではありません。", "word", model.ErrInvalidInput)
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		logger.Error("Failed to load settings", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "設定の読み込みに失敗しました。", "", model.ErrInternalServer)
	}

	// APIキー未設定はストアにもプロバイダにも触れずに返す。
	// 呼び出し側が設定画面へ誘導できるよう専用コードを使う。
	if settings.APIKey == "" {
		return nil, model.NewAppError("NO_API_KEY", "APIキーが設定されていません。", "", model.ErrNoAPIKey)
	}

	sentence := req.Sentence
	if sentence != "" {
		sentence = textutil.ExtractSentence(sentence, req.Word)
	}

	contextEntry := model.WordContext{
		Sentence:    sentence,
		SourceTitle: req.SourceTitle,
		SourceURL:   req.SourceURL,
		QueriedAt:   s.now(),
	}

	existing, err := s.words.FindByLemma(ctx, req.Word)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		logger.Error("Failed to look up word in store", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "単語帳の読み込みに失敗しました。", "", model.ErrInternalServer)
	}

	if existing != nil {
		// 既知の単語: 文脈を追記してカウントを進める。
		// 返す値は永続化した値そのもの (別計算にするとズレる)。
		var persisted model.WordRecord
		err := s.words.Update(ctx, existing.ID, func(rec *model.WordRecord) {
			rec.Contexts = append(rec.Contexts, contextEntry)
			rec.QueryCount++
			persisted = *rec
		})
		if err != nil {
			logger.Error("Failed to update existing word", "error", err, "word_id", existing.ID)
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "単語の更新に失敗しました。", "", model.ErrInternalServer)
		}
		logger.Info("Existing word looked up", "word_id", persisted.ID, "query_count", persisted.QueryCount)
		return &model.LookupResult{Exists: true, Record: &persisted}, nil
	}

	// 新規の単語: LLMへ問い合わせる
	prompt := llm.BuildPrompt(req.Word, sentence)
	text, err := s.llm.Query(ctx, prompt, settings)
	if err != nil {
		logger.Warn("LLM query failed", "error", err.Error())
		// メッセージはそのまま伝える。呼び出し側が再試行を提示できるようにする。
		return nil, model.NewAppError("LLM_QUERY_FAILED", err.Error(), "", model.ErrProviderFailed)
	}

	parsed := llm.ParseResponse(text)
	word := parsed.Lemma
	if word == "" {
		word = req.Word
	}

	candidate := &model.WordCandidate{
		Word:           word,
		OriginalForm:   req.Word,
		Phonetic:       parsed.Phonetic,
		Definition:     parsed.Definition,
		Example:        parsed.Example,
		PendingContext: contextEntry,
	}
	logger.Info("New word definition fetched", "lemma", candidate.Word)
	return &model.LookupResult{Exists: false, Candidate: candidate}, nil
}

// Save は candidate を新しいレコードとして永続化します
func (s *lookupService) Save(ctx context.Context, candidate *model.WordCandidate) (*model.WordRecord, error) {
	logger := middleware.GetLogger(ctx)

	if candidate.Word == "" {
		return nil, model.NewAppError("INVALID_WORD", "保存する単語が空です。", "word", model.ErrInvalidInput)
	}

	originalForm := candidate.OriginalForm
	if originalForm == "" {
		originalForm = candidate.Word
	}

	now := s.now()
	record := model.WordRecord{
		ID:           uuid.NewString(),
		Word:         candidate.Word,
		OriginalForm: originalForm,
		Phonetic:     candidate.Phonetic,
		Definition:   candidate.Definition,
		Example:      candidate.Example,
		Contexts:     []model.WordContext{candidate.PendingContext},
		QueryCount:   1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	record.SetMasteryLevel(0)

	if err := s.words.Create(ctx, &record); err != nil {
		logger.Error("Failed to save word", "error", err, "word", record.Word)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "単語の保存に失敗しました。", "", model.ErrInternalServer)
	}

	logger.Info("Word saved", "word_id", record.ID, "word", record.Word)
	return &record, nil
}
