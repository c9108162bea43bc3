// internal/handlers/word_handler.go
package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"papervocab/internal/model"
	"papervocab/internal/service"
	"papervocab/internal/webutil"

	"github.com/go-chi/chi/v5"
)

// インポートファイルの受け付け上限 (10MB)
const maxImportBodySize = 10 << 20

type WordHandler struct {
	service service.WordService
	impex   service.ImpexService
	logger  *slog.Logger
}

func NewWordHandler(s service.WordService, impex service.ImpexService, logger *slog.Logger) *WordHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WordHandler{
		service: s,
		impex:   impex,
		logger:  logger,
	}
}

// ListWords は単語の一覧を返すハンドラ。q で絞り込み、sort で並び替え。
func (h *WordHandler) ListWords(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ListWords"))

	query := r.URL.Query().Get("q")
	sortBy := r.URL.Query().Get("sort")

	words, err := h.service.List(r.Context(), query, sortBy)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, words, logger)
}

// GetWord は単語を1件取得するハンドラ
func (h *WordHandler) GetWord(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetWord"))

	wordID := chi.URLParam(r, "word_id")
	logger = logger.With(slog.String("word_id", wordID))

	word, err := h.service.Get(r.Context(), wordID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, word, logger)
}

// PatchWord は単語の定義や発音記号を部分更新するハンドラ
func (h *WordHandler) PatchWord(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PatchWord"))

	wordID := chi.URLParam(r, "word_id")
	logger = logger.With(slog.String("word_id", wordID))

	var req model.PatchWordRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if appErr := webutil.ValidateStruct(req); appErr != nil {
		logger.Warn("Validation failed", slog.String("error", appErr.Error()))
		webutil.HandleError(w, logger, appErr)
		return
	}

	word, err := h.service.Patch(r.Context(), wordID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, word, logger)
}

// DeleteWord は単語を1件削除するハンドラ
func (h *WordHandler) DeleteWord(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteWord"))

	wordID := chi.URLParam(r, "word_id")
	logger = logger.With(slog.String("word_id", wordID))

	if err := h.service.Delete(r.Context(), wordID); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ClearWords は単語帳を空にするハンドラ
func (h *WordHandler) ClearWords(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ClearWords"))

	if err := h.service.Clear(r.Context()); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetStats は単語帳の統計情報を返すハンドラ
func (h *WordHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetStats"))

	stats, err := h.service.Stats(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, stats, logger)
}

// ExportWords は単語帳全体をエクスポートファイル形式で返すハンドラ
func (h *WordHandler) ExportWords(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ExportWords"))

	snapshot, err := h.impex.Export(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="papervocab-export.json"`)
	webutil.RespondWithJSON(w, http.StatusOK, snapshot, logger)
}

// ImportWords はエクスポートファイルを取り込むハンドラ
func (h *WordHandler) ImportWords(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ImportWords"))

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxImportBodySize))
	if err != nil {
		logger.Warn("Failed to read request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの読み込みに失敗しました。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	defer r.Body.Close()

	added, err := h.impex.Import(r.Context(), raw)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, map[string]int{"imported": added}, logger)
}
