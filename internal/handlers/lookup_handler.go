// internal/handlers/lookup_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"papervocab/internal/model"
	"papervocab/internal/service"
	"papervocab/internal/webutil"
)

type LookupHandler struct {
	service service.LookupService
	logger  *slog.Logger
}

func NewLookupHandler(s service.LookupService, logger *slog.Logger) *LookupHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &LookupHandler{
		service: s,
		logger:  logger,
	}
}

// Lookup は単語を検索するハンドラ。既知の単語なら更新済みレコードを、
// 新規の単語ならLLMから取得した未保存の candidate を返す。
func (h *LookupHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "Lookup"))

	var req model.LookupRequest
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

	result, err := h.service.Lookup(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, result, logger)
}

// SaveWord は lookup で得た candidate を単語帳に保存するハンドラ
func (h *LookupHandler) SaveWord(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "SaveWord"))

	var candidate model.WordCandidate
	if err := webutil.DecodeJSONBody(r, &candidate); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	record, err := h.service.Save(r.Context(), &candidate)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusCreated, record, logger)
}
