// internal/handlers/settings_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"papervocab/internal/model"
	"papervocab/internal/service"
	"papervocab/internal/webutil"
)

type SettingsHandler struct {
	service service.SettingsService
	logger  *slog.Logger
}

func NewSettingsHandler(s service.SettingsService, logger *slog.Logger) *SettingsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SettingsHandler{
		service: s,
		logger:  logger,
	}
}

// GetSettings は現在の設定を返すハンドラ
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetSettings"))

	settings, err := h.service.Get(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, settings, logger)
}

// PutSettings は設定全体を置き換えるハンドラ
func (h *SettingsHandler) PutSettings(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PutSettings"))

	var req model.PutSettingsRequest
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

	settings, err := h.service.Put(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, settings, logger)
}
