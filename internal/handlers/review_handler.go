// internal/handlers/review_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"papervocab/internal/model"
	"papervocab/internal/service"
	"papervocab/internal/webutil"
)

type ReviewHandler struct {
	service service.ReviewService
	logger  *slog.Logger
}

func NewReviewHandler(s service.ReviewService, logger *slog.Logger) *ReviewHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReviewHandler{
		service: s,
		logger:  logger,
	}
}

// GetStatus は復習タブの状態を返すハンドラ
func (h *ReviewHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetStatus"))

	status, err := h.service.Status(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, status, logger)
}

// StartSession は復習セッションを開始するハンドラ
func (h *ReviewHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "StartSession"))

	var req model.StartReviewRequest
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

	status, err := h.service.Start(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusCreated, status, logger)
}

// AbortSession は進行中のセッションを破棄するハンドラ
func (h *ReviewHandler) AbortSession(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "AbortSession"))

	status, err := h.service.Abort(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, status, logger)
}

// GetCard は現在のカードを返すハンドラ
func (h *ReviewHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetCard"))

	card, err := h.service.CurrentCard(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, card, logger)
}

// FlipCard は現在のカードを裏返すハンドラ
func (h *ReviewHandler) FlipCard(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "FlipCard"))

	card, err := h.service.Flip(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, card, logger)
}

// GradeCard は現在のカードを評価して次へ進めるハンドラ
func (h *ReviewHandler) GradeCard(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GradeCard"))

	var req model.GradeCardRequest
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

	status, err := h.service.Grade(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, status, logger)
}
