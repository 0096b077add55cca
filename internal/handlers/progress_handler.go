// internal/handlers/progress_handler.go
package handlers

import (
	"errors"
	"net/http"

	"go_5_daily_dose/internal/game"
	"go_5_daily_dose/internal/middleware"
	"go_5_daily_dose/internal/model"
	"go_5_daily_dose/internal/service"
	"go_5_daily_dose/internal/webutil"

	"github.com/go-playground/validator/v10"
)

type ProgressHandler struct {
	service service.ProgressService
}

func NewProgressHandler(s service.ProgressService) *ProgressHandler {
	return &ProgressHandler{service: s}
}

// toProgressResponse はスナップショットに表示用のXP進捗を付けたレスポンスを作ります
func toProgressResponse(p *model.UserProgress) *model.ProgressResponse {
	return &model.ProgressResponse{
		UserProgress: *p,
		XPProgress:   game.XPForNextLevel(p.XP),
	}
}

// InitializeProgress は進捗レコードを作成します (既存なら既存を返す)
func (h *ProgressHandler) InitializeProgress(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden))
		return
	}

	progress, err := h.service.InitializeProgress(r.Context(), userID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusCreated, toProgressResponse(progress))
}

func (h *ProgressHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden))
		return
	}

	progress, err := h.service.GetProgress(r.Context(), userID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, toProgressResponse(progress))
}

// RecordVisit は訪問イベントを記録します (ストリーク更新)
func (h *ProgressHandler) RecordVisit(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden))
		return
	}

	progress, err := h.service.RecordVisit(r.Context(), userID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, toProgressResponse(progress))
}

// SubmitAnswer は回答結果を記録します。正誤に応じてXP/ハートが更新されます。
func (h *ProgressHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden))
		return
	}

	var req model.SubmitAnswerRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", "error", err)
		webutil.HandleError(w, logger, model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput))
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			logger.Warn("Validation failed", "errors", validationErrors.Error())
			webutil.HandleError(w, logger, webutil.NewValidationErrorResponse(validationErrors))
			return
		}
		webutil.HandleError(w, logger, err)
		return
	}

	var progress *model.UserProgress
	if *req.IsCorrect {
		progress, err = h.service.RecordCorrectAnswer(r.Context(), userID, req.QuestionID)
	} else {
		progress, err = h.service.RecordWrongAnswer(r.Context(), userID, req.QuestionID)
	}
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, toProgressResponse(progress))
}

// RestoreHearts はハートを上限まで回復します (管理用の明示操作)
func (h *ProgressHandler) RestoreHearts(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden))
		return
	}

	progress, err := h.service.RestoreHearts(r.Context(), userID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, toProgressResponse(progress))
}
