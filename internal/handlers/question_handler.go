// internal/handlers/question_handler.go
package handlers

import (
	"errors"
	"net/http"

	"go_5_daily_dose/internal/middleware"
	"go_5_daily_dose/internal/model"
	"go_5_daily_dose/internal/service"
	"go_5_daily_dose/internal/webutil"

	"github.com/go-playground/validator/v10"
)

type QuestionHandler struct {
	service service.QuestionService
}

func NewQuestionHandler(s service.QuestionService) *QuestionHandler {
	return &QuestionHandler{service: s}
}

// NextQuestion は次に提示する問題を返します。
// 保存済みの問題が尽きている場合は生成器で合成した問題が返ります。
func (h *QuestionHandler) NextQuestion(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden))
		return
	}

	track := r.URL.Query().Get("track")
	if track == "" {
		webutil.HandleError(w, logger, model.NewAppError("VALIDATION_ERROR", "trackクエリパラメータは必須です。", "track", model.ErrInvalidInput))
		return
	}

	question, err := h.service.NextQuestion(r.Context(), userID, track)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, question)
}

// PostQuestion は問題を登録します (シード投入・管理用)
func (h *QuestionHandler) PostQuestion(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	if _, err := middleware.GetUserIDFromContext(r.Context()); err != nil {
		webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden))
		return
	}

	var req model.PostQuestionRequest
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

	question, err := h.service.CreateQuestion(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusCreated, question)
}
