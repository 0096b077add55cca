// internal/handlers/progress_handler_test.go
package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"go_5_daily_dose/internal/game"
	"go_5_daily_dose/internal/handlers"
	"go_5_daily_dose/internal/middleware"
	"go_5_daily_dose/internal/model"
	"go_5_daily_dose/internal/service/mocks"
)

func newProgressRouter(t *testing.T) (*mocks.ProgressService, chi.Router) {
	t.Helper()
	mockService := mocks.NewProgressService(t)
	handler := handlers.NewProgressHandler(mockService)
	router := chi.NewRouter()
	router.Use(middleware.UserContextMiddleware)
	router.Post("/api/v1/progress", handler.InitializeProgress)
	router.Get("/api/v1/progress", handler.GetProgress)
	router.Post("/api/v1/progress/visit", handler.RecordVisit)
	router.Post("/api/v1/progress/answers", handler.SubmitAnswer)
	router.Post("/api/v1/progress/hearts/restore", handler.RestoreHearts)
	return mockService, router
}

func newTestProgress(userID uuid.UUID) *model.UserProgress {
	return &model.UserProgress{
		UserID:       userID,
		XP:           0,
		Hearts:       game.MaxHearts,
		Streak:       1,
		CurrentLevel: 1,
		LastVisit:    time.Now(),
	}
}

func TestProgressHandler_InitializeProgress(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name           string
		userID         *uuid.UUID
		setupMock      func(m *mocks.ProgressService)
		expectedStatus int
	}{
		{
			name:   "正常系: 進捗を初期化して201を返す",
			userID: &userID,
			setupMock: func(m *mocks.ProgressService) {
				m.On("InitializeProgress", mock.AnythingOfType("*context.valueCtx"), userID).
					Return(newTestProgress(userID), nil).Once()
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "異常系: X-User-IDヘッダーなし -> 401",
			userID:         nil,
			setupMock:      func(m *mocks.ProgressService) { /* Serviceは呼ばれない */ },
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:   "異常系: Serviceが内部エラー -> 500",
			userID: &userID,
			setupMock: func(m *mocks.ProgressService) {
				m.On("InitializeProgress", mock.AnythingOfType("*context.valueCtx"), userID).
					Return(nil, model.NewAppError("INTERNAL_SERVER_ERROR", "進捗の保存に失敗しました。", "", model.ErrInternalServer)).Once()
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockService, router := newProgressRouter(t)
			tc.setupMock(mockService)

			req := createRequest(t, "POST", "/api/v1/progress", nil, tc.userID)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)

			if tc.expectedStatus == http.StatusCreated {
				var resp model.ProgressResponse
				assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, userID, resp.UserID)
				assert.Equal(t, game.MaxHearts, resp.Hearts)
				assert.Equal(t, game.XPPerLevel, resp.XPProgress.Needed)
			} else {
				decodeErrorResponse(t, rr)
			}
		})
	}
}

func TestProgressHandler_GetProgress(t *testing.T) {
	userID := uuid.New()

	t.Run("正常系: 進捗とXP進捗ビューを返す", func(t *testing.T) {
		mockService, router := newProgressRouter(t)
		progress := newTestProgress(userID)
		progress.XP = 250
		progress.CurrentLevel = 3
		mockService.On("GetProgress", mock.AnythingOfType("*context.valueCtx"), userID).
			Return(progress, nil).Once()

		req := createRequest(t, "GET", "/api/v1/progress", nil, &userID)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp model.ProgressResponse
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, 250, resp.XP)
		assert.Equal(t, 50, resp.XPProgress.Current, "レベル内の現在XP")
		assert.Equal(t, game.XPPerLevel, resp.XPProgress.Needed)
	})

	t.Run("異常系: 進捗未作成 -> 404", func(t *testing.T) {
		mockService, router := newProgressRouter(t)
		mockService.On("GetProgress", mock.AnythingOfType("*context.valueCtx"), userID).
			Return(nil, model.NewAppError("NOT_FOUND", "進捗が見つかりません。", "", model.ErrNotFound)).Once()

		req := createRequest(t, "GET", "/api/v1/progress", nil, &userID)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		errResp := decodeErrorResponse(t, rr)
		assert.Equal(t, "NOT_FOUND", errResp.Error.Code)
	})

	t.Run("異常系: X-User-IDが不正な形式 -> 401", func(t *testing.T) {
		_, router := newProgressRouter(t)

		req := httptest.NewRequest("GET", "/api/v1/progress", nil)
		req.Header.Set("X-User-ID", "not-a-uuid")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		decodeErrorResponse(t, rr)
	})
}

func TestProgressHandler_RecordVisit(t *testing.T) {
	userID := uuid.New()

	t.Run("正常系: 訪問を記録してストリークを返す", func(t *testing.T) {
		mockService, router := newProgressRouter(t)
		progress := newTestProgress(userID)
		progress.Streak = 4
		mockService.On("RecordVisit", mock.AnythingOfType("*context.valueCtx"), userID).
			Return(progress, nil).Once()

		req := createRequest(t, "POST", "/api/v1/progress/visit", nil, &userID)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp model.ProgressResponse
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, 4, resp.Streak)
	})

	t.Run("異常系: ヘッダーなし -> 401", func(t *testing.T) {
		_, router := newProgressRouter(t)

		req := createRequest(t, "POST", "/api/v1/progress/visit", nil, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestProgressHandler_SubmitAnswer(t *testing.T) {
	userID := uuid.New()
	questionID := uuid.New()
	boolPtr := func(b bool) *bool { return &b }

	tests := []struct {
		name           string
		userID         *uuid.UUID
		body           interface{}
		setupMock      func(m *mocks.ProgressService)
		expectedStatus int
	}{
		{
			name:   "正常系: 正解 -> RecordCorrectAnswer",
			userID: &userID,
			body:   model.SubmitAnswerRequest{QuestionID: questionID, IsCorrect: boolPtr(true)},
			setupMock: func(m *mocks.ProgressService) {
				progress := newTestProgress(userID)
				progress.XP = game.XPReward
				progress.AnsweredQuestions = []uuid.UUID{questionID}
				m.On("RecordCorrectAnswer", mock.AnythingOfType("*context.valueCtx"), userID, questionID).
					Return(progress, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "正常系: 不正解 -> RecordWrongAnswer",
			userID: &userID,
			body:   model.SubmitAnswerRequest{QuestionID: questionID, IsCorrect: boolPtr(false)},
			setupMock: func(m *mocks.ProgressService) {
				progress := newTestProgress(userID)
				progress.Hearts = game.MaxHearts - 1
				progress.WrongQuestions = []uuid.UUID{questionID}
				m.On("RecordWrongAnswer", mock.AnythingOfType("*context.valueCtx"), userID, questionID).
					Return(progress, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "異常系: is_correct がない -> 400",
			userID:         &userID,
			body:           map[string]interface{}{"question_id": questionID},
			setupMock:      func(m *mocks.ProgressService) { /* Serviceは呼ばれない */ },
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "異常系: 壊れたJSON -> 400",
			userID:         &userID,
			body:           `{"question_id": "bad json`,
			setupMock:      func(m *mocks.ProgressService) { /* Serviceは呼ばれない */ },
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "異常系: ヘッダーなし -> 401",
			userID:         nil,
			body:           model.SubmitAnswerRequest{QuestionID: questionID, IsCorrect: boolPtr(true)},
			setupMock:      func(m *mocks.ProgressService) { /* Serviceは呼ばれない */ },
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockService, router := newProgressRouter(t)
			tc.setupMock(mockService)

			req := createRequest(t, "POST", "/api/v1/progress/answers", tc.body, tc.userID)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)

			if tc.expectedStatus != http.StatusOK {
				decodeErrorResponse(t, rr)
			}
		})
	}
}

func TestProgressHandler_RestoreHearts(t *testing.T) {
	userID := uuid.New()

	t.Run("正常系: ハートが上限まで回復する", func(t *testing.T) {
		mockService, router := newProgressRouter(t)
		progress := newTestProgress(userID)
		progress.Hearts = game.MaxHearts
		mockService.On("RestoreHearts", mock.AnythingOfType("*context.valueCtx"), userID).
			Return(progress, nil).Once()

		req := createRequest(t, "POST", "/api/v1/progress/hearts/restore", nil, &userID)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp model.ProgressResponse
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, game.MaxHearts, resp.Hearts)
	})
}
