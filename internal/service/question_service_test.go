// internal/service/question_service_test.go
package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go_5_daily_dose/internal/config"
	genmocks "go_5_daily_dose/internal/generator/mocks"
	"go_5_daily_dose/internal/model"
	"go_5_daily_dose/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDBQuestion(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

func testQuestionConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.QuestionLimit = 50
	cfg.App.DefaultLocale = "ja"
	return cfg
}

func Test_questionService_NextQuestion(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	cfg := testQuestionConfig()

	t.Run("異常系: 進捗なし -> ErrNotFound (先に初期化が必要)", func(t *testing.T) {
		db := setupTestDBQuestion(t)
		mockQuestionRepo := mocks.NewQuestionRepository(t)
		mockProgRepo := mocks.NewProgressRepository(t)
		svc := NewQuestionService(db, mockQuestionRepo, mockProgRepo, nil, cfg)

		mockProgRepo.On("Get", ctx, db, userID).Return(nil, model.ErrNotFound).Once()

		got, err := svc.NextQuestion(ctx, userID, "frontend")

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrNotFound)
		assert.Nil(t, got)
	})

	t.Run("正常系: 誤答キューの先頭が最優先 (トラックが違っても返す)", func(t *testing.T) {
		db := setupTestDBQuestion(t)
		mockQuestionRepo := mocks.NewQuestionRepository(t)
		mockProgRepo := mocks.NewProgressRepository(t)
		svc := NewQuestionService(db, mockQuestionRepo, mockProgRepo, nil, cfg)

		wrongID := uuid.New()
		progress := &model.UserProgress{
			UserID:         userID,
			CurrentLevel:   2,
			WrongQuestions: []uuid.UUID{wrongID, uuid.New()},
		}
		// 要求トラックは backend だが、キュー先頭は frontend の問題
		retry := &model.Question{QuestionID: wrongID, Track: "frontend", Level: 1}

		mockProgRepo.On("Get", ctx, db, userID).Return(progress, nil).Once()
		mockQuestionRepo.On("FindByID", ctx, db, wrongID).Return(retry, nil).Once()

		got, err := svc.NextQuestion(ctx, userID, "backend")

		require.NoError(t, err)
		assert.Equal(t, wrongID, got.QuestionID)
		assert.Equal(t, "frontend", got.Track)
	})

	t.Run("正常系: キュー先頭がストアにない -> 読み飛ばして通常走査", func(t *testing.T) {
		db := setupTestDBQuestion(t)
		mockQuestionRepo := mocks.NewQuestionRepository(t)
		mockProgRepo := mocks.NewProgressRepository(t)
		svc := NewQuestionService(db, mockQuestionRepo, mockProgRepo, nil, cfg)

		staleID := uuid.New()
		progress := &model.UserProgress{
			UserID:         userID,
			CurrentLevel:   1,
			WrongQuestions: []uuid.UUID{staleID},
		}
		stored := &model.Question{QuestionID: uuid.New(), Track: "frontend", Level: 1}

		mockProgRepo.On("Get", ctx, db, userID).Return(progress, nil).Once()
		mockQuestionRepo.On("FindByID", ctx, db, staleID).Return(nil, model.ErrNotFound).Once()
		mockQuestionRepo.On("FindByLevelAndTrack", ctx, db, 1, "frontend", 50).
			Return([]*model.Question{stored}, nil).Once()

		got, err := svc.NextQuestion(ctx, userID, "frontend")

		require.NoError(t, err)
		assert.Equal(t, stored.QuestionID, got.QuestionID)
	})

	t.Run("正常系: 低いレベルを使い切ってから次のレベルへ、正解済みはスキップ", func(t *testing.T) {
		db := setupTestDBQuestion(t)
		mockQuestionRepo := mocks.NewQuestionRepository(t)
		mockProgRepo := mocks.NewProgressRepository(t)
		svc := NewQuestionService(db, mockQuestionRepo, mockProgRepo, nil, cfg)

		answeredID := uuid.New()
		level2Question := &model.Question{QuestionID: uuid.New(), Track: "frontend", Level: 2}
		progress := &model.UserProgress{
			UserID:            userID,
			CurrentLevel:      2,
			AnsweredQuestions: []uuid.UUID{answeredID},
		}

		mockProgRepo.On("Get", ctx, db, userID).Return(progress, nil).Once()
		// レベル1の候補は正解済みのみ
		mockQuestionRepo.On("FindByLevelAndTrack", ctx, db, 1, "frontend", 50).
			Return([]*model.Question{{QuestionID: answeredID, Track: "frontend", Level: 1}}, nil).Once()
		mockQuestionRepo.On("FindByLevelAndTrack", ctx, db, 2, "frontend", 50).
			Return([]*model.Question{level2Question}, nil).Once()

		got, err := svc.NextQuestion(ctx, userID, "frontend")

		require.NoError(t, err)
		assert.Equal(t, level2Question.QuestionID, got.QuestionID)
	})

	t.Run("正常系: 枯渇 -> 生成器で合成して保存して返す", func(t *testing.T) {
		db := setupTestDBQuestion(t)
		mockQuestionRepo := mocks.NewQuestionRepository(t)
		mockProgRepo := mocks.NewProgressRepository(t)
		mockGen := genmocks.NewCardGenerator(t)
		svc := NewQuestionService(db, mockQuestionRepo, mockProgRepo, mockGen, cfg)

		progress := &model.UserProgress{UserID: userID, CurrentLevel: 2}
		card := &model.GeneratedCard{
			Title:      "Closures",
			Term:       "closure",
			Definition: "a function plus its captured environment",
			Level:      model.LevelNameIntermediate,
			Track:      "frontend",
			Quiz: model.Quiz{
				Type:        model.QuizTypeMCQ,
				Question:    "what does a closure capture?",
				Options:     []string{"variables", "files"},
				AnswerIndex: 0,
			},
			Tags: []string{"js"},
		}

		mockProgRepo.On("Get", ctx, db, userID).Return(progress, nil).Once()
		mockQuestionRepo.On("FindByLevelAndTrack", ctx, db, 1, "frontend", 50).
			Return([]*model.Question{}, nil).Once()
		mockQuestionRepo.On("FindByLevelAndTrack", ctx, db, 2, "frontend", 50).
			Return([]*model.Question{}, nil).Once()
		mockGen.On("Generate", ctx, model.GenerateCardInput{
			Track:  "frontend",
			Level:  model.LevelNameIntermediate, // currentLevel=2
			Locale: "ja",
		}).Return(card, nil).Once()
		mockQuestionRepo.On("Create", ctx, db, mock.MatchedBy(func(q *model.Question) bool {
			assert.NotEqual(t, uuid.Nil, q.QuestionID)
			assert.Equal(t, "closure", q.Term)
			assert.Equal(t, 2, q.Level, "intermediate -> 2")
			assert.Equal(t, "frontend", q.Track)
			assert.WithinDuration(t, time.Now(), q.CreatedAt, 5*time.Second)
			return true
		})).Return(nil).Once()

		got, err := svc.NextQuestion(ctx, userID, "frontend")

		require.NoError(t, err)
		assert.Equal(t, "closure", got.Term)
		assert.Equal(t, 2, got.Level)
	})

	t.Run("正常系: 生成カードの保存に失敗してもカードは返す", func(t *testing.T) {
		db := setupTestDBQuestion(t)
		mockQuestionRepo := mocks.NewQuestionRepository(t)
		mockProgRepo := mocks.NewProgressRepository(t)
		mockGen := genmocks.NewCardGenerator(t)
		svc := NewQuestionService(db, mockQuestionRepo, mockProgRepo, mockGen, cfg)

		progress := &model.UserProgress{UserID: userID, CurrentLevel: 1}
		card := &model.GeneratedCard{
			Term: "goroutine", Definition: "a lightweight thread",
			Level: model.LevelNameBeginner, Track: "backend",
			Quiz: model.Quiz{Type: model.QuizTypeTrueFalse, Question: "cheap?", Options: []string{"true", "false"}, AnswerIndex: 0},
		}

		mockProgRepo.On("Get", ctx, db, userID).Return(progress, nil).Once()
		mockQuestionRepo.On("FindByLevelAndTrack", ctx, db, 1, "backend", 50).
			Return([]*model.Question{}, nil).Once()
		mockGen.On("Generate", ctx, mock.AnythingOfType("model.GenerateCardInput")).Return(card, nil).Once()
		mockQuestionRepo.On("Create", ctx, db, mock.AnythingOfType("*model.Question")).
			Return(errors.New("db error on insert")).Once()

		got, err := svc.NextQuestion(ctx, userID, "backend")

		require.NoError(t, err)
		assert.Equal(t, "goroutine", got.Term)
	})

	t.Run("異常系: 生成器が失敗 -> ErrGenerationFailed", func(t *testing.T) {
		db := setupTestDBQuestion(t)
		mockQuestionRepo := mocks.NewQuestionRepository(t)
		mockProgRepo := mocks.NewProgressRepository(t)
		mockGen := genmocks.NewCardGenerator(t)
		svc := NewQuestionService(db, mockQuestionRepo, mockProgRepo, mockGen, cfg)

		progress := &model.UserProgress{UserID: userID, CurrentLevel: 1}

		mockProgRepo.On("Get", ctx, db, userID).Return(progress, nil).Once()
		mockQuestionRepo.On("FindByLevelAndTrack", ctx, db, 1, "frontend", 50).
			Return([]*model.Question{}, nil).Once()
		mockGen.On("Generate", ctx, mock.AnythingOfType("model.GenerateCardInput")).
			Return(nil, model.ErrGenerationFailed).Once()

		got, err := svc.NextQuestion(ctx, userID, "frontend")

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrGenerationFailed)
		assert.Nil(t, got)
	})

	t.Run("異常系: 枯渇かつ生成器なし -> ErrNotFound", func(t *testing.T) {
		db := setupTestDBQuestion(t)
		mockQuestionRepo := mocks.NewQuestionRepository(t)
		mockProgRepo := mocks.NewProgressRepository(t)
		svc := NewQuestionService(db, mockQuestionRepo, mockProgRepo, nil, cfg)

		progress := &model.UserProgress{UserID: userID, CurrentLevel: 1}

		mockProgRepo.On("Get", ctx, db, userID).Return(progress, nil).Once()
		mockQuestionRepo.On("FindByLevelAndTrack", ctx, db, 1, "frontend", 50).
			Return([]*model.Question{}, nil).Once()

		got, err := svc.NextQuestion(ctx, userID, "frontend")

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrNotFound)
		assert.Nil(t, got)
	})
}

func Test_questionService_CreateQuestion(t *testing.T) {
	ctx := context.Background()
	cfg := testQuestionConfig()

	validReq := &model.PostQuestionRequest{
		Title:      "Pointers",
		Term:       "pointer",
		Definition: "a value holding a memory address",
		Level:      1,
		Track:      "backend",
		Quiz: model.PostQuizRequest{
			Type:        model.QuizTypeMCQ,
			Question:    "what does a pointer hold?",
			Options:     []string{"an address", "a file"},
			AnswerIndex: 0,
		},
	}

	t.Run("正常系: 登録成功", func(t *testing.T) {
		db := setupTestDBQuestion(t)
		mockQuestionRepo := mocks.NewQuestionRepository(t)
		mockProgRepo := mocks.NewProgressRepository(t)
		svc := NewQuestionService(db, mockQuestionRepo, mockProgRepo, nil, cfg)

		mockQuestionRepo.On("Create", ctx, db, mock.MatchedBy(func(q *model.Question) bool {
			assert.NotEqual(t, uuid.Nil, q.QuestionID)
			assert.Equal(t, "pointer", q.Term)
			assert.Equal(t, []string{"an address", "a file"}, q.Quiz.Options)
			return true
		})).Return(nil).Once()

		got, err := svc.CreateQuestion(ctx, validReq)

		require.NoError(t, err)
		assert.Equal(t, "pointer", got.Term)
	})

	t.Run("異常系: 正解の添字が選択肢の範囲外", func(t *testing.T) {
		db := setupTestDBQuestion(t)
		mockQuestionRepo := mocks.NewQuestionRepository(t)
		mockProgRepo := mocks.NewProgressRepository(t)
		svc := NewQuestionService(db, mockQuestionRepo, mockProgRepo, nil, cfg)

		req := *validReq
		req.Quiz.AnswerIndex = 5

		got, err := svc.CreateQuestion(ctx, &req)

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrInvalidInput)
		assert.Nil(t, got)
	})
}
