//go:generate mockery --name QuestionService --output ./mocks --outpkg mocks --case=underscore
// internal/service/question_service.go
package service

import (
	"context"
	"errors"
	"time"

	"go_5_daily_dose/internal/config"
	"go_5_daily_dose/internal/generator"
	"go_5_daily_dose/internal/middleware"
	"go_5_daily_dose/internal/model"
	"go_5_daily_dose/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QuestionService は次問選択と問題登録を提供します。
type QuestionService interface {
	// NextQuestion はユーザーに次に提示する問題を決定します。
	//  1. 誤答キューの先頭があればそれを返す (トラック・レベル不問)
	//  2. レベル1..currentLevel を昇順に走査し、未正解の保存済み問題を返す
	//  3. 尽きていれば生成器でカードを合成・保存して返す
	NextQuestion(ctx context.Context, userID uuid.UUID, track string) (*model.Question, error)
	CreateQuestion(ctx context.Context, req *model.PostQuestionRequest) (*model.Question, error)
}

type questionService struct {
	db           *gorm.DB
	questionRepo repository.QuestionRepository
	progRepo     repository.ProgressRepository
	gen          generator.CardGenerator // 無効時は nil
	cfg          *config.Config
}

func NewQuestionService(db *gorm.DB, questionRepo repository.QuestionRepository, progRepo repository.ProgressRepository, gen generator.CardGenerator, cfg *config.Config) QuestionService {
	return &questionService{
		db:           db,
		questionRepo: questionRepo,
		progRepo:     progRepo,
		gen:          gen,
		cfg:          cfg,
	}
}

func (s *questionService) NextQuestion(ctx context.Context, userID uuid.UUID, track string) (*model.Question, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "track", track)

	progress, err := s.progRepo.Get(ctx, s.db, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "進捗が見つかりません。先に進捗を初期化してください。", "", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "進捗の読み込みに失敗しました。", "", err)
	}

	// 1. 再出題優先: 誤答キューの先頭を最優先で返す。
	// トラックやレベルは見ない。ストアに存在しない古いIDは読み飛ばして通常の走査へ進む。
	if len(progress.WrongQuestions) > 0 {
		question, err := s.questionRepo.FindByID(ctx, s.db, progress.WrongQuestions[0])
		if err == nil {
			logger.Debug("Serving retry question from wrong queue", "question_id", question.QuestionID)
			return question, nil
		}
		if !errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "問題の読み込みに失敗しました。", "", err)
		}
		logger.Warn("Wrong queue head not found in store, falling through", "question_id", progress.WrongQuestions[0])
	}

	// 2. 進行走査: 低いレベルから順に、未正解の保存済み問題を探す。
	answered := make(map[uuid.UUID]bool, len(progress.AnsweredQuestions))
	for _, id := range progress.AnsweredQuestions {
		answered[id] = true
	}

	for level := 1; level <= progress.CurrentLevel; level++ {
		candidates, err := s.questionRepo.FindByLevelAndTrack(ctx, s.db, level, track, s.cfg.App.QuestionLimit)
		if err != nil {
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "問題の読み込みに失敗しました。", "", err)
		}
		for _, candidate := range candidates {
			if !answered[candidate.QuestionID] {
				return candidate, nil
			}
		}
	}

	// 3. 枯渇: 生成器にフォールバックする。
	return s.generateAndStore(ctx, progress, track)
}

// generateAndStore は外部生成器でカードを合成し、提示前に問題ストアへ保存します。
func (s *questionService) generateAndStore(ctx context.Context, progress *model.UserProgress, track string) (*model.Question, error) {
	logger := middleware.GetLogger(ctx).With("track", track)

	if s.gen == nil {
		logger.Info("No stored question available and generator is disabled")
		return nil, model.NewAppError("NOT_FOUND", "出題できる問題がありません。", "", model.ErrNotFound)
	}

	card, err := s.gen.Generate(ctx, model.GenerateCardInput{
		Track:  track,
		Level:  model.LevelName(progress.CurrentLevel),
		Locale: s.cfg.App.DefaultLocale,
	})
	if err != nil {
		logger.Error("Card generation failed", "error", err)
		return nil, model.NewAppError("GENERATION_FAILED", "新しいカードの生成に失敗しました。しばらくしてからもう一度お試しください。", "", model.ErrGenerationFailed)
	}

	question := &model.Question{
		QuestionID: uuid.New(),
		Title:      card.Title,
		Term:       card.Term,
		Definition: card.Definition,
		Example:    card.Example,
		Why:        card.Why,
		Level:      model.LevelNumber(card.Level),
		Track:      card.Track,
		Quiz:       card.Quiz,
		Tags:       card.Tags,
		CreatedAt:  time.Now(),
	}

	// 保存失敗は致命的ではない。生成できたカードはそのまま提示する。
	if err := s.questionRepo.Create(ctx, s.db, question); err != nil {
		logger.Warn("Failed to save generated question, serving it anyway", "error", err)
	} else {
		logger.Info("Generated and stored new question", "question_id", question.QuestionID, "level", question.Level)
	}

	return question, nil
}

func (s *questionService) CreateQuestion(ctx context.Context, req *model.PostQuestionRequest) (*model.Question, error) {
	logger := middleware.GetLogger(ctx)

	if req.Quiz.AnswerIndex >= len(req.Quiz.Options) {
		return nil, model.NewAppError("VALIDATION_ERROR", "正解の添字が選択肢の範囲外です。", "answer_index", model.ErrInvalidInput)
	}

	question := &model.Question{
		QuestionID: uuid.New(),
		Title:      req.Title,
		Term:       req.Term,
		Definition: req.Definition,
		Example:    req.Example,
		Why:        req.Why,
		Level:      req.Level,
		Track:      req.Track,
		Quiz: model.Quiz{
			Type:        req.Quiz.Type,
			Question:    req.Quiz.Question,
			Options:     req.Quiz.Options,
			AnswerIndex: req.Quiz.AnswerIndex,
		},
		Tags:      req.Tags,
		CreatedAt: time.Now(),
	}

	if err := s.questionRepo.Create(ctx, s.db, question); err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "問題の登録に失敗しました。", "", err)
	}

	logger.Info("Question created", "question_id", question.QuestionID, "track", question.Track, "level", question.Level)
	return question, nil
}
