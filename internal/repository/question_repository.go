//go:generate mockery --name QuestionRepository --output ./mocks --outpkg mocks --case=underscore
// internal/repository/question_repository.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"go_5_daily_dose/internal/middleware"
	"go_5_daily_dose/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QuestionRepository は問題ストアのデータアクセス契約です。
type QuestionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, question *model.Question) error
	FindByID(ctx context.Context, db *gorm.DB, questionID uuid.UUID) (*model.Question, error)
	// FindByLevelAndTrack はレベルとトラックに一致する問題を作成日時の昇順で最大limit件返します。
	FindByLevelAndTrack(ctx context.Context, db *gorm.DB, level int, track string, limit int) ([]*model.Question, error)
}

type gormQuestionRepository struct{}

func NewGormQuestionRepository() QuestionRepository {
	return &gormQuestionRepository{}
}

func (r *gormQuestionRepository) Create(ctx context.Context, tx *gorm.DB, question *model.Question) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(question)
	if result.Error != nil {
		logger.Error("Error creating question in DB",
			"error", result.Error,
			"track", question.Track,
			"level", question.Level,
		)
		return fmt.Errorf("gormQuestionRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormQuestionRepository) FindByID(ctx context.Context, db *gorm.DB, questionID uuid.UUID) (*model.Question, error) {
	logger := middleware.GetLogger(ctx)
	var question model.Question
	result := db.WithContext(ctx).Where("question_id = ?", questionID).First(&question)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding question by ID in DB",
			"error", result.Error,
			"question_id", questionID.String(),
		)
		return nil, fmt.Errorf("gormQuestionRepository.FindByID: %w", result.Error)
	}
	return &question, nil
}

func (r *gormQuestionRepository) FindByLevelAndTrack(ctx context.Context, db *gorm.DB, level int, track string, limit int) ([]*model.Question, error) {
	logger := middleware.GetLogger(ctx)
	var questions []*model.Question
	result := db.WithContext(ctx).
		Where("level = ? AND track = ?", level, track).
		Order("created_at ASC").
		Limit(limit).
		Find(&questions)
	if result.Error != nil {
		logger.Error("Error finding questions by level and track in DB",
			"error", result.Error,
			"level", level,
			"track", track,
		)
		return nil, fmt.Errorf("gormQuestionRepository.FindByLevelAndTrack: %w", result.Error)
	}
	return questions, nil
}
