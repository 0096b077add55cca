//go:generate mockery --name ProgressService --output ./mocks --outpkg mocks --case=underscore
// internal/service/progress_service.go
package service

import (
	"context"
	"errors"
	"time"

	"go_5_daily_dose/internal/game"
	"go_5_daily_dose/internal/middleware"
	"go_5_daily_dose/internal/model"
	"go_5_daily_dose/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProgressService はユーザー進捗に対する操作を提供します。
// 計算は internal/game の純粋関数に委譲し、ここでは取得・適用・保存の
// 読み書きを1トランザクションにまとめます。
type ProgressService interface {
	InitializeProgress(ctx context.Context, userID uuid.UUID) (*model.UserProgress, error)
	GetProgress(ctx context.Context, userID uuid.UUID) (*model.UserProgress, error)
	RecordVisit(ctx context.Context, userID uuid.UUID) (*model.UserProgress, error)
	RecordCorrectAnswer(ctx context.Context, userID, questionID uuid.UUID) (*model.UserProgress, error)
	RecordWrongAnswer(ctx context.Context, userID, questionID uuid.UUID) (*model.UserProgress, error)
	RestoreHearts(ctx context.Context, userID uuid.UUID) (*model.UserProgress, error)
}

type progressService struct {
	db       *gorm.DB
	progRepo repository.ProgressRepository
}

func NewProgressService(db *gorm.DB, progRepo repository.ProgressRepository) ProgressService {
	return &progressService{
		db:       db,
		progRepo: progRepo,
	}
}

// InitializeProgress は進捗レコードを作成します。既存レコードがあればそれを返します (冪等)。
func (s *progressService) InitializeProgress(ctx context.Context, userID uuid.UUID) (*model.UserProgress, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	var result *model.UserProgress
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.progRepo.Get(ctx, tx, userID)
		if err == nil {
			result = existing
			return nil
		}
		if !errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "進捗の読み込みに失敗しました。", "", err)
		}

		progress := game.NewProgress(userID, time.Now())
		if err := s.progRepo.Upsert(ctx, tx, &progress); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "進捗の初期化に失敗しました。", "", err)
		}
		logger.Info("Initialized user progress")
		result = &progress
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *progressService) GetProgress(ctx context.Context, userID uuid.UUID) (*model.UserProgress, error) {
	progress, err := s.progRepo.Get(ctx, s.db, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "進捗が見つかりません。", "", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "進捗の読み込みに失敗しました。", "", err)
	}
	return progress, nil
}

// RecordVisit は訪問イベントを適用します。レコードがなければ初期化します。
func (s *progressService) RecordVisit(ctx context.Context, userID uuid.UUID) (*model.UserProgress, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	var result *model.UserProgress
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		progress, err := s.progRepo.Get(ctx, tx, userID)
		if errors.Is(err, model.ErrNotFound) {
			// 初回訪問: 初期化のみ (当日分の訪問は初期化に含まれる)
			initial := game.NewProgress(userID, time.Now())
			if upErr := s.progRepo.Upsert(ctx, tx, &initial); upErr != nil {
				return model.NewAppError("INTERNAL_SERVER_ERROR", "進捗の初期化に失敗しました。", "", upErr)
			}
			logger.Info("Initialized user progress on first visit")
			result = &initial
			return nil
		}
		if err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "進捗の読み込みに失敗しました。", "", err)
		}

		updated := game.ApplyVisit(*progress, time.Now())
		if err := s.progRepo.Upsert(ctx, tx, &updated); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "進捗の保存に失敗しました。", "", err)
		}
		logger.Debug("Visit applied", "streak", updated.Streak)
		result = &updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *progressService) RecordCorrectAnswer(ctx context.Context, userID, questionID uuid.UUID) (*model.UserProgress, error) {
	return s.applyAnswer(ctx, userID, func(p model.UserProgress) model.UserProgress {
		return game.ApplyCorrectAnswer(p, questionID)
	})
}

func (s *progressService) RecordWrongAnswer(ctx context.Context, userID, questionID uuid.UUID) (*model.UserProgress, error) {
	return s.applyAnswer(ctx, userID, func(p model.UserProgress) model.UserProgress {
		return game.ApplyWrongAnswer(p, questionID)
	})
}

func (s *progressService) RestoreHearts(ctx context.Context, userID uuid.UUID) (*model.UserProgress, error) {
	return s.applyAnswer(ctx, userID, game.RestoreHearts)
}

// applyAnswer は取得・エンジン適用・保存を1トランザクションで行う共通処理です。
// レコードがない場合は初期状態に対してイベントを適用します (初回回答に相当)。
func (s *progressService) applyAnswer(ctx context.Context, userID uuid.UUID, apply func(model.UserProgress) model.UserProgress) (*model.UserProgress, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	var result *model.UserProgress
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		snapshot, err := s.progRepo.Get(ctx, tx, userID)
		if errors.Is(err, model.ErrNotFound) {
			initial := game.NewProgress(userID, time.Now())
			snapshot = &initial
			logger.Info("Progress not found, applying event to fresh progress")
		} else if err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "進捗の読み込みに失敗しました。", "", err)
		}

		updated := apply(*snapshot)
		updated.UpdatedAt = time.Now()
		if err := s.progRepo.Upsert(ctx, tx, &updated); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "進捗の保存に失敗しました。", "", err)
		}
		result = &updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
