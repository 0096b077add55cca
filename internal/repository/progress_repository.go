//go:generate mockery --name ProgressRepository --output ./mocks --outpkg mocks --case=underscore
// internal/repository/progress_repository.go
package repository

import (
	"context"
	"errors"

	"go_5_daily_dose/internal/middleware"
	"go_5_daily_dose/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProgressRepository はユーザー進捗レコードのデータアクセス契約です。
// ビジネスルールは持ちません。
type ProgressRepository interface {
	Get(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.UserProgress, error)
	Upsert(ctx context.Context, tx *gorm.DB, progress *model.UserProgress) error // トランザクション対応
}

type gormProgressRepository struct {
	// DB接続はService層から渡される想定
}

func NewGormProgressRepository() ProgressRepository {
	return &gormProgressRepository{}
}

func (r *gormProgressRepository) Get(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.UserProgress, error) {
	logger := middleware.GetLogger(ctx)
	var progress model.UserProgress
	result := db.WithContext(ctx).Where("user_id = ?", userID).First(&progress)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			// レコードなしはエラーではなく初回利用のシグナル。呼び出し元で初期化する。
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding user progress in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, result.Error
	}
	return &progress, nil
}

func (r *gormProgressRepository) Upsert(ctx context.Context, tx *gorm.DB, progress *model.UserProgress) error {
	logger := middleware.GetLogger(ctx)
	// 全フィールド上書きのupsert (ドキュメントストアのsetDoc相当)
	result := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(progress)
	if result.Error != nil {
		logger.Error("Error upserting user progress in DB",
			"error", result.Error,
			"user_id", progress.UserID.String(),
		)
		return result.Error
	}
	return nil
}
