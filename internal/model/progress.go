// internal/model/progress.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserProgress はユーザー1人分の学習進捗を表します。
// 変更は internal/game の純粋関数を経由して行い、このサブシステムから削除されることはありません。
type UserProgress struct {
	UserID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	XP           int       `gorm:"not null;default:0" json:"xp"`
	Hearts       int       `gorm:"not null;default:5" json:"hearts"` // [0, MaxHearts]
	Streak       int       `gorm:"not null;default:0" json:"streak"` // 連続訪問日数
	CurrentLevel int       `gorm:"not null;default:1" json:"current_level"`
	LastVisit    time.Time `json:"last_visit"`
	// 正解済みの問題ID集合。順序は保存用のリスト表現で、意味は持たない。
	AnsweredQuestions []uuid.UUID `gorm:"serializer:json" json:"answered_questions"`
	// 誤答中の問題IDキュー。先頭が最優先の再出題対象となる。
	WrongQuestions []uuid.UUID `gorm:"serializer:json" json:"wrong_questions"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}

// 回答結果送信リクエストDTO
type SubmitAnswerRequest struct {
	QuestionID uuid.UUID `json:"question_id" validate:"required"`
	IsCorrect  *bool     `json:"is_correct" validate:"required"`
}

// XPProgressView は現在レベル内のXP進捗を表す表示用の派生値です (非永続)。
type XPProgressView struct {
	Current    int     `json:"current"`
	Needed     int     `json:"needed"`
	Percentage float64 `json:"percentage"`
}

// ProgressResponse は進捗レスポンスDTO (スナップショット + 表示用のXP進捗)
type ProgressResponse struct {
	UserProgress
	XPProgress XPProgressView `json:"xp_progress"`
}
