// internal/model/question.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// クイズ種別
const (
	QuizTypeMCQ       = "mcq" // 多肢選択
	QuizTypeTrueFalse = "tf"  // 正誤判定
)

// Quiz は問題に付随する小テストです
type Quiz struct {
	Type        string   `gorm:"not null" json:"type"` // mcq | tf
	Question    string   `gorm:"not null" json:"question"`
	Options     []string `gorm:"serializer:json" json:"options"`
	AnswerIndex int      `gorm:"not null" json:"answer_index"` // Options の0始まり添字
}

// Question は学習カード1枚を表します。
// 進捗エンジンは ID/Level/Track のみを参照し、コンテンツには関知しません。
type Question struct {
	QuestionID uuid.UUID `gorm:"type:uuid;primaryKey" json:"question_id"`
	Title      string    `gorm:"not null" json:"title"`
	Term       string    `gorm:"not null" json:"term"`
	Definition string    `gorm:"not null" json:"definition"`
	Example    string    `json:"example"`
	Why        string    `json:"why"`
	Level      int       `gorm:"not null;default:1;index:idx_questions_level_track" json:"level"` // 1=beginner, 2=intermediate, 3=advanced
	Track      string    `gorm:"not null;index:idx_questions_level_track" json:"track"`
	Quiz       Quiz      `gorm:"embedded;embeddedPrefix:quiz_" json:"quiz"`
	Tags       []string  `gorm:"serializer:json" json:"tags"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Question) TableName() string {
	return "questions"
}

// 問題登録リクエストDTO (シード投入・管理用)
type PostQuestionRequest struct {
	Title      string          `json:"title" validate:"required"`
	Term       string          `json:"term" validate:"required"`
	Definition string          `json:"definition" validate:"required"`
	Example    string          `json:"example"`
	Why        string          `json:"why"`
	Level      int             `json:"level" validate:"required,min=1,max=3"`
	Track      string          `json:"track" validate:"required"`
	Quiz       PostQuizRequest `json:"quiz" validate:"required"`
	Tags       []string        `json:"tags"`
}

type PostQuizRequest struct {
	Type        string   `json:"type" validate:"required,oneof=mcq tf"`
	Question    string   `json:"question" validate:"required"`
	Options     []string `json:"options" validate:"required,min=2"`
	AnswerIndex int      `json:"answer_index" validate:"min=0"`
}
