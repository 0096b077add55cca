// internal/game/engine.go
package game

import (
	"time"

	"go_5_daily_dose/internal/model"

	"github.com/google/uuid"
)

// 進行ルールの定数
const (
	MaxHearts  = 5   // ハートの上限
	XPReward   = 10  // 正解1問あたりの獲得XP
	XPPerLevel = 100 // レベルアップに必要なXP
)

// NewProgress は初期状態の進捗スナップショットを生成します。
func NewProgress(userID uuid.UUID, now time.Time) model.UserProgress {
	return model.UserProgress{
		UserID:            userID,
		XP:                0,
		Hearts:            MaxHearts,
		Streak:            1,
		CurrentLevel:      1,
		LastVisit:         now,
		AnsweredQuestions: []uuid.UUID{},
		WrongQuestions:    []uuid.UUID{},
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// ApplyVisit は訪問イベントによるストリーク更新を適用します。
// 同日内の再呼び出しは何も変更しません (冪等)。
//   - 訪問記録なし: streak=1 とし、初回ボーナスとして XPReward を加算
//   - 1日経過:      streak を1増やす
//   - 2日以上経過:  streak を1にリセット
//
// XPを与えるのは訪問記録が無い場合のみで、日次の継続では加算しません。
func ApplyVisit(p model.UserProgress, now time.Time) model.UserProgress {
	if p.LastVisit.IsZero() {
		p.Streak = 1
		p.XP += XPReward
		p.LastVisit = now
		return p
	}

	switch days := daysSince(p.LastVisit, now); {
	case days == 0:
		return p
	case days == 1:
		p.Streak++
	case days > 1:
		p.Streak = 1
	}
	p.LastVisit = now
	return p
}

// ApplyCorrectAnswer は正解イベントを適用します。
// XPを加算し、レベルを再計算し (下がることはない)、問題IDを正解済み集合へ追加、
// 誤答キューからは無条件に取り除きます。ハートは変化しません。
func ApplyCorrectAnswer(p model.UserProgress, questionID uuid.UUID) model.UserProgress {
	p.XP += XPReward
	if newLevel := LevelForXP(p.XP); newLevel > p.CurrentLevel {
		p.CurrentLevel = newLevel
	}
	if !containsID(p.AnsweredQuestions, questionID) {
		p.AnsweredQuestions = appendID(p.AnsweredQuestions, questionID)
	}
	p.WrongQuestions = removeID(p.WrongQuestions, questionID)
	return p
}

// ApplyWrongAnswer は誤答イベントを適用します。
// ハートを1減らし (下限0)、問題IDを誤答キューへ追加します。
// すでにキューにある場合は位置を保ったまま何もしません (末尾への積み直しはしない)。
func ApplyWrongAnswer(p model.UserProgress, questionID uuid.UUID) model.UserProgress {
	if p.Hearts > 0 {
		p.Hearts--
	}
	if !containsID(p.WrongQuestions, questionID) {
		p.WrongQuestions = appendID(p.WrongQuestions, questionID)
	}
	return p
}

// RestoreHearts はハートを上限まで回復します。
// 時間経過による自動回復は存在せず、明示的な呼び出しのみで回復します。
func RestoreHearts(p model.UserProgress) model.UserProgress {
	p.Hearts = MaxHearts
	return p
}

// LevelForXP は累計XPから導出されるレベルを返します。
func LevelForXP(xp int) int {
	return xp/XPPerLevel + 1
}

// XPForNextLevel は現在レベル内のXP進捗 (表示用) を計算します。
func XPForNextLevel(xp int) model.XPProgressView {
	currentLevelXP := xp % XPPerLevel
	return model.XPProgressView{
		Current:    currentLevelXP,
		Needed:     XPPerLevel,
		Percentage: float64(currentLevelXP) / float64(XPPerLevel) * 100,
	}
}

// daysSince は経過日数 (24時間単位の切り捨て) を返します。
func daysSince(last, now time.Time) int {
	return int(now.Sub(last).Hours() / 24)
}

// --- スナップショットを共有しないためのスライスヘルパー ---
// 各関数は値渡しのスナップショットを返すため、スライスフィールドの変更時は
// 必ず新しいスライスを作り、呼び出し元の保持する配列を書き換えない。

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func appendID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids)+1)
	out = append(out, ids...)
	return append(out, id)
}

func removeID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	if !containsID(ids, id) {
		return ids
	}
	out := make([]uuid.UUID, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
