// internal/model/card.go
package model

// 難易度レベルの名称 (生成器とのやり取りに使用)
const (
	LevelNameBeginner     = "beginner"
	LevelNameIntermediate = "intermediate"
	LevelNameAdvanced     = "advanced"
)

// levelNameToNumber は生成カードの難易度名称を内部のレベル値に対応付けます
var levelNameToNumber = map[string]int{
	LevelNameBeginner:     1,
	LevelNameIntermediate: 2,
	LevelNameAdvanced:     3,
}

var levelNumberToName = map[int]string{
	1: LevelNameBeginner,
	2: LevelNameIntermediate,
	3: LevelNameAdvanced,
}

// LevelNumber は難易度名称をレベル値 (1-3) に変換します。未知の名称は1扱い。
func LevelNumber(name string) int {
	if n, ok := levelNameToNumber[name]; ok {
		return n
	}
	return 1
}

// LevelName はレベル値を難易度名称に変換します。範囲外は beginner 扱い。
func LevelName(level int) string {
	if n, ok := levelNumberToName[level]; ok {
		return n
	}
	return LevelNameBeginner
}

// GenerateCardInput は外部生成器への入力です
type GenerateCardInput struct {
	Track  string `json:"track"`
	Level  string `json:"level"` // beginner | intermediate | advanced
	Locale string `json:"locale"`
}

// GeneratedCard は外部生成器の出力です。保存前の問題 (ID・作成日時なし) に相当します。
type GeneratedCard struct {
	Title      string   `json:"title"`
	Term       string   `json:"term"`
	Definition string   `json:"definition"`
	Example    string   `json:"example"`
	Why        string   `json:"why"`
	Level      string   `json:"level"`
	Track      string   `json:"track"`
	Quiz       Quiz     `json:"quiz"`
	Tags       []string `json:"tags"`
}
