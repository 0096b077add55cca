// internal/config/constants.go
package config

// アプリケーション情報
const (
	AppName    = "daily-dose-api"
	AppVersion = "0.1.0"
)

// デフォルト設定値
const (
	DefaultServerPort     = ":8080"
	DefaultLogLevel       = "info"
	DefaultQuestionLimit  = 50
	DefaultLocale         = "ja"
	DefaultGeneratorModel = "gpt-4o-mini"
)
