//go:generate mockery --name CardGenerator --output ./mocks --outpkg mocks --case=underscore
// internal/generator/generator.go
package generator

import (
	"context"

	"go_5_daily_dose/internal/model"
)

// CardGenerator は外部のカード生成器です。
// 保存済みの問題を使い切った場合のフォールバックとしてのみ呼び出されます。
type CardGenerator interface {
	Generate(ctx context.Context, input model.GenerateCardInput) (*model.GeneratedCard, error)
}
