// internal/generator/openai.go
package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go_5_daily_dose/internal/config"
	"go_5_daily_dose/internal/middleware"
	"go_5_daily_dose/internal/model"

	openai "github.com/sashabaranov/go-openai"
)

// openAICardGenerator は OpenAI互換APIでカードを生成する CardGenerator 実装です。
type openAICardGenerator struct {
	client *openai.Client
	model  string
}

// NewOpenAICardGenerator はOpenAIクライアントを初期化します。
// BaseURL を指定するとOpenAI互換の別エンドポイントにも接続できます。
func NewOpenAICardGenerator(cfg config.GeneratorConfig) (CardGenerator, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("generator API key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &openAICardGenerator{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
	}, nil
}

func (g *openAICardGenerator) Generate(ctx context.Context, input model.GenerateCardInput) (*model.GeneratedCard, error) {
	logger := middleware.GetLogger(ctx)

	req := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildUserPrompt(input)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		logger.Error("Card generation request failed", "error", err, "track", input.Track, "level", input.Level)
		return nil, fmt.Errorf("%w: %v", model.ErrGenerationFailed, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices in response", model.ErrGenerationFailed)
	}

	var card model.GeneratedCard
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &card); err != nil {
		logger.Error("Failed to decode generated card", "error", err)
		return nil, fmt.Errorf("%w: decoding response: %v", model.ErrGenerationFailed, err)
	}

	if err := validateCard(&card, input); err != nil {
		logger.Error("Generated card failed validation", "error", err)
		return nil, fmt.Errorf("%w: %v", model.ErrGenerationFailed, err)
	}

	return &card, nil
}

// validateCard は生成結果の構造を検証し、欠けたフィールドを入力値で補います。
func validateCard(card *model.GeneratedCard, input model.GenerateCardInput) error {
	if card.Term == "" || card.Definition == "" {
		return errors.New("term and definition are required")
	}
	if card.Quiz.Question == "" {
		return errors.New("quiz question is required")
	}
	if len(card.Quiz.Options) < 2 {
		return errors.New("quiz needs at least two options")
	}
	if card.Quiz.AnswerIndex < 0 || card.Quiz.AnswerIndex >= len(card.Quiz.Options) {
		return errors.New("quiz answer index out of range")
	}
	if card.Quiz.Type != model.QuizTypeMCQ && card.Quiz.Type != model.QuizTypeTrueFalse {
		card.Quiz.Type = model.QuizTypeMCQ
	}
	if card.Track == "" {
		card.Track = input.Track
	}
	if card.Level == "" {
		card.Level = input.Level
	}
	if card.Title == "" {
		card.Title = card.Term
	}
	return nil
}
