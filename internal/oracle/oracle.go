package oracle

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// scenePrompt - фиксированная инструкция для vision-модели.
// Модель просят ответить строго в JSON, но ее выход все равно
// считается недоверенным и проходит через парсер.
const scenePrompt = `You are an emergency response AI system. Analyze this disaster image and provide:

1. A brief description of what you see (2-3 sentences)
2. The type of disaster (flood, fire, earthquake, building collapse, medical emergency, accident, landslide, other)
3. The severity level (low, medium, high, critical)
4. Which rescue team should be dispatched (NDRF, NCC, Fire, Police, Medical, Other)

Respond in this exact JSON format:
{
  "description": "Brief description of the scene",
  "disasterType": "type of disaster",
  "severity": "severity level",
  "assignedTeam": "team name",
  "reasoning": "Why this team was chosen"
}`

// Client - клиент vision-модели для анализа снимков места происшествия
type Client struct {
	api   *openai.Client
	model string
}

// New создает клиент оракула. model - имя vision-модели (например, gpt-4o).
func New(apiKey, model string) *Client {
	return &Client{
		api:   openai.NewClient(apiKey),
		model: model,
	}
}

// AnalyzeScene отправляет снимок модели и возвращает сырой текст ответа.
// Валидация ответа - забота вызывающего, здесь текст не интерпретируется.
func (c *Client) AnalyzeScene(ctx context.Context, imageURL string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: scenePrompt,
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL: imageURL,
						},
					},
				},
			},
		},
		Temperature: 0.3,
		MaxTokens:   1024,
	})
	if err != nil {
		return "", fmt.Errorf("oracle: chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("oracle: empty response from model")
	}
	return resp.Choices[0].Message.Content, nil
}
