package ai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	oaioption "github.com/openai/openai-go/option"
)

const defaultOpenAIModel = openai.ChatModelGPT4oMini

// OpenAIProvider implements LLMProvider with the chat completions API.
type OpenAIProvider struct {
	client openai.Client
	model  openai.ChatModel
}

// NewOpenAIProvider builds a provider. opts are appended after the API key,
// which lets tests point the client at a local server.
func NewOpenAIProvider(apiKey, modelName string, opts ...oaioption.RequestOption) *OpenAIProvider {
	model := openai.ChatModel(modelName)
	if modelName == "" {
		model = defaultOpenAIModel
	}
	opts = append([]oaioption.RequestOption{oaioption.WithAPIKey(apiKey)}, opts...)
	return &OpenAIProvider{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

// Close is a no-op; the HTTP client has no resources to release.
func (p *OpenAIProvider) Close() {}

func (p *OpenAIProvider) PlanItinerary(ctx context.Context, prompt string) (string, error) {
	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: p.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(0.4),
	})
	if err != nil {
		return "", fmt.Errorf("openai: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: %w", errNoCandidates)
	}
	return resp.Choices[0].Message.Content, nil
}
