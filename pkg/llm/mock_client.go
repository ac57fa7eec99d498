package llm

import (
	"context"

	"github.com/sashabaranov/go-openai"
)

// MockClient implements ChatCompleter and ModelLister through optional
// function fields, for tests that need to script provider behavior.
type MockClient struct {
	CreateChatCompletionFunc func(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)

	ListModelsFunc func(ctx context.Context) (openai.ModelsList, error)
}

func (m *MockClient) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	if m.CreateChatCompletionFunc != nil {
		return m.CreateChatCompletionFunc(ctx, req)
	}
	return openai.ChatCompletionResponse{}, nil
}

func (m *MockClient) ListModels(ctx context.Context) (openai.ModelsList, error) {
	if m.ListModelsFunc != nil {
		return m.ListModelsFunc(ctx)
	}
	return openai.ModelsList{}, nil
}
