// Package llm builds the OpenAI-compatible client used for every completion
// call, and defines the narrow interfaces the rest of the service depends on
// so that tests can swap in a mock.
package llm

import (
	"context"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"
)

// DefaultBaseURL is Google's OpenAI-compatible Gemini endpoint.
const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"

// ChatCompleter is the slice of the OpenAI client used for text generation.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// ModelLister is the slice of the OpenAI client used by the model catalog.
type ModelLister interface {
	ListModels(ctx context.Context) (openai.ModelsList, error)
}

// NewClient returns a client pointed at url, or at the Gemini compatibility
// endpoint when url is empty. timeout is parsed as a duration and falls back
// to 150s when unset or malformed.
func NewClient(apiKey, url, timeout string) *openai.Client {
	config := openai.DefaultConfig(apiKey)
	if url == "" {
		url = DefaultBaseURL
	}
	config.BaseURL = url

	dur, err := time.ParseDuration(timeout)
	if err != nil {
		dur = 150 * time.Second
	}

	config.HTTPClient = &http.Client{
		Timeout: dur,
	}
	return openai.NewClientWithConfig(config)
}
