// Package agent implements the two research services: single-shot answers
// with bounded retry on provider rate limits, and the seven-stage deep
// research pipeline.
package agent

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/deepscout-ai/deepscout/core/types"
	"github.com/deepscout-ai/deepscout/pkg/llm"
	"github.com/deepscout-ai/deepscout/pkg/xlog"
	"github.com/sashabaranov/go-openai"
)

const (
	DefaultModel      = "gemini-2.0-flash"
	DefaultMaxTokens  = 512
	DefaultMaxRetries = 2

	defaultTemperature = 0.3
)

// ErrNoAPIKey is returned at construction time when no provider credential
// is configured.
var ErrNoAPIKey = errors.New("GOOGLE_API_KEY not set: set it in your .env file or environment")

// ResearchAgent answers one query with one completion call, using a
// compressed prompt tuned for low token consumption.
type ResearchAgent struct {
	client     llm.ChatCompleter
	model      string
	maxTokens  int
	temp       float32
	maxRetries int
	sleep      func(time.Duration)
}

// Info describes the agent's capabilities for the introspection endpoint.
type Info struct {
	Model        string   `json:"model"`
	Status       string   `json:"status"`
	Capabilities []string `json:"capabilities"`
}

func New(apiKey string, opts ...Option) (*ResearchAgent, error) {
	c, err := newConfig(apiKey, Config{
		Model:       DefaultModel,
		MaxTokens:   DefaultMaxTokens,
		Temperature: defaultTemperature,
		MaxRetries:  DefaultMaxRetries,
	}, opts...)
	if err != nil {
		return nil, err
	}

	return &ResearchAgent{
		client:     c.Client,
		model:      c.Model,
		maxTokens:  c.MaxTokens,
		temp:       c.Temperature,
		maxRetries: c.MaxRetries,
		sleep:      c.Sleep,
	}, nil
}

func (a *ResearchAgent) Model() string {
	return a.model
}

func (a *ResearchAgent) Info() Info {
	return Info{
		Model:  a.model,
		Status: "ready",
		Capabilities: []string{
			"Text generation",
			"Research queries",
			"Information synthesis",
		},
	}
}

// Research answers query with a single completion call. Rate-limit errors are
// retried with exponential backoff; all failures are folded into the result
// text with zeroed usage, so the caller always gets a presentable result.
func (a *ResearchAgent) Research(ctx context.Context, query string) types.ResearchResult {
	prompt := singleShotPrompt(query, a.maxTokens)

	for attempt := 0; ; attempt++ {
		resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: a.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
			MaxTokens:   a.maxTokens,
			Temperature: a.temp,
		})
		if err != nil {
			if !IsRateLimit(err) {
				xlog.Error("Research call failed", "model", a.model, "error", err)
				return types.ResearchResult{Text: researchErrorMessage(err)}
			}
			if attempt < a.maxRetries {
				wait := time.Duration(1<<attempt) * time.Second
				xlog.Warn("Provider rate limit hit, backing off", "attempt", attempt, "wait", wait)
				a.sleep(wait)
				continue
			}
			xlog.Warn("Provider rate limit persisted, giving up", "retries", a.maxRetries)
			return types.ResearchResult{Text: quotaExceededMessage(err)}
		}

		text := ""
		if len(resp.Choices) > 0 {
			text = resp.Choices[0].Message.Content
		}
		return types.ResearchResult{
			Text:  text,
			Usage: types.UsageFromResponse(prompt, text, resp.Usage),
		}
	}
}

// IsRateLimit reports whether err is a provider rate-limit or quota
// exhaustion error.
func IsRateLimit(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

func truncateError(err error, limit int) string {
	msg := err.Error()
	if len(msg) > limit {
		msg = msg[:limit]
	}
	return msg
}

func quotaExceededMessage(err error) string {
	return fmt.Sprintf(`❌ **API Quota Exceeded**

You've hit your Gemini API rate limit. This usually means:

1. **Free tier quota exhausted** - Check your usage at https://aistudio.google.com/
2. **Too many requests** - Wait a few minutes and try again
3. **Daily limit reached** - Quota resets daily

💡 **Solutions:**
- Wait 1-2 minutes before trying again
- Use lower token limits (128-256) to conserve quota
- Consider enabling billing for higher limits

📋 **Error details:** %s`, truncateError(err, 200))
}

func researchErrorMessage(err error) string {
	return fmt.Sprintf("❌ **Error during research:**\n\n%s\n\nPlease check your API key and try again.", truncateError(err, 200))
}
