package agent_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/deepscout-ai/deepscout/core/agent"
	"github.com/deepscout-ai/deepscout/core/types"
	"github.com/deepscout-ai/deepscout/pkg/llm"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sashabaranov/go-openai"
)

func completionWith(text string, usage openai.Usage) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: text}},
		},
		Usage: usage,
	}
}

var _ = Describe("ResearchAgent", func() {
	var (
		mock   *llm.MockClient
		slept  []time.Duration
		sleep  func(time.Duration)
		newFor func(opts ...agent.Option) *agent.ResearchAgent
	)

	BeforeEach(func() {
		mock = &llm.MockClient{}
		slept = nil
		sleep = func(d time.Duration) { slept = append(slept, d) }
		newFor = func(opts ...agent.Option) *agent.ResearchAgent {
			a, err := agent.New("test-key",
				append([]agent.Option{agent.WithClient(mock), agent.WithSleep(sleep)}, opts...)...)
			Expect(err).NotTo(HaveOccurred())
			return a
		}
	})

	It("fails construction without a credential", func() {
		_, err := agent.New("")
		Expect(err).To(MatchError(agent.ErrNoAPIKey))
	})

	It("asks for at most half the token budget in words", func() {
		for _, maxTokens := range []int{128, 512, 1000} {
			var prompt string
			mock.CreateChatCompletionFunc = func(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
				prompt = req.Messages[0].Content
				return completionWith("ok", openai.Usage{PromptTokens: 1, CompletionTokens: 1, TotalTokens: 2}), nil
			}
			a := newFor(agent.WithMaxTokens(maxTokens))

			a.Research(context.Background(), "test")
			Expect(prompt).To(ContainSubstring(fmt.Sprintf("in %d words or less", maxTokens/2)))
			Expect(prompt).To(ContainSubstring("Question: test"))
		}
	})

	It("returns the provider text and reported usage on success", func() {
		mock.CreateChatCompletionFunc = func(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
			Expect(req.Model).To(Equal("gemini-2.0-flash"))
			return completionWith("Tokyo has a large pet market.",
				openai.Usage{PromptTokens: 30, CompletionTokens: 12, TotalTokens: 42}), nil
		}
		a := newFor()

		res := a.Research(context.Background(), "Should we launch a pet-sitting app in Tokyo?")
		Expect(res.Text).To(Equal("Tokyo has a large pet market."))
		Expect(res.Usage.TotalTokens).To(BeNumerically(">", 0))
		Expect(res.Usage).To(Equal(types.TokenUsage{PromptTokens: 30, CompletionTokens: 12, TotalTokens: 42}))
	})

	It("estimates usage from character counts when the provider reports none", func() {
		text := strings.Repeat("x", 40)
		var prompt string
		mock.CreateChatCompletionFunc = func(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
			prompt = req.Messages[0].Content
			return completionWith(text, openai.Usage{}), nil
		}
		a := newFor()

		res := a.Research(context.Background(), "estimate me")
		Expect(res.Usage.PromptTokens).To(Equal(len(prompt) / 4))
		Expect(res.Usage.CompletionTokens).To(Equal(len(text) / 4))
		Expect(res.Usage.TotalTokens).To(Equal(res.Usage.PromptTokens + res.Usage.CompletionTokens))
	})

	Context("when the provider keeps returning 429", func() {
		BeforeEach(func() {
			mock.CreateChatCompletionFunc = func(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
				return openai.ChatCompletionResponse{}, &openai.APIError{
					HTTPStatusCode: http.StatusTooManyRequests,
					Message:        "quota exhausted",
				}
			}
		})

		It("retries with exponential backoff, then reports quota exhaustion", func() {
			calls := 0
			inner := mock.CreateChatCompletionFunc
			mock.CreateChatCompletionFunc = func(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
				calls++
				return inner(ctx, req)
			}
			a := newFor()

			res := a.Research(context.Background(), "test")
			Expect(calls).To(Equal(3))
			Expect(slept).To(Equal([]time.Duration{1 * time.Second, 2 * time.Second}))
			Expect(res.Text).To(ContainSubstring("API Quota Exceeded"))
			Expect(res.Usage).To(Equal(types.TokenUsage{}))
		})

		It("honors a custom retry budget", func() {
			a := newFor(agent.WithMaxRetries(4))

			res := a.Research(context.Background(), "test")
			Expect(slept).To(Equal([]time.Duration{
				1 * time.Second, 2 * time.Second, 4 * time.Second, 8 * time.Second,
			}))
			Expect(res.Text).To(ContainSubstring("API Quota Exceeded"))
		})
	})

	It("recovers when the rate limit clears within the retry budget", func() {
		calls := 0
		mock.CreateChatCompletionFunc = func(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
			calls++
			if calls == 1 {
				return openai.ChatCompletionResponse{}, errors.New("googleapi: RESOURCE_EXHAUSTED")
			}
			return completionWith("recovered", openai.Usage{PromptTokens: 5, CompletionTokens: 5, TotalTokens: 10}), nil
		}
		a := newFor()

		res := a.Research(context.Background(), "test")
		Expect(res.Text).To(Equal("recovered"))
		Expect(slept).To(Equal([]time.Duration{1 * time.Second}))
	})

	It("does not retry other provider errors", func() {
		calls := 0
		long := strings.Repeat("e", 300)
		mock.CreateChatCompletionFunc = func(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
			calls++
			return openai.ChatCompletionResponse{}, errors.New(long)
		}
		a := newFor()

		res := a.Research(context.Background(), "test")
		Expect(calls).To(Equal(1))
		Expect(slept).To(BeEmpty())
		Expect(res.Text).To(ContainSubstring("Error during research"))
		Expect(res.Text).To(ContainSubstring(long[:200]))
		Expect(res.Text).NotTo(ContainSubstring(long[:201]))
		Expect(res.Usage).To(Equal(types.TokenUsage{}))
	})

	It("describes its capabilities", func() {
		a := newFor(agent.WithModel("gemini-1.5-flash"))
		info := a.Info()
		Expect(info.Model).To(Equal("gemini-1.5-flash"))
		Expect(info.Status).To(Equal("ready"))
		Expect(info.Capabilities).To(ContainElement("Research queries"))
	})
})

var _ = Describe("IsRateLimit", func() {
	It("matches API errors with status 429", func() {
		Expect(agent.IsRateLimit(&openai.APIError{HTTPStatusCode: http.StatusTooManyRequests})).To(BeTrue())
	})

	It("matches quota markers in plain error text", func() {
		Expect(agent.IsRateLimit(errors.New("error 429: too many requests"))).To(BeTrue())
		Expect(agent.IsRateLimit(errors.New("RESOURCE_EXHAUSTED: quota"))).To(BeTrue())
	})

	It("rejects unrelated errors", func() {
		Expect(agent.IsRateLimit(errors.New("connection refused"))).To(BeFalse())
	})
})
