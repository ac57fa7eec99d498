package agent

import (
	"time"

	"github.com/deepscout-ai/deepscout/pkg/llm"
)

type Config struct {
	Model       string
	MaxTokens   int
	Temperature float32
	MaxRetries  int
	BaseURL     string
	Timeout     string
	Client      llm.ChatCompleter
	Sleep       func(time.Duration)
}

type Option func(*Config)

func WithModel(model string) Option {
	return func(c *Config) {
		if model != "" {
			c.Model = model
		}
	}
}

func WithMaxTokens(maxTokens int) Option {
	return func(c *Config) {
		if maxTokens > 0 {
			c.MaxTokens = maxTokens
		}
	}
}

func WithTemperature(temperature float32) Option {
	return func(c *Config) {
		c.Temperature = temperature
	}
}

func WithMaxRetries(retries int) Option {
	return func(c *Config) {
		c.MaxRetries = retries
	}
}

func WithBaseURL(url string) Option {
	return func(c *Config) {
		c.BaseURL = url
	}
}

func WithTimeout(timeout string) Option {
	return func(c *Config) {
		c.Timeout = timeout
	}
}

// WithClient overrides the provider client, for tests.
func WithClient(client llm.ChatCompleter) Option {
	return func(c *Config) {
		c.Client = client
	}
}

// WithSleep overrides the backoff sleeper, for tests.
func WithSleep(sleep func(time.Duration)) Option {
	return func(c *Config) {
		c.Sleep = sleep
	}
}

func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}

func newConfig(apiKey string, defaults Config, opts ...Option) (*Config, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	c := defaults
	c.Apply(opts...)
	if c.Client == nil {
		c.Client = llm.NewClient(apiKey, c.BaseURL, c.Timeout)
	}
	if c.Sleep == nil {
		c.Sleep = time.Sleep
	}
	return &c, nil
}
