package webui

import (
	"time"

	"github.com/deepscout-ai/deepscout/core/agent"
	"github.com/deepscout-ai/deepscout/core/ratelimit"
	"github.com/deepscout-ai/deepscout/pkg/llm"
)

type Config struct {
	APIKey       string
	BaseURL      string
	DefaultModel string
	Timeout      string
	RateLimit    int
	RateWindow   time.Duration

	// Client and Models override the provider clients, for tests.
	Client llm.ChatCompleter
	Models llm.ModelLister
}

type Option func(*Config)

func WithAPIKey(key string) Option {
	return func(c *Config) {
		c.APIKey = key
	}
}

func WithBaseURL(url string) Option {
	return func(c *Config) {
		if url != "" {
			c.BaseURL = url
		}
	}
}

func WithDefaultModel(model string) Option {
	return func(c *Config) {
		if model != "" {
			c.DefaultModel = model
		}
	}
}

func WithTimeout(timeout string) Option {
	return func(c *Config) {
		if timeout != "" {
			c.Timeout = timeout
		}
	}
}

func WithRateLimit(limit int, window time.Duration) Option {
	return func(c *Config) {
		c.RateLimit = limit
		c.RateWindow = window
	}
}

func WithClient(client llm.ChatCompleter) Option {
	return func(c *Config) {
		c.Client = client
	}
}

func WithModelLister(lister llm.ModelLister) Option {
	return func(c *Config) {
		c.Models = lister
	}
}

func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}

func NewConfig(opts ...Option) *Config {
	c := &Config{
		BaseURL:      llm.DefaultBaseURL,
		DefaultModel: agent.DefaultModel,
		Timeout:      "5m",
		RateLimit:    ratelimit.DefaultLimit,
		RateWindow:   ratelimit.DefaultWindow,
	}
	c.Apply(opts...)
	return c
}

// modelLister returns the configured override or a real provider client.
func (c *Config) modelLister() llm.ModelLister {
	if c.Models != nil {
		return c.Models
	}
	return llm.NewClient(c.APIKey, c.BaseURL, c.Timeout)
}
