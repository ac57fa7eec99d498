// Package webui is the HTTP gateway: it owns the rate limiter and the
// per-configuration agent caches, and maps requests onto the research
// services.
package webui

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	fiber "github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/deepscout-ai/deepscout/core/agent"
	"github.com/deepscout-ai/deepscout/core/models"
	"github.com/deepscout-ai/deepscout/core/ratelimit"
	"github.com/deepscout-ai/deepscout/pkg/xlog"
	"github.com/deepscout-ai/deepscout/webui/types"
)

// Version is reported by the health endpoint.
const Version = "0.1.0"

type agentKey struct {
	model     string
	maxTokens int
}

type App struct {
	*fiber.App

	config  *Config
	limiter *ratelimit.SlidingWindow
	catalog *models.Catalog

	// Cached service instances, created lazily on first use and never
	// evicted for the lifetime of the process.
	mu         sync.Mutex
	agents     map[agentKey]*agent.ResearchAgent
	deepAgents map[string]*agent.DeepResearchAgent
}

func NewApp(opts ...Option) *App {
	config := NewConfig(opts...)

	webapp := fiber.New(fiber.Config{
		AppName:               "DeepScout",
		DisableStartupMessage: true,
	})

	a := &App{
		App:        webapp,
		config:     config,
		limiter:    ratelimit.NewSlidingWindow(config.RateLimit, config.RateWindow),
		catalog:    models.NewCatalog(config.modelLister(), config.APIKey),
		agents:     map[agentKey]*agent.ResearchAgent{},
		deepAgents: map[string]*agent.DeepResearchAgent{},
	}
	a.registerRoutes(webapp)

	return a
}

func (a *App) agentOptions(extra ...agent.Option) []agent.Option {
	opts := []agent.Option{
		agent.WithBaseURL(a.config.BaseURL),
		agent.WithTimeout(a.config.Timeout),
	}
	if a.config.Client != nil {
		opts = append(opts, agent.WithClient(a.config.Client))
	}
	return append(opts, extra...)
}

func (a *App) getAgent(model string, maxTokens int) (*agent.ResearchAgent, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	key := agentKey{model: model, maxTokens: maxTokens}
	if cached, ok := a.agents[key]; ok {
		return cached, nil
	}

	ag, err := agent.New(a.config.APIKey, a.agentOptions(
		agent.WithModel(model),
		agent.WithMaxTokens(maxTokens),
	)...)
	if err != nil {
		return nil, err
	}
	a.agents[key] = ag
	return ag, nil
}

func (a *App) getDeepAgent(model string) (*agent.DeepResearchAgent, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if cached, ok := a.deepAgents[model]; ok {
		return cached, nil
	}

	deep, err := agent.NewDeep(a.config.APIKey, a.agentOptions(
		agent.WithModel(model),
	)...)
	if err != nil {
		return nil, err
	}
	a.deepAgents[model] = deep
	return deep, nil
}

// checkRateLimit admits the call or writes the 429 response. The window is
// global across all endpoints and callers.
func (a *App) checkRateLimit(c *fiber.Ctx) (bool, error) {
	wait, ok := a.limiter.Allow()
	if ok {
		return true, nil
	}
	return false, errorJSONMessage(c, http.StatusTooManyRequests, fmt.Sprintf(
		"Rate limit exceeded. Please wait %d seconds before trying again. "+
			"(Free tier limit: %d requests per %d seconds)",
		int(wait.Seconds()), a.limiter.Limit(), int(a.limiter.Window().Seconds())))
}

func (a *App) parseResearchRequest(c *fiber.Ctx) (*types.ResearchRequest, error) {
	req := &types.ResearchRequest{}
	if err := c.BodyParser(req); err != nil {
		return nil, err
	}
	if req.Model == "" {
		req.Model = a.config.DefaultModel
	}
	if req.MaxTokens <= 0 {
		req.MaxTokens = agent.DefaultMaxTokens
	}
	return req, nil
}

func (a *App) Health() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(types.HealthResponse{
			Status:  "healthy",
			Message: "Research Agent is running",
			Version: Version,
		})
	}
}

func (a *App) AgentInfo() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ag, err := a.getAgent(a.config.DefaultModel, agent.DefaultMaxTokens)
		if err != nil {
			return c.JSON(fiber.Map{
				"status":  "not_configured",
				"message": "Agent not configured. Please set GOOGLE_API_KEY environment variable.",
			})
		}
		return c.JSON(ag.Info())
	}
}

func (a *App) Models() fiber.Handler {
	return func(c *fiber.Ctx) error {
		list := a.catalog.List(c.UserContext())
		if len(list) == 0 {
			return errorJSONMessage(c, http.StatusInternalServerError,
				"Could not fetch models. Please check GOOGLE_API_KEY.")
		}
		return c.JSON(types.ModelsResponse{Models: list})
	}
}

func (a *App) Research() fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := a.parseResearchRequest(c)
		if err != nil {
			return errorJSONMessage(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		}
		if ok, rejected := a.checkRateLimit(c); !ok {
			return rejected
		}

		ag, err := a.getAgent(req.Model, req.MaxTokens)
		if err != nil {
			return errorJSONMessage(c, http.StatusInternalServerError, err.Error())
		}

		id := uuid.New().String()
		start := time.Now()
		xlog.Info("Research request", "id", id, "model", req.Model, "max_tokens", req.MaxTokens)

		result := ag.Research(c.UserContext(), req.Query)

		xlog.Info("Research done", "id", id, "total_tokens", result.Usage.TotalTokens, "took", time.Since(start))
		return c.JSON(types.ResearchResponse{
			Query:      req.Query,
			Result:     result.Text,
			Model:      ag.Model(),
			TokenUsage: result.Usage,
		})
	}
}

func (a *App) DeepResearch() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// max_tokens from the body is ignored here; every stage runs with the
		// pipeline's own output budget.
		req, err := a.parseResearchRequest(c)
		if err != nil {
			return errorJSONMessage(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		}
		if ok, rejected := a.checkRateLimit(c); !ok {
			return rejected
		}

		deep, err := a.getDeepAgent(req.Model)
		if err != nil {
			return errorJSONMessage(c, http.StatusInternalServerError, err.Error())
		}

		id := uuid.New().String()
		start := time.Now()
		xlog.Info("Deep research request", "id", id, "model", req.Model)

		report, meta := deep.DeepResearch(c.UserContext(), req.Query)
		if meta.Err != "" {
			xlog.Warn("Deep research errored", "id", id, "error", meta.Err)
		}

		xlog.Info("Deep research done", "id", id, "steps", meta.StepsCompleted,
			"total_tokens", meta.Usage.TotalTokens, "took", time.Since(start))
		return c.JSON(types.DeepResearchResponse{
			Query:          req.Query,
			Result:         report,
			Model:          deep.Model(),
			Mode:           meta.Mode,
			StepsCompleted: meta.StepsCompleted,
			TokenUsage:     meta.Usage,
		})
	}
}

func errorJSONMessage(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(struct {
		Error string `json:"error"`
	}{Error: message})
}
