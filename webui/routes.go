package webui

import (
	"embed"
	"net/http"

	fiber "github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
)

//go:embed static/*
var staticFS embed.FS

func (a *App) registerRoutes(webapp *fiber.App) {
	webapp.Get("/health", a.Health())
	webapp.Get("/agent/info", a.AgentInfo())
	webapp.Get("/models", a.Models())

	webapp.Post("/research", a.Research())
	webapp.Post("/deep-research", a.DeepResearch())

	// Landing page, with a JSON descriptor when no page is bundled.
	webapp.Get("/", func(c *fiber.Ctx) error {
		index, err := staticFS.ReadFile("static/index.html")
		if err != nil {
			return c.JSON(fiber.Map{
				"message": "Research Agent API",
				"health":  "/health",
				"models":  "/models",
			})
		}
		c.Set("Content-Type", "text/html; charset=utf-8")
		return c.Send(index)
	})

	webapp.Use("/static", filesystem.New(filesystem.Config{
		Root:       http.FS(staticFS),
		PathPrefix: "static",
	}))
}
