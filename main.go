package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/deepscout-ai/deepscout/pkg/xlog"
	"github.com/deepscout-ai/deepscout/webui"
)

func main() {
	_ = godotenv.Load()

	apiKey := os.Getenv("GOOGLE_API_KEY")
	model := os.Getenv("DEEPSCOUT_MODEL")
	apiURL := os.Getenv("DEEPSCOUT_LLM_API_URL")
	timeout := os.Getenv("DEEPSCOUT_TIMEOUT")
	listen := os.Getenv("DEEPSCOUT_LISTEN")
	if listen == "" {
		listen = ":8000"
	}

	if apiKey == "" {
		// The server still comes up: the catalog serves an empty list and the
		// research endpoints report the missing credential.
		xlog.Warn("GOOGLE_API_KEY not set, research endpoints will be unavailable")
	}

	app := webui.NewApp(
		webui.WithAPIKey(apiKey),
		webui.WithBaseURL(apiURL),
		webui.WithDefaultModel(model),
		webui.WithTimeout(timeout),
	)

	xlog.Info("Starting DeepScout research agent", "listen", listen, "model", model)
	if err := app.Listen(listen); err != nil {
		panic(err)
	}
}
