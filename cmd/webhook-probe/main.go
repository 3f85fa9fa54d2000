package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/careerdesk/internal/probe"
	"github.com/okian/careerdesk/pkg/logger"
)

// Default configuration constants.
const (
	defaultWorkers   = 4
	defaultTimeout   = 15 * time.Second
	defaultRunBudget = 10 * time.Minute
)

func main() {
	var (
		baseURL   = flag.String("url", "http://localhost:8080", "Base URL of the service")
		path      = flag.String("path", probe.DefaultWebhookPath, "Webhook path")
		workers   = flag.Int("workers", defaultWorkers, "Number of concurrent workers")
		repeat    = flag.Int("repeat", 1, "Times each scenario is sent")
		rps       = flag.Float64("rps", 0, "Request rate cap, 0 for none")
		timeout   = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		cx        = flag.Bool("cx", false, "Send Dialogflow CX shaped requests")
		logFormat = flag.String("log-format", "text", "Log format: text or json")
		verbose   = flag.Bool("verbose", false, "Log every reply")
		help      = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		probe.ShowHelp()
		return
	}

	if err := logger.Init(logger.WithFormat(*logFormat)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunBudget)
	defer cancel()

	cfg := &probe.Config{
		BaseURL:     *baseURL,
		WebhookPath: *path,
		Workers:     *workers,
		Repeat:      *repeat,
		Timeout:     *timeout,
		RatePerSec:  *rps,
		CX:          *cx,
		Verbose:     *verbose,
	}

	if _, err := probe.Run(ctx, cfg, probe.DefaultScenarios()); err != nil {
		logger.Get().Error(ctx, "probe failed", logger.Error(err))
		cancel()
		os.Exit(1)
	}
}
