package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/okian/careerdesk/internal/adapters/http/api"
	"github.com/okian/careerdesk/internal/adapters/http/site"
	"github.com/okian/careerdesk/internal/adapters/http/swagger"
	"github.com/okian/careerdesk/internal/adapters/search"
	service "github.com/okian/careerdesk/internal/app"
	"github.com/okian/careerdesk/internal/config"
	"github.com/okian/careerdesk/internal/domain/eligibility"
	"github.com/okian/careerdesk/internal/domain/slots"
	"github.com/okian/careerdesk/pkg/logger"
	"github.com/okian/careerdesk/pkg/metrics"

	"github.com/rs/cors"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 15 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> .env -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger isn't available yet
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	log := logger.Get()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	go startSystemMetricsUpdater(ctx, cfg.MetricsRefreshInterval)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newHandler(ctx, cfg, log),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr), logger.String("webhook_path", cfg.WebhookPath))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info(ctx, "shutting down server...")
	case err, ok := <-errCh:
		if ok {
			log.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
			os.Exit(1)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}

// newHandler builds the full route tree for cfg: banner, docs, health,
// metrics and the webhook, behind CORS and request-id middleware.
func newHandler(ctx context.Context, cfg *config.Config, log logger.Logger) http.Handler {
	loc := slots.LoadLocation(cfg.Timezone)

	searcher := search.NewClient(
		search.WithBaseURL(cfg.SearchBaseURL),
		search.WithTimeout(cfg.SearchTimeout),
		search.WithMaxResults(cfg.SearchMaxResults),
		search.WithRate(cfg.SearchRatePerSec, cfg.SearchBurst),
		search.WithUserAgent(cfg.SearchUserAgent),
		search.WithLogger(log.Named("search")),
	)

	dispatcher := service.New(
		service.WithLogger(log.Named("dispatcher")),
		service.WithSearcher(searcher),
		service.WithScorer(eligibility.NewScorer(eligibility.WithLocation(loc))),
		service.WithSlots(slots.NewGenerator()),
	)

	mux := http.NewServeMux()
	site.Register(ctx, mux)
	swagger.Register(ctx, mux)

	apiServer := api.NewServer(dispatcher,
		api.WithWebhookPath(cfg.WebhookPath),
		api.WithSourceTag(cfg.SourceTag),
		api.WithApology(service.ErrorText),
		api.WithLogger(log.Named("http")),
	)
	apiServer.Register(ctx, mux)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", api.RequestIDHeader},
		ExposedHeaders: []string{api.RequestIDHeader},
	})

	return api.RequestIDMiddleware(c.Handler(mux))
}

// startSystemMetricsUpdater refreshes memory and goroutine gauges until ctx ends.
func startSystemMetricsUpdater(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	updateSystemMetrics()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystem(m.Alloc, runtime.NumGoroutine())
}
