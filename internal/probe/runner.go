package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/okian/careerdesk/pkg/logger"
)

// Defaults applied to zero Config fields.
const (
	DefaultWebhookPath = "/df-webhook"
	defaultWorkers     = 4
	defaultTimeout     = 15 * time.Second
	workerChannelMul   = 2
	percent            = 100
)

type job struct {
	scenario Scenario
	runID    string
	seq      int
}

// Run checks /healthz, then sends each scenario cfg.Repeat times across
// cfg.Workers workers. It returns the stats and ErrFailures when any reply
// did not match.
func Run(ctx context.Context, cfg *Config, scenarios []Scenario) (*Stats, error) {
	cfg = withDefaults(cfg)
	log := logger.Get()
	stats := &Stats{StartTime: time.Now()}
	runID := uuid.NewString()

	log.Info(ctx, "starting webhook probe",
		logger.String("run_id", runID),
		logger.String("baseURL", cfg.BaseURL),
		logger.String("webhookPath", cfg.WebhookPath),
		logger.Int("scenarios", len(scenarios)),
		logger.Int("repeat", cfg.Repeat),
		logger.Int("workers", cfg.Workers),
		logger.Bool("cx", cfg.CX))

	client := newHTTPClient(cfg.Timeout)
	if err := checkServiceHealth(ctx, client, cfg.BaseURL); err != nil {
		return stats, err
	}

	var limiter *rate.Limiter
	if cfg.RatePerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSec), 1)
	}

	jobs := make(chan job, cfg.Workers*workerChannelMul)
	outcomes := make(chan Outcome, cfg.Workers*workerChannelMul)
	url := strings.TrimRight(cfg.BaseURL, "/") + cfg.WebhookPath

	var wg sync.WaitGroup
	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				if limiter != nil {
					if err := limiter.Wait(ctx); err != nil {
						outcomes <- Outcome{Scenario: j.scenario.Name, Err: err}
						continue
					}
				}
				outcomes <- send(ctx, client, url, j, cfg.CX)
			}
		}()
	}

	go func() {
		defer close(jobs)
		seq := 0
		for r := 0; r < cfg.Repeat; r++ {
			for _, s := range scenarios {
				seq++
				select {
				case <-ctx.Done():
					return
				case jobs <- job{scenario: s, runID: runID, seq: seq}:
				}
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	for o := range outcomes {
		stats.Sent++
		if o.Passed() {
			stats.Passed++
			if cfg.Verbose {
				log.Info(ctx, "scenario passed",
					logger.String("scenario", o.Scenario),
					logger.String("request_id", o.RequestID),
					logger.Duration("latency", o.Latency),
					logger.String("reply", o.Reply))
			}
			continue
		}
		stats.Failed++
		stats.Failures = append(stats.Failures, o)
		log.Warn(ctx, "scenario failed",
			logger.String("scenario", o.Scenario),
			logger.String("request_id", o.RequestID),
			logger.Int("status", o.Status),
			logger.String("reply", o.Reply),
			logger.Error(o.Err))
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)

	if stats.Failed > 0 {
		return stats, fmt.Errorf("%w: %d of %d scenarios", ErrFailures, stats.Failed, stats.Sent)
	}
	return stats, nil
}

func withDefaults(cfg *Config) *Config {
	out := *cfg
	if out.WebhookPath == "" {
		out.WebhookPath = DefaultWebhookPath
	}
	if out.Workers <= 0 {
		out.Workers = defaultWorkers
	}
	if out.Repeat <= 0 {
		out.Repeat = 1
	}
	if out.Timeout <= 0 {
		out.Timeout = defaultTimeout
	}
	return &out
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient, baseURL string) error {
	resp, err := client.Get(ctx, strings.TrimRight(baseURL, "/")+"/healthz")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnhealthy, err)
	}
	_, _ = readResponseBody(resp)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, resp.StatusCode)
	}
	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// send posts one scenario and checks the reply.
func send(ctx context.Context, client *HTTPClient, url string, j job, cx bool) Outcome {
	o := Outcome{
		Scenario:  j.scenario.Name,
		RequestID: fmt.Sprintf("%s-%d", j.runID, j.seq),
	}
	start := time.Now()
	resp, err := client.Post(ctx, url, o.RequestID, requestBody(j.scenario, cx))
	if err != nil {
		o.Err = err
		return o
	}
	body, err := readResponseBody(resp)
	o.Latency = time.Since(start)
	o.Status = resp.StatusCode
	if err != nil {
		o.Err = err
		return o
	}
	if resp.StatusCode != http.StatusOK {
		o.Err = fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode)
		return o
	}

	var reply webhookReply
	if err := json.Unmarshal(body, &reply); err != nil {
		o.Err = fmt.Errorf("%w: %v", ErrUnexpectedReply, err)
		return o
	}
	o.Reply, o.Err = reply.text(cx)
	if o.Err != nil {
		return o
	}
	o.Err = check(o.Reply, j.scenario.Expect)
	return o
}

// check returns ErrUnexpectedReply naming the first expected substring missing from reply.
func check(reply string, expect []string) error {
	for _, want := range expect {
		if !strings.Contains(reply, want) {
			return fmt.Errorf("%w: missing %q", ErrUnexpectedReply, want)
		}
	}
	return nil
}

func displayFinalStats(ctx context.Context, stats *Stats) {
	var passRate, perSecond float64
	if stats.Sent > 0 {
		passRate = float64(stats.Passed) / float64(stats.Sent) * percent
	}
	if stats.Duration > 0 {
		perSecond = float64(stats.Sent) / stats.Duration.Seconds()
	}

	logger.Get().Info(ctx, "final statistics",
		logger.Int("sent", stats.Sent),
		logger.Int("passed", stats.Passed),
		logger.Int("failed", stats.Failed),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("passRate", passRate),
		logger.Float64("requestsPerSecond", perSecond))
}
