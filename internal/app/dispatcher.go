// Package service resolves webhook intents into plain-text replies.
package service

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/okian/careerdesk/internal/adapters/search"
	"github.com/okian/careerdesk/internal/domain/discovery"
	"github.com/okian/careerdesk/internal/domain/eligibility"
	"github.com/okian/careerdesk/internal/domain/intent"
	"github.com/okian/careerdesk/internal/domain/simulate"
	"github.com/okian/careerdesk/internal/domain/slots"
	"github.com/okian/careerdesk/pkg/logger"
	"github.com/okian/careerdesk/pkg/metrics"
)

// Fixed replies.
const (
	HelpText  = "I’m not sure how to help with that. Try: Find roles • Eligibility • Interview slots • Status • FAQs • Human handoff"
	ErrorText = "An error occurred in the demo webhook."
)

// Searcher queries live listings.
type Searcher interface {
	Search(ctx context.Context, q search.Query) search.Result
	BuildURL(phrase, location string) string
}

// Scorer evaluates eligibility from raw slot values.
type Scorer interface {
	Evaluate(degree string, rawYear, rawExperience any) eligibility.Verdict
}

// SlotGenerator proposes interview times.
type SlotGenerator interface {
	Next() []string
}

// Dispatcher maps an intent name and its parameters to one reply. It keeps
// no per-request state and is safe for concurrent use.
type Dispatcher struct {
	searcher    Searcher
	scorer      Scorer
	slots       SlotGenerator
	recommender *discovery.Recommender
	random      simulate.Source
	logger      logger.Logger
}

// Option applies a configuration option to the Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets a custom logger for the dispatcher.
func WithLogger(l logger.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithSearcher sets the live listings client.
func WithSearcher(s Searcher) Option {
	return func(d *Dispatcher) {
		if s != nil {
			d.searcher = s
		}
	}
}

// WithScorer sets the eligibility scorer.
func WithScorer(s Scorer) Option {
	return func(d *Dispatcher) {
		if s != nil {
			d.scorer = s
		}
	}
}

// WithSlots sets the interview slot generator.
func WithSlots(g SlotGenerator) Option {
	return func(d *Dispatcher) {
		if g != nil {
			d.slots = g
		}
	}
}

// WithRandom sets the source used for simulated statuses and tickets.
func WithRandom(src simulate.Source) Option {
	return func(d *Dispatcher) {
		if src != nil {
			d.random = src
		}
	}
}

// New constructs a Dispatcher with default collaborators.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		searcher: search.NewClient(),
		scorer:   eligibility.NewScorer(eligibility.WithLocation(slots.LoadLocation(slots.DefaultZone))),
		slots:    slots.NewGenerator(),
		random:   simulate.Default(),
		logger:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.recommender = discovery.NewRecommender(d.searcher.BuildURL)
	return d
}

// Resolve returns the reply for the named intent. Unknown names get HelpText;
// a panicking handler is logged and answered with ErrorText.
func (d *Dispatcher) Resolve(ctx context.Context, name string, raw map[string]any) (reply string) {
	start := time.Now()
	kind, known := intent.Parse(name)
	label := kind.String()
	log := d.logger.With(logger.String("intent", label))

	defer func() {
		if r := recover(); r != nil {
			log.Error(ctx, "intent handler panicked",
				logger.String("intent_name", name),
				logger.Any("panic", r),
				logger.String("stack", string(debug.Stack())))
			metrics.RecordIntent(label, metrics.OutcomePanic, msSince(start))
			reply = ErrorText
		}
	}()

	if !known {
		log.Debug(ctx, "unknown intent", logger.String("intent_name", name))
		metrics.RecordIntent(label, metrics.OutcomeUnknown, msSince(start))
		return HelpText
	}

	reply = d.handle(ctx, kind, raw)
	metrics.RecordIntent(label, metrics.OutcomeHandled, msSince(start))
	log.Debug(ctx, "intent resolved", logger.Duration("latency", time.Since(start)))
	return reply
}

// handle must name every intent.Kind.
func (d *Dispatcher) handle(ctx context.Context, kind intent.Kind, raw map[string]any) string {
	switch kind {
	case intent.FindRoles:
		return d.findRoles(ctx, raw)
	case intent.EligibilityCheck:
		return d.eligibilityCheck(ctx, raw)
	case intent.ScheduleBook:
		return d.scheduleBook()
	case intent.SchedulePick:
		return d.schedulePick(ctx, raw)
	case intent.Reschedule:
		return d.reschedule(ctx, raw)
	case intent.CancelInterview:
		return cancelText
	case intent.ApplicationStatus:
		return d.applicationStatus(ctx, raw)
	case intent.ContactHR:
		return d.contactHR()
	case intent.SearchRoles:
		return d.searchRoles(ctx, raw)
	case intent.PracticeInfo:
		return d.practiceInfo(ctx, raw)
	case intent.DiscoverRoles:
		return d.discoverRoles(ctx, raw)
	case intent.Unknown:
		return HelpText
	default:
		panic(fmt.Sprintf("intent %d has no handler", int(kind)))
	}
}

// decode reads the slots of kind from raw. Invalid slots are dropped and
// reported; if the rest still cannot be decoded every slot reads as absent.
func decode[T any](ctx context.Context, d *Dispatcher, kind intent.Kind, raw map[string]any) T {
	var p T
	dropped, err := intent.Decode(kind, raw, &p)
	for _, name := range dropped {
		metrics.RecordParamDiscarded(kind.String(), name)
	}
	if len(dropped) > 0 {
		d.logger.Debug(ctx, "dropped invalid parameters",
			logger.String("intent", kind.String()),
			logger.Any("params", dropped))
	}
	if err != nil {
		d.logger.Warn(ctx, "parameters ignored", logger.String("intent", kind.String()), logger.Error(err))
		var zero T
		return zero
	}
	return p
}

func msSince(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000
}
