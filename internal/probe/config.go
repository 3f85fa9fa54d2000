// Package probe drives a running webhook with canned Dialogflow requests
// and checks every reply. It backs the webhook-probe command.
package probe

import "time"

// Config holds configuration for a probe run.
type Config struct {
	BaseURL     string        // Base URL of the service
	WebhookPath string        // Path the webhook is mounted on
	Workers     int           // Number of concurrent workers
	Repeat      int           // Times each scenario is sent
	Timeout     time.Duration // HTTP request timeout
	RatePerSec  float64       // Request rate cap; zero disables it
	CX          bool          // Send Dialogflow CX shaped requests
	Verbose     bool          // Log every reply
}

// Scenario is one canned webhook request and the substrings its reply must contain.
type Scenario struct {
	Name       string
	Intent     string
	Parameters map[string]any
	Expect     []string
}

// Outcome is the checked result of sending one Scenario.
type Outcome struct {
	Scenario  string
	RequestID string
	Status    int
	Reply     string
	Latency   time.Duration
	Err       error
}

// Passed reports whether the reply arrived and matched.
func (o Outcome) Passed() bool { return o.Err == nil }

// Stats holds run statistics.
type Stats struct {
	Sent      int
	Passed    int
	Failed    int
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
	Failures  []Outcome
}
