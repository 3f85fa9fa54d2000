package probe

import "os"

// ShowHelp prints usage information for the webhook probe.
func ShowHelp() {
	os.Stdout.WriteString(`Careers Webhook Probe
=====================

Sends one canned Dialogflow request per supported intent (plus an unknown
intent) to a running webhook and checks every reply.

Usage:
  go run ./cmd/webhook-probe [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:8080")
  -path string
        Webhook path (default "/df-webhook")
  -workers int
        Number of concurrent workers (default 4)
  -repeat int
        Times each scenario is sent (default 1)
  -rps float
        Request rate cap, 0 for none (default 0)
  -timeout duration
        HTTP request timeout (default 15s)
  -cx
        Send Dialogflow CX shaped requests
  -log-format string
        Log format, text or json (default "text")
  -verbose
        Log every reply
  -help
        Show this help message

Examples:
  # Probe a local instance
  go run ./cmd/webhook-probe

  # Soak a deployment with CX requests
  go run ./cmd/webhook-probe -url https://webhook.example.com -cx -repeat 50 -workers 8 -rps 20
`)
}
