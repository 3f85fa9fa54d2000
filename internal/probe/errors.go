package probe

import "errors"

var (
	// ErrUnhealthy is returned when /healthz does not answer 200.
	ErrUnhealthy = errors.New("service unhealthy")
	// ErrUnexpectedReply marks a reply that is missing an expected substring.
	ErrUnexpectedReply = errors.New("unexpected reply")
	// ErrBadStatus marks a webhook answer that is not 200.
	ErrBadStatus = errors.New("unexpected status")
	// ErrFailures is returned by Run when at least one scenario failed.
	ErrFailures = errors.New("probe failures")
)
