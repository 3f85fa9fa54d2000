package search

import "errors"

// Fetch failures. They are reported in Result.Err for logging only; callers
// always receive a usable Result.
var (
	ErrThrottled = errors.New("search throttled")
	ErrBadStatus = errors.New("unexpected status from listings page")
	ErrFetch     = errors.New("fetch listings page")
	ErrParse     = errors.New("parse listings page")
)
