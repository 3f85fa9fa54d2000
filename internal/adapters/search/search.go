// Package search queries the external job listings page and extracts role
// listings from its HTML.
package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/okian/careerdesk/internal/domain/model"
	"github.com/okian/careerdesk/pkg/logger"
	"github.com/okian/careerdesk/pkg/metrics"
)

// Defaults.
const (
	DefaultBaseURL    = "https://careers.example.com/search"
	DefaultTimeout    = 8 * time.Second
	DefaultMaxResults = 5
	DefaultUserAgent  = "careerdesk-webhook/1.0"
	defaultRatePerSec = 5
	defaultBurst      = 5
	maxBodyBytes      = 4 << 20
)

// FallbackPhrase is searched when neither keyword nor practice is given.
const FallbackPhrase = "campus analyst"

// Query holds the search slots. All fields are optional.
type Query struct {
	Keyword  string
	Practice string
	Location string
}

// Phrase returns the keyword, else the practice, else FallbackPhrase.
func (q Query) Phrase() string {
	if k := strings.TrimSpace(q.Keyword); k != "" {
		return k
	}
	if p := strings.TrimSpace(q.Practice); p != "" {
		return p
	}
	return FallbackPhrase
}

// Result is always usable: on failure Listings is empty and URL still holds
// the constructed query so the user can browse manually.
type Result struct {
	Listings []model.RoleListing
	URL      string
	Err      error
}

// Client fetches and parses the listings page. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
	limiter    *rate.Limiter
	userAgent  string
	maxResults int
	log        logger.Logger
}

// NewClient creates a Client with the given options.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		baseURL:    DefaultBaseURL,
		timeout:    DefaultTimeout,
		limiter:    rate.NewLimiter(defaultRatePerSec, defaultBurst),
		userAgent:  DefaultUserAgent,
		maxResults: DefaultMaxResults,
		log:        logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BuildURL appends URL-encoded keyword and optional location parameters to
// base, keeping any query base already carries.
func BuildURL(base, phrase, location string) string {
	u, err := url.Parse(base)
	if err != nil {
		v := url.Values{"keyword": {phrase}}
		if location = strings.TrimSpace(location); location != "" {
			v.Set("location", location)
		}
		return base + "?" + v.Encode()
	}
	v := u.Query()
	v.Set("keyword", phrase)
	if location = strings.TrimSpace(location); location != "" {
		v.Set("location", location)
	}
	u.RawQuery = v.Encode()
	return u.String()
}

// URL returns the listings URL for q.
func (c *Client) URL(q Query) string {
	return BuildURL(c.baseURL, q.Phrase(), q.Location)
}

// BuildURL builds a listings URL against the client's base.
func (c *Client) BuildURL(phrase, location string) string {
	return BuildURL(c.baseURL, phrase, location)
}

// Search fetches the listings page for q. It never returns an error: every
// failure degrades to an empty Result carrying the URL.
func (c *Client) Search(ctx context.Context, q Query) Result {
	start := time.Now()
	res := Result{URL: c.URL(q), Listings: []model.RoleListing{}}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	listings, fallback, err := c.fetch(ctx, res.URL)
	latency := time.Since(start)
	metrics.RecordSearch(outcome(listings, err), float64(latency.Milliseconds()), len(listings), fallback)
	if err != nil {
		c.log.Warn(ctx, "listings search degraded",
			logger.String("url", res.URL),
			logger.Duration("latency", latency),
			logger.Error(err))
		res.Err = err
		return res
	}

	c.log.Debug(ctx, "listings search done",
		logger.String("url", res.URL),
		logger.Int("results", len(listings)),
		logger.Bool("fallback", fallback))
	res.Listings = listings
	return res
}

func (c *Client) fetch(ctx context.Context, rawURL string) ([]model.RoleListing, bool, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, false, fmt.Errorf("%w: %w", ErrThrottled, ctxErr)
		}
		return nil, false, fmt.Errorf("%w: %v", ErrThrottled, err)
	}

	base, err := url.Parse(rawURL)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, false, fmt.Errorf("%w: %w", ErrFetch, ctxErr)
		}
		return nil, false, fmt.Errorf("%w: %v", ErrParse, err)
	}

	listings, fallback := Extract(doc, base, c.maxResults)
	return listings, fallback, nil
}

func outcome(listings []model.RoleListing, err error) string {
	switch {
	case err == nil && len(listings) == 0:
		return metrics.SearchEmpty
	case err == nil:
		return metrics.SearchOK
	case errors.Is(err, ErrThrottled):
		return metrics.SearchThrottle
	case errors.Is(err, context.DeadlineExceeded):
		return metrics.SearchTimeout
	case errors.Is(err, ErrBadStatus):
		return metrics.SearchStatus
	default:
		return metrics.SearchError
	}
}
