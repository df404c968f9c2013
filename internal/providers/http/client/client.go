package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/GriffinCanCode/horoscopefs/internal/infrastructure/resilience"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"
)

var ErrStatus = errors.New("unexpected response status")

// DefaultUserAgent identifies the filesystem to the horoscope websites
const DefaultUserAgent = "horoscopefs/1.0"

// Options configures the fetch client
type Options struct {
	// Timeout bounds one Get including every retry
	Timeout time.Duration
	// Retries is the number of extra attempts after a transport error or a
	// 5xx response. Zero means a single attempt.
	Retries int
	// RateLimit caps requests per second across all hosts. Zero is unlimited.
	RateLimit float64
	// UserAgent is sent with every request
	UserAgent string
	// BreakerThreshold is the number of consecutive transport failures that
	// open a host's breaker. Zero disables the breaker.
	BreakerThreshold uint32
	// BreakerCooldown is how long an open breaker rejects requests
	BreakerCooldown time.Duration
}

// DefaultOptions returns the options used when nothing is configured
func DefaultOptions() Options {
	return Options{
		Timeout:          30 * time.Second,
		UserAgent:        DefaultUserAgent,
		BreakerThreshold: 3,
		BreakerCooldown:  60 * time.Second,
	}
}

// Client fetches web pages with retries, rate limiting and one circuit
// breaker per host
type Client struct {
	resty    *resty.Client
	limiter  *rate.Limiter
	breakers *resilience.Set
}

// New creates a client from opts
func New(opts Options) *Client {
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = opts.Retries
	retryClient.RetryWaitMin = 500 * time.Millisecond
	retryClient.RetryWaitMax = 5 * time.Second
	retryClient.Logger = nil
	// Hand exhausted 5xx responses back instead of turning them into errors
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	restyClient := resty.NewWithClient(retryClient.StandardClient()).
		SetTimeout(opts.Timeout).
		SetHeader("User-Agent", opts.UserAgent).
		SetHeader("Accept", "text/html,application/xhtml+xml")

	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RateLimit > 0 {
		burst := int(opts.RateLimit)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	var breakers *resilience.Set
	if opts.BreakerThreshold > 0 {
		threshold := opts.BreakerThreshold
		breakers = resilience.NewSet(resilience.Settings{
			MaxRequests: 1,
			Timeout:     opts.BreakerCooldown,
			ReadyToTrip: func(counts resilience.Counts) bool {
				return counts.ConsecutiveFailures >= threshold
			},
			// A host that answers with an error status is still reachable
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, ErrStatus)
			},
		})
	}

	return &Client{
		resty:    restyClient,
		limiter:  limiter,
		breakers: breakers,
	}
}

// Get fetches rawURL and returns the response body. Any status outside
// 2xx is reported as ErrStatus.
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing url %q: %w", rawURL, err)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	var body []byte
	fetch := func() error {
		resp, err := c.resty.R().SetContext(ctx).Get(rawURL)
		if err != nil {
			return fmt.Errorf("GET %s: %w", rawURL, err)
		}
		if !resp.IsSuccess() {
			return fmt.Errorf("GET %s: %w: %s", rawURL, ErrStatus, resp.Status())
		}
		body = resp.Body()
		return nil
	}

	if c.breakers == nil {
		return body, fetch()
	}

	if err := c.breakers.Get(u.Host).Execute(fetch); err != nil {
		if errors.Is(err, resilience.ErrCircuitOpen) || errors.Is(err, resilience.ErrTooManyRequests) {
			return nil, fmt.Errorf("GET %s: %s unavailable: %w", rawURL, u.Host, err)
		}
		return nil, err
	}
	return body, nil
}

// BreakerStates returns the breaker state of every host contacted so far
func (c *Client) BreakerStates() map[string]resilience.State {
	if c.breakers == nil {
		return map[string]resilience.State{}
	}
	return c.breakers.States()
}
