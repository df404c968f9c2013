// Package client fetches horoscope web pages.
//
// Built on go-resty/resty over a hashicorp/go-retryablehttp transport:
//   - Retries with exponential backoff on transport errors and 5xx replies
//   - A token bucket rate limit shared by all hosts
//   - One circuit breaker per host so a dead site fails fast
//
// Example Usage:
//
//	c := client.New(client.DefaultOptions())
//	page, err := c.Get(ctx, "https://www.astroyogi.com/horoscopes/daily/aries-free-horoscope.aspx")
package client
