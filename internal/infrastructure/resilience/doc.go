/*
Package resilience provides a circuit breaker for upstream website fetches.

# Overview

Warming a Source issues one request per content type. When a host is down
every request would otherwise wait for the full fetch timeout, and with a
single-threaded mount that stalls the whole filesystem. A breaker per host
turns repeated transport failures into immediate rejections, which the
Content Providers degrade to the placeholder like any other failure.

# Usage

	breakers := resilience.NewSet(resilience.Settings{
		Timeout: 60 * time.Second,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})

	err := breakers.Get(host).Execute(func() error {
		return fetch()
	})

# States

	Closed --[failures]-> Open --[timeout]-> Half-Open --[successes]-> Closed
	                                           |
	                                    [failure]
	                                           |
	                                           v
	                                         Open
*/
package resilience
