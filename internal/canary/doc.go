// Package canary provides an HTTP client for the canary match-alerting API.
//
// # Overview
//
// The dashboard only reads from the service. Three endpoints are polled:
//
//   - GET /api/metrics: aggregate counters and uptime
//   - GET /api/metrics/performance?minutes=N: the latest throughput sample
//   - GET /api/matches/recent?minutes=N: rule matches in the time window
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation
//   - Set Accept: application/json and User-Agent: canarywatch/0.1
//   - Carry an http.Client timeout (10 seconds unless configured)
//
// # Error Handling
//
// Every failure is returned as a *FetchError whose Kind is one of
// KindTransport (network, timeout, DNS), KindStatus (any non-2xx reply) or
// KindDecode (malformed or unexpected JSON). Callers use KindOf to classify
// an error without caring about the underlying cause.
//
// # Wire Quirks
//
// matched_domains arrives as a string from some servers and as an array of
// strings from others. MatchedDomains accepts both and remembers which form
// it saw so it can be written back unchanged.
package canary
