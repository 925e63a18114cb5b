/*
Package probe implements the single-request fetch lifecycle.

# Overview

A Lifecycle owns one RequestOutcome slot and moves it through
idle -> pending -> succeeded/failed. Exactly one probe may be in flight;
submissions while pending are rejected (or, when the guard is disabled,
supersede the in-flight probe). Every submission takes a monotonically
increasing sequence number, and completions whose sequence is no longer
current are discarded, so a cleared or superseded probe can never overwrite
the displayed state.

# Pipeline

Submit issues one HTTP GET through the shared Client (resty with a rate
limiter and circuit breaker), carrying the caller's address-space hint as a
request header. Non-2xx responses become a failed outcome with the message
"HTTP <status>: <statusText>". Successful responses keep only the response
headers whose lowercased name contains "private-network" or
"access-control", and decode the body as JSON or text based on content
type. Transport errors become a failed outcome with the error's message, or
"Unknown error occurred" when there is none.

Failures never propagate past the lifecycle boundary; they are converted
into state and logged for diagnostics only.
*/
package probe
