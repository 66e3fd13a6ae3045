// Package client is the outbound side of the gatekeeper client.
//
// # Overview
//
// The package provides:
//  1. An issuing contract (see Issuer) for the two requests the client
//     makes: a liveness check and a credential submission.
//  2. An HTTP implementation (see HTTPClient) that shares one connection
//     pool across all requests, runs each request in its own goroutine and
//     delivers the outcome as a Reply on a single channel.
//
// Every request is tagged with a Descriptor {Kind, CorrelationID, Seq} at
// issue time. The Reply carries the same Descriptor back, so a consumer never
// has to guess which request a reply belongs to, and replies may arrive in
// any order.
//
// # Error Handling
//
// Transport failures (refused, reset, timed out) are carried inside the
// Reply as Err with StatusCode 0. They are never returned to the caller of
// CheckHealth or SubmitLogin, which only fail with ErrClosed.
//
// # Concurrency
//
// HTTPClient is safe for concurrent use. Close waits for in-flight requests
// and then closes the replies channel.
package client
