// Package middleware holds the Echo middleware shared by every route.
//
// These intercept requests to handle cross-cutting concerns
// such as request ids, request logging, tracing, metrics, CORS,
// rate limiting, and panic recovery.
package middleware
