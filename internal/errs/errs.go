// Package errs defines the error shapes the API returns to its clients.
//
// Every failure that leaves the service is rendered from an *HTTPError by the
// global error handler, so handlers and services return these values (or wrap
// driver errors that sqlerr later classifies) instead of writing responses.
package errs
