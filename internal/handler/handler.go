// Package handler is the HTTP layer.
//
// Handlers receive payloads that the shared pipeline in base.go has already
// bound and validated, call the service layer, and pick the response
// status. Errors are left to the global error handler.
package handler
