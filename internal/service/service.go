// Package service contains the business logic.
//
// It sits between the handler and repository layers. It receives validated
// payloads from the handlers, enforces the rules tying owners and accounts
// together, and commits the changes of one request through a single
// repository Wrapper.
package service
