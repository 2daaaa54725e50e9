// Package repository handles all interactions with the database.
//
// Reads go straight to the store and return plain values. Writes are only
// staged on a Gateway; they become durable when the request's Wrapper is
// saved, all of them in one transaction.
package repository
